package grammar

import "github.com/lexframe/lexframe/grammar/cursor"

// Symbol is a grammar symbol: either a NonTerminal, whose identity is just
// its name, or a Terminal, which additionally knows how to match itself
// against a Cursor.
type Symbol interface {
	// Name returns the symbol's identity. Two symbols with the same name
	// are the same symbol throughout a BNF.
	Name() string
	// IsTerminal reports whether this symbol is a Terminal.
	IsTerminal() bool
}

// NonTerminal is a symbol whose meaning is given entirely by the
// productions that have it as their left-hand side.
type NonTerminal struct {
	name string
}

// NewNonTerminal creates a NonTerminal with the given name.
func NewNonTerminal(name string) *NonTerminal {
	return &NonTerminal{name: name}
}

// Name returns the non-terminal's name.
func (n *NonTerminal) Name() string { return n.name }

// IsTerminal is always false for a NonTerminal.
func (n *NonTerminal) IsTerminal() bool { return false }

// Terminal is a symbol that matches directly against input. Match is
// called with a Cursor positioned where matching should begin; it must
// not move the cursor itself — callers advance it by Matcher.Parsed's
// length on success.
type Terminal struct {
	name  string
	match func(c *cursor.Cursor) Matcher

	// IsLiteral marks a Terminal built by Literal(): such terminals
	// autocomplete to their own text rather than a "${name}"
	// placeholder (see ParsedNode.GetAutocompletion).
	IsLiteral bool
}

// NewTerminal creates a Terminal with the given name and matching
// function.
func NewTerminal(name string, match func(c *cursor.Cursor) Matcher) *Terminal {
	return &Terminal{name: name, match: match}
}

// Name returns the terminal's name.
func (t *Terminal) Name() string { return t.name }

// IsTerminal is always true for a Terminal.
func (t *Terminal) IsTerminal() bool { return true }

// Match attempts to match this terminal against c's remaining input.
func (t *Terminal) Match(c *cursor.Cursor) Matcher {
	return t.match(c)
}
