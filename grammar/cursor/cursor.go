package cursor

import "strings"

// Cursor is a position within an input string. Position is its only
// mutable field; everything else is a read-only view onto the original
// string.
type Cursor struct {
	input string
	pos   int
}

// New creates a Cursor positioned at the start of input.
func New(input string) *Cursor {
	return &Cursor{input: input}
}

// Pos returns the current byte offset into the input.
func (c *Cursor) Pos() int {
	return c.pos
}

// SetPos repositions the cursor. Callers use this to rewind after a
// failed alternative during recursive-descent backtracking.
func (c *Cursor) SetPos(pos int) {
	c.pos = pos
}

// Fwd advances the cursor by n bytes.
func (c *Cursor) Fwd(n int) {
	c.pos += n
}

// IsDone reports whether the cursor has reached the end of input.
func (c *Cursor) IsDone() bool {
	return c.pos >= len(c.input)
}

// Remaining returns the unconsumed suffix of the input.
func (c *Cursor) Remaining() string {
	if c.pos >= len(c.input) {
		return ""
	}
	return c.input[c.pos:]
}

// Substring returns the input from byte offset from to the end. Used to
// compute "already entered text" for autocompletions: an end-of-input
// matcher never advances the position, so the text a completion's
// ancestor has already seen is the tail of the input from the
// ancestor's starting offset.
func (c *Cursor) Substring(from int) string {
	if from < 0 || from > len(c.input) {
		return ""
	}
	return c.input[from:]
}

// MatchesLiteral reports whether the remaining input starts with expected,
// distinguishing a clean match, a match truncated by end-of-input
// (expected is longer than what remains, but remaining is a prefix of it),
// and outright failure.
//
//	ok=true,  eoi=false : remaining starts with expected
//	ok=false, eoi=true  : remaining is empty, or is a non-empty proper
//	                      prefix of expected
//	ok=false, eoi=false : otherwise (no match possible)
func (c *Cursor) MatchesLiteral(expected string) (ok, eoi bool) {
	remaining := c.Remaining()
	if strings.HasPrefix(remaining, expected) {
		return true, false
	}
	if remaining == "" {
		return false, true
	}
	if strings.HasPrefix(expected, remaining) {
		return false, true
	}
	return false, false
}
