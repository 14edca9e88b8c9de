package grammar

import (
	"strings"
	"unicode"

	"github.com/lexframe/lexframe/grammar/cursor"
)

// Literal builds a Terminal that matches the exact string lit.
//
//   - remaining starts with lit                        -> Successful
//   - remaining is a non-empty proper prefix of lit,
//     or remaining is empty                             -> EndOfInput
//   - otherwise                                          -> Failed
func Literal(lit string) *Terminal {
	t := NewTerminal(lit, func(c *cursor.Cursor) Matcher {
		pos := c.Pos()
		ok, eoi := c.MatchesLiteral(lit)
		switch {
		case ok:
			return Matcher{State: Successful, Pos: pos, Parsed: lit}
		case eoi:
			return Matcher{State: EndOfInput, Pos: pos, Parsed: c.Remaining()}
		default:
			return Matcher{State: Failed, Pos: pos}
		}
	})
	t.IsLiteral = true
	return t
}

// Epsilon always matches the empty string successfully, without consuming
// any input. The rule constructors derive the empty string through
// empty-RHS productions rather than by naming Epsilon in a production;
// it remains the distinguished terminal those empty alternatives stand
// for (and is how BNF dumps render them).
var Epsilon = NewTerminal("<epsilon>", func(c *cursor.Cursor) Matcher {
	return Matcher{State: Successful, Pos: c.Pos(), Parsed: ""}
})

// Stop is the artificial stop sentinel every compiled grammar's start
// production ends with: START -> topLevel STOP. It matches exactly the
// end of input — successfully (consuming nothing) when the cursor has
// reached EOF, and failing otherwise, so trailing unconsumed input turns
// an otherwise complete parse into a failure.
var Stop = NewTerminal(StopSymbolName, func(c *cursor.Cursor) Matcher {
	if c.IsDone() {
		return Matcher{State: Successful, Pos: c.Pos(), Parsed: ""}
	}
	return Matcher{State: Failed, Pos: c.Pos()}
})

// CharacterClass builds a Terminal named name that matches a single
// character for which accept returns true.
func CharacterClass(name string, accept func(r rune) bool) *Terminal {
	return NewTerminal(name, func(c *cursor.Cursor) Matcher {
		pos := c.Pos()
		if c.IsDone() {
			return Matcher{State: EndOfInput, Pos: pos, Parsed: ""}
		}
		r := []rune(c.Remaining())[0]
		if accept(r) {
			return Matcher{State: Successful, Pos: pos, Parsed: string(r)}
		}
		return Matcher{State: Failed, Pos: pos}
	})
}

// CharacterClassFromPattern builds a Terminal from a regex-style
// character class such as "[A-Za-z0-9_]" or "[^ \t\n{]". The terminal's
// name is the pattern string itself. Supported inside the brackets:
// plain characters, lo-hi ranges, a leading '^' for negation, a ']'
// directly after '[' or '[^' as a literal member, and the escapes \t,
// \n, \r and \\.
func CharacterClassFromPattern(pattern string) *Terminal {
	body := pattern
	if strings.HasPrefix(body, "[") && strings.HasSuffix(body, "]") {
		body = body[1 : len(body)-1]
	}
	negate := false
	if strings.HasPrefix(body, "^") {
		negate = true
		body = body[1:]
	}

	type rng struct{ lo, hi rune }
	var ranges []rng
	var set []rune
	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			i++
			switch runes[i] {
			case 't':
				r = '\t'
			case 'n':
				r = '\n'
			case 'r':
				r = '\r'
			default:
				r = runes[i]
			}
		}
		if i+2 < len(runes) && runes[i+1] == '-' {
			ranges = append(ranges, rng{lo: r, hi: runes[i+2]})
			i += 2
			continue
		}
		set = append(set, r)
	}

	members := string(set)
	accept := func(r rune) bool {
		if strings.ContainsRune(members, r) {
			return !negate
		}
		for _, rg := range ranges {
			if r >= rg.lo && r <= rg.hi {
				return !negate
			}
		}
		return negate
	}
	return CharacterClass(pattern, accept)
}

// Digit matches a single ASCII digit.
var Digit = CharacterClass("<digit>", func(r rune) bool { return r >= '0' && r <= '9' })

// Letter matches a single Unicode letter.
var Letter = CharacterClass("<letter>", unicode.IsLetter)

// Whitespace matches a single whitespace rune.
var Whitespace = CharacterClass("<whitespace>", unicode.IsSpace)

// NotCharSet builds a Terminal matching any single rune NOT contained in
// set, used by the built-in path type's "anything but these" class.
func NotCharSet(name, set string) *Terminal {
	return CharacterClass(name, func(r rune) bool { return !strings.ContainsRune(set, r) })
}
