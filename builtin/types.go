package builtin

import (
	"strconv"

	"github.com/lexframe/lexframe/grammar"
)

// Names of the built-in types.
const (
	DigitName          = "digit"
	LetterName         = "letter"
	SignName           = "sign"
	IntName            = "int"
	FloatName          = "float"
	MonthName          = "month"
	WeekdayName        = "weekday"
	WhitespaceStarName = "whitespace-star"
	WhitespacePlusName = "whitespace-plus"
	IntegerRangeName   = "integer-range"
	PathName           = "path"
	TimeName           = "time"
	DateName           = "date"
	DateTimeName       = "date-time"
	ColorName          = "color"
)

// Registry is the set of built-in type symbols keyed by name, returned
// by Register so that embedding code can tell built-in type names apart
// from user-defined ones.
type Registry map[string]grammar.Symbol

// Register builds every built-in type into b and returns their symbols
// keyed by type name. pathCompleter may be nil, in which case the path
// type proposes no continuations for its inner text (the external
// filesystem collaborator is an embedding-application concern).
func Register(b *grammar.Builder, pathCompleter grammar.PathAutocompleter) Registry {
	reg := Registry{}

	reg[DigitName] = registerDigit(b).Symbol()
	reg[LetterName] = registerLetter(b).Symbol()
	signRule := registerSign(b)
	reg[SignName] = signRule.Symbol()

	intRule := registerInt(b, signRule)
	reg[IntName] = intRule.Symbol()
	reg[FloatName] = registerFloat(b, signRule).Symbol()

	wsStar := b.Star(WhitespaceStarName, grammar.Whitespace)
	wsStar.SetAutocompleter(grammar.IfNothingYetEnteredAutocompleter(" "))
	reg[WhitespaceStarName] = wsStar.Symbol()

	wsPlus := b.Plus(WhitespacePlusName, grammar.Whitespace)
	wsPlus.SetAutocompleter(grammar.IfNothingYetEnteredAutocompleter(" "))
	reg[WhitespacePlusName] = wsPlus.Symbol()

	reg[IntegerRangeName] = registerIntegerRange(b, intRule, wsStar).Symbol()
	reg[ColorName] = registerColor(b, intRule).Symbol()

	timeRule := registerTime(b)
	reg[TimeName] = timeRule.Symbol()
	monthRule := registerMonth(b)
	reg[MonthName] = monthRule.Symbol()
	reg[WeekdayName] = registerWeekday(b).Symbol()

	dateRule := registerDate(b, monthRule)
	reg[DateName] = dateRule.Symbol()
	reg[DateTimeName] = registerDateTime(b, dateRule, timeRule).Symbol()

	reg[PathName] = registerPath(b, pathCompleter).Symbol()

	return reg
}

// registerDigit builds "digit": a single digit character, evaluating to
// its one-character string.
func registerDigit(b *grammar.Builder) *grammar.Rule {
	r := b.Sequence(DigitName, grammar.Digit)
	r.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		return node.Matcher.Parsed, nil
	})
	r.SetAutocompleter(grammar.DefaultInlineAutocompleter)
	return r
}

// registerLetter builds "letter".
func registerLetter(b *grammar.Builder) *grammar.Rule {
	r := b.Sequence(LetterName, grammar.Letter)
	r.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		return node.Matcher.Parsed, nil
	})
	r.SetAutocompleter(grammar.DefaultInlineAutocompleter)
	return r
}

// registerSign builds "sign": "-" | "+".
func registerSign(b *grammar.Builder) *grammar.Rule {
	return b.Or(SignName, grammar.Literal("-"), grammar.Literal("+"))
}

// registerInt builds "int": an optional sign and one or more digits,
// evaluating to an int64 and failing on overflow.
func registerInt(b *grammar.Builder, sign *grammar.Rule) *grammar.Rule {
	optSign := b.Optional("", sign.Symbol())
	digits := b.Plus("", grammar.Digit)
	r := b.Sequence(IntName, optSign.Symbol(), digits.Symbol())
	r.SetEvaluator(evalInt)
	r.SetAutocompleter(grammar.DefaultInlineAutocompleter)
	return r
}

func evalInt(node *grammar.ParsedNode) (interface{}, error) {
	v, err := strconv.ParseInt(node.Matcher.Parsed, 10, 64)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// registerFloat builds "float": an optional sign, one or more digits,
// and an optional "." followed by zero or more digits.
func registerFloat(b *grammar.Builder, sign *grammar.Rule) *grammar.Rule {
	optSign := b.Optional("", sign.Symbol())
	digits := b.Plus("", grammar.Digit)
	frac := b.Sequence("", grammar.Literal("."), b.Star("", grammar.Digit).Symbol())
	optFrac := b.Optional("", frac.Symbol())

	r := b.Sequence(FloatName, optSign.Symbol(), digits.Symbol(), optFrac.Symbol())
	r.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		v, err := strconv.ParseFloat(node.Matcher.Parsed, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	})
	r.SetAutocompleter(grammar.DefaultInlineAutocompleter)
	return r
}

// IntRange is the value an integer-range node evaluates to: an
// inclusive pair of bounds.
type IntRange struct {
	From, To int64
}

// registerIntegerRange builds "integer-range": two ints joined by "-"
// with optional whitespace around the dash.
func registerIntegerRange(b *grammar.Builder, intRule, wsStar *grammar.Rule) *grammar.Rule {
	delim := b.Sequence("", wsStar.Symbol(), grammar.Literal("-"), wsStar.Symbol())
	r := b.Join(IntegerRangeName, intRule.Symbol(), grammar.JoinOptions{
		Delimiter:   delim.Symbol(),
		Cardinality: grammar.FixedCardinality(2),
	})
	r.SetParsedChildNames("from", "to")
	r.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		values, err := node.EvaluateChildren()
		if err != nil {
			return nil, err
		}
		from, _ := values[0].(int64)
		to, _ := values[1].(int64)
		return IntRange{From: from, To: to}, nil
	})
	return r
}
