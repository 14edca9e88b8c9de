package meta

import (
	"errors"
	"fmt"

	"github.com/lexframe/lexframe/builtin"
	"github.com/lexframe/lexframe/grammar"
)

// Compiler compiles user pattern strings like
//
//	Define channel {name:[A-Za-z0-9]:+}.
//
// into an ordered list of named target-grammar children. The pattern
// language is itself defined as a grammar — the meta-grammar — and
// parsed by the same recursive-descent engine that later parses user
// input against the target grammar. The meta-grammar's evaluators are
// where the two grammars meet: evaluating a parsed pattern resolves
// type references against the target grammar and synthesizes the
// quantifier/list/tuple wrapper rules directly into it.
type Compiler struct {
	target *grammar.Builder
	meta   *grammar.Builder

	quantifier     *grammar.Rule
	identifier     *grammar.Rule
	variableName   *grammar.Rule
	entryName      *grammar.Rule
	list           *grammar.Rule
	tuple          *grammar.Rule
	characterClass *grammar.Rule
	typ            *grammar.Rule
	variable       *grammar.Rule
	noVariable     *grammar.Rule
	expression     *grammar.Rule
}

// NewCompiler creates a Compiler whose evaluators build into target.
// The meta-grammar is constructed eagerly, with its own copy of the
// built-in types so that pattern-level constructs (integer quantifier
// bounds, integer ranges, whitespace runs) parse with the same rules
// user input does.
func NewCompiler(target *grammar.Builder) *Compiler {
	c := &Compiler{target: target, meta: grammar.NewBuilder()}
	builtin.Register(c.meta, nil)

	c.quantifier = c.makeQuantifier()
	c.identifier = c.makeIdentifier("identifier")
	c.variableName = c.makeVariableName()
	c.entryName = c.makeIdentifier("entry-name")
	c.list = c.makeList()
	c.tuple = c.makeTuple()
	c.characterClass = c.makeCharacterClass()
	c.typ = c.makeType()
	c.variable = c.makeVariable()
	c.noVariable = c.makeNoVariable()
	c.expression = c.makeExpression()
	return c
}

// Compile parses pattern against the meta-grammar and evaluates the
// resulting tree into the sequence of named children the pattern
// denotes. It returns a *PatternSyntaxError when the pattern does not
// parse, and an *UnknownTypeError when the pattern references a type
// the target grammar does not know.
func (c *Compiler) Compile(pattern string) ([]grammar.Named, error) {
	bnf := c.meta.Compile(c.expression.Symbol())
	parser := grammar.NewRDParser(bnf, pattern)
	root, _, err := parser.Parse(false)
	if err != nil || root.State() != grammar.Successful {
		pos := len(pattern)
		var pf *grammar.ParseFailure
		if errors.As(err, &pf) && pf.Frontier != nil {
			pos = pf.Frontier.Matcher.Pos
		}
		tracer().Errorf("pattern %q rejected at byte %d", pattern, pos)
		return nil, &PatternSyntaxError{Pattern: pattern, Pos: pos, Msg: "pattern does not match the pattern language"}
	}
	v, err := root.Evaluate()
	if err != nil {
		return nil, err
	}
	children, ok := v.([]grammar.Named)
	if !ok {
		return nil, &PatternSyntaxError{Pattern: pattern, Msg: fmt.Sprintf("pattern evaluated to %T, not a child sequence", v)}
	}
	tracer().Debugf("pattern %q compiled to %d children", pattern, len(children))
	return children, nil
}

func cc(pattern string) grammar.Symbol {
	return grammar.CharacterClassFromPattern(pattern)
}

func parsedText(node *grammar.ParsedNode) (interface{}, error) {
	return node.Matcher.Parsed, nil
}

func constant(v interface{}) grammar.Evaluator {
	return func(*grammar.ParsedNode) (interface{}, error) {
		return v, nil
	}
}

// makeQuantifier recognizes ? * + as well as fixed ("3") and ranged
// ("2-5") repetition counts, evaluating to the matching cardinality.
func (c *Compiler) makeQuantifier() *grammar.Rule {
	g := c.meta

	optional := g.Sequence("", grammar.Literal("?"))
	optional.SetEvaluator(constant(grammar.CardinalityOptional))
	plus := g.Sequence("", grammar.Literal("+"))
	plus.SetEvaluator(constant(grammar.CardinalityPlus))
	star := g.Sequence("", grammar.Literal("*"))
	star.SetEvaluator(constant(grammar.CardinalityStar))

	rng := g.Sequence("", g.GetSymbol(builtin.IntegerRangeName))
	rng.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		v, err := node.Child(0).Evaluate()
		if err != nil {
			return nil, err
		}
		r, ok := v.(builtin.IntRange)
		if !ok {
			return nil, fmt.Errorf("range quantifier evaluated to %T", v)
		}
		return grammar.RangeCardinality(int(r.From), int(r.To)), nil
	})

	fixed := g.Sequence("", g.GetSymbol(builtin.IntName))
	fixed.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		v, err := node.Child(0).Evaluate()
		if err != nil {
			return nil, err
		}
		n, ok := v.(int64)
		if !ok {
			return nil, fmt.Errorf("fixed quantifier evaluated to %T", v)
		}
		return grammar.FixedCardinality(int(n)), nil
	})

	r := g.Or("quantifier", optional.Symbol(), plus.Symbol(), star.Symbol(), rng.Symbol(), fixed.Symbol())
	r.SetParsedChildNames("optional", "plus", "star", "range", "fixed")
	return r
}

// makeIdentifier recognizes [A-Za-z_][A-Za-z0-9_-]*[A-Za-z0-9_] (with a
// single character as the degenerate case), evaluating to the matched
// text.
func (c *Compiler) makeIdentifier(name string) *grammar.Rule {
	g := c.meta
	inner := g.Sequence("", g.Star("", cc("[A-Za-z0-9_-]")).Symbol(), cc("[A-Za-z0-9_]"))
	inner.SetParsedChildNames("star", "")
	opt := g.Optional("", inner.Symbol())
	opt.SetParsedChildNames("seq")
	r := g.Sequence(name, cc("[A-Za-z_]"), opt.Symbol())
	r.SetParsedChildNames("", "opt")
	r.SetEvaluator(parsedText)
	return r
}

// makeVariableName recognizes the free-form name inside {…}: any run of
// characters other than colon and braces.
func (c *Compiler) makeVariableName() *grammar.Rule {
	r := c.meta.Plus("var-name", cc("[^:{}]"))
	r.SetEvaluator(parsedText)
	return r
}

// makeList recognizes "list<T>", evaluating to a freshly built
// target-grammar join of T entries separated by ", ".
func (c *Compiler) makeList() *grammar.Rule {
	g := c.meta
	wsStar := g.GetSymbol(builtin.WhitespaceStarName)
	r := g.Sequence("list",
		grammar.Literal("list"), wsStar, grammar.Literal("<"), wsStar,
		c.identifier.Symbol(), wsStar, grammar.Literal(">"))
	r.SetParsedChildNames("", "ws*", "", "ws*", "type", "ws*", "")
	r.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		ident := node.GetParsedString("type")
		entry := c.target.GetSymbol(ident)
		if entry == nil {
			return nil, &UnknownTypeError{Name: ident}
		}
		return c.target.List("", entry, ident).Symbol(), nil
	})
	return r
}

// makeTuple recognizes "tuple<T,a,b,…>", evaluating to a freshly built
// target-grammar tuple of T entries under the given names.
func (c *Compiler) makeTuple() *grammar.Rule {
	g := c.meta
	wsStar := g.GetSymbol(builtin.WhitespaceStarName)

	nameEntry := g.Sequence("", wsStar, grammar.Literal(","), wsStar, c.entryName.Symbol(), wsStar)
	nameEntry.SetParsedChildNames("ws*", "", "ws*", "entry-name", "ws*")
	names := g.Plus("", nameEntry.Symbol())
	names.SetParsedChildNames("sequence-names")

	r := g.Sequence("tuple",
		grammar.Literal("tuple"), wsStar, grammar.Literal("<"), wsStar,
		c.identifier.Symbol(), names.Symbol(), grammar.Literal(">"))
	r.SetParsedChildNames("", "ws*", "", "ws*", "type", "plus-names", "")
	r.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		typeName := node.GetParsedString("type")
		entry := c.target.GetSymbol(typeName)
		if entry == nil {
			return nil, &UnknownTypeError{Name: typeName}
		}
		plus := node.ChildByName("plus-names")
		if plus == nil {
			return nil, fmt.Errorf("tuple pattern without entry names")
		}
		var entryNames []string
		for _, ch := range plus.Children() {
			entryNames = append(entryNames, ch.GetParsedString("entry-name"))
		}
		return c.target.Tuple("", entry, entryNames...).Symbol(), nil
	})
	return r
}

// makeCharacterClass recognizes "[…]", evaluating to a target-grammar
// terminal matching one character of the class.
func (c *Compiler) makeCharacterClass() *grammar.Rule {
	g := c.meta
	r := g.Sequence("character-class",
		grammar.Literal("["), g.Plus("", cc("[^]]")).Symbol(), grammar.Literal("]"))
	r.SetParsedChildNames("", "plus", "")
	r.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		return grammar.CharacterClassFromPattern(node.Matcher.Parsed), nil
	})
	return r
}

// makeType recognizes a type position: a plain identifier resolved
// against the target grammar, or one of the synthesizing forms
// (list<T>, tuple<T,…>, a character class).
func (c *Compiler) makeType() *grammar.Rule {
	g := c.meta
	ident := g.Sequence("", c.identifier.Symbol())
	ident.SetParsedChildNames("identifier")
	ident.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		name := node.Matcher.Parsed
		sym := c.target.GetSymbol(name)
		if sym == nil {
			return nil, &UnknownTypeError{Name: name}
		}
		return sym, nil
	})
	r := g.Or("type", ident.Symbol(), c.list.Symbol(), c.tuple.Symbol(), c.characterClass.Symbol())
	r.SetParsedChildNames("type", "list", "tuple", "character-class")
	return r
}

// makeVariable recognizes "{name[:type][:quantifier]}". An untyped
// variable matches its own name as a literal; a quantifier wraps the
// resolved type in the matching Star/Plus/Optional/Repeat rule of the
// target grammar.
func (c *Compiler) makeVariable() *grammar.Rule {
	g := c.meta

	seqType := g.Sequence("", grammar.Literal(":"), c.typ.Symbol())
	seqType.SetParsedChildNames("", "type")
	optType := g.Optional("", seqType.Symbol())
	optType.SetParsedChildNames("seq-type")

	seqQuant := g.Sequence("", grammar.Literal(":"), c.quantifier.Symbol())
	seqQuant.SetParsedChildNames("", "quantifier")
	optQuant := g.Optional("", seqQuant.Symbol())
	optQuant.SetParsedChildNames("seq-quantifier")

	r := g.Sequence("variable",
		grammar.Literal("{"), c.variableName.Symbol(), optType.Symbol(), optQuant.Symbol(), grammar.Literal("}"))
	r.SetParsedChildNames("", "variable-name", "opt-type", "opt-quantifier", "")
	r.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		nameV, err := node.Evaluate("variable-name")
		if err != nil {
			return nil, err
		}
		name, _ := nameV.(string)

		typeV, err := node.Evaluate("opt-type", "seq-type", "type")
		if err != nil {
			return nil, err
		}
		var sym grammar.Symbol
		if typeV == nil {
			sym = grammar.Literal(name)
		} else if s, ok := typeV.(grammar.Symbol); ok {
			sym = s
		} else {
			return nil, fmt.Errorf("type of variable %q evaluated to %T", name, typeV)
		}

		quantV, err := node.Evaluate("opt-quantifier", "seq-quantifier", "quantifier")
		if err != nil {
			return nil, err
		}
		if quantV != nil {
			card, ok := quantV.(grammar.Cardinality)
			if !ok {
				return nil, fmt.Errorf("quantifier of variable %q evaluated to %T", name, quantV)
			}
			var wrap *grammar.Rule
			switch card {
			case grammar.CardinalityStar:
				wrap = c.target.Star("", sym)
			case grammar.CardinalityPlus:
				wrap = c.target.Plus("", sym)
			case grammar.CardinalityOptional:
				wrap = c.target.Optional("", sym)
			default:
				wrap = c.target.Repeat("", sym, card.From, card.To)
			}
			wrap.SetParsedChildNames(name)
			sym = wrap.Symbol()
		}
		return grammar.WithName(sym, name), nil
	})
	return r
}

// makeNoVariable recognizes a run of literal text. The run may contain
// inner whitespace but neither starts nor ends with it, and stops
// before '{' and line breaks — so "Define the output path" in a pattern
// is one literal, while "{p:path}" next to it is not.
func (c *Compiler) makeNoVariable() *grammar.Rule {
	g := c.meta
	middle := g.Sequence("", g.Star("", cc("[^{\n]")).Symbol(), cc("[^ \t\n{]"))
	middle.SetParsedChildNames("middle", "")
	tail := g.Optional("", middle.Symbol())
	tail.SetParsedChildNames("seq")
	r := g.Sequence("no-variable", cc("[^ \t\n{]"), tail.Symbol())
	r.SetParsedChildNames("", "tail")
	r.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		text := node.Matcher.Parsed
		return grammar.WithName(grammar.Literal(text), text), nil
	})
	return r
}

// makeExpression recognizes a whole pattern: literal runs and variables
// joined by pattern whitespace. Evaluation yields the target-grammar
// child sequence, re-inserting a whitespace-plus matcher wherever the
// pattern had whitespace between two tokens.
func (c *Compiler) makeExpression() *grammar.Rule {
	g := c.meta
	or := g.Or("", c.noVariable.Symbol(), c.variable.Symbol())
	or.SetParsedChildNames("no-variable", "variable")

	r := g.Join("expression", or.Symbol(), grammar.JoinOptions{
		Delimiter:      g.GetSymbol(builtin.WhitespaceStarName),
		Cardinality:    grammar.CardinalityPlus,
		KeepDelimiters: true,
	})
	r.SetParsedChildNames("or")
	r.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		var rhs []grammar.Named
		for i, ch := range node.Children() {
			if i%2 == 1 {
				if ch.NumChildren() > 0 {
					rhs = append(rhs, grammar.WithName(c.target.GetSymbol(builtin.WhitespacePlusName), "ws+"))
				}
				continue
			}
			v, err := ch.Evaluate()
			if err != nil {
				return nil, err
			}
			named, ok := v.(grammar.Named)
			if !ok {
				return nil, fmt.Errorf("pattern token %d evaluated to %T", i, v)
			}
			rhs = append(rhs, named)
		}
		return rhs, nil
	})
	return r
}
