package lexframe

import (
	"fmt"

	"github.com/lexframe/lexframe/builtin"
	"github.com/lexframe/lexframe/grammar"
	"github.com/lexframe/lexframe/meta"
)

// Parser is the user-facing entry point: it owns a target grammar
// pre-loaded with the built-in types, compiles user pattern strings
// against the meta-grammar (package meta) into rules of that target
// grammar, and drives parsing and autocompletion through
// grammar.RDParser.
type Parser struct {
	builder  *grammar.Builder
	compiler *meta.Compiler
	bnf      *grammar.BNF

	builtins    builtin.Registry
	userDefined map[string]bool

	compiled            bool
	parseStartListeners []func()
}

// NewParser creates a Parser with every built-in type already
// registered, using no path-completion collaborator (the path type's
// inner text will simply propose no continuations).
func NewParser() *Parser {
	return newParser(nil)
}

// NewParserWithPathCompleter is like NewParser but wires pathCompleter
// as the external collaborator behind the path built-in type's
// autocompleter. Pass a *builtin.OSPathCompleter for a
// filesystem-backed adapter, or any other grammar.PathAutocompleter.
func NewParserWithPathCompleter(pathCompleter grammar.PathAutocompleter) *Parser {
	return newParser(pathCompleter)
}

func newParser(pathCompleter grammar.PathAutocompleter) *Parser {
	b := grammar.NewBuilder()
	reg := builtin.Register(b, pathCompleter)
	p := &Parser{
		builder:     b,
		builtins:    reg,
		userDefined: make(map[string]bool),
		compiler:    meta.NewCompiler(b),
	}
	p.program()
	return p
}

// program builds the top-level rule eagerly: zero or more "sentence"
// entries, with runs of linebreaks allowed before, between and after
// them. "sentence" is a forward reference resolved by later
// DefineSentence calls.
func (p *Parser) program() {
	sentence := p.builder.NewOrExistingNonTerminal("sentence")
	linebreakStar := p.builder.Star("linebreak-star", grammar.Literal("\n"))
	r := p.builder.Join("program", sentence, grammar.JoinOptions{
		Open:        linebreakStar.Symbol(),
		Close:       linebreakStar.Symbol(),
		Delimiter:   linebreakStar.Symbol(),
		Cardinality: grammar.CardinalityStar,
	})
	r.SetParsedChildNames("sentence")
}

// DefineType compiles pattern via the meta-grammar and assembles the
// result into a sequence rule named typ in the target grammar. Calling
// DefineType again with a type name already in use adds another
// alternative under the same non-terminal; the first user definition of
// a name that collides with a built-in type replaces the built-in's
// alternatives instead of extending them.
//
// evaluator may be nil to keep the rule kind's default. autocompleter
// may be nil (no autocompleter attached — completion falls through to
// the rule's parts), a bool (true installs the entire-sequence
// autocompleter, false the inline "${name}" one), or a
// grammar.Autocompleter to attach directly.
func (p *Parser) DefineType(typ, pattern string, evaluator grammar.Evaluator, autocompleter interface{}) (*grammar.Rule, error) {
	children, err := p.compiler.Compile(pattern)
	if err != nil {
		tracer().Errorf("defineType(%q): %v", typ, err)
		return nil, err
	}

	if _, isBuiltin := p.builtins[typ]; isBuiltin && !p.userDefined[typ] {
		tracer().Infof("user definition of %q shadows the built-in type", typ)
		p.builder.RemoveRules(typ)
	}
	p.userDefined[typ] = true

	syms := make([]grammar.Symbol, len(children))
	names := make([]string, len(children))
	for i, c := range children {
		syms[i] = c.Symbol
		names[i] = c.Name
	}

	rule := p.builder.Sequence(typ, syms...)
	rule.SetParsedChildNames(names...)
	if evaluator != nil {
		rule.SetEvaluator(evaluator)
	}
	if err := p.applyAutocompleter(rule, autocompleter); err != nil {
		return nil, err
	}

	p.compiled = false
	return rule, nil
}

// DefineSentence is DefineType("sentence", pattern, evaluator,
// autocompleter); each call adds one more accepted sentence pattern.
func (p *Parser) DefineSentence(pattern string, evaluator grammar.Evaluator, autocompleter interface{}) (*grammar.Rule, error) {
	return p.DefineType("sentence", pattern, evaluator, autocompleter)
}

func (p *Parser) applyAutocompleter(rule *grammar.Rule, autocompleter interface{}) error {
	switch a := autocompleter.(type) {
	case nil:
		return nil
	case bool:
		if a {
			rule.SetAutocompleter(grammar.NewEntireSequenceAutocompleter(p.builder))
		} else {
			rule.SetAutocompleter(grammar.DefaultInlineAutocompleter)
		}
	case grammar.Autocompleter:
		rule.SetAutocompleter(a)
	case func(*grammar.ParsedNode, bool) []grammar.Autocompletion:
		rule.SetAutocompleter(grammar.AutocompleterFunc(a))
	default:
		return fmt.Errorf("lexframe: unsupported autocompleter type %T", autocompleter)
	}
	return nil
}

// Compile materializes the target grammar's BNF, defaulting to the
// top-level "program" symbol when top is omitted.
func (p *Parser) Compile(top ...grammar.Symbol) {
	var sym grammar.Symbol
	if len(top) > 0 && top[0] != nil {
		sym = top[0]
	} else {
		sym = p.builder.GetSymbol("program")
	}
	p.bnf = p.builder.Compile(sym)
	p.compiled = true
	tracer().Infof("compiled grammar with top-level symbol %q", sym.Name())
}

// Parse parses text against the compiled grammar, compiling it first
// (against "program") if Compile was never called. When
// collectCompletions is true, the returned slice holds every
// autocompletion discovered from the parse's end-of-input frontier; it
// is returned alongside the tree even when the parse itself failed.
func (p *Parser) Parse(text string, collectCompletions bool) (*grammar.ParsedNode, []grammar.Autocompletion, error) {
	if !p.compiled {
		p.Compile()
	}
	tracer().Debugf("parsing %d bytes (collectCompletions=%v)", len(text), collectCompletions)
	parser := grammar.NewRDParser(p.bnf, text)
	for _, fn := range p.parseStartListeners {
		parser.AddParseStartListener(fn)
	}
	tree, completions, err := parser.Parse(collectCompletions)
	if err != nil {
		tracer().Errorf("parse failed: %v", err)
	}
	return tree, completions, err
}

// AddParseStartListener registers fn to be called whenever a parsed
// tree is about to be constructed — once per Parse call for the main
// tree, plus once per completion frontier examined. Sentence listeners
// registered via OnSuccessfulParse re-fire after each of these, so a
// parse-start listener is the place to reset whatever they accumulate.
func (p *Parser) AddParseStartListener(fn func()) {
	p.parseStartListeners = append(p.parseStartListeners, fn)
}

// RemoveParseStartListener is a no-op kept for interface parity: Go
// function values cannot be compared for identity, so individual
// listeners cannot be located for removal. Use
// ClearParseStartListeners and re-register instead.
func (p *Parser) RemoveParseStartListener(fn func()) {
	_ = fn
}

// ClearParseStartListeners removes every registered parse-start
// listener.
func (p *Parser) ClearParseStartListeners() {
	p.parseStartListeners = nil
}

// BNF exposes the compiled grammar, primarily for Dump()-based
// debugging.
func (p *Parser) BNF() *grammar.BNF {
	return p.bnf
}

// Builder exposes the underlying target-grammar builder, for callers
// that want to add rules directly (bypassing the pattern compiler) or
// inspect registered symbols.
func (p *Parser) Builder() *grammar.Builder {
	return p.builder
}
