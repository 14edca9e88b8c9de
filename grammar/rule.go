package grammar

import "fmt"

// Evaluator computes a value for a successfully parsed node. Evaluation
// is demand-driven: an evaluator pulls whatever child values it needs
// through node.Evaluate(name…) or node.EvaluateChildren().
type Evaluator func(node *ParsedNode) (interface{}, error)

// AllChildrenEvaluator is the built-in default for Sequence, Repeat,
// Star, Plus and Join: the node's value is the list of its children's
// values.
func AllChildrenEvaluator(node *ParsedNode) (interface{}, error) {
	values, err := node.EvaluateChildren()
	if err != nil {
		return nil, err
	}
	return values, nil
}

// FirstChildEvaluator is the built-in default for Or and Optional: the
// node's value is its (sole surviving) child's value, or nil for an
// Optional that took the empty branch.
func FirstChildEvaluator(node *ParsedNode) (interface{}, error) {
	if node.NumChildren() == 0 {
		return nil, nil
	}
	return node.Child(0).Evaluate()
}

// Named pairs a symbol with the display name it should carry as a child
// of an enclosing rule. WithName is the way grammar authors annotate a
// rule reference or terminal before handing it to a rule constructor.
type Named struct {
	Symbol Symbol
	Name   string
}

// WithName decorates sym with a name that becomes the child's name in
// its parent.
func WithName(sym Symbol, name string) Named {
	return Named{Symbol: sym, Name: name}
}

// Rule is the common state shared by every EBNF rule constructor
// (Sequence, Or, Optional, Star, Plus, Repeat, Join): the non-terminal it
// targets, the child symbols it is built from, names assigned to those
// children, and the optional evaluator/autocompleter/hooks a caller may
// attach before the rule is compiled into a BNF.
type Rule struct {
	kind             string
	tgt              *NonTerminal
	children         []Symbol
	parsedChildNames []string

	evaluator          Evaluator
	autocompleter      Autocompleter
	onSuccessfulParsed func(node *ParsedNode)

	// createBNF emits this rule's productions into a BNF; assigned by
	// the constructor that built the rule and invoked on every
	// Builder.Compile.
	createBNF func(bnf *BNF)
}

// Symbol returns the non-terminal this rule targets, for use as a child
// reference in other rules.
func (r *Rule) Symbol() Symbol {
	return r.tgt
}

// WithName decorates this rule's target symbol with a display name.
func (r *Rule) WithName(name string) Named {
	return Named{Symbol: r.tgt, Name: name}
}

// Children returns the child symbols this rule was declared over.
func (r *Rule) Children() []Symbol {
	return r.children
}

// getNameForChild returns the name a parsed child at position idx should
// be given: the sole recorded name if exactly one was given (rule
// constructors reuse a single name across every repetition of a
// Star/Plus body), the name recorded for that position, or "" if no
// name was ever assigned.
func (r *Rule) getNameForChild(idx int) string {
	if len(r.parsedChildNames) == 0 {
		return ""
	}
	if len(r.parsedChildNames) == 1 {
		return r.parsedChildNames[0]
	}
	if idx < 0 || idx >= len(r.parsedChildNames) {
		return ""
	}
	return r.parsedChildNames[idx]
}

// SetParsedChildNames records the display names for this rule's parsed
// children, in child order.
func (r *Rule) SetParsedChildNames(names ...string) *Rule {
	r.parsedChildNames = names
	return r
}

// SetEvaluator attaches an evaluator, replacing the rule kind's default.
func (r *Rule) SetEvaluator(eval Evaluator) *Rule {
	r.evaluator = eval
	return r
}

// SetAutocompleter attaches an autocompleter to this rule, consulted for
// every node built from its productions (unless the node's parent was
// built from the same rule; see parsednode.go).
func (r *Rule) SetAutocompleter(a Autocompleter) *Rule {
	r.autocompleter = a
	return r
}

// OnSuccessfulParse registers a callback invoked after each parse for
// every node built from this rule whose state is SUCCESSFUL or
// END_OF_INPUT, skipping nodes whose parent shares the rule (recursive
// Star/Plus expansions would otherwise notify once per generation).
func (r *Rule) OnSuccessfulParse(fn func(node *ParsedNode)) *Rule {
	r.onSuccessfulParsed = fn
	return r
}

// addProduction emits one production owned by this rule into bnf.
func (r *Rule) addProduction(bnf *BNF, lhs Symbol, rhs ...Symbol) *Production {
	p := NewProduction(lhs, rhs...)
	p.rule = r
	bnf.AddProduction(p)
	return p
}

// Builder accumulates EBNF rules and compiles them into a BNF. Grammar
// authors call its rule constructors (Sequence, Or, Star, …) to build up
// a grammar and then call Compile to freeze it into a BNF ready for
// RDParser. Productions are regenerated from the rule list on every
// Compile call.
type Builder struct {
	symbols map[string]Symbol
	rules   []*Rule
	bnf     *BNF
	anon    int
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		symbols: make(map[string]Symbol),
		bnf:     NewBNF(),
	}
}

// anonName generates a name for a rule whose target symbol was not given
// an explicit one. A per-builder counter keeps names stable across
// recompiles of the same grammar.
func (b *Builder) anonName(kind string) string {
	b.anon++
	return fmt.Sprintf("%s:%04d", kind, b.anon)
}

// targetFor resolves the target non-terminal for a rule constructor:
// the named symbol (created on first use, shared on repetition so that
// repeated constructor calls with the same name accumulate
// alternatives), or a fresh anonymous one.
func (b *Builder) targetFor(name, kind string) *NonTerminal {
	if name == "" {
		name = b.anonName(kind)
	}
	return b.NewOrExistingNonTerminal(name)
}

// NewOrExistingNonTerminal returns the NonTerminal registered under name,
// creating and registering one if none exists yet. Grammar authors use
// this to refer to a symbol by name before its defining rule has been
// added (forward reference).
func (b *Builder) NewOrExistingNonTerminal(name string) *NonTerminal {
	if sym, ok := b.symbols[name]; ok {
		if nt, ok := sym.(*NonTerminal); ok {
			return nt
		}
	}
	nt := NewNonTerminal(name)
	b.symbols[name] = nt
	return nt
}

// GetSymbol returns the symbol registered under name, or nil.
func (b *Builder) GetSymbol(name string) Symbol {
	return b.symbols[name]
}

// AddRule registers r and every symbol it mentions. Rules are kept in
// registration order; Compile emits their productions in that order,
// which is what makes "first alternative declared is tried first" hold
// across separately constructed rules sharing one target.
func (b *Builder) AddRule(r *Rule) *Rule {
	if _, ok := b.symbols[r.tgt.Name()]; !ok {
		b.symbols[r.tgt.Name()] = r.tgt
	}
	for _, c := range r.children {
		if c == Symbol(Epsilon) {
			continue
		}
		if _, ok := b.symbols[c.Name()]; !ok {
			b.symbols[c.Name()] = c
		}
	}
	b.rules = append(b.rules, r)
	return r
}

// RemoveRules drops every rule targeting the named non-terminal. The
// symbol itself stays registered, so references to it from other rules
// remain valid; it simply loses its productions until redefined.
func (b *Builder) RemoveRules(targetName string) {
	kept := b.rules[:0]
	for _, r := range b.rules {
		if r.tgt.Name() != targetName {
			kept = append(kept, r)
		}
	}
	b.rules = kept
}

// Rules returns the registered rules in registration order.
func (b *Builder) Rules() []*Rule {
	return b.rules
}

// BNF exposes the most recently compiled grammar.
func (b *Builder) BNF() *BNF {
	return b.bnf
}

// Compile regenerates the BNF from the registered rules, wrapping top in
// the start production START -> top STOP. STOP matches exactly the end
// of input, which is what makes a SUCCESSFUL root imply that the whole
// input was consumed. Repeated calls replace the previous start
// production.
func (b *Builder) Compile(top Symbol) *BNF {
	b.RemoveRules(StartSymbolName)
	start := b.Sequence(StartSymbolName, top, Stop)
	start.SetEvaluator(FirstChildEvaluator)

	b.bnf.Reset()
	for _, r := range b.rules {
		r.createBNF(b.bnf)
	}
	tracer().Infof("compiled %d rules into %d productions", len(b.rules), len(b.bnf.AllProductions()))
	return b.bnf
}
