package grammar

// Production is one alternative right-hand side for a non-terminal: a
// single LHS symbol and a sequence of RHS symbols. An empty RHS derives
// the empty string (the "T -> ε" case of Optional and Star). Rule
// constructors attach an AST builder and an extension listener to the
// productions they emit; both are optional and run at distinct points
// in the parsed tree's lifecycle.
type Production struct {
	LHS Symbol
	RHS []Symbol

	// rule is the EBNF rule whose createBNF emitted this production, or
	// nil for productions added directly (the start production of a
	// completion probe, hand-built test grammars).
	rule *Rule

	// Extend runs top-down over the freshly reconstructed (pre-AST)
	// tree: it is where child names and nth-entry-in-parent counters get
	// assigned. Top-down order matters, because Star's listener reads
	// the parent's own name/nth, which must already be final.
	Extend func(node *ParsedNode)

	// BuildAST runs once per node, post-order, after the node's children
	// have been detached; it decides which of them to re-attach and how
	// (Star/Plus/Join flatten their recursive expansions here). A nil
	// BuildAST re-attaches all children unchanged.
	BuildAST func(node *ParsedNode, children []*ParsedNode)
}

// NewProduction creates a Production with no rule, AST builder or
// extension listener attached.
func NewProduction(lhs Symbol, rhs ...Symbol) *Production {
	return &Production{LHS: lhs, RHS: rhs}
}

// Rule returns the EBNF rule that emitted this production, or nil.
func (p *Production) Rule() *Rule {
	return p.rule
}

// String renders the production as "LHS -> RHS1 RHS2 …" for debug dumps,
// with an empty RHS shown as the epsilon terminal.
func (p *Production) String() string {
	s := p.LHS.Name() + " ->"
	if len(p.RHS) == 0 {
		return s + " " + Epsilon.Name()
	}
	for _, sym := range p.RHS {
		s += " " + sym.Name()
	}
	return s
}
