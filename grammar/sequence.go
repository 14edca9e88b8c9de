package grammar

// newSequence builds a detached sequence rule over children. Builder
// methods and the autocompletion probe (which assembles a throwaway
// wrapper sequence into a copied BNF) both go through here.
func newSequence(tgt *NonTerminal, children ...Symbol) *Rule {
	r := &Rule{kind: "sequence", tgt: tgt, children: children, evaluator: AllChildrenEvaluator}
	r.createBNF = func(bnf *BNF) {
		p := r.addProduction(bnf, r.tgt, r.children...)
		p.Extend = func(node *ParsedNode) {
			for i, c := range node.Children() {
				c.SetNthEntryInParent(i)
				c.SetName(r.getNameForChild(i))
			}
		}
	}
	return r
}

// Sequence builds a rule matching each of children in order: one
// production, T -> C0 C1 … Cn-1. Calling Sequence again with the same
// name adds another alternative production under the same non-terminal.
// Use SetParsedChildNames to give children individual display names; an
// unnamed child falls back to its own symbol name.
func (b *Builder) Sequence(name string, children ...Symbol) *Rule {
	r := newSequence(b.targetFor(name, "sequence"), children...)
	b.AddRule(r)
	return r
}
