package grammar

// flattenPair re-attaches a (head, rest) pair from a right-recursive
// expansion as head followed by rest's already-flattened children. Star,
// Plus and Join all use this shape.
func flattenPair(node *ParsedNode, children []*ParsedNode) {
	if len(children) < 2 {
		node.AddChildren(children...)
		return
	}
	node.AddChildren(children[0])
	node.AddChildren(children[1].Children()...)
}

// Star builds a rule matching zero or more repetitions of child:
// T -> C T ; T -> ε. The extension listener threads the repetition
// index down the right-recursive chain — each generation's first child
// gets the parent's nth-entry index (and the matching parsed-child
// name), the recursive tail gets nth+1 — and the AST builder flattens
// the chain into one entry per repetition. Its default evaluator is
// ALL_CHILDREN.
func (b *Builder) Star(name string, child Symbol) *Rule {
	r := &Rule{kind: "star", tgt: b.targetFor(name, "star"), children: []Symbol{child}, evaluator: AllChildrenEvaluator}
	r.createBNF = func(bnf *BNF) {
		repeat := r.addProduction(bnf, r.tgt, r.children[0], r.tgt)
		repeat.Extend = starChainExtension(r)
		repeat.BuildAST = flattenPair
		r.addProduction(bnf, r.tgt)
	}
	b.AddRule(r)
	return r
}

// starChainExtension is the extension listener shared by Star's and
// Plus's right-recursive chain productions. It requires the parent's own
// name and nth-entry index to be final already, which is why extension
// listeners run top-down.
func starChainExtension(r *Rule) func(node *ParsedNode) {
	return func(node *ParsedNode) {
		if node.NumChildren() < 2 {
			return
		}
		nth := node.NthEntryInParent()
		c0, c1 := node.Child(0), node.Child(1)
		c0.SetNthEntryInParent(nth)
		c0.SetName(r.getNameForChild(nth))
		c1.SetNthEntryInParent(nth + 1)
		c1.SetName(node.Name())
	}
}
