package grammar

// Optional builds a rule matching child or nothing: T -> C ; T -> ε. On
// the C branch, the child's name/nth are assigned as if it were index 0
// of a one-alternative Or. Its default evaluator is FIRST_CHILD,
// yielding nil on the empty branch.
func (b *Builder) Optional(name string, child Symbol) *Rule {
	r := &Rule{kind: "optional", tgt: b.targetFor(name, "optional"), children: []Symbol{child}, evaluator: FirstChildEvaluator}
	r.createBNF = func(bnf *BNF) {
		present := r.addProduction(bnf, r.tgt, r.children[0])
		present.Extend = func(node *ParsedNode) {
			if node.NumChildren() == 0 {
				return
			}
			c := node.Child(0)
			c.SetNthEntryInParent(0)
			c.SetName(r.getNameForChild(0))
		}
		r.addProduction(bnf, r.tgt)
	}
	b.AddRule(r)
	return r
}
