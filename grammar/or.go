package grammar

// Or builds a rule matching exactly one of alternatives, tried in
// declaration order with first success winning: for each i, a
// production T -> alternatives[i]. The extension listener gives the
// surviving child the i-th parsed-child name and nth-entry index. Its
// default evaluator is FIRST_CHILD.
func (b *Builder) Or(name string, alternatives ...Symbol) *Rule {
	r := &Rule{kind: "or", tgt: b.targetFor(name, "or"), children: alternatives, evaluator: FirstChildEvaluator}
	r.createBNF = func(bnf *BNF) {
		for i, alt := range r.children {
			i := i
			p := r.addProduction(bnf, r.tgt, alt)
			p.Extend = func(node *ParsedNode) {
				if node.NumChildren() == 0 {
					return
				}
				c := node.Child(0)
				c.SetNthEntryInParent(i)
				c.SetName(r.getNameForChild(i))
			}
		}
	}
	b.AddRule(r)
	return r
}
