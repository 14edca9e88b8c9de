package grammar

// Repeat builds a rule matching child exactly n times for some n in
// [from, to]: for each length from to down to from, a production
// T -> C C … C (length times). Longer alternatives are listed first so
// the RD parser's first-success-wins ordering tries the longest fit
// before shorter ones. Its default evaluator is ALL_CHILDREN.
func (b *Builder) Repeat(name string, child Symbol, from, to int) *Rule {
	r := &Rule{kind: "repeat", tgt: b.targetFor(name, "repeat"), children: []Symbol{child}, evaluator: AllChildrenEvaluator}
	r.createBNF = func(bnf *BNF) {
		for seqLen := to; seqLen >= from; seqLen-- {
			rhs := make([]Symbol, seqLen)
			for i := range rhs {
				rhs[i] = r.children[0]
			}
			p := r.addProduction(bnf, r.tgt, rhs...)
			p.Extend = func(node *ParsedNode) {
				for i, c := range node.Children() {
					c.SetNthEntryInParent(i)
					c.SetName(r.getNameForChild(i))
				}
			}
		}
	}
	b.AddRule(r)
	return r
}
