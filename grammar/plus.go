package grammar

// Plus builds a rule matching one or more repetitions of child. It
// compiles as a sequence of the first occurrence and a star over the
// rest — T -> C S ; S -> C S ; S -> ε — with every production owned by
// the Plus rule itself, so the whole expansion flattens into one entry
// per repetition and inner generations are not treated as independent
// nodes by listeners or autocompleters. Its default evaluator is
// ALL_CHILDREN.
func (b *Builder) Plus(name string, child Symbol) *Rule {
	r := &Rule{kind: "plus", tgt: b.targetFor(name, "plus"), children: []Symbol{child}, evaluator: AllChildrenEvaluator}
	starTgt := NewNonTerminal(b.anonName("plus-tail"))
	r.createBNF = func(bnf *BNF) {
		head := r.addProduction(bnf, r.tgt, r.children[0], starTgt)
		head.Extend = starChainExtension(r)
		head.BuildAST = flattenPair

		tail := r.addProduction(bnf, starTgt, r.children[0], starTgt)
		tail.Extend = starChainExtension(r)
		tail.BuildAST = flattenPair

		r.addProduction(bnf, starTgt)
	}
	b.AddRule(r)
	return r
}
