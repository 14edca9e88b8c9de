package grammar

// Cardinality bounds how many entries a Join accepts. To < 0 means
// unbounded.
type Cardinality struct {
	From, To int
}

var (
	// CardinalityOptional allows zero or one entry (no delimiter ever
	// appears).
	CardinalityOptional = Cardinality{From: 0, To: 1}
	// CardinalityStar allows zero or more delimiter-separated entries.
	CardinalityStar = Cardinality{From: 0, To: -1}
	// CardinalityPlus requires one or more delimiter-separated entries.
	CardinalityPlus = Cardinality{From: 1, To: -1}
)

// FixedCardinality requires exactly n entries.
func FixedCardinality(n int) Cardinality {
	return Cardinality{From: n, To: n}
}

// RangeCardinality allows between from and to entries, inclusive.
func RangeCardinality(from, to int) Cardinality {
	return Cardinality{From: from, To: to}
}

// JoinOptions configures Join. Open and Close, when non-nil, bracket the
// whole list. Delimiter separates successive entries and defaults to the
// literal ", ". KeepDelimiters keeps the open/close/delimiter nodes as
// children of the join node (named "open", "close" and "delimiter");
// the default drops them so the children are exactly the entries.
type JoinOptions struct {
	Open, Close, Delimiter Symbol
	Cardinality            Cardinality
	KeepDelimiters         bool
}

// Join builds a rule matching a delimited list of child: an optional
// opening symbol, the entries separated by the delimiter with the given
// cardinality, and an optional closing symbol. Entry nodes are named
// through the rule's parsed-child names, indexed by entry position. Its
// default evaluator is ALL_CHILDREN.
func (b *Builder) Join(name string, child Symbol, opts JoinOptions) *Rule {
	if opts.Delimiter == nil {
		opts.Delimiter = Literal(", ")
	}
	r := &Rule{kind: "join", tgt: b.targetFor(name, "join"), children: []Symbol{child}, evaluator: AllChildrenEvaluator}
	inner := NewNonTerminal(b.anonName("join-entries"))
	more := NewNonTerminal(b.anonName("join-more"))

	r.createBNF = func(bnf *BNF) {
		var rhs []Symbol
		if opts.Open != nil {
			rhs = append(rhs, opts.Open)
		}
		rhs = append(rhs, inner)
		if opts.Close != nil {
			rhs = append(rhs, opts.Close)
		}
		main := r.addProduction(bnf, r.tgt, rhs...)
		main.Extend = func(node *ParsedNode) {
			i := 0
			if opts.Open != nil && node.Child(i) != nil {
				node.Child(i).SetName("open")
				i++
			}
			if node.Child(i) != nil {
				node.Child(i).SetNthEntryInParent(0)
			}
			i++
			if opts.Close != nil && node.Child(i) != nil {
				node.Child(i).SetName("close")
			}
		}
		main.BuildAST = func(node *ParsedNode, children []*ParsedNode) {
			i := 0
			var open, close *ParsedNode
			if opts.Open != nil {
				open = children[i]
				i++
			}
			entries := children[i]
			i++
			if opts.Close != nil && i < len(children) {
				close = children[i]
			}
			if opts.KeepDelimiters && open != nil {
				node.AddChildren(open)
			}
			node.AddChildren(entries.Children()...)
			if opts.KeepDelimiters && close != nil {
				node.AddChildren(close)
			}
		}

		if opts.Cardinality.To < 0 {
			r.createUnboundedEntries(bnf, inner, more, child, opts)
		} else {
			r.createBoundedEntries(bnf, inner, child, opts)
		}
	}
	b.AddRule(r)
	return r
}

// createUnboundedEntries emits the right-recursive chain for STAR/PLUS
// cardinalities: inner -> C more [; inner -> ε] ; more -> delim C more ;
// more -> ε. The entry index threads down the chain exactly as in Star.
func (r *Rule) createUnboundedEntries(bnf *BNF, inner, more *NonTerminal, child Symbol, opts JoinOptions) {
	first := r.addProduction(bnf, inner, child, more)
	first.Extend = func(node *ParsedNode) {
		if node.NumChildren() < 2 {
			return
		}
		nth := node.NthEntryInParent()
		node.Child(0).SetNthEntryInParent(nth)
		node.Child(0).SetName(r.getNameForChild(nth))
		node.Child(1).SetNthEntryInParent(nth + 1)
	}
	first.BuildAST = flattenPair
	if opts.Cardinality.From == 0 {
		r.addProduction(bnf, inner)
	}

	rest := r.addProduction(bnf, more, opts.Delimiter, child, more)
	rest.Extend = func(node *ParsedNode) {
		if node.NumChildren() < 3 {
			return
		}
		nth := node.NthEntryInParent()
		node.Child(0).SetName("delimiter")
		node.Child(1).SetNthEntryInParent(nth)
		node.Child(1).SetName(r.getNameForChild(nth))
		node.Child(2).SetNthEntryInParent(nth + 1)
	}
	rest.BuildAST = func(node *ParsedNode, children []*ParsedNode) {
		if len(children) < 3 {
			node.AddChildren(children...)
			return
		}
		if opts.KeepDelimiters {
			node.AddChildren(children[0])
		}
		node.AddChildren(children[1])
		node.AddChildren(children[2].Children()...)
	}
	r.addProduction(bnf, more)
}

// createBoundedEntries emits one explicit production per admissible
// entry count, longest first: inner -> C (delim C)^(k-1) for k from To
// down to From, with k = 0 producing the empty alternative.
func (r *Rule) createBoundedEntries(bnf *BNF, inner *NonTerminal, child Symbol, opts JoinOptions) {
	for k := opts.Cardinality.To; k >= opts.Cardinality.From; k-- {
		var rhs []Symbol
		for j := 0; j < k; j++ {
			if j > 0 {
				rhs = append(rhs, opts.Delimiter)
			}
			rhs = append(rhs, child)
		}
		p := r.addProduction(bnf, inner, rhs...)
		p.Extend = func(node *ParsedNode) {
			for idx, c := range node.Children() {
				if idx%2 == 1 {
					c.SetName("delimiter")
					continue
				}
				c.SetNthEntryInParent(idx / 2)
				c.SetName(r.getNameForChild(idx / 2))
			}
		}
		p.BuildAST = func(node *ParsedNode, children []*ParsedNode) {
			for idx, c := range children {
				if idx%2 == 1 && !opts.KeepDelimiters {
					continue
				}
				node.AddChildren(c)
			}
		}
	}
}
