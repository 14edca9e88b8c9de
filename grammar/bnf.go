package grammar

import "github.com/emirpasic/gods/lists/arraylist"

// StartSymbolName and StopSymbolName name the sentinel symbols
// Builder.Compile wraps a grammar's top-level symbol in:
// START -> topLevel STOP.
const (
	StartSymbolName = "<<start>>"
	StopSymbolName  = "<<stop>>"
)

// BNF is a grammar in Backus-Naur form: an ordered list of productions,
// grouped by left-hand side for fast lookup. Productions keep their
// declaration order because the parser tries alternatives in that order
// and "first success wins".
type BNF struct {
	productions *arraylist.List
	byLHS       map[string]*arraylist.List
}

// NewBNF creates an empty BNF.
func NewBNF() *BNF {
	return &BNF{
		productions: arraylist.New(),
		byLHS:       make(map[string]*arraylist.List),
	}
}

// AddProduction appends p to the grammar.
func (b *BNF) AddProduction(p *Production) {
	b.productions.Add(p)
	lhs := p.LHS.Name()
	l, ok := b.byLHS[lhs]
	if !ok {
		l = arraylist.New()
		b.byLHS[lhs] = l
	}
	l.Add(p)
}

// RemoveStartProduction drops all productions with the given LHS name,
// used when a completion probe swaps its own start production into a
// copied grammar.
func (b *BNF) RemoveStartProduction(lhsName string) {
	delete(b.byLHS, lhsName)
	kept := arraylist.New()
	b.productions.Each(func(_ int, v interface{}) {
		p := v.(*Production)
		if p.LHS.Name() != lhsName {
			kept.Add(p)
		}
	})
	b.productions = kept
}

// ProductionsFor returns, in declaration order, the productions whose LHS
// is the given symbol.
func (b *BNF) ProductionsFor(lhsName string) []*Production {
	l, ok := b.byLHS[lhsName]
	if !ok {
		return nil
	}
	values := l.Values()
	out := make([]*Production, len(values))
	for i, v := range values {
		out[i] = v.(*Production)
	}
	return out
}

// AllProductions returns every production in declaration order.
func (b *BNF) AllProductions() []*Production {
	values := b.productions.Values()
	out := make([]*Production, len(values))
	for i, v := range values {
		out[i] = v.(*Production)
	}
	return out
}

// Reset empties the grammar, keeping it allocated for reuse; Compile
// calls this before regenerating every rule's productions.
func (b *BNF) Reset() {
	b.productions = arraylist.New()
	b.byLHS = make(map[string]*arraylist.List)
}

// Copy returns a copy of b with its own production list and index;
// the productions themselves (and their symbols) are shared, since they
// are immutable once emitted. EntireSequenceAutocompleter uses this to
// build a throwaway sub-grammar with one child swapped in as the start
// symbol, without disturbing the grammar it was copied from.
func (b *BNF) Copy() *BNF {
	cp := NewBNF()
	for _, p := range b.AllProductions() {
		cp.AddProduction(p)
	}
	return cp
}
