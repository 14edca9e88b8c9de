package grammar

// SymbolSequence is the RD parser's working state while it descends
// through one alternative: a sequence of symbols, the index of the
// symbol currently being attempted, a back-pointer to the sequence it
// was spliced out of, the production that performed the splice (nil for
// the root), and the matchers accumulated for every terminal consumed
// so far. It exists only for the duration of one parse call.
type SymbolSequence struct {
	sequence []Symbol
	pos      int
	parent   *SymbolSequence
	// childStart/childEnd bound the RHS span within parent.sequence that
	// this sequence's production replaced, used to fold back into the
	// parent during tree reconstruction.
	childStart, childEnd int
	production           *Production
	matchers             []Matcher
}

// NewRootSequence creates the initial sequence, [start], at position 0.
func NewRootSequence(start Symbol) *SymbolSequence {
	return &SymbolSequence{sequence: []Symbol{start}}
}

// Current returns the symbol at the current position, or nil if the
// sequence has been fully consumed.
func (s *SymbolSequence) Current() Symbol {
	if s.pos >= len(s.sequence) {
		return nil
	}
	return s.sequence[s.pos]
}

// Done reports whether every symbol in the sequence has been matched.
func (s *SymbolSequence) Done() bool {
	return s.pos >= len(s.sequence)
}

// AppendMatcher records m as the outcome for the symbol at the current
// position and advances pos.
func (s *SymbolSequence) AppendMatcher(m Matcher) {
	s.matchers = append(s.matchers, m)
	s.pos++
}

// Copy returns a shallow copy of s, used to snapshot an end-of-input
// frontier without aliasing the live sequence the parser keeps
// mutating.
func (s *SymbolSequence) Copy() *SymbolSequence {
	cp := *s
	cp.sequence = append([]Symbol(nil), s.sequence...)
	cp.matchers = append([]Matcher(nil), s.matchers...)
	return &cp
}

// Replace splices production's RHS into s at the current position,
// producing a new child SymbolSequence whose matched prefix (everything
// before pos) is inherited, whose next len(RHS) slots are production's
// RHS, and whose tail (everything s had after pos) is carried forward
// unchanged. The parent link lets tree reconstruction fold the child
// back in once its span finishes matching.
func (s *SymbolSequence) Replace(production *Production) *SymbolSequence {
	head := append([]Symbol(nil), s.sequence[:s.pos]...)
	head = append(head, production.RHS...)
	tail := s.sequence[s.pos+1:]
	child := &SymbolSequence{
		parent:     s,
		production: production,
		childStart: s.pos,
		childEnd:   s.pos + len(production.RHS),
		sequence:   append(head, tail...),
		matchers:   append([]Matcher(nil), s.matchers...),
		pos:        s.pos,
	}
	return child
}

// LastMatcher returns the final matcher recorded, or a NotParsedMatcher
// if none has been recorded yet.
func (s *SymbolSequence) LastMatcher() Matcher {
	if len(s.matchers) == 0 {
		return NotParsedMatcher()
	}
	return s.matchers[len(s.matchers)-1]
}

// FinalState returns the state of LastMatcher, i.e. the state this
// sequence ended in.
func (s *SymbolSequence) FinalState() ParsingState {
	return s.LastMatcher().State
}
