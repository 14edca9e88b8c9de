package grammar

import "fmt"

// ParsedNode is one node of a reconstructed parse tree: the matcher that
// produced it (or a NOT_PARSED placeholder), the symbol it stands for,
// the production that built it from its children (nil for leaves), its
// children in order, its display name, and its index within its parent
// (meaningful inside Or/Star/Plus/Repeat/Join expansions).
type ParsedNode struct {
	Matcher    Matcher
	Symbol     Symbol
	Production *Production
	rule       *Rule

	children []*ParsedNode
	parent   *ParsedNode

	name             string
	nthEntryInParent int
}

// NewParsedNode creates a leaf node for sym with the given matcher.
func NewParsedNode(sym Symbol, m Matcher) *ParsedNode {
	return &ParsedNode{Symbol: sym, Matcher: m}
}

// Name returns the node's display name, falling back to its symbol's
// name if no extension listener ever assigned one.
func (n *ParsedNode) Name() string {
	if n.name == "" {
		return n.Symbol.Name()
	}
	return n.name
}

// SetName overrides the node's display name; called by extension
// listeners. Setting "" reverts to the symbol-name fallback.
func (n *ParsedNode) SetName(name string) {
	n.name = name
}

// NthEntryInParent returns this node's index among its parent's
// children, as assigned by the production's extension listener.
func (n *ParsedNode) NthEntryInParent() int {
	return n.nthEntryInParent
}

// SetNthEntryInParent overrides the index; called by extension
// listeners.
func (n *ParsedNode) SetNthEntryInParent(i int) {
	n.nthEntryInParent = i
}

// Parent returns the node's parent, or nil at the root.
func (n *ParsedNode) Parent() *ParsedNode {
	return n.parent
}

// Children returns the node's children in order.
func (n *ParsedNode) Children() []*ParsedNode {
	return n.children
}

// NumChildren returns len(Children()).
func (n *ParsedNode) NumChildren() int {
	return len(n.children)
}

// Child returns the i-th child, or nil if out of range.
func (n *ParsedNode) Child(i int) *ParsedNode {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// ChildByName returns the first child whose Name() equals name, or nil.
func (n *ParsedNode) ChildByName(name string) *ParsedNode {
	for _, c := range n.children {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// AddChildren appends children to n, setting each child's parent
// pointer to n.
func (n *ParsedNode) AddChildren(children ...*ParsedNode) {
	for _, c := range children {
		c.parent = n
	}
	n.children = append(n.children, children...)
}

// RemoveAllChildren detaches every child (clearing their parent
// pointers) and empties n.children. The AST build detaches children
// this way before each production's builder decides which to re-attach.
func (n *ParsedNode) RemoveAllChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// SetRule records the EBNF rule that emitted this node's production.
func (n *ParsedNode) SetRule(r *Rule) {
	n.rule = r
}

// GetRule returns the rule this node's production was emitted by, or
// nil if the node was not produced by a rule constructor (a terminal
// leaf, or a hand-added production).
func (n *ParsedNode) GetRule() *Rule {
	return n.rule
}

// ParentHasSameRule reports whether n's parent was built from the same
// rule as n. Recursive Star/Plus/Join expansions reuse one rule across
// many generations of nodes; this check prevents listener notification
// and autocompleter dispatch from treating every generation as
// independently interesting.
func (n *ParsedNode) ParentHasSameRule() bool {
	return n.parent != nil && n.rule != nil && n.parent.rule == n.rule
}

// State returns the node's matcher's parsing state.
func (n *ParsedNode) State() ParsingState {
	return n.Matcher.State
}

// DoesAutocomplete reports whether this node provides autocompletion. A
// nil result from GetAutocompletion means "not my business, look
// further" — distinct from a non-nil empty result, which means the node
// claims the completion point but currently proposes nothing (and
// thereby suppresses deeper, less specific suggestions).
func (n *ParsedNode) DoesAutocomplete() bool {
	return n.GetAutocompletion(true) != nil
}

// GetAutocompletion returns this node's completions: the rule's
// autocompleter when one is attached (and the parent was built from a
// different rule), else the node-level default — a literal terminal
// proposes its own text, any other terminal proposes a "${name}"
// placeholder until text has been entered and a Veto afterwards, and a
// bare non-terminal proposes nothing.
func (n *ParsedNode) GetAutocompletion(justCheck bool) []Autocompletion {
	if n.rule != nil && n.rule.autocompleter != nil && !n.ParentHasSameRule() {
		return n.rule.autocompleter.Complete(n, justCheck)
	}
	t, ok := n.Symbol.(*Terminal)
	if !ok || t == Epsilon || t == Stop {
		return nil
	}
	if t.IsLiteral {
		return []Autocompletion{NewLiteralCompletion(t.Name())}
	}
	if n.Matcher.Parsed != "" {
		return []Autocompletion{VetoCompletion()}
	}
	return []Autocompletion{NewParameterizedCompletion(n.Name())}
}

// Evaluate computes the node's value through its rule's evaluator —
// or, absent one, the node evaluates to its parsed text. Evaluation is
// demand-driven: an evaluator pulls the child values it needs via
// Evaluate/EvaluateChildren on the node it was handed. Given names,
// Evaluate first traverses child-by-name and evaluates the node it
// arrives at, returning nil if the path does not exist (e.g. an
// Optional that matched nothing).
func (n *ParsedNode) Evaluate(names ...string) (interface{}, error) {
	pn := n
	for _, nm := range names {
		pn = pn.ChildByName(nm)
		if pn == nil {
			return nil, nil
		}
	}
	return pn.evaluate()
}

// EvaluateChildren evaluates every child in order and returns their
// values; the canonical building block for ALL_CHILDREN-style
// evaluators.
func (n *ParsedNode) EvaluateChildren() ([]interface{}, error) {
	out := make([]interface{}, len(n.children))
	for i, c := range n.children {
		v, err := c.evaluate()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (n *ParsedNode) evaluate() (v interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &EvaluationError{Node: n, Err: fmt.Errorf("evaluator panicked: %v", r)}
		}
	}()
	if n.rule != nil && n.rule.evaluator != nil {
		return n.rule.evaluator(n)
	}
	return n.Matcher.Parsed, nil
}

// GetParsedString returns the input text this node's matcher consumed,
// or, given names, the text consumed by the node reached by traversing
// children by name ("" if the path does not exist).
func (n *ParsedNode) GetParsedString(names ...string) string {
	pn := n
	for _, nm := range names {
		pn = pn.ChildByName(nm)
		if pn == nil {
			return ""
		}
	}
	return pn.Matcher.Parsed
}
