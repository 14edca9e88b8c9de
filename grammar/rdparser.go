package grammar

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/schuko/gconf"

	"github.com/lexframe/lexframe/grammar/cursor"
)

const defaultMaxRecursionDepth = 500

// maxRecursionDepth returns the configured recursion-depth guard,
// overridable via the "lexframe-max-recursion-depth" gconf flag.
func maxRecursionDepth() int {
	if d := gconf.GetInt("lexframe-max-recursion-depth"); d > 0 {
		return d
	}
	return defaultMaxRecursionDepth
}

// stuck reports a parser that recursed past its depth guard. If the
// "lexframe-panic-on-parser-stuck" gconf flag is set, it panics with
// diagnostic context instead of returning gracefully; this is meant for
// debugging a misbehaving grammar, not for production use.
func stuck(msg string) {
	tracer().Errorf(msg)
	if gconf.GetBool("lexframe-panic-on-parser-stuck") {
		panic("lexframe RDParser is stuck: " + msg + `

Configuration flag lexframe-panic-on-parser-stuck is set to true. It is
aimed at helping debug a grammar and post-mortem why recursion ran away.
Unset it to get a failed parse back instead of a panic.`)
	}
}

// RDParser is a recursive-descent parser over a BNF. It is created
// fresh for every Parse call; nothing but the bnf it was handed survives
// across calls.
type RDParser struct {
	bnf    *BNF
	cursor *cursor.Cursor

	collectCompletions bool
	eoiFrontier        []*SymbolSequence

	parseStartListeners []func()

	// entireSequenceCache holds sub-grammar probe results keyed by
	// "childSymbol:childName"; it is reset at the start of every Parse.
	entireSequenceCache map[string][]Autocompletion
}

// NewRDParser creates a parser over bnf for the given input text.
func NewRDParser(bnf *BNF, input string) *RDParser {
	return &RDParser{
		bnf:    bnf,
		cursor: cursor.New(input),
	}
}

// AddParseStartListener registers fn to be called every time a parsed
// tree is about to be reconstructed — once per Parse for the main tree,
// plus once per end-of-input frontier examined for autocompletion.
// Callers use this to reset per-parse state that onSuccessfulParsed
// listeners accumulate.
func (p *RDParser) AddParseStartListener(fn func()) {
	p.parseStartListeners = append(p.parseStartListeners, fn)
}

// Parse runs the parser to completion, returning the root ParsedNode.
// When collectCompletions is true, it also returns the autocompletions
// computed from every end-of-input frontier reached during the descent.
// The returned error is a *ParseFailure when the root ends in the
// FAILED state, or a *AutocompleterError when a user autocompleter
// panicked (the completions gathered until then are still returned).
func (p *RDParser) Parse(collectCompletions bool) (*ParsedNode, []Autocompletion, error) {
	p.collectCompletions = collectCompletions
	p.eoiFrontier = nil
	p.entireSequenceCache = make(map[string][]Autocompletion)

	start := p.bnf.ProductionsFor(StartSymbolName)
	if len(start) == 0 {
		panic("lexframe: grammar has no start production; compile it first")
	}

	prevParser := currentParser
	currentParser = p
	defer func() { currentParser = prevParser }()

	final := p.parseRecursive(NewRootSequence(start[0].LHS), 0)

	var completions []Autocompletion
	var acErr error
	if collectCompletions {
		completions, acErr = p.collectAutocompletions()
	}

	tree, last := p.createParsedTree(final)
	p.buildAst(tree)

	if tree.State() == Failed {
		return tree, completions, &ParseFailure{Root: tree, Frontier: last}
	}
	return tree, completions, acErr
}

// parseRecursive descends through seq, matching terminals directly and
// trying a non-terminal's productions in declaration order — first
// success wins, otherwise the best outcome by matcher order is kept.
// An EndOfInput terminal outcome snapshots the sequence as a completion
// frontier before the descent moves on.
func (p *RDParser) parseRecursive(seq *SymbolSequence, depth int) *SymbolSequence {
	if depth > maxRecursionDepth() {
		stuck(fmt.Sprintf("recursion depth %d exceeded while parsing", depth))
		seq.AppendMatcher(Matcher{State: Failed, Pos: p.cursor.Pos()})
		return seq
	}

	for {
		sym := seq.Current()
		if sym == nil {
			return seq
		}
		term, isTerminal := sym.(*Terminal)
		if !isTerminal {
			break
		}
		m := term.Match(p.cursor)
		seq.AppendMatcher(m)
		if m.State == EndOfInput && p.collectCompletions {
			p.eoiFrontier = append(p.eoiFrontier, seq.Copy())
		}
		if m.State != Successful {
			return seq
		}
		p.cursor.Fwd(len(m.Parsed))
	}

	lhs := seq.Current().Name()
	productions := p.bnf.ProductionsFor(lhs)

	var best *SymbolSequence
	bestCursorPos := p.cursor.Pos()
	startPos := p.cursor.Pos()

	for _, production := range productions {
		p.cursor.SetPos(startPos)
		child := seq.Replace(production)
		result := p.parseRecursive(child, depth+1)
		if result.FinalState() == Successful {
			return result
		}
		if best == nil || result.FinalState().IsBetterThan(best.FinalState()) {
			best = result
			bestCursorPos = p.cursor.Pos()
		}
	}

	if best == nil {
		// A non-terminal without productions: nothing can derive it.
		seq.AppendMatcher(Matcher{State: Failed, Pos: startPos})
		p.cursor.SetPos(startPos)
		return seq
	}
	p.cursor.SetPos(bestCursorPos)
	return best
}

// createParsedTree reconstructs a ParsedNode tree from the chosen leaf
// sequence. It returns the root node and the frontier node (the node
// for the last matcher recorded on the leaf sequence), used for failure
// reporting and for locating the autocompleting ancestor. After the
// fold, extension listeners run top-down over the whole tree, then
// onSuccessfulParsed listeners fire bottom-up.
func (p *RDParser) createParsedTree(leaf *SymbolSequence) (root, frontier *ParsedNode) {
	for _, fn := range p.parseStartListeners {
		fn()
	}

	nodes := make([]*ParsedNode, len(leaf.sequence))
	for i, sym := range leaf.sequence {
		var m Matcher
		if i < len(leaf.matchers) {
			m = leaf.matchers[i]
		} else {
			m = NotParsedMatcher()
		}
		nodes[i] = NewParsedNode(sym, m)
	}
	if len(leaf.matchers) > 0 && len(leaf.matchers) <= len(nodes) {
		frontier = nodes[len(leaf.matchers)-1]
	} else if len(nodes) > 0 {
		frontier = nodes[0]
	}

	seq := leaf
	row := nodes
	for seq.parent != nil {
		span := row[seq.childStart:seq.childEnd]
		parentNode := NewParsedNode(seq.production.LHS, matcherFromChildSequence(span))
		parentNode.Production = seq.production
		parentNode.SetRule(seq.production.rule)
		parentNode.AddChildren(span...)

		newRow := make([]*ParsedNode, len(seq.parent.sequence))
		copy(newRow, row[:seq.childStart])
		newRow[seq.childStart] = parentNode
		copy(newRow[seq.childStart+1:], row[seq.childEnd:])

		row = newRow
		seq = seq.parent
	}
	root = row[0]

	notifyExtensionListeners(root)
	p.notifyListeners(root)
	return root, frontier
}

// notifyExtensionListeners fires each production's extension listener,
// top-down. Parents are extended before their children on purpose:
// Star's listener reads the parent's own name and nth-entry index,
// which an ancestor's listener must have assigned first.
func notifyExtensionListeners(n *ParsedNode) {
	if n.Production != nil && n.Production.Extend != nil {
		n.Production.Extend(n)
	}
	for _, c := range n.Children() {
		notifyExtensionListeners(c)
	}
}

// matcherFromChildSequence computes a parent's combined matcher from its
// children: pos is the first attempted child's pos (0 if none was
// attempted); state tracks the children in order, degrading to each
// attempted child's state and stopping once EndOfInput or Failed has
// been observed; parsed concatenates the children's parsed text up to
// that point.
func matcherFromChildSequence(children []*ParsedNode) Matcher {
	pos := -1
	state := NotParsed
	parsed := ""
	for _, c := range children {
		if state == EndOfInput || state == Failed {
			break
		}
		childState := c.Matcher.State
		if childState != NotParsed {
			if pos == -1 {
				pos = c.Matcher.Pos
			}
			if state == NotParsed || !childState.IsBetterThan(state) {
				state = childState
			}
		}
		parsed += c.Matcher.Parsed
	}
	if pos == -1 {
		pos = 0
	}
	return Matcher{State: state, Pos: pos, Parsed: parsed}
}

// buildAst rebuilds each node's children, post-order: children are
// detached and the production's AST builder decides which to re-attach
// (the default re-attaches all of them; Star/Plus/Join flatten).
func (p *RDParser) buildAst(node *ParsedNode) {
	for _, c := range node.Children() {
		p.buildAst(c)
	}
	children := node.Children()
	node.RemoveAllChildren()
	if node.Production == nil {
		return
	}
	if node.Production.BuildAST != nil {
		node.Production.BuildAST(node, children)
		return
	}
	node.AddChildren(children...)
}

// notifyListeners calls each rule's onSuccessfulParsed listener
// bottom-up for nodes whose state is SUCCESSFUL or END_OF_INPUT,
// skipping nodes whose parent shares the same rule.
func (p *RDParser) notifyListeners(node *ParsedNode) {
	for _, c := range node.Children() {
		p.notifyListeners(c)
	}
	if node.State() != Successful && node.State() != EndOfInput {
		return
	}
	if node.rule == nil || node.rule.onSuccessfulParsed == nil || node.ParentHasSameRule() {
		return
	}
	node.rule.onSuccessfulParsed(node)
}

// collectAutocompletions reconstructs each end-of-input frontier's tree,
// finds its autocompleting ancestor, and composes the deduplicated
// completion list. A Veto halts the collection; completions already
// gathered are kept (the suppression is deliberately not retroactive,
// matching the engine this was modeled on). A panicking user
// autocompleter likewise halts collection; the partial list is returned
// alongside the error.
func (p *RDParser) collectAutocompletions() (out []Autocompletion, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &AutocompleterError{Err: fmt.Errorf("autocompleter panicked: %v", r)}
		}
	}()

	var parents []*ParsedNode
	for _, frontierSeq := range p.eoiFrontier {
		_, frontier := p.createParsedTree(frontierSeq)
		if parent := firstAutocompletingAncestor(frontier); parent != nil {
			parents = append(parents, parent)
		}
	}

	seen := hashset.New()
	rendered := hashset.New()
	for _, parent := range parents {
		key := autocompletingParentKey(parent)
		if seen.Contains(key) {
			continue
		}
		seen.Add(key)

		already := p.cursor.Substring(parent.Matcher.Pos)
		for _, completion := range parent.GetAutocompletion(false) {
			if completion.Kind == KindVeto {
				tracer().Debugf("autocompletion vetoed at %q", parent.Name())
				return out, nil
			}
			text := completion.GetCompletion()
			if text == "" || rendered.Contains(text) {
				continue
			}
			rendered.Add(text)
			completion.AlreadyEnteredText = already
			out = append(out, completion)
		}
	}
	return out, nil
}

// firstAutocompletingAncestor returns the autocompleting node closest to
// the root on the path from the root down to node (inclusive of both
// ends), not the one closest to node. A node several levels up whose
// rule provides an autocompleter (e.g. a built-in type's wrapping rule)
// takes priority over a bare terminal further down that would always
// trivially autocomplete to itself.
func firstAutocompletingAncestor(node *ParsedNode) *ParsedNode {
	var pathToRoot []*ParsedNode
	for n := node; n != nil; n = n.Parent() {
		pathToRoot = append(pathToRoot, n)
	}
	for i := len(pathToRoot) - 1; i >= 0; i-- {
		if pathToRoot[i].DoesAutocomplete() {
			return pathToRoot[i]
		}
	}
	return nil
}

// autocompletingParentKey derives a dedup key for an autocompleting
// parent from its production (lhs + concatenated rhs names), or, absent
// a production, its symbol name.
func autocompletingParentKey(node *ParsedNode) string {
	if node.Production == nil {
		return "sym:" + node.Symbol.Name()
	}
	type keyShape struct {
		LHS string
		RHS []string
	}
	k := keyShape{LHS: node.Production.LHS.Name()}
	for _, s := range node.Production.RHS {
		k.RHS = append(k.RHS, s.Name())
	}
	hash, err := structhash.Hash(k, 1)
	if err != nil {
		return k.LHS
	}
	return hash
}
