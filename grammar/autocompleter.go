package grammar

import "strings"

// EntireSequenceAutocompleter composes a single completion describing an
// entire sequence rule by probing each of its children's sub-grammars
// independently: for every child, the full grammar is copied, restarted
// at a wrapper sequence around just that child, and run against empty
// input so the child's own completion possibilities surface. A child
// with exactly one possibility contributes its text verbatim; a child
// with several renders as "${childName}".
type EntireSequenceAutocompleter struct {
	builder *Builder
}

// NewEntireSequenceAutocompleter returns an autocompleter that probes
// sub-grammars copied out of builder's compiled BNF.
func NewEntireSequenceAutocompleter(builder *Builder) *EntireSequenceAutocompleter {
	return &EntireSequenceAutocompleter{builder: builder}
}

// Complete implements Autocompleter.
func (e *EntireSequenceAutocompleter) Complete(node *ParsedNode, justCheck bool) []Autocompletion {
	rule := node.GetRule()
	if rule == nil {
		return nil
	}
	alreadyEntered := node.Matcher.Parsed

	seq := Autocompletion{Kind: KindEntireSequence}
	for idx, child := range rule.Children() {
		childName := rule.getNameForChild(idx)
		seq.Sequence = append(seq.Sequence, EntireSequenceChild{
			ChildName:   childName,
			Completions: e.completionsForChild(child, childName),
		})
	}

	if alreadyEntered == "" {
		return []Autocompletion{seq}
	}
	// If the user has typed past the first "${…}" marker of the rendered
	// sequence, the parameter is already being filled in; step aside and
	// let the children's own completions take over.
	marker := strings.Index(seq.GetCompletion(), "${")
	if marker >= 0 && len(alreadyEntered) > marker {
		return nil
	}
	return []Autocompletion{seq}
}

// completionsForChild looks up (or computes and caches) the completion
// list for one child of the sequence, keyed by "childSymbol:childName"
// in the running parser's per-parse cache.
func (e *EntireSequenceAutocompleter) completionsForChild(child Symbol, childName string) []Autocompletion {
	key := child.Name() + ":" + childName
	parser := currentParser
	if parser != nil {
		if cached, ok := parser.entireSequenceCache[key]; ok {
			return cached
		}
	}

	sub := e.builder.BNF().Copy()
	tgt := NewNonTerminal("probe:" + child.Name())
	wrapper := newSequence(tgt, child)
	wrapper.SetParsedChildNames(childName)
	wrapper.createBNF(sub)
	sub.RemoveStartProduction(StartSymbolName)
	sub.AddProduction(NewProduction(NewNonTerminal(StartSymbolName), tgt))

	probe := NewRDParser(sub, "")
	_, completions, _ := probe.Parse(true)

	if parser != nil {
		parser.entireSequenceCache[key] = completions
	}
	return completions
}

// currentParser is set for the duration of RDParser.Parse so that
// EntireSequenceAutocompleter can find the owning parser's per-parse
// probe cache. The engine is explicitly single-threaded per the
// concurrency model: concurrent calls on the same parser are not
// supported, so a package-level pointer suffices.
var currentParser *RDParser

// PathAutocompleter is the external collaborator contract behind the
// built-in path type: given the text entered so far (without quotes),
// it returns candidate continuations. It must be safe to call
// repeatedly and may cache.
type PathAutocompleter interface {
	Complete(enteredSoFar string, justCheck bool) ([]Autocompletion, error)
}
