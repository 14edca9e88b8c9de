package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func renderedTexts(completions []Autocompletion) []string {
	out := make([]string, len(completions))
	for i, c := range completions {
		out[i] = c.GetCompletion()
	}
	return out
}

func TestLiteralAutocompletesToItsOwnText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Or("color", Literal("blue"), Literal("green"))
	bnf := b.Compile(b.GetSymbol("color"))

	p := NewRDParser(bnf, "")
	_, completions, err := p.Parse(true)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	got := renderedTexts(completions)
	if len(got) != 2 || got[0] != "blue" || got[1] != "green" {
		t.Fatalf("expected [blue green] in declaration order, got %v", got)
	}
}

func TestLiteralCompletionCarriesAlreadyEnteredText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Sequence("greeting", Literal("hello"))
	bnf := b.Compile(b.GetSymbol("greeting"))

	p := NewRDParser(bnf, "hel")
	_, completions, err := p.Parse(true)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(completions) != 1 || completions[0].GetCompletion() != "hello" {
		t.Fatalf("expected [hello], got %v", renderedTexts(completions))
	}
	if completions[0].AlreadyEnteredText != "hel" {
		t.Errorf("expected already-entered %q, got %q", "hel", completions[0].AlreadyEnteredText)
	}
}

func TestCharacterClassAutocompletesToPlaceholder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	digitRule := b.Sequence("digit", Digit)
	bnf := b.Compile(digitRule.Symbol())

	p := NewRDParser(bnf, "")
	_, completions, err := p.Parse(true)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(completions) != 1 || completions[0].GetCompletion() != "${<digit>}" {
		t.Fatalf("expected [\"${<digit>}\"], got %v", renderedTexts(completions))
	}
}

// TestOuterRuleAutocompleterWinsOverInnerBareTerminal checks the
// ancestor walk's direction: a named child rule that attaches its own
// autocompleter must win over the bare terminal several levels beneath
// it, even though that terminal would trivially autocomplete to itself.
func TestOuterRuleAutocompleterWinsOverInnerBareTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	digitRule := b.Sequence("digit", Digit)
	digitRule.SetAutocompleter(DefaultInlineAutocompleter)

	sentence := b.Sequence("sentence", Literal("first digit is "), digitRule.Symbol())
	sentence.SetParsedChildNames("", "first")
	bnf := b.Compile(sentence.Symbol())

	p := NewRDParser(bnf, "first digit is ")
	_, completions, err := p.Parse(true)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(completions) != 1 || completions[0].GetCompletion() != "${first}" {
		t.Fatalf("expected [\"${first}\"], got %v", renderedTexts(completions))
	}
}

func TestNoCompletionsWhenParseSucceedsWithoutEOI(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Sequence("greeting", Literal("hi"))
	bnf := b.Compile(b.GetSymbol("greeting"))

	p := NewRDParser(bnf, "hi")
	_, completions, err := p.Parse(true)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(completions) != 0 {
		t.Errorf("expected no completions for a fully successful parse, got %v", renderedTexts(completions))
	}
}

func TestCompletionsAreUniqueByRenderedText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Or("word", Literal("same"), Literal("same"))
	bnf := b.Compile(b.GetSymbol("word"))

	p := NewRDParser(bnf, "")
	_, completions, err := p.Parse(true)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(completions) != 1 {
		t.Fatalf("expected duplicate literal alternatives to collapse to one completion, got %v",
			renderedTexts(completions))
	}
}

func TestVetoSuppressesLaterCompletionsInSameCall(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	vetoRule := b.Sequence("typed", Literal("x"))
	vetoRule.SetAutocompleter(AutocompleterFunc(func(node *ParsedNode, justCheck bool) []Autocompletion {
		return []Autocompletion{VetoCompletion()}
	}))
	b.Or("either", vetoRule.Symbol(), Literal("y"))
	bnf := b.Compile(b.GetSymbol("either"))

	p := NewRDParser(bnf, "")
	_, completions, err := p.Parse(true)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(completions) != 0 {
		t.Errorf("expected Veto to suppress the rest of the collection pass, got %v", renderedTexts(completions))
	}
}

func TestVetoIsNotRetroactive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	vetoRule := b.Sequence("typed", Literal("x"))
	vetoRule.SetAutocompleter(AutocompleterFunc(func(node *ParsedNode, justCheck bool) []Autocompletion {
		return []Autocompletion{VetoCompletion()}
	}))
	// "y" is tried first, so its completion is collected before the
	// veto is encountered; the veto stops the pass but does not clear
	// what was already gathered.
	b.Or("either", Literal("y"), vetoRule.Symbol())
	bnf := b.Compile(b.GetSymbol("either"))

	p := NewRDParser(bnf, "")
	_, completions, err := p.Parse(true)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	got := renderedTexts(completions)
	if len(got) != 1 || got[0] != "y" {
		t.Errorf("expected the pre-veto completion to survive, got %v", got)
	}
}

// TestEmptyNonNilResultAbsorbsTheFrontier covers the distinction between
// "does not autocomplete" (nil) and "autocompletes to nothing" (empty):
// an ancestor returning an empty non-nil list claims the frontier and
// keeps the bare terminal below it from proposing its own placeholder.
func TestEmptyNonNilResultAbsorbsTheFrontier(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	ws := b.Plus("ws", Whitespace)
	ws.SetAutocompleter(IfNothingYetEnteredAutocompleter(" "))
	seq := b.Sequence("padded", Literal("go"), ws.Symbol(), Digit)
	bnf := b.Compile(seq.Symbol())

	p := NewRDParser(bnf, "go ")
	_, completions, err := p.Parse(true)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	// The whitespace frontier is absorbed (ws already has text), so
	// only the digit's placeholder remains.
	got := renderedTexts(completions)
	if len(got) != 1 || got[0] != "${<digit>}" {
		t.Errorf("expected the whitespace frontier to contribute nothing, got %v", got)
	}
}

func TestEntireSequenceAutocompleterComposesLiteralsAndParameters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	num := b.Sequence("num", Digit)
	num.SetAutocompleter(DefaultInlineAutocompleter)
	seq := b.Sequence("point", Literal("("), num.Symbol(), Literal(","), num.Symbol(), Literal(")"))
	seq.SetParsedChildNames("", "x", "", "y", "")
	seq.SetAutocompleter(NewEntireSequenceAutocompleter(b))
	bnf := b.Compile(seq.Symbol())

	p := NewRDParser(bnf, "")
	_, completions, err := p.Parse(true)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(completions) != 1 {
		t.Fatalf("expected exactly one EntireSequence completion, got %v", renderedTexts(completions))
	}
	if got := completions[0].GetCompletion(); got != "(${x},${y})" {
		t.Errorf("expected %q, got %q", "(${x},${y})", got)
	}
}

func TestEntireSequenceStepsAsideOncePastTheFirstParameter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	num := b.Sequence("num", Digit)
	num.SetAutocompleter(DefaultInlineAutocompleter)
	seq := b.Sequence("point", Literal("("), num.Symbol(), Literal(","), num.Symbol(), Literal(")"))
	seq.SetParsedChildNames("", "x", "", "y", "")
	seq.SetAutocompleter(NewEntireSequenceAutocompleter(b))
	bnf := b.Compile(seq.Symbol())

	// "(5," is past the "${x}" marker; the sequence completion steps
	// aside and the next child's own completion surfaces instead.
	p := NewRDParser(bnf, "(5,")
	_, completions, err := p.Parse(true)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	got := renderedTexts(completions)
	if len(got) != 1 || got[0] != "${y}" {
		t.Errorf("expected [\"${y}\"], got %v", got)
	}
}
