package grammar

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLiteralSequenceParses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Sequence("greeting", Literal("hello"))
	bnf := b.Compile(b.GetSymbol("greeting"))

	p := NewRDParser(bnf, "hello")
	root, _, err := p.Parse(false)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if root.State() != Successful {
		t.Fatalf("expected Successful, got %v", root.State())
	}
	if root.GetParsedString() != "hello" {
		t.Errorf("expected parsed text %q, got %q", "hello", root.GetParsedString())
	}
}

func TestOrPicksFirstSuccessfulAlternative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Or("color", Literal("blue"), Literal("green"))
	bnf := b.Compile(b.GetSymbol("color"))

	p := NewRDParser(bnf, "green")
	root, _, err := p.Parse(false)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if root.GetParsedString() != "green" {
		t.Errorf("expected %q, got %q", "green", root.GetParsedString())
	}
}

func TestPlusRequiresAtLeastOne(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Plus("digits", Digit)
	bnf := b.Compile(b.GetSymbol("digits"))

	p := NewRDParser(bnf, "")
	root, _, err := p.Parse(false)
	if err == nil && root.State() == Successful {
		t.Fatalf("expected Plus to reject empty input")
	}
}

func TestStarAcceptsEmptyAndFlattens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	star := b.Star("digits", Digit)
	star.SetParsedChildNames("d")
	bnf := b.Compile(star.Symbol())

	p := NewRDParser(bnf, "")
	root, _, err := p.Parse(false)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if root.State() != Successful {
		t.Fatalf("expected Successful for empty Star, got %v", root.State())
	}
	if n := root.Child(0); n.NumChildren() != 0 {
		t.Errorf("expected 0 children, got %d", n.NumChildren())
	}

	p = NewRDParser(bnf, "123")
	root, _, err = p.Parse(false)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	digits := root.Child(0)
	if digits.NumChildren() != 3 {
		t.Fatalf("expected a flat list of 3 entries, got %d", digits.NumChildren())
	}
	for i, c := range digits.Children() {
		if c.Name() != "d" {
			t.Errorf("entry %d: expected name %q, got %q", i, "d", c.Name())
		}
		if c.NthEntryInParent() != i {
			t.Errorf("entry %d: expected nth %d, got %d", i, i, c.NthEntryInParent())
		}
	}
}

func TestRepeatCardinality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Repeat("twoOrThreeDigits", Digit, 2, 3)
	bnf := b.Compile(b.GetSymbol("twoOrThreeDigits"))

	for _, tc := range []struct {
		input  string
		wantOK bool
	}{
		{"1", false},
		{"12", true},
		{"123", true},
		// a fourth digit stays unconsumed, and the stop sentinel turns
		// unconsumed input into a failure
		{"1234", false},
	} {
		p := NewRDParser(bnf, tc.input)
		root, _, _ := p.Parse(false)
		if ok := root.State() == Successful; ok != tc.wantOK {
			t.Errorf("input %q: got ok=%v, want %v", tc.input, ok, tc.wantOK)
		}
	}
}

func TestRepeatPrefersLongestFit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	rep := b.Repeat("digits", Digit, 1, 3)
	seq := b.Sequence("pair", rep.Symbol(), Letter)
	bnf := b.Compile(seq.Symbol())

	p := NewRDParser(bnf, "123a")
	root, _, err := p.Parse(false)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	digits := root.Child(0).Child(0)
	if digits.NumChildren() != 3 {
		t.Errorf("expected the 3-digit alternative to win, got %d children", digits.NumChildren())
	}
}

func TestJoinDelimitedList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Join("csv", Digit, JoinOptions{Delimiter: Literal(","), Cardinality: CardinalityPlus})
	bnf := b.Compile(b.GetSymbol("csv"))

	p := NewRDParser(bnf, "1,2,3")
	root, _, err := p.Parse(false)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	csv := root.Child(0)
	if csv.NumChildren() != 3 {
		t.Errorf("expected 3 entries, got %d", csv.NumChildren())
	}
	if got := csv.GetParsedString(); got != "1,2,3" {
		t.Errorf("expected parsed %q, got %q", "1,2,3", got)
	}
}

func TestJoinKeepsDelimitersWhenAsked(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Join("csv", Digit, JoinOptions{
		Delimiter:      Literal(","),
		Cardinality:    CardinalityPlus,
		KeepDelimiters: true,
	})
	bnf := b.Compile(b.GetSymbol("csv"))

	p := NewRDParser(bnf, "1,2")
	root, _, err := p.Parse(false)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	csv := root.Child(0)
	if csv.NumChildren() != 3 {
		t.Fatalf("expected entry,delimiter,entry, got %d children", csv.NumChildren())
	}
	if csv.Child(1).Name() != "delimiter" {
		t.Errorf("expected middle child named %q, got %q", "delimiter", csv.Child(1).Name())
	}
}

func TestJoinWithBrackets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	r := b.Join("point", Digit, JoinOptions{
		Open:        Literal("("),
		Close:       Literal(")"),
		Delimiter:   Literal(","),
		Cardinality: FixedCardinality(2),
	})
	r.SetParsedChildNames("x", "y")
	bnf := b.Compile(r.Symbol())

	p := NewRDParser(bnf, "(1,2)")
	root, _, err := p.Parse(false)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	point := root.Child(0)
	if point.NumChildren() != 2 {
		t.Fatalf("expected brackets and delimiter dropped, got %d children", point.NumChildren())
	}
	if point.Child(0).Name() != "x" || point.Child(1).Name() != "y" {
		t.Errorf("expected entries named x and y, got %q and %q", point.Child(0).Name(), point.Child(1).Name())
	}
}

func TestTrailingInputFailsTheParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Sequence("greeting", Literal("hi"))
	bnf := b.Compile(b.GetSymbol("greeting"))

	p := NewRDParser(bnf, "hi there")
	root, _, err := p.Parse(false)
	var pf *ParseFailure
	if !errors.As(err, &pf) {
		t.Fatalf("expected a ParseFailure for trailing input, got %v", err)
	}
	if root.State() != Failed {
		t.Errorf("expected Failed root, got %v", root.State())
	}
}

func TestEndOfInputPropagatesToTheRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Sequence("pair", Digit, Letter)
	bnf := b.Compile(b.GetSymbol("pair"))

	p := NewRDParser(bnf, "1")
	root, _, err := p.Parse(false)
	if err != nil {
		t.Fatalf("EndOfInput is not a failure, got %v", err)
	}
	if root.State() != EndOfInput {
		t.Errorf("expected EndOfInput root, got %v", root.State())
	}
}

func TestMatcherPositionMonotone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Sequence("pair", Digit, Letter)
	bnf := b.Compile(b.GetSymbol("pair"))

	p := NewRDParser(bnf, "1a")
	root, _, err := p.Parse(false)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	prev := -1
	var walk func(n *ParsedNode)
	walk = func(n *ParsedNode) {
		if n.State() == NotParsed {
			return
		}
		if len(n.Children()) == 0 {
			if n.Matcher.Pos < prev {
				t.Errorf("matcher position not monotone: %d after %d", n.Matcher.Pos, prev)
			}
			prev = n.Matcher.Pos
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)
}

func TestSuccessfulParseConsumesEntireInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Sequence("word", b.Plus("", Letter).Symbol())
	bnf := b.Compile(b.GetSymbol("word"))

	p := NewRDParser(bnf, "abc")
	root, _, err := p.Parse(false)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if root.State() != Successful {
		t.Fatalf("expected Successful, got %v", root.State())
	}
	if got := root.GetParsedString(); got != "abc" {
		t.Errorf("expected consumed text %q, got %q", "abc", got)
	}
}

func TestEvaluatorDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	star := b.Star("digits", Digit)
	bnf := b.Compile(star.Symbol())

	p := NewRDParser(bnf, "12")
	root, _, err := p.Parse(false)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	v, err := root.Evaluate()
	if err != nil {
		t.Fatalf("unexpected evaluation error: %v", err)
	}
	values, ok := v.([]interface{})
	if !ok || len(values) != 2 {
		t.Fatalf("expected ALL_CHILDREN list of 2, got %#v", v)
	}
	if values[0] != "1" || values[1] != "2" {
		t.Errorf("expected leaf parsed strings, got %#v", values)
	}
}

func TestOnSuccessfulParseSkipsRecursiveGenerations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	star := b.Star("digits", Digit)
	var fired int
	star.OnSuccessfulParse(func(node *ParsedNode) {
		fired++
	})
	bnf := b.Compile(star.Symbol())

	p := NewRDParser(bnf, "123")
	if _, _, err := p.Parse(false); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if fired != 1 {
		t.Errorf("expected a single notification for the whole star expansion, got %d", fired)
	}
}

func TestParseTwiceYieldsEqualText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.grammar")
	defer teardown()
	b := NewBuilder()
	b.Sequence("greeting", Literal("hi"))
	bnf := b.Compile(b.GetSymbol("greeting"))

	p1 := NewRDParser(bnf, "hi")
	root1, _, _ := p1.Parse(false)
	p2 := NewRDParser(bnf, "hi")
	root2, _, _ := p2.Parse(false)

	if root1.GetParsedString() != root2.GetParsedString() {
		t.Errorf("repeated parse of identical input produced different text: %q vs %q",
			root1.GetParsedString(), root2.GetParsedString())
	}
}
