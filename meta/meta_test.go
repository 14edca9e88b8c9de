package meta

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/lexframe/lexframe/builtin"
	"github.com/lexframe/lexframe/grammar"
)

func newTargetAndCompiler() (*grammar.Builder, *Compiler) {
	target := grammar.NewBuilder()
	builtin.Register(target, nil)
	return target, NewCompiler(target)
}

func TestLiteralRunsSpanInnerWhitespace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.meta")
	defer teardown()
	_, c := newTargetAndCompiler()

	children, err := c.Compile("Define the output path {p:path}.")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if len(children) != 4 {
		t.Fatalf("expected [literal ws+ path literal], got %d children", len(children))
	}
	if children[0].Name != "Define the output path" {
		t.Errorf("expected the leading tokens to fuse into one literal, got %q", children[0].Name)
	}
	if children[1].Name != "ws+" {
		t.Errorf("expected a whitespace joiner, got %q", children[1].Name)
	}
	if children[2].Name != "p" {
		t.Errorf("expected the variable child named p, got %q", children[2].Name)
	}
	if children[2].Symbol.Name() != builtin.PathName {
		t.Errorf("expected the variable to resolve to the path type, got %q", children[2].Symbol.Name())
	}
	if children[3].Name != "." {
		t.Errorf("expected the trailing dot literal, got %q", children[3].Name)
	}
}

func TestAdjacentTokensGetNoWhitespaceJoiner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.meta")
	defer teardown()
	_, c := newTargetAndCompiler()

	children, err := c.Compile("{d:digit:+}.")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("expected [quantified-digit literal], got %d children", len(children))
	}
	if children[0].Name != "d" {
		t.Errorf("expected the variable named d, got %q", children[0].Name)
	}
	if children[0].Symbol.IsTerminal() {
		t.Errorf("expected a plus wrapper non-terminal, got terminal %q", children[0].Symbol.Name())
	}
}

func TestUntypedVariableMatchesItsOwnName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.meta")
	defer teardown()
	_, c := newTargetAndCompiler()

	children, err := c.Compile("run {mode} now")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if len(children) != 5 {
		t.Fatalf("expected 5 children, got %d", len(children))
	}
	v := children[2]
	if v.Name != "mode" {
		t.Errorf("expected variable named mode, got %q", v.Name)
	}
	term, ok := v.Symbol.(*grammar.Terminal)
	if !ok || !term.IsLiteral || term.Name() != "mode" {
		t.Errorf("expected an untyped variable to become the literal %q, got %v", "mode", v.Symbol)
	}
}

func TestVariableNamesMayContainNonIdentifierCharacters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.meta")
	defer teardown()
	_, c := newTargetAndCompiler()

	children, err := c.Compile("{<led-power>:int}%")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("expected [int-variable literal], got %d children", len(children))
	}
	if children[0].Name != "<led-power>" {
		t.Errorf("expected the angle-bracketed variable name kept verbatim, got %q", children[0].Name)
	}
	if children[0].Symbol.Name() != builtin.IntName {
		t.Errorf("expected the int type, got %q", children[0].Symbol.Name())
	}
}

func TestQuantifiers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.meta")
	defer teardown()

	for _, pattern := range []string{
		"{d:digit:?}",
		"{d:digit:*}",
		"{d:digit:+}",
		"{d:digit:3}",
		"{d:digit:2-4}",
	} {
		_, c := newTargetAndCompiler()
		children, err := c.Compile(pattern)
		if err != nil {
			t.Fatalf("pattern %q: unexpected compile error: %v", pattern, err)
		}
		if len(children) != 1 || children[0].Name != "d" {
			t.Fatalf("pattern %q: expected one child named d, got %v", pattern, children)
		}
		if children[0].Symbol.Name() == builtin.DigitName {
			t.Errorf("pattern %q: expected a quantifier wrapper around digit, got the bare type", pattern)
		}
	}
}

func TestCharacterClassType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.meta")
	defer teardown()
	_, c := newTargetAndCompiler()

	children, err := c.Compile("Define channel {name:[A-Za-z0-9]:+}.")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if len(children) != 4 {
		t.Fatalf("expected 4 children, got %d", len(children))
	}
	if children[2].Name != "name" {
		t.Errorf("expected the channel variable named name, got %q", children[2].Name)
	}
}

func TestListType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.meta")
	defer teardown()
	target, c := newTargetAndCompiler()

	children, err := c.Compile("{xs:list<int>}")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if len(children) != 1 || children[0].Name != "xs" {
		t.Fatalf("expected one child named xs, got %v", children)
	}
	// The list wrapper is synthesized into the target grammar.
	if target.GetSymbol(children[0].Symbol.Name()) == nil {
		t.Errorf("expected the list wrapper registered in the target grammar")
	}
}

func TestTupleType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.meta")
	defer teardown()
	_, c := newTargetAndCompiler()

	children, err := c.Compile("{pt:tuple<int, x, y>}")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if len(children) != 1 || children[0].Name != "pt" {
		t.Fatalf("expected one child named pt, got %v", children)
	}
}

func TestUnknownTypeIsReported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.meta")
	defer teardown()
	_, c := newTargetAndCompiler()

	_, err := c.Compile("{x:nosuchtype}")
	var ute *UnknownTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("expected an UnknownTypeError, got %v", err)
	}
	if ute.Name != "nosuchtype" {
		t.Errorf("expected the offending name reported, got %q", ute.Name)
	}
}

func TestMalformedPatternIsReported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexframe.meta")
	defer teardown()
	_, c := newTargetAndCompiler()

	_, err := c.Compile("broken {unclosed")
	var pse *PatternSyntaxError
	if !errors.As(err, &pse) {
		t.Fatalf("expected a PatternSyntaxError, got %v", err)
	}
}
