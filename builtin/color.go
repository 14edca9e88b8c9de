package builtin

import "github.com/lexframe/lexframe/grammar"

// namedColor is one entry of the fixed color table.
type namedColor struct {
	Name    string
	R, G, B uint8
}

var namedColors = []namedColor{
	{"black", 0, 0, 0},
	{"white", 255, 255, 255},
	{"red", 255, 0, 0},
	{"orange", 255, 128, 0},
	{"yellow", 255, 255, 0},
	{"lawn green", 128, 255, 0},
	{"green", 0, 255, 0},
	{"spring green", 0, 255, 180},
	{"cyan", 0, 255, 255},
	{"azure", 0, 128, 255},
	{"blue", 0, 0, 255},
	{"violet", 128, 0, 255},
	{"magenta", 255, 0, 255},
	{"pink", 255, 0, 128},
	{"gray", 128, 128, 128},
}

// RGB2ARGB packs r, g and b into a 0xFF_RR_GG_BB 32-bit ARGB value.
func RGB2ARGB(r, g, b int) uint32 {
	return 0xFF000000 | (uint32(r&0xff) << 16) | (uint32(g&0xff) << 8) | uint32(b&0xff)
}

// registerColor builds "color": a custom "(r, g, b)" tuple alternative,
// listed first so the parser tries it before the named table, followed
// by the fifteen named colors. Every alternative evaluates to an ARGB
// integer.
func registerColor(b *grammar.Builder, intRule *grammar.Rule) *grammar.Rule {
	custom := b.Tuple("", intRule.Symbol(), "red", "green", "blue")
	custom.SetEvaluator(func(node *grammar.ParsedNode) (interface{}, error) {
		values, err := node.EvaluateChildren()
		if err != nil {
			return nil, err
		}
		r, _ := values[0].(int64)
		g, _ := values[1].(int64)
		bl, _ := values[2].(int64)
		return RGB2ARGB(int(r), int(g), int(bl)), nil
	})

	alternatives := []grammar.Symbol{custom.Symbol()}
	for _, nc := range namedColors {
		nc := nc
		lit := b.Sequence("", grammar.Literal(nc.Name))
		lit.SetEvaluator(func(*grammar.ParsedNode) (interface{}, error) {
			return RGB2ARGB(int(nc.R), int(nc.G), int(nc.B)), nil
		})
		alternatives = append(alternatives, lit.Symbol())
	}

	return b.Or(ColorName, alternatives...)
}
