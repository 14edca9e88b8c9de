package grammar

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Dump pretty-prints the grammar's productions for debugging: one
// colorized "LHS -> RHS…" line per production, in declaration order. It
// is never consulted by any parsing or completion path — strictly a
// developer aid.
func (b *BNF) Dump() string {
	var s string
	lhsStyle := pterm.NewStyle(pterm.FgCyan)
	for _, p := range b.AllProductions() {
		rhs := ""
		if len(p.RHS) == 0 {
			rhs = " " + Epsilon.Name()
		}
		for _, sym := range p.RHS {
			rhs += " " + sym.Name()
		}
		s += fmt.Sprintf("%s ->%s\n", lhsStyle.Sprint(p.LHS.Name()), rhs)
	}
	return s
}

// Dump renders the parse tree below n to the terminal as an indented
// tree, one node per line with its state and consumed text. Debug aid
// only.
func (n *ParsedNode) Dump() {
	ll := n.leveledList(pterm.LeveledList{}, 0)
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func (n *ParsedNode) leveledList(ll pterm.LeveledList, level int) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  fmt.Sprintf("%s [%v] %q", n.Name(), n.State(), n.Matcher.Parsed),
	})
	for _, c := range n.Children() {
		ll = c.leveledList(ll, level+1)
	}
	return ll
}
