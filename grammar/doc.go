/*
Package grammar implements the core of a recursive-descent parsing engine
for EBNF-defined grammars: symbols and terminals, BNF productions, the
parsed-node tree, the recursive-descent parser itself, and the
autocompletion engine built on top of its end-of-input frontier.

Package structure (sibling packages, not sub-packages — tightly coupled
concerns stay in one place rather than being split across
import-cycle-prone packages):

■ grammar: symbols, terminals, matchers, BNF productions, EBNF rule
  constructors (Sequence/Or/Optional/Star/Plus/Repeat/Join), the parsed
  tree, the recursive-descent parser and the autocompletion engine.
■ grammar/cursor: the linear character cursor terminals match against.
■ meta: the built-in meta-grammar that compiles user pattern strings
  ("{name:type:quantifier}") into grammar rules.
■ builtin: the built-in types (int, float, color, date, path, …).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The Lexframe Authors

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexframe.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("lexframe.grammar")
}
