/*
Package lexframe is a natural-language scripting engine: callers define
a domain-specific language by declaring sentence/type patterns such as

	p := lexframe.NewParser()
	p.DefineSentence("Define channel {name:[A-Za-z0-9]:+}.", nil, nil)

and the engine parses matching input into an annotated syntax tree,
evaluates it through per-rule evaluators, and enumerates context-
sensitive autocompletions for partial input.

Package structure (sibling packages, not sub-packages):

■ lexframe (this package): Parser, the user-facing entry point tying
  the meta-grammar compiler and built-in types to a target grammar.
■ grammar: symbols, terminals, matchers, BNF productions, EBNF rule
  constructors, the parsed tree, the recursive-descent parser and the
  autocompletion engine.
■ grammar/cursor: the linear character cursor terminals match against.
■ meta: the built-in meta-grammar that compiles user pattern strings
  ("{name:type:quantifier}") into grammar rules.
■ builtin: the built-in types (int, float, color, date, path, …).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The Lexframe Authors

*/
package lexframe

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'lexframe'.
func tracer() tracing.Trace {
	return tracing.Select("lexframe")
}
