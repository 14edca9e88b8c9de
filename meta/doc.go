/*
Package meta implements the pattern compiler: it turns a user-facing
sentence/type pattern such as

	Define channel {name:[A-Za-z0-9]:+}.

into an ordered list of named target-grammar children that package
grammar's Sequence constructor assembles into a rule.

The pattern language is itself just another grammar — the meta-grammar —
built from the same EBNF rule constructors and parsed by the same
recursive-descent driver as user input. A Compiler owns two Builders:
the meta-grammar (constructed eagerly, with its own copy of the
built-in types) and the caller's target grammar. Patterns are parsed
against the former; evaluating the resulting tree resolves type
references against the latter and synthesizes quantifier, list and
tuple wrapper rules directly into it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The Lexframe Authors

*/
package meta

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("lexframe.meta")
}
