/*
Package builtin registers the built-in types against a grammar.Builder:
sign, int, float, whitespace, integer-range, color, time, month,
weekday, date, date-time and path, plus the bare single-character
digit/letter types. Each is ported from nls/ebnf/ebnf.py's EBNF.make*
methods to this module's EBNF constructors (grammar.Builder.Sequence/
Or/Optional/Star/Plus/Join) and Go evaluator/autocompleter
conventions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The Lexframe Authors

*/
package builtin

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'lexframe.builtin'.
func tracer() tracing.Trace {
	return tracing.Select("lexframe.builtin")
}
