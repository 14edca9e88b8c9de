/*
Package cursor implements a minimal linear character cursor over an input
string.

It has no buffering and performs no I/O: it is handed a complete string
up front, and its position is the only thing that changes (advanced on
a match, reset by the parser when it backtracks). This is deliberately the simplest
possible "lexer" — terminals in package grammar match directly against a
Cursor rather than against pre-tokenized input.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The Lexframe Authors

*/
package cursor
