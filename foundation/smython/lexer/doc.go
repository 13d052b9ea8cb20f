// File: doc.go
// Title: Smython Lexer Package Documentation
// Description: Package documentation for the indentation-aware lexer.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-14
// Modified: 2025-03-14
//
// Change History:
// - 2025-03-14 v0.1.0: Initial documentation

/*
Package lexer turns Smython source text into tokens.

Layout is made explicit: the lexer keeps a stack of indentation widths and
emits INDENT when a logical line is indented deeper than the top of the stack
and one DEDENT per popped width when it is indented less. A dedent to a width
that was never pushed is an error. Tabs advance to the next multiple of the
tab size (8 unless configured).

Line breaks are significant only outside brackets. Inside (), [] and {} and
after a backslash continuation they are skipped, as are blank lines and
comment-only lines. The stream always ends with NEWLINE (when the last line
had tokens), the pending DEDENTs and a single EOF.

Tokens are produced on demand:

	l := lexer.New(src)
	for {
	    tok, err := l.Next()
	    if err != nil { ... }
	    if tok.Kind == token.EOF { break }
	}

Tokenize drains a lexer into a slice for tooling that wants the whole stream.
*/
package lexer
