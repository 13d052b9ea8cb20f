// File: doc.go
// Title: Smython Parser Package Documentation
// Description: Package documentation for the Smython parser.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-17
// Modified: 2025-03-24
//
// Change History:
// - 2025-03-17 v0.1.0: Initial documentation

/*
Package parser turns Smython source text into an ast.Suite.

Parsing is fail-fast: the first malformed construct aborts the parse and
the result is a single error. That error always carries a *SyntaxError
with the position of the offending token and is marked with ErrSyntax:

	suite, err := parser.Parse(src)
	if errors.Is(err, parser.ErrSyntax) {
		se, _ := parser.AsSyntaxError(err)
		fmt.Println(se.Pos, se.Msg)
	}

Lexer failures (unterminated strings, unbalanced brackets, inconsistent
dedents) travel the same channel.

Statements are parsed by recursive descent with one method per grammar
production. Binary arithmetic and bitwise operators are parsed by
precedence climbing; boolean operators, comparisons and unary operators
have their own productions. Comparison chains such as a < b < c become
one ast.Comparison node.

Tokens are pulled from the lexer on demand. The only backtracking is a
one-token checkpoint that separates keyword arguments (name=value) from
positional ones.

A Parser holds configuration only and may be used concurrently.
*/
package parser
