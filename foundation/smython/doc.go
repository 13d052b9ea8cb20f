// File: doc.go
// Title: Smython Package Documentation
// Description: Package documentation for the Smython front end facade.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-25
// Modified: 2025-03-25
//
// Change History:
// - 2025-03-25 v0.1.0: Initial documentation

/*
Package smython is the entry point to the Smython front end.

Smython is a Python-like, indentation structured language. The packages
below this one implement its pipeline:

	token    token kinds, keyword table, positions
	lexer    source text to tokens, including INDENT and DEDENT
	parser   tokens to syntax tree, reporting a single SyntaxError kind
	ast      the node catalogue, Dump, Walk and Validate
	printer  syntax tree back to canonical source

Most callers only need the package-level Parse:

	suite, err := smython.Parse("def f(x):\n    return x + 1\n")
	if se, ok := parser.AsSyntaxError(err); ok {
		fmt.Println(se.Pos.Line, se.Pos.Column, se.Msg)
	}

An Engine bundles a configured parser with logging and adds file access,
token streams, dumps and canonical formatting.
*/
package smython
