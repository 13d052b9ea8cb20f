// File: doc.go
// Title: Source Printer Package Documentation
// Description: Package documentation for the canonical source printer.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-24
// Modified: 2025-03-24
//
// Change History:
// - 2025-03-24 v0.1.0: Initial documentation

/*
Package printer renders a Smython syntax tree back into source text.

The output is canonical: four space indentation, one statement per line,
double-quoted strings and only the parentheses operator precedence needs.
Parsing the printed source again yields a tree equal to the original
apart from positions.

	suite, _ := parser.Parse("x = (a + b) * (c)\n")
	src, _ := printer.Source(suite) // "x = (a + b) * c\n"
*/
package printer
