// File: doc.go
// Title: Smython Abstract Syntax Tree Package Documentation
// Description: Package documentation for the AST model.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-15
// Modified: 2025-03-15
//
// Change History:
// - 2025-03-15 v0.1.0: Initial documentation

/*
Package ast defines the syntax tree produced by the Smython parser.

The node catalogue is closed: statements implement Stmt, expressions
implement Expr, and consumers match node kinds exhaustively with type
switches. Every node records the position where it starts.

Structural distinctions the language depends on are explicit in the tree:
  • ExprList carries bare comma sequences; Single separates `x` from `x,`
  • Comparison holds a whole chain such as a < b <= c as one node
  • elif chains nest as If nodes inside the Else suite
  • Params and Arglist keep the order of plain, *, and ** entries

Dump renders any node in a compact constructor notation used by the
grammar fixtures and the command line tools:

	Suite[Assign((Var(a)), [Lit(1), Lit(2)])]

Walk and Inspect traverse a tree in source order; Validate re-checks the
structural invariants a parsed tree guarantees.
*/
package ast
