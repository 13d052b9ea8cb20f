// File: walk.go
// Title: AST Traversal
// Description: Depth-first traversal over every node of a tree in source
//              order, in the Visitor and Inspect styles.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-16
// Modified: 2025-03-16
//
// Change History:
// - 2025-03-16 v0.1.0: Initial traversal

package ast

import "fmt"

// Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children of
// node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses a tree in depth-first order
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Suite:
		for _, s := range n.Stmts {
			Walk(v, s)
		}
	case *ExprList:
		walkExprs(v, n.Exprs)

	// Expressions
	case *Lit, *Var:
		// leaves
	case *Attribute:
		Walk(v, n.X)
	case *Call:
		Walk(v, n.Func)
		Walk(v, n.Args)
	case *GetItem:
		Walk(v, n.X)
		Walk(v, n.Index)
	case *Slice:
		walkOpt(v, n.Start, n.Stop, n.Step)
	case *Unary:
		Walk(v, n.X)
	case *Binary:
		Walk(v, n.X)
		Walk(v, n.Y)
	case *BoolOp:
		Walk(v, n.X)
		Walk(v, n.Y)
	case *Comparison:
		walkExprs(v, n.Operands)
	case *Lambda:
		Walk(v, n.Params)
		Walk(v, n.Body)
	case *IfElse:
		Walk(v, n.Then)
		Walk(v, n.Cond)
		Walk(v, n.Else)
	case *ListConstr:
		walkExprs(v, n.Elts)
	case *TupleConstr:
		walkExprs(v, n.Elts)
	case *SetConstr:
		walkExprs(v, n.Elts)
	case *KeyValue:
		Walk(v, n.Key)
		Walk(v, n.Value)
	case *DictConstr:
		for _, kv := range n.Entries {
			Walk(v, kv)
		}
	case *CompFor:
		Walk(v, n.Targets)
		Walk(v, n.Source)
	case *CompIf:
		Walk(v, n.Cond)
	case *ListCompr:
		Walk(v, n.Elt)
		walkClauses(v, n.Clauses)
	case *SetCompr:
		Walk(v, n.Elt)
		walkClauses(v, n.Clauses)
	case *GeneratorCompr:
		Walk(v, n.Elt)
		walkClauses(v, n.Clauses)
	case *DictCompr:
		Walk(v, n.Key)
		Walk(v, n.Value)
		walkClauses(v, n.Clauses)
	case *YieldExpr:
		Walk(v, n.Value)
	case *Star:
		Walk(v, n.X)

	// Parameters and arguments
	case *Param:
		walkOpt(v, n.Annotation, n.Default)
	case *Params:
		for _, p := range n.List {
			Walk(v, p)
		}
		walkOpt(v, n.Returns)
	case *Keyword:
		Walk(v, n.Value)
	case *Arglist:
		walkExprs(v, n.Positional)
		for _, kw := range n.Keywords {
			Walk(v, kw)
		}
		walkOpt(v, n.VarArgs, n.KwArgs)

	// Statements
	case *Pass, *Break, *Continue, *Import, *From, *Global, *Nonlocal:
		// leaves
	case *Del:
		Walk(v, n.Targets)
	case *Return:
		Walk(v, n.Value)
	case *Raise:
		walkOpt(v, n.Exc, n.Cause)
	case *YieldStmt:
		Walk(v, n.Value)
	case *Assert:
		walkOpt(v, n.Test, n.Msg)
	case *Assign:
		for _, t := range n.Targets {
			Walk(v, t)
		}
		Walk(v, n.Value)
	case *AugAssign:
		Walk(v, n.Target)
		Walk(v, n.Value)
	case *ExprStmt:
		Walk(v, n.Value)
	case *If:
		Walk(v, n.Cond)
		Walk(v, n.Body)
		walkSuite(v, n.Else)
	case *While:
		Walk(v, n.Cond)
		Walk(v, n.Body)
		walkSuite(v, n.Else)
	case *For:
		Walk(v, n.Targets)
		Walk(v, n.Iter)
		Walk(v, n.Body)
		walkSuite(v, n.Else)
	case *Try:
		Walk(v, n.Body)
		for _, h := range n.Handlers {
			Walk(v, h)
		}
		walkSuite(v, n.Else)
		walkSuite(v, n.Finally)
	case *Except:
		walkOpt(v, n.Type)
		Walk(v, n.Body)
	case *With:
		Walk(v, n.Context)
		walkOpt(v, n.Target)
		Walk(v, n.Body)
	case *Decorator:
		if n.Args != nil {
			Walk(v, n.Args)
		}
	case *Def:
		for _, d := range n.Decorators {
			Walk(v, d)
		}
		Walk(v, n.Params)
		Walk(v, n.Body)
	case *Class:
		for _, d := range n.Decorators {
			Walk(v, d)
		}
		if n.Bases != nil {
			Walk(v, n.Bases)
		}
		Walk(v, n.Body)

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

// walkSuite walks an optional suite
func walkSuite(v Visitor, s *Suite) {
	if s != nil {
		Walk(v, s)
	}
}

func walkExprs(v Visitor, list []Expr) {
	for _, e := range list {
		Walk(v, e)
	}
}

func walkClauses(v Visitor, list []CompClause) {
	for _, c := range list {
		Walk(v, c)
	}
}

// walkOpt walks the non-nil expressions of list
func walkOpt(v Visitor, list ...Expr) {
	for _, e := range list {
		if e != nil {
			Walk(v, e)
		}
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses a tree in depth-first order, calling f(node) for each
// node; when f returns true the children of node are visited, followed by
// a call of f(nil)
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Count returns the number of nodes per node type name, e.g. "Var"
func Count(node Node) map[string]int {
	counts := make(map[string]int)
	Inspect(node, func(n Node) bool {
		if n != nil {
			counts[fmt.Sprintf("%T", n)[len("*ast."):]]++
		}
		return true
	})
	return counts
}
