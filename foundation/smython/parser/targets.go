// File: targets.go
// Title: Assignment Target Checks
// Description: Legality of the targets of assignment, for loops,
//              comprehensions, del and with statements.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-23
// Modified: 2025-03-23
//
// Change History:
// - 2025-03-23 v0.1.0: Initial implementation

package parser

import (
	"github.com/msto63/smython/foundation/smython/ast"
)

type targetContext int

const (
	assignTarget targetContext = iota // =, for, comprehension for
	delTarget
	withTarget
)

func (c targetContext) verb() string {
	if c == delTarget {
		return "delete"
	}
	return "assign to"
}

// checkTargets checks a bare target list such as the left side of `=`
func checkTargets(list *ast.ExprList, ctx targetContext) error {
	if list.Single {
		return checkTarget(list.Exprs[0], ctx)
	}
	return checkElts(list.Exprs, ctx)
}

// checkElts checks the elements of an unpacking target
func checkElts(elts []ast.Expr, ctx targetContext) error {
	starred := false
	for _, e := range elts {
		star, ok := e.(*ast.Star)
		if !ok {
			if err := checkTarget(e, ctx); err != nil {
				return err
			}
			continue
		}
		if ctx != assignTarget {
			return errorAt(star, "cannot %s starred expression", ctx.verb())
		}
		if starred {
			return errorAt(star, "multiple starred expressions in assignment")
		}
		starred = true
		if err := checkTarget(star.X, ctx); err != nil {
			return err
		}
	}
	return nil
}

// checkTarget checks a single target expression
func checkTarget(e ast.Expr, ctx targetContext) error {
	switch e := e.(type) {
	case *ast.Var, *ast.Attribute, *ast.GetItem:
		return nil
	case *ast.ListConstr:
		return checkElts(e.Elts, ctx)
	case *ast.TupleConstr:
		return checkElts(e.Elts, ctx)
	case *ast.Star:
		if ctx != assignTarget {
			return errorAt(e, "cannot %s starred expression", ctx.verb())
		}
		return errorAt(e, "starred assignment target must be in a list or tuple")
	}
	return errorAt(e, "cannot %s %s", ctx.verb(), describeExpr(e))
}

// checkValue rejects a lone starred expression outside of a tuple
func checkValue(list *ast.ExprList) error {
	if star, ok := list.Exprs[0].(*ast.Star); ok && list.Single {
		return errorAt(star, "can't use starred expression here")
	}
	return nil
}

// augTarget reports whether e may be the target of an augmented assignment
func augTarget(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Var, *ast.Attribute, *ast.GetItem:
		return true
	}
	return false
}

func describeExpr(e ast.Expr) string {
	switch e.(type) {
	case *ast.Lit:
		return "literal"
	case *ast.Call:
		return "function call"
	case *ast.Unary, *ast.Binary, *ast.BoolOp:
		return "operator"
	case *ast.Comparison:
		return "comparison"
	case *ast.Lambda:
		return "lambda"
	case *ast.IfElse:
		return "conditional expression"
	case *ast.SetConstr:
		return "set display"
	case *ast.DictConstr:
		return "dict display"
	case *ast.ListCompr:
		return "list comprehension"
	case *ast.SetCompr:
		return "set comprehension"
	case *ast.DictCompr:
		return "dict comprehension"
	case *ast.GeneratorCompr:
		return "generator expression"
	case *ast.YieldExpr:
		return "yield expression"
	case *ast.Slice:
		return "slice"
	}
	return "expression"
}
