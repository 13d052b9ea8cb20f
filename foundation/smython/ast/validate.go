// File: validate.go
// Title: Structural AST Validation
// Description: Checks the structural invariants every parsed tree satisfies:
//              required children present, non-empty bodies, parameter order,
//              comparison arity, comprehension clause order, slice placement
//              and try clause combinations. Collects all violations.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-16
// Modified: 2025-04-14
//
// Change History:
// - 2025-03-16 v0.1.0: Initial validation
// - 2025-03-21 v0.1.0: Keyword-only parameters after the vararg marker
// - 2025-04-14 v0.1.0: Default ordering checked across the * parameter

package ast

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/msto63/smython/foundation/smython/token"
)

// ValidationError describes one violated structural invariant
type ValidationError struct {
	Pos token.Position
	Msg string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Validate checks the structural invariants of a tree and returns all
// violations joined into one error, or nil
func Validate(root Node) error {
	v := &validator{slices: make(map[*Slice]bool)}
	Inspect(root, v.check)
	return errors.Join(v.errs...)
}

type validator struct {
	errs   []error
	slices map[*Slice]bool // slices that appear directly in a subscript
}

func (v *validator) fail(n Node, format string, args ...interface{}) {
	v.errs = append(v.errs, &ValidationError{Pos: n.Position(), Msg: fmt.Sprintf(format, args...)})
}

// body reports whether s is a present, non-empty block
func (v *validator) body(n Node, s *Suite, what string) bool {
	if s.IsEmpty() {
		v.fail(n, "%s has an empty body", what)
		return false
	}
	return true
}

// check validates one node and reports whether its children can be visited
func (v *validator) check(node Node) bool {
	switch n := node.(type) {
	case nil:
		return false

	case *ExprList:
		if len(n.Exprs) == 0 {
			v.fail(n, "empty expression list")
		}
		if n.Single && len(n.Exprs) != 1 {
			v.fail(n, "single-element list holds %d expressions", len(n.Exprs))
		}
		return v.require(n, nonNil(n.Exprs), "expression list with missing element")

	case *Attribute:
		return v.require(n, n.X != nil, "attribute without object")
	case *Call:
		return v.require(n, n.Func != nil && n.Args != nil, "incomplete call")
	case *GetItem:
		if n.X == nil || n.Index == nil {
			v.fail(n, "incomplete subscript")
			return false
		}
		for _, e := range n.Index.Exprs {
			if s, ok := e.(*Slice); ok {
				v.slices[s] = true
			}
		}
	case *Slice:
		if !v.slices[n] {
			v.fail(n, "slice outside of a subscript")
		}
	case *Unary:
		return v.require(n, n.X != nil, "unary operation without operand")
	case *Binary:
		return v.require(n, n.X != nil && n.Y != nil, "binary operation %s without operand", n.Op)
	case *BoolOp:
		return v.require(n, n.X != nil && n.Y != nil, "%s without operand", n.Op)
	case *Comparison:
		if len(n.Ops) == 0 || len(n.Operands) != len(n.Ops)+1 {
			v.fail(n, "comparison with %d operators and %d operands", len(n.Ops), len(n.Operands))
			return false
		}
		return nonNil(n.Operands)
	case *Lambda:
		if n.Params == nil || n.Body == nil {
			v.fail(n, "incomplete lambda")
			return false
		}
		if n.Params.Returns != nil {
			v.fail(n, "lambda with return annotation")
		}
		for _, p := range n.Params.List {
			if p.Annotation != nil {
				v.fail(p, "lambda parameter %s is annotated", p.Name)
			}
		}
	case *IfElse:
		return v.require(n, n.Cond != nil && n.Then != nil && n.Else != nil, "conditional expression without else")
	case *KeyValue:
		return v.require(n, n.Key != nil && n.Value != nil, "incomplete dict entry")
	case *ListCompr:
		v.clauses(n, n.Clauses)
	case *SetCompr:
		v.clauses(n, n.Clauses)
	case *GeneratorCompr:
		v.clauses(n, n.Clauses)
	case *DictCompr:
		v.clauses(n, n.Clauses)
	case *CompFor:
		return v.require(n, n.Targets != nil && n.Source != nil, "incomplete for clause")
	case *CompIf:
		return v.require(n, n.Cond != nil, "if clause without condition")
	case *YieldExpr:
		return v.require(n, n.Value != nil, "yield without value")
	case *Star:
		return v.require(n, n.X != nil, "star without operand")

	case *Params:
		v.params(n)
	case *Param:
		if n.Name == "" {
			v.fail(n, "parameter without name")
		}
	case *Keyword:
		if n.Name == "" || n.Value == nil {
			v.fail(n, "incomplete keyword argument")
			return false
		}

	case *Del:
		return v.require(n, n.Targets != nil, "del without targets")
	case *Return:
		return v.require(n, n.Value != nil, "return without value")
	case *YieldStmt:
		return v.require(n, n.Value != nil, "yield without value")
	case *ExprStmt:
		return v.require(n, n.Value != nil, "expression statement without value")
	case *Raise:
		if n.Exc == nil && n.Cause != nil {
			v.fail(n, "raise with cause but no exception")
		}
	case *Import:
		if len(n.Names) == 0 {
			v.fail(n, "import without names")
		}
		for _, alias := range n.Names {
			if len(alias.Path) == 0 {
				v.fail(n, "import of an empty module path")
			}
		}
	case *From:
		if len(n.Module) == 0 {
			v.fail(n, "from without module")
		}
	case *Global:
		if len(n.Names) == 0 {
			v.fail(n, "global without names")
		}
	case *Nonlocal:
		if len(n.Names) == 0 {
			v.fail(n, "nonlocal without names")
		}
	case *Assert:
		return v.require(n, n.Test != nil, "assert without test")
	case *Assign:
		if len(n.Targets) == 0 || n.Value == nil {
			v.fail(n, "incomplete assignment")
			return false
		}
	case *AugAssign:
		switch n.Target.(type) {
		case *Var, *Attribute, *GetItem:
		default:
			v.fail(n, "illegal target for augmented assignment")
			return false
		}
		return v.require(n, n.Value != nil, "augmented assignment without value")
	case *If:
		if n.Cond == nil || n.Else == nil {
			v.fail(n, "incomplete if statement")
			return false
		}
		return v.body(n, n.Body, "if") && v.body(n, n.Else, "else")
	case *While:
		return v.require(n, n.Cond != nil, "while without condition") && v.body(n, n.Body, "while")
	case *For:
		return v.require(n, n.Targets != nil && n.Iter != nil, "incomplete for statement") && v.body(n, n.Body, "for")
	case *Try:
		if !v.body(n, n.Body, "try") {
			return false
		}
		if len(n.Handlers) == 0 && n.Finally.IsEmpty() {
			v.fail(n, "try without except or finally")
		}
		if len(n.Handlers) == 0 && !n.Else.IsEmpty() {
			v.fail(n, "try with else but no except")
		}
	case *Except:
		if n.Name != "" && n.Type == nil {
			v.fail(n, "except binds %s without exception type", n.Name)
		}
		return v.body(n, n.Body, "except")
	case *With:
		return v.require(n, n.Context != nil, "with without context expression") && v.body(n, n.Body, "with")
	case *Def:
		if n.Name == "" || n.Params == nil {
			v.fail(n, "incomplete function definition")
			return false
		}
		return v.body(n, n.Body, "def")
	case *Class:
		if n.Name == "" {
			v.fail(n, "class without name")
		}
		return v.body(n, n.Body, "class")
	case *Decorator:
		if len(n.Name) == 0 {
			v.fail(n, "decorator without name")
		}
	}
	return true
}

func (v *validator) require(n Node, ok bool, format string, args ...interface{}) bool {
	if !ok {
		v.fail(n, format, args...)
	}
	return ok
}

func (v *validator) clauses(n Node, clauses []CompClause) {
	if len(clauses) == 0 {
		v.fail(n, "comprehension without clauses")
		return
	}
	if _, ok := clauses[0].(*CompFor); !ok {
		v.fail(n, "comprehension must start with a for clause")
	}
}

// params checks the ordering rules of a parameter list
func (v *validator) params(p *Params) {
	var seenDefault, seenVarArgs, seenKwArgs bool
	for _, param := range p.List {
		if seenKwArgs {
			v.fail(param, "parameter %s follows **", param.Name)
		}
		switch param.Kind {
		case VarArgs:
			if seenVarArgs {
				v.fail(param, "duplicate * parameter")
			}
			if param.Default != nil {
				v.fail(param, "* parameter %s has a default", param.Name)
			}
			seenVarArgs = true
		case KwArgs:
			if seenKwArgs {
				v.fail(param, "duplicate ** parameter")
			}
			if param.Default != nil {
				v.fail(param, "** parameter %s has a default", param.Name)
			}
			seenKwArgs = true
		default:
			if param.Default != nil {
				seenDefault = true
			} else if seenDefault {
				v.fail(param, "non-default parameter %s follows default parameter", param.Name)
			}
		}
	}
}

func nonNil(list []Expr) bool {
	for _, e := range list {
		if e == nil {
			return false
		}
	}
	return true
}
