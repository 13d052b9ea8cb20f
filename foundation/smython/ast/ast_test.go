// File: ast_test.go
// Title: AST Tests
// Description: Tests for canonical dumps, literal rendering, traversal order
//              and structural validation on hand-built trees.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-16
// Modified: 2025-03-21
//
// Change History:
// - 2025-03-16 v0.1.0: Initial tests

package ast

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msto63/smython/foundation/smython/token"
)

func vr(name string) *Var { return &Var{Name: name} }

func num(n int64) *Lit { return NewInt(big.NewInt(n), token.Position{}) }

func single(e Expr) *ExprList { return &ExprList{Exprs: []Expr{e}, Single: true} }

func tuple(list ...Expr) *ExprList { return &ExprList{Exprs: list} }

func suite(stmts ...Stmt) *Suite { return &Suite{Stmts: stmts} }

func TestDumpStatements(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{"pass", suite(&Pass{}), "Suite[Pass]"},
		{"assign single", &Assign{Targets: []*ExprList{single(vr("a"))}, Value: single(num(1))},
			"Assign((Var(a)), (Lit(1)))"},
		{"assign tuple", &Assign{Targets: []*ExprList{tuple(vr("a"))}, Value: tuple(num(1))},
			"Assign([Var(a)], [Lit(1)])"},
		{"chained assign", &Assign{Targets: []*ExprList{single(vr("a")), single(vr("b"))}, Value: single(vr("c"))},
			"Assign((Var(a)), (Var(b)), (Var(c)))"},
		{"augmented", &AugAssign{Op: RShift, Target: vr("h"), Value: single(num(1))},
			"RshiftAssign(Var(h), (Lit(1)))"},
		{"del", &Del{Targets: single(vr("a"))}, "Del[Var(a)]"},
		{"raise", &Raise{Exc: vr("E"), Cause: NewNone(token.Position{})}, "Raise(Var(E), Lit(None))"},
		{"bare raise", &Raise{}, "Raise()"},
		{"import", &Import{Names: []DottedAlias{{Path: []string{"a"}}, {Path: []string{"b", "c"}, As: "bc"}}},
			"Import[a, b.c as bc]"},
		{"from star", &From{Module: []string{"a", "b"}}, "From(a.b, [])"},
		{"global", &Global{Names: []string{"A", "B"}}, "Global[A, B]"},
		{"if", &If{Cond: num(1), Body: suite(&Pass{}), Else: PassSuite(token.Position{})},
			"If(Lit(1), Suite[Pass], Suite[Pass])"},
		{"while without else", &While{Cond: num(1), Body: suite(&Pass{}), Else: suite()},
			"While(Lit(1), Suite[Pass])"},
		{"for", &For{Targets: single(vr("a")), Iter: single(vr("items")), Body: suite(&Pass{}), Else: suite(&Pass{})},
			"For([Var(a)], (Var(items)), Suite[Pass], Suite[Pass])"},
		{"try finally", &Try{Body: suite(&Pass{}), Else: suite(), Finally: suite(&Pass{})},
			"Try(Suite[Pass], [], null, Suite[Pass])"},
		{"try except else", &Try{
			Body:     suite(&Pass{}),
			Handlers: []*Except{{Type: num(1), Name: "a", Body: suite(&Pass{})}},
			Else:     suite(&Pass{}),
			Finally:  suite(),
		}, "Try(Suite[Pass], [Except(Lit(1), a, Suite[Pass])], Suite[Pass])"},
		{"with", &With{Context: vr("a"), Target: vr("b"), Body: suite(&Pass{})}, "With(Var(a), Var(b), Suite[Pass])"},
		{"def", &Def{
			Name: "a",
			Params: &Params{List: []*Param{
				{Name: "x", Annotation: vr("int")},
				{Name: "y", Annotation: vr("int"), Default: num(0)},
				{Name: "z", Kind: VarArgs, Annotation: vr("str")},
			}, Returns: vr("str")},
			Body:       suite(&Pass{}),
			Decorators: []*Decorator{{Name: []string{"deco"}, Args: &Arglist{Positional: []Expr{num(1), num(2)}}}},
		}, "Def(a, [x:Var(int), y:Var(int)=Lit(0), *z:Var(str)]:Var(str), Suite[Pass], [@deco[Lit(1), Lit(2)]])"},
		{"class", &Class{
			Name:  "A",
			Bases: &Arglist{Positional: []Expr{vr("object")}, Keywords: []*Keyword{{Name: "metaclass", Value: vr("type")}}},
			Body:  suite(&Pass{}),
		}, "Class(A, [Var(object), metaclass=Var(type)], Suite[Pass])"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Dump(tt.node))
		})
	}
}

func TestDumpExpressions(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expr
		expected string
	}{
		{"comparison", &Comparison{Operands: []Expr{num(1), vr("b"), num(2)}, Ops: []CmpOp{Lt, NotIn}},
			"Comparison(Lit(1) < Var(b) not in Lit(2))"},
		{"power", &Binary{Op: Power, X: vr("a"), Y: &Binary{Op: Power, X: vr("b"), Y: vr("c")}},
			"Power(Var(a), Power(Var(b), Var(c)))"},
		{"unary", &Unary{Op: Neg, X: &Unary{Op: UPos, X: vr("a")}}, "Neg(Pos(Var(a)))"},
		{"bool", &BoolOp{Op: Or, X: &BoolOp{Op: And, X: vr("a"), Y: vr("b")}, Y: vr("c")},
			"Or(And(Var(a), Var(b)), Var(c))"},
		{"call", &Call{Func: vr("f"), Args: &Arglist{
			Positional: []Expr{num(1)},
			Keywords:   []*Keyword{{Name: "k", Value: num(2)}},
			VarArgs:    vr("x"),
			KwArgs:     vr("y"),
		}}, "Call(Var(f), [Lit(1), k=Lit(2), *Var(x), **Var(y)])"},
		{"subscript", &GetItem{X: vr("x"), Index: tuple(&Slice{Start: num(1)}, &Slice{Step: num(2)})},
			"GetItem(Var(x), [Lit(1):, ::Lit(2)])"},
		{"attribute", &Attribute{X: vr("x"), Name: "n"}, "Attr(Var(x), n)"},
		{"lambda", &Lambda{Params: &Params{List: []*Param{{Name: "a"}, {Name: "b", Kind: KwArgs}}}, Body: num(1)},
			"Lambda([a, **b], Lit(1))"},
		{"list comprehension", &ListCompr{
			Elt:     &Binary{Op: Mul, X: vr("a"), Y: vr("a")},
			Clauses: []CompClause{&CompFor{Targets: single(vr("a")), Source: vr("items")}, &CompIf{Cond: num(1)}},
		}, "ListCompr(Mul(Var(a), Var(a)) for [Var(a)] in Var(items) if Lit(1))"},
		{"dict comprehension", &DictCompr{
			Key: vr("k"), Value: vr("v"),
			Clauses: []CompClause{&CompFor{Targets: tuple(vr("k"), vr("v")), Source: vr("d")}},
		}, "DictCompr(Var(k): Var(v) for [Var(k), Var(v)] in Var(d))"},
		{"dict display", &DictConstr{Entries: []*KeyValue{{Key: num(1), Value: num(2)}}}, "DictConstr[Lit(1): Lit(2)]"},
		{"empty tuple", &TupleConstr{}, "TupleConstr[]"},
		{"yield", &YieldExpr{Value: tuple(num(1), num(2))}, "Yield[Lit(1), Lit(2)]"},
		{"star", &Star{X: vr("rest")}, "Star(Var(rest))"},
		{"ellipsis", &Lit{Kind: EllipsisLit}, "Lit(Ellipsis)"},
		{"string", NewStr("it's", token.Position{}), `Lit("it's")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Dump(tt.expr))
		})
	}
}

func TestDumpPanicsOnUnknownNode(t *testing.T) {
	type bogus struct{ Pass }
	require.Panics(t, func() { Dump(&bogus{}) })
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"abc":       `'abc'`,
		"a'b":       `"a'b"`,
		`a'b"c`:     `'a\'b"c'`,
		"line\n":    `'line\n'`,
		"tab\there": `'tab\there'`,
		`back\`:     `'back\\'`,
		"\x00":      `'\x00'`,
		"é":         `'é'`,
	}
	for input, expected := range tests {
		require.Equal(t, expected, Quote(input), "input %q", input)
	}
}

func TestFloatString(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{1.5, "1.5"},
		{1, "1.0"},
		{0, "0.0"},
		{1e10, "10000000000.0"},
		{1e16, "1e+16"},
		{1.5e-5, "1.5e-05"},
		{0.001, "0.001"},
		{math.Inf(1), "inf"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, FloatString(tt.input))
	}
}

func TestInspectOrder(t *testing.T) {
	tree := suite(
		&Assign{Targets: []*ExprList{single(vr("a"))}, Value: single(&Binary{Op: Add, X: vr("b"), Y: vr("c")})},
		&ExprStmt{Value: single(&Call{Func: vr("f"), Args: &Arglist{Positional: []Expr{vr("d")}}})},
	)

	var names []string
	Inspect(tree, func(n Node) bool {
		if x, ok := n.(*Var); ok {
			names = append(names, x.Name)
		}
		return true
	})
	require.Equal(t, "a b c f d", strings.Join(names, " "))
}

func TestInspectPrunes(t *testing.T) {
	tree := suite(&Def{Name: "f", Params: &Params{}, Body: suite(&ExprStmt{Value: single(vr("inner"))})})

	var names []string
	Inspect(tree, func(n Node) bool {
		if x, ok := n.(*Var); ok {
			names = append(names, x.Name)
		}
		_, isDef := n.(*Def)
		return !isDef
	})
	require.Empty(t, names)
}

func TestCount(t *testing.T) {
	tree := suite(&ExprStmt{Value: tuple(vr("a"), vr("b"), num(1))})
	counts := Count(tree)
	require.Equal(t, 2, counts["Var"])
	require.Equal(t, 1, counts["Lit"])
	require.Equal(t, 1, counts["Suite"])
}

func TestValidateAcceptsWellFormedTree(t *testing.T) {
	tree := suite(
		&Def{
			Name: "f",
			Params: &Params{List: []*Param{
				{Name: "a"},
				{Name: "b", Default: num(1)},
				{Name: "c", Kind: VarArgs},
				{Name: "d"},
				{Name: "e", Kind: KwArgs},
			}},
			Body: suite(&Return{Value: single(&GetItem{X: vr("a"), Index: single(&Slice{Start: num(1)})})}),
		},
		&Try{Body: suite(&Pass{}), Handlers: []*Except{{Body: suite(&Pass{})}}, Else: suite(), Finally: suite()},
	)
	require.NoError(t, Validate(tree))
}

func TestValidateReportsViolations(t *testing.T) {
	tests := []struct {
		name string
		node Node
		msg  string
	}{
		{"default order", &Params{List: []*Param{{Name: "x", Default: num(0)}, {Name: "y"}}},
			"non-default parameter y follows default parameter"},
		{"default order after varargs", &Params{List: []*Param{{Name: "x", Default: num(0)}, {Name: "y", Kind: VarArgs}, {Name: "z"}}},
			"non-default parameter z follows default parameter"},
		{"duplicate varargs", &Params{List: []*Param{{Name: "x", Kind: VarArgs}, {Name: "y", Kind: VarArgs}}},
			"duplicate * parameter"},
		{"after kwargs", &Params{List: []*Param{{Name: "x", Kind: KwArgs}, {Name: "y", Kind: VarArgs}}},
			"parameter y follows **"},
		{"try without handlers", &Try{Body: suite(&Pass{}), Else: suite(), Finally: suite()},
			"try without except or finally"},
		{"empty body", &While{Cond: num(1), Body: suite(), Else: suite()}, "while has an empty body"},
		{"stray slice", &ExprStmt{Value: single(&Slice{})}, "slice outside of a subscript"},
		{"bad comparison", &Comparison{Operands: []Expr{num(1)}}, "comparison with 0 operators and 1 operands"},
		{"aug target", &AugAssign{Op: Add, Target: &ListConstr{}, Value: single(num(1))},
			"illegal target for augmented assignment"},
		{"comprehension order", &ListCompr{Elt: vr("a"), Clauses: []CompClause{&CompIf{Cond: vr("a")}}},
			"comprehension must start with a for clause"},
		{"annotated lambda", &Lambda{Params: &Params{List: []*Param{{Name: "a", Annotation: vr("int")}}}, Body: num(1)},
			"lambda parameter a is annotated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.node)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.msg)
		})
	}
}
