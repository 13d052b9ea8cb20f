// File: printer.go
// Title: Canonical Source Printer
// Description: Renders a syntax tree back into source text with four space
//              indentation and the fewest parentheses the operator
//              precedence requires. Re-parsing the output yields a tree
//              equal to the input up to positions.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-24
// Modified: 2025-03-29
//
// Change History:
// - 2025-03-24 v0.1.0: Initial printer
// - 2025-03-29 v0.1.0: Conditional-free comprehension conditions

package printer

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/msto63/smython/foundation/smython/ast"
)

// Binding strength of expression forms, loosest first
const (
	precLambda = iota + 1
	precTernary
	precOr
	precAnd
	precNot
	precCmp
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precArith
	precTerm
	precUnary
	precPower
	precAtom
)

var binaryPrec = map[ast.BinaryOp]int{
	ast.BitOr: precBitOr, ast.BitXor: precBitXor, ast.BitAnd: precBitAnd,
	ast.LShift: precShift, ast.RShift: precShift,
	ast.Add: precArith, ast.Sub: precArith,
	ast.Mul: precTerm, ast.Div: precTerm, ast.IntDiv: precTerm, ast.Mod: precTerm,
	ast.Power: precPower,
}

const indentUnit = "    "

// Fprint writes the source form of node to w. Statements and suites are
// written as lines, an expression as a single line.
func Fprint(w io.Writer, node ast.Node) error {
	src, err := render(node)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, src)
	return err
}

// Source returns the source form of node
func Source(node ast.Node) (string, error) {
	return render(node)
}

type printer struct {
	b      strings.Builder
	indent int
	err    error
}

func render(node ast.Node) (string, error) {
	p := &printer{}
	switch n := node.(type) {
	case *ast.Suite:
		p.suite(n)
	case ast.Stmt:
		p.stmt(n)
	case *ast.ExprList:
		p.b.WriteString(p.list(n, precLambda))
	case ast.Expr:
		p.b.WriteString(p.expr(n, precLambda))
	default:
		return "", errors.Newf("printer: cannot print %T", node)
	}
	if p.err != nil {
		return "", p.err
	}
	return p.b.String(), nil
}

func (p *printer) fail(n ast.Node) string {
	if p.err == nil {
		p.err = errors.Newf("printer: unexpected node %T", n)
	}
	return ""
}

// ===============================
// Statements
// ===============================

func (p *printer) line(parts ...string) {
	for i := 0; i < p.indent; i++ {
		p.b.WriteString(indentUnit)
	}
	for _, s := range parts {
		p.b.WriteString(s)
	}
	p.b.WriteByte('\n')
}

func (p *printer) suite(s *ast.Suite) {
	for _, st := range s.Stmts {
		p.stmt(st)
	}
}

// block writes an indented body; an empty body becomes pass
func (p *printer) block(s *ast.Suite) {
	p.indent++
	if s.IsEmpty() {
		p.line("pass")
	} else {
		p.suite(s)
	}
	p.indent--
}

func (p *printer) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Pass:
		p.line("pass")
	case *ast.Break:
		p.line("break")
	case *ast.Continue:
		p.line("continue")
	case *ast.Del:
		p.line("del ", p.list(n.Targets, precBitOr))
	case *ast.Return:
		p.line(p.keywordList("return", n.Value))
	case *ast.YieldStmt:
		p.line(p.keywordList("yield", n.Value))
	case *ast.Raise:
		switch {
		case n.Exc == nil:
			p.line("raise")
		case n.Cause == nil:
			p.line("raise ", p.expr(n.Exc, precLambda))
		default:
			p.line("raise ", p.expr(n.Exc, precLambda), " from ", p.expr(n.Cause, precLambda))
		}
	case *ast.Import:
		names := make([]string, len(n.Names))
		for i, alias := range n.Names {
			names[i] = withAlias(strings.Join(alias.Path, "."), alias.As)
		}
		p.line("import ", strings.Join(names, ", "))
	case *ast.From:
		names := "*"
		if len(n.Names) > 0 {
			parts := make([]string, len(n.Names))
			for i, alias := range n.Names {
				parts[i] = withAlias(alias.Name, alias.As)
			}
			names = strings.Join(parts, ", ")
		}
		p.line("from ", strings.Join(n.Module, "."), " import ", names)
	case *ast.Global:
		p.line("global ", strings.Join(n.Names, ", "))
	case *ast.Nonlocal:
		p.line("nonlocal ", strings.Join(n.Names, ", "))
	case *ast.Assert:
		if n.Msg == nil {
			p.line("assert ", p.expr(n.Test, precLambda))
		} else {
			p.line("assert ", p.expr(n.Test, precLambda), ", ", p.expr(n.Msg, precLambda))
		}
	case *ast.Assign:
		parts := make([]string, 0, len(n.Targets)+1)
		for _, t := range n.Targets {
			parts = append(parts, p.list(t, precLambda))
		}
		parts = append(parts, p.value(n.Value))
		p.line(strings.Join(parts, " = "))
	case *ast.AugAssign:
		p.line(p.expr(n.Target, precAtom), " ", n.Op.Symbol(), "= ", p.value(n.Value))
	case *ast.ExprStmt:
		p.line(p.list(n.Value, precLambda))
	case *ast.If:
		p.ifStmt(n)
	case *ast.While:
		p.line("while ", p.expr(n.Cond, precLambda), ":")
		p.block(n.Body)
		p.elseBlock(n.Else)
	case *ast.For:
		p.line("for ", p.list(n.Targets, precBitOr), " in ", p.list(n.Iter, precLambda), ":")
		p.block(n.Body)
		p.elseBlock(n.Else)
	case *ast.Try:
		p.line("try:")
		p.block(n.Body)
		for _, h := range n.Handlers {
			switch {
			case h.Type == nil:
				p.line("except:")
			case h.Name == "":
				p.line("except ", p.expr(h.Type, precLambda), ":")
			default:
				p.line("except ", p.expr(h.Type, precLambda), " as ", h.Name, ":")
			}
			p.block(h.Body)
		}
		p.elseBlock(n.Else)
		if !n.Finally.IsEmpty() {
			p.line("finally:")
			p.block(n.Finally)
		}
	case *ast.With:
		if n.Target == nil {
			p.line("with ", p.expr(n.Context, precLambda), ":")
		} else {
			p.line("with ", p.expr(n.Context, precLambda), " as ", p.expr(n.Target, precBitOr), ":")
		}
		p.block(n.Body)
	case *ast.Def:
		p.decorators(n.Decorators)
		header := "def " + n.Name + "(" + p.params(n.Params) + ")"
		if n.Params.Returns != nil {
			header += " -> " + p.expr(n.Params.Returns, precLambda)
		}
		p.line(header, ":")
		p.block(n.Body)
	case *ast.Class:
		p.decorators(n.Decorators)
		if n.Bases == nil {
			p.line("class ", n.Name, ":")
		} else {
			p.line("class ", n.Name, "(", p.args(n.Bases), "):")
		}
		p.block(n.Body)
	default:
		p.fail(s)
	}
}

func (p *printer) ifStmt(n *ast.If) {
	p.line("if ", p.expr(n.Cond, precLambda), ":")
	p.block(n.Body)
	for orelse := n.Else; !isPassOnly(orelse); {
		if len(orelse.Stmts) == 1 {
			if elif, ok := orelse.Stmts[0].(*ast.If); ok {
				p.line("elif ", p.expr(elif.Cond, precLambda), ":")
				p.block(elif.Body)
				orelse = elif.Else
				continue
			}
		}
		p.line("else:")
		p.block(orelse)
		return
	}
}

// isPassOnly reports whether an else suite equals the implicit one
func isPassOnly(s *ast.Suite) bool {
	if s == nil {
		return true
	}
	if len(s.Stmts) != 1 {
		return false
	}
	_, ok := s.Stmts[0].(*ast.Pass)
	return ok
}

func (p *printer) elseBlock(s *ast.Suite) {
	if s.IsEmpty() {
		return
	}
	p.line("else:")
	p.block(s)
}

func (p *printer) decorators(list []*ast.Decorator) {
	for _, d := range list {
		name := strings.Join(d.Name, ".")
		if d.Args == nil {
			p.line("@", name)
		} else {
			p.line("@", name, "(", p.args(d.Args), ")")
		}
	}
}

// keywordList renders return and yield, dropping the implicit None
func (p *printer) keywordList(keyword string, value *ast.ExprList) string {
	if isImplicitNone(value) {
		return keyword
	}
	return keyword + " " + p.list(value, precLambda)
}

func isImplicitNone(list *ast.ExprList) bool {
	if list == nil {
		return true
	}
	if !list.Single {
		return false
	}
	lit, ok := list.Exprs[0].(*ast.Lit)
	return ok && lit.Kind == ast.NoneLit
}

// value renders an assignment right-hand side, where a yield needs no
// parentheses
func (p *printer) value(list *ast.ExprList) string {
	if list.Single {
		if y, ok := list.Exprs[0].(*ast.YieldExpr); ok {
			return p.keywordList("yield", y.Value)
		}
	}
	return p.list(list, precLambda)
}

func withAlias(name, as string) string {
	if as == "" {
		return name
	}
	return name + " as " + as
}

// ===============================
// Expressions
// ===============================

// list renders a bare sequence; a one-element tuple keeps its comma
func (p *printer) list(l *ast.ExprList, min int) string {
	parts := make([]string, len(l.Exprs))
	for i, x := range l.Exprs {
		parts[i] = p.expr(x, min)
	}
	s := strings.Join(parts, ", ")
	if len(l.Exprs) == 1 && !l.Single {
		s += ","
	}
	return s
}

func (p *printer) exprs(list []ast.Expr) string {
	parts := make([]string, len(list))
	for i, x := range list {
		parts[i] = p.expr(x, precLambda)
	}
	return strings.Join(parts, ", ")
}

func prec(x ast.Expr) int {
	switch n := x.(type) {
	case *ast.Lambda:
		return precLambda
	case *ast.IfElse:
		return precTernary
	case *ast.BoolOp:
		if n.Op == ast.Or {
			return precOr
		}
		return precAnd
	case *ast.Unary:
		if n.Op == ast.Not {
			return precNot
		}
		return precUnary
	case *ast.Comparison:
		return precCmp
	case *ast.Binary:
		return binaryPrec[n.Op]
	}
	return precAtom
}

// expr renders x, parenthesized when it binds looser than min
func (p *printer) expr(x ast.Expr, min int) string {
	s := p.bare(x)
	if prec(x) < min {
		return "(" + s + ")"
	}
	return s
}

func (p *printer) bare(x ast.Expr) string {
	switch n := x.(type) {
	case *ast.Lit:
		return literal(n)
	case *ast.Var:
		return n.Name
	case *ast.Attribute:
		if lit, ok := n.X.(*ast.Lit); ok && (lit.Kind == ast.IntLit || lit.Kind == ast.FloatLit || lit.Kind == ast.EllipsisLit) {
			return "(" + literal(lit) + ")." + n.Name
		}
		return p.expr(n.X, precAtom) + "." + n.Name
	case *ast.Call:
		return p.expr(n.Func, precAtom) + "(" + p.args(n.Args) + ")"
	case *ast.GetItem:
		return p.expr(n.X, precAtom) + "[" + p.list(n.Index, precLambda) + "]"
	case *ast.Slice:
		s := p.opt(n.Start) + ":" + p.opt(n.Stop)
		if n.Step != nil {
			s += ":" + p.expr(n.Step, precLambda)
		}
		return s
	case *ast.Unary:
		switch n.Op {
		case ast.Not:
			return "not " + p.expr(n.X, precNot)
		case ast.Neg:
			return "-" + p.expr(n.X, precUnary)
		case ast.UPos:
			return "+" + p.expr(n.X, precUnary)
		default:
			return "~" + p.expr(n.X, precUnary)
		}
	case *ast.Binary:
		level := binaryPrec[n.Op]
		if n.Op == ast.Power {
			return p.expr(n.X, precAtom) + " ** " + p.expr(n.Y, precUnary)
		}
		return p.expr(n.X, level) + " " + n.Op.Symbol() + " " + p.expr(n.Y, level+1)
	case *ast.BoolOp:
		if n.Op == ast.Or {
			return p.expr(n.X, precOr) + " or " + p.expr(n.Y, precAnd)
		}
		return p.expr(n.X, precAnd) + " and " + p.expr(n.Y, precNot)
	case *ast.Comparison:
		var b strings.Builder
		b.WriteString(p.expr(n.Operands[0], precBitOr))
		for i, op := range n.Ops {
			b.WriteString(" " + op.String() + " ")
			b.WriteString(p.expr(n.Operands[i+1], precBitOr))
		}
		return b.String()
	case *ast.Lambda:
		return p.lambda(n, p.expr(n.Body, precLambda))
	case *ast.IfElse:
		return p.expr(n.Then, precOr) + " if " + p.expr(n.Cond, precOr) + " else " + p.expr(n.Else, precLambda)
	case *ast.ListConstr:
		return "[" + p.exprs(n.Elts) + "]"
	case *ast.TupleConstr:
		if len(n.Elts) == 1 {
			return "(" + p.expr(n.Elts[0], precLambda) + ",)"
		}
		return "(" + p.exprs(n.Elts) + ")"
	case *ast.SetConstr:
		return "{" + p.exprs(n.Elts) + "}"
	case *ast.DictConstr:
		parts := make([]string, len(n.Entries))
		for i, kv := range n.Entries {
			parts[i] = p.expr(kv.Key, precLambda) + ": " + p.expr(kv.Value, precLambda)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ast.ListCompr:
		return "[" + p.expr(n.Elt, precLambda) + p.clauses(n.Clauses) + "]"
	case *ast.SetCompr:
		return "{" + p.expr(n.Elt, precLambda) + p.clauses(n.Clauses) + "}"
	case *ast.GeneratorCompr:
		return "(" + p.generator(n) + ")"
	case *ast.DictCompr:
		return "{" + p.expr(n.Key, precLambda) + ": " + p.expr(n.Value, precLambda) + p.clauses(n.Clauses) + "}"
	case *ast.YieldExpr:
		return "(" + p.keywordList("yield", n.Value) + ")"
	case *ast.Star:
		return "*" + p.expr(n.X, precBitOr)
	}
	return p.fail(x)
}

func (p *printer) opt(x ast.Expr) string {
	if x == nil {
		return ""
	}
	return p.expr(x, precLambda)
}

func (p *printer) generator(g *ast.GeneratorCompr) string {
	return p.expr(g.Elt, precLambda) + p.clauses(g.Clauses)
}

func (p *printer) clauses(list []ast.CompClause) string {
	var b strings.Builder
	for _, c := range list {
		switch n := c.(type) {
		case *ast.CompFor:
			b.WriteString(" for " + p.list(n.Targets, precBitOr) + " in " + p.expr(n.Source, precOr))
		case *ast.CompIf:
			b.WriteString(" if " + p.noCond(n.Cond))
		}
	}
	return b.String()
}

// noCond renders a comprehension condition, where neither the condition
// itself nor a lambda body in it may be an unparenthesized conditional
func (p *printer) noCond(x ast.Expr) string {
	if l, ok := x.(*ast.Lambda); ok {
		return p.lambda(l, p.noCond(l.Body))
	}
	return p.expr(x, precOr)
}

func (p *printer) lambda(l *ast.Lambda, body string) string {
	if len(l.Params.List) == 0 {
		return "lambda: " + body
	}
	return "lambda " + p.params(l.Params) + ": " + body
}

func (p *printer) params(ps *ast.Params) string {
	parts := make([]string, len(ps.List))
	for i, param := range ps.List {
		var s string
		switch param.Kind {
		case ast.VarArgs:
			s = "*" + param.Name
		case ast.KwArgs:
			s = "**" + param.Name
		default:
			s = param.Name
		}
		if param.Annotation != nil {
			s += ": " + p.expr(param.Annotation, precLambda)
		}
		if param.Default != nil {
			if param.Annotation != nil {
				s += " = " + p.expr(param.Default, precLambda)
			} else {
				s += "=" + p.expr(param.Default, precLambda)
			}
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

// args renders positional arguments, *args, keywords and **kwargs in an
// order every call form accepts
func (p *printer) args(a *ast.Arglist) string {
	if a.Len() == 1 && len(a.Positional) == 1 {
		if g, ok := a.Positional[0].(*ast.GeneratorCompr); ok {
			return p.generator(g)
		}
	}
	var parts []string
	for _, x := range a.Positional {
		parts = append(parts, p.expr(x, precLambda))
	}
	if a.VarArgs != nil {
		parts = append(parts, "*"+p.expr(a.VarArgs, precLambda))
	}
	for _, kw := range a.Keywords {
		parts = append(parts, kw.Name+"="+p.expr(kw.Value, precLambda))
	}
	if a.KwArgs != nil {
		parts = append(parts, "**"+p.expr(a.KwArgs, precLambda))
	}
	return strings.Join(parts, ", ")
}

func literal(l *ast.Lit) string {
	switch l.Kind {
	case ast.NoneLit:
		return "None"
	case ast.TrueLit:
		return "True"
	case ast.FalseLit:
		return "False"
	case ast.EllipsisLit:
		return "..."
	case ast.IntLit:
		return l.Int.String()
	case ast.FloatLit:
		return floatLiteral(l.Float)
	default:
		return strconv.Quote(l.Str)
	}
}

// floatLiteral renders a float literal that lexes back as a float
func floatLiteral(f float64) string {
	if math.IsInf(f, 0) {
		return "1e999"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
