// File: dump.go
// Title: Canonical AST Dump
// Description: Renders any node in the canonical constructor notation used
//              by the grammar fixtures, e.g. Suite[Assign((Var(a)), [Lit(1)])].
//              Every node kind is matched explicitly; an unknown kind is a
//              programming error and panics.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-15
// Modified: 2025-03-21
//
// Change History:
// - 2025-03-15 v0.1.0: Initial dump implementation
// - 2025-03-21 v0.1.0: Python-style literal rendering

package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Dump renders node in canonical constructor notation
func Dump(node Node) string {
	d := &dumper{}
	d.node(node)
	return d.String()
}

type dumper struct {
	strings.Builder
}

func (d *dumper) node(node Node) {
	switch n := node.(type) {
	case *Suite:
		d.suite(n)
	case *ExprList:
		d.exprList(n)
	case Expr:
		d.expr(n)
	case Stmt:
		d.stmt(n)
	case *Params:
		d.params(n)
	case *Param:
		d.param(n)
	case *Arglist:
		d.arglist(n)
	case *Keyword:
		d.WriteString(n.Name + "=")
		d.expr(n.Value)
	case *KeyValue:
		d.keyValue(n)
	case *CompFor, *CompIf:
		d.clauses([]CompClause{n.(CompClause)})
	case *Except:
		d.except(n)
	case *Decorator:
		d.decorator(n)
	default:
		panic(fmt.Sprintf("ast: unexpected node %T", node))
	}
}

func (d *dumper) suite(s *Suite) {
	d.WriteString("Suite[")
	for i, stmt := range s.Stmts {
		if i > 0 {
			d.WriteString(", ")
		}
		d.stmt(stmt)
	}
	d.WriteByte(']')
}

// exprList renders (x) for a single element and [a, b] otherwise
func (d *dumper) exprList(l *ExprList) {
	if l.Single {
		d.WriteByte('(')
		d.expr(l.Exprs[0])
		d.WriteByte(')')
		return
	}
	d.exprs(l.Exprs)
}

func (d *dumper) exprs(list []Expr) {
	d.WriteByte('[')
	for i, e := range list {
		if i > 0 {
			d.WriteString(", ")
		}
		d.expr(e)
	}
	d.WriteByte(']')
}

func (d *dumper) stmt(stmt Stmt) {
	switch n := stmt.(type) {
	case *Pass:
		d.WriteString("Pass")
	case *Break:
		d.WriteString("Break")
	case *Continue:
		d.WriteString("Continue")
	case *Del:
		d.WriteString("Del")
		d.exprs(n.Targets.Exprs)
	case *Return:
		d.WriteString("Return")
		d.exprList(n.Value)
	case *Raise:
		d.WriteString("Raise(")
		if n.Exc != nil {
			d.expr(n.Exc)
			if n.Cause != nil {
				d.WriteString(", ")
				d.expr(n.Cause)
			}
		}
		d.WriteByte(')')
	case *YieldStmt:
		d.WriteString("Yield")
		d.exprList(n.Value)
	case *Import:
		d.WriteString("Import[")
		for i, alias := range n.Names {
			if i > 0 {
				d.WriteString(", ")
			}
			d.WriteString(strings.Join(alias.Path, "."))
			if alias.As != "" {
				d.WriteString(" as " + alias.As)
			}
		}
		d.WriteByte(']')
	case *From:
		d.WriteString("From(" + strings.Join(n.Module, ".") + ", [")
		for i, alias := range n.Names {
			if i > 0 {
				d.WriteString(", ")
			}
			d.WriteString(alias.Name)
			if alias.As != "" {
				d.WriteString(" as " + alias.As)
			}
		}
		d.WriteString("])")
	case *Global:
		d.WriteString("Global[" + strings.Join(n.Names, ", ") + "]")
	case *Nonlocal:
		d.WriteString("Nonlocal[" + strings.Join(n.Names, ", ") + "]")
	case *Assert:
		d.WriteString("Assert(")
		d.expr(n.Test)
		if n.Msg != nil {
			d.WriteString(", ")
			d.expr(n.Msg)
		}
		d.WriteByte(')')
	case *Assign:
		d.WriteString("Assign(")
		for _, target := range n.Targets {
			d.exprList(target)
			d.WriteString(", ")
		}
		d.exprList(n.Value)
		d.WriteByte(')')
	case *AugAssign:
		d.WriteString(augNames[n.Op] + "(")
		d.expr(n.Target)
		d.WriteString(", ")
		d.exprList(n.Value)
		d.WriteByte(')')
	case *ExprStmt:
		d.WriteString("Expr")
		d.exprList(n.Value)
	case *If:
		d.WriteString("If(")
		d.expr(n.Cond)
		d.WriteString(", ")
		d.suite(n.Body)
		d.WriteString(", ")
		d.suite(n.Else)
		d.WriteByte(')')
	case *While:
		d.WriteString("While(")
		d.expr(n.Cond)
		d.WriteString(", ")
		d.suite(n.Body)
		d.optSuite(n.Else)
		d.WriteByte(')')
	case *For:
		d.WriteString("For(")
		d.exprs(n.Targets.Exprs)
		d.WriteString(", ")
		d.exprList(n.Iter)
		d.WriteString(", ")
		d.suite(n.Body)
		d.optSuite(n.Else)
		d.WriteByte(')')
	case *Try:
		d.try(n)
	case *With:
		d.WriteString("With(")
		d.expr(n.Context)
		if n.Target != nil {
			d.WriteString(", ")
			d.expr(n.Target)
		}
		d.WriteString(", ")
		d.suite(n.Body)
		d.WriteByte(')')
	case *Def:
		d.WriteString("Def(" + n.Name + ", ")
		d.params(n.Params)
		d.WriteString(", ")
		d.suite(n.Body)
		d.decorators(n.Decorators)
		d.WriteByte(')')
	case *Class:
		d.WriteString("Class(" + n.Name + ", ")
		if n.Bases != nil {
			d.arglist(n.Bases)
		} else {
			d.WriteString("[]")
		}
		d.WriteString(", ")
		d.suite(n.Body)
		d.decorators(n.Decorators)
		d.WriteByte(')')
	default:
		panic(fmt.Sprintf("ast: unexpected statement %T", stmt))
	}
}

func (d *dumper) optSuite(s *Suite) {
	if !s.IsEmpty() {
		d.WriteString(", ")
		d.suite(s)
	}
}

// try renders Try(body, handlers[, else][, else-or-null, finally])
func (d *dumper) try(n *Try) {
	d.WriteString("Try(")
	d.suite(n.Body)
	d.WriteString(", [")
	for i, h := range n.Handlers {
		if i > 0 {
			d.WriteString(", ")
		}
		d.except(h)
	}
	d.WriteByte(']')
	switch {
	case !n.Finally.IsEmpty():
		d.WriteString(", ")
		if n.Else.IsEmpty() {
			d.WriteString("null")
		} else {
			d.suite(n.Else)
		}
		d.WriteString(", ")
		d.suite(n.Finally)
	case !n.Else.IsEmpty():
		d.WriteString(", ")
		d.suite(n.Else)
	}
	d.WriteByte(')')
}

func (d *dumper) except(n *Except) {
	d.WriteString("Except(")
	if n.Type != nil {
		d.expr(n.Type)
		d.WriteString(", ")
		if n.Name != "" {
			d.WriteString(n.Name + ", ")
		}
	}
	d.suite(n.Body)
	d.WriteByte(')')
}

func (d *dumper) decorators(list []*Decorator) {
	if len(list) == 0 {
		return
	}
	d.WriteString(", [")
	for i, deco := range list {
		if i > 0 {
			d.WriteString(", ")
		}
		d.decorator(deco)
	}
	d.WriteByte(']')
}

func (d *dumper) decorator(n *Decorator) {
	d.WriteString("@" + strings.Join(n.Name, "."))
	if n.Args != nil {
		d.arglist(n.Args)
	}
}

func (d *dumper) params(p *Params) {
	d.WriteByte('[')
	for i, param := range p.List {
		if i > 0 {
			d.WriteString(", ")
		}
		d.param(param)
	}
	d.WriteByte(']')
	if p.Returns != nil {
		d.WriteByte(':')
		d.expr(p.Returns)
	}
}

func (d *dumper) param(p *Param) {
	switch p.Kind {
	case VarArgs:
		d.WriteByte('*')
	case KwArgs:
		d.WriteString("**")
	}
	d.WriteString(p.Name)
	if p.Annotation != nil {
		d.WriteByte(':')
		d.expr(p.Annotation)
	}
	if p.Default != nil {
		d.WriteByte('=')
		d.expr(p.Default)
	}
}

func (d *dumper) arglist(a *Arglist) {
	d.WriteByte('[')
	n := 0
	sep := func() {
		if n > 0 {
			d.WriteString(", ")
		}
		n++
	}
	for _, e := range a.Positional {
		sep()
		d.expr(e)
	}
	for _, kw := range a.Keywords {
		sep()
		d.WriteString(kw.Name + "=")
		d.expr(kw.Value)
	}
	if a.VarArgs != nil {
		sep()
		d.WriteByte('*')
		d.expr(a.VarArgs)
	}
	if a.KwArgs != nil {
		sep()
		d.WriteString("**")
		d.expr(a.KwArgs)
	}
	d.WriteByte(']')
}

func (d *dumper) keyValue(kv *KeyValue) {
	d.expr(kv.Key)
	d.WriteString(": ")
	d.expr(kv.Value)
}

func (d *dumper) clauses(list []CompClause) {
	for _, c := range list {
		switch c := c.(type) {
		case *CompFor:
			d.WriteString(" for ")
			d.exprs(c.Targets.Exprs)
			d.WriteString(" in ")
			d.expr(c.Source)
		case *CompIf:
			d.WriteString(" if ")
			d.expr(c.Cond)
		default:
			panic(fmt.Sprintf("ast: unexpected clause %T", c))
		}
	}
}

func (d *dumper) call(name string, args ...Expr) {
	d.WriteString(name + "(")
	for i, a := range args {
		if i > 0 {
			d.WriteString(", ")
		}
		d.expr(a)
	}
	d.WriteByte(')')
}

func (d *dumper) expr(expr Expr) {
	switch n := expr.(type) {
	case *Lit:
		d.WriteString("Lit(" + LitString(n) + ")")
	case *Var:
		d.WriteString("Var(" + n.Name + ")")
	case *Attribute:
		d.WriteString("Attr(")
		d.expr(n.X)
		d.WriteString(", " + n.Name + ")")
	case *Call:
		d.WriteString("Call(")
		d.expr(n.Func)
		d.WriteString(", ")
		d.arglist(n.Args)
		d.WriteByte(')')
	case *GetItem:
		d.WriteString("GetItem(")
		d.expr(n.X)
		d.WriteString(", ")
		d.exprs(n.Index.Exprs)
		d.WriteByte(')')
	case *Slice:
		if n.Start != nil {
			d.expr(n.Start)
		}
		d.WriteByte(':')
		if n.Stop != nil {
			d.expr(n.Stop)
		}
		if n.Step != nil {
			d.WriteByte(':')
			d.expr(n.Step)
		}
	case *Unary:
		d.call(n.Op.String(), n.X)
	case *Binary:
		d.call(n.Op.String(), n.X, n.Y)
	case *BoolOp:
		d.call(n.Op.String(), n.X, n.Y)
	case *Comparison:
		d.WriteString("Comparison(")
		d.expr(n.Operands[0])
		for i, op := range n.Ops {
			d.WriteString(" " + op.String() + " ")
			d.expr(n.Operands[i+1])
		}
		d.WriteByte(')')
	case *Lambda:
		d.WriteString("Lambda(")
		d.params(n.Params)
		d.WriteString(", ")
		d.expr(n.Body)
		d.WriteByte(')')
	case *IfElse:
		d.call("IfElse", n.Cond, n.Then, n.Else)
	case *ListConstr:
		d.WriteString("ListConstr")
		d.exprs(n.Elts)
	case *TupleConstr:
		d.WriteString("TupleConstr")
		d.exprs(n.Elts)
	case *SetConstr:
		d.WriteString("SetConstr")
		d.exprs(n.Elts)
	case *DictConstr:
		d.WriteString("DictConstr[")
		for i, kv := range n.Entries {
			if i > 0 {
				d.WriteString(", ")
			}
			d.keyValue(kv)
		}
		d.WriteByte(']')
	case *ListCompr:
		d.WriteString("ListCompr(")
		d.expr(n.Elt)
		d.clauses(n.Clauses)
		d.WriteByte(')')
	case *SetCompr:
		d.WriteString("SetCompr(")
		d.expr(n.Elt)
		d.clauses(n.Clauses)
		d.WriteByte(')')
	case *GeneratorCompr:
		d.WriteString("GeneratorCompr(")
		d.expr(n.Elt)
		d.clauses(n.Clauses)
		d.WriteByte(')')
	case *DictCompr:
		d.WriteString("DictCompr(")
		d.expr(n.Key)
		d.WriteString(": ")
		d.expr(n.Value)
		d.clauses(n.Clauses)
		d.WriteByte(')')
	case *YieldExpr:
		d.WriteString("Yield")
		d.exprList(n.Value)
	case *Star:
		d.call("Star", n.X)
	default:
		panic(fmt.Sprintf("ast: unexpected expression %T", expr))
	}
}

// LitString renders a literal value the way the language prints it
func LitString(l *Lit) string {
	switch l.Kind {
	case NoneLit:
		return "None"
	case TrueLit:
		return "True"
	case FalseLit:
		return "False"
	case EllipsisLit:
		return "Ellipsis"
	case IntLit:
		return l.Int.String()
	case FloatLit:
		return FloatString(l.Float)
	case StrLit:
		return Quote(l.Str)
	}
	panic(fmt.Sprintf("ast: unexpected literal kind %d", l.Kind))
}

// FloatString formats f with the shortest representation that reads back
// as the same value, always keeping a decimal point or exponent
func FloatString(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	exp := 0
	if f != 0 {
		exp = int(math.Floor(math.Log10(math.Abs(f))))
	}
	if exp < -4 || exp >= 16 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Quote renders s as a single-quoted string literal, switching to double
// quotes when s contains a single quote and no double quote
func Quote(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}
