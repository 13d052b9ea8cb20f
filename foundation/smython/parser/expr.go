// File: expr.go
// Title: Expression Grammar
// Description: Expression parsing. Boolean and comparison levels are
//              separate productions; the arithmetic and bitwise levels
//              are handled by one precedence-climbing loop.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-18
// Modified: 2025-03-22
//
// Change History:
// - 2025-03-18 v0.1.0: Initial implementation
// - 2025-03-20 v0.1.0: Displays and comprehensions
// - 2025-03-22 v0.1.0: Slices, generator arguments, nesting limit

package parser

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/msto63/smython/foundation/smython/ast"
	"github.com/msto63/smython/foundation/smython/token"
)

// test parses a full expression
//
//	test: or_test ['if' or_test 'else' test] | lambdef
func (s *state) test() (ast.Expr, error) {
	if s.kind() == token.LAMBDA {
		return s.lambda(s.test)
	}
	x, err := s.orTest()
	if err != nil || s.kind() != token.IF {
		return x, err
	}
	tok := s.next()
	if err := s.enter(tok); err != nil {
		return nil, err
	}
	defer s.leave()

	cond, err := s.orTest()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.ELSE); err != nil {
		return nil, err
	}
	orelse, err := s.test()
	if err != nil {
		return nil, err
	}
	return &ast.IfElse{Cond: cond, Then: x, Else: orelse, Pos: x.Position()}, nil
}

// testNoCond parses a comprehension condition
//
//	test_nocond: or_test | lambdef_nocond
func (s *state) testNoCond() (ast.Expr, error) {
	if s.kind() == token.LAMBDA {
		return s.lambda(s.testNoCond)
	}
	return s.orTest()
}

// lambda parses an anonymous function; body parses its expression
//
//	lambdef: 'lambda' [varargslist] ':' test
func (s *state) lambda(body func() (ast.Expr, error)) (ast.Expr, error) {
	tok := s.next()
	if err := s.enter(tok); err != nil {
		return nil, err
	}
	defer s.leave()

	params, err := s.params(token.COLON, false)
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.COLON); err != nil {
		return nil, err
	}
	x, err := body()
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Params: params, Body: x, Pos: tok.Pos}, nil
}

// orTest parses
//
//	or_test: and_test ('or' and_test)*
func (s *state) orTest() (ast.Expr, error) {
	x, err := s.andTest()
	if err != nil {
		return nil, err
	}
	for s.accept(token.OR) {
		y, err := s.andTest()
		if err != nil {
			return nil, err
		}
		x = &ast.BoolOp{Op: ast.Or, X: x, Y: y, Pos: x.Position()}
	}
	return x, nil
}

// andTest parses
//
//	and_test: not_test ('and' not_test)*
func (s *state) andTest() (ast.Expr, error) {
	x, err := s.notTest()
	if err != nil {
		return nil, err
	}
	for s.accept(token.AND) {
		y, err := s.notTest()
		if err != nil {
			return nil, err
		}
		x = &ast.BoolOp{Op: ast.And, X: x, Y: y, Pos: x.Position()}
	}
	return x, nil
}

// notTest parses
//
//	not_test: 'not' not_test | comparison
func (s *state) notTest() (ast.Expr, error) {
	if s.kind() != token.NOT {
		return s.comparison()
	}
	tok := s.next()
	if err := s.enter(tok); err != nil {
		return nil, err
	}
	defer s.leave()

	x, err := s.notTest()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Op: ast.Not, X: x, Pos: tok.Pos}, nil
}

// comparison parses a chain of comparisons into one node
//
//	comparison: expr (comp_op expr)*
//	comp_op: '<' | '>' | '==' | '>=' | '<=' | '!=' | 'in' | 'not' 'in' | 'is' | 'is' 'not'
func (s *state) comparison() (ast.Expr, error) {
	x, err := s.expr()
	if err != nil {
		return nil, err
	}
	var cmp *ast.Comparison
	for {
		op, ok := s.cmpOp()
		if !ok {
			break
		}
		y, err := s.expr()
		if err != nil {
			return nil, err
		}
		if cmp == nil {
			cmp = &ast.Comparison{Operands: []ast.Expr{x}, Pos: x.Position()}
		}
		cmp.Ops = append(cmp.Ops, op)
		cmp.Operands = append(cmp.Operands, y)
	}
	if cmp == nil {
		return x, nil
	}
	return cmp, nil
}

var cmpOps = map[token.Kind]ast.CmpOp{
	token.LT: ast.Lt,
	token.GT: ast.Gt,
	token.LE: ast.Le,
	token.GE: ast.Ge,
	token.EQ: ast.Eq,
	token.NE: ast.Ne,
	token.IN: ast.In,
}

// cmpOp consumes a comparison operator if one follows
func (s *state) cmpOp() (ast.CmpOp, bool) {
	kind := s.kind()
	if op, ok := cmpOps[kind]; ok {
		s.next()
		return op, true
	}
	switch {
	case kind == token.NOT && s.peekKind() == token.IN:
		s.next()
		s.next()
		return ast.NotIn, true
	case kind == token.IS:
		s.next()
		if s.accept(token.NOT) {
			return ast.IsNot, true
		}
		return ast.Is, true
	}
	return 0, false
}

type binaryLevel struct {
	prec int
	op   ast.BinaryOp
}

// binaryOps lists the left-associative binary operators by precedence
var binaryOps = map[token.Kind]binaryLevel{
	token.PIPE:    {1, ast.BitOr},
	token.CARET:   {2, ast.BitXor},
	token.AMP:     {3, ast.BitAnd},
	token.LSHIFT:  {4, ast.LShift},
	token.RSHIFT:  {4, ast.RShift},
	token.PLUS:    {5, ast.Add},
	token.MINUS:   {5, ast.Sub},
	token.STAR:    {6, ast.Mul},
	token.SLASH:   {6, ast.Div},
	token.DSLASH:  {6, ast.IntDiv},
	token.PERCENT: {6, ast.Mod},
}

// expr parses a bitwise-or expression
//
//	expr: xor_expr ('|' xor_expr)*
//	xor_expr: and_expr ('^' and_expr)*
//	and_expr: shift_expr ('&' shift_expr)*
//	shift_expr: arith_expr (('<<'|'>>') arith_expr)*
//	arith_expr: term (('+'|'-') term)*
//	term: factor (('*'|'/'|'%'|'//') factor)*
func (s *state) expr() (ast.Expr, error) {
	return s.binary(1)
}

// binary climbs operators binding at least as tightly as minPrec
func (s *state) binary(minPrec int) (ast.Expr, error) {
	x, err := s.factor()
	if err != nil {
		return nil, err
	}
	for {
		level, ok := binaryOps[s.kind()]
		if !ok || level.prec < minPrec {
			return x, nil
		}
		s.next()
		y, err := s.binary(level.prec + 1)
		if err != nil {
			return nil, err
		}
		x = &ast.Binary{Op: level.op, X: x, Y: y, Pos: x.Position()}
	}
}

var unaryOps = map[token.Kind]ast.UnaryOp{
	token.MINUS: ast.Neg,
	token.PLUS:  ast.UPos,
	token.TILDE: ast.Invert,
}

// factor parses
//
//	factor: ('+'|'-'|'~') factor | power
func (s *state) factor() (ast.Expr, error) {
	op, ok := unaryOps[s.kind()]
	if !ok {
		return s.power()
	}
	tok := s.next()
	if err := s.enter(tok); err != nil {
		return nil, err
	}
	defer s.leave()

	x, err := s.factor()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Op: op, X: x, Pos: tok.Pos}, nil
}

// power parses; '**' is right-associative and binds its left operand
// tighter than a unary operator
//
//	power: atom trailer* ['**' factor]
func (s *state) power() (ast.Expr, error) {
	x, err := s.atomExpr()
	if err != nil {
		return nil, err
	}
	if s.kind() != token.DSTAR {
		return x, nil
	}
	tok := s.next()
	if err := s.enter(tok); err != nil {
		return nil, err
	}
	defer s.leave()

	y, err := s.factor()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Op: ast.Power, X: x, Y: y, Pos: x.Position()}, nil
}

// atomExpr parses an atom with its trailers
//
//	trailer: '(' [arglist] ')' | '[' subscriptlist ']' | '.' NAME
func (s *state) atomExpr() (ast.Expr, error) {
	x, err := s.atom()
	if err != nil {
		return nil, err
	}
	for {
		switch s.kind() {
		case token.LPAREN:
			args, err := s.callArgs()
			if err != nil {
				return nil, err
			}
			x = &ast.Call{Func: x, Args: args, Pos: x.Position()}
		case token.LBRACKET:
			index, err := s.subscriptList()
			if err != nil {
				return nil, err
			}
			x = &ast.GetItem{X: x, Index: index, Pos: x.Position()}
		case token.DOT:
			s.next()
			name, err := s.expectName()
			if err != nil {
				return nil, err
			}
			x = &ast.Attribute{X: x, Name: name, Pos: x.Position()}
		default:
			return x, nil
		}
	}
}

// subscriptList parses the bracketed index of a subscript
//
//	subscriptlist: subscript (',' subscript)* [',']
func (s *state) subscriptList() (*ast.ExprList, error) {
	open := s.next()
	if err := s.enter(open); err != nil {
		return nil, err
	}
	defer s.leave()

	list := &ast.ExprList{Pos: s.tok().Pos}
	trailing := false
	for {
		x, err := s.subscript()
		if err != nil {
			return nil, err
		}
		list.Exprs = append(list.Exprs, x)
		if trailing = s.accept(token.COMMA); !trailing || s.kind() == token.RBRACKET {
			break
		}
	}
	list.Single = len(list.Exprs) == 1 && !trailing
	if _, err := s.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return list, nil
}

// subscript parses an index or a slice
//
//	subscript: test | [test] ':' [test] [':' [test]]
func (s *state) subscript() (ast.Expr, error) {
	pos := s.tok().Pos
	var start ast.Expr
	if s.kind() != token.COLON {
		x, err := s.test()
		if err != nil || s.kind() != token.COLON {
			return x, err
		}
		start = x
	}
	s.next()

	slice := &ast.Slice{Start: start, Pos: pos}
	var err error
	if !s.atSliceEnd(true) {
		if slice.Stop, err = s.test(); err != nil {
			return nil, err
		}
	}
	if s.accept(token.COLON) && !s.atSliceEnd(false) {
		if slice.Step, err = s.test(); err != nil {
			return nil, err
		}
	}
	return slice, nil
}

func (s *state) atSliceEnd(colon bool) bool {
	switch s.kind() {
	case token.COMMA, token.RBRACKET:
		return true
	case token.COLON:
		return colon
	}
	return false
}

// atom parses names, literals and bracketed displays
//
//	atom: '(' [yield_expr | testlist_comp] ')' | '[' [testlist_comp] ']' |
//	      '{' [dictorsetmaker] '}' | NAME | NUMBER | STRING+ |
//	      '...' | 'None' | 'True' | 'False'
func (s *state) atom() (ast.Expr, error) {
	tok := s.tok()
	switch tok.Kind {
	case token.NAME:
		s.next()
		return &ast.Var{Name: tok.Value, Pos: tok.Pos}, nil
	case token.NUMBER:
		s.next()
		return s.number(tok)
	case token.STRING:
		s.next()
		return ast.NewStr(tok.Value, tok.Pos), nil
	case token.NONE:
		s.next()
		return ast.NewNone(tok.Pos), nil
	case token.TRUE:
		s.next()
		return &ast.Lit{Kind: ast.TrueLit, Pos: tok.Pos}, nil
	case token.FALSE:
		s.next()
		return &ast.Lit{Kind: ast.FalseLit, Pos: tok.Pos}, nil
	case token.ELLIPSIS:
		s.next()
		return &ast.Lit{Kind: ast.EllipsisLit, Pos: tok.Pos}, nil
	case token.LPAREN:
		return s.parenAtom()
	case token.LBRACKET:
		return s.listAtom()
	case token.LBRACE:
		return s.braceAtom()
	}
	return nil, s.unexpected(tok, "expression")
}

// number converts a NUMBER token into an int or float literal
func (s *state) number(tok token.Token) (ast.Expr, error) {
	text := tok.Value
	if len(text) > 1 && text[0] == '0' && strings.ContainsAny(text[1:2], "xXoObB") {
		v, ok := new(big.Int).SetString(text, 0)
		if !ok {
			return nil, s.errorf(tok, "invalid number literal %q", tok.Text)
		}
		return ast.NewInt(v, tok.Pos), nil
	}
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, s.errorf(tok, "invalid number literal %q", tok.Text)
		}
		return &ast.Lit{Kind: ast.FloatLit, Float: f, Pos: tok.Pos}, nil
	}
	if len(text) > 1 && text[0] == '0' && strings.Trim(text, "0") != "" {
		return nil, s.errorf(tok, "leading zeros in decimal integer literals are not permitted")
	}
	v, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, s.errorf(tok, "invalid number literal %q", tok.Text)
	}
	return ast.NewInt(v, tok.Pos), nil
}

// parenAtom parses a parenthesized expression, tuple, generator or
// yield expression
//
//	testlist_comp: (test|star_expr) (comp_for | (',' (test|star_expr))* [','])
func (s *state) parenAtom() (ast.Expr, error) {
	open := s.next()
	if err := s.enter(open); err != nil {
		return nil, err
	}
	defer s.leave()

	if s.accept(token.RPAREN) {
		return &ast.TupleConstr{Pos: open.Pos}, nil
	}
	if s.kind() == token.YIELD {
		y, err := s.yieldExpr()
		if err != nil {
			return nil, err
		}
		if _, err := s.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return y, nil
	}

	first, err := s.testOrStar()
	if err != nil {
		return nil, err
	}
	if s.kind() == token.FOR {
		clauses, err := s.comprehension(first, token.RPAREN)
		if err != nil {
			return nil, err
		}
		return &ast.GeneratorCompr{Elt: first, Clauses: clauses, Pos: open.Pos}, nil
	}
	if s.accept(token.RPAREN) {
		if _, ok := first.(*ast.Star); ok {
			return nil, errorAt(first, "can't use starred expression here")
		}
		return first, nil
	}
	elts, err := s.displayRest(first, token.RPAREN)
	if err != nil {
		return nil, err
	}
	return &ast.TupleConstr{Elts: elts, Pos: open.Pos}, nil
}

// listAtom parses a list display or list comprehension
func (s *state) listAtom() (ast.Expr, error) {
	open := s.next()
	if err := s.enter(open); err != nil {
		return nil, err
	}
	defer s.leave()

	if s.accept(token.RBRACKET) {
		return &ast.ListConstr{Pos: open.Pos}, nil
	}
	first, err := s.testOrStar()
	if err != nil {
		return nil, err
	}
	if s.kind() == token.FOR {
		clauses, err := s.comprehension(first, token.RBRACKET)
		if err != nil {
			return nil, err
		}
		return &ast.ListCompr{Elt: first, Clauses: clauses, Pos: open.Pos}, nil
	}
	elts, err := s.displayRest(first, token.RBRACKET)
	if err != nil {
		return nil, err
	}
	return &ast.ListConstr{Elts: elts, Pos: open.Pos}, nil
}

// braceAtom parses dict and set displays and comprehensions
//
//	dictorsetmaker: test ':' test (comp_for | (',' test ':' test)* [',']) |
//	                (test|star_expr) (comp_for | (',' (test|star_expr))* [','])
func (s *state) braceAtom() (ast.Expr, error) {
	open := s.next()
	if err := s.enter(open); err != nil {
		return nil, err
	}
	defer s.leave()

	if s.accept(token.RBRACE) {
		return &ast.DictConstr{Pos: open.Pos}, nil
	}
	first, err := s.testOrStar()
	if err != nil {
		return nil, err
	}

	if s.kind() != token.COLON {
		if s.kind() == token.FOR {
			clauses, err := s.comprehension(first, token.RBRACE)
			if err != nil {
				return nil, err
			}
			return &ast.SetCompr{Elt: first, Clauses: clauses, Pos: open.Pos}, nil
		}
		elts, err := s.displayRest(first, token.RBRACE)
		if err != nil {
			return nil, err
		}
		return &ast.SetConstr{Elts: elts, Pos: open.Pos}, nil
	}

	if _, ok := first.(*ast.Star); ok {
		return nil, errorAt(first, "can't use starred expression here")
	}
	s.next()
	value, err := s.test()
	if err != nil {
		return nil, err
	}

	if s.kind() == token.FOR {
		clauses, err := s.comprehension(nil, token.RBRACE)
		if err != nil {
			return nil, err
		}
		return &ast.DictCompr{Key: first, Value: value, Clauses: clauses, Pos: open.Pos}, nil
	}

	dict := &ast.DictConstr{Entries: []*ast.KeyValue{{Key: first, Value: value, Pos: first.Position()}}, Pos: open.Pos}
	for s.accept(token.COMMA) && s.kind() != token.RBRACE {
		key, err := s.test()
		if err != nil {
			return nil, err
		}
		if _, err := s.expect(token.COLON); err != nil {
			return nil, err
		}
		value, err := s.test()
		if err != nil {
			return nil, err
		}
		dict.Entries = append(dict.Entries, &ast.KeyValue{Key: key, Value: value, Pos: key.Position()})
	}
	if _, err := s.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return dict, nil
}

// displayRest parses the elements after the first one of a display and
// the closing bracket
func (s *state) displayRest(first ast.Expr, close token.Kind) ([]ast.Expr, error) {
	elts := []ast.Expr{first}
	for s.accept(token.COMMA) && s.kind() != close {
		x, err := s.testOrStar()
		if err != nil {
			return nil, err
		}
		elts = append(elts, x)
	}
	if _, err := s.expect(close); err != nil {
		return nil, err
	}
	return elts, nil
}

// comprehension parses the clauses after the head expression and the
// closing bracket. A nil head belongs to a dict comprehension.
func (s *state) comprehension(head ast.Expr, close token.Kind) ([]ast.CompClause, error) {
	if _, ok := head.(*ast.Star); ok {
		return nil, errorAt(head, "iterable unpacking cannot be used in comprehension")
	}
	clauses, err := s.compClauses()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(close); err != nil {
		return nil, err
	}
	return clauses, nil
}

// compClauses parses a for clause followed by any for and if clauses
//
//	comp_for: 'for' exprlist 'in' or_test [comp_iter]
//	comp_if: 'if' test_nocond [comp_iter]
//	comp_iter: comp_for | comp_if
func (s *state) compClauses() ([]ast.CompClause, error) {
	var clauses []ast.CompClause
	for {
		tok := s.tok()
		switch tok.Kind {
		case token.FOR:
			s.next()
			targets, err := s.exprList()
			if err != nil {
				return nil, err
			}
			if err := checkTargets(targets, assignTarget); err != nil {
				return nil, err
			}
			if _, err := s.expect(token.IN); err != nil {
				return nil, err
			}
			source, err := s.orTest()
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, &ast.CompFor{Targets: targets, Source: source, Pos: tok.Pos})
		case token.IF:
			s.next()
			cond, err := s.testNoCond()
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, &ast.CompIf{Cond: cond, Pos: tok.Pos})
		default:
			return clauses, nil
		}
	}
}

// yieldExpr parses
//
//	yield_expr: 'yield' [testlist]
func (s *state) yieldExpr() (*ast.YieldExpr, error) {
	tok := s.next()
	if !canStartExpr(s.kind()) {
		return &ast.YieldExpr{Value: noneList(tok.Pos), Pos: tok.Pos}, nil
	}
	value, err := s.testList()
	if err != nil {
		return nil, err
	}
	return &ast.YieldExpr{Value: value, Pos: tok.Pos}, nil
}

// testOrStar parses
//
//	(test | star_expr)
//	star_expr: '*' expr
func (s *state) testOrStar() (ast.Expr, error) {
	if s.kind() == token.STAR {
		return s.starExpr()
	}
	return s.test()
}

// exprOrStar parses
//
//	(expr | star_expr)
func (s *state) exprOrStar() (ast.Expr, error) {
	if s.kind() == token.STAR {
		return s.starExpr()
	}
	return s.expr()
}

func (s *state) starExpr() (ast.Expr, error) {
	tok := s.next()
	x, err := s.expr()
	if err != nil {
		return nil, err
	}
	return &ast.Star{X: x, Pos: tok.Pos}, nil
}

// testList parses
//
//	testlist: test (',' test)* [',']
func (s *state) testList() (*ast.ExprList, error) {
	return s.list(s.test)
}

// testListStarExpr parses
//
//	testlist_star_expr: (test|star_expr) (',' (test|star_expr))* [',']
func (s *state) testListStarExpr() (*ast.ExprList, error) {
	return s.list(s.testOrStar)
}

// exprList parses
//
//	exprlist: (expr|star_expr) (',' (expr|star_expr))* [',']
func (s *state) exprList() (*ast.ExprList, error) {
	return s.list(s.exprOrStar)
}

// list parses a bare comma-separated sequence. Single records that one
// element was written without a trailing comma.
func (s *state) list(elem func() (ast.Expr, error)) (*ast.ExprList, error) {
	list := &ast.ExprList{Pos: s.tok().Pos}
	trailing := false
	for {
		x, err := elem()
		if err != nil {
			return nil, err
		}
		list.Exprs = append(list.Exprs, x)
		if trailing = s.accept(token.COMMA); !trailing || !canStartExpr(s.kind()) {
			break
		}
	}
	list.Single = len(list.Exprs) == 1 && !trailing
	return list, nil
}

// canStartExpr reports whether kind may begin a list element
func canStartExpr(kind token.Kind) bool {
	switch kind {
	case token.NAME, token.NUMBER, token.STRING, token.ELLIPSIS,
		token.NONE, token.TRUE, token.FALSE,
		token.LPAREN, token.LBRACKET, token.LBRACE,
		token.PLUS, token.MINUS, token.TILDE, token.STAR,
		token.NOT, token.LAMBDA:
		return true
	}
	return false
}
