// File: stmt.go
// Title: Statement Grammar
// Description: Recursive descent over statements and blocks. Each
//              production is one method named after its grammar rule.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-18
// Modified: 2025-03-23
//
// Change History:
// - 2025-03-18 v0.1.0: Simple and compound statements
// - 2025-03-21 v0.1.0: Decorators, chained assignment
// - 2025-03-23 v0.1.0: Target legality checks

package parser

import (
	"github.com/msto63/smython/foundation/smython/ast"
	"github.com/msto63/smython/foundation/smython/token"
)

// fileInput parses a whole module
//
//	file_input: (NEWLINE | stmt)* ENDMARKER
func (s *state) fileInput() (*ast.Suite, error) {
	suite := &ast.Suite{Pos: s.tok().Pos}
	for {
		switch s.kind() {
		case token.NEWLINE:
			s.next()
			continue
		case token.EOF:
			return suite, nil
		}
		stmts, err := s.stmt()
		if err != nil {
			return nil, err
		}
		suite.Stmts = append(suite.Stmts, stmts...)
	}
}

// exprInput parses a lone expression
//
//	eval_input: test NEWLINE* ENDMARKER
func (s *state) exprInput() (ast.Expr, error) {
	s.accept(token.INDENT)
	x, err := s.test()
	if err != nil {
		return nil, err
	}
	for s.accept(token.NEWLINE) || s.accept(token.DEDENT) {
	}
	if tok := s.tok(); tok.Kind != token.EOF {
		return nil, s.errorf(tok, "unexpected %s after expression", describe(tok))
	}
	return x, nil
}

// stmt parses one statement; a simple statement line may hold several
//
//	stmt: simple_stmt | compound_stmt
func (s *state) stmt() ([]ast.Stmt, error) {
	switch s.kind() {
	case token.IF:
		return one(s.ifStmt())
	case token.WHILE:
		return one(s.whileStmt())
	case token.FOR:
		return one(s.forStmt())
	case token.TRY:
		return one(s.tryStmt())
	case token.WITH:
		return one(s.withStmt())
	case token.DEF:
		return one(s.funcDef(nil))
	case token.CLASS:
		return one(s.classDef(nil))
	case token.AT:
		return one(s.decorated())
	case token.INDENT:
		return nil, s.errorf(s.tok(), "unexpected indent")
	}
	return s.simpleStmt()
}

func one(st ast.Stmt, err error) ([]ast.Stmt, error) {
	if err != nil {
		return nil, err
	}
	return []ast.Stmt{st}, nil
}

// simpleStmt parses a line of small statements
//
//	simple_stmt: small_stmt (';' small_stmt)* [';'] NEWLINE
func (s *state) simpleStmt() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for {
		st, err := s.smallStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
		if !s.accept(token.SEMI) || s.kind() == token.NEWLINE {
			break
		}
	}
	if _, err := s.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	return stmts, nil
}

// smallStmt dispatches on the leading keyword
//
//	small_stmt: expr_stmt | del_stmt | pass_stmt | flow_stmt |
//	            import_stmt | global_stmt | nonlocal_stmt | assert_stmt
func (s *state) smallStmt() (ast.Stmt, error) {
	tok := s.tok()
	switch tok.Kind {
	case token.PASS:
		s.next()
		return &ast.Pass{Pos: tok.Pos}, nil
	case token.BREAK:
		s.next()
		return &ast.Break{Pos: tok.Pos}, nil
	case token.CONTINUE:
		s.next()
		return &ast.Continue{Pos: tok.Pos}, nil
	case token.DEL:
		return s.delStmt()
	case token.RETURN:
		return s.returnStmt()
	case token.RAISE:
		return s.raiseStmt()
	case token.YIELD:
		y, err := s.yieldExpr()
		if err != nil {
			return nil, err
		}
		return &ast.YieldStmt{Value: y.Value, Pos: tok.Pos}, nil
	case token.IMPORT:
		return s.importName()
	case token.FROM:
		return s.importFrom()
	case token.GLOBAL, token.NONLOCAL:
		return s.globalStmt()
	case token.ASSERT:
		return s.assertStmt()
	}
	return s.exprStmt()
}

// atStmtEnd reports whether the current small statement is complete
func (s *state) atStmtEnd() bool {
	switch s.kind() {
	case token.NEWLINE, token.SEMI, token.EOF:
		return true
	}
	return false
}

// delStmt parses
//
//	del_stmt: 'del' exprlist
func (s *state) delStmt() (ast.Stmt, error) {
	tok := s.next()
	targets, err := s.exprList()
	if err != nil {
		return nil, err
	}
	if err := checkTargets(targets, delTarget); err != nil {
		return nil, err
	}
	return &ast.Del{Targets: targets, Pos: tok.Pos}, nil
}

// returnStmt parses
//
//	return_stmt: 'return' [testlist]
func (s *state) returnStmt() (ast.Stmt, error) {
	tok := s.next()
	if s.atStmtEnd() {
		return &ast.Return{Value: noneList(tok.Pos), Pos: tok.Pos}, nil
	}
	value, err := s.testList()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Value: value, Pos: tok.Pos}, nil
}

// raiseStmt parses
//
//	raise_stmt: 'raise' [test ['from' test]]
func (s *state) raiseStmt() (ast.Stmt, error) {
	tok := s.next()
	raise := &ast.Raise{Pos: tok.Pos}
	if s.atStmtEnd() {
		return raise, nil
	}
	var err error
	if raise.Exc, err = s.test(); err != nil {
		return nil, err
	}
	if s.accept(token.FROM) {
		if raise.Cause, err = s.test(); err != nil {
			return nil, err
		}
	}
	return raise, nil
}

// importName parses
//
//	import_name: 'import' dotted_as_name (',' dotted_as_name)*
//	dotted_as_name: dotted_name ['as' NAME]
func (s *state) importName() (ast.Stmt, error) {
	tok := s.next()
	imp := &ast.Import{Pos: tok.Pos}
	for {
		path, err := s.dottedName()
		if err != nil {
			return nil, err
		}
		alias := ast.DottedAlias{Path: path}
		if s.accept(token.AS) {
			if alias.As, err = s.expectName(); err != nil {
				return nil, err
			}
		}
		imp.Names = append(imp.Names, alias)
		if !s.accept(token.COMMA) {
			return imp, nil
		}
	}
}

// importFrom parses
//
//	import_from: 'from' dotted_name 'import'
//	             ('*' | '(' import_as_names [','] ')' | import_as_names)
//	import_as_name: NAME ['as' NAME]
func (s *state) importFrom() (ast.Stmt, error) {
	tok := s.next()
	module, err := s.dottedName()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.IMPORT); err != nil {
		return nil, err
	}
	from := &ast.From{Module: module, Pos: tok.Pos}

	// a star import leaves Names empty
	if s.accept(token.STAR) {
		return from, nil
	}

	parens := s.accept(token.LPAREN)
	for {
		name, err := s.expectName()
		if err != nil {
			return nil, err
		}
		alias := ast.NameAlias{Name: name}
		if s.accept(token.AS) {
			if alias.As, err = s.expectName(); err != nil {
				return nil, err
			}
		}
		from.Names = append(from.Names, alias)
		if !s.accept(token.COMMA) {
			break
		}
		if parens && s.kind() == token.RPAREN {
			break
		}
	}
	if parens {
		if _, err := s.expect(token.RPAREN); err != nil {
			return nil, err
		}
	}
	return from, nil
}

// dottedName parses
//
//	dotted_name: NAME ('.' NAME)*
func (s *state) dottedName() ([]string, error) {
	name, err := s.expectName()
	if err != nil {
		return nil, err
	}
	path := []string{name}
	for s.accept(token.DOT) {
		if name, err = s.expectName(); err != nil {
			return nil, err
		}
		path = append(path, name)
	}
	return path, nil
}

// globalStmt parses
//
//	global_stmt: 'global' NAME (',' NAME)*
//	nonlocal_stmt: 'nonlocal' NAME (',' NAME)*
func (s *state) globalStmt() (ast.Stmt, error) {
	tok := s.next()
	var names []string
	for {
		name, err := s.expectName()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if !s.accept(token.COMMA) {
			break
		}
	}
	if tok.Kind == token.NONLOCAL {
		return &ast.Nonlocal{Names: names, Pos: tok.Pos}, nil
	}
	return &ast.Global{Names: names, Pos: tok.Pos}, nil
}

// assertStmt parses
//
//	assert_stmt: 'assert' test [',' test]
func (s *state) assertStmt() (ast.Stmt, error) {
	tok := s.next()
	test, err := s.test()
	if err != nil {
		return nil, err
	}
	assert := &ast.Assert{Test: test, Pos: tok.Pos}
	if s.accept(token.COMMA) {
		if assert.Msg, err = s.test(); err != nil {
			return nil, err
		}
	}
	return assert, nil
}

var augOps = map[token.Kind]ast.BinaryOp{
	token.PLUSEQ:    ast.Add,
	token.MINUSEQ:   ast.Sub,
	token.STAREQ:    ast.Mul,
	token.SLASHEQ:   ast.Div,
	token.DSLASHEQ:  ast.IntDiv,
	token.PERCENTEQ: ast.Mod,
	token.DSTAREQ:   ast.Power,
	token.RSHIFTEQ:  ast.RShift,
	token.LSHIFTEQ:  ast.LShift,
	token.AMPEQ:     ast.BitAnd,
	token.CARETEQ:   ast.BitXor,
	token.PIPEEQ:    ast.BitOr,
}

// exprStmt parses expression statements and assignments
//
//	expr_stmt: testlist_star_expr (augassign (yield_expr | testlist) |
//	           ('=' (yield_expr | testlist_star_expr))*)
func (s *state) exprStmt() (ast.Stmt, error) {
	pos := s.tok().Pos
	first, err := s.testListStarExpr()
	if err != nil {
		return nil, err
	}

	if op, ok := augOps[s.kind()]; ok {
		if !first.Single || !augTarget(first.Exprs[0]) {
			return nil, errorAt(first, "illegal expression for augmented assignment")
		}
		s.next()
		value, err := s.assignValue(false)
		if err != nil {
			return nil, err
		}
		return &ast.AugAssign{Op: op, Target: first.Exprs[0], Value: value, Pos: pos}, nil
	}

	if s.kind() != token.ASSIGN {
		if err := checkValue(first); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Value: first, Pos: pos}, nil
	}

	lists := []*ast.ExprList{first}
	for s.accept(token.ASSIGN) {
		value, err := s.assignValue(true)
		if err != nil {
			return nil, err
		}
		lists = append(lists, value)
	}
	targets, value := lists[:len(lists)-1], lists[len(lists)-1]
	for _, t := range targets {
		if err := checkTargets(t, assignTarget); err != nil {
			return nil, err
		}
	}
	if err := checkValue(value); err != nil {
		return nil, err
	}
	return &ast.Assign{Targets: targets, Value: value, Pos: pos}, nil
}

// assignValue parses the right-hand side of an assignment
func (s *state) assignValue(starred bool) (*ast.ExprList, error) {
	if s.kind() == token.YIELD {
		y, err := s.yieldExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ExprList{Exprs: []ast.Expr{y}, Single: true, Pos: y.Pos}, nil
	}
	if starred {
		return s.testListStarExpr()
	}
	return s.testList()
}

func noneList(pos token.Position) *ast.ExprList {
	return &ast.ExprList{Exprs: []ast.Expr{ast.NewNone(pos)}, Single: true, Pos: pos}
}

// block parses the colon and the suite of a compound statement
func (s *state) block() (*ast.Suite, error) {
	if _, err := s.expect(token.COLON); err != nil {
		return nil, err
	}
	return s.suite()
}

// suite parses a block body
//
//	suite: simple_stmt | NEWLINE INDENT stmt+ DEDENT
func (s *state) suite() (*ast.Suite, error) {
	tok := s.tok()
	if tok.Kind != token.NEWLINE {
		stmts, err := s.simpleStmt()
		if err != nil {
			return nil, err
		}
		return &ast.Suite{Stmts: stmts, Pos: tok.Pos}, nil
	}
	s.next()
	if s.kind() != token.INDENT {
		return nil, s.errorf(s.tok(), "expected an indented block")
	}
	if err := s.enter(s.next()); err != nil {
		return nil, err
	}
	defer s.leave()

	suite := &ast.Suite{Pos: s.tok().Pos}
	for s.kind() != token.DEDENT {
		stmts, err := s.stmt()
		if err != nil {
			return nil, err
		}
		suite.Stmts = append(suite.Stmts, stmts...)
	}
	s.next()
	return suite, nil
}

// elseBlock parses an optional else clause, defaulting to an empty suite
func (s *state) elseBlock() (*ast.Suite, error) {
	if tok := s.tok(); tok.Kind != token.ELSE {
		return &ast.Suite{Pos: tok.Pos}, nil
	}
	s.next()
	return s.block()
}

// ifStmt parses an if statement; elif chains nest in the else suite
//
//	if_stmt: 'if' test ':' suite ('elif' test ':' suite)* ['else' ':' suite]
func (s *state) ifStmt() (ast.Stmt, error) {
	tok := s.next()
	cond, err := s.test()
	if err != nil {
		return nil, err
	}
	body, err := s.block()
	if err != nil {
		return nil, err
	}

	var orelse *ast.Suite
	switch s.kind() {
	case token.ELIF:
		pos := s.tok().Pos
		nested, err := s.ifStmt()
		if err != nil {
			return nil, err
		}
		orelse = &ast.Suite{Stmts: []ast.Stmt{nested}, Pos: pos}
	case token.ELSE:
		s.next()
		if orelse, err = s.block(); err != nil {
			return nil, err
		}
	default:
		orelse = ast.PassSuite(tok.Pos)
	}
	return &ast.If{Cond: cond, Body: body, Else: orelse, Pos: tok.Pos}, nil
}

// whileStmt parses
//
//	while_stmt: 'while' test ':' suite ['else' ':' suite]
func (s *state) whileStmt() (ast.Stmt, error) {
	tok := s.next()
	cond, err := s.test()
	if err != nil {
		return nil, err
	}
	body, err := s.block()
	if err != nil {
		return nil, err
	}
	orelse, err := s.elseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body, Else: orelse, Pos: tok.Pos}, nil
}

// forStmt parses
//
//	for_stmt: 'for' exprlist 'in' testlist ':' suite ['else' ':' suite]
func (s *state) forStmt() (ast.Stmt, error) {
	tok := s.next()
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
	iter, err := s.testList()
	if err != nil {
		return nil, err
	}
	body, err := s.block()
	if err != nil {
		return nil, err
	}
	orelse, err := s.elseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{Targets: targets, Iter: iter, Body: body, Else: orelse, Pos: tok.Pos}, nil
}

// tryStmt parses
//
//	try_stmt: 'try' ':' suite
//	          ((except_clause ':' suite)+ ['else' ':' suite] ['finally' ':' suite] |
//	           'finally' ':' suite)
func (s *state) tryStmt() (ast.Stmt, error) {
	tok := s.next()
	body, err := s.block()
	if err != nil {
		return nil, err
	}
	try := &ast.Try{Body: body, Pos: tok.Pos}

	for s.kind() == token.EXCEPT {
		h, err := s.exceptClause()
		if err != nil {
			return nil, err
		}
		if n := len(try.Handlers); n > 0 && try.Handlers[n-1].Type == nil {
			return nil, errorAt(h, "default 'except:' must be last")
		}
		try.Handlers = append(try.Handlers, h)
	}

	if len(try.Handlers) > 0 {
		if try.Else, err = s.elseBlock(); err != nil {
			return nil, err
		}
	} else {
		try.Else = &ast.Suite{Pos: s.tok().Pos}
	}

	if s.kind() == token.FINALLY {
		s.next()
		if try.Finally, err = s.block(); err != nil {
			return nil, err
		}
	} else if len(try.Handlers) == 0 {
		return nil, s.errorf(s.tok(), "expected 'except' or 'finally' block but found %s", describe(s.tok()))
	} else {
		try.Finally = &ast.Suite{Pos: s.tok().Pos}
	}
	return try, nil
}

// exceptClause parses a handler with its block
//
//	except_clause: 'except' [test ['as' NAME]]
func (s *state) exceptClause() (*ast.Except, error) {
	tok := s.next()
	h := &ast.Except{Pos: tok.Pos}
	if s.kind() != token.COLON {
		var err error
		if h.Type, err = s.test(); err != nil {
			return nil, err
		}
		if s.accept(token.AS) {
			if h.Name, err = s.expectName(); err != nil {
				return nil, err
			}
		}
	}
	body, err := s.block()
	if err != nil {
		return nil, err
	}
	h.Body = body
	return h, nil
}

// withStmt parses a single-item with statement
//
//	with_stmt: 'with' test ['as' expr] ':' suite
func (s *state) withStmt() (ast.Stmt, error) {
	tok := s.next()
	ctx, err := s.test()
	if err != nil {
		return nil, err
	}
	with := &ast.With{Context: ctx, Pos: tok.Pos}
	if s.accept(token.AS) {
		if with.Target, err = s.expr(); err != nil {
			return nil, err
		}
		if err := checkTarget(with.Target, withTarget); err != nil {
			return nil, err
		}
	}
	if with.Body, err = s.block(); err != nil {
		return nil, err
	}
	return with, nil
}

// decorated parses decorators and the definition they apply to
//
//	decorated: decorator+ (classdef | funcdef)
//	decorator: '@' dotted_name ['(' [arglist] ')'] NEWLINE
func (s *state) decorated() (ast.Stmt, error) {
	var decorators []*ast.Decorator
	for s.kind() == token.AT {
		tok := s.next()
		name, err := s.dottedName()
		if err != nil {
			return nil, err
		}
		d := &ast.Decorator{Name: name, Pos: tok.Pos}
		if s.kind() == token.LPAREN {
			if d.Args, err = s.callArgs(); err != nil {
				return nil, err
			}
		}
		if _, err := s.expect(token.NEWLINE); err != nil {
			return nil, err
		}
		decorators = append(decorators, d)
	}

	switch s.kind() {
	case token.DEF:
		return s.funcDef(decorators)
	case token.CLASS:
		return s.classDef(decorators)
	}
	return nil, s.errorf(s.tok(), "expected 'def' or 'class' after decorator but found %s", describe(s.tok()))
}

// funcDef parses
//
//	funcdef: 'def' NAME '(' [typedargslist] ')' ['->' test] ':' suite
func (s *state) funcDef(decorators []*ast.Decorator) (ast.Stmt, error) {
	tok := s.next()
	name, err := s.expectName()
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.LPAREN); err != nil {
		return nil, err
	}
	params, err := s.params(token.RPAREN, true)
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if s.accept(token.ARROW) {
		if params.Returns, err = s.test(); err != nil {
			return nil, err
		}
	}
	body, err := s.block()
	if err != nil {
		return nil, err
	}
	return &ast.Def{Name: name, Params: params, Body: body, Decorators: decorators, Pos: tok.Pos}, nil
}

// classDef parses
//
//	classdef: 'class' NAME ['(' [arglist] ')'] ':' suite
func (s *state) classDef(decorators []*ast.Decorator) (ast.Stmt, error) {
	tok := s.next()
	name, err := s.expectName()
	if err != nil {
		return nil, err
	}
	class := &ast.Class{Name: name, Decorators: decorators, Pos: tok.Pos}
	if s.kind() == token.LPAREN {
		if class.Bases, err = s.callArgs(); err != nil {
			return nil, err
		}
	}
	if class.Body, err = s.block(); err != nil {
		return nil, err
	}
	return class, nil
}
