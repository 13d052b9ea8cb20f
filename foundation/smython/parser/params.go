// File: params.go
// Title: Parameter and Argument Lists
// Description: Parses def and lambda parameter lists and call argument
//              lists, enforcing their ordering rules while parsing.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-19
// Modified: 2025-04-14
//
// Change History:
// - 2025-03-19 v0.1.0: Initial implementation
// - 2025-03-21 v0.1.0: Keyword-only parameters, duplicate names
// - 2025-04-14 v0.1.0: Default ordering also holds after the * parameter

package parser

import (
	"github.com/msto63/smython/foundation/smython/ast"
	"github.com/msto63/smython/foundation/smython/token"
)

// params parses a parameter list up to, but not including, end.
// Annotations are accepted only for def parameters.
//
//	typedargslist: param (',' param)* [',']
//	param: ['*' | '**'] NAME [':' test] ['=' test]
//	varargslist: the same without annotations
func (s *state) params(end token.Kind, annotated bool) (*ast.Params, error) {
	params := &ast.Params{Pos: s.tok().Pos}
	names := make(map[string]bool)
	var seenDefault, seenVarArgs, seenKwArgs bool

	for s.kind() != end {
		tok := s.tok()
		if seenKwArgs {
			return nil, s.errorf(tok, "parameter follows ** parameter")
		}

		param := &ast.Param{Pos: tok.Pos}
		switch tok.Kind {
		case token.STAR:
			if seenVarArgs {
				return nil, s.errorf(tok, "duplicate * parameter")
			}
			s.next()
			param.Kind = ast.VarArgs
			seenVarArgs = true
		case token.DSTAR:
			s.next()
			param.Kind = ast.KwArgs
			seenKwArgs = true
		}

		nameTok := s.tok()
		name, err := s.expectName()
		if err != nil {
			return nil, err
		}
		if names[name] {
			return nil, s.errorf(nameTok, "duplicate parameter '%s'", name)
		}
		names[name] = true
		param.Name = name

		if annotated && s.accept(token.COLON) {
			if param.Annotation, err = s.test(); err != nil {
				return nil, err
			}
		}
		if s.kind() == token.ASSIGN {
			if param.Kind != ast.Plain {
				return nil, s.errorf(s.tok(), "variadic parameter '%s' cannot have a default value", name)
			}
			s.next()
			if param.Default, err = s.test(); err != nil {
				return nil, err
			}
		}
		if param.Kind == ast.Plain {
			if param.Default != nil {
				seenDefault = true
			} else if seenDefault {
				return nil, s.errorf(nameTok, "non-default parameter '%s' follows default parameter", name)
			}
		}

		params.List = append(params.List, param)
		if !s.accept(token.COMMA) {
			break
		}
	}
	return params, nil
}

// callArgs parses a parenthesized argument list
//
//	arglist: argument (',' argument)* [',']
//	argument: test [comp_for] | NAME '=' test | '*' test | '**' test
func (s *state) callArgs() (*ast.Arglist, error) {
	open, err := s.expect(token.LPAREN)
	if err != nil {
		return nil, err
	}
	if err := s.enter(open); err != nil {
		return nil, err
	}
	defer s.leave()

	args := &ast.Arglist{Pos: open.Pos}
	keywords := make(map[string]bool)

	for s.kind() != token.RPAREN {
		tok := s.tok()
		switch tok.Kind {
		case token.STAR:
			if args.VarArgs != nil {
				return nil, s.errorf(tok, "only one * argument is allowed")
			}
			if args.KwArgs != nil {
				return nil, s.errorf(tok, "* argument follows ** argument")
			}
			s.next()
			if args.VarArgs, err = s.test(); err != nil {
				return nil, err
			}

		case token.DSTAR:
			if args.KwArgs != nil {
				return nil, s.errorf(tok, "only one ** argument is allowed")
			}
			s.next()
			if args.KwArgs, err = s.test(); err != nil {
				return nil, err
			}

		default:
			kw, err := s.keywordArg()
			if err != nil {
				return nil, err
			}
			if kw != nil {
				if args.KwArgs != nil {
					return nil, s.errorf(tok, "keyword argument follows ** argument")
				}
				if keywords[kw.Name] {
					return nil, s.errorf(tok, "keyword argument repeated: %s", kw.Name)
				}
				keywords[kw.Name] = true
				args.Keywords = append(args.Keywords, kw)
				break
			}

			switch {
			case len(args.Keywords) > 0:
				return nil, s.errorf(tok, "positional argument follows keyword argument")
			case args.VarArgs != nil || args.KwArgs != nil:
				return nil, s.errorf(tok, "positional argument follows argument unpacking")
			}
			x, err := s.test()
			if err != nil {
				return nil, err
			}
			switch s.kind() {
			case token.ASSIGN:
				return nil, s.errorf(s.tok(), "expression cannot be used as a keyword name")
			case token.FOR:
				if x, err = s.generatorArg(x, args); err != nil {
					return nil, err
				}
			}
			args.Positional = append(args.Positional, x)
		}

		if !s.accept(token.COMMA) {
			break
		}
	}

	if _, err := s.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// keywordArg parses `NAME '=' test` when it follows; otherwise the
// cursor is left untouched
func (s *state) keywordArg() (*ast.Keyword, error) {
	if s.kind() != token.NAME {
		return nil, nil
	}
	m := s.c.mark()
	name := s.next()
	if !s.accept(token.ASSIGN) {
		s.c.reset(m)
		return nil, nil
	}
	value, err := s.test()
	if err != nil {
		return nil, err
	}
	return &ast.Keyword{Name: name.Value, Value: value, Pos: name.Pos}, nil
}

// generatorArg parses an unparenthesized generator, which must be the
// only argument of the call
func (s *state) generatorArg(elt ast.Expr, args *ast.Arglist) (ast.Expr, error) {
	if args.Len() > 0 {
		return nil, errorAt(elt, "generator expression must be parenthesized")
	}
	clauses, err := s.compClauses()
	if err != nil {
		return nil, err
	}
	if s.kind() != token.RPAREN {
		return nil, errorAt(elt, "generator expression must be parenthesized")
	}
	return &ast.GeneratorCompr{Elt: elt, Clauses: clauses, Pos: elt.Position()}, nil
}
