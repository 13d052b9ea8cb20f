// File: parser.go
// Title: Smython Parser
// Description: Entry points of the parser. A Parser holds configuration
//              only; every call to Parse runs on its own token cursor, so
//              one Parser may be shared between goroutines.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-17
// Modified: 2025-03-26
//
// Change History:
// - 2025-03-17 v0.1.0: Initial implementation
// - 2025-03-22 v0.1.0: ParseExpression and nesting limit
// - 2025-03-24 v0.1.0: Optional structural validation of the result
// - 2025-03-26 v0.1.0: Tokenize for tools

package parser

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	mdwerror "github.com/msto63/smython/foundation/core/error"
	mdwlog "github.com/msto63/smython/foundation/core/log"
	"github.com/msto63/smython/foundation/smython/ast"
	"github.com/msto63/smython/foundation/smython/lexer"
	"github.com/msto63/smython/foundation/smython/token"
)

const (
	// DefaultMaxInputLength bounds the accepted source size in bytes
	DefaultMaxInputLength = 1 << 20

	// DefaultMaxDepth bounds the nesting of brackets, blocks and unary chains
	DefaultMaxDepth = 256
)

// Parser turns source text into a syntax tree
type Parser struct {
	logger  *mdwlog.Logger
	options Options
}

// Options configures parser behavior
type Options struct {
	Logger         *mdwlog.Logger
	MaxInputLength int  // Maximum source size in bytes
	TabSize        int  // Column width of a tab in indentation
	MaxDepth       int  // Maximum nesting depth
	ValidateTree   bool // Re-check structural invariants after parsing
}

// New creates a parser, filling unset options with defaults
func New(opts Options) (*Parser, error) {
	if opts.MaxInputLength < 0 || opts.TabSize < 0 || opts.MaxDepth < 0 {
		return nil, mdwerror.New("parser options must not be negative").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("parser.New")
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.TabSize == 0 {
		opts.TabSize = lexer.DefaultTabSize
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "smython-parser"),
		options: opts,
	}, nil
}

// Parse parses a complete source file. Malformed input yields an error
// marked with ErrSyntax that carries a *SyntaxError.
func (p *Parser) Parse(input string) (*ast.Suite, error) {
	if err := p.checkLength(input, "parser.Parse"); err != nil {
		return nil, err
	}

	logger := p.logger.WithRequestID(uuid.NewString())
	logger.Debug("Starting parse", mdwlog.Fields{"length": len(input)})
	start := time.Now()

	suite, err := p.newState(input).fileInput()
	if err != nil {
		return nil, p.fail(logger, err)
	}

	if p.options.ValidateTree {
		if err := ast.Validate(suite); err != nil {
			logger.Error("Parsed tree violates structural invariants", mdwlog.Fields{"error": err.Error()})
			return nil, mdwerror.Wrap(err, "invalid syntax tree").
				WithCode(mdwerror.CodeInternal).
				WithOperation("parser.Parse")
		}
	}

	logger.Debug("Parse completed", mdwlog.Fields{
		"statements":  len(suite.Stmts),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return suite, nil
}

// ParseExpression parses source holding exactly one expression
func (p *Parser) ParseExpression(input string) (ast.Expr, error) {
	if err := p.checkLength(input, "parser.ParseExpression"); err != nil {
		return nil, err
	}

	logger := p.logger.WithRequestID(uuid.NewString())
	logger.Debug("Starting expression parse", mdwlog.Fields{"length": len(input)})

	x, err := p.newState(input).exprInput()
	if err != nil {
		return nil, p.fail(logger, err)
	}
	return x, nil
}

// Tokenize lexes input into its token stream, ending with EOF. A lexical
// failure is reported like a parse failure.
func (p *Parser) Tokenize(input string) ([]token.Token, error) {
	if err := p.checkLength(input, "parser.Tokenize"); err != nil {
		return nil, err
	}
	toks, err := lexer.TokenizeWithOptions(input, lexer.Options{TabSize: p.options.TabSize})
	if err != nil {
		return nil, p.fail(p.logger, err)
	}
	return toks, nil
}

// Options returns the effective options
func (p *Parser) Options() Options {
	return p.options
}

// Parse parses input with default options
func Parse(input string) (*ast.Suite, error) {
	p, err := New(Options{})
	if err != nil {
		return nil, err
	}
	return p.Parse(input)
}

// ParseExpression parses a single expression with default options
func ParseExpression(input string) (ast.Expr, error) {
	p, err := New(Options{})
	if err != nil {
		return nil, err
	}
	return p.ParseExpression(input)
}

func (p *Parser) checkLength(input, op string) error {
	if len(input) <= p.options.MaxInputLength {
		return nil
	}
	return mdwerror.New(fmt.Sprintf("input exceeds maximum length of %d bytes", p.options.MaxInputLength)).
		WithCode(mdwerror.CodeInputTooLarge).
		WithOperation(op).
		WithDetail("length", len(input))
}

func (p *Parser) fail(logger *mdwlog.Logger, err error) error {
	se := toSyntaxError(err)
	logger.Warn("Parse failed", mdwlog.Fields{
		"line":   se.Pos.Line,
		"column": se.Pos.Column,
		"error":  se.Msg,
	})
	return errors.Mark(se, ErrSyntax)
}

func (p *Parser) newState(input string) *state {
	lex := lexer.NewWithOptions(input, lexer.Options{TabSize: p.options.TabSize})
	return &state{c: newCursor(lex), maxDepth: p.options.MaxDepth}
}

// state is the per-call parsing state
type state struct {
	c        *cursor
	depth    int
	maxDepth int
}

func (s *state) tok() token.Token     { return s.c.tok() }
func (s *state) kind() token.Kind     { return s.c.tok().Kind }
func (s *state) next() token.Token    { return s.c.next() }
func (s *state) peekKind() token.Kind { return s.c.peek(1).Kind }

// accept consumes the current token when it has the given kind
func (s *state) accept(kind token.Kind) bool {
	if s.kind() == kind {
		s.next()
		return true
	}
	return false
}

// expect consumes a token of the given kind or fails
func (s *state) expect(kind token.Kind) (token.Token, error) {
	tok := s.tok()
	if tok.Kind != kind {
		return tok, s.errorf(tok, "expected %s but found %s", describeKind(kind), describe(tok))
	}
	s.next()
	return tok, nil
}

// expectName consumes an identifier and returns its name
func (s *state) expectName() (string, error) {
	tok, err := s.expect(token.NAME)
	if err != nil {
		return "", err
	}
	return tok.Value, nil
}

// errorf reports a failure at tok. At an ILLEGAL token the pending lexer
// error wins.
func (s *state) errorf(tok token.Token, format string, args ...interface{}) error {
	if tok.Kind == token.ILLEGAL && s.c.err != nil {
		return toSyntaxError(s.c.err)
	}
	return &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

// errorAt reports a failure at the start of a node
func errorAt(n ast.Node, format string, args ...interface{}) error {
	return &SyntaxError{Pos: n.Position(), Msg: fmt.Sprintf(format, args...)}
}

// unexpected reports that tok cannot start or continue what
func (s *state) unexpected(tok token.Token, what string) error {
	return s.errorf(tok, "expected %s but found %s", what, describe(tok))
}

// enter guards recursion into nested constructs
func (s *state) enter(tok token.Token) error {
	s.depth++
	if s.depth > s.maxDepth {
		return s.errorf(tok, "too many nested levels (limit %d)", s.maxDepth)
	}
	return nil
}

func (s *state) leave() { s.depth-- }
