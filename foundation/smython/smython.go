// File: smython.go
// Title: Smython Engine
// Description: Facade over lexer, parser, printer and dump. The engine owns
//              one configured parser, times every operation with the
//              logger and maps file access failures to coded errors.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-25
// Modified: 2025-03-26
//
// Change History:
// - 2025-03-25 v0.1.0: Initial engine
// - 2025-03-26 v0.1.0: Tokens and Format

package smython

import (
	"io/fs"
	"os"
	"sync"

	"github.com/cockroachdb/errors"

	mdwerror "github.com/msto63/smython/foundation/core/error"
	mdwlog "github.com/msto63/smython/foundation/core/log"
	"github.com/msto63/smython/foundation/smython/ast"
	"github.com/msto63/smython/foundation/smython/parser"
	"github.com/msto63/smython/foundation/smython/printer"
	"github.com/msto63/smython/foundation/smython/token"
)

// Engine parses Smython source. It is safe for concurrent use.
type Engine struct {
	parser *parser.Parser
	logger *mdwlog.Logger
}

// Options configures an engine
type Options struct {
	Logger *mdwlog.Logger
	Parser parser.Options
}

// New creates an engine. The parser inherits the engine logger unless
// Options.Parser names its own.
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Parser.Logger == nil {
		opts.Parser.Logger = opts.Logger
	}
	p, err := parser.New(opts.Parser)
	if err != nil {
		return nil, err
	}
	return &Engine{
		parser: p,
		logger: opts.Logger.WithField("component", "smython-engine"),
	}, nil
}

// Parser returns the underlying parser
func (e *Engine) Parser() *parser.Parser {
	return e.parser
}

// Parse parses a complete source text
func (e *Engine) Parse(source string) (*ast.Suite, error) {
	timer := e.logger.StartTimer("parse").WithField("length", len(source))
	suite, err := e.parser.Parse(source)
	e.stop(timer, err)
	return suite, err
}

// ParseFile reads and parses the file at path. Syntax errors keep their
// ErrSyntax mark and are prefixed with the path.
func (e *Engine) ParseFile(path string) (*ast.Suite, error) {
	src, err := ReadSource(path)
	if err != nil {
		e.logger.LogError(err)
		return nil, err
	}

	timer := e.logger.StartTimer("parse file").WithField("path", path)
	suite, err := e.parser.Parse(src)
	e.stop(timer, err)
	if err != nil {
		if parser.IsSyntaxError(err) {
			return nil, errors.WithMessage(err, path)
		}
		return nil, err
	}
	return suite, nil
}

// Tokens returns the token stream of source up to and including EOF
func (e *Engine) Tokens(source string) ([]token.Token, error) {
	timer := e.logger.StartTimer("tokenize")
	toks, err := e.parser.Tokenize(source)
	e.stop(timer.WithField("tokens", len(toks)), err)
	return toks, err
}

// Dump parses source and renders the tree in canonical dump notation
func (e *Engine) Dump(source string) (string, error) {
	suite, err := e.Parse(source)
	if err != nil {
		return "", err
	}
	return ast.Dump(suite), nil
}

// Format parses source and prints it back in canonical form
func (e *Engine) Format(source string) (string, error) {
	suite, err := e.Parse(source)
	if err != nil {
		return "", err
	}
	return printer.Source(suite)
}

// stop ends a timer; malformed input is an expected outcome and is not
// logged as a failure
func (e *Engine) stop(timer *mdwlog.Timer, err error) {
	switch {
	case err == nil:
		timer.Stop()
	case parser.IsSyntaxError(err):
		timer.WithField("syntax_error", true).Stop()
	default:
		timer.StopWithError(err)
	}
}

// ReadSource reads a source file, mapping failures to coded errors
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	code := mdwerror.CodeIO
	if errors.Is(err, fs.ErrNotExist) {
		code = mdwerror.CodeNotFound
	}
	return "", mdwerror.Wrap(err, "cannot read source file").
		WithCode(code).
		WithOperation("smython.ReadSource").
		WithDetail("path", path)
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the shared engine with default options
func Default() *Engine {
	defaultOnce.Do(func() {
		// default options are always valid
		defaultEngine, _ = New(Options{})
	})
	return defaultEngine
}

// Parse parses source with the default engine
func Parse(source string) (*ast.Suite, error) {
	return Default().Parse(source)
}
