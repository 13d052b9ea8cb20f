// File: errors.go
// Title: Syntax Error Channel
// Description: The single failure kind of the parser. Lexer and grammar
//              failures both surface as *SyntaxError marked with ErrSyntax.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-17
// Modified: 2025-03-17
//
// Change History:
// - 2025-03-17 v0.1.0: Initial implementation

package parser

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/msto63/smython/foundation/smython/lexer"
	"github.com/msto63/smython/foundation/smython/token"
)

// ErrSyntax marks every error returned for malformed input
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports malformed input at a source position
type SyntaxError struct {
	Pos token.Position
	Msg string
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	if !e.Pos.IsValid() {
		return "SyntaxError: " + e.Msg
	}
	return fmt.Sprintf("SyntaxError: line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// AsSyntaxError extracts the *SyntaxError carried by err
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsSyntaxError reports whether err stems from malformed input
func IsSyntaxError(err error) bool {
	return errors.Is(err, ErrSyntax)
}

// toSyntaxError normalizes a lexer or grammar failure
func toSyntaxError(err error) *SyntaxError {
	if se, ok := AsSyntaxError(err); ok {
		return se
	}
	var le *lexer.Error
	if errors.As(err, &le) {
		return &SyntaxError{Pos: le.Pos, Msg: le.Msg}
	}
	return &SyntaxError{Msg: err.Error()}
}

// describe renders a token for "but found ..." messages
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.NAME:
		return fmt.Sprintf("NAME '%s'", tok.Value)
	case token.NUMBER:
		return "NUMBER " + tok.Text
	case token.STRING, token.NEWLINE, token.INDENT, token.DEDENT, token.EOF, token.ILLEGAL:
		return tok.Kind.String()
	}
	return "'" + tok.Kind.String() + "'"
}

// describeKind renders an expected token kind
func describeKind(k token.Kind) string {
	if k.IsKeyword() || k.IsOperator() {
		return "'" + k.String() + "'"
	}
	return k.String()
}
