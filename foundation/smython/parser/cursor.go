// File: cursor.go
// Title: Token Cursor
// Description: Buffers tokens pulled lazily from the lexer and offers
//              mark/reset checkpoints for bounded lookahead.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-17
// Modified: 2025-03-17
//
// Change History:
// - 2025-03-17 v0.1.0: Initial implementation

package parser

import (
	"github.com/msto63/smython/foundation/smython/lexer"
	"github.com/msto63/smython/foundation/smython/token"
)

// cursor is a position in the token stream. Tokens are read from the
// lexer only when the parser looks at them; a lexer failure turns into an
// ILLEGAL token at the failing position and is kept in err.
type cursor struct {
	lex *lexer.Lexer
	buf []token.Token
	pos int
	err error
}

func newCursor(lex *lexer.Lexer) *cursor {
	return &cursor{lex: lex}
}

// at returns the token at buffer index i, reading ahead as needed
func (c *cursor) at(i int) token.Token {
	for len(c.buf) <= i {
		if c.err != nil {
			return c.illegal()
		}
		tok, err := c.lex.Next()
		if err != nil {
			c.err = err
			return c.illegal()
		}
		c.buf = append(c.buf, tok)
	}
	return c.buf[i]
}

func (c *cursor) illegal() token.Token {
	return token.Token{Kind: token.ILLEGAL, Pos: toSyntaxError(c.err).Pos}
}

// tok returns the current token
func (c *cursor) tok() token.Token { return c.at(c.pos) }

// peek returns the token n positions after the current one
func (c *cursor) peek(n int) token.Token { return c.at(c.pos + n) }

// next consumes and returns the current token. EOF and ILLEGAL are never
// consumed.
func (c *cursor) next() token.Token {
	tok := c.tok()
	if tok.Kind != token.EOF && tok.Kind != token.ILLEGAL {
		c.pos++
	}
	return tok
}

// mark returns a checkpoint for reset
func (c *cursor) mark() int { return c.pos }

// reset rewinds the cursor to a checkpoint taken by mark
func (c *cursor) reset(m int) { c.pos = m }
