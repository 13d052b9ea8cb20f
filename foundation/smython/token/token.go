// File: token.go
// Title: Smython Token Definitions
// Description: Defines token kinds, source positions and the keyword table
//              shared by the lexer, the parser and the tooling packages.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-14
// Modified: 2025-03-14
//
// Change History:
// - 2025-03-14 v0.1.0: Initial token definitions

package token

import (
	"fmt"
	"strconv"
)

// Kind identifies the lexical class of a token
type Kind int

const (
	// Special tokens
	ILLEGAL Kind = iota
	EOF
	NEWLINE
	INDENT
	DEDENT

	// Literals and names
	NAME   // spam, _x, Größe
	NUMBER // 42, 0xff, 1.5e3
	STRING // 'a' "b" '''c''' (adjacent pieces already merged)

	operatorBegin
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	LBRACE   // {
	RBRACE   // }
	COLON    // :
	SEMI     // ;
	COMMA    // ,
	DOT      // .
	ELLIPSIS // ...
	ARROW    // ->
	AT       // @
	ASSIGN   // =

	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	DSLASH  // //
	PERCENT // %
	DSTAR   // **
	AMP     // &
	PIPE    // |
	CARET   // ^
	TILDE   // ~
	LSHIFT  // <<
	RSHIFT  // >>

	LT // <
	GT // >
	LE // <=
	GE // >=
	EQ // ==
	NE // !=

	augBegin
	PLUSEQ    // +=
	MINUSEQ   // -=
	STAREQ    // *=
	SLASHEQ   // /=
	DSLASHEQ  // //=
	PERCENTEQ // %=
	DSTAREQ   // **=
	RSHIFTEQ  // >>=
	LSHIFTEQ  // <<=
	AMPEQ     // &=
	CARETEQ   // ^=
	PIPEEQ    // |=
	augEnd
	operatorEnd

	keywordBegin
	AND
	AS
	ASSERT
	BREAK
	CLASS
	CONTINUE
	DEF
	DEL
	ELIF
	ELSE
	EXCEPT
	FINALLY
	FOR
	FROM
	GLOBAL
	IF
	IMPORT
	IN
	IS
	LAMBDA
	NONLOCAL
	NOT
	OR
	PASS
	RAISE
	RETURN
	TRY
	WHILE
	WITH
	YIELD
	NONE
	TRUE
	FALSE
	keywordEnd
)

var kindNames = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	NEWLINE: "NEWLINE",
	INDENT:  "INDENT",
	DEDENT:  "DEDENT",
	NAME:    "NAME",
	NUMBER:  "NUMBER",
	STRING:  "STRING",

	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	LBRACE:   "{",
	RBRACE:   "}",
	COLON:    ":",
	SEMI:     ";",
	COMMA:    ",",
	DOT:      ".",
	ELLIPSIS: "...",
	ARROW:    "->",
	AT:       "@",
	ASSIGN:   "=",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	DSLASH:  "//",
	PERCENT: "%",
	DSTAR:   "**",
	AMP:     "&",
	PIPE:    "|",
	CARET:   "^",
	TILDE:   "~",
	LSHIFT:  "<<",
	RSHIFT:  ">>",

	LT: "<",
	GT: ">",
	LE: "<=",
	GE: ">=",
	EQ: "==",
	NE: "!=",

	PLUSEQ:    "+=",
	MINUSEQ:   "-=",
	STAREQ:    "*=",
	SLASHEQ:   "/=",
	DSLASHEQ:  "//=",
	PERCENTEQ: "%=",
	DSTAREQ:   "**=",
	RSHIFTEQ:  ">>=",
	LSHIFTEQ:  "<<=",
	AMPEQ:     "&=",
	CARETEQ:   "^=",
	PIPEEQ:    "|=",

	AND:      "and",
	AS:       "as",
	ASSERT:   "assert",
	BREAK:    "break",
	CLASS:    "class",
	CONTINUE: "continue",
	DEF:      "def",
	DEL:      "del",
	ELIF:     "elif",
	ELSE:     "else",
	EXCEPT:   "except",
	FINALLY:  "finally",
	FOR:      "for",
	FROM:     "from",
	GLOBAL:   "global",
	IF:       "if",
	IMPORT:   "import",
	IN:       "in",
	IS:       "is",
	LAMBDA:   "lambda",
	NONLOCAL: "nonlocal",
	NOT:      "not",
	OR:       "or",
	PASS:     "pass",
	RAISE:    "raise",
	RETURN:   "return",
	TRY:      "try",
	WHILE:    "while",
	WITH:     "with",
	YIELD:    "yield",
	NONE:     "None",
	TRUE:     "True",
	FALSE:    "False",
}

// String returns the source spelling for operators and keywords and the
// class name for everything else
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsKeyword reports whether k is a reserved word
func (k Kind) IsKeyword() bool { return k > keywordBegin && k < keywordEnd }

// IsOperator reports whether k is an operator or delimiter
func (k Kind) IsOperator() bool { return k > operatorBegin && k < operatorEnd }

// IsAugmented reports whether k is one of the augmented assignment operators
func (k Kind) IsAugmented() bool { return k > augBegin && k < augEnd }

var keywords map[string]Kind

func init() {
	keywords = make(map[string]Kind, keywordEnd-keywordBegin)
	for k := keywordBegin + 1; k < keywordEnd; k++ {
		keywords[kindNames[k]] = k
	}
}

// Lookup maps an identifier to its keyword kind, or NAME when it is not reserved
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return NAME
}

// Keywords returns the reserved words in declaration order
func Keywords() []string {
	out := make([]string, 0, keywordEnd-keywordBegin-1)
	for k := keywordBegin + 1; k < keywordEnd; k++ {
		out = append(out, kindNames[k])
	}
	return out
}

// Position represents a position in the source text
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number in runes (1-based)
	Offset int // Byte offset (0-based)
}

// IsValid reports whether the position has been set
func (p Position) IsValid() bool { return p.Line > 0 }

// String formats the position as line:column
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical token
type Token struct {
	Kind  Kind     // Lexical class
	Text  string   // Raw source text (merged strings keep the first piece)
	Value string   // Decoded value for STRING, digits for NUMBER, name for NAME
	Pos   Position // Start of the token
}

// String renders the token for diagnostics and token dumps
func (t Token) String() string {
	switch t.Kind {
	case NAME:
		return "NAME(" + t.Value + ")"
	case NUMBER:
		return "NUMBER(" + t.Value + ")"
	case STRING:
		return "STRING(" + strconv.Quote(t.Value) + ")"
	default:
		return t.Kind.String()
	}
}
