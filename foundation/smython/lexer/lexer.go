// File: lexer.go
// Title: Smython Lexical Analyzer
// Description: Converts source text into a lazily produced token stream.
//              Tracks indentation with a width stack to synthesize INDENT
//              and DEDENT tokens, suppresses line breaks inside brackets and
//              after backslash continuations, strips comments, decodes
//              string and number literals and merges adjacent strings.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-14
// Modified: 2025-04-14
//
// Change History:
// - 2025-03-14 v0.1.0: Initial lexer implementation
// - 2025-03-18 v0.1.0: Triple-quoted strings, numeric prefixes and separators
// - 2025-04-14 v0.1.0: Separator after a base prefix, surrogate escapes rejected

package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/smython/foundation/smython/token"
)

const (
	bof = -2
	eof = -1

	// DefaultTabSize is the column multiple a tab advances indentation to
	DefaultTabSize = 8
)

// Error describes malformed input detected while tokenizing
type Error struct {
	Pos token.Position
	Msg string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Options configures a Lexer
type Options struct {
	// TabSize is the tab stop used when measuring indentation (default 8)
	TabSize int
}

type bracket struct {
	kind token.Kind
	pos  token.Position
}

// Lexer produces tokens on demand. A Lexer is not safe for concurrent use;
// independent inputs use independent lexers.
type Lexer struct {
	src      string
	ch       rune
	offset   int
	rdOffset int
	line     int
	column   int
	tabSize  int

	indents     []int
	brackets    []bracket
	atLineStart bool
	pending     []token.Token
	last        token.Kind
	emitted     bool
	finished    bool

	peeked *token.Token
	err    error
}

// New creates a lexer with default options
func New(input string) *Lexer {
	return NewWithOptions(input, Options{})
}

// NewWithOptions creates a lexer with the given options
func NewWithOptions(input string, opts Options) *Lexer {
	input = strings.TrimPrefix(input, "\ufeff")
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	tabSize := opts.TabSize
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}

	l := &Lexer{
		src:         input,
		ch:          bof,
		line:        1,
		tabSize:     tabSize,
		indents:     []int{0},
		atLineStart: true,
		last:        token.NEWLINE,
	}
	l.next()
	return l
}

// Tokenize drains a lexer over input and returns every token up to and
// including EOF
func Tokenize(input string) ([]token.Token, error) {
	return TokenizeWithOptions(input, Options{})
}

// TokenizeWithOptions is Tokenize with explicit options
func TokenizeWithOptions(input string, opts Options) ([]token.Token, error) {
	l := NewWithOptions(input, opts)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

// Next returns the next token. Adjacent string literals are merged into one
// STRING token. After the first error every call returns the same error, and
// after EOF every call returns EOF.
func (l *Lexer) Next() (token.Token, error) {
	tok, err := l.take()
	if err != nil || tok.Kind != token.STRING {
		return tok, err
	}
	for {
		nxt, err := l.take()
		if err != nil {
			return token.Token{}, err
		}
		if nxt.Kind != token.STRING {
			l.peeked = &nxt
			return tok, nil
		}
		tok.Value += nxt.Value
		tok.Text += " " + nxt.Text
	}
}

func (l *Lexer) take() (token.Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	if l.err != nil {
		return token.Token{}, l.err
	}
	tok, err := l.scan()
	if err != nil {
		l.err = err
		return token.Token{}, err
	}
	return tok, nil
}

// scan produces one raw token
func (l *Lexer) scan() (token.Token, error) {
	for {
		if len(l.pending) > 0 {
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return tok, nil
		}
		if l.finished {
			return token.Token{Kind: token.EOF, Pos: l.pos()}, nil
		}
		if l.atLineStart {
			if err := l.indentation(); err != nil {
				return token.Token{}, err
			}
			if len(l.pending) > 0 {
				continue
			}
		}
		if err := l.skipWhitespace(); err != nil {
			return token.Token{}, err
		}

		pos := l.pos()
		switch ch := l.ch; {
		case ch == eof:
			if err := l.finish(); err != nil {
				return token.Token{}, err
			}
			continue
		case ch == '\n':
			l.next()
			if len(l.brackets) > 0 {
				continue
			}
			l.atLineStart = true
			return l.emit(token.NEWLINE, pos, "\n", ""), nil
		case isDigit(ch) || (ch == '.' && isDigit(rune(l.peek()))):
			return l.scanNumber(pos)
		case ch == '"' || ch == '\'':
			return l.scanString(pos, pos.Offset, false)
		case ch == '_' || unicode.IsLetter(ch):
			return l.scanName(pos)
		default:
			return l.scanOperator(pos)
		}
	}
}

// indentation measures the leading whitespace of a logical line and queues
// INDENT or DEDENT tokens. Blank and comment-only lines are consumed whole.
func (l *Lexer) indentation() error {
	for {
		pos := l.pos()
		width := 0
		for {
			switch l.ch {
			case ' ':
				width++
			case '\t':
				width += l.tabSize - width%l.tabSize
			case '\f':
				width = 0
			default:
				goto measured
			}
			l.next()
		}
	measured:
		if l.ch == '#' {
			l.skipComment()
		}
		if l.ch == '\n' {
			l.next()
			continue
		}
		if l.ch == eof {
			return nil
		}

		l.atLineStart = false
		top := l.indents[len(l.indents)-1]
		switch {
		case width > top:
			l.indents = append(l.indents, width)
			l.pending = append(l.pending, l.emit(token.INDENT, pos, "", ""))
		case width < top:
			for width < l.indents[len(l.indents)-1] {
				l.indents = l.indents[:len(l.indents)-1]
				l.pending = append(l.pending, l.emit(token.DEDENT, pos, "", ""))
			}
			if l.indents[len(l.indents)-1] != width {
				return l.errorf(pos, "unindent does not match any outer indentation level")
			}
		}
		return nil
	}
}

// skipWhitespace skips blanks, comments and backslash continuations
func (l *Lexer) skipWhitespace() error {
	for {
		switch l.ch {
		case ' ', '\t', '\f':
			l.next()
		case '#':
			l.skipComment()
		case '\\':
			pos := l.pos()
			l.next()
			switch l.ch {
			case '\n':
				l.next()
			case eof:
				return l.errorf(pos, "unexpected end of input after line continuation")
			default:
				return l.errorf(pos, "unexpected character after line continuation character")
			}
		default:
			return nil
		}
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != eof {
		l.next()
	}
}

// finish queues the tokens that close the input
func (l *Lexer) finish() error {
	if n := len(l.brackets); n > 0 {
		open := l.brackets[n-1]
		return l.errorf(open.pos, "'%s' was never closed", open.kind)
	}
	pos := l.pos()
	if l.emitted && l.last != token.NEWLINE && l.last != token.DEDENT && l.last != token.INDENT {
		l.pending = append(l.pending, l.emit(token.NEWLINE, pos, "", ""))
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.pending = append(l.pending, l.emit(token.DEDENT, pos, "", ""))
	}
	l.pending = append(l.pending, token.Token{Kind: token.EOF, Pos: pos})
	l.finished = true
	return nil
}

func (l *Lexer) scanName(pos token.Position) (token.Token, error) {
	start := l.offset
	for l.ch == '_' || unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) {
		l.next()
	}
	name := l.src[start:l.offset]

	if l.ch == '"' || l.ch == '\'' {
		switch name {
		case "r", "R":
			return l.scanString(pos, start, true)
		case "u", "U":
			return l.scanString(pos, start, false)
		}
	}

	kind := token.Lookup(name)
	return l.emit(kind, pos, name, name), nil
}

func (l *Lexer) scanNumber(pos token.Position) (token.Token, error) {
	start := l.offset

	if l.ch == '0' {
		base := 0
		switch l.peek() {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			l.next()
			l.next()
			if l.ch == '_' && digitVal(rune(l.peek())) < base {
				l.next()
			}
			if n, err := l.digits(base); err != nil {
				return token.Token{}, err
			} else if n == 0 {
				return token.Token{}, l.errorf(pos, "invalid number literal %q", l.src[start:l.offset])
			}
			return l.endNumber(pos, start)
		}
	}

	if l.ch != '.' {
		if _, err := l.digits(10); err != nil {
			return token.Token{}, err
		}
	}
	if l.ch == '.' {
		l.next()
		if _, err := l.digits(10); err != nil {
			return token.Token{}, err
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.next()
		if l.ch == '+' || l.ch == '-' {
			l.next()
		}
		if n, err := l.digits(10); err != nil {
			return token.Token{}, err
		} else if n == 0 {
			return token.Token{}, l.errorf(pos, "invalid number literal %q", l.src[start:l.offset])
		}
	}
	return l.endNumber(pos, start)
}

func (l *Lexer) endNumber(pos token.Position, start int) (token.Token, error) {
	if l.ch == '_' || unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) {
		return token.Token{}, l.errorf(pos, "invalid number literal %q", l.src[start:l.offset]+string(l.ch))
	}
	text := l.src[start:l.offset]
	return l.emit(token.NUMBER, pos, text, strings.ReplaceAll(text, "_", "")), nil
}

// digits consumes digits of base with single '_' separators between them
func (l *Lexer) digits(base int) (int, error) {
	n := 0
	for {
		if digitVal(l.ch) < base {
			l.next()
			n++
			continue
		}
		if l.ch == '_' && n > 0 && digitVal(rune(l.peek())) < base {
			l.next()
			continue
		}
		if l.ch == '_' {
			return n, l.errorf(l.pos(), "invalid digit separator")
		}
		return n, nil
	}
}

func (l *Lexer) scanString(pos token.Position, start int, raw bool) (token.Token, error) {
	quote := l.ch
	l.next()
	triple := false
	if l.ch == quote && rune(l.peek()) == quote {
		l.next()
		l.next()
		triple = true
	} else if l.ch == quote {
		l.next()
		return l.emit(token.STRING, pos, l.src[start:l.offset], ""), nil
	}

	var b strings.Builder
	for {
		switch {
		case l.ch == eof:
			if triple {
				return token.Token{}, l.errorf(pos, "unterminated triple-quoted string literal")
			}
			return token.Token{}, l.errorf(pos, "unterminated string literal")
		case l.ch == '\n' && !triple:
			return token.Token{}, l.errorf(pos, "unterminated string literal")
		case l.ch == quote:
			if !triple {
				l.next()
				return l.emit(token.STRING, pos, l.src[start:l.offset], b.String()), nil
			}
			if rune(l.peek()) == quote && l.peekAt(1) == byte(quote) {
				l.next()
				l.next()
				l.next()
				return l.emit(token.STRING, pos, l.src[start:l.offset], b.String()), nil
			}
			b.WriteRune(l.ch)
			l.next()
		case l.ch == '\\':
			if raw {
				b.WriteRune('\\')
				l.next()
				if l.ch == eof {
					continue
				}
				b.WriteRune(l.ch)
				l.next()
				continue
			}
			if err := l.escape(&b); err != nil {
				return token.Token{}, err
			}
		default:
			b.WriteRune(l.ch)
			l.next()
		}
	}
}

// escape decodes one backslash escape sequence into b
func (l *Lexer) escape(b *strings.Builder) error {
	pos := l.pos()
	l.next() // consume '\'
	ch := l.ch
	switch ch {
	case eof:
		return nil
	case '\n':
		l.next()
		return nil
	case '\\', '\'', '"':
		b.WriteRune(ch)
	case 'a':
		b.WriteByte('\a')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'v':
		b.WriteByte('\v')
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v := 0
		for i := 0; i < 3 && l.ch >= '0' && l.ch <= '7'; i++ {
			v = v*8 + int(l.ch-'0')
			l.next()
		}
		b.WriteRune(rune(v))
		return nil
	case 'x', 'u', 'U':
		n := 2
		switch ch {
		case 'u':
			n = 4
		case 'U':
			n = 8
		}
		l.next()
		start := l.offset
		for i := 0; i < n; i++ {
			if digitVal(l.ch) >= 16 {
				return l.errorf(pos, "truncated \\%c escape", ch)
			}
			l.next()
		}
		v, _ := strconv.ParseUint(l.src[start:l.offset], 16, 32)
		if !utf8.ValidRune(rune(v)) {
			return l.errorf(pos, "illegal Unicode character in \\%c escape", ch)
		}
		b.WriteRune(rune(v))
		return nil
	default:
		b.WriteByte('\\')
		b.WriteRune(ch)
	}
	l.next()
	return nil
}

func (l *Lexer) scanOperator(pos token.Position) (token.Token, error) {
	start := l.offset
	ch := l.ch
	l.next()

	kind := token.ILLEGAL
	switch ch {
	case '(':
		kind = token.LPAREN
	case '[':
		kind = token.LBRACKET
	case '{':
		kind = token.LBRACE
	case ')', ']', '}':
		return l.closeBracket(pos, ch)
	case ':':
		kind = token.COLON
	case ';':
		kind = token.SEMI
	case ',':
		kind = token.COMMA
	case '~':
		kind = token.TILDE
	case '@':
		kind = token.AT
	case '.':
		kind = token.DOT
		if l.ch == '.' && l.peek() == '.' {
			l.next()
			l.next()
			kind = token.ELLIPSIS
		}
	case '=':
		kind = l.pick(token.ASSIGN, '=', token.EQ)
	case '!':
		if l.ch != '=' {
			return token.Token{}, l.errorf(pos, "unexpected character '!'")
		}
		l.next()
		kind = token.NE
	case '+':
		kind = l.pick(token.PLUS, '=', token.PLUSEQ)
	case '-':
		switch l.ch {
		case '=':
			l.next()
			kind = token.MINUSEQ
		case '>':
			l.next()
			kind = token.ARROW
		default:
			kind = token.MINUS
		}
	case '%':
		kind = l.pick(token.PERCENT, '=', token.PERCENTEQ)
	case '&':
		kind = l.pick(token.AMP, '=', token.AMPEQ)
	case '|':
		kind = l.pick(token.PIPE, '=', token.PIPEEQ)
	case '^':
		kind = l.pick(token.CARET, '=', token.CARETEQ)
	case '*':
		if l.ch == '*' {
			l.next()
			kind = l.pick(token.DSTAR, '=', token.DSTAREQ)
		} else {
			kind = l.pick(token.STAR, '=', token.STAREQ)
		}
	case '/':
		if l.ch == '/' {
			l.next()
			kind = l.pick(token.DSLASH, '=', token.DSLASHEQ)
		} else {
			kind = l.pick(token.SLASH, '=', token.SLASHEQ)
		}
	case '<':
		switch l.ch {
		case '<':
			l.next()
			kind = l.pick(token.LSHIFT, '=', token.LSHIFTEQ)
		case '=':
			l.next()
			kind = token.LE
		default:
			kind = token.LT
		}
	case '>':
		switch l.ch {
		case '>':
			l.next()
			kind = l.pick(token.RSHIFT, '=', token.RSHIFTEQ)
		case '=':
			l.next()
			kind = token.GE
		default:
			kind = token.GT
		}
	}

	if kind == token.ILLEGAL {
		return token.Token{}, l.errorf(pos, "unexpected character %q", ch)
	}
	if kind == token.LPAREN || kind == token.LBRACKET || kind == token.LBRACE {
		l.brackets = append(l.brackets, bracket{kind: kind, pos: pos})
	}
	return l.emit(kind, pos, l.src[start:l.offset], ""), nil
}

func (l *Lexer) closeBracket(pos token.Position, ch rune) (token.Token, error) {
	kind, open := token.RPAREN, token.LPAREN
	switch ch {
	case ']':
		kind, open = token.RBRACKET, token.LBRACKET
	case '}':
		kind, open = token.RBRACE, token.LBRACE
	}
	n := len(l.brackets)
	if n == 0 {
		return token.Token{}, l.errorf(pos, "unmatched '%c'", ch)
	}
	if top := l.brackets[n-1]; top.kind != open {
		return token.Token{}, l.errorf(pos, "closing '%c' does not match opening '%s'", ch, top.kind)
	}
	l.brackets = l.brackets[:n-1]
	return l.emit(kind, pos, string(ch), ""), nil
}

// pick returns with when the current char is next (consuming it), else base
func (l *Lexer) pick(base token.Kind, next rune, with token.Kind) token.Kind {
	if l.ch == next {
		l.next()
		return with
	}
	return base
}

func (l *Lexer) emit(kind token.Kind, pos token.Position, text, value string) token.Token {
	l.last = kind
	l.emitted = true
	return token.Token{Kind: kind, Text: text, Value: value, Pos: pos}
}

func (l *Lexer) errorf(pos token.Position, format string, args ...interface{}) error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// next advances to the following rune
func (l *Lexer) next() {
	switch l.ch {
	case bof:
		l.column = 1
	case '\n':
		l.line++
		l.column = 1
	case eof:
		return
	default:
		l.column++
	}

	if l.rdOffset >= len(l.src) {
		l.offset = len(l.src)
		l.ch = eof
		return
	}
	l.offset = l.rdOffset
	r, w := rune(l.src[l.rdOffset]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRuneInString(l.src[l.rdOffset:])
	}
	l.rdOffset += w
	l.ch = r
}

func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(n int) byte {
	if l.rdOffset+n < len(l.src) {
		return l.src[l.rdOffset+n]
	}
	return 0
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.offset}
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func digitVal(ch rune) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return int(ch - 'a' + 10)
	case 'A' <= ch && ch <= 'F':
		return int(ch - 'A' + 10)
	}
	return 16
}

// IsIdentifier reports whether s is a valid, non-reserved identifier
func IsIdentifier(s string) bool {
	if s == "" || token.Lookup(s) != token.NAME {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
