// File: printer_test.go
// Title: Source Printer Tests
// Description: Round trips every grammar fixture through the printer and
//              the parser, and pins the rendering of precedence, tuples,
//              clauses and literals.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-24
// Modified: 2025-03-29
//
// Change History:
// - 2025-03-24 v0.1.0: Initial tests
// - 2025-03-29 v0.1.0: Comprehension condition cases

package printer

import (
	"bytes"
	"io"
	"math/big"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	mdwlog "github.com/msto63/smython/foundation/core/log"
	"github.com/msto63/smython/foundation/smython/ast"
	"github.com/msto63/smython/foundation/smython/parser"
	"github.com/msto63/smython/foundation/smython/token"
)

var treeOpts = cmp.Options{
	cmpopts.IgnoreTypes(token.Position{}),
	cmp.Comparer(func(a, b *big.Int) bool {
		if a == nil || b == nil {
			return a == b
		}
		return a.Cmp(b) == 0
	}),
}

func newParser(t *testing.T) *parser.Parser {
	t.Helper()
	p, err := parser.New(parser.Options{
		Logger:       mdwlog.New().WithOutput(io.Discard),
		ValidateTree: true,
	})
	require.NoError(t, err)
	return p
}

// TestRoundTripFixtures prints every tree of the parser fixtures, parses
// the output again and expects the same tree
func TestRoundTripFixtures(t *testing.T) {
	p := newParser(t)

	datadriven.Walk(t, "../parser/testdata", func(t *testing.T, path string) {
		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "parse":
				suite, err := p.Parse(d.Input)
				if err != nil {
					return err.Error()
				}
				src, err := Source(suite)
				require.NoError(t, err)
				again, err := p.Parse(src)
				require.NoError(t, err, "re-parsing:\n%s", src)
				if diff := cmp.Diff(suite, again, treeOpts); diff != "" {
					t.Errorf("round trip of %q via\n%s\nchanged the tree (-want +got):\n%s", d.Input, src, diff)
				}
				return ast.Dump(again)

			case "expr":
				x, err := p.ParseExpression(d.Input)
				if err != nil {
					return err.Error()
				}
				src, err := Source(x)
				require.NoError(t, err)
				again, err := p.ParseExpression(src)
				require.NoError(t, err, "re-parsing %q", src)
				if diff := cmp.Diff(x, again, treeOpts); diff != "" {
					t.Errorf("round trip of %q via %q changed the tree (-want +got):\n%s", d.Input, src, diff)
				}
				return ast.Dump(again)
			}
			return d.Expected
		})
	})
}

func TestExpressionSource(t *testing.T) {
	p := newParser(t)

	tests := []struct {
		input string
		want  string
	}{
		{"(a + b) * c", "(a + b) * c"},
		{"a - (b - c)", "a - (b - c)"},
		{"(a - b) - c", "a - b - c"},
		{"(-1) ** 2", "(-1) ** 2"},
		{"-1 ** 2", "-1 ** 2"},
		{"2 ** -x", "2 ** -x"},
		{"(2 ** 3) ** 4", "(2 ** 3) ** 4"},
		{"not (a and b)", "not (a and b)"},
		{"(not a) and b", "not a and b"},
		{"(a or b) and c", "(a or b) and c"},
		{"(a < b) < c", "(a < b) < c"},
		{"a < b <= c", "a < b <= c"},
		{"x not in y is not z", "x not in y is not z"},
		{"(a if b else c).d", "(a if b else c).d"},
		{"(a if b else c) if d else e", "(a if b else c) if d else e"},
		{"(lambda: 1)()", "(lambda: 1)()"},
		{"lambda x, *r, k=1, **kw: x", "lambda x, *r, k=1, **kw: x"},
		{"(1).real", "(1).real"},
		{"x[1:2, ::3, :]", "x[1:2, ::3, :]"},
		{"x[a,]", "x[a,]"},
		{"(1,)", "(1,)"},
		{"()", "()"},
		{"{}", "{}"},
		{"{1: 'a', 2: 'b'}", "{1: \"a\", 2: \"b\"}"},
		{"[*a, b]", "[*a, b]"},
		{"f(x for x in y)", "f(x for x in y)"},
		{"f((x for x in y), z)", "f((x for x in y), z)"},
		{"f(a, *b, c=1, **d)", "f(a, *b, c=1, **d)"},
		{"[x for x in (lambda: y)() if (lambda: a if b else c)]", "[x for x in (lambda: y)() if lambda: (a if b else c)]"},
		{"[x for x in y if (a if b else c)]", "[x for x in y if (a if b else c)]"},
		{"1.", "1.0"},
		{"1e400", "1e999"},
		{"0xff", "255"},
		{"'a' 'b'", "\"ab\""},
		{"r'\\d'", "\"\\\\d\""},
		{"'tab\\there'", "\"tab\\there\""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			x, err := p.ParseExpression(tt.input)
			require.NoError(t, err)
			got, err := Source(x)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestStatementSource(t *testing.T) {
	p := newParser(t)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "elif chain without else",
			input: "if a: x = 1\nelif b:\n  pass\nelse:\n  pass\n",
			want:  "if a:\n    x = 1\nelif b:\n    pass\n",
		},
		{
			name:  "nested else if becomes elif",
			input: "if a:\n    pass\nelse:\n    if b:\n        pass\n    else:\n        y = 2\n",
			want:  "if a:\n    pass\nelif b:\n    pass\nelse:\n    y = 2\n",
		},
		{
			name:  "bare tuples",
			input: "x = 1,\na, *b = c\nfor k, in d: pass\n",
			want:  "x = 1,\na, *b = c\nfor k, in d:\n    pass\n",
		},
		{
			name:  "implicit None",
			input: "def g():\n    x = yield\n    yield\n    return None\n",
			want:  "def g():\n    x = yield\n    yield\n    return\n",
		},
		{
			name:  "try clauses",
			input: "try: a()\nexcept (E, F) as e: raise X from e\nexcept: pass\nelse: b()\nfinally: c()\n",
			want:  "try:\n    a()\nexcept (E, F) as e:\n    raise X from e\nexcept:\n    pass\nelse:\n    b()\nfinally:\n    c()\n",
		},
		{
			name:  "decorated definitions",
			input: "@a.b\n@c()\n@d(1, k=2)\ndef f(x: int = 0, *a: str, **k) -> None: pass\n@e\nclass C(): pass\nclass D: pass\n",
			want:  "@a.b\n@c()\n@d(1, k=2)\ndef f(x: int = 0, *a: str, **k) -> None:\n    pass\n@e\nclass C():\n    pass\nclass D:\n    pass\n",
		},
		{
			name:  "imports",
			input: "import a.b as c, d\nfrom x.y import (p, q as r,)\nfrom z import *\nglobal g, h\n",
			want:  "import a.b as c, d\nfrom x.y import p, q as r\nfrom z import *\nglobal g, h\n",
		},
		{
			name:  "simple statements",
			input: "del a, b[0]; assert x, 'm'\nx **= 2\nwith open(f) as (a, b): pass\nwhile 1:\n  break\nelse:\n  continue\n",
			want:  "del a, b[0]\nassert x, \"m\"\nx **= 2\nwith open(f) as (a, b):\n    pass\nwhile 1:\n    break\nelse:\n    continue\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suite, err := p.Parse(tt.input)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, Fprint(&buf, suite))
			require.Equal(t, tt.want, buf.String())

			again, err := p.Parse(buf.String())
			require.NoError(t, err)
			require.Empty(t, cmp.Diff(suite, again, treeOpts))
		})
	}
}

func TestEmptyBodyPrintsPass(t *testing.T) {
	src, err := Source(&ast.While{
		Cond: &ast.Lit{Kind: ast.TrueLit},
		Body: &ast.Suite{},
		Else: &ast.Suite{},
	})
	require.NoError(t, err)
	require.Equal(t, "while True:\n    pass\n", src)
}

func TestUnknownNode(t *testing.T) {
	_, err := Source(&ast.Params{})
	require.Error(t, err)

	_, err = Source(&ast.ExprStmt{Value: &ast.ExprList{Exprs: []ast.Expr{nil}, Single: true}})
	require.Error(t, err)
}
