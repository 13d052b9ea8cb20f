// File: smython_test.go
// Title: Smython Engine Tests
// Description: Tests for the engine facade.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-25
// Modified: 2025-03-26
//
// Change History:
// - 2025-03-25 v0.1.0: Initial tests
// - 2025-03-26 v0.1.0: Tokens and Format

package smython

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/smython/foundation/core/error"
	mdwlog "github.com/msto63/smython/foundation/core/log"
	"github.com/msto63/smython/foundation/smython/parser"
	"github.com/msto63/smython/foundation/smython/token"
)

func newTestEngine(t *testing.T) (*Engine, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := mdwlog.New().WithOutput(&buf).WithLevel(mdwlog.LevelDebug)
	e, err := New(Options{Logger: logger, Parser: parser.Options{ValidateTree: true}})
	require.NoError(t, err)
	return e, &buf
}

func TestEngineParse(t *testing.T) {
	e, logs := newTestEngine(t)

	suite, err := e.Parse("x = 1\nif x:\n    pass\n")
	require.NoError(t, err)
	require.Len(t, suite.Stmts, 2)
	require.Contains(t, logs.String(), `"operation":"parse"`)
	require.Contains(t, logs.String(), `"component":"smython-engine"`)
}

func TestEngineSyntaxErrorIsNotLoggedAsFailure(t *testing.T) {
	e, logs := newTestEngine(t)

	_, err := e.Parse("def f(:\n")
	require.True(t, parser.IsSyntaxError(err))
	require.Contains(t, logs.String(), `"syntax_error":true`)
	require.NotContains(t, logs.String(), `"level":"error"`)
}

func TestEngineRejectsInvalidOptions(t *testing.T) {
	_, err := New(Options{Parser: parser.Options{TabSize: -1}})
	require.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))
}

func TestParseFile(t *testing.T) {
	e, _ := newTestEngine(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.py")
	require.NoError(t, os.WriteFile(good, []byte("import os\n"), 0o644))
	suite, err := e.ParseFile(good)
	require.NoError(t, err)
	require.Len(t, suite.Stmts, 1)

	bad := filepath.Join(dir, "bad.py")
	require.NoError(t, os.WriteFile(bad, []byte("x = = 1\n"), 0o644))
	_, err = e.ParseFile(bad)
	require.True(t, parser.IsSyntaxError(err))
	require.True(t, strings.HasPrefix(err.Error(), bad+": SyntaxError: line 1"), err.Error())
	se, ok := parser.AsSyntaxError(err)
	require.True(t, ok)
	require.Equal(t, 1, se.Pos.Line)

	_, err = e.ParseFile(filepath.Join(dir, "missing.py"))
	require.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))
	require.False(t, parser.IsSyntaxError(err))
}

func TestTokens(t *testing.T) {
	e, _ := newTestEngine(t)

	toks, err := e.Tokens("pass\n")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	require.Equal(t, token.PASS, toks[0].Kind)
	require.Equal(t, token.EOF, toks[2].Kind)

	_, err = e.Tokens("x = )\n")
	require.True(t, parser.IsSyntaxError(err))
}

func TestDumpAndFormat(t *testing.T) {
	e, _ := newTestEngine(t)

	dump, err := e.Dump("a = 1\n")
	require.NoError(t, err)
	require.Equal(t, "Suite[Assign((Var(a)), (Lit(1)))]", dump)

	src, err := e.Format("if (a):\n  x = (1 + 2) * 3\nelse:\n  pass\n")
	require.NoError(t, err)
	require.Equal(t, "if a:\n    x = (1 + 2) * 3\n", src)

	_, err = e.Format("(")
	require.True(t, parser.IsSyntaxError(err))
}

func TestPackageLevelParse(t *testing.T) {
	suite, err := Parse("pass\n")
	require.NoError(t, err)
	require.Len(t, suite.Stmts, 1)
	require.Same(t, Default(), Default())
}
