package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwlog "github.com/msto63/smython/foundation/core/log"
	"github.com/msto63/smython/foundation/smython"
	"github.com/msto63/smython/foundation/smython/parser"
	"github.com/msto63/smython/foundation/smython/token"
	"github.com/msto63/smython/internal/server"
	coregrpc "github.com/msto63/smython/pkg/core/grpc"
)

// execute runs the root command with fresh flag values
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cfgFile, verbose = "", false
	parseFormat = "dump"
	checkCache, checkPrune, checkQuiet, checkWorkers = "", 0, false, 0
	versionJSON = false
	remoteAddr, statusAddr = "", ""

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	err = Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseStdin(t *testing.T) {
	out, _, err := execute(t, "x = 1\n", "parse")
	require.NoError(t, err)
	assert.Equal(t, "Suite[Assign((Var(x)), (Lit(1)))]\n", out)

	out, _, err = execute(t, "x = 1\n", "parse", "-")
	require.NoError(t, err)
	assert.Equal(t, "Suite[Assign((Var(x)), (Lit(1)))]\n", out)
}

func TestParseSourceFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "m.py", "if a:\n  x = (1+2)*3\n")

	out, _, err := execute(t, "", "parse", "--format", "source", path)
	require.NoError(t, err)
	assert.Equal(t, "if a:\n    x = (1 + 2) * 3\n", out)
}

func TestParseSyntaxError(t *testing.T) {
	out, errOut, err := execute(t, "if x\n    pass\n", "parse")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errReported))
	assert.Empty(t, out)
	assert.Contains(t, errOut, "<stdin>:1:")
	assert.Contains(t, errOut, "SyntaxError:")
	assert.Contains(t, errOut, "    if x\n")
	assert.NotContains(t, errOut, "error: reported")
}

func TestParseErrors(t *testing.T) {
	_, errOut, err := execute(t, "pass\n", "parse", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, errOut, `unknown format "xml"`)

	_, errOut, err = execute(t, "", "parse", filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, errReported))
	assert.Contains(t, errOut, "error:")
}

func TestTokens(t *testing.T) {
	out, _, err := execute(t, "x = 1\n", "tokens")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "1:1     NAME(x)", lines[0])
	assert.Contains(t, lines[4], "EOF")

	_, errOut, err := execute(t, "s = 'open\n", "tokens")
	require.Error(t, err)
	assert.Contains(t, errOut, "SyntaxError:")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.py", "def f():\n    return 1\n")
	writeFile(t, dir, "bad.py", "def f(:\n    return 1\n")
	db := filepath.Join(t.TempDir(), "cache.db")

	out, _, err := execute(t, "", "check", "--cache", db, dir)
	require.True(t, errors.Is(err, errReported))
	assert.Contains(t, out, "bad.py:1:")
	assert.Contains(t, out, "good.py: ok")
	assert.Contains(t, out, "2 files checked, 1 failed")
	assert.NotContains(t, out, "from cache")

	out, _, err = execute(t, "", "check", "--cache", db, dir)
	require.True(t, errors.Is(err, errReported))
	assert.Contains(t, out, "2 files checked, 1 failed (2 from cache)")
}

func TestCheckQuiet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "pass\n")
	writeFile(t, dir, "b.py", "x = 1\n")

	out, _, err := execute(t, "", "check", "-q", dir)
	require.NoError(t, err)
	assert.Equal(t, "2 files checked, 0 failed\n", out)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "smython "))

	out, _, err = execute(t, "", "version", "--json")
	require.NoError(t, err)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info["version"])
}

func TestPrintSyntaxError(t *testing.T) {
	var buf bytes.Buffer
	serr := &parser.SyntaxError{Pos: token.Position{Line: 2, Column: 5}, Msg: "invalid syntax"}
	printSyntaxError(&buf, "m.py", "a = 1\nb = = 2\n", serr)
	assert.Equal(t, "m.py:2:5: SyntaxError: invalid syntax\n    b = = 2\n        ^\n", buf.String())

	buf.Reset()
	serr.Pos = token.Position{Line: 9, Column: 1}
	printSyntaxError(&buf, "m.py", "a = 1\n", serr)
	assert.Equal(t, "m.py:9:1: SyntaxError: invalid syntax\n", buf.String())
}

// startService runs the gRPC parser and health services on a free port
func startService(t *testing.T) string {
	t.Helper()
	engine, err := smython.New(smython.Options{Logger: mdwlog.New().WithOutput(io.Discard)})
	require.NoError(t, err)

	cfg := coregrpc.DefaultServerConfig("127.0.0.1:0")
	cfg.Logger = mdwlog.New().WithOutput(io.Discard)
	gs := coregrpc.NewServer(cfg)
	server.RegisterParserServer(gs.GRPCServer(), server.NewParserServer(server.NewService(engine, nil)))
	gs.SetServing(server.ParserServiceName, true)
	require.NoError(t, gs.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gs.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return gs.Address()
}

func TestRemoteAndStatus(t *testing.T) {
	addr := startService(t)

	out, _, err := execute(t, "x = 1\n", "remote", "--addr", addr)
	require.NoError(t, err)
	assert.Equal(t, "Suite[Assign((Var(x)), (Lit(1)))]\n", out)

	_, errOut, err := execute(t, "if x\n    pass\n", "remote", "--addr", addr)
	require.True(t, errors.Is(err, errReported))
	assert.Contains(t, errOut, "<stdin>:1:")
	assert.Contains(t, errOut, "    if x\n")

	out, _, err = execute(t, "", "status", "--addr", addr)
	require.NoError(t, err)
	assert.Contains(t, out, "healthy")
	assert.Contains(t, out, "parser")
	assert.Contains(t, out, "SERVING")
}
