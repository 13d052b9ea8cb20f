package explorer

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwlog "github.com/msto63/smython/foundation/core/log"
	"github.com/msto63/smython/foundation/smython"
	"github.com/msto63/smython/foundation/smython/parser"
	"github.com/msto63/smython/foundation/smython/token"
)

func testEngine(t *testing.T) *smython.Engine {
	t.Helper()
	e, err := smython.New(smython.Options{Logger: mdwlog.New().WithOutput(io.Discard)})
	require.NoError(t, err)
	return e
}

// start runs Init and sizes the window the way a program would
func start(t *testing.T, cfg Config) Model {
	t.Helper()
	m := New(cfg)
	msg := m.Init()()
	updated, _ := m.Update(msg)
	updated, _ = updated.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func press(m Model, key tea.KeyMsg) (Model, tea.Cmd) {
	updated, cmd := m.Update(key)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestExplorerShowsTree(t *testing.T) {
	m := start(t, Config{Source: "def f(a):\n    return a\n", Engine: testEngine(t)})

	assert.Equal(t, TabTree, m.tab)
	view := m.View()
	assert.Contains(t, view, "smython explorer")
	assert.Contains(t, view, "ok: 1 statements")
	assert.Contains(t, view, "Def f")
	assert.Contains(t, view, "Param a")
}

func TestExplorerSwitchesTabs(t *testing.T) {
	m := start(t, Config{Source: "x = 1\n", Engine: testEngine(t)})

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabSource, m.tab)
	assert.Contains(t, m.View(), "1 | x = 1")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabTokens, m.tab)
	assert.Contains(t, m.View(), "NAME(x)")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabTree, m.tab)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabTokens, m.tab)

	m, _ = press(m, runes("2"))
	assert.Equal(t, TabSource, m.tab)
}

func TestExplorerSyntaxError(t *testing.T) {
	m := start(t, Config{Source: "if x\n    y = 1\n", Engine: testEngine(t)})

	require.NotNil(t, m.syntaxErr)
	assert.Equal(t, 1, m.syntaxErr.Pos.Line)
	assert.Equal(t, TabSource, m.tab, "a syntax error opens the source tab")

	view := m.View()
	assert.Contains(t, view, "SyntaxError: line 1")
	assert.Contains(t, view, ">1 | if x")

	m, _ = press(m, runes("1"))
	assert.Contains(t, m.View(), "no tree")
}

func TestExplorerReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.py")
	require.NoError(t, os.WriteFile(path, []byte("import os\n"), 0o644))

	m := start(t, Config{Path: path, Engine: testEngine(t)})
	view := m.View()
	assert.Contains(t, view, path)
	assert.Contains(t, view, "Import[os]")

	_, cmd := press(m, runes("r"))
	require.NotNil(t, cmd, "reload re-reads the file")
	_, ok := cmd().(loadedMsg)
	assert.True(t, ok)
}

func TestExplorerMissingFile(t *testing.T) {
	m := start(t, Config{Path: filepath.Join(t.TempDir(), "missing.py"), Engine: testEngine(t)})

	require.Error(t, m.loadErr)
	assert.Nil(t, m.syntaxErr)
	assert.Contains(t, m.View(), "error:")
}

func TestExplorerQuit(t *testing.T) {
	m := start(t, Config{Source: "pass\n", Engine: testEngine(t)})

	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := press(m, key)
		require.NotNil(t, cmd, key.String())
		assert.Equal(t, tea.QuitMsg{}, cmd(), key.String())
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := New(Config{Source: "pass\n", Engine: testEngine(t)})
	assert.Contains(t, m.View(), "Initializing")
}

func TestTreeLines(t *testing.T) {
	tree, err := parser.Parse("x = a + 1\n")
	require.NoError(t, err)

	lines := TreeLines(tree)
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "Suite"))

	var assign, binary, lit string
	for _, line := range lines {
		switch {
		case strings.Contains(line, "Assign"):
			assign = line
		case strings.Contains(line, "Binary +"):
			binary = line
		case strings.Contains(line, "Lit(1)"):
			lit = line
		}
	}
	require.NotEmpty(t, assign)
	require.NotEmpty(t, binary)
	require.NotEmpty(t, lit)
	indent := func(s string) int { return len(s) - len(strings.TrimLeft(s, " ")) }
	assert.Less(t, indent(assign), indent(binary))
	assert.Less(t, indent(binary), indent(lit))
	assert.Contains(t, binary, "1:5")
}

func TestSourceLines(t *testing.T) {
	serr := &parser.SyntaxError{Pos: token.Position{Line: 2, Column: 3}, Msg: "bad"}
	assert.Equal(t, []string{" 1 | a", ">2 | b c", "   |   ^"}, SourceLines("a\nb c\n", serr))
	assert.Equal(t, []string{" 1 | a"}, SourceLines("a", nil))
}

func TestTokenLines(t *testing.T) {
	lines := TokenLines([]token.Token{
		{Kind: token.NAME, Text: "x", Value: "x", Pos: token.Position{Line: 1, Column: 1}},
		{Kind: token.EOF, Pos: token.Position{Line: 2, Column: 1}},
	})
	require.Len(t, lines, 2)
	assert.Equal(t, "1:1     NAME(x)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2:1"))
}
