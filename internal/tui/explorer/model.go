// File: model.go
// Title: Syntax Tree Explorer Model
// Description: Bubble Tea model for browsing one source file: the parsed
//              node outline, the numbered source with the syntax error
//              marked, and the token stream, each in a scrollable tab.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-27
// Modified: 2025-03-28
//
// Change History:
// - 2025-03-27 v0.1.0: Initial explorer
// - 2025-03-28 v0.1.0: Reload key and jump to the error line

package explorer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/smython/foundation/smython"
	"github.com/msto63/smython/foundation/smython/ast"
	"github.com/msto63/smython/foundation/smython/parser"
	"github.com/msto63/smython/foundation/smython/token"
)

// Tab identifies one explorer view
type Tab int

const (
	TabTree Tab = iota
	TabSource
	TabTokens
	tabCount
)

var tabNames = [...]string{TabTree: "Tree", TabSource: "Source", TabTokens: "Tokens"}

func (t Tab) String() string { return tabNames[t] }

const (
	headerHeight = 3
	footerHeight = 2
)

// Config configures the explorer. Source takes precedence over Path;
// with only Path set the file is read on start and on reload.
type Config struct {
	Path   string
	Source string
	Engine *smython.Engine
}

// loadedMsg carries the result of reading and parsing the input
type loadedMsg struct {
	source string
	tree   *ast.Suite
	tokens []token.Token
	err    error
}

// Model is the explorer state
type Model struct {
	cfg      Config
	engine   *smython.Engine
	tab      Tab
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	loaded    bool
	source    string
	tree      *ast.Suite
	tokens    []token.Token
	syntaxErr *parser.SyntaxError
	loadErr   error
	jump      bool
}

// New creates an explorer model
func New(cfg Config) Model {
	engine := cfg.Engine
	if engine == nil {
		engine = smython.Default()
	}
	return Model{cfg: cfg, engine: engine}
}

// Init starts loading the input
func (m Model) Init() tea.Cmd {
	return m.load
}

func (m Model) load() tea.Msg {
	source := m.cfg.Source
	if source == "" && m.cfg.Path != "" {
		var err error
		if source, err = smython.ReadSource(m.cfg.Path); err != nil {
			return loadedMsg{err: err}
		}
	}
	tree, err := m.engine.Parse(source)
	tokens, _ := m.engine.Tokens(source)
	return loadedMsg{source: source, tree: tree, tokens: tokens, err: err}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		height := msg.Height - headerHeight - footerHeight
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.refresh()
		return m, nil

	case loadedMsg:
		m.loaded = true
		m.source = msg.source
		m.tree = msg.tree
		m.tokens = msg.tokens
		m.syntaxErr = nil
		m.loadErr = nil
		if serr, ok := parser.AsSyntaxError(msg.err); ok {
			m.syntaxErr = serr
			m.tab = TabSource
			m.jump = true
		} else if msg.err != nil {
			m.loadErr = msg.err
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "tab", "right", "l":
		m.setTab((m.tab + 1) % tabCount)
		return m, nil
	case "shift+tab", "left", "h":
		m.setTab((m.tab + tabCount - 1) % tabCount)
		return m, nil
	case "1", "2", "3":
		m.setTab(Tab(msg.String()[0] - '1'))
		return m, nil
	case "r":
		if m.cfg.Source == "" && m.cfg.Path != "" {
			return m, m.load
		}
		return m, nil
	case "g", "home":
		m.viewport.GotoTop()
		return m, nil
	case "G", "end":
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) setTab(t Tab) {
	if t == m.tab {
		return
	}
	m.tab = t
	m.refresh()
	m.viewport.GotoTop()
}

// Lines returns the content of the active tab
func (m Model) Lines() []string {
	switch m.tab {
	case TabSource:
		return SourceLines(m.source, m.syntaxErr)
	case TabTokens:
		if m.tokens == nil {
			return []string{"no tokens: the input does not tokenize"}
		}
		return TokenLines(m.tokens)
	default:
		if m.tree == nil {
			return []string{"no tree: the input does not parse"}
		}
		return TreeLines(m.tree)
	}
}

func (m *Model) refresh() {
	if !m.ready || !m.loaded {
		return
	}
	lines := m.Lines()
	if m.tab == TabSource && m.syntaxErr != nil {
		for i, line := range lines {
			if strings.HasPrefix(line, ">") || (i > 0 && strings.HasPrefix(lines[i-1], ">")) {
				lines[i] = ErrorLineStyle.Render(line)
			}
		}
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	if m.jump && m.tab == TabSource {
		offset := m.syntaxErr.Pos.Line - m.viewport.Height/2
		if offset < 0 {
			offset = 0
		}
		m.viewport.SetYOffset(offset)
		m.jump = false
	}
}

// View renders the explorer
func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("smython explorer"))
	if m.cfg.Path != "" {
		b.WriteString("  " + PathStyle.Render(m.cfg.Path))
	}
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(StatusBarStyle.Render(fmt.Sprintf("%s  %3.f%%", m.tab, m.viewport.ScrollPercent()*100)))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("tab/1-3: switch  ↑/↓ pgup/pgdn: scroll  g/G: top/bottom  r: reload  q: quit"))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, tabCount)
	for t := TabTree; t < tabCount; t++ {
		if t == m.tab {
			tabs[t] = ActiveTabStyle.Render(t.String())
		} else {
			tabs[t] = TabStyle.Render(t.String())
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderBanner() string {
	switch {
	case !m.loaded:
		return HelpStyle.Render("loading...")
	case m.loadErr != nil:
		return ErrorBannerStyle.Render("error: " + m.loadErr.Error())
	case m.syntaxErr != nil:
		return ErrorBannerStyle.Render(m.syntaxErr.Error())
	default:
		return OKStyle.Render(fmt.Sprintf("ok: %d statements, %d tokens", len(m.tree.Stmts), len(m.tokens)))
	}
}

// Run starts the explorer in the alternate screen and blocks until it exits
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
