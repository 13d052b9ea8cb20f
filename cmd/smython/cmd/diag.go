// File: diag.go
// Title: CLI Diagnostics
// Description: Styled rendering of syntax errors and check results for
//              the command line.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-29
// Modified: 2025-03-29
//
// Change History:
// - 2025-03-29 v0.1.0: Initial diagnostics

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/smython/foundation/smython/parser"
	"github.com/msto63/smython/internal/check"
	"github.com/msto63/smython/pkg/core/health"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	pathStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// printSyntaxError writes "name:line:col: message" followed by the
// offending source line and a caret under the column
func printSyntaxError(w io.Writer, name, source string, serr *parser.SyntaxError) {
	fmt.Fprintf(w, "%s %s %s\n",
		pathStyle.Render(fmt.Sprintf("%s:%s:", name, serr.Pos)),
		errorStyle.Render("SyntaxError:"),
		serr.Msg)

	lines := strings.Split(source, "\n")
	if serr.Pos.Line < 1 || serr.Pos.Line > len(lines) {
		return
	}
	text := strings.TrimRight(lines[serr.Pos.Line-1], "\r")
	fmt.Fprintf(w, "    %s\n", text)
	if serr.Pos.Column > 0 {
		fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", serr.Pos.Column-1), errorStyle.Render("^"))
	}
}

// printResult writes one check result line
func printResult(w io.Writer, r check.Result) {
	switch {
	case r.Fault != nil:
		fmt.Fprintf(w, "%s %s %v\n", pathStyle.Render(r.Path+":"), errorStyle.Render("error:"), r.Fault)
	case r.Err != nil:
		fmt.Fprintf(w, "%s %s %s\n",
			pathStyle.Render(fmt.Sprintf("%s:%s:", r.Path, r.Err.Pos)),
			errorStyle.Render("SyntaxError:"),
			r.Err.Msg)
	default:
		fmt.Fprintf(w, "%s %s\n", pathStyle.Render(r.Path+":"), okStyle.Render("ok"))
	}
}

func statusStyle(s health.Status) lipgloss.Style {
	switch s {
	case health.StatusHealthy:
		return okStyle
	case health.StatusUnhealthy:
		return errorStyle
	default:
		return mutedStyle
	}
}
