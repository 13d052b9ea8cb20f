// File: styles.go
// Title: Explorer Styles
// Description: Color palette and lipgloss styles for the syntax tree
//              explorer.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-27
// Modified: 2025-03-27
//
// Change History:
// - 2025-03-27 v0.1.0: Initial styles

package explorer

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500
	ColorBgPanel   = lipgloss.Color("#1E293B") // Slate 800
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Italic(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 2)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 2)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorBgPanel).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

var (
	OKStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	ErrorBannerStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorError).
				Bold(true).
				Padding(0, 1)

	ErrorLineStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	LineNumberStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	NodeStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	PositionStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)
