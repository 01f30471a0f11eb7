// Package tui provides the BubbleTea-based terminal dashboard for the
// patient queue.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors used throughout the TUI.
var (
	ColorPrimary   = lipgloss.Color("12")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorWarning   = lipgloss.Color("226") // Yellow
	ColorError     = lipgloss.Color("196") // Red
	ColorInfo      = lipgloss.Color("14")  // Cyan
	ColorMuted     = lipgloss.Color("240") // Dark gray
	ColorOrange    = lipgloss.Color("208") // Orange
)

// Base styles.
var (
	// TitleStyle is for the main title bar.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	// HeaderStyle is used for table headers.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SelectedStyle highlights the currently selected row.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("57"))

	// MutedStyle is for secondary/muted text.
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	// ErrorStyle is for error indicators.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// HelpStyle is for help text at the bottom.
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StatusBarStyle is for the status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Background(lipgloss.Color("236"))
)

// RiskColor returns the color for a risk level.
func RiskColor(risk string) lipgloss.Color {
	switch risk {
	case "IMMEDIATE":
		return ColorError
	case "HIGH":
		return ColorOrange
	case "MEDIUM":
		return ColorWarning
	case "LOW":
		return ColorSuccess
	default:
		return lipgloss.Color("255")
	}
}

// RiskIcon returns a styled icon for a risk level.
func RiskIcon(risk string) string {
	switch risk {
	case "IMMEDIATE":
		return lipgloss.NewStyle().Foreground(ColorError).Render("●")
	case "HIGH":
		return lipgloss.NewStyle().Foreground(ColorOrange).Render("◉")
	case "MEDIUM":
		return lipgloss.NewStyle().Foreground(ColorWarning).Render("◐")
	case "LOW":
		return lipgloss.NewStyle().Foreground(ColorSuccess).Render("○")
	default:
		return "?"
	}
}

// Truncate truncates a string to the given maxLen length, adding "..." if needed.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
