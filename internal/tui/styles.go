package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	accentColor    = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6B7280") // Gray

	// Prompt styles
	PromptLabelStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	// Inline muted text (no margins, for use within lines)
	MutedTextStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	CountdownStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// Help styles
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)
)

// RenderHelp renders alternating key and description pairs as a help line.
func RenderHelp(keys ...string) string {
	var result string
	for i := 0; i < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		key := keys[i]
		desc := ""
		if i+1 < len(keys) {
			desc = keys[i+1]
		}
		result += HelpKeyStyle.Render(key) + " " + desc
	}
	return HelpStyle.Render(result)
}
