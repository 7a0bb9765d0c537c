package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ------- styling (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	labelStyle    = lipgloss.NewStyle().Width(13)
	badgeStyle    = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("237"))
	assignedStyle = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("25")).Foreground(lipgloss.Color("255"))
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Bold(true).Background(lipgloss.Color("25")).Foreground(lipgloss.Color("255"))

	borderColor lipgloss.TerminalColor = lipgloss.Color("8")

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// applyTheme adjusts the palette to match the plain-output theme names.
func applyTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		titleStyle = titleStyle.Foreground(lipgloss.Color("13"))
		accentStyle = accentStyle.Foreground(lipgloss.Color("14"))
		pendingStyle = pendingStyle.Foreground(lipgloss.Color("11"))
		borderColor = lipgloss.Color("13")
		boxChecked, boxUnchecked = "◼", "◻"
	case "mono":
		plain := lipgloss.NewStyle()
		successStyle, pendingStyle, accentStyle, errorStyle = plain, plain, plain, plain.Bold(true)
		badgeStyle, assignedStyle = plain.Padding(0, 1), plain.Padding(0, 1).Underline(true)
		buttonStyle = plain.Padding(0, 1).Bold(true).Reverse(true)
		borderColor = lipgloss.NoColor{}
		boxChecked, boxUnchecked = "[x]", "[ ]"
	}
}

func panelString(inner string, width int) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)
	if width > 4 {
		border = border.Width(width - 2)
	}
	return border.Render(inner)
}
