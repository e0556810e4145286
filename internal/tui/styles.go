package tui

import "charm.land/lipgloss/v2"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1E3A8A")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#2563EB")).
			Padding(0, 1)

	aiStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#111827")).
		Background(lipgloss.Color("#E5E7EB")).
		Padding(0, 1)

	typingStyle = lipgloss.NewStyle().
			Italic(true).
			Faint(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")).
			Strikethrough(true)

	launcherStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#2563EB")).
			Padding(0, 2)
)
