package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#00B2A0") // teal header
	colorAccent  = lipgloss.Color("#A1E6DF")
	colorDanger  = lipgloss.Color("#FF6B6B")
	colorSuccess = lipgloss.Color("#6BCF7F")
	colorMuted   = lipgloss.Color("#6C757D")
	colorPending = lipgloss.Color("#FFD93D")
	colorLand    = lipgloss.Color("#3E6B48")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	activePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle   = lipgloss.NewStyle().Foreground(colorDanger)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1B1B1B")).
				Background(colorAccent)

	// map glyph styles
	landStyle     = lipgloss.NewStyle().Foreground(colorLand)
	gridStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	sightingStyle = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	pendingStyle  = lipgloss.NewStyle().Foreground(colorPending).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
)
