package viewer

import "github.com/charmbracelet/lipgloss"

// Colors shared by the viewer and the applications embedding it.
var (
	Primary = lipgloss.Color("212")
	Error   = lipgloss.Color("196")
	Info    = lipgloss.Color("45")
	Muted   = lipgloss.Color("241")
)

// Highlight is the default style merged over the focused link.
var Highlight = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(Primary).
	Bold(true)
