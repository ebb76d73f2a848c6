package browser

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/markview/pkg/viewer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("238")).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().Foreground(viewer.Muted)

	dialogTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(viewer.Error)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(viewer.Error).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().Foreground(viewer.Primary).Bold(true)
)
