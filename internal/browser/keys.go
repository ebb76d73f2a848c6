package browser

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/marcus/markview/pkg/viewer"
)

// KeyMap holds the browser bindings. Document navigation keys come from the
// embedded viewer bindings.
type KeyMap struct {
	Viewer  viewer.KeyMap
	Back    key.Binding
	Open    key.Binding
	Help    key.Binding
	Quit    key.Binding
	Dismiss key.Binding
	Confirm key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Viewer: viewer.DefaultKeyMap(),
		Back: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "back"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open url"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ok"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Viewer.Up, k.Viewer.Down, k.Viewer.Activate, k.Back, k.Open, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return append(k.Viewer.FullHelp(), []key.Binding{k.Back, k.Open, k.Help, k.Quit})
}
