package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the terminal.
type KeyMap struct {
	Fetch key.Binding
	Theme key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Fetch: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "get cat fact"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fetch, k.Theme, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
