package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the keyboard bindings. Dialog input itself is mouse only.
type keyMap struct {
	Cancel key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Cancel: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "cancel"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cancel}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
