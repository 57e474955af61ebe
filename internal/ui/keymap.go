package ui

import "github.com/charmbracelet/bubbles/key"

// main
type keyMap struct {
	quit     key.Binding
	showKbar key.Binding
	tabView  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		showKbar: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find"),
		),
		tabView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch fields/preview"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.tabView,
		k.showKbar,
		k.quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{}, // only render short help
	}
}
