package result

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up     key.Binding
	down   key.Binding
	format key.Binding
	export key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:   key.NewBinding(key.WithKeys("up", "k")),
		down: key.NewBinding(key.WithKeys("down", "j")),
		format: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "format"),
		),
		export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.format, k.export}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{}, // only render short help
	}
}
