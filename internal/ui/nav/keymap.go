package nav

import "github.com/charmbracelet/bubbles/key"

// Keymaps
type keyMap struct {
	up        key.Binding
	down      key.Binding
	fold      key.Binding
	add       key.Binding
	addChild  key.Binding
	remove    key.Binding
	cycleType key.Binding
	rename    key.Binding
	editValue key.Binding
	commit    key.Binding
	cancel    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:   key.NewBinding(key.WithKeys("up", "k")),
		down: key.NewBinding(key.WithKeys("down", "j")),
		fold: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "fold"),
		),
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		addChild: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "add child"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		cycleType: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "type"),
		),
		rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		editValue: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "value"),
		),
		commit: key.NewBinding(key.WithKeys("enter")),
		cancel: key.NewBinding(key.WithKeys("esc")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.add,
		k.addChild,
		k.remove,
		k.cycleType,
		k.rename,
		k.editValue,
		k.fold,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{}, // only render short help
	}
}
