package kbar

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	hide key.Binding
	up   key.Binding
	down key.Binding
	pick key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		hide: key.NewBinding(key.WithKeys("esc")),
		up:   key.NewBinding(key.WithKeys("up", "ctrl+p")),
		down: key.NewBinding(key.WithKeys("down", "ctrl+n")),
		pick: key.NewBinding(key.WithKeys("enter")),
	}
}
