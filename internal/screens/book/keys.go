package book

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Up       key.Binding
	Down     key.Binding
	Column   key.Binding
	ColumnBk key.Binding
	Press    key.Binding
	Drop     key.Binding
	Listen   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

var keys = keyMap{
	Next:     key.NewBinding(key.WithKeys("right", "n", "]"), key.WithHelp("→/n", "Next")),
	Prev:     key.NewBinding(key.WithKeys("left", "p", "["), key.WithHelp("←/p", "Back")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Move")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	Column:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Switch")),
	ColumnBk: key.NewBinding(key.WithKeys("shift+tab")),
	Press:    key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Choose")),
	Drop:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "Let go")),
	Listen:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "Listen")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("PgDn", "Scroll")),
}
