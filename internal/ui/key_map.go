package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	next    key.Binding
	enter   key.Binding
	back    key.Binding
	preview key.Binding
	open    key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "get songs")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "presets")),
		preview: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space/p", "preview")),
		open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in spotify")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.enter, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.next},
		{k.enter, k.back},
		{k.preview, k.open, k.quit},
	}
}
