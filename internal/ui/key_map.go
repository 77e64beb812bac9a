package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	focus  key.Binding
	submit key.Binding
	blur   key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		focus:  key.NewBinding(key.WithKeys("tab", "/"), key.WithHelp("tab", "edit simulations")),
		submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		blur:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done editing")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.focus, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down},
		{k.focus, k.submit, k.blur},
		{k.quit},
	}
}
