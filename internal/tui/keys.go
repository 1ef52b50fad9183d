package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/combobox/internal/combobox"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Escape    key.Binding
	Tab       key.Binding
	Backspace key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous")),
		Down:      key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Tab:       key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "accept/leave")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Escape, k.Tab, k.Quit}
}

// comboboxKey translates a terminal key press into the key the controller
// routes on.
func (k keyMap) comboboxKey(msg tea.KeyMsg) combobox.Key {
	switch {
	case key.Matches(msg, k.Up):
		return combobox.KeyUp
	case key.Matches(msg, k.Down):
		return combobox.KeyDown
	case key.Matches(msg, k.Enter):
		return combobox.KeyEnter
	case key.Matches(msg, k.Escape):
		return combobox.KeyEscape
	case key.Matches(msg, k.Tab):
		return combobox.KeyTab
	case key.Matches(msg, k.Backspace):
		return combobox.KeyBackspace
	}
	return combobox.ParseKey(msg.String())
}
