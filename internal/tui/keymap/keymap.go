// Package keymap defines keybindings for the browse TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings.
type KeyMap struct {
	Quit       key.Binding
	Back       key.Binding
	Filter     key.Binding
	Search     key.Binding
	Up         key.Binding
	Down       key.Binding
	Instrument key.Binding
	Refresh    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search around target"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Instrument: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next instrument"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// TargetsHelp returns keybindings shown under the targets table.
func (k *KeyMap) TargetsHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filter, k.Instrument, k.Refresh, k.Quit}
}

// ResultsHelp returns keybindings shown under the results table.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// ShortHelp implements help.KeyMap.
func (k *KeyMap) ShortHelp() []key.Binding {
	return k.TargetsHelp()
}

// FullHelp implements help.KeyMap.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search},
		{k.Filter, k.Back, k.Instrument, k.Refresh},
		{k.Quit},
	}
}
