package prompt

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings shared by every prompt.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Submit  key.Binding
	Cancel  key.Binding
	Abort   key.Binding
	Yes     key.Binding
	No      key.Binding
	NextDay key.Binding
	PrevDay key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Abort: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+d"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
	NextDay: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "next day"),
	),
	PrevDay: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "previous day"),
	),
}
