package ui

import "github.com/charmbracelet/bubbles/key"

// DashboardKeyMap defines keys available while the dashboard has focus.
type DashboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	OpenMenu key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

var DashboardKeys = DashboardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "prev repo"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "next repo"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h", "prev run"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l", "next run"),
	),
	OpenMenu: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "run menu"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("f", "r"),
		key.WithHelp("f", "refresh now"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// PopupKeyMap defines keys while the run menu popup is open.
type PopupKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Close   key.Binding
	Quit    key.Binding
}

var PopupKeys = PopupKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "confirm"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+C", "quit"),
	),
}
