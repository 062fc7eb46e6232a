package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding
	Island    key.Binding

	// Navigation
	NextTab   key.Binding
	PrevTab   key.Binding
	TabMap    key.Binding
	TabDeck   key.Binding
	TabSparks key.Binding
	TabMe     key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding

	// Discover
	Reject key.Binding
	Accept key.Binding
	Strong key.Binding
	Refill key.Binding

	// Map
	Search   key.Binding
	CheckIn  key.Binding
	Location key.Binding

	// Sparks
	Decline key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "clear/close"),
		),
		Island: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle island"),
		),

		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next screen"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev screen"),
		),
		TabMap: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "map"),
		),
		TabDeck: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "discover"),
		),
		TabSparks: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "sparks"),
		),
		TabMe: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "profile"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/accept"),
		),

		Reject: key.NewBinding(
			key.WithKeys("left", "h", "x"),
			key.WithHelp("←/h/x", "pass"),
		),
		Accept: key.NewBinding(
			key.WithKeys("right", "l", "enter"),
			key.WithHelp("→/l", "like"),
		),
		Strong: key.NewBinding(
			key.WithKeys("up", "s"),
			key.WithHelp("↑/s", "super spark"),
		),
		Refill: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refill deck"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search venues"),
		),
		CheckIn: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "check in"),
		),
		Location: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "enable location"),
		),

		Decline: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d/x", "decline"),
		),
	}
}
