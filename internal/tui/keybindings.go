package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the review screen bindings. It implements help.KeyMap.
type keyMap struct {
	Approve     key.Binding
	Reject      key.Binding
	Ask         key.Binding
	Edit        key.Binding
	Attachments key.Binding
	Focus       key.Binding
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	Back        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Approve: key.NewBinding(
			key.WithKeys("y", "a"),
			key.WithHelp("y", "approve"),
		),
		Reject: key.NewBinding(
			key.WithKeys("n", "r"),
			key.WithHelp("n", "reject"),
		),
		Ask: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ask"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit description"),
		),
		Attachments: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "attachments"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch list"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Help: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Approve, k.Reject, k.Ask, k.Edit, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Approve, k.Reject, k.Ask, k.Edit},
		{k.Attachments, k.Focus, k.Up, k.Down},
		{k.Open, k.Back, k.Help, k.Quit},
	}
}

// setDeciding toggles the bindings that require an undecided current item.
func (k *keyMap) setDeciding(enabled bool) {
	k.Approve.SetEnabled(enabled)
	k.Reject.SetEnabled(enabled)
	k.Ask.SetEnabled(enabled)
	k.Edit.SetEnabled(enabled)
	k.Attachments.SetEnabled(enabled)
}
