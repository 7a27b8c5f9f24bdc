package ui

import (
	"charm.land/bubbles/v2/key"
)

// KeyMap lists the bindings of the table view.
type KeyMap struct {
	FocusNext  key.Binding
	FocusPrev  key.Binding
	Narrow     key.Binding
	Widen      key.Binding
	NarrowMore key.Binding
	WidenMore  key.Binding
	Up         key.Binding
	Down       key.Binding
	ToggleMode key.Binding
	Relock     key.Binding
	Blur       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		FocusNext:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next boundary")),
		FocusPrev:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev boundary")),
		Narrow:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "narrow")),
		Widen:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "widen")),
		NarrowMore: key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("shift+←", "narrow more")),
		WidenMore:  key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("shift+→", "widen more")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		ToggleMode: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "toggle mode")),
		Relock:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "re-fit")),
		Blur:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "unfocus")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusNext, k.Narrow, k.Widen, k.ToggleMode, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusNext, k.FocusPrev, k.Blur},
		{k.Narrow, k.Widen, k.NarrowMore, k.WidenMore},
		{k.Up, k.Down},
		{k.ToggleMode, k.Relock, k.Help, k.Quit},
	}
}
