package jsontree

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the document editor.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	GotoTop      key.Binding
	GotoEnd      key.Binding
	Toggle       key.Binding
	Fold         key.Binding
	ExpandAll    key.Binding
	CollapseAll  key.Binding
	Edit         key.Binding
	Add          key.Binding
	Delete       key.Binding
	Yank         key.Binding
	YankAll      key.Binding
	Search       key.Binding
	NextResult   key.Binding
	PrevResult   key.Binding
	Back         key.Binding
}

// DefaultKeyMap returns the default keybindings for the component.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("gg"),
			key.WithHelp("gg", "top"),
		),
		GotoEnd: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "l", "tab"),
			key.WithHelp("space/l", "toggle"),
		),
		Fold: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "fold/parent"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("zR"),
			key.WithHelp("zR", "expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("zM"),
			key.WithHelp("zM", "collapse all"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("e", "edit value"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add key/item"),
		),
		Delete: key.NewBinding(
			key.WithKeys("dd"),
			key.WithHelp("dd", "delete"),
		),
		Yank: key.NewBinding(
			key.WithKeys("yy"),
			key.WithHelp("yy", "copy value"),
		),
		YankAll: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy document"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextResult: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next match"),
		),
		PrevResult: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "prev match"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// sequences are the bindings made of more than one key.
func (k KeyMap) sequences() []key.Binding {
	return []key.Binding{k.GotoTop, k.ExpandAll, k.CollapseAll, k.Delete, k.Yank}
}

// ShortHelp returns the short help bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.Add, k.Delete, k.Yank, k.Search, k.Back}
}

// FullHelp returns the full help bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.HalfPageUp, k.HalfPageDown, k.GotoTop, k.GotoEnd},
		{k.Toggle, k.Fold, k.ExpandAll, k.CollapseAll},
		{k.Edit, k.Add, k.Delete, k.Yank, k.YankAll},
		{k.Search, k.NextResult, k.PrevResult, k.Back},
	}
}
