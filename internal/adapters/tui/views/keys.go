package views

import "github.com/charmbracelet/bubbles/key"

// DashboardKeyMap defines key bindings for the dashboard
type DashboardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	Play        key.Binding
	Advance     key.Binding
	Reset       key.Binding
	Faster      key.Binding
	Slower      key.Binding
	Mode        key.Binding
	Open        key.Binding
	Click       key.Binding
	ToggleOpen  key.Binding
	ToggleClick key.Binding
	Preview     key.Binding
	Browser     key.Binding
	Editor      key.Binding
	Flow        key.Binding
	Programs    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var DashboardKeys = DashboardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "prev page"),
	),
	Play: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space/p", "play/pause"),
	),
	Advance: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next day"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Faster: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "faster"),
	),
	Slower: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "slower"),
	),
	Mode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "behavior"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	Click: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "click"),
	),
	ToggleOpen: key.NewBinding(
		key.WithKeys("O"),
		key.WithHelp("O", "toggle opened"),
	),
	ToggleClick: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "toggle clicked"),
	),
	Preview: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "preview"),
	),
	Browser: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "browser"),
	),
	Editor: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit template"),
	),
	Flow: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "flow"),
	),
	Programs: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "programs"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// PreviewKeyMap defines key bindings for the preview view
type PreviewKeyMap struct {
	Back    key.Binding
	Copy    key.Binding
	Source  key.Binding
	Browser key.Binding
	Editor  key.Binding
	Open    key.Binding
	Click   key.Binding
}

var PreviewKeys = PreviewKeyMap{
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy html"),
	),
	Source: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "text/source"),
	),
	Browser: DashboardKeys.Browser,
	Editor:  DashboardKeys.Editor,
	Open:    DashboardKeys.Open,
	Click:   DashboardKeys.Click,
}

// ListKeyMap defines key bindings for the flow and program views
type ListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
}

var ListKeys = ListKeyMap{
	Up:   DashboardKeys.Up,
	Down: DashboardKeys.Down,
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q", "f", "tab"),
		key.WithHelp("esc", "back"),
	),
}
