package tui

import "github.com/charmbracelet/bubbles/key"

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyUp    = "up"
	keyDown  = "down"
	keyCtrlC = "ctrl+c"
)

// listKeyMap holds the message list jump bindings. Line and page scrolling
// use the viewport's own keymap.
type listKeyMap struct {
	Top    key.Binding
	Bottom key.Binding
}

func defaultListKeyMap() listKeyMap {
	return listKeyMap{
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g/home", "oldest"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/end", "newest"),
		),
	}
}

// appKeyMap holds the bindings shown in the help line.
type appKeyMap struct {
	Scroll  key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Compose key.Binding
	Quit    key.Binding
}

func defaultAppKeyMap(list listKeyMap, canCompose bool) appKeyMap {
	km := appKeyMap{
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "k", "j", "pgup", "pgdown"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Top:    list.Top,
		Bottom: list.Bottom,
		Compose: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "write"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", keyCtrlC),
			key.WithHelp("q", "quit"),
		),
	}
	km.Compose.SetEnabled(canCompose)
	return km
}

// ShortHelp implements help.KeyMap.
func (k appKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Top, k.Bottom, k.Compose, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k appKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
