package input

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the editor key bindings. It implements help.KeyMap.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Split   key.Binding
	Delete  key.Binding
	Palette key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the built-in bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous block"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next block"),
		),
		Split: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new block"),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete empty block"),
		),
		Palette: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "block types"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Palette, k.Split, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Split, k.Delete, k.Palette},
		{k.Help, k.Quit},
	}
}
