package surface

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyName converts a terminal key message to a DOM-style key name.
// A single typed rune maps to itself; keys without a DOM name keep
// bubbletea's spelling ("ctrl+b", "alt+x", "pgdown"), which is never a
// single character.
func KeyName(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeySpace:
		return KeySpace
	case tea.KeyBackspace:
		return KeyBackspace
	case tea.KeyEnter:
		return KeyEnter
	case tea.KeyEsc:
		return KeyEscape
	case tea.KeyTab:
		return KeyTab
	case tea.KeyUp:
		return KeyArrowUp
	case tea.KeyDown:
		return KeyArrowDown
	case tea.KeyLeft:
		return KeyArrowLeft
	case tea.KeyRight:
		return KeyArrowRight
	case tea.KeyF1:
		return KeyF1
	case tea.KeyRunes:
		if !msg.Alt && !msg.Paste && len(msg.Runes) == 1 {
			return string(msg.Runes)
		}
	}
	return msg.String()
}

// SplitRunes breaks a burst of typed runes, which the terminal reader can
// deliver as one message, into one message per key. Alt and paste messages
// are returned whole.
func SplitRunes(msg tea.KeyMsg) []tea.KeyMsg {
	if msg.Type != tea.KeyRunes || msg.Alt || msg.Paste || len(msg.Runes) <= 1 {
		return []tea.KeyMsg{msg}
	}
	keys := make([]tea.KeyMsg, 0, len(msg.Runes))
	for _, r := range msg.Runes {
		if r == ' ' {
			keys = append(keys, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		keys = append(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return keys
}

// IsPrintable reports whether a key name is a single character
func IsPrintable(key string) bool {
	return utf8.RuneCountInString(key) == 1
}
