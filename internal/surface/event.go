package surface

import tea "github.com/charmbracelet/bubbletea"

// Key names, following the DOM KeyboardEvent.key convention
const (
	KeySpace      = " "
	KeyBackspace  = "Backspace"
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeyTab        = "Tab"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyF1         = "F1"
)

// KeyEvent is one keydown travelling through the listeners of a Target
type KeyEvent struct {
	Key string     // printable keys are the character itself
	Msg tea.KeyMsg // the terminal message the event was built from

	defaultPrevented   bool
	propagationStopped bool
}

// NewKeyEvent wraps a terminal key message
func NewKeyEvent(msg tea.KeyMsg) *KeyEvent {
	return &KeyEvent{Key: KeyName(msg), Msg: msg}
}

// PreventDefault keeps the surface from applying the key to its text
func (e *KeyEvent) PreventDefault() { e.defaultPrevented = true }

// StopPropagation skips every listener that has not run yet
func (e *KeyEvent) StopPropagation() { e.propagationStopped = true }

func (e *KeyEvent) DefaultPrevented() bool   { return e.defaultPrevented }
func (e *KeyEvent) PropagationStopped() bool { return e.propagationStopped }
