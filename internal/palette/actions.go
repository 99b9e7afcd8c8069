package palette

import (
	"errors"
	"fmt"

	"blockslash/internal/surface"
)

// ErrInvariantViolation marks a key-routing defect. It never describes
// user input and must not be handled as a user-facing error.
var ErrInvariantViolation = errors.New("palette invariant violated")

// Action is what a key does to the palette
type Action interface {
	Type() string
}

// AbortAction ends the interaction without touching the document
type AbortAction struct {
	Key string
}

func (a AbortAction) Type() string { return "abort" }

// AppendAction adds a character to the search string
type AppendAction struct {
	Char string
}

func (a AppendAction) Type() string { return "append" }

// TrimAction removes the last character of the search string
type TrimAction struct{}

func (a TrimAction) Type() string { return "trim" }

// MoveAction moves the active entry; Delta is -1 or +1
type MoveAction struct {
	Delta int
}

func (a MoveAction) Type() string { return "move" }

// CommitAction applies the active entry
type CommitAction struct{}

func (a CommitAction) Type() string { return "commit" }

// PassAction leaves the key to the surface untouched
type PassAction struct{}

func (a PassAction) Type() string { return "pass" }

var navigationKeys = map[string]bool{
	surface.KeyArrowLeft:  true,
	surface.KeyArrowRight: true,
	surface.KeyArrowUp:    true,
	surface.KeyArrowDown:  true,
	surface.KeyEnter:      true,
}

// Classify maps a key to an action, in priority order
func Classify(key string, searchEmpty bool) (Action, error) {
	if key == surface.KeySpace {
		return AbortAction{Key: key}, nil
	}
	if key == surface.KeyBackspace {
		if searchEmpty {
			return AbortAction{Key: key}, nil
		}
		return TrimAction{}, nil
	}
	if surface.IsPrintable(key) {
		return AppendAction{Char: key}, nil
	}
	if !navigationKeys[key] {
		return PassAction{}, nil
	}
	return classifyNavigation(key)
}

// classifyNavigation handles the keys accepted by the navigation guard
func classifyNavigation(key string) (Action, error) {
	switch key {
	case surface.KeyEnter:
		return CommitAction{}, nil
	case surface.KeyArrowUp:
		return MoveAction{Delta: -1}, nil
	case surface.KeyArrowDown:
		return MoveAction{Delta: 1}, nil
	case surface.KeyArrowLeft, surface.KeyArrowRight:
		return AbortAction{Key: key}, nil
	default:
		return nil, fmt.Errorf("%w: unknown navigation key %q", ErrInvariantViolation, key)
	}
}
