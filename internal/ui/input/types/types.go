package types

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to editor state needed for input handling
type Context interface {
	FocusedBlockID() string
	FocusedIndex() int
	BlockCount() int
	FocusedText() string
	CursorPosition() int
	PaletteOpen() bool
}
