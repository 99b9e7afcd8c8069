package types

// FocusMoveAction moves editing focus to a neighbouring text block
type FocusMoveAction struct {
	Delta int // -1 for the previous block, +1 for the next
}

func (a FocusMoveAction) Type() string { return "focus_move" }

// SplitBlockAction cuts the focused block at the cursor; After goes into a
// new paragraph inserted below it
type SplitBlockAction struct {
	BlockID string
	Before  string
	After   string
}

func (a SplitBlockAction) Type() string { return "split_block" }

// DeleteBlockAction removes an empty block and focuses the previous one
type DeleteBlockAction struct {
	BlockID string
}

func (a DeleteBlockAction) Type() string { return "delete_block" }

// OpenPaletteAction opens the slash palette on a block
type OpenPaletteAction struct {
	BlockID string
}

func (a OpenPaletteAction) Type() string { return "open_palette" }

// ToggleHelpAction shows the key reference
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// QuitAction exits the editor
type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
