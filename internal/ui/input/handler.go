package input

import (
	"github.com/charmbracelet/bubbles/key"

	"blockslash/internal/surface"
	"blockslash/internal/ui/input/types"
)

// Handler turns keydowns into editor actions. Block bindings run as the
// bubble listener of each rich text; global bindings run on the window.
// Handled keys have their default prevented so the text stays untouched.
type Handler struct {
	keys KeyMap
}

func New(keys KeyMap) *Handler {
	return &Handler{keys: keys}
}

// Keys returns the bindings the handler matches
func (h *Handler) Keys() KeyMap {
	return h.keys
}

// HandleBlockKey processes a key that reached a block's own bindings
func (h *Handler) HandleBlockKey(ev *surface.KeyEvent, ctx types.Context) []types.Action {
	id := ctx.FocusedBlockID()
	if id == "" {
		return nil
	}

	switch {
	case key.Matches(ev.Msg, h.keys.Palette):
		if ctx.PaletteOpen() {
			return nil
		}
		// the slash is still typed
		return []types.Action{types.OpenPaletteAction{BlockID: id}}

	case key.Matches(ev.Msg, h.keys.Split):
		ev.PreventDefault()
		text := []rune(ctx.FocusedText())
		pos := clamp(ctx.CursorPosition(), 0, len(text))
		return []types.Action{types.SplitBlockAction{
			BlockID: id,
			Before:  string(text[:pos]),
			After:   string(text[pos:]),
		}}

	case key.Matches(ev.Msg, h.keys.Up):
		ev.PreventDefault()
		return []types.Action{types.FocusMoveAction{Delta: -1}}

	case key.Matches(ev.Msg, h.keys.Down):
		ev.PreventDefault()
		return []types.Action{types.FocusMoveAction{Delta: 1}}

	case key.Matches(ev.Msg, h.keys.Delete):
		if ctx.FocusedText() != "" || ctx.BlockCount() <= 1 {
			return nil
		}
		ev.PreventDefault()
		return []types.Action{types.DeleteBlockAction{BlockID: id}}
	}
	return nil
}

// HandleWindowKey processes a key that reached the window
func (h *Handler) HandleWindowKey(ev *surface.KeyEvent) []types.Action {
	switch {
	case key.Matches(ev.Msg, h.keys.Quit):
		ev.PreventDefault()
		return []types.Action{types.QuitAction{}}
	case key.Matches(ev.Msg, h.keys.Help):
		ev.PreventDefault()
		return []types.Action{types.ToggleHelpAction{}}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
