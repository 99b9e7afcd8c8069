package surface

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// RichText is the editable surface of one text block. Listeners see each
// key before the text does; the key is applied by ApplyDefault unless a
// listener prevented it.
type RichText struct {
	Target

	blockID string
	input   textinput.Model
}

// NewRichText creates an unfocused surface holding text
func NewRichText(blockID, text string) *RichText {
	ti := textinput.New()
	ti.Prompt = ""
	ti.SetValue(text)
	return &RichText{blockID: blockID, input: ti}
}

// BlockID returns the id of the block this surface edits
func (r *RichText) BlockID() string {
	return r.blockID
}

// Value returns the current text
func (r *RichText) Value() string {
	return r.input.Value()
}

// SetValue replaces the text, keeping the cursor inside it
func (r *RichText) SetValue(text string) {
	r.input.SetValue(text)
}

// Position returns the cursor offset in runes
func (r *RichText) Position() int {
	return r.input.Position()
}

// Focus gives the surface the text cursor
func (r *RichText) Focus() tea.Cmd {
	r.input.CursorEnd()
	return r.input.Focus()
}

// Blur removes the text cursor
func (r *RichText) Blur() {
	r.input.Blur()
}

// Focused reports whether the surface has the text cursor
func (r *RichText) Focused() bool {
	return r.input.Focused()
}

// ApplyDefault performs the key's text editing unless it was prevented
func (r *RichText) ApplyDefault(ev *KeyEvent) tea.Cmd {
	if ev.DefaultPrevented() {
		return nil
	}
	var cmd tea.Cmd
	r.input, cmd = r.input.Update(ev.Msg)
	return cmd
}

// DeleteBeforeCursor removes up to n runes immediately before the cursor
func (r *RichText) DeleteBeforeCursor(n int) {
	value := []rune(r.input.Value())
	pos := r.input.Position()
	if pos > len(value) {
		pos = len(value)
	}
	start := pos - n
	if start < 0 {
		start = 0
	}
	r.input.SetValue(string(value[:start]) + string(value[pos:]))
	r.input.SetCursor(start)
}

// Update forwards non-key messages such as cursor blinks
func (r *RichText) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return cmd
}

// View renders the text with its cursor
func (r *RichText) View() string {
	return r.input.View()
}
