package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"blockslash/internal/surface"
	"blockslash/internal/ui/input/types"
)

type fakeContext struct {
	id      string
	text    string
	cursor  int
	count   int
	palette bool
}

func (c fakeContext) FocusedBlockID() string { return c.id }
func (c fakeContext) FocusedIndex() int      { return 0 }
func (c fakeContext) BlockCount() int        { return c.count }
func (c fakeContext) FocusedText() string    { return c.text }
func (c fakeContext) CursorPosition() int    { return c.cursor }
func (c fakeContext) PaletteOpen() bool      { return c.palette }

func TestHandleBlockKey(t *testing.T) {
	h := New(DefaultKeyMap())

	tests := []struct {
		name        string
		msg         tea.KeyMsg
		ctx         fakeContext
		want        []types.Action
		wantPrevent bool
	}{
		{
			name: "slash opens palette and is typed",
			msg:  tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}},
			ctx:  fakeContext{id: "2", count: 1},
			want: []types.Action{types.OpenPaletteAction{BlockID: "2"}},
		},
		{
			name: "slash while palette open",
			msg:  tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}},
			ctx:  fakeContext{id: "2", count: 1, palette: true},
		},
		{
			name:        "enter splits at cursor",
			msg:         tea.KeyMsg{Type: tea.KeyEnter},
			ctx:         fakeContext{id: "2", text: "héllo", cursor: 2, count: 1},
			want:        []types.Action{types.SplitBlockAction{BlockID: "2", Before: "hé", After: "llo"}},
			wantPrevent: true,
		},
		{
			name:        "up moves focus",
			msg:         tea.KeyMsg{Type: tea.KeyUp},
			ctx:         fakeContext{id: "2", count: 2},
			want:        []types.Action{types.FocusMoveAction{Delta: -1}},
			wantPrevent: true,
		},
		{
			name:        "backspace on empty block deletes it",
			msg:         tea.KeyMsg{Type: tea.KeyBackspace},
			ctx:         fakeContext{id: "3", count: 2},
			want:        []types.Action{types.DeleteBlockAction{BlockID: "3"}},
			wantPrevent: true,
		},
		{
			name: "backspace on the last block edits text",
			msg:  tea.KeyMsg{Type: tea.KeyBackspace},
			ctx:  fakeContext{id: "3", count: 1},
		},
		{
			name: "backspace with text edits text",
			msg:  tea.KeyMsg{Type: tea.KeyBackspace},
			ctx:  fakeContext{id: "3", text: "a", count: 2},
		},
		{
			name: "letters are left to the text",
			msg:  tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}},
			ctx:  fakeContext{id: "3", count: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := surface.NewKeyEvent(tt.msg)
			got := h.HandleBlockKey(ev, tt.ctx)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPrevent, ev.DefaultPrevented())
		})
	}
}

func TestHandleWindowKey(t *testing.T) {
	h := New(DefaultKeyMap())

	ev := surface.NewKeyEvent(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, []types.Action{types.QuitAction{}}, h.HandleWindowKey(ev))
	assert.True(t, ev.DefaultPrevented())

	ev = surface.NewKeyEvent(tea.KeyMsg{Type: tea.KeyF1})
	assert.Equal(t, []types.Action{types.ToggleHelpAction{}}, h.HandleWindowKey(ev))

	ev = surface.NewKeyEvent(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, h.HandleWindowKey(ev))
	assert.False(t, ev.DefaultPrevented())
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	assert.Len(t, km.ShortHelp(), 4)
	assert.Len(t, km.FullHelp(), 3)
}
