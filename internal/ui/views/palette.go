package views

import (
	"fmt"
	"strings"

	"blockslash/internal/palette"
)

// PaletteState is what the renderer needs to draw an open palette
type PaletteState struct {
	Entries   []palette.Entry
	Active    int
	Search    string
	Placement palette.Placement
}

// PaletteRegion is where the palette was drawn, for mouse hit tests
type PaletteRegion struct {
	Visible bool
	Left    int
	Top     int
	Width   int
	Height  int
	Offset  int // index of the first entry shown
	Rows    int // entries shown
}

// EntryAt maps a screen cell to a filtered entry index. The bool is false
// for cells outside the palette; border cells inside it return -1, true.
func (r PaletteRegion) EntryAt(x, y int) (int, bool) {
	if !r.Visible || x < r.Left || x >= r.Left+r.Width || y < r.Top || y >= r.Top+r.Height {
		return 0, false
	}
	row := y - r.Top - 1
	if row < 0 || row >= r.Rows {
		return -1, true
	}
	return r.Offset + row, true
}

// PaletteRenderer draws the slash palette box
type PaletteRenderer struct {
	styles *Styles
}

func NewPaletteRenderer(styles *Styles) *PaletteRenderer {
	return &PaletteRenderer{styles: styles}
}

// Render returns the bordered entry list, scrolled so the active entry is
// visible, along with the scroll offset and the number of rows shown.
func (r *PaletteRenderer) Render(state PaletteState) (string, int, int) {
	rows := state.Placement.MaxHeight
	if rows < 1 {
		rows = 1
	}
	if rows > len(state.Entries) {
		rows = len(state.Entries)
	}

	offset := 0
	if state.Active >= rows {
		offset = state.Active - rows + 1
	}

	iconWidth, nameWidth := 0, 0
	for _, e := range state.Entries {
		iconWidth = max(iconWidth, len([]rune(e.Icon)))
		nameWidth = max(nameWidth, len([]rune(e.Name)))
	}

	var b strings.Builder
	for i := offset; i < offset+rows; i++ {
		e := state.Entries[i]
		icon := r.styles.PaletteIcon.Render(fmt.Sprintf("%-*s", iconWidth, e.Icon))
		name := fmt.Sprintf(" %-*s ", nameWidth, e.Name)
		if i == state.Active {
			name = r.styles.PaletteActive.Render(name)
		} else {
			name = r.styles.PaletteItem.Render(name)
		}
		b.WriteString(" " + icon + name)
		if i < offset+rows-1 {
			b.WriteString("\n")
		}
	}
	return r.styles.PaletteBox.Render(b.String()), offset, rows
}
