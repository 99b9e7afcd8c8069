package views

import (
	"strings"

	"blockslash/internal/palette"
)

const (
	// HeaderLines is the title line plus a blank line
	HeaderLines = 2
	// FooterLines is the status line plus the help line
	FooterLines = 2
	// PaletteFrame is the border lines around the palette entries
	PaletteFrame = 2
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Title         string
	Blocks        []BlockLine
	Focused       int
	Palette       *PaletteState
	StatusMessage string
	StatusIsError bool
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	blockRender   *BlockRenderer
	paletteRender *PaletteRenderer
	popupRender   *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		blockRender:   NewBlockRenderer(styles),
		paletteRender: NewPaletteRenderer(styles),
		popupRender:   NewPopupRenderer(styles),
	}
}

// BodyHeight returns the lines available for blocks
func BodyHeight(height int) int {
	h := height - HeaderLines - FooterLines
	if h < 1 {
		h = 1
	}
	return h
}

// BodyOffset returns the first block shown so that focused stays visible
func BodyOffset(height, focused int) int {
	body := BodyHeight(height)
	if focused < body {
		return 0
	}
	return focused - body + 1
}

// AnchorRow returns the screen row of the focused block
func AnchorRow(height, focused int) int {
	return HeaderLines + focused - BodyOffset(height, focused)
}

// AnchorColumn returns the screen column of the cursor in blocks[focused]
func (r *Renderer) AnchorColumn(blocks []BlockLine, focused, cursor int) int {
	return r.blockRender.AnchorColumn(blocks, focused, cursor)
}

// Render produces the complete view and where the palette ended up
func (r *Renderer) Render(state ViewState) (string, PaletteRegion) {
	var content strings.Builder

	content.WriteString(r.styles.Title.Render(state.Title))
	content.WriteString("\n\n")

	body := BodyHeight(state.Height)
	offset := BodyOffset(state.Height, state.Focused)
	lines := r.blockRender.RenderLines(state.Blocks)
	end := offset + body
	if end > len(lines) {
		end = len(lines)
	}
	shown := lines[offset:end]
	for len(shown) < body {
		shown = append(shown, "")
	}
	content.WriteString(strings.Join(shown, "\n"))
	content.WriteString("\n")

	if state.StatusIsError {
		content.WriteString(r.styles.StatusError.Render(state.StatusMessage))
	} else {
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
	}
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.HelpView))

	view := content.String()
	if state.Palette == nil || len(state.Palette.Entries) == 0 {
		return view, PaletteRegion{}
	}

	box, entryOffset, rows := r.paletteRender.Render(*state.Palette)
	w, h := r.popupRender.Size(box)
	pl := state.Palette.Placement

	top := pl.Row + 1
	if pl.Position == palette.PlaceAbove {
		top = pl.Row - h
	}
	if top < 0 {
		top = 0
	}
	left := pl.Column
	if state.Width > 0 && left+w > state.Width {
		left = state.Width - w
	}
	if left < 0 {
		left = 0
	}

	region := PaletteRegion{
		Visible: true,
		Left:    left,
		Top:     top,
		Width:   w,
		Height:  h,
		Offset:  entryOffset,
		Rows:    rows,
	}
	return r.popupRender.Overlay(view, box, left, top), region
}
