package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer lays a box over already rendered content
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// Overlay replaces the lines of base starting at row y with the lines of
// box indented by x cells. Lines past the end of base are appended.
func (pr *PopupRenderer) Overlay(base, box string, x, y int) string {
	lines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")
	if y < 0 {
		y = 0
	}
	if x < 0 {
		x = 0
	}
	pad := strings.Repeat(" ", x)
	for i, bl := range boxLines {
		row := y + i
		for row >= len(lines) {
			lines = append(lines, "")
		}
		lines[row] = pad + bl
	}
	return strings.Join(lines, "\n")
}

// Size returns the rendered width and height of s
func (pr *PopupRenderer) Size(s string) (int, int) {
	return lipgloss.Width(s), lipgloss.Height(s)
}
