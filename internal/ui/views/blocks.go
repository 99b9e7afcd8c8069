package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"blockslash/internal/domain"
)

// BlockLine is one text block as the renderer sees it
type BlockLine struct {
	ID      string
	Flavour domain.Flavour
	Subtype string
	Checked bool
	Text    string // already rendered, cursor included when focused
	Focused bool
}

// BlockRenderer draws text blocks with a marker for their type
type BlockRenderer struct {
	styles *Styles
}

func NewBlockRenderer(styles *Styles) *BlockRenderer {
	return &BlockRenderer{styles: styles}
}

// RenderLines renders blocks one per line. Numbered list items count up
// within each run of consecutive numbered items.
func (r *BlockRenderer) RenderLines(blocks []BlockLine) []string {
	lines := make([]string, 0, len(blocks))
	number := 0
	for _, b := range blocks {
		if b.Flavour == domain.FlavourList && b.Subtype == "numbered" {
			number++
		} else {
			number = 0
		}
		lines = append(lines, r.renderLine(b, number))
	}
	return lines
}

// AnchorColumn returns the screen column of the text cursor in blocks[index]
func (r *BlockRenderer) AnchorColumn(blocks []BlockLine, index, cursor int) int {
	if index < 0 || index >= len(blocks) {
		return 0
	}
	number := 0
	for _, b := range blocks[:index+1] {
		if b.Flavour == domain.FlavourList && b.Subtype == "numbered" {
			number++
		} else {
			number = 0
		}
	}
	return lipgloss.Width(gutter) + lipgloss.Width(marker(blocks[index], number)) + cursor
}

const gutter = "  "

func (r *BlockRenderer) renderLine(b BlockLine, number int) string {
	g := r.styles.Marker.Render(gutter)
	if b.Focused {
		g = r.styles.FocusMarker.Render("▌ ")
	}
	m := r.styles.Marker.Render(marker(b, number))

	text := b.Text
	switch {
	case b.Flavour == domain.FlavourCode:
		text = r.styles.Code.Render(text)
	case b.Flavour == domain.FlavourParagraph && isHeading(b.Subtype):
		text = r.styles.Heading.Render(text)
	case b.Flavour == domain.FlavourParagraph && b.Subtype == "quote":
		text = r.styles.Quote.Render(text)
	}
	return g + m + text
}

func marker(b BlockLine, number int) string {
	switch b.Flavour {
	case domain.FlavourList:
		switch b.Subtype {
		case "numbered":
			return fmt.Sprintf("%d. ", number)
		case "todo":
			if b.Checked {
				return "[x] "
			}
			return "[ ] "
		default:
			return "• "
		}
	case domain.FlavourCode:
		return "│ "
	case domain.FlavourParagraph:
		if isHeading(b.Subtype) {
			return strings.Repeat("#", int(b.Subtype[1]-'0')) + " "
		}
		if b.Subtype == "quote" {
			return "> "
		}
	}
	return ""
}

func isHeading(subtype string) bool {
	return len(subtype) == 2 && subtype[0] == 'h' && subtype[1] >= '1' && subtype[1] <= '6'
}
