package palette

// Position places the palette relative to its anchor
type Position int

const (
	PlaceBelow Position = iota
	PlaceAbove
)

func (p Position) String() string {
	if p == PlaceAbove {
		return "above"
	}
	return "below"
}

// ParsePosition reads a configured placement; anything but "above" is below
func ParsePosition(s string) Position {
	if s == "above" {
		return PlaceAbove
	}
	return PlaceBelow
}

// Placement is the layout hint the host uses to draw the palette
type Placement struct {
	Column    int // anchor column, in cells
	Row       int // anchor row, in lines
	Position  Position
	MaxHeight int // visible entries
}

// ComputePlacement picks the side of the anchor with room for the palette.
// rowsAbove and rowsBelow count the free lines on each side; need is the
// number of lines the palette wants including its frame; frame is the
// number of those lines that are not entries. The preferred side wins when
// it fits or when neither side fits better.
func ComputePlacement(column, row, rowsAbove, rowsBelow, need, frame, maxHeight int, prefer Position) Placement {
	pos := prefer
	preferred, other := rowsBelow, rowsAbove
	if prefer == PlaceAbove {
		preferred, other = rowsAbove, rowsBelow
	}
	if preferred < need && other > preferred {
		if prefer == PlaceAbove {
			pos = PlaceBelow
		} else {
			pos = PlaceAbove
		}
		preferred = other
	}

	height := preferred - frame
	if height > maxHeight {
		height = maxHeight
	}
	if height < 1 {
		height = 1
	}
	return Placement{Column: column, Row: row, Position: pos, MaxHeight: height}
}
