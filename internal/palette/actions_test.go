package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockslash/internal/surface"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		searchEmpty bool
		want        Action
	}{
		{"space aborts", surface.KeySpace, false, AbortAction{Key: surface.KeySpace}},
		{"space aborts on empty search", surface.KeySpace, true, AbortAction{Key: surface.KeySpace}},
		{"backspace on empty aborts", surface.KeyBackspace, true, AbortAction{Key: surface.KeyBackspace}},
		{"backspace trims", surface.KeyBackspace, false, TrimAction{}},
		{"letter appends", "q", false, AppendAction{Char: "q"}},
		{"digit appends", "1", true, AppendAction{Char: "1"}},
		{"enter commits", surface.KeyEnter, false, CommitAction{}},
		{"up moves back", surface.KeyArrowUp, true, MoveAction{Delta: -1}},
		{"down moves forward", surface.KeyArrowDown, true, MoveAction{Delta: 1}},
		{"left aborts", surface.KeyArrowLeft, false, AbortAction{Key: surface.KeyArrowLeft}},
		{"right aborts", surface.KeyArrowRight, false, AbortAction{Key: surface.KeyArrowRight}},
		{"tab passes", surface.KeyTab, false, PassAction{}},
		{"escape passes", surface.KeyEscape, false, PassAction{}},
		{"ctrl passes", "ctrl+b", false, PassAction{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.key, tt.searchEmpty)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyNavigationRejectsUnguardedKeys(t *testing.T) {
	_, err := classifyNavigation(surface.KeyTab)
	require.ErrorIs(t, err, ErrInvariantViolation)
}
