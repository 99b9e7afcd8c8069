package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorWrapsForward(t *testing.T) {
	var c Cursor
	c.Reset(3)

	var seen []int
	seen = append(seen, c.Index())
	for i := 0; i < 3; i++ {
		c.Next()
		seen = append(seen, c.Index())
	}
	assert.Equal(t, []int{0, 1, 2, 0}, seen)
}

func TestCursorWrapsBackward(t *testing.T) {
	var c Cursor
	c.Reset(4)

	c.Prev()
	assert.Equal(t, 3, c.Index())
	c.Prev()
	assert.Equal(t, 2, c.Index())
}

func TestCursorResetReturnsToFirst(t *testing.T) {
	var c Cursor
	c.Reset(5)
	c.Next()
	c.Next()

	c.Reset(2)
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 2, c.Len())
}

func TestCursorMove(t *testing.T) {
	var c Cursor
	c.Reset(2)

	c.Move(1)
	assert.Equal(t, 1, c.Index())
	c.Move(-1)
	assert.Equal(t, 0, c.Index())
	c.Move(0)
	assert.Equal(t, 0, c.Index())
}

func TestCursorOnEmptyListStaysPut(t *testing.T) {
	var c Cursor
	c.Reset(0)

	c.Next()
	c.Prev()
	assert.Equal(t, 0, c.Index())
}
