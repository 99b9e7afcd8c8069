package palette

// Cursor tracks the active entry of a filtered list with wraparound
type Cursor struct {
	index  int
	length int
}

// Index returns the active position
func (c Cursor) Index() int { return c.index }

// Len returns the length of the list the cursor moves over
func (c Cursor) Len() int { return c.length }

// Reset points the cursor at the first of length entries
func (c *Cursor) Reset(length int) {
	c.index = 0
	c.length = length
}

// Next moves to the following entry, wrapping to the first
func (c *Cursor) Next() {
	if c.length == 0 {
		return
	}
	c.index = (c.index + 1) % c.length
}

// Prev moves to the preceding entry, wrapping to the last
func (c *Cursor) Prev() {
	if c.length == 0 {
		return
	}
	c.index = (c.index - 1 + c.length) % c.length
}

// Move steps by delta entries; only the sign of delta matters
func (c *Cursor) Move(delta int) {
	switch {
	case delta > 0:
		c.Next()
	case delta < 0:
		c.Prev()
	}
}
