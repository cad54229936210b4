package trackview

// cursor tracks the highlighted row and the first visible row of a list
// whose length and viewport height are supplied on each call.
type cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above and below the cursor
}

func (c *cursor) jump(pos, listLen, height int) {
	if listLen == 0 {
		c.pos, c.offset = 0, 0
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.ensureVisible(listLen, height)
}

func (c *cursor) move(delta, listLen, height int) {
	c.jump(c.pos+delta, listLen, height)
}

func (c *cursor) ensureVisible(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)

	if c.pos < c.offset+margin {
		c.offset = max(c.pos-margin, 0)
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

// visibleRange returns the visible indices [start, end).
func (c cursor) visibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
