package selection

import "strings"

// Viewport is the scroll state copy mode keeps its cursor visible in.
type Viewport interface {
	YOffset() int
	SetYOffset(n int)
	Height() int
}

// CopyMode selects a contiguous range of rows between an anchor and a
// cursor. Row indices refer to the caller's rendered rows.
type CopyMode struct {
	active bool
	anchor int
	cursor int
}

// Active returns true if copy mode is on.
func (c *CopyMode) Active() bool { return c.active }

// Reset leaves copy mode.
func (c *CopyMode) Reset() { *c = CopyMode{} }

// Enter activates copy mode anchored at the middle of the viewport. Does
// nothing if there are no rows.
func (c *CopyMode) Enter(rowCount int, vp Viewport) {
	if rowCount == 0 {
		return
	}
	center := vp.YOffset() + vp.Height()/2
	if center >= rowCount {
		center = rowCount - 1
	}
	if center < 0 {
		center = 0
	}
	c.active = true
	c.anchor = center
	c.cursor = center
}

// Move shifts the cursor by delta rows and scrolls to keep it visible.
func (c *CopyMode) Move(delta, rowCount int, vp Viewport) {
	c.moveTo(c.cursor+delta, rowCount, vp)
}

// Top moves the cursor to the first row.
func (c *CopyMode) Top(rowCount int, vp Viewport) {
	c.moveTo(0, rowCount, vp)
}

// Bottom moves the cursor to the last row.
func (c *CopyMode) Bottom(rowCount int, vp Viewport) {
	c.moveTo(rowCount-1, rowCount, vp)
}

func (c *CopyMode) moveTo(row, rowCount int, vp Viewport) {
	if !c.active || rowCount == 0 {
		return
	}
	if row >= rowCount {
		row = rowCount - 1
	}
	if row < 0 {
		row = 0
	}
	c.cursor = row
	if row < vp.YOffset() {
		vp.SetYOffset(row)
	}
	if h := vp.Height(); h > 0 && row >= vp.YOffset()+h {
		vp.SetYOffset(row - h + 1)
	}
}

// Range returns normalized (start <= end) row indices of the selection.
func (c *CopyMode) Range() (start, end int) {
	start, end = c.anchor, c.cursor
	if start > end {
		start, end = end, start
	}
	return
}

// Contains reports whether row is inside an active selection.
func (c *CopyMode) Contains(row int) bool {
	if !c.active {
		return false
	}
	start, end := c.Range()
	return row >= start && row <= end
}

// Cursor returns the row the cursor is on.
func (c *CopyMode) Cursor() int { return c.cursor }

// Yank returns the selected rows joined by newlines.
func (c *CopyMode) Yank(rows []string) string {
	if len(rows) == 0 {
		return ""
	}
	start, end := c.Range()
	if start < 0 {
		start = 0
	}
	if end >= len(rows) {
		end = len(rows) - 1
	}
	if start > end {
		return ""
	}
	return strings.Join(rows[start:end+1], "\n")
}
