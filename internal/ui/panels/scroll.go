package panels

import "github.com/charmbracelet/bubbles/viewport"

// ScrollRegion is the scrollable area of the logs pane. The pane owns it
// and hands the same pointer to every LogView it mounts, so the view can
// read and move the scroll position.
type ScrollRegion struct {
	vp viewport.Model
}

func NewScrollRegion() *ScrollRegion {
	return &ScrollRegion{vp: viewport.New(0, 0)}
}

func (s *ScrollRegion) SetSize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s.vp.Width = w
	s.vp.Height = h
	// Re-clamp the offset against the new height.
	s.vp.SetYOffset(s.vp.YOffset)
}

func (s *ScrollRegion) SetContent(content string) { s.vp.SetContent(content) }
func (s *ScrollRegion) YOffset() int              { return s.vp.YOffset }
func (s *ScrollRegion) SetYOffset(n int)          { s.vp.SetYOffset(n) }
func (s *ScrollRegion) AtTop() bool               { return s.vp.AtTop() }
func (s *ScrollRegion) AtBottom() bool            { return s.vp.AtBottom() }
func (s *ScrollRegion) GotoTop()                  { s.vp.GotoTop() }
func (s *ScrollRegion) GotoBottom()               { s.vp.GotoBottom() }
func (s *ScrollRegion) Width() int                { return s.vp.Width }
func (s *ScrollRegion) Height() int               { return s.vp.Height }
func (s *ScrollRegion) LineCount() int            { return s.vp.TotalLineCount() }
func (s *ScrollRegion) View() string              { return s.vp.View() }

// ScrollBy moves the offset by n lines, clamped to the content.
func (s *ScrollRegion) ScrollBy(n int) {
	offset := s.vp.YOffset + n
	if offset < 0 {
		offset = 0
	}
	s.vp.SetYOffset(offset)
}

// VisibleRange returns the half-open range of content lines on screen.
func (s *ScrollRegion) VisibleRange() (start, end int) {
	start = s.vp.YOffset
	end = start + s.vp.Height
	if total := s.vp.TotalLineCount(); end > total {
		end = total
	}
	if start > end {
		start = end
	}
	return start, end
}
