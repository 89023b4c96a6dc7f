package tui

// scroller is the shared scroll position of the full-screen text viewers
// (logs and YAML). offset is the index of the first visible line.
type scroller struct {
	lines  []string
	offset int
}

func (s *scroller) setLines(lines []string) {
	s.lines = lines
	s.offset = 0
}

func (s *scroller) maxOffset(viewHeight int) int {
	return max(len(s.lines)-viewHeight, 0)
}

func (s *scroller) scrollDown(amount, viewHeight int) {
	s.offset = min(s.offset+amount, s.maxOffset(viewHeight))
}

func (s *scroller) scrollUp(amount int) {
	s.offset = max(s.offset-amount, 0)
}

func (s *scroller) jumpToBottom(viewHeight int) {
	s.offset = s.maxOffset(viewHeight)
}
