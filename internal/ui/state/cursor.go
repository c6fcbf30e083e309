package state

// MoveCursorUp moves the cursor up one item, wrapping to the bottom.
func (l *Level) MoveCursorUp() bool {
	return l.step(-1)
}

// MoveCursorDown moves the cursor down one item, wrapping to the top.
func (l *Level) MoveCursorDown() bool {
	return l.step(1)
}

// MoveCursorHome moves the cursor to the first item.
func (l *Level) MoveCursorHome() bool {
	return l.moveTo(0)
}

// MoveCursorEnd moves the cursor to the last item.
func (l *Level) MoveCursorEnd() bool {
	return l.moveTo(len(l.Items) - 1)
}

// MoveCursorPageUp moves the cursor up one page without wrapping.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.moveTo(l.Cursor - l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down one page without wrapping.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.moveTo(l.Cursor + l.pageSize(maxVisible))
}

func (l *Level) step(delta int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	l.Cursor = ((l.Cursor+delta)%n + n) % n
	return n > 1
}

// moveTo places the cursor at index, clamped to the item range.
func (l *Level) moveTo(index int) bool {
	old := l.Cursor
	l.Cursor = index
	l.clampCursor()
	return l.Cursor != old
}

func (l *Level) clampCursor() {
	n := len(l.Items)
	switch {
	case n == 0, l.Cursor < 0:
		l.Cursor = 0
	case l.Cursor >= n:
		l.Cursor = n - 1
	}
}

func (l *Level) pageSize(maxVisible int) int {
	if maxVisible <= 0 || maxVisible > len(l.Items) {
		return max(len(l.Items), 1)
	}
	return maxVisible
}

// EnsureCursorVisible scrolls the viewport the least amount needed to show
// the cursor within maxVisible rows.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	l.clampCursor()
	if len(l.Items) == 0 || maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := max(len(l.Items)-maxVisible, 0)
	l.ViewportOffset = min(max(l.ViewportOffset, 0), maxOffset)
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	if l.Cursor >= l.ViewportOffset+maxVisible {
		l.ViewportOffset = l.Cursor - maxVisible + 1
	}
}
