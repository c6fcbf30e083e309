package buffer

import "strings"

// Pos points into the buffer by (row, col) in runes.
type Pos struct {
	Row int
	Col int
}

// Buffer holds text lines and a cursor.
type Buffer struct {
	lines  [][]rune
	cursor Pos
	// goal is the column vertical moves try to return to.
	goal int
}

// New creates a buffer holding text with the cursor at the start.
func New(text string) *Buffer {
	return &Buffer{lines: splitLines(text)}
}

// Text returns the buffer content.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() Pos { return b.cursor }

// SetCursor moves the cursor, clamping into bounds.
func (b *Buffer) SetCursor(p Pos) {
	b.cursor = b.clampPos(p)
	b.goal = b.cursor.Col
}

// LineCount returns the number of lines; an empty buffer has one.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the text of row, or "" when out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

// Empty reports whether the buffer holds no text.
func (b *Buffer) Empty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

// Apply performs action and reports whether the text changed.
func (b *Buffer) Apply(a Action) bool {
	switch a.Kind {
	case ActionInsert:
		return b.insertText(a.Text)
	case ActionDeleteBackward:
		return b.deleteBackward()
	case ActionDeleteForward:
		return b.deleteForward()
	case ActionDeleteWordBackward:
		return b.deleteWordBackward()
	case ActionKillLine:
		return b.killLine()
	case ActionMove:
		b.move(a.Move, a.Count)
		return false
	default:
		return false
	}
}

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) clampPos(p Pos) Pos {
	row := clampInt(p.Row, 0, len(b.lines)-1)
	col := clampInt(p.Col, 0, b.lineLen(row))
	return Pos{Row: row, Col: col}
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, part := range parts {
		lines[i] = []rune(part)
	}
	return lines
}
