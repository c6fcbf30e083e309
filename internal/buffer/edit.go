package buffer

import (
	"strings"
	"unicode"
)

func (b *Buffer) insertText(s string) bool {
	if s == "" {
		return false
	}
	row, col := b.cursor.Row, b.cursor.Col
	line := b.lines[row]
	head := append([]rune(nil), line[:col]...)
	tail := append([]rune(nil), line[col:]...)

	parts := strings.Split(s, "\n")
	inserted := make([][]rune, len(parts))
	for i, part := range parts {
		inserted[i] = []rune(part)
	}
	last := len(inserted) - 1
	nextCol := len(inserted[last])
	if last == 0 {
		nextCol += len(head)
	}
	inserted[0] = append(head, inserted[0]...)
	inserted[last] = append(inserted[last], tail...)

	lines := make([][]rune, 0, len(b.lines)+last)
	lines = append(lines, b.lines[:row]...)
	lines = append(lines, inserted...)
	lines = append(lines, b.lines[row+1:]...)
	b.lines = lines
	b.cursor = Pos{Row: row + last, Col: nextCol}
	b.goal = b.cursor.Col
	return true
}

func (b *Buffer) deleteBackward() bool {
	row, col := b.cursor.Row, b.cursor.Col
	if col > 0 {
		line := b.lines[row]
		b.lines[row] = append(line[:col-1:col-1], line[col:]...)
		b.cursor.Col--
		b.goal = b.cursor.Col
		return true
	}
	if row == 0 {
		return false
	}
	prevLen := len(b.lines[row-1])
	b.joinWithNext(row - 1)
	b.cursor = Pos{Row: row - 1, Col: prevLen}
	b.goal = b.cursor.Col
	return true
}

func (b *Buffer) deleteForward() bool {
	row, col := b.cursor.Row, b.cursor.Col
	line := b.lines[row]
	if col < len(line) {
		b.lines[row] = append(line[:col:col], line[col+1:]...)
		return true
	}
	if row == len(b.lines)-1 {
		return false
	}
	b.joinWithNext(row)
	return true
}

func (b *Buffer) deleteWordBackward() bool {
	row, col := b.cursor.Row, b.cursor.Col
	if col == 0 {
		return b.deleteBackward()
	}
	line := b.lines[row]
	start := wordStart(line, col)
	b.lines[row] = append(line[:start:start], line[col:]...)
	b.cursor.Col = start
	b.goal = start
	return true
}

func (b *Buffer) killLine() bool {
	row, col := b.cursor.Row, b.cursor.Col
	line := b.lines[row]
	if col < len(line) {
		b.lines[row] = line[:col:col]
		return true
	}
	return b.deleteForward()
}

func (b *Buffer) joinWithNext(row int) {
	joined := append(append([]rune(nil), b.lines[row]...), b.lines[row+1]...)
	b.lines[row] = joined
	b.lines = append(b.lines[:row+1], b.lines[row+2:]...)
}

func wordStart(line []rune, col int) int {
	i := col
	for i > 0 && unicode.IsSpace(line[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(line[i-1]) {
		i--
	}
	return i
}

func wordEnd(line []rune, col int) int {
	i := col
	for i < len(line) && unicode.IsSpace(line[i]) {
		i++
	}
	for i < len(line) && !unicode.IsSpace(line[i]) {
		i++
	}
	return i
}
