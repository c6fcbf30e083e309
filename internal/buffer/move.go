package buffer

func (b *Buffer) move(m Move, count int) {
	p := b.cursor
	keepGoal := false
	switch m {
	case MoveLeft:
		if p.Col > 0 {
			p.Col--
		} else if p.Row > 0 {
			p.Row--
			p.Col = b.lineLen(p.Row)
		}
	case MoveRight:
		if p.Col < b.lineLen(p.Row) {
			p.Col++
		} else if p.Row < len(b.lines)-1 {
			p.Row++
			p.Col = 0
		}
	case MoveUp:
		p = b.vertical(p, -1)
		keepGoal = true
	case MoveDown:
		p = b.vertical(p, 1)
		keepGoal = true
	case MovePageUp:
		p = b.vertical(p, -pageRows(count))
		keepGoal = true
	case MovePageDown:
		p = b.vertical(p, pageRows(count))
		keepGoal = true
	case MoveWordLeft:
		if p.Col == 0 && p.Row > 0 {
			p.Row--
			p.Col = b.lineLen(p.Row)
		} else {
			p.Col = wordStart(b.lines[p.Row], p.Col)
		}
	case MoveWordRight:
		if p.Col == b.lineLen(p.Row) && p.Row < len(b.lines)-1 {
			p.Row++
			p.Col = 0
		} else {
			p.Col = wordEnd(b.lines[p.Row], p.Col)
		}
	case MoveLineStart:
		p.Col = 0
	case MoveLineEnd:
		p.Col = b.lineLen(p.Row)
	case MoveDocStart:
		p = Pos{}
	case MoveDocEnd:
		p.Row = len(b.lines) - 1
		p.Col = b.lineLen(p.Row)
	}
	b.cursor = b.clampPos(p)
	if !keepGoal {
		b.goal = b.cursor.Col
	}
}

func (b *Buffer) vertical(p Pos, delta int) Pos {
	row := clampInt(p.Row+delta, 0, len(b.lines)-1)
	return Pos{Row: row, Col: clampInt(b.goal, 0, b.lineLen(row))}
}

func pageRows(count int) int {
	if count <= 0 {
		return 1
	}
	return count
}
