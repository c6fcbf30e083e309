package buffer

import "testing"

func TestTextRoundTripsExactly(t *testing.T) {
	for _, text := range []string{"", "a", "a\n", "one\r\ntwo\n\n", "\tindent\n  x"} {
		if got := New(text).Text(); got != text {
			t.Fatalf("expected %q, got %q", text, got)
		}
	}
}

func TestInsertAdvancesCursor(t *testing.T) {
	b := New("")
	if !b.Apply(Insert("x")) {
		t.Fatalf("expected insert to change text")
	}
	if got := b.Cursor(); got != (Pos{Row: 0, Col: 1}) {
		t.Fatalf("expected cursor at 0:1, got %+v", got)
	}
	if b.Text() != "x" {
		t.Fatalf("unexpected text %q", b.Text())
	}
}

func TestInsertMultilineText(t *testing.T) {
	b := New("headtail")
	b.SetCursor(Pos{Row: 0, Col: 4})
	b.Apply(Insert("1\n22\n333"))
	if got := b.Text(); got != "head1\n22\n333tail" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := b.Cursor(); got != (Pos{Row: 2, Col: 3}) {
		t.Fatalf("unexpected cursor %+v", got)
	}
}

func TestNewlineSplitsLine(t *testing.T) {
	b := New("ab")
	b.SetCursor(Pos{Col: 1})
	b.Apply(Newline())
	if b.Text() != "a\nb" || b.LineCount() != 2 {
		t.Fatalf("unexpected text %q", b.Text())
	}
	if got := b.Cursor(); got != (Pos{Row: 1, Col: 0}) {
		t.Fatalf("unexpected cursor %+v", got)
	}
}

func TestDeleteBackwardJoinsLines(t *testing.T) {
	b := New("ab\ncd")
	b.SetCursor(Pos{Row: 1, Col: 0})
	if !b.Apply(DeleteBackward()) {
		t.Fatalf("expected join to change text")
	}
	if b.Text() != "abcd" {
		t.Fatalf("unexpected text %q", b.Text())
	}
	if got := b.Cursor(); got != (Pos{Row: 0, Col: 2}) {
		t.Fatalf("unexpected cursor %+v", got)
	}
	b.SetCursor(Pos{})
	if b.Apply(DeleteBackward()) {
		t.Fatalf("expected backspace at start to be a no-op")
	}
}

func TestDeleteForward(t *testing.T) {
	b := New("ab\ncd")
	b.SetCursor(Pos{Row: 0, Col: 2})
	b.Apply(DeleteForward())
	if b.Text() != "abcd" {
		t.Fatalf("unexpected text %q", b.Text())
	}
	b.Apply(Motion(MoveDocEnd))
	if b.Apply(DeleteForward()) {
		t.Fatalf("expected delete at end to be a no-op")
	}
}

func TestDeleteWordBackwardAndKillLine(t *testing.T) {
	b := New("hello big world")
	b.Apply(Motion(MoveLineEnd))
	b.Apply(DeleteWordBackward())
	if b.Text() != "hello big " {
		t.Fatalf("unexpected text %q", b.Text())
	}
	b.SetCursor(Pos{Col: 5})
	b.Apply(KillLine())
	if b.Text() != "hello" {
		t.Fatalf("unexpected text %q", b.Text())
	}
}

func TestMotionsDoNotChangeText(t *testing.T) {
	b := New("one\ntwo three\nx")
	moves := []Move{MoveRight, MoveDown, MoveWordRight, MoveLineEnd, MoveUp, MoveLeft, MoveWordLeft, MoveDocEnd, MoveDocStart}
	for _, m := range moves {
		if b.Apply(Motion(m)) {
			t.Fatalf("motion %d reported a change", m)
		}
	}
	if b.Text() != "one\ntwo three\nx" {
		t.Fatalf("text changed: %q", b.Text())
	}
}

func TestVerticalMovesKeepGoalColumn(t *testing.T) {
	b := New("long line\nab\nanother long")
	b.SetCursor(Pos{Row: 0, Col: 7})
	b.Apply(Motion(MoveDown))
	if got := b.Cursor(); got != (Pos{Row: 1, Col: 2}) {
		t.Fatalf("expected clamp to short line, got %+v", got)
	}
	b.Apply(Motion(MoveDown))
	if got := b.Cursor(); got != (Pos{Row: 2, Col: 7}) {
		t.Fatalf("expected goal column restored, got %+v", got)
	}
}

func TestPageMovesClamp(t *testing.T) {
	b := New("1\n2\n3\n4\n5")
	b.Apply(Page(MovePageDown, 3))
	if got := b.Cursor().Row; got != 3 {
		t.Fatalf("expected row 3, got %d", got)
	}
	b.Apply(Page(MovePageDown, 3))
	if got := b.Cursor().Row; got != 4 {
		t.Fatalf("expected clamp to last row, got %d", got)
	}
	b.Apply(Page(MovePageUp, 10))
	if got := b.Cursor().Row; got != 0 {
		t.Fatalf("expected clamp to first row, got %d", got)
	}
}

func TestIsEdit(t *testing.T) {
	if !Insert("a").IsEdit() || !DeleteBackward().IsEdit() || !KillLine().IsEdit() {
		t.Fatalf("expected editing actions to report IsEdit")
	}
	if Motion(MoveLeft).IsEdit() || (Action{}).IsEdit() {
		t.Fatalf("expected non-editing actions to report !IsEdit")
	}
}
