package state

import (
	"slices"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the filter query and its cursor. Narrowing from an empty
// filter remembers the cursor so clearing the filter can put it back.
func (l *Level) SetFilter(query string, cursor int) {
	was := strings.TrimSpace(l.Filter) != ""
	active := strings.TrimSpace(query) != ""
	l.Filter = query
	l.FilterCursor = min(max(cursor, 0), len([]rune(query)))

	switch {
	case active:
		if !was {
			l.LastCursor = l.Cursor
		}
		l.Cursor = 0
		l.applyFilter()
		if idx := BestMatchIndex(l.Items, query); idx >= 0 {
			l.Cursor = idx
		}
	case was:
		restore := l.LastCursor
		l.LastCursor = -1
		l.applyFilter()
		l.Cursor = restore
		if restore < 0 || restore >= len(l.Items) {
			l.Cursor = 0
		}
	default:
		l.applyFilter()
	}
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	l.clampCursor()
	if l.ViewportOffset >= len(l.Items) {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (l *Level) FilterCursorPos() int {
	return min(max(l.FilterCursor, 0), len([]rune(l.Filter)))
}

// editFilter rewrites the filter through fn, which receives the runes and the
// cursor and reports whether anything changed.
func (l *Level) editFilter(fn func(runes []rune, pos int) ([]rune, int, bool)) bool {
	runes, pos, changed := fn([]rune(l.Filter), l.FilterCursorPos())
	if !changed {
		return false
	}
	l.SetFilter(string(runes), pos)
	return true
}

// InsertFilterText inserts text at the filter cursor.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		if len(insert) == 0 {
			return runes, pos, false
		}
		return slices.Insert(runes, pos, insert...), pos + len(insert), true
	})
}

// DeleteFilterRuneBackward deletes the rune before the filter cursor.
func (l *Level) DeleteFilterRuneBackward() bool {
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		if pos == 0 {
			return runes, pos, false
		}
		return slices.Delete(runes, pos-1, pos), pos - 1, true
	})
}

// DeleteFilterWordBackward deletes the word before the filter cursor along
// with any spaces between it and the cursor.
func (l *Level) DeleteFilterWordBackward() bool {
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		if pos == 0 {
			return runes, pos, false
		}
		start := pos
		for start > 0 && unicode.IsSpace(runes[start-1]) {
			start--
		}
		for start > 0 && !unicode.IsSpace(runes[start-1]) {
			start--
		}
		return slices.Delete(runes, start, pos), start, true
	})
}

func (l *Level) moveFilterCursor(to int) bool {
	to = min(max(to, 0), len([]rune(l.Filter)))
	if to == l.FilterCursorPos() {
		return false
	}
	l.FilterCursor = to
	return true
}

// MoveFilterCursorStart moves the filter cursor to the start.
func (l *Level) MoveFilterCursorStart() bool { return l.moveFilterCursor(0) }

// MoveFilterCursorEnd moves the filter cursor to the end.
func (l *Level) MoveFilterCursorEnd() bool { return l.moveFilterCursor(len([]rune(l.Filter))) }

// MoveFilterCursorRuneBackward moves the filter cursor one rune left.
func (l *Level) MoveFilterCursorRuneBackward() bool {
	return l.moveFilterCursor(l.FilterCursorPos() - 1)
}

// MoveFilterCursorRuneForward moves the filter cursor one rune right.
func (l *Level) MoveFilterCursorRuneForward() bool {
	return l.moveFilterCursor(l.FilterCursorPos() + 1)
}

// FilterItems returns the items fuzzily matching query, closest match first.
// Items with equal distance keep their original order.
func FilterItems(items []Item, query string) []Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return CloneItems(items)
	}
	ranks := fuzzy.RankFindNormalizedFold(query, searchText(items))
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		return a.OriginalIndex - b.OriginalIndex
	})
	filtered := make([]Item, 0, len(ranks))
	for _, rank := range ranks {
		filtered = append(filtered, items[rank.OriginalIndex])
	}
	return filtered
}

// BestMatchIndex picks the item the cursor should land on: an exact label
// match, then a label prefix, then a label substring, else the first item.
func BestMatchIndex(items []Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	lower := strings.ToLower(strings.TrimSpace(query))
	if lower == "" {
		return 0
	}
	tests := []func(label string) bool{
		func(label string) bool { return label == lower },
		func(label string) bool { return strings.HasPrefix(label, lower) },
		func(label string) bool { return strings.Contains(label, lower) },
	}
	for _, test := range tests {
		for i, item := range items {
			if test(strings.ToLower(item.Label)) {
				return i
			}
		}
	}
	return 0
}

// searchText is what fuzzy matching runs against: the label followed by the
// detail, so a path fragment finds a tab as well as its base name does.
func searchText(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.TrimSpace(item.Label + " " + item.Detail)
	}
	return out
}
