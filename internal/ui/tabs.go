package ui

import (
	"strings"

	"github.com/atomicstack/tabedit/internal/editor"
	"github.com/atomicstack/tabedit/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

const (
	tabCloseGlyph = "×"
	tabNewGlyph   = " + "
	dirtyMarker   = "*"
	wheelStep     = 3
)

type tabLabel struct {
	text  string
	dirty bool
}

// tabSpan locates one tab on the bar. start and end are columns relative to
// the left edge of the terminal; closeAt is the column of the close glyph.
type tabSpan struct {
	index   int
	text    string
	start   int
	end     int
	closeAt int
}

// tabText is the caption drawn inside a tab, excluding style padding.
func tabText(l tabLabel) string {
	text := l.text
	if l.dirty {
		text += dirtyMarker
	}
	return text + " " + tabCloseGlyph
}

// layoutTabs positions the tabs so the active one is always visible. Tabs
// that do not fit entirely within width are left out.
func layoutTabs(labels []tabLabel, active, width int) []tabSpan {
	all := make([]tabSpan, len(labels))
	col := 0
	for i, l := range labels {
		text := tabText(l)
		// one column of padding on each side
		w := ansi.StringWidth(text) + 2
		all[i] = tabSpan{
			index:   i,
			text:    text,
			start:   col,
			end:     col + w,
			closeAt: col + w - 2,
		}
		col += w
	}
	if width <= 0 || len(all) == 0 {
		return all
	}
	if active < 0 || active >= len(all) {
		active = 0
	}
	first := 0
	for first < active && all[active].end-all[first].start > width {
		first++
	}
	shift := all[first].start
	spans := make([]tabSpan, 0, len(all)-first)
	for _, span := range all[first:] {
		if span.end-shift > width {
			break
		}
		span.start -= shift
		span.end -= shift
		span.closeAt -= shift
		spans = append(spans, span)
	}
	return spans
}

func (m *Model) tabLabels() []tabLabel {
	docs := m.editor.Documents().Documents()
	labels := make([]tabLabel, len(docs))
	for i, doc := range docs {
		labels[i] = tabLabel{text: doc.Label(), dirty: doc.Dirty}
	}
	return labels
}

func (m *Model) layoutTabBar() []tabSpan {
	width := m.width
	if width > 0 {
		width -= ansi.StringWidth(tabNewGlyph)
	}
	return layoutTabs(m.tabLabels(), m.editor.Documents().ActiveIndex(), width)
}

func (m *Model) renderTabBar() string {
	spans := m.layoutTabBar()
	active := m.editor.Documents().ActiveIndex()
	var b strings.Builder
	used := 0
	for _, span := range spans {
		style := m.styles.Tab
		if span.index == active {
			style = m.styles.ActiveTab
		}
		b.WriteString(style.Render(span.text))
		used = span.end
	}
	b.WriteString(m.styles.TabBar.Render(tabNewGlyph))
	used += ansi.StringWidth(tabNewGlyph)
	if m.width > used {
		b.WriteString(strings.Repeat(" ", m.width-used))
	}
	return b.String()
}

// handleMouseMsg selects or closes tabs on click, opens a tab from the "+"
// button and scrolls the editor pane with the wheel.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || m.dialog != nil || m.switcher != nil {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelStep)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if ev.Action != tea.MouseActionPress || ev.Y != 0 {
		return nil
	}
	spans := m.layoutTabBar()
	for _, span := range spans {
		if ev.X < span.start || ev.X >= span.end {
			continue
		}
		if ev.X == span.closeAt {
			events.UI.Key("click", "tab-close")
			return m.dispatch(editor.TabClosed{Index: span.index})
		}
		events.UI.Key("click", "tab-select")
		return m.dispatch(editor.TabSelected{Index: span.index})
	}
	end := 0
	if len(spans) > 0 {
		end = spans[len(spans)-1].end
	}
	if ev.X >= end && ev.X < end+ansi.StringWidth(tabNewGlyph) {
		events.UI.Key("click", "tab-new")
		return m.dispatch(editor.TabNew{})
	}
	return nil
}

// scrollBy moves the active viewport without moving the cursor.
func (m *Model) scrollBy(delta int) {
	doc := m.editor.Active()
	v := m.view(doc.ID)
	v.top += delta
	if limit := doc.Buffer.LineCount() - 1; v.top > limit {
		v.top = limit
	}
	if v.top < 0 {
		v.top = 0
	}
}
