package ui

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/atomicstack/tabedit/internal/document"
	"github.com/atomicstack/tabedit/internal/editor"
	"github.com/atomicstack/tabedit/internal/logging/events"
	uistate "github.com/atomicstack/tabedit/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

const switcherLevelID = "switcher"

// switcher is the quick-open overlay listing tabs and recent files.
type switcher struct {
	level *uistate.Level
}

func (m *Model) switcherItems() []uistate.Item {
	docs := m.editor.Documents()
	items := make([]uistate.Item, 0, docs.Len())
	open := make(map[string]struct{}, docs.Len())
	for i, doc := range docs.Documents() {
		items = append(items, uistate.Item{
			ID:     string(doc.ID),
			Label:  doc.Label(),
			Detail: doc.Path,
			Kind:   uistate.ItemTab,
			Index:  i,
		})
		if doc.Path != "" {
			open[doc.Path] = struct{}{}
		}
	}
	if m.recent == nil {
		return items
	}
	for _, entry := range m.recent.List(context.Background()) {
		if _, ok := open[entry.Path]; ok {
			continue
		}
		items = append(items, uistate.Item{
			ID:     entry.Path,
			Label:  filepath.Base(entry.Path),
			Detail: entry.Path,
			Kind:   uistate.ItemRecent,
			Index:  -1,
		})
	}
	return items
}

func (m *Model) openSwitcher() {
	items := m.switcherItems()
	m.switcher = &switcher{level: uistate.NewLevel(switcherLevelID, "Switch to", items)}
	events.UI.SwitcherOpen(len(items))
}

func (m *Model) handleSwitcherKey(msg tea.KeyMsg) tea.Cmd {
	l := m.switcher.level
	switch msg.String() {
	case "esc", "ctrl+c", "ctrl+p":
		m.switcher = nil
		return nil
	case "enter":
		return m.acceptSwitcher()
	case "up", "ctrl+k":
		l.MoveCursorUp()
	case "down", "ctrl+j":
		l.MoveCursorDown()
	case "pgup":
		l.MoveCursorPageUp(m.switcherRows())
	case "pgdown":
		l.MoveCursorPageDown(m.switcherRows())
	case "home":
		l.MoveCursorHome()
	case "end":
		l.MoveCursorEnd()
	case "left":
		l.MoveFilterCursorRuneBackward()
	case "right":
		l.MoveFilterCursorRuneForward()
	case "ctrl+a":
		l.MoveFilterCursorStart()
	case "ctrl+e":
		l.MoveFilterCursorEnd()
	case "ctrl+u":
		l.SetFilter("", 0)
		events.Filter.Cleared(l.ID)
	case "backspace":
		if l.DeleteFilterRuneBackward() {
			events.Filter.Backspace(l.ID, l.Filter)
		}
	case "ctrl+w", "alt+backspace":
		if l.DeleteFilterWordBackward() {
			events.Filter.Backspace(l.ID, l.Filter)
		}
	default:
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			if l.InsertFilterText(string(msg.Runes)) {
				events.Filter.Append(l.ID, l.Filter)
			}
		}
	}
	l.EnsureCursorVisible(m.switcherRows())
	return nil
}

func (m *Model) acceptSwitcher() tea.Cmd {
	item, ok := m.switcher.level.Selected()
	m.switcher = nil
	if !ok {
		return nil
	}
	events.UI.SwitcherSelect(item.ID, item.Label)
	if item.Kind == uistate.ItemTab {
		if _, idx := m.editor.Documents().Find(document.ID(item.ID)); idx >= 0 {
			return m.dispatch(editor.TabSelected{Index: idx})
		}
		return nil
	}
	if !m.editor.CanOpen() {
		m.setInfo("Wait for the current operation to finish")
		return nil
	}
	return m.dispatch(editor.OpenPath{Path: item.ID, Recent: item.Kind == uistate.ItemRecent})
}

func (m *Model) switcherRows() int {
	rows := m.overlayHeight() - 3
	if rows < 1 {
		return 1
	}
	return rows
}

func switcherPosition(l *uistate.Level) string {
	if len(l.Items) == 0 {
		return "0/0"
	}
	return strconv.Itoa(l.Cursor+1) + "/" + strconv.Itoa(len(l.Items))
}
