package ui

import (
	"github.com/atomicstack/tabedit/internal/backend"
	"github.com/atomicstack/tabedit/internal/editor"
	"github.com/atomicstack/tabedit/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForWatchEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return watchDoneMsg{}
		}
		return watchEventMsg{event: evt}
	}
}

type watchEventMsg struct {
	event backend.Event
}

type watchDoneMsg struct{}

func (m *Model) handleWatchEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(watchEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyWatchEvent(eventMsg.event)
	if m.watcher != nil {
		waitCmd := waitForWatchEvent(m.watcher)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleWatchDoneMsg(msg tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

func (m *Model) applyWatchEvent(evt backend.Event) tea.Cmd {
	if evt.Err != nil {
		logging.Error(evt.Err)
		return nil
	}
	return m.dispatch(editor.FileChanged{Path: evt.Path, ModTime: evt.ModTime})
}
