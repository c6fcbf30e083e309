package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/atomicstack/tabedit/internal/editor"
	"github.com/atomicstack/tabedit/internal/fileio"
	"github.com/atomicstack/tabedit/internal/logging"
	"github.com/atomicstack/tabedit/internal/logging/events"
	"github.com/atomicstack/tabedit/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// actionResultMsg reports the outcome of a fire-and-forget effect.
type actionResultMsg struct {
	Info string
	Err  error
}

// runEffects turns editor effects into Bubble Tea commands. File work runs
// through the command bus; watcher updates apply immediately.
func (m *Model) runEffects(effects []editor.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		switch e := eff.(type) {
		case editor.LoadFile:
			cmds = append(cmds, m.bus.Execute(command.Request{
				ID:    string(e.Doc),
				Label: "load " + e.Path,
				Run: func(ctx context.Context) tea.Msg {
					loaded, err := m.files.Load(ctx, e.Path)
					return editor.FileOpened{Doc: e.Doc, Result: loaded, Err: err, Recent: e.Recent}
				},
			}))
		case editor.PickAndLoad:
			cmds = append(cmds, m.bus.Execute(command.Request{
				ID:    string(e.Doc),
				Label: "open",
				Run: func(ctx context.Context) tea.Msg {
					loaded, err := m.files.PickAndLoad(ctx)
					return editor.FileOpened{Doc: e.Doc, Result: loaded, Err: err}
				},
			}))
		case editor.WriteFile:
			cmds = append(cmds, m.bus.Execute(command.Request{
				ID:    string(e.Doc),
				Label: "save " + e.Path,
				Run: func(ctx context.Context) tea.Msg {
					saved, err := m.files.Save(ctx, e.Path, e.Content)
					return editor.FileSaved{Doc: e.Doc, Result: saved, Err: err}
				},
			}))
		case editor.RecordRecent:
			if m.recent == nil {
				continue
			}
			recent := m.recent
			cmds = append(cmds, m.bus.Execute(command.Request{
				ID:    e.Path,
				Label: "recent",
				Run: func(context.Context) tea.Msg {
					if err := recent.Touch(e.Path); err != nil {
						return actionResultMsg{Err: err}
					}
					return nil
				},
			}))
		case editor.ForgetRecent:
			if m.recent == nil {
				continue
			}
			recent := m.recent
			cmds = append(cmds, m.bus.Execute(command.Request{
				ID:    e.Path,
				Label: "forget",
				Run: func(context.Context) tea.Msg {
					if err := recent.Forget(e.Path); err != nil {
						return actionResultMsg{Err: err}
					}
					return nil
				},
			}))
		case editor.WatchPaths:
			if m.watcher == nil {
				continue
			}
			if err := m.watcher.SetPaths(e.Paths); err != nil {
				logging.Error(err)
				events.Action.Error(err)
			}
		case editor.CopyToClipboard:
			write := m.clipboard
			cmds = append(cmds, m.bus.Execute(command.Request{
				ID:    "clipboard",
				Label: "copy path",
				Run: func(context.Context) tea.Msg {
					if err := write(e.Text); err != nil {
						return actionResultMsg{Err: fmt.Errorf("copy to clipboard: %w", err)}
					}
					return actionResultMsg{Info: "Copied " + e.Text}
				},
			}))
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleFileOpenedMsg(msg tea.Msg) tea.Cmd {
	opened, ok := msg.(editor.FileOpened)
	if !ok {
		return nil
	}
	if !m.editor.Pending(opened.Doc) {
		return m.dispatch(opened)
	}
	if opened.Err == nil {
		m.forceClearInfo()
		m.errMsg = ""
		m.setInfo("Opened " + filepath.Base(opened.Result.Path))
	} else {
		m.reportError("open", opened.Err)
	}
	return m.dispatch(opened)
}

func (m *Model) handleFileSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(editor.FileSaved)
	if !ok {
		return nil
	}
	if !m.editor.Pending(saved.Doc) {
		return m.dispatch(saved)
	}
	if saved.Err == nil {
		m.errMsg = ""
		m.setInfo("Saved " + saved.Result.Path)
	} else {
		m.reportError("save", saved.Err)
	}
	return m.dispatch(saved)
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(actionResultMsg)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		logging.Error(result.Err)
		events.Action.Error(result.Err)
		return nil
	}
	if result.Info != "" {
		m.setInfo(result.Info)
	}
	events.Action.Success(result.Info)
	return nil
}

// reportError surfaces a failed load or save. A dismissed dialog is not an
// error and only clears the status line.
func (m *Model) reportError(op string, err error) {
	if errors.Is(err, fileio.ErrDialogClosed) || errors.Is(err, context.Canceled) {
		m.forceClearInfo()
		return
	}
	m.errMsg = err.Error()
	m.forceClearInfo()
	logging.Error(fmt.Errorf("%s: %w", op, err))
	events.Action.Error(err)
}
