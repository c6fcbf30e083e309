package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/tabedit/internal/fileio"
	"github.com/atomicstack/tabedit/internal/logging/events"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"
)

const defaultDialogHeight = 20

type dialogKind int

const (
	dialogOpen dialogKind = iota
	dialogSave
)

func (k dialogKind) String() string {
	if k == dialogSave {
		return "save"
	}
	return "open"
}

type dialogReply struct {
	path string
	err  error
}

type dialogRequest struct {
	kind  dialogKind
	reply chan dialogReply
}

// Broker implements fileio.Picker by handing each request to the UI event
// loop and blocking until the user answers it.
type Broker struct {
	requests chan dialogRequest
}

// NewBroker returns a broker with no pending requests.
func NewBroker() *Broker {
	return &Broker{requests: make(chan dialogRequest)}
}

// PickFile asks the user for a file to open.
func (b *Broker) PickFile(ctx context.Context) (string, error) {
	return b.ask(ctx, dialogOpen)
}

// PickSaveLocation asks the user where to save.
func (b *Broker) PickSaveLocation(ctx context.Context) (string, error) {
	return b.ask(ctx, dialogSave)
}

func (b *Broker) ask(ctx context.Context, kind dialogKind) (string, error) {
	req := dialogRequest{kind: kind, reply: make(chan dialogReply, 1)}
	select {
	case b.requests <- req:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	select {
	case r := <-req.reply:
		return r.path, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func waitForDialogRequest(b *Broker) tea.Cmd {
	return func() tea.Msg {
		return dialogRequestMsg{req: <-b.requests}
	}
}

type dialogRequestMsg struct {
	req dialogRequest
}

// dialog is the overlay answering one picker request.
type dialog struct {
	req    dialogRequest
	picker filepicker.Model
	input  textinput.Model
}

func newOpenDialog(req dialogRequest, dir string, width, height int) (*dialog, tea.Cmd) {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AutoHeight = true
	if height <= 0 {
		height = defaultDialogHeight
	}
	fp, _ = fp.Update(tea.WindowSizeMsg{Width: width, Height: height})
	d := &dialog{req: req, picker: fp}
	return d, d.picker.Init()
}

func newSaveDialog(req dialogRequest, initial string) *dialog {
	ti := textinput.New()
	ti.Prompt = "Save as: "
	ti.Placeholder = "path/to/file"
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()
	return &dialog{req: req, input: ti}
}

func (d *dialog) title() string {
	if d.req.kind == dialogSave {
		return "Save file"
	}
	return "Open file"
}

// forward passes messages the model does not handle itself, such as
// directory listings, to the active widget.
func (d *dialog) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if d.req.kind == dialogSave {
		d.input, cmd = d.input.Update(msg)
		return cmd
	}
	d.picker, cmd = d.picker.Update(msg)
	return cmd
}

func (d *dialog) resize(width, height int) {
	if d.req.kind == dialogOpen {
		d.picker, _ = d.picker.Update(tea.WindowSizeMsg{Width: width, Height: height})
	}
}

func (d *dialog) view() string {
	if d.req.kind == dialogSave {
		return d.input.View()
	}
	return d.picker.CurrentDirectory + "\n" + d.picker.View()
}

func (m *Model) handleDialogRequestMsg(msg tea.Msg) tea.Cmd {
	reqMsg, ok := msg.(dialogRequestMsg)
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	if m.dialog != nil {
		m.dialogQueue = append(m.dialogQueue, reqMsg.req)
	} else {
		cmd = m.openDialog(reqMsg.req)
	}
	if m.broker != nil {
		return tea.Batch(cmd, waitForDialogRequest(m.broker))
	}
	return cmd
}

func (m *Model) openDialog(req dialogRequest) tea.Cmd {
	events.Dialog.Open(req.kind.String())
	m.switcher = nil
	if req.kind == dialogSave {
		m.dialog = newSaveDialog(req, m.saveSuggestion())
		return nil
	}
	d, cmd := newOpenDialog(req, m.dialogStartDir(), m.width, m.overlayHeight())
	m.dialog = d
	return cmd
}

func (m *Model) handleDialogKey(msg tea.KeyMsg) tea.Cmd {
	d := m.dialog
	switch msg.String() {
	case "esc", "ctrl+c", "ctrl+q":
		return m.finishDialog("", fileio.ErrDialogClosed)
	}
	if d.req.kind == dialogSave {
		if msg.Type == tea.KeyEnter {
			path := resolveInputPath(d.input.Value())
			if path == "" {
				return m.finishDialog("", fileio.ErrDialogClosed)
			}
			return m.finishDialog(path, nil)
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	d.picker, cmd = d.picker.Update(msg)
	if selected, path := d.picker.DidSelectFile(msg); selected {
		return tea.Batch(cmd, m.finishDialog(path, nil))
	}
	return cmd
}

// finishDialog answers the active request and opens the next queued one.
func (m *Model) finishDialog(path string, err error) tea.Cmd {
	d := m.dialog
	if d == nil {
		return nil
	}
	if err != nil {
		events.Dialog.Cancel(d.req.kind.String())
	} else {
		events.Dialog.Submit(d.req.kind.String(), path)
	}
	d.req.reply <- dialogReply{path: path, err: err}
	m.dialog = nil
	if len(m.dialogQueue) > 0 {
		next := m.dialogQueue[0]
		m.dialogQueue = m.dialogQueue[1:]
		return m.openDialog(next)
	}
	return nil
}

// dialogStartDir picks where the open dialog starts: the active document's
// directory, then the most recent file's, then the working directory.
func (m *Model) dialogStartDir() string {
	if path := m.editor.Active().Path; path != "" {
		return filepath.Dir(path)
	}
	if m.recent != nil {
		if entry, ok := m.recent.Latest(context.Background()); ok {
			dir := filepath.Dir(entry.Path)
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return dir
			}
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

func (m *Model) saveSuggestion() string {
	if path := m.editor.Active().Path; path != "" {
		return path
	}
	return m.dialogStartDir() + string(filepath.Separator)
}

func resolveInputPath(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasSuffix(value, string(filepath.Separator)) {
		return ""
	}
	if expanded, err := homedir.Expand(value); err == nil {
		value = expanded
	}
	if abs, err := filepath.Abs(value); err == nil {
		value = abs
	}
	return value
}
