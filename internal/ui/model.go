package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/tabedit/internal/backend"
	"github.com/atomicstack/tabedit/internal/document"
	"github.com/atomicstack/tabedit/internal/editor"
	"github.com/atomicstack/tabedit/internal/fileio"
	"github.com/atomicstack/tabedit/internal/store"
	"github.com/atomicstack/tabedit/internal/theme"
	"github.com/atomicstack/tabedit/internal/ui/command"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
)

const defaultTabWidth = 4

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Paths       []string
	Theme       string
	Width       int
	Height      int
	TabWidth    int
	LineNumbers bool
	ShowFooter  bool

	// Fs backs file loads and saves; nil uses the OS filesystem.
	Fs afero.Fs
	// Picker answers open and save dialogs; nil uses the in-terminal dialogs.
	Picker  fileio.Picker
	Watcher *backend.Watcher
	Recent  *store.Recent
	// Clipboard receives copied paths; nil uses the system clipboard.
	Clipboard func(string) error
}

// viewport is the scroll position of one document's editor pane.
type viewport struct {
	top  int
	left int
}

// Model implements the Bubble Tea model for the editor.
type Model struct {
	editor  *editor.Editor
	initial []editor.Effect
	files   *fileio.Service
	broker  *Broker
	watcher *backend.Watcher
	recent  *store.Recent
	bus     *command.Bus
	cancel  context.CancelFunc
	keys    keyMap

	styles      *theme.Styles
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	tabWidth    int
	lineNumbers bool
	showFooter  bool
	views       map[document.ID]*viewport

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	dialog      *dialog
	dialogQueue []dialogRequest
	switcher    *switcher
	clipboard   func(string) error

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the editor state and the services it drives.
func NewModel(opts Options) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		watcher:     opts.Watcher,
		recent:      opts.Recent,
		bus:         command.New(ctx),
		cancel:      cancel,
		keys:        defaultKeyMap(),
		tabWidth:    opts.TabWidth,
		lineNumbers: opts.LineNumbers,
		showFooter:  opts.ShowFooter,
		views:       make(map[document.ID]*viewport),
		clipboard:   opts.Clipboard,
	}
	if m.tabWidth <= 0 {
		m.tabWidth = defaultTabWidth
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.WriteAll
	}
	picker := opts.Picker
	if picker == nil {
		m.broker = NewBroker()
		picker = m.broker
	}
	m.files = fileio.NewService(opts.Fs, picker)
	m.editor, m.initial = editor.New(editor.Options{
		Paths:  opts.Paths,
		Theme:  opts.Theme,
		Themes: theme.Names(),
	})
	m.styles = theme.Get(m.editor.Theme())
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if cmd := m.runEffects(m.initial); cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.initial = nil
	if m.watcher != nil {
		cmds = append(cmds, waitForWatchEvent(m.watcher))
	}
	if m.broker != nil {
		cmds = append(cmds, waitForDialogRequest(m.broker))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	if m.dialog != nil {
		return m, m.dialog.forward(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(editor.FileOpened{}): m.handleFileOpenedMsg,
		reflect.TypeOf(editor.FileSaved{}):  m.handleFileSavedMsg,
		reflect.TypeOf(actionResultMsg{}):   m.handleActionResultMsg,
		reflect.TypeOf(watchEventMsg{}):     m.handleWatchEventMsg,
		reflect.TypeOf(watchDoneMsg{}):      m.handleWatchDoneMsg,
		reflect.TypeOf(dialogRequestMsg{}):  m.handleDialogRequestMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// dispatch applies cmd to the editor and schedules the resulting effects.
func (m *Model) dispatch(cmd editor.Command) tea.Cmd {
	effects := m.editor.Handle(cmd)
	m.styles = theme.Get(m.editor.Theme())
	m.pruneViews()
	m.scrollToCursor()
	return m.runEffects(effects)
}

// Editor exposes the underlying editor state.
func (m *Model) Editor() *editor.Editor {
	return m.editor
}

// Close cancels outstanding background work.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m *Model) view(id document.ID) *viewport {
	v, ok := m.views[id]
	if !ok {
		v = &viewport{}
		m.views[id] = v
	}
	return v
}

func (m *Model) pruneViews() {
	if len(m.views) <= m.editor.Documents().Len() {
		return
	}
	live := make(map[document.ID]struct{})
	for _, doc := range m.editor.Documents().Documents() {
		live[doc.ID] = struct{}{}
	}
	for id := range m.views {
		if _, ok := live[id]; !ok {
			delete(m.views, id)
		}
	}
}
