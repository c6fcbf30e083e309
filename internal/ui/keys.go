package ui

import (
	"github.com/atomicstack/tabedit/internal/buffer"
	"github.com/atomicstack/tabedit/internal/editor"
	"github.com/atomicstack/tabedit/internal/logging/events"
	"github.com/atomicstack/tabedit/internal/theme"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Save      key.Binding
	SaveAs    key.Binding
	Open      key.Binding
	New       key.Binding
	NewTab    key.Binding
	CloseTab  key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	SelectTab key.Binding
	Switcher  key.Binding
	CopyPath  key.Binding
	Theme     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^s", "save")),
		SaveAs:   key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("^e", "save as")),
		Open:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("^o", "open")),
		New:      key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("^n", "new")),
		NewTab:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("^t", "new tab")),
		CloseTab: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("^w", "close tab")),
		NextTab:  key.NewBinding(key.WithKeys("ctrl+right", "ctrl+pgdown"), key.WithHelp("^→", "next tab")),
		PrevTab:  key.NewBinding(key.WithKeys("ctrl+left", "ctrl+pgup"), key.WithHelp("^←", "prev tab")),
		SelectTab: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
			key.WithHelp("alt+1-9", "go to tab"),
		),
		Switcher: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("^p", "switch")),
		CopyPath: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("^y", "copy path")),
		Theme:    key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "theme")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("^q", "quit")),
	}
}

// helpBindings are the bindings listed in the footer.
func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Save, k.Open, k.New, k.NewTab, k.CloseTab, k.Switcher, k.Theme, k.Quit}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	m.clearInfo()
	if m.dialog != nil {
		return m.handleDialogKey(keyMsg)
	}
	if m.switcher != nil {
		return m.handleSwitcherKey(keyMsg)
	}
	if cmd, handled := m.handleBinding(keyMsg); handled {
		return cmd
	}
	if action, ok := m.editAction(keyMsg); ok {
		return m.dispatch(editor.Edit{Action: action})
	}
	return nil
}

// handleBinding runs application shortcuts. Open and save honour the same
// gates the toolbar shows, so a busy or clean document ignores them.
func (m *Model) handleBinding(msg tea.KeyMsg) (tea.Cmd, bool) {
	var cmd editor.Command
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return tea.Quit, true
	case key.Matches(msg, m.keys.Save):
		if !m.editor.CanSave() {
			return nil, true
		}
		cmd = editor.SaveFile{}
	case key.Matches(msg, m.keys.SaveAs):
		if m.editor.Active().Loading {
			return nil, true
		}
		cmd = editor.SaveFileAs{}
	case key.Matches(msg, m.keys.Open):
		if !m.editor.CanOpen() {
			return nil, true
		}
		cmd = editor.OpenFile{}
	case key.Matches(msg, m.keys.New):
		cmd = editor.NewFile{}
	case key.Matches(msg, m.keys.NewTab):
		cmd = editor.TabNew{}
	case key.Matches(msg, m.keys.CloseTab):
		cmd = editor.TabClosed{Index: m.editor.Documents().ActiveIndex()}
	case key.Matches(msg, m.keys.NextTab):
		cmd = editor.TabNext{}
	case key.Matches(msg, m.keys.PrevTab):
		cmd = editor.TabPrev{}
	case key.Matches(msg, m.keys.SelectTab):
		runes := msg.Runes
		if len(runes) != 1 {
			return nil, true
		}
		cmd = editor.TabSelected{Index: int(runes[0] - '1')}
	case key.Matches(msg, m.keys.Switcher):
		m.openSwitcher()
		return nil, true
	case key.Matches(msg, m.keys.CopyPath):
		cmd = editor.CopyPath{}
	case key.Matches(msg, m.keys.Theme):
		cmd = editor.ThemeSelected{Name: theme.Next(m.editor.Theme())}
	default:
		return nil, false
	}
	events.UI.Key(msg.String(), commandName(cmd))
	return m.dispatch(cmd), true
}

// editAction maps editing keys onto buffer actions.
func (m *Model) editAction(msg tea.KeyMsg) (buffer.Action, bool) {
	switch msg.String() {
	case "alt+backspace":
		return buffer.DeleteWordBackward(), true
	case "ctrl+k":
		return buffer.KillLine(), true
	case "alt+left", "alt+b":
		return buffer.Motion(buffer.MoveWordLeft), true
	case "alt+right", "alt+f":
		return buffer.Motion(buffer.MoveWordRight), true
	case "ctrl+home":
		return buffer.Motion(buffer.MoveDocStart), true
	case "ctrl+end":
		return buffer.Motion(buffer.MoveDocEnd), true
	case "ctrl+a":
		return buffer.Motion(buffer.MoveLineStart), true
	}
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return buffer.Action{}, false
		}
		return buffer.Insert(string(msg.Runes)), true
	case tea.KeySpace:
		return buffer.Insert(" "), true
	case tea.KeyTab:
		return buffer.Insert("\t"), true
	case tea.KeyEnter:
		return buffer.Newline(), true
	case tea.KeyBackspace:
		return buffer.DeleteBackward(), true
	case tea.KeyDelete:
		return buffer.DeleteForward(), true
	case tea.KeyLeft:
		return buffer.Motion(buffer.MoveLeft), true
	case tea.KeyRight:
		return buffer.Motion(buffer.MoveRight), true
	case tea.KeyUp:
		return buffer.Motion(buffer.MoveUp), true
	case tea.KeyDown:
		return buffer.Motion(buffer.MoveDown), true
	case tea.KeyHome:
		return buffer.Motion(buffer.MoveLineStart), true
	case tea.KeyEnd:
		return buffer.Motion(buffer.MoveLineEnd), true
	case tea.KeyPgUp:
		return buffer.Page(buffer.MovePageUp, m.editorRows()), true
	case tea.KeyPgDown:
		return buffer.Page(buffer.MovePageDown, m.editorRows()), true
	}
	return buffer.Action{}, false
}

func commandName(cmd editor.Command) string {
	switch cmd.(type) {
	case editor.SaveFile:
		return "save"
	case editor.SaveFileAs:
		return "save-as"
	case editor.OpenFile:
		return "open"
	case editor.NewFile:
		return "new"
	case editor.TabNew:
		return "tab-new"
	case editor.TabClosed:
		return "tab-close"
	case editor.TabNext:
		return "tab-next"
	case editor.TabPrev:
		return "tab-prev"
	case editor.TabSelected:
		return "tab-select"
	case editor.CopyPath:
		return "copy-path"
	case editor.ThemeSelected:
		return "theme"
	default:
		return "unknown"
	}
}
