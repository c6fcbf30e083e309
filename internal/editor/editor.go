// Package editor holds the document/tab state machine. Handle applies one
// Command to the open documents and returns the asynchronous work the caller
// must run; completions come back as FileOpened and FileSaved commands routed
// by document ID, so results never land in whichever tab happens to be active.
package editor

import (
	"errors"
	"slices"

	"github.com/atomicstack/tabedit/internal/document"
	"github.com/atomicstack/tabedit/internal/fileio"
	"github.com/atomicstack/tabedit/internal/logging/events"
)

// Options configures a new Editor.
type Options struct {
	// Paths are opened at startup: the first into the initial document, the
	// rest into additional tabs.
	Paths  []string
	Theme  string
	Themes []string
}

// Editor owns the documents and applies commands to them. It is not safe for
// concurrent use; all calls must come from the event loop.
type Editor struct {
	docs    *document.Manager
	theme   string
	themes  []string
	watched []string
}

// New builds an editor and returns the effects needed to load opts.Paths.
func New(opts Options) (*Editor, []Effect) {
	e := &Editor{
		docs:   document.NewManager(),
		themes: append([]string(nil), opts.Themes...),
	}
	e.theme = opts.Theme
	if e.theme == "" && len(e.themes) > 0 {
		e.theme = e.themes[0]
	}
	var effects []Effect
	for i, path := range opts.Paths {
		if path == "" {
			continue
		}
		doc := e.docs.Active()
		if i > 0 {
			doc = e.docs.OpenNewTab()
		}
		effects = append(effects, e.beginLoad(doc, path))
	}
	e.docs.Select(0)
	return e, effects
}

// Documents exposes the document manager for rendering.
func (e *Editor) Documents() *document.Manager { return e.docs }

// Active returns the active document.
func (e *Editor) Active() *document.Document { return e.docs.Active() }

// Theme returns the selected theme name.
func (e *Editor) Theme() string { return e.theme }

// Themes returns the selectable theme names.
func (e *Editor) Themes() []string { return append([]string(nil), e.themes...) }

// Handle applies cmd and returns the effects to schedule.
func (e *Editor) Handle(cmd Command) []Effect {
	switch c := cmd.(type) {
	case Edit:
		e.docs.Active().ApplyEdit(c.Action)
		return nil
	case NewFile:
		doc := e.docs.Active()
		if !doc.ResetNew() {
			events.Document.Skip("new", string(doc.ID), "loading")
			return nil
		}
		return e.watchEffects()
	case OpenFile:
		doc := e.docs.Active()
		if doc.Loading {
			events.Document.Skip("open", string(doc.ID), "loading")
			return nil
		}
		doc.BeginLoad()
		events.Document.Queue("open", string(doc.ID), "")
		return []Effect{PickAndLoad{Doc: doc.ID}}
	case OpenPath:
		doc := e.docs.Active()
		if c.Path == "" {
			return nil
		}
		if doc.Loading {
			events.Document.Skip("open", string(doc.ID), "loading")
			return nil
		}
		load := e.beginLoad(doc, c.Path)
		load.Recent = c.Recent
		return []Effect{load}
	case FileOpened:
		return e.fileOpened(c)
	case SaveFile:
		doc := e.docs.Active()
		if doc.Loading {
			events.Document.Skip("save", string(doc.ID), "loading")
			return nil
		}
		if !doc.Dirty && doc.Path != "" {
			events.Document.Skip("save", string(doc.ID), "clean")
			return nil
		}
		return []Effect{e.beginSave(doc, doc.Path)}
	case SaveFileAs:
		doc := e.docs.Active()
		if doc.Loading {
			events.Document.Skip("save", string(doc.ID), "loading")
			return nil
		}
		return []Effect{e.beginSave(doc, "")}
	case FileSaved:
		return e.fileSaved(c)
	case TabNew:
		e.docs.OpenNewTab()
		events.Tab.New(e.docs.ActiveIndex())
		return nil
	case TabSelected:
		if e.docs.Select(c.Index) {
			events.Tab.Select(c.Index)
		}
		return nil
	case TabClosed:
		if !e.docs.CloseTab(c.Index) {
			return nil
		}
		events.Tab.Close(c.Index, e.docs.Len())
		return e.watchEffects()
	case TabNext:
		if e.docs.Next() {
			events.Tab.Select(e.docs.ActiveIndex())
		}
		return nil
	case TabPrev:
		if e.docs.Prev() {
			events.Tab.Select(e.docs.ActiveIndex())
		}
		return nil
	case ThemeSelected:
		if slices.Contains(e.themes, c.Name) {
			e.theme = c.Name
			events.Theme.Select(c.Name)
		}
		return nil
	case FileChanged:
		for _, doc := range e.docs.FindByPath(c.Path) {
			if doc.MarkStale(c.ModTime) {
				events.Watch.Stale(string(doc.ID), c.Path)
			}
		}
		return nil
	case CopyPath:
		if path := e.docs.Active().Path; path != "" {
			return []Effect{CopyToClipboard{Text: path}}
		}
		return nil
	default:
		return nil
	}
}

// CanOpen reports whether an open may be requested for the active document.
func (e *Editor) CanOpen() bool { return !e.docs.Active().Loading }

// CanSave reports whether a save is worth requesting for the active document.
func (e *Editor) CanSave() bool {
	doc := e.docs.Active()
	return !doc.Loading && doc.Dirty
}

// Pending reports whether a load or save completion for id would still be
// applied.
func (e *Editor) Pending(id document.ID) bool {
	doc, _ := e.docs.Find(id)
	return doc != nil && doc.Loading
}

func (e *Editor) beginLoad(doc *document.Document, path string) LoadFile {
	doc.BeginLoad()
	events.Document.Queue("load", string(doc.ID), path)
	return LoadFile{Doc: doc.ID, Path: path}
}

func (e *Editor) beginSave(doc *document.Document, path string) Effect {
	doc.BeginSave()
	events.Document.Queue("save", string(doc.ID), path)
	return WriteFile{Doc: doc.ID, Path: path, Content: doc.Text()}
}

func (e *Editor) fileOpened(c FileOpened) []Effect {
	if !e.Pending(c.Doc) {
		events.Document.Drop("open", string(c.Doc))
		return nil
	}
	doc, _ := e.docs.Find(c.Doc)
	if c.Err != nil {
		doc.CompleteLoadFailure()
		events.Document.Fail("open", string(doc.ID), c.Err)
		return forgetMissing(c)
	}
	doc.CompleteLoad(c.Result.Path, c.Result.Content, c.Result.ModTime)
	events.Document.Complete("open", string(doc.ID), c.Result.Path)
	return append([]Effect{RecordRecent{Path: c.Result.Path}}, e.watchEffects()...)
}

func (e *Editor) fileSaved(c FileSaved) []Effect {
	if !e.Pending(c.Doc) {
		events.Document.Drop("save", string(c.Doc))
		return nil
	}
	doc, _ := e.docs.Find(c.Doc)
	if c.Err != nil {
		doc.CompleteSaveFailure()
		events.Document.Fail("save", string(doc.ID), c.Err)
		return nil
	}
	doc.CompleteSave(c.Result.Path, c.Result.ModTime)
	events.Document.Complete("save", string(doc.ID), c.Result.Path)
	return append([]Effect{RecordRecent{Path: c.Result.Path}}, e.watchEffects()...)
}

// forgetMissing drops a recent-files entry whose file no longer exists.
func forgetMissing(c FileOpened) []Effect {
	var fe *fileio.Error
	if !c.Recent || !errors.As(c.Err, &fe) || fe.Kind != fileio.KindNotFound {
		return nil
	}
	return []Effect{ForgetRecent{Path: fe.Path}}
}

// watchEffects emits WatchPaths when the set of backing files changed since
// the last emission.
func (e *Editor) watchEffects() []Effect {
	paths := e.docs.Paths()
	slices.Sort(paths)
	if slices.Equal(paths, e.watched) {
		return nil
	}
	e.watched = paths
	return []Effect{WatchPaths{Paths: append([]string(nil), paths...)}}
}
