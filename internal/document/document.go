package document

import (
	"path/filepath"
	"time"

	"github.com/atomicstack/tabedit/internal/buffer"
	"github.com/google/uuid"
)

const untitledLabel = "New"

// ID identifies a document for its whole lifetime, independent of its tab
// position.
type ID string

func newID() ID {
	return ID(uuid.NewString())
}

// Document is one open buffer and its file association.
type Document struct {
	ID      ID
	Path    string
	Buffer  *buffer.Buffer
	Loading bool
	Dirty   bool
	// ModTime is the file modification time seen at the last load or save.
	ModTime time.Time
	// Stale is set when the file changed on disk after ModTime.
	Stale bool
}

// New returns an empty, clean, untitled document.
func New() *Document {
	return &Document{ID: newID(), Buffer: buffer.New("")}
}

// ApplyEdit applies action to the buffer and reports whether the text
// changed. Documents with an outstanding load or save ignore edits.
func (d *Document) ApplyEdit(action buffer.Action) bool {
	if d.Loading {
		return false
	}
	changed := d.Buffer.Apply(action)
	if changed {
		d.Dirty = true
	}
	return changed
}

// BeginLoad marks an open as outstanding.
func (d *Document) BeginLoad() { d.Loading = true }

// BeginSave marks a save as outstanding.
func (d *Document) BeginSave() { d.Loading = true }

// CompleteLoad replaces the content with the loaded file.
func (d *Document) CompleteLoad(path, content string, modTime time.Time) {
	d.Buffer = buffer.New(content)
	d.Path = path
	d.ModTime = modTime
	d.Dirty = false
	d.Loading = false
	d.Stale = false
}

// CompleteLoadFailure ends a failed or cancelled open; content is kept.
func (d *Document) CompleteLoadFailure() { d.Loading = false }

// CompleteSave records a successful write of the buffer to path.
func (d *Document) CompleteSave(path string, modTime time.Time) {
	d.Path = path
	d.ModTime = modTime
	d.Dirty = false
	d.Loading = false
	d.Stale = false
}

// CompleteSaveFailure ends a failed or cancelled save; the document stays
// dirty so the save can be retried.
func (d *Document) CompleteSaveFailure() { d.Loading = false }

// ResetNew turns the document into an empty untitled one. It refuses while an
// operation is outstanding.
func (d *Document) ResetNew() bool {
	if d.Loading {
		return false
	}
	d.Path = ""
	d.Buffer = buffer.New("")
	d.Dirty = false
	d.Stale = false
	d.ModTime = time.Time{}
	return true
}

// MarkStale flags the document when modTime is newer than the one recorded
// at the last load or save.
func (d *Document) MarkStale(modTime time.Time) bool {
	if d.Loading || d.Path == "" || d.Stale {
		return false
	}
	if !modTime.After(d.ModTime) {
		return false
	}
	d.Stale = true
	return true
}

// Text returns a snapshot of the buffer.
func (d *Document) Text() string { return d.Buffer.Text() }

// Label is the tab caption: the file's base name or "New".
func (d *Document) Label() string {
	if d.Path == "" {
		return untitledLabel
	}
	return filepath.Base(d.Path)
}
