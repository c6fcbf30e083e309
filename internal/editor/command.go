package editor

import (
	"time"

	"github.com/atomicstack/tabedit/internal/buffer"
	"github.com/atomicstack/tabedit/internal/document"
	"github.com/atomicstack/tabedit/internal/fileio"
)

// Command is an input to Editor.Handle.
type Command interface {
	command()
}

// Edit applies a buffer action to the active document.
type Edit struct{ Action buffer.Action }

// NewFile clears the active document.
type NewFile struct{}

// OpenFile asks for a file and loads it into the active document.
type OpenFile struct{}

// OpenPath loads a known path into the active document. Recent marks a path
// picked from the recent-files list.
type OpenPath struct {
	Path   string
	Recent bool
}

// FileOpened completes a load scheduled for Doc.
type FileOpened struct {
	Doc    document.ID
	Result fileio.Loaded
	Err    error
	Recent bool
}

// SaveFile writes the active document to its path, asking for one if unset.
type SaveFile struct{}

// SaveFileAs writes the active document to a newly picked location.
type SaveFileAs struct{}

// FileSaved completes a save scheduled for Doc.
type FileSaved struct {
	Doc    document.ID
	Result fileio.Saved
	Err    error
}

// TabNew appends and activates an empty document.
type TabNew struct{}

// TabSelected activates the tab at Index.
type TabSelected struct{ Index int }

// TabClosed closes the tab at Index.
type TabClosed struct{ Index int }

// TabNext activates the following tab.
type TabNext struct{}

// TabPrev activates the preceding tab.
type TabPrev struct{}

// ThemeSelected switches the colour theme.
type ThemeSelected struct{ Name string }

// FileChanged reports that Path was modified on disk at ModTime.
type FileChanged struct {
	Path    string
	ModTime time.Time
}

// CopyPath copies the active document's path to the clipboard.
type CopyPath struct{}

func (Edit) command()          {}
func (NewFile) command()       {}
func (OpenFile) command()      {}
func (OpenPath) command()      {}
func (FileOpened) command()    {}
func (SaveFile) command()      {}
func (SaveFileAs) command()    {}
func (FileSaved) command()     {}
func (TabNew) command()        {}
func (TabSelected) command()   {}
func (TabClosed) command()     {}
func (TabNext) command()       {}
func (TabPrev) command()       {}
func (ThemeSelected) command() {}
func (FileChanged) command()   {}
func (CopyPath) command()      {}
