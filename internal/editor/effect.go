package editor

import "github.com/atomicstack/tabedit/internal/document"

// Effect is asynchronous work requested by Handle. The caller runs it and
// feeds the completion back as a Command.
type Effect interface {
	effect()
}

// LoadFile reads Path into Doc; completes with FileOpened.
type LoadFile struct {
	Doc    document.ID
	Path   string
	Recent bool
}

// PickAndLoad asks for a file and reads it into Doc; completes with
// FileOpened.
type PickAndLoad struct {
	Doc document.ID
}

// WriteFile saves Content for Doc; an empty Path asks for a location.
// Completes with FileSaved.
type WriteFile struct {
	Doc     document.ID
	Path    string
	Content string
}

// RecordRecent remembers Path as recently used. It has no completion.
type RecordRecent struct {
	Path string
}

// ForgetRecent drops Path from the recent-files list. It has no completion.
type ForgetRecent struct {
	Path string
}

// WatchPaths replaces the set of watched files. It has no completion.
type WatchPaths struct {
	Paths []string
}

// CopyToClipboard places Text on the system clipboard. It has no completion.
type CopyToClipboard struct {
	Text string
}

func (LoadFile) effect()        {}
func (PickAndLoad) effect()     {}
func (WriteFile) effect()       {}
func (RecordRecent) effect()    {}
func (ForgetRecent) effect()    {}
func (WatchPaths) effect()      {}
func (CopyToClipboard) effect() {}
