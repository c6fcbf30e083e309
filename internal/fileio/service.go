// Package fileio performs the blocking file operations behind opening and
// saving documents. Calls hold no state between invocations; the UI runs them
// off the event loop and feeds the results back as messages.
package fileio

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// Picker asks the user for a path. Cancellation is reported as
// ErrDialogClosed.
type Picker interface {
	PickFile(ctx context.Context) (string, error)
	PickSaveLocation(ctx context.Context) (string, error)
}

// Loaded is the result of reading a file.
type Loaded struct {
	Path    string
	Content string
	ModTime time.Time
}

// Saved is the result of writing a file.
type Saved struct {
	Path    string
	ModTime time.Time
}

// Service reads and writes documents through an afero filesystem.
type Service struct {
	fs     afero.Fs
	picker Picker
}

// NewService builds a service. A nil fs uses the OS filesystem.
func NewService(fs afero.Fs, picker Picker) *Service {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Service{fs: fs, picker: picker}
}

// PickAndLoad asks the picker for a file and loads it.
func (s *Service) PickAndLoad(ctx context.Context) (Loaded, error) {
	if s.picker == nil {
		return Loaded{}, ErrDialogClosed
	}
	path, err := s.picker.PickFile(ctx)
	if err != nil {
		return Loaded{}, err
	}
	return s.Load(ctx, path)
}

// Load reads the full content of path as text.
func (s *Service) Load(ctx context.Context, path string) (Loaded, error) {
	if err := ctx.Err(); err != nil {
		return Loaded{}, newError("read", path, err)
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return Loaded{}, newError("read", path, err)
	}
	if !utf8.Valid(data) {
		return Loaded{}, newError("read", path, ErrInvalidEncoding)
	}
	return Loaded{Path: path, Content: string(data), ModTime: s.modTime(path)}, nil
}

// Save writes content to path, asking the picker for a location when path is
// empty. Existing files are overwritten in place. Once a path is known the
// write goes ahead even if ctx has been cancelled.
func (s *Service) Save(ctx context.Context, path, content string) (Saved, error) {
	if path == "" {
		if s.picker == nil {
			return Saved{}, ErrDialogClosed
		}
		picked, err := s.picker.PickSaveLocation(ctx)
		if err != nil {
			return Saved{}, err
		}
		path = picked
	}
	if err := afero.WriteFile(s.fs, path, []byte(content), 0o644); err != nil {
		return Saved{}, newError("write", path, err)
	}
	return Saved{Path: path, ModTime: s.modTime(path)}, nil
}

func (s *Service) modTime(path string) time.Time {
	info, err := s.fs.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
