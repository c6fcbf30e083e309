package fileio

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrDialogClosed reports that the user dismissed a file picker.
var ErrDialogClosed = errors.New("dialog closed")

// ErrInvalidEncoding reports file content that is not valid UTF-8 text.
var ErrInvalidEncoding = errors.New("content is not valid UTF-8")

// Kind classifies filesystem failures.
type Kind int

const (
	KindOther Kind = iota
	KindNotFound
	KindPermission
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermission:
		return "permission denied"
	default:
		return "other"
	}
}

// Error is a classified filesystem failure.
type Error struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Kind: classify(err), Err: err}
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	default:
		return KindOther
	}
}

// KindOf returns the Kind of err, or KindOther when err is not an *Error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindOther
}
