package testutil

import (
	"context"
	"sync"

	"github.com/atomicstack/tabedit/internal/fileio"
)

// Picker is a scripted fileio.Picker. Empty answers behave like a cancelled
// dialog.
type Picker struct {
	mu        sync.Mutex
	open      []string
	save      []string
	OpenCalls int
	SaveCalls int
}

// NewPicker returns a picker answering open and save requests from the given
// queues in order.
func NewPicker(open, save []string) *Picker {
	return &Picker{open: append([]string(nil), open...), save: append([]string(nil), save...)}
}

func (p *Picker) PickFile(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.OpenCalls++
	return next(&p.open)
}

func (p *Picker) PickSaveLocation(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.SaveCalls++
	return next(&p.save)
}

func next(queue *[]string) (string, error) {
	if len(*queue) == 0 {
		return "", fileio.ErrDialogClosed
	}
	answer := (*queue)[0]
	*queue = (*queue)[1:]
	if answer == "" {
		return "", fileio.ErrDialogClosed
	}
	return answer, nil
}
