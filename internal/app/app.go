package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/atomicstack/tabedit/internal/backend"
	"github.com/atomicstack/tabedit/internal/logging"
	"github.com/atomicstack/tabedit/internal/store"
	"github.com/atomicstack/tabedit/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const watchInterval = 250 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	Paths       []string
	Width       int
	Height      int
	Theme       string
	StateDir    string
	Watch       bool
	TabWidth    int
	LineNumbers bool
}

// Run bootstraps and executes the Bubble Tea program. Recent files and file
// watching are optional; failing to set either up is logged and the editor
// runs without it.
func Run(cfg Config) error {
	var recent *store.Recent
	if cfg.StateDir != "" {
		r, err := store.Open(filepath.Join(cfg.StateDir, "recent"), store.DefaultLimit)
		if err != nil {
			logging.Error(fmt.Errorf("open recent files: %w", err))
		} else {
			recent = r
		}
	}
	var watcher *backend.Watcher
	if cfg.Watch {
		w, err := backend.NewWatcher(watchInterval)
		if err != nil {
			logging.Error(fmt.Errorf("start file watcher: %w", err))
		} else {
			watcher = w
			defer w.Stop()
		}
	}
	model := ui.NewModel(ui.Options{
		Paths:       cfg.Paths,
		Theme:       cfg.Theme,
		Width:       cfg.Width,
		Height:      cfg.Height,
		TabWidth:    cfg.TabWidth,
		LineNumbers: cfg.LineNumbers,
		ShowFooter:  true,
		Watcher:     watcher,
		Recent:      recent,
	})
	defer model.Close()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
