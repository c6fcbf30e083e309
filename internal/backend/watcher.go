package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/tabedit/internal/logging/events"
	"github.com/fsnotify/fsnotify"
)

// Event reports that a watched file changed on disk.
type Event struct {
	Path    string
	ModTime time.Time
	Err     error
}

// Watcher follows the files backing open documents and publishes an Event
// after each burst of changes to one of them settles.
type Watcher struct {
	fsw *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events   chan Event
	fire     chan string
	debounce *debouncer
	wg       sync.WaitGroup

	mu    sync.Mutex
	files map[string]string // cleaned absolute path -> path as given
	dirs  map[string]int
}

// NewWatcher starts a watcher that waits interval after the last change to a
// file before reporting it.
func NewWatcher(interval time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fsw:      fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		fire:     make(chan string),
		debounce: newDebouncer(interval),
		files:    make(map[string]string),
		dirs:     make(map[string]int),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of file change events. It is closed after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// SetPaths replaces the watched file set. Parent directories are watched so
// that replace-by-rename saves from other programs are seen.
func (w *Watcher) SetPaths(paths []string) error {
	files := make(map[string]string, len(paths))
	dirs := make(map[string]int)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		files[abs] = p
		dirs[filepath.Dir(abs)]++
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	var firstErr error
	for dir := range w.dirs {
		if _, keep := dirs[dir]; !keep {
			if err := w.fsw.Remove(dir); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("unwatch %s: %w", dir, err)
			}
		}
	}
	for dir := range dirs {
		if _, had := w.dirs[dir]; had {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			delete(dirs, dir)
			if firstErr == nil {
				firstErr = fmt.Errorf("watch %s: %w", dir, err)
			}
		}
	}
	w.files = files
	w.dirs = dirs
	events.Watch.Paths(paths)
	return firstErr
}

// Stop cancels the watcher and releases the underlying notifier.
func (w *Watcher) Stop() {
	w.cancel()
	w.debounce.stop()
}

// Wait blocks until the watcher goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fsw.Close()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if _, tracked := w.lookup(ev.Name); !tracked {
				continue
			}
			w.debounce.trigger(filepath.Clean(ev.Name), w.schedule)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Err: err}) {
				return
			}
		case name := <-w.fire:
			path, tracked := w.lookup(name)
			if !tracked {
				continue
			}
			events.Watch.Change(path)
			if !w.emit(Event{Path: path, ModTime: modTime(name)}) {
				return
			}
		}
	}
}

func (w *Watcher) schedule(name string) {
	select {
	case w.fire <- name:
	case <-w.ctx.Done():
	}
}

func (w *Watcher) lookup(name string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	path, ok := w.files[filepath.Clean(name)]
	return path, ok
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

// modTime returns the file's modification time; a file that vanished is
// reported as changed now.
func modTime(name string) time.Time {
	info, err := os.Stat(name)
	if err != nil {
		return time.Now()
	}
	return info.ModTime()
}
