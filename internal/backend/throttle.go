package backend

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of triggers per key into a single call once the
// key has been quiet for interval.
type debouncer struct {
	interval time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newDebouncer(interval time.Duration) *debouncer {
	if interval < 0 {
		interval = 0
	}
	return &debouncer{interval: interval, timers: make(map[string]*time.Timer)}
}

func (d *debouncer) trigger(key string, fn func(string)) {
	if d == nil || d.interval <= 0 {
		go fn(key)
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[key]; ok {
		t.Reset(d.interval)
		return
	}
	d.timers[key] = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		fn(key)
	})
}

func (d *debouncer) stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
