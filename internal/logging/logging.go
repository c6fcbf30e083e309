// Package logging appends errors and optional JSON trace entries to a single
// log file.
package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const logName = "tabedit.log"

type sink struct {
	mu    sync.Mutex
	path  string
	trace bool
}

var out = &sink{path: defaultPath()}

func defaultPath() string {
	return filepath.Join(os.TempDir(), logName)
}

// append opens the log file, hands it to fn and closes it again. The file is
// not held open so several editor processes can share it.
func (s *sink) append(what string, fn func(f *os.File) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
		return
	}
	defer f.Close()
	if err := fn(f); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
	}
}

// Error appends err to the log file.
func Error(err error) {
	if err == nil {
		return
	}
	out.append("logging", func(f *os.File) error {
		log.New(f, "", log.LstdFlags).Println(err)
		return nil
	})
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	out.mu.Lock()
	out.trace = enabled
	out.mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.trace
}

type traceEntry struct {
	Time    time.Time   `json:"time"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Trace appends one JSON line for event when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	entry := traceEntry{Time: time.Now().UTC(), Event: event, Payload: payload}
	out.append("trace logging", func(f *os.File) error {
		return json.NewEncoder(f).Encode(entry)
	})
}

// Configure sets the log destination, creating its directory. An empty path
// or an unusable directory selects the default file in the temp directory.
func Configure(path string) {
	out.mu.Lock()
	defer out.mu.Unlock()
	if strings.TrimSpace(path) == "" {
		out.path = defaultPath()
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		out.path = defaultPath()
		return
	}
	out.path = path
}

// Path returns the current log destination.
func Path() string {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.path
}
