package events

import "github.com/atomicstack/tabedit/internal/logging"

type WatchTracer struct{}

type DialogTracer struct{}

var (
	Watch  = WatchTracer{}
	Dialog = DialogTracer{}
)

func (WatchTracer) Paths(paths []string) {
	logging.Trace("watch.paths", map[string]interface{}{"paths": paths})
}

func (WatchTracer) Change(path string) {
	logging.Trace("watch.change", map[string]interface{}{"path": path})
}

func (WatchTracer) Stale(id, path string) {
	logging.Trace("watch.stale", map[string]interface{}{"doc": id, "path": path})
}

func (DialogTracer) Open(kind string) {
	logging.Trace("dialog.open", map[string]interface{}{"kind": kind})
}

func (DialogTracer) Submit(kind, path string) {
	logging.Trace("dialog.submit", map[string]interface{}{"kind": kind, "path": path})
}

func (DialogTracer) Cancel(kind string) {
	logging.Trace("dialog.cancel", map[string]interface{}{"kind": kind})
}
