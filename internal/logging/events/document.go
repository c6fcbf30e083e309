package events

import "github.com/atomicstack/tabedit/internal/logging"

type DocumentTracer struct{}

type TabTracer struct{}

type ThemeTracer struct{}

var (
	Document = DocumentTracer{}
	Tab      = TabTracer{}
	Theme    = ThemeTracer{}
)

func (DocumentTracer) Queue(op, id, path string) {
	logging.Trace("document."+op+".queue", map[string]interface{}{"doc": id, "path": path})
}

func (DocumentTracer) Skip(op, id, reason string) {
	logging.Trace("document."+op+".skip", map[string]interface{}{"doc": id, "reason": reason})
}

func (DocumentTracer) Complete(op, id, path string) {
	logging.Trace("document."+op+".complete", map[string]interface{}{"doc": id, "path": path})
}

func (DocumentTracer) Fail(op, id string, err error) {
	payload := map[string]interface{}{"doc": id}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("document."+op+".fail", payload)
}

// Drop records a completion whose document is gone or no longer waiting.
func (DocumentTracer) Drop(op, id string) {
	logging.Trace("document."+op+".drop", map[string]interface{}{"doc": id})
}

func (TabTracer) New(index int) {
	logging.Trace("tab.new", map[string]interface{}{"index": index})
}

func (TabTracer) Select(index int) {
	logging.Trace("tab.select", map[string]interface{}{"index": index})
}

func (TabTracer) Close(index, remaining int) {
	logging.Trace("tab.close", map[string]interface{}{"index": index, "remaining": remaining})
}

func (ThemeTracer) Select(name string) {
	logging.Trace("theme.select", map[string]interface{}{"name": name})
}
