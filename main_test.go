package main

import (
	"testing"

	"github.com/atomicstack/tabedit/internal/app"
	"github.com/atomicstack/tabedit/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Paths:       []string{"/tmp/notes.txt"},
			Width:       80,
			Height:      24,
			Theme:       "nord",
			TabWidth:    4,
			LineNumbers: true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"file":   "/tmp/notes.txt",
			"width":  "80",
			"height": "24",
			"theme":  "nord",
		},
		Args: []string{"--file", "/tmp/notes.txt", "--theme", "nord"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["file"] != "/tmp/notes.txt" {
		t.Fatalf("expected file flag %q, got %v", "/tmp/notes.txt", flagsValue["file"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["theme"] != "nord" {
		t.Fatalf("expected theme nord, got %v", flagsValue["theme"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	cfgValue, ok := payload["config"].(config.Config)
	if !ok {
		t.Fatalf("expected config in payload")
	}
	if cfgValue.App.Theme != "nord" || len(cfgValue.App.Paths) != 1 {
		t.Fatalf("expected app config carried through, got %#v", cfgValue.App)
	}
}

func TestRootCommandDeclaresFlags(t *testing.T) {
	cmd := newRootCmd(nil)
	for _, name := range []string{"file", "width", "height", "theme", "trace", "log-file", "config", "state-dir", "watch", "tab-width", "line-numbers"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("expected flag %q on root command", name)
		}
	}
}

func TestRootCommandRejectsInvalidConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	cmd := newRootCmd([]string{"--tab-width", "0"})
	err := cmd.Execute()
	exit, ok := err.(*exitError)
	if !ok {
		t.Fatalf("expected exitError, got %v", err)
	}
	if exit.code != 2 {
		t.Fatalf("expected exit code 2, got %d", exit.code)
	}
}
