package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/tabedit/internal/app"
	"github.com/atomicstack/tabedit/internal/config"
	"github.com/atomicstack/tabedit/internal/logging"
	"github.com/atomicstack/tabedit/internal/logging/events"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// exitError carries the process exit status out of the root command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func main() {
	cmd := newRootCmd(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		// flag parsing failures
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func newRootCmd(argv []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tabedit [file...]",
		Short:         "A tabbed terminal text editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtimeCfg, err := config.FromFlags(cmd.Flags(), os.Environ())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
				return &exitError{code: 2, err: err}
			}
			runtimeCfg.Args = argv
			if err := config.Validate(runtimeCfg); err != nil {
				fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
				return &exitError{code: 2, err: err}
			}
			logging.Configure(runtimeCfg.Logging.FilePath)
			logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

			traceStartup(runtimeCfg)

			err = app.Run(runtimeCfg.App)
			events.App.Exit(err)
			if err != nil {
				logging.Error(err)
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return &exitError{code: 1, err: err}
			}
			return nil
		},
	}
	cmd.SetArgs(argv)
	config.BindFlags(cmd.Flags())
	return cmd
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles the resolved configuration and the process
// environment for the first trace entry.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":       cfg.Args,
		"flags":      flags,
		"config":     cfg,
		"configFile": cfg.ConfigFile,
		"tty":        collectTTYDetails(),
	}
	addOrError(payload, "executable", os.Executable)
	addOrError(payload, "cwd", os.Getwd)
	return payload
}

func addOrError(payload map[string]interface{}, key string, fn func() (string, error)) {
	if v, err := fn(); err == nil {
		payload[key] = v
	} else {
		payload[key+"Error"] = err.Error()
	}
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails probes stdin, stdout and stderr; the first one that is a
// terminal with a readable size becomes the detected source.
func collectTTYDetails() ttyDetails {
	var details ttyDetails
	for _, f := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		probe := probeTTY(f)
		if details.Detected == nil && probe.IsTerminal && probe.Error == "" {
			details.Detected = &ttyDetected{Source: probe.Name, Width: probe.Width, Height: probe.Height}
		}
		details.Probes = append(details.Probes, probe)
	}
	return details
}

func probeTTY(f *os.File) ttyProbeResult {
	probe := ttyProbeResult{Name: strings.TrimPrefix(f.Name(), "/dev/")}
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return probe
	}
	probe.IsTerminal = true
	width, height, err := term.GetSize(fd)
	if err != nil {
		probe.Error = err.Error()
		return probe
	}
	probe.Width, probe.Height = width, height
	return probe
}
