package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/tabedit/internal/app"
	"github.com/atomicstack/tabedit/internal/theme"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App        app.Config
	Logging    Logging
	ConfigFile string
	Flags      map[string]string
	// Args holds the command line as given.
	Args []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envFile        = "TABEDIT_FILE"
	envWidth       = "TABEDIT_WIDTH"
	envHeight      = "TABEDIT_HEIGHT"
	envTheme       = "TABEDIT_THEME"
	envTrace       = "TABEDIT_TRACE"
	envLogFile     = "TABEDIT_LOG_FILE"
	envConfig      = "TABEDIT_CONFIG"
	envStateDir    = "TABEDIT_STATE_DIR"
	envWatch       = "TABEDIT_WATCH"
	envTabWidth    = "TABEDIT_TAB_WIDTH"
	envLineNumbers = "TABEDIT_LINE_NUMBERS"

	envXDGConfig = "XDG_CONFIG_HOME"
	envXDGState  = "XDG_STATE_HOME"
)

const (
	defaultTabWidth = 4
	maxTabWidth     = 16
)

// BindFlags declares every setting on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP("file", "f", "", "file to open at startup")
	fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	fs.String("theme", theme.DefaultName, "colour theme ("+strings.Join(theme.Names(), ", ")+")")
	fs.Bool("trace", false, "enable verbose JSON trace logging")
	fs.String("log-file", "", "path to the log file")
	fs.StringP("config", "c", "", "path to a YAML config file")
	fs.String("state-dir", "", "directory for persistent state such as recent files")
	fs.Bool("watch", true, "flag documents whose file changes on disk")
	fs.Int("tab-width", defaultTabWidth, "columns per tab stop")
	fs.Bool("line-numbers", true, "show the line number gutter")
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("tabedit", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := FromFlags(fs, environ)
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// FromFlags resolves the settings of a parsed flag set. Explicit flags win
// over TABEDIT_* environment variables, which win over the config file.
// Positional arguments are opened after the configured file.
func FromFlags(fs *pflag.FlagSet, environ []string) (Config, error) {
	env := parseEnv(environ)

	configFile, explicit := flagOrEnv(fs, env, "config", envConfig)
	v := viper.New()
	for _, name := range []string{"file", "width", "height", "theme", "trace", "log-file", "state-dir", "watch", "tab-width", "line-numbers"} {
		if f := fs.Lookup(name); f != nil {
			v.SetDefault(name, f.DefValue)
		}
	}
	used, err := readConfigFile(v, env, configFile, explicit)
	if err != nil {
		return Config{}, err
	}

	file := stringSetting(fs, env, v, "file", envFile)
	width, err := intSetting(fs, env, v, "width", envWidth)
	if err != nil {
		return Config{}, err
	}
	height, err := intSetting(fs, env, v, "height", envHeight)
	if err != nil {
		return Config{}, err
	}
	tabWidth, err := intSetting(fs, env, v, "tab-width", envTabWidth)
	if err != nil {
		return Config{}, err
	}
	themeName := stringSetting(fs, env, v, "theme", envTheme)
	trace := boolSetting(fs, env, v, "trace", envTrace)
	logFile := stringSetting(fs, env, v, "log-file", envLogFile)
	stateDir := stringSetting(fs, env, v, "state-dir", envStateDir)
	watch := boolSetting(fs, env, v, "watch", envWatch)
	lineNumbers := boolSetting(fs, env, v, "line-numbers", envLineNumbers)

	if stateDir == "" {
		stateDir = defaultStateDir(env)
	}
	var paths []string
	for _, p := range append([]string{file}, fs.Args()...) {
		if strings.TrimSpace(p) == "" {
			continue
		}
		paths = append(paths, absPath(expand(p)))
	}

	cfg := Config{
		App: app.Config{
			Paths:       paths,
			Width:       width,
			Height:      height,
			Theme:       themeName,
			StateDir:    expand(stateDir),
			Watch:       watch,
			TabWidth:    tabWidth,
			LineNumbers: lineNumbers,
		},
		Logging: Logging{
			FilePath: expand(logFile),
			Trace:    trace,
		},
		ConfigFile: used,
		Flags: map[string]string{
			"file":        file,
			"width":       strconv.Itoa(width),
			"height":      strconv.Itoa(height),
			"theme":       themeName,
			"trace":       strconv.FormatBool(trace),
			"logFile":     logFile,
			"config":      used,
			"stateDir":    stateDir,
			"watch":       strconv.FormatBool(watch),
			"tabWidth":    strconv.Itoa(tabWidth),
			"lineNumbers": strconv.FormatBool(lineNumbers),
		},
		Args: fs.Args(),
	}
	return cfg, nil
}

// readConfigFile loads path into v. Without an explicit path the default
// location is searched and a missing file is not an error.
func readConfigFile(v *viper.Viper, env map[string]string, path string, explicit bool) (string, error) {
	if explicit {
		v.SetConfigFile(expand(path))
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigDir(env))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("read config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

func defaultConfigDir(env map[string]string) string {
	if dir := env[envXDGConfig]; dir != "" {
		return filepath.Join(dir, "tabedit")
	}
	return expand("~/.config/tabedit")
}

func defaultStateDir(env map[string]string) string {
	if dir := env[envXDGState]; dir != "" {
		return filepath.Join(dir, "tabedit")
	}
	return "~/.local/state/tabedit"
}

func expand(path string) string {
	if path == "" {
		return ""
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func flagOrEnv(fs *pflag.FlagSet, env map[string]string, name, key string) (string, bool) {
	if fs.Changed(name) {
		value, _ := fs.GetString(name)
		return value, value != ""
	}
	value := envOrDefault(env, key, "")
	return value, value != ""
}

func stringSetting(fs *pflag.FlagSet, env map[string]string, v *viper.Viper, name, key string) string {
	if fs.Changed(name) {
		value, _ := fs.GetString(name)
		return value
	}
	return envOrDefault(env, key, v.GetString(name))
}

func intSetting(fs *pflag.FlagSet, env map[string]string, v *viper.Viper, name, key string) (int, error) {
	if fs.Changed(name) {
		return fs.GetInt(name)
	}
	fallback, err := strconv.Atoi(strings.TrimSpace(v.GetString(name)))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q in config", name, v.GetString(name))
	}
	return envOrInt(env, key, fallback), nil
}

func boolSetting(fs *pflag.FlagSet, env map[string]string, v *viper.Viper, name, key string) bool {
	if fs.Changed(name) {
		value, _ := fs.GetBool(name)
		return value
	}
	return envOrBool(env, key, v.GetBool(name))
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate rejects settings the editor cannot run with.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.TabWidth < 1 || cfg.App.TabWidth > maxTabWidth {
		return fmt.Errorf("tab-width must be between 1 and %d (got %d)", maxTabWidth, cfg.App.TabWidth)
	}
	if !theme.Has(cfg.App.Theme) {
		return fmt.Errorf("unknown theme %q (available: %s)", cfg.App.Theme, strings.Join(theme.Names(), ", "))
	}
	return nil
}
