package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Tab          *lipgloss.Style
	ActiveTab    *lipgloss.Style
	TabBar       *lipgloss.Style
	Text         *lipgloss.Style
	LineNumber   *lipgloss.Style
	ActiveLine   *lipgloss.Style
	Cursor       *lipgloss.Style
	Status       *lipgloss.Style
	StatusMarker *lipgloss.Style
	Loading      *lipgloss.Style
	Error        *lipgloss.Style
	Info         *lipgloss.Style
	Footer       *lipgloss.Style
	DialogTitle  *lipgloss.Style
	DialogBorder *lipgloss.Style
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	FilterPrompt *lipgloss.Style
	FilterMatch  *lipgloss.Style
}

// palette holds the handful of colours a theme is built from.
type palette struct {
	fg, dim, faint, accent, bg, selBg, warn, err lipgloss.Color
}

const DefaultName = "dark"

var order = []string{"dark", "light", "nord", "solarized"}

var palettes = map[string]palette{
	"dark": {
		fg: "252", dim: "245", faint: "238", accent: "33",
		bg: "235", selBg: "238", warn: "214", err: "196",
	},
	"light": {
		fg: "235", dim: "242", faint: "250", accent: "25",
		bg: "254", selBg: "252", warn: "130", err: "160",
	},
	"nord": {
		fg: "#D8DEE9", dim: "#81A1C1", faint: "#4C566A", accent: "#88C0D0",
		bg: "#2E3440", selBg: "#3B4252", warn: "#EBCB8B", err: "#BF616A",
	},
	"solarized": {
		fg: "#839496", dim: "#586E75", faint: "#073642", accent: "#268BD2",
		bg: "#002B36", selBg: "#073642", warn: "#B58900", err: "#DC322F",
	},
}

var styles = func() map[string]*Styles {
	out := make(map[string]*Styles, len(palettes))
	for name, p := range palettes {
		out[name] = build(p)
	}
	return out
}()

// Names returns the selectable theme names in display order.
func Names() []string {
	return append([]string(nil), order...)
}

// Has reports whether name is a known theme.
func Has(name string) bool {
	_, ok := palettes[name]
	return ok
}

// Get returns the style set for name, falling back to the default theme.
func Get(name string) *Styles {
	if !Has(name) {
		name = DefaultName
	}
	return styles[name]
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return Get(DefaultName)
}

// Next returns the theme after name, wrapping around.
func Next(name string) string {
	for i, n := range order {
		if n == name {
			return order[(i+1)%len(order)]
		}
	}
	return DefaultName
}

func build(p palette) *Styles {
	return &Styles{
		Tab: ptr(
			lipgloss.NewStyle().Foreground(p.dim).Padding(0, 1),
		),
		ActiveTab: ptr(
			lipgloss.NewStyle().Foreground(p.fg).Background(p.selBg).Bold(true).Padding(0, 1),
		),
		TabBar: ptr(
			lipgloss.NewStyle().Foreground(p.faint),
		),
		Text: ptr(
			lipgloss.NewStyle().Foreground(p.fg),
		),
		LineNumber: ptr(
			lipgloss.NewStyle().Foreground(p.faint),
		),
		ActiveLine: ptr(
			lipgloss.NewStyle().Foreground(p.fg).Bold(true),
		),
		Cursor: ptr(
			lipgloss.NewStyle().Foreground(p.bg).Background(p.accent),
		),
		Status: ptr(
			lipgloss.NewStyle().Foreground(p.fg).Background(p.selBg),
		),
		StatusMarker: ptr(
			lipgloss.NewStyle().Foreground(p.warn).Background(p.selBg).Bold(true),
		),
		Loading: ptr(
			lipgloss.NewStyle().Foreground(p.accent).Background(p.selBg).Italic(true),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(p.err).Bold(true),
		),
		Info: ptr(
			lipgloss.NewStyle().Foreground(p.dim),
		),
		Footer: ptr(
			lipgloss.NewStyle().Foreground(p.dim),
		),
		DialogTitle: ptr(
			lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		),
		DialogBorder: ptr(
			lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.accent).Padding(0, 1),
		),
		Item: ptr(
			lipgloss.NewStyle().Foreground(p.dim),
		),
		SelectedItem: ptr(
			lipgloss.NewStyle().Foreground(p.fg).Background(p.selBg).Bold(true),
		),
		FilterPrompt: ptr(
			lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		),
		FilterMatch: ptr(
			lipgloss.NewStyle().Foreground(p.warn).Underline(true),
		),
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
