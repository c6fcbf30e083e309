package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tabedit/internal/document"
	"github.com/atomicstack/tabedit/internal/format/table"
	"github.com/atomicstack/tabedit/internal/logging/events"
	uistate "github.com/atomicstack/tabedit/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// tab bar, status line and message line
	chromeRows = 3

	pathDisplayLimit = 60
	pathDisplayTail  = 40
	infoTimeout      = 5 * time.Second
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text is already styled; truncate ANSI-aware
}

// cell is one display column group of a source line. A tab expands to
// several cells; a wide rune occupies one cell of width two.
type cell struct {
	text  string
	width int
	rune  int
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.viewWidth()
	lines := make([]styledLine, 0, m.viewHeight())
	lines = append(lines, styledLine{text: m.renderTabBar(), raw: true})
	switch {
	case m.dialog != nil:
		lines = append(lines, m.dialogLines()...)
	case m.switcher != nil:
		lines = append(lines, m.switcherLines()...)
	default:
		lines = append(lines, m.editorLines()...)
	}
	lines = append(lines, styledLine{text: m.statusLine(), raw: true})
	lines = append(lines, m.messageLine())
	return renderLines(applyWidth(lines, width))
}

func (m *Model) viewWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m *Model) viewHeight() int {
	if m.height > 0 {
		return m.height
	}
	return defaultHeight
}

// editorRows is the number of text rows the editor pane shows.
func (m *Model) editorRows() int {
	rows := m.viewHeight() - chromeRows
	if rows < 1 {
		return 1
	}
	return rows
}

// overlayHeight is the space given to the dialog and switcher overlays,
// which replace the editor pane while open.
func (m *Model) overlayHeight() int {
	return m.editorRows()
}

func (m *Model) gutterWidth(doc *document.Document) int {
	if !m.lineNumbers {
		return 0
	}
	digits := len(strconv.Itoa(doc.Buffer.LineCount()))
	if digits < 3 {
		digits = 3
	}
	return digits + 1
}

func (m *Model) textWidth(doc *document.Document) int {
	w := m.viewWidth() - m.gutterWidth(doc)
	if w < 1 {
		return 1
	}
	return w
}

// scrollToCursor keeps the active document's cursor inside its viewport.
func (m *Model) scrollToCursor() {
	doc := m.editor.Active()
	if doc == nil {
		return
	}
	v := m.view(doc.ID)
	cur := doc.Buffer.Cursor()
	rows := m.editorRows()
	if cur.Row < v.top {
		v.top = cur.Row
	}
	if cur.Row >= v.top+rows {
		v.top = cur.Row - rows + 1
	}
	col := displayCol(layoutLine(doc.Buffer.Line(cur.Row), m.tabWidth), cur.Col)
	width := m.textWidth(doc)
	if col < v.left {
		v.left = col
	}
	// leave room for the cursor cell at end of line
	if col >= v.left+width {
		v.left = col - width + 1
	}
}

func layoutLine(line string, tabWidth int) []cell {
	cells := make([]cell, 0, len(line))
	col := 0
	for i, r := range []rune(line) {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			for k := 0; k < n; k++ {
				cells = append(cells, cell{text: " ", width: 1, rune: i})
			}
			col += n
			continue
		}
		s := string(r)
		w := ansi.StringWidth(s)
		if w == 0 {
			if len(cells) > 0 && cells[len(cells)-1].rune == i-1 {
				cells[len(cells)-1].text += s
				continue
			}
			// control characters render as a placeholder
			s, w = "?", 1
		}
		cells = append(cells, cell{text: s, width: w, rune: i})
		col += w
	}
	return cells
}

// displayCol converts a rune column into a display column.
func displayCol(cells []cell, runeCol int) int {
	col := 0
	for _, c := range cells {
		if c.rune >= runeCol {
			break
		}
		col += c.width
	}
	return col
}

// renderCells draws the visible window [left, left+width) of a line. When
// cursor is not negative the cell holding that rune, or a trailing blank at
// end of line, is drawn with the cursor style.
func (m *Model) renderCells(cells []cell, left, width, cursor int, base *lipgloss.Style) string {
	var out, run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			out.WriteString(base.Render(run.String()))
			run.Reset()
		}
	}
	col, used := 0, 0
	cursorDrawn := false
	for _, c := range cells {
		start := col
		col += c.width
		if start < left {
			if col > left {
				// wide rune cut by the left edge
				run.WriteString(strings.Repeat(" ", col-left))
				used += col - left
			}
			continue
		}
		if used+c.width > width {
			break
		}
		if c.rune == cursor && !cursorDrawn {
			flush()
			out.WriteString(m.styles.Cursor.Render(c.text))
			cursorDrawn = true
		} else {
			run.WriteString(c.text)
		}
		used += c.width
	}
	if cursor >= 0 && !cursorDrawn && used < width {
		flush()
		out.WriteString(m.styles.Cursor.Render(" "))
		used++
	}
	flush()
	if used < width {
		out.WriteString(strings.Repeat(" ", width-used))
	}
	return out.String()
}

func (m *Model) editorLines() []styledLine {
	doc := m.editor.Active()
	v := m.view(doc.ID)
	rows := m.editorRows()
	width := m.textWidth(doc)
	gutter := m.gutterWidth(doc)
	cur := doc.Buffer.Cursor()
	lines := make([]styledLine, 0, rows)
	for i := 0; i < rows; i++ {
		row := v.top + i
		if row >= doc.Buffer.LineCount() {
			lines = append(lines, styledLine{text: m.styles.LineNumber.Render(padLeft("~", gutter)), raw: true})
			continue
		}
		var b strings.Builder
		if gutter > 0 {
			b.WriteString(m.styles.LineNumber.Render(padLeft(strconv.Itoa(row+1)+" ", gutter)))
		}
		cursor := -1
		style := m.styles.Text
		if row == cur.Row {
			style = m.styles.ActiveLine
			if !doc.Loading {
				cursor = cur.Col
			}
		}
		cells := layoutLine(doc.Buffer.Line(row), m.tabWidth)
		b.WriteString(m.renderCells(cells, v.left, width, cursor, style))
		lines = append(lines, styledLine{text: b.String(), raw: true})
	}
	return lines
}

func padLeft(text string, width int) string {
	w := ansi.StringWidth(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", width-w) + text
}

// pathDisplay shortens long paths to their last characters.
func pathDisplay(path string) string {
	if path == "" {
		return "New file"
	}
	runes := []rune(path)
	if len(runes) > pathDisplayLimit {
		return "..." + string(runes[len(runes)-pathDisplayTail:])
	}
	return path
}

func (m *Model) statusLine() string {
	doc := m.editor.Active()
	left := m.styles.Status.Render(" " + pathDisplay(doc.Path) + " ")
	var markers []string
	if doc.Loading {
		markers = append(markers, m.styles.Loading.Render("[loading]"))
	}
	if doc.Dirty {
		markers = append(markers, m.styles.StatusMarker.Render("[modified]"))
	}
	if doc.Stale {
		markers = append(markers, m.styles.StatusMarker.Render("[changed on disk]"))
	}
	if len(markers) > 0 {
		left += strings.Join(markers, m.styles.Status.Render(" ")) + m.styles.Status.Render(" ")
	}
	cur := doc.Buffer.Cursor()
	right := m.styles.Status.Render(fmt.Sprintf(" Ln %d, Col %d  %s ", cur.Row+1, cur.Col+1, m.editor.Theme()))
	gap := m.viewWidth() - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left + right
	}
	return left + m.styles.Status.Render(strings.Repeat(" ", gap)) + right
}

func (m *Model) messageLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: "Error: " + m.errMsg, style: m.styles.Error}
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: m.styles.Info}
	}
	if m.showFooter {
		return styledLine{text: m.footerText(), style: m.styles.Footer}
	}
	return styledLine{}
}

func (m *Model) footerText() string {
	bindings := m.keys.helpBindings()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if m.bindingDisabled(b.Help().Desc) {
			continue
		}
		help := b.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

// bindingDisabled mirrors the gates the key handler applies.
func (m *Model) bindingDisabled(desc string) bool {
	switch desc {
	case "open":
		return !m.editor.CanOpen()
	case "save":
		return !m.editor.CanSave()
	}
	return false
}

func (m *Model) overlayBox(title string, body []string) []styledLine {
	height := m.overlayHeight()
	border := *m.styles.DialogBorder
	frameW, frameH := border.GetFrameSize()
	innerW := m.viewWidth() - frameW
	if innerW < 1 {
		innerW = 1
	}
	content := make([]string, 0, len(body)+1)
	content = append(content, m.styles.DialogTitle.Render(truncateText(title, innerW)))
	for _, line := range body {
		if lipgloss.Width(line) > innerW {
			line = truncate.StringWithTail(line, uint(innerW), "…")
		}
		content = append(content, line)
	}
	if limit := height - frameH; limit > 0 && len(content) > limit {
		content = content[:limit]
	}
	box := border.Width(innerW + border.GetHorizontalPadding()).Render(strings.Join(content, "\n"))
	rows := strings.Split(box, "\n")
	lines := make([]styledLine, 0, height)
	for _, row := range rows {
		if len(lines) == height {
			break
		}
		lines = append(lines, styledLine{text: row, raw: true})
	}
	for len(lines) < height {
		lines = append(lines, styledLine{})
	}
	return lines
}

func (m *Model) dialogLines() []styledLine {
	body := strings.Split(m.dialog.view(), "\n")
	body = append(body, "", "esc cancel")
	return m.overlayBox(m.dialog.title(), body)
}

func (m *Model) switcherLines() []styledLine {
	l := m.switcher.level
	l.EnsureCursorVisible(m.switcherRows())
	body := []string{m.filterPrompt(l)}
	if len(l.Items) == 0 {
		msg := "(no entries)"
		if l.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", l.Filter)
		}
		body = append(body, m.styles.Info.Render(msg))
		return m.overlayBox(l.Title, body)
	}
	start := l.ViewportOffset
	end := start + m.switcherRows()
	if end > len(l.Items) {
		end = len(l.Items)
	}
	rows := make([][]string, 0, end-start)
	for _, item := range l.Items[start:end] {
		rows = append(rows, switcherRow(item))
	}
	for i, text := range table.Format(rows, nil) {
		body = append(body, m.switcherItemLine(text, start+i == l.Cursor))
	}
	return m.overlayBox(l.Title+" "+switcherPosition(l), body)
}

func (m *Model) filterPrompt(l *uistate.Level) string {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	before := string(runes[:pos])
	at, after := " ", ""
	if pos < len(runes) {
		at = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return m.styles.FilterPrompt.Render("> ") + before + m.styles.Cursor.Render(at) + after
}

func switcherRow(item uistate.Item) []string {
	kind := "tab"
	if item.Kind == uistate.ItemRecent {
		kind = "recent"
	}
	detail := item.Detail
	if detail == item.Label {
		detail = ""
	}
	return []string{kind, item.Label, detail}
}

func (m *Model) switcherItemLine(text string, selected bool) string {
	if selected {
		return m.styles.SelectedItem.Render("> " + text)
	}
	return m.styles.Item.Render("  " + text)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	if m.dialog != nil {
		m.dialog.resize(m.viewWidth(), m.overlayHeight())
	}
	m.scrollToCursor()
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTimeout)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.String(text, uint(width))
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
