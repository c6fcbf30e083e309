// Package table lays out rows of text in aligned columns.
package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const gap = "  "

// Format pads every cell to the widest entry of its column. Widths are
// measured in terminal cells. The last column is never padded on the right.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, text := range row {
			if c > 0 {
				b.WriteString(gap)
			}
			pad := widths[c] - ansi.StringWidth(text)
			right := c < len(alignments) && alignments[c] == AlignRight
			if right {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
			}
			b.WriteString(text)
			if !right && c < len(row)-1 {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
			}
		}
		out[i] = b.String()
	}
	return out
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for c, text := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			widths[c] = max(widths[c], ansi.StringWidth(text))
		}
	}
	return widths
}
