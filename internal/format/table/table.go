// Package table pads row cells into aligned columns for fixed-width menu
// rows (platform and layer listings).
package table

import "strings"

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	return FormatWidth(rows, alignments, 0)
}

// FormatWidth behaves like Format but additionally fits every rendered row
// into maxWidth runes by shrinking the first (left-aligned) column. A
// maxWidth of zero disables fitting.
func FormatWidth(rows [][]string, alignments []Alignment, maxWidth int) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if w := cellWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	if maxWidth > 0 && colCount > 1 {
		total := (colCount - 1) * 2
		for _, w := range widths {
			total += w
		}
		if excess := total - maxWidth; excess > 0 && widths[0] > excess {
			widths[0] -= excess
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			if cellWidth(cell) > widths[c] {
				cell = shrinkCell(cell, widths[c])
			}
			pad := widths[c] - cellWidth(cell)
			if pad < 0 {
				pad = 0
			}
			if c < len(alignments) && alignments[c] == AlignRight {
				writeSpaces(&b, pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				writeSpaces(&b, pad)
			}
		}
		out[i] = b.String()
	}
	return out
}

func shrinkCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

func cellWidth(text string) int {
	return len([]rune(text))
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		b.WriteByte(' ')
	}
}
