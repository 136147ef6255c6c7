package source

import (
	"strings"

	"aadc/internal/width"
)

// DefaultTabWidth is the stock tab stop used when no width is configured.
const DefaultTabWidth = 4

// ExpandTabs replaces each tab with spaces up to the next tab stop.
// Classification and width measurement assume this pre-pass already ran;
// it is applied exactly once per line, before any analysis.
func ExpandTabs(line string, tabWidth int) string {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	if !strings.ContainsRune(line, '\t') {
		return line
	}

	var sb strings.Builder
	sb.Grow(len(line) + tabWidth)
	col := 0
	for _, r := range line {
		if r == '\t' {
			spaces := tabWidth - col%tabWidth
			for i := 0; i < spaces; i++ {
				sb.WriteByte(' ')
			}
			col += spaces
			continue
		}
		sb.WriteRune(r)
		col += width.Rune(r)
	}
	return sb.String()
}

// ExpandAll tab-expands every line, returning a fresh slice.
func ExpandAll(lines []string, tabWidth int) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ExpandTabs(line, tabWidth)
	}
	return out
}
