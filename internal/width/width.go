// Package width measures text in terminal cells.
//
// Every downstream column computation goes through this package so that
// wide (CJK, emoji) and zero-width runes are counted the same way
// everywhere. Tabs must be expanded before any of these functions are
// called; the package assumes no control characters remain.
package width

import (
	"github.com/mattn/go-runewidth"
)

// Of returns the visual width of s in terminal cells. ASCII counts 1 per
// rune, wide East-Asian runes and emoji count 2, combining marks count 0.
func Of(s string) int {
	return runewidth.StringWidth(s)
}

// Rune returns the cell width of a single rune.
func Rune(r rune) int {
	return runewidth.RuneWidth(r)
}

// Prefix returns the visual width of s up to (not including) byte offset
// off. Offsets inside a rune are treated as the start of that rune.
func Prefix(s string, off int) int {
	if off <= 0 {
		return 0
	}
	if off > len(s) {
		off = len(s)
	}
	w := 0
	for i, r := range s {
		if i >= off {
			break
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

// ByteOffsetAtColumn converts a visual column into the byte offset of the
// rune occupying that column. Callers use it to turn a target column into
// an insertion point. Zero-width runes sitting at the stop position are
// combining marks that belong to the preceding base rune, so the offset
// lands past them, on the next spacing rune. When col lies beyond the end
// of s, len(s) is returned.
func ByteOffsetAtColumn(s string, col int) int {
	if col <= 0 {
		return 0
	}
	w := 0
	for i, r := range s {
		if w >= col && runewidth.RuneWidth(r) > 0 {
			return i
		}
		w += runewidth.RuneWidth(r)
	}
	return len(s)
}
