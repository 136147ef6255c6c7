// Package classify assigns a structural role to a single line of text.
//
// Classification is purely local: no cross-line context is consulted, and
// reclassifying a padded line yields the same border roles shifted right.
// The block detector and the correction loop both re-run it after every
// applied revision.
package classify

import (
	"strings"
	"unicode"

	"aadc/internal/box"
	"aadc/internal/width"
)

// Kind is the coarse structural category of a line.
type Kind uint8

const (
	// KindBlank is an empty or whitespace-only line.
	KindBlank Kind = iota
	// KindPlain carries no recognized box-drawing structure.
	KindPlain
	// KindWeak has some box glyphs but no strong border shape,
	// typically a content row with a single vertical border.
	KindWeak
	// KindStrong has corners, borders at both edges, or a high
	// box-glyph ratio: top/bottom borders and full content rows.
	KindStrong
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindPlain:
		return "plain"
	case KindWeak:
		return "weak"
	case KindStrong:
		return "strong"
	}
	return "unknown"
}

// Boxy reports whether the line participates in a diagram.
func (k Kind) Boxy() bool {
	return k == KindWeak || k == KindStrong
}

// Classification records everything the detector and corrector need to
// know about one line. Border columns are visual (cell) columns; -1 means
// no border glyph was recognized at that edge.
type Classification struct {
	Kind Kind

	// LeftCol/LeftRune describe the first non-space rune when it is a
	// border glyph.
	LeftCol  int
	LeftRune rune

	// RightCol/RightRune describe the last non-space rune when it is a
	// border glyph. RightClosing marks corners and junctions, which end
	// a box edge rather than separate columns.
	RightCol     int
	RightRune    rune
	RightClosing bool

	// Indent is the number of leading space characters.
	Indent int

	// BoxRunes and TotalRunes count runes of the trimmed line.
	BoxRunes   int
	TotalRunes int

	// Width is the visual width of the line with trailing whitespace
	// removed.
	Width int
}

// Bordered reports whether the line has a recognized right border.
func (c Classification) Bordered() bool {
	return c.RightCol >= 0
}

// Line classifies one tab-expanded line.
func Line(line string) Classification {
	cls := Classification{LeftCol: -1, RightCol: -1}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		cls.Kind = KindBlank
		return cls
	}

	cls.Indent = len(line) - len(strings.TrimLeft(line, " "))

	boxRunes := 0
	totalRunes := 0
	hasCorner := false
	for _, r := range trimmed {
		totalRunes++
		if box.IsBoxChar(r) {
			boxRunes++
		}
		if box.IsCorner(r) {
			hasCorner = true
		}
	}
	cls.BoxRunes = boxRunes
	cls.TotalRunes = totalRunes

	rightTrimmed := strings.TrimRightFunc(line, unicode.IsSpace)
	cls.Width = width.Of(rightTrimmed)

	first := firstRune(trimmed)
	last := lastRune(rightTrimmed)
	startsWithBorder := box.IsBorderChar(first)
	endsWithBorder := box.IsBorderChar(last)

	switch {
	case boxRunes == 0:
		cls.Kind = KindPlain
	case hasCorner || (startsWithBorder && endsWithBorder) || boxRunes*3 >= totalRunes:
		cls.Kind = KindStrong
	default:
		cls.Kind = KindWeak
	}

	if !cls.Kind.Boxy() {
		return cls
	}

	if startsWithBorder {
		cls.LeftRune = first
		cls.LeftCol = width.Of(line[:strings.IndexFunc(line, notSpace)])
	}
	if endsWithBorder {
		cls.RightRune = last
		cls.RightCol = cls.Width - width.Rune(last)
		cls.RightClosing = box.IsCorner(last) || box.IsJunction(last)
	}
	return cls
}

// Lines classifies every line of a document.
func Lines(lines []string) []Classification {
	out := make([]Classification, len(lines))
	for i, line := range lines {
		out[i] = Line(line)
	}
	return out
}

func notSpace(r rune) bool {
	return !unicode.IsSpace(r)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}
