package box

// Role classifies the structural function of a box-drawing glyph.
// Every recognized glyph maps to exactly one role; everything else is plain
// text and carries no role at all.
type Role uint8

const (
	// RoleCorner is a box corner piece (+ ┌ ╔ ╭ ...).
	RoleCorner Role = 1 << iota
	// RoleHorizontal is a horizontal fill rune (- ─ ═ ...).
	RoleHorizontal
	// RoleVertical is a vertical border rune (| │ ║ ...).
	RoleVertical
	// RoleJunction is a T-junction or cross rune (┬ ┼ ╬ ...).
	RoleJunction

	// RoleNone marks a rune with no box-drawing function.
	RoleNone Role = 0
)

func (r Role) String() string {
	switch r {
	case RoleCorner:
		return "corner"
	case RoleHorizontal:
		return "horizontal"
	case RoleVertical:
		return "vertical"
	case RoleJunction:
		return "junction"
	}
	return "none"
}

// roles is the fixed taxonomy table covering both the ASCII set and the
// Unicode box-drawing range (light/heavy/double lines, rounded corners,
// dashed variants, all junction forms).
var roles = map[rune]Role{
	// corners
	'+': RoleCorner,
	'┌': RoleCorner, '┐': RoleCorner, '└': RoleCorner, '┘': RoleCorner,
	'╔': RoleCorner, '╗': RoleCorner, '╚': RoleCorner, '╝': RoleCorner,
	'╭': RoleCorner, '╮': RoleCorner, '╯': RoleCorner, '╰': RoleCorner,

	// horizontal fills
	'-': RoleHorizontal, '~': RoleHorizontal, '=': RoleHorizontal,
	'─': RoleHorizontal, '━': RoleHorizontal, '═': RoleHorizontal,
	'╌': RoleHorizontal, '╍': RoleHorizontal,
	'┄': RoleHorizontal, '┅': RoleHorizontal,
	'┈': RoleHorizontal, '┉': RoleHorizontal,

	// vertical borders
	'|': RoleVertical,
	'│': RoleVertical, '┃': RoleVertical, '║': RoleVertical,
	'╎': RoleVertical, '╏': RoleVertical,
	'┆': RoleVertical, '┇': RoleVertical,
	'┊': RoleVertical, '┋': RoleVertical,

	// junctions
	'┬': RoleJunction, '┴': RoleJunction, '├': RoleJunction, '┤': RoleJunction,
	'┼': RoleJunction,
	'╦': RoleJunction, '╩': RoleJunction, '╠': RoleJunction, '╣': RoleJunction,
	'╬': RoleJunction,
	'╤': RoleJunction, '╧': RoleJunction, '╟': RoleJunction, '╢': RoleJunction,
	'╫': RoleJunction, '╪': RoleJunction,
}

// Of returns the taxonomy role of a rune, RoleNone for plain text.
func Of(r rune) Role {
	return roles[r]
}

// IsCorner reports whether r is a corner piece.
func IsCorner(r rune) bool { return roles[r] == RoleCorner }

// IsHorizontalFill reports whether r is a horizontal border fill.
func IsHorizontalFill(r rune) bool { return roles[r] == RoleHorizontal }

// IsVerticalBorder reports whether r is a vertical border.
func IsVerticalBorder(r rune) bool { return roles[r] == RoleVertical }

// IsJunction reports whether r is a junction.
func IsJunction(r rune) bool { return roles[r] == RoleJunction }

// IsBoxChar reports whether r plays any part in box drawing.
func IsBoxChar(r rune) bool { return roles[r] != RoleNone }

// IsBorderChar reports whether r can terminate a line border.
// Horizontal fills cannot: a line never ends its border with a dash.
func IsBorderChar(r rune) bool {
	switch roles[r] {
	case RoleVertical, RoleCorner, RoleJunction:
		return true
	}
	return false
}

// DominantVertical returns the most frequent vertical-border rune across
// lines, falling back to the ASCII pipe when none occurs. Used when a
// border has to be synthesized so it matches the surrounding style.
func DominantVertical(lines []string) rune {
	counts := make(map[rune]int)
	for _, line := range lines {
		for _, r := range line {
			if IsVerticalBorder(r) {
				counts[r]++
			}
		}
	}

	best := '|'
	bestCount := 0
	for r, n := range counts {
		if n > bestCount || (n == bestCount && r < best) {
			best = r
			bestCount = n
		}
	}
	return best
}
