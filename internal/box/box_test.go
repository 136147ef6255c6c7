package box

import "testing"

func TestCornerRunes(t *testing.T) {
	for _, r := range "+┌┐└┘╔╗╚╝╭╮╯╰" {
		if !IsCorner(r) {
			t.Errorf("expected %q to be a corner", r)
		}
	}
	for _, r := range "-|a ─┼" {
		if IsCorner(r) {
			t.Errorf("expected %q not to be a corner", r)
		}
	}
}

func TestHorizontalFillRunes(t *testing.T) {
	for _, r := range "-~=─━═╌╍┄┅┈┉" {
		if !IsHorizontalFill(r) {
			t.Errorf("expected %q to be horizontal fill", r)
		}
	}
	for _, r := range "|+a │" {
		if IsHorizontalFill(r) {
			t.Errorf("expected %q not to be horizontal fill", r)
		}
	}
}

func TestVerticalBorderRunes(t *testing.T) {
	for _, r := range "|│┃║╎╏┆┇┊┋" {
		if !IsVerticalBorder(r) {
			t.Errorf("expected %q to be a vertical border", r)
		}
	}
	for _, r := range "-+a ─" {
		if IsVerticalBorder(r) {
			t.Errorf("expected %q not to be a vertical border", r)
		}
	}
}

func TestJunctionRunes(t *testing.T) {
	for _, r := range "┬┴├┤┼╦╩╠╣╬╤╧╟╢╫╪" {
		if !IsJunction(r) {
			t.Errorf("expected %q to be a junction", r)
		}
	}
	if IsJunction('+') {
		t.Error("ASCII plus is a corner, not a junction")
	}
	if IsJunction('┌') {
		t.Error("corner is not a junction")
	}
}

func TestEveryGlyphHasExactlyOneRole(t *testing.T) {
	for r, role := range roles {
		n := 0
		for _, bit := range []Role{RoleCorner, RoleHorizontal, RoleVertical, RoleJunction} {
			if role&bit != 0 {
				n++
			}
		}
		if n != 1 {
			t.Errorf("rune %q maps to %d roles, want exactly 1", r, n)
		}
	}
}

func TestBorderChar(t *testing.T) {
	for _, r := range "|│║+┐╝┤╣╢" {
		if !IsBorderChar(r) {
			t.Errorf("expected %q to be a border char", r)
		}
	}
	for _, r := range "-a ─" {
		if IsBorderChar(r) {
			t.Errorf("expected %q not to be a border char", r)
		}
	}
}

func TestBoxCharNegative(t *testing.T) {
	for _, r := range "a0 \n中" {
		if IsBoxChar(r) {
			t.Errorf("expected %q not to be a box char", r)
		}
	}
}

func TestDominantVertical(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  rune
	}{
		{"ascii", []string{"| hello |", "| world |"}, '|'},
		{"unicode light", []string{"│ hello │", "│ world │"}, '│'},
		{"unicode double", []string{"║ hello ║", "║ world ║"}, '║'},
		{"mixed prefers most common", []string{"│ a │", "│ b │", "│ c │", "| d |"}, '│'},
		{"empty defaults to pipe", nil, '|'},
		{"no borders defaults to pipe", []string{"hello world"}, '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DominantVertical(tt.lines); got != tt.want {
				t.Fatalf("DominantVertical = %q, want %q", got, tt.want)
			}
		})
	}
}
