package correct

import (
	"strings"

	"aadc/internal/classify"
	"aadc/internal/detect"
	"aadc/internal/width"
)

// RevisionKind distinguishes the two edit shapes the generator produces.
type RevisionKind uint8

const (
	// RevisionPad inserts whitespace immediately before an existing
	// right-border glyph.
	RevisionPad RevisionKind = iota
	// RevisionSynthesize appends padding plus a border glyph to a boxy
	// line that has no recognized right border.
	RevisionSynthesize
)

func (k RevisionKind) String() string {
	if k == RevisionSynthesize {
		return "synthesize"
	}
	return "pad"
}

// Revision is a proposed insert-only edit. LineIndex is a document line
// index; Column is the visual column of the insertion point. Revisions
// are ephemeral: generated, scored, optionally applied, then discarded
// each iteration.
type Revision struct {
	LineIndex int
	Column    int
	Text      string
	Kind      RevisionKind
	Score     float64
}

// Apply splices the revision's text into the line at its column. The
// insertion point always sits at a rune boundary just past the last
// non-space rune, so pre-existing characters — including any trailing
// whitespace — survive untouched.
func (rev Revision) Apply(lines []string) {
	line := lines[rev.LineIndex]
	off := width.ByteOffsetAtColumn(line, rev.Column)
	lines[rev.LineIndex] = line[:off] + rev.Text + line[off:]
}

// generate proposes one revision per line of the block whose right border
// sits left of target. Bordered lines get a whitespace pad; borderless
// boxy lines get a synthesized border in the block's dominant style, at
// lower confidence. Lines already at the target produce nothing.
func generate(classes []classify.Classification, block detect.Block, target int, borderRune rune, weights ScoreWeights) []Revision {
	blockClasses := classes[block.Start:block.End]
	dominantLeft := detect.DominantLeftCol(blockClasses)

	revisions := make([]Revision, 0)
	for i, cls := range blockClasses {
		lineIdx := block.Start + i

		switch {
		case cls.Bordered():
			gap := target - cls.RightCol
			if gap <= 0 {
				continue
			}
			revisions = append(revisions, Revision{
				LineIndex: lineIdx,
				Column:    cls.RightCol,
				Text:      strings.Repeat(" ", gap),
				Kind:      RevisionPad,
				Score:     padScore(cls, gap, dominantLeft, weights),
			})
		case cls.Kind.Boxy():
			gap := target - cls.Width
			if gap < 0 {
				gap = 0
			}
			revisions = append(revisions, Revision{
				LineIndex: lineIdx,
				Column:    cls.Width,
				Text:      strings.Repeat(" ", gap) + string(borderRune),
				Kind:      RevisionSynthesize,
				Score:     synthesizeScore(cls, dominantLeft, weights),
			})
		}
	}
	return revisions
}

func padScore(cls classify.Classification, gap int, dominantLeft int, weights ScoreWeights) float64 {
	penalty := float64(gap) * weights.GapPenaltyPerColumn
	if penalty > weights.GapPenaltyCap {
		penalty = weights.GapPenaltyCap
	}
	score := weights.PadBase - penalty
	if cls.Kind == classify.KindStrong {
		score += weights.StrongBonus
	}
	score -= marginPenalty(cls, dominantLeft, weights)
	return clampScore(score)
}

func synthesizeScore(cls classify.Classification, dominantLeft int, weights ScoreWeights) float64 {
	score := weights.SynthesizeBase
	if cls.Kind == classify.KindStrong {
		score += weights.SynthesizeStrongBonus
	} else {
		score += weights.SynthesizeWeakBonus
	}
	score -= marginPenalty(cls, dominantLeft, weights)
	return clampScore(score)
}

func marginPenalty(cls classify.Classification, dominantLeft int, weights ScoreWeights) float64 {
	if dominantLeft < 0 || cls.LeftCol < 0 || cls.LeftCol == dominantLeft {
		return 0
	}
	return weights.MarginMismatchPenalty
}
