package correct

// ScoreWeights are the named knobs of the revision scorer. No single
// weighting is canonical; the defaults below favour small whitespace pads
// on structurally strong lines and distrust synthesized borders. Config
// files may override any field.
type ScoreWeights struct {
	// PadBase is the starting score for padding before an existing
	// right border.
	PadBase float64 `toml:"pad_base"`

	// GapPenaltyPerColumn is subtracted per column of requested padding,
	// capped at GapPenaltyCap. Very large insertions on an otherwise
	// short line are likely misdetections.
	GapPenaltyPerColumn float64 `toml:"gap_penalty_per_column"`
	GapPenaltyCap       float64 `toml:"gap_penalty_cap"`

	// StrongBonus rewards lines with strong border structure.
	StrongBonus float64 `toml:"strong_bonus"`

	// MarginMismatchPenalty is subtracted when the line's left border
	// does not sit at the block's dominant left margin.
	MarginMismatchPenalty float64 `toml:"margin_mismatch_penalty"`

	// SynthesizeBase is the starting score for adding a border where
	// none exists; the strong/weak bonuses stack on top.
	SynthesizeBase        float64 `toml:"synthesize_base"`
	SynthesizeStrongBonus float64 `toml:"synthesize_strong_bonus"`
	SynthesizeWeakBonus   float64 `toml:"synthesize_weak_bonus"`
}

// DefaultScoreWeights returns the stock weighting.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		PadBase:               0.8,
		GapPenaltyPerColumn:   0.1,
		GapPenaltyCap:         0.5,
		StrongBonus:           0.2,
		MarginMismatchPenalty: 0.15,
		SynthesizeBase:        0.5,
		SynthesizeStrongBonus: 0.2,
		SynthesizeWeakBonus:   0.1,
	}
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
