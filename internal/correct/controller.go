// Package correct drives a diagram block toward a stable, aligned state.
//
// The controller is a bounded fixed-point loop: each iteration re-resolves
// the target column from the block's current lines, generates and scores
// candidate revisions, filters them by the acceptance threshold, and
// applies the survivors. Fixing one line can reveal a new maximum
// right-border column, so a single pass is not enough; the loop re-verifies
// until an iteration accepts nothing or the cap is hit. All edits are
// insert-only: a line only ever grows.
package correct

import (
	"aadc/internal/box"
	"aadc/internal/classify"
	"aadc/internal/detect"
	"aadc/internal/report"
)

// DefaultMaxIterations bounds the correction loop per block.
const DefaultMaxIterations = 10

// DefaultMinScore is the stock acceptance threshold for revisions.
const DefaultMinScore = 0.5

// Options configure a correction run.
type Options struct {
	// MinScore is the acceptance threshold: revisions scoring below it
	// are recorded as skipped candidates and never applied.
	MinScore float64

	// MaxIterations caps the apply/re-analyze loop.
	MaxIterations int

	Weights ScoreWeights
}

// DefaultOptions returns the stock thresholds.
func DefaultOptions() Options {
	return Options{
		MinScore:      DefaultMinScore,
		MaxIterations: DefaultMaxIterations,
		Weights:       DefaultScoreWeights(),
	}
}

// Block corrects one detected block in place. lines is the whole document;
// only lines within block's range are touched. The returned report carries
// the iteration trace for the presentation layers.
func Block(lines []string, block detect.Block, opts Options) report.BlockReport {
	rep := report.BlockReport{
		Start:      block.Start,
		End:        block.End,
		Confidence: block.Confidence,
		Status:     report.StatusConverged,
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}

	blockLines := lines[block.Start:block.End]

	for rep.Iterations < opts.MaxIterations {
		classes := make([]classify.Classification, len(lines))
		for i := block.Start; i < block.End; i++ {
			classes[i] = classify.Line(lines[i])
		}

		target, ok := targetColumn(classes[block.Start:block.End])
		if !ok {
			// Nothing to align to. Only possible before the first
			// applied revision: padding preserves borders and
			// synthesis adds them.
			if rep.Iterations == 0 && rep.Revisions() == 0 {
				rep.Status = report.StatusNoBorderLine
			}
			return rep
		}

		borderRune := box.DominantVertical(blockLines)
		revisions := generate(classes, block, target, borderRune, opts.Weights)

		accepted := revisions[:0]
		for _, rev := range revisions {
			if rev.Score >= opts.MinScore {
				accepted = append(accepted, rev)
			} else {
				rep.SkippedCandidates++
			}
		}

		if len(accepted) == 0 {
			rep.Status = report.StatusConverged
			return rep
		}

		// All accepted revisions were computed against the
		// pre-iteration state; they touch distinct lines, so applying
		// them in order cannot interfere.
		for _, rev := range accepted {
			rev.Apply(lines)
		}

		rep.RevisionsPerIteration = append(rep.RevisionsPerIteration, len(accepted))
		rep.Iterations++
	}

	rep.Status = report.StatusMaxIterations
	return rep
}

// targetColumn resolves the correction target: the maximum right-border
// column among lines that currently have one. Reports false when no line
// qualifies, which terminates the block immediately.
func targetColumn(classes []classify.Classification) (int, bool) {
	target := -1
	for _, cls := range classes {
		if cls.Bordered() && cls.RightCol > target {
			target = cls.RightCol
		}
	}
	return target, target >= 0
}
