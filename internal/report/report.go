// Package report defines the result model the engine hands to its
// presentation layers. Records here are data-only and deterministic so
// they can be cached, serialized, and rendered without touching the
// engine again.
package report

import "encoding/json"

// Status is the terminal state a block reached.
type Status uint8

const (
	// StatusConverged means an iteration produced zero accepted revisions.
	StatusConverged Status = iota
	// StatusMaxIterations means the iteration cap was hit before a fixed
	// point; the block is returned in its current state.
	StatusMaxIterations
	// StatusNoBorderLine means no line in the block had a recognized
	// right border, so there was no target to align to.
	StatusNoBorderLine
	// StatusBelowThreshold means the block's confidence did not clear
	// the acceptance threshold and it was skipped entirely.
	StatusBelowThreshold
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusMaxIterations:
		return "max-iterations"
	case StatusNoBorderLine:
		return "no-border-line"
	case StatusBelowThreshold:
		return "below-threshold"
	}
	return "unknown"
}

// BlockReport describes what happened to one block. Start/End are a
// half-open line range over the document.
type BlockReport struct {
	Start      int     `json:"start" msgpack:"start"`
	End        int     `json:"end" msgpack:"end"`
	Confidence float64 `json:"confidence" msgpack:"confidence"`
	Status     Status  `json:"-" msgpack:"status"`

	// Iterations is how many apply cycles ran.
	Iterations int `json:"iterations" msgpack:"iterations"`

	// RevisionsPerIteration records how many revisions each iteration
	// applied, in order.
	RevisionsPerIteration []int `json:"revisions_per_iteration,omitempty" msgpack:"revisions_per_iteration"`

	// SkippedCandidates counts generated revisions rejected by the score
	// threshold across all iterations.
	SkippedCandidates int `json:"skipped_candidates,omitempty" msgpack:"skipped_candidates"`
}

// Revisions returns the total number of revisions applied to the block.
func (b BlockReport) Revisions() int {
	total := 0
	for _, n := range b.RevisionsPerIteration {
		total += n
	}
	return total
}

// StatusName is the stable string form of Status for serialization.
func (b BlockReport) StatusName() string { return b.Status.String() }

// MarshalJSON emits the status by name rather than numeric value.
func (b BlockReport) MarshalJSON() ([]byte, error) {
	type plain BlockReport
	return json.Marshal(struct {
		plain
		Status string `json:"status"`
	}{plain(b), b.Status.String()})
}

// Document aggregates everything a single correction run produced.
type Document struct {
	Blocks []BlockReport `msgpack:"blocks"`

	// PassThrough is set when the quick-scan prefilter rejected the
	// whole document and no per-line work was done.
	PassThrough bool    `msgpack:"pass_through"`
	ScanRatio   float64 `msgpack:"scan_ratio"`

	BlocksFound      int `msgpack:"blocks_found"`
	BlocksModified   int `msgpack:"blocks_modified"`
	RevisionsApplied int `msgpack:"revisions_applied"`
}
