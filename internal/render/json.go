// Package render turns driver results into the CLI's output formats:
// machine-readable JSON, unified diffs, and colored text summaries.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"aadc/internal/driver"
	"aadc/internal/report"
	"aadc/internal/source"
)

// JSONSchemaVersion is bumped when the envelope layout changes.
const JSONSchemaVersion = "1.0"

// JSONEnvelope is the machine-readable result for one file.
type JSONEnvelope struct {
	Schema     string         `json:"version"`
	Status     string         `json:"status"`
	File       string         `json:"file"`
	Input      JSONSide       `json:"input"`
	Processing JSONProcessing `json:"processing"`
	Output     JSONOutput     `json:"output"`
	// Content carries the corrected text; omitted for dry runs and
	// in-place writes, where stdout is not the destination.
	Content *string `json:"content,omitempty"`
}

type JSONSide struct {
	Lines int `json:"lines"`
	Bytes int `json:"bytes"`
}

type JSONProcessing struct {
	BlocksDetected   int                  `json:"blocks_detected"`
	BlocksModified   int                  `json:"blocks_modified"`
	RevisionsApplied int                  `json:"revisions_applied"`
	PassThrough      bool                 `json:"pass_through"`
	Blocks           []report.BlockReport `json:"blocks,omitempty"`
}

type JSONOutput struct {
	Lines   int  `json:"lines"`
	Bytes   int  `json:"bytes"`
	Changed bool `json:"changed"`
}

// JSONMode selects the envelope status and whether content is embedded.
type JSONMode uint8

const (
	// JSONContent embeds the corrected text for stdout consumers.
	JSONContent JSONMode = iota
	// JSONDryRun reports what would change without embedding content.
	JSONDryRun
	// JSONInPlace reports a completed in-place write.
	JSONInPlace
)

// Envelope builds the JSON result for one processed file.
func Envelope(res *driver.Result, mode JSONMode) JSONEnvelope {
	original := source.Join(res.Original)
	corrected := source.Join(res.Corrected)

	env := JSONEnvelope{
		Schema: JSONSchemaVersion,
		Status: "success",
		File:   res.Path,
		Input: JSONSide{
			Lines: len(res.Original),
			Bytes: len(original),
		},
		Processing: JSONProcessing{
			BlocksDetected:   res.Report.BlocksFound,
			BlocksModified:   res.Report.BlocksModified,
			RevisionsApplied: res.Report.RevisionsApplied,
			PassThrough:      res.Report.PassThrough,
			Blocks:           res.Report.Blocks,
		},
		Output: JSONOutput{
			Lines:   len(res.Corrected),
			Bytes:   len(corrected),
			Changed: res.Changed,
		},
	}
	if mode == JSONDryRun {
		env.Status = "dry_run"
	}
	if mode == JSONContent {
		env.Content = &corrected
	}
	return env
}

// WriteJSON emits the envelope for one result.
func WriteJSON(w io.Writer, res *driver.Result, mode JSONMode) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Envelope(res, mode))
}

// WriteJSONAll emits a JSON array covering a multi-file run. Failed
// files get an error envelope instead of aborting the batch.
func WriteJSONAll(w io.Writer, results []*driver.Result, mode JSONMode) error {
	envelopes := make([]JSONEnvelope, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			envelopes = append(envelopes, JSONEnvelope{
				Schema: JSONSchemaVersion,
				Status: fmt.Sprintf("error: %v", res.Err),
				File:   res.Path,
			})
			continue
		}
		envelopes = append(envelopes, Envelope(res, mode))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(envelopes)
}
