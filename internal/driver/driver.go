// Package driver orchestrates the correction pipeline: quick scan, tab
// expansion, block detection, and the per-block correction loop. It is
// the layer the CLI calls into, and it owns caching and parallel
// execution across files.
package driver

import (
	"slices"

	"aadc/internal/classify"
	"aadc/internal/correct"
	"aadc/internal/detect"
	"aadc/internal/report"
	"aadc/internal/source"
)

// Options configures a correction run.
type Options struct {
	// MinScore is the lowest revision score the controller accepts.
	MinScore float64
	// MaxIterations bounds the correction loop per block.
	MaxIterations int
	// TabWidth is used to expand tabs before measuring columns.
	TabWidth int
	// AllBlocks processes every detected block regardless of the quick
	// scan verdict and the block confidence threshold.
	AllBlocks bool
	// BlockThreshold is the minimum block confidence to attempt correction.
	BlockThreshold float64
	// Weights tune revision scoring.
	Weights correct.ScoreWeights
	// Jobs limits concurrent file processing; 0 means GOMAXPROCS.
	Jobs int
	// Cache, when non-nil, short-circuits repeat runs on unchanged input.
	Cache *DiskCache
	// Sink receives progress events; nil means silent.
	Sink Sink
}

// DefaultOptions returns the options the CLI uses without flags.
func DefaultOptions() Options {
	return Options{
		MinScore:       correct.DefaultMinScore,
		MaxIterations:  correct.DefaultMaxIterations,
		TabWidth:       source.DefaultTabWidth,
		BlockThreshold: detect.DefaultBlockThreshold,
		Weights:        correct.DefaultScoreWeights(),
	}
}

// Result is the outcome of correcting one document.
type Result struct {
	Path      string
	Original  []string
	Corrected []string
	Report    report.Document
	Changed   bool
	FromCache bool
	Err       error
}

// Process corrects a single document. The returned result always carries
// the corrected lines, which equal the input lines verbatim when the
// quick scan rules the document out.
func Process(doc *source.Document, opts Options) *Result {
	res := &Result{Path: doc.Path, Original: doc.Lines}

	if cached, ok := fromCache(doc, opts); ok {
		return cached
	}

	scan := detect.QuickScan(doc.Lines)
	res.Report.ScanRatio = scan.Ratio
	if !scan.LikelyHasDiagrams && !opts.AllBlocks {
		res.Report.PassThrough = true
		res.Corrected = doc.Lines
		return res
	}

	lines := source.ExpandAll(doc.Lines, opts.TabWidth)
	classes := classify.Lines(lines)
	blocks := detect.Blocks(classes)

	blockOpts := correct.Options{
		MinScore:      opts.MinScore,
		MaxIterations: opts.MaxIterations,
		Weights:       opts.Weights,
	}

	for _, block := range blocks {
		if block.Confidence < opts.BlockThreshold && !opts.AllBlocks {
			res.Report.Blocks = append(res.Report.Blocks, report.BlockReport{
				Start:      block.Start,
				End:        block.End,
				Confidence: block.Confidence,
				Status:     report.StatusBelowThreshold,
			})
			continue
		}
		blockReport := correct.Block(lines, block, blockOpts)
		res.Report.BlocksFound++
		if revisions := blockReport.Revisions(); revisions > 0 {
			res.Report.BlocksModified++
			res.Report.RevisionsApplied += revisions
		}
		res.Report.Blocks = append(res.Report.Blocks, blockReport)
	}

	res.Corrected = lines
	res.Changed = !slices.Equal(doc.Lines, lines)

	toCache(doc, opts, res)
	return res
}

// ScanReport summarizes detection without applying corrections.
type ScanReport struct {
	Scan   detect.ScanResult
	Blocks []detect.Block
}

// Scan runs detection only, for the scan subcommand.
func Scan(doc *source.Document, opts Options) ScanReport {
	scan := detect.QuickScan(doc.Lines)
	if !scan.LikelyHasDiagrams && !opts.AllBlocks {
		return ScanReport{Scan: scan}
	}
	lines := source.ExpandAll(doc.Lines, opts.TabWidth)
	classes := classify.Lines(lines)
	return ScanReport{Scan: scan, Blocks: detect.Blocks(classes)}
}

func fromCache(doc *source.Document, opts Options) (*Result, bool) {
	if opts.Cache == nil || doc.Virtual {
		return nil, false
	}
	var payload DiskPayload
	ok, err := opts.Cache.Get(cacheKey(doc, opts), &payload)
	if err != nil || !ok {
		// Cache read failures degrade to a recompute.
		return nil, false
	}
	if int(payload.LineCount) != len(payload.Corrected) {
		return nil, false
	}
	return &Result{
		Path:      doc.Path,
		Original:  doc.Lines,
		Corrected: payload.Corrected,
		Report:    payload.Report,
		Changed:   payload.Changed,
		FromCache: true,
	}, true
}

func toCache(doc *source.Document, opts Options, res *Result) {
	if opts.Cache == nil || doc.Virtual {
		return
	}
	payload, err := resultToPayload(res)
	if err != nil {
		return
	}
	// Best effort: a failed write only costs a future recompute.
	_ = opts.Cache.Put(cacheKey(doc, opts), payload)
}
