package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"aadc/internal/driver"
	"aadc/internal/report"
)

var (
	headerColor   = color.New(color.FgCyan, color.Bold)
	okColor       = color.New(color.FgGreen)
	warnColor     = color.New(color.FgYellow)
	failColor     = color.New(color.FgRed)
	mutedColor    = color.New(color.Faint)
	modifiedColor = color.New(color.FgMagenta)
)

// FileHeader separates per-file output in multi-file runs.
func FileHeader(w io.Writer, path string) error {
	_, err := headerColor.Fprintf(w, "==> %s <==\n", path)
	return err
}

// WriteContent emits the corrected document followed by a trailing
// newline, matching the input convention of one terminator per line.
func WriteContent(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary prints the human-readable verbose report for one file.
func WriteSummary(w io.Writer, res *driver.Result) error {
	if res.Report.PassThrough {
		_, err := mutedColor.Fprintf(w, "%s: no diagrams detected (box density %.2f%%), passed through\n",
			res.Path, res.Report.ScanRatio*100)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s: %d block(s), %d modified, %d revision(s)",
		res.Path, res.Report.BlocksFound, res.Report.BlocksModified, res.Report.RevisionsApplied); err != nil {
		return err
	}
	if res.FromCache {
		if _, err := mutedColor.Fprint(w, " (cached)"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	for _, blk := range res.Report.Blocks {
		if err := writeBlockLine(w, blk); err != nil {
			return err
		}
	}
	return nil
}

func writeBlockLine(w io.Writer, blk report.BlockReport) error {
	status := okColor
	switch blk.Status {
	case report.StatusMaxIterations:
		status = warnColor
	case report.StatusNoBorderLine, report.StatusBelowThreshold:
		status = failColor
	}
	// Line numbers are 1-based for humans.
	if _, err := fmt.Fprintf(w, "  lines %d-%d  confidence %.2f  ", blk.Start+1, blk.End, blk.Confidence); err != nil {
		return err
	}
	if _, err := status.Fprint(w, blk.StatusName()); err != nil {
		return err
	}
	if revisions := blk.Revisions(); revisions > 0 {
		if _, err := modifiedColor.Fprintf(w, "  +%d revision(s) in %d iteration(s)", revisions, blk.Iterations); err != nil {
			return err
		}
	}
	if blk.SkippedCandidates > 0 {
		if _, err := mutedColor.Fprintf(w, "  %d below threshold", blk.SkippedCandidates); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
