package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"aadc/internal/driver"
	"aadc/internal/render"
	"aadc/internal/source"
	"aadc/internal/ui"
)

func (run *correctRun) processFiles(cmd *cobra.Command, paths []string) ([]*driver.Result, error) {
	// The TUI owns stdout, so it only runs when the corrected text goes
	// back into the files.
	if run.inPlace && len(paths) > 1 && !run.jsonOut && shouldUseTUI(run.ui) {
		return run.processFilesWithUI(cmd.Context(), paths)
	}
	return driver.ProcessPaths(cmd.Context(), paths, run.opts)
}

type processOutcome struct {
	results []*driver.Result
	err     error
}

func (run *correctRun) processFilesWithUI(ctx context.Context, paths []string) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan processOutcome, 1)

	opts := run.opts
	opts.Sink = driver.ChannelSink(events)

	go func() {
		results, err := driver.ProcessPaths(ctx, paths, opts)
		outcomeCh <- processOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("correcting diagrams", paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

func (run *correctRun) jsonMode() render.JSONMode {
	switch {
	case run.dryRun:
		return render.JSONDryRun
	case run.inPlace:
		return render.JSONInPlace
	default:
		return render.JSONContent
	}
}

// emit writes the output for one result. Dry-run exit semantics are the
// caller's concern; this only renders.
func (run *correctRun) emit(w io.Writer, res *driver.Result, multi bool) error {
	if res.Err != nil {
		return res.Err
	}

	if run.jsonOut {
		return render.WriteJSON(w, res, run.jsonMode())
	}

	switch {
	case run.dryRun:
		return run.emitDryRun(w, res, multi)

	case run.inPlace:
		if res.Changed {
			if err := writeInPlace(res, run.backup, run.backupExt); err != nil {
				return err
			}
		}
		if run.verbose || (!run.quiet && res.Changed) {
			return render.WriteSummary(os.Stderr, res)
		}
		return nil

	case run.diff:
		if multi {
			if err := render.FileHeader(w, res.Path); err != nil {
				return err
			}
		}
		return render.WriteDiff(w, res.Path, res.Original, res.Corrected, false)

	default:
		if multi {
			if err := render.FileHeader(w, res.Path); err != nil {
				return err
			}
		}
		if run.verbose {
			if err := render.WriteSummary(os.Stderr, res); err != nil {
				return err
			}
		}
		return render.WriteContent(w, res.Corrected)
	}
}

func (run *correctRun) emitDryRun(w io.Writer, res *driver.Result, multi bool) error {
	if multi {
		if err := render.FileHeader(w, res.Path); err != nil {
			return err
		}
	}
	if run.diff {
		return render.WriteDiff(w, res.Path, res.Original, res.Corrected, true)
	}
	if res.Changed {
		if _, err := fmt.Fprintf(w, "%s: would apply %d revision(s) to %d block(s)\n",
			res.Path, res.Report.RevisionsApplied, res.Report.BlocksModified); err != nil {
			return err
		}
	} else if !run.quiet {
		if _, err := fmt.Fprintf(w, "%s: no changes needed\n", res.Path); err != nil {
			return err
		}
	}
	if run.verbose {
		return render.WriteSummary(os.Stderr, res)
	}
	return nil
}

// writeInPlace replaces the file with the corrected text, optionally
// preserving the original under a backup extension first.
func writeInPlace(res *driver.Result, backup bool, backupExt string) error {
	info, err := os.Stat(res.Path)
	if err != nil {
		return err
	}
	if backup {
		original, err := os.ReadFile(res.Path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(res.Path+backupExt, original, info.Mode().Perm()); err != nil {
			return fmt.Errorf("backup %s: %w", res.Path, err)
		}
	}
	content := source.Join(res.Corrected) + "\n"
	return os.WriteFile(res.Path, []byte(content), info.Mode().Perm())
}
