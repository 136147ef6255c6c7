package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aadc/internal/config"
	"aadc/internal/driver"
	"aadc/internal/observ"
	"aadc/internal/render"
	"aadc/internal/source"
)

const defaultBackupExt = ".bak"

func init() {
	flags := rootCmd.Flags()
	flags.BoolP("in-place", "i", false, "rewrite files instead of printing to stdout")
	flags.Bool("backup", false, "keep a copy of each rewritten file")
	flags.String("backup-ext", defaultBackupExt, "extension for backup copies")
	flags.BoolP("dry-run", "n", false, "report what would change without writing")
	flags.BoolP("diff", "d", false, "print a unified diff instead of the corrected text")
	flags.Bool("json", false, "emit machine-readable JSON")
	flags.BoolP("verbose", "v", false, "print per-block details")
	flags.BoolP("all", "a", false, "process every block regardless of confidence")
	flags.IntP("max-iters", "m", driver.DefaultOptions().MaxIterations, "iteration cap per block")
	flags.Float64P("min-score", "s", driver.DefaultOptions().MinScore, "minimum revision score (0.0-1.0)")
	flags.IntP("tab-width", "t", source.DefaultTabWidth, "tab stop width (1-16)")
	flags.StringP("preset", "P", "", "scoring preset (strict|normal|aggressive|relaxed)")
	flags.IntP("jobs", "j", 0, "max files processed concurrently (0 = all CPUs)")
	flags.Bool("no-cache", false, "disable the on-disk result cache")
	flags.String("config", "", "explicit aadc.toml path")
	flags.Bool("no-config", false, "ignore aadc.toml")
	flags.String("ui", "auto", "progress display for multi-file runs (auto|on|off)")
}

type correctRun struct {
	inPlace   bool
	backup    bool
	backupExt string
	dryRun    bool
	diff      bool
	jsonOut   bool
	verbose   bool
	quiet     bool
	timings   bool

	opts driver.Options
	ui   uiMode
}

func runCorrect(cmd *cobra.Command, args []string) error {
	run, err := readCorrectRun(cmd, len(args))
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	defer func() {
		if run.timings {
			fmt.Fprint(os.Stderr, timer.Summary())
		}
	}()

	if len(args) == 0 {
		phase := timer.Begin("stdin")
		doc, err := source.ReadStdin(os.Stdin)
		if err != nil {
			return err
		}
		res := driver.Process(doc, run.opts)
		timer.End(phase, "")
		if err := run.emit(os.Stdout, res, false); err != nil {
			return err
		}
		if run.dryRun && res.Changed {
			return errWouldChange
		}
		return nil
	}

	phase := timer.Begin("files")
	results, err := run.processFiles(cmd, args)
	timer.End(phase, fmt.Sprintf("%d file(s)", len(args)))
	if err != nil {
		return err
	}

	multi := len(results) > 1
	var firstErr error
	if run.jsonOut && multi {
		if err := render.WriteJSONAll(os.Stdout, results, run.jsonMode()); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			if err := run.emit(os.Stdout, res, multi); err != nil {
				printError(fmt.Errorf("%s: %w", res.Path, err))
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}

	if firstErr != nil {
		return &reportedError{err: firstErr}
	}
	if run.dryRun && anyChanged(results) {
		return errWouldChange
	}
	return nil
}

func readCorrectRun(cmd *cobra.Command, fileCount int) (*correctRun, error) {
	flags := cmd.Flags()
	run := &correctRun{opts: driver.DefaultOptions()}

	var err error
	if run.inPlace, err = flags.GetBool("in-place"); err != nil {
		return nil, err
	}
	if run.backup, err = flags.GetBool("backup"); err != nil {
		return nil, err
	}
	if run.backupExt, err = flags.GetString("backup-ext"); err != nil {
		return nil, err
	}
	if run.dryRun, err = flags.GetBool("dry-run"); err != nil {
		return nil, err
	}
	if run.diff, err = flags.GetBool("diff"); err != nil {
		return nil, err
	}
	if run.jsonOut, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if run.verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, err
	}
	if run.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return nil, err
	}
	if run.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return nil, err
	}

	uiValue, err := flags.GetString("ui")
	if err != nil {
		return nil, err
	}
	if run.ui, err = readUIMode(uiValue); err != nil {
		return nil, usageErrorf("%v", err)
	}

	if err := run.resolveOptions(cmd); err != nil {
		return nil, err
	}
	return run, run.validate(fileCount)
}

// resolveOptions layers settings: defaults, then aadc.toml, then flags.
func (run *correctRun) resolveOptions(cmd *cobra.Command) error {
	flags := cmd.Flags()

	noConfig, err := flags.GetBool("no-config")
	if err != nil {
		return err
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return err
	}
	if noConfig && configPath != "" {
		return usageErrorf("--config and --no-config are mutually exclusive")
	}
	if !noConfig {
		var file *config.File
		if configPath != "" {
			file, err = config.Load(configPath)
		} else {
			file, err = config.Discover(".")
		}
		if err != nil {
			return err
		}
		if file != nil {
			run.applyConfig(file)
		}
	}

	if flags.Changed("preset") {
		if flags.Changed("min-score") {
			return usageErrorf("--preset and --min-score are mutually exclusive")
		}
		name, err := flags.GetString("preset")
		if err != nil {
			return err
		}
		score, err := config.PresetScore(name)
		if err != nil {
			return usageErrorf("%v", err)
		}
		run.opts.MinScore = score
	}
	if flags.Changed("min-score") {
		if run.opts.MinScore, err = flags.GetFloat64("min-score"); err != nil {
			return err
		}
	}
	if flags.Changed("max-iters") {
		if run.opts.MaxIterations, err = flags.GetInt("max-iters"); err != nil {
			return err
		}
	}
	if flags.Changed("tab-width") {
		if run.opts.TabWidth, err = flags.GetInt("tab-width"); err != nil {
			return err
		}
	}
	if flags.Changed("all") {
		if run.opts.AllBlocks, err = flags.GetBool("all"); err != nil {
			return err
		}
	}
	if run.opts.Jobs, err = flags.GetInt("jobs"); err != nil {
		return err
	}

	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return err
	}
	if !noCache {
		// Cache open failures fall back to uncached processing.
		if cache, err := driver.OpenDiskCache("aadc"); err == nil {
			run.opts.Cache = cache
		}
	}
	return nil
}

func (run *correctRun) applyConfig(file *config.File) {
	if file.Correct.Preset != nil {
		if score, err := config.PresetScore(*file.Correct.Preset); err == nil {
			run.opts.MinScore = score
		}
	}
	if file.Correct.MinScore != nil {
		run.opts.MinScore = *file.Correct.MinScore
	}
	if file.Correct.MaxIterations != nil {
		run.opts.MaxIterations = *file.Correct.MaxIterations
	}
	if file.Correct.TabWidth != nil {
		run.opts.TabWidth = *file.Correct.TabWidth
	}
	if file.Correct.AllBlocks != nil {
		run.opts.AllBlocks = *file.Correct.AllBlocks
	}
	run.opts.Weights = file.Weights.ApplyWeights(run.opts.Weights)
}

func (run *correctRun) validate(fileCount int) error {
	if run.opts.MinScore < 0 || run.opts.MinScore > 1 {
		return usageErrorf("--min-score must be between 0.0 and 1.0, got %v", run.opts.MinScore)
	}
	if run.opts.MaxIterations < 1 {
		return usageErrorf("--max-iters must be at least 1, got %d", run.opts.MaxIterations)
	}
	if run.opts.TabWidth < 1 || run.opts.TabWidth > 16 {
		return usageErrorf("--tab-width must be between 1 and 16, got %d", run.opts.TabWidth)
	}
	if run.inPlace && fileCount == 0 {
		return usageErrorf("--in-place requires file arguments, not stdin")
	}
	if run.backup && !run.inPlace {
		return usageErrorf("--backup requires --in-place")
	}
	if run.inPlace && run.dryRun {
		return usageErrorf("--in-place and --dry-run are mutually exclusive")
	}
	if run.opts.MaxIterations > 100 && !run.quiet {
		fmt.Fprintf(os.Stderr, "warning: --max-iters %d is unusually high\n", run.opts.MaxIterations)
	}
	return nil
}

func anyChanged(results []*driver.Result) bool {
	for _, res := range results {
		if res.Err == nil && res.Changed {
			return true
		}
	}
	return false
}
