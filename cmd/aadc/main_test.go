package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aadc/internal/driver"
	"aadc/internal/render"
	"aadc/internal/source"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitSuccess},
		{"usage", usageErrorf("bad flag"), exitInvalidArgs},
		{"would change", errWouldChange, exitWouldChange},
		{"decode", &source.DecodeError{Source: "f"}, exitParseError},
		{"reported decode", &reportedError{err: &source.DecodeError{Source: "f"}}, exitParseError},
		{"generic", errors.New("boom"), exitError},
	}
	for _, tt := range tests {
		if got := exitCodeFor(tt.err); got != tt.want {
			t.Errorf("%s: exitCodeFor = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestFlagErrorExitsInvalidArgs(t *testing.T) {
	err := flagError(nil, errors.New("unknown flag: --bogus"))
	if got := exitCodeFor(err); got != exitInvalidArgs {
		t.Fatalf("exitCodeFor = %d, want %d", got, exitInvalidArgs)
	}
	if !strings.Contains(err.Error(), "--bogus") {
		t.Fatalf("error lost the flag name: %v", err)
	}
}

func TestReadUIMode(t *testing.T) {
	for value, want := range map[string]uiMode{
		"":     uiModeAuto,
		"auto": uiModeAuto,
		"ON":   uiModeOn,
		"off":  uiModeOff,
	} {
		got, err := readUIMode(value)
		if err != nil {
			t.Fatalf("readUIMode(%q): %v", value, err)
		}
		if got != want {
			t.Errorf("readUIMode(%q) = %q, want %q", value, got, want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("expected error for invalid mode")
	}
}

func TestValidateRejectsBadCombinations(t *testing.T) {
	base := func() *correctRun {
		return &correctRun{opts: driver.DefaultOptions()}
	}

	tests := []struct {
		name      string
		mutate    func(*correctRun)
		fileCount int
	}{
		{"min score above one", func(r *correctRun) { r.opts.MinScore = 1.5 }, 1},
		{"min score negative", func(r *correctRun) { r.opts.MinScore = -0.1 }, 1},
		{"zero iterations", func(r *correctRun) { r.opts.MaxIterations = 0 }, 1},
		{"tab width zero", func(r *correctRun) { r.opts.TabWidth = 0 }, 1},
		{"tab width huge", func(r *correctRun) { r.opts.TabWidth = 32 }, 1},
		{"in-place on stdin", func(r *correctRun) { r.inPlace = true }, 0},
		{"backup without in-place", func(r *correctRun) { r.backup = true }, 1},
		{"in-place dry run", func(r *correctRun) { r.inPlace = true; r.dryRun = true }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := base()
			tt.mutate(run)
			err := run.validate(tt.fileCount)
			var usage *usageError
			if !errors.As(err, &usage) {
				t.Fatalf("expected usage error, got %v", err)
			}
		})
	}

	if err := base().validate(1); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestWriteInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "box.txt")
	original := "+----+\n| a|\n+----+\n"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res := &driver.Result{
		Path:      path,
		Original:  []string{"+----+", "| a|", "+----+"},
		Corrected: []string{"+----+", "| a  |", "+----+"},
		Changed:   true,
	}
	if err := writeInPlace(res, true, ".bak"); err != nil {
		t.Fatalf("writeInPlace: %v", err)
	}

	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(updated), "| a  |") {
		t.Fatalf("file not corrected:\n%s", updated)
	}

	backup, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != original {
		t.Fatalf("backup content = %q", backup)
	}
}

func TestJSONMode(t *testing.T) {
	if got := (&correctRun{dryRun: true}).jsonMode(); got != render.JSONDryRun {
		t.Fatalf("dry run mode = %v", got)
	}
	if got := (&correctRun{inPlace: true}).jsonMode(); got != render.JSONInPlace {
		t.Fatalf("in-place mode = %v", got)
	}
	if got := (&correctRun{}).jsonMode(); got != render.JSONContent {
		t.Fatalf("default mode = %v", got)
	}
}
