// Package config loads aadc.toml project configuration.
//
// Settings resolve in three layers: built-in defaults, then the nearest
// aadc.toml found by walking up from the working directory, then
// command-line flags. Every field in the TOML schema is optional, which
// is why the structs below hold pointers: a nil field means "not set
// here, fall through to the next layer".
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"aadc/internal/correct"
)

// FileName is the manifest searched for in the working directory and
// its ancestors.
const FileName = "aadc.toml"

// File is the decoded aadc.toml.
type File struct {
	Path    string        // where the manifest was found; not part of the TOML
	Correct CorrectConfig `toml:"correct"`
	Weights WeightsConfig `toml:"weights"`
}

// CorrectConfig mirrors the correction flags of the CLI.
type CorrectConfig struct {
	Preset        *string  `toml:"preset"`
	MinScore      *float64 `toml:"min_score"`
	MaxIterations *int     `toml:"max_iters"`
	TabWidth      *int     `toml:"tab_width"`
	AllBlocks     *bool    `toml:"all_blocks"`
}

// WeightsConfig overrides individual scoring weights.
type WeightsConfig struct {
	PadBase               *float64 `toml:"pad_base"`
	GapPenaltyPerColumn   *float64 `toml:"gap_penalty_per_column"`
	GapPenaltyCap         *float64 `toml:"gap_penalty_cap"`
	StrongBonus           *float64 `toml:"strong_bonus"`
	MarginMismatchPenalty *float64 `toml:"margin_mismatch_penalty"`
	SynthesizeBase        *float64 `toml:"synthesize_base"`
	SynthesizeStrongBonus *float64 `toml:"synthesize_strong_bonus"`
	SynthesizeWeakBonus   *float64 `toml:"synthesize_weak_bonus"`
}

// Presets map preset names to minimum revision scores.
var Presets = map[string]float64{
	"strict":     0.8,
	"normal":     0.5,
	"aggressive": 0.3,
	"relaxed":    0.1,
}

// PresetScore resolves a preset name to its minimum score.
func PresetScore(name string) (float64, error) {
	score, ok := Presets[name]
	if !ok {
		return 0, fmt.Errorf("unknown preset %q (expected strict, normal, aggressive, or relaxed)", name)
	}
	return score, nil
}

// Find walks up from startDir to locate aadc.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the manifest at path.
func Load(path string) (*File, error) {
	var file File
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	file.Path = path
	if file.Correct.Preset != nil {
		if _, err := PresetScore(*file.Correct.Preset); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := file.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &file, nil
}

// Discover finds and loads the nearest manifest, returning nil when
// none exists.
func Discover(startDir string) (*File, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, err
	}
	return Load(path)
}

func (file *File) validate() error {
	if score := file.Correct.MinScore; score != nil && (*score < 0 || *score > 1) {
		return fmt.Errorf("min_score must be between 0.0 and 1.0, got %v", *score)
	}
	if iters := file.Correct.MaxIterations; iters != nil && *iters < 1 {
		return fmt.Errorf("max_iters must be at least 1, got %d", *iters)
	}
	if tab := file.Correct.TabWidth; tab != nil && (*tab < 1 || *tab > 16) {
		return fmt.Errorf("tab_width must be between 1 and 16, got %d", *tab)
	}
	return nil
}

// ApplyWeights overlays the manifest's weight overrides on top of base.
func (weights WeightsConfig) ApplyWeights(base correct.ScoreWeights) correct.ScoreWeights {
	overlay := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	overlay(&base.PadBase, weights.PadBase)
	overlay(&base.GapPenaltyPerColumn, weights.GapPenaltyPerColumn)
	overlay(&base.GapPenaltyCap, weights.GapPenaltyCap)
	overlay(&base.StrongBonus, weights.StrongBonus)
	overlay(&base.MarginMismatchPenalty, weights.MarginMismatchPenalty)
	overlay(&base.SynthesizeBase, weights.SynthesizeBase)
	overlay(&base.SynthesizeStrongBonus, weights.SynthesizeStrongBonus)
	overlay(&base.SynthesizeWeakBonus, weights.SynthesizeWeakBonus)
	return base
}
