// Package config loads run settings from TOML. Fields absent from the file
// take defaults; toml.MetaData distinguishes an explicit zero from an
// omitted field.
package config

import (
	"fmt"
	"reflect"

	"github.com/BurntSushi/toml"
)

// Settings are the run-level knobs consumed by the transport core and the
// driver.
type Settings struct {
	Particles       int
	Batches         int
	InactiveBatches int
	Seed            uint64

	SurvivalBiasing bool
	WeightCutoff    float64
	WeightSurvive   float64
	EnergyCutoff    float64 // [MeV]

	Tallies   bool
	Verbosity int
	Threads   int

	OutputDir string
}

var defaultValues = map[string]any{
	"Particles":       int(1000),
	"Batches":         int(120),
	"InactiveBatches": int(20),
	"Seed":            uint64(1),
	"SurvivalBiasing": true,
	"WeightCutoff":    0.25,
	"WeightSurvive":   1.0,
	"EnergyCutoff":    0.0,
	"Tallies":         false,
	"Verbosity":       int(1),
	"Threads":         int(0), // 0: one worker per CPU
	"OutputDir":       "",
}

// Load reads settings from a TOML file, layering defaults over fields the
// file leaves undefined.
func Load(path string) (Settings, error) {
	var s Settings
	meta, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("unable to read settings: %w", err)
	}
	applyDefaults(&s, &meta)
	return s, s.Validate()
}

// Default returns the settings used when no file is given.
func Default() Settings {
	var s Settings
	applyDefaults(&s, nil)
	return s
}

func applyDefaults(s *Settings, meta *toml.MetaData) {
	v := reflect.ValueOf(s).Elem()
	for name, def := range defaultValues {
		if meta != nil && meta.IsDefined(name) {
			continue
		}
		v.FieldByName(name).Set(reflect.ValueOf(def))
	}
}

// Validate rejects settings the power iteration cannot run with.
func (s *Settings) Validate() error {
	if s.Particles < 1 {
		return fmt.Errorf("Particles must be positive, got %d", s.Particles)
	}
	if s.Batches < 1 || s.InactiveBatches < 0 || s.InactiveBatches >= s.Batches {
		return fmt.Errorf("need 0 <= InactiveBatches < Batches, got %d/%d", s.InactiveBatches, s.Batches)
	}
	if s.SurvivalBiasing {
		if s.WeightCutoff <= 0 || s.WeightSurvive < s.WeightCutoff {
			return fmt.Errorf("need 0 < WeightCutoff <= WeightSurvive, got %g/%g", s.WeightCutoff, s.WeightSurvive)
		}
	}
	if s.EnergyCutoff < 0 {
		return fmt.Errorf("EnergyCutoff must be non-negative, got %g", s.EnergyCutoff)
	}
	return nil
}
