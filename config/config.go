// SPDX-License-Identifier: MIT

// Package config holds the run configuration of the build-adjacency tool.
//
// A configuration file is optional; every field falls back to a default
// and command-line flags override whatever the file sets.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/loopcons/consistency"
	"github.com/katalvlaran/loopcons/loopclosure"
)

// DefaultOutput is the adjacency file written when none is named.
const DefaultOutput = "adjacency.mtx"

// ErrInvalid reports a configuration value outside its domain.
var ErrInvalid = errors.New("config: invalid value")

// Config models the YAML run configuration.
type Config struct {
	// Gamma is the consistency threshold on both directional scores.
	Gamma float64 `yaml:"gamma"`
	// Workers shards the pair loop; 0 means one per CPU.
	Workers int `yaml:"workers"`
	// Output is the Matrix Market path; its extension selects compression.
	Output string `yaml:"output"`
	// Comment is written below the Matrix Market banner.
	Comment  string `yaml:"comment,omitempty"`
	LogLevel string `yaml:"log_level"`

	// Generate parameterises the simulate subcommand.
	Generate loopclosure.GenerateConfig `yaml:"generate"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Gamma:    consistency.DefaultGamma,
		Workers:  consistency.DefaultWorkers,
		Output:   DefaultOutput,
		LogLevel: "info",
		Generate: loopclosure.DefaultGenerateConfig(),
	}
}

// Load reads path over Default. Unknown keys are rejected so typos surface
// instead of silently falling back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every field the builder and writer consume.
func (c Config) Validate() error {
	switch {
	case math.IsNaN(c.Gamma) || math.IsInf(c.Gamma, 0) || c.Gamma < 0:
		return fmt.Errorf("gamma %v: %w", c.Gamma, ErrInvalid)
	case c.Workers < 0:
		return fmt.Errorf("workers %d: %w", c.Workers, ErrInvalid)
	case c.Output == "":
		return fmt.Errorf("output is empty: %w", ErrInvalid)
	}

	return nil
}

// BuilderOptions translates the configuration into consistency options.
// Call Validate first; the option constructors panic on invalid values.
func (c Config) BuilderOptions(logger *zap.Logger) []consistency.Option {
	return []consistency.Option{
		consistency.WithGamma(c.Gamma),
		consistency.WithWorkers(c.Workers),
		consistency.WithLogger(logger),
	}
}
