// SPDX-License-Identifier: MIT

// Package consistency: functional configuration for the Builder.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package consistency

import (
	"math"
	"runtime"

	"go.uber.org/zap"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultGamma is the Mahalanobis-distance threshold: a pair is adjacent
	// iff both directional scores are ≤ gamma.
	DefaultGamma = 0.5

	// DefaultWorkers evaluates rows sequentially.
	DefaultWorkers = 1
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicGammaInvalid   = "consistency: WithGamma: gamma must be finite, non-negative"
	panicWorkersInvalid = "consistency: WithWorkers: workers must be >= 0"
)

// Option mutates internal options. Safe to apply repeatedly (last wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	gamma   float64
	workers int
	logger  *zap.Logger
}

// WithGamma sets the consistency threshold.
//
// Behavior highlights:
//   - Panics when gamma is NaN, ±Inf or negative. +Inf is rejected because a
//     degenerate pair scores +Inf and must never pass the test.
//
// Notes:
//   - Larger gamma only adds adjacencies (the ≤ test is monotonic).
func WithGamma(gamma float64) Option {
	if math.IsNaN(gamma) || math.IsInf(gamma, 0) || gamma < 0 {
		panic(panicGammaInvalid)
	}

	return func(o *Options) { o.gamma = gamma }
}

// WithWorkers shards the pair loop across n goroutines (one row per task).
// n == 0 selects runtime.GOMAXPROCS(0); negative n panics.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}
	if n == 0 {
		n = runtime.GOMAXPROCS(0)
	}

	return func(o *Options) { o.workers = n }
}

// WithLogger attaches a structured logger; nil restores the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// defaultOptions returns the zero-configuration options.
func defaultOptions() Options {
	return Options{
		gamma:   DefaultGamma,
		workers: DefaultWorkers,
		logger:  zap.NewNop(),
	}
}

// gatherOptions applies user options over the defaults, skipping nil entries.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, opt := range user {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
