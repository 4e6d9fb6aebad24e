// SPDX-License-Identifier: MIT

package loopclosure

import (
	"fmt"

	"github.com/katalvlaran/loopcons/matrix"
	"github.com/katalvlaran/loopcons/se2"
)

// SymmetryTolerance is the absolute tolerance used when validating that an
// input covariance is symmetric.
const SymmetryTolerance = 1e-9

// NodeID identifies a pose in one robot's trajectory.
type NodeID struct {
	Robot string `yaml:"robot"`
	Index int    `yaml:"index"`
}

// String renders the node as "robot:index".
func (n NodeID) String() string { return fmt.Sprintf("%s:%d", n.Robot, n.Index) }

// Edge is one inter-robot loop closure.
// Edges are owned by the caller; this module only reads them.
type Edge struct {
	From        NodeID
	To          NodeID
	Measurement se2.Pose
	Covariance  *matrix.Dense
}

// String renders the edge endpoints for traceability in logs and errors.
func (e Edge) String() string { return fmt.Sprintf("%s->%s", e.From, e.To) }

// Validate checks the edge's measurement and covariance.
//
// Errors:
//   - ErrInvalidMeasurement, ErrInvalidCovariance, ErrIntraRobot.
func (e Edge) Validate() error {
	if !e.Measurement.IsFinite() {
		return fmt.Errorf("edge %s: %w", e, ErrInvalidMeasurement)
	}
	if e.From.Robot != "" && e.From.Robot == e.To.Robot {
		return fmt.Errorf("edge %s: %w", e, ErrIntraRobot)
	}
	if err := matrix.ValidateShape(e.Covariance, se2.Dim, se2.Dim); err != nil {
		return fmt.Errorf("edge %s: %w: %w", e, ErrInvalidCovariance, err)
	}
	if err := matrix.ValidateFinite(e.Covariance); err != nil {
		return fmt.Errorf("edge %s: %w: %w", e, ErrInvalidCovariance, err)
	}
	if err := matrix.ValidateSymmetric(e.Covariance, SymmetryTolerance); err != nil {
		return fmt.Errorf("edge %s: %w: %w", e, ErrInvalidCovariance, err)
	}
	for i := 0; i < se2.Dim; i++ {
		if v, _ := e.Covariance.At(i, i); v < 0 {
			return fmt.Errorf("edge %s: negative variance at %d: %w", e, i, ErrInvalidCovariance)
		}
	}

	return nil
}

// Set is an ordered collection of loop closures, indexed 0..N-1.
type Set []Edge

// Len returns the number of loop closures.
func (s Set) Len() int { return len(s) }

// Validate checks the set is non-empty and that every edge is well-formed.
// The first failing edge is reported with its index.
func (s Set) Validate() error {
	if len(s) == 0 {
		return ErrEmptySet
	}
	for i, e := range s {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("loop closure %d: %w", i, err)
		}
	}

	return nil
}
