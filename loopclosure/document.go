// SPDX-License-Identifier: MIT

package loopclosure

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/loopcons/matrix"
	"github.com/katalvlaran/loopcons/se2"
)

// document is the on-disk YAML layout of a loop-closure set:
//
//	loop_closures:
//	  - from: {robot: a, index: 12}
//	    to: {robot: b, index: 40}
//	    measurement: {x: 1.0, y: -0.5, phi: 0.1}
//	    covariance: [[0.01, 0, 0], [0, 0.01, 0], [0, 0, 0.001]]
//
// An edge may give `information` (the inverse covariance, as stored in g2o
// files) instead of `covariance`; exactly one of the two must be present.
type document struct {
	LoopClosures []edgeDoc `yaml:"loop_closures"`
}

type edgeDoc struct {
	From        NodeID      `yaml:"from"`
	To          NodeID      `yaml:"to"`
	Measurement se2.Pose    `yaml:"measurement"`
	Covariance  [][]float64 `yaml:"covariance,omitempty"`
	Information [][]float64 `yaml:"information,omitempty"`
}

// Decode reads a YAML loop-closure document and validates the resulting set.
//
// Errors:
//   - ErrDocument for YAML syntax errors, unknown fields, or a missing/duplicated
//     covariance/information block.
//   - Set.Validate sentinels (ErrEmptySet, ErrInvalidCovariance, ...).
func Decode(r io.Reader) (Set, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrDocument, err)
	}

	set := make(Set, 0, len(doc.LoopClosures))
	for i, ed := range doc.LoopClosures {
		cov, err := ed.covariance()
		if err != nil {
			return nil, fmt.Errorf("loop closure %d (%s->%s): %w", i, ed.From, ed.To, err)
		}
		set = append(set, Edge{
			From:        ed.From,
			To:          ed.To,
			Measurement: ed.Measurement,
			Covariance:  cov,
		})
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// covariance resolves the edge's covariance from whichever block it carries.
func (ed edgeDoc) covariance() (*matrix.Dense, error) {
	switch {
	case ed.Covariance != nil && ed.Information != nil:
		return nil, fmt.Errorf("%w: both covariance and information given", ErrDocument)
	case ed.Covariance != nil:
		cov, err := matrix.NewDenseFrom(ed.Covariance)
		if err != nil {
			return nil, fmt.Errorf("%w: covariance: %w", ErrDocument, err)
		}
		return cov, nil
	case ed.Information != nil:
		return informationToCovariance(ed.Information)
	default:
		return nil, fmt.Errorf("%w: covariance or information required", ErrDocument)
	}
}

// informationToCovariance inverts a symmetric positive-definite information
// matrix through its Cholesky factorisation.
func informationToCovariance(rows [][]float64) (*matrix.Dense, error) {
	info, err := matrix.NewDenseFrom(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: information: %w", ErrDocument, err)
	}
	if err = matrix.ValidateShape(info, se2.Dim, se2.Dim); err != nil {
		return nil, fmt.Errorf("%w: information: %w", ErrInvalidCovariance, err)
	}
	if err = matrix.ValidateSymmetric(info, SymmetryTolerance); err != nil {
		return nil, fmt.Errorf("%w: information: %w", ErrInvalidCovariance, err)
	}

	sym := mat.NewSymDense(se2.Dim, info.RawData())
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, fmt.Errorf("%w: information matrix is not positive definite", ErrInvalidCovariance)
	}
	var inv mat.SymDense
	if err = chol.InverseTo(&inv); err != nil {
		return nil, fmt.Errorf("%w: information inverse: %w", ErrInvalidCovariance, err)
	}

	cov, _ := matrix.NewDense(se2.Dim, se2.Dim)
	for i := 0; i < se2.Dim; i++ {
		for j := 0; j < se2.Dim; j++ {
			_ = cov.Set(i, j, inv.At(i, j))
		}
	}

	return cov, nil
}

// Encode writes set as a YAML loop-closure document with explicit covariances.
func Encode(w io.Writer, set Set) error {
	doc := document{LoopClosures: make([]edgeDoc, 0, len(set))}
	for _, e := range set {
		ed := edgeDoc{From: e.From, To: e.To, Measurement: e.Measurement}
		if e.Covariance != nil {
			for i := 0; i < e.Covariance.Rows(); i++ {
				ed.Covariance = append(ed.Covariance, e.Covariance.RawRow(i))
			}
		}
		doc.LoopClosures = append(doc.LoopClosures, ed)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("loopclosure: encode: %w", err)
	}

	return enc.Close()
}

// Load reads and validates the YAML loop-closure document at path.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loopclosure: open %s: %w", path, err)
	}
	defer f.Close()

	set, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loopclosure: load %s: %w", path, err)
	}

	return set, nil
}

// Save writes set to path as a YAML loop-closure document.
func Save(path string, set Set) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("loopclosure: create %s: %w", path, err)
	}
	if err = Encode(f, set); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
