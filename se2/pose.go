// SPDX-License-Identifier: MIT

package se2

import (
	"fmt"
	"math"

	"github.com/katalvlaran/loopcons/matrix"
)

// Operation tags for error wrapping.
const (
	opInvert  = "se2.Invert"
	opCompose = "se2.Compose"
	opBetween = "se2.Between"
)

// checkCov validates that cov is a non-nil 3×3 matrix.
func checkCov(tag, name string, cov matrix.Matrix) error {
	if err := matrix.ValidateShape(cov, Dim, Dim); err != nil {
		return fmt.Errorf("%s: %s: %w: %w", tag, name, ErrCovarianceShape, err)
	}

	return nil
}

// Invert computes the inverse transform p⁻¹ and its propagated covariance.
//
// Implementation:
//   - Stage 1: p⁻¹ = (-x·cosφ - y·sinφ, x·sinφ - y·cosφ, -φ).
//   - Stage 2: J⊖ = ∂p⁻¹/∂p = [[-cosφ, -sinφ, y'], [sinφ, -cosφ, -x'], [0, 0, -1]]
//     where (x', y') is the translation of p⁻¹.
//   - Stage 3: Σ' = J⊖ Σ J⊖ᵀ, symmetrised.
//
// Behavior highlights:
//   - Involution: Invert(Invert(p, Σ)) returns (p, Σ) up to round-off, because
//     J⊖ evaluated at p⁻¹ is the matrix inverse of J⊖ evaluated at p.
//
// Errors:
//   - ErrCovarianceShape when cov is not 3×3.
//
// Complexity:
//   - Time O(1), Space O(1).
func Invert(p Pose, cov matrix.Matrix) (Pose, *matrix.Dense, error) {
	if err := checkCov(opInvert, "cov", cov); err != nil {
		return Pose{}, nil, err
	}
	c, s := math.Cos(p.Phi), math.Sin(p.Phi)
	inv := Pose{
		X:   -p.X*c - p.Y*s,
		Y:   p.X*s - p.Y*c,
		Phi: -p.Phi,
	}

	j, _ := matrix.NewDenseFrom([][]float64{
		{-c, -s, inv.Y},
		{s, -c, -inv.X},
		{0, 0, -1},
	})
	invCov, err := matrix.Congruence(j, cov)
	if err != nil {
		return Pose{}, nil, fmt.Errorf("%s: %w", opInvert, err)
	}

	return inv, invCov, nil
}

// Compose computes p1 ⊕ p2 (p2 expressed in p1's frame) and its covariance.
//
// Implementation:
//   - Stage 1: x = x2·cosφ1 − y2·sinφ1 + x1, y = x2·sinφ1 + y2·cosφ1 + y1, φ = φ1 + φ2.
//   - Stage 2: joint 6×6 covariance [[Σ1, X], [Xᵀ, Σ2]]; a nil cross means X = 0.
//   - Stage 3: J⊕ = [[1, 0, −(y − y1), cosφ1, −sinφ1, 0],
//     [0, 1, (x − x1), sinφ1, cosφ1, 0],
//     [0, 0, 1, 0, 0, 1]];
//     Σ = J⊕ Σjoint J⊕ᵀ, symmetrised.
//
// Behavior highlights:
//   - The heading is NOT wrapped; callers that need a residual angle use WrapAngle.
//   - Composition with Identity() and a zero covariance returns the other operand unchanged.
//
// Errors:
//   - ErrCovarianceShape when cov1, cov2 or a non-nil cross is not 3×3.
//
// Complexity:
//   - Time O(1), Space O(1).
func Compose(p1, p2 Pose, cov1, cov2, cross matrix.Matrix) (Pose, *matrix.Dense, error) {
	if err := checkCov(opCompose, "cov1", cov1); err != nil {
		return Pose{}, nil, err
	}
	if err := checkCov(opCompose, "cov2", cov2); err != nil {
		return Pose{}, nil, err
	}
	if cross == nil {
		cross, _ = matrix.NewDense(Dim, Dim)
	} else if err := checkCov(opCompose, "cross", cross); err != nil {
		return Pose{}, nil, err
	}

	c, s := math.Cos(p1.Phi), math.Sin(p1.Phi)
	out := Pose{
		X:   p2.X*c - p2.Y*s + p1.X,
		Y:   p2.X*s + p2.Y*c + p1.Y,
		Phi: p1.Phi + p2.Phi,
	}

	crossT, err := matrix.Transpose(cross)
	if err != nil {
		return Pose{}, nil, fmt.Errorf("%s: %w", opCompose, err)
	}
	joint, err := matrix.Block(cov1, cross, crossT, cov2)
	if err != nil {
		return Pose{}, nil, fmt.Errorf("%s: %w", opCompose, err)
	}
	j, _ := matrix.NewDenseFrom([][]float64{
		{1, 0, -(out.Y - p1.Y), c, -s, 0},
		{0, 1, out.X - p1.X, s, c, 0},
		{0, 0, 1, 0, 0, 1},
	})
	cov, err := matrix.Congruence(j, joint)
	if err != nil {
		return Pose{}, nil, fmt.Errorf("%s: %w", opCompose, err)
	}

	return out, cov, nil
}

// Between returns a⁻¹ ⊕ b: the transform taking a onto b, expressed in a's
// frame, with the two inputs treated as independent (zero cross-covariance).
// When a and b measure the same relative transform the result is the identity.
func Between(a, b Pose, covA, covB matrix.Matrix) (Pose, *matrix.Dense, error) {
	inv, invCov, err := Invert(a, covA)
	if err != nil {
		return Pose{}, nil, fmt.Errorf("%s: %w", opBetween, err)
	}
	rel, relCov, err := Compose(inv, b, invCov, covB, nil)
	if err != nil {
		return Pose{}, nil, fmt.Errorf("%s: %w", opBetween, err)
	}

	return rel, relCov, nil
}
