// SPDX-License-Identifier: MIT

package se2_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/loopcons/matrix"
	"github.com/katalvlaran/loopcons/se2"
)

// tol is the absolute tolerance used for round-off comparisons.
const tol = 1e-9

// approxPose compares poses component-wise within tol.
var approxPose = cmpopts.EquateApprox(0, tol)

// MustDiag builds a diagonal covariance or fails the test.
func MustDiag(t *testing.T, d ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDiagonal(d...)
	require.NoError(t, err)

	return m
}

// MustZero3 builds a 3×3 zero matrix or fails the test.
func MustZero3(t *testing.T) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(se2.Dim, se2.Dim)
	require.NoError(t, err)

	return m
}

// RandomPSD returns A·Aᵀ + δI for a random 3×3 A, a symmetric positive-definite covariance.
func RandomPSD(t *testing.T, rng *rand.Rand, scale float64) *matrix.Dense {
	t.Helper()
	a, err := matrix.NewDense(se2.Dim, se2.Dim)
	require.NoError(t, err)
	for i := 0; i < se2.Dim; i++ {
		for j := 0; j < se2.Dim; j++ {
			require.NoError(t, a.Set(i, j, scale*(rng.Float64()-0.5)))
		}
	}
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	aat, err := matrix.Mul(a, at)
	require.NoError(t, err)
	eye, err := matrix.NewIdentity(se2.Dim)
	require.NoError(t, err)
	delta, err := matrix.Scale(eye, 1e-6)
	require.NoError(t, err)
	out, err := matrix.Add(aat, delta)
	require.NoError(t, err)

	return out
}

// RandomPose draws a pose with translation in [-span, span] and any heading in (-π, π].
func RandomPose(rng *rand.Rand, span float64) se2.Pose {
	return se2.Pose{
		X:   span * (2*rng.Float64() - 1),
		Y:   span * (2*rng.Float64() - 1),
		Phi: se2.WrapAngle(6.3 * (2*rng.Float64() - 1)),
	}
}

// RequirePoseClose fails the test when poses differ beyond tol.
func RequirePoseClose(t *testing.T, want, got se2.Pose) {
	t.Helper()
	if diff := cmp.Diff(want, got, approxPose); diff != "" {
		t.Fatalf("pose mismatch (-want +got):\n%s", diff)
	}
}

// RequireMatrixClose fails the test when matrices differ beyond tol.
func RequireMatrixClose(t *testing.T, want, got matrix.Matrix) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, tol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrix mismatch:\nwant:\n%v\ngot:\n%v", want, got)
}
