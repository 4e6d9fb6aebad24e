// SPDX-License-Identifier: MIT

package se2

import (
	"fmt"
	"math"
)

// Dim is the dimension of the SE(2) tangent space.
const Dim = 3

// Pose is a planar rigid transform: translation (X, Y) and heading Phi in radians.
// Pose is an immutable value type; every operation returns a new Pose.
type Pose struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Phi float64 `yaml:"phi"`
}

// Identity returns the neutral transform (0, 0, 0).
func Identity() Pose { return Pose{} }

// Vec returns the pose as a [x, y, φ] slice.
func (p Pose) Vec() []float64 { return []float64{p.X, p.Y, p.Phi} }

// IsFinite reports whether all three components are finite.
func (p Pose) IsFinite() bool {
	for _, v := range p.Vec() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// String renders the pose as "(x, y, φ)".
func (p Pose) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Phi)
}

// WrapAngle normalises an angle to the half-open interval (-π, π].
func WrapAngle(phi float64) float64 {
	w := math.Mod(phi+math.Pi, 2*math.Pi)
	if w <= 0 {
		w += 2 * math.Pi
	}

	return w - math.Pi
}
