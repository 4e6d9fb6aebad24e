// SPDX-License-Identifier: MIT

package loopclosure

import "errors"

var (
	// ErrEmptySet is returned when a loop-closure set holds no edges.
	ErrEmptySet = errors.New("loopclosure: empty loop-closure set")

	// ErrInvalidMeasurement signals a NaN or ±Inf component in a relative pose.
	ErrInvalidMeasurement = errors.New("loopclosure: measurement is not finite")

	// ErrInvalidCovariance signals a covariance that is missing, not 3×3,
	// not finite, not symmetric, or has a negative variance.
	ErrInvalidCovariance = errors.New("loopclosure: invalid covariance")

	// ErrIntraRobot signals an edge whose endpoints belong to the same robot.
	ErrIntraRobot = errors.New("loopclosure: endpoints belong to the same robot")

	// ErrDocument signals a malformed YAML loop-closure document.
	ErrDocument = errors.New("loopclosure: malformed document")

	// ErrGenerateConfig signals nonsensical generator parameters.
	ErrGenerateConfig = errors.New("loopclosure: invalid generate config")
)
