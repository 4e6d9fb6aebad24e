// SPDX-License-Identifier: MIT

package se2

import "errors"

// ErrCovarianceShape is returned when a covariance (or cross-covariance)
// argument is not a 3×3 matrix.
var ErrCovarianceShape = errors.New("se2: covariance must be 3x3")
