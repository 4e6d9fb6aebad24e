// SPDX-License-Identifier: MIT

package mtx

import "errors"

var (
	// ErrHeader indicates a missing or malformed %%MatrixMarket banner.
	ErrHeader = errors.New("mtx: malformed header")

	// ErrSize indicates a malformed size line, a non-square matrix, or an
	// entry count that disagrees with the size line.
	ErrSize = errors.New("mtx: malformed size line")

	// ErrEntry indicates a malformed or out-of-range coordinate line.
	ErrEntry = errors.New("mtx: malformed entry")

	// ErrUnsupported indicates a valid banner for a format this package does
	// not read (array storage, complex or hermitian fields, skew symmetry).
	ErrUnsupported = errors.New("mtx: unsupported matrix format")
)
