// SPDX-License-Identifier: MIT

package adjacency

import "errors"

var (
	// ErrAsymmetric signals a grid or entry list whose (i,j) and (j,i) cells differ.
	ErrAsymmetric = errors.New("adjacency: matrix is not symmetric")

	// ErrNotReflexive signals a missing diagonal entry.
	ErrNotReflexive = errors.New("adjacency: diagonal entry missing")

	// ErrNonBinary signals a cell value other than 0 or 1.
	ErrNonBinary = errors.New("adjacency: non-binary value")

	// ErrOutOfRange signals an index outside [0, N).
	ErrOutOfRange = errors.New("adjacency: index out of range")

	// ErrBadShape signals a negative N or a grid whose length is not N*N.
	ErrBadShape = errors.New("adjacency: invalid shape")
)
