// SPDX-License-Identifier: MIT

package consistency

import (
	"errors"

	"github.com/katalvlaran/loopcons/loopclosure"
)

var (
	// ErrEmptySet is returned by NewBuilder for an empty loop-closure set.
	// It aliases loopclosure.ErrEmptySet so errors.Is matches either name.
	ErrEmptySet = loopclosure.ErrEmptySet

	// ErrAsymmetric is the fatal postcondition failure of BuildMatrix: the
	// assembled matrix is not exactly symmetric.
	ErrAsymmetric = errors.New("consistency: adjacency matrix is not symmetric")

	// ErrIndexOutOfRange is returned by Score for an index outside [0, N).
	ErrIndexOutOfRange = errors.New("consistency: loop-closure index out of range")
)
