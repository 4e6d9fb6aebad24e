// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/loopcons/matrix"
)

func TestNewDenseDefaultZero(t *testing.T) {
	for _, tc := range []struct{ rows, cols int }{{3, 3}, {3, 6}, {6, 6}} {
		t.Run(fmt.Sprintf("%dx%d", tc.rows, tc.cols), func(t *testing.T) {
			m := MustDense(t, tc.rows, tc.cols)
			r, c := m.Shape()
			assert.Equal(t, tc.rows, r)
			assert.Equal(t, tc.cols, c)
			for _, v := range m.RawData() {
				require.Zero(t, v)
			}
		})
	}
}

func TestNewDense_InvalidDimensions(t *testing.T) {
	for _, rc := range [][2]int{{0, 3}, {3, 0}, {-1, 2}} {
		_, err := matrix.NewDense(rc[0], rc[1])
		assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	}
	_, err := matrix.NewIdentity(0)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDiagonal()
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestNewDenseFrom(t *testing.T) {
	m := MustFrom(t, []float64{1, 2, 3}, []float64{4, 5, 6})
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, []float64{4, 5, 6}, m.RawRow(1))
	assert.Nil(t, m.RawRow(2))

	_, err := matrix.NewDenseFrom([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrRaggedRows)
	_, err = matrix.NewDenseFrom(nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestIdentityAndDiagonal(t *testing.T) {
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	diag, err := matrix.NewDiagonal(1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, id.RawData(), diag.RawData())

	d, err := matrix.NewDiagonal(0.1, 0.2, 0.01)
	require.NoError(t, err)
	assert.Equal(t, 0.2, MustAt(t, d, 1, 1))
	assert.Zero(t, MustAt(t, d, 0, 1))
}

func TestAtSet_OutOfRange(t *testing.T) {
	m := MustDense(t, 2, 2)
	for _, ij := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		_, err := m.At(ij[0], ij[1])
		assert.ErrorIs(t, err, matrix.ErrOutOfRange)
		assert.ErrorIs(t, m.Set(ij[0], ij[1], 1), matrix.ErrOutOfRange)
	}
}

func TestClone_IsDeep(t *testing.T) {
	m := MustFrom(t, []float64{1, 2}, []float64{3, 4})
	cp := m.Clone()
	require.NoError(t, cp.Set(0, 0, 99))
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0))

	raw := m.RawData()
	raw[0] = 42
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0), "RawData must return a copy")
}

func TestIsFinite(t *testing.T) {
	m := MustDense(t, 2, 2)
	assert.True(t, m.IsFinite())
	require.NoError(t, m.Set(1, 0, math.Inf(-1)))
	assert.False(t, m.IsFinite())
}

func TestString(t *testing.T) {
	m := MustFrom(t, []float64{1, 0.5}, []float64{-2, 3})
	assert.Equal(t, "[1, 0.5]\n[-2, 3]\n", m.String())
}
