// SPDX-License-Identifier: MIT

package adjacency

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/loopcons/matrix"
)

// Entry is one stored coordinate (Row ≥ Col); its value is always 1.
type Entry struct {
	Row int
	Col int
}

// Matrix is an N×N symmetric binary adjacency matrix with identity diagonal.
// A Matrix is immutable once constructed and safe for concurrent readers.
type Matrix struct {
	n    int
	rows []*roaring.Bitmap // rows[i] = {j : M[i,j] == 1}, i included
}

// FromGrid builds a Matrix from a dense row-major 0/1 grid of length n*n.
//
// Implementation:
//   - Stage 1: validate shape and binary values.
//   - Stage 2: check exact symmetry on the strict upper triangle and a unit diagonal.
//   - Stage 3: pack each row into a roaring bitmap.
//
// Errors:
//   - ErrBadShape, ErrNonBinary, ErrAsymmetric, ErrNotReflexive.
//
// Complexity:
//   - Time O(n²), Space O(nnz).
func FromGrid(n int, grid []uint8) (*Matrix, error) {
	if n < 0 || len(grid) != n*n {
		return nil, fmt.Errorf("FromGrid(n=%d, len=%d): %w", n, len(grid), ErrBadShape)
	}
	for idx, v := range grid {
		if v > 1 {
			return nil, fmt.Errorf("FromGrid(%d,%d)=%d: %w", idx/n, idx%n, v, ErrNonBinary)
		}
	}
	for i := 0; i < n; i++ {
		if grid[i*n+i] != 1 {
			return nil, fmt.Errorf("FromGrid(%d,%d): %w", i, i, ErrNotReflexive)
		}
		for j := i + 1; j < n; j++ {
			if grid[i*n+j] != grid[j*n+i] {
				return nil, fmt.Errorf("FromGrid(%d,%d)=%d but (%d,%d)=%d: %w",
					i, j, grid[i*n+j], j, i, grid[j*n+i], ErrAsymmetric)
			}
		}
	}

	m := newEmpty(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if grid[i*n+j] == 1 {
				m.rows[i].Add(uint32(j))
			}
		}
		m.rows[i].RunOptimize()
	}

	return m, nil
}

// FromEntries builds a Matrix from a coordinate list, mirroring every (r,c)
// into (c,r). Entries may come from either triangle; duplicates are harmless.
// The diagonal is implied: every i gets M[i,i] = 1 whether listed or not.
//
// Errors:
//   - ErrBadShape (n < 0), ErrOutOfRange (coordinate outside [0,n)).
func FromEntries(n int, entries []Entry) (*Matrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("FromEntries(n=%d): %w", n, ErrBadShape)
	}
	m := newEmpty(n)
	for i := 0; i < n; i++ {
		m.rows[i].Add(uint32(i))
	}
	for _, e := range entries {
		if e.Row < 0 || e.Row >= n || e.Col < 0 || e.Col >= n {
			return nil, fmt.Errorf("FromEntries(%d,%d): %w", e.Row, e.Col, ErrOutOfRange)
		}
		m.rows[e.Row].Add(uint32(e.Col))
		m.rows[e.Col].Add(uint32(e.Row))
	}
	for _, r := range m.rows {
		r.RunOptimize()
	}

	return m, nil
}

func newEmpty(n int) *Matrix {
	m := &Matrix{n: n, rows: make([]*roaring.Bitmap, n)}
	for i := range m.rows {
		m.rows[i] = roaring.New()
	}

	return m
}

// N returns the dimension.
func (m *Matrix) N() int { return m.n }

// At reports whether M[i,j] == 1.
func (m *Matrix) At(i, j int) (bool, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return false, fmt.Errorf("At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return m.rows[i].Contains(uint32(j)), nil
}

// NNZ returns the number of nonzero cells of the full symmetric matrix.
func (m *Matrix) NNZ() int {
	var total uint64
	for _, r := range m.rows {
		total += r.GetCardinality()
	}

	return int(total)
}

// StoredNNZ returns the number of lower-triangle-plus-diagonal entries,
// i.e. len(Entries()).
func (m *Matrix) StoredNNZ() int { return (m.NNZ() + m.n) / 2 }

// Entries lists the lower triangle plus diagonal in column-major order
// (column ascending, then row ascending).
func (m *Matrix) Entries() []Entry {
	out := make([]Entry, 0, m.StoredNNZ())
	for c := 0; c < m.n; c++ {
		it := m.rows[c].Iterator()
		it.AdvanceIfNeeded(uint32(c))
		for it.HasNext() {
			out = append(out, Entry{Row: int(it.Next()), Col: c})
		}
	}

	return out
}

// Neighbors returns a copy of the loop closures adjacent to i, excluding i.
func (m *Matrix) Neighbors(i int) (*roaring.Bitmap, error) {
	if i < 0 || i >= m.n {
		return nil, fmt.Errorf("Neighbors(%d): %w", i, ErrOutOfRange)
	}
	nb := m.rows[i].Clone()
	nb.Remove(uint32(i))

	return nb, nil
}

// Degree returns the number of loop closures adjacent to i, excluding i.
func (m *Matrix) Degree(i int) (int, error) {
	if i < 0 || i >= m.n {
		return 0, fmt.Errorf("Degree(%d): %w", i, ErrOutOfRange)
	}

	return int(m.rows[i].GetCardinality()) - 1, nil
}

// Equal reports whether m and o have the same dimension and cells.
func (m *Matrix) Equal(o *Matrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.n != o.n {
		return false
	}
	for i := range m.rows {
		if !m.rows[i].Equals(o.rows[i]) {
			return false
		}
	}

	return true
}

// Dense materialises the matrix as an N×N 0/1 *matrix.Dense.
// A 0×0 matrix cannot be materialised and yields matrix.ErrInvalidDimensions.
func (m *Matrix) Dense() (*matrix.Dense, error) {
	d, err := matrix.NewDense(m.n, m.n)
	if err != nil {
		return nil, fmt.Errorf("Dense: %w", err)
	}
	for i, r := range m.rows {
		it := r.Iterator()
		for it.HasNext() {
			_ = d.Set(i, int(it.Next()), 1)
		}
	}

	return d, nil
}

// Validate re-checks symmetry and reflexivity on the stored rows.
func (m *Matrix) Validate() error {
	for i, r := range m.rows {
		if !r.Contains(uint32(i)) {
			return fmt.Errorf("Validate(%d,%d): %w", i, i, ErrNotReflexive)
		}
		it := r.Iterator()
		for it.HasNext() {
			j := it.Next()
			if int(j) >= m.n {
				return fmt.Errorf("Validate(%d,%d): %w", i, j, ErrOutOfRange)
			}
			if !m.rows[j].Contains(uint32(i)) {
				return fmt.Errorf("Validate(%d,%d): %w", i, j, ErrAsymmetric)
			}
		}
	}

	return nil
}
