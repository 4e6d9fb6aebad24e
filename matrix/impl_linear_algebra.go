// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise addition, scalar scaling, matrix multiplication, transpose,
// symmetrisation, block assembly and the congruence transform J·Σ·Jᵀ.
// All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.
//
// Notes:
//   - *Dense operands take a flat-slice fast path; other implementations go
//     through At/Set with identical loop orders, so both paths agree bitwise.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping.
const (
	opAdd        = "Add"
	opMul        = "Mul"
	opTranspose  = "Transpose"
	opScale      = "Scale"
	opSymmetrize = "Symmetrize"
	opCongruence = "Congruence"
	opBlock      = "Block"
	opAllClose   = "AllClose"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// toDense materialises any Matrix as *Dense; a *Dense is returned as is.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	res, _ := NewDense(da.r, da.c)
	for idx := range res.data {
		res.data[idx] = da.data[idx] + db.data[idx]
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	dm, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, _ := NewDense(dm.r, dm.c)
	for idx, v := range dm.data {
		res.data[idx] = alpha * v
	}

	return res, nil
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
//
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→k→j over row-major strides, skipping zero A[i,k].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := da.r, da.c, db.c
	res, _ := NewDense(aRows, bCols)
	var (
		i, j, k                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// The original matrix is never mutated.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := dm.r, dm.c
	res, _ := NewDense(cols, rows)
	// data[i*cols + j] → res.data[j*rows + i]
	for i := 0; i < rows; i++ {
		base := i * cols
		for j := 0; j < cols; j++ {
			res.data[j*rows+i] = dm.data[base+j]
		}
	}

	return res, nil
}

// Symmetrize returns (A + Aᵀ)/2 for a square A.
//
// Behavior highlights:
//   - Exact symmetry of the result: cell (i,j) and (j,i) are computed by the
//     same expression, so they compare equal bitwise.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square).
func Symmetrize(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	dm, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	n := dm.r
	res, _ := NewDense(n, n)
	var avg float64
	for i := 0; i < n; i++ {
		res.data[i*n+i] = dm.data[i*n+i]
		for j := i + 1; j < n; j++ {
			avg = 0.5 * (dm.data[i*n+j] + dm.data[j*n+i])
			res.data[i*n+j] = avg
			res.data[j*n+i] = avg
		}
	}

	return res, nil
}

// Congruence computes the first-order propagation J·Σ·Jᵀ and symmetrises the result.
//
// Implementation:
//   - Stage 1: validate Σ square and J.Cols == Σ.Rows.
//   - Stage 2: T = J·Σ, then C = T·Jᵀ.
//   - Stage 3: C = (C + Cᵀ)/2 so round-off cannot leak asymmetry downstream.
//
// Inputs:
//   - j: m×n Jacobian.
//   - sigma: n×n covariance.
//
// Returns:
//   - *Dense: m×m symmetric covariance.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(m·n² + m²·n), Space O(m·n + m²).
func Congruence(j, sigma Matrix) (*Dense, error) {
	if err := ValidateNotNil(sigma); err != nil {
		return nil, matrixErrorf(opCongruence, err)
	}
	if err := ValidateSquare(sigma); err != nil {
		return nil, matrixErrorf(opCongruence, err)
	}
	t, err := Mul(j, sigma)
	if err != nil {
		return nil, matrixErrorf(opCongruence, err)
	}
	jt, err := Transpose(j)
	if err != nil {
		return nil, matrixErrorf(opCongruence, err)
	}
	c, err := Mul(t, jt)
	if err != nil {
		return nil, matrixErrorf(opCongruence, err)
	}

	return Symmetrize(c)
}

// Block assembles the 2×2 block matrix [[a, b], [c, d]].
//
// Shape contract:
//   - a.Rows == b.Rows, c.Rows == d.Rows, a.Cols == c.Cols, b.Cols == d.Cols.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(R*C) for the (R×C) result.
func Block(a, b, c, d Matrix) (*Dense, error) {
	for _, m := range []Matrix{a, b, c, d} {
		if err := ValidateNotNil(m); err != nil {
			return nil, matrixErrorf(opBlock, err)
		}
	}
	if a.Rows() != b.Rows() || c.Rows() != d.Rows() || a.Cols() != c.Cols() || b.Cols() != d.Cols() {
		return nil, matrixErrorf(opBlock, ErrDimensionMismatch)
	}
	top, left := a.Rows(), a.Cols()
	res, err := NewDense(top+c.Rows(), left+b.Cols())
	if err != nil {
		return nil, matrixErrorf(opBlock, err)
	}
	place := func(src Matrix, r0, c0 int) error {
		ds, err := toDense(src)
		if err != nil {
			return err
		}
		for i := 0; i < ds.r; i++ {
			copy(res.data[(r0+i)*res.c+c0:(r0+i)*res.c+c0+ds.c], ds.data[i*ds.c:(i+1)*ds.c])
		}
		return nil
	}
	if err = place(a, 0, 0); err != nil {
		return nil, matrixErrorf(opBlock, err)
	}
	if err = place(b, 0, left); err != nil {
		return nil, matrixErrorf(opBlock, err)
	}
	if err = place(c, top, 0); err != nil {
		return nil, matrixErrorf(opBlock, err)
	}
	if err = place(d, top, left); err != nil {
		return nil, matrixErrorf(opBlock, err)
	}

	return res, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// NaN never compares close. Negative tolerances are abs-ed.
// Time: O(r*c). Space: O(1).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateNotNil(a); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	var av, bv float64
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			av, _ = a.At(i, j)
			bv, _ = b.At(i, j)
			if !(math.Abs(av-bv) <= atol+rtol*math.Abs(bv)) {
				return false, nil
			}
		}
	}

	return true, nil
}
