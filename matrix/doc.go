// Package matrix provides the small dense linear-algebra kernels used for
// first-order covariance propagation.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set.
//   - Canonical kernels: Mul, Transpose, Add, Scale, Symmetrize.
//   - Congruence (J·Σ·Jᵀ), the linearised uncertainty-propagation rule.
//   - Block, assembling a 2×2 block matrix such as a joint covariance.
//   - Validators (ValidateSquare, ValidateSymmetric, ValidateFinite, ...)
//     returning package sentinels that callers match with errors.Is.
//
// Matrices here are tiny (3×3, 3×6, 6×6) and dense; every kernel allocates a
// fresh result and never mutates its operands.
package matrix
