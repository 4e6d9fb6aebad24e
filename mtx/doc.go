// SPDX-License-Identifier: MIT

// Package mtx persists adjacency matrices in the Matrix Market exchange
// format.
//
// Files are written as
//
//	%%MatrixMarket matrix coordinate pattern symmetric
//	% <comment>
//	N N nnz
//	row col          (1-based, lower triangle and diagonal, column-major)
//
// so that scipy.io.mmread, MATLAB and most maximum-clique solvers can load
// them directly. Read accepts pattern, integer and real fields with either
// symmetric or general storage.
//
// WriteFile and ReadFile select a stream codec from the file extension:
// ".gz" (gzip), ".zst" (zstandard), ".lz4" (LZ4 frame) or none.
package mtx
