// Package adjacency holds the symmetric binary consistency-adjacency matrix
// over N loop closures.
//
// Invariants, enforced by every constructor:
//
//   - Symmetry:    M[i,j] == M[j,i] for all i, j.
//   - Reflexivity: M[i,i] == 1 for all i.
//   - Binary:      every stored value is 1; absent cells are 0.
//
// Storage is one roaring bitmap per row (the row's full neighbourhood,
// self included), which doubles as the neighbour-set input of downstream
// clique or spectral pruning. The coordinate view (Entries) lists the lower
// triangle plus diagonal in column-major order, which is exactly what a
// symmetric Matrix Market file stores.
package adjacency
