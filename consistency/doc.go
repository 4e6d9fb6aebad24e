// Package consistency builds the pairwise-consistency adjacency matrix over
// a set of inter-robot loop closures.
//
// 🚀 What is pairwise consistency?
//
//	Every inter-robot loop closure implies a transform between two robots'
//	reference frames. Two trustworthy closures imply (nearly) the same
//	transform; a false place-recognition match does not. For each pair
//	(i, j) the builder composes one measurement with the inverse of the
//	other, propagates both covariances through the SE(2) Jacobians, and
//	scores the discrepancy Δ by its Mahalanobis distance √(Δᵀ Σ⁻¹ Δ).
//	The pair is adjacent iff both directional scores are ≤ gamma.
//
// ✨ Key features:
//   - symmetric 0/1 matrix with identity diagonal, checked before return
//   - degenerate (non positive-definite) covariances score +Inf, never adjacent
//   - optional row sharding across workers; output identical to the sequential build
//   - structured logging (zap) and OpenTelemetry spans/metrics
//
// ⚙️ Usage:
//
//	b, err := consistency.NewBuilder(set, consistency.WithGamma(0.5))
//	adj, stats, err := b.BuildMatrix(ctx)
//
// Performance:
//
//   - Time:   O(N²) pair evaluations, each O(1)
//   - Memory: O(N²) bytes for the working grid, O(nnz) for the result
package consistency
