// Package loopcons builds pairwise-consistency adjacency matrices for
// multi-robot loop-closure outlier rejection.
//
// 🚀 What is loopcons?
//
//	When several robots map the same environment, place recognition yields
//	inter-robot loop closures: relative-pose measurements between a pose of
//	robot a and a pose of robot b. Some of them are false matches. loopcons
//	scores every pair of closures for mutual consistency and emits the
//	symmetric 0/1 matrix that a maximum-clique or spectral selector consumes.
//
// Under the hood, everything is organized under these subpackages:
//
//	matrix/       dense float64 kernels (Mul, Transpose, Congruence, Block)
//	se2/          SE(2) pose inversion and composition with covariance propagation
//	loopclosure/  loop-closure edges, YAML documents and a synthetic generator
//	consistency/  the pairwise test and the parallel adjacency builder
//	adjacency/    immutable symmetric binary matrix (roaring bitmap rows)
//	mtx/          Matrix Market reader/writer with gzip, zstd and lz4 codecs
//	config/       YAML run configuration for the CLI
//	cmd/build-adjacency  command-line entry point
//
// Quick example:
//
//	set, _ := loopclosure.Load("closures.yaml")
//	b, _ := consistency.NewBuilder(set, consistency.WithGamma(0.5))
//	adj, _, _ := b.BuildMatrix(ctx)
//	_ = mtx.WriteFile("adjacency.mtx", adj, "")
//
//	go install github.com/katalvlaran/loopcons/cmd/build-adjacency@latest
package loopcons
