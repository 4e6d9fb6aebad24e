// Package loopclosure models the inter-robot loop closures consumed by the
// consistency builder.
//
// Each Edge connects a pose of one robot to a pose of another and carries the
// relative transform it implies between the two robots' reference frames,
// together with its 3×3 covariance. A Set is the ordered collection; its
// index order fixes the row/column order of the adjacency matrix and has no
// other meaning.
//
// The package also provides:
//
//   - Validate: structural checks (non-empty, finite, symmetric 3×3 covariances).
//   - Decode/Encode/Load/Save: a YAML document format for loop-closure sets.
//   - Generate: deterministic synthetic sets (agreeing inliers plus random
//     outliers), used for demos, tests and benchmarks.
package loopclosure
