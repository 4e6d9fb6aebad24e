// SPDX-License-Identifier: MIT

package consistency

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/loopcons/adjacency"
	"github.com/katalvlaran/loopcons/loopclosure"
	"github.com/katalvlaran/loopcons/se2"
)

// Builder scores every pair of inter-robot loop closures and assembles the
// symmetric consistency-adjacency matrix.
//
// A Builder holds only its inputs (the set, by reference, and the options)
// plus per-edge inverse transforms; BuildMatrix keeps no state between calls
// and is safe to call concurrently.
type Builder struct {
	edges loopclosure.Set
	inv   []inverse
	opts  Options
}

// Stats summarises one BuildMatrix call.
type Stats struct {
	PairsEvaluated int // unordered pairs (i, j), j < i
	Consistent     int // pairs marked adjacent
	Degenerate     int // directional scores forced to +Inf
}

// NewBuilder validates edges and prepares a Builder.
//
// Implementation:
//   - Stage 1: edges.Validate() (non-empty, finite, symmetric 3×3 covariances).
//   - Stage 2: resolve options over defaults.
//   - Stage 3: cache z⁻¹ and its covariance for every edge.
//
// Errors:
//   - ErrEmptySet for an empty set; loopclosure sentinels for malformed edges.
//
// Complexity:
//   - Time O(N), Space O(N).
func NewBuilder(edges loopclosure.Set, opts ...Option) (*Builder, error) {
	if err := edges.Validate(); err != nil {
		return nil, fmt.Errorf("consistency: %w", err)
	}
	b := &Builder{
		edges: edges,
		inv:   make([]inverse, len(edges)),
		opts:  gatherOptions(opts...),
	}
	for k, e := range edges {
		pose, cov, err := se2.Invert(e.Measurement, e.Covariance)
		if err != nil {
			return nil, fmt.Errorf("consistency: loop closure %d (%s): %w", k, e, err)
		}
		b.inv[k] = inverse{pose: pose, cov: cov}
	}

	return b, nil
}

// N returns the number of loop closures (the matrix dimension).
func (b *Builder) N() int { return len(b.edges) }

// Gamma returns the effective consistency threshold.
func (b *Builder) Gamma() float64 { return b.opts.gamma }

// Score returns the directional consistency score of loop closure i with
// respect to loop closure j: √(Δᵀ Σ⁻¹ Δ) for Δ = z_j⁻¹ ⊕ z_i.
// Degenerate covariances score +Inf. Score(i, i) is 0 for any well-conditioned edge.
func (b *Builder) Score(i, j int) (float64, error) {
	n := len(b.edges)
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, fmt.Errorf("Score(%d,%d) with N=%d: %w", i, j, n, ErrIndexOutOfRange)
	}
	s, _ := b.directional(i, j)

	return s, nil
}

// BuildMatrix evaluates every unordered pair and returns the adjacency matrix.
//
// Implementation:
//   - Stage 1: allocate an N×N 0/1 grid addressed by (i, j); set the diagonal.
//   - Stage 2: for each row i and every j < i compute score_ij and score_ji;
//     write grid[i,j] = grid[j,i] = 1 iff both are ≤ gamma. Rows are
//     independent tasks writing disjoint cells; with workers > 1 they run on
//     an errgroup limited to that many goroutines.
//   - Stage 3: adjacency.FromGrid checks exact symmetry and the unit diagonal.
//
// Behavior highlights:
//   - Parallel and sequential builds produce identical matrices.
//   - A degenerate pair is excluded; it never aborts the batch.
//
// Errors:
//   - ctx.Err() when cancelled between rows.
//   - ErrAsymmetric (fatal postcondition) when the grid is not symmetric.
//
// Complexity:
//   - Time O(N²), Space O(N²) for the grid.
func (b *Builder) BuildMatrix(ctx context.Context) (_ *adjacency.Matrix, stats Stats, err error) {
	n := len(b.edges)
	ctx, span := tracer.Start(ctx, "consistency.BuildMatrix", trace.WithAttributes(
		attribute.Int("loop_closures", n),
		attribute.Float64("gamma", b.opts.gamma),
		attribute.Int("workers", b.opts.workers),
	))
	start := time.Now()
	defer func() {
		measureBuild(ctx, n, stats, err == nil, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	grid := make([]uint8, n*n)
	for i := 0; i < n; i++ {
		grid[i*n+i] = 1
	}

	var consistent, degenerate atomic.Int64
	evalRow := func(i int) {
		var rowConsistent, rowDegenerate int64
		for j := 0; j < i; j++ {
			sij, dij := b.directional(i, j)
			sji, dji := b.directional(j, i)
			if dij {
				rowDegenerate++
			}
			if dji {
				rowDegenerate++
			}
			if sij <= b.opts.gamma && sji <= b.opts.gamma {
				grid[i*n+j] = 1
				grid[j*n+i] = 1
				rowConsistent++
			}
		}
		consistent.Add(rowConsistent)
		degenerate.Add(rowDegenerate)
	}

	if b.opts.workers <= 1 {
		for i := 1; i < n; i++ {
			if err = ctx.Err(); err != nil {
				return nil, stats, err
			}
			evalRow(i)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.opts.workers)
		for i := 1; i < n; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				evalRow(i)
				return nil
			})
		}
		if err = g.Wait(); err != nil {
			return nil, stats, err
		}
		// errgroup's derived context is cancelled by Wait; surface the caller's own cancellation.
		if err = ctx.Err(); err != nil {
			return nil, stats, err
		}
	}

	stats = Stats{
		PairsEvaluated: n * (n - 1) / 2,
		Consistent:     int(consistent.Load()),
		Degenerate:     int(degenerate.Load()),
	}

	adj, err := adjacency.FromGrid(n, grid)
	if err != nil {
		b.opts.logger.Error("adjacency postcondition violated",
			zap.Int("loop_closures", n), zap.Error(err))
		return nil, stats, fmt.Errorf("%w: %w", ErrAsymmetric, err)
	}

	b.opts.logger.Info("adjacency matrix built",
		zap.Int("loop_closures", n),
		zap.Float64("gamma", b.opts.gamma),
		zap.Int("pairs", stats.PairsEvaluated),
		zap.Int("consistent", stats.Consistent),
		zap.Int("degenerate", stats.Degenerate),
		zap.Int("nnz", adj.NNZ()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return adj, stats, nil
}
