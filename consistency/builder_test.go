// SPDX-License-Identifier: MIT

package consistency_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/loopcons/adjacency"
	"github.com/katalvlaran/loopcons/consistency"
	"github.com/katalvlaran/loopcons/loopclosure"
	"github.com/katalvlaran/loopcons/matrix"
	"github.com/katalvlaran/loopcons/se2"
)

// edge builds an a→b loop closure with a diagonal covariance.
func edge(t *testing.T, k int, z se2.Pose, variances ...float64) loopclosure.Edge {
	t.Helper()
	cov, err := matrix.NewDiagonal(variances...)
	require.NoError(t, err)

	return loopclosure.Edge{
		From:        loopclosure.NodeID{Robot: "a", Index: k},
		To:          loopclosure.NodeID{Robot: "b", Index: k},
		Measurement: z,
		Covariance:  cov,
	}
}

// build runs NewBuilder + BuildMatrix and fails the test on error.
func build(t *testing.T, set loopclosure.Set, opts ...consistency.Option) (*adjacency.Matrix, consistency.Stats) {
	t.Helper()
	b, err := consistency.NewBuilder(set, opts...)
	require.NoError(t, err)
	m, stats, err := b.BuildMatrix(context.Background())
	require.NoError(t, err)

	return m, stats
}

// generated returns a synthetic set from the default scenario with overrides applied.
func generated(t *testing.T, mutate func(*loopclosure.GenerateConfig)) loopclosure.Generated {
	t.Helper()
	cfg := loopclosure.DefaultGenerateConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := loopclosure.Generate(cfg)
	require.NoError(t, err)

	return g
}

func at(t *testing.T, m *adjacency.Matrix, i, j int) bool {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

func TestBuildMatrix_IdenticalClosuresAreAdjacent(t *testing.T) {
	set := loopclosure.Set{
		edge(t, 0, se2.Identity(), 0.01, 0.01, 0.001),
		edge(t, 1, se2.Identity(), 0.01, 0.01, 0.001),
	}
	m, stats := build(t, set)

	assert.True(t, at(t, m, 0, 1))
	assert.True(t, at(t, m, 1, 0))
	assert.Equal(t, []adjacency.Entry{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}, m.Entries())
	assert.Equal(t, consistency.Stats{PairsEvaluated: 1, Consistent: 1}, stats)
}

func TestBuildMatrix_DisagreeingClosuresAreNotAdjacent(t *testing.T) {
	set := loopclosure.Set{
		edge(t, 0, se2.Pose{}, 0.01, 0.01, 0.001),
		edge(t, 1, se2.Pose{X: 10, Y: 10}, 0.01, 0.01, 0.001),
	}
	m, stats := build(t, set)

	assert.False(t, at(t, m, 0, 1))
	assert.False(t, at(t, m, 1, 0))
	assert.True(t, at(t, m, 0, 0))
	assert.True(t, at(t, m, 1, 1))
	assert.Equal(t, 0, stats.Consistent)
}

func TestBuildMatrix_SingleClosure(t *testing.T) {
	m, stats := build(t, loopclosure.Set{edge(t, 0, se2.Pose{X: 3, Y: 1, Phi: 2}, 1, 1, 1)})

	assert.Equal(t, 1, m.N())
	assert.Equal(t, []adjacency.Entry{{Row: 0, Col: 0}}, m.Entries())
	assert.Equal(t, consistency.Stats{}, stats)
}

func TestNewBuilder_EmptySet(t *testing.T) {
	_, err := consistency.NewBuilder(nil)
	require.ErrorIs(t, err, consistency.ErrEmptySet)
	assert.ErrorIs(t, err, loopclosure.ErrEmptySet)

	_, err = consistency.NewBuilder(loopclosure.Set{})
	assert.ErrorIs(t, err, consistency.ErrEmptySet)
}

func TestNewBuilder_RejectsMalformedEdge(t *testing.T) {
	bad := edge(t, 1, se2.Pose{}, 1, 1, 1)
	bad.Covariance = nil
	_, err := consistency.NewBuilder(loopclosure.Set{edge(t, 0, se2.Pose{}, 1, 1, 1), bad})
	assert.ErrorIs(t, err, loopclosure.ErrInvalidCovariance)

	nan := edge(t, 0, se2.Pose{X: math.NaN()}, 1, 1, 1)
	_, err = consistency.NewBuilder(loopclosure.Set{nan})
	assert.ErrorIs(t, err, loopclosure.ErrInvalidMeasurement)
}

func TestBuildMatrix_SymmetricAndReflexive(t *testing.T) {
	g := generated(t, func(c *loopclosure.GenerateConfig) {
		c.Inliers, c.Outliers = 12, 8
		c.Sigma = [3]float64{0.2, 0.2, 0.05}
	})
	m, _ := build(t, g.Set, consistency.WithGamma(3))

	require.NoError(t, m.Validate())
	n := m.N()
	for i := 0; i < n; i++ {
		assert.True(t, at(t, m, i, i), "diagonal %d", i)
		for j := 0; j < i; j++ {
			assert.Equal(t, at(t, m, i, j), at(t, m, j, i), "cell (%d,%d)", i, j)
		}
	}
}

func TestBuildMatrix_MatchesPairwiseScores(t *testing.T) {
	g := generated(t, func(c *loopclosure.GenerateConfig) {
		c.Sigma = [3]float64{0.1, 0.1, 0.02}
	})
	const gamma = 2.0
	b, err := consistency.NewBuilder(g.Set, consistency.WithGamma(gamma))
	require.NoError(t, err)
	m, _, err := b.BuildMatrix(context.Background())
	require.NoError(t, err)

	for i := 0; i < b.N(); i++ {
		for j := 0; j < i; j++ {
			sij, err := b.Score(i, j)
			require.NoError(t, err)
			sji, err := b.Score(j, i)
			require.NoError(t, err)
			assert.Equal(t, sij <= gamma && sji <= gamma, at(t, m, i, j), "pair (%d,%d)", i, j)
		}
	}
}

func TestBuildMatrix_InliersFormClique(t *testing.T) {
	g := generated(t, func(c *loopclosure.GenerateConfig) {
		c.Sigma = [3]float64{}
	})
	m, stats := build(t, g.Set)

	outlier := make(map[int]bool, len(g.Outliers))
	for _, o := range g.Outliers {
		outlier[o] = true
	}
	n := m.N()
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if !outlier[i] && !outlier[j] {
				assert.True(t, at(t, m, i, j), "inliers %d and %d must agree", i, j)
			}
			if outlier[i] != outlier[j] {
				assert.False(t, at(t, m, i, j), "inlier/outlier pair (%d,%d)", i, j)
			}
		}
	}
	inliers := n - len(g.Outliers)
	assert.GreaterOrEqual(t, stats.Consistent, inliers*(inliers-1)/2)
	assert.Zero(t, stats.Degenerate)
}

func TestBuildMatrix_GammaMonotonic(t *testing.T) {
	g := generated(t, func(c *loopclosure.GenerateConfig) {
		c.Inliers, c.Outliers = 10, 10
		c.Sigma = [3]float64{0.3, 0.3, 0.05}
		c.OutlierSpan = 2
	})

	var prev *adjacency.Matrix
	for _, gamma := range []float64{0, 0.5, 1, 2, 5, 50} {
		m, _ := build(t, g.Set, consistency.WithGamma(gamma))
		if prev != nil {
			for _, e := range prev.Entries() {
				assert.True(t, at(t, m, e.Row, e.Col), "gamma=%v dropped (%d,%d)", gamma, e.Row, e.Col)
			}
			assert.GreaterOrEqual(t, m.NNZ(), prev.NNZ())
		}
		prev = m
	}
}

func TestBuildMatrix_ParallelMatchesSequential(t *testing.T) {
	g := generated(t, func(c *loopclosure.GenerateConfig) {
		c.Inliers, c.Outliers = 40, 25
		c.Sigma = [3]float64{0.2, 0.2, 0.05}
		c.Seed = 7
	})
	seq, seqStats := build(t, g.Set, consistency.WithGamma(2))

	for _, workers := range []int{0, 2, 3, 8, 100} {
		par, parStats := build(t, g.Set, consistency.WithGamma(2), consistency.WithWorkers(workers))
		assert.True(t, seq.Equal(par), "workers=%d", workers)
		assert.Equal(t, seqStats, parStats, "workers=%d", workers)
	}
}

func TestBuildMatrix_Cancelled(t *testing.T) {
	g := generated(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		b, err := consistency.NewBuilder(g.Set, consistency.WithWorkers(workers))
		require.NoError(t, err)
		m, _, err := b.BuildMatrix(ctx)
		assert.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
		assert.Nil(t, m)
	}
}

func TestScore_DegenerateCovarianceIsInfinite(t *testing.T) {
	set := loopclosure.Set{
		edge(t, 0, se2.Pose{}, 0, 0, 0),
		edge(t, 1, se2.Pose{}, 0, 0, 0),
	}
	b, err := consistency.NewBuilder(set, consistency.WithGamma(1e6))
	require.NoError(t, err)

	s, err := b.Score(0, 1)
	require.NoError(t, err)
	assert.True(t, math.IsInf(s, 1))

	m, stats, err := b.BuildMatrix(context.Background())
	require.NoError(t, err)
	assert.False(t, at(t, m, 0, 1))
	assert.Equal(t, 2, stats.Degenerate)
	assert.Zero(t, stats.Consistent)
}

func TestScore(t *testing.T) {
	set := loopclosure.Set{
		edge(t, 0, se2.Pose{X: 1, Y: 2, Phi: 0.3}, 0.04, 0.04, 0.01),
		edge(t, 1, se2.Pose{X: 1.1, Y: 2, Phi: 0.3}, 0.04, 0.04, 0.01),
	}
	b, err := consistency.NewBuilder(set)
	require.NoError(t, err)
	assert.Equal(t, 2, b.N())
	assert.Equal(t, consistency.DefaultGamma, b.Gamma())

	self, err := b.Score(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0, self, 1e-9)

	s, err := b.Score(1, 0)
	require.NoError(t, err)
	assert.Greater(t, s, 0.0)
	assert.False(t, math.IsInf(s, 0))

	for _, ij := range [][2]int{{-1, 0}, {0, 2}, {2, 2}} {
		_, err := b.Score(ij[0], ij[1])
		assert.ErrorIs(t, err, consistency.ErrIndexOutOfRange)
	}
}

func TestBuildMatrix_HeadingResidualIsWrapped(t *testing.T) {
	// Headings just either side of ±π describe nearly the same rotation.
	set := loopclosure.Set{
		edge(t, 0, se2.Pose{Phi: math.Pi - 0.001}, 0.01, 0.01, 0.01),
		edge(t, 1, se2.Pose{Phi: -math.Pi + 0.001}, 0.01, 0.01, 0.01),
	}
	m, _ := build(t, set)
	assert.True(t, at(t, m, 0, 1))
}

func TestBuildMatrix_DoesNotMutateInput(t *testing.T) {
	g := generated(t, nil)
	before := make([]se2.Pose, len(g.Set))
	covs := make([][]float64, len(g.Set))
	for i, e := range g.Set {
		before[i] = e.Measurement
		covs[i] = append([]float64(nil), e.Covariance.RawData()...)
	}
	build(t, g.Set, consistency.WithWorkers(4))

	for i, e := range g.Set {
		assert.Equal(t, before[i], e.Measurement)
		assert.Equal(t, covs[i], e.Covariance.RawData())
	}
}

func TestBuildMatrix_LogsSummary(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	g := generated(t, nil)
	build(t, g.Set, consistency.WithLogger(zap.New(core)))

	entries := logs.FilterMessage("adjacency matrix built").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, len(g.Set), fields["loop_closures"])
	assert.EqualValues(t, len(g.Set)*(len(g.Set)-1)/2, fields["pairs"])
}

func TestOptions_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "consistency: WithGamma: gamma must be finite, non-negative",
		func() { consistency.WithGamma(-0.1) })
	assert.Panics(t, func() { consistency.WithGamma(math.NaN()) })
	assert.Panics(t, func() { consistency.WithGamma(math.Inf(1)) })
	assert.PanicsWithValue(t, "consistency: WithWorkers: workers must be >= 0",
		func() { consistency.WithWorkers(-1) })
	assert.NotPanics(t, func() { consistency.WithGamma(0) })
	assert.NotPanics(t, func() { consistency.WithLogger(nil) })
}

func TestOptions_NilAndLastWins(t *testing.T) {
	b, err := consistency.NewBuilder(
		loopclosure.Set{edge(t, 0, se2.Pose{}, 1, 1, 1)},
		nil, consistency.WithGamma(1), consistency.WithGamma(4), consistency.WithLogger(nil),
	)
	require.NoError(t, err)
	assert.Equal(t, 4.0, b.Gamma())
}
