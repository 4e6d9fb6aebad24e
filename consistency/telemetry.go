// SPDX-License-Identifier: MIT

package consistency

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/katalvlaran/loopcons/consistency"

var tracer = otel.Tracer(instrumentationName)
var meter = otel.Meter(instrumentationName)

var (
	// buildDuration measures one BuildMatrix call, from the first pair to the
	// symmetry check.
	buildDuration metric.Float64Histogram
	// pairsEvaluated counts unordered pairs scored in both directions.
	pairsEvaluated metric.Int64Counter
	// pairsDegenerate counts directional scores forced to +Inf by a
	// non positive-definite discrepancy covariance.
	pairsDegenerate metric.Int64Counter
)

func init() {
	var err error
	buildDuration, err = meter.Float64Histogram(
		"consistency.build.duration",
		metric.WithDescription("The duration of a single adjacency-matrix build."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		panic("consistency: failed to init 'consistency.build.duration' instrument")
	}

	pairsEvaluated, err = meter.Int64Counter(
		"consistency.pairs.evaluated",
		metric.WithDescription("The number of loop-closure pairs scored in both directions."),
	)
	if err != nil {
		panic("consistency: failed to init 'consistency.pairs.evaluated' instrument")
	}

	pairsDegenerate, err = meter.Int64Counter(
		"consistency.pairs.degenerate",
		metric.WithDescription("The number of directional scores with a degenerate covariance."),
	)
	if err != nil {
		panic("consistency: failed to init 'consistency.pairs.degenerate' instrument")
	}
}

// measureBuild records one build. Each record carries the matrix dimension
// and whether the build succeeded, so failed builds can be analysed apart.
func measureBuild(ctx context.Context, n int, stats Stats, succeeded bool, d time.Duration) {
	attrs := attribute.NewSet(
		attribute.Int("loop_closures", n),
		attribute.Bool("succeeded", succeeded),
	)
	buildDuration.Record(ctx, float64(d.Microseconds())/1000, metric.WithAttributeSet(attrs))
	pairsEvaluated.Add(ctx, int64(stats.PairsEvaluated), metric.WithAttributeSet(attrs))
	pairsDegenerate.Add(ctx, int64(stats.Degenerate), metric.WithAttributeSet(attrs))
}
