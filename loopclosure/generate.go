// SPDX-License-Identifier: MIT

package loopclosure

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/loopcons/matrix"
	"github.com/katalvlaran/loopcons/se2"
)

// defaultSeed is used when GenerateConfig.Seed is zero.
const defaultSeed int64 = 1

// GenerateConfig parameterises a synthetic two-robot loop-closure set.
//
// Every inlier implies Truth (the transform between the two robots' frames)
// perturbed by zero-mean Gaussian noise with standard deviations Sigma.
// Outliers imply a uniformly random transform with translation in
// [-OutlierSpan, OutlierSpan]² and an arbitrary heading, mimicking false
// place-recognition matches.
type GenerateConfig struct {
	Inliers     int        `yaml:"inliers"`
	Outliers    int        `yaml:"outliers"`
	Truth       se2.Pose   `yaml:"truth"`
	Sigma       [3]float64 `yaml:"sigma"`
	OutlierSpan float64    `yaml:"outlier_span"`
	RobotA      string     `yaml:"robot_a"`
	RobotB      string     `yaml:"robot_b"`
	Seed        int64      `yaml:"seed"`
}

// DefaultGenerateConfig returns a small, well-conditioned scenario.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Inliers:     8,
		Outliers:    4,
		Truth:       se2.Pose{X: 5, Y: -2, Phi: 0.4},
		Sigma:       [3]float64{0.05, 0.05, 0.01},
		OutlierSpan: 20,
		RobotA:      "a",
		RobotB:      "b",
		Seed:        defaultSeed,
	}
}

// Generated is a synthetic set together with the ground-truth outlier indices.
type Generated struct {
	Set      Set
	Outliers []int // ascending indices into Set
}

func (cfg GenerateConfig) validate() error {
	switch {
	case cfg.Inliers < 0 || cfg.Outliers < 0:
		return fmt.Errorf("%w: negative counts", ErrGenerateConfig)
	case cfg.Inliers+cfg.Outliers == 0:
		return fmt.Errorf("%w: no loop closures requested", ErrGenerateConfig)
	case cfg.RobotA == "" || cfg.RobotB == "" || cfg.RobotA == cfg.RobotB:
		return fmt.Errorf("%w: two distinct robot names required", ErrGenerateConfig)
	case !cfg.Truth.IsFinite() || math.IsNaN(cfg.OutlierSpan) || math.IsInf(cfg.OutlierSpan, 0) || cfg.OutlierSpan < 0:
		return fmt.Errorf("%w: non-finite truth or span", ErrGenerateConfig)
	}
	for _, s := range cfg.Sigma {
		if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
			return fmt.Errorf("%w: sigma must be finite and non-negative", ErrGenerateConfig)
		}
	}

	return nil
}

// Generate builds a deterministic synthetic loop-closure set.
//
// Implementation:
//   - Stage 1: validate cfg; seed==0 ⇒ defaultSeed.
//   - Stage 2: draw inliers around Truth, then outliers, tagging node indices.
//   - Stage 3: shuffle the order with the same RNG so outliers are interleaved.
//
// Behavior highlights:
//   - Same cfg ⇒ identical output on every platform.
//   - Every edge carries the covariance diag(Sigma²); each variance is floored
//     at 1e-12 so the covariance stays positive definite when a sigma is zero.
//
// Complexity:
//   - Time O(N), Space O(N) for N = Inliers + Outliers.
func Generate(cfg GenerateConfig) (Generated, error) {
	if err := cfg.validate(); err != nil {
		return Generated{}, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))

	var variances [3]float64
	for i, s := range cfg.Sigma {
		variances[i] = math.Max(s*s, 1e-12)
	}

	n := cfg.Inliers + cfg.Outliers
	edges := make(Set, 0, n)
	isOutlier := make([]bool, 0, n)
	for k := 0; k < n; k++ {
		var z se2.Pose
		outlier := k >= cfg.Inliers
		if outlier {
			z = se2.Pose{
				X:   cfg.Truth.X + cfg.OutlierSpan*(2*rng.Float64()-1),
				Y:   cfg.Truth.Y + cfg.OutlierSpan*(2*rng.Float64()-1),
				Phi: se2.WrapAngle(cfg.Truth.Phi + math.Pi*(2*rng.Float64()-1)),
			}
		} else {
			z = se2.Pose{
				X:   cfg.Truth.X + cfg.Sigma[0]*rng.NormFloat64(),
				Y:   cfg.Truth.Y + cfg.Sigma[1]*rng.NormFloat64(),
				Phi: se2.WrapAngle(cfg.Truth.Phi + cfg.Sigma[2]*rng.NormFloat64()),
			}
		}
		cov, err := matrix.NewDiagonal(variances[0], variances[1], variances[2])
		if err != nil {
			return Generated{}, err
		}
		edges = append(edges, Edge{
			From:        NodeID{Robot: cfg.RobotA, Index: 10 * k},
			To:          NodeID{Robot: cfg.RobotB, Index: 10*k + 5},
			Measurement: z,
			Covariance:  cov,
		})
		isOutlier = append(isOutlier, outlier)
	}

	rng.Shuffle(n, func(i, j int) {
		edges[i], edges[j] = edges[j], edges[i]
		isOutlier[i], isOutlier[j] = isOutlier[j], isOutlier[i]
	})

	out := Generated{Set: edges}
	for i, o := range isOutlier {
		if o {
			out.Outliers = append(out.Outliers, i)
		}
	}

	return out, nil
}
