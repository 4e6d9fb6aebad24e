// SPDX-License-Identifier: MIT

package consistency

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/loopcons/matrix"
	"github.com/katalvlaran/loopcons/se2"
)

// inverse caches z⁻¹ and its covariance for one loop closure, so the N²
// pair loop performs N inversions instead of N².
type inverse struct {
	pose se2.Pose
	cov  *matrix.Dense
}

// mahalanobis returns √(rᵀ Σ⁻¹ r) for the residual pose r.
//
// Behavior highlights:
//   - The heading residual is wrapped to (-π, π] first.
//   - Σ that is not positive definite (Cholesky fails), or any NaN/Inf in the
//     result, yields +Inf with degenerate == true.
func mahalanobis(r se2.Pose, sigma *matrix.Dense) (dist float64, degenerate bool) {
	if !r.IsFinite() || !sigma.IsFinite() {
		return math.Inf(1), true
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(mat.NewSymDense(se2.Dim, sigma.RawData())); !ok {
		return math.Inf(1), true
	}
	x := mat.NewVecDense(se2.Dim, []float64{r.X, r.Y, se2.WrapAngle(r.Phi)})
	origin := mat.NewVecDense(se2.Dim, nil)

	dist = stat.Mahalanobis(x, origin, &chol)
	if math.IsNaN(dist) || math.IsInf(dist, 0) {
		return math.Inf(1), true
	}

	return dist, false
}

// directional scores edge i's measurement against edge j's: the Mahalanobis
// norm of Δ = z_j⁻¹ ⊕ z_i under the propagated covariance of Δ.
func (b *Builder) directional(i, j int) (float64, bool) {
	zi := b.edges[i]
	inv := b.inv[j]
	delta, sigma, err := se2.Compose(inv.pose, zi.Measurement, inv.cov, zi.Covariance, nil)
	if err != nil {
		// Unreachable for validated sets; a failing pair is local and scores +Inf.
		b.opts.logger.Debug("pair composition failed",
			zap.Int("i", i), zap.Int("j", j), zap.Stringer("edge", zi), zap.Error(err))
		return math.Inf(1), true
	}

	return mahalanobis(delta, sigma)
}
