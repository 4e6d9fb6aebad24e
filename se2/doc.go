// Package se2 implements closed-form SE(2) pose algebra with first-order
// covariance propagation.
//
// A Pose (x, y, φ) is a planar rigid transform. Its uncertainty is a 3×3
// covariance in the tangent space at that pose. Every operation maps both:
//
//	Invert(p, Σ)              → (p⁻¹,     J⊖ Σ J⊖ᵀ)
//	Compose(p1, p2, Σ1, Σ2, X) → (p1 ⊕ p2, J⊕ [[Σ1, X], [Xᵀ, Σ2]] J⊕ᵀ)
//	Between(a, b, Σa, Σb)      → (a⁻¹ ⊕ b, ...)  with zero cross-covariance
//
// Propagated covariances are symmetrised before they are returned, so
// matrix.ValidateSymmetric(Σ, 0) holds for every result.
//
// ⚙️ Usage:
//
//	inv, invCov, err := se2.Invert(p, cov)
//	rel, relCov, err := se2.Compose(inv, q, invCov, qCov, nil)
//
// All functions are pure: inputs are never mutated.
package se2
