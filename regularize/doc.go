// Package regularize performs one entropy-regularized exponentiated-gradient
// (mirror-descent) step on the probability simplex.
//
// 🚀 What does a step do?
//
//	Given weights w, a loss gradient ∇L, a step size η and an entropy
//	strength γ, Update moves w toward lower loss and higher entropy:
//
//	  p  = normalize(max(w, Eps))
//	  u  = −η·(∇L(p) − γ·∇H(p))
//	  q  = normalize(p ⊙ exp(u − max u))
//	  q' = Project(q, 1)            (when projection is enabled)
//
//	Subtracting max u keeps exp from overflowing and cancels out in the
//	normalization. Multiplying by exp(·) preserves non-negativity, so the
//	final projection only cleans up floating-point residue.
//
// ✨ Loss gradients:
//
//	∇L is a LossGradient: either Fixed (a vector the caller computed for
//	the normalized weights) or Func (evaluated on the normalized weights
//	inside Update). The choice is made by the caller's type, not by
//	inspecting values at runtime.
//
// ⚙️ Usage:
//
//	next, err := regularize.Update(w, regularize.Fixed(grad),
//	    regularize.WithEta(0.05),
//	    regularize.WithGamma(0.1),
//	)
//
// Guarantees: for valid inputs the result is componentwise ≥ 0 and sums to
// 1 within 1e-9. Inputs are never mutated. Update is safe for concurrent use.
package regularize
