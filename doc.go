// Package entreg is an entropy-regularized multiplicative-weights toolkit for
// allocations on the probability simplex, e.g. portfolio weights.
//
// 🚀 What is in the box?
//
//	Four small, stateless numerical building blocks:
//		• entropy     — Shannon entropy H(w) and its gradient ∂H/∂w
//		• simplex     — Euclidean projection onto {x ≥ 0, Σx = s}
//		• regularize  — one exponentiated-gradient step balancing loss and entropy
//		• portfolio   — variance wᵀΣw, its gradient 2·Σ·w, sample covariance,
//		                minimum-variance weights
//
//	plus the dense matrix layer they share (matrix/) and a CLI (cmd/entreg).
//
// ✨ Why this shape?
//
//   - Pure functions – no global state, inputs never mutated, safe for concurrent use
//   - Explicit failures – sentinel errors matched with errors.Is, no silent clamping
//   - Numerically careful – ε-shifted logs, max-shifted exponentials,
//     projection as a final safety net
//
// Data flow of one step:
//
//	caller ──► portfolio.VarianceGradient (or custom ∇L)
//	       ──► regularize.Update ──► entropy.Gradient
//	                             └─► simplex.Project ──► next weights
//
// The caller owns the loss: the toolkit never chooses an objective and keeps
// no state between steps.
//
//	go get github.com/SVG-campus/Entropy-Regularization-Module
package entreg
