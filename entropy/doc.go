// Package entropy computes the Shannon entropy of a weight vector and its
// analytic gradient.
//
// 🚀 What is it for?
//
//	Entropy measures how spread out an allocation is: ln(n) for the uniform
//	vector of n assets, 0 for an all-in-one allocation. The regularize
//	package adds γ·H(w) to the objective to keep allocations diversified,
//	and needs ∂H/∂w for that; this package supplies both.
//
// ✨ Numeric policy:
//   - Inputs are normalized to sum 1 before H is evaluated.
//   - ln(pᵢ + Eps) is used instead of ln(pᵢ), so zero weights contribute 0
//     instead of NaN. The shift biases H by roughly -Σ pᵢ·Eps/pᵢ for tiny
//     pᵢ; the shifted value is what callers get and what tests pin down.
//   - Gradient floors wᵢ at Eps before ln, so zero weights give a large but
//     finite gradient.
//   - Both functions reject negative or non-finite components with
//     ErrInvalidWeights. Entropy additionally rejects a non-positive sum.
//
// ⚙️ Usage:
//
//	h, err := entropy.Entropy([]float64{0.3, 0.2, 0.5}) // ≈ 1.0297 nats
//	g, err := entropy.Gradient(w)                        // -(1 + ln wᵢ)
package entropy
