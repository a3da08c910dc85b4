package regularize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/SVG-campus/Entropy-Regularization-Module/entropy"
	"github.com/SVG-campus/Entropy-Regularization-Module/simplex"
)

const opUpdate = "Update"

// updateErrorf wraps err with the operation tag.
func updateErrorf(err error) error {
	return fmt.Errorf("%s: %w", opUpdate, err)
}

// Update performs one entropy-regularized multiplicative-weights step and
// returns the next iterate on the unit simplex. Defaults: η = DefaultEta,
// γ = DefaultGamma, projection on.
//
// Errors:
//   - entropy.ErrInvalidWeights: negative/NaN weight, Σw ≤ 0 or non-finite.
//   - ErrInvalidGradient, ErrDimensionMismatch: bad loss gradient, or a step
//     η·(∇L − γ·∇H) that overflows float64; errors returned by a Func are
//     propagated wrapped.
//   - simplex.ErrNoThreshold: projection invariant broken (never for finite input).
func Update(w []float64, grad LossGradient, opts ...Option) ([]float64, error) {
	return UpdateWith(w, grad, NewOptions(opts...))
}

// UpdateWith is Update with an explicit Options value (e.g. decoded from a
// problem file). Returns ErrInvalidOptions for non-finite Eta or Gamma.
func UpdateWith(w []float64, grad LossGradient, o Options) ([]float64, error) {
	if err := o.Validate(); err != nil {
		return nil, updateErrorf(err)
	}
	if _, err := entropy.ValidateWeights(w); err != nil {
		return nil, updateErrorf(err)
	}
	p := floorNormalize(w)

	gL, err := resolveGradient(grad, p)
	if err != nil {
		return nil, updateErrorf(err)
	}
	gH, err := entropy.Gradient(p)
	if err != nil {
		return nil, updateErrorf(err)
	}

	// u = −η·(∇L − γ·∇H)
	n := len(p)
	u := make([]float64, n)
	for i := 0; i < n; i++ {
		u[i] = -o.Eta * (gL[i] - o.Gamma*gH[i])
		if math.IsNaN(u[i]) || math.IsInf(u[i], 0) {
			return nil, updateErrorf(fmt.Errorf("eta·gradient overflows at %d (u=%g): %w", i, u[i], ErrInvalidGradient))
		}
	}

	shift := floats.Max(u)
	q := make([]float64, n)
	for i := 0; i < n; i++ {
		q[i] = p[i] * math.Exp(u[i]-shift)
	}
	floats.Scale(1/floats.Sum(q), q)

	if !o.Project {
		return q, nil
	}
	q, err = simplex.ProjectUnit(q)
	if err != nil {
		return nil, updateErrorf(err)
	}

	return q, nil
}

// floorNormalize returns max(w, Eps) rescaled to sum 1.
// Assumes w passed entropy.ValidateWeights.
func floorNormalize(w []float64) []float64 {
	p := make([]float64, len(w))
	for i, v := range w {
		p[i] = math.Max(v, entropy.Eps)
	}
	floats.Scale(1/floats.Sum(p), p)

	return p
}

// resolveGradient evaluates grad at p and checks length and finiteness.
func resolveGradient(grad LossGradient, p []float64) ([]float64, error) {
	if grad == nil {
		return nil, fmt.Errorf("nil loss gradient: %w", ErrInvalidGradient)
	}
	g, err := grad.gradient(p)
	if err != nil {
		return nil, fmt.Errorf("loss gradient: %w", err)
	}
	if len(g) != len(p) {
		return nil, fmt.Errorf("len(grad)=%d, len(w)=%d: %w", len(g), len(p), ErrDimensionMismatch)
	}
	for i, v := range g {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("grad[%d]=%g: %w", i, v, ErrInvalidGradient)
		}
	}

	return g, nil
}
