package entropy

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Eps is the shift added inside ln when evaluating entropy and the floor
// applied to weights before ln when evaluating its gradient.
// Raising it trades accuracy near zero weights for a smaller gradient range.
const Eps = 1e-12

// ErrInvalidWeights indicates a weight vector with a negative or non-finite
// component, or a sum that is not strictly positive and finite.
var ErrInvalidWeights = errors.New("entropy: weights must be non-negative with positive, finite sum")

const (
	opEntropy    = "Entropy"
	opNormalized = "Normalized"
	opGradient   = "Gradient"
)

// entropyErrorf wraps err with the operation tag.
func entropyErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateWeights checks the weight-vector invariant shared by Entropy and
// regularize.Update: every component ≥ 0 and Σw finite and > 0.
// It returns the sum so callers can normalize without a second pass.
//
// Errors:
//   - ErrInvalidWeights, wrapped with the offending index or the sum.
//
// Complexity: O(n).
func ValidateWeights(w []float64) (float64, error) {
	for i, v := range w {
		if v < 0 || math.IsNaN(v) {
			return 0, fmt.Errorf("w[%d]=%g: %w", i, v, ErrInvalidWeights)
		}
	}
	s := floats.Sum(w)
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, fmt.Errorf("sum=%g: %w", s, ErrInvalidWeights)
	}

	return s, nil
}

// Entropy returns the Shannon entropy (in nats) of w after normalizing it to
// sum 1: H = -Σ pᵢ·ln(pᵢ + Eps), pᵢ = wᵢ/Σw.
//
// Errors:
//   - ErrInvalidWeights for a negative/NaN component, or Σw ≤ 0 / non-finite.
//
// Complexity: O(n), no allocations.
func Entropy(w []float64) (float64, error) {
	s, err := ValidateWeights(w)
	if err != nil {
		return 0, entropyErrorf(opEntropy, err)
	}

	var h, p float64
	for _, v := range w {
		p = v / s
		h -= p * math.Log(p+Eps)
	}

	return h, nil
}

// Normalized returns H(w)/ln(n) in [0, 1], where n = len(w); 1 means uniform.
// A single-component vector has no spread and yields 0.
func Normalized(w []float64) (float64, error) {
	h, err := Entropy(w)
	if err != nil {
		return 0, entropyErrorf(opNormalized, err)
	}
	if len(w) < 2 {
		return 0, nil
	}

	return h / math.Log(float64(len(w))), nil
}

// Gradient returns ∂H/∂wᵢ = -(1 + ln(max(wᵢ, Eps))) for every component.
// The result has len(w) and is a fresh slice; w is not modified.
//
// Unlike Entropy, the input is not required to sum to one (or to anything
// positive): the formula is evaluated componentwise. Negative and
// non-finite components are rejected rather than clamped.
//
// Errors:
//   - ErrInvalidWeights wrapped with the offending index.
func Gradient(w []float64) ([]float64, error) {
	g := make([]float64, len(w))
	for i, v := range w {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, entropyErrorf(opGradient, fmt.Errorf("w[%d]=%g: %w", i, v, ErrInvalidWeights))
		}
		g[i] = -(1 + math.Log(math.Max(v, Eps)))
	}

	return g, nil
}
