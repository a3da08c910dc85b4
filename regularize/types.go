package regularize

import "errors"

var (
	// ErrInvalidGradient indicates a missing loss gradient or a gradient with
	// a NaN/±Inf component.
	ErrInvalidGradient = errors.New("regularize: loss gradient must be finite")

	// ErrDimensionMismatch indicates a loss gradient whose length differs from the weights.
	ErrDimensionMismatch = errors.New("regularize: gradient length does not match weights")

	// ErrInvalidOptions indicates non-finite Eta or Gamma in an Options value.
	ErrInvalidOptions = errors.New("regularize: eta and gamma must be finite")
)

// LossGradient supplies ∂L/∂w for one update step. The set of
// implementations is closed: use Fixed or Func.
type LossGradient interface {
	// gradient returns ∂L/∂w at the normalized weights p.
	gradient(p []float64) ([]float64, error)
}

// Fixed is a precomputed loss gradient. It is used as-is; the caller is
// responsible for having evaluated it at weights consistent with the
// update's normalization.
type Fixed []float64

func (f Fixed) gradient([]float64) ([]float64, error) {
	return f, nil
}

// Func computes the loss gradient from the normalized weights. It receives a
// private copy of the weights and may keep or modify it.
type Func func(w []float64) ([]float64, error)

func (f Func) gradient(p []float64) ([]float64, error) {
	if f == nil {
		return nil, ErrInvalidGradient
	}
	cp := make([]float64, len(p))
	copy(cp, p)

	return f(cp)
}

// Compile-time checks.
var (
	_ LossGradient = Fixed(nil)
	_ LossGradient = Func(nil)
)
