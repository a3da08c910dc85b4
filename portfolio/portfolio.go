// Package portfolio supplies loss gradients for the regularize package in the
// common mean-variance setting: the variance wᵀΣw of an allocation w under a
// covariance matrix Σ, its gradient 2·Σ·w, a sample covariance estimate
// from a table of asset returns, and the closed-form minimum-variance weights.
//
// Shapes are not pre-validated here: a covariance whose column count does
// not match len(w) fails inside matrix.MatVec with matrix.ErrDimensionMismatch.
package portfolio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/SVG-campus/Entropy-Regularization-Module/matrix"
	"github.com/SVG-campus/Entropy-Regularization-Module/regularize"
)

const (
	opVarianceGradient = "VarianceGradient"
	opVariance         = "Variance"
	opCovariance       = "Covariance"
	opMinimumVariance  = "MinimumVariance"
)

func portfolioErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// VarianceGradient returns ∇(wᵀΣw) = 2·Σ·w. Symmetry of cov is assumed,
// not checked.
//
// Errors:
//   - matrix.ErrNilMatrix (nil cov or nil w), matrix.ErrDimensionMismatch (cov.Cols != len(w)).
func VarianceGradient(w []float64, cov matrix.Matrix) ([]float64, error) {
	g, err := matrix.MatVec(cov, w)
	if err != nil {
		return nil, portfolioErrorf(opVarianceGradient, err)
	}
	floats.Scale(2, g)

	return g, nil
}

// Variance returns the quadratic form wᵀΣw.
// cov must be len(w)×len(w); other shapes yield matrix.ErrDimensionMismatch.
func Variance(w []float64, cov matrix.Matrix) (float64, error) {
	sw, err := matrix.MatVec(cov, w)
	if err != nil {
		return 0, portfolioErrorf(opVariance, err)
	}
	if len(sw) != len(w) {
		return 0, portfolioErrorf(opVariance, matrix.ErrDimensionMismatch)
	}

	return floats.Dot(w, sw), nil
}

// Covariance estimates the sample covariance of asset returns. Each row of
// returns is one period, each column one asset; at least two periods are
// required.
func Covariance(returns matrix.Matrix) (matrix.Matrix, error) {
	cov, _, err := matrix.Covariance(returns)
	if err != nil {
		return nil, portfolioErrorf(opCovariance, err)
	}

	return cov, nil
}

// MinimumVariance returns the fully invested allocation with the smallest
// variance, Σ⁻¹·1 / (1ᵀ·Σ⁻¹·1). Short positions are allowed, so components
// can be negative when assets are strongly correlated; project the result
// with simplex.ProjectUnit for a long-only reference.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (non-square),
// matrix.ErrSingular (singular Σ or 1ᵀ·Σ⁻¹·1 = 0).
func MinimumVariance(cov matrix.Matrix) ([]float64, error) {
	if err := matrix.ValidateNotNil(cov); err != nil {
		return nil, portfolioErrorf(opMinimumVariance, err)
	}
	ones := make([]float64, cov.Rows())
	for i := range ones {
		ones[i] = 1
	}
	x, err := matrix.Solve(cov, ones)
	if err != nil {
		return nil, portfolioErrorf(opMinimumVariance, err)
	}
	total := floats.Sum(x)
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, portfolioErrorf(opMinimumVariance, fmt.Errorf("1ᵀΣ⁻¹1 = %g: %w", total, matrix.ErrSingular))
	}
	floats.Scale(1/total, x)

	return x, nil
}

// VarianceLoss returns a loss gradient that evaluates VarianceGradient at the
// normalized weights the update step works on.
func VarianceLoss(cov matrix.Matrix) regularize.LossGradient {
	return regularize.Func(func(w []float64) ([]float64, error) {
		return VarianceGradient(w, cov)
	})
}
