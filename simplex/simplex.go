package simplex

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DefaultMass is the total mass of the probability simplex.
const DefaultMass = 1.0

var (
	// ErrInvalidMass indicates a target mass s that is not strictly positive and finite.
	ErrInvalidMass = errors.New("simplex: target mass must be > 0 and finite")

	// ErrEmptyVector indicates an empty input vector; Δₛ has no point of length 0.
	ErrEmptyVector = errors.New("simplex: input vector is empty")

	// ErrNoThreshold indicates the threshold search found no valid index, or
	// the thresholded vector carried no finite positive mass. It signals a
	// broken internal invariant (non-finite input), not a recoverable condition.
	ErrNoThreshold = errors.New("simplex: no valid projection threshold")
)

const opProject = "Project"

// simplexErrorf wraps err with the operation tag.
func simplexErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Project returns the Euclidean projection of v onto {x : x ≥ 0, Σx = s}.
// The result is a new slice of len(v). It is rescaled to sum to s, not to 1;
// use ProjectUnit for the probability simplex.
//
// Errors:
//   - ErrInvalidMass (s ≤ 0, NaN, ±Inf), ErrEmptyVector, ErrNoThreshold.
func Project(v []float64, s float64) ([]float64, error) {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return nil, simplexErrorf(opProject, fmt.Errorf("s=%g: %w", s, ErrInvalidMass))
	}
	n := len(v)
	if n == 0 {
		return nil, simplexErrorf(opProject, ErrEmptyVector)
	}

	theta, err := threshold(v, s)
	if err != nil {
		return nil, simplexErrorf(opProject, err)
	}

	x := make([]float64, n)
	for i, vi := range v {
		x[i] = math.Max(vi-theta, 0)
	}
	total := floats.Sum(x)
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, simplexErrorf(opProject, fmt.Errorf("mass=%g: %w", total, ErrNoThreshold))
	}
	floats.Scale(s/total, x)

	return x, nil
}

// ProjectUnit is Project(v, DefaultMass).
func ProjectUnit(v []float64) ([]float64, error) {
	return Project(v, DefaultMass)
}

// threshold finds θ such that max(v − θ, 0) sums to s.
// Assumes len(v) > 0 and s > 0.
func threshold(v []float64, s float64) (float64, error) {
	n := len(v)
	u := make([]float64, n)
	copy(u, v)
	sort.Sort(sort.Reverse(sort.Float64Slice(u)))

	cssv := make([]float64, n)
	floats.CumSum(cssv, u)

	rho := -1
	for i := 0; i < n; i++ {
		if u[i]*float64(i+1) > cssv[i]-s {
			rho = i
		}
	}
	if rho < 0 {
		return 0, ErrNoThreshold
	}

	return (cssv[rho] - s) / float64(rho+1), nil
}

// Contains reports whether x lies on Δₛ within tol: every component ≥ -tol
// and |Σx − s| ≤ tol. An empty x is never on the simplex.
func Contains(x []float64, s, tol float64) bool {
	if len(x) == 0 {
		return false
	}
	for _, v := range x {
		if math.IsNaN(v) || v < -tol {
			return false
		}
	}

	return math.Abs(floats.Sum(x)-s) <= tol
}
