// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Sample covariance of return series, expressed as a composition of the
//     canonical kernels (Transpose/Mul/Scale).
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-path avoids At/Set when centering.

package matrix

import "fmt"

const (
	opCenterColumns = "CenterColumns"
	opCovariance    = "Covariance"
)

// centerColumns subtracts the per-column mean from every element.
// Returns the centered copy and the column means (len = Cols).
// Complexity: Time O(r*c), Space O(r*c).
func centerColumns(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)

	var i, j int
	var v float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, nil, matrixErrorf(opCenterColumns, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			means[j] += v
		}
	}
	for j = 0; j < c; j++ {
		means[j] /= float64(r)
	}

	out, err := NewDense(r, c)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				out.data[i*c+j] = d.data[i*c+j] - means[j]
			}
		}

		return out, means, nil
	}
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v, _ = X.At(i, j) // every index was read successfully above
			if err = out.Set(i, j, v-means[j]); err != nil {
				return nil, nil, matrixErrorf(opCenterColumns, err)
			}
		}
	}

	return out, means, nil
}

// Covariance computes the sample covariance of the columns of X:
// Cov = (Xcᵀ Xc)/(r-1), where Xc is X with column means removed.
// Each row of X is one observation (e.g. one period of asset returns),
// each column one variable (asset).
//
// Returns:
//   - Matrix: c×c covariance, symmetric, diagonal = per-column sample variance.
//   - []float64: column means used for centering.
//
// Errors:
//   - ErrNilMatrix; ErrDimensionMismatch when r < 2 (sample covariance undefined).
//
// Complexity:
//   - Time O(r*c^2), Space O(c^2).
func Covariance(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	r := X.Rows()
	if r < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}

	Xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	Xct, err := Transpose(Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	G, err := Mul(Xct, Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	cov, err := Scale(G, 1.0/float64(r-1))
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	return cov, means, nil
}
