// SPDX-License-Identifier: MIT
// Package matrix: LU decomposition and linear solves.
//
// Purpose:
//   - LU factors a square matrix as L·U (Doolittle, unit lower L, no pivoting).
//   - Solve answers A·x = b by forward then backward substitution; it backs the
//     closed-form minimum-variance portfolio Σ⁻¹·1 / (1ᵀ·Σ⁻¹·1).
//
// Without pivoting the factorization is exact for symmetric positive definite
// input (covariance matrices) and fails with ErrSingular on a zero pivot.

package matrix

import (
	"fmt"
	"math"
)

const (
	opLU    = "LU"
	opSolve = "Solve"
)

// ZeroPivot is the pivot value that marks a singular factorization.
const ZeroPivot = 0.0

// LU performs Doolittle LU decomposition of the square matrix m.
// It returns L (unit lower triangular) and U (upper triangular).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square), ErrSingular.
// Complexity: O(n³) time, O(n²) memory.
func LU(m Matrix) (*Dense, *Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	n := m.Rows()
	L, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	U, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	for i := 0; i < n; i++ {
		L.data[i*n+i] = 1
	}

	var (
		i, j, k int
		acc, a  float64
		pivot   float64
	)
	for i = 0; i < n; i++ {
		// row i of U
		for j = i; j < n; j++ {
			acc = ZeroSum
			for k = 0; k < i; k++ {
				acc += L.data[i*n+k] * U.data[k*n+j]
			}
			if a, err = m.At(i, j); err != nil {
				return nil, nil, matrixErrorf(opLU, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			U.data[i*n+j] = a - acc
		}
		pivot = U.data[i*n+i]
		if pivot == ZeroPivot || math.IsNaN(pivot) || math.IsInf(pivot, 0) {
			return nil, nil, matrixErrorf(opLU, fmt.Errorf("pivot %d = %g: %w", i, pivot, ErrSingular))
		}
		// column i of L
		for j = i + 1; j < n; j++ {
			acc = ZeroSum
			for k = 0; k < i; k++ {
				acc += L.data[j*n+k] * U.data[k*n+i]
			}
			if a, err = m.At(j, i); err != nil {
				return nil, nil, matrixErrorf(opLU, fmt.Errorf("At(%d,%d): %w", j, i, err))
			}
			L.data[j*n+i] = (a - acc) / pivot
		}
	}

	return L, U, nil
}

// Solve returns x with m·x = b. b is not modified.
//
// Errors: ErrNilMatrix (nil m or b), ErrDimensionMismatch (non-square or
// len(b) != Rows), ErrSingular.
func Solve(m Matrix, b []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n := m.Rows()
	if err := ValidateVecLen(b, n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	L, U, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	// forward: L·y = b
	y := make([]float64, n)
	var i, k int
	var acc float64
	for i = 0; i < n; i++ {
		acc = ZeroSum
		for k = 0; k < i; k++ {
			acc += L.data[i*n+k] * y[k]
		}
		y[i] = b[i] - acc
	}

	// backward: U·x = y
	x := make([]float64, n)
	for i = n - 1; i >= 0; i-- {
		acc = ZeroSum
		for k = i + 1; k < n; k++ {
			acc += U.data[i*n+k] * x[k]
		}
		x[i] = (y[i] - acc) / U.data[i*n+i]
	}

	return x, nil
}
