// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/symmetry checks here.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Shape).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed nil *Dense stored in the interface is also rejected.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Assumes m is not nil.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Nil vectors are rejected with ErrNilMatrix (reused for "nil argument").
// Time: O(1). Space: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols == b.Rows, inputs non-nil.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSymmetric checks A is symmetric within tolerance tol:
// |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Returns ErrNilMatrix/ErrDimensionMismatch on structural issues, ErrNaNInf on bad tol,
// ErrAsymmetry on violation. Negative tol is treated as |tol|.
// Complexity: O(n^2). Space: O(1).
//
// AI-Hints: covariance estimates are symmetric by construction; use this on
// user-supplied matrices before trusting them as a quadratic form.
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSymmetric", ErrNilMatrix)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSymmetric", ErrDimensionMismatch)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	n := m.Rows()
	var i, j int
	var aij, aji float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ { // strict upper triangle
			aij, _ = m.At(i, j) // indices are in range after the shape check
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}
