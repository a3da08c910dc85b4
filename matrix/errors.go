// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Kernels return these sentinels (optionally wrapped with an
// operation tag) and tests check them via errors.Is. No kernel panics on
// user-triggered error conditions.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." so wrapped chains read well
// in CLI output and logs. Wrap with matrixErrorf/validatorErrorf; callers
// still match with errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape -> index -> NaN/Inf -> structural violations.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrRagged signals that row slices passed to NewDenseFrom have unequal lengths.
	ErrRagged = errors.New("matrix: ragged rows")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. MatVec with len(x) != Cols, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the given tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrSingular indicates a zero (or non-finite) pivot during LU decomposition.
	ErrSingular = errors.New("matrix: matrix is singular")

	// ErrNilMatrix indicates that a nil Matrix (or nil vector argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)
