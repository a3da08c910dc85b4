// SPDX-License-Identifier: MIT
// Package matrix: canonical linear-algebra kernels.
//
// Purpose:
//   - MatVec (y = A·x) backs the portfolio variance gradient 2·Σ·w.
//   - Mul/Transpose/Scale back the sample covariance (Xcᵀ·Xc)/(r-1).
//
// Notes:
//   - All kernels use the central validators and wrap failures with matrixErrorf(op*, err).
//   - Every kernel allocates a fresh result; operands are never mutated.

package matrix

import "fmt"

// ZeroSum is the initial value for dot-product accumulators.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opMatVec    = "MatVec"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
//
// Errors:
//   - ErrNilMatrix (nil m or nil x), ErrDimensionMismatch (len(x) != Cols).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	// Fast-path: *Dense allows flat, row-major dot-products.
	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	// Fallback: interface-based dot-products via At.
	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		y[i] = ZeroSum
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// Mul computes the matrix product a × b.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
// Complexity: O(r*n*c).
//
// AI-Hints: pass *Dense operands to hit the i→k→j flat fast path.
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, j, k int
	var av, bv, current float64
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowA, rowB, rowR int
			for i = 0; i < aRows; i++ {
				rowA = i * aCols
				rowR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowA+k]
					if av == 0 {
						continue
					}
					rowB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowR+j] += av * db.data[rowB+j]
					}
				}
			}

			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k).
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", i, k, err))
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", k, j, err))
				}
				current += av * bv
			}
			if err = res.Set(i, j, current); err != nil {
				return nil, matrixErrorf(opMul, fmt.Errorf("Set(%d,%d): %w", i, j, err))
			}
		}
	}

	return res, nil
}

// Transpose returns mᵀ as a new *Dense.
// Complexity: O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if dm, ok := m.(*Dense); ok {
		// data[i*cols + j] → res.data[j*rows + i]
		for i = 0; i < rows; i++ {
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[i*cols+j]
			}
		}

		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if err = res.Set(j, i, v); err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("Set(%d,%d): %w", j, i, err))
			}
		}
	}

	return res, nil
}

// Scale returns alpha*m as a new *Dense.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	if dm, ok := m.(*Dense); ok {
		for idx := range dm.data {
			res.data[idx] = dm.data[idx] * alpha
		}

		return res, nil
	}

	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opScale, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if err = res.Set(i, j, v*alpha); err != nil {
				return nil, matrixErrorf(opScale, fmt.Errorf("Set(%d,%d): %w", i, j, err))
			}
		}
	}

	return res, nil
}
