// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Reject NaN/Inf on Set so covariance inputs stay finite.
//
// AI-Hints:
//   - Prefer fast-paths on *Dense in hot algebra (see linear_algebra.go): operate on the flat data slice directly.
//   - Use NewDiagonal for the common "independent assets" covariance.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"  // method tag used in error wrappers
	ctxSet = "Set" // method tag used in error wrappers
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices,
// e.g. "Dense.Set(1,2): matrix: NaN or Inf encountered".
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (>0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Errors:
//   - ErrInvalidDimensions when rows<=0 or cols<=0.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom copies a slice of rows into a new *Dense.
// MAIN DESCRIPTION:
//   - Entry point for callers holding [][]float64 data (YAML problem files,
//     covariance estimates from other tools).
//
// Implementation:
//   - Stage 1: validate non-empty outer slice and non-empty first row.
//   - Stage 2: validate every row has the same length (ErrRagged) and every
//     value is finite (ErrNaNInf).
//   - Stage 3: copy row by row into the flat buffer.
//
// Errors:
//   - ErrInvalidDimensions, ErrRagged, ErrNaNInf (wrapped with the row/col of the offender).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - The input is never aliased; later edits to rows do not leak into the matrix.
func NewDenseFrom(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	r, c := len(rows), len(rows[0])
	d, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}

	var i, j int
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("NewDenseFrom: row %d: %w", i, ErrRagged)
		}
		for j = 0; j < c; j++ {
			if err = d.Set(i, j, rows[i][j]); err != nil {
				return nil, fmt.Errorf("NewDenseFrom: %w", err)
			}
		}
	}

	return d, nil
}

// NewDiagonal builds an n×n matrix with diag on the main diagonal and zeros
// elsewhere (n = len(diag)). Typical use: covariance of uncorrelated assets.
// Complexity: O(n^2) zeroing + O(n) writes.
func NewDiagonal(diag []float64) (*Dense, error) {
	d, err := NewDense(len(diag), len(diag))
	if err != nil {
		return nil, err
	}
	for i, v := range diag {
		if err = d.Set(i, i, v); err != nil {
			return nil, fmt.Errorf("NewDiagonal: %w", err)
		}
	}

	return d, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods (At/Set) wrap the sentinel with coordinates and method name.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col).
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for NaN/±Inf values.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer).
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// String renders rows as lines with comma-separated values.
// Not for hot paths; intended for CLI output and debugging.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
