// Package matrix is the small dense linear-algebra layer used by the
// portfolio helpers: covariance matrices, matrix-vector products and sample
// covariance of return series.
//
// The package provides:
//
//   - Matrix, a minimal interface over 2-D float64 storage with bounds-checked
//     accessors (At/Set return errors instead of panicking).
//   - Dense, a row-major implementation with constructors from rows
//     (NewDenseFrom) and from a diagonal (NewDiagonal).
//   - Kernels MatVec, Mul, Transpose, Scale and Covariance, plus LU and
//     Solve for linear systems (minimum-variance weights). Every kernel
//     validates its operands first and reports shape problems with
//     ErrDimensionMismatch, so callers can match with errors.Is.
//
// All kernels are deterministic (fixed i→j loop order) and never mutate
// their inputs; results are freshly allocated.
package matrix
