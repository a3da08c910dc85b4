// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   - Provide small, deterministic fixtures for kernels.
//   - Force the interface fallback paths via the hide wrapper.

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SVG-campus/Entropy-Regularization-Module/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// so kernels take the At/Set fallback instead of the *Dense fast path.
type hide struct{ matrix.Matrix }

// mustDenseFrom builds a *Dense from rows or fails the test.
func mustDenseFrom(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return d
}

// toRows reads m back into [][]float64 for comparisons.
func toRows(t *testing.T, m matrix.Matrix) [][]float64 {
	t.Helper()
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
		for j := range out[i] {
			v, err := m.At(i, j)
			require.NoError(t, err)
			out[i][j] = v
		}
	}

	return out
}

// requireRowsInDelta compares two row sets elementwise within delta.
func requireRowsInDelta(t *testing.T, want, got [][]float64, delta float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDeltaSlice(t, want[i], got[i], delta, "row %d", i)
	}
}
