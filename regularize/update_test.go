package regularize_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/SVG-campus/Entropy-Regularization-Module/entropy"
	"github.com/SVG-campus/Entropy-Regularization-Module/regularize"
	"github.com/SVG-campus/Entropy-Regularization-Module/simplex"
)

// sumTol is the documented postcondition tolerance.
const sumTol = 1e-9

// requireOnSimplex asserts q ≥ 0 componentwise and Σq = 1 within sumTol.
func requireOnSimplex(t *testing.T, q []float64) {
	t.Helper()
	var s float64
	for i, v := range q {
		require.GreaterOrEqual(t, v, 0.0, "q[%d]", i)
		s += v
	}
	require.InDelta(t, 1.0, s, sumTol)
}

// TestUpdate_LowestVarianceGainsMost runs the four-asset scenario:
// w uniform, grad = 2·diag(.02,.03,.01,.04)·w = [.01,.015,.005,.02].
func TestUpdate_LowestVarianceGainsMost(t *testing.T) {
	w := []float64{0.25, 0.25, 0.25, 0.25}
	grad := []float64{0.01, 0.015, 0.005, 0.02}

	q, err := regularize.Update(w, regularize.Fixed(grad), regularize.WithEta(0.05), regularize.WithGamma(0.05))
	require.NoError(t, err)
	require.Len(t, q, 4)
	requireOnSimplex(t, q)

	for i := range q {
		if i != 2 {
			assert.Greater(t, q[2], q[i], "asset 2 has the smallest variance")
		}
	}
	assert.Greater(t, q[0], q[3], "ordering follows the gradient")
}

// TestUpdate_DefaultsMatchExplicit checks Update() uses DefaultEta/DefaultGamma/projection.
func TestUpdate_DefaultsMatchExplicit(t *testing.T) {
	w := []float64{0.4, 0.3, 0.2, 0.1}
	grad := regularize.Fixed{0.016, 0.018, 0.004, 0.008}

	a, err := regularize.Update(w, grad)
	require.NoError(t, err)
	b, err := regularize.Update(w, grad,
		regularize.WithEta(regularize.DefaultEta),
		regularize.WithGamma(regularize.DefaultGamma),
		regularize.WithProjection(true),
	)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// TestUpdate_KnownStep pins one step against values computed independently.
func TestUpdate_KnownStep(t *testing.T) {
	w := []float64{0.4, 0.3, 0.2, 0.1}
	grad := regularize.Fixed{0.016, 0.018, 0.004, 0.008}

	q, err := regularize.Update(w, grad, regularize.WithEta(0.05), regularize.WithGamma(0.1))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{
		0.3992205475674179,
		0.29981641966126055,
		0.20042348847827224,
		0.10053954429304944,
	}, q, 1e-12)
}

// TestUpdate_GammaMonotone checks stronger regularization never lowers entropy.
func TestUpdate_GammaMonotone(t *testing.T) {
	w := []float64{0.6, 0.2, 0.2}
	grad := regularize.Fixed{0.024, 0.012, 0.004} // 2·diag(.02,.03,.01)·w

	low, err := regularize.Update(w, grad, regularize.WithEta(0.1), regularize.WithGamma(0.01))
	require.NoError(t, err)
	high, err := regularize.Update(w, grad, regularize.WithEta(0.1), regularize.WithGamma(0.2))
	require.NoError(t, err)

	hLow, err := entropy.Entropy(low)
	require.NoError(t, err)
	hHigh, err := entropy.Entropy(high)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, hHigh, hLow-1e-9)
}

// TestUpdate_GammaMonotoneWithoutLoss: with ∇L = 0 the step is a tempering
// p^(1-ηγ), so entropy grows with γ for any starting point.
func TestUpdate_GammaMonotoneWithoutLoss(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 100; trial++ {
		n := 2 + rng.Intn(8)
		w := make([]float64, n)
		for i := range w {
			w[i] = rng.Float64()
		}
		w[rng.Intn(n)] += 0.1

		prev := -1.0
		for _, gamma := range []float64{0, 0.05, 0.2, 1, 5} {
			q, err := regularize.Update(w, regularize.Fixed(make([]float64, n)),
				regularize.WithEta(0.1), regularize.WithGamma(gamma))
			require.NoError(t, err)
			requireOnSimplex(t, q)
			h, err := entropy.Entropy(q)
			require.NoError(t, err)
			require.GreaterOrEqual(t, h, prev-1e-9, "trial %d gamma %v", trial, gamma)
			prev = h
		}
	}
}

// TestUpdate_PureEntropyStep: with ∇L = 0 and η·γ = 1 the step lands on the
// uniform vector, since p·exp(∇H(p)) is constant.
func TestUpdate_PureEntropyStep(t *testing.T) {
	q, err := regularize.Update([]float64{0.7, 0.2, 0.1}, regularize.Fixed{0, 0, 0},
		regularize.WithEta(1), regularize.WithGamma(1))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, q, 1e-12)
}

// TestUpdate_ZeroStepIsNormalization: η = 0 only normalizes the input.
func TestUpdate_ZeroStepIsNormalization(t *testing.T) {
	q, err := regularize.Update([]float64{2, 1, 1}, regularize.Fixed{5, -3, 1}, regularize.WithEta(0))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.25, 0.25}, q, 1e-12)
}

// TestUpdate_ZeroWeightsStayValid checks the Eps floor revives zero weights
// without NaN and the result is still on the simplex.
func TestUpdate_ZeroWeightsStayValid(t *testing.T) {
	q, err := regularize.Update([]float64{1, 0, 0}, regularize.Fixed{0.1, 0.1, 0.1})
	require.NoError(t, err)
	requireOnSimplex(t, q)
	for _, v := range q {
		assert.False(t, math.IsNaN(v))
	}
}

// TestUpdate_LargeGradientNoOverflow relies on the max-shift in exp.
func TestUpdate_LargeGradientNoOverflow(t *testing.T) {
	q, err := regularize.Update([]float64{0.5, 0.5}, regularize.Fixed{-1e5, 1e5}, regularize.WithEta(1))
	require.NoError(t, err)
	requireOnSimplex(t, q)
	assert.InDelta(t, 1.0, q[0], 1e-12)
}

// TestUpdate_OverflowingStepRejected: finite inputs whose scaled step
// overflows are an invalid gradient, with or without projection.
func TestUpdate_OverflowingStepRejected(t *testing.T) {
	for _, project := range []bool{false, true} {
		q, err := regularize.Update([]float64{1, 1}, regularize.Fixed{-1e300, 0},
			regularize.WithEta(1e10), regularize.WithProjection(project))
		assert.ErrorIs(t, err, regularize.ErrInvalidGradient, "project=%v", project)
		assert.NotErrorIs(t, err, simplex.ErrNoThreshold, "project=%v", project)
		assert.Nil(t, q, "project=%v", project)
	}

	_, err := regularize.Update([]float64{1, 1}, regularize.Fixed{0, 0},
		regularize.WithEta(1e308), regularize.WithGamma(1e308))
	assert.ErrorIs(t, err, regularize.ErrInvalidGradient)
}

// TestUpdate_WithoutProjection still normalizes to one.
func TestUpdate_WithoutProjection(t *testing.T) {
	w := []float64{0.4, 0.3, 0.2, 0.1}
	grad := regularize.Fixed{0.016, 0.018, 0.004, 0.008}

	raw, err := regularize.Update(w, grad, regularize.WithProjection(false))
	require.NoError(t, err)
	requireOnSimplex(t, raw)

	projected, err := regularize.Update(w, grad)
	require.NoError(t, err)
	assert.InDeltaSlice(t, raw, projected, 1e-12)
}

// TestUpdate_FuncSeesNormalizedWeights verifies the callable receives the
// floored, normalized weights, not the raw input.
func TestUpdate_FuncSeesNormalizedWeights(t *testing.T) {
	var seen []float64
	grad := regularize.Func(func(p []float64) ([]float64, error) {
		seen = append([]float64(nil), p...)
		p[0] = 99 // mutating the argument must not affect the update
		return make([]float64, len(p)), nil
	})

	q, err := regularize.Update([]float64{3, 1, 0}, grad, regularize.WithGamma(0))
	require.NoError(t, err)

	require.Len(t, seen, 3)
	assert.InDelta(t, 0.75, seen[0], 1e-12)
	assert.InDelta(t, 0.25, seen[1], 1e-12)
	assert.Greater(t, seen[2], 0.0)
	assert.InDelta(t, 1.0, seen[0]+seen[1]+seen[2], 1e-15)
	assert.InDelta(t, 0.75, q[0], 1e-12)
}

// TestUpdate_FuncMatchesFixed: a callable and its precomputed value agree.
func TestUpdate_FuncMatchesFixed(t *testing.T) {
	w := []float64{0.5, 0.3, 0.2}
	scale := []float64{0.04, 0.02, 0.06}
	f := func(p []float64) ([]float64, error) {
		g := make([]float64, len(p))
		for i := range p {
			g[i] = 2 * scale[i] * p[i]
		}
		return g, nil
	}
	fixed, err := f(w)
	require.NoError(t, err)

	a, err := regularize.Update(w, regularize.Func(f))
	require.NoError(t, err)
	b, err := regularize.Update(w, regularize.Fixed(fixed))
	require.NoError(t, err)
	assert.InDeltaSlice(t, a, b, 1e-12)
}

// TestUpdate_InvalidWeights shares the entropy error kind.
func TestUpdate_InvalidWeights(t *testing.T) {
	for name, w := range map[string][]float64{
		"negative": {-0.1, 0.5, 0.6},
		"zero sum": {0, 0},
		"empty":    {},
		"inf":      {math.Inf(1), 1},
	} {
		_, err := regularize.Update(w, regularize.Fixed(make([]float64, len(w))))
		assert.ErrorIs(t, err, entropy.ErrInvalidWeights, name)
	}
}

// TestUpdate_GradientErrors covers length, finiteness, nil and callable failures.
func TestUpdate_GradientErrors(t *testing.T) {
	w := []float64{0.5, 0.5}

	_, err := regularize.Update(w, regularize.Fixed{1})
	assert.ErrorIs(t, err, regularize.ErrDimensionMismatch)

	_, err = regularize.Update(w, regularize.Fixed{1, math.NaN()})
	assert.ErrorIs(t, err, regularize.ErrInvalidGradient)

	_, err = regularize.Update(w, nil)
	assert.ErrorIs(t, err, regularize.ErrInvalidGradient)

	var nilFunc regularize.Func
	_, err = regularize.Update(w, nilFunc)
	assert.ErrorIs(t, err, regularize.ErrInvalidGradient)

	boom := errors.New("boom")
	_, err = regularize.Update(w, regularize.Func(func([]float64) ([]float64, error) { return nil, boom }))
	assert.ErrorIs(t, err, boom)
}

// TestUpdateWith_InvalidOptions rejects non-finite hyperparameters set directly.
func TestUpdateWith_InvalidOptions(t *testing.T) {
	o := regularize.DefaultOptions()
	o.Gamma = math.Inf(1)
	_, err := regularize.UpdateWith([]float64{1, 1}, regularize.Fixed{0, 0}, o)
	assert.ErrorIs(t, err, regularize.ErrInvalidOptions)
}

// TestUpdate_DoesNotMutate checks weights and gradient are left untouched.
func TestUpdate_DoesNotMutate(t *testing.T) {
	w := []float64{0.6, 0, 0.4}
	g := regularize.Fixed{0.1, 0.2, 0.3}

	_, err := regularize.Update(w, g)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.6, 0, 0.4}, w)
	assert.Equal(t, regularize.Fixed{0.1, 0.2, 0.3}, g)
}

// TestUpdate_Concurrent runs independent updates in parallel; results must
// match the sequential ones exactly.
func TestUpdate_Concurrent(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const jobs = 32
	ws := make([][]float64, jobs)
	gs := make([][]float64, jobs)
	want := make([][]float64, jobs)
	for j := 0; j < jobs; j++ {
		ws[j] = []float64{rng.Float64() + 0.1, rng.Float64(), rng.Float64()}
		gs[j] = []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		q, err := regularize.Update(ws[j], regularize.Fixed(gs[j]))
		require.NoError(t, err)
		want[j] = q
	}

	got := make([][]float64, jobs)
	var g errgroup.Group
	for j := 0; j < jobs; j++ {
		j := j
		g.Go(func() error {
			q, err := regularize.Update(ws[j], regularize.Fixed(gs[j]))
			got[j] = q
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, want, got)
	for _, q := range got {
		assert.True(t, simplex.Contains(q, 1, sumTol))
	}
}
