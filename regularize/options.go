// Package regularize: functional configuration for Update.
//
// Design goals:
//   - Documented defaults as a single source of truth (constants below).
//   - Deterministic behavior: no global state.
//   - Option constructors panic only on nonsensical values (programmer error).
package regularize

import (
	"fmt"
	"math"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEta is the mirror-descent step size η.
	DefaultEta = 0.05

	// DefaultGamma is the entropy-regularization strength γ.
	DefaultGamma = 0.05

	// DefaultProject enables the final Euclidean projection onto the simplex.
	DefaultProject = true
)

// ---------- Internal panic messages ----------

const (
	panicEtaInvalid   = "regularize: WithEta: eta must be finite"
	panicGammaInvalid = "regularize: WithGamma: gamma must be finite"
)

// Options is the resolved configuration of one Update call.
// The zero value is NOT the default; start from DefaultOptions.
type Options struct {
	// Eta is the step size. Positive values are expected; it is not range-checked.
	Eta float64 `yaml:"eta"`

	// Gamma is the entropy strength. Zero disables regularization; larger
	// values pull the result toward the uniform vector.
	Gamma float64 `yaml:"gamma"`

	// Project re-projects the normalized step onto the unit simplex.
	Project bool `yaml:"project"`
}

// Option mutates Options. Safe to apply repeatedly.
type Option func(*Options)

// DefaultOptions returns Options populated from the Default* constants.
func DefaultOptions() Options {
	return Options{
		Eta:     DefaultEta,
		Gamma:   DefaultGamma,
		Project: DefaultProject,
	}
}

// NewOptions applies opts over DefaultOptions in order; later options win.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// Validate reports ErrInvalidOptions when Eta or Gamma is NaN or ±Inf.
func (o Options) Validate() error {
	if !isFinite(o.Eta) {
		return fmt.Errorf("eta=%g: %w", o.Eta, ErrInvalidOptions)
	}
	if !isFinite(o.Gamma) {
		return fmt.Errorf("gamma=%g: %w", o.Gamma, ErrInvalidOptions)
	}

	return nil
}

// WithEta sets the step size η. Panics if eta is NaN or ±Inf.
func WithEta(eta float64) Option {
	if !isFinite(eta) {
		panic(panicEtaInvalid)
	}

	return func(o *Options) { o.Eta = eta }
}

// WithGamma sets the entropy strength γ. Panics if gamma is NaN or ±Inf.
func WithGamma(gamma float64) Option {
	if !isFinite(gamma) {
		panic(panicGammaInvalid)
	}

	return func(o *Options) { o.Gamma = gamma }
}

// WithProjection toggles the final simplex projection.
func WithProjection(enabled bool) Option {
	return func(o *Options) { o.Project = enabled }
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
