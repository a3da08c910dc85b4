package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SVG-campus/Entropy-Regularization-Module/matrix"
	"github.com/SVG-campus/Entropy-Regularization-Module/portfolio"
	"github.com/SVG-campus/Entropy-Regularization-Module/regularize"
)

// symmetryTol is the tolerance used to warn about asymmetric covariance input.
const symmetryTol = 1e-9

// errNoLoss is returned when a problem names neither a covariance nor a gradient.
var errNoLoss = errors.New("problem: one of covariance, variances or gradient is required")

// errAmbiguousLoss is returned when a problem names more than one loss source.
var errAmbiguousLoss = errors.New("problem: covariance, variances and gradient are mutually exclusive")

// Problem is one update step described in YAML:
//
//	weights: [0.4, 0.3, 0.2, 0.1]
//	variances: [0.02, 0.03, 0.01, 0.04]   # or covariance: [[...], ...] or gradient: [...]
//	eta: 0.05
//	gamma: 0.1
//	project: true
type Problem struct {
	Weights    []float64   `yaml:"weights"`
	Covariance [][]float64 `yaml:"covariance,omitempty"`
	Variances  []float64   `yaml:"variances,omitempty"`
	Gradient   []float64   `yaml:"gradient,omitempty"`

	regularize.Options `yaml:",inline"`
}

// newProblem returns a Problem carrying the library defaults, so fields a
// YAML file omits keep their default values.
func newProblem() *Problem {
	return &Problem{Options: regularize.DefaultOptions()}
}

// loadProblem decodes path into p. Unknown keys are rejected.
func loadProblem(path string, p *Problem) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open problem: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(p); err != nil {
		return fmt.Errorf("decode problem %s: %w", path, err)
	}

	return nil
}

// covariance builds the covariance matrix, or returns nil when the problem
// uses a fixed gradient.
func (p *Problem) covariance() (matrix.Matrix, error) {
	switch {
	case len(p.Covariance) > 0:
		return matrix.NewDenseFrom(p.Covariance)
	case len(p.Variances) > 0:
		return matrix.NewDiagonal(p.Variances)
	default:
		return nil, nil
	}
}

// lossGradient turns the problem's loss source into a regularize.LossGradient.
// The covariance (nil for a fixed gradient) is returned for reporting.
func (p *Problem) lossGradient() (regularize.LossGradient, matrix.Matrix, error) {
	sources := 0
	for _, present := range []bool{len(p.Covariance) > 0, len(p.Variances) > 0, len(p.Gradient) > 0} {
		if present {
			sources++
		}
	}
	switch sources {
	case 0:
		return nil, nil, errNoLoss
	case 1:
	default:
		return nil, nil, errAmbiguousLoss
	}

	if len(p.Gradient) > 0 {
		return regularize.Fixed(p.Gradient), nil, nil
	}
	cov, err := p.covariance()
	if err != nil {
		return nil, nil, fmt.Errorf("covariance: %w", err)
	}

	return portfolio.VarianceLoss(cov), cov, nil
}
