package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/SVG-campus/Entropy-Regularization-Module/entropy"
	"github.com/SVG-campus/Entropy-Regularization-Module/matrix"
	"github.com/SVG-campus/Entropy-Regularization-Module/portfolio"
	"github.com/SVG-campus/Entropy-Regularization-Module/regularize"
	"github.com/SVG-campus/Entropy-Regularization-Module/simplex"
)

// sumTol is the tolerance used when reporting whether the result is on the simplex.
const sumTol = 1e-9

// stepFlags mirror the Problem fields that can be set on the command line.
type stepFlags struct {
	weights   []float64
	variances []float64
	gradient  []float64
	eta       float64
	gamma     float64
	noProject bool
}

func newStepCmd(a *app) *cobra.Command {
	var f stepFlags

	cmd := &cobra.Command{
		Use:   "step",
		Short: "Run one entropy-regularized update",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := newProblem()
			if a.flags.configPath != "" {
				if err := loadProblem(a.flags.configPath, p); err != nil {
					return err
				}
			}
			applyStepFlags(cmd, &f, p)

			return a.runStep(cmd.OutOrStdout(), p)
		},
	}

	fl := cmd.Flags()
	fl.Float64SliceVarP(&f.weights, "weights", "w", nil, "current weights (comma separated)")
	fl.Float64SliceVar(&f.variances, "variances", nil, "diagonal covariance entries")
	fl.Float64SliceVar(&f.gradient, "gradient", nil, "fixed loss gradient")
	fl.Float64Var(&f.eta, "eta", regularize.DefaultEta, "step size")
	fl.Float64Var(&f.gamma, "gamma", regularize.DefaultGamma, "entropy strength")
	fl.BoolVar(&f.noProject, "no-project", false, "skip the final simplex projection")

	return cmd
}

// applyStepFlags overrides problem fields with flags the user set explicitly.
func applyStepFlags(cmd *cobra.Command, f *stepFlags, p *Problem) {
	fl := cmd.Flags()
	if fl.Changed("weights") {
		p.Weights = f.weights
	}
	// A loss source given on the command line replaces the file's loss
	// source; naming two of them on the command line is still ambiguous.
	if fl.Changed("variances") || fl.Changed("gradient") {
		p.Covariance, p.Variances, p.Gradient = nil, nil, nil
	}
	if fl.Changed("variances") {
		p.Variances = f.variances
	}
	if fl.Changed("gradient") {
		p.Gradient = f.gradient
	}
	if fl.Changed("eta") {
		p.Eta = f.eta
	}
	if fl.Changed("gamma") {
		p.Gamma = f.gamma
	}
	if fl.Changed("no-project") {
		p.Project = !f.noProject
	}
}

// runStep executes the problem and prints entropy before/after and the next weights.
func (a *app) runStep(out io.Writer, p *Problem) error {
	loss, cov, err := p.lossGradient()
	if err != nil {
		return err
	}
	if cov != nil {
		if err = matrix.ValidateSymmetric(cov, symmetryTol); err != nil {
			a.log.Warn("covariance is not symmetric; using it as given", zap.Error(err))
		}
	}

	h0, err := entropy.Entropy(p.Weights)
	if err != nil {
		return err
	}
	a.log.Debug("step",
		zap.Int("assets", len(p.Weights)),
		zap.Float64("eta", p.Eta),
		zap.Float64("gamma", p.Gamma),
		zap.Bool("project", p.Project),
	)

	next, err := regularize.UpdateWith(p.Weights, loss, p.Options)
	if err != nil {
		return err
	}
	h1, err := entropy.Entropy(next)
	if err != nil {
		return err
	}
	a.log.Info("update done",
		zap.Float64("entropy_before", h0),
		zap.Float64("entropy_after", h1),
		zap.Bool("on_simplex", simplex.Contains(next, simplex.DefaultMass, sumTol)),
	)

	fmt.Fprintf(out, "H(w) = %.5f\n", h0)
	if cov != nil {
		v0, err := portfolio.Variance(p.Weights, cov)
		if err != nil {
			return err
		}
		v1, err := portfolio.Variance(next, cov)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "var(w) = %.6f -> %.6f\n", v0, v1)

		if ref, err := portfolio.MinimumVariance(cov); err != nil {
			a.log.Warn("no minimum-variance reference", zap.Error(err))
		} else {
			fmt.Fprintf(out, "w_minvar: %s\n", formatVector(ref))
		}
	}
	fmt.Fprintf(out, "w_next: %s sum: %.5f\n", formatVector(next), floats.Sum(next))
	fmt.Fprintf(out, "H(w_next) = %.5f\n", h1)

	return nil
}

// formatVector prints v as "[a b c]" with five decimals.
func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.5f", x)
	}

	return "[" + strings.Join(parts, " ") + "]"
}
