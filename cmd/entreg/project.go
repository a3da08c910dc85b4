package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/SVG-campus/Entropy-Regularization-Module/simplex"
)

func newProjectCmd(a *app) *cobra.Command {
	var (
		vector []float64
		mass   float64
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a vector onto the simplex of the given mass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, err := simplex.Project(vector, mass)
			if err != nil {
				return err
			}
			a.log.Debug("projected", zap.Int("len", len(x)), zap.Float64("mass", mass))
			fmt.Fprintf(cmd.OutOrStdout(), "x: %s sum: %.5f\n", formatVector(x), floats.Sum(x))

			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&vector, "vector", nil, "vector to project (comma separated)")
	cmd.Flags().Float64Var(&mass, "mass", simplex.DefaultMass, "target simplex mass")
	_ = cmd.MarkFlagRequired("vector")

	return cmd
}
