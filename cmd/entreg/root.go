package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalFlags holds persistent flags shared by all subcommands.
type globalFlags struct {
	configPath string // YAML problem file
	verbose    bool   // debug logging
}

// app carries per-invocation state; a fresh one is built for every root command.
type app struct {
	flags globalFlags
	log   *zap.Logger
}

// newRootCmd builds the entreg command tree.
func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "entreg",
		Short: "Entropy-regularized multiplicative-weights updates on the simplex",
		Long: `entreg runs one entropy-regularized exponentiated-gradient step on a
weight vector and projects vectors onto the probability simplex.

A step is described by a YAML problem file (--config) or by flags:
  entreg step --weights 0.4,0.3,0.2,0.1 --variances 0.02,0.03,0.01,0.04 --gamma 0.1
  entreg project --vector 0.5,0.8,-0.2 --mass 1`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.log = newLogger(cmd.ErrOrStderr(), a.flags.verbose)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&a.flags.configPath, "config", "c", "", "YAML problem file")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newStepCmd(a))
	root.AddCommand(newProjectCmd(a))

	return root
}
