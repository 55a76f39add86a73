package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/econkit/walras/internal/config"
	"github.com/econkit/walras/internal/logging"
	"github.com/econkit/walras/internal/pipeline"
	"github.com/econkit/walras/internal/report"
	"github.com/econkit/walras/pkg/algebra"
)

const version = "0.1.0"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "walras",
		Short:        "Walrasian equilibrium solver for a two-firm production economy",
		Long: `walras formulates the equilibrium conditions of a fixed two-firm,
two-good, one-input, two-consumer production economy, solves them exactly,
verifies market clearing, and reports prices, allocation, and welfare.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newSolveCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newSolveCmd() *cobra.Command {
	var (
		configPath string
		endowment  string
		format     string
		timeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compute, verify and report the equilibrium",
		Long: `Compute the equilibrium in closed form with the endowment k symbolic,
or bound to a value with --endowment. Warnings are printed with the report;
only fatal errors exit non-zero.
Example: walras solve --endowment 4 --format plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("endowment") {
				cfg.Endowment = endowment
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = format
			}
			if cmd.Flags().Changed("timeout") {
				cfg.SolverTimeout = timeout
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSolve(cmd, cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "configuration file path")
	cmd.Flags().StringVar(&endowment, "endowment", "", "bind the endowment k to a rational, e.g. 4 or 7/2")
	cmd.Flags().StringVar(&format, "format", config.FormatStyled, "report format: styled, plain or yaml")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "symbolic solve timeout (0 disables)")
	return cmd
}

func runSolve(cmd *cobra.Command, cfg *config.Config) error {
	logger := logging.NewLogger(cfg.Development, cfg.Verbosity)
	ctx := logging.IntoContext(cmd.Context(), logger)

	p, err := pipeline.New(algebra.NewEngine(), pipeline.Options{
		SolverTimeout:    cfg.SolverTimeout,
		SampleEndowments: cfg.SampleEndowments,
		Tolerance:        cfg.Tolerance,
	})
	if err != nil {
		return err
	}

	res, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if k, bound, err := cfg.EndowmentValue(); err != nil {
		return err
	} else if bound {
		res = res.BindEndowment(k)
	}

	renderer, err := report.New(cfg.Format)
	if err != nil {
		return err
	}
	out, err := renderer.Render(res)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "walras %s\n", version)
		},
	}
}
