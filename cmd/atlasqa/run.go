package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"atlasqa/internal/report"
	"atlasqa/internal/suite"
)

var runCmd = &cobra.Command{
	Use:   "run SUITE|all",
	Short: "Run one suite, or every API suite with 'all'",
	Long: fmt.Sprintf("Run one suite and print its report.\n\nSuites: %s\n'all' runs %s concurrently.",
		strings.Join(suite.Names(), ", "), strings.Join(suite.APISuites, ", ")),
	Args:      cobra.ExactArgs(1),
	ValidArgs: append(suite.Names(), "all"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, loadConfig(cmd))
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		if args[0] == "all" {
			reports, err := a.runner.RunAll(ctx)
			if err != nil {
				return err
			}
			for _, r := range reports {
				report.Render(out, r)
			}
			report.RenderSummary(out, reports)
			return verdict(reports...)
		}

		r, err := a.runner.Run(ctx, args[0])
		if err != nil {
			return err
		}
		report.Render(out, r)
		return verdict(r)
	},
}

var (
	loadVUs      *int
	loadDuration *time.Duration
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Run the fixed-load scenario against the countries API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNamed(cmd, suite.Load, suite.WithLoadOverrides(*loadVUs, *loadDuration))
	},
}

var perfCmd = &cobra.Command{
	Use:   "perf",
	Short: "Run the staged performance scenario with latency thresholds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNamed(cmd, suite.Perf)
	},
}

func init() {
	loadVUs = loadCmd.Flags().Int("vus", 0, "virtual users (0 keeps the profile's)")
	loadDuration = loadCmd.Flags().Duration("duration", 0, "run length (0 keeps the profile's)")
}

func runNamed(cmd *cobra.Command, name string, opts ...suite.Option) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, loadConfig(cmd), opts...)
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := a.runner.Run(ctx, name)
	if err != nil {
		return err
	}
	report.Render(cmd.OutOrStdout(), r)
	return verdict(r)
}

// verdict maps failed reports onto errChecksFailed.
func verdict(reports ...*report.Report) error {
	var failed []string
	for _, r := range reports {
		if r.Failed() {
			failed = append(failed, r.Suite)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(failed, ", "), errChecksFailed)
	}
	return nil
}
