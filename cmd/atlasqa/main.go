package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"atlasqa/internal/platform/config"
)

// errChecksFailed is returned when an enforced check failed. The reports have
// already been printed, so main only sets the exit code.
var errChecksFailed = errors.New("enforced checks failed")

var (
	rootCmd = &cobra.Command{
		Use:           "atlasqa",
		Short:         "QA suites for the countries API and the sport pages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	strict *bool
)

func init() {
	strict = rootCmd.PersistentFlags().Bool("strict", false, "fail the run when a gating check fails (overrides ATLASQA_STRICT)")
	rootCmd.AddCommand(runCmd, loadCmd, perfCmd, serveCmd)
}

// loadConfig reads the environment and applies the global flags.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.FromEnv()
	if cmd.Flags().Changed("strict") {
		cfg.Strict = *strict
	}
	return cfg
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	switch {
	case err == nil:
	case errors.Is(err, errChecksFailed):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}
