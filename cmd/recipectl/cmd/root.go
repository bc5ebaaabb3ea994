// Package cmd holds the recipectl commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/logger"
)

var (
	debug         bool
	timeout       time.Duration
	timeoutCancel context.CancelFunc
)

type loggerCtxKeyType string

const loggerCtxKey loggerCtxKeyType = "logger"

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   constants.CLIName,
		Short: "Administer and run the recipes backend",
		Long: fmt.Sprintf(`%s - %s
Local development server and operational commands for the %s backend`,
			constants.CLIName, *constants.GetVersion(), constants.ProjectName),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, constants.StartTimeCtxKey, time.Now().UTC())

			logLevel := slog.LevelInfo
			if debug {
				logLevel = slog.LevelDebug
			}
			ctx = context.WithValue(ctx, loggerCtxKey, logger.Initialize(constants.CLI, logLevel))

			if timeout > 0 {
				// NOTICE: this runs after flags are parsed but before the command runs
				ctx, timeoutCancel = context.WithTimeout(ctx, timeout)
			}

			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if timeoutCancel != nil {
				timeoutCancel()
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", constants.DefaultContextTimeout,
		"Timeout for commands that call AWS (0 disables it)")
	return cmd
}

// Execute runs the root command and handles cleanup of timeout context.
func Execute() {
	err := rootCmd.Execute()
	if timeoutCancel != nil {
		timeoutCancel()
	}

	if err != nil {
		os.Exit(1)
	}
}

func getLogger(cmd *cobra.Command) *slog.Logger {
	if log, ok := cmd.Context().Value(loggerCtxKey).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}

// RootCmd returns the root command, for tooling that walks the command tree.
func RootCmd() *cobra.Command {
	return rootCmd
}
