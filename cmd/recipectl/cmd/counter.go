package cmd

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/config"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/database"
	apperrors "github.com/DeanGilewicz/serverless-recipes-BE/internal/errors"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/output"
	awsProvider "github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/app"
)

// newCounterRepo is replaced in tests.
var newCounterRepo = func(ctx context.Context, cfg *config.Config, log *slog.Logger) (database.CounterRepository, error) {
	return awsProvider.NewCounterRepository(ctx, cfg, log)
}

var seedStart int64

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Manage the recipe ID counter",
}

var counterSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the counter record",
	Long: `Create the record recipe IDs are allocated from.
The record is only written when it does not exist yet, so running seed twice never rewinds the counter.`,
	RunE: runCounterSeed,
}

var counterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the last allocated recipe ID",
	RunE:  runCounterShow,
}

func counterRepo(cmd *cobra.Command) (database.CounterRepository, error) {
	cfg, err := config.LoadCLI()
	if err != nil {
		return nil, err
	}
	output.Infof("Counters table: %s", output.Bold(cfg.AWS.CountersTable))
	return newCounterRepo(cmd.Context(), cfg, getLogger(cmd))
}

func runCounterSeed(cmd *cobra.Command, _ []string) error {
	repo, err := counterRepo(cmd)
	if err != nil {
		output.Errorf("failed to configure counter: %v", err)
		return err
	}

	if err = repo.Seed(cmd.Context(), seedStart); err != nil {
		if apperrors.GetErrorCode(err) == apperrors.ErrCodeConflict {
			output.Warningf("counter already seeded, nothing written")
			return nil
		}
		output.Errorf("failed to seed counter: %v", err)
		return err
	}

	output.Successf("counter seeded at %d", seedStart)
	return nil
}

func runCounterShow(cmd *cobra.Command, _ []string) error {
	repo, err := counterRepo(cmd)
	if err != nil {
		output.Errorf("failed to configure counter: %v", err)
		return err
	}

	current, err := repo.Current(cmd.Context())
	if err != nil {
		if apperrors.GetErrorCode(err) == apperrors.ErrCodeNotFound {
			output.Warningf("counter not seeded, run %s", output.Bold("counter seed"))
		} else {
			output.Errorf("failed to read counter: %v", err)
		}
		return err
	}

	output.KeyValueBold("Last allocated ID", strconv.FormatInt(current, 10))
	return nil
}

func init() {
	counterSeedCmd.Flags().Int64Var(&seedStart, "start", 0, "Initial counter value; the first recipe gets start+1")
	counterCmd.AddCommand(counterSeedCmd, counterShowCmd)
	rootCmd.AddCommand(counterCmd)
}
