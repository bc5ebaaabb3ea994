package cmd

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/spf13/cobra"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/config"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/output"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/account"
)

// newSTSClient is replaced in tests.
var newSTSClient = func(ctx context.Context, cfg *config.Config) (account.Client, error) {
	if cfg.AWS.SDKConfig == nil {
		if err := cfg.AWS.LoadSDKConfig(ctx); err != nil {
			return nil, err
		}
	}
	return sts.NewFromConfig(*cfg.AWS.SDKConfig), nil
}

var errChecksFailed = errors.New("one or more checks failed")

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check AWS credentials and the recipe ID counter",
	RunE:  runDoctor,
}

type checkResult struct {
	name   string
	detail string
	err    error
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		output.Errorf("failed to load configuration: %v", err)
		return err
	}

	ctx := cmd.Context()
	log := getLogger(cmd)
	results := []checkResult{
		checkCredentials(ctx, cfg, log),
		checkCounter(ctx, cfg, log),
	}

	rows := make([][]string, 0, len(results))
	failed := false
	for _, r := range results {
		status := "ok"
		detail := r.detail
		if r.err != nil {
			status = "failed"
			detail = r.err.Error()
			failed = true
		}
		rows = append(rows, []string{r.name, status, detail})
	}

	output.Header("Checks")
	output.Table([]string{"Check", "Status", "Detail"}, rows)

	if failed {
		output.Errorf("%v", errChecksFailed)
		return errChecksFailed
	}
	output.Successf("all checks passed")
	return nil
}

func checkCredentials(ctx context.Context, cfg *config.Config, log *slog.Logger) checkResult {
	result := checkResult{name: "credentials"}

	client, err := newSTSClient(ctx, cfg)
	if err != nil {
		result.err = err
		return result
	}

	caller, err := account.GetCaller(ctx, client, log)
	if err != nil {
		result.err = err
		return result
	}

	result.detail = caller.ARN
	return result
}

func checkCounter(ctx context.Context, cfg *config.Config, log *slog.Logger) checkResult {
	result := checkResult{name: "counter " + cfg.AWS.CountersTable}

	repo, err := newCounterRepo(ctx, cfg, log)
	if err != nil {
		result.err = err
		return result
	}

	current, err := repo.Current(ctx)
	if err != nil {
		result.err = err
		return result
	}

	result.detail = "last allocated " + strconv.FormatInt(current, 10)
	return result
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
