package cmd

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/config"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/database"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/output"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/account"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/database/dynamodb"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/testutil"
)

type stubSTS struct {
	err error
}

func (s stubSTS) GetCallerIdentity(
	context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options),
) (*sts.GetCallerIdentityOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &sts.GetCallerIdentityOutput{
		Account: aws.String("123456789012"),
		Arn:     aws.String("arn:aws:iam::123456789012:user/dev"),
	}, nil
}

// setupCLI points the counter commands at an in-memory table and captures CLI output.
func setupCLI(t *testing.T, stsErr error) (*dynamodb.MockDynamoDBClient, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("RECIPES_AWS_COUNTERS_TABLE", "counters-test")

	client := dynamodb.NewMockDynamoDBClient()
	client.CreateTable("counters-test", "id", "")

	origRepo, origSTS := newCounterRepo, newSTSClient
	newCounterRepo = func(_ context.Context, cfg *config.Config, _ *slog.Logger) (database.CounterRepository, error) {
		return dynamodb.NewCounterRepository(client, cfg.AWS.CountersTable, testutil.SilentLogger()), nil
	}
	newSTSClient = func(context.Context, *config.Config) (account.Client, error) {
		return stubSTS{err: stsErr}, nil
	}

	oldOut, oldErr := output.Stdout, output.Stderr
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	output.Stdout, output.Stderr = stdout, stderr

	t.Cleanup(func() {
		newCounterRepo, newSTSClient = origRepo, origSTS
		output.Stdout, output.Stderr = oldOut, oldErr
		seedStart = 0
	})
	return client, stdout, stderr
}

func run(args ...string) error {
	cmd := newRootCmd()
	cmd.AddCommand(counterCmd, doctorCmd, versionCmd)
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.ExecuteContext(context.Background())
}

func TestCounterCommands(t *testing.T) {
	t.Run("seed then show", func(t *testing.T) {
		_, stdout, stderr := setupCLI(t, nil)

		require.NoError(t, run("counter", "seed", "--start", "41"))
		assert.Contains(t, stderr.String(), "counter seeded at 41")

		require.NoError(t, run("counter", "show"))
		assert.Contains(t, stdout.String(), "41")
	})

	t.Run("second seed does not rewind", func(t *testing.T) {
		_, stdout, stderr := setupCLI(t, nil)

		require.NoError(t, run("counter", "seed", "--start", "7"))
		require.NoError(t, run("counter", "seed", "--start", "0"))
		assert.Contains(t, stderr.String(), "already seeded")

		require.NoError(t, run("counter", "show"))
		assert.Contains(t, stdout.String(), "7")
	})

	t.Run("show before seed", func(t *testing.T) {
		_, _, stderr := setupCLI(t, nil)

		require.Error(t, run("counter", "show"))
		assert.Contains(t, stderr.String(), "counter not seeded")
	})

	t.Run("negative start", func(t *testing.T) {
		client, _, _ := setupCLI(t, nil)

		require.Error(t, run("counter", "seed", "--start", "-1"))
		assert.Equal(t, 0, client.ItemCount("counters-test"))
	})
}

func TestDoctor(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		_, stdout, _ := setupCLI(t, nil)
		require.NoError(t, run("counter", "seed"))

		require.NoError(t, run("doctor"))
		assert.Contains(t, stdout.String(), "arn:aws:iam::123456789012:user/dev")
		assert.Contains(t, stdout.String(), "last allocated 0")
	})

	t.Run("credential failure", func(t *testing.T) {
		_, stdout, _ := setupCLI(t, errors.New("expired token"))
		require.NoError(t, run("counter", "seed"))

		err := run("doctor")

		assert.ErrorIs(t, err, errChecksFailed)
		assert.Contains(t, stdout.String(), "expired token")
	})
}
