package secrets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/logger"
)

// ErrParameterNotFound is returned when the named parameter does not exist.
var ErrParameterNotFound = errors.New("parameter not found")

// ParameterStore reads SecureString parameters.
type ParameterStore struct {
	client Client
	logger *slog.Logger
}

// NewParameterStore creates a ParameterStore.
func NewParameterStore(client Client, log *slog.Logger) *ParameterStore {
	return &ParameterStore{client: client, logger: log}
}

// Get returns the decrypted value of a parameter.
func (s *ParameterStore) Get(ctx context.Context, name string) (string, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, s.logger)

	logArgs := []any{
		"operation", "SSM.GetParameter",
		"name", name,
	}
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	reqLogger.Debug("calling external service", "context", logger.SliceToMap(logArgs))

	result, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var nf *types.ParameterNotFound
		if errors.As(err, &nf) {
			return "", fmt.Errorf("%w: %s", ErrParameterNotFound, name)
		}
		return "", fmt.Errorf("failed to retrieve parameter %s: %w", name, err)
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		reqLogger.Warn("unexpected nil response from parameter store", "name", name)
		return "", fmt.Errorf("unexpected response from parameter store")
	}

	return *result.Parameter.Value, nil
}
