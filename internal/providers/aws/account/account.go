// Package account reports which AWS account and principal the SDK credentials resolve to.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/logger"
)

// Client defines the STS operation used here.
type Client interface {
	GetCallerIdentity(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

var _ Client = (*sts.Client)(nil)

// Caller identifies the credentials in use.
type Caller struct {
	AccountID string
	ARN       string
	UserID    string
}

// GetCaller retrieves the caller identity using STS GetCallerIdentity.
func GetCaller(ctx context.Context, client Client, log *slog.Logger) (*Caller, error) {
	logArgs := []any{"operation", "STS.GetCallerIdentity"}
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	logger.DeriveRequestLogger(ctx, log).Debug("calling external service", "context", logger.SliceToMap(logArgs))

	output, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("STS GetCallerIdentity failed: %w", err)
	}

	if aws.ToString(output.Account) == "" {
		return nil, fmt.Errorf("STS returned empty account ID")
	}

	return &Caller{
		AccountID: aws.ToString(output.Account),
		ARN:       aws.ToString(output.Arn),
		UserID:    aws.ToString(output.UserId),
	}, nil
}
