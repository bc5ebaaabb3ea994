// Package secrets resolves configuration secrets from AWS Systems Manager Parameter Store.
package secrets

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Client defines the SSM operations used by ParameterStore.
// This interface makes the code easier to test by allowing mock implementations.
type Client interface {
	GetParameter(
		ctx context.Context,
		params *ssm.GetParameterInput,
		optFns ...func(*ssm.Options),
	) (*ssm.GetParameterOutput, error)
}

var _ Client = (*ssm.Client)(nil)
