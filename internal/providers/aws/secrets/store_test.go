package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/testutil"
)

type mockClient struct {
	params map[string]string
	err    error
	input  *ssm.GetParameterInput
}

func (m *mockClient) GetParameter(
	_ context.Context,
	params *ssm.GetParameterInput,
	_ ...func(*ssm.Options),
) (*ssm.GetParameterOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.params[aws.ToString(params.Name)]
	if !ok {
		return nil, &types.ParameterNotFound{Message: aws.String("not found")}
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(v)}}, nil
}

func TestParameterStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns decrypted value", func(t *testing.T) {
		client := &mockClient{params: map[string]string{"/recipes/client-secret": "s3cret"}}
		store := NewParameterStore(client, testutil.SilentLogger())

		v, err := store.Get(ctx, "/recipes/client-secret")

		require.NoError(t, err)
		assert.Equal(t, "s3cret", v)
		assert.True(t, aws.ToBool(client.input.WithDecryption))
	})

	t.Run("missing parameter", func(t *testing.T) {
		store := NewParameterStore(&mockClient{}, testutil.SilentLogger())

		_, err := store.Get(ctx, "/nope")

		assert.ErrorIs(t, err, ErrParameterNotFound)
	})

	t.Run("provider failure", func(t *testing.T) {
		boom := errors.New("access denied")
		store := NewParameterStore(&mockClient{err: boom}, testutil.SilentLogger())

		_, err := store.Get(ctx, "/recipes/client-secret")

		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrParameterNotFound)
	})
}
