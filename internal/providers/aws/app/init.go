// Package aws wires the AWS-backed implementations the recipes service depends on.
package aws

import (
	"context"
	"fmt"
	"log/slog"

	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/config"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/database"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/identity"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/cognito"
	dynamoRepo "github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/database/dynamodb"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/imagestore"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/secrets"
)

// Dependencies bundles the AWS-backed implementations required by the app service.
type Dependencies struct {
	RecipeRepo  database.RecipeRepository
	CounterRepo database.CounterRepository
	Identity    identity.Gateway
	Images      *imagestore.Store
}

// SecretResolver resolves a named secret. It is satisfied by *secrets.ParameterStore.
type SecretResolver interface {
	Get(ctx context.Context, name string) (string, error)
}

// Initialize prepares AWS service dependencies for the app package.
func Initialize(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*Dependencies, error) {
	awsCfg := cfg.AWS
	if awsCfg.SDKConfig == nil {
		if err := awsCfg.LoadSDKConfig(ctx); err != nil {
			return nil, err
		}
	}
	sdkCfg := *awsCfg.SDKConfig

	dynamoClient := dynamoRepo.NewClientAdapter(dynamodb.NewFromConfig(sdkCfg))

	logger.Debug("DynamoDB backend configured", "context", map[string]string{
		"recipes_table":  awsCfg.RecipesTable,
		"recipes_index":  awsCfg.RecipesIndex,
		"counters_table": awsCfg.CountersTable,
	})

	clientSecret, err := ResolveClientSecret(ctx, secrets.NewParameterStore(ssm.NewFromConfig(sdkCfg), logger), cfg)
	if err != nil {
		return nil, err
	}

	baseURL := awsCfg.DefaultImageBaseURL()
	logger.Debug("identity and image backends configured", "context", map[string]any{
		"user_pool_id":      awsCfg.UserPoolID,
		"app_client_id":     awsCfg.AppClientID,
		"has_client_secret": clientSecret != "",
		"images_bucket":     awsCfg.ImagesBucket,
		"image_base_url":    baseURL,
	})

	return &Dependencies{
		RecipeRepo: dynamoRepo.NewRecipeRepository(
			dynamoClient, awsCfg.RecipesTable, awsCfg.RecipesIndex, logger),
		CounterRepo: dynamoRepo.NewCounterRepository(dynamoClient, awsCfg.CountersTable, logger),
		Identity: cognito.NewGateway(
			cip.NewFromConfig(sdkCfg), awsCfg.AppClientID, clientSecret, logger),
		Images: imagestore.NewStore(s3.NewFromConfig(sdkCfg), awsCfg.ImagesBucket, baseURL, logger),
	}, nil
}

// ResolveClientSecret returns the app client secret, reading it from the parameter store when
// only its parameter name is configured.
func ResolveClientSecret(ctx context.Context, resolver SecretResolver, cfg *config.Config) (string, error) {
	if cfg.AWS.AppClientSecret != "" || cfg.AWS.AppClientSecretParameter == "" {
		return cfg.AWS.AppClientSecret, nil
	}

	secret, err := resolver.Get(ctx, cfg.AWS.AppClientSecretParameter)
	if err != nil {
		return "", fmt.Errorf("failed to resolve app client secret: %w", err)
	}
	return secret, nil
}

// NewCounterRepository builds only the counter repository, for the admin CLI.
func NewCounterRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dynamoRepo.CounterRepository, error) {
	if cfg.AWS.SDKConfig == nil {
		if err := cfg.AWS.LoadSDKConfig(ctx); err != nil {
			return nil, err
		}
	}
	client := dynamoRepo.NewClientAdapter(dynamodb.NewFromConfig(*cfg.AWS.SDKConfig))
	return dynamoRepo.NewCounterRepository(client, cfg.AWS.CountersTable, logger), nil
}
