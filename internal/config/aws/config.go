// Package aws contains AWS-specific configuration helpers for the recipes services.
package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config contains AWS-specific configuration.
type Config struct {
	// DynamoDB
	RecipesTable  string `mapstructure:"recipes_table" validate:"required"`
	RecipesIndex  string `mapstructure:"recipes_index" validate:"required"`
	CountersTable string `mapstructure:"counters_table" validate:"required"`

	// Cognito user pool
	UserPoolID               string `mapstructure:"user_pool_id" validate:"required"`
	AppClientID              string `mapstructure:"app_client_id" validate:"required"`
	AppClientSecret          string `mapstructure:"app_client_secret"`
	AppClientSecretParameter string `mapstructure:"app_client_secret_parameter"`

	// Recipe images
	ImagesBucket string `mapstructure:"images_bucket" validate:"required"`
	ImageBaseURL string `mapstructure:"image_base_url" validate:"omitempty,url"`

	// Region overrides the region resolved by the SDK default chain when set.
	Region string `mapstructure:"region"`

	// AWS SDK Configuration (credentials, region, etc.)
	SDKConfig *aws.Config `mapstructure:"-"`
}

var validate = validator.New()

// BindEnvVars binds AWS-specific environment variables to the provided Viper instance.
func BindEnvVars(v *viper.Viper) {
	v.SetDefault("aws.recipes_index", constants.DefaultRecipesIndex)

	prefix := constants.EnvPrefix + "_AWS_"
	_ = v.BindEnv("aws.recipes_table", prefix+"RECIPES_TABLE")
	_ = v.BindEnv("aws.recipes_index", prefix+"RECIPES_INDEX")
	_ = v.BindEnv("aws.counters_table", prefix+"COUNTERS_TABLE")
	_ = v.BindEnv("aws.user_pool_id", prefix+"USER_POOL_ID")
	_ = v.BindEnv("aws.app_client_id", prefix+"APP_CLIENT_ID")
	_ = v.BindEnv("aws.app_client_secret", prefix+"APP_CLIENT_SECRET")
	_ = v.BindEnv("aws.app_client_secret_parameter", prefix+"APP_CLIENT_SECRET_PARAMETER")
	_ = v.BindEnv("aws.images_bucket", prefix+"IMAGES_BUCKET")
	_ = v.BindEnv("aws.image_base_url", prefix+"IMAGE_BASE_URL")
	_ = v.BindEnv("aws.region", prefix+"REGION", "AWS_REGION")
}

// ValidateAPI validates the AWS fields required by the API Lambda.
func ValidateAPI(cfg *Config) error {
	if cfg == nil {
		return errors.New("AWS configuration is required")
	}

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid AWS configuration: %w", err)
	}

	if cfg.AppClientSecret != "" && cfg.AppClientSecretParameter != "" {
		return errors.New("AWS.AppClientSecret and AWS.AppClientSecretParameter are mutually exclusive")
	}

	cfg.ImageBaseURL = strings.TrimSuffix(cfg.ImageBaseURL, "/")

	return nil
}

// ValidateCounterAdmin validates the fields needed by the counter administration commands.
func ValidateCounterAdmin(cfg *Config) error {
	if cfg == nil || strings.TrimSpace(cfg.CountersTable) == "" {
		return errors.New("AWS.CountersTable cannot be empty")
	}
	return nil
}

// DefaultImageBaseURL returns the virtual-hosted S3 URL of the images bucket.
func (c *Config) DefaultImageBaseURL() string {
	if c.ImageBaseURL != "" {
		return c.ImageBaseURL
	}
	region := c.Region
	if region == "" && c.SDKConfig != nil {
		region = c.SDKConfig.Region
	}
	if region == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com", c.ImagesBucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.ImagesBucket, region)
}

// LoadSDKConfig loads the AWS SDK configuration from the environment.
func (c *Config) LoadSDKConfig(ctx context.Context) error {
	var opts []func(*awsConfig.LoadOptions) error
	if c.Region != "" {
		opts = append(opts, awsConfig.WithRegion(c.Region))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to load AWS SDK configuration: %w", err)
	}
	c.SDKConfig = &awsCfg
	return nil
}
