// Package config manages configuration for the recipes services and CLI.
// It uses Viper for unified configuration management from files and environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	awsconfig "github.com/DeanGilewicz/serverless-recipes-BE/internal/config/aws"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the unified configuration structure for the API and the CLI.
type Config struct {
	AllowedOrigin  string        `mapstructure:"allowed_origin" validate:"required"`
	InitTimeout    time.Duration `mapstructure:"init_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
	Port           int           `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	AWS *awsconfig.Config `mapstructure:"aws" validate:"-"`
}

var validate = validator.New()

// Load loads the configuration for the API Lambda from RECIPES_ environment variables
// and validates every field the handlers depend on.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if err = awsconfig.ValidateAPI(cfg.AWS); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadCLI loads configuration for the admin CLI. Only the counters table is required.
func LoadCLI() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if err = awsconfig.ValidateCounterAdmin(cfg.AWS); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoad loads API configuration and exits on error.
// Suitable for application startup where configuration errors should be fatal.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// GetLogLevel returns the slog.Level from the string configuration.
// Defaults to INFO if the level string is invalid.
func (c *Config) GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)
	awsconfig.BindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.AWS == nil {
		cfg.AWS = &awsconfig.Config{}
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 56212)
	v.SetDefault("request_timeout", 0)
	v.SetDefault("init_timeout", "10s")
	v.SetDefault("allowed_origin", constants.DefaultAllowedOrigin)
	v.SetDefault("log_level", "INFO")
}

func bindEnvVars(v *viper.Viper) {
	envVars := []string{
		"ALLOWED_ORIGIN",
		"DEV_SERVER_PORT",
		"INIT_TIMEOUT",
		"LOG_LEVEL",
		"REQUEST_TIMEOUT",
	}

	for _, envVar := range envVars {
		if envVar == "DEV_SERVER_PORT" {
			_ = v.BindEnv("port", constants.EnvPrefix+"_DEV_SERVER_PORT")
		} else {
			_ = v.BindEnv(strings.ToLower(envVar), constants.EnvPrefix+"_"+envVar)
		}
	}
}
