package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredAPIEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RECIPES_AWS_RECIPES_TABLE", "recipes-test")
	t.Setenv("RECIPES_AWS_COUNTERS_TABLE", "counters-test")
	t.Setenv("RECIPES_AWS_USER_POOL_ID", "us-east-1_abc123")
	t.Setenv("RECIPES_AWS_APP_CLIENT_ID", "client-123")
	t.Setenv("RECIPES_AWS_IMAGES_BUCKET", "recipe-images")
}

func TestConfig_GetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		expected slog.Level
	}{
		{name: "DEBUG level", logLevel: "DEBUG", expected: slog.LevelDebug},
		{name: "INFO level", logLevel: "INFO", expected: slog.LevelInfo},
		{name: "WARN level", logLevel: "WARN", expected: slog.LevelWarn},
		{name: "ERROR level", logLevel: "ERROR", expected: slog.LevelError},
		{name: "invalid level defaults to INFO", logLevel: "INVALID", expected: slog.LevelInfo},
		{name: "empty string defaults to INFO", logLevel: "", expected: slog.LevelInfo},
		{name: "lowercase level", logLevel: "debug", expected: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.expected, cfg.GetLogLevel())
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads required values and defaults", func(t *testing.T) {
		setRequiredAPIEnv(t)

		cfg, err := Load()
		require.NoError(t, err)
		require.NotNil(t, cfg.AWS)

		assert.Equal(t, "recipes-test", cfg.AWS.RecipesTable)
		assert.Equal(t, "counters-test", cfg.AWS.CountersTable)
		assert.Equal(t, constants.DefaultRecipesIndex, cfg.AWS.RecipesIndex)
		assert.Equal(t, "us-east-1_abc123", cfg.AWS.UserPoolID)
		assert.Equal(t, "client-123", cfg.AWS.AppClientID)
		assert.Equal(t, "recipe-images", cfg.AWS.ImagesBucket)
		assert.Equal(t, constants.DefaultAllowedOrigin, cfg.AllowedOrigin)
		assert.Equal(t, 10*time.Second, cfg.InitTimeout)
		assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
		assert.Equal(t, 56212, cfg.Port)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		setRequiredAPIEnv(t)
		t.Setenv("RECIPES_ALLOWED_ORIGIN", "https://recipes.example.com")
		t.Setenv("RECIPES_LOG_LEVEL", "DEBUG")
		t.Setenv("RECIPES_REQUEST_TIMEOUT", "25s")
		t.Setenv("RECIPES_AWS_IMAGE_BASE_URL", "https://cdn.example.com/")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "https://recipes.example.com", cfg.AllowedOrigin)
		assert.Equal(t, slog.LevelDebug, cfg.GetLogLevel())
		assert.Equal(t, 25*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "https://cdn.example.com", cfg.AWS.ImageBaseURL)
	})

	t.Run("missing recipes table fails", func(t *testing.T) {
		setRequiredAPIEnv(t)
		t.Setenv("RECIPES_AWS_RECIPES_TABLE", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RecipesTable")
	})

	t.Run("client secret and parameter are mutually exclusive", func(t *testing.T) {
		setRequiredAPIEnv(t)
		t.Setenv("RECIPES_AWS_APP_CLIENT_SECRET", "shh")
		t.Setenv("RECIPES_AWS_APP_CLIENT_SECRET_PARAMETER", "/recipes/client-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})
}

func TestLoadCLI(t *testing.T) {
	t.Run("only counters table is required", func(t *testing.T) {
		t.Setenv("RECIPES_AWS_COUNTERS_TABLE", "counters-test")
		t.Setenv("RECIPES_AWS_RECIPES_TABLE", "")

		cfg, err := LoadCLI()
		require.NoError(t, err)
		assert.Equal(t, "counters-test", cfg.AWS.CountersTable)
	})

	t.Run("missing counters table fails", func(t *testing.T) {
		t.Setenv("RECIPES_AWS_COUNTERS_TABLE", "")

		_, err := LoadCLI()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CountersTable")
	})
}
