package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/config"
	awsProvider "github.com/DeanGilewicz/serverless-recipes-BE/internal/providers/aws/app"
)

// Initialize builds the AWS-backed dependencies and returns a ready Service. The configured
// init timeout bounds the time spent resolving SDK configuration and secrets.
func Initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if cfg.InitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.InitTimeout)
		defer cancel()
	}

	logger.Debug("initializing service", "context", map[string]any{
		"init_timeout":   cfg.InitTimeout.String(),
		"allowed_origin": cfg.AllowedOrigin,
	})

	deps, err := awsProvider.Initialize(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AWS dependencies: %w", err)
	}

	return NewService(deps.RecipeRepo, deps.CounterRepo, deps.Identity, deps.Images, logger), nil
}
