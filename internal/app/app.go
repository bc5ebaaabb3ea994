// Package app provides the core application service: recipe management on top of the
// repositories and user account operations on top of the identity gateway.
package app

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/auth"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/database"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/identity"
)

// ImageStore stores recipe images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, ownerID string, recipeID int64, contentType, ext string, data []byte) (string, error)
}

// Service provides the business logic behind every HTTP route.
type Service struct {
	recipeRepo  database.RecipeRepository
	counterRepo database.CounterRepository
	identity    identity.Gateway
	authFilter  *auth.Filter
	images      ImageStore
	Logger      *slog.Logger
	now         func() time.Time
}

// NewService creates a new service instance.
func NewService(
	recipeRepo database.RecipeRepository,
	counterRepo database.CounterRepository,
	gateway identity.Gateway,
	images ImageStore,
	logger *slog.Logger,
) *Service {
	return &Service{
		recipeRepo:  recipeRepo,
		counterRepo: counterRepo,
		identity:    gateway,
		authFilter:  auth.NewFilter(gateway, logger),
		images:      images,
		Logger:      logger,
		now:         time.Now,
	}
}

// timestamp renders the current time as epoch milliseconds, the format recipes store.
func (s *Service) timestamp() string {
	return strconv.FormatInt(s.now().UnixMilli(), 10)
}
