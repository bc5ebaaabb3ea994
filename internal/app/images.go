package app

import (
	"context"
	"mime"

	"github.com/gabriel-vasile/mimetype"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
	apperrors "github.com/DeanGilewicz/serverless-recipes-BE/internal/errors"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/logger"
)

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
}

// validateImage accepts JPEG and PNG only. The declared content type of the upload must be one
// of them and the bytes must sniff as that same type.
func validateImage(declaredType string, data []byte) (contentType, ext string, err error) {
	mediaType, _, parseErr := mime.ParseMediaType(declaredType)
	if parseErr != nil {
		return "", "", apperrors.ErrInvalidImage("Invalid image", parseErr)
	}

	ext, ok := imageExtensions[mediaType]
	if !ok {
		return "", "", apperrors.ErrInvalidImage("Invalid image", nil)
	}
	if len(data) == 0 {
		return "", "", apperrors.ErrInvalidImage("Invalid image", nil)
	}

	if detected := mimetype.Detect(data); !detected.Is(mediaType) {
		return "", "", apperrors.ErrInvalidImage("Invalid image", nil)
	}

	return mediaType, ext, nil
}

// UploadRecipeImage validates the image, checks the recipe exists, uploads the bytes and then
// records the URL on the recipe. Nothing is uploaded for a rejected image or a missing recipe.
func (s *Service) UploadRecipeImage(
	ctx context.Context,
	ownerID string,
	recipeID int64,
	declaredType string,
	data []byte,
) (*api.Recipe, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, s.Logger)

	contentType, ext, err := validateImage(declaredType, data)
	if err != nil {
		reqLogger.Debug("image rejected", "declared_type", declaredType, "size", len(data))
		return nil, err
	}

	if _, err = s.GetRecipe(ctx, ownerID, recipeID); err != nil {
		return nil, err
	}

	url, err := s.images.Upload(ctx, ownerID, recipeID, contentType, ext, data)
	if err != nil {
		return nil, err
	}

	return s.recipeRepo.UpdateRecipeImage(ctx, ownerID, recipeID, url, s.timestamp())
}
