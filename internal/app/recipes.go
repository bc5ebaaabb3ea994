package app

import (
	"context"
	"strings"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
	apperrors "github.com/DeanGilewicz/serverless-recipes-BE/internal/errors"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/logger"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/sanitize"
)

func validateRecipeInput(ownerID string, input *api.RecipeInput) error {
	if ownerID == "" {
		return apperrors.ErrUnauthorized("missing user identity", nil)
	}
	if input == nil || strings.TrimSpace(input.RecipeName) == "" {
		return apperrors.ErrBadRequest("recipeName is required", nil)
	}
	return nil
}

// CreateRecipe sanitizes the input, allocates a new recipe ID, writes the recipe under that ID
// and returns the stored record. The steps run strictly in that order. If the write fails the
// allocated ID is abandoned; IDs are unique but not gap free.
func (s *Service) CreateRecipe(ctx context.Context, ownerID string, input *api.RecipeInput) (*api.Recipe, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, s.Logger)

	if err := validateRecipeInput(ownerID, input); err != nil {
		return nil, err
	}

	clean, slug := sanitize.Recipe(input)

	recipeID, err := s.counterRepo.Allocate(ctx)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	recipe := &api.Recipe{
		RecipeID:     recipeID,
		UserID:       ownerID,
		RecipeName:   clean.RecipeName,
		Slug:         slug,
		Ingredients:  clean.Ingredients,
		Instructions: clean.Instructions,
		Image:        clean.Image,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	stored, err := s.recipeRepo.CreateRecipe(ctx, recipe)
	if err != nil {
		reqLogger.Warn("recipe id abandoned", "recipe_id", recipeID, "error", err)
		return nil, err
	}

	reqLogger.Info("recipe created", "recipe_id", stored.RecipeID, "slug", stored.Slug)

	return stored, nil
}

// ListRecipes returns the caller's recipes.
func (s *Service) ListRecipes(ctx context.Context, ownerID string) (*api.ListRecipesResponse, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized("missing user identity", nil)
	}

	recipes, err := s.recipeRepo.ListRecipes(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &api.ListRecipesResponse{
		Recipes: recipes,
		Count:   len(recipes),
	}, nil
}

// GetRecipe returns one of the caller's recipes by ID.
func (s *Service) GetRecipe(ctx context.Context, ownerID string, recipeID int64) (*api.Recipe, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized("missing user identity", nil)
	}

	recipe, err := s.recipeRepo.GetRecipe(ctx, ownerID, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apperrors.ErrRecipeNotFound(nil)
	}
	return recipe, nil
}

// GetRecipeBySlug returns one of the caller's recipes by slug.
func (s *Service) GetRecipeBySlug(ctx context.Context, ownerID, slug string) (*api.Recipe, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized("missing user identity", nil)
	}
	if slug == "" {
		return nil, apperrors.ErrBadRequest("slug is required", nil)
	}

	recipe, err := s.recipeRepo.GetRecipeBySlug(ctx, ownerID, slug)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apperrors.ErrRecipeNotFound(nil)
	}
	return recipe, nil
}

// UpdateRecipe replaces every editable field of an existing recipe. The slug is recomputed from
// the new name.
func (s *Service) UpdateRecipe(
	ctx context.Context,
	ownerID string,
	recipeID int64,
	input *api.RecipeInput,
) (*api.Recipe, error) {
	if err := validateRecipeInput(ownerID, input); err != nil {
		return nil, err
	}

	clean, slug := sanitize.Recipe(input)

	return s.recipeRepo.UpdateRecipe(ctx, ownerID, recipeID, &api.RecipeFields{
		RecipeName:   clean.RecipeName,
		Slug:         slug,
		Ingredients:  clean.Ingredients,
		Instructions: clean.Instructions,
		Image:        clean.Image,
		UpdatedAt:    s.timestamp(),
	})
}

// DeleteRecipe deletes one of the caller's recipes and returns its prior state.
func (s *Service) DeleteRecipe(ctx context.Context, ownerID string, recipeID int64) (*api.Recipe, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized("missing user identity", nil)
	}

	deleted, err := s.recipeRepo.DeleteRecipe(ctx, ownerID, recipeID)
	if err != nil {
		return nil, err
	}

	logger.DeriveRequestLogger(ctx, s.Logger).Info("recipe deleted", "recipe_id", recipeID)

	return deleted, nil
}
