// Package database defines repository interfaces for data persistence.
// It provides abstractions for recipe storage and recipe ID allocation.
package database

import (
	"context"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
)

// RecipeRepository defines the interface for recipe-related database operations.
// Every lookup and mutation is scoped to the owner taken from validated claims.
type RecipeRepository interface {
	// CreateRecipe inserts a recipe whose ID must not already exist and returns the
	// stored record as read back from the table.
	CreateRecipe(ctx context.Context, recipe *api.Recipe) (*api.Recipe, error)

	// ListRecipes returns every recipe owned by ownerID, in store order.
	ListRecipes(ctx context.Context, ownerID string) ([]*api.Recipe, error)

	// GetRecipe returns the owner's recipe with the given ID, or nil if there is none.
	GetRecipe(ctx context.Context, ownerID string, recipeID int64) (*api.Recipe, error)

	// GetRecipeBySlug returns the owner's first recipe with the given slug, or nil.
	GetRecipeBySlug(ctx context.Context, ownerID, slug string) (*api.Recipe, error)

	// UpdateRecipe replaces the editable fields of an existing recipe.
	UpdateRecipe(ctx context.Context, ownerID string, recipeID int64, fields *api.RecipeFields) (*api.Recipe, error)

	// UpdateRecipeImage sets only the image reference and the update timestamp.
	UpdateRecipeImage(ctx context.Context, ownerID string, recipeID int64, imageURL, updatedAt string) (*api.Recipe, error)

	// DeleteRecipe removes an existing recipe and returns its prior state.
	DeleteRecipe(ctx context.Context, ownerID string, recipeID int64) (*api.Recipe, error)
}

// CounterRepository allocates unique recipe IDs from a single atomic counter.
type CounterRepository interface {
	// Allocate atomically increments the counter and returns the new value.
	Allocate(ctx context.Context) (int64, error)

	// Seed creates the counter record with the given start value.
	// Fails if the record already exists.
	Seed(ctx context.Context, start int64) error

	// Current returns the counter value without changing it.
	Current(ctx context.Context) (int64, error)
}
