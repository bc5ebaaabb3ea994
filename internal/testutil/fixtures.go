// Package testutil provides shared testing utilities and helpers.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
)

// RecipeBuilder provides a fluent interface for building test recipes.
type RecipeBuilder struct {
	recipe *api.Recipe
}

// NewRecipeBuilder creates a new RecipeBuilder with sensible defaults.
func NewRecipeBuilder() *RecipeBuilder {
	return &RecipeBuilder{
		recipe: &api.Recipe{
			RecipeID:     1,
			UserID:       "test-user",
			RecipeName:   "Test Recipe",
			Slug:         "test-recipe",
			Ingredients:  []api.Ingredient{{Name: "flour", Amount: "2 cups"}},
			Instructions: "Mix and bake",
			CreatedAt:    "1700000000000",
			UpdatedAt:    "1700000000000",
		},
	}
}

// WithID sets the recipe ID.
func (b *RecipeBuilder) WithID(id int64) *RecipeBuilder {
	b.recipe.RecipeID = id
	return b
}

// WithOwner sets the owning user ID.
func (b *RecipeBuilder) WithOwner(userID string) *RecipeBuilder {
	b.recipe.UserID = userID
	return b
}

// WithName sets the recipe name.
func (b *RecipeBuilder) WithName(name string) *RecipeBuilder {
	b.recipe.RecipeName = name
	return b
}

// WithSlug sets the recipe slug.
func (b *RecipeBuilder) WithSlug(slug string) *RecipeBuilder {
	b.recipe.Slug = slug
	return b
}

// WithIngredients sets the ingredient list.
func (b *RecipeBuilder) WithIngredients(ingredients []api.Ingredient) *RecipeBuilder {
	b.recipe.Ingredients = ingredients
	return b
}

// WithImage sets the image URL.
func (b *RecipeBuilder) WithImage(url string) *RecipeBuilder {
	b.recipe.Image = url
	return b
}

// Build returns the constructed Recipe.
func (b *RecipeBuilder) Build() *api.Recipe {
	return b.recipe
}

// Token returns an HS256 signed JWT carrying the given claims. Signatures are never checked
// by the code under test, so the key is fixed.
func Token(claims jwt.MapClaims) string {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	if err != nil {
		panic(err)
	}
	return signed
}

// AccessToken returns a token for username expiring at exp.
func AccessToken(username string, exp time.Time) string {
	return Token(jwt.MapClaims{
		"username":  username,
		"token_use": "access",
		"exp":       exp.Unix(),
	})
}

// TestContext creates a test context with a reasonable timeout.
// Note: The cancel function is intentionally not returned since test contexts
// are expected to be short-lived and will be cleaned up when the test completes.
func TestContext() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), constants.TestContextTimeout)
	_ = cancel // Silence unused warning - context will timeout automatically
	return ctx
}

// TestLogger creates a logger suitable for testing (outputs to stderr).
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}))
}

// SilentLogger creates a logger that discards all output.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1, // Suppress all logs
	}))
}
