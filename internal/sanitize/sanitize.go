// Package sanitize escapes user supplied recipe text and derives URL slugs.
package sanitize

import (
	"html"
	"regexp"

	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
)

var (
	strict = bluemonday.StrictPolicy()

	slugStrip = regexp.MustCompile(`[*+~.()'"!:@]`)
)

// Text HTML-escapes free text. Markup is kept as escaped text rather than dropped, so
// "Mix <eggs>" survives as "Mix &lt;eggs&gt;".
// bluemonday policies are safe for concurrent use once built.
func Text(s string) string {
	return strict.Sanitize(html.EscapeString(s))
}

// Slug derives the URL slug for a recipe name. It must be given the raw name,
// not the escaped one, or entities such as &amp; leak into the slug.
// The result only contains lower case ASCII letters, digits, '-' and '_'.
func Slug(name string) string {
	return slug.Make(slugStrip.ReplaceAllString(name, ""))
}

// Recipe returns a copy of input with every free text field escaped.
// The slug is computed from the raw name and returned alongside.
func Recipe(input *api.RecipeInput) (clean api.RecipeInput, recipeSlug string) {
	ingredients := make([]api.Ingredient, 0, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		ingredients = append(ingredients, api.Ingredient{
			Name:   Text(ing.Name),
			Amount: Text(ing.Amount),
		})
	}

	clean = api.RecipeInput{
		RecipeName:   Text(input.RecipeName),
		Ingredients:  ingredients,
		Instructions: Text(input.Instructions),
		Image:        Text(input.Image),
	}
	return clean, Slug(input.RecipeName)
}
