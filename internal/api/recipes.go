package api

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name   string `json:"name" dynamodbav:"name" validate:"required"`
	Amount string `json:"amount" dynamodbav:"amount"`
}

// Recipe is a stored recipe as returned to the owner.
type Recipe struct {
	RecipeID     int64        `json:"recipeId"`
	UserID       string       `json:"userId"`
	RecipeName   string       `json:"recipeName"`
	Slug         string       `json:"slug"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions string       `json:"instructions"`
	Image        string       `json:"image,omitempty"`
	CreatedAt    string       `json:"createdAt"`
	UpdatedAt    string       `json:"updatedAt"`
}

// RecipeInput carries the user-editable fields of a recipe for create and update.
type RecipeInput struct {
	RecipeName   string       `json:"recipeName" validate:"required"`
	Ingredients  []Ingredient `json:"ingredients" validate:"dive"`
	Instructions string       `json:"instructions"`
	Image        string       `json:"image,omitempty"`
}

// RecipeFields is the full set of fields replaced by an update.
type RecipeFields struct {
	RecipeName   string
	Slug         string
	Ingredients  []Ingredient
	Instructions string
	Image        string
	UpdatedAt    string
}

// ListRecipesResponse is returned when listing the caller's recipes.
type ListRecipesResponse struct {
	Recipes []*Recipe `json:"recipes"`
	Count   int       `json:"count"`
}
