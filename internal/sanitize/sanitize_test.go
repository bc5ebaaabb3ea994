package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
)

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "simmer gently", "simmer gently"},
		{"ampersand", "Brown & simmer", "Brown &amp; simmer"},
		{"markup escaped", "<b>bold</b> move", "&lt;b&gt;bold&lt;/b&gt; move"},
		{"script escaped", "<script>alert(1)</script>salt", "&lt;script&gt;alert(1)&lt;/script&gt;salt"},
		{"angle brackets in prose", "Mix <eggs> & milk", "Mix &lt;eggs&gt; &amp; milk"},
		{"comparison operators", "a<b && c>d", "a&lt;b &amp;&amp; c&gt;d"},
		{"quotes", `say "when"`, "say &#34;when&#34;"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Text(tt.input))
		})
	}
}

func TestText_Deterministic(t *testing.T) {
	in := `Tom & Jerry's "best" <i>pie</i>`
	assert.Equal(t, Text(in), Text(in))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"apostrophe and bang", "Mom's Chili!", "moms-chili"},
		{"collapses whitespace", "  Big   Tasty\tStew ", "big-tasty-stew"},
		{"strips punctuation set", `a*b+c~d.e(f)g'h"i!j:k@l`, "abcdefghijkl"},
		{"keeps digits and dashes", "Pad Thai 2-ways", "pad-thai-2-ways"},
		{"slash", "Salt/Pepper Steak", "salt-pepper-steak"},
		{"ampersand and question mark", "Mac & Cheese?", "mac-and-cheese"},
		{"accents and hash", "Crème Brûlée #1", "creme-brulee-1"},
		{"collapses dashes", "a - b", "a-b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slug(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Regexp(t, `^[a-z0-9_-]*$`, got)
		})
	}
}

func TestRecipe(t *testing.T) {
	t.Run("escapes every text field", func(t *testing.T) {
		input := &api.RecipeInput{
			RecipeName:   "Mom's Chili!",
			Ingredients:  []api.Ingredient{{Name: "beef", Amount: "1 lb"}, {Name: "salt & pepper", Amount: "<b>pinch</b>"}},
			Instructions: "Brown & simmer",
		}

		clean, slug := Recipe(input)

		assert.Equal(t, "moms-chili", slug)
		assert.Equal(t, "Brown &amp; simmer", clean.Instructions)
		assert.Equal(t, "Mom&#39;s Chili!", clean.RecipeName)
		assert.Equal(t, []api.Ingredient{
			{Name: "beef", Amount: "1 lb"},
			{Name: "salt &amp; pepper", Amount: "&lt;b&gt;pinch&lt;/b&gt;"},
		}, clean.Ingredients)
		assert.Equal(t, "Brown & simmer", input.Instructions, "input must not be mutated")
	})

	t.Run("nil ingredients become empty list", func(t *testing.T) {
		clean, _ := Recipe(&api.RecipeInput{RecipeName: "Toast"})
		assert.NotNil(t, clean.Ingredients)
		assert.Empty(t, clean.Ingredients)
	})
}
