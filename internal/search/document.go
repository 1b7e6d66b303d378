// Package search defines the document and query model exchanged with
// the external document-search backend. Adapters compile these types
// into whatever wire format the chosen backend speaks.
package search

import "github.com/pantrychef/v1/internal/domain/units"

// RecipeDocument is the denormalized search projection of a recipe.
// The field set mirrors the index mapping exactly: name carries a
// `.keyword` sub-field in the index for exact-match collapse.
type RecipeDocument struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Description      string               `json:"description"`
	Categories       []string             `json:"categories"`
	IngredientsCount int                  `json:"ingredientsCount"`
	Ingredients      []IngredientDocument `json:"ingredients"`
}

// IngredientDocument embeds both the raw and the normalized quantity of
// a recipe ingredient so index-side scoring never has to convert units.
type IngredientDocument struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Quantity           float64          `json:"quantity"`
	Unit               units.UnitCode   `json:"unit"`
	ProductID          string           `json:"productId,omitempty"`
	NormalizedQuantity float64          `json:"normalizedQuantity"`
	BaseUnitFamily     units.UnitFamily `json:"baseUnitFamily"`
}

// ScoredRecipe is a search hit mapped back into the domain: the
// document plus the backend-reported relevance value.
type ScoredRecipe struct {
	RecipeDocument
	Score float64 `json:"score"`
}
