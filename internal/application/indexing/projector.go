// Package indexing keeps the search projection of the recipe catalog
// current. Projection is pure; writing it to the index is a side effect
// that runs asynchronously relative to scoring calls.
package indexing

import (
	"github.com/pantrychef/v1/internal/domain/recipe"
	"github.com/pantrychef/v1/internal/search"
)

// Project turns a recipe aggregate into its search document. It is
// deterministic and side-effect free: scalar fields copied, per
// ingredient the raw quantity plus its normalized form from the shared
// conversion table, and the first linked product if any.
func Project(r *recipe.Recipe) search.RecipeDocument {
	ingredients := r.Ingredients()
	docs := make([]search.IngredientDocument, len(ingredients))
	for i, ing := range ingredients {
		normalized := ing.NormalizedQuantity()
		docs[i] = search.IngredientDocument{
			ID:                 ing.ID.String(),
			Name:               ing.Name,
			Quantity:           ing.Quantity,
			Unit:               ing.Unit,
			ProductID:          ing.LinkedProductID(),
			NormalizedQuantity: normalized.Value,
			BaseUnitFamily:     normalized.Family,
		}
	}

	return search.RecipeDocument{
		ID:               r.ID().String(),
		Name:             r.Name(),
		Description:      r.Description(),
		Categories:       r.Categories(),
		IngredientsCount: len(ingredients),
		Ingredients:      docs,
	}
}
