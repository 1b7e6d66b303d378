package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/v1/internal/domain/units"
	"github.com/pantrychef/v1/internal/search"
)

func indexWith(t *testing.T, docs ...search.RecipeDocument) *Index {
	t.Helper()
	ix := NewIndex()
	for _, doc := range docs {
		require.NoError(t, ix.Index(context.Background(), doc))
	}
	return ix
}

func pastaDoc(id, name string) search.RecipeDocument {
	return search.RecipeDocument{
		ID:               id,
		Name:             name,
		Description:      "pasta with tomato sauce",
		Categories:       []string{"pasta", "dinner"},
		IngredientsCount: 2,
		Ingredients: []search.IngredientDocument{
			{Name: "spaghetti", Quantity: 200, Unit: units.UnitGram, ProductID: "prod-spaghetti", NormalizedQuantity: 200, BaseUnitFamily: units.FamilyMass},
			{Name: "tomato", Quantity: 3, Unit: units.UnitPiece, ProductID: "prod-tomato", NormalizedQuantity: 3, BaseUnitFamily: units.FamilyCount},
		},
	}
}

func TestIndex_AddRemoveRoundTrip(t *testing.T) {
	ix := indexWith(t, pastaDoc("r1", "Spaghetti"))

	res, err := ix.Search(context.Background(), search.Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	require.NoError(t, ix.Remove(context.Background(), "r1"))
	require.NoError(t, ix.Remove(context.Background(), "r1"), "removing an unknown id is not an error")

	res, err = ix.Search(context.Background(), search.Query{})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
}

func TestSearch_FuzzyTextMatchWithFieldBoosts(t *testing.T) {
	nameHit := pastaDoc("r1", "Tomato Soup")
	descriptionHit := search.RecipeDocument{
		ID: "r2", Name: "Mystery Stew", Description: "secretly a tomato dish",
	}
	miss := search.RecipeDocument{ID: "r3", Name: "Chocolate Cake", Description: "no vegetables here"}
	ix := indexWith(t, nameHit, descriptionHit, miss)

	res, err := ix.Search(context.Background(), search.Query{
		Text: &search.TextClause{Query: "tomato", NameBoost: 3, DescriptionBoost: 1, IngredientBoost: 2},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	// Name match (x3) plus ingredient match (x2) beats description (x1).
	assert.Equal(t, "r1", res.Hits[0].Document.ID)
	assert.Equal(t, "r2", res.Hits[1].Document.ID)
	assert.Greater(t, res.Hits[0].Score, res.Hits[1].Score)
}

func TestSearch_FuzzyToleratesOneEdit(t *testing.T) {
	ix := indexWith(t, pastaDoc("r1", "Spaghetti Bolognese"))

	res, err := ix.Search(context.Background(), search.Query{
		Text: &search.TextClause{Query: "spagetti", NameBoost: 3, DescriptionBoost: 1, IngredientBoost: 2},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestSearch_MustNotIngredientExcludesBySubstring(t *testing.T) {
	glutenous := search.RecipeDocument{
		ID: "r1", Name: "Seitan Roast", IngredientsCount: 1,
		Ingredients: []search.IngredientDocument{{Name: "wheat gluten"}},
	}
	safe := pastaDoc("r2", "Tomato Salad")
	ix := indexWith(t, glutenous, safe)

	res, err := ix.Search(context.Background(), search.Query{MustNotIngredients: []string{"gluten"}})

	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "r2", res.Hits[0].Document.ID)
}

func TestSearch_MustNotCategoryExcludes(t *testing.T) {
	ix := indexWith(t, pastaDoc("r1", "Spaghetti"))

	res, err := ix.Search(context.Background(), search.Query{MustNotCategories: []string{"Dinner"}})

	require.NoError(t, err)
	assert.Zero(t, res.Total, "category exclusion is case-insensitive")
}

func TestSearch_PreferredCategoriesDriveDiscoverBase(t *testing.T) {
	pasta := pastaDoc("r1", "Spaghetti")
	dessert := search.RecipeDocument{ID: "r2", Name: "Tiramisu", Categories: []string{"dessert"}}
	ix := indexWith(t, pasta, dessert)

	res, err := ix.Search(context.Background(), search.Query{
		PreferredCategories: []string{"pasta"},
		MinimumShouldMatch:  1,
	})

	require.NoError(t, err)
	require.Equal(t, 1, res.Total, "minimum_should_match drops non-matching documents")
	assert.Equal(t, "r1", res.Hits[0].Document.ID)
}

func TestSearch_FunctionsSumThenMultiplyOntoBase(t *testing.T) {
	ix := indexWith(t, pastaDoc("r1", "Spaghetti"))

	res, err := ix.Search(context.Background(), search.Query{
		Functions: []search.FunctionClause{
			{
				Name:   search.FunctionAvailability,
				Weight: 1.5,
				Stock: map[string]search.FamilyTotals{
					"prod-spaghetti": {"MASS": 500},
					"prod-tomato":    {"COUNT": 6},
				},
			},
			{
				Name:            search.FunctionUrgency,
				Weight:          5,
				DaysUntilExpiry: map[string]int{"prod-tomato": 1},
			},
		},
		ScoreMode: search.ScoreModeSum,
		BoostMode: search.BoostModeMultiply,
	})

	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	// base 1 * (1.5*availability(1.0) + 5*urgency(0.5/1... averaged))
	availability := 1.0
	urgency := (1.0 / 2.0) / 1.0 // one matched ingredient, one day left
	assert.InDelta(t, 1.5*availability+5*urgency, res.Hits[0].Score, 1e-9)
}

func TestSearch_UnknownFunctionIsInvalidQuery(t *testing.T) {
	ix := indexWith(t, pastaDoc("r1", "Spaghetti"))

	_, err := ix.Search(context.Background(), search.Query{
		Functions: []search.FunctionClause{{Name: "tastiness", Weight: 1}},
	})

	assert.ErrorIs(t, err, search.ErrInvalidQuery)
}

func TestSearch_SizeLimitsPageNotTotal(t *testing.T) {
	ix := indexWith(t,
		pastaDoc("r1", "Spaghetti One"),
		pastaDoc("r2", "Spaghetti Two"),
		pastaDoc("r3", "Spaghetti Three"),
	)

	res, err := ix.Search(context.Background(), search.Query{Size: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Len(t, res.Hits, 2)
}
