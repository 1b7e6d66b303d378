package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/pantrychef/v1/internal/domain/units"
)

// RecipeTestSuite provides a test suite for the Recipe entity
type RecipeTestSuite struct {
	suite.Suite
}

func (suite *RecipeTestSuite) TestRecipeCreation() {
	suite.Run("ValidRecipe_ShouldCreateSuccessfully", func() {
		// Arrange
		name := "Spaghetti Carbonara"
		description := "A classic Italian pasta dish"

		// Act
		r, err := NewRecipe(name, description, []string{"pasta", "italian"})

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), r)

		assert.Equal(suite.T(), name, r.Name())
		assert.Equal(suite.T(), StatusDraft, r.Status())
		assert.NotZero(suite.T(), r.CreatedAt())
		assert.Equal(suite.T(), int64(1), r.Version())

		events := r.Events()
		require.Len(suite.T(), events, 1)
		saved, ok := events[0].(SavedEvent)
		assert.True(suite.T(), ok, "should emit SavedEvent")
		assert.Equal(suite.T(), r.ID(), saved.RecipeID)
	})

	suite.Run("NameTooShort_ShouldReturnError", func() {
		r, err := NewRecipe("AB", "Valid description", nil)

		assert.Nil(suite.T(), r)
		assert.Equal(suite.T(), ErrNameTooShort, err)
	})

	suite.Run("DescriptionTooLong_ShouldReturnError", func() {
		r, err := NewRecipe("Valid Name", string(make([]byte, 2001)), nil)

		assert.Nil(suite.T(), r)
		assert.Equal(suite.T(), ErrDescriptionTooLong, err)
	})
}

func (suite *RecipeTestSuite) TestIngredients() {
	suite.Run("AddIngredient_Valid_ShouldAppendAndEmitSavedEvent", func() {
		r, _ := NewRecipe("Pancakes", "", nil)
		r.Events() // drain creation event

		err := r.AddIngredient(Ingredient{
			Name:             "flour",
			Quantity:         200,
			Unit:             units.UnitGram,
			LinkedProductIDs: []string{"prod-flour"},
		})

		require.NoError(suite.T(), err)
		require.Len(suite.T(), r.Ingredients(), 1)
		assert.Equal(suite.T(), "prod-flour", r.Ingredients()[0].LinkedProductID())

		events := r.Events()
		require.Len(suite.T(), events, 1)
		assert.Equal(suite.T(), "recipe.saved", events[0].EventName())
	})

	suite.Run("AddIngredient_EmptyName_ShouldReturnError", func() {
		r, _ := NewRecipe("Pancakes", "", nil)

		err := r.AddIngredient(Ingredient{Quantity: 1, Unit: units.UnitPiece})

		assert.Error(suite.T(), err)
		assert.Empty(suite.T(), r.Ingredients())
	})

	suite.Run("LinkedProductID_OnlyFirstLinkIsUsed", func() {
		ing := Ingredient{Name: "butter", LinkedProductIDs: []string{"a", "b"}}

		assert.Equal(suite.T(), "a", ing.LinkedProductID())
	})

	suite.Run("LinkedProductID_Unlinked_IsEmpty", func() {
		ing := Ingredient{Name: "love"}

		assert.Empty(suite.T(), ing.LinkedProductID())
	})
}

func (suite *RecipeTestSuite) TestLifecycle() {
	suite.Run("Publish_Draft_ShouldTransition", func() {
		r, _ := NewRecipe("Soup", "", nil)
		require.NoError(suite.T(), r.AddIngredient(Ingredient{Name: "carrot", Quantity: 3, Unit: units.UnitPiece}))

		err := r.Publish()

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), StatusPublished, r.Status())
	})

	suite.Run("Publish_WithoutIngredients_ShouldReturnError", func() {
		r, _ := NewRecipe("Empty Dish", "", nil)

		err := r.Publish()

		assert.Equal(suite.T(), ErrNoIngredients, err)
	})

	suite.Run("Archive_Published_ShouldEmitRemovedEvent", func() {
		r, _ := NewRecipe("Soup", "", nil)
		require.NoError(suite.T(), r.AddIngredient(Ingredient{Name: "carrot", Quantity: 3, Unit: units.UnitPiece}))
		require.NoError(suite.T(), r.Publish())
		r.Events()

		err := r.Archive()

		require.NoError(suite.T(), err)
		events := r.Events()
		require.Len(suite.T(), events, 1)
		assert.Equal(suite.T(), "recipe.removed", events[0].EventName())
	})

	suite.Run("Archive_Draft_ShouldReturnError", func() {
		r, _ := NewRecipe("Soup", "", nil)

		err := r.Archive()

		assert.Equal(suite.T(), ErrInvalidStatusTransition, err)
	})
}

func TestRecipeTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeTestSuite))
}
