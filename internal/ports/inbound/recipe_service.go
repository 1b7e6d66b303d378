package inbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/pantrychef/v1/internal/domain/units"
)

// RecipeService defines the catalog-side use cases. CRUD persistence is
// an external collaborator; these operations exist so recipe lifecycle
// changes feed the search projection.
type RecipeService interface {
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	PublishRecipe(ctx context.Context, recipeID uuid.UUID) error
	DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error
	GetRecipeByID(ctx context.Context, recipeID uuid.UUID) (*RecipeDTO, error)
}

// CreateRecipeCommand contains data for creating a new recipe
type CreateRecipeCommand struct {
	Name        string
	Description string
	Categories  []string
	Ingredients []IngredientCommand
}

// UpdateRecipeCommand contains data for updating a recipe; nil fields
// are left untouched.
type UpdateRecipeCommand struct {
	RecipeID    uuid.UUID
	Name        *string
	Description *string
	Categories  *[]string
	Ingredients *[]IngredientCommand
}

// IngredientCommand describes one required ingredient
type IngredientCommand struct {
	Name             string
	Quantity         float64
	Unit             units.UnitCode
	LinkedProductIDs []string
	Optional         bool
	Notes            string
}

// RecipeDTO is the outward representation of a recipe
type RecipeDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Categories  []string        `json:"categories"`
	Ingredients []IngredientDTO `json:"ingredients"`
	Status      string          `json:"status"`
}

// IngredientDTO is the outward representation of an ingredient
type IngredientDTO struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Quantity        float64        `json:"quantity"`
	Unit            units.UnitCode `json:"unit"`
	LinkedProductID string         `json:"linkedProductId,omitempty"`
}
