// Package recipe provides the application layer for recipe management
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/application/indexing"
	"github.com/pantrychef/v1/internal/domain/recipe"
	"github.com/pantrychef/v1/internal/ports/inbound"
	"github.com/pantrychef/v1/internal/ports/outbound"
	"github.com/pantrychef/v1/pkg/errors"
)

// RecipeService implements the recipe use cases. Every lifecycle
// change is mirrored into the search index through the indexer; an
// index failure is logged but does not roll back the save, the
// projection is eventually consistent.
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	indexer    *indexing.Indexer
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	indexer *indexing.Indexer,
	logger *zap.Logger,
) inbound.RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		indexer:    indexer,
		logger:     logger.Named("recipe-service"),
	}
}

// CreateRecipe creates a new recipe in draft status.
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Creating new recipe", zap.String("name", cmd.Name))

	entity, err := recipe.NewRecipe(cmd.Name, cmd.Description, cmd.Categories)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create recipe entity")
	}

	for _, ingredientCmd := range cmd.Ingredients {
		if err := entity.AddIngredient(toIngredient(ingredientCmd)); err != nil {
			return nil, errors.Wrap(err, "failed to add ingredient")
		}
	}

	if err := s.recipeRepo.Save(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("save recipe", err)
	}
	s.dispatchEvents(ctx, entity)

	return toDTO(entity), nil
}

// UpdateRecipe applies the non-nil fields of the command.
func (s *RecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := s.findRecipe(ctx, cmd.RecipeID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if err := entity.Rename(*cmd.Name); err != nil {
			return nil, errors.Wrap(err, "failed to rename recipe")
		}
	}
	if cmd.Description != nil {
		if err := entity.UpdateDescription(*cmd.Description); err != nil {
			return nil, errors.Wrap(err, "failed to update description")
		}
	}
	if cmd.Categories != nil {
		entity.SetCategories(*cmd.Categories)
	}
	if cmd.Ingredients != nil {
		ingredients := make([]recipe.Ingredient, 0, len(*cmd.Ingredients))
		for _, ingredientCmd := range *cmd.Ingredients {
			ingredients = append(ingredients, toIngredient(ingredientCmd))
		}
		if err := entity.ReplaceIngredients(ingredients); err != nil {
			return nil, errors.Wrap(err, "failed to replace ingredients")
		}
	}

	if err := s.recipeRepo.Save(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("save recipe", err)
	}
	s.dispatchEvents(ctx, entity)

	return toDTO(entity), nil
}

// PublishRecipe moves a draft into the published state, which makes it
// visible to discovery.
func (s *RecipeService) PublishRecipe(ctx context.Context, recipeID uuid.UUID) error {
	entity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	if err := entity.Publish(); err != nil {
		return errors.Wrap(err, "failed to publish recipe")
	}

	if err := s.recipeRepo.Save(ctx, entity); err != nil {
		return errors.NewDatabaseError("save recipe", err)
	}
	s.dispatchEvents(ctx, entity)

	s.logger.Info("Recipe published", zap.String("recipe_id", recipeID.String()))
	return nil
}

// DeleteRecipe removes the recipe and its search document.
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error {
	if _, err := s.findRecipe(ctx, recipeID); err != nil {
		return err
	}

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return errors.NewDatabaseError("delete recipe", err)
	}
	if err := s.indexer.RecipeRemoved(ctx, recipeID.String()); err != nil {
		s.logger.Warn("Search document removal failed, index is stale",
			zap.String("recipe_id", recipeID.String()),
			zap.Error(err),
		)
	}
	return nil
}

// GetRecipeByID loads a single recipe.
func (s *RecipeService) GetRecipeByID(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	entity, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return toDTO(entity), nil
}

func (s *RecipeService) findRecipe(ctx context.Context, recipeID uuid.UUID) (*recipe.Recipe, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if stderrors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, errors.NewRecipeNotFoundError(recipeID.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	return entity, nil
}

// dispatchEvents mirrors the pending domain events into the search
// index. Only published recipes carry a document.
func (s *RecipeService) dispatchEvents(ctx context.Context, entity *recipe.Recipe) {
	for _, event := range entity.Events() {
		var err error
		switch event.(type) {
		case recipe.SavedEvent:
			if entity.Status() == recipe.StatusPublished {
				err = s.indexer.RecipeSaved(ctx, entity)
			}
		case recipe.RemovedEvent:
			err = s.indexer.RecipeRemoved(ctx, entity.ID().String())
		}
		if err != nil {
			s.logger.Warn("Search projection update failed, index is stale",
				zap.String("recipe_id", entity.ID().String()),
				zap.String("event", event.EventName()),
				zap.Error(err),
			)
		}
	}
}

func toIngredient(cmd inbound.IngredientCommand) recipe.Ingredient {
	return recipe.Ingredient{
		ID:               uuid.New(),
		Name:             cmd.Name,
		Quantity:         cmd.Quantity,
		Unit:             cmd.Unit,
		LinkedProductIDs: cmd.LinkedProductIDs,
		Optional:         cmd.Optional,
		Notes:            cmd.Notes,
	}
}

func toDTO(entity *recipe.Recipe) *inbound.RecipeDTO {
	ingredients := make([]inbound.IngredientDTO, len(entity.Ingredients()))
	for i, ing := range entity.Ingredients() {
		ingredients[i] = inbound.IngredientDTO{
			ID:              ing.ID,
			Name:            ing.Name,
			Quantity:        ing.Quantity,
			Unit:            ing.Unit,
			LinkedProductID: ing.LinkedProductID(),
		}
	}
	return &inbound.RecipeDTO{
		ID:          entity.ID(),
		Name:        entity.Name(),
		Description: entity.Description(),
		Categories:  entity.Categories(),
		Ingredients: ingredients,
		Status:      string(entity.Status()),
	}
}
