package indexing

import (
	"context"

	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/domain/recipe"
	"github.com/pantrychef/v1/internal/ports/outbound"
)

// Indexer reacts to recipe lifecycle changes by rewriting or removing
// the recipe's search document. A failed write leaves the index stale
// until the next lifecycle event; scoring calls tolerate that window.
type Indexer struct {
	index  outbound.SearchIndex
	logger *zap.Logger
}

// NewIndexer creates a new indexer
func NewIndexer(index outbound.SearchIndex, logger *zap.Logger) *Indexer {
	return &Indexer{
		index:  index,
		logger: logger.Named("indexer"),
	}
}

// RecipeSaved projects and writes the document for a created or
// updated recipe.
func (ix *Indexer) RecipeSaved(ctx context.Context, r *recipe.Recipe) error {
	doc := Project(r)
	if err := ix.index.Index(ctx, doc); err != nil {
		ix.logger.Error("Failed to index recipe document",
			zap.String("recipe_id", doc.ID),
			zap.Error(err),
		)
		return err
	}

	ix.logger.Debug("Recipe document indexed",
		zap.String("recipe_id", doc.ID),
		zap.Int("ingredients", doc.IngredientsCount),
	)
	return nil
}

// RecipeRemoved deletes the document for a deleted or archived recipe.
func (ix *Indexer) RecipeRemoved(ctx context.Context, recipeID string) error {
	if err := ix.index.Remove(ctx, recipeID); err != nil {
		ix.logger.Error("Failed to remove recipe document",
			zap.String("recipe_id", recipeID),
			zap.Error(err),
		)
		return err
	}

	ix.logger.Debug("Recipe document removed", zap.String("recipe_id", recipeID))
	return nil
}
