package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pantrychef/v1/internal/domain/recipe"
	"github.com/pantrychef/v1/internal/ports/outbound"
)

// RecipeRepository implements outbound.RecipeRepository in process
// memory. Aggregates are stored by reference; callers own their copies.
type RecipeRepository struct {
	mu      sync.RWMutex
	recipes map[uuid.UUID]*recipe.Recipe
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{
		recipes: make(map[uuid.UUID]*recipe.Recipe),
	}
}

var _ outbound.RecipeRepository = (*RecipeRepository)(nil)

// Save stores or replaces a recipe aggregate.
func (r *RecipeRepository) Save(ctx context.Context, rec *recipe.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recipes[rec.ID()] = rec
	return nil
}

// FindByID loads a recipe by its identifier.
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.recipes[id]
	if !ok {
		return nil, recipe.ErrRecipeNotFound
	}
	return rec, nil
}

// Delete removes a recipe; deleting an unknown id is not an error.
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.recipes, id)
	return nil
}

// FindPublished returns one page of published recipes ordered by
// creation time, newest first, plus the total published count.
func (r *RecipeRepository) FindPublished(ctx context.Context, offset, limit int) ([]*recipe.Recipe, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	published := make([]*recipe.Recipe, 0, len(r.recipes))
	for _, rec := range r.recipes {
		if rec.Status() == recipe.StatusPublished {
			published = append(published, rec)
		}
	}
	sort.Slice(published, func(i, j int) bool {
		if !published[i].CreatedAt().Equal(published[j].CreatedAt()) {
			return published[i].CreatedAt().After(published[j].CreatedAt())
		}
		return published[i].ID().String() < published[j].ID().String()
	})

	total := len(published)
	if offset >= total {
		return []*recipe.Recipe{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return published[offset:end], total, nil
}
