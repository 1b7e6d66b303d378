// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pantrychef/v1/internal/domain/recipe"
	"github.com/pantrychef/v1/internal/search"
)

// SearchIndex is the document-search backend contract: a document store
// with a fixed schema, boolean/fuzzy queries, nested-field filters and
// per-document scoring functions combinable with the base query score.
// The backend is treated as an opaque request/response service; writes
// are asynchronous relative to queries (eventual consistency accepted).
type SearchIndex interface {
	// Index writes or overwrites the document for a recipe.
	Index(ctx context.Context, doc search.RecipeDocument) error

	// Remove deletes the document for a recipe; removing an unknown
	// id is not an error.
	Remove(ctx context.Context, recipeID string) error

	// Search executes a single compound query. Failures map onto
	// search.ErrBackendUnavailable or search.ErrInvalidQuery.
	Search(ctx context.Context, query search.Query) (*search.Result, error)
}

// RecipeRepository defines the interface for recipe persistence.
// Persistence itself is an external collaborator; the engine only
// depends on this surface.
type RecipeRepository interface {
	Save(ctx context.Context, recipe *recipe.Recipe) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindPublished(ctx context.Context, offset, limit int) ([]*recipe.Recipe, int, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Counter operations, used by rate limiting
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
