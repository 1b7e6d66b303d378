// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/search"
)

// DiscoveryService ranks recipes against the caller's pantry. Discover
// browses without a text query; Search adds free-text relevance. Both
// are synchronous, stateless and independent per call.
type DiscoveryService interface {
	Discover(ctx context.Context, q DiscoverQuery) (*RecipePage, error)
	Search(ctx context.Context, q SearchQuery) (*RecipePage, error)
}

// DiscoverQuery is a browse request: preferences and current stock.
type DiscoverQuery struct {
	Preferences pantry.UserPreferences
	Stock       []pantry.StockEntry
}

// SearchQuery adds a free-text query to the discovery inputs.
type SearchQuery struct {
	Text        string
	Preferences pantry.UserPreferences
	Stock       []pantry.StockEntry
}

// RecipePage is a ranked result page. Total is the backend-reported
// match count and may exceed len(Results) after name collapse; that
// discrepancy is intentional and observable.
type RecipePage struct {
	Total   int                   `json:"total"`
	Results []search.ScoredRecipe `json:"results"`
}
