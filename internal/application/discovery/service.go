// Package discovery provides the application layer for pantry-aware
// recipe ranking: it shapes one compound query per call, executes it
// against the search backend and maps the hits back into ranked
// domain objects.
package discovery

import (
	"context"
	stderrors "errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/ports/inbound"
	"github.com/pantrychef/v1/internal/ports/outbound"
	"github.com/pantrychef/v1/internal/scoring"
	"github.com/pantrychef/v1/internal/search"
	"github.com/pantrychef/v1/pkg/errors"
)

// Service implements the discovery use cases. It is stateless per
// call: the only shared state is the read-only scoring configuration.
type Service struct {
	index  outbound.SearchIndex
	config scoring.Config
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new discovery service
func NewService(index outbound.SearchIndex, config scoring.Config, logger *zap.Logger) *Service {
	return &Service{
		index:  index,
		config: config,
		logger: logger.Named("discovery-service"),
		now:    time.Now,
	}
}

// WithClock overrides the time source, for deterministic urgency in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

var _ inbound.DiscoveryService = (*Service)(nil)

// Discover ranks recipes without a text query: the base score is the
// category-preference match, urgency and availability multiply onto it.
func (s *Service) Discover(ctx context.Context, q inbound.DiscoverQuery) (*inbound.RecipePage, error) {
	prefs := q.Preferences.Sanitized()
	snapshot := pantry.BuildSnapshot(q.Stock)

	query := s.buildBaseQuery(prefs, snapshot, s.config.DiscoverUrgencyWeight)
	if len(prefs.PreferredCategories) > 0 {
		query.MinimumShouldMatch = 1
	}

	s.logger.Debug("Executing discover query",
		zap.Int("stock_entries", len(q.Stock)),
		zap.Strings("preferred_categories", prefs.PreferredCategories),
	)

	return s.execute(ctx, query)
}

// Search ranks recipes by fuzzy text relevance combined with the same
// urgency and availability functions, excluding allergen matches.
func (s *Service) Search(ctx context.Context, q inbound.SearchQuery) (*inbound.RecipePage, error) {
	prefs := q.Preferences.Sanitized()
	snapshot := pantry.BuildSnapshot(q.Stock)

	query := s.buildBaseQuery(prefs, snapshot, s.config.SearchUrgencyWeight)
	query.Text = &search.TextClause{
		Query:            q.Text,
		NameBoost:        s.config.NameBoost,
		DescriptionBoost: s.config.DescriptionBoost,
		IngredientBoost:  s.config.IngredientBoost,
	}
	query.MustNotIngredients = prefs.Allergenes

	s.logger.Debug("Executing search query",
		zap.String("text", q.Text),
		zap.Int("stock_entries", len(q.Stock)),
		zap.Strings("allergenes", prefs.Allergenes),
	)

	return s.execute(ctx, query)
}

// buildBaseQuery assembles the parts both modes share: preference
// boosts, category exclusions, the two scoring functions and the
// collapse directive.
func (s *Service) buildBaseQuery(prefs pantry.UserPreferences, snapshot *pantry.StockSnapshot, urgencyWeight float64) search.Query {
	functions := []scoring.Function{
		scoring.NewUrgency(urgencyWeight, snapshot, s.now()),
		scoring.NewAvailability(s.config.AvailabilityWeight, snapshot),
	}

	excluded := make([]string, 0, len(prefs.ExcludedCategories)+len(prefs.DietaryRestrictions))
	excluded = append(excluded, prefs.ExcludedCategories...)
	excluded = append(excluded, prefs.DietaryRestrictions...)

	return search.Query{
		PreferredCategories: prefs.PreferredCategories,
		MustNotCategories:   excluded,
		Functions:           scoring.Clauses(functions),
		ScoreMode:           search.ScoreModeSum,
		BoostMode:           search.BoostModeMultiply,
		CollapseField:       s.config.CollapseField,
		Size:                s.config.MaxResults,
	}
}

// execute performs the single backend round trip and maps the result.
// No retry here: retry policy belongs to the caller.
func (s *Service) execute(ctx context.Context, query search.Query) (*inbound.RecipePage, error) {
	result, err := s.index.Search(ctx, query)
	if err != nil {
		switch {
		case stderrors.Is(err, search.ErrInvalidQuery):
			s.logger.Error("Search query rejected by backend", zap.Error(err))
			return nil, errors.NewQueryInvalidError(err)
		default:
			s.logger.Warn("Search backend unavailable", zap.Error(err))
			return nil, errors.NewSearchUnavailableError(err)
		}
	}

	scored := make([]search.ScoredRecipe, len(result.Hits))
	for i, hit := range result.Hits {
		scored[i] = search.ScoredRecipe{RecipeDocument: hit.Document, Score: hit.Score}
	}

	// Total stays the backend's pre-collapse match count even when the
	// collapse below shrinks the page; the discrepancy is observable
	// and intentional.
	return &inbound.RecipePage{
		Total:   result.Total,
		Results: collapseByName(scored),
	}, nil
}

// collapseByName keeps only the highest-scoring document per distinct
// recipe name, on exact name equality. Backends that collapse natively
// pass through unchanged.
func collapseByName(results []search.ScoredRecipe) []search.ScoredRecipe {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	seen := make(map[string]struct{}, len(results))
	collapsed := results[:0]
	for _, r := range results {
		if _, dup := seen[r.Name]; dup {
			continue
		}
		seen[r.Name] = struct{}{}
		collapsed = append(collapsed, r)
	}
	return collapsed
}
