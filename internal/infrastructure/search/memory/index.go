// Package memory provides an in-process SearchIndex for tests and
// single-node development. It honors the same query contract as the
// remote backend but evaluates scoring functions client-side, trading
// index-side scripting for re-ranking a bounded candidate set.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/pantrychef/v1/internal/ports/outbound"
	"github.com/pantrychef/v1/internal/scoring"
	"github.com/pantrychef/v1/internal/search"
)

// Index is a thread-safe in-memory document store with fuzzy matching.
// It does not collapse natively; the orchestrator's client-side
// collapse covers that.
type Index struct {
	mu   sync.RWMutex
	docs map[string]search.RecipeDocument
}

// NewIndex creates an empty in-memory index
func NewIndex() *Index {
	return &Index{docs: make(map[string]search.RecipeDocument)}
}

var _ outbound.SearchIndex = (*Index)(nil)

// Index writes or overwrites a document.
func (ix *Index) Index(_ context.Context, doc search.RecipeDocument) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.docs[doc.ID] = doc
	return nil
}

// Remove deletes a document; unknown ids are a no-op.
func (ix *Index) Remove(_ context.Context, recipeID string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.docs, recipeID)
	return nil
}

// Search evaluates the compound query over all documents: boolean
// filters first, then the base relevance score, then the weighted
// scoring functions summed and multiplied onto the base.
func (ix *Index) Search(_ context.Context, query search.Query) (*search.Result, error) {
	functions := make([]scoring.Function, len(query.Functions))
	for i, clause := range query.Functions {
		fn, err := scoring.FromClause(clause)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", search.ErrInvalidQuery, err)
		}
		functions[i] = fn
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	hits := make([]search.Hit, 0, len(ix.docs))
	for _, doc := range ix.docs {
		if excludedByCategory(doc, query.MustNotCategories) {
			continue
		}
		if excludedByIngredient(doc, query.MustNotIngredients) {
			continue
		}

		base, matches := baseScore(doc, query)
		if !matches {
			continue
		}

		score := base
		if len(functions) > 0 {
			sum := 0.0
			for _, fn := range functions {
				sum += fn.Weight() * fn.Evaluate(&doc)
			}
			score = base * sum
		}

		hits = append(hits, search.Hit{Document: doc, Score: score})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Document.ID < hits[j].Document.ID
	})

	total := len(hits)
	if query.Size > 0 && len(hits) > query.Size {
		hits = hits[:query.Size]
	}

	return &search.Result{Total: total, Hits: hits}, nil
}

// baseScore computes the relevance part of the score and whether the
// document matches the query's must clauses at all.
func baseScore(doc search.RecipeDocument, query search.Query) (float64, bool) {
	preferenceHits := scoring.PreferenceBoost(&doc, query.PreferredCategories)

	if query.Text != nil {
		text := textScore(doc, *query.Text)
		if text == 0 {
			return 0, false
		}
		return text + float64(preferenceHits), true
	}

	if query.MinimumShouldMatch > 0 && preferenceHits < query.MinimumShouldMatch {
		return 0, false
	}
	if len(query.PreferredCategories) > 0 {
		return float64(preferenceHits), true
	}
	return 1, true
}

// textScore is a fuzzy multi-field match: each query token may match a
// field token exactly or within edit distance one, weighted by the
// per-field boost.
func textScore(doc search.RecipeDocument, clause search.TextClause) float64 {
	queryTokens := tokenize(clause.Query)
	if len(queryTokens) == 0 {
		return 0
	}

	ingredientNames := make([]string, len(doc.Ingredients))
	for i, ing := range doc.Ingredients {
		ingredientNames[i] = ing.Name
	}

	score := 0.0
	score += clause.NameBoost * matchCount(queryTokens, tokenize(doc.Name))
	score += clause.DescriptionBoost * matchCount(queryTokens, tokenize(doc.Description))
	score += clause.IngredientBoost * matchCount(queryTokens, tokenize(strings.Join(ingredientNames, " ")))
	return score
}

func matchCount(queryTokens, fieldTokens []string) float64 {
	matched := 0
	for _, q := range queryTokens {
		for _, f := range fieldTokens {
			if fuzzyEqual(q, f) {
				matched++
				break
			}
		}
	}
	return float64(matched)
}

func excludedByCategory(doc search.RecipeDocument, terms []string) bool {
	for _, term := range terms {
		for _, cat := range doc.Categories {
			if strings.EqualFold(cat, term) {
				return true
			}
		}
	}
	return false
}

func excludedByIngredient(doc search.RecipeDocument, terms []string) bool {
	for _, term := range terms {
		lowered := strings.ToLower(term)
		for _, ing := range doc.Ingredients {
			if strings.Contains(strings.ToLower(ing.Name), lowered) {
				return true
			}
		}
	}
	return false
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// fuzzyEqual reports whether two tokens match within edit distance one.
func fuzzyEqual(a, b string) bool {
	if a == b {
		return true
	}
	return editDistanceAtMostOne(a, b)
}

func editDistanceAtMostOne(a, b string) bool {
	la, lb := len(a), len(b)
	if la > lb {
		a, b, la, lb = b, a, lb, la
	}
	if lb-la > 1 {
		return false
	}

	if la == lb {
		diffs := 0
		for i := 0; i < la; i++ {
			if a[i] != b[i] {
				diffs++
				if diffs > 1 {
					return false
				}
			}
		}
		return true
	}

	// One insertion apart.
	i, j := 0, 0
	skipped := false
	for i < la && j < lb {
		if a[i] == b[j] {
			i++
			j++
			continue
		}
		if skipped {
			return false
		}
		skipped = true
		j++
	}
	return true
}
