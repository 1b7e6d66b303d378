package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/domain/units"
	"github.com/pantrychef/v1/internal/search"
)

// Function is one scoring signal: a named, weighted, per-document
// computation. Adapters either compile its Clause into the backend's
// scripting mechanism or evaluate it client-side; both paths must
// produce the same value for the same document.
type Function interface {
	Name() string
	Weight() float64
	Evaluate(doc *search.RecipeDocument) float64
	Clause() search.FunctionClause
}

// availabilityFunction scores the fraction of a recipe's ingredients
// satisfiable from current stock.
type availabilityFunction struct {
	weight float64
	stock  map[string]search.FamilyTotals
}

// NewAvailability builds the availability signal from a stock snapshot.
func NewAvailability(weight float64, snapshot *pantry.StockSnapshot) Function {
	stock := make(map[string]search.FamilyTotals)
	for _, productID := range snapshot.Products() {
		totals := make(search.FamilyTotals)
		for family, value := range snapshot.Quantities(productID) {
			totals[string(family)] = value
		}
		stock[productID] = totals
	}
	return &availabilityFunction{weight: weight, stock: stock}
}

func (f *availabilityFunction) Name() string    { return search.FunctionAvailability }
func (f *availabilityFunction) Weight() float64 { return f.weight }

// Evaluate returns available/total in [0, 1]. The denominator is the
// total ingredient count, unlinked ingredients included: recipes with
// many unlinked ingredients are structurally penalized because their
// availability is genuinely unknown.
func (f *availabilityFunction) Evaluate(doc *search.RecipeDocument) float64 {
	if doc.IngredientsCount == 0 {
		return 1.0 // vacuously fully makeable
	}

	available := 0
	for _, ing := range doc.Ingredients {
		if ing.ProductID == "" {
			continue // never counts as available
		}
		if ing.BaseUnitFamily == units.FamilyUnknown {
			continue
		}
		totals, ok := f.stock[ing.ProductID]
		if !ok {
			continue
		}
		onHand, ok := totals[string(ing.BaseUnitFamily)]
		if ok && onHand >= ing.NormalizedQuantity {
			available++
		}
	}

	return float64(available) / float64(doc.IngredientsCount)
}

func (f *availabilityFunction) Clause() search.FunctionClause {
	return search.FunctionClause{
		Name:   search.FunctionAvailability,
		Weight: f.weight,
		Stock:  f.stock,
	}
}

// urgencyFunction rewards recipes that consume soon-to-expire stock and
// penalizes ones whose matched stock has already expired.
type urgencyFunction struct {
	weight   float64
	daysLeft map[string]int
}

// NewUrgency builds the urgency signal from the snapshot's expiry dates
// relative to now. Days are counted with a ceiling, so an item expiring
// within the next 24 hours still counts as one day left.
func NewUrgency(weight float64, snapshot *pantry.StockSnapshot, now time.Time) Function {
	daysLeft := make(map[string]int)
	for productID, dlc := range snapshot.ExpiryDates() {
		daysLeft[productID] = int(math.Ceil(dlc.Sub(now).Hours() / 24))
	}
	return &urgencyFunction{weight: weight, daysLeft: daysLeft}
}

func (f *urgencyFunction) Name() string    { return search.FunctionUrgency }
func (f *urgencyFunction) Weight() float64 { return f.weight }

// Evaluate averages per-ingredient terms over the matched ingredients:
// 1/(1+daysLeft) when still fresh (closer expiry, higher reward),
// exactly -1 when already expired. No expiry data at all is neutral, 0.
func (f *urgencyFunction) Evaluate(doc *search.RecipeDocument) float64 {
	if len(f.daysLeft) == 0 {
		return 0
	}

	matched := 0
	sum := 0.0
	for _, ing := range doc.Ingredients {
		if ing.ProductID == "" {
			continue
		}
		days, ok := f.daysLeft[ing.ProductID]
		if !ok {
			continue
		}
		if days > 0 {
			sum += 1 / (1 + float64(days))
		} else {
			sum -= 1
		}
		matched++
	}

	if matched == 0 {
		return 0
	}
	return sum / float64(matched)
}

func (f *urgencyFunction) Clause() search.FunctionClause {
	return search.FunctionClause{
		Name:            search.FunctionUrgency,
		Weight:          f.weight,
		DaysUntilExpiry: f.daysLeft,
	}
}

// FromClause reconstructs a Function from its declarative clause. The
// in-memory backend and adapter tests use this to replay index-side
// scoring client-side.
func FromClause(clause search.FunctionClause) (Function, error) {
	switch clause.Name {
	case search.FunctionAvailability:
		stock := clause.Stock
		if stock == nil {
			stock = map[string]search.FamilyTotals{}
		}
		return &availabilityFunction{weight: clause.Weight, stock: stock}, nil
	case search.FunctionUrgency:
		daysLeft := clause.DaysUntilExpiry
		if daysLeft == nil {
			daysLeft = map[string]int{}
		}
		return &urgencyFunction{weight: clause.Weight, daysLeft: daysLeft}, nil
	default:
		return nil, fmt.Errorf("unknown scoring function %q", clause.Name)
	}
}

// Clauses converts a list of functions into their declarative form for
// embedding in a query.
func Clauses(functions []Function) []search.FunctionClause {
	clauses := make([]search.FunctionClause, len(functions))
	for i, fn := range functions {
		clauses[i] = fn.Clause()
	}
	return clauses
}

// PreferenceBoost counts how many preferred categories a document
// carries. It feeds the base relevance score, not the weighted
// functions: unmatched preferences contribute nothing, never a penalty.
func PreferenceBoost(doc *search.RecipeDocument, preferred []string) int {
	if len(preferred) == 0 {
		return 0
	}
	boost := 0
	for _, want := range preferred {
		for _, have := range doc.Categories {
			if have == want {
				boost++
				break
			}
		}
	}
	return boost
}
