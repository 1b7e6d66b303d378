package search

// Score combination modes supported by the backend contract.
const (
	ScoreModeSum      = "sum"
	BoostModeMultiply = "multiply"
)

// Scoring function identifiers shared by the scoring engine, the
// backend adapters and tests.
const (
	FunctionAvailability = "stock_availability"
	FunctionUrgency      = "expiry_urgency"
)

// TextClause is a fuzzy multi-field relevance clause. Boosts weigh the
// per-field contributions of the match.
type TextClause struct {
	Query            string
	NameBoost        float64
	DescriptionBoost float64
	IngredientBoost  float64
}

// FamilyTotals holds normalized on-hand quantities per unit family for
// one product, shipped to the backend as scoring-function parameters.
type FamilyTotals map[string]float64

// FunctionClause is the declarative form of a scoring function: enough
// for a backend adapter to compile it into a per-document script, or
// for a client-side evaluator to replay it.
type FunctionClause struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`

	// Stock holds per-product, per-family availability, keyed by
	// product id. Set for the availability function.
	Stock map[string]FamilyTotals `json:"stock,omitempty"`

	// DaysUntilExpiry holds per-product days left before the soonest
	// best-before date; negative or zero means already expired.
	// Set for the urgency function.
	DaysUntilExpiry map[string]int `json:"daysUntilExpiry,omitempty"`
}

// Query is the single compound query both discovery and search compile
// to: one base relevance clause, optional exclusions, a list of scoring
// functions (summed together, then multiplied onto the base score) and
// a name-based collapse directive.
type Query struct {
	// Text is the free-text clause; nil in discover mode.
	Text *TextClause

	// PreferredCategories become should-clauses boosting the base
	// score. MinimumShouldMatch applies only when the list is
	// non-empty and there is no text clause.
	PreferredCategories []string
	MinimumShouldMatch  int

	// MustNotIngredients excludes documents whose ingredient names
	// match any of these terms (allergen exclusion, search mode).
	MustNotIngredients []string

	// MustNotCategories excludes documents carrying any of these
	// categories (excluded categories and dietary restrictions).
	MustNotCategories []string

	Functions []FunctionClause
	ScoreMode string // combination across functions
	BoostMode string // combination onto the base score

	// CollapseField requests per-name dedupe in the backend; the
	// orchestrator still collapses client-side when an adapter
	// cannot honor it.
	CollapseField string

	Size int
}

// Hit is a single scored document returned by the backend.
type Hit struct {
	Document RecipeDocument
	Score    float64
}

// Result is the backend's answer: the reported total match count and
// the scored page. Total counts matches before any collapse.
type Result struct {
	Total int
	Hits  []Hit
}
