// Package scoring implements the ranking core: the availability and
// urgency signals, the preference boost, and the configuration that
// fixes how they combine per query mode.
package scoring

// Config lifts every formula constant into one named struct so call
// sites never hard-code weights and tests can vary them
// deterministically.
type Config struct {
	// Function weights per mode. Discovery leans hard on urgency to
	// surface soon-to-expire stock; text search keeps relevance
	// dominant.
	DiscoverUrgencyWeight float64 `mapstructure:"discover_urgency_weight"`
	SearchUrgencyWeight   float64 `mapstructure:"search_urgency_weight"`
	AvailabilityWeight    float64 `mapstructure:"availability_weight"`

	// Per-field boosts of the fuzzy text clause.
	NameBoost        float64 `mapstructure:"name_boost"`
	DescriptionBoost float64 `mapstructure:"description_boost"`
	IngredientBoost  float64 `mapstructure:"ingredient_boost"`

	// CollapseField is the keyword field results are deduplicated on.
	CollapseField string `mapstructure:"collapse_field"`

	// MaxResults bounds the page size of a single query.
	MaxResults int `mapstructure:"max_results"`
}

// DefaultConfig returns the production scoring parameters.
func DefaultConfig() Config {
	return Config{
		DiscoverUrgencyWeight: 5,
		SearchUrgencyWeight:   1.2,
		AvailabilityWeight:    1.5,
		NameBoost:             3,
		DescriptionBoost:      1,
		IngredientBoost:       2,
		CollapseField:         "name.keyword",
		MaxResults:            50,
	}
}
