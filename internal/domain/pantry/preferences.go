package pantry

// UserPreferences carries the dietary inputs of a discovery or search
// call. It is immutable per request and has no persisted lifecycle
// here. Nil or missing slices mean "no preference", never a failure.
type UserPreferences struct {
	Allergenes          []string `json:"allergenes"`
	PreferredCategories []string `json:"preferredCategories"`
	ExcludedCategories  []string `json:"excludedCategories"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
}

// Sanitized returns a copy with nil slices replaced by empty ones and
// blank terms dropped, so downstream query construction never has to
// null-check.
func (p UserPreferences) Sanitized() UserPreferences {
	return UserPreferences{
		Allergenes:          compact(p.Allergenes),
		PreferredCategories: compact(p.PreferredCategories),
		ExcludedCategories:  compact(p.ExcludedCategories),
		DietaryRestrictions: compact(p.DietaryRestrictions),
	}
}

func compact(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
