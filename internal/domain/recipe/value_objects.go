package recipe

import (
	"errors"

	"github.com/google/uuid"
	"github.com/pantrychef/v1/internal/domain/units"
)

// Value Objects - Immutable objects that describe aspects of the domain

// Ingredient represents a required ingredient of a recipe. It may
// reference zero or more catalog products; only the first link is ever
// used for stock matching, a documented limitation of the catalog
// mapping rather than something to reconcile here.
type Ingredient struct {
	ID               uuid.UUID
	Name             string
	Quantity         float64
	Unit             units.UnitCode
	LinkedProductIDs []string
	Optional         bool
	Notes            string
}

// Validate validates the ingredient
func (i Ingredient) Validate() error {
	if i.Name == "" {
		return errors.New("ingredient name is required")
	}
	if i.Quantity < 0 {
		return errors.New("ingredient quantity cannot be negative")
	}
	return nil
}

// LinkedProductID returns the first linked catalog product, or empty
// when the ingredient is unlinked.
func (i Ingredient) LinkedProductID() string {
	if len(i.LinkedProductIDs) == 0 {
		return ""
	}
	return i.LinkedProductIDs[0]
}

// NormalizedQuantity returns the ingredient requirement in canonical
// form, using the same conversion table as stock snapshots.
func (i Ingredient) NormalizedQuantity() units.NormalizedQuantity {
	return units.Normalize(i.Quantity, i.Unit)
}

// Status represents the lifecycle status of a recipe
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)
