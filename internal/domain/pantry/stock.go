// Package pantry models a household's current inventory and the
// request-scoped snapshot the scoring engine consumes.
package pantry

import (
	"time"

	"github.com/pantrychef/v1/internal/domain/units"
)

// StockEntry is one line of a household's inventory. DLC is the
// best-before date ("date limite de consommation") when known.
type StockEntry struct {
	ProductID string          `json:"productId"`
	Quantity  float64         `json:"quantity"`
	Unit      units.UnitCode  `json:"unit"`
	DLC       *time.Time      `json:"dlc,omitempty"`
}

// StockSnapshot is a per-request derivation of the inventory: available
// quantities per product and the soonest expiry date per product.
//
// Availability keeps per-family sub-totals. Two entries of the same
// product in the same family sum; entries in incompatible families stay
// separate and an availability check only ever consults the family the
// recipe ingredient requires. UNKNOWN-family stock is recorded but can
// never satisfy a requirement.
type StockSnapshot struct {
	availability map[string]map[units.UnitFamily]float64
	expiry       map[string]time.Time
}

// BuildSnapshot derives a StockSnapshot from raw inventory entries.
// Entries without a product id cannot be matched to any recipe
// ingredient and are skipped.
func BuildSnapshot(stock []StockEntry) *StockSnapshot {
	snap := &StockSnapshot{
		availability: make(map[string]map[units.UnitFamily]float64),
		expiry:       make(map[string]time.Time),
	}

	for _, entry := range stock {
		if entry.ProductID == "" {
			continue
		}

		normalized := units.Normalize(entry.Quantity, entry.Unit)
		families, ok := snap.availability[entry.ProductID]
		if !ok {
			families = make(map[units.UnitFamily]float64)
			snap.availability[entry.ProductID] = families
		}
		families[normalized.Family] += normalized.Value

		if entry.DLC != nil {
			current, seen := snap.expiry[entry.ProductID]
			if !seen || entry.DLC.Before(current) {
				snap.expiry[entry.ProductID] = *entry.DLC
			}
		}
	}

	return snap
}

// Available returns the normalized quantity on hand for a product in
// the given family. UNKNOWN requirements are never available.
func (s *StockSnapshot) Available(productID string, family units.UnitFamily) (float64, bool) {
	if family == units.FamilyUnknown {
		return 0, false
	}
	families, ok := s.availability[productID]
	if !ok {
		return 0, false
	}
	value, ok := families[family]
	return value, ok
}

// Quantities returns every per-family sub-total recorded for a product.
func (s *StockSnapshot) Quantities(productID string) map[units.UnitFamily]float64 {
	return s.availability[productID]
}

// Expiry returns the soonest best-before date recorded for a product.
func (s *StockSnapshot) Expiry(productID string) (time.Time, bool) {
	t, ok := s.expiry[productID]
	return t, ok
}

// HasExpiryData reports whether any entry carried a best-before date.
func (s *StockSnapshot) HasExpiryData() bool {
	return len(s.expiry) > 0
}

// ExpiryDates returns a copy of the per-product soonest expiry dates.
func (s *StockSnapshot) ExpiryDates() map[string]time.Time {
	out := make(map[string]time.Time, len(s.expiry))
	for id, t := range s.expiry {
		out[id] = t
	}
	return out
}

// Products returns the ids of every product present in the snapshot.
func (s *StockSnapshot) Products() []string {
	ids := make([]string, 0, len(s.availability))
	for id := range s.availability {
		ids = append(ids, id)
	}
	return ids
}
