// Package units provides normalization of kitchen measurements into
// canonical per-family values so that quantities from different sources
// can be compared.
package units

// UnitFamily is a comparability class. Quantities only compare
// meaningfully within the same family.
type UnitFamily string

const (
	FamilyMass    UnitFamily = "MASS"
	FamilyVolume  UnitFamily = "VOLUME"
	FamilyCount   UnitFamily = "COUNT"
	FamilyUnknown UnitFamily = "UNKNOWN"
)

// UnitCode identifies a unit of measurement as supplied by callers.
type UnitCode string

const (
	// Mass units, canonical unit is the gram
	UnitMilligram UnitCode = "mg"
	UnitGram      UnitCode = "g"
	UnitKilogram  UnitCode = "kg"
	UnitOunce     UnitCode = "oz"
	UnitPound     UnitCode = "lb"

	// Volume units, canonical unit is the milliliter
	UnitMilliliter UnitCode = "ml"
	UnitCentiliter UnitCode = "cl"
	UnitDeciliter  UnitCode = "dl"
	UnitLiter      UnitCode = "l"
	UnitTeaspoon   UnitCode = "tsp"
	UnitTablespoon UnitCode = "tbsp"
	UnitCup        UnitCode = "cup"
	UnitFluidOunce UnitCode = "floz"

	// Count units, counted as-is
	UnitPiece UnitCode = "piece"
	UnitUnit  UnitCode = "unit"
	UnitSlice UnitCode = "slice"
	UnitClove UnitCode = "clove"
	UnitBunch UnitCode = "bunch"
	UnitPinch UnitCode = "pinch"
	UnitDash  UnitCode = "dash"
)

// Quantity is a raw (value, unit) pair as supplied by callers.
type Quantity struct {
	Value float64  `json:"value"`
	Unit  UnitCode `json:"unit"`
}

// NormalizedQuantity is the canonical form of a Quantity: grams for MASS,
// milliliters for VOLUME, raw count for COUNT. Only Normalize produces
// these; nothing else should construct them.
type NormalizedQuantity struct {
	Value  float64    `json:"value"`
	Family UnitFamily `json:"family"`
}

// conversion maps a unit code to its family and the factor to the
// family's canonical unit.
type conversion struct {
	family UnitFamily
	factor float64
}

// conversionTable is the single source of truth for unit normalization.
// Both recipe projection and stock snapshot building must go through it
// so later comparisons are family-exact and value-for-value consistent.
var conversionTable = map[UnitCode]conversion{
	UnitMilligram: {FamilyMass, 0.001},
	UnitGram:      {FamilyMass, 1},
	UnitKilogram:  {FamilyMass, 1000},
	UnitOunce:     {FamilyMass, 28.3495},
	UnitPound:     {FamilyMass, 453.592},

	UnitMilliliter: {FamilyVolume, 1},
	UnitCentiliter: {FamilyVolume, 10},
	UnitDeciliter:  {FamilyVolume, 100},
	UnitLiter:      {FamilyVolume, 1000},
	UnitTeaspoon:   {FamilyVolume, 5},
	UnitTablespoon: {FamilyVolume, 15},
	UnitCup:        {FamilyVolume, 240},
	UnitFluidOunce: {FamilyVolume, 29.5735},

	UnitPiece: {FamilyCount, 1},
	UnitUnit:  {FamilyCount, 1},
	UnitSlice: {FamilyCount, 1},
	UnitClove: {FamilyCount, 1},
	UnitBunch: {FamilyCount, 1},
	UnitPinch: {FamilyCount, 1},
	UnitDash:  {FamilyCount, 1},
}

// Normalize converts a (value, unit) pair into its canonical form.
// It is total: an unrecognized unit yields the raw value under family
// UNKNOWN, which by policy never satisfies an availability comparison.
// The table is read-only, so Normalize is safe for concurrent use.
func Normalize(value float64, unit UnitCode) NormalizedQuantity {
	conv, ok := conversionTable[unit]
	if !ok {
		return NormalizedQuantity{Value: value, Family: FamilyUnknown}
	}
	return NormalizedQuantity{Value: value * conv.factor, Family: conv.family}
}

// NormalizeQuantity is a convenience wrapper over Normalize.
func NormalizeQuantity(q Quantity) NormalizedQuantity {
	return Normalize(q.Value, q.Unit)
}

// FamilyOf returns the family a unit belongs to without converting.
func FamilyOf(unit UnitCode) UnitFamily {
	conv, ok := conversionTable[unit]
	if !ok {
		return FamilyUnknown
	}
	return conv.family
}

// Comparable reports whether two families can be compared for
// sufficiency. UNKNOWN never compares to anything, itself included.
func Comparable(a, b UnitFamily) bool {
	if a == FamilyUnknown || b == FamilyUnknown {
		return false
	}
	return a == b
}
