package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		unit       UnitCode
		wantValue  float64
		wantFamily UnitFamily
	}{
		{"Gram_IsCanonical", 250, UnitGram, 250, FamilyMass},
		{"Kilogram_ToGrams", 1.5, UnitKilogram, 1500, FamilyMass},
		{"Milligram_ToGrams", 500, UnitMilligram, 0.5, FamilyMass},
		{"Pound_ToGrams", 2, UnitPound, 907.184, FamilyMass},
		{"Milliliter_IsCanonical", 330, UnitMilliliter, 330, FamilyVolume},
		{"Liter_ToMilliliters", 0.75, UnitLiter, 750, FamilyVolume},
		{"Tablespoon_ToMilliliters", 3, UnitTablespoon, 45, FamilyVolume},
		{"Cup_ToMilliliters", 2, UnitCup, 480, FamilyVolume},
		{"Piece_IsCount", 4, UnitPiece, 4, FamilyCount},
		{"Clove_IsCount", 2, UnitClove, 2, FamilyCount},
		{"UnknownUnit_PassesThrough", 7, UnitCode("handful"), 7, FamilyUnknown},
		{"EmptyUnit_PassesThrough", 3, UnitCode(""), 3, FamilyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.value, tt.unit)

			assert.InDelta(t, tt.wantValue, got.Value, 0.001)
			assert.Equal(t, tt.wantFamily, got.Family)
		})
	}
}

func TestNormalize_IdempotentOnCanonicalUnits(t *testing.T) {
	// Re-normalizing an already-canonical value in the same family must
	// not change it.
	canonical := map[UnitFamily]UnitCode{
		FamilyMass:   UnitGram,
		FamilyVolume: UnitMilliliter,
		FamilyCount:  UnitPiece,
	}

	for family, unit := range canonical {
		first := Normalize(42, unit)
		second := Normalize(first.Value, unit)

		assert.Equal(t, family, first.Family)
		assert.Equal(t, first, second)
	}
}

func TestNormalize_FamilyIsStablePerUnit(t *testing.T) {
	for unit := range conversionTable {
		a := Normalize(1, unit)
		b := Normalize(999, unit)

		assert.Equal(t, a.Family, b.Family, "family for %q must not depend on the value", unit)
		assert.NotEqual(t, FamilyUnknown, a.Family)
	}
}

func TestComparable(t *testing.T) {
	assert.True(t, Comparable(FamilyMass, FamilyMass))
	assert.False(t, Comparable(FamilyMass, FamilyVolume))
	assert.False(t, Comparable(FamilyUnknown, FamilyUnknown), "UNKNOWN never compares, itself included")
	assert.False(t, Comparable(FamilyUnknown, FamilyCount))
}

func TestFamilyOf(t *testing.T) {
	assert.Equal(t, FamilyMass, FamilyOf(UnitKilogram))
	assert.Equal(t, FamilyVolume, FamilyOf(UnitTeaspoon))
	assert.Equal(t, FamilyCount, FamilyOf(UnitBunch))
	assert.Equal(t, FamilyUnknown, FamilyOf(UnitCode("smidgen")))
}
