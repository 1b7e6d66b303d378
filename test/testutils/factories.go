// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/domain/recipe"
	"github.com/pantrychef/v1/internal/domain/units"
	"github.com/pantrychef/v1/internal/search"
)

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	name        string
	description string
	categories  []string
	ingredients []recipe.Ingredient
	published   bool
}

// NewRecipeBuilder creates a new recipe builder with faked defaults
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &RecipeBuilder{
		name:        faker.Dinner(),
		description: faker.Paragraph(1, 3, 8, " "),
		categories:  []string{"dinner"},
	}
}

// WithName sets the recipe name
func (rb *RecipeBuilder) WithName(name string) *RecipeBuilder {
	rb.name = name
	return rb
}

// WithDescription sets the recipe description
func (rb *RecipeBuilder) WithDescription(description string) *RecipeBuilder {
	rb.description = description
	return rb
}

// WithCategories sets the recipe categories
func (rb *RecipeBuilder) WithCategories(categories ...string) *RecipeBuilder {
	rb.categories = categories
	return rb
}

// WithIngredient appends one ingredient line
func (rb *RecipeBuilder) WithIngredient(name string, quantity float64, unit units.UnitCode, productIDs ...string) *RecipeBuilder {
	rb.ingredients = append(rb.ingredients, recipe.Ingredient{
		ID:               uuid.New(),
		Name:             name,
		Quantity:         quantity,
		Unit:             unit,
		LinkedProductIDs: productIDs,
	})
	return rb
}

// Published marks the recipe for publication
func (rb *RecipeBuilder) Published() *RecipeBuilder {
	rb.published = true
	return rb
}

// Build creates the recipe aggregate, panicking on invalid test data.
func (rb *RecipeBuilder) Build() *recipe.Recipe {
	r, err := recipe.NewRecipe(rb.name, rb.description, rb.categories)
	if err != nil {
		panic(err)
	}
	for _, ing := range rb.ingredients {
		if err := r.AddIngredient(ing); err != nil {
			panic(err)
		}
	}
	if rb.published {
		if err := r.Publish(); err != nil {
			panic(err)
		}
	}
	r.Events() // drain construction events
	return r
}

// StockEntry builds one inventory line with an optional expiry.
func StockEntry(productID string, quantity float64, unit units.UnitCode, dlc *time.Time) pantry.StockEntry {
	return pantry.StockEntry{
		ProductID: productID,
		Quantity:  quantity,
		Unit:      unit,
		DLC:       dlc,
	}
}

// ExpiringOn is a helper for pointer expiry dates.
func ExpiringOn(t time.Time) *time.Time {
	return &t
}

// DocumentBuilder builds search documents directly, for index-level
// tests that skip the domain layer.
type DocumentBuilder struct {
	doc search.RecipeDocument
}

// NewDocumentBuilder creates a document with faked defaults
func NewDocumentBuilder() *DocumentBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &DocumentBuilder{
		doc: search.RecipeDocument{
			ID:   uuid.NewString(),
			Name: faker.Dinner(),
		},
	}
}

// WithID sets the document id
func (db *DocumentBuilder) WithID(id string) *DocumentBuilder {
	db.doc.ID = id
	return db
}

// WithName sets the document name
func (db *DocumentBuilder) WithName(name string) *DocumentBuilder {
	db.doc.Name = name
	return db
}

// WithDescription sets the document description
func (db *DocumentBuilder) WithDescription(description string) *DocumentBuilder {
	db.doc.Description = description
	return db
}

// WithCategories sets the document categories
func (db *DocumentBuilder) WithCategories(categories ...string) *DocumentBuilder {
	db.doc.Categories = categories
	return db
}

// WithIngredient appends one ingredient document. The count follows
// the ingredient list.
func (db *DocumentBuilder) WithIngredient(name, productID string, normalized float64, family units.UnitFamily) *DocumentBuilder {
	db.doc.Ingredients = append(db.doc.Ingredients, search.IngredientDocument{
		ID:                 uuid.NewString(),
		Name:               name,
		ProductID:          productID,
		NormalizedQuantity: normalized,
		BaseUnitFamily:     family,
	})
	db.doc.IngredientsCount = len(db.doc.Ingredients)
	return db
}

// WithUnlinkedIngredient appends an ingredient with no product link.
func (db *DocumentBuilder) WithUnlinkedIngredient(name string) *DocumentBuilder {
	return db.WithIngredient(name, "", 0, units.FamilyUnknown)
}

// Build returns the document
func (db *DocumentBuilder) Build() search.RecipeDocument {
	return db.doc
}
