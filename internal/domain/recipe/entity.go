// Package recipe contains the core domain logic for the recipe catalog.
// This follows Domain-Driven Design principles with rich domain models.
package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Recipe represents the recipe aggregate. The search index holds a
// denormalized projection of it; this entity stays the system of record.
type Recipe struct {
	id      uuid.UUID
	version int64 // Optimistic locking

	name        string
	description string
	categories  []string
	ingredients []Ingredient

	status    Status
	createdAt time.Time
	updatedAt time.Time

	// Domain events to be dispatched
	events []Event
}

// NewRecipe creates a new Recipe with validation.
func NewRecipe(name, description string, categories []string) (*Recipe, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	now := time.Now()
	r := &Recipe{
		id:          uuid.New(),
		version:     1,
		name:        name,
		description: description,
		categories:  categories,
		status:      StatusDraft,
		createdAt:   now,
		updatedAt:   now,
		events:      []Event{},
	}

	r.addEvent(SavedEvent{RecipeID: r.id, Name: name, OccurredAt: now})

	return r, nil
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID { return r.id }

// Version returns the recipe's version
func (r *Recipe) Version() int64 { return r.version }

// Name returns the recipe's name
func (r *Recipe) Name() string { return r.name }

// Description returns the recipe's description
func (r *Recipe) Description() string { return r.description }

// Categories returns the recipe's categories
func (r *Recipe) Categories() []string { return r.categories }

// Ingredients returns the recipe's ingredients
func (r *Recipe) Ingredients() []Ingredient { return r.ingredients }

// Status returns the recipe's lifecycle status
func (r *Recipe) Status() Status { return r.status }

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns when the recipe was last updated
func (r *Recipe) UpdatedAt() time.Time { return r.updatedAt }

// Rename updates the recipe name with validation.
func (r *Recipe) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	r.name = name
	r.touch()

	return nil
}

// UpdateDescription replaces the recipe description.
func (r *Recipe) UpdateDescription(description string) error {
	if err := validateDescription(description); err != nil {
		return err
	}

	r.description = description
	r.touch()

	return nil
}

// SetCategories replaces the recipe's categories.
func (r *Recipe) SetCategories(categories []string) {
	r.categories = categories
	r.touch()
}

// AddIngredient appends an ingredient to the recipe.
func (r *Recipe) AddIngredient(ingredient Ingredient) error {
	if err := ingredient.Validate(); err != nil {
		return err
	}

	r.ingredients = append(r.ingredients, ingredient)
	r.touch()

	return nil
}

// ReplaceIngredients swaps the full ingredient list.
func (r *Recipe) ReplaceIngredients(ingredients []Ingredient) error {
	for _, ing := range ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}

	r.ingredients = ingredients
	r.touch()

	return nil
}

// Publish makes the recipe visible to discovery and search.
func (r *Recipe) Publish() error {
	if r.status != StatusDraft {
		return ErrInvalidStatusTransition
	}
	if len(r.ingredients) == 0 {
		return ErrNoIngredients
	}

	r.status = StatusPublished
	r.touch()

	return nil
}

// Archive withdraws the recipe from discovery and search.
func (r *Recipe) Archive() error {
	if r.status != StatusPublished {
		return ErrInvalidStatusTransition
	}

	r.status = StatusArchived
	r.updatedAt = time.Now()
	r.addEvent(RemovedEvent{RecipeID: r.id, OccurredAt: r.updatedAt})

	return nil
}

// touch bumps updatedAt and queues a SavedEvent so the search index
// projection stays in sync with the aggregate.
func (r *Recipe) touch() {
	r.updatedAt = time.Now()
	r.addEvent(SavedEvent{RecipeID: r.id, Name: r.name, OccurredAt: r.updatedAt})
}

// addEvent adds a domain event to be dispatched
func (r *Recipe) addEvent(event Event) {
	r.events = append(r.events, event)
}

// Events returns and clears pending domain events
func (r *Recipe) Events() []Event {
	events := r.events
	r.events = []Event{}
	return events
}

// validateName validates a recipe name
func validateName(name string) error {
	if len(name) < 3 {
		return ErrNameTooShort
	}
	if len(name) > 200 {
		return ErrNameTooLong
	}
	return nil
}

// validateDescription validates a recipe description
func validateDescription(description string) error {
	if len(description) > 2000 {
		return ErrDescriptionTooLong
	}
	return nil
}
