package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Event is a domain event raised by the recipe aggregate. The indexing
// collaborator consumes these to keep the search projection current;
// delivery is asynchronous relative to scoring calls.
type Event interface {
	EventName() string
}

// SavedEvent signals that the recipe was created or changed and its
// search document should be (re)written.
type SavedEvent struct {
	RecipeID   uuid.UUID
	Name       string
	OccurredAt time.Time
}

// EventName returns the event identifier
func (e SavedEvent) EventName() string { return "recipe.saved" }

// RemovedEvent signals that the recipe left the published set and its
// search document should be deleted.
type RemovedEvent struct {
	RecipeID   uuid.UUID
	OccurredAt time.Time
}

// EventName returns the event identifier
func (e RemovedEvent) EventName() string { return "recipe.removed" }
