package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrNameTooShort       = errors.New("recipe name must be at least 3 characters")
	ErrNameTooLong        = errors.New("recipe name must not exceed 200 characters")
	ErrDescriptionTooLong = errors.New("recipe description must not exceed 2000 characters")
	ErrNoIngredients      = errors.New("recipe must have at least one ingredient")

	// State transition errors
	ErrInvalidStatusTransition = errors.New("invalid recipe status transition")
	ErrRecipeNotFound          = errors.New("recipe not found")
)
