package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Domain Events - Events that occur within the recipe domain

// RecipeCreatedEvent is raised when a new recipe is created
type RecipeCreatedEvent struct {
	RecipeID  uuid.UUID
	Name      string
	CreatedAt time.Time
}

func (e RecipeCreatedEvent) EventName() string {
	return "recipe.created"
}

func (e RecipeCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// RecipeUpdatedEvent is raised when any field of a recipe changes
type RecipeUpdatedEvent struct {
	RecipeID  uuid.UUID
	Field     string
	UpdatedAt time.Time
}

func (e RecipeUpdatedEvent) EventName() string {
	return "recipe.updated"
}

func (e RecipeUpdatedEvent) OccurredAt() time.Time {
	return e.UpdatedAt
}

// RecipeDeletedEvent is raised when a recipe is removed
type RecipeDeletedEvent struct {
	RecipeID  uuid.UUID
	DeletedAt time.Time
}

func (e RecipeDeletedEvent) EventName() string {
	return "recipe.deleted"
}

func (e RecipeDeletedEvent) OccurredAt() time.Time {
	return e.DeletedAt
}
