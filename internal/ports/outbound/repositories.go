// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/weemeal/server/internal/domain/recipe"
)

// RecipeRepository defines the interface for recipe persistence
// This follows the Repository pattern for data access abstraction
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	Update(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	FindAll(ctx context.Context, criteria ListCriteria) ([]*recipe.Recipe, int, error)
}

// ListCriteria defines listing and search parameters for recipes
type ListCriteria struct {
	Search string
	Tag    string
	UserID string
	Offset int
	Limit  int
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Translator translates a dish name for image search queries.
// Implementations return the input unchanged when translation is
// unavailable.
type Translator interface {
	TranslateDishName(ctx context.Context, name string) (string, error)
	Enabled() bool
}

// Photo is a search hit from a photo provider
type Photo struct {
	URL         string
	Attribution string
}

// PhotoSearcher finds a stock photo for a search query.
// A nil photo with nil error means no usable result.
type PhotoSearcher interface {
	SearchPhoto(ctx context.Context, query string) (*Photo, error)
	Enabled() bool
}

// TagSuggester proposes tags for a recipe
type TagSuggester interface {
	SuggestTags(ctx context.Context, recipeName string, ingredientNames []string) ([]string, error)
	Enabled() bool
}
