// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/weemeal/server/internal/domain/recipe"
)

// RecipeService defines the use cases for recipe management
// This is the primary port that HTTP handlers and other driving adapters will use
type RecipeService interface {
	// Commands - operations that modify state
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error
	UpdateNotes(ctx context.Context, recipeID uuid.UUID, notes string) (*RecipeDTO, error)
	UpdateSource(ctx context.Context, recipeID uuid.UUID, source *SourceDTO) (*RecipeDTO, error)
	SetImage(ctx context.Context, recipeID uuid.UUID, imageURL string) (*RecipeDTO, error)
	RemoveImage(ctx context.Context, recipeID uuid.UUID) (*RecipeDTO, error)
	ApplyTags(ctx context.Context, recipeID uuid.UUID, tags []string) (*RecipeDTO, error)

	// Queries - operations that read state
	GetRecipeByID(ctx context.Context, recipeID uuid.UUID) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, query ListQuery) (*RecipeList, error)
	ScaledIngredients(ctx context.Context, recipeID uuid.UUID, portions int) (*ScaledIngredientsDTO, error)

	// Bring! export
	Deeplink(ctx context.Context, recipeID uuid.UUID, portions int) (*DeeplinkDTO, error)
	ExportDocument(ctx context.Context, recipeID uuid.UUID) (string, error)
}

// ImageService resolves an image for a recipe name, falling back from
// photo search to a generated placeholder.
type ImageService interface {
	Resolve(ctx context.Context, recipeName string) ImageResult
}

// TagService suggests tags for a recipe.
type TagService interface {
	Suggest(ctx context.Context, recipeName string, ingredientNames []string) []string
}

// Command objects for operations

// CreateRecipeCommand contains data for creating a new recipe
type CreateRecipeCommand struct {
	Name         string
	RecipeYield  int
	Instructions string
	Content      []recipe.ContentItem
	Tags         []string
	Notes        string
	Source       *SourceDTO
	UserID       string
	ResolveImage bool
}

// UpdateRecipeCommand contains data for updating a recipe.
// Nil fields are left unchanged; at least one must be set.
type UpdateRecipeCommand struct {
	RecipeID     uuid.UUID
	Name         *string
	RecipeYield  *int
	Instructions *string
	Content      *[]recipe.ContentItem
	Tags         *[]string
}

// IsEmpty reports whether the command changes nothing.
func (c UpdateRecipeCommand) IsEmpty() bool {
	return c.Name == nil && c.RecipeYield == nil && c.Instructions == nil &&
		c.Content == nil && c.Tags == nil
}

// Query objects

// ListQuery defines listing and search parameters
type ListQuery struct {
	Search   string
	Tag      string
	UserID   string
	Page     int
	PageSize int
}

// Response DTOs

// RecipeDTO is the data transfer object for recipes
type RecipeDTO struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	RecipeYield  int                  `json:"recipeYield"`
	Instructions string               `json:"instructions"`
	Content      []recipe.ContentItem `json:"content"`
	ImageURL     string               `json:"imageUrl,omitempty"`
	ImageSource  string               `json:"imageSource,omitempty"`
	Tags         []string             `json:"tags"`
	Notes        string               `json:"notes,omitempty"`
	Source       *SourceDTO           `json:"source,omitempty"`
	UserID       string               `json:"userId,omitempty"`
	CreatedAt    string               `json:"createdAt"`
	UpdatedAt    string               `json:"updatedAt"`
}

// SourceDTO carries a recipe's origin over the API boundary
type SourceDTO struct {
	Type      string `json:"type"`
	BookTitle string `json:"bookTitle,omitempty"`
	BookPage  string `json:"bookPage,omitempty"`
	URL       string `json:"url,omitempty"`
}

// ScaledIngredientsDTO is the content list scaled to a portion count
type ScaledIngredientsDTO struct {
	RecipeID          uuid.UUID            `json:"recipeId"`
	BaseYield         int                  `json:"baseYield"`
	RequestedPortions int                  `json:"requestedPortions"`
	Multiplier        float64              `json:"multiplier"`
	Items             []recipe.DisplayItem `json:"items"`
}

// DeeplinkDTO carries the Bring! import link
type DeeplinkDTO struct {
	RecipeID          uuid.UUID `json:"recipeId"`
	Deeplink          string    `json:"deeplink"`
	BaseYield         int       `json:"baseYield"`
	RequestedPortions int       `json:"requestedPortions"`
}

// ImageResult is a resolved recipe image
type ImageResult struct {
	URL         string `json:"url"`
	Source      string `json:"source"`
	Attribution string `json:"attribution,omitempty"`
}

// RecipeList for paginated results
type RecipeList struct {
	Recipes    []RecipeDTO `json:"recipes"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}
