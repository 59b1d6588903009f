// Package recipe contains the core domain logic for recipe management.
// This follows Domain-Driven Design principles with rich domain models.
package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/weemeal/server/internal/domain/shared"
)

const (
	maxNameLength        = 200
	minYield             = 1
	maxYield             = 100
	maxTags              = 10
	maxTagLength         = 25
	maxNotesLength       = 5000
	maxSourceTitleLength = 200
	maxSourcePageLength  = 50
	maxSourceURLLength   = 2000
)

// Recipe is the aggregate root for a single recipe. It owns the ordered
// content list, the free-text instructions and all presentation metadata.
type Recipe struct {
	id uuid.UUID

	name         string
	recipeYield  int
	instructions string
	content      []ContentItem

	imageURL    string
	imageSource ImageSource
	tags        []string
	notes       string
	source      *Source
	userID      string

	createdAt time.Time
	updatedAt time.Time

	// Domain events to be dispatched
	events []shared.DomainEvent
}

// NewRecipe creates a new Recipe with validation.
func NewRecipe(name string, recipeYield int) (*Recipe, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateYield(recipeYield); err != nil {
		return nil, err
	}

	now := time.Now()
	recipe := &Recipe{
		id:          uuid.New(),
		name:        strings.TrimSpace(name),
		recipeYield: recipeYield,
		content:     []ContentItem{},
		tags:        []string{},
		createdAt:   now,
		updatedAt:   now,
		events:      []shared.DomainEvent{},
	}

	recipe.addEvent(RecipeCreatedEvent{
		RecipeID:  recipe.id,
		Name:      recipe.name,
		CreatedAt: now,
	})

	return recipe, nil
}

// RehydrateParams carries the stored state of a recipe.
type RehydrateParams struct {
	ID           uuid.UUID
	Name         string
	RecipeYield  int
	Instructions string
	Content      []ContentItem
	ImageURL     string
	ImageSource  ImageSource
	Tags         []string
	Notes        string
	Source       *Source
	UserID       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Rehydrate restores a Recipe from persisted state without raising
// events or re-running creation validation.
func Rehydrate(p RehydrateParams) *Recipe {
	content := p.Content
	if content == nil {
		content = []ContentItem{}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Recipe{
		id:           p.ID,
		name:         p.Name,
		recipeYield:  p.RecipeYield,
		instructions: p.Instructions,
		content:      SortByPosition(content),
		imageURL:     p.ImageURL,
		imageSource:  p.ImageSource,
		tags:         tags,
		notes:        p.Notes,
		source:       p.Source,
		userID:       p.UserID,
		createdAt:    p.CreatedAt,
		updatedAt:    p.UpdatedAt,
		events:       []shared.DomainEvent{},
	}
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// Name returns the recipe's display name
func (r *Recipe) Name() string {
	return r.name
}

// RecipeYield returns the number of portions the recipe is written for
func (r *Recipe) RecipeYield() int {
	return r.recipeYield
}

// Instructions returns the free-text preparation instructions
func (r *Recipe) Instructions() string {
	return r.instructions
}

// Content returns a copy of the ordered content list
func (r *Recipe) Content() []ContentItem {
	out := make([]ContentItem, len(r.content))
	copy(out, r.content)
	return out
}

// Ingredients returns only the ingredient items, in position order.
func (r *Recipe) Ingredients() []ContentItem {
	var out []ContentItem
	for _, item := range r.content {
		if item.IsIngredient() {
			out = append(out, item)
		}
	}
	return out
}

// ImageURL returns the recipe's image URL, empty when none is set
func (r *Recipe) ImageURL() string {
	return r.imageURL
}

// ImageSourceKind reports how the current image was obtained
func (r *Recipe) ImageSourceKind() ImageSource {
	return r.imageSource
}

// Tags returns a copy of the recipe's tags
func (r *Recipe) Tags() []string {
	out := make([]string, len(r.tags))
	copy(out, r.tags)
	return out
}

// Notes returns the recipe's free-form notes
func (r *Recipe) Notes() string {
	return r.notes
}

// Source returns the recipe's origin, nil when unknown
func (r *Recipe) Source() *Source {
	if r.source == nil {
		return nil
	}
	s := *r.source
	return &s
}

// UserID returns the owning user's identifier, empty when unowned
func (r *Recipe) UserID() string {
	return r.userID
}

// CreatedAt returns the creation timestamp
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns the last modification timestamp
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// Rename changes the recipe's name.
func (r *Recipe) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	r.name = strings.TrimSpace(name)
	r.touch("name")
	return nil
}

// SetYield changes the number of portions the recipe is written for.
func (r *Recipe) SetYield(recipeYield int) error {
	if err := validateYield(recipeYield); err != nil {
		return err
	}
	r.recipeYield = recipeYield
	r.touch("recipeYield")
	return nil
}

// SetInstructions replaces the preparation instructions.
func (r *Recipe) SetInstructions(instructions string) {
	r.instructions = instructions
	r.touch("instructions")
}

// SetContent replaces the content list. Items are validated, sorted by
// position and renumbered to a dense 0..n-1 sequence.
func (r *Recipe) SetContent(items []ContentItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	r.content = NormalizePositions(items)
	r.touch("content")
	return nil
}

// SetImage records an image URL together with its origin.
func (r *Recipe) SetImage(url string, source ImageSource) {
	r.imageURL = url
	r.imageSource = source
	r.touch("image")
}

// ClearImage removes the recipe's image.
func (r *Recipe) ClearImage() {
	r.imageURL = ""
	r.imageSource = ""
	r.touch("image")
}

// SetTags replaces the recipe's tags. Blank tags are dropped.
func (r *Recipe) SetTags(tags []string) error {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if len([]rune(tag)) > maxTagLength {
			return ErrTagTooLong
		}
		cleaned = append(cleaned, tag)
	}
	if len(cleaned) > maxTags {
		return ErrTooManyTags
	}
	r.tags = cleaned
	r.touch("tags")
	return nil
}

// SetNotes replaces the recipe's free-form notes.
func (r *Recipe) SetNotes(notes string) error {
	if len([]rune(notes)) > maxNotesLength {
		return ErrNotesTooLong
	}
	r.notes = notes
	r.touch("notes")
	return nil
}

// SetSource records where the recipe came from.
func (r *Recipe) SetSource(source Source) error {
	if err := source.Validate(); err != nil {
		return err
	}
	r.source = &source
	r.touch("source")
	return nil
}

// ClearSource removes the recipe's origin reference.
func (r *Recipe) ClearSource() {
	r.source = nil
	r.touch("source")
}

// SetUserID records the owning user. Ownership is optional metadata
// and carries no access semantics.
func (r *Recipe) SetUserID(userID string) {
	r.userID = strings.TrimSpace(userID)
	r.touch("userId")
}

// Events returns the accumulated domain events
func (r *Recipe) Events() []shared.DomainEvent {
	return r.events
}

// ClearEvents clears all domain events after dispatching
func (r *Recipe) ClearEvents() {
	r.events = []shared.DomainEvent{}
}

func (r *Recipe) addEvent(event shared.DomainEvent) {
	r.events = append(r.events, event)
}

func (r *Recipe) touch(field string) {
	r.updatedAt = time.Now()
	r.addEvent(RecipeUpdatedEvent{
		RecipeID:  r.id,
		Field:     field,
		UpdatedAt: r.updatedAt,
	})
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameEmpty
	}
	if len([]rune(name)) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func validateYield(recipeYield int) error {
	if recipeYield < minYield || recipeYield > maxYield {
		return ErrYieldOutOfRange
	}
	return nil
}
