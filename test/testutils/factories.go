// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/weemeal/server/internal/domain/recipe"
)

var dishNames = []string{
	"Kartoffelsuppe",
	"Spaghetti Bolognese",
	"Linsensuppe",
	"Gulasch",
	"Käsespätzle",
	"Flammkuchen",
	"Kürbissuppe",
	"Pfannkuchen",
}

var ingredientUnits = []string{"g", "kg", "ml", "l", "EL", "TL", "Stück"}

// RecipeFactory creates domain recipes with deterministic fake data
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with a seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// Ingredient builds a random ingredient content item at the given position
func (f *RecipeFactory) Ingredient(position int) recipe.ContentItem {
	amount := float64(f.faker.Number(1, 500))
	return recipe.ContentItem{
		ContentID:      uuid.NewString(),
		Type:           recipe.ContentTypeIngredient,
		Position:       position,
		IngredientName: f.faker.Vegetable(),
		Unit:           f.faker.RandomString(ingredientUnits),
		Amount:         &amount,
	}
}

// Section builds a section caption content item at the given position
func (f *RecipeFactory) Section(position int) recipe.ContentItem {
	return recipe.ContentItem{
		ContentID:   uuid.NewString(),
		Type:        recipe.ContentTypeSectionCaption,
		Position:    position,
		SectionName: fmt.Sprintf("Teil %d", position+1),
	}
}

// Content builds a content list with one section followed by n ingredients
func (f *RecipeFactory) Content(ingredients int) []recipe.ContentItem {
	items := make([]recipe.ContentItem, 0, ingredients+1)
	items = append(items, f.Section(0))
	for i := 0; i < ingredients; i++ {
		items = append(items, f.Ingredient(i+1))
	}
	return items
}

// Recipe builds a valid recipe with random content
func (f *RecipeFactory) Recipe() *recipe.Recipe {
	r, err := recipe.NewRecipe(f.faker.RandomString(dishNames), f.faker.Number(2, 8))
	if err != nil {
		panic(fmt.Sprintf("testutils: invalid generated recipe: %v", err))
	}
	if err := r.SetContent(f.Content(f.faker.Number(2, 6))); err != nil {
		panic(fmt.Sprintf("testutils: invalid generated content: %v", err))
	}
	r.SetInstructions(f.faker.Paragraph(1, 3, 8, " "))
	r.ClearEvents()
	return r
}

// NamedRecipe builds a valid recipe with a fixed name and yield
func (f *RecipeFactory) NamedRecipe(name string, recipeYield int) *recipe.Recipe {
	r, err := recipe.NewRecipe(name, recipeYield)
	if err != nil {
		panic(fmt.Sprintf("testutils: invalid generated recipe: %v", err))
	}
	r.ClearEvents()
	return r
}
