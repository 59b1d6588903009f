// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/weemeal/server/internal/domain/recipe"
)

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:           r.ID(),
		Name:         r.Name(),
		RecipeYield:  r.RecipeYield(),
		Instructions: r.Instructions(),
		Content:      ContentList(r.Content()),
		Source:       SourceField{Source: r.Source()},
		ImageURL:     r.ImageURL(),
		ImageSource:  string(r.ImageSourceKind()),
		Tags:         StringSlice(r.Tags()),
		Notes:        r.Notes(),
		UserID:       r.UserID(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	return recipe.Rehydrate(recipe.RehydrateParams{
		ID:           m.ID,
		Name:         m.Name,
		RecipeYield:  m.RecipeYield,
		Instructions: m.Instructions,
		Content:      []recipe.ContentItem(m.Content),
		ImageURL:     m.ImageURL,
		ImageSource:  recipe.ImageSource(m.ImageSource),
		Tags:         []string(m.Tags),
		Notes:        m.Notes,
		Source:       m.Source.Source,
		UserID:       m.UserID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	})
}
