// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weemeal/server/internal/domain/recipe"
	"github.com/weemeal/server/internal/ports/outbound"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a new recipe
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model := RecipeToModel(rec)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// Update updates an existing recipe
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	model := RecipeToModel(rec)

	result := r.db.WithContext(ctx).
		Model(&RecipeModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return recipe.ErrRecipeNotFound
	}

	return nil
}

// Delete deletes a recipe by ID
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return recipe.ErrRecipeNotFound
	}

	return nil
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, result.Error
	}

	return ModelToRecipe(&model), nil
}

// FindAll finds recipes matching the given criteria with pagination
func (r *RecipeRepository) FindAll(ctx context.Context, criteria outbound.ListCriteria) ([]*recipe.Recipe, int, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{})

	if criteria.Search != "" {
		searchTerm := "%" + strings.ToLower(criteria.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchTerm)
	}

	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}

	if criteria.Tag != "" {
		// Tags are stored as a JSON array of strings; match the quoted
		// value inside the serialized document.
		tagTerm := "%" + strings.ReplaceAll(criteria.Tag, "%", "") + "%"
		query = query.Where(`tags LIKE ?`, `%"`+strings.Trim(tagTerm, "%")+`"%`)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []RecipeModel
	result := query.
		Order("created_at DESC").
		Offset(criteria.Offset).
		Limit(criteria.Limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}

	return recipes, int(total), nil
}
