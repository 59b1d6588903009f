// Package recipe provides the application layer for recipe management
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/weemeal/server/internal/bring"
	"github.com/weemeal/server/internal/domain/recipe"
	"github.com/weemeal/server/internal/domain/shared"
	"github.com/weemeal/server/internal/ports/inbound"
	"github.com/weemeal/server/internal/ports/outbound"
	"github.com/weemeal/server/pkg/errors"
)

const (
	recipeCacheTTL  = time.Hour
	defaultPageSize = 20
	maxPageSize     = 100
)

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo    outbound.RecipeRepository
	cache         outbound.CacheRepository
	images        inbound.ImageService
	dispatcher    shared.EventDispatcher
	publicBaseURL string
	logger        *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	cache outbound.CacheRepository,
	images inbound.ImageService,
	dispatcher shared.EventDispatcher,
	publicBaseURL string,
	logger *zap.Logger,
) inbound.RecipeService {
	return &RecipeService{
		recipeRepo:    recipeRepo,
		cache:         cache,
		images:        images,
		dispatcher:    dispatcher,
		publicBaseURL: publicBaseURL,
		logger:        logger.Named("recipe-service"),
	}
}

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Creating new recipe",
		zap.String("name", cmd.Name),
		zap.Int("recipe_yield", cmd.RecipeYield),
	)

	entity, err := recipe.NewRecipe(cmd.Name, cmd.RecipeYield)
	if err != nil {
		return nil, errors.NewValidationFailedError(err)
	}

	entity.SetInstructions(cmd.Instructions)
	if err := entity.SetContent(cmd.Content); err != nil {
		return nil, errors.NewValidationFailedError(err)
	}
	if err := entity.SetTags(cmd.Tags); err != nil {
		return nil, errors.NewValidationFailedError(err)
	}
	if err := entity.SetNotes(cmd.Notes); err != nil {
		return nil, errors.NewValidationFailedError(err)
	}
	if cmd.Source != nil {
		src, err := sourceFromDTO(cmd.Source)
		if err != nil {
			return nil, errors.NewValidationFailedError(err)
		}
		if err := entity.SetSource(*src); err != nil {
			return nil, errors.NewValidationFailedError(err)
		}
	}

	if cmd.UserID != "" {
		entity.SetUserID(cmd.UserID)
	}

	if cmd.ResolveImage && s.images != nil {
		result := s.images.Resolve(ctx, entity.Name())
		if result.URL != "" {
			entity.SetImage(result.URL, recipe.ImageSource(result.Source))
		}
	}

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	s.dispatchEvents(entity)

	dto := s.entityToDTO(entity)
	s.logger.Info("Recipe created",
		zap.String("recipe_id", dto.ID.String()),
		zap.String("name", dto.Name),
	)
	return dto, nil
}

// UpdateRecipe updates an existing recipe. Nil command fields are left
// unchanged; a command that changes nothing is rejected.
func (s *RecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	if cmd.IsEmpty() {
		return nil, errors.NewEmptyUpdateError()
	}

	entity, err := s.loadRecipe(ctx, cmd.RecipeID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if err := entity.Rename(*cmd.Name); err != nil {
			return nil, errors.NewValidationFailedError(err)
		}
	}
	if cmd.RecipeYield != nil {
		if err := entity.SetYield(*cmd.RecipeYield); err != nil {
			return nil, errors.NewValidationFailedError(err)
		}
	}
	if cmd.Instructions != nil {
		entity.SetInstructions(*cmd.Instructions)
	}
	if cmd.Content != nil {
		if err := entity.SetContent(*cmd.Content); err != nil {
			return nil, errors.NewValidationFailedError(err)
		}
	}
	if cmd.Tags != nil {
		if err := entity.SetTags(*cmd.Tags); err != nil {
			return nil, errors.NewValidationFailedError(err)
		}
	}

	return s.persist(ctx, entity)
}

// DeleteRecipe deletes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error {
	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return errors.NewRecipeNotFoundError(recipeID.String())
		}
		return errors.NewDatabaseError("delete recipe", err)
	}

	if err := s.dispatcher.Dispatch(recipe.RecipeDeletedEvent{
		RecipeID:  recipeID,
		DeletedAt: time.Now(),
	}); err != nil {
		s.logger.Warn("Failed to dispatch event", zap.Error(err))
	}

	s.invalidateRecipeCache(recipeID)
	s.logger.Info("Recipe deleted", zap.String("recipe_id", recipeID.String()))
	return nil
}

// UpdateNotes replaces the recipe's notes
func (s *RecipeService) UpdateNotes(ctx context.Context, recipeID uuid.UUID, notes string) (*inbound.RecipeDTO, error) {
	entity, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := entity.SetNotes(notes); err != nil {
		return nil, errors.NewValidationFailedError(err)
	}
	return s.persist(ctx, entity)
}

// UpdateSource replaces or clears the recipe's origin
func (s *RecipeService) UpdateSource(ctx context.Context, recipeID uuid.UUID, source *inbound.SourceDTO) (*inbound.RecipeDTO, error) {
	entity, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		entity.ClearSource()
	} else {
		src, err := sourceFromDTO(source)
		if err != nil {
			return nil, errors.NewValidationFailedError(err)
		}
		if err := entity.SetSource(*src); err != nil {
			return nil, errors.NewValidationFailedError(err)
		}
	}
	return s.persist(ctx, entity)
}

// SetImage stores a caller provided image URL, or resolves one through
// the image pipeline when the URL is empty.
func (s *RecipeService) SetImage(ctx context.Context, recipeID uuid.UUID, imageURL string) (*inbound.RecipeDTO, error) {
	entity, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if imageURL != "" {
		entity.SetImage(imageURL, recipe.ImageSourceCustom)
	} else if s.images != nil {
		result := s.images.Resolve(ctx, entity.Name())
		if result.URL != "" {
			entity.SetImage(result.URL, recipe.ImageSource(result.Source))
		}
	}

	return s.persist(ctx, entity)
}

// RemoveImage clears the recipe's image
func (s *RecipeService) RemoveImage(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	entity, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	entity.ClearImage()
	return s.persist(ctx, entity)
}

// ApplyTags replaces the recipe's tags
func (s *RecipeService) ApplyTags(ctx context.Context, recipeID uuid.UUID, tags []string) (*inbound.RecipeDTO, error) {
	entity, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := entity.SetTags(tags); err != nil {
		return nil, errors.NewValidationFailedError(err)
	}
	return s.persist(ctx, entity)
}

// GetRecipeByID retrieves a recipe by ID
func (s *RecipeService) GetRecipeByID(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	if cached := s.getCachedRecipe(ctx, recipeID); cached != nil {
		return cached, nil
	}

	entity, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	dto := s.entityToDTO(entity)
	s.cacheRecipe(ctx, dto)
	return dto, nil
}

// ListRecipes lists recipes with optional search and tag filters
func (s *RecipeService) ListRecipes(ctx context.Context, query inbound.ListQuery) (*inbound.RecipeList, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	recipes, total, err := s.recipeRepo.FindAll(ctx, outbound.ListCriteria{
		Search: query.Search,
		Tag:    query.Tag,
		UserID: query.UserID,
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}

	dtos := make([]inbound.RecipeDTO, len(recipes))
	for i, r := range recipes {
		dtos[i] = *s.entityToDTO(r)
	}

	return &inbound.RecipeList{
		Recipes:    dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// ScaledIngredients returns the content list scaled to a portion count
func (s *RecipeService) ScaledIngredients(ctx context.Context, recipeID uuid.UUID, portions int) (*inbound.ScaledIngredientsDTO, error) {
	entity, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	multiplier, err := recipe.Multiplier(entity.RecipeYield(), portions)
	if err != nil {
		return nil, errors.NewValidationFailedError(err)
	}

	return &inbound.ScaledIngredientsDTO{
		RecipeID:          entity.ID(),
		BaseYield:         entity.RecipeYield(),
		RequestedPortions: portions,
		Multiplier:        multiplier,
		Items:             recipe.ScaleForDisplay(entity.Content(), multiplier),
	}, nil
}

// Deeplink builds the Bring! import link for a recipe
func (s *RecipeService) Deeplink(ctx context.Context, recipeID uuid.UUID, portions int) (*inbound.DeeplinkDTO, error) {
	entity, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if portions <= 0 {
		portions = entity.RecipeYield()
	}

	return &inbound.DeeplinkDTO{
		RecipeID:          entity.ID(),
		Deeplink:          bring.DeeplinkURL(s.publicBaseURL, entity.ID().String(), entity.RecipeYield(), portions),
		BaseYield:         entity.RecipeYield(),
		RequestedPortions: portions,
	}, nil
}

// ExportDocument renders the HTML document Bring! imports from
func (s *RecipeService) ExportDocument(ctx context.Context, recipeID uuid.UUID) (string, error) {
	entity, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return "", err
	}

	doc, err := bring.RenderDocument(entity)
	if err != nil {
		return "", errors.NewInternalError("render export document", err)
	}
	return doc, nil
}

// Helper methods

func (s *RecipeService) loadRecipe(ctx context.Context, recipeID uuid.UUID) (*recipe.Recipe, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, errors.NewRecipeNotFoundError(recipeID.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	return entity, nil
}

func (s *RecipeService) persist(ctx context.Context, entity *recipe.Recipe) (*inbound.RecipeDTO, error) {
	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		if errors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, errors.NewRecipeNotFoundError(entity.ID().String())
		}
		return nil, errors.NewDatabaseError("update recipe", err)
	}

	s.dispatchEvents(entity)
	s.invalidateRecipeCache(entity.ID())
	return s.entityToDTO(entity), nil
}

func (s *RecipeService) dispatchEvents(entity *recipe.Recipe) {
	for _, event := range entity.Events() {
		if err := s.dispatcher.Dispatch(event); err != nil {
			s.logger.Warn("Failed to dispatch event",
				zap.String("event", event.EventName()),
				zap.Error(err),
			)
		}
	}
	entity.ClearEvents()
}

// entityToDTO converts domain entity to DTO
func (s *RecipeService) entityToDTO(entity *recipe.Recipe) *inbound.RecipeDTO {
	return &inbound.RecipeDTO{
		ID:           entity.ID(),
		Name:         entity.Name(),
		RecipeYield:  entity.RecipeYield(),
		Instructions: entity.Instructions(),
		Content:      entity.Content(),
		ImageURL:     entity.ImageURL(),
		ImageSource:  string(entity.ImageSourceKind()),
		Tags:         entity.Tags(),
		Notes:        entity.Notes(),
		Source:       sourceToDTO(entity.Source()),
		UserID:       entity.UserID(),
		CreatedAt:    entity.CreatedAt().Format(time.RFC3339),
		UpdatedAt:    entity.UpdatedAt().Format(time.RFC3339),
	}
}

func sourceToDTO(src *recipe.Source) *inbound.SourceDTO {
	if src == nil {
		return nil
	}
	return &inbound.SourceDTO{
		Type:      string(src.Type),
		BookTitle: src.BookTitle,
		BookPage:  src.BookPage,
		URL:       src.URL,
	}
}

func sourceFromDTO(dto *inbound.SourceDTO) (*recipe.Source, error) {
	src := recipe.Source{
		Type:      recipe.SourceType(dto.Type),
		BookTitle: dto.BookTitle,
		BookPage:  dto.BookPage,
		URL:       dto.URL,
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	return &src, nil
}

// Cache operations

func recipeCacheKey(recipeID uuid.UUID) string {
	return fmt.Sprintf("recipe:%s", recipeID.String())
}

func (s *RecipeService) getCachedRecipe(ctx context.Context, recipeID uuid.UUID) *inbound.RecipeDTO {
	data, err := s.cache.Get(ctx, recipeCacheKey(recipeID))
	if err != nil || len(data) == 0 {
		return nil
	}
	var dto inbound.RecipeDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		s.logger.Warn("Dropping unreadable cache entry",
			zap.String("recipe_id", recipeID.String()),
			zap.Error(err),
		)
		s.invalidateRecipeCache(recipeID)
		return nil
	}
	return &dto
}

func (s *RecipeService) cacheRecipe(ctx context.Context, dto *inbound.RecipeDTO) {
	data, err := json.Marshal(dto)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, recipeCacheKey(dto.ID), data, recipeCacheTTL); err != nil {
		s.logger.Warn("Failed to cache recipe", zap.Error(err))
	}
}

func (s *RecipeService) invalidateRecipeCache(recipeID uuid.UUID) {
	if err := s.cache.Delete(context.Background(), recipeCacheKey(recipeID)); err != nil {
		s.logger.Warn("Failed to invalidate recipe cache", zap.Error(err))
	}
}
