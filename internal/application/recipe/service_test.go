package recipe

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	domainrecipe "github.com/weemeal/server/internal/domain/recipe"
	"github.com/weemeal/server/internal/domain/shared"
	"github.com/weemeal/server/internal/ports/inbound"
	"github.com/weemeal/server/internal/ports/outbound"
	apperrors "github.com/weemeal/server/pkg/errors"
	"github.com/weemeal/server/test/testutils"
)

type stubRepository struct {
	recipes map[uuid.UUID]*domainrecipe.Recipe
	findAll func(criteria outbound.ListCriteria) ([]*domainrecipe.Recipe, int, error)
}

func newStubRepository() *stubRepository {
	return &stubRepository{recipes: make(map[uuid.UUID]*domainrecipe.Recipe)}
}

func (r *stubRepository) Create(ctx context.Context, rec *domainrecipe.Recipe) error {
	r.recipes[rec.ID()] = rec
	return nil
}

func (r *stubRepository) Update(ctx context.Context, rec *domainrecipe.Recipe) error {
	if _, ok := r.recipes[rec.ID()]; !ok {
		return domainrecipe.ErrRecipeNotFound
	}
	r.recipes[rec.ID()] = rec
	return nil
}

func (r *stubRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.recipes[id]; !ok {
		return domainrecipe.ErrRecipeNotFound
	}
	delete(r.recipes, id)
	return nil
}

func (r *stubRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainrecipe.Recipe, error) {
	rec, ok := r.recipes[id]
	if !ok {
		return nil, domainrecipe.ErrRecipeNotFound
	}
	return rec, nil
}

func (r *stubRepository) FindAll(ctx context.Context, criteria outbound.ListCriteria) ([]*domainrecipe.Recipe, int, error) {
	if r.findAll != nil {
		return r.findAll(criteria)
	}
	all := make([]*domainrecipe.Recipe, 0, len(r.recipes))
	for _, rec := range r.recipes {
		all = append(all, rec)
	}
	return all, len(all), nil
}

type stubCache struct {
	data map[string][]byte
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string][]byte)}
}

func (c *stubCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, domainrecipe.ErrRecipeNotFound
}

func (c *stubCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *stubCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *stubCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.data[key]
	return ok, nil
}

type stubImages struct {
	result inbound.ImageResult
	calls  int
}

func (s *stubImages) Resolve(ctx context.Context, recipeName string) inbound.ImageResult {
	s.calls++
	return s.result
}

type stubDispatcher struct {
	events []shared.DomainEvent
}

func (d *stubDispatcher) Dispatch(event shared.DomainEvent) error {
	d.events = append(d.events, event)
	return nil
}

func (d *stubDispatcher) Register(eventName string, handler shared.EventHandler) {}

func (d *stubDispatcher) names() []string {
	names := make([]string, len(d.events))
	for i, e := range d.events {
		names[i] = e.EventName()
	}
	return names
}

type RecipeServiceTestSuite struct {
	suite.Suite
	repo       *stubRepository
	cache      *stubCache
	images     *stubImages
	dispatcher *stubDispatcher
	factory    *testutils.RecipeFactory
	service    inbound.RecipeService
	ctx        context.Context
}

func (s *RecipeServiceTestSuite) SetupTest() {
	s.repo = newStubRepository()
	s.cache = newStubCache()
	s.images = &stubImages{}
	s.dispatcher = &stubDispatcher{}
	s.factory = testutils.NewRecipeFactory(42)
	s.service = NewRecipeService(s.repo, s.cache, s.images, s.dispatcher, "http://localhost:8080", zap.NewNop())
	s.ctx = context.Background()
}

func (s *RecipeServiceTestSuite) seed() *domainrecipe.Recipe {
	rec := s.factory.Recipe()
	s.repo.recipes[rec.ID()] = rec
	return rec
}

func (s *RecipeServiceTestSuite) TestCreateRecipe() {
	s.Run("Create_ShouldPersistAndDispatch", func() {
		dto, err := s.service.CreateRecipe(s.ctx, inbound.CreateRecipeCommand{
			Name:        "Kartoffelsuppe",
			RecipeYield: 4,
			Tags:        []string{"Suppe"},
		})

		s.Require().NoError(err)
		s.Equal("Kartoffelsuppe", dto.Name)
		s.Contains(s.repo.recipes, dto.ID)
		s.Contains(s.dispatcher.names(), "recipe.created")
	})

	s.Run("Create_ShouldRecordOwner", func() {
		dto, err := s.service.CreateRecipe(s.ctx, inbound.CreateRecipeCommand{
			Name:        "Bauerntopf",
			RecipeYield: 4,
			UserID:      "user-1",
		})

		s.Require().NoError(err)
		s.Equal("user-1", dto.UserID)
		s.Equal("user-1", s.repo.recipes[dto.ID].UserID())
	})

	s.Run("Create_ShouldResolveImageWhenRequested", func() {
		s.images.result = inbound.ImageResult{URL: "https://images.unsplash.com/photo", Source: "unsplash"}

		dto, err := s.service.CreateRecipe(s.ctx, inbound.CreateRecipeCommand{
			Name:         "Linsensuppe",
			RecipeYield:  4,
			ResolveImage: true,
		})

		s.Require().NoError(err)
		s.Equal(1, s.images.calls)
		s.Equal("https://images.unsplash.com/photo", dto.ImageURL)
		s.Equal("unsplash", dto.ImageSource)
	})

	s.Run("Create_ShouldNotResolveImageByDefault", func() {
		_, err := s.service.CreateRecipe(s.ctx, inbound.CreateRecipeCommand{
			Name:        "Gulasch",
			RecipeYield: 4,
		})

		s.Require().NoError(err)
		s.Equal(0, s.images.calls)
	})

	s.Run("Create_ShouldRejectInvalidName", func() {
		_, err := s.service.CreateRecipe(s.ctx, inbound.CreateRecipeCommand{
			Name:        "   ",
			RecipeYield: 4,
		})

		s.Require().Error(err)
		s.True(apperrors.HasCode(err, apperrors.CodeValidationFailed))
	})
}

func (s *RecipeServiceTestSuite) TestUpdateRecipe() {
	s.Run("Update_ShouldApplyOnlyProvidedFields", func() {
		rec := s.seed()
		originalYield := rec.RecipeYield()

		name := "Neuer Name"
		dto, err := s.service.UpdateRecipe(s.ctx, inbound.UpdateRecipeCommand{
			RecipeID: rec.ID(),
			Name:     &name,
		})

		s.Require().NoError(err)
		s.Equal("Neuer Name", dto.Name)
		s.Equal(originalYield, dto.RecipeYield)
	})

	s.Run("Update_ShouldRejectEmptyCommand", func() {
		rec := s.seed()

		_, err := s.service.UpdateRecipe(s.ctx, inbound.UpdateRecipeCommand{RecipeID: rec.ID()})

		s.Require().Error(err)
		s.True(apperrors.HasCode(err, apperrors.CodeEmptyUpdate))
	})

	s.Run("Update_ShouldReturnNotFoundForUnknownRecipe", func() {
		name := "Egal"
		_, err := s.service.UpdateRecipe(s.ctx, inbound.UpdateRecipeCommand{
			RecipeID: uuid.New(),
			Name:     &name,
		})

		s.Require().Error(err)
		s.True(apperrors.HasCode(err, apperrors.CodeRecipeNotFound))
	})

	s.Run("Update_ShouldInvalidateCache", func() {
		rec := s.seed()

		_, err := s.service.GetRecipeByID(s.ctx, rec.ID())
		s.Require().NoError(err)
		s.NotEmpty(s.cache.data)

		name := "Frisch"
		_, err = s.service.UpdateRecipe(s.ctx, inbound.UpdateRecipeCommand{
			RecipeID: rec.ID(),
			Name:     &name,
		})
		s.Require().NoError(err)
		s.Empty(s.cache.data)
	})
}

func (s *RecipeServiceTestSuite) TestDeleteRecipe() {
	s.Run("Delete_ShouldRemoveAndDispatch", func() {
		rec := s.seed()

		err := s.service.DeleteRecipe(s.ctx, rec.ID())

		s.Require().NoError(err)
		s.NotContains(s.repo.recipes, rec.ID())
		s.Contains(s.dispatcher.names(), "recipe.deleted")
	})

	s.Run("Delete_ShouldReturnNotFoundForUnknownRecipe", func() {
		err := s.service.DeleteRecipe(s.ctx, uuid.New())

		s.Require().Error(err)
		s.True(apperrors.HasCode(err, apperrors.CodeRecipeNotFound))
	})
}

func (s *RecipeServiceTestSuite) TestMetadataOperations() {
	s.Run("UpdateNotes_ShouldPersist", func() {
		rec := s.seed()

		dto, err := s.service.UpdateNotes(s.ctx, rec.ID(), "Mit Majoran abschmecken.")

		s.Require().NoError(err)
		s.Equal("Mit Majoran abschmecken.", dto.Notes)
	})

	s.Run("UpdateSource_ShouldSetAndClear", func() {
		rec := s.seed()

		dto, err := s.service.UpdateSource(s.ctx, rec.ID(), &inbound.SourceDTO{
			Type:      "book",
			BookTitle: "Hausmannskost",
			BookPage:  "12",
		})
		s.Require().NoError(err)
		s.Require().NotNil(dto.Source)
		s.Equal("Hausmannskost", dto.Source.BookTitle)

		dto, err = s.service.UpdateSource(s.ctx, rec.ID(), nil)
		s.Require().NoError(err)
		s.Nil(dto.Source)
	})

	s.Run("SetImage_ShouldStoreCustomURL", func() {
		rec := s.seed()

		dto, err := s.service.SetImage(s.ctx, rec.ID(), "https://example.com/bild.jpg")

		s.Require().NoError(err)
		s.Equal("https://example.com/bild.jpg", dto.ImageURL)
		s.Equal("custom", dto.ImageSource)
		s.Equal(0, s.images.calls)
	})

	s.Run("SetImage_ShouldResolveWhenURLEmpty", func() {
		rec := s.seed()
		s.images.result = inbound.ImageResult{URL: "data:image/svg+xml,abc", Source: "placeholder"}

		dto, err := s.service.SetImage(s.ctx, rec.ID(), "")

		s.Require().NoError(err)
		s.Equal(1, s.images.calls)
		s.Equal("placeholder", dto.ImageSource)
	})

	s.Run("RemoveImage_ShouldClear", func() {
		rec := s.seed()
		rec.SetImage("https://example.com/bild.jpg", domainrecipe.ImageSourceCustom)

		dto, err := s.service.RemoveImage(s.ctx, rec.ID())

		s.Require().NoError(err)
		s.Empty(dto.ImageURL)
		s.Empty(dto.ImageSource)
	})

	s.Run("ApplyTags_ShouldReplace", func() {
		rec := s.seed()

		dto, err := s.service.ApplyTags(s.ctx, rec.ID(), []string{"Pasta", "Vegetarisch"})

		s.Require().NoError(err)
		s.Equal([]string{"Pasta", "Vegetarisch"}, dto.Tags)
	})
}

func (s *RecipeServiceTestSuite) TestGetRecipeByID() {
	s.Run("Get_ShouldServeFromCacheOnSecondCall", func() {
		rec := s.seed()

		first, err := s.service.GetRecipeByID(s.ctx, rec.ID())
		s.Require().NoError(err)

		// Remove from the repository; the cached copy must answer.
		delete(s.repo.recipes, rec.ID())

		second, err := s.service.GetRecipeByID(s.ctx, rec.ID())
		s.Require().NoError(err)
		s.Equal(first.ID, second.ID)
		s.Equal(first.Name, second.Name)
	})

	s.Run("Get_ShouldDropUnreadableCacheEntries", func() {
		rec := s.seed()
		key := "recipe:" + rec.ID().String()
		s.cache.data[key] = []byte("{broken")

		dto, err := s.service.GetRecipeByID(s.ctx, rec.ID())
		s.Require().NoError(err)
		s.Equal(rec.ID(), dto.ID)

		cached, ok := s.cache.data[key]
		s.True(ok)
		var parsed inbound.RecipeDTO
		s.NoError(json.Unmarshal(cached, &parsed))
	})
}

func (s *RecipeServiceTestSuite) TestListRecipes() {
	s.Run("List_ShouldClampPageSize", func() {
		var captured outbound.ListCriteria
		s.repo.findAll = func(criteria outbound.ListCriteria) ([]*domainrecipe.Recipe, int, error) {
			captured = criteria
			return nil, 0, nil
		}

		_, err := s.service.ListRecipes(s.ctx, inbound.ListQuery{Page: 0, PageSize: 500})

		s.Require().NoError(err)
		s.Equal(0, captured.Offset)
		s.Equal(100, captured.Limit)
	})

	s.Run("List_ShouldPassFiltersThrough", func() {
		var captured outbound.ListCriteria
		s.repo.findAll = func(criteria outbound.ListCriteria) ([]*domainrecipe.Recipe, int, error) {
			captured = criteria
			return nil, 0, nil
		}

		_, err := s.service.ListRecipes(s.ctx, inbound.ListQuery{
			Search: "suppe",
			Tag:    "Vegetarisch",
			UserID: "user-1",
		})

		s.Require().NoError(err)
		s.Equal("suppe", captured.Search)
		s.Equal("Vegetarisch", captured.Tag)
		s.Equal("user-1", captured.UserID)
	})

	s.Run("List_ShouldComputeTotalPages", func() {
		s.repo.findAll = func(criteria outbound.ListCriteria) ([]*domainrecipe.Recipe, int, error) {
			return nil, 45, nil
		}

		list, err := s.service.ListRecipes(s.ctx, inbound.ListQuery{Page: 2, PageSize: 20})

		s.Require().NoError(err)
		s.Equal(45, list.Total)
		s.Equal(2, list.Page)
		s.Equal(3, list.TotalPages)
	})
}

func (s *RecipeServiceTestSuite) TestScalingAndExport() {
	s.Run("Scaled_ShouldApplyMultiplier", func() {
		rec := s.factory.NamedRecipe("Linsensuppe", 4)
		amount := 200.0
		s.Require().NoError(rec.SetContent([]domainrecipe.ContentItem{{
			ContentID:      uuid.NewString(),
			Type:           domainrecipe.ContentTypeIngredient,
			Position:       0,
			IngredientName: "Linsen",
			Unit:           "g",
			Amount:         &amount,
		}}))
		s.repo.recipes[rec.ID()] = rec

		dto, err := s.service.ScaledIngredients(s.ctx, rec.ID(), 6)

		s.Require().NoError(err)
		s.InDelta(1.5, dto.Multiplier, 0.0001)
		s.Require().Len(dto.Items, 1)
		s.Equal("300", dto.Items[0].Amount)
	})

	s.Run("Scaled_ShouldRejectZeroPortions", func() {
		rec := s.seed()

		_, err := s.service.ScaledIngredients(s.ctx, rec.ID(), 0)

		s.Require().Error(err)
		s.True(apperrors.HasCode(err, apperrors.CodeValidationFailed))
	})

	s.Run("Deeplink_ShouldDefaultToBaseYield", func() {
		rec := s.factory.NamedRecipe("Gulasch", 4)
		s.repo.recipes[rec.ID()] = rec

		dto, err := s.service.Deeplink(s.ctx, rec.ID(), 0)

		s.Require().NoError(err)
		s.Equal(4, dto.RequestedPortions)
		s.Contains(dto.Deeplink, "api.getbring.com")
		s.Contains(dto.Deeplink, rec.ID().String())
	})

	s.Run("Export_ShouldRenderHTMLDocument", func() {
		rec := s.seed()

		doc, err := s.service.ExportDocument(s.ctx, rec.ID())

		s.Require().NoError(err)
		s.Contains(doc, "<!DOCTYPE html>")
		s.Contains(doc, "application/ld+json")
	})
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}
