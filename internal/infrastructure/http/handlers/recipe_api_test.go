package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/weemeal/server/internal/domain/recipe"
	"github.com/weemeal/server/internal/ports/inbound"
	apperrors "github.com/weemeal/server/pkg/errors"
)

type stubRecipeService struct {
	createFunc   func(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error)
	updateFunc   func(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error)
	deleteFunc   func(ctx context.Context, id uuid.UUID) error
	getFunc      func(ctx context.Context, id uuid.UUID) (*inbound.RecipeDTO, error)
	listFunc     func(ctx context.Context, q inbound.ListQuery) (*inbound.RecipeList, error)
	scaledFunc   func(ctx context.Context, id uuid.UUID, portions int) (*inbound.ScaledIngredientsDTO, error)
	deeplinkFunc func(ctx context.Context, id uuid.UUID, portions int) (*inbound.DeeplinkDTO, error)
	exportFunc   func(ctx context.Context, id uuid.UUID) (string, error)
	tagsFunc     func(ctx context.Context, id uuid.UUID, tags []string) (*inbound.RecipeDTO, error)
}

func (s *stubRecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	return s.createFunc(ctx, cmd)
}

func (s *stubRecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	return s.updateFunc(ctx, cmd)
}

func (s *stubRecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return s.deleteFunc(ctx, id)
}

func (s *stubRecipeService) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*inbound.RecipeDTO, error) {
	return s.getFunc(ctx, id)
}

func (s *stubRecipeService) UpdateSource(ctx context.Context, id uuid.UUID, source *inbound.SourceDTO) (*inbound.RecipeDTO, error) {
	return s.getFunc(ctx, id)
}

func (s *stubRecipeService) SetImage(ctx context.Context, id uuid.UUID, imageURL string) (*inbound.RecipeDTO, error) {
	return s.getFunc(ctx, id)
}

func (s *stubRecipeService) RemoveImage(ctx context.Context, id uuid.UUID) (*inbound.RecipeDTO, error) {
	return s.getFunc(ctx, id)
}

func (s *stubRecipeService) ApplyTags(ctx context.Context, id uuid.UUID, tags []string) (*inbound.RecipeDTO, error) {
	if s.tagsFunc != nil {
		return s.tagsFunc(ctx, id, tags)
	}
	return s.getFunc(ctx, id)
}

func (s *stubRecipeService) GetRecipeByID(ctx context.Context, id uuid.UUID) (*inbound.RecipeDTO, error) {
	return s.getFunc(ctx, id)
}

func (s *stubRecipeService) ListRecipes(ctx context.Context, q inbound.ListQuery) (*inbound.RecipeList, error) {
	return s.listFunc(ctx, q)
}

func (s *stubRecipeService) ScaledIngredients(ctx context.Context, id uuid.UUID, portions int) (*inbound.ScaledIngredientsDTO, error) {
	return s.scaledFunc(ctx, id, portions)
}

func (s *stubRecipeService) Deeplink(ctx context.Context, id uuid.UUID, portions int) (*inbound.DeeplinkDTO, error) {
	return s.deeplinkFunc(ctx, id, portions)
}

func (s *stubRecipeService) ExportDocument(ctx context.Context, id uuid.UUID) (string, error) {
	return s.exportFunc(ctx, id)
}

type stubImageService struct {
	result inbound.ImageResult
	calls  int
}

func (s *stubImageService) Resolve(ctx context.Context, recipeName string) inbound.ImageResult {
	s.calls++
	return s.result
}

type stubTagService struct {
	tags []string
}

func (s *stubTagService) Suggest(ctx context.Context, recipeName string, ingredientNames []string) []string {
	return s.tags
}

type RecipeAPITestSuite struct {
	suite.Suite
	service *stubRecipeService
	images  *stubImageService
	tags    *stubTagService
	router  *chi.Mux
}

func (s *RecipeAPITestSuite) SetupTest() {
	s.service = &stubRecipeService{}
	s.images = &stubImageService{}
	s.tags = &stubTagService{}

	h := NewRecipeAPIHandlers(s.service, s.images, s.tags, zap.NewNop())

	r := chi.NewRouter()
	r.Route("/api/recipes", func(r chi.Router) {
		r.Get("/bring/{id}", h.ExportDocument)
		r.Get("/", h.ListRecipes)
		r.Post("/", h.CreateRecipe)
		r.Get("/{id}", h.GetRecipe)
		r.Patch("/{id}", h.UpdateRecipe)
		r.Delete("/{id}", h.DeleteRecipe)
		r.Patch("/{id}/notes", h.UpdateNotes)
		r.Put("/{id}/source", h.UpdateSource)
		r.Get("/{id}/image", h.GetImage)
		r.Put("/{id}/image", h.SetImage)
		r.Delete("/{id}/image", h.RemoveImage)
		r.Put("/{id}/tags", h.UpdateTags)
		r.Post("/{id}/generate-tags", h.GenerateTags)
		r.Get("/{id}/scaled", h.ScaledIngredients)
		r.Get("/{id}/bring-deeplink", h.Deeplink)
	})
	s.router = r
}

func (s *RecipeAPITestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func sampleDTO(id uuid.UUID) *inbound.RecipeDTO {
	return &inbound.RecipeDTO{
		ID:          id,
		Name:        "Kartoffelsuppe",
		RecipeYield: 4,
		Content: []recipe.ContentItem{
			{
				ContentID:      uuid.NewString(),
				Type:           recipe.ContentTypeIngredient,
				Position:       0,
				IngredientName: "Kartoffeln",
				Unit:           "g",
			},
		},
		Tags: []string{"Suppe"},
	}
}

func (s *RecipeAPITestSuite) TestCreateRecipe() {
	s.Run("Create_ShouldReturnCreatedRecipe", func() {
		var captured inbound.CreateRecipeCommand
		s.service.createFunc = func(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
			captured = cmd
			return sampleDTO(uuid.New()), nil
		}

		rec := s.do(http.MethodPost, "/api/recipes/", CreateRecipeRequest{
			Name:        "Kartoffelsuppe",
			RecipeYield: 4,
			Tags:        []string{"Suppe"},
		})

		s.Equal(http.StatusCreated, rec.Code)
		s.Equal("Kartoffelsuppe", captured.Name)
		s.Equal(4, captured.RecipeYield)

		var dto inbound.RecipeDTO
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &dto))
		s.Equal("Kartoffelsuppe", dto.Name)
	})

	s.Run("Create_ShouldRejectMissingName", func() {
		rec := s.do(http.MethodPost, "/api/recipes/", CreateRecipeRequest{
			RecipeYield: 4,
		})

		s.Equal(http.StatusBadRequest, rec.Code)

		var resp apperrors.ErrorResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(apperrors.CodeValidationFailed, resp.Error.Code)
	})

	s.Run("Create_ShouldRejectInvalidJSON", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/recipes/", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *RecipeAPITestSuite) TestGetRecipe() {
	s.Run("Get_ShouldReturnRecipe", func() {
		id := uuid.New()
		s.service.getFunc = func(ctx context.Context, got uuid.UUID) (*inbound.RecipeDTO, error) {
			s.Equal(id, got)
			return sampleDTO(id), nil
		}

		rec := s.do(http.MethodGet, "/api/recipes/"+id.String(), nil)

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("Get_ShouldReturn404ForUnknownRecipe", func() {
		id := uuid.New()
		s.service.getFunc = func(ctx context.Context, got uuid.UUID) (*inbound.RecipeDTO, error) {
			return nil, apperrors.NewRecipeNotFoundError(got.String())
		}

		rec := s.do(http.MethodGet, "/api/recipes/"+id.String(), nil)

		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("Get_ShouldRejectMalformedID", func() {
		rec := s.do(http.MethodGet, "/api/recipes/not-a-uuid", nil)

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *RecipeAPITestSuite) TestGetImage() {
	s.Run("GetImage_ShouldReturnStoredImage", func() {
		id := uuid.New()
		s.service.getFunc = func(ctx context.Context, got uuid.UUID) (*inbound.RecipeDTO, error) {
			dto := sampleDTO(got)
			dto.ImageURL = "https://images.example.com/suppe.jpg"
			dto.ImageSource = "custom"
			return dto, nil
		}

		rec := s.do(http.MethodGet, "/api/recipes/"+id.String()+"/image", nil)

		s.Equal(http.StatusOK, rec.Code)
		var result inbound.ImageResult
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
		s.Equal("https://images.example.com/suppe.jpg", result.URL)
		s.Equal("custom", result.Source)
		s.Zero(s.images.calls)
	})

	s.Run("GetImage_ShouldResolveWhenNoStoredImage", func() {
		id := uuid.New()
		s.service.getFunc = func(ctx context.Context, got uuid.UUID) (*inbound.RecipeDTO, error) {
			return sampleDTO(got), nil
		}
		s.images.result = inbound.ImageResult{URL: "https://unsplash.example.com/x.jpg", Source: "unsplash"}

		rec := s.do(http.MethodGet, "/api/recipes/"+id.String()+"/image", nil)

		s.Equal(http.StatusOK, rec.Code)
		var result inbound.ImageResult
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
		s.Equal("unsplash", result.Source)
		s.Equal(1, s.images.calls)
	})

	s.Run("GetImage_RegenerateShouldBypassStoredImage", func() {
		id := uuid.New()
		s.service.getFunc = func(ctx context.Context, got uuid.UUID) (*inbound.RecipeDTO, error) {
			dto := sampleDTO(got)
			dto.ImageURL = "https://images.example.com/old.jpg"
			dto.ImageSource = "custom"
			return dto, nil
		}
		s.images.result = inbound.ImageResult{URL: "https://unsplash.example.com/new.jpg", Source: "unsplash"}

		rec := s.do(http.MethodGet, "/api/recipes/"+id.String()+"/image?regenerate=true", nil)

		s.Equal(http.StatusOK, rec.Code)
		var result inbound.ImageResult
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
		s.Equal("https://unsplash.example.com/new.jpg", result.URL)
		s.Equal(1, s.images.calls)
	})
}

func (s *RecipeAPITestSuite) TestUpdateRecipe() {
	s.Run("Update_ShouldPassPointerFields", func() {
		id := uuid.New()
		var captured inbound.UpdateRecipeCommand
		s.service.updateFunc = func(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
			captured = cmd
			return sampleDTO(id), nil
		}

		name := "Neuer Name"
		rec := s.do(http.MethodPatch, "/api/recipes/"+id.String(), UpdateRecipeRequest{Name: &name})

		s.Equal(http.StatusOK, rec.Code)
		s.Equal(id, captured.RecipeID)
		s.Require().NotNil(captured.Name)
		s.Equal("Neuer Name", *captured.Name)
		s.Nil(captured.RecipeYield)
	})

	s.Run("Update_ShouldReturn400ForEmptyUpdate", func() {
		id := uuid.New()
		s.service.updateFunc = func(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
			return nil, apperrors.NewEmptyUpdateError()
		}

		rec := s.do(http.MethodPatch, "/api/recipes/"+id.String(), UpdateRecipeRequest{})

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *RecipeAPITestSuite) TestDeleteRecipe() {
	s.Run("Delete_ShouldReturnNoContent", func() {
		id := uuid.New()
		s.service.deleteFunc = func(ctx context.Context, got uuid.UUID) error {
			s.Equal(id, got)
			return nil
		}

		rec := s.do(http.MethodDelete, "/api/recipes/"+id.String(), nil)

		s.Equal(http.StatusNoContent, rec.Code)
	})
}

func (s *RecipeAPITestSuite) TestListRecipes() {
	s.Run("List_ShouldPassQueryParameters", func() {
		var captured inbound.ListQuery
		s.service.listFunc = func(ctx context.Context, q inbound.ListQuery) (*inbound.RecipeList, error) {
			captured = q
			return &inbound.RecipeList{Recipes: []inbound.RecipeDTO{}, Page: 2, PageSize: 5}, nil
		}

		rec := s.do(http.MethodGet, "/api/recipes/?search=suppe&tag=Vegetarisch&userId=user-1&page=2&pageSize=5", nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("suppe", captured.Search)
		s.Equal("Vegetarisch", captured.Tag)
		s.Equal("user-1", captured.UserID)
		s.Equal(2, captured.Page)
		s.Equal(5, captured.PageSize)
	})
}

func (s *RecipeAPITestSuite) TestScaledIngredients() {
	s.Run("Scaled_ShouldPassPortions", func() {
		id := uuid.New()
		s.service.scaledFunc = func(ctx context.Context, got uuid.UUID, portions int) (*inbound.ScaledIngredientsDTO, error) {
			s.Equal(6, portions)
			return &inbound.ScaledIngredientsDTO{RecipeID: got, BaseYield: 4, RequestedPortions: portions, Multiplier: 1.5}, nil
		}

		rec := s.do(http.MethodGet, "/api/recipes/"+id.String()+"/scaled?portions=6", nil)

		s.Equal(http.StatusOK, rec.Code)

		var dto inbound.ScaledIngredientsDTO
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &dto))
		s.InDelta(1.5, dto.Multiplier, 0.0001)
	})

	s.Run("Scaled_ShouldRejectMissingPortions", func() {
		id := uuid.New()
		rec := s.do(http.MethodGet, "/api/recipes/"+id.String()+"/scaled", nil)

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("Scaled_ShouldRejectZeroPortions", func() {
		id := uuid.New()
		rec := s.do(http.MethodGet, "/api/recipes/"+id.String()+"/scaled?portions=0", nil)

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *RecipeAPITestSuite) TestBringExport() {
	s.Run("Deeplink_ShouldDefaultPortionsToZero", func() {
		id := uuid.New()
		s.service.deeplinkFunc = func(ctx context.Context, got uuid.UUID, portions int) (*inbound.DeeplinkDTO, error) {
			s.Equal(0, portions)
			return &inbound.DeeplinkDTO{RecipeID: got, Deeplink: "https://api.getbring.com/rest/bringrecipes/deeplink?x=1"}, nil
		}

		rec := s.do(http.MethodGet, "/api/recipes/"+id.String()+"/bring-deeplink", nil)

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("Export_ShouldServeHTMLWithCacheHeader", func() {
		id := uuid.New()
		s.service.exportFunc = func(ctx context.Context, got uuid.UUID) (string, error) {
			return "<!DOCTYPE html>\n<html lang=\"de\"></html>", nil
		}

		rec := s.do(http.MethodGet, "/api/recipes/bring/"+id.String(), nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		s.Equal("public, max-age=3600", rec.Header().Get("Cache-Control"))
		s.Contains(rec.Body.String(), "<!DOCTYPE html>")
	})
}

func (s *RecipeAPITestSuite) TestGenerateTags() {
	s.Run("GenerateTags_ShouldSuggestWithoutApplying", func() {
		id := uuid.New()
		s.tags.tags = []string{"Suppe", "Vegetarisch"}
		s.service.getFunc = func(ctx context.Context, got uuid.UUID) (*inbound.RecipeDTO, error) {
			return sampleDTO(got), nil
		}

		rec := s.do(http.MethodPost, "/api/recipes/"+id.String()+"/generate-tags", nil)

		s.Equal(http.StatusOK, rec.Code)

		var resp GenerateTagsResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal([]string{"Suppe", "Vegetarisch"}, resp.Tags)
		s.False(resp.Applied)
		s.Nil(resp.Recipe)
	})

	s.Run("GenerateTags_ShouldApplyWhenRequested", func() {
		id := uuid.New()
		s.tags.tags = []string{"Pasta"}
		s.service.getFunc = func(ctx context.Context, got uuid.UUID) (*inbound.RecipeDTO, error) {
			return sampleDTO(got), nil
		}
		applied := false
		s.service.tagsFunc = func(ctx context.Context, got uuid.UUID, tags []string) (*inbound.RecipeDTO, error) {
			applied = true
			s.Equal([]string{"Pasta"}, tags)
			dto := sampleDTO(got)
			dto.Tags = tags
			return dto, nil
		}

		rec := s.do(http.MethodPost, "/api/recipes/"+id.String()+"/generate-tags", GenerateTagsRequest{Apply: true})

		s.Equal(http.StatusOK, rec.Code)
		s.True(applied)

		var resp GenerateTagsResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.True(resp.Applied)
		s.Require().NotNil(resp.Recipe)
		s.Equal([]string{"Pasta"}, resp.Recipe.Tags)
	})
}

func TestRecipeAPITestSuite(t *testing.T) {
	suite.Run(t, new(RecipeAPITestSuite))
}
