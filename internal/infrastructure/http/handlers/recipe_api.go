// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/weemeal/server/internal/domain/recipe"
	"github.com/weemeal/server/internal/ports/inbound"
	apperrors "github.com/weemeal/server/pkg/errors"
)

// RecipeAPIHandlers handles recipe REST API requests
type RecipeAPIHandlers struct {
	recipeService inbound.RecipeService
	imageService  inbound.ImageService
	tagService    inbound.TagService
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewRecipeAPIHandlers creates a new recipe API handlers instance
func NewRecipeAPIHandlers(
	recipeService inbound.RecipeService,
	imageService inbound.ImageService,
	tagService inbound.TagService,
	logger *zap.Logger,
) *RecipeAPIHandlers {
	return &RecipeAPIHandlers{
		recipeService: recipeService,
		imageService:  imageService,
		tagService:    tagService,
		validate:      validator.New(),
		logger:        logger,
	}
}

// CreateRecipeRequest represents a recipe creation request
type CreateRecipeRequest struct {
	Name         string               `json:"name" validate:"required,min=1,max=200"`
	RecipeYield  int                  `json:"recipeYield" validate:"required,min=1,max=100"`
	Instructions string               `json:"instructions"`
	Content      []recipe.ContentItem `json:"content"`
	Tags         []string             `json:"tags" validate:"max=10"`
	Notes        string               `json:"notes" validate:"max=5000"`
	Source       *SourceRequest       `json:"source"`
	UserID       string               `json:"userId" validate:"omitempty,max=64"`
	ResolveImage bool                 `json:"resolveImage"`
}

// UpdateRecipeRequest represents a partial recipe update request
type UpdateRecipeRequest struct {
	Name         *string               `json:"name" validate:"omitempty,min=1,max=200"`
	RecipeYield  *int                  `json:"recipeYield" validate:"omitempty,min=1,max=100"`
	Instructions *string               `json:"instructions"`
	Content      *[]recipe.ContentItem `json:"content"`
	Tags         *[]string             `json:"tags" validate:"omitempty,max=10"`
}

// SourceRequest represents a recipe source in requests
type SourceRequest struct {
	Type      string `json:"type" validate:"required,oneof=book url"`
	BookTitle string `json:"bookTitle" validate:"max=200"`
	BookPage  string `json:"bookPage" validate:"max=50"`
	URL       string `json:"url" validate:"max=2000"`
}

// NotesRequest represents a notes update request
type NotesRequest struct {
	Notes string `json:"notes" validate:"max=5000"`
}

// ImageRequest represents a custom image request
type ImageRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url,max=2000"`
}

// TagsRequest represents a tag replacement request
type TagsRequest struct {
	Tags []string `json:"tags" validate:"required,max=10"`
}

// GenerateTagsRequest asks for tag suggestions
type GenerateTagsRequest struct {
	Apply bool `json:"apply"`
}

// GenerateTagsResponse carries suggested tags
type GenerateTagsResponse struct {
	Tags    []string           `json:"tags"`
	Applied bool               `json:"applied"`
	Recipe  *inbound.RecipeDTO `json:"recipe,omitempty"`
}

// ListRecipes handles GET /api/recipes
func (h *RecipeAPIHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	query := inbound.ListQuery{
		Search: r.URL.Query().Get("search"),
		Tag:    r.URL.Query().Get("tag"),
		UserID: r.URL.Query().Get("userId"),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		query.Page = page
	}
	if size, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil {
		query.PageSize = size
	}

	list, err := h.recipeService.ListRecipes(r.Context(), query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, list)
}

// CreateRecipe handles POST /api/recipes
func (h *RecipeAPIHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req CreateRecipeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cmd := inbound.CreateRecipeCommand{
		Name:         req.Name,
		RecipeYield:  req.RecipeYield,
		Instructions: req.Instructions,
		Content:      req.Content,
		Tags:         req.Tags,
		Notes:        req.Notes,
		Source:       sourceFromRequest(req.Source),
		UserID:       req.UserID,
		ResolveImage: req.ResolveImage,
	}

	dto, err := h.recipeService.CreateRecipe(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, dto)
}

// GetRecipe handles GET /api/recipes/{id}
func (h *RecipeAPIHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	dto, err := h.recipeService.GetRecipeByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// UpdateRecipe handles PATCH /api/recipes/{id}
func (h *RecipeAPIHandlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cmd := inbound.UpdateRecipeCommand{
		RecipeID:     id,
		Name:         req.Name,
		RecipeYield:  req.RecipeYield,
		Instructions: req.Instructions,
		Content:      req.Content,
		Tags:         req.Tags,
	}

	dto, err := h.recipeService.UpdateRecipe(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// DeleteRecipe handles DELETE /api/recipes/{id}
func (h *RecipeAPIHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateNotes handles PATCH /api/recipes/{id}/notes
func (h *RecipeAPIHandlers) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	var req NotesRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	dto, err := h.recipeService.UpdateNotes(r.Context(), id, req.Notes)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// UpdateSource handles PUT /api/recipes/{id}/source.
// A null body clears the source.
func (h *RecipeAPIHandlers) UpdateSource(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	var req *SourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, apperrors.NewBadRequestError("Invalid JSON payload"))
		return
	}
	if req != nil {
		if err := h.validate.Struct(req); err != nil {
			h.writeError(w, r, apperrors.NewValidationFailedError(err))
			return
		}
	}

	dto, err := h.recipeService.UpdateSource(r.Context(), id, sourceFromRequest(req))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// SetImage handles PUT /api/recipes/{id}/image.
// An empty body triggers automatic image resolution.
func (h *RecipeAPIHandlers) SetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	imageURL := ""
	if r.ContentLength != 0 {
		var req ImageRequest
		if !h.decodeAndValidate(w, r, &req) {
			return
		}
		imageURL = req.ImageURL
	}

	dto, err := h.recipeService.SetImage(r.Context(), id, imageURL)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// GetImage handles GET /api/recipes/{id}/image. It returns the stored
// image when one exists; otherwise, or when regenerate=true, it runs
// the resolution pipeline without persisting the result.
func (h *RecipeAPIHandlers) GetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	dto, err := h.recipeService.GetRecipeByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	regenerate := r.URL.Query().Get("regenerate") == "true"
	if dto.ImageURL != "" && !regenerate {
		h.writeJSON(w, http.StatusOK, inbound.ImageResult{
			URL:    dto.ImageURL,
			Source: dto.ImageSource,
		})
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = dto.Name
	}

	h.writeJSON(w, http.StatusOK, h.imageService.Resolve(r.Context(), name))
}

// RemoveImage handles DELETE /api/recipes/{id}/image
func (h *RecipeAPIHandlers) RemoveImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	dto, err := h.recipeService.RemoveImage(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// UpdateTags handles PUT /api/recipes/{id}/tags
func (h *RecipeAPIHandlers) UpdateTags(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	var req TagsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	dto, err := h.recipeService.ApplyTags(r.Context(), id, req.Tags)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// GenerateTags handles POST /api/recipes/{id}/generate-tags
func (h *RecipeAPIHandlers) GenerateTags(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	var req GenerateTagsRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, r, apperrors.NewBadRequestError("Invalid JSON payload"))
			return
		}
	}

	dto, err := h.recipeService.GetRecipeByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	ingredientNames := make([]string, 0, len(dto.Content))
	for _, item := range dto.Content {
		if item.IsIngredient() {
			ingredientNames = append(ingredientNames, item.IngredientName)
		}
	}

	tags := h.tagService.Suggest(r.Context(), dto.Name, ingredientNames)

	resp := GenerateTagsResponse{Tags: tags}
	if req.Apply {
		updated, err := h.recipeService.ApplyTags(r.Context(), id, tags)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		resp.Applied = true
		resp.Recipe = updated
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// ScaledIngredients handles GET /api/recipes/{id}/scaled?portions=N
func (h *RecipeAPIHandlers) ScaledIngredients(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	portions, err := strconv.Atoi(r.URL.Query().Get("portions"))
	if err != nil || portions < 1 {
		h.writeError(w, r, apperrors.NewBadRequestError("portions must be a positive integer"))
		return
	}

	dto, err := h.recipeService.ScaledIngredients(r.Context(), id, portions)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// Deeplink handles GET /api/recipes/{id}/bring-deeplink?portions=N
func (h *RecipeAPIHandlers) Deeplink(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	portions := 0
	if raw := r.URL.Query().Get("portions"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.writeError(w, r, apperrors.NewBadRequestError("portions must be a positive integer"))
			return
		}
		portions = parsed
	}

	dto, err := h.recipeService.Deeplink(r.Context(), id, portions)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// ExportDocument handles GET /api/recipes/bring/{id}. Bring! fetches
// this HTML document and reads the embedded schema.org markup.
func (h *RecipeAPIHandlers) ExportDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	doc, err := h.recipeService.ExportDocument(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		h.logger.Error("Failed to write export document", zap.Error(err))
	}
}

func (h *RecipeAPIHandlers) recipeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, apperrors.NewBadRequestError("Invalid recipe ID"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *RecipeAPIHandlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.writeError(w, r, apperrors.NewBadRequestError("Invalid JSON payload"))
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, apperrors.NewValidationFailedError(err))
		return false
	}
	return true
}

func sourceFromRequest(req *SourceRequest) *inbound.SourceDTO {
	if req == nil {
		return nil
	}
	return &inbound.SourceDTO{
		Type:      req.Type,
		BookTitle: req.BookTitle,
		BookPage:  req.BookPage,
		URL:       req.URL,
	}
}

// writeJSON writes a JSON response
func (h *RecipeAPIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps an error to the API error response format
func (h *RecipeAPIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		h.logger.Error("Unhandled error", zap.Error(err))
		appErr = apperrors.NewInternalError("An unexpected error occurred", err)
	}

	requestID := chimiddleware.GetReqID(r.Context())
	h.writeJSON(w, appErr.StatusCode(), apperrors.ToErrorResponse(appErr, requestID))
}
