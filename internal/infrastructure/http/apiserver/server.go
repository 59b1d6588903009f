// Package apiserver provides the JSON API HTTP server implementation
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/weemeal/server/internal/infrastructure/config"
	"github.com/weemeal/server/internal/infrastructure/http/handlers"
	"github.com/weemeal/server/internal/infrastructure/http/middleware"
	"github.com/weemeal/server/internal/infrastructure/monitoring"
	"github.com/weemeal/server/internal/ports/inbound"
	"github.com/weemeal/server/pkg/healthcheck"
)

// APIServer serves the recipe JSON API and the Bring! export
type APIServer struct {
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
	router  *chi.Mux
	metrics *monitoring.MetricsCollector
	health  *healthcheck.HealthCheck
}

// NewAPIServer creates a new API server instance
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	recipeService inbound.RecipeService,
	imageService inbound.ImageService,
	tagService inbound.TagService,
	metrics *monitoring.MetricsCollector,
	health *healthcheck.HealthCheck,
) *APIServer {
	server := &APIServer{
		config:  cfg,
		logger:  log,
		metrics: metrics,
		health:  health,
	}

	server.router = server.setupRoutes(recipeService, imageService, tagService)
	server.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        server.router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return server
}

// setupRoutes configures the API routes
func (s *APIServer) setupRoutes(recipeService inbound.RecipeService, imageService inbound.ImageService, tagService inbound.TagService) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	r.Use(middleware.RateLimit(s.config.RateLimit))
	r.Use(s.metrics.HTTPMiddleware())
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))

	r.Get("/health", s.health.Handler())
	r.Handle("/metrics", s.metrics.Handler())

	h := handlers.NewRecipeAPIHandlers(recipeService, imageService, tagService, s.logger)

	r.Route("/api/recipes", func(r chi.Router) {
		// The Bring! export serves HTML, so it stays outside the
		// JSON content type enforcement.
		r.Get("/bring/{id}", h.ExportDocument)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JSONOnly())

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
	})

	return r
}

// Router returns the configured router, mainly for tests
func (s *APIServer) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *APIServer) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
	)

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	return s.server.Shutdown(ctx)
}
