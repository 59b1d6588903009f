// Package image resolves a picture for a recipe. It tries an AI
// translated photo search first, then a dictionary translated search,
// and finally falls back to a generated SVG placeholder so every
// recipe always has an image.
package image

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/weemeal/server/internal/ports/inbound"
	"github.com/weemeal/server/internal/ports/outbound"
)

// Service implements the image resolution pipeline
type Service struct {
	translator outbound.Translator
	photos     outbound.PhotoSearcher
	logger     *zap.Logger
}

// NewService creates a new image service
func NewService(translator outbound.Translator, photos outbound.PhotoSearcher, logger *zap.Logger) inbound.ImageService {
	return &Service{
		translator: translator,
		photos:     photos,
		logger:     logger.Named("image-service"),
	}
}

// Resolve finds an image for a recipe name. It never fails: when no
// photo provider produces a hit the result is a generated placeholder.
func (s *Service) Resolve(ctx context.Context, recipeName string) inbound.ImageResult {
	for _, query := range s.searchQueries(ctx, recipeName) {
		if s.photos == nil || !s.photos.Enabled() {
			break
		}
		photo, err := s.photos.SearchPhoto(ctx, query)
		if err != nil {
			s.logger.Warn("Photo search failed",
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}
		if photo != nil {
			return inbound.ImageResult{
				URL:         photo.URL,
				Source:      "unsplash",
				Attribution: photo.Attribution,
			}
		}
	}

	return inbound.ImageResult{
		URL:    PlaceholderDataURL(recipeName),
		Source: "placeholder",
	}
}

// searchQueries returns the photo search queries to try, best first.
// The AI translation comes first when it is available and actually
// produced something different from the input.
func (s *Service) searchQueries(ctx context.Context, recipeName string) []string {
	dictQuery := TranslateDishName(recipeName)
	queries := make([]string, 0, 2)

	if s.translator != nil && s.translator.Enabled() {
		translated, err := s.translator.TranslateDishName(ctx, recipeName)
		if err != nil {
			s.logger.Warn("AI translation failed", zap.Error(err))
		} else if translated != "" && !strings.EqualFold(translated, recipeName) {
			queries = append(queries, translated+" food delicious")
		}
	}

	if len(queries) == 0 || queries[0] != dictQuery {
		queries = append(queries, dictQuery)
	}
	return queries
}
