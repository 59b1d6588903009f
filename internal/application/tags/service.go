// Package tags suggests German tags for a recipe. An AI suggester is
// consulted first; when it is unavailable or fails, a keyword
// heuristic over the name and ingredient list takes over.
package tags

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/weemeal/server/internal/ports/inbound"
	"github.com/weemeal/server/internal/ports/outbound"
)

const (
	maxAITags       = 8
	maxFallbackTags = 6
	maxTagLength    = 25
)

// Service implements tag suggestion
type Service struct {
	suggester outbound.TagSuggester
	logger    *zap.Logger
}

// NewService creates a new tag service
func NewService(suggester outbound.TagSuggester, logger *zap.Logger) inbound.TagService {
	return &Service{
		suggester: suggester,
		logger:    logger.Named("tag-service"),
	}
}

// Suggest returns tag suggestions for a recipe. The result is never
// empty: the fallback always proposes at least a course tag.
func (s *Service) Suggest(ctx context.Context, recipeName string, ingredientNames []string) []string {
	if s.suggester != nil && s.suggester.Enabled() {
		suggested, err := s.suggester.SuggestTags(ctx, recipeName, ingredientNames)
		if err != nil {
			s.logger.Warn("AI tag suggestion failed", zap.Error(err))
		} else if cleaned := sanitize(suggested, maxAITags); len(cleaned) > 0 {
			return cleaned
		}
	}
	return fallbackTags(recipeName, ingredientNames)
}

// sanitize trims suggestions, drops empty and oversized ones and caps
// the list length.
func sanitize(tags []string, limit int) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || len([]rune(tag)) > maxTagLength {
			continue
		}
		out = append(out, tag)
		if len(out) == limit {
			break
		}
	}
	return out
}

var dishTypeKeywords = []struct {
	keywords []string
	tag      string
}{
	{[]string{"suppe"}, "Suppe"},
	{[]string{"salat"}, "Salat"},
	{[]string{"auflauf"}, "Auflauf"},
	{[]string{"pasta", "nudel"}, "Pasta"},
	{[]string{"kuchen", "torte"}, "Dessert"},
	{[]string{"brot"}, "Brot"},
}

var (
	meatKeywords = []string{"fleisch", "huhn", "hähnchen", "rind", "schwein", "hack"}
	fishKeywords = []string{"fisch", "lachs", "thunfisch", "garnelen"}
)

// fallbackTags derives tags from the recipe name and ingredient names
// without any external service.
func fallbackTags(recipeName string, ingredientNames []string) []string {
	var out []string
	name := strings.ToLower(recipeName)

	for _, entry := range dishTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(name, kw) {
				out = append(out, entry.tag)
				break
			}
		}
	}

	ingredients := strings.ToLower(strings.Join(ingredientNames, " "))
	switch {
	case containsAny(ingredients, meatKeywords):
		out = append(out, "Fleisch")
	case containsAny(ingredients, fishKeywords):
		out = append(out, "Fisch")
	default:
		out = append(out, "Vegetarisch")
	}

	if len(out) == 0 {
		out = []string{"Hauptgericht"}
	}
	if len(out) > maxFallbackTags {
		out = out[:maxFallbackTags]
	}
	return out
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
