package image

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/weemeal/server/internal/ports/outbound"
)

type stubTranslator struct {
	result  string
	err     error
	enabled bool
	calls   int
}

func (s *stubTranslator) TranslateDishName(ctx context.Context, name string) (string, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubTranslator) Enabled() bool { return s.enabled }

type stubPhotoSearcher struct {
	photos  map[string]*outbound.Photo
	err     error
	enabled bool
	queries []string
}

func (s *stubPhotoSearcher) SearchPhoto(ctx context.Context, query string) (*outbound.Photo, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.photos[query], nil
}

func (s *stubPhotoSearcher) Enabled() bool { return s.enabled }

func TestTranslateDishName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"CompoundBeforeParts", "Kartoffelsalat", "potato salad food delicious"},
		{"CasseroleCompound", "Nudelauflauf", "pasta casserole baked food delicious"},
		{"MultipleWords", "Bratkartoffeln mit Speck", "fried potatoes with bacon food delicious"},
		{"StripsPunctuationAndDigits", "Bratkartoffeln mit Speck (2024)!", "fried potatoes with bacon food delicious"},
		{"UnknownWordsPassThrough", "Shakshuka", "shakshuka food delicious"},
		{"SoupSuffix", "Linsensuppe", "lentil soup food delicious"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TranslateDishName(tc.input))
		})
	}
}

func TestPlaceholder(t *testing.T) {
	t.Run("DeterministicPaletteByNameLength", func(t *testing.T) {
		assert.Equal(t, PlaceholderSVG("Suppe"), PlaceholderSVG("Suppe"))
		// 5 chars and 10 chars pick the same palette slot
		a := PlaceholderSVG("abcde")
		b := PlaceholderSVG("abcdefghij")
		assert.Equal(t, colorOf(a), colorOf(b))
	})

	t.Run("LongNamesAreTruncated", func(t *testing.T) {
		name := strings.Repeat("x", 40)
		svg := PlaceholderSVG(name)
		assert.NotContains(t, svg, name)
		assert.Contains(t, svg, strings.Repeat("x", 25))
	})

	t.Run("DataURLIsEncoded", func(t *testing.T) {
		u := PlaceholderDataURL("Käsespätzle")
		assert.True(t, strings.HasPrefix(u, "data:image/svg+xml,"))
		assert.NotContains(t, u, " ")
		assert.NotContains(t, u, "\"")
	})
}

func colorOf(svg string) string {
	idx := strings.Index(svg, `fill="`)
	return svg[idx+6 : idx+13]
}

func TestServiceResolve(t *testing.T) {
	logger := zap.NewNop()

	t.Run("AITranslationQueryPreferred", func(t *testing.T) {
		translator := &stubTranslator{result: "lentil stew", enabled: true}
		photos := &stubPhotoSearcher{
			enabled: true,
			photos: map[string]*outbound.Photo{
				"lentil stew food delicious": {URL: "https://images.example/1.jpg", Attribution: "Photo by A on Unsplash"},
			},
		}
		svc := NewService(translator, photos, logger)

		result := svc.Resolve(context.Background(), "Linseneintopf")

		assert.Equal(t, "https://images.example/1.jpg", result.URL)
		assert.Equal(t, "unsplash", result.Source)
		assert.Equal(t, "Photo by A on Unsplash", result.Attribution)
		require.Len(t, photos.queries, 1)
	})

	t.Run("FallsBackToDictionaryQuery", func(t *testing.T) {
		translator := &stubTranslator{result: "", enabled: true}
		photos := &stubPhotoSearcher{
			enabled: true,
			photos: map[string]*outbound.Photo{
				"potato soup food delicious": {URL: "https://images.example/2.jpg"},
			},
		}
		svc := NewService(translator, photos, logger)

		result := svc.Resolve(context.Background(), "Kartoffelsuppe")

		assert.Equal(t, "https://images.example/2.jpg", result.URL)
		assert.Equal(t, []string{"potato soup food delicious"}, photos.queries)
	})

	t.Run("TranslationEqualToInput_IsSkipped", func(t *testing.T) {
		translator := &stubTranslator{result: "pizza", enabled: true}
		photos := &stubPhotoSearcher{enabled: true}
		svc := NewService(translator, photos, logger)

		svc.Resolve(context.Background(), "Pizza")

		assert.Equal(t, []string{"pizza food delicious"}, photos.queries)
	})

	t.Run("NoPhotoHit_YieldsPlaceholder", func(t *testing.T) {
		translator := &stubTranslator{enabled: false}
		photos := &stubPhotoSearcher{enabled: true}
		svc := NewService(translator, photos, logger)

		result := svc.Resolve(context.Background(), "Mondgericht")

		assert.Equal(t, "placeholder", result.Source)
		assert.True(t, strings.HasPrefix(result.URL, "data:image/svg+xml,"))
		assert.Empty(t, result.Attribution)
	})

	t.Run("SearchErrorFallsThrough", func(t *testing.T) {
		photos := &stubPhotoSearcher{enabled: true, err: errors.New("rate limited")}
		svc := NewService(nil, photos, logger)

		result := svc.Resolve(context.Background(), "Gulasch")

		assert.Equal(t, "placeholder", result.Source)
	})

	t.Run("DisabledSearcher_SkipsStraightToPlaceholder", func(t *testing.T) {
		photos := &stubPhotoSearcher{enabled: false}
		svc := NewService(nil, photos, logger)

		result := svc.Resolve(context.Background(), "Brot")

		assert.Equal(t, "placeholder", result.Source)
		assert.Empty(t, photos.queries)
	})
}
