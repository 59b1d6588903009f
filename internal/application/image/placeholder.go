package image

import (
	"fmt"
	"net/url"
)

// placeholderPalette pairs a background with an accent color. The
// palette entry is picked from the recipe name length so the same name
// always renders the same card.
var placeholderPalette = []struct {
	background string
	accent     string
}{
	{"#FEF3C7", "#F59E0B"},
	{"#DCFCE7", "#22C55E"},
	{"#FEE2E2", "#EF4444"},
	{"#E0E7FF", "#6366F1"},
	{"#FCE7F3", "#EC4899"},
}

const maxPlaceholderText = 25

// PlaceholderSVG renders the fallback recipe card as an SVG document.
func PlaceholderSVG(recipeName string) string {
	colors := placeholderPalette[len(recipeName)%len(placeholderPalette)]

	display := recipeName
	if runes := []rune(display); len(runes) > maxPlaceholderText {
		display = string(runes[:maxPlaceholderText])
	}

	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="800" height="600" viewBox="0 0 800 600">`+
		`<rect width="800" height="600" fill="%s"/>`+
		`<circle cx="400" cy="250" r="100" fill="%s" opacity="0.2"/>`+
		`<circle cx="400" cy="250" r="70" fill="%s" opacity="0.3"/>`+
		`<text x="400" y="265" font-size="50" text-anchor="middle" fill="%s">🍽️</text>`+
		`<text x="400" y="400" font-size="28" font-weight="600" text-anchor="middle" fill="#374151">%s</text>`+
		`</svg>`,
		colors.background, colors.accent, colors.accent, colors.accent, display)
}

// PlaceholderDataURL wraps the placeholder SVG in a data URL that can
// be used directly as an image source.
func PlaceholderDataURL(recipeName string) string {
	return "data:image/svg+xml," + url.PathEscape(PlaceholderSVG(recipeName))
}
