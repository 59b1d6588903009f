package bring

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/weemeal/server/internal/domain/recipe"
)

// schemaRecipe is the schema.org/Recipe JSON-LD payload Bring! parses.
type schemaRecipe struct {
	Context            string   `json:"@context"`
	Type               string   `json:"@type"`
	Name               string   `json:"name"`
	RecipeYield        string   `json:"recipeYield"`
	RecipeIngredient   []string `json:"recipeIngredient"`
	RecipeInstructions string   `json:"recipeInstructions"`
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// IngredientLines renders the recipe's ingredient rows as plain text
// lines in position order. Section captions are skipped.
func IngredientLines(r *recipe.Recipe) []string {
	items := recipe.SortByPosition(r.Content())
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if !item.IsIngredient() {
			continue
		}
		parts := make([]string, 0, 3)
		if item.Amount != nil {
			// Stored amounts are rendered as-is, without the display
			// rounding the scaling view applies.
			parts = append(parts, strconv.FormatFloat(*item.Amount, 'f', -1, 64))
		}
		if item.Unit != "" {
			parts = append(parts, item.Unit)
		}
		parts = append(parts, item.IngredientName)
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}

// RenderDocument produces the HTML page Bring! imports from. The page
// carries the machine readable JSON-LD block plus a human readable
// rendering of the same data.
func RenderDocument(r *recipe.Recipe) (string, error) {
	ingredients := IngredientLines(r)

	ld, err := json.MarshalIndent(schemaRecipe{
		Context:            "https://schema.org",
		Type:               "Recipe",
		Name:               r.Name(),
		RecipeYield:        strconv.Itoa(r.RecipeYield()),
		RecipeIngredient:   ingredients,
		RecipeInstructions: r.Instructions(),
	}, "", "  ")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"de\">\n")
	b.WriteString("<head>\n")
	b.WriteString("    <meta charset=\"UTF-8\">\n")
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("    <title>" + htmlEscaper.Replace(r.Name()) + "</title>\n")
	b.WriteString("    <script type=\"application/ld+json\">\n")
	b.Write(ld)
	b.WriteString("\n    </script>\n")
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	b.WriteString("    <h1>" + htmlEscaper.Replace(r.Name()) + "</h1>\n")
	b.WriteString("    <p>Portionen: " + strconv.Itoa(r.RecipeYield()) + "</p>\n")
	b.WriteString("    <h2>Zutaten</h2>\n")
	b.WriteString("    <ul>\n")
	for _, line := range ingredients {
		b.WriteString("        <li>" + htmlEscaper.Replace(line) + "</li>\n")
	}
	b.WriteString("    </ul>\n")
	b.WriteString("    <h2>Zubereitung</h2>\n")
	b.WriteString("    <div>" + htmlEscaper.Replace(r.Instructions()) + "</div>\n")
	b.WriteString("</body>\n")
	b.WriteString("</html>\n")

	return b.String(), nil
}
