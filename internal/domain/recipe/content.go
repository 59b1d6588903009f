package recipe

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ContentType discriminates the entries of a recipe's ingredient list.
type ContentType string

const (
	ContentTypeIngredient     ContentType = "INGREDIENT"
	ContentTypeSectionCaption ContentType = "SECTION_CAPTION"
)

// ContentItem is one entry of the ordered ingredient list: either an
// ingredient row or a section caption that groups the rows below it.
// Which fields are meaningful depends on Type.
type ContentItem struct {
	ContentID      string
	Type           ContentType
	Position       int
	IngredientName string
	Unit           string
	Amount         *float64
	SectionName    string
}

// IsIngredient reports whether the item is an ingredient row.
func (c ContentItem) IsIngredient() bool {
	return c.Type == ContentTypeIngredient
}

// Validate checks the item against its content type.
func (c ContentItem) Validate() error {
	if c.ContentID == "" {
		return ErrContentIDMissing
	}
	if c.Position < 0 {
		return ErrNegativePosition
	}
	switch c.Type {
	case ContentTypeIngredient:
		if strings.TrimSpace(c.IngredientName) == "" {
			return ErrIngredientNameEmpty
		}
		if c.Amount != nil && *c.Amount < 0 {
			return ErrNegativeAmount
		}
	case ContentTypeSectionCaption:
		if strings.TrimSpace(c.SectionName) == "" {
			return ErrSectionNameEmpty
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownContentType, c.Type)
	}
	return nil
}

type contentItemJSON struct {
	ContentID      string          `json:"contentId"`
	ContentType    ContentType     `json:"contentType"`
	Position       int             `json:"position"`
	IngredientName string          `json:"ingredientName,omitempty"`
	Unit           string          `json:"unit,omitempty"`
	Amount         json.RawMessage `json:"amount,omitempty"`
	SectionName    string          `json:"sectionName,omitempty"`
}

// MarshalJSON encodes the item with the contentType discriminator and
// only the fields that belong to its variant.
func (c ContentItem) MarshalJSON() ([]byte, error) {
	out := contentItemJSON{
		ContentID:   c.ContentID,
		ContentType: c.Type,
		Position:    c.Position,
	}
	switch c.Type {
	case ContentTypeIngredient:
		out.IngredientName = c.IngredientName
		out.Unit = c.Unit
		if c.Amount != nil {
			raw, err := json.Marshal(*c.Amount)
			if err != nil {
				return nil, err
			}
			out.Amount = raw
		}
	case ContentTypeSectionCaption:
		out.SectionName = c.SectionName
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the discriminated form. Amounts stored as
// numeric strings are accepted; anything unparseable leaves the amount
// absent rather than failing the whole list.
func (c *ContentItem) UnmarshalJSON(data []byte) error {
	var in contentItemJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.ContentType != ContentTypeIngredient && in.ContentType != ContentTypeSectionCaption {
		return fmt.Errorf("%w: %q", ErrUnknownContentType, in.ContentType)
	}
	*c = ContentItem{
		ContentID:      in.ContentID,
		Type:           in.ContentType,
		Position:       in.Position,
		IngredientName: in.IngredientName,
		Unit:           in.Unit,
		SectionName:    in.SectionName,
	}
	if in.ContentType == ContentTypeIngredient && len(in.Amount) > 0 {
		c.Amount = parseAmount(in.Amount)
	}
	return nil
}

// parseAmount reads a JSON number or a numeric string ("2,5" included).
func parseAmount(raw json.RawMessage) *float64 {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &n
}

// SortByPosition returns a copy ordered by position. The sort is stable
// so duplicate positions keep their relative input order.
func SortByPosition(items []ContentItem) []ContentItem {
	sorted := make([]ContentItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}

// NormalizePositions re-assigns dense zero-based positions in visual
// order. Called on every structural mutation of the list.
func NormalizePositions(items []ContentItem) []ContentItem {
	sorted := SortByPosition(items)
	for i := range sorted {
		sorted[i].Position = i
	}
	return sorted
}
