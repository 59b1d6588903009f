package recipe

import (
	"math"
	"strconv"
	"strings"
)

// DisplayItem is a content item prepared for rendering: amounts are
// already scaled and formatted as strings.
type DisplayItem struct {
	ContentID      string      `json:"contentId"`
	Type           ContentType `json:"contentType"`
	Position       int         `json:"position"`
	IngredientName string      `json:"ingredientName,omitempty"`
	Unit           string      `json:"unit,omitempty"`
	Amount         string      `json:"amount,omitempty"`
	SectionName    string      `json:"sectionName,omitempty"`
}

// Multiplier computes the scaling factor for a requested portion count.
func Multiplier(baseYield, requestedYield int) (float64, error) {
	if baseYield < minYield {
		return 0, ErrYieldOutOfRange
	}
	if requestedYield <= 0 {
		return 0, ErrInvalidPortions
	}
	return float64(requestedYield) / float64(baseYield), nil
}

// ScaleAmount multiplies an amount and rounds to two decimal places.
func ScaleAmount(amount, multiplier float64) float64 {
	return math.Round(amount*multiplier*100) / 100
}

// FormatAmount renders an amount as an integer when whole, otherwise
// with up to two decimals and trailing zeros trimmed.
func FormatAmount(amount float64) string {
	if amount == math.Trunc(amount) {
		return strconv.FormatInt(int64(amount), 10)
	}
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// ScaleForDisplay scales every ingredient amount by the given multiplier
// and returns the list in position order. Section captions and
// ingredients without amounts pass through unchanged.
func ScaleForDisplay(items []ContentItem, multiplier float64) []DisplayItem {
	sorted := SortByPosition(items)
	out := make([]DisplayItem, 0, len(sorted))
	for _, item := range sorted {
		view := DisplayItem{
			ContentID: item.ContentID,
			Type:      item.Type,
			Position:  item.Position,
		}
		switch item.Type {
		case ContentTypeSectionCaption:
			view.SectionName = item.SectionName
		case ContentTypeIngredient:
			view.IngredientName = item.IngredientName
			view.Unit = item.Unit
			if item.Amount != nil {
				view.Amount = FormatAmount(ScaleAmount(*item.Amount, multiplier))
			}
		}
		out = append(out, view)
	}
	return out
}
