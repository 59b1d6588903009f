package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiplier(t *testing.T) {
	t.Run("ScalesUpAndDown", func(t *testing.T) {
		m, err := Multiplier(4, 6)
		require.NoError(t, err)
		assert.Equal(t, 1.5, m)

		m, err = Multiplier(4, 2)
		require.NoError(t, err)
		assert.Equal(t, 0.5, m)
	})

	t.Run("SamePortions_IsIdentity", func(t *testing.T) {
		m, err := Multiplier(3, 3)
		require.NoError(t, err)
		assert.Equal(t, 1.0, m)
	})

	t.Run("RequestedZeroOrNegative_Fails", func(t *testing.T) {
		_, err := Multiplier(4, 0)
		assert.ErrorIs(t, err, ErrInvalidPortions)

		_, err = Multiplier(4, -2)
		assert.ErrorIs(t, err, ErrInvalidPortions)
	})

	t.Run("InvalidBaseYield_Fails", func(t *testing.T) {
		_, err := Multiplier(0, 4)
		assert.ErrorIs(t, err, ErrYieldOutOfRange)
	})
}

func TestScaleAmount(t *testing.T) {
	cases := []struct {
		name       string
		amount     float64
		multiplier float64
		want       float64
	}{
		{"WholeResult", 200, 1.5, 300},
		{"RoundsToTwoDecimals", 1, 1.0 / 3.0, 0.33},
		{"RoundsHalfUp", 0.125, 1, 0.13},
		{"SmallFraction", 0.1, 0.5, 0.05},
		{"Zero", 0, 2, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ScaleAmount(tc.amount, tc.multiplier))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		want   string
	}{
		{"Integer", 300, "300"},
		{"TrailingZeroTrimmed", 1.5, "1.5"},
		{"TwoDecimals", 0.33, "0.33"},
		{"WholeFloat", 2.0, "2"},
		{"Zero", 0, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatAmount(tc.amount))
		})
	}
}

func TestScaleForDisplay(t *testing.T) {
	amount := func(v float64) *float64 { return &v }

	items := []ContentItem{
		{ContentID: uuid.NewString(), Type: ContentTypeIngredient, Position: 2, IngredientName: "Salz", Unit: "Prise"},
		{ContentID: uuid.NewString(), Type: ContentTypeSectionCaption, Position: 0, SectionName: "Teig"},
		{ContentID: uuid.NewString(), Type: ContentTypeIngredient, Position: 1, IngredientName: "Mehl", Unit: "g", Amount: amount(250)},
	}

	t.Run("ScalesSortsAndFormats", func(t *testing.T) {
		views := ScaleForDisplay(items, 1.5)

		require.Len(t, views, 3)
		assert.Equal(t, ContentTypeSectionCaption, views[0].Type)
		assert.Equal(t, "Teig", views[0].SectionName)

		assert.Equal(t, "Mehl", views[1].IngredientName)
		assert.Equal(t, "375", views[1].Amount)
		assert.Equal(t, "g", views[1].Unit)

		// no amount stays empty
		assert.Equal(t, "Salz", views[2].IngredientName)
		assert.Empty(t, views[2].Amount)
	})

	t.Run("FractionalAmounts_KeepTwoDecimals", func(t *testing.T) {
		list := []ContentItem{
			{ContentID: "x", Type: ContentTypeIngredient, Position: 0, IngredientName: "Sahne", Unit: "l", Amount: amount(0.2)},
		}

		views := ScaleForDisplay(list, 1.0/3.0)

		require.Len(t, views, 1)
		assert.Equal(t, "0.07", views[0].Amount)
	})

	t.Run("EmptyList", func(t *testing.T) {
		assert.Empty(t, ScaleForDisplay(nil, 2))
	})
}
