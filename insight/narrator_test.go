package insight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiWithoutKey(t *testing.T) {
	g := NewGemini("", "gemini-1.5-pro")
	assert.Nil(t, g)

	_, err := g.Narrate(context.Background(), Summary{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPromptIncludesCaveats(t *testing.T) {
	p, err := Prompt(Summary{
		ProductID:       3,
		ProductName:     "Rice 5kg",
		DailyForecast:   []int{1, 1, 1, 1, 1, 1, 1},
		PredictedDemand: 7,
		StockStatus:     "unknown",
		Decision:        "ORDER",
		Amount:          7,
		HistoryDays:     2,
		ModelSubstitute: true,
	})
	require.NoError(t, err)

	assert.Contains(t, p, `"product_name":"Rice 5kg"`)
	assert.Contains(t, p, "assumed to be 0")
	assert.Contains(t, p, "Only 2 days")
	assert.Contains(t, p, "trained on another product")
}

func TestPromptWithoutCaveats(t *testing.T) {
	p, err := Prompt(Summary{
		DailyForecast: []int{2, 2, 2, 2, 2, 2, 2},
		StockStatus:   "known",
		HistoryDays:   7,
	})
	require.NoError(t, err)
	assert.NotContains(t, p, "assumed to be 0")
	assert.NotContains(t, p, "padded")
}
