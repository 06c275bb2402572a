// Package insight writes short plain-language summaries of demand forecasts.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrNotConfigured is returned when no generative model is available.
var ErrNotConfigured = errors.New("insight generation is not configured")

// Summary is the data a narrative is written from.
type Summary struct {
	ProductID       int    `json:"product_id"`
	ProductName     string `json:"product_name"`
	DailyForecast   []int  `json:"daily_forecast"`
	PredictedDemand int    `json:"predicted_demand_next_7_days"`
	CurrentStock    int    `json:"current_stock"`
	StockStatus     string `json:"stock_status"`
	Decision        string `json:"decision"`
	Amount          int    `json:"amount"`
	HistoryDays     int    `json:"history_days"`
	ModelSubstitute bool   `json:"model_substituted"`
}

// Narrator turns a forecast summary into text.
type Narrator interface {
	Narrate(ctx context.Context, s Summary) (string, error)
}

// Gemini narrates with a Google generative model.
type Gemini struct {
	apiKey string
	model  string
}

// NewGemini returns a Gemini narrator, or nil when apiKey is empty.
func NewGemini(apiKey, model string) *Gemini {
	if apiKey == "" {
		return nil
	}
	return &Gemini{apiKey: apiKey, model: model}
}

func (g *Gemini) Narrate(ctx context.Context, s Summary) (string, error) {
	if g == nil {
		return "", ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	prompt, err := Prompt(s)
	if err != nil {
		return "", err
	}

	resp, err := client.GenerativeModel(g.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate analysis: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("AI response contained no text")
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(fmt.Sprint(p))
	}
	return strings.TrimSpace(b.String()), nil
}

// Prompt builds the instruction sent to the model.
func Prompt(s Summary) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to serialize forecast: %w", err)
	}

	var notes []string
	if s.StockStatus == "unknown" {
		notes = append(notes, "The stock service could not be reached, so current stock was assumed to be 0.")
	}
	if s.HistoryDays < len(s.DailyForecast) {
		notes = append(notes, fmt.Sprintf("Only %d days of real sales history were available; missing days were padded.", s.HistoryDays))
	}
	if s.ModelSubstitute {
		notes = append(notes, "No model exists for this product; a model trained on another product was used.")
	}

	return fmt.Sprintf(
		`You are a helpful AI assistant for a retail business. Explain this 7-day demand forecast and restock recommendation to a store manager in at most four sentences. Mention any data quality caveats.

		Caveats: %s

		Data: %s`,
		strings.Join(notes, " "),
		string(data),
	), nil
}
