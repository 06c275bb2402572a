package models

import (
	"github.com/shopspring/decimal"

	"restock/restock"
	"restock/services"
)

// daily_forecast is emitted as JSON numbers, not strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ForecastRequest is the body of the forecast endpoints.
type ForecastRequest struct {
	ProductID int `json:"product_id"`
}

// ForecastResponse reports a 7-day demand forecast.
type ForecastResponse struct {
	ProductID        int               `json:"product_id"`
	ProductName      string            `json:"product_name"`
	CurrentStock     int               `json:"current_stock"`
	StockStatus      string            `json:"stock_status"`
	PredictedDemand  int               `json:"predicted_demand_next_7_days"`
	DailyForecast    []decimal.Decimal `json:"daily_forecast"`
	HistoryDays      int               `json:"history_days"`
	ModelProductID   int               `json:"model_product_id"`
	ModelSubstituted bool              `json:"model_substituted"`
}

// NewForecastResponse converts a service result. current_stock is the value
// the restock policy would use, so it is 0 when the stock is unknown.
func NewForecastResponse(pf *services.ProductForecast) ForecastResponse {
	daily := make([]decimal.Decimal, len(pf.Result.Predictions))
	for i, y := range pf.Result.Predictions {
		daily[i] = decimal.NewFromFloat(y).Round(2)
	}
	return ForecastResponse{
		ProductID:        pf.ProductID,
		ProductName:      pf.ProductName,
		CurrentStock:     restock.ResolveStock(pf.Stock),
		StockStatus:      pf.Stock.Status(),
		PredictedDemand:  pf.Demand(),
		DailyForecast:    daily,
		HistoryDays:      pf.HistoryDays,
		ModelProductID:   pf.Model.SourceID,
		ModelSubstituted: pf.Model.Substituted,
	}
}

// RestockRequest is the body of POST /restock. Fields are pointers so that a
// missing value can be told apart from zero.
type RestockRequest struct {
	ProductID       *int `json:"product_id"`
	CurrentStock    *int `json:"current_stock"`
	PredictedDemand *int `json:"predicted_demand"`
}

// AutoRestockResponse combines a forecast with the resulting decision.
type AutoRestockResponse struct {
	Forecast ForecastResponse `json:"forecast"`
	Decision string           `json:"decision"`
	Amount   int              `json:"amount"`
}

// InsightResponse is an auto-restock result with a written analysis.
type InsightResponse struct {
	AutoRestockResponse
	Analysis string `json:"analysis"`
}

// ModelsResponse lists the products that have a trained model.
type ModelsResponse struct {
	Mode     string `json:"mode"`
	Products []int  `json:"products"`
}
