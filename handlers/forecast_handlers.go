package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"restock/insight"
	"restock/models"
	"restock/restock"
)

// parseForecastRequest returns a *fiber.Error for a bad body, which
// ErrorHandler renders as a 400.
func parseForecastRequest(c *fiber.Ctx) (int, error) {
	var req models.ForecastRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.ProductID <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "product_id must be a positive integer")
	}
	return req.ProductID, nil
}

// HandleForecast predicts the next 7 days of demand for a product.
func (h *Handler) HandleForecast(c *fiber.Ctx) error {
	productID, err := parseForecastRequest(c)
	if err != nil {
		return err
	}

	pf, err := h.service.Forecast(c.UserContext(), productID)
	if err != nil {
		return forecastError(c, err)
	}
	return c.JSON(models.NewForecastResponse(pf))
}

// HandleListModels lists the products with a trained model.
func (h *Handler) HandleListModels(c *fiber.Ctx) error {
	reg := h.service.Registry()
	return c.JSON(models.ModelsResponse{Mode: string(reg.Mode()), Products: reg.ProductIDs()})
}

// HandleForecastInsight runs the full restock pipeline and asks the AI
// narrator to explain the result.
func (h *Handler) HandleForecastInsight(c *fiber.Ctx) error {
	if h.narrator == nil {
		return errorResponse(c, fiber.StatusServiceUnavailable, insight.ErrNotConfigured.Error())
	}
	productID, err := parseForecastRequest(c)
	if err != nil {
		return err
	}

	pf, decision, err := h.service.Restock(c.UserContext(), productID)
	if err != nil {
		return forecastError(c, err)
	}

	summary := insight.Summary{
		ProductID:       pf.ProductID,
		ProductName:     pf.ProductName,
		DailyForecast:   pf.Result.DailyUnits(),
		PredictedDemand: pf.Demand(),
		CurrentStock:    restock.ResolveStock(pf.Stock),
		StockStatus:     pf.Stock.Status(),
		Decision:        decision.Decision,
		Amount:          decision.Amount,
		HistoryDays:     pf.HistoryDays,
		ModelSubstitute: pf.Model.Substituted,
	}
	analysis, err := h.narrator.Narrate(c.UserContext(), summary)
	if err != nil {
		if errors.Is(err, insight.ErrNotConfigured) {
			return errorResponse(c, fiber.StatusServiceUnavailable, err.Error())
		}
		log.Printf("Error generating insight for product %d: %v", productID, err)
		return errorResponse(c, fiber.StatusBadGateway, "Failed to generate analysis")
	}

	return c.JSON(models.InsightResponse{
		AutoRestockResponse: models.AutoRestockResponse{
			Forecast: models.NewForecastResponse(pf),
			Decision: decision.Decision,
			Amount:   decision.Amount,
		},
		Analysis: analysis,
	})
}
