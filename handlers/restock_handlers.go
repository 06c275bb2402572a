package handlers

import (
	"github.com/gofiber/fiber/v2"

	"restock/models"
	"restock/restock"
)

// HandleRestock decides whether to reorder from a demand figure and a stock
// level supplied by the caller.
func (h *Handler) HandleRestock(c *fiber.Ctx) error {
	var req models.RestockRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.ProductID == nil || req.CurrentStock == nil || req.PredictedDemand == nil {
		return errorResponse(c, fiber.StatusBadRequest, "product_id, current_stock and predicted_demand are required")
	}
	if *req.ProductID < 0 || *req.CurrentStock < 0 || *req.PredictedDemand < 0 {
		return errorResponse(c, fiber.StatusBadRequest, "product_id, current_stock and predicted_demand must be non-negative")
	}

	return c.JSON(restock.Decide(*req.ProductID, *req.PredictedDemand, *req.CurrentStock))
}

// HandleAutoRestock forecasts demand, looks up stock and decides in one call.
func (h *Handler) HandleAutoRestock(c *fiber.Ctx) error {
	productID, err := parseForecastRequest(c)
	if err != nil {
		return err
	}

	pf, decision, err := h.service.Restock(c.UserContext(), productID)
	if err != nil {
		return forecastError(c, err)
	}
	return c.JSON(models.AutoRestockResponse{
		Forecast: models.NewForecastResponse(pf),
		Decision: decision.Decision,
		Amount:   decision.Amount,
	})
}
