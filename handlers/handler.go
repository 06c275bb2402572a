package handlers

import (
	"errors"
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"restock/forecast"
	"restock/insight"
	"restock/services"
)

// Handler serves the forecast and restock endpoints.
type Handler struct {
	service  *services.ForecastService
	narrator insight.Narrator
}

// New returns a Handler. narrator may be nil, which disables insights.
func New(service *services.ForecastService, narrator insight.Narrator) *Handler {
	return &Handler{service: service, narrator: narrator}
}

// HandleHome reports that the service is up.
func HandleHome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Demand Forecast & Restock Service Running"})
}

// HandleVersion prints the build information of the running binary.
func HandleVersion(c *fiber.Ctx) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("no build information available")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
	return c.SendString("<pre>\n" + info.String() + "</pre>\n")
}

// ErrorHandler renders errors that escaped a handler in the API error format.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code == fiber.StatusInternalServerError {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		return errorResponse(c, code, "Internal server error")
	}
	return errorResponse(c, code, err.Error())
}

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": message})
}

// forecastError maps service errors to HTTP responses.
func forecastError(c *fiber.Ctx, err error) error {
	var nf *forecast.ModelNotFoundError
	switch {
	case errors.As(err, &nf):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":             "error",
			"message":            nf.Error(),
			"available_products": nf.Available,
		})
	case errors.Is(err, forecast.ErrModelNotFound):
		return errorResponse(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, forecast.ErrInsufficientHistory):
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	log.Printf("Forecast failed: %v", err)
	return errorResponse(c, fiber.StatusInternalServerError, "Failed to compute forecast")
}
