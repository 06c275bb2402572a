package routes

import (
	"github.com/gofiber/fiber/v2"

	"restock/handlers"
	"restock/middleware"
)

// NewApp builds the fiber application with middleware and routes installed.
func NewApp(h *handlers.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "restock",
		ErrorHandler: handlers.ErrorHandler,
	})
	middleware.Setup(app)
	SetupRoutes(app, h)
	return app
}

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/", handlers.HandleHome)
	app.Get("/version", handlers.HandleVersion)

	// --- Forecast Routes ---
	ml := app.Group("/ml")
	ml.Get("/models", h.HandleListModels)
	ml.Post("/forecast", middleware.RequireJSON, h.HandleForecast)
	ml.Post("/forecast/insight", middleware.RequireJSON, h.HandleForecastInsight)

	// --- Restock Routes ---
	app.Post("/restock", middleware.RequireJSON, h.HandleRestock)
	app.Post("/restock/auto", middleware.RequireJSON, h.HandleAutoRestock)
}
