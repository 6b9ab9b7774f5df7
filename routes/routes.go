package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"smartcanteen/handlers"
	"smartcanteen/middleware"
)

// SetupRoutes defines all the routes for the application.
// Forecast routes require a staff token when jwtSecret is set.
func SetupRoutes(app *fiber.App, h *handlers.ForecastHandlers, jwtSecret string) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Forecast API is running"})
	})
	app.Get("/health", h.HandleHealth)

	var guards []fiber.Handler
	if jwtSecret != "" {
		guards = append(guards, middleware.JWTMiddleware([]byte(jwtSecret)), middleware.StaffRequired)
	} else {
		log.Println("⚠️  JWT_SECRET is not set, forecast routes are unauthenticated")
	}

	// --- Forecast Routes ---
	forecast := app.Group("/api/forecast", guards...)
	forecast.Get("/orders", h.HandleForecastOrders)
	forecast.Get("/items", h.HandleForecastItems)
	forecast.Get("/popular", h.HandlePopularItems)
}
