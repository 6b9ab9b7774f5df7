package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"smartcanteen/config"
	"smartcanteen/database"
	"smartcanteen/forecast"
	"smartcanteen/handlers"
	"smartcanteen/model"
	"smartcanteen/routes"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal(err)
	}

	// Initialize database
	store, err := database.Open(context.Background(), cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	var predictor forecast.Model
	switch cfg.ModelBackend {
	case "remote":
		log.Printf("🔮 Using remote prediction service at %s", cfg.ModelURL)
		predictor = model.NewRemote(cfg.ModelURL, cfg.ModelTimeout, model.Seasonality{
			Weekly: cfg.Forecast.WeeklySeasonality,
			Yearly: cfg.Forecast.YearlySeasonality,
		})
	default:
		log.Println("🔮 Using in-process forecaster")
		predictor = model.NewLocal()
	}

	opts := forecastOptions(cfg, loc)
	svc := forecast.NewService(store, predictor, opts)
	h := handlers.NewForecastHandlers(svc, store, opts)

	app := fiber.New(appConfig(cfg))

	// Add middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowMethods: "GET"}))

	// Setup routes
	routes.SetupRoutes(app, h, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s (%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}

// appConfig keeps the startup banner out of production logs.
func appConfig(cfg *config.Config) fiber.Config {
	return fiber.Config{
		AppName:               "Smart Canteen Forecast",
		DisableStartupMessage: cfg.Environment == "production",
	}
}

func forecastOptions(cfg *config.Config, loc *time.Location) forecast.Options {
	p := cfg.Forecast
	return forecast.Options{
		OrdersPolicy:  forecast.Policy{MinHistory: p.OrdersMinHistory, FallbackWindow: p.FallbackWindow},
		ItemsPolicy:   forecast.Policy{MinHistory: p.ItemsMinHistory, FallbackWindow: p.FallbackWindow},
		HistoryWindow: p.HistoryWindow,
		MaxDays:       p.MaxDays,
		MaxTop:        p.MaxTop,
		DefaultMetric: forecast.Metric(p.OrdersMetric),
		Location:      loc,
		UnnamedItem:   p.UnnamedItem,
	}
}
