package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"smartcanteen/forecast"
	"smartcanteen/utils"
)

// Pinger reports whether the order store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ForecastHandlers serves the forecasting endpoints.
type ForecastHandlers struct {
	svc           *forecast.Service
	store         Pinger
	opts          forecast.Options
	defaultDays   int
	defaultTop    int
	healthTimeout time.Duration
}

func NewForecastHandlers(svc *forecast.Service, store Pinger, opts forecast.Options) *ForecastHandlers {
	return &ForecastHandlers{
		svc:           svc,
		store:         store,
		opts:          opts,
		defaultDays:   2,
		defaultTop:    5,
		healthTimeout: 3 * time.Second,
	}
}

// HandleForecastOrders forecasts total orders for the next days.
// GET /api/forecast/orders?days=2&metric=count
func (h *ForecastHandlers) HandleForecastOrders(c *fiber.Ctx) error {
	days, err := utils.ParseBoundedInt("days", c.Query("days"), h.defaultDays, 1, h.opts.MaxDays)
	if err != nil {
		return badRequest(c, err)
	}
	metric, err := forecast.ParseMetric(c.Query("metric"), h.opts.DefaultMetric)
	if err != nil {
		return badRequest(c, err)
	}

	log.Printf("📊 [FORECAST ORDERS] Request - Days: %d, Metric: %s", days, metric)

	result, err := h.svc.ForecastOrders(c.UserContext(), days, metric)
	if err != nil {
		return forecastError(c, "FORECAST ORDERS", err)
	}
	return c.JSON(result)
}

// HandleForecastItems predicts demand for the top items over the next days.
// GET /api/forecast/items?days=2&top=5
func (h *ForecastHandlers) HandleForecastItems(c *fiber.Ctx) error {
	days, err := utils.ParseBoundedInt("days", c.Query("days"), h.defaultDays, 1, h.opts.MaxDays)
	if err != nil {
		return badRequest(c, err)
	}
	top, err := utils.ParseBoundedInt("top", c.Query("top"), h.defaultTop, 1, h.opts.MaxTop)
	if err != nil {
		return badRequest(c, err)
	}

	log.Printf("📊 [FORECAST ITEMS] Request - Days: %d, Top: %d", days, top)

	result, err := h.svc.ForecastItems(c.UserContext(), days, top)
	if err != nil {
		return forecastError(c, "FORECAST ITEMS", err)
	}
	return c.JSON(result)
}

// HandlePopularItems ranks items by total quantity ever ordered.
// GET /api/forecast/popular?top=5
func (h *ForecastHandlers) HandlePopularItems(c *fiber.Ctx) error {
	top, err := utils.ParseBoundedInt("top", c.Query("top"), h.defaultTop, 1, h.opts.MaxTop)
	if err != nil {
		return badRequest(c, err)
	}

	result, err := h.svc.PopularItems(c.UserContext(), top)
	if err != nil {
		return forecastError(c, "POPULAR ITEMS", err)
	}
	return c.JSON(result)
}

// HandleHealth reports service and storage status.
// GET /health
func (h *ForecastHandlers) HandleHealth(c *fiber.Ctx) error {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), h.healthTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			log.Printf("❌ [HEALTH] Database ping failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "error", "message": "Database unavailable"})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
}

func forecastError(c *fiber.Ctx, tag string, err error) error {
	switch {
	case errors.Is(err, forecast.ErrInvalidArgument):
		return badRequest(c, err)
	case errors.Is(err, forecast.ErrEmptyInput):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "No orders found to train model"})
	case errors.Is(err, forecast.ErrInsufficientData):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"success": false, "message": "Not enough data to forecast"})
	default:
		log.Printf("❌ [%s] %v", tag, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to generate forecast"})
	}
}
