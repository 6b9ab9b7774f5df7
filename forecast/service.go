package forecast

import (
	"context"
	"fmt"
	"log"
	"time"

	"smartcanteen/models"
)

// OrderSource reads the current snapshot of stored orders.
type OrderSource interface {
	ReadOrders(ctx context.Context) ([]models.Order, error)
}

// Options configures a Service.
type Options struct {
	OrdersPolicy  Policy
	ItemsPolicy   Policy
	HistoryWindow int
	MaxDays       int
	MaxTop        int
	DefaultMetric Metric
	Location      *time.Location
	UnnamedItem   string
}

// DefaultOptions mirrors the behaviour of the canteen dashboard.
func DefaultOptions() Options {
	return Options{
		OrdersPolicy:  Policy{MinHistory: 3, FallbackWindow: 7},
		ItemsPolicy:   Policy{MinHistory: 7, FallbackWindow: 7},
		HistoryWindow: 14,
		MaxDays:       14,
		MaxTop:        49,
		DefaultMetric: MetricCount,
		Location:      time.UTC,
		UnnamedItem:   "unknown",
	}
}

// Service runs the read → build → forecast → assemble pipeline per request.
// It holds no per-request state, so one instance serves concurrent callers.
type Service struct {
	source    OrderSource
	builder   *SeriesBuilder
	orders    *Forecaster
	items     *Forecaster
	assembler Assembler
	opts      Options
}

func NewService(source OrderSource, model Model, opts Options) *Service {
	return &Service{
		source:    source,
		builder:   NewSeriesBuilder(opts.Location, opts.UnnamedItem),
		orders:    NewForecaster(model, opts.OrdersPolicy),
		items:     NewForecaster(model, opts.ItemsPolicy),
		assembler: Assembler{HistoryWindow: opts.HistoryWindow},
		opts:      opts,
	}
}

// ForecastOrders predicts the daily order volume for the next days.
func (s *Service) ForecastOrders(ctx context.Context, days int, metric Metric) (*models.OrdersForecast, error) {
	if err := s.checkDays(days); err != nil {
		return nil, err
	}
	metric, err := ParseMetric(string(metric), s.opts.DefaultMetric)
	if err != nil {
		return nil, err
	}

	orders, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	series, observed, err := s.builder.OrderSeries(orders, metric)
	if err != nil {
		return nil, err
	}
	if observed < s.opts.OrdersPolicy.MinHistory {
		return nil, fmt.Errorf("%w: %d days of orders, need %d", ErrInsufficientData, observed, s.opts.OrdersPolicy.MinHistory)
	}

	out, err := s.orders.Forecast(ctx, series, days)
	if err != nil {
		return nil, err
	}
	if out.Reason == ReasonModelFailure {
		log.Printf("⚠️  [FORECAST] Order model failed, using trailing mean: %v", out.ModelErr)
	}

	log.Printf("✅ [FORECAST] Orders forecast built from %d days (%s, metric=%s)", len(series), out.Method, metric)
	return s.assembler.Orders(series, out), nil
}

// ForecastItems predicts demand for the top historically sold items.
// A failing item falls back on its own and never aborts the batch.
func (s *Service) ForecastItems(ctx context.Context, days, top int) (*models.ItemsForecast, error) {
	if err := s.checkDays(days); err != nil {
		return nil, err
	}
	if err := s.checkTop(top); err != nil {
		return nil, err
	}

	orders, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	demand, err := s.builder.ItemDemand(orders)
	if err != nil {
		return nil, err
	}
	ranked, err := TopK(demand.Totals(), top)
	if err != nil {
		return nil, err
	}

	results := make([]models.ItemForecast, 0, len(ranked))
	for _, it := range ranked {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		series, err := demand.Series(it.Item)
		if err != nil {
			continue
		}
		out, err := s.items.Forecast(ctx, series, days)
		if err != nil {
			log.Printf("⚠️  [FORECAST] Skipping item %q: %v", it.Item, err)
			continue
		}
		if out.Reason == ReasonModelFailure {
			log.Printf("⚠️  [FORECAST] Model failed for item %q, using trailing mean: %v", it.Item, out.ModelErr)
		}
		results = append(results, models.ItemForecast{Item: it.Item, PredictedNextDays: out.Values})
	}

	log.Printf("✅ [FORECAST] Item forecast built for %d of %d items", len(results), len(demand.Totals()))
	return s.assembler.Items(results), nil
}

// PopularItems ranks items by total historical quantity.
func (s *Service) PopularItems(ctx context.Context, top int) (*models.PopularItems, error) {
	if err := s.checkTop(top); err != nil {
		return nil, err
	}

	orders, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	demand, err := s.builder.ItemDemand(orders)
	if err != nil {
		return nil, err
	}
	ranked, err := TopK(demand.Totals(), top)
	if err != nil {
		return nil, err
	}
	return s.assembler.Popular(ranked), nil
}

func (s *Service) read(ctx context.Context) ([]models.Order, error) {
	orders, err := s.source.ReadOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}

func (s *Service) checkDays(days int) error {
	if days < 1 || (s.opts.MaxDays > 0 && days > s.opts.MaxDays) {
		return fmt.Errorf("%w: days must be between 1 and %d, got %d", ErrInvalidArgument, s.opts.MaxDays, days)
	}
	return nil
}

func (s *Service) checkTop(top int) error {
	if top < 1 || (s.opts.MaxTop > 0 && top > s.opts.MaxTop) {
		return fmt.Errorf("%w: top must be between 1 and %d, got %d", ErrInvalidArgument, s.opts.MaxTop, top)
	}
	return nil
}
