package forecast

import (
	"fmt"
	"strings"
	"time"

	"smartcanteen/models"
)

// Metric selects how a day's orders become a single value.
type Metric string

const (
	// MetricCount counts orders per day.
	MetricCount Metric = "count"
	// MetricQuantity sums line-item quantities per day.
	MetricQuantity Metric = "quantity"
)

// ParseMetric validates a metric name. An empty name yields def.
func ParseMetric(name string, def Metric) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return def, nil
	case MetricCount:
		return MetricCount, nil
	case MetricQuantity:
		return MetricQuantity, nil
	default:
		return "", fmt.Errorf("%w: unknown metric %q", ErrInvalidArgument, name)
	}
}

// SeriesBuilder turns order records into daily series.
type SeriesBuilder struct {
	loc         *time.Location
	unnamedItem string
}

// NewSeriesBuilder creates a builder that buckets days in loc. Lines without a
// name are counted under unnamedItem, or dropped when unnamedItem is empty.
func NewSeriesBuilder(loc *time.Location, unnamedItem string) *SeriesBuilder {
	if loc == nil {
		loc = time.UTC
	}
	return &SeriesBuilder{loc: loc, unnamedItem: unnamedItem}
}

// Day returns the calendar day t falls on in the builder's location, as
// midnight UTC. Series dates are civil dates, so zero-filling steps exact 24h
// days even where a DST change skips local midnight.
func (b *SeriesBuilder) Day(t time.Time) time.Time {
	y, m, d := t.In(b.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// OrderSeries aggregates every timestamped order into a daily series and
// reports how many distinct days actually had orders.
func (b *SeriesBuilder) OrderSeries(orders []models.Order, metric Metric) (models.DailySeries, int, error) {
	totals := make(map[int64]float64)
	for _, o := range orders {
		if o.CreatedAt == nil {
			continue
		}
		key := b.Day(*o.CreatedAt).Unix()
		switch metric {
		case MetricQuantity:
			totals[key] += float64(orderQuantity(o))
		default:
			totals[key]++
		}
	}
	if len(totals) == 0 {
		return nil, 0, fmt.Errorf("%w: no timestamped orders", ErrEmptyInput)
	}
	return b.fill(totals), len(totals), nil
}

// ItemDemand flattens orders into per-item daily quantities.
func (b *SeriesBuilder) ItemDemand(orders []models.Order) (*ItemDemand, error) {
	d := &ItemDemand{
		builder: b,
		daily:   make(map[string]map[int64]float64),
		totals:  make(map[string]int),
	}
	for _, o := range orders {
		if o.CreatedAt == nil {
			continue
		}
		key := b.Day(*o.CreatedAt).Unix()
		for _, line := range o.Items {
			name := line.ItemName()
			if name == "" {
				name = b.unnamedItem
			}
			qty := line.Quantity()
			if name == "" || qty < 0 {
				continue
			}
			days, ok := d.daily[name]
			if !ok {
				days = make(map[int64]float64)
				d.daily[name] = days
				d.order = append(d.order, name)
			}
			days[key] += float64(qty)
			d.totals[name] += qty
		}
	}
	if len(d.order) == 0 {
		return nil, fmt.Errorf("%w: no order items", ErrEmptyInput)
	}
	return d, nil
}

// ItemDemand holds per-item daily quantities in first-seen item order.
type ItemDemand struct {
	builder *SeriesBuilder
	order   []string
	daily   map[string]map[int64]float64
	totals  map[string]int
}

// Totals returns every item with its historical quantity, in first-seen order.
func (d *ItemDemand) Totals() []models.ItemTotal {
	out := make([]models.ItemTotal, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, models.ItemTotal{Item: name, Total: d.totals[name]})
	}
	return out
}

// Series returns the zero-filled daily series of one item, spanning that
// item's own first and last observed days.
func (d *ItemDemand) Series(item string) (models.DailySeries, error) {
	days, ok := d.daily[item]
	if !ok || len(days) == 0 {
		return nil, fmt.Errorf("%w: no history for item %q", ErrEmptyInput, item)
	}
	return d.builder.fill(days), nil
}

// fill expands sparse day totals into a contiguous series from the first to
// the last observed day, inclusive.
func (b *SeriesBuilder) fill(totals map[int64]float64) models.DailySeries {
	var first, last int64
	started := false
	for key := range totals {
		if !started || key < first {
			first = key
		}
		if !started || key > last {
			last = key
		}
		started = true
	}

	start := time.Unix(first, 0).UTC()
	end := time.Unix(last, 0).UTC()
	series := make(models.DailySeries, 0, int(end.Sub(start)/(24*time.Hour))+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		series = append(series, models.DailyPoint{Date: day, Value: totals[day.Unix()]})
	}
	return series
}

func orderQuantity(o models.Order) int {
	total := 0
	for _, line := range o.Items {
		if qty := line.Quantity(); qty > 0 {
			total += qty
		}
	}
	return total
}
