package forecast

import (
	"context"
	"errors"
	"time"

	"smartcanteen/models"
)

type stubSource struct {
	orders []models.Order
	err    error
	reads  int
}

func (s *stubSource) ReadOrders(ctx context.Context) ([]models.Order, error) {
	s.reads++
	return s.orders, s.err
}

// stubModel predicts a constant for every future day and echoes the input as fitted values.
type stubModel struct {
	value  float64
	err    error
	fail   map[int]bool // fail on series of these lengths
	panics map[int]bool // panic on series of these lengths
	calls  int
	fitted bool
}

func (m *stubModel) Predict(ctx context.Context, series models.DailySeries, horizon int) (models.Prediction, error) {
	m.calls++
	if m.err != nil {
		return models.Prediction{}, m.err
	}
	if m.panics[len(series)] {
		panic("index out of range")
	}
	if m.fail[len(series)] {
		return models.Prediction{}, errors.New("singular matrix")
	}
	future := make([]float64, horizon)
	for i := range future {
		future[i] = m.value
	}
	pred := models.Prediction{Future: future}
	if m.fitted {
		pred.Fitted = series.Values()
	}
	return pred, nil
}

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func at(s string, hour int) *time.Time {
	t := day(s).Add(time.Duration(hour) * time.Hour)
	return &t
}

func str(s string) *string { return &s }

func qty(n int) *int { return &n }

func line(name string, n int) models.LineItem {
	return models.LineItem{Name: str(name), Qty: qty(n)}
}

func order(ts *time.Time, items ...models.LineItem) models.Order {
	return models.Order{CreatedAt: ts, Items: items}
}

func seriesOf(start string, values ...float64) models.DailySeries {
	first := day(start)
	out := make(models.DailySeries, len(values))
	for i, v := range values {
		out[i] = models.DailyPoint{Date: first.AddDate(0, 0, i), Value: v}
	}
	return out
}
