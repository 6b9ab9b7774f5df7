package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	forecaster "github.com/aouyang1/go-forecaster"

	"smartcanteen/models"
)

// Local fits a Fourier-series regression on each daily series in-process.
type Local struct{}

func NewLocal() *Local {
	return &Local{}
}

// Predict fits the whole series and predicts both the training days and the
// next horizon days in a single pass.
func (l *Local) Predict(ctx context.Context, series models.DailySeries, horizon int) (pred models.Prediction, err error) {
	if horizon <= 0 {
		return pred, fmt.Errorf("horizon must be positive, got %d", horizon)
	}
	if len(series) < 2 {
		return pred, errors.New("at least two days are needed to fit")
	}
	if err := ctx.Err(); err != nil {
		return pred, err
	}

	// the library panics on some degenerate inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("forecaster panicked: %v", r)
		}
	}()

	f, err := forecaster.New(nil)
	if err != nil {
		return pred, fmt.Errorf("failed to create forecaster: %w", err)
	}

	t := toUTC(series.Dates())
	if err := f.Fit(t, series.Values()); err != nil {
		return pred, fmt.Errorf("failed to fit series: %w", err)
	}

	future := toUTC(series.FollowingDates(horizon))
	all := make([]time.Time, 0, len(t)+len(future))
	all = append(all, t...)
	all = append(all, future...)

	res, err := f.Predict(all)
	if err != nil {
		return pred, fmt.Errorf("failed to predict: %w", err)
	}
	if len(res.Forecast) != len(all) {
		return pred, fmt.Errorf("forecaster returned %d points, want %d", len(res.Forecast), len(all))
	}

	pred.Fitted = append([]float64(nil), res.Forecast[:len(t)]...)
	pred.Future = append([]float64(nil), res.Forecast[len(t):]...)
	return pred, nil
}

func toUTC(ts []time.Time) []time.Time {
	out := make([]time.Time, len(ts))
	for i, t := range ts {
		out[i] = t.UTC()
	}
	return out
}
