package forecast

import (
	"context"
	"errors"
	"fmt"

	"smartcanteen/models"
)

// Model is a trained-model capability: it fits a daily series and predicts
// the next horizon days.
type Model interface {
	Predict(ctx context.Context, series models.DailySeries, horizon int) (models.Prediction, error)
}

// Method records which branch produced a forecast.
type Method string

const (
	MethodModel    Method = "model"
	MethodFallback Method = "fallback"
)

// FallbackReason explains why the mean heuristic was used.
type FallbackReason string

const (
	ReasonNone         FallbackReason = ""
	ReasonSparse       FallbackReason = "sparse_history"
	ReasonModelFailure FallbackReason = "model_failure"
)

// Policy controls when a series is modelled and how the fallback is computed.
type Policy struct {
	// MinHistory is the shortest series length handed to the model.
	MinHistory int
	// FallbackWindow is how many trailing days the fallback mean covers.
	FallbackWindow int
}

// Outcome is the forecast of one series.
type Outcome struct {
	Method Method
	Reason FallbackReason
	Values []int
	// Fitted holds in-sample model values aligned with the series; nil on fallback.
	Fitted []float64
	// ModelErr is the recovered model failure when Reason is ReasonModelFailure.
	ModelErr error
}

// Forecaster applies the model-or-fallback policy to a single series.
type Forecaster struct {
	model  Model
	policy Policy
}

func NewForecaster(model Model, policy Policy) *Forecaster {
	return &Forecaster{model: model, policy: policy}
}

// Forecast predicts horizon non-negative values for the days after the
// series' last date. Model failures never surface as errors; they produce a
// fallback Outcome instead.
func (f *Forecaster) Forecast(ctx context.Context, series models.DailySeries, horizon int) (Outcome, error) {
	if horizon <= 0 {
		return Outcome{}, fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidArgument, horizon)
	}
	if len(series) == 0 {
		return Outcome{}, fmt.Errorf("%w: empty series", ErrEmptyInput)
	}

	if !f.ShouldModel(series) {
		return f.Fallback(series, horizon, ReasonSparse), nil
	}

	out, err := f.AttemptModel(ctx, series, horizon)
	if err != nil {
		fb := f.Fallback(series, horizon, ReasonModelFailure)
		fb.ModelErr = err
		return fb, nil
	}
	return out, nil
}

// ShouldModel reports whether the series is long enough to fit.
func (f *Forecaster) ShouldModel(series models.DailySeries) bool {
	return len(series) >= f.policy.MinHistory
}

// AttemptModel runs the model branch only. Any failure, including malformed
// model output or a panic inside the model, is returned to the caller.
func (f *Forecaster) AttemptModel(ctx context.Context, series models.DailySeries, horizon int) (out Outcome, err error) {
	if f.model == nil {
		return Outcome{}, errors.New("no forecasting model configured")
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = Outcome{}, fmt.Errorf("model panicked: %v", r)
		}
	}()

	pred, err := f.model.Predict(ctx, series, horizon)
	if err != nil {
		return Outcome{}, err
	}
	if len(pred.Future) != horizon {
		return Outcome{}, fmt.Errorf("model returned %d future values, want %d", len(pred.Future), horizon)
	}
	if !allFinite(pred.Future) {
		return Outcome{}, errors.New("model returned non-finite values")
	}

	values := make([]int, horizon)
	for i, v := range pred.Future {
		values[i] = roundCount(v)
	}

	var fitted []float64
	if len(pred.Fitted) == len(series) && allFinite(pred.Fitted) {
		fitted = pred.Fitted
	}

	return Outcome{Method: MethodModel, Values: values, Fitted: fitted}, nil
}

// Fallback repeats the rounded trailing mean of the series horizon times.
func (f *Forecaster) Fallback(series models.DailySeries, horizon int, reason FallbackReason) Outcome {
	avg := meanCount(series.Values(), f.policy.FallbackWindow)
	values := make([]int, horizon)
	for i := range values {
		values[i] = avg
	}
	return Outcome{Method: MethodFallback, Reason: reason, Values: values}
}
