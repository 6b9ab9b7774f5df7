package forecast

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcanteen/models"
)

func TestForecastSparseSeriesUsesMeanWithoutModel(t *testing.T) {
	model := &stubModel{value: 99}
	f := NewForecaster(model, Policy{MinHistory: 7, FallbackWindow: 7})

	out, err := f.Forecast(context.Background(), seriesOf("2024-01-01", 3, 5), 3)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 4, 4}, out.Values)
	assert.Equal(t, MethodFallback, out.Method)
	assert.Equal(t, ReasonSparse, out.Reason)
	assert.Zero(t, model.calls)
}

func TestForecastSparseSeriesReturnsIdenticalValues(t *testing.T) {
	f := NewForecaster(&stubModel{}, Policy{MinHistory: 7, FallbackWindow: 7})

	for n := 1; n < 7; n++ {
		values := make([]float64, n)
		for i := range values {
			values[i] = float64(i*3 + 1)
		}
		out, err := f.Forecast(context.Background(), seriesOf("2024-05-01", values...), 5)
		require.NoError(t, err)
		require.Len(t, out.Values, 5)
		for _, v := range out.Values {
			assert.Equal(t, out.Values[0], v)
		}
	}
}

func TestForecastDenseSeriesUsesModel(t *testing.T) {
	model := &stubModel{value: 6.5}
	f := NewForecaster(model, Policy{MinHistory: 3, FallbackWindow: 7})

	out, err := f.Forecast(context.Background(), seriesOf("2024-01-01", 1, 2, 3, 4), 2)
	require.NoError(t, err)

	assert.Equal(t, MethodModel, out.Method)
	assert.Equal(t, ReasonNone, out.Reason)
	// 6.5 rounds half to even
	assert.Equal(t, []int{6, 6}, out.Values)
	assert.Equal(t, 1, model.calls)
}

func TestForecastClipsNegativeModelOutput(t *testing.T) {
	f := NewForecaster(&stubModel{value: -3.2}, Policy{MinHistory: 3, FallbackWindow: 7})

	out, err := f.Forecast(context.Background(), seriesOf("2024-01-01", 0, 0, 1, 0), 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0}, out.Values)
}

func TestForecastModelFailureFallsBackToTrailingMean(t *testing.T) {
	boom := errors.New("fit failed")
	f := NewForecaster(&stubModel{err: boom}, Policy{MinHistory: 3, FallbackWindow: 7})

	// last seven values average to 10
	series := seriesOf("2024-01-01", 100, 100, 7, 8, 9, 10, 11, 12, 13)
	out, err := f.Forecast(context.Background(), series, 3)
	require.NoError(t, err)

	assert.Equal(t, MethodFallback, out.Method)
	assert.Equal(t, ReasonModelFailure, out.Reason)
	assert.Equal(t, []int{10, 10, 10}, out.Values)
	assert.ErrorIs(t, out.ModelErr, boom)
}

type badModel struct{ pred models.Prediction }

func (m badModel) Predict(ctx context.Context, series models.DailySeries, horizon int) (models.Prediction, error) {
	return m.pred, nil
}

func TestAttemptModelRejectsMalformedOutput(t *testing.T) {
	series := seriesOf("2024-01-01", 1, 2, 3)

	short := NewForecaster(badModel{pred: models.Prediction{Future: []float64{1}}}, Policy{MinHistory: 1})
	_, err := short.AttemptModel(context.Background(), series, 2)
	assert.Error(t, err)

	nan := NewForecaster(badModel{pred: models.Prediction{Future: []float64{1, math.NaN()}}}, Policy{MinHistory: 1})
	_, err = nan.AttemptModel(context.Background(), series, 2)
	assert.Error(t, err)

	out, err := nan.Forecast(context.Background(), series, 2)
	require.NoError(t, err)
	assert.Equal(t, ReasonModelFailure, out.Reason)
	assert.Equal(t, []int{2, 2}, out.Values)
}

func TestAttemptModelWithoutModel(t *testing.T) {
	f := NewForecaster(nil, Policy{MinHistory: 1, FallbackWindow: 7})

	_, err := f.AttemptModel(context.Background(), seriesOf("2024-01-01", 1), 1)
	assert.Error(t, err)

	out, err := f.Forecast(context.Background(), seriesOf("2024-01-01", 1), 1)
	require.NoError(t, err)
	assert.Equal(t, ReasonModelFailure, out.Reason)
}

func TestAttemptModelKeepsAlignedFittedValues(t *testing.T) {
	f := NewForecaster(&stubModel{value: 1, fitted: true}, Policy{MinHistory: 1})
	series := seriesOf("2024-01-01", 4, 5, 6)

	out, err := f.AttemptModel(context.Background(), series, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, out.Fitted)
}

func TestForecastRejectsBadArguments(t *testing.T) {
	f := NewForecaster(&stubModel{}, Policy{MinHistory: 1})

	_, err := f.Forecast(context.Background(), seriesOf("2024-01-01", 1), 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = f.Forecast(context.Background(), nil, 3)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestFallbackRounding(t *testing.T) {
	f := NewForecaster(nil, Policy{FallbackWindow: 7})

	cases := []struct {
		values []float64
		want   int
	}{
		{[]float64{3, 5}, 4},
		{[]float64{1, 2}, 2},    // 1.5 -> 2
		{[]float64{2, 3}, 2},    // 2.5 -> 2
		{[]float64{0, 0, 1}, 0}, // 0.33 -> 0
		{[]float64{1, 1, 2}, 1}, // 1.33 -> 1
	}
	for _, c := range cases {
		out := f.Fallback(seriesOf("2024-01-01", c.values...), 1, ReasonSparse)
		assert.Equal(t, []int{c.want}, out.Values, "values %v", c.values)
	}
}

type panicModel struct{}

func (panicModel) Predict(ctx context.Context, series models.DailySeries, horizon int) (models.Prediction, error) {
	var values []float64
	_ = values[len(series)]
	return models.Prediction{}, nil
}

func TestAttemptModelRecoversPanic(t *testing.T) {
	f := NewForecaster(panicModel{}, Policy{MinHistory: 1, FallbackWindow: 7})
	series := seriesOf("2024-01-01", 3, 5)

	_, err := f.AttemptModel(context.Background(), series, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")

	out, err := f.Forecast(context.Background(), series, 2)
	require.NoError(t, err)
	assert.Equal(t, ReasonModelFailure, out.Reason)
	assert.Equal(t, []int{4, 4}, out.Values)
}

func TestTrailingMeanSkipsNonFiniteValues(t *testing.T) {
	assert.Equal(t, 4, meanCount([]float64{3, math.NaN(), 5}, 7))
	assert.Equal(t, 6, meanCount([]float64{100, 6, math.Inf(1)}, 2))
	assert.Equal(t, 0, meanCount([]float64{math.NaN()}, 7))
	assert.Equal(t, 0, meanCount(nil, 7))
}
