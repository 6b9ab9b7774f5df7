package model

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"smartcanteen/models"
)

// Seasonality carries the seasonality hints forwarded to the prediction service.
type Seasonality struct {
	Weekly bool `json:"weekly"`
	Yearly bool `json:"yearly"`
}

// Remote delegates fitting to an external prediction service over HTTP.
type Remote struct {
	baseURL     string
	client      *resty.Client
	seasonality Seasonality
}

type predictRequest struct {
	Dates       []string    `json:"dates"`
	Values      []float64   `json:"values"`
	Periods     int         `json:"periods"`
	Seasonality Seasonality `json:"seasonality"`
}

type predictResponse struct {
	Fitted   []float64 `json:"fitted"`
	Forecast []float64 `json:"forecast"`
}

// NewRemote creates a client for the prediction service at baseURL.
func NewRemote(baseURL string, timeout time.Duration, seasonality Seasonality) *Remote {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")

	return &Remote{
		baseURL:     strings.TrimRight(baseURL, "/"),
		client:      client,
		seasonality: seasonality,
	}
}

// Predict posts the series to {baseURL}/predict and returns its fitted and future values.
func (r *Remote) Predict(ctx context.Context, series models.DailySeries, horizon int) (models.Prediction, error) {
	body := predictRequest{
		Dates:       make([]string, len(series)),
		Values:      series.Values(),
		Periods:     horizon,
		Seasonality: r.seasonality,
	}
	for i, p := range series {
		body.Dates[i] = p.Date.Format("2006-01-02")
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(r.baseURL + "/predict")
	if err != nil {
		return models.Prediction{}, fmt.Errorf("prediction request failed: %w", err)
	}
	if resp.IsError() {
		return models.Prediction{}, fmt.Errorf("prediction service returned HTTP %d", resp.StatusCode())
	}

	var out predictResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return models.Prediction{}, fmt.Errorf("failed to decode prediction: %w", err)
	}
	if len(out.Forecast) != horizon {
		return models.Prediction{}, fmt.Errorf("prediction service returned %d values, want %d", len(out.Forecast), horizon)
	}

	return models.Prediction{Fitted: out.Fitted, Future: out.Forecast}, nil
}
