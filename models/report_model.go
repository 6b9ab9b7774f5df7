package models

import "time"

// DailyPoint is one calendar day of a daily series.
type DailyPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// DailySeries is a contiguous, zero-filled, date-ordered run of DailyPoints.
type DailySeries []DailyPoint

// Values returns the series values in date order.
func (s DailySeries) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Dates returns the series dates in order.
func (s DailySeries) Dates() []time.Time {
	out := make([]time.Time, len(s))
	for i, p := range s {
		out[i] = p.Date
	}
	return out
}

// LastDate returns the final date of the series, or the zero time when empty.
func (s DailySeries) LastDate() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Date
}

// SeriesView is a date/value pair of parallel arrays as rendered to clients.
type SeriesView struct {
	Dates  []string `json:"dates"`
	Values []int    `json:"values"`
}

// OrdersForecast is the response of the order-volume forecast.
type OrdersForecast struct {
	History  SeriesView `json:"history"`
	Forecast SeriesView `json:"forecast"`
}

// ItemForecast represents the predicted demand of one menu item.
type ItemForecast struct {
	Item              string `json:"item"`
	PredictedNextDays []int  `json:"predicted_next_days"`
}

// ItemsForecast is the response of the per-item demand forecast.
type ItemsForecast struct {
	TopItems []ItemForecast `json:"top_items"`
}

// ItemTotal represents a menu item and its total historical quantity.
type ItemTotal struct {
	Item  string `json:"item"`
	Total int    `json:"total"`
}

// PopularItems is the response of the historical popularity ranking.
type PopularItems struct {
	Items []ItemTotal `json:"items"`
}

// FollowingDates returns the n calendar days immediately after the last date of the series.
func (s DailySeries) FollowingDates(n int) []time.Time {
	if len(s) == 0 || n <= 0 {
		return nil
	}
	last := s.LastDate()
	out := make([]time.Time, n)
	for i := range out {
		out[i] = last.AddDate(0, 0, i+1)
	}
	return out
}

// Prediction is the raw output of a forecasting model for one series.
// Fitted is optional and, when present, aligns with the training series.
type Prediction struct {
	Fitted []float64 `json:"fitted,omitempty"`
	Future []float64 `json:"forecast"`
}
