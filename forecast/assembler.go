package forecast

import (
	"sort"
	"time"

	"smartcanteen/models"
)

// DateLayout is the calendar-date format used in every response.
const DateLayout = "2006-01-02"

// Assembler shapes forecasts into response payloads.
type Assembler struct {
	// HistoryWindow is the number of trailing days returned as history.
	HistoryWindow int
}

// Orders packages the trailing history window and the forecast of the order series.
// History shows fitted values when the model produced them, observed values otherwise.
func (a Assembler) Orders(series models.DailySeries, out Outcome) *models.OrdersForecast {
	source := series.Values()
	if len(out.Fitted) == len(series) {
		source = out.Fitted
	}

	start := 0
	if a.HistoryWindow > 0 && len(series) > a.HistoryWindow {
		start = len(series) - a.HistoryWindow
	}

	history := models.SeriesView{
		Dates:  make([]string, 0, len(series)-start),
		Values: make([]int, 0, len(series)-start),
	}
	for i := start; i < len(series); i++ {
		history.Dates = append(history.Dates, series[i].Date.Format(DateLayout))
		history.Values = append(history.Values, roundCount(source[i]))
	}

	values := make([]int, len(out.Values))
	copy(values, out.Values)

	return &models.OrdersForecast{
		History: history,
		Forecast: models.SeriesView{
			Dates:  formatDates(series.FollowingDates(len(values))),
			Values: values,
		},
	}
}

// Items orders item forecasts by the sum of their predicted values, highest
// first. Equal sums keep the input order.
func (a Assembler) Items(forecasts []models.ItemForecast) *models.ItemsForecast {
	ranked := make([]models.ItemForecast, len(forecasts))
	copy(ranked, forecasts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return sum(ranked[i].PredictedNextDays) > sum(ranked[j].PredictedNextDays)
	})
	return &models.ItemsForecast{TopItems: ranked}
}

// Popular packages ranked historical totals.
func (a Assembler) Popular(totals []models.ItemTotal) *models.PopularItems {
	items := make([]models.ItemTotal, len(totals))
	copy(items, totals)
	return &models.PopularItems{Items: items}
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(DateLayout)
	}
	return out
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
