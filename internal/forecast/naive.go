package forecast

import (
	"sort"

	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

// StoreForecast is the naive per-store baseline: historical average daily
// revenue extended over the horizon with no model fitting.
type StoreForecast struct {
	Store           string
	AvgDailyRevenue float64
	HorizonRevenue  float64
}

// NaiveStoreForecasts computes each store's mean daily revenue and projects
// it over the given number of days, sorted by average revenue descending.
// It is the sanity-check baseline for the regression forecast.
func NaiveStoreForecasts(records []domain.SaleRecord, horizonDays int) []StoreForecast {
	// Sum revenue per store per date, then average the daily sums.
	daily := make(map[string]map[string]float64)
	for _, r := range records {
		key := r.Date.Format("2006-01-02")
		if daily[r.StoreLocation] == nil {
			daily[r.StoreLocation] = make(map[string]float64)
		}
		daily[r.StoreLocation][key] += r.TotalAmount
	}

	forecasts := make([]StoreForecast, 0, len(daily))
	for store, days := range daily {
		var sum float64
		for _, v := range days {
			sum += v
		}
		avg := sum / float64(len(days))
		forecasts = append(forecasts, StoreForecast{
			Store:           store,
			AvgDailyRevenue: avg,
			HorizonRevenue:  avg * float64(horizonDays),
		})
	}
	sort.Slice(forecasts, func(i, j int) bool {
		return forecasts[i].AvgDailyRevenue > forecasts[j].AvgDailyRevenue
	})
	return forecasts
}
