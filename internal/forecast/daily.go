// Package forecast aggregates the joined view to daily granularity and fits
// the revenue trend, moving averages, a calendar-feature regression with a
// chronological train/test split, and a naive per-store baseline.
package forecast

import (
	"sort"
	"time"

	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

// Aggregate rolls the joined view up to one row per calendar date with
// transaction count, revenue sum and items sold, sorted chronologically.
func Aggregate(records []domain.SaleRecord) []domain.DailyMetrics {
	type acc struct {
		count int
		sum   float64
		items int64
	}
	groups := make(map[string]*acc)
	for _, r := range records {
		key := r.Date.Format("2006-01-02")
		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
		}
		a.count++
		a.sum += r.TotalAmount
		a.items += r.Qty
	}

	daily := make([]domain.DailyMetrics, 0, len(groups))
	for key, a := range groups {
		date, _ := time.Parse("2006-01-02", key)
		daily = append(daily, domain.DailyMetrics{
			Date:         date,
			Transactions: a.count,
			Revenue:      a.sum,
			ItemsSold:    a.items,
		})
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date.Before(daily[j].Date)
	})
	return daily
}

// Revenues projects the revenue column of the daily series.
func Revenues(daily []domain.DailyMetrics) []float64 {
	out := make([]float64, len(daily))
	for i, d := range daily {
		out[i] = d.Revenue
	}
	return out
}

// dayNumber is the calendar-day offset of date from the first date of the
// series, the zero-based index the trend and regression features use.
func dayNumber(date, first time.Time) float64 {
	return date.Sub(first).Hours() / 24
}
