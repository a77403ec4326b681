package forecast

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

func dailySeries(start time.Time, revenues []float64) []domain.DailyMetrics {
	daily := make([]domain.DailyMetrics, len(revenues))
	for i, rev := range revenues {
		daily[i] = domain.DailyMetrics{
			Date:         start.AddDate(0, 0, i),
			Transactions: 10,
			Revenue:      rev,
			ItemsSold:    20,
		}
	}
	return daily
}

func TestAggregate(t *testing.T) {
	d1 := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	records := []domain.SaleRecord{
		{TransactionID: 1, Date: d2, Qty: 1, TotalAmount: 4.00},
		{TransactionID: 2, Date: d1, Qty: 2, TotalAmount: 6.00},
		{TransactionID: 3, Date: d1, Qty: 1, TotalAmount: 5.00},
	}

	daily := Aggregate(records)
	require.Len(t, daily, 2)
	assert.Equal(t, d1, daily[0].Date)
	assert.Equal(t, 2, daily[0].Transactions)
	assert.InDelta(t, 11.00, daily[0].Revenue, 1e-9)
	assert.Equal(t, int64(3), daily[0].ItemsSold)
	assert.Equal(t, d2, daily[1].Date)
}

func TestFitTrendLinearSeries(t *testing.T) {
	start := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	// Revenue climbs exactly 10 per day from 100.
	revenues := make([]float64, 30)
	for i := range revenues {
		revenues[i] = 100 + 10*float64(i)
	}

	trend, err := FitTrend(dailySeries(start, revenues))
	require.NoError(t, err)

	assert.InDelta(t, 10.0, trend.SlopePerDay, 1e-9)
	assert.InDelta(t, 100.0, trend.Intercept, 1e-6)
	assert.InDelta(t, 300.0, trend.Projection30, 1e-6)
	assert.InDelta(t, 1800.0, trend.Projection180, 1e-6)
	assert.True(t, trend.Growing())
	// Mean daily revenue is 245, so the slope is 10/245 of the mean.
	assert.InDelta(t, 10.0/245.0*100, trend.PctPerDay, 1e-6)
}

func TestFitTrendTooShort(t *testing.T) {
	start := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, err := FitTrend(dailySeries(start, []float64{100}))
	assert.Error(t, err)
}

func TestCenteredRollingMeanBoundary(t *testing.T) {
	// N=8 series with a step at the end: first 3 and last 3 positions of a
	// 7-wide centered mean are undefined.
	values := []float64{100, 100, 100, 100, 100, 100, 100, 200}
	ma := CenteredRollingMean(values, 7)

	require.Len(t, ma, 8)
	for _, i := range []int{0, 1, 2, 5, 6, 7} {
		assert.True(t, math.IsNaN(ma[i]), "index %d should be undefined", i)
	}
	assert.InDelta(t, 100.0, ma[3], 1e-9)
	assert.InDelta(t, (6*100.0+200.0)/7, ma[4], 1e-9)
	assert.Equal(t, 2, DefinedCount(ma))
}

func TestCenteredRollingMeanDefinedCount(t *testing.T) {
	for _, n := range []int{7, 10, 25} {
		values := make([]float64, n)
		for i := range values {
			values[i] = float64(i)
		}
		ma := CenteredRollingMean(values, 7)
		assert.Equal(t, n-6, DefinedCount(ma), "series length %d", n)
	}
}

func TestCenteredRollingMeanEvenWindow(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = 1
	}
	ma := CenteredRollingMean(values, 14)
	// Window [i-7, i+6]: first 7 and last 6 positions are undefined.
	assert.True(t, math.IsNaN(ma[6]))
	assert.False(t, math.IsNaN(ma[7]))
	assert.False(t, math.IsNaN(ma[13]))
	assert.True(t, math.IsNaN(ma[14]))
	assert.Equal(t, 7, DefinedCount(ma))
}

func TestChronologicalSplit(t *testing.T) {
	start := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	daily := dailySeries(start, make([]float64, 10))

	split := ChronologicalSplit(daily, 0.2)
	require.Len(t, split.Train, 8)
	require.Len(t, split.Test, 2)

	// No test date precedes any training date.
	lastTrain := split.Train[len(split.Train)-1].Date
	for _, d := range split.Test {
		assert.True(t, d.Date.After(lastTrain))
	}
}

func TestFitRecoversWeeklyPattern(t *testing.T) {
	start := time.Date(2023, time.June, 5, 0, 0, 0, 0, time.UTC) // a Monday
	// Revenue = 500 + 2·dayNumber + 150·weekend, exactly in the feature span.
	days := 56
	daily := make([]domain.DailyMetrics, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		rev := 500 + 2*float64(i)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			rev += 150
		}
		daily[i] = domain.DailyMetrics{Date: date, Revenue: rev}
	}

	split := ChronologicalSplit(daily, 0.2)
	model, err := Fit(split.Train, daily[0].Date)
	require.NoError(t, err)

	train := model.Evaluate(split.Train)
	test := model.Evaluate(split.Test)
	assert.Less(t, train.MAE, 20.0)
	assert.Less(t, test.MAE, 40.0)
	assert.Greater(t, train.R2, 0.9)

	// Forecast continues past the end of the series in date order.
	fc := model.Forecast(daily[len(daily)-1].Date, 7)
	require.Len(t, fc, 7)
	assert.Equal(t, daily[len(daily)-1].Date.AddDate(0, 0, 1), fc[0].Date)
	for _, p := range fc {
		assert.Greater(t, p.Revenue, 400.0)
		assert.Less(t, p.Revenue, 900.0)
	}

	imp := model.Importance()
	require.Len(t, imp, 4)
	for i := 1; i < len(imp); i++ {
		assert.GreaterOrEqual(t, math.Abs(imp[i-1].Value), math.Abs(imp[i].Value))
	}
}

func TestFitTooFewRows(t *testing.T) {
	start := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, err := Fit(dailySeries(start, []float64{1, 2, 3}), start)
	assert.Error(t, err)
}

func TestMAEAndR2(t *testing.T) {
	actual := []float64{1, 2, 3, 4}
	assert.InDelta(t, 0.0, MAE(actual, actual), 1e-9)
	assert.InDelta(t, 1.0, R2(actual, actual), 1e-9)

	predicted := []float64{2, 3, 4, 5}
	assert.InDelta(t, 1.0, MAE(actual, predicted), 1e-9)

	assert.True(t, math.IsNaN(MAE(actual, []float64{1})))
	assert.True(t, math.IsNaN(R2([]float64{2, 2}, []float64{2, 2})))
}

func TestNaiveStoreForecasts(t *testing.T) {
	d1 := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	records := []domain.SaleRecord{
		{TransactionID: 1, Date: d1, StoreLocation: "A", TotalAmount: 100},
		{TransactionID: 2, Date: d1, StoreLocation: "A", TotalAmount: 100},
		{TransactionID: 3, Date: d2, StoreLocation: "A", TotalAmount: 100},
		{TransactionID: 4, Date: d1, StoreLocation: "B", TotalAmount: 50},
	}

	forecasts := NaiveStoreForecasts(records, 7)
	require.Len(t, forecasts, 2)

	// Store A: daily sums 200 and 100 → average 150.
	assert.Equal(t, "A", forecasts[0].Store)
	assert.InDelta(t, 150.0, forecasts[0].AvgDailyRevenue, 1e-9)
	assert.InDelta(t, 1050.0, forecasts[0].HorizonRevenue, 1e-9)

	assert.Equal(t, "B", forecasts[1].Store)
	assert.InDelta(t, 350.0, forecasts[1].HorizonRevenue, 1e-9)
}

func TestReportRenderAndWrite(t *testing.T) {
	report := Report{
		Trend:       Trend{SlopePerDay: 12.5, PctPerDay: 0.3, Projection30: 375, Projection180: 2250},
		Train:       Evaluation{MAE: 100, R2: 0.8},
		Test:        Evaluation{MAE: 120, R2: 0.7},
		HorizonDays: 2,
		Forecast: []ForecastPoint{
			{Date: time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC), Revenue: 4000},
			{Date: time.Date(2023, time.July, 2, 0, 0, 0, 0, time.UTC), Revenue: 4100},
		},
		StoreForecasts: []StoreForecast{
			{Store: "A", AvgDailyRevenue: 1500, HorizonRevenue: 3000},
		},
	}

	text := report.Render()
	assert.Contains(t, text, "GROWING")
	assert.Contains(t, text, "NEXT 2 DAYS FORECAST")
	assert.Contains(t, text, "$8100.00")
	assert.Contains(t, text, "2023-07-01 (Saturday)")

	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, report.WriteFile(path))
}
