package forecast

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

// Trend is the ordinary-least-squares revenue trend over the daily series.
type Trend struct {
	Intercept     float64
	SlopePerDay   float64
	PctPerDay     float64 // slope as a percentage of mean daily revenue
	Projection30  float64 // 30-day linear extrapolation of the slope
	Projection180 float64
	Fitted        []float64 // trend value per input day, for charting
}

// Growing reports whether the fitted slope is positive.
func (t Trend) Growing() bool {
	return t.SlopePerDay > 0
}

// FitTrend regresses daily revenue on the calendar day offset from the first
// date of the series.
func FitTrend(daily []domain.DailyMetrics) (Trend, error) {
	if len(daily) < 2 {
		return Trend{}, fmt.Errorf("trend fit needs at least 2 days, got %d", len(daily))
	}

	first := daily[0].Date
	xs := make([]float64, len(daily))
	ys := make([]float64, len(daily))
	for i, d := range daily {
		xs[i] = dayNumber(d.Date, first)
		ys[i] = d.Revenue
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	trend := Trend{
		Intercept:     intercept,
		SlopePerDay:   slope,
		Projection30:  slope * 30,
		Projection180: slope * 180,
		Fitted:        make([]float64, len(daily)),
	}
	if mean := stat.Mean(ys, nil); mean != 0 {
		trend.PctPerDay = slope / mean * 100
	}
	for i, x := range xs {
		trend.Fitted[i] = intercept + slope*x
	}
	return trend, nil
}
