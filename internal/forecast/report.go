package forecast

import (
	"fmt"
	"os"
	"strings"
)

// Report collects everything the plain-text forecasting report prints.
type Report struct {
	Trend          Trend
	Train          Evaluation
	Test           Evaluation
	Forecast       []ForecastPoint
	StoreForecasts []StoreForecast
	HorizonDays    int
}

// TotalForecast sums the predicted revenue over the horizon.
func (r Report) TotalForecast() float64 {
	var total float64
	for _, p := range r.Forecast {
		total += p.Revenue
	}
	return total
}

// Render produces the report text.
func (r Report) Render() string {
	var b strings.Builder
	rule := strings.Repeat("=", 70)

	b.WriteString("MAVEN ROASTERS - PREDICTIVE MODELING REPORT\n")
	b.WriteString(rule + "\n\n")

	direction := "DECLINING"
	if r.Trend.Growing() {
		direction = "GROWING"
	}
	b.WriteString("REVENUE TREND ANALYSIS:\n")
	fmt.Fprintf(&b, "- Daily trend: $%.2f per day (%.3f%% per day)\n",
		r.Trend.SlopePerDay, r.Trend.PctPerDay)
	fmt.Fprintf(&b, "- Monthly impact: $%.2f\n", r.Trend.Projection30)
	fmt.Fprintf(&b, "- 6-month projection: $%.2f\n", r.Trend.Projection180)
	fmt.Fprintf(&b, "- Trend direction: %s\n\n", direction)

	b.WriteString("FORECAST MODEL PERFORMANCE:\n")
	fmt.Fprintf(&b, "- Training MAE: $%.2f, R2: %.3f\n", r.Train.MAE, r.Train.R2)
	fmt.Fprintf(&b, "- Testing MAE: $%.2f, R2: %.3f\n", r.Test.MAE, r.Test.R2)
	fmt.Fprintf(&b, "- Predictions are typically within $%.2f of actual\n\n", r.Test.MAE)

	fmt.Fprintf(&b, "NEXT %d DAYS FORECAST:\n", r.HorizonDays)
	for _, p := range r.Forecast {
		fmt.Fprintf(&b, "- %s (%s): $%.2f\n",
			p.Date.Format("2006-01-02"), p.Date.Weekday(), p.Revenue)
	}
	fmt.Fprintf(&b, "- Total predicted revenue: $%.2f\n", r.TotalForecast())
	if len(r.Forecast) > 0 {
		fmt.Fprintf(&b, "- Daily average: $%.2f\n", r.TotalForecast()/float64(len(r.Forecast)))
	}
	b.WriteString("\n")

	b.WriteString("STORE-LEVEL BASELINE (historical average):\n")
	for _, sf := range r.StoreForecasts {
		fmt.Fprintf(&b, "- %s: $%.2f/day, $%.2f over %d days\n",
			sf.Store, sf.AvgDailyRevenue, sf.HorizonRevenue, r.HorizonDays)
	}
	b.WriteString("\n")

	b.WriteString("RECOMMENDATIONS:\n")
	b.WriteString("- Use daily forecasts for staffing decisions\n")
	b.WriteString("- Monitor actual vs predicted to catch anomalies early\n")
	b.WriteString("- Update the model monthly as new data comes in\n")

	return b.String()
}

// WriteFile renders the report to the given path.
func (r Report) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(r.Render()), 0o644); err != nil {
		return fmt.Errorf("write forecast report: %w", err)
	}
	return nil
}
