package analytics

import (
	"time"

	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

// Insights is the key-findings banner printed at the end of the exploration
// job.
type Insights struct {
	TotalRevenue       float64
	AvgTransaction     float64
	BestStore          string
	BestStoreRevenue   float64
	TopCategory        string
	TopCategoryRevenue float64
	PeakHour           int
	PeakHourCount      int
	BusiestDay         time.Weekday
	BusiestDayRevenue  float64
	BestDate           time.Time
	BestDateRevenue    float64
	WorstDate          time.Time
	WorstDateRevenue   float64
}

// KeyInsights condenses the rollups into the headline findings.
func KeyInsights(records []domain.SaleRecord) Insights {
	var ins Insights
	if len(records) == 0 {
		return ins
	}

	ins.TotalRevenue = TotalRevenue(records)
	ins.AvgTransaction = ins.TotalRevenue / float64(len(records))

	if stores := SummarizeStores(records); len(stores) > 0 {
		ins.BestStore = stores[0].Location
		ins.BestStoreRevenue = stores[0].TotalRevenue
	}
	if categories := SummarizeCategories(records); len(categories) > 0 {
		ins.TopCategory = categories[0].Category
		ins.TopCategoryRevenue = categories[0].Revenue
	}

	hourly := HourlyCounts(records)
	for hour, count := range hourly {
		if count > ins.PeakHourCount {
			ins.PeakHour = hour
			ins.PeakHourCount = count
		}
	}

	for i, wr := range RevenueByWeekday(records) {
		if i == 0 || wr.Revenue > ins.BusiestDayRevenue {
			ins.BusiestDay = wr.Day
			ins.BusiestDayRevenue = wr.Revenue
		}
	}

	for i, p := range DailyRevenue(records) {
		if i == 0 || p.Revenue > ins.BestDateRevenue {
			ins.BestDate = p.Date
			ins.BestDateRevenue = p.Revenue
		}
		if i == 0 || p.Revenue < ins.WorstDateRevenue {
			ins.WorstDate = p.Date
			ins.WorstDateRevenue = p.Revenue
		}
	}

	return ins
}
