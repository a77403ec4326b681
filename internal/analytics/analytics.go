// Package analytics derives the exploratory summaries from the joined
// transaction view: data-quality checks, descriptive statistics and the
// store / category / time rollups behind the EDA charts.
//
// Every function here is a pure function of the records passed in; nothing
// is cached between runs.
package analytics

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

// QualityReport counts the anomalies checked on the joined view. They are
// reported, not corrected.
type QualityReport struct {
	DuplicateTransactionIDs int
	NegativeQuantities      int
	NegativePrices          int
	NegativeAmounts         int
}

// CheckQuality scans the joined view for duplicate transaction ids and
// negative quantities, prices and amounts.
func CheckQuality(records []domain.SaleRecord) QualityReport {
	var report QualityReport
	seen := make(map[int64]bool, len(records))
	for _, r := range records {
		if seen[r.TransactionID] {
			report.DuplicateTransactionIDs++
		}
		seen[r.TransactionID] = true
		if r.Qty < 0 {
			report.NegativeQuantities++
		}
		if r.UnitPrice < 0 {
			report.NegativePrices++
		}
		if r.TotalAmount < 0 {
			report.NegativeAmounts++
		}
	}
	return report
}

// Describe summarizes one numeric column.
type Describe struct {
	Count  int
	Mean   float64
	Median float64
	Std    float64
	Min    float64
	Max    float64
}

// DescribeValues computes count, mean, median, sample standard deviation and
// range for a series. A zero-value Describe comes back for empty input.
func DescribeValues(values []float64) Describe {
	if len(values) == 0 {
		return Describe{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	d := Describe{
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
	if len(values) > 1 {
		d.Std = stat.StdDev(values, nil)
	}
	return d
}

// median expects a sorted slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Amounts projects the total_amount column.
func Amounts(records []domain.SaleRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.TotalAmount
	}
	return out
}

// UnitPrices projects the unit_price column.
func UnitPrices(records []domain.SaleRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.UnitPrice
	}
	return out
}

// TotalRevenue sums total_amount over the joined view.
func TotalRevenue(records []domain.SaleRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.TotalAmount
	}
	return total
}

// StoreSummary is the per-store rollup: transaction count, revenue sum and
// mean transaction value.
type StoreSummary struct {
	Location       string
	Transactions   int
	TotalRevenue   float64
	AvgTransaction float64
}

// SummarizeStores rolls the joined view up by store location, sorted by
// revenue descending.
func SummarizeStores(records []domain.SaleRecord) []StoreSummary {
	type acc struct {
		count int
		sum   float64
	}
	groups := make(map[string]*acc)
	for _, r := range records {
		a, ok := groups[r.StoreLocation]
		if !ok {
			a = &acc{}
			groups[r.StoreLocation] = a
		}
		a.count++
		a.sum += r.TotalAmount
	}

	summaries := make([]StoreSummary, 0, len(groups))
	for location, a := range groups {
		summaries = append(summaries, StoreSummary{
			Location:       location,
			Transactions:   a.count,
			TotalRevenue:   a.sum,
			AvgTransaction: a.sum / float64(a.count),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].TotalRevenue > summaries[j].TotalRevenue
	})
	return summaries
}

// CategorySummary is the per-category rollup.
type CategorySummary struct {
	Category     string
	Transactions int
	Revenue      float64
}

// SummarizeCategories rolls the joined view up by product category, sorted
// by revenue descending.
func SummarizeCategories(records []domain.SaleRecord) []CategorySummary {
	type acc struct {
		count int
		sum   float64
	}
	groups := make(map[string]*acc)
	for _, r := range records {
		a, ok := groups[r.Category]
		if !ok {
			a = &acc{}
			groups[r.Category] = a
		}
		a.count++
		a.sum += r.TotalAmount
	}

	summaries := make([]CategorySummary, 0, len(groups))
	for category, a := range groups {
		summaries = append(summaries, CategorySummary{
			Category:     category,
			Transactions: a.count,
			Revenue:      a.sum,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Revenue > summaries[j].Revenue
	})
	return summaries
}

// ProductRevenue pairs a product detail name with its summed revenue.
type ProductRevenue struct {
	Detail  string
	Revenue float64
}

// TopProducts returns the n products with the highest summed revenue.
func TopProducts(records []domain.SaleRecord, n int) []ProductRevenue {
	groups := make(map[string]float64)
	for _, r := range records {
		groups[r.ProductDetail] += r.TotalAmount
	}

	products := make([]ProductRevenue, 0, len(groups))
	for detail, revenue := range groups {
		products = append(products, ProductRevenue{Detail: detail, Revenue: revenue})
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Revenue != products[j].Revenue {
			return products[i].Revenue > products[j].Revenue
		}
		return products[i].Detail < products[j].Detail
	})
	if n < len(products) {
		products = products[:n]
	}
	return products
}

// DailyPoint is one date of the daily revenue series.
type DailyPoint struct {
	Date    time.Time
	Revenue float64
}

// DailyRevenue sums revenue per calendar date, sorted chronologically.
func DailyRevenue(records []domain.SaleRecord) []DailyPoint {
	groups := make(map[string]float64)
	for _, r := range records {
		groups[r.Date.Format("2006-01-02")] += r.TotalAmount
	}

	points := make([]DailyPoint, 0, len(groups))
	for day, revenue := range groups {
		date, _ := time.Parse("2006-01-02", day)
		points = append(points, DailyPoint{Date: date, Revenue: revenue})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// HourlyCounts counts transactions per hour of day. Records whose time field
// cannot be parsed are ignored.
func HourlyCounts(records []domain.SaleRecord) [24]int {
	var counts [24]int
	for _, r := range records {
		if h := r.Hour(); h >= 0 && h < 24 {
			counts[h]++
		}
	}
	return counts
}

// WeekdayOrder lists the days Monday through Sunday, the display order of
// the weekday rollup.
var WeekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekdayRevenue pairs a day of week with its summed revenue.
type WeekdayRevenue struct {
	Day     time.Weekday
	Revenue float64
}

// RevenueByWeekday sums revenue per day of week, returned in Monday→Sunday
// order rather than alphabetically.
func RevenueByWeekday(records []domain.SaleRecord) []WeekdayRevenue {
	sums := make(map[time.Weekday]float64)
	for _, r := range records {
		sums[r.Weekday()] += r.TotalAmount
	}

	out := make([]WeekdayRevenue, 0, len(WeekdayOrder))
	for _, day := range WeekdayOrder {
		out = append(out, WeekdayRevenue{Day: day, Revenue: sums[day]})
	}
	return out
}
