package hypothesis

import (
	"fmt"
	"sort"

	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

// PeakHourStart and PeakHourEnd bound the morning rush window, inclusive.
const (
	PeakHourStart = 7
	PeakHourEnd   = 11
)

// amountsByStore groups total_amount by store location, with locations
// returned in sorted order for deterministic output.
func amountsByStore(records []domain.SaleRecord) (map[string][]float64, []string) {
	groups := make(map[string][]float64)
	for _, r := range records {
		groups[r.StoreLocation] = append(groups[r.StoreLocation], r.TotalAmount)
	}
	locations := make([]string, 0, len(groups))
	for loc := range groups {
		locations = append(locations, loc)
	}
	sort.Strings(locations)
	return groups, locations
}

// StoreANOVA runs the one-way ANOVA of transaction amounts across all
// stores. Null hypothesis: every store has the same mean transaction value.
func StoreANOVA(records []domain.SaleRecord) (ANOVAResult, error) {
	groups, locations := amountsByStore(records)
	samples := make([][]float64, 0, len(locations))
	for _, loc := range locations {
		samples = append(samples, groups[loc])
	}
	return OneWayANOVA(samples)
}

// PairwiseResult is one reference-vs-other store comparison.
type PairwiseResult struct {
	Store string
	TTestResult
}

// RefHigher reports whether the reference store's mean exceeded the other
// store's.
func (p PairwiseResult) RefHigher() bool {
	return p.MeanA > p.MeanB
}

// PairwiseAgainstReference t-tests the reference store's transaction amounts
// against every other store individually. The comparisons are uncorrected
// for multiplicity (see the package documentation).
func PairwiseAgainstReference(records []domain.SaleRecord, reference string) ([]PairwiseResult, error) {
	groups, locations := amountsByStore(records)
	ref, ok := groups[reference]
	if !ok {
		return nil, fmt.Errorf("reference store %q not present in data", reference)
	}

	var results []PairwiseResult
	for _, loc := range locations {
		if loc == reference {
			continue
		}
		tt, err := TTest(ref, groups[loc])
		if err != nil {
			return nil, fmt.Errorf("t-test %s vs %s: %w", reference, loc, err)
		}
		results = append(results, PairwiseResult{Store: loc, TTestResult: tt})
	}
	return results, nil
}

// ContingencyTable is the store × category transaction-count table backing
// the independence test.
type ContingencyTable struct {
	Stores     []string
	Categories []string
	Counts     [][]float64
}

// CrossTabulate builds the store × category contingency table of transaction
// counts.
func CrossTabulate(records []domain.SaleRecord) ContingencyTable {
	storeSet := make(map[string]bool)
	categorySet := make(map[string]bool)
	counts := make(map[string]map[string]float64)
	for _, r := range records {
		storeSet[r.StoreLocation] = true
		categorySet[r.Category] = true
		if counts[r.StoreLocation] == nil {
			counts[r.StoreLocation] = make(map[string]float64)
		}
		counts[r.StoreLocation][r.Category]++
	}

	table := ContingencyTable{}
	for s := range storeSet {
		table.Stores = append(table.Stores, s)
	}
	for c := range categorySet {
		table.Categories = append(table.Categories, c)
	}
	sort.Strings(table.Stores)
	sort.Strings(table.Categories)

	table.Counts = make([][]float64, len(table.Stores))
	for i, s := range table.Stores {
		table.Counts[i] = make([]float64, len(table.Categories))
		for j, c := range table.Categories {
			table.Counts[i][j] = counts[s][c]
		}
	}
	return table
}

// CategoryIndependence chi-square tests whether the distribution of product
// categories differs by store.
func CategoryIndependence(records []domain.SaleRecord) (ChiSquareResult, ContingencyTable, error) {
	table := CrossTabulate(records)
	result, err := ChiSquareIndependence(table.Counts)
	if err != nil {
		return ChiSquareResult{}, table, err
	}
	return result, table, nil
}

// PeakHourResult is one store's peak-versus-off-peak comparison.
type PeakHourResult struct {
	Store       string
	PeakMean    float64
	OffPeakMean float64
	TTestResult
}

// PeakHourEffect t-tests, per store, transaction amounts in the [7,11]
// morning window against all other hours.
func PeakHourEffect(records []domain.SaleRecord) ([]PeakHourResult, error) {
	peak := make(map[string][]float64)
	offPeak := make(map[string][]float64)
	storeSet := make(map[string]bool)
	for _, r := range records {
		h := r.Hour()
		if h < 0 {
			continue
		}
		storeSet[r.StoreLocation] = true
		if h >= PeakHourStart && h <= PeakHourEnd {
			peak[r.StoreLocation] = append(peak[r.StoreLocation], r.TotalAmount)
		} else {
			offPeak[r.StoreLocation] = append(offPeak[r.StoreLocation], r.TotalAmount)
		}
	}

	locations := make([]string, 0, len(storeSet))
	for loc := range storeSet {
		locations = append(locations, loc)
	}
	sort.Strings(locations)

	var results []PeakHourResult
	for _, loc := range locations {
		tt, err := TTest(peak[loc], offPeak[loc])
		if err != nil {
			return nil, fmt.Errorf("peak-hour t-test for %s: %w", loc, err)
		}
		results = append(results, PeakHourResult{
			Store:       loc,
			PeakMean:    tt.MeanA,
			OffPeakMean: tt.MeanB,
			TTestResult: tt,
		})
	}
	return results, nil
}

// WeekendResult is the weekday-versus-weekend comparison.
type WeekendResult struct {
	WeekdayMean float64
	WeekendMean float64
	TTestResult
}

// WeekendEffect t-tests weekday transaction amounts against the
// Saturday/Sunday subset.
func WeekendEffect(records []domain.SaleRecord) (WeekendResult, error) {
	var weekday, weekend []float64
	for _, r := range records {
		if r.IsWeekend() {
			weekend = append(weekend, r.TotalAmount)
		} else {
			weekday = append(weekday, r.TotalAmount)
		}
	}

	tt, err := TTest(weekday, weekend)
	if err != nil {
		return WeekendResult{}, fmt.Errorf("weekday/weekend t-test: %w", err)
	}
	return WeekendResult{
		WeekdayMean: tt.MeanA,
		WeekendMean: tt.MeanB,
		TTestResult: tt,
	}, nil
}
