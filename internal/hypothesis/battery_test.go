package hypothesis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

// batteryFixture builds records for two stores with clearly separated
// transaction amounts, spread across hours and days of the week.
func batteryFixture() []domain.SaleRecord {
	// 2023-06-05 is a Monday.
	base := time.Date(2023, time.June, 5, 0, 0, 0, 0, time.UTC)
	var records []domain.SaleRecord
	id := int64(1)

	add := func(day int, hour int, location, category string, amount float64) {
		records = append(records, domain.SaleRecord{
			TransactionID: id,
			Date:          base.AddDate(0, 0, day),
			Time:          fmt.Sprintf("%02d:15:00", hour),
			Qty:           1,
			StoreLocation: location,
			Category:      category,
			UnitPrice:     amount,
			TotalAmount:   amount,
		})
		id++
	}

	for day := 0; day < 7; day++ {
		for _, hour := range []int{8, 9, 10, 14, 15, 16} {
			// Downtown runs higher tickets than Uptown; mornings run higher
			// than afternoons.
			bump := 0.0
			if hour <= 11 {
				bump = 2.0
			}
			add(day, hour, "Downtown", "Coffee", 6.0+bump+0.1*float64(day))
			add(day, hour, "Downtown", "Bakery", 5.5+bump+0.1*float64(day))
			add(day, hour, "Uptown", "Coffee", 3.0+bump+0.1*float64(day))
			add(day, hour, "Uptown", "Tea", 2.5+bump+0.1*float64(day))
		}
	}
	return records
}

func TestStoreANOVA(t *testing.T) {
	res, err := StoreANOVA(batteryFixture())
	require.NoError(t, err)
	assert.Equal(t, 1, res.DFBetw)
	assert.Greater(t, res.F, 1.0)
	assert.Less(t, res.P, 0.05)
}

func TestPairwiseAgainstReference(t *testing.T) {
	records := batteryFixture()

	results, err := PairwiseAgainstReference(records, "Downtown")
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "Uptown", r.Store)
	assert.True(t, r.RefHigher())
	assert.Less(t, r.P, 0.05)
}

func TestPairwiseUnknownReference(t *testing.T) {
	_, err := PairwiseAgainstReference(batteryFixture(), "Nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference store")
}

func TestCrossTabulate(t *testing.T) {
	table := CrossTabulate(batteryFixture())

	assert.Equal(t, []string{"Downtown", "Uptown"}, table.Stores)
	assert.Equal(t, []string{"Bakery", "Coffee", "Tea"}, table.Categories)

	// Downtown sold no Tea, Uptown no Bakery.
	assert.Equal(t, float64(0), table.Counts[0][2])
	assert.Equal(t, float64(0), table.Counts[1][0])
	// 7 days × 6 hours of Coffee at each store.
	assert.Equal(t, float64(42), table.Counts[0][1])
	assert.Equal(t, float64(42), table.Counts[1][1])
}

func TestCategoryIndependence(t *testing.T) {
	res, table, err := CategoryIndependence(batteryFixture())
	require.NoError(t, err)
	assert.Equal(t, 2, res.DF)
	assert.Len(t, table.Stores, 2)
	// Categories are fully segregated by store, so independence is rejected.
	assert.Less(t, res.P, 0.001)
}

func TestPeakHourEffect(t *testing.T) {
	results, err := PeakHourEffect(batteryFixture())
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.Greater(t, r.PeakMean, r.OffPeakMean, "store %s", r.Store)
		assert.Less(t, r.P, 0.05, "store %s", r.Store)
	}
}

func TestWeekendEffect(t *testing.T) {
	// Weekend rows carry visibly higher amounts.
	base := time.Date(2023, time.June, 5, 0, 0, 0, 0, time.UTC)
	var records []domain.SaleRecord
	for day := 0; day < 14; day++ {
		date := base.AddDate(0, 0, day)
		amount := 4.0 + 0.05*float64(day%5)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			amount += 3.0
		}
		for i := 0; i < 5; i++ {
			records = append(records, domain.SaleRecord{
				TransactionID: int64(day*10 + i),
				Date:          date,
				Time:          "10:00:00",
				Qty:           1,
				StoreLocation: "Downtown",
				Category:      "Coffee",
				TotalAmount:   amount + 0.01*float64(i),
			})
		}
	}

	res, err := WeekendEffect(records)
	require.NoError(t, err)
	assert.Greater(t, res.WeekendMean, res.WeekdayMean)
	assert.Less(t, res.P, 0.05)
}

func TestCorrelations(t *testing.T) {
	// Amount scales linearly with quantity at varying prices.
	base := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	var records []domain.SaleRecord
	for i := 0; i < 30; i++ {
		qty := int64(i%5 + 1)
		price := 3.0 + 0.25*float64(i%4)
		records = append(records, domain.SaleRecord{
			TransactionID: int64(i),
			Date:          base.AddDate(0, 0, i%10),
			Time:          fmt.Sprintf("%02d:00:00", 7+i%12),
			Qty:           qty,
			UnitPrice:     price,
			TotalAmount:   float64(qty) * price,
		})
	}

	m := Correlations(records)
	require.Len(t, m.Features, 6)
	assert.InDelta(t, 1.0, m.At("total_amount", "total_amount"), 1e-9)
	assert.Greater(t, m.At("transaction_qty", "total_amount"), 0.9)
	// Symmetry.
	assert.InDelta(t, m.At("unit_price", "total_amount"), m.At("total_amount", "unit_price"), 1e-9)
}
