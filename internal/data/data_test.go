package data

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GitAnuj13/coffe-sales-project/internal/ingest"
	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testDataset() *ingest.Dataset {
	date := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	return &ingest.Dataset{
		Stores: []domain.Store{
			{StoreID: 1, Location: "Store A"},
			{StoreID: 2, Location: "Store B"},
		},
		Products: []domain.Product{
			{ProductID: 100, Category: "Coffee", Type: "Brewed", Detail: "House Blend", UnitPrice: 3.00},
			{ProductID: 101, Category: "Tea", Type: "Chai", Detail: "Morning Chai", UnitPrice: 5.00},
		},
		Transactions: []domain.Transaction{
			{TransactionID: 1, Date: date, Time: "08:00:00", Qty: 2, StoreID: 1, ProductID: 100},
			{TransactionID: 2, Date: date, Time: "09:30:00", Qty: 1, StoreID: 1, ProductID: 101},
			{TransactionID: 3, Date: date, Time: "10:15:00", Qty: 1, StoreID: 2, ProductID: 100},
		},
	}
}

func TestReplaceAndCountRows(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Replace(db, testDataset()))

	counts, err := CountRows(db)
	require.NoError(t, err)
	assert.Equal(t, Counts{Stores: 2, Products: 2, Transactions: 3}, counts)
}

func TestReplaceIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ds := testDataset()

	require.NoError(t, Replace(db, ds))
	require.NoError(t, Replace(db, ds))

	counts, err := CountRows(db)
	require.NoError(t, err)
	// Full replace, not accumulate: a second load leaves identical counts.
	assert.Equal(t, Counts{Stores: 2, Products: 2, Transactions: 3}, counts)
}

func TestJoinedView(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Replace(db, testDataset()))

	records, err := JoinedView(db, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Worked example: total revenue 2*3 + 1*5 + 1*3 = 14.00.
	var total, storeA, storeB float64
	for _, r := range records {
		total += r.TotalAmount
		switch r.StoreLocation {
		case "Store A":
			storeA += r.TotalAmount
		case "Store B":
			storeB += r.TotalAmount
		}
	}
	assert.InDelta(t, 14.00, total, 1e-9)
	assert.InDelta(t, 11.00, storeA, 1e-9)
	assert.InDelta(t, 3.00, storeB, 1e-9)

	first := records[0]
	assert.Equal(t, int64(1), first.TransactionID)
	assert.Equal(t, "2023-06-01", first.Date.Format("2006-01-02"))
	assert.Equal(t, "Store A", first.StoreLocation)
	assert.Equal(t, "Coffee", first.Category)
	assert.InDelta(t, 6.00, first.TotalAmount, 1e-9)
}

func TestJoinedViewEnforcesReferences(t *testing.T) {
	db := openTestDB(t)
	ds := testDataset()
	// A transaction referencing an unknown product drops out of the join.
	ds.Transactions = append(ds.Transactions, domain.Transaction{
		TransactionID: 4,
		Date:          time.Date(2023, time.June, 2, 0, 0, 0, 0, time.UTC),
		Time:          "11:00:00",
		Qty:           1,
		StoreID:       1,
		ProductID:     999,
	})
	require.NoError(t, Replace(db, ds))

	records, err := JoinedView(db, nil)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
