package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/GitAnuj13/coffe-sales-project/internal/errors"
	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

func day(d int) time.Time {
	return time.Date(2023, time.June, d, 0, 0, 0, 0, time.UTC)
}

func rawSale(txID int64, storeID int64, location string, productID int64, qty int64, price float64) domain.RawSale {
	return domain.RawSale{
		TransactionID:   txID,
		TransactionDate: day(1),
		TransactionTime: "08:15:00",
		TransactionQty:  qty,
		StoreID:         storeID,
		StoreLocation:   location,
		ProductID:       productID,
		ProductCategory: "Coffee",
		ProductType:     "Brewed",
		ProductDetail:   "House Blend",
		UnitPrice:       price,
	}
}

func TestNormalizeWorkedExample(t *testing.T) {
	// Store A sells product X (qty 2 @ 3.00) and product Y (qty 1 @ 5.00);
	// store B sells product X (qty 1 @ 3.00).
	rows := []domain.RawSale{
		rawSale(1, 1, "Store A", 100, 2, 3.00),
		rawSale(2, 1, "Store A", 101, 1, 5.00),
		rawSale(3, 2, "Store B", 100, 1, 3.00),
	}
	rows[1].ProductDetail = "Single Origin"

	ds, err := Normalize(rows)
	require.NoError(t, err)

	require.Len(t, ds.Stores, 2)
	assert.Equal(t, domain.Store{StoreID: 1, Location: "Store A"}, ds.Stores[0])
	assert.Equal(t, domain.Store{StoreID: 2, Location: "Store B"}, ds.Stores[1])

	require.Len(t, ds.Products, 2)
	// Product X observed twice at the same price keeps that price as mean.
	assert.Equal(t, int64(100), ds.Products[0].ProductID)
	assert.InDelta(t, 3.00, ds.Products[0].UnitPrice, 1e-9)
	assert.Equal(t, int64(101), ds.Products[1].ProductID)
	assert.InDelta(t, 5.00, ds.Products[1].UnitPrice, 1e-9)

	require.Len(t, ds.Transactions, 3)
}

func TestNormalizeMeanUnitPrice(t *testing.T) {
	rows := []domain.RawSale{
		rawSale(1, 1, "Store A", 100, 1, 3.00),
		rawSale(2, 1, "Store A", 100, 1, 4.00),
		rawSale(3, 1, "Store A", 100, 1, 5.00),
	}

	ds, err := Normalize(rows)
	require.NoError(t, err)
	require.Len(t, ds.Products, 1)
	assert.InDelta(t, 4.00, ds.Products[0].UnitPrice, 1e-9)
}

func TestNormalizeInconsistentProductAttributes(t *testing.T) {
	rows := []domain.RawSale{
		rawSale(1, 1, "Store A", 100, 1, 3.00),
		rawSale(2, 1, "Store A", 100, 1, 3.00),
	}
	rows[1].ProductCategory = "Tea"

	_, err := Normalize(rows)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeBadData, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "inconsistent attributes")
}

func TestNormalizeDropsExactDuplicates(t *testing.T) {
	rows := []domain.RawSale{
		rawSale(1, 1, "Store A", 100, 2, 3.00),
		rawSale(1, 1, "Store A", 100, 2, 3.00),
		rawSale(2, 1, "Store A", 100, 1, 3.00),
	}

	ds, err := Normalize(rows)
	require.NoError(t, err)
	assert.Len(t, ds.Transactions, 2)
	assert.Len(t, ds.Stores, 1)
}

func TestNormalizeEmptyInput(t *testing.T) {
	_, err := Normalize(nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeBadData, apperrors.CodeOf(err))
}

func TestNormalizeReferentialIntegrity(t *testing.T) {
	rows := []domain.RawSale{
		rawSale(1, 1, "Store A", 100, 2, 3.00),
		rawSale(2, 1, "Store A", 101, 1, 5.00),
		rawSale(3, 2, "Store B", 100, 1, 3.00),
		rawSale(4, 3, "Store C", 102, 4, 2.50),
	}
	rows[1].ProductDetail = "Single Origin"
	rows[3].ProductDetail = "Cold Brew"

	ds, err := Normalize(rows)
	require.NoError(t, err)

	storeIDs := make(map[int64]bool)
	for _, s := range ds.Stores {
		storeIDs[s.StoreID] = true
	}
	productIDs := make(map[int64]bool)
	for _, p := range ds.Products {
		productIDs[p.ProductID] = true
	}
	for _, tx := range ds.Transactions {
		assert.True(t, storeIDs[tx.StoreID], "transaction %d references unknown store", tx.TransactionID)
		assert.True(t, productIDs[tx.ProductID], "transaction %d references unknown product", tx.TransactionID)
	}
}
