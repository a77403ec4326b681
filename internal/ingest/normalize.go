package ingest

import (
	"fmt"
	"sort"

	apperrors "github.com/GitAnuj13/coffe-sales-project/internal/errors"
	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

// Dataset holds the three normalized tables produced from the raw workbook
// rows, ready for a full-replace load.
type Dataset struct {
	Stores       []domain.Store
	Products     []domain.Product
	Transactions []domain.Transaction
}

// Normalize splits the flat rows into deduplicated stores, products and
// transactions.
//
// Product category, type and detail are assumed constant per product id; a
// mismatch is reported as an error instead of silently taking the first
// observed value. The stored unit price is the arithmetic mean across all
// rows sharing the id.
func Normalize(rows []domain.RawSale) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, apperrors.New(apperrors.CodeBadData, "no transaction rows to normalize")
	}

	ds := &Dataset{
		Stores:       extractStores(rows),
		Transactions: extractTransactions(rows),
	}

	products, err := extractProducts(rows)
	if err != nil {
		return nil, err
	}
	ds.Products = products

	return ds, nil
}

// extractStores projects (store_id, store_location) and drops exact
// duplicates, preserving first-observed order.
func extractStores(rows []domain.RawSale) []domain.Store {
	seen := make(map[domain.Store]bool)
	var stores []domain.Store
	for _, row := range rows {
		s := domain.Store{StoreID: row.StoreID, Location: row.StoreLocation}
		if seen[s] {
			continue
		}
		seen[s] = true
		stores = append(stores, s)
	}
	return stores
}

// extractProducts groups rows by product id, validating that the descriptive
// attributes are constant within each id and averaging the observed unit
// prices. Products come back sorted by id.
func extractProducts(rows []domain.RawSale) ([]domain.Product, error) {
	type accumulator struct {
		first    domain.RawSale
		priceSum float64
		count    int
	}

	groups := make(map[int64]*accumulator)
	for _, row := range rows {
		acc, ok := groups[row.ProductID]
		if !ok {
			groups[row.ProductID] = &accumulator{first: row, priceSum: row.UnitPrice, count: 1}
			continue
		}
		if row.ProductCategory != acc.first.ProductCategory ||
			row.ProductType != acc.first.ProductType ||
			row.ProductDetail != acc.first.ProductDetail {
			return nil, apperrors.New(apperrors.CodeBadData,
				fmt.Sprintf("product %d has inconsistent attributes: (%s/%s/%s) vs (%s/%s/%s)",
					row.ProductID,
					acc.first.ProductCategory, acc.first.ProductType, acc.first.ProductDetail,
					row.ProductCategory, row.ProductType, row.ProductDetail))
		}
		acc.priceSum += row.UnitPrice
		acc.count++
	}

	products := make([]domain.Product, 0, len(groups))
	for id, acc := range groups {
		products = append(products, domain.Product{
			ProductID: id,
			Category:  acc.first.ProductCategory,
			Type:      acc.first.ProductType,
			Detail:    acc.first.ProductDetail,
			UnitPrice: acc.priceSum / float64(acc.count),
		})
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ProductID < products[j].ProductID
	})
	return products, nil
}

// extractTransactions projects the transaction columns and drops exact
// duplicate rows, preserving order.
func extractTransactions(rows []domain.RawSale) []domain.Transaction {
	type key struct {
		id        int64
		date      string
		time      string
		qty       int64
		storeID   int64
		productID int64
	}

	seen := make(map[key]bool, len(rows))
	var txs []domain.Transaction
	for _, row := range rows {
		k := key{
			id:        row.TransactionID,
			date:      row.TransactionDate.Format("2006-01-02"),
			time:      row.TransactionTime,
			qty:       row.TransactionQty,
			storeID:   row.StoreID,
			productID: row.ProductID,
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		txs = append(txs, domain.Transaction{
			TransactionID: row.TransactionID,
			Date:          row.TransactionDate,
			Time:          row.TransactionTime,
			Qty:           row.TransactionQty,
			StoreID:       row.StoreID,
			ProductID:     row.ProductID,
		})
	}
	return txs
}
