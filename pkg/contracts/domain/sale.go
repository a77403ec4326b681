package domain

import (
	"time"
)

// RawSale represents one flat row of the point-of-sale workbook before
// normalization. Store and product attributes are still embedded.
type RawSale struct {
	TransactionID   int64     `json:"transaction_id"`
	TransactionDate time.Time `json:"transaction_date"`
	TransactionTime string    `json:"transaction_time"`
	TransactionQty  int64     `json:"transaction_qty"`
	StoreID         int64     `json:"store_id"`
	StoreLocation   string    `json:"store_location"`
	ProductID       int64     `json:"product_id"`
	ProductCategory string    `json:"product_category"`
	ProductType     string    `json:"product_type"`
	ProductDetail   string    `json:"product_detail"`
	UnitPrice       float64   `json:"unit_price"`
}

// Store is one retail location, deduplicated from the raw rows.
type Store struct {
	StoreID  int64  `json:"store_id" db:"store_id"`
	Location string `json:"store_location" db:"store_location"`
}

// Product is one catalog item. UnitPrice is the arithmetic mean of the
// prices observed across all raw rows for the product id, not a canonical
// master price; revenue totals computed from it approximate the raw data.
type Product struct {
	ProductID int64   `json:"product_id" db:"product_id"`
	Category  string  `json:"product_category" db:"product_category"`
	Type      string  `json:"product_type" db:"product_type"`
	Detail    string  `json:"product_detail" db:"product_detail"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
}

// Transaction is one purchase line referencing a store and product by id.
type Transaction struct {
	TransactionID int64     `json:"transaction_id" db:"transaction_id"`
	Date          time.Time `json:"transaction_date" db:"transaction_date"`
	Time          string    `json:"transaction_time" db:"transaction_time"`
	Qty           int64     `json:"transaction_qty" db:"transaction_qty"`
	StoreID       int64     `json:"store_id" db:"store_id"`
	ProductID     int64     `json:"product_id" db:"product_id"`
}

// SaleRecord is the joined view: transaction ⨝ store ⨝ product with the
// line total computed. It is recomputed on every read and never persisted.
type SaleRecord struct {
	TransactionID int64     `json:"transaction_id" db:"transaction_id"`
	Date          time.Time `json:"transaction_date" db:"transaction_date"`
	Time          string    `json:"transaction_time" db:"transaction_time"`
	Qty           int64     `json:"transaction_qty" db:"transaction_qty"`
	StoreID       int64     `json:"store_id" db:"store_id"`
	StoreLocation string    `json:"store_location" db:"store_location"`
	ProductID     int64     `json:"product_id" db:"product_id"`
	Category      string    `json:"product_category" db:"product_category"`
	ProductType   string    `json:"product_type" db:"product_type"`
	ProductDetail string    `json:"product_detail" db:"product_detail"`
	UnitPrice     float64   `json:"unit_price" db:"unit_price"`
	TotalAmount   float64   `json:"total_amount" db:"total_amount"`
}

// Hour returns the hour of day parsed from the HH:MM:SS transaction time,
// or -1 when the field cannot be parsed.
func (r SaleRecord) Hour() int {
	t, err := time.Parse("15:04:05", r.Time)
	if err != nil {
		return -1
	}
	return t.Hour()
}

// Weekday returns the day of week of the transaction date.
func (r SaleRecord) Weekday() time.Weekday {
	return r.Date.Weekday()
}

// IsWeekend reports whether the transaction fell on Saturday or Sunday.
func (r SaleRecord) IsWeekend() bool {
	wd := r.Date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DailyMetrics is one row of the daily aggregation used by forecasting:
// transaction count, revenue sum and items sold for a calendar date.
type DailyMetrics struct {
	Date         time.Time `json:"date"`
	Transactions int       `json:"num_transactions"`
	Revenue      float64   `json:"revenue"`
	ItemsSold    int64     `json:"items_sold"`
}
