// Package data is the relational boundary of the pipeline: schema creation,
// full-replace loads and the joined transaction view, over sqlite3 or
// postgres via sqlx.
package data

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/GitAnuj13/coffe-sales-project/internal/config"
	apperrors "github.com/GitAnuj13/coffe-sales-project/internal/errors"
	"github.com/GitAnuj13/coffe-sales-project/internal/ingest"
	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

// dateLayout is how transaction dates are stored; a plain ISO string keeps
// the schema identical across both drivers.
const dateLayout = "2006-01-02"

// Open connects to the configured relational store.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "connect to database").
			WithHints(apperrors.StorageHints(cfg.Name)...)
	}
	return db, nil
}

// Replace drops and recreates the three tables and loads the dataset inside
// one transaction, so a failed load never leaves the store with a mix of old
// and new rows.
func Replace(db *sqlx.DB, ds *ingest.Dataset) error {
	tx, err := db.Beginx()
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeStorage, "begin replace transaction")
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements {
		if _, err := tx.Exec(stmt); err != nil {
			return apperrors.Wrap(err, apperrors.CodeStorage, "recreate schema")
		}
	}

	for _, s := range ds.Stores {
		if _, err := tx.NamedExec(insertStore, s); err != nil {
			return apperrors.Wrap(err, apperrors.CodeStorage,
				fmt.Sprintf("insert store %d", s.StoreID))
		}
	}
	for _, p := range ds.Products {
		if _, err := tx.NamedExec(insertProduct, p); err != nil {
			return apperrors.Wrap(err, apperrors.CodeStorage,
				fmt.Sprintf("insert product %d", p.ProductID))
		}
	}
	for _, txn := range ds.Transactions {
		row := transactionRow{
			TransactionID: txn.TransactionID,
			Date:          txn.Date.Format(dateLayout),
			Time:          txn.Time,
			Qty:           txn.Qty,
			StoreID:       txn.StoreID,
			ProductID:     txn.ProductID,
		}
		if _, err := tx.NamedExec(insertTransaction, row); err != nil {
			return apperrors.Wrap(err, apperrors.CodeStorage,
				fmt.Sprintf("insert transaction %d", txn.TransactionID))
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeStorage, "commit replace transaction")
	}
	return nil
}

// Counts holds the post-load verification row counts.
type Counts struct {
	Stores       int
	Products     int
	Transactions int
}

// CountRows re-reads the row counts of the three tables for verification.
func CountRows(db *sqlx.DB) (Counts, error) {
	var c Counts
	queries := []struct {
		table string
		dest  *int
	}{
		{"stores", &c.Stores},
		{"products", &c.Products},
		{"transactions", &c.Transactions},
	}
	for _, q := range queries {
		if err := db.Get(q.dest, "SELECT COUNT(*) FROM "+q.table); err != nil {
			return c, apperrors.Wrap(err, apperrors.CodeVerification,
				fmt.Sprintf("count rows in %s", q.table))
		}
	}
	return c, nil
}

// saleRow mirrors the joined-view query; dates come back as the stored ISO
// strings and are parsed before handing records to the analysis packages.
type saleRow struct {
	TransactionID int64   `db:"transaction_id"`
	Date          string  `db:"transaction_date"`
	Time          string  `db:"transaction_time"`
	Qty           int64   `db:"transaction_qty"`
	StoreID       int64   `db:"store_id"`
	StoreLocation string  `db:"store_location"`
	ProductID     int64   `db:"product_id"`
	Category      string  `db:"product_category"`
	ProductType   string  `db:"product_type"`
	ProductDetail string  `db:"product_detail"`
	UnitPrice     float64 `db:"unit_price"`
	TotalAmount   float64 `db:"total_amount"`
}

type transactionRow struct {
	TransactionID int64  `db:"transaction_id"`
	Date          string `db:"transaction_date"`
	Time          string `db:"transaction_time"`
	Qty           int64  `db:"transaction_qty"`
	StoreID       int64  `db:"store_id"`
	ProductID     int64  `db:"product_id"`
}

// JoinedView reads transaction ⨝ store ⨝ product with the line total
// computed in SQL. The view is recomputed on every call and never cached.
func JoinedView(db *sqlx.DB, logger *slog.Logger) ([]domain.SaleRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var rows []saleRow
	if err := db.Select(&rows, joinedViewQuery); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "load joined view")
	}

	records := make([]domain.SaleRecord, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			logger.Warn("skipping record with malformed date",
				slog.Int64("transaction_id", row.TransactionID),
				slog.String("date", row.Date))
			continue
		}
		records = append(records, domain.SaleRecord{
			TransactionID: row.TransactionID,
			Date:          date,
			Time:          row.Time,
			Qty:           row.Qty,
			StoreID:       row.StoreID,
			StoreLocation: row.StoreLocation,
			ProductID:     row.ProductID,
			Category:      row.Category,
			ProductType:   row.ProductType,
			ProductDetail: row.ProductDetail,
			UnitPrice:     row.UnitPrice,
			TotalAmount:   row.TotalAmount,
		})
	}

	logger.Info("loaded joined view", slog.Int("records", len(records)))
	return records, nil
}
