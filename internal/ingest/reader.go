// Package ingest reads the raw point-of-sale workbook and normalizes it into
// the three relational tables (stores, products, transactions).
package ingest

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

// RequiredColumns are the workbook columns the reader must locate before any
// row can be parsed.
var RequiredColumns = []string{
	"transaction_id",
	"transaction_date",
	"transaction_time",
	"transaction_qty",
	"store_id",
	"store_location",
	"product_id",
	"product_category",
	"product_type",
	"product_detail",
	"unit_price",
}

// dateFormats covers the date renderings excelize produces for the sales
// workbook depending on the cell style.
var dateFormats = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006-01-02 15:04:05",
	"01-02-06",
}

// Workbook is the outcome of reading the raw spreadsheet: parsed rows, the
// missing-value census over the required columns, and the number of rows
// skipped as unparseable.
type Workbook struct {
	Rows    []domain.RawSale
	Missing map[string]int
	Skipped int
}

// ReadWorkbook opens the Excel file, locates the sheet and header row
// carrying the transaction columns, and parses every data row. Rows with
// unparseable key fields are skipped with a warning rather than aborting the
// load.
func ReadWorkbook(path string, logger *slog.Logger) (*Workbook, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, headerIdx, sheet, err := findTransactionSheet(f)
	if err != nil {
		return nil, err
	}
	logger.Info("found transaction data",
		slog.String("sheet", sheet),
		slog.Int("header_row", headerIdx),
		slog.Int("total_rows", len(rows)))

	columns := mapColumns(rows[headerIdx])

	wb := &Workbook{Missing: make(map[string]int)}
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}

		wb.countMissing(row, columns)

		sale, err := parseRow(row, columns)
		if err != nil {
			logger.Warn("skipping unparseable row",
				slog.Int("row", i+1),
				slog.String("error", err.Error()))
			wb.Skipped++
			continue
		}
		wb.Rows = append(wb.Rows, sale)
	}

	logger.Info("workbook read",
		slog.Int("transactions", len(wb.Rows)),
		slog.Int("skipped", wb.Skipped))
	return wb, nil
}

// findTransactionSheet scans the workbook for a sheet whose header row
// contains every required column.
func findTransactionSheet(f *excelize.File) ([][]string, int, string, error) {
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		for i, row := range rows {
			if i > 10 {
				break // headers live near the top
			}
			if hasAllColumns(row) {
				return rows, i, name, nil
			}
		}
	}
	return nil, 0, "", fmt.Errorf("no sheet contains the required transaction columns %v", RequiredColumns)
}

func hasAllColumns(row []string) bool {
	present := make(map[string]bool, len(row))
	for _, cell := range row {
		present[normalizeHeader(cell)] = true
	}
	for _, col := range RequiredColumns {
		if !present[col] {
			return false
		}
	}
	return true
}

// mapColumns maps required column names to their positions in the header row.
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(RequiredColumns))
	for idx, cell := range header {
		name := normalizeHeader(cell)
		if _, ok := columns[name]; !ok {
			columns[name] = idx
		}
	}
	return columns
}

func normalizeHeader(cell string) string {
	return strings.ToLower(strings.TrimSpace(cell))
}

func (wb *Workbook) countMissing(row []string, columns map[string]int) {
	for _, col := range RequiredColumns {
		if cellValue(row, columns[col]) == "" {
			wb.Missing[col]++
		}
	}
}

// MissingTotal returns the total number of empty cells across the required
// columns.
func (wb *Workbook) MissingTotal() int {
	total := 0
	for _, n := range wb.Missing {
		total += n
	}
	return total
}

func parseRow(row []string, columns map[string]int) (domain.RawSale, error) {
	var sale domain.RawSale

	id, err := strconv.ParseInt(cellValue(row, columns["transaction_id"]), 10, 64)
	if err != nil {
		return sale, fmt.Errorf("transaction_id: %w", err)
	}
	date, err := parseDate(cellValue(row, columns["transaction_date"]))
	if err != nil {
		return sale, fmt.Errorf("transaction_date: %w", err)
	}
	qty, err := strconv.ParseInt(cellValue(row, columns["transaction_qty"]), 10, 64)
	if err != nil {
		return sale, fmt.Errorf("transaction_qty: %w", err)
	}
	storeID, err := strconv.ParseInt(cellValue(row, columns["store_id"]), 10, 64)
	if err != nil {
		return sale, fmt.Errorf("store_id: %w", err)
	}
	productID, err := strconv.ParseInt(cellValue(row, columns["product_id"]), 10, 64)
	if err != nil {
		return sale, fmt.Errorf("product_id: %w", err)
	}
	price, err := strconv.ParseFloat(cellValue(row, columns["unit_price"]), 64)
	if err != nil {
		return sale, fmt.Errorf("unit_price: %w", err)
	}

	sale = domain.RawSale{
		TransactionID:   id,
		TransactionDate: date,
		TransactionTime: normalizeTime(cellValue(row, columns["transaction_time"])),
		TransactionQty:  qty,
		StoreID:         storeID,
		StoreLocation:   cellValue(row, columns["store_location"]),
		ProductID:       productID,
		ProductCategory: cellValue(row, columns["product_category"]),
		ProductType:     cellValue(row, columns["product_type"]),
		ProductDetail:   cellValue(row, columns["product_detail"]),
		UnitPrice:       price,
	}
	return sale, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// normalizeTime pads a time-of-day cell to HH:MM:SS.
func normalizeTime(value string) string {
	t, err := time.Parse("15:04:05", value)
	if err != nil {
		if t, err = time.Parse("15:04", value); err != nil {
			return value
		}
	}
	return t.Format("15:04:05")
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
