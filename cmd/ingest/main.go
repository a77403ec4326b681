package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/GitAnuj13/coffe-sales-project/internal/config"
	"github.com/GitAnuj13/coffe-sales-project/internal/data"
	apperrors "github.com/GitAnuj13/coffe-sales-project/internal/errors"
	"github.com/GitAnuj13/coffe-sales-project/internal/infrastructure"
	"github.com/GitAnuj13/coffe-sales-project/internal/ingest"
	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	inputFile := flag.String("in", "", "input .xlsx workbook (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *inputFile != "" {
		cfg.Paths.InputFile = *inputFile
	}
	if err := cfg.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	logger.Info("Starting ingestion",
		slog.String("input_file", cfg.Paths.InputFile),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("dsn", cfg.Database.DSN()))

	fmt.Println("MAVEN ROASTERS - DATA INGESTION")
	fmt.Printf("Reading workbook: %s\n", cfg.Paths.InputFile)

	wb, err := ingest.ReadWorkbook(cfg.Paths.InputFile, logger)
	if err != nil {
		logger.Error("Failed to read workbook", slog.String("error", err.Error()))
		fmt.Printf("ERROR: could not read workbook: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %d rows", len(wb.Rows))
	if wb.Skipped > 0 {
		fmt.Printf(" (%d unparseable rows skipped)", wb.Skipped)
	}
	fmt.Println()
	printMissingCensus(wb)

	logger.Info("Workbook read",
		slog.Int("rows", len(wb.Rows)),
		slog.Int("skipped", wb.Skipped),
		slog.Int("missing_cells", wb.MissingTotal()))

	ds, err := ingest.Normalize(wb.Rows)
	if err != nil {
		logger.Error("Normalization failed", slog.String("error", err.Error()))
		fmt.Printf("ERROR: normalization failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Normalized: %d stores, %d products, %d transactions\n",
		len(ds.Stores), len(ds.Products), len(ds.Transactions))
	if first, last, ok := dateRange(ds.Transactions); ok {
		fmt.Printf("Date range: %s to %s\n", first.Format("2006-01-02"), last.Format("2006-01-02"))
		logger.Info("Dataset normalized",
			slog.Int("stores", len(ds.Stores)),
			slog.Int("products", len(ds.Products)),
			slog.Int("transactions", len(ds.Transactions)),
			slog.String("first_date", first.Format("2006-01-02")),
			slog.String("last_date", last.Format("2006-01-02")))
	}

	db, err := data.Open(cfg.Database)
	if err != nil {
		logger.Error("Database connection failed", slog.String("error", err.Error()))
		fmt.Printf("ERROR: could not connect to database: %v\n", err)
		printHints(err)
		os.Exit(1)
	}
	defer db.Close()

	// A load failure is reported but does not abort the run; verification
	// below still shows what the database currently holds.
	loadFailed := false
	if err := data.Replace(db, ds); err != nil {
		loadFailed = true
		logger.Error("Database load failed", slog.String("error", err.Error()))
		fmt.Printf("WARNING: database load failed: %v\n", err)
		printHints(err)
	} else {
		fmt.Println("Database load complete (full replace)")
		logger.Info("Database load complete")
	}

	// Verification opens a fresh connection so it sees exactly what a later
	// job will see, not this process's session state.
	fmt.Println("\nVERIFICATION:")
	verifyDB, err := data.Open(cfg.Database)
	if err != nil {
		logger.Error("Verification connection failed", slog.String("error", err.Error()))
		fmt.Printf("ERROR: verification connection failed: %v\n", err)
		os.Exit(1)
	}
	defer verifyDB.Close()
	counts, err := data.CountRows(verifyDB)
	if err != nil {
		logger.Error("Verification query failed", slog.String("error", err.Error()))
		fmt.Printf("ERROR: verification failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("- stores:       %d\n", counts.Stores)
	fmt.Printf("- products:     %d\n", counts.Products)
	fmt.Printf("- transactions: %d\n", counts.Transactions)
	logger.Info("Verification complete",
		slog.Int("stores", counts.Stores),
		slog.Int("products", counts.Products),
		slog.Int("transactions", counts.Transactions))

	if loadFailed {
		os.Exit(1)
	}
	fmt.Println("Ingestion complete")
}

// dateRange returns the earliest and latest transaction dates.
func dateRange(txs []domain.Transaction) (first, last time.Time, ok bool) {
	if len(txs) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first, last = txs[0].Date, txs[0].Date
	for _, tx := range txs[1:] {
		if tx.Date.Before(first) {
			first = tx.Date
		}
		if tx.Date.After(last) {
			last = tx.Date
		}
	}
	return first, last, true
}

// printMissingCensus prints the per-column missing-value counts, columns with
// none omitted.
func printMissingCensus(wb *ingest.Workbook) {
	if wb.MissingTotal() == 0 {
		fmt.Println("Missing values: none")
		return
	}
	cols := make([]string, 0, len(wb.Missing))
	for col, n := range wb.Missing {
		if n > 0 {
			cols = append(cols, col)
		}
	}
	sort.Strings(cols)
	fmt.Printf("Missing values (%d cells):\n", wb.MissingTotal())
	for _, col := range cols {
		fmt.Printf("- %s: %d\n", col, wb.Missing[col])
	}
}

func printHints(err error) {
	hints := apperrors.HintsOf(err)
	if len(hints) == 0 {
		return
	}
	fmt.Println("Troubleshooting checklist:")
	for _, h := range hints {
		fmt.Printf("- %s\n", h)
	}
}
