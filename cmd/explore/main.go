package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/GitAnuj13/coffe-sales-project/internal/analytics"
	"github.com/GitAnuj13/coffe-sales-project/internal/charts"
	"github.com/GitAnuj13/coffe-sales-project/internal/config"
	"github.com/GitAnuj13/coffe-sales-project/internal/data"
	"github.com/GitAnuj13/coffe-sales-project/internal/infrastructure"
	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	outDir := flag.String("out", "", "directory for chart PNGs (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
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

	logger.Info("Starting exploratory analysis",
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("output_dir", cfg.Paths.OutputDir))

	db, err := data.Open(cfg.Database)
	if err != nil {
		logger.Error("Database connection failed", slog.String("error", err.Error()))
		fmt.Printf("ERROR: could not connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	records, err := data.JoinedView(db, logger)
	if err != nil {
		logger.Error("Failed to load joined view", slog.String("error", err.Error()))
		fmt.Printf("ERROR: could not load sales data: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Println("No sales data loaded; run the ingest step first")
		os.Exit(1)
	}

	fmt.Println("MAVEN ROASTERS - EXPLORATORY DATA ANALYSIS")
	fmt.Printf("Loaded %d transactions\n\n", len(records))
	logger.Info("Sales data loaded", slog.Int("records", len(records)))

	printQuality(records)
	printDescribes(records)
	printStores(records)
	printCategories(records)
	printTopProducts(records)
	printInsights(records)

	if err := renderCharts(cfg.Paths.OutputDir, records, logger); err != nil {
		logger.Error("Chart rendering failed", slog.String("error", err.Error()))
		fmt.Printf("ERROR: chart rendering failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nCharts written to %s\n", cfg.Paths.OutputDir)
	fmt.Println("Exploration complete")
}

func printQuality(records []domain.SaleRecord) {
	q := analytics.CheckQuality(records)
	fmt.Println("DATA QUALITY:")
	fmt.Printf("- Duplicate transaction IDs: %d\n", q.DuplicateTransactionIDs)
	fmt.Printf("- Negative quantities: %d\n", q.NegativeQuantities)
	fmt.Printf("- Negative prices: %d\n", q.NegativePrices)
	fmt.Printf("- Negative amounts: %d\n\n", q.NegativeAmounts)
}

func printDescribes(records []domain.SaleRecord) {
	amounts := analytics.DescribeValues(analytics.Amounts(records))
	prices := analytics.DescribeValues(analytics.UnitPrices(records))
	fmt.Println("NUMERIC SUMMARY:")
	fmt.Printf("- Transaction amount: mean $%.2f, median $%.2f, std $%.2f, range $%.2f-$%.2f\n",
		amounts.Mean, amounts.Median, amounts.Std, amounts.Min, amounts.Max)
	fmt.Printf("- Unit price: mean $%.2f, median $%.2f, std $%.2f, range $%.2f-$%.2f\n\n",
		prices.Mean, prices.Median, prices.Std, prices.Min, prices.Max)
}

func printStores(records []domain.SaleRecord) {
	fmt.Println("REVENUE BY STORE:")
	for _, s := range analytics.SummarizeStores(records) {
		fmt.Printf("- %s: $%.2f over %d transactions (avg $%.2f)\n",
			s.Location, s.TotalRevenue, s.Transactions, s.AvgTransaction)
	}
	fmt.Println()
}

func printCategories(records []domain.SaleRecord) {
	fmt.Println("REVENUE BY CATEGORY:")
	for _, c := range analytics.SummarizeCategories(records) {
		fmt.Printf("- %s: $%.2f over %d transactions\n", c.Category, c.Revenue, c.Transactions)
	}
	fmt.Println()
}

func printTopProducts(records []domain.SaleRecord) {
	fmt.Println("TOP 10 PRODUCTS BY REVENUE:")
	for i, p := range analytics.TopProducts(records, 10) {
		fmt.Printf("%2d. %s: $%.2f\n", i+1, p.Detail, p.Revenue)
	}
	fmt.Println()
}

func printInsights(records []domain.SaleRecord) {
	ins := analytics.KeyInsights(records)
	fmt.Println("KEY INSIGHTS:")
	fmt.Printf("- Total revenue: $%.2f (avg $%.2f per transaction)\n",
		ins.TotalRevenue, ins.AvgTransaction)
	fmt.Printf("- Best store: %s ($%.2f)\n", ins.BestStore, ins.BestStoreRevenue)
	fmt.Printf("- Top category: %s ($%.2f)\n", ins.TopCategory, ins.TopCategoryRevenue)
	fmt.Printf("- Peak hour: %d:00 (%d transactions)\n", ins.PeakHour, ins.PeakHourCount)
	fmt.Printf("- Busiest day: %s ($%.2f)\n", ins.BusiestDay, ins.BusiestDayRevenue)
	fmt.Printf("- Best date: %s ($%.2f)\n", ins.BestDate.Format("2006-01-02"), ins.BestDateRevenue)
	fmt.Printf("- Worst date: %s ($%.2f)\n", ins.WorstDate.Format("2006-01-02"), ins.WorstDateRevenue)
}

func renderCharts(outDir string, records []domain.SaleRecord, logger *slog.Logger) error {
	stores := analytics.SummarizeStores(records)
	storeLabels := make([]string, len(stores))
	storeRevenues := make([]float64, len(stores))
	for i, s := range stores {
		storeLabels[i] = s.Location
		storeRevenues[i] = s.TotalRevenue
	}
	if err := charts.Bar(filepath.Join(outDir, "revenue_by_store.png"),
		"Revenue by Store", "Store", "Revenue ($)", storeLabels, storeRevenues); err != nil {
		return err
	}

	categories := analytics.SummarizeCategories(records)
	catLabels := make([]string, len(categories))
	catRevenues := make([]float64, len(categories))
	for i, c := range categories {
		catLabels[i] = c.Category
		catRevenues[i] = c.Revenue
	}
	if err := charts.Bar(filepath.Join(outDir, "revenue_by_category.png"),
		"Revenue by Category", "Category", "Revenue ($)", catLabels, catRevenues); err != nil {
		return err
	}

	daily := analytics.DailyRevenue(records)
	dates := make([]time.Time, len(daily))
	revenues := make([]float64, len(daily))
	for i, d := range daily {
		dates[i] = d.Date
		revenues[i] = d.Revenue
	}
	if err := charts.TimeSeries(filepath.Join(outDir, "daily_revenue_trend.png"),
		"Daily Revenue", "Revenue ($)", dates, revenues); err != nil {
		return err
	}

	hourly := analytics.HourlyCounts(records)
	hourLabels := make([]string, 24)
	hourValues := make([]float64, 24)
	for h := 0; h < 24; h++ {
		hourLabels[h] = fmt.Sprintf("%d", h)
		hourValues[h] = float64(hourly[h])
	}
	if err := charts.Bar(filepath.Join(outDir, "hourly_pattern.png"),
		"Transactions by Hour", "Hour of day", "Transactions", hourLabels, hourValues); err != nil {
		return err
	}

	if err := charts.Histogram(filepath.Join(outDir, "price_distribution.png"),
		"Unit Price Distribution", "Unit price ($)", analytics.UnitPrices(records), 20); err != nil {
		return err
	}

	logger.Info("Charts rendered", slog.Int("count", 5), slog.String("output_dir", outDir))
	return nil
}
