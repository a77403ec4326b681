package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/GitAnuj13/coffe-sales-project/internal/analytics"
	"github.com/GitAnuj13/coffe-sales-project/internal/charts"
	"github.com/GitAnuj13/coffe-sales-project/internal/config"
	"github.com/GitAnuj13/coffe-sales-project/internal/data"
	"github.com/GitAnuj13/coffe-sales-project/internal/hypothesis"
	"github.com/GitAnuj13/coffe-sales-project/internal/infrastructure"
	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	reference := flag.String("reference", "", "reference store for pairwise tests (overrides config)")
	outDir := flag.String("out", "", "directory for chart PNGs (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *reference != "" {
		cfg.Analysis.ReferenceStore = *reference
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

	logger.Info("Starting hypothesis testing",
		slog.String("reference_store", cfg.Analysis.ReferenceStore),
		slog.Float64("alpha", cfg.Analysis.Alpha))

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

	alpha := cfg.Analysis.Alpha
	fmt.Println("MAVEN ROASTERS - STATISTICAL ANALYSIS")
	fmt.Printf("Loaded %d transactions, significance level %.2f\n\n", len(records), alpha)

	printPerStoreStats(records)
	runANOVA(records, alpha, logger)
	runPairwise(records, cfg.Analysis.ReferenceStore, alpha, logger)
	runChiSquare(records, alpha, logger)
	runPeakHour(records, alpha, logger)
	runWeekend(records, alpha, logger)
	corr := runCorrelations(records)

	if err := renderCharts(cfg.Paths.OutputDir, records, corr); err != nil {
		logger.Error("Chart rendering failed", slog.String("error", err.Error()))
		fmt.Printf("ERROR: chart rendering failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nCharts written to %s\n", cfg.Paths.OutputDir)
	fmt.Println("Analysis complete")
}

func verdict(p, alpha float64) string {
	if p < alpha {
		return "SIGNIFICANT"
	}
	return "not significant"
}

func printPerStoreStats(records []domain.SaleRecord) {
	fmt.Println("TRANSACTION AMOUNT BY STORE:")
	byStore := make(map[string][]float64)
	for _, r := range records {
		byStore[r.StoreLocation] = append(byStore[r.StoreLocation], r.TotalAmount)
	}
	for _, s := range analytics.SummarizeStores(records) {
		d := analytics.DescribeValues(byStore[s.Location])
		fmt.Printf("- %s: n=%d, mean $%.2f, median $%.2f, std $%.2f\n",
			s.Location, d.Count, d.Mean, d.Median, d.Std)
	}
	fmt.Println()
}

func runANOVA(records []domain.SaleRecord, alpha float64, logger *slog.Logger) {
	res, err := hypothesis.StoreANOVA(records)
	if err != nil {
		logger.Warn("Store ANOVA skipped", slog.String("error", err.Error()))
		fmt.Printf("Store ANOVA skipped: %v\n\n", err)
		return
	}
	fmt.Println("ONE-WAY ANOVA (transaction amount across stores):")
	fmt.Printf("- F(%d, %d) = %.4f, p = %.4g: %s\n\n",
		res.DFBetw, res.DFWith, res.F, res.P, verdict(res.P, alpha))
}

func runPairwise(records []domain.SaleRecord, reference string, alpha float64, logger *slog.Logger) {
	results, err := hypothesis.PairwiseAgainstReference(records, reference)
	if err != nil {
		logger.Warn("Pairwise t-tests skipped", slog.String("error", err.Error()))
		fmt.Printf("Pairwise t-tests skipped: %v\n\n", err)
		return
	}
	fmt.Printf("PAIRWISE T-TESTS VS %s:\n", reference)
	for _, r := range results {
		direction := "lower"
		if r.RefHigher() {
			direction = "higher"
		}
		fmt.Printf("- vs %s: t = %.4f, p = %.4g (%s mean is %s): %s\n",
			r.Store, r.T, r.P, reference, direction, verdict(r.P, alpha))
	}
	fmt.Println()
}

func runChiSquare(records []domain.SaleRecord, alpha float64, logger *slog.Logger) {
	res, table, err := hypothesis.CategoryIndependence(records)
	if err != nil {
		logger.Warn("Chi-square test skipped", slog.String("error", err.Error()))
		fmt.Printf("Chi-square test skipped: %v\n\n", err)
		return
	}
	fmt.Println("CHI-SQUARE (store vs product category):")
	fmt.Printf("- chi2(%d) = %.4f, p = %.4g: %s\n",
		res.DF, res.Chi2, res.P, verdict(res.P, alpha))
	fmt.Printf("- Contingency table: %d stores x %d categories\n\n",
		len(table.Stores), len(table.Categories))
}

func runPeakHour(records []domain.SaleRecord, alpha float64, logger *slog.Logger) {
	results, err := hypothesis.PeakHourEffect(records)
	if err != nil {
		logger.Warn("Peak-hour tests skipped", slog.String("error", err.Error()))
		fmt.Printf("Peak-hour tests skipped: %v\n\n", err)
		return
	}
	fmt.Printf("PEAK HOURS (%d:00-%d:59) VS OFF-PEAK, PER STORE:\n",
		hypothesis.PeakHourStart, hypothesis.PeakHourEnd)
	for _, r := range results {
		fmt.Printf("- %s: peak mean $%.2f vs off-peak $%.2f, t = %.4f, p = %.4g: %s\n",
			r.Store, r.PeakMean, r.OffPeakMean, r.T, r.P, verdict(r.P, alpha))
	}
	fmt.Println()
}

func runWeekend(records []domain.SaleRecord, alpha float64, logger *slog.Logger) {
	res, err := hypothesis.WeekendEffect(records)
	if err != nil {
		logger.Warn("Weekend test skipped", slog.String("error", err.Error()))
		fmt.Printf("Weekend test skipped: %v\n\n", err)
		return
	}
	fmt.Println("WEEKEND VS WEEKDAY TRANSACTION AMOUNT:")
	fmt.Printf("- weekday mean $%.2f vs weekend $%.2f, t = %.4f, p = %.4g: %s\n\n",
		res.WeekdayMean, res.WeekendMean, res.T, res.P, verdict(res.P, alpha))
}

func runCorrelations(records []domain.SaleRecord) hypothesis.CorrelationMatrix {
	corr := hypothesis.Correlations(records)
	fmt.Println("CORRELATION MATRIX (Pearson):")
	fmt.Printf("%-16s", "")
	for _, f := range corr.Features {
		fmt.Printf("%16s", f)
	}
	fmt.Println()
	for i, f := range corr.Features {
		fmt.Printf("%-16s", f)
		for j := range corr.Features {
			fmt.Printf("%16.3f", corr.Values[i][j])
		}
		fmt.Println()
	}
	return corr
}

func renderCharts(outDir string, records []domain.SaleRecord, corr hypothesis.CorrelationMatrix) error {
	if err := charts.HeatMap(filepath.Join(outDir, "correlation_matrix.png"),
		"Correlation Matrix", corr.Features, corr.Values); err != nil {
		return err
	}

	byStore := make(map[string][]float64)
	for _, r := range records {
		byStore[r.StoreLocation] = append(byStore[r.StoreLocation], r.TotalAmount)
	}
	groups := make([]charts.HistogramGroup, 0, len(byStore))
	for _, s := range analytics.SummarizeStores(records) {
		groups = append(groups, charts.HistogramGroup{Title: s.Location, Values: byStore[s.Location]})
	}
	return charts.TiledHistograms(filepath.Join(outDir, "transaction_distribution_by_store.png"),
		"Transaction amount ($)", groups, 20)
}
