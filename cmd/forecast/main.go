package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/GitAnuj13/coffe-sales-project/internal/charts"
	"github.com/GitAnuj13/coffe-sales-project/internal/config"
	"github.com/GitAnuj13/coffe-sales-project/internal/data"
	"github.com/GitAnuj13/coffe-sales-project/internal/forecast"
	"github.com/GitAnuj13/coffe-sales-project/internal/infrastructure"
	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

const testFraction = 0.2

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	horizon := flag.Int("days", 0, "forecast horizon in days (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *horizon > 0 {
		cfg.Analysis.ForecastDays = *horizon
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

	logger.Info("Starting revenue forecasting",
		slog.Int("horizon_days", cfg.Analysis.ForecastDays))

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

	fmt.Println("MAVEN ROASTERS - REVENUE FORECASTING")
	fmt.Printf("Loaded %d transactions\n", len(records))

	daily := forecast.Aggregate(records)
	fmt.Printf("Aggregated to %d daily observations\n\n", len(daily))
	logger.Info("Daily series built", slog.Int("days", len(daily)))

	trend, err := forecast.FitTrend(daily)
	if err != nil {
		logger.Error("Trend fit failed", slog.String("error", err.Error()))
		fmt.Printf("ERROR: trend fit failed: %v\n", err)
		os.Exit(1)
	}

	split := forecast.ChronologicalSplit(daily, testFraction)
	model, err := forecast.Fit(split.Train, daily[0].Date)
	if err != nil {
		logger.Error("Regression fit failed", slog.String("error", err.Error()))
		fmt.Printf("ERROR: regression fit failed: %v\n", err)
		os.Exit(1)
	}

	train := model.Evaluate(split.Train)
	test := model.Evaluate(split.Test)
	logger.Info("Model fitted",
		slog.Int("train_days", len(split.Train)),
		slog.Int("test_days", len(split.Test)),
		slog.Float64("test_mae", test.MAE),
		slog.Float64("test_r2", test.R2))

	fmt.Println("FEATURE IMPORTANCE (|coefficient|):")
	for _, c := range model.Importance() {
		fmt.Printf("- %s: %.4f\n", c.Name, c.Value)
	}
	fmt.Println()

	lastDate := daily[len(daily)-1].Date
	points := model.Forecast(lastDate, cfg.Analysis.ForecastDays)
	stores := forecast.NaiveStoreForecasts(records, cfg.Analysis.ForecastDays)

	report := forecast.Report{
		Trend:          trend,
		Train:          train,
		Test:           test,
		Forecast:       points,
		StoreForecasts: stores,
		HorizonDays:    cfg.Analysis.ForecastDays,
	}
	fmt.Print(report.Render())

	reportPath := filepath.Join(cfg.Paths.ReportsDir, "forecast_report.txt")
	if err := report.WriteFile(reportPath); err != nil {
		logger.Error("Failed to write report", slog.String("error", err.Error()))
		fmt.Printf("ERROR: could not write report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nReport written to %s\n", reportPath)

	if err := renderCharts(cfg.Paths.OutputDir, daily, trend, model, split); err != nil {
		logger.Error("Chart rendering failed", slog.String("error", err.Error()))
		fmt.Printf("ERROR: chart rendering failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Charts written to %s\n", cfg.Paths.OutputDir)
	fmt.Println("Forecasting complete")
}

func renderCharts(outDir string, daily []domain.DailyMetrics, trend forecast.Trend,
	model *forecast.Model, split forecast.Split) error {

	dates := make([]time.Time, len(daily))
	revenues := make([]float64, len(daily))
	for i, d := range daily {
		dates[i] = d.Date
		revenues[i] = d.Revenue
	}

	if err := charts.ScatterWithTrend(filepath.Join(outDir, "revenue_trend_analysis.png"),
		"Daily Revenue with Linear Trend", "Revenue ($)", dates, revenues, trend.Fitted); err != nil {
		return err
	}

	if err := charts.MultiTimeSeries(filepath.Join(outDir, "moving_averages.png"),
		"Daily Revenue with Moving Averages", "Revenue ($)", dates, []charts.Series{
			{Name: "daily", Values: revenues},
			{Name: "7-day MA", Values: forecast.CenteredRollingMean(revenues, 7)},
			{Name: "14-day MA", Values: forecast.CenteredRollingMean(revenues, 14), Dashed: true},
		}); err != nil {
		return err
	}

	testDates := make([]time.Time, len(split.Test))
	for i, d := range split.Test {
		testDates[i] = d.Date
	}
	return charts.MultiTimeSeries(filepath.Join(outDir, "forecast_vs_actual.png"),
		"Test Segment: Actual vs Predicted", "Revenue ($)", testDates, []charts.Series{
			{Name: "actual", Values: forecast.Revenues(split.Test)},
			{Name: "predicted", Values: model.PredictAll(split.Test), Dashed: true},
		})
}
