package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete pipeline configuration. Every batch command
// loads the same structure, replacing the per-script constants the analysis
// previously duplicated.
type Config struct {
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// DatabaseConfig describes the relational store. The sqlite3 driver maps
// server/database onto a file path under DataDir; the postgres driver builds
// a host/dbname connection string.
type DatabaseConfig struct {
	Driver   string `yaml:"driver" envconfig:"DRIVER"`
	Server   string `yaml:"server" envconfig:"SERVER"`
	Name     string `yaml:"name" envconfig:"NAME"`
	User     string `yaml:"user" envconfig:"USER"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"SSL_MODE"`
	DataDir  string `yaml:"data_dir" envconfig:"DATA_DIR"`
}

// PathsConfig contains the file system locations used by the batch jobs.
type PathsConfig struct {
	InputFile  string `yaml:"input_file" envconfig:"INPUT_FILE"`
	OutputDir  string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// AnalysisConfig contains tunables for the statistical jobs.
type AnalysisConfig struct {
	// ReferenceStore is the location the pairwise t-tests compare every
	// other store against.
	ReferenceStore string `yaml:"reference_store" envconfig:"REFERENCE_STORE"`
	// Alpha is the significance threshold applied to every test.
	Alpha float64 `yaml:"alpha" envconfig:"ALPHA"`
	// ForecastDays is the length of the forward revenue forecast.
	ForecastDays int `yaml:"forecast_days" envconfig:"FORECAST_DAYS"`
}

// Load loads configuration from an optional YAML file with COFFEE_-prefixed
// environment variables taking precedence. An empty path skips the file and
// uses defaults plus environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not readable: %w", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Environment overrides file values; remaining zeros get defaults.
	if err := envconfig.Process("COFFEE", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills any field still at its zero value after the file and
// environment passes.
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite3"
	}
	if c.Database.Server == "" {
		c.Database.Server = "localhost"
	}
	if c.Database.Name == "" {
		c.Database.Name = "coffee_sales"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.DataDir == "" {
		c.Database.DataDir = "data"
	}
	if c.Paths.InputFile == "" {
		c.Paths.InputFile = filepath.Join("data", "raw", "Coffee Shop Sales.xlsx")
	}
	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = filepath.Join("outputs", "figures")
	}
	if c.Paths.ReportsDir == "" {
		c.Paths.ReportsDir = filepath.Join("outputs", "reports")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = filepath.Join("logs", "pipeline.log")
	}
	if c.Analysis.ReferenceStore == "" {
		c.Analysis.ReferenceStore = "Hell's Kitchen"
	}
	if c.Analysis.Alpha == 0 {
		c.Analysis.Alpha = 0.05
	}
	if c.Analysis.ForecastDays == 0 {
		c.Analysis.ForecastDays = 7
	}
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name must not be empty")
	}
	if c.Analysis.Alpha <= 0 || c.Analysis.Alpha >= 1 {
		return fmt.Errorf("alpha must be in (0, 1), got %v", c.Analysis.Alpha)
	}
	if c.Analysis.ForecastDays < 1 {
		return fmt.Errorf("forecast_days must be positive, got %d", c.Analysis.ForecastDays)
	}
	return nil
}

// DSN builds the driver-specific connection string.
func (d DatabaseConfig) DSN() string {
	switch d.Driver {
	case "postgres":
		parts := []string{
			"host=" + d.Server,
			"dbname=" + d.Name,
			"sslmode=" + d.SSLMode,
		}
		if d.User != "" {
			parts = append(parts, "user="+d.User)
		}
		if d.Password != "" {
			parts = append(parts, "password="+d.Password)
		}
		return strings.Join(parts, " ")
	default:
		// sqlite3: one database file per logical database name.
		return filepath.Join(d.DataDir, d.Name+".db")
	}
}

// EnsureDirectories creates the output, reports, data and log directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Paths.OutputDir,
		c.Paths.ReportsDir,
		c.Database.DataDir,
		filepath.Dir(c.Logging.FilePath),
	}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
