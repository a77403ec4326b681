package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "coffee_sales", cfg.Database.Name)
	assert.Equal(t, "Hell's Kitchen", cfg.Analysis.ReferenceStore)
	assert.Equal(t, 0.05, cfg.Analysis.Alpha)
	assert.Equal(t, 7, cfg.Analysis.ForecastDays)
	assert.Equal(t, filepath.Join("outputs", "figures"), cfg.Paths.OutputDir)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  driver: postgres
  server: db.internal
  name: roasters
analysis:
  reference_store: Astoria
  alpha: 0.01
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Server)
	assert.Equal(t, "roasters", cfg.Database.Name)
	assert.Equal(t, "Astoria", cfg.Analysis.ReferenceStore)
	assert.Equal(t, 0.01, cfg.Analysis.Alpha)
	// Unspecified sections keep their defaults.
	assert.Equal(t, 7, cfg.Analysis.ForecastDays)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  name: fromfile\n"), 0o644))

	t.Setenv("COFFEE_DATABASE_NAME", "fromenv")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.Database.Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unsupported driver",
			mutate:  func(c *Config) { c.Database.Driver = "mssql" },
			wantErr: "unsupported database driver",
		},
		{
			name:    "alpha out of range",
			mutate:  func(c *Config) { c.Analysis.Alpha = 1.5 },
			wantErr: "alpha must be in (0, 1)",
		},
		{
			name:    "negative forecast horizon",
			mutate:  func(c *Config) { c.Analysis.ForecastDays = -1 },
			wantErr: "forecast_days must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	sqlite := DatabaseConfig{Driver: "sqlite3", Name: "coffee_sales", DataDir: "data"}
	assert.Equal(t, filepath.Join("data", "coffee_sales.db"), sqlite.DSN())

	pg := DatabaseConfig{
		Driver:  "postgres",
		Server:  "db.internal",
		Name:    "roasters",
		User:    "etl",
		SSLMode: "disable",
	}
	assert.Equal(t, "host=db.internal dbname=roasters sslmode=disable user=etl", pg.DSN())
}
