package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Sources SourcesConfig
	Sheets  SheetsConfig
	Refresh RefreshConfig
	Export  ExportConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig selects the logger encoder.
type LogConfig struct {
	Mode string // "prod" (JSON) or "dev" (console)
}

// SourceConfig describes where one export comes from. Exactly one of Path,
// URL or SheetRange is used, checked in that order; all empty means the
// source only arrives via upload.
type SourceConfig struct {
	Path       string
	URL        string
	SheetRange string
}

// SourcesConfig holds the three export sources. CashLog is optional.
type SourcesConfig struct {
	Sales     SourceConfig
	Inventory SourceConfig
	CashLog   SourceConfig
}

// SheetsConfig contains configuration required to read Google Sheets
// backed sources.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// RefreshConfig holds the scheduled source refresh settings.
type RefreshConfig struct {
	CronSchedule string
	Enabled      bool
}

// ExportConfig holds options for remote export downloads.
type ExportConfig struct {
	Token string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Mode: getenvWithDefault("LOG_MODE", "prod"),
		},
		Sources: SourcesConfig{
			Sales: SourceConfig{
				Path:       os.Getenv("SALES_FILE"),
				URL:        os.Getenv("SALES_EXPORT_URL"),
				SheetRange: os.Getenv("SALES_SHEET_RANGE"),
			},
			Inventory: SourceConfig{
				Path:       os.Getenv("INVENTORY_FILE"),
				URL:        os.Getenv("INVENTORY_EXPORT_URL"),
				SheetRange: os.Getenv("INVENTORY_SHEET_RANGE"),
			},
			CashLog: SourceConfig{
				Path:       os.Getenv("CASHLOG_FILE"),
				URL:        os.Getenv("CASHLOG_EXPORT_URL"),
				SheetRange: os.Getenv("CASHLOG_SHEET_RANGE"),
			},
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Refresh: RefreshConfig{
			CronSchedule: getenvWithDefault("REFRESH_CRON_SCHEDULE", "0 6 * * *"),
			Enabled:      getenvWithDefault("REFRESH_ENABLED", "true") == "true",
		},
		Export: ExportConfig{
			Token: os.Getenv("EXPORT_API_TOKEN"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Log.Mode != "prod" && c.Log.Mode != "dev" {
		return fmt.Errorf("LOG_MODE must be prod or dev, got %q", c.Log.Mode)
	}

	if c.UsesSheets() {
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when a sheet range is configured")
		}
		if c.Sheets.SpreadsheetID == "" {
			return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided when a sheet range is configured")
		}
	}

	if c.Refresh.Enabled && c.Refresh.CronSchedule == "" {
		return errors.New("REFRESH_CRON_SCHEDULE must be provided when refresh is enabled")
	}

	return nil
}

// UsesSheets reports whether any source reads from Google Sheets.
func (c *Config) UsesSheets() bool {
	return c.Sources.Sales.SheetRange != "" ||
		c.Sources.Inventory.SheetRange != "" ||
		c.Sources.CashLog.SheetRange != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
