package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Backend identifiers accepted by HISTORY_BACKEND.
const (
	BackendSQLite  = "sqlite"
	BackendMongoDB = "mongodb"
)

// Config represents the full application configuration surface.
type Config struct {
	Server     ServerConfig
	Admin      AdminConfig
	Session    SessionConfig
	History    HistoryConfig
	Countries  CountriesConfig
	Sheets     SheetsConfig
	Reporting  ReportingConfig
	Calculator CalculatorConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port          string
	TemplatesGlob string
}

// AdminConfig gates the history endpoint.
type AdminConfig struct {
	Key string
}

// SessionConfig holds the cookie-session signing secret.
type SessionConfig struct {
	Secret string
}

// HistoryConfig selects and configures the calculation history store.
type HistoryConfig struct {
	Backend     string
	SQLitePath  string
	MongoURI    string
	MongoDBName string
}

// CountriesConfig configures the REST Countries directory source.
type CountriesConfig struct {
	BaseURL     string
	RefreshCron string
}

// SheetsConfig contains configuration required to export history summaries to
// Google Sheets. Both fields empty means the export is disabled.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the sheets export should be wired.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// ReportingConfig holds the export schedule.
type ReportingConfig struct {
	CronSchedule string
}

// CalculatorConfig holds engine tuning switches.
type CalculatorConfig struct {
	UseLatitudeProfile bool
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
			Port:          getenvWithDefault("APP_PORT", "8080"),
			TemplatesGlob: getenvWithDefault("TEMPLATES_GLOB", "web/templates/*.html"),
		},
		Admin: AdminConfig{
			Key: os.Getenv("ADMIN_KEY"),
		},
		Session: SessionConfig{
			Secret: getenvWithDefault("SESSION_SECRET", "dev-secret"),
		},
		History: HistoryConfig{
			Backend:     getenvWithDefault("HISTORY_BACKEND", BackendSQLite),
			SQLitePath:  getenvWithDefault("SQLITE_PATH", "farm_calc.db"),
			MongoURI:    os.Getenv("MONGODB_URI"),
			MongoDBName: getenvWithDefault("MONGODB_DB_NAME", "greencalc"),
		},
		Countries: CountriesConfig{
			BaseURL:     getenvWithDefault("COUNTRIES_BASE_URL", "https://restcountries.com"),
			RefreshCron: getenvWithDefault("COUNTRIES_REFRESH_CRON", "0 3 * * *"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("EXPORT_CRON_SCHEDULE", "0 20 * * 5"),
		},
		Calculator: CalculatorConfig{
			UseLatitudeProfile: getenvWithDefault("USE_LATITUDE_PROFILE", "false") == "true",
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

	if c.Admin.Key == "" {
		return errors.New("ADMIN_KEY must be provided")
	}

	switch c.History.Backend {
	case BackendSQLite:
		if c.History.SQLitePath == "" {
			return errors.New("SQLITE_PATH must be provided")
		}
	case BackendMongoDB:
		if c.History.MongoURI == "" {
			return errors.New("MONGODB_URI must be provided for the mongodb backend")
		}
		if c.History.MongoDBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided for the mongodb backend")
		}
	default:
		return fmt.Errorf("unsupported history backend %q", c.History.Backend)
	}

	if c.Countries.BaseURL == "" {
		return errors.New("COUNTRIES_BASE_URL must not be empty")
	}

	if c.Countries.RefreshCron == "" {
		return errors.New("COUNTRIES_REFRESH_CRON must be provided")
	}

	// Sheets export is optional, but half-configured credentials are a
	// deployment mistake worth failing fast on.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_EXPORT_ID must be set together")
	}

	if c.Sheets.Enabled() && c.Reporting.CronSchedule == "" {
		return errors.New("EXPORT_CRON_SCHEDULE must be provided when sheets export is enabled")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
