package config

import (
	"fmt"
	"strings"
	"time"

	"tradeassist/internal/report"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// Storage drivers
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	BotToken      string        `envconfig:"BOT_TOKEN"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	PollTimeout   time.Duration `envconfig:"POLL_TIMEOUT" default:"10s"`
	StatsInterval time.Duration `envconfig:"STATS_INTERVAL" default:"24h"`
	Storage       StorageConfig
	Database      DatabaseConfig
	Report        ReportConfig
}

// StorageConfig selects where user state lives
type StorageConfig struct {
	Driver   string `envconfig:"STORAGE_DRIVER" default:"file"`
	FilePath string `envconfig:"USERS_FILE" default:"users.json"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	Name          string `envconfig:"DB_NAME" default:"tradeassist"`
	User          string `envconfig:"DB_USER" default:"tradeassist"`
	Password      string `envconfig:"DB_PASSWORD"`
	MigrationsURL string `envconfig:"MIGRATIONS_URL" default:"file://migrations"`
}

// ReportConfig holds report settings
type ReportConfig struct {
	Currency string `envconfig:"REPORT_CURRENCY" default:"EUR"`
}

// Load reads configuration for the bot process. BOT_TOKEN is required.
func Load() (*Config, error) {
	cfg, err := LoadStorage()
	if err != nil {
		return nil, err
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.PollTimeout <= 0 {
		return nil, fmt.Errorf("POLL_TIMEOUT must be positive")
	}
	if cfg.StatsInterval <= 0 {
		return nil, fmt.Errorf("STATS_INTERVAL must be positive")
	}

	return cfg, nil
}

// LoadStorage reads configuration without requiring bot credentials, for tools working on the store only
func LoadStorage() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	switch cfg.Storage.Driver {
	case DriverFile:
		if cfg.Storage.FilePath == "" {
			return nil, fmt.Errorf("USERS_FILE is required when STORAGE_DRIVER is %q", DriverFile)
		}
	case DriverPostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required when STORAGE_DRIVER is %q", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q; allowed: file, postgres", cfg.Storage.Driver)
	}

	cfg.Report.Currency = strings.ToUpper(strings.TrimSpace(cfg.Report.Currency))
	if !report.ValidCurrency(cfg.Report.Currency) {
		return nil, fmt.Errorf("invalid REPORT_CURRENCY %q", cfg.Report.Currency)
	}

	if _, err := zap.ParseAtomicLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	return &cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// NewLogger builds the production logger at the configured level
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	return zcfg.Build()
}
