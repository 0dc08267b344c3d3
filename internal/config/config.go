// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverFixtures = "fixtures"

	defaultPort            = 8080
	defaultEnvironment     = "development"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 30 * time.Second
	defaultSnapshotCron    = "0 * * * *"
	defaultReportFilter    = "lastMonth"
	defaultTopLimit        = 5
	defaultRecentLimit     = 10
	defaultRateWindow      = time.Minute
	defaultRateRequests    = 30
)

var ErrUnknownDriver = errors.New("unsupported database driver")

type AppConfig struct {
	Name            string        `yaml:"name"`
	Environment     string        `yaml:"environment"`
	Port            int           `yaml:"port"`
	LogLevel        string        `yaml:"log_level"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
	// Fixtures is a YAML dataset for the fixtures driver. Empty means the
	// generated sample dataset.
	Fixtures string `yaml:"fixtures,omitempty"`
	// SeedSample fills an empty sqlite database with the sample dataset.
	SeedSample bool   `yaml:"seed_sample"`
	URL        string `yaml:"-"` // Loaded from environment
}

type ReportsConfig struct {
	SnapshotCron  string `yaml:"snapshot_cron"`
	DefaultFilter string `yaml:"default_filter"`
	TopLimit      int    `yaml:"top_limit"`
	RecentLimit   int    `yaml:"recent_limit"`
}

// RateLimitConfig bounds report generation per client.
type RateLimitConfig struct {
	Enabled    *bool         `yaml:"enabled"`
	Requests   int           `yaml:"requests"`
	Window     time.Duration `yaml:"window"`
	TrustProxy bool          `yaml:"trust_proxy"`
}

// On reports whether the limiter should be installed; unset means on.
func (r RateLimitConfig) On() bool {
	return r.Enabled == nil || *r.Enabled
}

type Config struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Reports   ReportsConfig   `yaml:"reports"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.App.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration and fills in defaults. It does not
// validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Port == 0 {
		c.App.Port = defaultPort
	}
	if c.App.Environment == "" {
		c.App.Environment = defaultEnvironment
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = defaultLogLevel
	}
	if c.App.ShutdownTimeout == 0 {
		c.App.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverFixtures
	}
	if c.Reports.SnapshotCron == "" {
		c.Reports.SnapshotCron = defaultSnapshotCron
	}
	if c.Reports.DefaultFilter == "" {
		c.Reports.DefaultFilter = defaultReportFilter
	}
	if c.Reports.TopLimit == 0 {
		c.Reports.TopLimit = defaultTopLimit
	}
	if c.Reports.RecentLimit == 0 {
		c.Reports.RecentLimit = defaultRecentLimit
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = defaultRateRequests
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = defaultRateWindow
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("app port must be between 1 and 65535")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.App.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.App.LogLevel, err)
	}
	if c.App.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout must not be negative")
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for postgres")
		}
	case DriverFixtures:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownDriver, c.Database.Driver)
	}

	if _, err := cron.ParseStandard(c.Reports.SnapshotCron); err != nil {
		return fmt.Errorf("invalid snapshot cron %q: %w", c.Reports.SnapshotCron, err)
	}
	if c.Reports.TopLimit < 0 || c.Reports.RecentLimit < 0 {
		return fmt.Errorf("report limits must not be negative")
	}
	if c.RateLimit.Requests < 0 || c.RateLimit.Window < 0 {
		return fmt.Errorf("rate limit requests and window must not be negative")
	}
	return nil
}

// IsDevelopment reports whether the app runs with developer conveniences
// such as console logging.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == defaultEnvironment
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}
