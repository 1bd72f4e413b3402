package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/niveshai/niveshai-backend/internal/analytics"
)

// Database drivers accepted in DB_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Pricing   PricingConfig
	Refresh   RefreshConfig
	Auth      AuthConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration.
// Path is used by sqlite, URL by postgres.
type DatabaseConfig struct {
	Driver string
	Path   string
	URL    string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// PricingConfig configures the price provider.
type PricingConfig struct {
	Provider    string
	CacheTTL    time.Duration
	Concurrency int
}

// RefreshConfig configures the scheduled refresh. An empty Schedule disables it.
type RefreshConfig struct {
	Schedule string
	Timeout  time.Duration
}

// AuthConfig holds the key protecting internal endpoints.
type AuthConfig struct {
	InternalAPIKey string
}

// AnalyticsConfig holds threshold overrides. Zero values keep the defaults.
type AnalyticsConfig struct {
	RebalanceThreshold          float64
	SectorHighConcentration     float64
	SectorModerateConcentration float64
	VolatilityHigh              float64
	VolatilityMedium            float64
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", DriverMemory)),
			Path:   getEnv("DB_PATH", "./data/niveshai.db"),
			URL:    getEnv("DATABASE_URL", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Pricing: PricingConfig{
			Provider: strings.ToLower(getEnv("PRICE_PROVIDER", "static")),
		},
		Refresh: RefreshConfig{
			Schedule: getEnv("REFRESH_SCHEDULE", ""),
		},
		Auth: AuthConfig{
			InternalAPIKey: getEnv("INTERNAL_API_KEY", ""),
		},
	}

	var err error
	if config.Pricing.CacheTTL, err = getDuration("PRICE_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if config.Pricing.Concurrency, err = getInt("PRICE_LOOKUP_CONCURRENCY", 8); err != nil {
		return nil, err
	}
	if config.Refresh.Timeout, err = getDuration("REFRESH_TIMEOUT", 2*time.Minute); err != nil {
		return nil, err
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"REBALANCE_THRESHOLD", &config.Analytics.RebalanceThreshold},
		{"SECTOR_HIGH_CONCENTRATION", &config.Analytics.SectorHighConcentration},
		{"SECTOR_MODERATE_CONCENTRATION", &config.Analytics.SectorModerateConcentration},
		{"VOLATILITY_HIGH", &config.Analytics.VolatilityHigh},
		{"VOLATILITY_MEDIUM", &config.Analytics.VolatilityMedium},
	}
	for _, f := range floats {
		if *f.dst, err = getFloat(f.key); err != nil {
			return nil, err
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=%s", DriverPostgres)
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: expected memory, sqlite or postgres", c.Database.Driver)
	}
	if c.Pricing.Concurrency < 1 {
		return fmt.Errorf("PRICE_LOOKUP_CONCURRENCY must be at least 1, got %d", c.Pricing.Concurrency)
	}
	if c.Analytics.SectorModerateConcentration > 0 && c.Analytics.SectorHighConcentration > 0 &&
		c.Analytics.SectorModerateConcentration > c.Analytics.SectorHighConcentration {
		return fmt.Errorf("SECTOR_MODERATE_CONCENTRATION must not exceed SECTOR_HIGH_CONCENTRATION")
	}
	return nil
}

// Thresholds returns the analytics defaults with the configured overrides applied.
func (c *Config) Thresholds() analytics.Thresholds {
	t := analytics.DefaultThresholds()
	a := c.Analytics
	if a.RebalanceThreshold > 0 {
		t.RebalanceBand = a.RebalanceThreshold
	}
	if a.SectorHighConcentration > 0 {
		t.SectorHighConcentration = a.SectorHighConcentration
	}
	if a.SectorModerateConcentration > 0 {
		t.SectorModerateConcentration = a.SectorModerateConcentration
	}
	if a.VolatilityHigh > 0 {
		t.VolatilityHigh = a.VolatilityHigh
	}
	if a.VolatilityMedium > 0 {
		t.VolatilityMedium = a.VolatilityMedium
	}
	return t
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

// getFloat returns 0 when key is unset.
func getFloat(key string) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, value)
	}
	return f, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
