package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the Beacon Analytics service.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Metrics   MetricsConfig
	Reports   ReportsConfig
}

type ServerConfig struct {
	Addr            string
	Env             string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	Enabled   bool
	MasterKey string
	SkipPaths []string
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// ReportsConfig tunes the reporting layer.
type ReportsConfig struct {
	// CacheTTL is how long computed reports stay in Redis.
	CacheTTL time.Duration
	// DefaultWindowDays applies when a report request carries no days
	// parameter; zero means all time.
	DefaultWindowDays int
	// SequenceGap is the tolerance for inferring send sequences from
	// content creation times.
	SequenceGap time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("BEACON_HTTP_ADDR", ":8080"),
			Env:             getEnv("BEACON_ENV", "development"),
			ShutdownTimeout: getDurationEnv("BEACON_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("BEACON_DB_HOST", "localhost"),
			Port:     getIntEnv("BEACON_DB_PORT", 5432),
			User:     getEnv("BEACON_DB_USER", "beacon"),
			Password: getEnv("BEACON_DB_PASSWORD", "beacon_secret"),
			DBName:   getEnv("BEACON_DB_NAME", "beacon"),
			SSLMode:  getEnv("BEACON_DB_SSLMODE", "disable"),
			MaxConns: getIntEnv("BEACON_DB_MAX_CONNS", 25),
			MinConns: getIntEnv("BEACON_DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("BEACON_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("BEACON_REDIS_PASSWORD", ""),
			DB:       getIntEnv("BEACON_REDIS_DB", 0),
		},
		Auth: AuthConfig{
			Enabled:   getBoolEnv("BEACON_AUTH_ENABLED", true),
			MasterKey: getEnv("BEACON_API_KEY_MASTER", ""),
			SkipPaths: getSliceEnv("BEACON_AUTH_SKIP_PATHS", []string{"/health", "/metrics"}),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolEnv("BEACON_RATE_LIMIT_ENABLED", true),
			RPS:     getFloatEnv("BEACON_RATE_LIMIT_RPS", 100),
			Burst:   getIntEnv("BEACON_RATE_LIMIT_BURST", 20),
		},
		Log: LogConfig{
			Level:  getEnv("BEACON_LOG_LEVEL", "info"),
			Format: getEnv("BEACON_LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("BEACON_METRICS_ENABLED", true),
			Path:    getEnv("BEACON_METRICS_PATH", "/metrics"),
		},
		Reports: ReportsConfig{
			CacheTTL:          getDurationEnv("BEACON_REPORTS_CACHE_TTL", time.Minute),
			DefaultWindowDays: getIntEnv("BEACON_REPORTS_DEFAULT_WINDOW_DAYS", 0),
			SequenceGap:       getDurationEnv("BEACON_REPORTS_SEQUENCE_GAP", 30*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Auth.Enabled && c.Auth.MasterKey == "" {
		return fmt.Errorf("BEACON_API_KEY_MASTER is required when auth is enabled")
	}
	if c.Reports.CacheTTL < 0 {
		return fmt.Errorf("BEACON_REPORTS_CACHE_TTL must not be negative")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Helper functions for reading environment variables

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getFloatEnv(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getSliceEnv(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
		return result
	}
	return def
}
