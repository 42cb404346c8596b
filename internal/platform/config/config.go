package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values of STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Port            string
	IsProduction    bool
	LogLevel        slog.Level
	StoreDriver     string
	DatabaseURL     string
	SQLiteDSN       string
	EnableDBCheck   bool
	RunMigrations   bool
	SeedCurrencies  bool
	APIBasePath     string
	RateLimit       string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
// Actual environment variables override values from .env, which override defaults.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreDriverSQLite)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_DSN", "catalog.db")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("SEED_CURRENCIES", true)
	v.SetDefault("API_BASE_PATH", "/api")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		StoreDriver:    strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabaseURL:    v.GetString("PGSQL_URL"),
		SQLiteDSN:      v.GetString("SQLITE_DSN"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:  v.GetBool("RUN_MIGRATIONS"),
		SeedCurrencies: v.GetBool("SEED_CURRENCIES"),
		APIBasePath:    normalizeBasePath(v.GetString("API_BASE_PATH")),
		RateLimit:      v.GetString("RATE_LIMIT"),
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT not set, using default", slog.String("port", cfg.Port))
	}

	levelStr := v.GetString("LOG_LEVEL")
	if err := cfg.LogLevel.UnmarshalText([]byte(levelStr)); err != nil {
		cfg.LogLevel = slog.LevelInfo
		slog.Warn("Invalid LOG_LEVEL, defaulting to info", slog.String("value", levelStr))
	}

	shutdownStr := v.GetString("SHUTDOWN_TIMEOUT")
	timeout, err := time.ParseDuration(shutdownStr)
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
		slog.Warn("Invalid SHUTDOWN_TIMEOUT, using default",
			slog.String("value", shutdownStr), slog.Duration("default", timeout))
	}
	cfg.ShutdownTimeout = timeout

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STORE_DRIVER is %q", StoreDriverPostgres)
		}
	case StoreDriverSQLite:
		if cfg.SQLiteDSN == "" {
			return nil, fmt.Errorf("SQLITE_DSN must be set when STORE_DRIVER is %q", StoreDriverSQLite)
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
