// Package config reads the service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Database drivers.
const (
	DriverMongo    = "mongo"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver      string
	DBDSN         string
	MongoURI      string
	MongoDatabase string

	JWTSecret string
	JWTExpiry time.Duration

	CORSOrigins []string

	DurationRatePerHour decimal.Decimal
	DraftTTL            time.Duration
	StockCheckSchedule  string
	SeedCatalog         bool

	LogLevel  string
	LogFormat string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	AlertPhone       string

	AdminEmail    string
	AdminPassword string
}

// Load reads an optional .env file and then the process environment. Missing values
// fall back to development defaults.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", DriverMongo)),
		DBDSN:              os.Getenv("DB_DSN"),
		MongoURI:           getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGODB_DATABASE", "catering"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		StockCheckSchedule: getEnv("STOCK_CHECK_SCHEDULE", "@every 1h"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		TwilioAccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:         os.Getenv("TWILIO_FROM"),
		AlertPhone:         os.Getenv("ALERT_PHONE"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
	}

	hours, err := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "24"))
	if err != nil || hours <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRY_HOURS must be a positive integer")
	}
	cfg.JWTExpiry = time.Duration(hours) * time.Hour

	cfg.DurationRatePerHour, err = decimal.NewFromString(getEnv("DURATION_RATE_PER_HOUR", "10000"))
	if err != nil || cfg.DurationRatePerHour.IsNegative() {
		return nil, fmt.Errorf("DURATION_RATE_PER_HOUR must be a non-negative amount")
	}

	cfg.DraftTTL, err = time.ParseDuration(getEnv("DRAFT_TTL", "12h"))
	if err != nil || cfg.DraftTTL <= 0 {
		return nil, fmt.Errorf("DRAFT_TTL must be a positive duration")
	}

	cfg.SeedCatalog, err = strconv.ParseBool(getEnv("SEED_CATALOG", "true"))
	if err != nil {
		return nil, fmt.Errorf("SEED_CATALOG must be a boolean: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverMongo:
	case DriverMySQL, DriverPostgres, DriverSQLite:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required for driver %s", c.DBDriver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json")
	}
	return nil
}

// TwilioEnabled reports whether SMS alerts can be sent.
func (c *Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFrom != "" && c.AlertPhone != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
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
