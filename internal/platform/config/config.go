package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/loan_application_app/internal/apperrors"
	"github.com/SscSPs/loan_application_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
)

// Config holds application configuration. It is built once at startup and
// never mutated afterwards.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	StorageDriver  string
	DatabaseURL    string
	MigrationsPath string
	MongoURL       string
	MongoDBName    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CurrencyAPI CurrencyAPIConfig

	// ReferenceCurrency is the currency every loan amount is converted into.
	ReferenceCurrency domain.Currency

	CORSAllowedOrigins []string
	// RateLimit uses the ulule/limiter formatted notation, e.g. "100-M".
	RateLimit string
}

// CurrencyAPIConfig holds the settings of the third-party exchange rate API.
type CurrencyAPIConfig struct {
	APIKey        string
	BaseURL       string
	ExchangeURI   string
	CurrenciesURI string
	ExchangeTTL   time.Duration
	CurrenciesTTL time.Duration
	Timeout       time.Duration
}

// Validate reports every missing or invalid currency API setting.
func (c CurrencyAPIConfig) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, fmt.Errorf("%w: CURRENCY_API_KEY is required", apperrors.ErrConfiguration))
	}
	if c.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%w: CURRENCY_API_BASE_URL is required", apperrors.ErrConfiguration))
	}
	if c.ExchangeURI == "" {
		errs = append(errs, fmt.Errorf("%w: CURRENCY_API_EXCHANGE_URI is required", apperrors.ErrConfiguration))
	}
	if c.CurrenciesURI == "" {
		errs = append(errs, fmt.Errorf("%w: CURRENCY_API_CURRENCIES_URI is required", apperrors.ErrConfiguration))
	}
	if c.ExchangeTTL <= 0 {
		errs = append(errs, fmt.Errorf("%w: CURRENCY_API_EXCHANGE_CACHE_TTL must be positive", apperrors.ErrConfiguration))
	}
	if c.CurrenciesTTL <= 0 {
		errs = append(errs, fmt.Errorf("%w: CURRENCY_API_CURRENCIES_CACHE_TTL must be positive", apperrors.ErrConfiguration))
	}
	return errors.Join(errs...)
}

// Validate checks the whole configuration and fails on the first class of
// problems a running process could not recover from.
func (c *Config) Validate() error {
	var errs []error
	if err := c.CurrencyAPI.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !c.ReferenceCurrency.IsSupported() {
		errs = append(errs, fmt.Errorf("%w: REFERENCE_CURRENCY %q is not a supported currency", apperrors.ErrConfiguration, c.ReferenceCurrency))
	}
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("%w: PGSQL_URL is required for the postgres storage driver", apperrors.ErrConfiguration))
		}
	case StorageDriverMongo:
		if c.MongoURL == "" || c.MongoDBName == "" {
			errs = append(errs, fmt.Errorf("%w: MONGO_URL and MONGO_DB_NAME are required for the mongo storage driver", apperrors.ErrConfiguration))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown STORAGE_DRIVER %q", apperrors.ErrConfiguration, c.StorageDriver))
	}
	if c.RedisAddr == "" {
		errs = append(errs, fmt.Errorf("%w: REDIS_ADDR is required", apperrors.ErrConfiguration))
	}
	return errors.Join(errs...)
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("MONGO_URL", "")
	v.SetDefault("MONGO_DB_NAME", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CURRENCY_API_KEY", "")
	v.SetDefault("CURRENCY_API_BASE_URL", "")
	v.SetDefault("CURRENCY_API_EXCHANGE_URI", "")
	v.SetDefault("CURRENCY_API_CURRENCIES_URI", "")
	v.SetDefault("CURRENCY_API_EXCHANGE_CACHE_TTL", 3600)
	v.SetDefault("CURRENCY_API_CURRENCIES_CACHE_TTL", 3600)
	v.SetDefault("CURRENCY_API_TIMEOUT", "10s")
	v.SetDefault("REFERENCE_CURRENCY", string(domain.GBP))
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT", "300-M")

	v.AutomaticEnv()

	timeoutStr := v.GetString("CURRENCY_API_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 10 * time.Second
		log.Printf("Warning: Invalid value for CURRENCY_API_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout.String())
	}

	reference, _ := domain.ParseCurrency(v.GetString("REFERENCE_CURRENCY"))

	cfg := &Config{
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		StorageDriver:  strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DatabaseURL:    v.GetString("PGSQL_URL"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		MongoURL:       v.GetString("MONGO_URL"),
		MongoDBName:    v.GetString("MONGO_DB_NAME"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		CurrencyAPI: CurrencyAPIConfig{
			APIKey:        v.GetString("CURRENCY_API_KEY"),
			BaseURL:       v.GetString("CURRENCY_API_BASE_URL"),
			ExchangeURI:   v.GetString("CURRENCY_API_EXCHANGE_URI"),
			CurrenciesURI: v.GetString("CURRENCY_API_CURRENCIES_URI"),
			ExchangeTTL:   time.Duration(v.GetInt("CURRENCY_API_EXCHANGE_CACHE_TTL")) * time.Second,
			CurrenciesTTL: time.Duration(v.GetInt("CURRENCY_API_CURRENCIES_CACHE_TTL")) * time.Second,
			Timeout:       timeout,
		},
		ReferenceCurrency:  reference,
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:          v.GetString("RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
