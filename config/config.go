package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration read from the environment.
type Config struct {
	Port           string
	Environment    string
	DatabaseDriver string
	DatabaseURL    string
	JWTSecret      string

	ModelBackend string // "local" or "remote"
	ModelURL     string
	ModelTimeout time.Duration

	Timezone   string
	PolicyFile string
	Forecast   ForecastPolicy
}

// ForecastPolicy holds the tunable forecasting thresholds. It can be
// overridden by a YAML file; keys missing from the file keep their values.
type ForecastPolicy struct {
	OrdersMetric      string `yaml:"orders_metric"`
	OrdersMinHistory  int    `yaml:"orders_min_history"`
	ItemsMinHistory   int    `yaml:"items_min_history"`
	FallbackWindow    int    `yaml:"fallback_window"`
	HistoryWindow     int    `yaml:"history_window"`
	MaxDays           int    `yaml:"max_days"`
	MaxTop            int    `yaml:"max_top"`
	UnnamedItem       string `yaml:"unnamed_item"`
	WeeklySeasonality bool   `yaml:"weekly_seasonality"`
	YearlySeasonality bool   `yaml:"yearly_seasonality"`
}

// DefaultForecastPolicy matches the canteen dashboard defaults.
func DefaultForecastPolicy() ForecastPolicy {
	return ForecastPolicy{
		OrdersMetric:      "count",
		OrdersMinHistory:  3,
		ItemsMinHistory:   7,
		FallbackWindow:    7,
		HistoryWindow:     14,
		MaxDays:           14,
		MaxTop:            49,
		UnnamedItem:       "unknown",
		WeeklySeasonality: true,
		YearlySeasonality: false,
	}
}

// Load reads the configuration from the environment and, when
// FORECAST_POLICY_FILE is set, applies the YAML policy file on top.
func Load() (*Config, error) {
	policy := DefaultForecastPolicy()
	policy.OrdersMetric = getEnv("FORECAST_ORDERS_METRIC", policy.OrdersMetric)
	policy.OrdersMinHistory = getEnvInt("FORECAST_ORDERS_MIN_HISTORY", policy.OrdersMinHistory)
	policy.ItemsMinHistory = getEnvInt("FORECAST_ITEMS_MIN_HISTORY", policy.ItemsMinHistory)
	policy.FallbackWindow = getEnvInt("FORECAST_FALLBACK_WINDOW", policy.FallbackWindow)
	if v, ok := os.LookupEnv("FORECAST_UNNAMED_ITEM"); ok {
		policy.UnnamedItem = v
	}

	cfg := &Config{
		Port:           getEnv("PORT", "6000"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		ModelBackend:   getEnv("MODEL_BACKEND", "local"),
		ModelURL:       getEnv("MODEL_URL", "http://127.0.0.1:8000"),
		Timezone:       getEnv("FORECAST_TIMEZONE", "UTC"),
		PolicyFile:     getEnv("FORECAST_POLICY_FILE", ""),
		Forecast:       policy,
	}

	timeout, err := time.ParseDuration(getEnv("MODEL_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MODEL_TIMEOUT: %w", err)
	}
	cfg.ModelTimeout = timeout

	if cfg.PolicyFile != "" {
		cfg.Forecast, err = LoadPolicyFile(cfg.PolicyFile, cfg.Forecast)
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadPolicyFile reads a YAML policy file over base.
func LoadPolicyFile(path string, base ForecastPolicy) (ForecastPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read policy file: %w", err)
	}

	policy := base
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return base, fmt.Errorf("failed to parse policy file: %w", err)
	}
	return policy, nil
}

// Validate checks values that would otherwise fail at request time.
func (c *Config) Validate() error {
	p := c.Forecast
	switch {
	case p.OrdersMinHistory < 1 || p.ItemsMinHistory < 1:
		return fmt.Errorf("minimum history must be at least 1 day")
	case p.FallbackWindow < 1:
		return fmt.Errorf("fallback window must be at least 1 day")
	case p.HistoryWindow < 1:
		return fmt.Errorf("history window must be at least 1 day")
	case p.MaxDays < 1 || p.MaxTop < 1:
		return fmt.Errorf("max days and max top must be positive")
	}
	if p.OrdersMetric != "count" && p.OrdersMetric != "quantity" {
		return fmt.Errorf("unknown orders metric %q", p.OrdersMetric)
	}
	if c.ModelBackend != "local" && c.ModelBackend != "remote" {
		return fmt.Errorf("unknown model backend %q", c.ModelBackend)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the time zone used to bucket orders into days.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
