package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Common
	Environment string
	LogLevel    string

	Indicator IndicatorConfig
}

// IndicatorConfig holds VWAP filter configuration
type IndicatorConfig struct {
	Periods         []int  // One VWAP filter per period
	UseTypicalPrice bool   // Weight typical price instead of close
	MaxLen          int    // Retained output values per filter (0 = library default)
	BarMaxLen       int    // Retained bars per symbol (0 = library default)
	Anchor          string // "window" or "session"
	HealthCheckPort int    // 0 disables the health and metrics server
}

// Load loads configuration from environment variables
// It automatically loads .env file if it exists in the current directory
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	periods, err := getEnvAsIntSlice("VWAP_PERIODS", []int{14})
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Indicator: IndicatorConfig{
			Periods:         periods,
			UseTypicalPrice: getEnvAsBool("VWAP_USE_TYPICAL_PRICE", false),
			MaxLen:          getEnvAsInt("VWAP_MAX_LEN", 0),
			BarMaxLen:       getEnvAsInt("VWAP_BAR_MAX_LEN", 0),
			Anchor:          getEnv("VWAP_ANCHOR", "window"),
			HealthCheckPort: getEnvAsInt("VWAP_HEALTH_PORT", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Indicator.Periods) == 0 {
		return fmt.Errorf("VWAP_PERIODS must contain at least one period")
	}
	seen := make(map[int]bool, len(c.Indicator.Periods))
	for _, period := range c.Indicator.Periods {
		if period < 1 {
			return fmt.Errorf("VWAP_PERIODS must be positive, got %d", period)
		}
		if seen[period] {
			return fmt.Errorf("VWAP_PERIODS contains duplicate period %d", period)
		}
		seen[period] = true
	}
	if c.Indicator.MaxLen < 0 {
		return fmt.Errorf("VWAP_MAX_LEN must not be negative, got %d", c.Indicator.MaxLen)
	}
	if c.Indicator.BarMaxLen < 0 {
		return fmt.Errorf("VWAP_BAR_MAX_LEN must not be negative, got %d", c.Indicator.BarMaxLen)
	}
	if c.Indicator.Anchor != "window" && c.Indicator.Anchor != "session" {
		return fmt.Errorf("VWAP_ANCHOR must be \"window\" or \"session\", got %q", c.Indicator.Anchor)
	}
	if c.Indicator.HealthCheckPort < 0 || c.Indicator.HealthCheckPort > 65535 {
		return fmt.Errorf("VWAP_HEALTH_PORT out of range: %d", c.Indicator.HealthCheckPort)
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// getEnvAsIntSlice parses a comma-separated list. Malformed entries are an error.
func getEnvAsIntSlice(key string, defaultValue []int) ([]int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parts := strings.Split(value, ",")
	result := make([]int, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer %q: %w", key, trimmed, err)
		}
		result = append(result, n)
	}
	if len(result) == 0 {
		return defaultValue, nil
	}
	return result, nil
}
