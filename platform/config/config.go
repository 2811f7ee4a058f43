// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetPublicRateLimit() float64
	GetPublicRateBurst() int
}

// PricingConfig provides settings for the pricing module.
type PricingConfig interface {
	GetLabels() Labels
	GetBulkReportNoPricing() bool
}

// Labels is the table of user-facing strings injected into the lookup
// services. The recognized keys are enumerated here so every response message
// is sourced from one place instead of scattered literals.
type Labels struct {
	MissingContext string
	NotFound       string
	NoPricing      string
	GeneralError   string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	DatabaseURL         string
	CORSAllowAll        bool
	CORSOrigins         []string
	PublicRateLimit     float64
	PublicRateBurst     int
	BulkReportNoPricing bool
	Labels              Labels
}

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string         { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool       { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string    { return c.CORSOrigins }
func (c *Config) GetPublicRateLimit() float64 { return c.PublicRateLimit }
func (c *Config) GetPublicRateBurst() int     { return c.PublicRateBurst }

// PricingConfig implementation
func (c *Config) GetLabels() Labels            { return c.Labels }
func (c *Config) GetBulkReportNoPricing() bool { return c.BulkReportNoPricing }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		PublicRateLimit:     mustFloat(getEnv("PUBLIC_RATE_LIMIT", "10")),
		PublicRateBurst:     mustInt(getEnv("PUBLIC_RATE_BURST", "20")),
		BulkReportNoPricing: strings.EqualFold(getEnv("BULK_REPORT_NO_PRICING", "false"), "true"),
		Labels: Labels{
			MissingContext: getEnv("LABEL_MISSING_CONTEXT", "Product or Home Country information is missing"),
			NotFound:       getEnv("LABEL_NOT_FOUND", "No contact found for the provided UUID."),
			NoPricing:      getEnv("LABEL_NO_PRICING", "No pricing information found for this customer."),
			GeneralError:   getEnv("LABEL_GENERAL_ERROR", "An unexpected error occurred while retrieving pricing."),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.PublicRateLimit <= 0 || cfg.PublicRateBurst < 1 {
		return nil, fmt.Errorf("PUBLIC_RATE_LIMIT and PUBLIC_RATE_BURST must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
