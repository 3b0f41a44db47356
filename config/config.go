// Package config loads engine configuration from environment variables,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tsquant/engine/models"
)

// Load initializes configuration from environment variables
func Load() (*models.Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &models.Config{
		TwelveAPIKey:      os.Getenv("TWELVE_API_KEY"),
		Symbol:            getEnvWithDefault("SYMBOL", "EUR/USD"),
		Days:              getEnvIntWithDefault("DAYS", 365),
		MaxLags:           getEnvIntWithDefault("MAX_LAGS", 20),
		SeasonalPeriod:    getEnvIntWithDefault("SEASONAL_PERIOD", 7),
		Horizon:           getEnvIntWithDefault("HORIZON", 5),
		TrainingDays:      getEnvIntWithDefault("TRAINING_DAYS", 60),
		RollingWindow:     getEnvIntWithDefault("ROLLING_WINDOW", 30),
		ConfidenceLevel:   getEnvFloatWithDefault("CONFIDENCE_LEVEL", 0.95),
		SignificanceLevel: getEnvFloatWithDefault("SIGNIFICANCE_LEVEL", 0.05),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		RequestTimeout:    getEnvIntWithDefault("REQUEST_TIMEOUT", 30),
		EnableBacktest:    getEnvBoolWithDefault("ENABLE_BACKTEST", true),
		EnablePriceCache:  getEnvBoolWithDefault("ENABLE_PRICE_CACHE", false),
		DBHost:            getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:            getEnvWithDefault("DB_PORT", "5432"),
		DBUser:            getEnvWithDefault("DB_USER", "postgres"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            getEnvWithDefault("DB_NAME", "prices"),
		DBSSLMode:         getEnvWithDefault("DB_SSLMODE", "disable"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects out-of-range parameters before any component runs.
func validate(cfg *models.Config) error {
	if cfg.ConfidenceLevel <= 0 || cfg.ConfidenceLevel >= 1 {
		return fmt.Errorf("%w: CONFIDENCE_LEVEL %v outside (0,1)", models.ErrInvalidParameter, cfg.ConfidenceLevel)
	}
	if cfg.SignificanceLevel <= 0 || cfg.SignificanceLevel >= 1 {
		return fmt.Errorf("%w: SIGNIFICANCE_LEVEL %v outside (0,1)", models.ErrInvalidParameter, cfg.SignificanceLevel)
	}
	if cfg.Horizon <= 0 {
		return fmt.Errorf("%w: HORIZON must be positive, got %d", models.ErrInvalidParameter, cfg.Horizon)
	}
	if cfg.SeasonalPeriod < 2 {
		return fmt.Errorf("%w: SEASONAL_PERIOD must be at least 2, got %d", models.ErrInvalidParameter, cfg.SeasonalPeriod)
	}
	if cfg.MaxLags <= 0 {
		return fmt.Errorf("%w: MAX_LAGS must be positive, got %d", models.ErrInvalidParameter, cfg.MaxLags)
	}
	return nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
