package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/foodplate-dashboard/utils"
)

// Config holds everything the dashboard reads from the environment.
type Config struct {
	Port       string `validate:"required,numeric"`
	GinMode    string `validate:"oneof=debug release test"`
	CORSOrigin string `validate:"required"`
	LogLevel   string `validate:"oneof=debug info warn error"`
	FoodsAPI   FoodsAPIConfig
}

type FoodsAPIConfig struct {
	BaseURL string `validate:"required,url"`
	// TimeoutSeconds of 0 leaves the HTTP client without a timeout.
	TimeoutSeconds int `validate:"gte=0"`
}

// Timeout returns the configured client timeout.
func (c FoodsAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

var validate = validator.New()

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debugf(".env not loaded: %v", err)
	}

	timeout, err := getEnvAsInt("FOODS_API_TIMEOUT", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://127.0.0.1:5500"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		FoodsAPI: FoodsAPIConfig{
			BaseURL:        getEnv("FOODS_API_URL", "http://localhost:3333"),
			TimeoutSeconds: timeout,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	return validate.Struct(c)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number of seconds, got %q", key, valueStr)
	}
	return value, nil
}
