package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string

	OpenAIAPIKey string
	OllamaModel  string

	SearchTopK         int
	ScrapeListingLimit int
	PriceLookupTimeout time.Duration

	BookingBaseURL string
	KayakBaseURL   string

	LogLevel    string
	LogFormat   string
	Environment string
}

func Load() *Config {
	return &Config{
		Port:               getEnvOrDefault("PORT", "5001"),
		DatabaseURL:        getEnvOrDefault("DATABASE_URL", "postgres://localhost/tripplanner?sslmode=disable"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OllamaModel:        getEnvOrDefault("OLLAMA_MODEL", "llama3"),
		SearchTopK:         getEnvInt("SEARCH_TOP_K", 3),
		ScrapeListingLimit: getEnvInt("SCRAPE_LISTING_LIMIT", 5),
		PriceLookupTimeout: getEnvDuration("PRICE_LOOKUP_TIMEOUT", 15*time.Second),
		BookingBaseURL:     getEnvOrDefault("BOOKING_BASE_URL", "https://www.booking.com"),
		KayakBaseURL:       getEnvOrDefault("KAYAK_BASE_URL", "https://www.kayak.com"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "INFO"),
		LogFormat:          getEnvOrDefault("LOG_FORMAT", "text"),
		Environment:        getEnvOrDefault("ENVIRONMENT", "development"),
	}
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}

	if c.OllamaModel == "" {
		return fmt.Errorf("OLLAMA_MODEL cannot be empty")
	}

	if c.SearchTopK < 1 {
		return fmt.Errorf("SEARCH_TOP_K must be >= 1")
	}

	if c.ScrapeListingLimit < 1 {
		return fmt.Errorf("SCRAPE_LISTING_LIMIT must be >= 1")
	}

	validLogLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	if !contains(validLogLevels, strings.ToUpper(c.LogLevel)) {
		return fmt.Errorf("LOG_LEVEL must be one of: DEBUG, INFO, WARN, ERROR")
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("LOG_FORMAT must be one of: text, json")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Environment) == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
