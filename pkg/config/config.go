package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Catalog
	Catalog CatalogConfig

	// History synthesis
	History HistoryConfig

	// API rate limiting
	RateLimit RateLimitConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// CatalogConfig holds instrument catalog configuration
type CatalogConfig struct {
	// Path to a YAML seed file; empty means the built-in seed universe.
	Path string
}

// HistoryConfig holds history synthesis configuration
type HistoryConfig struct {
	Days int // series length served by default
}

// RateLimitConfig holds token-bucket settings for the API middleware
type RateLimitConfig struct {
	RPS     int
	Burst   int
	Enabled bool
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		// Catalog
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},

		// History
		History: HistoryConfig{
			Days: getEnvAsInt("HISTORY_DAYS", 30),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			RPS:     getEnvAsInt("RATE_LIMIT_RPS", 50),
			Burst:   getEnvAsInt("RATE_LIMIT_BURST", 100),
			Enabled: getEnvAsBool("RATE_LIMIT_ENABLED", true),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.History.Days < 1 {
		return fmt.Errorf("HISTORY_DAYS must be at least 1")
	}

	if c.RateLimit.Enabled && c.RateLimit.RPS < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS must be at least 1")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",         // Current directory
		"backend/.env", // From project root
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
