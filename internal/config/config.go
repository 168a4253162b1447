package config

import (
	"os"
	"strconv"
	"time"

	"pincheck/internal/errors"
)

// DefaultSheetURL is the published-CSV endpoint of the serviceability sheet.
// Deployments override it with SHEET_URL or with SHEET_ID + SHEET_GID.
const DefaultSheetURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vTC7eGFDO4cthDWrY91NA5O97zFMeNREoy_wE5qDqCY6BcI__tBjsLJuZxAvaUyV48ZMZRJSQP1W-5G/pub?gid=0&single=true&output=csv"

// Config represents the complete application configuration
type Config struct {
	Source SourceConfig
	Fetch  FetchConfig
	Cache  CacheConfig
	Server ServerConfig
}

// SourceConfig identifies the remote sheet. Either a full URL or a
// sheet id + tab id pair must be present.
type SourceConfig struct {
	URL      string
	SheetID  string
	SheetGID string
}

// FetchConfig holds HTTP retrieval settings
type FetchConfig struct {
	Timeout time.Duration
}

// CacheConfig holds the freshness window for the loaded table
type CacheConfig struct {
	TTL time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
	GinMode string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Source: loadSourceConfig(),
		Fetch:  loadFetchConfig(),
		Cache:  loadCacheConfig(),
		Server: loadServerConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadSourceConfig() SourceConfig {
	return SourceConfig{
		URL:      getEnvOrDefault("SHEET_URL", DefaultSheetURL),
		SheetID:  getEnvOrDefault("SHEET_ID", ""),
		SheetGID: getEnvOrDefault("SHEET_GID", "0"),
	}
}

func loadFetchConfig() FetchConfig {
	return FetchConfig{
		Timeout: time.Duration(getEnvIntOrDefault("FETCH_TIMEOUT_SECONDS", 20)) * time.Second,
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		TTL: time.Duration(getEnvIntOrDefault("CACHE_TTL_SECONDS", 300)) * time.Second,
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		APIPort: getEnvOrDefault("API_PORT", "8081"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func validateConfig(config *Config) error {
	if config.Source.URL == "" && config.Source.SheetID == "" {
		return errors.ConfigInvalid("either SHEET_URL or SHEET_ID is required")
	}
	if config.Fetch.Timeout <= 0 {
		return errors.ConfigInvalid("FETCH_TIMEOUT_SECONDS must be positive")
	}
	if config.Cache.TTL < 0 {
		return errors.ConfigInvalid("CACHE_TTL_SECONDS must not be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
