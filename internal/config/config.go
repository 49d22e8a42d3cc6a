package config

import (
	"os"
	"strconv"

	"mpgdash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Store  StoreConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string
	GinMode        string
	MetricsEnabled bool
}

// DataConfig holds dataset file locations
type DataConfig struct {
	DatasetFile string
	CatalogFile string
}

// StoreConfig holds the saved-views database settings. An empty Path
// falls back to the per-user XDG data directory.
type StoreConfig struct {
	Path string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: loadServerConfig(),
		Data:   loadDataConfig(),
		Store:  loadStoreConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:           getEnvOrDefault("PORT", "8080"),
		GinMode:        getEnvOrDefault("GIN_MODE", "debug"),
		MetricsEnabled: getEnvBoolOrDefault("METRICS_ENABLED", true),
	}
}

func loadDataConfig() DataConfig {
	return DataConfig{
		DatasetFile: getEnvOrDefault("MPGDASH_DATASET", "data/mpg.csv"),
		CatalogFile: getEnvOrDefault("MPGDASH_CATALOG", "data/catalog.yaml"),
	}
}

func loadStoreConfig() StoreConfig {
	return StoreConfig{
		Path: getEnvOrDefault("MPGDASH_STORE", ""),
	}
}

func validateConfig(config *Config) error {
	if config.Data.DatasetFile == "" {
		return errors.ConfigInvalid("dataset file is required")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("server port must be numeric")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
