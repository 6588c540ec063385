package config

import (
	"os"
	"strconv"

	"tp53explorer/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Paths  PathConfig
	Data   DataConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// PathConfig holds file system paths
type PathConfig struct {
	DataDir   string
	ImagesDir string
}

// DataConfig holds dataset loading settings
type DataConfig struct {
	// CompositionTolerance is the allowed deviation of a row's frac_* sum
	// from 1.0 before the row is flagged in the sanity report.
	CompositionTolerance float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Paths: PathConfig{
			DataDir:   getEnvOrDefault("DATA_DIR", "data"),
			ImagesDir: getEnvOrDefault("IMAGES_DIR", "images"),
		},
		Data: DataConfig{
			CompositionTolerance: getEnvFloatOrDefault("COMPOSITION_TOLERANCE", 0.02),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric: " + config.Server.Port)
	}
	if config.Paths.DataDir == "" {
		return errors.ConfigInvalid("data directory is required")
	}
	if config.Paths.ImagesDir == "" {
		return errors.ConfigInvalid("images directory is required")
	}
	if config.Data.CompositionTolerance <= 0 {
		return errors.ConfigInvalid("composition tolerance must be positive")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
