package config

import (
	"os"
	"strconv"
	"strings"

	"numkit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Data     DataConfig
	Engine   EngineConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database connection settings. An empty URL selects the
// in-memory history.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
}

// Enabled reports whether a PostgreSQL history is configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// DataConfig holds spreadsheet input settings
type DataConfig struct {
	ExcelFile  string
	ExcelSheet string
}

// EngineConfig holds computation settings
type EngineConfig struct {
	MaxConcurrentColumns int
	HistoryLimit         int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   *loadServerConfig(),
		Database: *loadDatabaseConfig(),
		Log:      LogConfig{Level: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO"))},
		Data:     *loadDataConfig(),
		Engine:   *loadEngineConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:          os.Getenv("DATABASE_URL"),
		MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		ExcelFile:  getEnvOrDefault("EXCEL_FILE", ""),
		ExcelSheet: getEnvOrDefault("EXCEL_SHEET", "Sheet1"),
	}
}

func loadEngineConfig() *EngineConfig {
	return &EngineConfig{
		MaxConcurrentColumns: getEnvIntOrDefault("MAX_CONCURRENT_COLUMNS", 4),
		HistoryLimit:         getEnvIntOrDefault("HISTORY_LIMIT", 20),
	}
}

func validateConfig(config *Config) error {
	port, err := strconv.Atoi(config.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return errors.ConfigInvalid("PORT must be a number between 1 and 65535")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be one of debug, release, test")
	}
	switch config.Log.Level {
	case "ERROR", "WARN", "WARNING", "INFO", "DEBUG", "TRACE":
	default:
		return errors.ConfigInvalid("LOG_LEVEL must be one of ERROR, WARN, INFO, DEBUG, TRACE")
	}
	if config.Database.MaxOpenConns < 1 {
		return errors.ConfigInvalid("DB_MAX_OPEN_CONNS must be positive")
	}
	if config.Engine.MaxConcurrentColumns < 1 {
		return errors.ConfigInvalid("MAX_CONCURRENT_COLUMNS must be positive")
	}
	if config.Engine.HistoryLimit < 1 || config.Engine.HistoryLimit > 100 {
		return errors.ConfigInvalid("HISTORY_LIMIT must be between 1 and 100")
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
