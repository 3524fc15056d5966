// Package config loads and validates the application configuration from
// environment variables, with an optional .env file for development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix for all configuration environment variables,
// e.g. MEDIAPULSE_SERVER_PORT.
const EnvPrefix = "MEDIAPULSE"

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `envconfig:"SERVER"`
	Logging LoggingConfig `envconfig:"LOGGING"`
	Upload  UploadConfig  `envconfig:"UPLOAD"`
	Paths   PathsConfig   `envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `envconfig:"LEVEL" default:"info"`
	Output   string `envconfig:"OUTPUT" default:"console"`
	FilePath string `envconfig:"FILE_PATH" default:"logs/mediapulse.log"`
}

// UploadConfig bounds dataset uploads.
type UploadConfig struct {
	MaxBytes  int64   `envconfig:"MAX_BYTES" default:"10485760"`
	RateRPS   float64 `envconfig:"RATE_RPS" default:"2"`
	RateBurst int     `envconfig:"RATE_BURST" default:"5"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	DataDir    string `envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `envconfig:"REPORTS_DIR" default:"data/reports"`
	LogsDir    string `envconfig:"LOGS_DIR" default:"logs"`
}

// Load loads configuration from the environment. A .env file in the
// working directory is applied first if present; real environment
// variables win over .env entries.
func Load() (*Config, error) {
	// godotenv.Load does not override variables already set.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload max bytes must be positive, got %d", c.Upload.MaxBytes)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	return nil
}
