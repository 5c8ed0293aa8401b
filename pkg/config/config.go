package config

import (
	"github.com/sdejongh/ntfsnorris/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Sanitize SanitizeConfig `yaml:"sanitize"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Exclude  []string       `yaml:"exclude"`
	Ignore   []string       `yaml:"ignore"`
}

// SanitizeConfig holds naming-rule settings
type SanitizeConfig struct {
	MaxNameLength int `yaml:"max_name_length"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format  string `yaml:"format"`   // "human", "json", or "progress"
	NoColor bool   `yaml:"no_color"` // Disable colored tags
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty leaves file logging off)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Sanitize: SanitizeConfig{
			MaxNameLength: models.DefaultMaxNameLength,
		},
		Output: OutputConfig{
			Format:  "human",
			NoColor: false,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Format:  "text",
			Level:   "info",
			File:    "",
		},
		Exclude: []string{},
		Ignore:  []string{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Sanitize.MaxNameLength < 1 {
		return &models.ValidationError{
			Field:   "sanitize.max_name_length",
			Message: "must be at least 1",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true, "progress": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human', 'json', or 'progress'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
