package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/ntfsnorris/pkg/config"
	"github.com/sdejongh/ntfsnorris/pkg/models"
)

// validateRunFlags checks flag values that the configuration validation
// does not cover
func validateRunFlags() error {
	validReportFormats := map[string]bool{
		"human": true,
		"json":  true,
	}
	if !validReportFormats[sanitizeFlags.ReportFormat] {
		return fmt.Errorf("invalid report format: %s (valid: human, json)", sanitizeFlags.ReportFormat)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags.
// Only flags the user actually set win over the file.
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("max-length") {
		cfg.Sanitize.MaxNameLength = sanitizeFlags.MaxLength
	}
	if flags.Changed("exclude") {
		cfg.Exclude = sanitizeFlags.Exclude
	}
	if flags.Changed("ignore") {
		cfg.Ignore = sanitizeFlags.Ignore
	}
	if flags.Changed("output") {
		cfg.Output.Format = sanitizeFlags.Output
	}
	if sanitizeFlags.NoColor {
		cfg.Output.NoColor = true
	}

	// A log file on the command line implies logging is wanted
	if flags.Changed("log-file") {
		cfg.Logging.File = sanitizeFlags.LogFile
		cfg.Logging.Enabled = sanitizeFlags.LogFile != ""
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = sanitizeFlags.LogFormat
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = sanitizeFlags.LogLevel
	}

	// Verbose raises log detail; quiet is handled at the engine output
	if globalFlags.Verbose {
		cfg.Logging.Level = "debug"
	}
}

// newOperation creates a sanitize operation from configuration
func newOperation(cfg *config.Config, root string, dryRun bool, format models.OutputFormat) (*models.SanitizeOperation, error) {
	operation := &models.SanitizeOperation{
		ID:              uuid.New().String(),
		RootPath:        root,
		DryRun:          dryRun,
		MaxNameLength:   cfg.Sanitize.MaxNameLength,
		ExcludePatterns: cfg.Exclude,
		IgnoreNames:     cfg.Ignore,
		Output:          format,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
