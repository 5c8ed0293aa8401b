package models

import (
	"time"
)

// OutputFormat selects how run results are rendered
type OutputFormat string

const (
	// OutputHuman prints per-change blocks and a summary for terminals
	OutputHuman OutputFormat = "human"
	// OutputJSON emits a single machine-readable document at completion
	OutputJSON OutputFormat = "json"
	// OutputProgress renders a progress bar while processing
	OutputProgress OutputFormat = "progress"
)

// DefaultMaxNameLength is the NTFS filename component limit
const DefaultMaxNameLength = 255

// SanitizeOperation represents a sanitization run configuration
type SanitizeOperation struct {
	ID              string
	RootPath        string
	DryRun          bool
	MaxNameLength   int
	ExcludePatterns []string
	IgnoreNames     []string
	Output          OutputFormat
	CreatedAt       time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
}

// Validate checks if the operation configuration is valid
func (op *SanitizeOperation) Validate() error {
	if op.RootPath == "" {
		return &ValidationError{Field: "RootPath", Message: "root path is required"}
	}
	if op.MaxNameLength < 1 {
		return &ValidationError{Field: "MaxNameLength", Message: "max name length must be at least 1"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
