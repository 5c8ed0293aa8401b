package output

import (
	"io"

	"github.com/sdejongh/ntfsnorris/pkg/models"
)

// ProgressUpdate represents a progress notification emitted while the
// walker examines entries
type ProgressUpdate struct {
	// Path is the root-relative path of the entry just examined
	Path string

	// Processed counts entries examined so far
	Processed int

	// Total is the expected entry count, 0 when no pre-count was made
	Total int
}

// Formatter defines the interface for output formatting
// Implementations include human, JSON, and progress formatters
type Formatter interface {
	// Start initializes the formatter before the walk begins.
	// A nil writer defaults to standard output.
	Start(writer io.Writer, operation *models.SanitizeOperation, totalEntries int) error

	// Progress reports walk progress
	Progress(update ProgressUpdate) error

	// Outcome reports a single sanitized entry
	Outcome(outcome *models.RenameOutcome) error

	// Complete finalizes output once the walk has ended
	Complete(report *models.RunReport) error

	// Error reports a run-level failure
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
