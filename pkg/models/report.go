package models

import (
	"time"
)

// RunReport represents the results of a sanitization run
type RunReport struct {
	// Operation details
	OperationID string
	RootPath    string
	DryRun      bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Outcomes recorded during the walk, in emission order
	Outcomes []RenameOutcome

	// Overall status
	Status RunStatus
}

// Statistics holds the per-run counters
type Statistics struct {
	// EntriesScanned counts every entry the walk visited
	EntriesScanned int

	// Renamed counts applied renames (would-apply renames in dry runs)
	Renamed int

	// SkippedTooLong counts names over the limit, skipped without correction
	SkippedTooLong int

	// Errors counts per-entry failures that did not stop the walk
	Errors int
}

// RunStatus represents the overall result
type RunStatus string

const (
	// StatusCompleted indicates every entry was visited, per-entry errors included
	StatusCompleted RunStatus = "completed"
	// StatusCancelled indicates the run was interrupted mid-walk
	StatusCancelled RunStatus = "cancelled"
	// StatusFailed indicates the run aborted before or during traversal
	StatusFailed RunStatus = "failed"
)

// ExitCode returns the appropriate process exit code for the run status
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusCompleted:
		return 0
	case StatusCancelled:
		return 1
	case StatusFailed:
		return 2
	default:
		return 2
	}
}
