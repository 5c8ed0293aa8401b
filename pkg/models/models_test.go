package models

import (
	"errors"
	"testing"
	"time"
)

// ============== Reason Tests ==============

func TestReason(t *testing.T) {
	tests := []struct {
		reason   Reason
		expected string
	}{
		{ReasonInvalidCharacters, "invalid-characters"},
		{ReasonTrailingSpaceOrDot, "trailing-space-or-dot"},
		{ReasonReservedName, "reserved-name"},
		{ReasonTooLong, "too-long"},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			if string(tt.reason) != tt.expected {
				t.Errorf("Reason = %s, want %s", string(tt.reason), tt.expected)
			}
		})
	}
}

func TestReasonDescription(t *testing.T) {
	tests := []struct {
		reason   Reason
		expected string
	}{
		{ReasonInvalidCharacters, "Contains invalid NTFS characters"},
		{ReasonTrailingSpaceOrDot, "Trailing spaces/dots"},
		{ReasonReservedName, "Reserved Windows name"},
		{ReasonTooLong, "Name too long"},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			if tt.reason.Description() != tt.expected {
				t.Errorf("Description() = %s, want %s", tt.reason.Description(), tt.expected)
			}
		})
	}
}

// ============== RenameOutcome Tests ==============

func TestRenameOutcome(t *testing.T) {
	t.Run("AppliedRename", func(t *testing.T) {
		outcome := &RenameOutcome{
			Dir:          "sub/dir",
			OriginalName: "bad:name.txt",
			NewName:      "bad_name.txt",
			Reasons:      []Reason{ReasonInvalidCharacters},
			Applied:      true,
		}

		if !outcome.HasReason(ReasonInvalidCharacters) {
			t.Error("HasReason(ReasonInvalidCharacters) should be true")
		}
		if outcome.HasReason(ReasonReservedName) {
			t.Error("HasReason(ReasonReservedName) should be false")
		}
		if outcome.Skipped() {
			t.Error("Skipped() should be false for a rename outcome")
		}
	})

	t.Run("TooLongSkip", func(t *testing.T) {
		outcome := &RenameOutcome{
			Dir:          ".",
			OriginalName: "very-long-name",
			NewName:      "very-long-name",
			Reasons:      []Reason{ReasonTooLong},
		}

		if !outcome.Skipped() {
			t.Error("Skipped() should be true for a too-long outcome")
		}
		if outcome.Applied {
			t.Error("Applied should be false for a skipped entry")
		}
	})

	t.Run("FailedRename", func(t *testing.T) {
		outcome := &RenameOutcome{
			Dir:          ".",
			OriginalName: "con",
			NewName:      "_con",
			Reasons:      []Reason{ReasonReservedName},
			Err:          errors.New("permission denied"),
		}

		if outcome.Err == nil {
			t.Error("Err should be set for a failed rename")
		}
		if outcome.Applied {
			t.Error("Applied should be false when the rename failed")
		}
	})

	t.Run("CollisionSuffix", func(t *testing.T) {
		outcome := &RenameOutcome{
			Dir:             ".",
			OriginalName:    "a:b.txt",
			NewName:         "a_b_2.txt",
			Reasons:         []Reason{ReasonInvalidCharacters},
			CollisionSuffix: 2,
		}

		if outcome.CollisionSuffix != 2 {
			t.Errorf("CollisionSuffix = %d, want 2", outcome.CollisionSuffix)
		}
	})
}

// ============== OutputFormat Tests ==============

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		format   OutputFormat
		expected string
	}{
		{OutputHuman, "human"},
		{OutputJSON, "json"},
		{OutputProgress, "progress"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if string(tt.format) != tt.expected {
				t.Errorf("OutputFormat = %s, want %s", string(tt.format), tt.expected)
			}
		})
	}
}

// ============== SanitizeOperation Tests ==============

func TestSanitizeOperationValidate(t *testing.T) {
	t.Run("ValidOperation", func(t *testing.T) {
		op := &SanitizeOperation{
			RootPath:      "/data",
			MaxNameLength: DefaultMaxNameLength,
		}

		err := op.Validate()
		if err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("EmptyRootPath", func(t *testing.T) {
		op := &SanitizeOperation{
			RootPath:      "",
			MaxNameLength: 255,
		}

		err := op.Validate()
		if err == nil {
			t.Error("Validate() should fail for empty root path")
		}
		if ve, ok := err.(*ValidationError); ok {
			if ve.Field != "RootPath" {
				t.Errorf("ValidationError.Field = %s, want RootPath", ve.Field)
			}
		}
	})

	t.Run("ZeroMaxNameLength", func(t *testing.T) {
		op := &SanitizeOperation{
			RootPath:      "/data",
			MaxNameLength: 0,
		}

		err := op.Validate()
		if err == nil {
			t.Error("Validate() should fail for zero max name length")
		}
		if ve, ok := err.(*ValidationError); ok {
			if ve.Field != "MaxNameLength" {
				t.Errorf("ValidationError.Field = %s, want MaxNameLength", ve.Field)
			}
		}
	})
}

func TestSanitizeOperationFields(t *testing.T) {
	now := time.Now()
	started := now.Add(-time.Minute)
	completed := now

	op := &SanitizeOperation{
		ID:              "run-123",
		RootPath:        "/data/archive",
		DryRun:          true,
		MaxNameLength:   100,
		ExcludePatterns: []string{"*.tmp", ".git/**"},
		IgnoreNames:     []string{".ntfsnorris.lock"},
		Output:          OutputJSON,
		CreatedAt:       now,
		StartedAt:       &started,
		CompletedAt:     &completed,
	}

	if op.ID != "run-123" {
		t.Errorf("ID = %s, want run-123", op.ID)
	}
	if !op.DryRun {
		t.Error("DryRun should be true")
	}
	if op.MaxNameLength != 100 {
		t.Errorf("MaxNameLength = %d, want 100", op.MaxNameLength)
	}
	if len(op.ExcludePatterns) != 2 {
		t.Errorf("ExcludePatterns length = %d, want 2", len(op.ExcludePatterns))
	}
	if len(op.IgnoreNames) != 1 {
		t.Errorf("IgnoreNames length = %d, want 1", len(op.IgnoreNames))
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "TestField",
		Message: "test message",
	}

	expected := "TestField: test message"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}

// ============== RunStatus Tests ==============

func TestRunStatusExitCode(t *testing.T) {
	tests := []struct {
		status   RunStatus
		expected int
	}{
		{StatusCompleted, 0},
		{StatusCancelled, 1},
		{StatusFailed, 2},
		{RunStatus("unknown"), 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if tt.status.ExitCode() != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", tt.status.ExitCode(), tt.expected)
			}
		})
	}
}

func TestRunReportCounters(t *testing.T) {
	report := &RunReport{
		OperationID: "run-456",
		RootPath:    "/data",
		Status:      StatusCompleted,
		Stats: Statistics{
			EntriesScanned: 10,
			Renamed:        3,
			SkippedTooLong: 1,
			Errors:         2,
		},
	}

	if report.Stats.Renamed != 3 {
		t.Errorf("Renamed = %d, want 3", report.Stats.Renamed)
	}
	if report.Stats.SkippedTooLong != 1 {
		t.Errorf("SkippedTooLong = %d, want 1", report.Stats.SkippedTooLong)
	}
	if report.Stats.Errors != 2 {
		t.Errorf("Errors = %d, want 2", report.Stats.Errors)
	}

	// Per-entry errors never change the exit code of a completed run.
	if report.Status.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", report.Status.ExitCode())
	}
}
