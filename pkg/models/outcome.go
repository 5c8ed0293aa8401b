package models

// Reason identifies a naming violation detected on a candidate name
type Reason string

const (
	// ReasonInvalidCharacters marks names containing NTFS-forbidden characters
	ReasonInvalidCharacters Reason = "invalid-characters"
	// ReasonTrailingSpaceOrDot marks names with leading or trailing spaces/dots
	ReasonTrailingSpaceOrDot Reason = "trailing-space-or-dot"
	// ReasonReservedName marks reserved Windows device names
	ReasonReservedName Reason = "reserved-name"
	// ReasonTooLong marks names exceeding the configured length limit
	ReasonTooLong Reason = "too-long"
)

// Description returns the console wording for the violation
func (r Reason) Description() string {
	switch r {
	case ReasonInvalidCharacters:
		return "Contains invalid NTFS characters"
	case ReasonTrailingSpaceOrDot:
		return "Trailing spaces/dots"
	case ReasonReservedName:
		return "Reserved Windows name"
	case ReasonTooLong:
		return "Name too long"
	default:
		return string(r)
	}
}

// RenameOutcome records what happened to a single directory entry
type RenameOutcome struct {
	// Dir is the entry's directory relative to the run root ("." for the root)
	Dir string

	// OriginalName is the entry name before sanitization
	OriginalName string

	// NewName is the resolved name after sanitization and collision suffixing
	NewName string

	// Reasons lists the violations detected, in detection order
	Reasons []Reason

	// CollisionSuffix is the _<N> counter applied, 0 when no collision occurred
	CollisionSuffix int

	// Applied is true when the rename was performed on disk
	Applied bool

	// Err holds the rename failure, nil on success and in dry runs
	Err error
}

// HasReason reports whether the outcome carries the given violation
func (o *RenameOutcome) HasReason(r Reason) bool {
	for _, have := range o.Reasons {
		if have == r {
			return true
		}
	}
	return false
}

// Skipped reports whether the entry was hard-skipped for exceeding the length limit
func (o *RenameOutcome) Skipped() bool {
	return o.HasReason(ReasonTooLong)
}
