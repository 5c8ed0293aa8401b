package ntfs

import (
	"strings"
	"unicode/utf8"

	"github.com/sdejongh/ntfsnorris/pkg/models"
)

// Request is the immutable input to Sanitize
type Request struct {
	// Name is the candidate file or directory name, without any path
	Name string

	// MaxLength is the maximum allowed name length in characters.
	// Values below 1 fall back to models.DefaultMaxNameLength.
	MaxLength int
}

// Result is the outcome of sanitizing a single name
type Result struct {
	// NewName is the corrected name, equal to the input when nothing changed
	NewName string

	// Reasons lists the violations detected, in detection order
	Reasons []models.Reason

	// Changed is true iff NewName differs from the request name
	Changed bool
}

// Skipped reports whether the name failed the length pre-check and must be
// skipped without correction
func (r Result) Skipped() bool {
	for _, reason := range r.Reasons {
		if reason == models.ReasonTooLong {
			return true
		}
	}
	return false
}

// Sanitize maps a candidate name to an NTFS-compliant name. Pure and
// deterministic, no I/O. The steps run in a fixed order because later steps
// can fix or re-introduce constraints handled by earlier ones.
//
// A name already over the length limit is not corrected at all: it comes
// back unchanged with the single reason ReasonTooLong, and the caller must
// skip the entry rather than rename it.
func Sanitize(req Request) Result {
	name := req.Name
	maxLength := req.MaxLength
	if maxLength < 1 {
		maxLength = models.DefaultMaxNameLength
	}

	if utf8.RuneCountInString(name) > maxLength {
		return Result{NewName: name, Reasons: []models.Reason{models.ReasonTooLong}}
	}

	// Violations are detected against the original name; fixes apply to the
	// working copy in order.
	hasInvalid := ContainsForbidden(name)
	hasTrailing := HasTrailingSpaceOrDot(name)
	isReserved := IsReservedName(name)

	var reasons []models.Reason
	working := name

	if hasInvalid {
		reasons = append(reasons, models.ReasonInvalidCharacters)
		working = replaceForbidden(working)
	}

	if hasTrailing {
		reasons = append(reasons, models.ReasonTrailingSpaceOrDot)
		working = strings.Trim(working, trimCutset)
		if working == "" {
			working = PlaceholderName
		}
	}

	// Trimming can uncover a reserved core (" con" trims to "con"), so the
	// guard checks the working name too. The result must never match a
	// device name.
	if isReserved || IsReservedName(working) {
		reasons = append(reasons, models.ReasonReservedName)
		working = "_" + working
	}

	if utf8.RuneCountInString(working) > maxLength {
		working = truncate(working, maxLength)
	}

	return Result{
		NewName: working,
		Reasons: reasons,
		Changed: working != name,
	}
}

// truncate shortens name to at most maxLength runes, keeping the extension
// when there is room for it
func truncate(name string, maxLength int) string {
	base, ext := SplitExt(name)
	extLen := utf8.RuneCountInString(ext)

	if extLen >= maxLength {
		name = truncateRunes(name, maxLength)
	} else {
		name = truncateRunes(base, maxLength-extLen) + ext
	}

	// The cut can expose a trailing space or dot.
	name = strings.TrimRight(name, trimCutset)
	if name == "" {
		name = truncateRunes(PlaceholderName, maxLength)
	}
	return name
}
