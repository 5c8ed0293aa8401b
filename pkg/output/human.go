package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/sdejongh/ntfsnorris/pkg/models"
)

// warningNamePreview is how many characters of an over-length name the
// warning line shows
const warningNamePreview = 50

// HumanFormatter formats output for human consumption
type HumanFormatter struct {
	writer io.Writer
	dryRun bool

	changedTag *color.Color
	dryRunTag  *color.Color
	warningTag *color.Color
	errorTag   *color.Color
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{
		changedTag: color.New(color.FgGreen, color.Bold),
		dryRunTag:  color.New(color.FgCyan, color.Bold),
		warningTag: color.New(color.FgYellow),
		errorTag:   color.New(color.FgRed),
	}
}

// Start prints the run header
func (f *HumanFormatter) Start(writer io.Writer, operation *models.SanitizeOperation, totalEntries int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.dryRun = operation.DryRun

	fmt.Fprintln(f.writer, "--- Starting NTFS Sanitization ---")
	fmt.Fprintf(f.writer, "Directory: %s\n", operation.RootPath)
	fmt.Fprintf(f.writer, "Dry run: %t\n", operation.DryRun)
	fmt.Fprintln(f.writer, strings.Repeat("-", 50))

	return nil
}

// Progress is a no-op, per-entry progress is not shown in human mode
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Outcome prints a change block, or a warning line for a skipped entry
func (f *HumanFormatter) Outcome(outcome *models.RenameOutcome) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	if outcome.Skipped() {
		f.printWarning(outcome)
		return nil
	}

	tag := f.changedTag.Sprint("[CHANGED]")
	if f.dryRun {
		tag = f.dryRunTag.Sprint("[WOULD CHANGE]")
	}

	fmt.Fprintln(f.writer, tag)
	fmt.Fprintf(f.writer, "  Location: ./%s\n", displayDir(outcome.Dir))
	fmt.Fprintf(f.writer, "  Original: %s\n", outcome.OriginalName)
	fmt.Fprintf(f.writer, "  Modified: %s\n", outcome.NewName)
	for _, reason := range outcome.Reasons {
		fmt.Fprintf(f.writer, "  Reason: %s\n", reason.Description())
	}
	fmt.Fprintln(f.writer, strings.Repeat("-", 30))

	if outcome.Err != nil {
		fmt.Fprintf(f.writer, "%s Could not rename '%s': %v\n",
			f.errorTag.Sprint("[ERROR]"), outcome.OriginalName, outcome.Err)
	}

	return nil
}

// printWarning prints the over-length warning with a truncated name preview
func (f *HumanFormatter) printWarning(outcome *models.RenameOutcome) {
	name := outcome.OriginalName
	preview := []rune(name)
	if len(preview) > warningNamePreview {
		preview = preview[:warningNamePreview]
	}

	fmt.Fprintf(f.writer, "%s Name too long (%d chars): %s...\n",
		f.warningTag.Sprint("[WARNING]"), utf8.RuneCountInString(name), string(preview))
}

// Complete prints the run summary
func (f *HumanFormatter) Complete(report *models.RunReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	if report.Status == models.StatusCancelled {
		fmt.Fprintln(f.writer, "\n\nOperation cancelled by user.")
		return nil
	}

	fmt.Fprintln(f.writer, "\n--- Process Complete ---")
	fmt.Fprintf(f.writer, "Total renamed: %d\n", report.Stats.Renamed)
	fmt.Fprintf(f.writer, "Skipped (too long): %d\n", report.Stats.SkippedTooLong)
	fmt.Fprintf(f.writer, "Errors: %d\n", report.Stats.Errors)

	if report.DryRun {
		fmt.Fprintln(f.writer, "\nNote: This was a dry run. No files were actually changed.")
		fmt.Fprintln(f.writer, "Run without --dry-run to apply changes.")
	}

	return nil
}

// Error reports a run-level failure
func (f *HumanFormatter) Error(err error) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	fmt.Fprintf(f.writer, "\n%s %v\n", f.errorTag.Sprint("Error:"), err)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// displayDir renders a root-relative directory for the Location line,
// empty for the root itself
func displayDir(dir string) string {
	if dir == "" || dir == "." {
		return ""
	}
	return filepath.ToSlash(dir)
}
