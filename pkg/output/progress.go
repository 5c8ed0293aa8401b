package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/sdejongh/ntfsnorris/pkg/models"
)

const (
	// barRefreshRate limits redraws to avoid flicker
	barRefreshRate = 100 * time.Millisecond

	// barEntryWidth is how many characters of the current path the bar shows
	barEntryWidth = 40

	// barTemplate renders counters, the bar itself, the percentage and the
	// entry currently being examined
	barTemplate = `{{counters . }} {{bar . }} {{percent . }} {{string . "entry"}}`
)

// ProgressFormatter renders a live progress bar during the walk and defers
// the per-change detail to the end of the run
type ProgressFormatter struct {
	writer io.Writer
	bar    *pb.ProgressBar
	human  *HumanFormatter
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{
		human: NewHumanFormatter(),
	}
}

// Start prints the run header and starts the bar
func (f *ProgressFormatter) Start(writer io.Writer, operation *models.SanitizeOperation, totalEntries int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer

	// The header goes through the human layout so both modes read the same
	if err := f.human.Start(writer, operation, totalEntries); err != nil {
		return err
	}

	f.bar = pb.New(totalEntries)
	f.bar.SetTemplateString(barTemplate)
	f.bar.SetWriter(writer)
	f.bar.SetRefreshRate(barRefreshRate)
	f.bar.Set("entry", "")

	// Cap the bar to the terminal width to prevent line wrapping
	if file, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			f.bar.SetMaxWidth(width)
		}
	}

	f.bar.Start()
	return nil
}

// Progress advances the bar and shows the entry being examined
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	if f.bar == nil {
		return nil
	}

	f.bar.SetCurrent(int64(update.Processed))
	f.bar.Set("entry", truncateEntry(update.Path, barEntryWidth))
	return nil
}

// Outcome records a processed entry
func (f *ProgressFormatter) Outcome(outcome *models.RenameOutcome) error {
	// Change blocks would garble the bar, they are printed from the final
	// report in Complete
	return nil
}

// Complete finishes the bar, then prints the change detail and the summary
func (f *ProgressFormatter) Complete(report *models.RunReport) error {
	f.finishBar(int64(report.Stats.EntriesScanned))

	if f.writer != nil {
		fmt.Fprintln(f.writer)
	}

	for i := range report.Outcomes {
		if err := f.human.Outcome(&report.Outcomes[i]); err != nil {
			return err
		}
	}

	return f.human.Complete(report)
}

// Error reports a run-level failure
func (f *ProgressFormatter) Error(err error) error {
	f.finishBar(-1)
	return f.human.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

// finishBar stops the bar, setting the final position when current is not
// negative
func (f *ProgressFormatter) finishBar(current int64) {
	if f.bar == nil {
		return
	}
	if current >= 0 {
		f.bar.SetCurrent(current)
	}
	f.bar.Finish()
	f.bar = nil
}

// truncateEntry keeps the tail of a path so the deepest component stays
// visible
func truncateEntry(path string, maxLen int) string {
	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}
