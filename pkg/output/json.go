package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sdejongh/ntfsnorris/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct {
	writer    io.Writer
	operation *models.SanitizeOperation
	startTime time.Time
}

// JSONReportData represents the final report document
type JSONReportData struct {
	OperationID string            `json:"operation_id,omitempty"`
	Root        string            `json:"root"`
	DryRun      bool              `json:"dry_run"`
	Status      string            `json:"status"`
	Duration    string            `json:"duration"`
	DurationMs  int64             `json:"duration_ms"`
	Stats       JSONStatsData     `json:"stats"`
	Changes     []JSONChangeData  `json:"changes,omitempty"`
	Skipped     []JSONSkippedData `json:"skipped,omitempty"`
	Errors      []JSONErrorData   `json:"errors,omitempty"`
}

// JSONStatsData represents run counters in JSON format
type JSONStatsData struct {
	EntriesScanned int `json:"entries_scanned"`
	Renamed        int `json:"renamed"`
	SkippedTooLong int `json:"skipped_too_long"`
	Errors         int `json:"errors"`
}

// JSONChangeData represents a single rename
type JSONChangeData struct {
	Dir             string   `json:"dir"`
	OriginalName    string   `json:"original_name"`
	NewName         string   `json:"new_name"`
	Reasons         []string `json:"reasons"`
	CollisionSuffix int      `json:"collision_suffix,omitempty"`
	Applied         bool     `json:"applied"`
	Error           string   `json:"error,omitempty"`
}

// JSONSkippedData represents an entry skipped for exceeding the length limit
type JSONSkippedData struct {
	Dir    string `json:"dir"`
	Name   string `json:"name"`
	Length int    `json:"length"`
}

// JSONErrorData represents a run-level error entry
type JSONErrorData struct {
	Error string `json:"error"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, operation *models.SanitizeOperation, totalEntries int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.operation = operation
	f.startTime = time.Now()
	return nil
}

// Progress reports progress during the walk
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	// Progress is not streamed, the output stays a single parseable document
	return nil
}

// Outcome records a processed entry
func (f *JSONFormatter) Outcome(outcome *models.RenameOutcome) error {
	// Outcomes are rendered from the final report in Complete
	return nil
}

// Complete emits the report as a single indented JSON document
func (f *JSONFormatter) Complete(report *models.RunReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildReportData(report))
}

// buildReportData maps a run report onto the JSON document layout
func buildReportData(report *models.RunReport) JSONReportData {
	var changes []JSONChangeData
	var skipped []JSONSkippedData

	for i := range report.Outcomes {
		outcome := &report.Outcomes[i]

		if outcome.Skipped() {
			skipped = append(skipped, JSONSkippedData{
				Dir:    outcome.Dir,
				Name:   outcome.OriginalName,
				Length: len([]rune(outcome.OriginalName)),
			})
			continue
		}

		change := JSONChangeData{
			Dir:             outcome.Dir,
			OriginalName:    outcome.OriginalName,
			NewName:         outcome.NewName,
			Reasons:         reasonStrings(outcome.Reasons),
			CollisionSuffix: outcome.CollisionSuffix,
			Applied:         outcome.Applied,
		}
		if outcome.Err != nil {
			change.Error = outcome.Err.Error()
		}
		changes = append(changes, change)
	}

	return JSONReportData{
		OperationID: report.OperationID,
		Root:        report.RootPath,
		DryRun:      report.DryRun,
		Status:      string(report.Status),
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			EntriesScanned: report.Stats.EntriesScanned,
			Renamed:        report.Stats.Renamed,
			SkippedTooLong: report.Stats.SkippedTooLong,
			Errors:         report.Stats.Errors,
		},
		Changes: changes,
		Skipped: skipped,
	}
}

// Error emits a minimal error document so the output stays parseable
func (f *JSONFormatter) Error(err error) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	doc := JSONReportData{
		Status: string(models.StatusFailed),
		Errors: []JSONErrorData{{Error: err.Error()}},
	}
	if f.operation != nil {
		doc.OperationID = f.operation.ID
		doc.Root = f.operation.RootPath
		doc.DryRun = f.operation.DryRun
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

func reasonStrings(reasons []models.Reason) []string {
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, string(r))
	}
	return out
}
