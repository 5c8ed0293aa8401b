package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sdejongh/ntfsnorris/pkg/models"
)

// WriteReport writes the run report to a file
// Format can be "human" or "json"
func WriteReport(report *models.RunReport, filepath string, format models.OutputFormat) error {
	if len(report.Outcomes) == 0 {
		// Nothing happened - don't create an empty file
		return nil
	}

	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	switch format {
	case models.OutputJSON:
		return writeReportJSON(report, file)
	default: // "human"
		return writeReportHuman(report, file)
	}
}

// writeReportHuman writes the report in human-readable format
func writeReportHuman(report *models.RunReport, w io.Writer) error {
	fmt.Fprintf(w, "Sanitization Report\n")
	fmt.Fprintf(w, "===================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "Directory: %s\n", report.RootPath)
	fmt.Fprintf(w, "Dry Run: %v\n", report.DryRun)
	fmt.Fprintf(w, "Status: %s\n\n", report.Status)

	var changes, skipped, failed []*models.RenameOutcome
	for i := range report.Outcomes {
		outcome := &report.Outcomes[i]
		switch {
		case outcome.Skipped():
			skipped = append(skipped, outcome)
		case outcome.Err != nil:
			failed = append(failed, outcome)
		default:
			changes = append(changes, outcome)
		}
	}

	fmt.Fprintf(w, "Total Changes: %d\n\n", len(changes))

	// Group changes by their leading reason
	byReason := make(map[models.Reason][]*models.RenameOutcome)
	for _, outcome := range changes {
		if len(outcome.Reasons) == 0 {
			continue
		}
		byReason[outcome.Reasons[0]] = append(byReason[outcome.Reasons[0]], outcome)
	}

	reasonOrder := []models.Reason{
		models.ReasonInvalidCharacters,
		models.ReasonTrailingSpaceOrDot,
		models.ReasonReservedName,
	}

	reasonLabels := map[models.Reason]string{
		models.ReasonInvalidCharacters:  "Invalid NTFS Characters",
		models.ReasonTrailingSpaceOrDot: "Trailing Spaces or Dots",
		models.ReasonReservedName:       "Reserved Windows Names",
	}

	if len(failed) > 0 {
		label := fmt.Sprintf("Rename Errors (%d entries)", len(failed))
		fmt.Fprintf(w, "%s\n", label)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(label)))

		for _, outcome := range failed {
			fmt.Fprintf(w, "  ./%s\n", displayPath(outcome.Dir, outcome.OriginalName))
			fmt.Fprintf(w, "    Error: %v\n\n", outcome.Err)
		}
		fmt.Fprintf(w, "\n")
	}

	for _, reason := range reasonOrder {
		outcomes := byReason[reason]
		if len(outcomes) == 0 {
			continue
		}

		label := fmt.Sprintf("%s (%d entries)", reasonLabels[reason], len(outcomes))
		fmt.Fprintf(w, "%s\n", label)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(label)))

		for _, outcome := range outcomes {
			fmt.Fprintf(w, "  ./%s\n", displayPath(outcome.Dir, outcome.OriginalName))
			fmt.Fprintf(w, "    Renamed to: %s\n", outcome.NewName)
			if outcome.CollisionSuffix > 0 {
				fmt.Fprintf(w, "    Collision suffix: _%d\n", outcome.CollisionSuffix)
			}
			fmt.Fprintf(w, "\n")
		}
		fmt.Fprintf(w, "\n")
	}

	if len(skipped) > 0 {
		label := fmt.Sprintf("Skipped, Name Too Long (%d entries)", len(skipped))
		fmt.Fprintf(w, "%s\n", label)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(label)))

		for _, outcome := range skipped {
			fmt.Fprintf(w, "  ./%s\n", displayPath(outcome.Dir, outcome.OriginalName))
			fmt.Fprintf(w, "    Length: %d chars\n\n", len([]rune(outcome.OriginalName)))
		}
	}

	return nil
}

// writeReportJSON writes the report in JSON format
func writeReportJSON(report *models.RunReport, w io.Writer) error {
	output := struct {
		Generated string `json:"generated"`
		JSONReportData
	}{
		Generated:      time.Now().Format(time.RFC3339),
		JSONReportData: buildReportData(report),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// displayPath renders a root-relative entry path for report listings
func displayPath(dir, name string) string {
	if d := displayDir(dir); d != "" {
		return d + "/" + name
	}
	return name
}
