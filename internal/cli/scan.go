package cli

import (
	"github.com/spf13/cobra"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "Report naming violations without renaming (dry-run)",
		Long: `Walk a directory tree and report every entry whose name would be
changed, without touching the filesystem. This is equivalent to
sanitize --dry-run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	// Reuse the sanitize flag set; dry-run is implied
	addRunFlags(cmd)

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	return executeRun(cmd, args, true)
}
