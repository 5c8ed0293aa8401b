package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sdejongh/ntfsnorris/internal/platform"
	"github.com/sdejongh/ntfsnorris/pkg/config"
	"github.com/sdejongh/ntfsnorris/pkg/logging"
	"github.com/sdejongh/ntfsnorris/pkg/models"
	"github.com/sdejongh/ntfsnorris/pkg/output"
	"github.com/sdejongh/ntfsnorris/pkg/storage"
	"github.com/sdejongh/ntfsnorris/pkg/walker"
)

// SanitizeFlags holds sanitize command flags
type SanitizeFlags struct {
	DryRun       bool
	MaxLength    int
	Exclude      []string
	Ignore       []string
	Output       string
	NoColor      bool
	ReportFile   string
	ReportFormat string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var sanitizeFlags SanitizeFlags

// NewSanitizeCommand creates the sanitize command
func NewSanitizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sanitize [directory]",
		Short: "Rename entries that violate NTFS naming rules",
		Long: `Walk a directory tree bottom-up and rename files and directories whose
names are not valid on NTFS: forbidden characters, trailing spaces or
dots, reserved device names. Names over the length limit are reported
and skipped. Without an argument the current directory is processed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSanitize,
	}

	cmd.Flags().BoolVar(&sanitizeFlags.DryRun, "dry-run", false, "show what would be changed without renaming anything")
	addRunFlags(cmd)

	return cmd
}

// addRunFlags registers the flags shared by sanitize and scan
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&sanitizeFlags.MaxLength, "max-length", models.DefaultMaxNameLength, "maximum filename length")
	cmd.Flags().StringSliceVar(&sanitizeFlags.Exclude, "exclude", []string{}, "glob patterns to exclude (relative to the target directory)")
	cmd.Flags().StringSliceVar(&sanitizeFlags.Ignore, "ignore", []string{}, "entry names to skip wherever they appear")
	cmd.Flags().StringVarP(&sanitizeFlags.Output, "output", "o", "human", "output format: human, json, progress")
	cmd.Flags().BoolVar(&sanitizeFlags.NoColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVar(&sanitizeFlags.ReportFile, "report-file", "", "write a run report to file")
	cmd.Flags().StringVar(&sanitizeFlags.ReportFormat, "report-format", "human", "run report format: human, json")

	// Logging flags
	cmd.Flags().StringVar(&sanitizeFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&sanitizeFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&sanitizeFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
}

func runSanitize(cmd *cobra.Command, args []string) error {
	return executeRun(cmd, args, sanitizeFlags.DryRun)
}

// executeRun drives a full sanitization pass; scan forces dryRun on
func executeRun(cmd *cobra.Command, args []string, dryRun bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Validate flags
	if err := validateRunFlags(); err != nil {
		return err
	}

	// Resolve the target directory (defaults to the current directory)
	dirArg := "."
	if len(args) > 0 {
		dirArg = args[0]
	}
	root, err := platform.ResolveDir(dirArg)
	if err != nil {
		return err
	}
	if !platform.IsDir(root) {
		fmt.Printf("Error: Directory '%s' does not exist.\n", root)
		os.Exit(models.StatusFailed.ExitCode())
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Output.NoColor {
		color.NoColor = true
	}

	// Progress needs a terminal; fall back to plain human output
	format := models.OutputFormat(cfg.Output.Format)
	if format == models.OutputProgress && !term.IsTerminal(int(os.Stdout.Fd())) {
		format = models.OutputHuman
	}

	// Create the run descriptor
	operation, err := newOperation(cfg, root, dryRun, format)
	if err != nil {
		return fmt.Errorf("failed to create operation: %w", err)
	}

	// Create the filesystem backend
	backend, err := storage.NewLocal(root)
	if err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}
	defer backend.Close()

	// Create output formatter
	formatter := newFormatter(format)

	// Create logger
	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Create the walker engine
	engine := walker.NewEngine(backend, formatter, logger, operation)
	if globalFlags.Quiet {
		engine.SetOutput(io.Discard)
	}

	// Run the walk
	report, runErr := engine.Run(ctx)
	if report == nil {
		return fmt.Errorf("sanitization failed: %w", runErr)
	}
	if report.Status == models.StatusFailed && runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
	}

	// Write the run report if requested
	if sanitizeFlags.ReportFile != "" {
		if err := output.WriteReport(report, sanitizeFlags.ReportFile, models.OutputFormat(sanitizeFlags.ReportFormat)); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	// Exit with appropriate code
	os.Exit(report.Status.ExitCode())
	return nil
}

// newFormatter selects the output formatter for the effective format
func newFormatter(format models.OutputFormat) output.Formatter {
	switch format {
	case models.OutputJSON:
		return output.NewJSONFormatter()
	case models.OutputProgress:
		return output.NewProgressFormatter()
	default:
		return output.NewHumanFormatter()
	}
}

// newLogger creates a logger based on configuration
func newLogger(cfg *config.Config) (logging.Logger, error) {
	// Without a log file there is nothing to write to
	if !cfg.Logging.Enabled || cfg.Logging.File == "" {
		return logging.NewNullLogger(), nil
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.Logging.File,
		Format:     logging.ParseFormat(cfg.Logging.Format),
		Level:      logging.ParseLevel(cfg.Logging.Level),
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	})
}
