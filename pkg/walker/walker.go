package walker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/sdejongh/ntfsnorris/pkg/logging"
	"github.com/sdejongh/ntfsnorris/pkg/models"
	"github.com/sdejongh/ntfsnorris/pkg/ntfs"
	"github.com/sdejongh/ntfsnorris/pkg/output"
	"github.com/sdejongh/ntfsnorris/pkg/storage"
)

// Engine orchestrates a sanitization run
type Engine struct {
	backend   storage.Backend
	formatter output.Formatter
	logger    logging.Logger
	operation *models.SanitizeOperation
	excluder  *Excluder
	ignore    map[string]struct{}

	out          io.Writer
	totalEntries int
}

// NewEngine creates a new walker engine
func NewEngine(
	backend storage.Backend,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.SanitizeOperation,
) *Engine {
	ignore := make(map[string]struct{}, len(operation.IgnoreNames)+1)
	ignore[LockFileName] = struct{}{}
	for _, name := range operation.IgnoreNames {
		ignore[name] = struct{}{}
	}

	return &Engine{
		backend:   backend,
		formatter: formatter,
		logger:    logger,
		operation: operation,
		excluder:  NewExcluder(operation.ExcludePatterns),
		ignore:    ignore,
	}
}

// SetOutput redirects formatter output, which otherwise defaults to
// standard output
func (e *Engine) SetOutput(w io.Writer) {
	e.out = w
}

// Run executes the sanitization walk and returns the run report.
// Per-entry failures are counted and do not abort the walk, the run still
// completes. Cancelling the context stops the walk at the next entry.
func (e *Engine) Run(ctx context.Context) (*models.RunReport, error) {
	startTime := time.Now()
	e.operation.StartedAt = &startTime

	report := &models.RunReport{
		OperationID: e.operation.ID,
		RootPath:    e.backend.Root(),
		DryRun:      e.operation.DryRun,
		StartTime:   startTime,
		Status:      models.StatusCompleted,
	}

	if e.logger != nil {
		e.logger.Info(ctx, "Starting sanitization run", logging.Fields{
			"operation_id":    e.operation.ID,
			"root":            report.RootPath,
			"dry_run":         e.operation.DryRun,
			"max_name_length": e.operation.MaxNameLength,
		})
	}

	// Live runs hold an exclusive lock so two runs cannot rename
	// concurrently in the same tree
	if !e.operation.DryRun {
		lock, err := acquireLock(report.RootPath)
		if err != nil {
			report.EndTime = time.Now()
			report.Duration = report.EndTime.Sub(startTime)
			report.Status = models.StatusFailed
			if e.logger != nil {
				e.logger.Error(ctx, "Failed to lock tree", err, logging.Fields{
					"root": report.RootPath,
				})
			}
			return report, fmt.Errorf("failed to lock tree: %w", err)
		}
		defer lock.release()
	}

	// The progress display needs a total up front, other formats skip the
	// extra pass
	if e.operation.Output == models.OutputProgress {
		if count, err := e.CountEntries(ctx); err == nil {
			e.totalEntries = count
		} else if e.logger != nil {
			e.logger.Warn(ctx, "Entry pre-count failed", logging.Fields{
				"error": err.Error(),
			})
		}
	}

	if e.formatter != nil {
		if err := e.formatter.Start(e.out, e.operation, e.totalEntries); err != nil {
			return nil, fmt.Errorf("failed to start formatter: %w", err)
		}
	}

	walkErr := e.walkDir(ctx, ".", report)

	endTime := time.Now()
	e.operation.CompletedAt = &endTime
	report.EndTime = endTime
	report.Duration = endTime.Sub(startTime)

	if walkErr != nil {
		if errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded) {
			report.Status = models.StatusCancelled
		} else {
			report.Status = models.StatusFailed
		}
	}

	if e.formatter != nil {
		if report.Status == models.StatusFailed {
			e.formatter.Error(walkErr)
		} else {
			e.formatter.Complete(report)
		}
	}

	if e.logger != nil {
		e.logger.Info(ctx, "Sanitization run finished", logging.Fields{
			"operation_id":     e.operation.ID,
			"status":           string(report.Status),
			"duration":         report.Duration.String(),
			"entries_scanned":  report.Stats.EntriesScanned,
			"renamed":          report.Stats.Renamed,
			"skipped_too_long": report.Stats.SkippedTooLong,
			"errors":           report.Stats.Errors,
		})
	}

	return report, walkErr
}

// CountEntries walks the tree without touching it and returns the number
// of entries a run would examine
func (e *Engine) CountEntries(ctx context.Context) (int, error) {
	return e.countDir(ctx, ".")
}

func (e *Engine) countDir(ctx context.Context, dir string) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	entries, err := e.backend.ReadDir(ctx, dir)
	if err != nil {
		if dir == "." {
			return 0, err
		}
		// The walk skips unreadable subtrees, the count does too
		return 0, nil
	}

	count := 0
	for _, entry := range entries {
		if e.skip(dir, entry.Name) {
			continue
		}
		count++
		if entry.IsDir {
			sub, err := e.countDir(ctx, path.Join(dir, entry.Name))
			if err != nil {
				return 0, err
			}
			count += sub
		}
	}
	return count, nil
}

// walkDir processes the tree below dir, deepest entries first, so children
// are renamed before the directories containing them
func (e *Engine) walkDir(ctx context.Context, dir string, report *models.RunReport) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	entries, err := e.backend.ReadDir(ctx, dir)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		report.Stats.Errors++
		if e.logger != nil {
			e.logger.Warn(ctx, "Skipping unreadable directory", logging.Fields{
				"dir":   dir,
				"error": err.Error(),
			})
		}
		return nil
	}

	// Descend first. A directory that will itself be renamed must keep its
	// current name until its whole subtree has been processed.
	for _, entry := range entries {
		if !entry.IsDir || e.skip(dir, entry.Name) {
			continue
		}
		if err := e.walkDir(ctx, path.Join(dir, entry.Name), report); err != nil {
			return err
		}
	}

	// Directory names first, then file names, both in listing order
	for _, entry := range entries {
		if !entry.IsDir {
			continue
		}
		if err := e.processEntry(ctx, dir, entry, report); err != nil {
			return err
		}
	}
	for _, entry := range entries {
		if entry.IsDir {
			continue
		}
		if err := e.processEntry(ctx, dir, entry, report); err != nil {
			return err
		}
	}

	return nil
}

// processEntry examines one directory entry and renames it when its name
// violates the rules. Only cancellation aborts the walk, every other
// failure is recorded against its entry and the walk moves on.
func (e *Engine) processEntry(ctx context.Context, dir string, entry storage.EntryInfo, report *models.RunReport) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	name := entry.Name
	if e.skip(dir, name) {
		return nil
	}

	rel := path.Join(dir, name)
	report.Stats.EntriesScanned++
	defer e.progress(rel, report)

	result := ntfs.Sanitize(ntfs.Request{
		Name:      name,
		MaxLength: e.operation.MaxNameLength,
	})

	if result.Skipped() {
		report.Stats.SkippedTooLong++
		e.emit(report, &models.RenameOutcome{
			Dir:          dir,
			OriginalName: name,
			NewName:      name,
			Reasons:      result.Reasons,
		})
		if e.logger != nil {
			e.logger.Debug(ctx, "Skipped entry over the length limit", logging.Fields{
				"path":   rel,
				"length": len([]rune(name)),
			})
		}
		return nil
	}

	if !result.Changed {
		return nil
	}

	newName, suffix, err := e.resolveCollision(ctx, dir, result.NewName)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		report.Stats.Errors++
		e.emit(report, &models.RenameOutcome{
			Dir:          dir,
			OriginalName: name,
			NewName:      result.NewName,
			Reasons:      result.Reasons,
			Err:          err,
		})
		if e.logger != nil {
			e.logger.Error(ctx, "Failed to probe for collisions", err, logging.Fields{
				"path": rel,
			})
		}
		return nil
	}

	outcome := &models.RenameOutcome{
		Dir:             dir,
		OriginalName:    name,
		NewName:         newName,
		Reasons:         result.Reasons,
		CollisionSuffix: suffix,
	}

	if !e.operation.DryRun {
		if err := e.backend.Rename(ctx, rel, path.Join(dir, newName)); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			outcome.Err = err
		} else {
			outcome.Applied = true
		}
	}

	if outcome.Err != nil {
		report.Stats.Errors++
		if e.logger != nil {
			e.logger.Error(ctx, "Failed to rename entry", outcome.Err, logging.Fields{
				"path":     rel,
				"new_name": newName,
			})
		}
	} else {
		report.Stats.Renamed++
		if e.logger != nil {
			msg := "Renamed entry"
			if e.operation.DryRun {
				msg = "Would rename entry"
			}
			e.logger.Info(ctx, msg, logging.Fields{
				"path":             rel,
				"new_name":         newName,
				"reasons":          result.Reasons,
				"collision_suffix": suffix,
			})
		}
	}

	e.emit(report, outcome)
	return nil
}

// skip reports whether the entry is on the ignore list or matches an
// exclusion pattern
func (e *Engine) skip(dir, name string) bool {
	if _, ok := e.ignore[name]; ok {
		return true
	}
	return e.excluder.Match(path.Join(dir, name))
}

func (e *Engine) emit(report *models.RunReport, outcome *models.RenameOutcome) {
	report.Outcomes = append(report.Outcomes, *outcome)
	if e.formatter != nil {
		e.formatter.Outcome(outcome)
	}
}

func (e *Engine) progress(rel string, report *models.RunReport) {
	if e.formatter != nil {
		e.formatter.Progress(output.ProgressUpdate{
			Path:      rel,
			Processed: report.Stats.EntriesScanned,
			Total:     e.totalEntries,
		})
	}
}
