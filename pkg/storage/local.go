package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Local is a filesystem-based storage backend
type Local struct {
	rootPath string
}

// NewLocal creates a new local filesystem backend rooted at rootPath
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Local{rootPath: absPath}, nil
}

// Root returns the absolute path of the tree root
func (l *Local) Root() string {
	return l.rootPath
}

// ReadDir returns the entries of one directory level, sorted by name
func (l *Local) ReadDir(ctx context.Context, path string) ([]EntryInfo, error) {
	// Check context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	fullPath := filepath.Join(l.rootPath, path)

	dirEntries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	entries := make([]EntryInfo, 0, len(dirEntries))
	for _, e := range dirEntries {
		entries = append(entries, EntryInfo{Name: e.Name(), IsDir: e.IsDir()})
	}

	return entries, nil
}

// Exists reports whether an entry occupies the path. Lstat keeps dangling
// symlinks visible as occupants of their name.
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	fullPath := filepath.Join(l.rootPath, path)

	_, err := os.Lstat(fullPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// Rename moves an entry to its new path
func (l *Local) Rename(ctx context.Context, oldPath, newPath string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	oldFull := filepath.Join(l.rootPath, oldPath)
	newFull := filepath.Join(l.rootPath, newPath)

	if err := os.Rename(oldFull, newFull); err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}

	return nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
