package storage

import (
	"context"
)

// EntryInfo represents a single directory entry
type EntryInfo struct {
	// Name is the entry's base name
	Name string

	// IsDir indicates if the entry is a directory
	IsDir bool
}

// Backend defines the interface for the filesystem operations a
// sanitization run performs. The production implementation is the local
// filesystem; tests substitute fault-injecting wrappers.
type Backend interface {
	// Root returns the absolute path of the tree root
	Root() string

	// ReadDir returns the entries of the directory at the root-relative
	// path, sorted by name
	ReadDir(ctx context.Context, path string) ([]EntryInfo, error)

	// Exists reports whether an entry occupies the root-relative path.
	// Symlinks are not followed: a dangling link still occupies its name.
	Exists(ctx context.Context, path string) (bool, error)

	// Rename moves the entry at oldPath to newPath, both root-relative
	Rename(ctx context.Context, oldPath, newPath string) error

	// Close releases any resources held by the backend
	Close() error
}
