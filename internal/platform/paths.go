package platform

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// PathError represents a path resolution error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}

// ResolveDir turns a directory argument into a cleaned absolute path.
// A leading ~ is expanded to the current user's home directory.
func ResolveDir(path string) (string, error) {
	if path == "" {
		return "", &PathError{Path: path, Message: "path is empty"}
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", &PathError{Path: path, Message: "cannot expand home directory: " + err.Error()}
	}

	abs, err := filepath.Abs(filepath.Clean(expanded))
	if err != nil {
		return "", &PathError{Path: path, Message: "cannot resolve absolute path: " + err.Error()}
	}

	return abs, nil
}

// IsDir reports whether path exists and is a directory. Symlinks are
// followed, matching what a walk rooted at the path would see.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
