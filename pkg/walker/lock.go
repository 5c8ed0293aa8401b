package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rogpeppe/go-internal/lockedfile"
)

// LockFileName is the marker file guarding a tree against concurrent live
// runs. The walker always leaves it alone.
const LockFileName = ".ntfsnorris.lock"

// runLock holds the exclusive lock on a tree for the duration of a live run
type runLock struct {
	path string
	file *lockedfile.File
}

// acquireLock takes an exclusive lock on the tree root, waiting for a
// concurrent run to finish. A lock file left behind by a crashed run holds
// no lock and is reclaimed.
func acquireLock(root string) (*runLock, error) {
	lockPath := filepath.Join(root, LockFileName)

	file, err := lockedfile.Create(lockPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}

	if _, err := file.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		_ = file.Close()
		_ = os.Remove(lockPath)
		return nil, fmt.Errorf("failed to write lock file: %w", err)
	}

	return &runLock{path: lockPath, file: file}, nil
}

// release drops the lock and removes the marker file
func (l *runLock) release() {
	if l == nil || l.file == nil {
		return
	}
	_ = l.file.Close()
	_ = os.Remove(l.path)
	l.file = nil
}
