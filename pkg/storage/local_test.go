package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// TestNewLocal tests the Local backend constructor
func TestNewLocal(t *testing.T) {
	t.Run("ValidDirectory", func(t *testing.T) {
		tempDir, err := os.MkdirTemp("", "ntfsnorris-storage-test-*")
		if err != nil {
			t.Fatalf("failed to create temp dir: %v", err)
		}
		defer os.RemoveAll(tempDir)

		local, err := NewLocal(tempDir)
		if err != nil {
			t.Fatalf("NewLocal() error = %v", err)
		}
		if local == nil {
			t.Fatal("NewLocal() returned nil")
		}
		defer local.Close()

		if !filepath.IsAbs(local.Root()) {
			t.Errorf("Root() = %s, want absolute path", local.Root())
		}
	})

	t.Run("NonExistentPath", func(t *testing.T) {
		_, err := NewLocal("/nonexistent/path/that/does/not/exist")
		if err == nil {
			t.Error("NewLocal() should fail for non-existent path")
		}
	})

	t.Run("FileNotDirectory", func(t *testing.T) {
		tempFile, err := os.CreateTemp("", "ntfsnorris-file-*")
		if err != nil {
			t.Fatalf("failed to create temp file: %v", err)
		}
		tempFile.Close()
		defer os.Remove(tempFile.Name())

		_, err = NewLocal(tempFile.Name())
		if err == nil {
			t.Error("NewLocal() should fail for file path (not directory)")
		}
	})

	t.Run("RelativePath", func(t *testing.T) {
		tempDir, err := os.MkdirTemp("", "ntfsnorris-storage-test-*")
		if err != nil {
			t.Fatalf("failed to create temp dir: %v", err)
		}
		defer os.RemoveAll(tempDir)

		oldWd, _ := os.Getwd()
		os.Chdir(filepath.Dir(tempDir))
		defer os.Chdir(oldWd)

		relPath := filepath.Base(tempDir)
		local, err := NewLocal(relPath)
		if err != nil {
			t.Fatalf("NewLocal() should work with relative path: %v", err)
		}
		defer local.Close()
	})
}

// TestLocalReadDir tests the ReadDir method
func TestLocalReadDir(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "ntfsnorris-storage-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Create test structure
	files := []string{"b.txt", "a.txt", "subdir/nested.txt"}
	for _, path := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte("content"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	t.Run("Root", func(t *testing.T) {
		entries, err := local.ReadDir(ctx, ".")
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}

		// a.txt, b.txt, subdir
		if len(entries) != 3 {
			t.Fatalf("ReadDir() returned %d entries, want 3", len(entries))
		}
		if entries[0].Name != "a.txt" || entries[1].Name != "b.txt" || entries[2].Name != "subdir" {
			t.Errorf("ReadDir() order = %v, want sorted by name", entries)
		}
		if !entries[2].IsDir {
			t.Error("subdir should be reported as a directory")
		}
	})

	t.Run("Subdir", func(t *testing.T) {
		entries, err := local.ReadDir(ctx, "subdir")
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}
		if len(entries) != 1 || entries[0].Name != "nested.txt" {
			t.Errorf("ReadDir(subdir) = %v, want nested.txt", entries)
		}
	})

	t.Run("NonExistentDir", func(t *testing.T) {
		_, err := local.ReadDir(ctx, "missing")
		if err == nil {
			t.Error("ReadDir() should fail for non-existent directory")
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := local.ReadDir(ctx, ".")
		if err == nil {
			t.Error("ReadDir() should return error on cancelled context")
		}
	})
}

// TestLocalExists tests the Exists method
func TestLocalExists(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "ntfsnorris-storage-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	if err := os.WriteFile(filepath.Join(tempDir, "exists.txt"), []byte("content"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	t.Run("ExistingFile", func(t *testing.T) {
		exists, err := local.Exists(ctx, "exists.txt")
		if err != nil {
			t.Fatalf("Exists() error = %v", err)
		}
		if !exists {
			t.Error("Exists() = false, want true")
		}
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		exists, err := local.Exists(ctx, "nonexistent.txt")
		if err != nil {
			t.Fatalf("Exists() error = %v", err)
		}
		if exists {
			t.Error("Exists() = true, want false")
		}
	})

	t.Run("Directory", func(t *testing.T) {
		if err := os.MkdirAll(filepath.Join(tempDir, "subdir"), 0755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}

		exists, err := local.Exists(ctx, "subdir")
		if err != nil {
			t.Fatalf("Exists() error = %v", err)
		}
		if !exists {
			t.Error("Exists() = false, want true for directory")
		}
	})

	t.Run("DanglingSymlink", func(t *testing.T) {
		link := filepath.Join(tempDir, "dangling")
		if err := os.Symlink(filepath.Join(tempDir, "gone"), link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}

		exists, err := local.Exists(ctx, "dangling")
		if err != nil {
			t.Fatalf("Exists() error = %v", err)
		}
		if !exists {
			t.Error("Exists() = false, want true for dangling symlink")
		}
	})
}

// TestLocalRename tests the Rename method
func TestLocalRename(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "ntfsnorris-storage-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	t.Run("RenameFile", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(tempDir, "old.txt"), []byte("content"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		if err := local.Rename(ctx, "old.txt", "new.txt"); err != nil {
			t.Fatalf("Rename() error = %v", err)
		}

		if _, err := os.Stat(filepath.Join(tempDir, "old.txt")); !os.IsNotExist(err) {
			t.Error("old.txt should no longer exist")
		}
		if _, err := os.Stat(filepath.Join(tempDir, "new.txt")); err != nil {
			t.Errorf("new.txt should exist: %v", err)
		}
	})

	t.Run("RenameDirectory", func(t *testing.T) {
		if err := os.MkdirAll(filepath.Join(tempDir, "olddir"), 0755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(filepath.Join(tempDir, "olddir", "inner.txt"), []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		if err := local.Rename(ctx, "olddir", "newdir"); err != nil {
			t.Fatalf("Rename() error = %v", err)
		}

		if _, err := os.Stat(filepath.Join(tempDir, "newdir", "inner.txt")); err != nil {
			t.Errorf("directory contents should move with the rename: %v", err)
		}
	})

	t.Run("RenameInSubdir", func(t *testing.T) {
		if err := os.MkdirAll(filepath.Join(tempDir, "sub"), 0755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(filepath.Join(tempDir, "sub", "a.txt"), []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		if err := local.Rename(ctx, "sub/a.txt", "sub/b.txt"); err != nil {
			t.Fatalf("Rename() error = %v", err)
		}

		if _, err := os.Stat(filepath.Join(tempDir, "sub", "b.txt")); err != nil {
			t.Errorf("sub/b.txt should exist: %v", err)
		}
	})

	t.Run("RenameNonExistent", func(t *testing.T) {
		err := local.Rename(ctx, "missing.txt", "whatever.txt")
		if err == nil {
			t.Error("Rename() should fail for non-existent source")
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := local.Rename(ctx, "anything.txt", "else.txt")
		if err == nil {
			t.Error("Rename() should return error on cancelled context")
		}
	})
}

// TestBackendInterface verifies Local implements Backend interface
func TestBackendInterface(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "ntfsnorris-storage-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	// Verify interface implementation
	var _ Backend = local
}
