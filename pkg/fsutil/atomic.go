// Package fsutil provides the file replacement used for whole-file rewrites.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"
)

// TempSuffix ends the name of every in-flight temporary file
const TempSuffix = ".tmp"

// AtomicWriteFile replaces path with data so that readers and crashes see
// either the old content or the new content, never a truncated file.
//
// Steps:
// 1. Write to {path}.{ksuid}.tmp in the same directory
// 2. Sync to disk if sync is set
// 3. Rename over {path}
// 4. Sync the parent directory (best effort) if sync is set
func AtomicWriteFile(path string, data []byte, perm os.FileMode, sync bool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	tmpPath := TempPath(path)

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if sync {
		if err := f.Sync(); err != nil {
			_ = f.Close()
			_ = os.Remove(tmpPath)
			return fmt.Errorf("failed to sync temp file: %w", err)
		}
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	if sync {
		// the file is already in place; a failed directory sync only weakens durability
		_ = syncDir(dir)
	}

	return nil
}

// TempPath returns a unique sibling path for a pending write of path
func TempPath(path string) string {
	return path + "." + ksuid.New().String() + TempSuffix
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Sync()
}
