// Package fileutil provides filesystem helpers for the on-disk store.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrEmptyPath indicates an empty file path was provided.
var ErrEmptyPath = errors.New("path is empty")

// DirPermissions is the mode used for directories created by WriteAtomic.
const DirPermissions = 0o750

// WriteAtomic writes data to path atomically with the provided permissions.
// Missing parent directories are created. Data goes to a temp file in the same
// directory which is synced and then renamed over path, so readers only ever
// see the old or the new content.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return ErrEmptyPath
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	renamed := false
	defer func() {
		_ = tmpFile.Close()
		if !renamed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmpFile.Chmod(perm); err != nil {
		return fmt.Errorf("setting temp file permissions: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil { //nolint:gosec // G703: path is validated by caller
		return fmt.Errorf("renaming temp file: %w", err)
	}
	renamed = true

	// Best effort directory sync for rename durability.
	if dirFile, err := os.Open(dir); err == nil { //nolint:gosec // G304: dir is derived from validated path
		_ = dirFile.Sync()
		_ = dirFile.Close()
	}

	return nil
}

// MoveAside renames an unreadable file to "<path>.corrupt.<nanos>" so a fresh
// one can take its place. It returns the new path.
func MoveAside(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	target := fmt.Sprintf("%s.corrupt.%d", path, time.Now().UTC().UnixNano())
	if err := os.Rename(path, target); err != nil {
		return "", fmt.Errorf("moving %s aside: %w", path, err)
	}
	return target, nil
}
