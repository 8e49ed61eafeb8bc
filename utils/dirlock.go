package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofrs/flock"
)

// DirLock represents a directory-based lock using the current working directory.
// Two bot instances polling the same workspace would race each other's dedup
// state, so only one may run per directory.
type DirLock struct {
	lockFile *flock.Flock
	lockPath string
}

// sanitizeDirPath converts a directory path to a safe filename
func sanitizeDirPath(dirPath string) string {
	sanitized := strings.ReplaceAll(dirPath, "/", "--")
	sanitized = strings.ReplaceAll(sanitized, "\\", "--")
	sanitized = strings.ReplaceAll(sanitized, ":", "--")

	reg := regexp.MustCompile(`[^\w\-.]`)
	sanitized = reg.ReplaceAllString(sanitized, "-")

	// Remove leading/trailing dots and dashes to avoid hidden files
	sanitized = strings.Trim(sanitized, ".-")

	if sanitized == "" {
		sanitized = "default"
	}

	return sanitized
}

// NewDirLock creates a new directory lock based on the current working directory
func NewDirLock() (*DirLock, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	tempDir := filepath.Join(os.TempDir(), "slack-claude-bot")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	lockPath := filepath.Join(tempDir, fmt.Sprintf("%s.lock", sanitizeDirPath(cwd)))

	return &DirLock{
		lockFile: flock.New(lockPath),
		lockPath: lockPath,
	}, nil
}

// TryLock attempts to acquire the directory lock
func (dl *DirLock) TryLock() error {
	locked, err := dl.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another slack-claude-bot instance is already running in this directory")
	}

	return nil
}

// Unlock releases the directory lock and removes the lock file
func (dl *DirLock) Unlock() error {
	if dl.lockFile == nil {
		return nil
	}

	if err := dl.lockFile.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}

	if err := os.Remove(dl.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	return nil
}

// GetLockPath returns the path to the lock file (for debugging/testing)
func (dl *DirLock) GetLockPath() string {
	return dl.lockPath
}
