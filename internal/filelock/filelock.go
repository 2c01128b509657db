// Package filelock provides an advisory, cross-process exclusive lock on a
// lock file next to the data it protects.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"
)

const lockFileMode = 0o600

// Lock blocks until it holds an exclusive lock on path, creating the file and
// its directory if needed. The returned function releases the lock.
func Lock(path string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil { //nolint:mnd // directory permissions
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock path derived from config
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("acquiring lock on %s: %w", path, err)
	}
	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return fmt.Errorf("releasing lock on %s: %w", path, unlockErr)
		}
		return closeErr
	}, nil
}
