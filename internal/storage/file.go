package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/antopolskiy/tasklist/internal/filelock"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// FileSlot keeps the slot value in a single file. Reads and writes hold an
// advisory lock on a sibling ".lock" file, and writes replace the file
// atomically via rename.
type FileSlot struct {
	path string
}

// NewFileSlot returns a slot stored at path. The file is created on first Put.
func NewFileSlot(path string) (*FileSlot, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	return &FileSlot{path: abs}, nil
}

// Path returns the data file path.
func (s *FileSlot) Path() string {
	return s.path
}

func (s *FileSlot) lockPath() string {
	return s.path + ".lock"
}

// Get reads the file.
func (s *FileSlot) Get(_ context.Context) ([]byte, error) {
	unlock, err := filelock.Lock(s.lockPath())
	if err != nil {
		return nil, err
	}
	defer func() { _ = unlock() }()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot file: %w", err)
	}
	return data, nil
}

// Put replaces the file contents.
func (s *FileSlot) Put(_ context.Context, value []byte) error {
	unlock, err := filelock.Lock(s.lockPath())
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("creating slot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("replacing slot file: %w", err)
	}
	return nil
}

// WatchPaths returns the directory holding the slot file. Watching the
// directory catches the rename that replaces the file.
func (s *FileSlot) WatchPaths() []string {
	return []string{filepath.Dir(s.path)}
}

// Close is a no-op.
func (s *FileSlot) Close() error {
	return nil
}

func (s *FileSlot) String() string {
	return "file:" + s.path
}
