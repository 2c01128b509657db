// Package storage persists the task list in a single durable key-value slot.
//
// A Slot stores raw bytes under one fixed key. Repository layers the JSON
// task encoding on top of any Slot and implements Port, the capability the
// store depends on.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/antopolskiy/tasklist/internal/task"
)

// ErrNotFound is returned by Slot.Get when the slot has never been written.
var ErrNotFound = errors.New("slot not found")

// Port loads and saves the whole task list.
type Port interface {
	Load(ctx context.Context) ([]task.Task, error)
	Save(ctx context.Context, tasks []task.Task) error
}

// Slot is a single named key-value location.
type Slot interface {
	Get(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, value []byte) error
	Close() error
	// String describes the slot for logs, e.g. "file:/home/u/.tasklist/todos.json".
	String() string
}

// Watchable is implemented by slots backed by local files.
type Watchable interface {
	WatchPaths() []string
}

// Repository implements Port over a Slot.
type Repository struct {
	slot   Slot
	logger *slog.Logger
}

// NewRepository wraps slot. A nil logger discards log output.
func NewRepository(slot Slot, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{slot: slot, logger: logger}
}

// Load reads the slot. An absent or malformed value yields an empty list;
// only failures to reach the slot are returned as errors. Records that needed
// new ids are written back once so the ids stay stable across loads.
func (r *Repository) Load(ctx context.Context) ([]task.Task, error) {
	data, err := r.slot.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		r.logger.Debug("slot empty", slog.String("slot", r.slot.String()))
		return []task.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.slot, err)
	}

	tasks, repairs, err := task.Decode(data)
	if err != nil {
		r.logger.Warn("ignoring malformed slot value",
			slog.String("slot", r.slot.String()),
			slog.Int("bytes", len(data)),
			slog.String("error", err.Error()))
		return tasks, nil
	}
	if len(repairs) == 0 {
		return tasks, nil
	}
	for _, msg := range repairs {
		r.logger.Info("repaired task record", slog.String("slot", r.slot.String()), slog.String("repair", msg))
	}
	// Assigned ids must survive the process, or the next load hands out new ones.
	if err := r.Save(ctx, tasks); err != nil {
		r.logger.Warn("saving repaired tasks failed",
			slog.String("slot", r.slot.String()),
			slog.String("error", err.Error()))
	}
	return tasks, nil
}

// Save serializes the whole list and writes it to the slot.
func (r *Repository) Save(ctx context.Context, tasks []task.Task) error {
	data, err := task.Marshal(tasks)
	if err != nil {
		return err
	}
	if err := r.slot.Put(ctx, data); err != nil {
		return fmt.Errorf("writing %s: %w", r.slot, err)
	}
	r.logger.Debug("slot saved", slog.String("slot", r.slot.String()), slog.Int("tasks", len(tasks)))
	return nil
}

// WatchPaths returns the files to watch for external changes, or nil when the
// slot is not file-backed.
func (r *Repository) WatchPaths() []string {
	if w, ok := r.slot.(Watchable); ok {
		return w.WatchPaths()
	}
	return nil
}

// Slot returns the underlying slot.
func (r *Repository) Slot() Slot {
	return r.slot
}

// Close closes the underlying slot.
func (r *Repository) Close() error {
	return r.slot.Close()
}
