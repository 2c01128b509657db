package storage

import (
	"context"
	"sync"
)

// MemorySlot keeps the slot value in process memory.
type MemorySlot struct {
	mu    sync.Mutex
	value []byte
	set   bool

	// PutErr, when set, is returned by every Put.
	PutErr error
}

// NewMemorySlot returns an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Get returns a copy of the stored value.
func (s *MemorySlot) Get(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, ErrNotFound
	}
	return append([]byte(nil), s.value...), nil
}

// Put stores a copy of value.
func (s *MemorySlot) Put(_ context.Context, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	s.value = append([]byte(nil), value...)
	s.set = true
	return nil
}

// Close is a no-op.
func (s *MemorySlot) Close() error {
	return nil
}

func (s *MemorySlot) String() string {
	return "memory"
}
