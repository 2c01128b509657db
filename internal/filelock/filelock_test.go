package filelock_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/antopolskiy/tasklist/internal/filelock"
)

// slotPaths returns a slot file and its sidecar lock in a fresh directory.
func slotPaths(t *testing.T) (slot, lock string) {
	t.Helper()
	slot = filepath.Join(t.TempDir(), "todos.json")
	return slot, slot + ".lock"
}

func TestLockSidecarLeavesSlotAlone(t *testing.T) {
	slot, lock := slotPaths(t)
	if err := os.WriteFile(slot, []byte(`[]`), 0o600); err != nil {
		t.Fatal(err)
	}

	unlock, err := filelock.Lock(lock)
	if err != nil {
		t.Fatalf("Lock() error: %v", err)
	}
	if _, err := os.Stat(lock); err != nil {
		t.Errorf("sidecar not created: %v", err)
	}
	if err := unlock(); err != nil {
		t.Fatalf("unlock() error: %v", err)
	}

	data, err := os.ReadFile(slot)
	if err != nil || string(data) != "[]" {
		t.Errorf("slot = %q, %v; want untouched", data, err)
	}
}

func TestLockCanBeRetakenAfterRelease(t *testing.T) {
	_, lock := slotPaths(t)

	for i := range 3 {
		unlock, err := filelock.Lock(lock)
		if err != nil {
			t.Fatalf("round %d: Lock() error: %v", i, err)
		}
		if err := unlock(); err != nil {
			t.Fatalf("round %d: unlock() error: %v", i, err)
		}
	}
}

// Each writer reads the slot, bumps a counter and writes it back while
// holding the lock. Without mutual exclusion updates get lost.
func TestLockSerializesSlotRewrites(t *testing.T) {
	slot, lock := slotPaths(t)
	if err := os.WriteFile(slot, []byte("0"), 0o600); err != nil {
		t.Fatal(err)
	}

	const writers = 10
	var wg sync.WaitGroup
	wg.Add(writers)
	for range writers {
		go func() {
			defer wg.Done()

			unlock, err := filelock.Lock(lock)
			if err != nil {
				t.Errorf("Lock() error: %v", err)
				return
			}
			defer func() {
				if err := unlock(); err != nil {
					t.Errorf("unlock() error: %v", err)
				}
			}()

			data, err := os.ReadFile(slot)
			if err != nil {
				t.Errorf("read: %v", err)
				return
			}
			n, err := strconv.Atoi(strings.TrimSpace(string(data)))
			if err != nil {
				t.Errorf("parse %q: %v", data, err)
				return
			}
			if err := os.WriteFile(slot, []byte(strconv.Itoa(n+1)), 0o600); err != nil {
				t.Errorf("write: %v", err)
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(slot)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != strconv.Itoa(writers) {
		t.Errorf("counter = %s, want %d", got, writers)
	}
}

func TestLockCreatesSlotDirectory(t *testing.T) {
	lock := filepath.Join(t.TempDir(), ".tasklist", "data", "todos.json.lock")

	unlock, err := filelock.Lock(lock)
	if err != nil {
		t.Fatalf("Lock() error: %v", err)
	}
	if err := unlock(); err != nil {
		t.Errorf("unlock() error: %v", err)
	}
}
