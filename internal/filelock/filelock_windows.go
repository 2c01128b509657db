//go:build windows

package filelock

import (
	"os"

	"golang.org/x/sys/windows"
)

const lockfileExclusiveLock = 0x00000002

// Windows locks a byte range; the first byte of the lock file is enough.
func lockFile(f *os.File) error {
	return windows.LockFileEx(windows.Handle(f.Fd()), lockfileExclusiveLock, 0, 1, 0, new(windows.Overlapped))
}

func unlockFile(f *os.File) error {
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, new(windows.Overlapped))
}
