package cache

import (
	"os"
	"path/filepath"
	"strconv"

	semerrors "github.com/standardbeagle/semfora/internal/errors"
)

// Lock is the advisory single-writer lock file at a cache root (spec §5:
// "the cache directory is owned by one indexer at a time, coordinated by
// an advisory lock file at the root"). Concurrent readers are unaffected;
// only a second indexer attempting to acquire Lock is blocked.
type Lock struct {
	path string
	file *os.File
}

// Acquire creates <cacheDir>/.lock exclusively, failing whenever the lock
// file already exists; a lock file left behind by a process that has
// exited is not reclaimed. The lock file's content is the holder's PID,
// which lets operators diagnose a stuck lock without more tooling.
func Acquire(cacheDir string) (*Lock, error) {
	path := filepath.Join(cacheDir, ".lock")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, semerrors.NewCacheError(path, "lock_held", err)
		}
		return nil, semerrors.NewCacheError(path, "lock_create", err)
	}
	if _, err := f.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		f.Close()
		os.Remove(path)
		return nil, semerrors.NewCacheError(path, "lock_write", err)
	}
	return &Lock{path: path, file: f}, nil
}

// Release closes and removes the lock file. Safe to call once; a nil
// receiver is a no-op so deferred Release calls are safe even when
// Acquire failed.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	l.file.Close()
	return os.Remove(l.path)
}
