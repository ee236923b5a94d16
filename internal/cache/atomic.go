package cache

import (
	"os"
	"path/filepath"

	semerrors "github.com/standardbeagle/semfora/internal/errors"
)

// WriteAtomic writes data to path via a temp-file-then-rename so that a
// concurrent reader never observes a truncated file (spec §4.6, §5): it
// sees either the previous contents or the full new contents.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return semerrors.NewCacheError(path, "mkdir", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return semerrors.NewCacheError(path, "create_temp", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return semerrors.NewCacheError(path, "write_temp", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return semerrors.NewCacheError(path, "close_temp", err)
	}

	// os.Rename is a replace-or-fail primitive on both POSIX and Windows
	// (Go's implementation uses MoveFileEx with MOVEFILE_REPLACE_EXISTING).
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return semerrors.NewCacheError(path, "rename", err)
	}
	return nil
}

// ReadWithRetry reads path, retrying the read exactly once, immediately, if
// the first attempt fails for any reason (spec §7: "one silent retry; on
// second failure, the cache is marked corrupt"). ok is false only after
// both attempts fail, signaling the caller to mark the cache corrupt.
func ReadWithRetry(path string) (data []byte, ok bool, err error) {
	data, err = os.ReadFile(path)
	if err == nil {
		return data, true, nil
	}
	data, err = os.ReadFile(path)
	if err == nil {
		return data, true, nil
	}
	return nil, false, semerrors.NewCacheError(path, "read", err)
}
