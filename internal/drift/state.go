// Package drift compares the filesystem and git state of a repo against
// what was recorded at the last indexing run and chooses a rebuild
// strategy (spec §4.7), plus an fsnotify-backed watcher for continuous
// mode that serializes change notifications per file (spec §5).
package drift

import (
	"encoding/json"
	"os"
	"path/filepath"

	semerrors "github.com/standardbeagle/semfora/internal/errors"
)

// FileState is the recorded mtime/hash pair for one indexed file.
type FileState struct {
	ModTime int64  `json:"mtime"`
	Hash    uint64 `json:"hash"`
}

// RecordedState is the snapshot persisted after a successful indexing run.
type RecordedState struct {
	RepoIdentity string               `json:"repo_identity"`
	BranchHead   string               `json:"branch_head"`
	Files        map[string]FileState `json:"files"`
}

func statePath(cacheDir string) string {
	return filepath.Join(cacheDir, "meta", "drift_state.json")
}

// Load reads the recorded state from cacheDir, returning (nil, nil) if no
// prior run exists (first run, not an error).
func Load(cacheDir string) (*RecordedState, error) {
	data, err := os.ReadFile(statePath(cacheDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, semerrors.NewCacheError(statePath(cacheDir), "read_drift_state", err)
	}
	var s RecordedState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, semerrors.NewCacheError(statePath(cacheDir), "parse_drift_state", err)
	}
	return &s, nil
}

// Save persists the current state for comparison on the next run. Uses a
// plain write (not WriteAtomic) since drift_state.json is read only by
// the next invocation of this same tool, never concurrently with a write
// in progress, and is not part of the externally-documented shard format.
func Save(cacheDir string, s *RecordedState) error {
	data, err := json.Marshal(s)
	if err != nil {
		return semerrors.NewCacheError(statePath(cacheDir), "encode_drift_state", err)
	}
	if err := os.MkdirAll(filepath.Dir(statePath(cacheDir)), 0o755); err != nil {
		return semerrors.NewCacheError(statePath(cacheDir), "mkdir", err)
	}
	return os.WriteFile(statePath(cacheDir), data, 0o644)
}
