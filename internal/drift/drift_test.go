package drift

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/semfora/internal/config"
)

func TestDecideFirstRunIsFullRebuild(t *testing.T) {
	dec := Decide(config.Default("/repo"), nil, []Candidate{{RelPath: "a.go", AbsPath: "/repo/a.go"}})
	assert.Equal(t, StrategyFullRebuild, dec.Strategy)
	assert.Equal(t, []string{"a.go"}, dec.Changed)
}

func TestDecideNoChangesIsFresh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0o644))
	info, err := os.Stat(path)
	require.NoError(t, err)

	recorded := &RecordedState{Files: map[string]FileState{
		"a.go": {ModTime: info.ModTime().Unix(), Hash: 0},
	}}
	// Hash is left 0: the recorded mtime matches, so Decide takes the
	// mtime fast path and never compares hashes.
	cfg := config.Default(dir)
	dec := Decide(cfg, recorded, []Candidate{{RelPath: "a.go", AbsPath: path}})
	assert.Equal(t, StrategyFresh, dec.Strategy)
}

func TestDecideDeletedFileCountsAsChange(t *testing.T) {
	cfg := config.Default("/repo")
	recorded := &RecordedState{Files: map[string]FileState{
		"a.go": {ModTime: 1},
		"b.go": {ModTime: 1},
	}}
	dec := Decide(cfg, recorded, []Candidate{{RelPath: "a.go", AbsPath: "/repo/a.go"}})
	assert.Contains(t, dec.Changed, "b.go")
}

func TestSaveLoadRoundTripsRecordedState(t *testing.T) {
	dir := t.TempDir()
	want := &RecordedState{
		RepoIdentity: "abc123",
		BranchHead:   "deadbeef",
		Files: map[string]FileState{
			"a.go":         {ModTime: 100, Hash: 1},
			"pkg/b.go":     {ModTime: 200, Hash: 2},
		},
	}
	require.NoError(t, Save(dir, want))

	got, err := Load(dir)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RecordedState round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyThresholds(t *testing.T) {
	assert.Equal(t, StrategyFresh, classify(0, 100))
	assert.Equal(t, StrategyIncremental, classify(5, 1000))
	assert.Equal(t, StrategyOverlayRebase, classify(20, 100))
	assert.Equal(t, StrategyFullRebuild, classify(40, 100))
}
