package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/semfora/internal/types"
)

func TestWriteAtomicReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shard.toon")

	require.NoError(t, WriteAtomic(path, []byte("first")))
	require.NoError(t, WriteAtomic(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLockPreventsSecondAcquire(t *testing.T) {
	dir := t.TempDir()
	l1, err := Acquire(dir)
	require.NoError(t, err)

	_, err = Acquire(dir)
	assert.Error(t, err)

	require.NoError(t, l1.Release())

	l2, err := Acquire(dir)
	require.NoError(t, err)
	require.NoError(t, l2.Release())
}

func TestStoreWriteAndReadSymbolShard(t *testing.T) {
	root := t.TempDir()
	s := &Store{Root: root}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "symbols"), 0o755))

	summary := &types.SemanticSummary{
		File:       "a.go",
		Language:   types.LangGo,
		Symbol:     "Foo",
		SymbolKind: types.KindFunction,
		SymbolID:   42,
	}
	require.NoError(t, s.WriteSymbolShard(summary))

	content, err := s.ReadSymbolShard(42)
	require.NoError(t, err)
	assert.Contains(t, content, "symbol: Foo")
}

func TestStoreIndexWriteAndRead(t *testing.T) {
	root := t.TempDir()
	s := &Store{Root: root}

	entries := []types.SymbolIndexEntry{
		{Symbol: "B", Kind: types.KindFunction, File: "b.go", Lines: [2]int{1, 2}, Risk: types.RiskLow},
		{Symbol: "A", Kind: types.KindFunction, File: "a.go", Lines: [2]int{1, 2}, Risk: types.RiskLow},
	}
	require.NoError(t, s.WriteIndex(entries))

	read, err := s.ReadIndex()
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, "a.go", read[0].File)
	assert.Equal(t, "b.go", read[1].File)
}

func TestReadIndexToleratesTruncatedLastLine(t *testing.T) {
	root := t.TempDir()
	s := &Store{Root: root}
	path := s.indexPath()
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{"s":"A","h":"x","k":"function","m":"","f":"a.go","l":[1,2],"r":"low"}`+"\n"+`{"s":"B"`), 0o644))

	read, err := s.ReadIndex()
	require.NoError(t, err)
	require.Len(t, read, 1)
	assert.Equal(t, "A", read[0].Symbol)
}
