package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/semfora/internal/cache"
	"github.com/standardbeagle/semfora/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store := &cache.Store{Root: t.TempDir()}
	m, err := NewManager(store)
	require.NoError(t, err)
	return m
}

func TestPriorityOrderResolve(t *testing.T) {
	m := newTestManager(t)
	summary := &types.SemanticSummary{Symbol: "Foo", SymbolID: 7, File: "a.go"}

	require.NoError(t, m.Write(cache.LayerBase, summary))
	layer, found := m.Resolve(7)
	assert.True(t, found)
	assert.Equal(t, cache.LayerBase, layer)

	require.NoError(t, m.Write(cache.LayerWorking, summary))
	layer, found = m.Resolve(7)
	assert.True(t, found)
	assert.Equal(t, cache.LayerWorking, layer, "working should outrank base")
}

func TestDeleteShadowsLowerLayers(t *testing.T) {
	m := newTestManager(t)
	summary := &types.SemanticSummary{Symbol: "Foo", SymbolID: 9, File: "a.go"}
	require.NoError(t, m.Write(cache.LayerBase, summary))

	require.NoError(t, m.Delete(cache.LayerWorking, 9))

	_, found := m.Resolve(9)
	assert.False(t, found, "a higher layer's deletion shadows the base shard")
}

func TestClearProposed(t *testing.T) {
	m := newTestManager(t)
	summary := &types.SemanticSummary{Symbol: "Foo", SymbolID: 3, File: "a.go"}
	require.NoError(t, m.Write(cache.LayerProposed, summary))

	require.NoError(t, m.ClearProposed())

	_, found := m.Resolve(3)
	assert.False(t, found)
}
