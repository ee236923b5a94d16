package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/semfora/internal/types"
)

func TestSearchRanksExactNameHigher(t *testing.T) {
	idx := New(0, 0)
	idx.Add(Document{SymbolID: 1, Symbol: "fetchUserProfile", Kind: types.KindFunction, File: "src/user.go"})
	idx.Add(Document{SymbolID: 2, Symbol: "deleteSession", Kind: types.KindFunction, File: "src/session.go"})

	results := idx.Search("fetch user", Filter{})
	require.NotEmpty(t, results)
	assert.Equal(t, uint64(1), results[0].Document.SymbolID)
}

func TestSearchFiltersByModule(t *testing.T) {
	idx := New(0, 0)
	idx.Add(Document{SymbolID: 1, Symbol: "fetchUser", Module: "auth", Kind: types.KindFunction})
	idx.Add(Document{SymbolID: 2, Symbol: "fetchUser", Module: "billing", Kind: types.KindFunction})

	results := idx.Search("fetch user", Filter{Module: "billing"})
	require.Len(t, results, 1)
	assert.Equal(t, uint64(2), results[0].Document.SymbolID)
}

func TestSearchFiltersByKindAndRisk(t *testing.T) {
	idx := New(0, 0)
	idx.Add(Document{SymbolID: 1, Symbol: "fetchUser", Kind: types.KindFunction, Risk: types.RiskHigh})
	idx.Add(Document{SymbolID: 2, Symbol: "fetchUser", Kind: types.KindClass, Risk: types.RiskLow})

	results := idx.Search("fetch user", Filter{Kind: types.KindClass})
	require.Len(t, results, 1)
	assert.Equal(t, uint64(2), results[0].Document.SymbolID)

	results = idx.Search("fetch user", Filter{Risk: types.RiskHigh})
	require.Len(t, results, 1)
	assert.Equal(t, uint64(1), results[0].Document.SymbolID)
}

func TestAddReplacesExistingDocument(t *testing.T) {
	idx := New(0, 0)
	idx.Add(Document{SymbolID: 1, Symbol: "fetchUser"})
	idx.Add(Document{SymbolID: 1, Symbol: "deleteSession"})

	results := idx.Search("fetch user", Filter{})
	assert.Empty(t, results)

	results = idx.Search("delete session", Filter{})
	require.Len(t, results, 1)
}

func TestRebuildDiscardsPriorDocuments(t *testing.T) {
	idx := New(0, 0)
	idx.Add(Document{SymbolID: 1, Symbol: "fetchUser"})
	idx.Rebuild([]Document{{SymbolID: 2, Symbol: "deleteSession"}})

	assert.Empty(t, idx.Search("fetch user", Filter{}))
	assert.Len(t, idx.Search("delete session", Filter{}), 1)
}

func TestSearchEmptyIndexReturnsNil(t *testing.T) {
	idx := New(0, 0)
	assert.Nil(t, idx.Search("anything", Filter{}))
}
