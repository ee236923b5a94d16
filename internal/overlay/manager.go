// Package overlay implements the four-layer symbol store described in
// spec §4.8: base, branch, working, and proposed, queried in that
// priority order with per-layer deletion shadowing.
package overlay

import (
	"sync"

	"github.com/standardbeagle/semfora/internal/cache"
	"github.com/standardbeagle/semfora/internal/types"
)

// priorityOrder is highest-priority first, matching spec §4.8:
// "proposed > working > branch > base".
var priorityOrder = []string{cache.LayerProposed, cache.LayerWorking, cache.LayerBranch, cache.LayerBase}

// Manager resolves symbol/module lookups across the four layers and
// mediates writes to them. Metadata edits are guarded by a read-write
// lock; the lock is held only around the metadata update, not the shard
// write itself (spec §5).
type Manager struct {
	store *cache.Store

	mu   sync.RWMutex
	meta map[string]*LayerMeta
}

// NewManager loads (or initializes) metadata for all four layers.
func NewManager(store *cache.Store) (*Manager, error) {
	m := &Manager{store: store, meta: make(map[string]*LayerMeta, len(priorityOrder))}
	for _, layer := range priorityOrder {
		lm, err := loadLayerMeta(store.Root, layer)
		if err != nil {
			return nil, err
		}
		m.meta[layer] = lm
	}
	return m, nil
}

// Resolve returns the highest-priority layer holding symbolID, or ("", false)
// if no layer holds it or a higher layer's deleted set shadows it.
func (m *Manager) Resolve(symbolID uint64) (layer string, found bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, layer := range priorityOrder {
		lm := m.meta[layer]
		if lm.Deleted[symbolID] {
			return "", false
		}
		if lm.Symbols[symbolID] {
			return layer, true
		}
	}
	return "", false
}

// LookupShard resolves symbolID to its owning layer and returns the raw
// TOON text of its shard (spec §4.8's query resolution operates over
// shard files directly; structured re-parsing is handled by the pipeline,
// which already holds the SemanticSummary it just wrote).
func (m *Manager) LookupShard(symbolID uint64) (layer string, toonText string, found bool, err error) {
	layer, found = m.Resolve(symbolID)
	if !found {
		return "", "", false, nil
	}
	path := m.store.LayerSymbolPath(layer, symbolID)
	data, ok, readErr := cache.ReadWithRetry(path)
	if !ok {
		return layer, "", true, readErr
	}
	return layer, string(data), true, nil
}

// Write persists summary's shard into layer and records it in that
// layer's metadata (spec §4.8 overlay-edit sequence: shard first, then
// metadata, under the write lock only for the metadata step).
func (m *Manager) Write(layer string, summary *types.SemanticSummary) error {
	if layer == cache.LayerBase {
		if err := m.store.WriteSymbolShard(summary); err != nil {
			return err
		}
	} else if err := m.store.WriteLayerSymbolShard(layer, summary); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	lm := m.meta[layer]
	lm.Symbols[summary.SymbolID] = true
	delete(lm.Deleted, summary.SymbolID)
	return saveLayerMeta(m.store.Root, layer, lm)
}

// Delete marks symbolID as removed within layer, shadowing lower layers
// for that id without touching their shards (spec §4.8).
func (m *Manager) Delete(layer string, symbolID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lm := m.meta[layer]
	lm.Deleted[symbolID] = true
	delete(lm.Symbols, symbolID)
	return saveLayerMeta(m.store.Root, layer, lm)
}

// ClearProposed empties the proposed layer (spec §4.8: "cleared
// explicitly").
func (m *Manager) ClearProposed() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta[cache.LayerProposed] = newLayerMeta()
	return saveLayerMeta(m.store.Root, cache.LayerProposed, m.meta[cache.LayerProposed])
}

// SetGitRef records the commit a layer was materialized against (used by
// base/branch transitions, spec §4.8).
func (m *Manager) SetGitRef(layer, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lm := m.meta[layer]
	lm.GitRef = ref
	return saveLayerMeta(m.store.Root, layer, lm)
}

// GitRef returns the commit layer was last materialized against.
func (m *Manager) GitRef(layer string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.meta[layer].GitRef
}
