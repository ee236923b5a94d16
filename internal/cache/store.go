// Package cache implements the on-disk cache store (spec §4.6): a
// per-repository directory of TOON shards and a streaming JSONL symbol
// index, written with atomic temp-file-then-rename semantics and guarded
// by a single-writer advisory lock.
package cache

import (
	"bufio"
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/standardbeagle/semfora/internal/encoding"
	"github.com/standardbeagle/semfora/internal/encoding/toon"
	semerrors "github.com/standardbeagle/semfora/internal/errors"
	"github.com/standardbeagle/semfora/internal/types"
)

var errUnknownGraphKind = stderrors.New("unknown graph kind")

// Layer names, matching the overlay manager's four-layer model (spec §4.8).
const (
	LayerBase     = "base"
	LayerBranch   = "branch"
	LayerWorking  = "working"
	LayerProposed = "proposed"
)

// Store is a thin, stateless wrapper around one repo's cache directory.
// It holds no mutable state of its own; every method reads or writes the
// filesystem directly, matching the design note against global singletons
// (spec §9).
type Store struct {
	Root string
}

// Open resolves and creates (if absent) the cache directory for repoRoot.
func Open(repoRoot string) (*Store, error) {
	dir, err := RepoDir(repoRoot)
	if err != nil {
		return nil, err
	}
	return &Store{Root: dir}, nil
}

func (s *Store) symbolShardPath(layer string, hash uint64) string {
	name := encoding.Base63Encode(hash) + ".toon"
	if layer == "" {
		return filepath.Join(s.Root, "symbols", name)
	}
	return filepath.Join(s.Root, "layers", layer, "symbols", name)
}

// LayerSymbolPath returns the shard path for hash within layer, for
// callers (the overlay manager) that need to read a layer-specific shard
// directly.
func (s *Store) LayerSymbolPath(layer string, hash uint64) string {
	return s.symbolShardPath(layer, hash)
}

// WriteSymbolShard persists one symbol's TOON encoding into the base
// symbols/ directory (non-layered). Use WriteLayerSymbolShard for overlay
// writes.
func (s *Store) WriteSymbolShard(summary *types.SemanticSummary) error {
	return WriteAtomic(s.symbolShardPath("", summary.SymbolID), []byte(toon.EncodeSummary(summary)))
}

// WriteLayerSymbolShard writes a symbol shard under a specific overlay
// layer (spec §4.8 "write shard under the layer's symbols/ directory").
func (s *Store) WriteLayerSymbolShard(layer string, summary *types.SemanticSummary) error {
	return WriteAtomic(s.symbolShardPath(layer, summary.SymbolID), []byte(toon.EncodeSummary(summary)))
}

// ReadSymbolShard reads a base-layer symbol shard, retrying once on a
// transient read failure before surfacing a cache error (spec §4.6, §7).
func (s *Store) ReadSymbolShard(hash uint64) (string, error) {
	data, ok, err := ReadWithRetry(s.symbolShardPath("", hash))
	if !ok {
		return "", err
	}
	return string(data), nil
}

// WriteModule persists one module's TOON encoding.
func (s *Store) WriteModule(m *types.Module) error {
	path := filepath.Join(s.Root, "modules", m.Name+".toon")
	return WriteAtomic(path, []byte(toon.EncodeModule(m)))
}

// WriteRepoOverview persists the top-level repo_overview.toon.
func (s *Store) WriteRepoOverview(o *types.RepoOverview) error {
	return WriteAtomic(filepath.Join(s.Root, "repo_overview.toon"), []byte(toon.EncodeRepoOverview(o)))
}

// graphFileNames maps a graph kind to its file name under graphs/.
var graphFileNames = map[string]string{
	"call":   "call_graph.toon",
	"import": "import_graph.toon",
	"module": "module_graph.toon",
}

// WriteGraph writes one of the three graph files (spec §4.6, §6). kind
// must be "call", "import", or "module".
func (s *Store) WriteGraph(kind string, edges []types.GraphEdge) error {
	name, ok := graphFileNames[kind]
	if !ok {
		return semerrors.NewCacheError(kind, "write_graph", errUnknownGraphKind)
	}
	sorted := append([]types.GraphEdge(nil), edges...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		return sorted[i].To < sorted[j].To
	})
	return WriteAtomic(filepath.Join(s.Root, "graphs", name), []byte(toon.EncodeGraphEdges(sorted)))
}

func (s *Store) indexPath() string {
	return filepath.Join(s.Root, "symbol_index.jsonl")
}

// WriteIndex rewrites symbol_index.jsonl in full, sorted by file then
// symbol name for determinism (spec §5: "implementations sort enumerations
// before writing").
func (s *Store) WriteIndex(entries []types.SymbolIndexEntry) error {
	sorted := append([]types.SymbolIndexEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].File != sorted[j].File {
			return sorted[i].File < sorted[j].File
		}
		return sorted[i].Symbol < sorted[j].Symbol
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		raw, err := toon.EncodeIndexEntryJSON(&e)
		if err != nil {
			return semerrors.NewCacheError(s.indexPath(), "encode_index", err)
		}
		buf.Write(raw)
		buf.WriteByte('\n')
	}
	return WriteAtomic(s.indexPath(), buf.Bytes())
}

// ReadIndex parses symbol_index.jsonl, silently ignoring a truncated final
// line (spec §6: "must tolerate a partial last line... treat as truncated
// write and ignore") and unknown additional keys (json.Unmarshal already
// ignores those).
func (s *Store) ReadIndex() ([]types.SymbolIndexEntry, error) {
	f, err := os.Open(s.indexPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, semerrors.NewCacheError(s.indexPath(), "read_index", err)
	}
	defer f.Close()

	var entries []types.SymbolIndexEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var e types.SymbolIndexEntry
		if err := json.Unmarshal(line, &e); err != nil {
			// Partial/corrupt last line: ignore rather than fail the read.
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
