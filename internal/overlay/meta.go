package overlay

import (
	"encoding/json"
	"os"
	"path/filepath"

	semerrors "github.com/standardbeagle/semfora/internal/errors"
)

// LayerMeta is one layer's metadata.json: which symbol ids it holds,
// which it has explicitly deleted (shadowing lower layers for that id),
// and the git ref it was materialized against (spec §4.8).
type LayerMeta struct {
	GitRef  string         `json:"git_ref,omitempty"`
	Symbols map[uint64]bool `json:"symbols"`
	Deleted map[uint64]bool `json:"deleted"`
}

func newLayerMeta() *LayerMeta {
	return &LayerMeta{Symbols: map[uint64]bool{}, Deleted: map[uint64]bool{}}
}

func metaPath(cacheDir, layer string) string {
	return filepath.Join(cacheDir, "layers", layer, "meta.json")
}

func loadLayerMeta(cacheDir, layer string) (*LayerMeta, error) {
	data, err := os.ReadFile(metaPath(cacheDir, layer))
	if os.IsNotExist(err) {
		return newLayerMeta(), nil
	}
	if err != nil {
		return nil, semerrors.NewCacheError(metaPath(cacheDir, layer), "read_layer_meta", err)
	}
	var m LayerMeta
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, semerrors.NewCacheError(metaPath(cacheDir, layer), "parse_layer_meta", err)
	}
	if m.Symbols == nil {
		m.Symbols = map[uint64]bool{}
	}
	if m.Deleted == nil {
		m.Deleted = map[uint64]bool{}
	}
	return &m, nil
}

func saveLayerMeta(cacheDir, layer string, m *LayerMeta) error {
	data, err := json.Marshal(m)
	if err != nil {
		return semerrors.NewCacheError(metaPath(cacheDir, layer), "encode_layer_meta", err)
	}
	if err := os.MkdirAll(filepath.Dir(metaPath(cacheDir, layer)), 0o755); err != nil {
		return semerrors.NewCacheError(metaPath(cacheDir, layer), "mkdir", err)
	}
	return os.WriteFile(metaPath(cacheDir, layer), data, 0o644)
}
