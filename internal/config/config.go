// Package config holds Semfora's layered configuration and the defaults
// mirrored from spec.md's size and threshold constants.
package config

import (
	"os"
	"path/filepath"
)

// Size and drift-threshold defaults (spec §1, §4.7).
const (
	DefaultMaxFileSize     = 10 * 1024 * 1024 // 10MB per file
	DefaultMaxTotalSizeMB  = 500
	DefaultMaxFileCount    = 10000
	BinaryPreCheckSizeThreshold = 100 * 1024
	BinaryPreCheckBytes    = 512

	// Drift strategy thresholds (spec §4.7 table).
	DriftIncrementalMaxFiles   = 10
	DriftIncrementalMaxFraction = 0.02
	DriftOverlayMaxFraction     = 0.30

	// Duplicate-cluster default threshold (spec §4.9).
	DefaultDuplicateThreshold = 0.90

	// BM25 parameters (spec §4.10).
	DefaultBM25K1 = 1.2
	DefaultBM25B  = 0.75
)

type Config struct {
	Project     Project
	Index       Index
	Performance Performance
	Search      Search
	Duplicate   Duplicate
	Include     []string
	Exclude     []string
}

type Project struct {
	Root string
	Name string
}

type Index struct {
	MaxFileSize      int64
	MaxTotalSizeMB   int64
	MaxFileCount     int
	FollowSymlinks   bool
	SmartSizeControl bool
	PriorityMode     string // "recent", "small", "important"
	RespectGitignore bool
	WatchMode        bool
	WatchDebounceMs  int
}

type Performance struct {
	MaxMemoryMB         int
	ParallelFileWorkers int // 0 = auto-detect (NumCPU)
	IndexingTimeoutSec  int
}

type Search struct {
	BM25K1 float64
	BM25B  float64
}

type Duplicate struct {
	SimilarityThreshold float64
	// UseSQLiteBackend persists function fingerprints to signatures.db
	// (internal/cache/sqlitecache) and, in the same run, sources the
	// duplicate engine's coarse candidates from its indexed
	// parameter-count/boilerplate query instead of the all-pairs Go scan.
	UseSQLiteBackend bool
}

// Default returns a Config populated with spec-mandated defaults, rooted
// at the given absolute project path.
func Default(root string) *Config {
	return &Config{
		Project: Project{Root: root, Name: filepath.Base(root)},
		Index: Index{
			MaxFileSize:      DefaultMaxFileSize,
			MaxTotalSizeMB:   DefaultMaxTotalSizeMB,
			MaxFileCount:     DefaultMaxFileCount,
			FollowSymlinks:   false,
			SmartSizeControl: true,
			PriorityMode:     "important",
			RespectGitignore: true,
			WatchMode:        false,
			WatchDebounceMs:  300,
		},
		Performance: Performance{
			MaxMemoryMB:         100,
			ParallelFileWorkers: 0,
			IndexingTimeoutSec:  120,
		},
		Search: Search{
			BM25K1: DefaultBM25K1,
			BM25B:  DefaultBM25B,
		},
		Duplicate: Duplicate{
			SimilarityThreshold: DefaultDuplicateThreshold,
		},
		Include: nil,
		Exclude: []string{"node_modules", ".git", "vendor", "dist", "build", "target"},
	}
}

// Load resolves configuration for projectRoot: it tries .semfora.kdl, then
// .semfora.toml, falling back to Default if neither exists.
func Load(projectRoot string) (*Config, error) {
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, err
	}

	if cfg, err := loadKDL(absRoot); err != nil {
		return nil, err
	} else if cfg != nil {
		return cfg, nil
	}

	if cfg, err := loadTOML(absRoot); err != nil {
		return nil, err
	} else if cfg != nil {
		return cfg, nil
	}

	return Default(absRoot), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
