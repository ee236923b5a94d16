package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// tomlDoc mirrors Config's shape for decoding .semfora.toml; fields are
// pointers so absent keys leave the corresponding Default() value in place.
type tomlDoc struct {
	Project *struct {
		Root string `toml:"root"`
		Name string `toml:"name"`
	} `toml:"project"`
	Index *struct {
		MaxFileSize      *int64  `toml:"max_file_size"`
		MaxTotalSizeMB   *int64  `toml:"max_total_size_mb"`
		MaxFileCount     *int    `toml:"max_file_count"`
		FollowSymlinks   *bool   `toml:"follow_symlinks"`
		SmartSizeControl *bool   `toml:"smart_size_control"`
		PriorityMode     *string `toml:"priority_mode"`
		RespectGitignore *bool   `toml:"respect_gitignore"`
		WatchMode        *bool   `toml:"watch_mode"`
		WatchDebounceMs  *int    `toml:"watch_debounce_ms"`
	} `toml:"index"`
	Performance *struct {
		MaxMemoryMB         *int `toml:"max_memory_mb"`
		ParallelFileWorkers *int `toml:"parallel_file_workers"`
		IndexingTimeoutSec  *int `toml:"indexing_timeout_sec"`
	} `toml:"performance"`
	Search *struct {
		BM25K1 *float64 `toml:"bm25_k1"`
		BM25B  *float64 `toml:"bm25_b"`
	} `toml:"search"`
	Duplicate *struct {
		SimilarityThreshold *float64 `toml:"similarity_threshold"`
	} `toml:"duplicate"`
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// loadTOML loads .semfora.toml from projectRoot. Returns (nil, nil) if the
// file does not exist.
func loadTOML(projectRoot string) (*Config, error) {
	path := filepath.Join(projectRoot, ".semfora.toml")
	if !fileExists(path) {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read .semfora.toml: %w", err)
	}

	var doc tomlDoc
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse .semfora.toml: %w", err)
	}

	cfg := Default(projectRoot)

	if doc.Project != nil {
		if doc.Project.Root != "" {
			cfg.Project.Root = filepath.Clean(filepath.Join(projectRoot, doc.Project.Root))
		}
		if doc.Project.Name != "" {
			cfg.Project.Name = doc.Project.Name
		}
	}
	if idx := doc.Index; idx != nil {
		if idx.MaxFileSize != nil {
			cfg.Index.MaxFileSize = *idx.MaxFileSize
		}
		if idx.MaxTotalSizeMB != nil {
			cfg.Index.MaxTotalSizeMB = *idx.MaxTotalSizeMB
		}
		if idx.MaxFileCount != nil {
			cfg.Index.MaxFileCount = *idx.MaxFileCount
		}
		if idx.FollowSymlinks != nil {
			cfg.Index.FollowSymlinks = *idx.FollowSymlinks
		}
		if idx.SmartSizeControl != nil {
			cfg.Index.SmartSizeControl = *idx.SmartSizeControl
		}
		if idx.PriorityMode != nil {
			cfg.Index.PriorityMode = *idx.PriorityMode
		}
		if idx.RespectGitignore != nil {
			cfg.Index.RespectGitignore = *idx.RespectGitignore
		}
		if idx.WatchMode != nil {
			cfg.Index.WatchMode = *idx.WatchMode
		}
		if idx.WatchDebounceMs != nil {
			cfg.Index.WatchDebounceMs = *idx.WatchDebounceMs
		}
	}
	if perf := doc.Performance; perf != nil {
		if perf.MaxMemoryMB != nil {
			cfg.Performance.MaxMemoryMB = *perf.MaxMemoryMB
		}
		if perf.ParallelFileWorkers != nil {
			cfg.Performance.ParallelFileWorkers = *perf.ParallelFileWorkers
		}
		if perf.IndexingTimeoutSec != nil {
			cfg.Performance.IndexingTimeoutSec = *perf.IndexingTimeoutSec
		}
	}
	if s := doc.Search; s != nil {
		if s.BM25K1 != nil {
			cfg.Search.BM25K1 = *s.BM25K1
		}
		if s.BM25B != nil {
			cfg.Search.BM25B = *s.BM25B
		}
	}
	if d := doc.Duplicate; d != nil && d.SimilarityThreshold != nil {
		cfg.Duplicate.SimilarityThreshold = *d.SimilarityThreshold
	}
	if doc.Include != nil {
		cfg.Include = doc.Include
	}
	if doc.Exclude != nil {
		cfg.Exclude = doc.Exclude
	}

	return cfg, nil
}
