package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("/repo")
	assert.Equal(t, "/repo", cfg.Project.Root)
	assert.Equal(t, int64(DefaultMaxFileSize), cfg.Index.MaxFileSize)
	assert.Equal(t, DefaultBM25K1, cfg.Search.BM25K1)
	assert.Equal(t, DefaultBM25B, cfg.Search.BM25B)
	assert.Equal(t, DefaultDuplicateThreshold, cfg.Duplicate.SimilarityThreshold)
	assert.Contains(t, cfg.Exclude, ".git")
}

func TestLoadFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Project.Root)
}

func TestLoadKDLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
project {
    name "demo"
}
index {
    max_file_count 500
    respect_gitignore false
}
search {
    bm25_k1 1.5
}
exclude "dist" "build"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".semfora.kdl"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Project.Name)
	assert.Equal(t, 500, cfg.Index.MaxFileCount)
	assert.False(t, cfg.Index.RespectGitignore)
	assert.Equal(t, 1.5, cfg.Search.BM25K1)
	assert.Equal(t, []string{"dist", "build"}, cfg.Exclude)
}

func TestLoadTOMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
[project]
name = "demo-toml"

[index]
max_file_count = 250

[search]
bm25_b = 0.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".semfora.toml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "demo-toml", cfg.Project.Name)
	assert.Equal(t, 250, cfg.Index.MaxFileCount)
	assert.Equal(t, 0.5, cfg.Search.BM25B)
}
