package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/semfora/internal/config"
	"github.com/standardbeagle/semfora/internal/search"
	"github.com/standardbeagle/semfora/internal/types"
)

const fixtureGoSource = `package sample

import "fmt"

func FetchUser(id string) error {
	if id == "" {
		return fmt.Errorf("empty id")
	}
	return nil
}

func FetchUserV2(id string) error {
	if id == "" {
		return fmt.Errorf("empty id")
	}
	return nil
}
`

// fixtureJSXSource matches spec.md §8 scenario 1: a component rendering
// local state and six same-tag siblings, used to drive detectors.Detect's
// real tree-sitter JSX reclassification end to end.
const fixtureJSXSource = `import { useState } from "react";
import { Link } from "react-router-dom";

export function AppLayout() {
  const [open, setOpen] = useState(false);
  return (
    <nav>
      <Link to="/">Home</Link>
      <Link to="/docs">Docs</Link>
      <Link to="/blog">Blog</Link>
      <Link to="/about">About</Link>
      <Link to="/pricing">Pricing</Link>
      <Link to="/contact">Contact</Link>
    </nav>
  );
}
`

const fixtureMalformedSource = `package sample

func broken( {
	return
`

func newTestRepo(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sample"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sample", "user.go"), []byte(fixtureGoSource), 0o644))

	cfg := config.Default(root)
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return cfg
}

func newTestRepoWithFile(t *testing.T, relPath, source string) *config.Config {
	t.Helper()
	root := t.TempDir()
	full := filepath.Join(root, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(source), 0o644))

	cfg := config.Default(root)
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return cfg
}

func TestPipelineRunIndexesSymbolsAndWritesShards(t *testing.T) {
	cfg := newTestRepo(t)

	p, err := Open(cfg)
	require.NoError(t, err)

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesIndexed)
	assert.GreaterOrEqual(t, result.SymbolsFound, 2)
	assert.False(t, result.Cancelled)

	entries, err := p.store.ReadIndex()
	require.NoError(t, err)
	assert.Len(t, entries, result.SymbolsFound)
}

func TestPipelineRunFindsDuplicateCluster(t *testing.T) {
	cfg := newTestRepo(t)
	cfg.Duplicate.SimilarityThreshold = 0.5

	p, err := Open(cfg)
	require.NoError(t, err)

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, result.Duplicates)
	assert.GreaterOrEqual(t, len(result.Duplicates[0].Members), 2)
}

func TestPipelineSearchIndexIsPopulated(t *testing.T) {
	cfg := newTestRepo(t)

	p, err := Open(cfg)
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.NoError(t, err)

	results := p.Search.Search("fetch user", search.Filter{})
	assert.NotEmpty(t, results)
}

func TestPipelineRunReclassifiesJSXComponent(t *testing.T) {
	cfg := newTestRepoWithFile(t, "src/AppLayout.jsx", fixtureJSXSource)

	p, err := Open(cfg)
	require.NoError(t, err)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, result.Skipped)

	entries, err := p.store.ReadIndex()
	require.NoError(t, err)

	var found *types.SymbolIndexEntry
	for i := range entries {
		if entries[i].Symbol == "AppLayout" {
			found = &entries[i]
			break
		}
	}
	require.NotNil(t, found, "expected an AppLayout entry in the symbol index")
	assert.Equal(t, types.KindComponent, found.Kind)
}

func TestPipelineRunSkipsUnparseableFileWithoutWritingShard(t *testing.T) {
	cfg := newTestRepoWithFile(t, "sample/broken.go", fixtureMalformedSource)

	p, err := Open(cfg)
	require.NoError(t, err)

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesIndexed)
	assert.Equal(t, 0, result.SymbolsFound)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "parse_error", result.Skipped[0].Reason)
	assert.Equal(t, "sample/broken.go", result.Skipped[0].Path)

	entries, err := p.store.ReadIndex()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
