package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/semfora/internal/config"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalkFiltersTestsAndExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "main_test.go", "package main\n")
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = {}\n")
	writeFile(t, root, "README.md", "# hi\n")

	cfg := config.Default(root)
	result, err := Walk(cfg)
	require.NoError(t, err)

	var paths []string
	for _, f := range result.Files {
		paths = append(paths, f.RelPath)
	}
	assert.Contains(t, paths, "main.go")
	assert.NotContains(t, paths, "main_test.go")
	assert.NotContains(t, paths, "node_modules/pkg/index.js")
}

func TestIsBinaryByExtension(t *testing.T) {
	assert.True(t, IsBinary("logo.png", nil))
	assert.False(t, IsBinary("main.go", nil))
	assert.False(t, IsBinary("bundle.min.js", nil))
}

func TestIsBinaryByMagicNumber(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A}
	assert.True(t, IsBinary("unknown", png))
	assert.False(t, IsBinary("unknown", []byte("package main\n\nfunc main() {}\n")))
}

func TestExcludeMatcherGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "dist\n*.log\n")
	m := NewExcludeMatcher(root, nil, nil, true)
	assert.True(t, m.Excluded("dist/bundle.js"))
	assert.True(t, m.Excluded("debug.log"))
	assert.False(t, m.Excluded("src/main.go"))
}
