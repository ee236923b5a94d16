// Package walker enumerates a repository's source files for indexing:
// language filtering via internal/langdetect, test-file exclusion,
// .gitignore/config glob exclusion, binary pre-check, and the smart
// size-control bound the config layer exposes (spec §12 supplement,
// grounded on the teacher's internal/indexing walker and binary_detector).
package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/standardbeagle/semfora/internal/config"
	"github.com/standardbeagle/semfora/internal/langdetect"
	"github.com/standardbeagle/semfora/internal/types"
)

// testFileSuffixes are filename patterns that mark a file as a test file,
// excluded from indexing by default (spec §1 data-flow: "test-exclusion
// rules").
var testFileSuffixes = []string{
	"_test.go", ".test.ts", ".test.tsx", ".test.js", ".test.jsx",
	".spec.ts", ".spec.tsx", ".spec.js", ".spec.jsx", "_test.py", "_test.rs",
}

func isTestFile(name string) bool {
	for _, suffix := range testFileSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return strings.HasPrefix(name, "test_") && strings.HasSuffix(name, ".py")
}

// File is one candidate file discovered by Walk, not yet read or parsed.
type File struct {
	Path     string // absolute
	RelPath  string // forward-slash, root-relative
	Language types.Language
	Size     int64
}

// Result is the outcome of a full repo walk.
type Result struct {
	Files   []File
	Skipped []types.SkippedFile
}

// Walk enumerates cfg.Project.Root, returning the files eligible for
// indexing and the ones skipped, in deterministic (lexical path) order.
func Walk(cfg *config.Config) (*Result, error) {
	matcher := NewExcludeMatcher(cfg.Project.Root, cfg.Include, cfg.Exclude, cfg.Index.RespectGitignore)

	var candidates []File
	var skipped []types.SkippedFile
	var totalSize int64

	err := filepath.Walk(cfg.Project.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(cfg.Project.Root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if matcher.Excluded(rel) {
			skipped = append(skipped, types.SkippedFile{Path: rel, Reason: "excluded"})
			return nil
		}
		if isTestFile(info.Name()) {
			skipped = append(skipped, types.SkippedFile{Path: rel, Reason: "excluded"})
			return nil
		}
		if info.Size() > cfg.Index.MaxFileSize {
			skipped = append(skipped, types.SkippedFile{Path: rel, Reason: "too_large"})
			return nil
		}
		if isBinaryByExtension(rel) {
			skipped = append(skipped, types.SkippedFile{Path: rel, Reason: "binary"})
			return nil
		}

		lang := langdetect.Detect(rel, nil)
		if lang == types.LangUnsupported {
			if probe, probeErr := probeLanguage(path, rel, info.Size()); probeErr == nil {
				lang = probe
			}
		}
		if lang == types.LangUnsupported {
			skipped = append(skipped, types.SkippedFile{Path: rel, Reason: "unsupported"})
			return nil
		}

		candidates = append(candidates, File{Path: path, RelPath: rel, Language: lang, Size: info.Size()})
		totalSize += info.Size()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].RelPath < candidates[j].RelPath })

	if cfg.Index.SmartSizeControl {
		candidates, skipped = boundBySize(candidates, skipped, cfg)
	}

	return &Result{Files: candidates, Skipped: skipped}, nil
}

// probeLanguage re-reads the binary-check threshold worth of a shebang
// candidate file to resolve extensionless scripts, mirroring langdetect's
// shebang path but only paying the read cost when the extension lookup
// already failed.
func probeLanguage(path, rel string, size int64) (types.Language, error) {
	if filepath.Ext(rel) != "" {
		return types.LangUnsupported, nil
	}
	if size > config.BinaryPreCheckSizeThreshold {
		return types.LangUnsupported, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.LangUnsupported, err
	}
	if IsBinary(rel, raw) {
		return types.LangUnsupported, nil
	}
	return langdetect.Detect(rel, raw), nil
}
