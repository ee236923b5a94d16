package walker

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExcludeMatcher combines the repo's .gitignore patterns with the config's
// explicit include/exclude glob lists, matched with doublestar so both
// single-segment (`*.min.js`) and recursive (`**/dist/**`) globs work the
// way a .gitignore author expects.
type ExcludeMatcher struct {
	root     string
	excludes []string
	includes []string
}

// NewExcludeMatcher builds a matcher for root using the given include and
// exclude glob lists. If respectGitignore is true, root's .gitignore (if
// present) contributes additional exclude patterns.
func NewExcludeMatcher(root string, include, exclude []string, respectGitignore bool) *ExcludeMatcher {
	m := &ExcludeMatcher{root: root, includes: append([]string(nil), include...), excludes: append([]string(nil), exclude...)}
	if respectGitignore {
		m.excludes = append(m.excludes, readGitignore(root)...)
	}
	return m
}

func readGitignore(root string) []string {
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "!")
		line = strings.TrimSuffix(line, "/")
		if !strings.Contains(line, "*") && !strings.Contains(line, "/") {
			// Bare directory/file name: exclude it anywhere in the tree.
			patterns = append(patterns, "**/"+line, "**/"+line+"/**")
			continue
		}
		patterns = append(patterns, line, line+"/**")
	}
	return patterns
}

// Excluded reports whether relPath (repo-root-relative, forward-slash
// separated) should be skipped.
func (m *ExcludeMatcher) Excluded(relPath string) bool {
	relPath = filepath.ToSlash(relPath)

	for _, pat := range m.includes {
		if matched, _ := doublestar.Match(pat, relPath); matched {
			return false
		}
	}
	for _, pat := range m.excludes {
		if matched, _ := doublestar.Match(pat, relPath); matched {
			return true
		}
	}
	return false
}
