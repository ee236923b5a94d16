package cache

import (
	"os"
	"path/filepath"
)

// BaseDir resolves the root cache directory (spec §6 "Cache directory
// discovery"): a host-reported local-application-data path takes
// precedence when present; otherwise ${XDG_CACHE_HOME:-$HOME/.cache}/semfora.
func BaseDir() (string, error) {
	if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
		return filepath.Join(appData, "semfora", "cache"), nil
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "semfora"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "semfora"), nil
}

// RepoDir returns the per-repository cache directory for the given repo
// root, creating it (and its subdirectories) if necessary.
func RepoDir(repoRoot string) (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	identity, err := RepoIdentity(repoRoot)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, ShortDigest(identity))
	for _, sub := range []string{
		"modules", "symbols", "graphs", "signatures",
		"layers/base/symbols", "layers/branch/symbols", "layers/working/symbols", "layers/proposed/symbols",
		"meta",
	} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return "", err
		}
	}
	return dir, nil
}
