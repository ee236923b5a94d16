package cache

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/semfora/internal/encoding"
)

// RepoIdentity returns the stable identifier for root used to name its
// cache subdirectory (spec §4.6): the git remote URL if the repo has one
// configured, otherwise the canonicalized absolute path.
func RepoIdentity(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	if remote := gitRemoteURL(abs); remote != "" {
		return remote, nil
	}
	return abs, nil
}

// gitRemoteURL shells out to the git CLI for origin's URL, matching the
// teacher's provider.go pattern of driving git via os/exec rather than a
// pure-Go git library. Returns "" if git is absent or the repo has no
// "origin" remote.
func gitRemoteURL(root string) string {
	cmd := exec.Command("git", "-C", root, "remote", "get-url", "origin")
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// ShortDigest renders a stable, filesystem-safe subdirectory name for a
// repo identity string (spec §6: "a short hex digest of the stable repo
// identifier" — Base63 is used in place of hex for consistency with the
// rest of Semfora's addressing scheme, still short and collision-resistant
// for the corpus sizes this tool targets).
func ShortDigest(identity string) string {
	return encoding.Base63Encode(xxhash.Sum64String(identity))
}
