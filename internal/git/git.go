// Package git supplies the branch head recorded alongside the drift state
// (spec §4.7) and changed-file queries, by shelling out to the git
// CLI the way the teacher's internal/git/provider.go does rather than
// linking a pure-Go git implementation.
package git

import (
	"bufio"
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"

	semerrors "github.com/standardbeagle/semfora/internal/errors"
)

// Repo wraps git invocations rooted at one working tree.
type Repo struct {
	root string
}

// Open resolves path to its git toplevel and returns a Repo, or an error
// if path is not inside a git working tree.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, semerrors.NewGitError("abs", err)
	}
	out, err := runGit(abs, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, semerrors.NewGitError("rev-parse", err)
	}
	return &Repo{root: strings.TrimSpace(out)}, nil
}

func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return stdout.String(), nil
}

// Root returns the git working tree's top-level directory.
func (r *Repo) Root() string {
	return r.root
}

// HeadCommit returns the current HEAD commit SHA.
func (r *Repo) HeadCommit() (string, error) {
	out, err := runGit(r.root, "rev-parse", "HEAD")
	if err != nil {
		return "", semerrors.NewGitError("rev-parse_head", err)
	}
	return strings.TrimSpace(out), nil
}

// Branch returns the current branch name, or "" in detached-HEAD state.
func (r *Repo) Branch() (string, error) {
	out, err := runGit(r.root, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", semerrors.NewGitError("rev-parse_branch", err)
	}
	name := strings.TrimSpace(out)
	if name == "HEAD" {
		return "", nil
	}
	return name, nil
}

// ChangedSinceCommit returns the set of file paths (repo-root-relative)
// that differ between commit and the working tree, covering both staged
// and unstaged changes plus untracked files (spec §4.7 "set of files
// present against the cached enumeration").
func (r *Repo) ChangedSinceCommit(commit string) ([]string, error) {
	tracked, err := runGit(r.root, "diff", "--name-only", "--no-renames", commit)
	if err != nil {
		return nil, semerrors.NewGitError("diff_name_only", err)
	}
	untracked, err := runGit(r.root, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, semerrors.NewGitError("ls_files_untracked", err)
	}
	return mergeLines(tracked, untracked), nil
}

func mergeLines(blocks ...string) []string {
	seen := map[string]bool{}
	var out []string
	for _, block := range blocks {
		scanner := bufio.NewScanner(strings.NewReader(block))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || seen[line] {
				continue
			}
			seen[line] = true
			out = append(out, line)
		}
	}
	return out
}

// IsRepo reports whether path is inside a git working tree, without
// failing the caller if it isn't.
func IsRepo(path string) bool {
	_, err := Open(path)
	return err == nil
}
