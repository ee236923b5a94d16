package drift

import (
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/semfora/internal/config"
)

// Strategy is the rebuild approach the detector recommends for the
// current indexing run (spec §4.7 table). It is advisory: a full rebuild
// must always be able to reproduce identical output given the same input.
type Strategy string

const (
	StrategyFresh         Strategy = "fresh"
	StrategyIncremental   Strategy = "incremental"
	StrategyOverlayRebase Strategy = "overlay_rebase"
	StrategyFullRebuild   Strategy = "full_rebuild"
)

// Decision is the outcome of comparing current repo state to the recorded
// snapshot.
type Decision struct {
	Strategy Strategy
	Changed  []string // repo-root-relative paths added, modified, or removed
}

// Candidate is one file discovered by the current walk. Decide compares
// its mtime first and reads AbsPath to hash the content only when the
// mtime has moved.
type Candidate struct {
	RelPath string
	AbsPath string
}

// Decide compares recorded against the current candidate set and returns
// the strategy + changed-file list (spec §4.7).
func Decide(cfg *config.Config, recorded *RecordedState, candidates []Candidate) Decision {
	if recorded == nil {
		changed := make([]string, len(candidates))
		for i, c := range candidates {
			changed[i] = c.RelPath
		}
		return Decision{Strategy: StrategyFullRebuild, Changed: changed}
	}

	present := make(map[string]bool, len(candidates))
	var changed []string

	for _, c := range candidates {
		present[c.RelPath] = true
		prior, ok := recorded.Files[c.RelPath]
		if !ok {
			changed = append(changed, c.RelPath)
			continue
		}
		info, err := os.Stat(c.AbsPath)
		if err != nil {
			changed = append(changed, c.RelPath)
			continue
		}
		if info.ModTime().Unix() == prior.ModTime {
			continue
		}
		// mtime moved: confirm with a content hash before counting it as a
		// real change, since some tools touch files without altering bytes.
		data, err := os.ReadFile(c.AbsPath)
		if err != nil || xxhash.Sum64(data) != prior.Hash {
			changed = append(changed, c.RelPath)
		}
	}

	for relPath := range recorded.Files {
		if !present[relPath] {
			changed = append(changed, relPath)
		}
	}

	total := len(recorded.Files)
	if total == 0 {
		total = len(candidates)
	}

	return Decision{Strategy: classify(len(changed), total), Changed: changed}
}

func classify(changedCount, total int) Strategy {
	if changedCount == 0 {
		return StrategyFresh
	}
	if total == 0 {
		return StrategyFullRebuild
	}
	fraction := float64(changedCount) / float64(total)
	if changedCount <= config.DriftIncrementalMaxFiles && fraction < config.DriftIncrementalMaxFraction {
		return StrategyIncremental
	}
	if fraction <= config.DriftOverlayMaxFraction {
		return StrategyOverlayRebase
	}
	return StrategyFullRebuild
}
