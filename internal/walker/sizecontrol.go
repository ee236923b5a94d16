package walker

import (
	"os"
	"sort"
	"time"

	"github.com/standardbeagle/semfora/internal/config"
	"github.com/standardbeagle/semfora/internal/types"
)

// boundBySize trims candidates to cfg.Index.MaxFileCount / MaxTotalSizeMB
// when the combined set would exceed either limit, ordering survivors by
// cfg.Index.PriorityMode ("recent", "small", or the default "important")
// before truncating so the most valuable files are kept rather than
// whichever the filesystem walk happened to visit first.
func boundBySize(candidates []File, skipped []types.SkippedFile, cfg *config.Config) ([]File, []types.SkippedFile) {
	maxBytes := cfg.Index.MaxTotalSizeMB * 1024 * 1024
	maxCount := cfg.Index.MaxFileCount

	var totalSize int64
	for _, f := range candidates {
		totalSize += f.Size
	}
	if totalSize <= maxBytes && len(candidates) <= maxCount {
		return candidates, skipped
	}

	ordered := append([]File(nil), candidates...)
	switch cfg.Index.PriorityMode {
	case "recent":
		sort.SliceStable(ordered, func(i, j int) bool {
			return modTime(ordered[i].Path).After(modTime(ordered[j].Path))
		})
	case "small":
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Size < ordered[j].Size })
	default: // "important" and any unrecognized mode fall back to path-depth priority
		sort.SliceStable(ordered, func(i, j int) bool { return pathDepth(ordered[i].RelPath) < pathDepth(ordered[j].RelPath) })
	}

	var kept []File
	var size int64
	for _, f := range ordered {
		if len(kept) >= maxCount || size+f.Size > maxBytes {
			skipped = append(skipped, types.SkippedFile{Path: f.RelPath, Reason: "too_large"})
			continue
		}
		kept = append(kept, f)
		size += f.Size
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].RelPath < kept[j].RelPath })
	return kept, skipped
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func pathDepth(relPath string) int {
	depth := 0
	for _, r := range relPath {
		if r == '/' {
			depth++
		}
	}
	return depth
}
