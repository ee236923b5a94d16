package detectors

import (
	"github.com/standardbeagle/semfora/internal/astadapter"
	"github.com/standardbeagle/semfora/internal/types"
)

// controlFlowIn records control-flow tags in source order; duplicates are
// collapsed only within a contiguous run (spec §4.2 control-flow detector).
func controlFlowIn(symbolNode astadapter.Node, spec LanguageSpec) []types.ControlFlowTag {
	var out []types.ControlFlowTag

	walk(symbolNode, func(n astadapter.Node) bool {
		if tag, ok := spec.ControlFlowKinds[n.Kind()]; ok {
			if len(out) == 0 || out[len(out)-1] != tag {
				out = append(out, tag)
			}
		}
		return true
	})

	return out
}
