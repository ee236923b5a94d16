package detectors

import (
	"github.com/standardbeagle/semfora/internal/astadapter"
	"github.com/standardbeagle/semfora/internal/types"
)

// callsIn walks call expressions within symbolNode, deduplicating by
// (callee-name, await-qualifier, try-qualifier) and preserving first-seen
// order (spec §4.2 call detector).
func callsIn(symbolNode astadapter.Node, src []byte, spec LanguageSpec) []types.Call {
	var out []types.Call
	seen := map[types.Call]bool{}

	var awaitDepth, tryDepth int

	var visit func(n astadapter.Node)
	visit = func(n astadapter.Node) {
		if n.IsNil() {
			return
		}

		switch n.Kind() {
		case "await_expression", "await":
			awaitDepth++
			defer func() { awaitDepth-- }()
		case "try_statement", "try_expression":
			tryDepth++
			defer func() { tryDepth-- }()
		}

		if spec.CallKinds[n.Kind()] {
			name := calleeName(n, src)
			if name != "" {
				c := types.Call{Name: name, Await: awaitDepth > 0, Try: tryDepth > 0}
				if !seen[c] {
					seen[c] = true
					out = append(out, c)
				}
			}
		}

		for i := 0; i < n.ChildCount(); i++ {
			visit(n.Child(i))
		}
	}
	visit(symbolNode)

	return out
}

// calleeName resolves the callee identifier of a call-shaped node,
// including simple member-access callees (e.g. "db.Save" -> "db.Save").
func calleeName(call astadapter.Node, src []byte) string {
	target := call.FieldChild("function")
	if target.IsNil() {
		target = call.FieldChild("name")
	}
	if target.IsNil() && call.ChildCount() > 0 {
		target = call.Child(0)
	}
	if target.IsNil() {
		return ""
	}

	switch target.Kind() {
	case "member_expression", "selector_expression", "scoped_identifier", "field_access":
		return astadapter.Text(src, target)
	default:
		return identifierText(target, src)
	}
}
