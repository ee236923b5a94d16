package detectors

import "github.com/standardbeagle/semfora/internal/astadapter"

// walkFunc is invoked for every node in a pre-order (source-order)
// traversal. Returning false skips that node's children.
type walkFunc func(n astadapter.Node) bool

func walk(n astadapter.Node, fn walkFunc) {
	if n.IsNil() {
		return
	}
	if !fn(n) {
		return
	}
	for i := 0; i < n.ChildCount(); i++ {
		walk(n.Child(i), fn)
	}
}

// findAll returns every descendant of root (root included) whose Kind is
// in kinds, in source order. It descends into every subtree, nested
// definitions included.
func findAll(root astadapter.Node, kinds map[string]bool) []astadapter.Node {
	var out []astadapter.Node
	walk(root, func(n astadapter.Node) bool {
		if kinds[n.Kind()] {
			out = append(out, n)
		}
		return true
	})
	return out
}

// nameOf resolves a definition node's identifier by trying each field name
// in order, falling back to the first identifier-ish child.
func nameOf(n astadapter.Node, src []byte, fields []string) string {
	for _, f := range fields {
		if child := n.FieldChild(f); !child.IsNil() {
			if name := identifierText(child, src); name != "" {
				return name
			}
		}
	}
	return ""
}

// identifierText extracts a plausible identifier from n: if n is itself an
// identifier-shaped leaf its text is used directly; otherwise its
// descendants are searched for the first "identifier"-like kind.
func identifierText(n astadapter.Node, src []byte) string {
	if n.IsNil() {
		return ""
	}
	switch n.Kind() {
	case "identifier", "type_identifier", "field_identifier", "property_identifier", "name":
		return astadapter.Text(src, n)
	}
	if n.ChildCount() == 0 {
		return astadapter.Text(src, n)
	}
	for i := 0; i < n.ChildCount(); i++ {
		if name := identifierText(n.Child(i), src); name != "" {
			return name
		}
	}
	return ""
}
