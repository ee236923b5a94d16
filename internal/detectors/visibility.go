package detectors

import (
	"strings"

	"github.com/standardbeagle/semfora/internal/astadapter"
	"github.com/standardbeagle/semfora/internal/types"
)

// visibilityOf determines a symbol's visibility by language convention
// (spec §4.2 symbol detector): explicit keywords where present,
// underscore-prefix for dynamic languages, leading-uppercase for Go, `pub`
// for Rust.
func visibilityOf(spec LanguageSpec, name string, defNode astadapter.Node, src []byte) types.Visibility {
	switch spec.Language {
	case types.LangGo:
		if name != "" && isUpper(name[0]) {
			return types.VisPublic
		}
		return types.VisPrivate

	case types.LangRust:
		if hasLeadingKeyword(defNode, src, "pub") {
			if hasLeadingKeywordSeq(defNode, src, "pub", "(", "crate", ")") {
				return types.VisCrate
			}
			return types.VisPublic
		}
		return types.VisPrivate

	case types.LangPython, types.LangJavaScript, types.LangTypeScript, types.LangPHP:
		if strings.HasPrefix(name, "_") {
			return types.VisPrivate
		}
		return types.VisPublic

	case types.LangCSharp, types.LangJava:
		if kw := modifierKeyword(defNode, src); kw != "" {
			switch kw {
			case "public":
				return types.VisPublic
			case "private":
				return types.VisPrivate
			case "protected":
				return types.VisProtected
			case "internal":
				return types.VisInternal
			}
		}
		return types.VisInternal

	default:
		return types.VisPublic
	}
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

// hasLeadingKeyword reports whether defNode is preceded by a sibling token
// whose text equals keyword — the common shape for `pub fn foo()` where
// `pub` is a sibling visibility_modifier node rather than a child field.
func hasLeadingKeyword(defNode astadapter.Node, src []byte, keyword string) bool {
	parent := defNode.Parent()
	if parent.IsNil() {
		return false
	}
	for i := 0; i < parent.ChildCount(); i++ {
		child := parent.Child(i)
		if child.Kind() == defNode.Kind() && astadapter.Text(src, child) == astadapter.Text(src, defNode) {
			break
		}
		if astadapter.Text(src, child) == keyword {
			return true
		}
	}
	// Also check direct children (some grammars attach the modifier inside
	// the definition node itself, e.g. `visibility_modifier` field).
	for i := 0; i < defNode.ChildCount(); i++ {
		if astadapter.Text(src, defNode.Child(i)) == keyword {
			return true
		}
	}
	return false
}

func hasLeadingKeywordSeq(defNode astadapter.Node, src []byte, seq ...string) bool {
	full := astadapter.Text(src, defNode)
	joined := strings.Join(seq, "")
	return strings.Contains(strings.ReplaceAll(full, " ", ""), joined)
}

// modifierKeyword looks for a C#/Java-style access modifier among defNode's
// direct children.
func modifierKeyword(defNode astadapter.Node, src []byte) string {
	for i := 0; i < defNode.ChildCount(); i++ {
		switch astadapter.Text(src, defNode.Child(i)) {
		case "public", "private", "protected", "internal":
			return astadapter.Text(src, defNode.Child(i))
		}
	}
	return ""
}
