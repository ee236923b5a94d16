package detectors

import (
	"strings"

	"github.com/standardbeagle/semfora/internal/astadapter"
	"github.com/standardbeagle/semfora/internal/types"
)

// stateChangesIn finds variable bindings within symbolNode whose
// initializer is considered stateful: a reactive hook call, a mutable
// declaration keyword, or a class field (spec §4.2 state detector).
func stateChangesIn(symbolNode astadapter.Node, src []byte, spec LanguageSpec) []types.StateChange {
	var out []types.StateChange

	nodes := findAll(symbolNode, spec.StateKinds)
	for _, n := range nodes {
		name, typ, init, stateful := bindingInfo(n, src, spec)
		if name == "" || !stateful {
			continue
		}
		out = append(out, types.StateChange{Name: name, Type: typ, Initializer: init})
	}
	return out
}

func bindingInfo(n astadapter.Node, src []byte, spec LanguageSpec) (name, typ, init string, stateful bool) {
	declaratorKinds := map[string]bool{
		"variable_declarator": true,
		"assignment":          true,
		"assignment_expression": true,
	}

	declarator := n
	if !declaratorKinds[n.Kind()] {
		// Descend to find the inner declarator (e.g. Go's var_declaration
		// wraps a var_spec, C#'s variable_declaration wraps a
		// variable_declarator).
		found := findAll(n, map[string]bool{
			"var_spec": true, "variable_declarator": true, "assignment": true,
			"assignment_expression": true, "let_declaration": true,
			"field_declaration": true,
		})
		if len(found) > 0 {
			declarator = found[0]
		}
	}

	nameNode := declarator.FieldChild("name")
	if nameNode.IsNil() {
		nameNode = declarator.FieldChild("left")
	}
	if nameNode.IsNil() {
		nameNode = declarator.FieldChild("pattern")
	}
	name = identifierText(nameNode, src)
	if name == "" && declarator.ChildCount() > 0 {
		name = identifierText(declarator.Child(0), src)
	}

	typeNode := declarator.FieldChild("type")
	typ = astadapter.Text(src, typeNode)

	valueNode := declarator.FieldChild("value")
	if valueNode.IsNil() {
		valueNode = declarator.FieldChild("right")
	}
	init = strings.TrimSpace(astadapter.Text(src, valueNode))

	stateful = isStateful(n, src, spec, init)
	return
}

func isStateful(declNode astadapter.Node, src []byte, spec LanguageSpec, init string) bool {
	if callee := firstIdentifierBefore(init); callee != "" && spec.ReactiveInitializers[callee] {
		return true
	}

	switch spec.Language {
	case types.LangGo:
		// var/short-var declarations are mutable by Go convention.
		return true
	case types.LangRust:
		return strings.Contains(astadapter.Text(src, declNode), "mut ")
	case types.LangJavaScript, types.LangTypeScript:
		// The let/var/const keyword belongs to the enclosing
		// lexical_declaration/variable_declaration, not the declarator.
		keywordNode := declNode
		if parent := declNode.Parent(); !parent.IsNil() {
			keywordNode = parent
		}
		fields := strings.Fields(astadapter.Text(src, keywordNode))
		return len(fields) > 0 && (fields[0] == "let" || fields[0] == "var")
	case types.LangPython:
		return true
	case types.LangCSharp, types.LangJava:
		return declNode.Kind() == "field_declaration" || declNode.Kind() == "local_variable_declaration" || declNode.Kind() == "variable_declaration"
	case types.LangPHP:
		return true
	default:
		return false
	}
}

// firstIdentifierBefore returns the leading identifier of a call-shaped
// initializer string, e.g. "useState(false)" -> "useState".
func firstIdentifierBefore(init string) string {
	idx := strings.IndexByte(init, '(')
	if idx < 0 {
		return ""
	}
	candidate := strings.TrimSpace(init[:idx])
	if candidate == "" {
		return ""
	}
	for _, r := range candidate {
		if !(r == '_' || r == '.' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return ""
		}
	}
	return candidate
}
