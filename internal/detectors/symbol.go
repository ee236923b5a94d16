package detectors

import (
	"github.com/standardbeagle/semfora/internal/astadapter"
	"github.com/standardbeagle/semfora/internal/types"
)

// parameterContainerFields are the field names definition nodes across
// languages use to hold their parameter list.
var parameterContainerFields = []string{"parameters", "parameter_list"}

// parameterKinds are node kinds that represent one parameter/prop within a
// parameter list.
var parameterKinds = map[string]bool{
	"parameter":                 true,
	"required_parameter":        true,
	"optional_parameter":        true,
	"formal_parameter":          true,
	"parameter_declaration":     true,
	"typed_parameter":           true,
	"default_parameter":         true,
	"identifier":                true, // bare-name params, e.g. Python untyped
}

// argumentsOf extracts the ordered argument/prop list of a function-or
// method-shaped definition node (spec §3 "arguments / props").
func argumentsOf(defNode astadapter.Node, src []byte) []types.Parameter {
	var params astadapter.Node
	for _, f := range parameterContainerFields {
		if c := defNode.FieldChild(f); !c.IsNil() {
			params = c
			break
		}
	}
	if params.IsNil() {
		return nil
	}

	var out []types.Parameter
	for i := 0; i < params.ChildCount(); i++ {
		child := params.Child(i)
		if !parameterKinds[child.Kind()] {
			continue
		}
		out = append(out, parameterOf(child, src))
	}
	return out
}

func parameterOf(n astadapter.Node, src []byte) types.Parameter {
	if n.Kind() == "identifier" {
		return types.Parameter{Name: astadapter.Text(src, n)}
	}

	name := astadapter.Text(src, n.FieldChild("pattern"))
	if name == "" {
		name = astadapter.Text(src, n.FieldChild("name"))
	}
	if name == "" {
		name = identifierText(n, src)
	}

	typ := astadapter.Text(src, n.FieldChild("type"))

	def := astadapter.Text(src, n.FieldChild("value"))
	if def == "" {
		def = astadapter.Text(src, n.FieldChild("default_value"))
	}

	return types.Parameter{Name: name, Type: typ, Default: def}
}

// returnTypeOf extracts a function/method's declared return type, if any.
func returnTypeOf(defNode astadapter.Node, src []byte) string {
	for _, f := range []string{"return_type", "result", "type"} {
		if c := defNode.FieldChild(f); !c.IsNil() {
			return astadapter.Text(src, c)
		}
	}
	return ""
}
