// Package detectors implements the per-language extractors (spec §4.2)
// as a single table-driven walker plus a LanguageSpec value per language,
// per design note §9 ("dynamic dispatch between detectors is modeled as a
// tagged variant over language; the shared sub-detectors are passed as
// values, not inherited").
package detectors

import "github.com/standardbeagle/semfora/internal/types"

// LanguageSpec is the per-language table the generic walker consults. It
// names the tree-sitter node kinds that carry each piece of semantic
// meaning, so a single Detect implementation serves every language.
type LanguageSpec struct {
	Language types.Language

	// DefKinds maps a definition node kind to the SymbolKind it represents.
	DefKinds map[string]types.SymbolKind

	// NameFields are the field names holding a definition's identifier, tried
	// in order until one resolves (covers grammars that use different
	// field names for functions vs. classes).
	NameFields []string

	CallKinds   map[string]bool // call/invocation expression kinds
	ImportKinds map[string]bool // import/use statement kinds

	ControlFlowKinds map[string]types.ControlFlowTag

	// StateKinds are variable/binding declarator kinds considered for the
	// state detector (spec §4.2).
	StateKinds map[string]bool

	// ReactiveInitializers are callee names whose presence in a state
	// binding's initializer marks it as reactive (e.g. useState).
	ReactiveInitializers map[string]bool

	// JSXElementKinds are markup element node kinds for the JSX/markup
	// detector (spec §4.2, §4.3).
	JSXElementKinds map[string]bool
	JSXSelfClosingKinds map[string]bool
	JSXNameField        string

	// VisibilityFromKeyword, when true, means visibility is read from a
	// modifier keyword child rather than inferred from name casing/prefix.
	VisibilityFromKeyword bool
}

var goSpec = LanguageSpec{
	Language: types.LangGo,
	DefKinds: map[string]types.SymbolKind{
		"function_declaration": types.KindFunction,
		"method_declaration":   types.KindMethod,
		"type_spec":            types.KindType,
	},
	NameFields:  []string{"name"},
	CallKinds:   map[string]bool{"call_expression": true},
	ImportKinds: map[string]bool{"import_spec": true},
	ControlFlowKinds: map[string]types.ControlFlowTag{
		"if_statement":       types.CFIf,
		"for_statement":      types.CFFor,
		"type_switch_statement": types.CFMatch,
		"expression_switch_statement": types.CFMatch,
		"go_statement":       types.CFAwait,
	},
	StateKinds: map[string]bool{"var_declaration": true, "short_var_declaration": true},
}

var jsSpec = LanguageSpec{
	Language: types.LangJavaScript,
	DefKinds: map[string]types.SymbolKind{
		"function_declaration":   types.KindFunction,
		"generator_function_declaration": types.KindFunction,
		"method_definition":      types.KindMethod,
		"class_declaration":      types.KindClass,
	},
	NameFields:  []string{"name"},
	CallKinds:   map[string]bool{"call_expression": true, "new_expression": true},
	ImportKinds: map[string]bool{"import_statement": true},
	ControlFlowKinds: map[string]types.ControlFlowTag{
		"if_statement":        types.CFIf,
		"for_statement":       types.CFFor,
		"for_in_statement":    types.CFFor,
		"while_statement":     types.CFWhile,
		"switch_statement":    types.CFMatch,
		"try_statement":       types.CFTry,
		"await_expression":    types.CFAwait,
	},
	StateKinds:           map[string]bool{"variable_declarator": true},
	ReactiveInitializers: map[string]bool{"useState": true, "useReducer": true, "useRef": true, "signal": true},
	JSXElementKinds:      map[string]bool{"jsx_element": true},
	JSXSelfClosingKinds:  map[string]bool{"jsx_self_closing_element": true},
	JSXNameField:         "name",
}

var tsSpec = func() LanguageSpec {
	s := jsSpec
	s.Language = types.LangTypeScript
	s.DefKinds = map[string]types.SymbolKind{
		"function_declaration":           types.KindFunction,
		"generator_function_declaration": types.KindFunction,
		"method_definition":              types.KindMethod,
		"class_declaration":              types.KindClass,
		"interface_declaration":          types.KindInterface,
		"type_alias_declaration":         types.KindType,
		"enum_declaration":               types.KindEnum,
	}
	return s
}()

var pySpec = LanguageSpec{
	Language: types.LangPython,
	DefKinds: map[string]types.SymbolKind{
		"function_definition": types.KindFunction,
		"class_definition":    types.KindClass,
	},
	NameFields:  []string{"name"},
	CallKinds:   map[string]bool{"call": true},
	ImportKinds: map[string]bool{"import_statement": true, "import_from_statement": true},
	ControlFlowKinds: map[string]types.ControlFlowTag{
		"if_statement":    types.CFIf,
		"for_statement":   types.CFFor,
		"while_statement": types.CFWhile,
		"try_statement":   types.CFTry,
		"match_statement": types.CFMatch,
		"await":           types.CFAwait,
	},
	StateKinds: map[string]bool{"assignment": true},
}

var rustSpec = LanguageSpec{
	Language: types.LangRust,
	DefKinds: map[string]types.SymbolKind{
		"function_item": types.KindFunction,
		"struct_item":   types.KindStruct,
		"trait_item":    types.KindTrait,
		"enum_item":     types.KindEnum,
		"impl_item":     types.KindType,
	},
	NameFields:  []string{"name"},
	CallKinds:   map[string]bool{"call_expression": true, "macro_invocation": true},
	ImportKinds: map[string]bool{"use_declaration": true},
	ControlFlowKinds: map[string]types.ControlFlowTag{
		"if_expression":    types.CFIf,
		"for_expression":   types.CFFor,
		"while_expression": types.CFWhile,
		"match_expression": types.CFMatch,
		"try_expression":   types.CFTry,
		"await_expression": types.CFAwait,
	},
	StateKinds: map[string]bool{"let_declaration": true},
}

var csharpSpec = LanguageSpec{
	Language: types.LangCSharp,
	DefKinds: map[string]types.SymbolKind{
		"method_declaration":    types.KindMethod,
		"class_declaration":     types.KindClass,
		"interface_declaration": types.KindInterface,
		"struct_declaration":    types.KindStruct,
		"enum_declaration":      types.KindEnum,
	},
	NameFields:            []string{"name"},
	CallKinds:             map[string]bool{"invocation_expression": true, "object_creation_expression": true},
	ImportKinds:           map[string]bool{"using_directive": true},
	VisibilityFromKeyword: true,
	ControlFlowKinds: map[string]types.ControlFlowTag{
		"if_statement":     types.CFIf,
		"for_statement":    types.CFFor,
		"while_statement":  types.CFWhile,
		"switch_statement": types.CFMatch,
		"try_statement":    types.CFTry,
		"await_expression": types.CFAwait,
	},
	StateKinds: map[string]bool{"variable_declaration": true, "field_declaration": true},
}

var cppSpec = LanguageSpec{
	Language: types.LangCPP,
	DefKinds: map[string]types.SymbolKind{
		"function_definition": types.KindFunction,
		"class_specifier":     types.KindClass,
		"struct_specifier":    types.KindStruct,
	},
	NameFields:  []string{"declarator", "name"},
	CallKinds:   map[string]bool{"call_expression": true},
	ImportKinds: map[string]bool{"preproc_include": true},
	ControlFlowKinds: map[string]types.ControlFlowTag{
		"if_statement":     types.CFIf,
		"for_statement":    types.CFFor,
		"while_statement":  types.CFWhile,
		"switch_statement": types.CFMatch,
		"try_statement":    types.CFTry,
	},
	StateKinds: map[string]bool{"declaration": true},
}

var javaSpec = LanguageSpec{
	Language: types.LangJava,
	DefKinds: map[string]types.SymbolKind{
		"method_declaration":    types.KindMethod,
		"class_declaration":     types.KindClass,
		"interface_declaration": types.KindInterface,
		"enum_declaration":      types.KindEnum,
	},
	NameFields:            []string{"name"},
	CallKinds:             map[string]bool{"method_invocation": true, "object_creation_expression": true},
	ImportKinds:           map[string]bool{"import_declaration": true},
	VisibilityFromKeyword: true,
	ControlFlowKinds: map[string]types.ControlFlowTag{
		"if_statement":      types.CFIf,
		"for_statement":     types.CFFor,
		"while_statement":   types.CFWhile,
		"switch_expression": types.CFMatch,
		"try_statement":     types.CFTry,
	},
	StateKinds: map[string]bool{"local_variable_declaration": true, "field_declaration": true},
}

var phpSpec = LanguageSpec{
	Language: types.LangPHP,
	DefKinds: map[string]types.SymbolKind{
		"function_definition": types.KindFunction,
		"method_declaration":  types.KindMethod,
		"class_declaration":   types.KindClass,
		"interface_declaration": types.KindInterface,
	},
	NameFields:  []string{"name"},
	CallKinds:   map[string]bool{"function_call_expression": true, "member_call_expression": true},
	ImportKinds: map[string]bool{"namespace_use_declaration": true},
	ControlFlowKinds: map[string]types.ControlFlowTag{
		"if_statement":      types.CFIf,
		"foreach_statement":  types.CFFor,
		"for_statement":      types.CFFor,
		"while_statement":    types.CFWhile,
		"switch_statement":   types.CFMatch,
		"try_statement":      types.CFTry,
	},
	StateKinds: map[string]bool{"assignment_expression": true},
}

// Specs is the registry of every supported language's table. Languages not
// present here (zig, shell) use the generic fallback detector, per spec
// §9's guidance to leave under-specified languages with an empty rule set
// rather than guess patterns — tree-sitter-zig's node-kind vocabulary
// wasn't available in the retrieval pack to ground against.
var Specs = map[types.Language]LanguageSpec{
	types.LangGo:         goSpec,
	types.LangJavaScript: jsSpec,
	types.LangTypeScript: tsSpec,
	types.LangPython:     pySpec,
	types.LangRust:       rustSpec,
	types.LangCSharp:     csharpSpec,
	types.LangCPP:        cppSpec,
	types.LangJava:       javaSpec,
	types.LangPHP:        phpSpec,
}
