package detectors

import (
	"github.com/standardbeagle/semfora/internal/astadapter"
	"github.com/standardbeagle/semfora/internal/hashid"
	"github.com/standardbeagle/semfora/internal/risk"
	"github.com/standardbeagle/semfora/internal/types"
)

// Detect runs the generic, table-driven extractor for file against tree,
// producing one SemanticSummary per definition found (spec §4.2).
//
// If no symbol is found but the file parsed successfully, a single
// file-level summary with Symbol == "" and RawFallback populated is
// returned, guaranteeing zero information loss (spec §4.2 failure policy).
func Detect(file string, lang types.Language, tree *astadapter.Tree) []types.SemanticSummary {
	spec, ok := Specs[lang]
	if !ok {
		return []types.SemanticSummary{fallbackSummary(file, lang, tree.Source)}
	}

	src := tree.Source
	deps := fileImports(tree.Root, src, spec)
	defNodes := findAll(tree.Root, defKindSet(spec))

	if len(defNodes) == 0 {
		return []types.SemanticSummary{fallbackSummary(file, lang, src)}
	}

	resolver := hashid.NewCollisionResolver()
	summaries := make([]types.SemanticSummary, 0, len(defNodes))

	for _, def := range defNodes {
		kind := spec.DefKinds[def.Kind()]
		name := nameOf(def, src, spec.NameFields)
		if name == "" {
			continue
		}

		lines := types.LineRange{Start: def.StartLine(), End: def.EndLine()}
		calls := callsIn(def, src, spec)
		stateChanges := stateChangesIn(def, src, spec)
		controlFlow := controlFlowIn(def, spec)
		usedDeps := dependenciesUsedIn(def, src, deps)
		insertions := insertionsFor(spec, def, src, stateChanges, calls)

		params := argumentsOf(def, src)

		fields := hashid.Fields{File: file, Name: name, Kind: kind, Parameters: params}
		symbolID := resolver.Resolve(fields, lines)

		summary := types.SemanticSummary{
			File:              file,
			Language:          lang,
			Symbol:            name,
			SymbolKind:        adjustKindForJSX(kind, def, spec),
			Visibility:        visibilityOf(spec, name, def, src),
			LineRange:         lines,
			SymbolID:          symbolID,
			Arguments:         params,
			ReturnType:        returnTypeOf(def, src),
			AddedDependencies: usedDeps,
			StateChanges:      stateChanges,
			ControlFlow:       controlFlow,
			Calls:             calls,
			Insertions:        insertions,
		}
		risk.Evaluate(&summary)

		summaries = append(summaries, summary)
	}

	if len(summaries) == 0 {
		return []types.SemanticSummary{fallbackSummary(file, lang, src)}
	}

	return summaries
}

func defKindSet(spec LanguageSpec) map[string]bool {
	out := make(map[string]bool, len(spec.DefKinds))
	for k := range spec.DefKinds {
		out[k] = true
	}
	return out
}

// adjustKindForJSX reclassifies a JS/TS function as a component when its
// body renders JSX, matching the worked spec example (AppLayout is
// `symbol_kind: component`, not `function`).
func adjustKindForJSX(kind types.SymbolKind, def astadapter.Node, spec LanguageSpec) types.SymbolKind {
	if kind != types.KindFunction || (len(spec.JSXElementKinds) == 0 && len(spec.JSXSelfClosingKinds) == 0) {
		return kind
	}
	isComponent := false
	walk(def, func(n astadapter.Node) bool {
		if isComponent {
			return false
		}
		if spec.JSXElementKinds[n.Kind()] || spec.JSXSelfClosingKinds[n.Kind()] {
			isComponent = true
			return false
		}
		return true
	})
	if isComponent {
		return types.KindComponent
	}
	return kind
}

// fallbackSummary builds the zero-information-loss file-level summary
// (spec §4.2, §7): a parse succeeded but no symbol could be identified.
func fallbackSummary(file string, lang types.Language, src []byte) types.SemanticSummary {
	s := types.SemanticSummary{
		File:        file,
		Language:    lang,
		RawFallback: string(src),
	}
	risk.Evaluate(&s)
	return s
}
