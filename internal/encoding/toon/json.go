package toon

import (
	"encoding/json"

	"github.com/standardbeagle/semfora/internal/encoding"
	"github.com/standardbeagle/semfora/internal/types"
)

// jsonSummary mirrors SemanticSummary with the same canonical field order
// EncodeSummary uses. encoding/json marshals struct fields in declaration
// order, so this struct's field order IS the determinism guarantee (spec
// §6: "the JSON mirror carries the same fields in the same order").
type jsonSummary struct {
	File                 string              `json:"file"`
	Language             types.Language      `json:"language"`
	Symbol               string              `json:"symbol,omitempty"`
	SymbolKind           types.SymbolKind    `json:"symbol_kind,omitempty"`
	Visibility           types.Visibility    `json:"visibility,omitempty"`
	LineRange            [2]int              `json:"line_range,omitempty"`
	SymbolID             string              `json:"symbol_id,omitempty"`
	Arguments            []types.Parameter   `json:"arguments,omitempty"`
	ReturnType           string              `json:"return_type,omitempty"`
	AddedDependencies    []types.Dependency  `json:"added_dependencies,omitempty"`
	StateChanges         []types.StateChange `json:"state_changes,omitempty"`
	ControlFlow          []types.ControlFlowTag `json:"control_flow,omitempty"`
	Calls                []types.Call        `json:"calls,omitempty"`
	Insertions           []string            `json:"insertions,omitempty"`
	PublicSurfaceChanged bool                `json:"public_surface_changed,omitempty"`
	BehavioralRisk       types.RiskLevel     `json:"behavioral_risk"`
	RawFallback          string              `json:"raw_fallback,omitempty"`
}

// EncodeSummaryJSON renders the JSON mirror of a SemanticSummary (spec §6).
func EncodeSummaryJSON(s *types.SemanticSummary) ([]byte, error) {
	js := jsonSummary{
		File:                 s.File,
		Language:             s.Language,
		Symbol:               s.Symbol,
		SymbolKind:           s.SymbolKind,
		Visibility:           s.Visibility,
		LineRange:            [2]int{s.LineRange.Start, s.LineRange.End},
		Arguments:            s.Arguments,
		ReturnType:           s.ReturnType,
		AddedDependencies:    s.AddedDependencies,
		StateChanges:         s.StateChanges,
		ControlFlow:          s.ControlFlow,
		Calls:                s.Calls,
		Insertions:           s.Insertions,
		PublicSurfaceChanged: s.PublicSurfaceChanged,
		BehavioralRisk:       s.BehavioralRisk,
		RawFallback:          s.RawFallback,
	}
	if s.HasSymbol() {
		js.SymbolID = encoding.Base63Encode(s.SymbolID)
	}
	return json.Marshal(js)
}

// EncodeIndexEntryJSON renders one symbol_index.jsonl line.
func EncodeIndexEntryJSON(e *types.SymbolIndexEntry) ([]byte, error) {
	return json.Marshal(e)
}
