// Package signature computes each function-kind symbol's structural
// fingerprint and clusters likely duplicates from it (spec §4.9).
package signature

import (
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/semfora/internal/tokenize"
	"github.com/standardbeagle/semfora/internal/types"
)

// Compute builds a FunctionSignature for one function/method/component
// summary. Callers should skip non-function kinds (spec §4.9: "for every
// function-kind summary").
func Compute(s *types.SemanticSummary) types.FunctionSignature {
	business := businessCalls(s.Calls)

	controlFlowSeq := make([]string, len(s.ControlFlow))
	for i, cf := range s.ControlFlow {
		controlFlowSeq[i] = string(cf)
	}

	stateNames := make([]string, len(s.StateChanges))
	for i, sc := range s.StateChanges {
		stateNames[i] = strings.ToLower(sc.Name)
	}

	return types.FunctionSignature{
		SymbolID:        s.SymbolID,
		NameTokens:      tokenize.Identifier(s.Symbol),
		CallSetHash:     setHash(business),
		ControlFlowHash: xxhash.Sum64String(strings.Join(controlFlowSeq, "\x1f")),
		ControlFlow:     s.ControlFlow,
		StateMutHash:    setHash(stateNames),
		StateMutations:  stateNames,
		BusinessCalls:   business,
		ParamCount:      len(s.Arguments),
		Boilerplate:     classifyBoilerplate(s.Symbol, business, len(s.Arguments)),
	}
}

// setHash hashes an unordered set deterministically by sorting before
// joining, so two signatures with the same call set in different source
// order still hash equal (spec §3 FunctionSignature.CallSetHash).
func setHash(items []string) uint64 {
	sorted := append([]string(nil), items...)
	sortStrings(sorted)
	return xxhash.Sum64String(strings.Join(sorted, "\x1f"))
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
