package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/semfora/internal/types"
)

func summaryWithCalls(symbol string, names ...string) *types.SemanticSummary {
	calls := make([]types.Call, len(names))
	for i, n := range names {
		calls[i] = types.Call{Name: n}
	}
	return &types.SemanticSummary{
		Symbol:      symbol,
		SymbolKind:  types.KindFunction,
		Calls:       calls,
		ControlFlow: []types.ControlFlowTag{types.CFIf, types.CFFor},
		Arguments:   []types.Parameter{{Name: "a"}, {Name: "b"}},
	}
}

func TestClassifyBoilerplateEventHandler(t *testing.T) {
	assert.Equal(t, "event_handler", classifyBoilerplate("handleClick", []string{"setstate"}, 1))
	assert.Equal(t, "", classifyBoilerplate("handleClick", []string{"a", "b", "c"}, 1))
}

func TestClassifyBoilerplateQueryWrapper(t *testing.T) {
	assert.Equal(t, "query_wrapper", classifyBoilerplate("fetchUser", []string{"usequery"}, 1))
}

func TestClassifyBoilerplateTrivialBuilder(t *testing.T) {
	assert.Equal(t, "trivial_builder", classifyBoilerplate("newWidget", nil, 0))
}

func TestBusinessCallsFiltersUtility(t *testing.T) {
	calls := []types.Call{{Name: "log"}, {Name: "fetchUser"}, {Name: "FetchUser"}}
	assert.Equal(t, []string{"fetchuser"}, businessCalls(calls))
}

func TestComputeIsDeterministic(t *testing.T) {
	s := summaryWithCalls("doThing", "fetchUser", "saveRecord")
	a := Compute(s)
	b := Compute(s)
	require.Equal(t, a.CallSetHash, b.CallSetHash)
	require.Equal(t, a.ControlFlowHash, b.ControlFlowHash)
	assert.Equal(t, []string{"do", "thing"}, a.NameTokens)
	assert.Equal(t, 2, a.ParamCount)
}

func TestComputeCallSetHashOrderIndependent(t *testing.T) {
	a := Compute(summaryWithCalls("f1", "fetchUser", "saveRecord"))
	b := Compute(summaryWithCalls("f2", "saveRecord", "fetchUser"))
	assert.Equal(t, a.CallSetHash, b.CallSetHash)
}

func TestClusterAllGroupsSimilarFunctions(t *testing.T) {
	sigA := Signature{
		SymbolID: 1, NameTokens: []string{"fetch", "user"},
		Business: []string{"fetchuser", "saverecord"}, ParamCount: 2,
		ControlFlow: []string{"if", "for"}, StateMut: []string{"x"}, LineCount: 10,
	}
	sigB := Signature{
		SymbolID: 2, NameTokens: []string{"fetch", "user", "v2"},
		Business: []string{"fetchuser", "saverecord"}, ParamCount: 2,
		ControlFlow: []string{"if", "for"}, StateMut: []string{"x"}, LineCount: 20,
	}
	sigC := Signature{
		SymbolID: 3, NameTokens: []string{"delete", "session"},
		Business: []string{"purgecache", "revoketoken"}, ParamCount: 1,
		ControlFlow: []string{"try"}, StateMut: nil, LineCount: 5,
	}

	clusters := ClusterAll([]Signature{sigA, sigB, sigC}, 0.8)
	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0].Members, 2)
	assert.Equal(t, uint64(2), clusters[0].Canonical.SymbolID)
}

func TestClusterAllRejectsBeyondCoarseFilter(t *testing.T) {
	sigA := Signature{SymbolID: 1, ParamCount: 0, Business: []string{"a"}, CallSetHash: 0}
	sigB := Signature{SymbolID: 2, ParamCount: 5, Business: []string{"a", "b", "c", "d", "e"}, CallSetHash: 1}

	clusters := ClusterAll([]Signature{sigA, sigB}, 0.5)
	assert.Empty(t, clusters)
}

func TestClusterAllAllowsSameBoilerplateClass(t *testing.T) {
	sigA := Signature{SymbolID: 1, Boilerplate: "event_handler", Business: []string{"a"}, ParamCount: 1}
	sigB := Signature{SymbolID: 2, Boilerplate: "event_handler", Business: []string{"a"}, ParamCount: 1}

	clusters := ClusterAll([]Signature{sigA, sigB}, 0.1)
	require.Len(t, clusters, 1)
	assert.Equal(t, "event_handler", clusters[0].Boilerplate)
}

func TestClusterAllExcludesCrossCategoryBoilerplate(t *testing.T) {
	sigA := Signature{SymbolID: 1, Boilerplate: "event_handler", Business: []string{"a"}, ParamCount: 1}
	sigB := Signature{SymbolID: 2, Boilerplate: "trivial_builder", Business: []string{"a"}, ParamCount: 1}

	clusters := ClusterAll([]Signature{sigA, sigB}, 0.1)
	assert.Empty(t, clusters)
}

func TestClusterAllExcludesBoilerplateFromNonBoilerplate(t *testing.T) {
	sigA := Signature{SymbolID: 1, Boilerplate: "event_handler", Business: []string{"a"}, ParamCount: 1}
	sigB := Signature{SymbolID: 2, Boilerplate: "", Business: []string{"a"}, ParamCount: 1}

	clusters := ClusterAll([]Signature{sigA, sigB}, 0.1)
	assert.Empty(t, clusters)
}

func TestFromFunctionSignature(t *testing.T) {
	fs := types.FunctionSignature{
		SymbolID:      7,
		NameTokens:    []string{"a"},
		ControlFlow:   []types.ControlFlowTag{types.CFTry},
		StateMutations: []string{"y"},
		BusinessCalls: []string{"call"},
		ParamCount:    1,
	}
	sig := FromFunctionSignature(fs, 42)
	assert.Equal(t, uint64(7), sig.SymbolID)
	assert.Equal(t, []string{"try"}, sig.ControlFlow)
	assert.Equal(t, 42, sig.LineCount)
}
