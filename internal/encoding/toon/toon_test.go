package toon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/semfora/internal/types"
)

func TestEncodeValueQuotesStructural(t *testing.T) {
	assert.Equal(t, "plain", EncodeValue("plain"))
	assert.Equal(t, `""`, EncodeValue(""))
	assert.Equal(t, `"a,b"`, EncodeValue("a,b"))
	assert.Equal(t, `"a: b"`, EncodeValue("a: b"))
}

func TestWriterScalarAndList(t *testing.T) {
	w := NewWriter()
	w.Scalar("file", "app.tsx")
	w.ScalarList("control_flow", []string{"if", "for"})
	got := w.String()
	assert.Equal(t, "file: app.tsx\ncontrol_flow[2]: if,for\n", got)
}

func TestWriterRecordList(t *testing.T) {
	w := NewWriter()
	w.RecordList("arguments", []string{"name", "type", "default"}, [][]string{
		{"id", "string", ""},
		{"onClose", "func()", ""},
	})
	got := w.String()
	assert.Contains(t, got, "arguments[2]{name,type,default}:\n")
	assert.Contains(t, got, `  id,string,""`)
}

func TestEncodeSummaryDeterministic(t *testing.T) {
	s := &types.SemanticSummary{
		File:       "src/AppLayout.tsx",
		Language:   types.LangTypeScript,
		Symbol:     "AppLayout",
		SymbolKind: types.KindComponent,
		Visibility: types.VisPublic,
		LineRange:  types.LineRange{Start: 10, End: 40},
		SymbolID:   12345,
		AddedDependencies: []types.Dependency{
			{Name: "useState", Source: types.SourceExternal},
			{Name: "Link", Source: types.SourceExternal},
		},
		Insertions:     []string{"6 route links"},
		BehavioralRisk: types.RiskMedium,
	}
	a := EncodeSummary(s)
	b := EncodeSummary(s)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "symbol: AppLayout")
	assert.Contains(t, a, "added_dependencies[2]{name,source}:")
	assert.Contains(t, a, "insertions[1]: 6 route links")
}

func TestEncodeSummaryFallback(t *testing.T) {
	s := &types.SemanticSummary{
		File:           "scripts/build.sh",
		Language:       types.LangShell,
		RawFallback:    "echo hi\n",
		BehavioralRisk: types.RiskLow,
	}
	out := EncodeSummary(s)
	assert.Contains(t, out, "raw_fallback:\n")
	assert.Contains(t, out, "echo hi")
	assert.Contains(t, out, "behavioral_risk: low")
}

func TestEncodeSummaryJSONRoundTripsFields(t *testing.T) {
	s := &types.SemanticSummary{
		File:       "a.go",
		Language:   types.LangGo,
		Symbol:     "DoThing",
		SymbolKind: types.KindFunction,
		SymbolID:   999,
	}
	raw, err := EncodeSummaryJSON(s)
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"symbol":"DoThing"`)
}
