package toon

import (
	"strconv"
	"strings"

	"github.com/standardbeagle/semfora/internal/encoding"
	"github.com/standardbeagle/semfora/internal/types"
)

// EncodeSummary renders one SemanticSummary in canonical field order (spec
// §3, §6). The order below is fixed and never varies by content: omitted
// optional sections (empty lists, empty strings) are simply not written,
// rather than reordered.
func EncodeSummary(s *types.SemanticSummary) string {
	w := NewWriter()

	w.Scalar("file", s.File)
	w.Scalar("language", string(s.Language))

	if !s.HasSymbol() {
		w.RawBlock("raw_fallback", s.RawFallback)
		w.Scalar("behavioral_risk", string(s.BehavioralRisk))
		return w.String()
	}

	w.Scalar("symbol", s.Symbol)
	w.Scalar("symbol_kind", string(s.SymbolKind))
	w.Scalar("visibility", string(s.Visibility))
	w.Scalar("line_range", strconv.Itoa(s.LineRange.Start)+"-"+strconv.Itoa(s.LineRange.End))
	w.Scalar("symbol_id", encoding.Base63Encode(s.SymbolID))

	if len(s.Arguments) > 0 {
		rows := make([][]string, len(s.Arguments))
		for i, p := range s.Arguments {
			rows[i] = []string{p.Name, p.Type, p.Default}
		}
		w.RecordList("arguments", []string{"name", "type", "default"}, rows)
	}

	if s.ReturnType != "" {
		w.Scalar("return_type", s.ReturnType)
	}

	if len(s.AddedDependencies) > 0 {
		rows := make([][]string, len(s.AddedDependencies))
		for i, d := range s.AddedDependencies {
			rows[i] = []string{d.Name, string(d.Source)}
		}
		w.RecordList("added_dependencies", []string{"name", "source"}, rows)
	}

	if len(s.StateChanges) > 0 {
		rows := make([][]string, len(s.StateChanges))
		for i, sc := range s.StateChanges {
			rows[i] = []string{sc.Name, sc.Type, sc.Initializer}
		}
		w.RecordList("state_changes", []string{"name", "type", "initializer"}, rows)
	}

	if len(s.ControlFlow) > 0 {
		values := make([]string, len(s.ControlFlow))
		for i, cf := range s.ControlFlow {
			values[i] = string(cf)
		}
		w.ScalarList("control_flow", values)
	}

	if len(s.Calls) > 0 {
		rows := make([][]string, len(s.Calls))
		for i, c := range s.Calls {
			rows[i] = []string{c.Name, strconv.FormatBool(c.Await), strconv.FormatBool(c.Try)}
		}
		w.RecordList("calls", []string{"name", "await", "try"}, rows)
	}

	if len(s.Insertions) > 0 {
		w.ScalarList("insertions", s.Insertions)
	}

	w.ScalarBool("public_surface_changed", s.PublicSurfaceChanged)
	w.Scalar("behavioral_risk", string(s.BehavioralRisk))

	return w.String()
}

// EncodeModule renders a module's aggregate record.
func EncodeModule(m *types.Module) string {
	w := NewWriter()
	w.Scalar("name", m.Name)
	w.ScalarInt("size_loc", m.SizeLOC)
	if len(m.Files) > 0 {
		w.ScalarList("files", m.Files)
	}
	if len(m.Symbols) > 0 {
		ids := make([]string, len(m.Symbols))
		for i, id := range m.Symbols {
			ids[i] = encoding.Base63Encode(id)
		}
		w.ScalarList("symbols", ids)
	}
	return w.String()
}

// EncodeRepoOverview renders the top-level repo_overview.toon document.
func EncodeRepoOverview(o *types.RepoOverview) string {
	w := NewWriter()
	w.ScalarInt("total_files", o.TotalFiles)
	w.ScalarInt("total_symbols", o.TotalSymbols)

	if len(o.LanguageMix) > 0 {
		langs := make([]string, 0, len(o.LanguageMix))
		for l := range o.LanguageMix {
			langs = append(langs, string(l))
		}
		sortStrings(langs)
		rows := make([][]string, len(langs))
		for i, l := range langs {
			rows[i] = []string{l, strconv.Itoa(o.LanguageMix[types.Language(l)])}
		}
		w.RecordList("language_mix", []string{"language", "file_count"}, rows)
	}

	if len(o.Modules) > 0 {
		rows := make([][]string, len(o.Modules))
		for i, m := range o.Modules {
			rows[i] = []string{m.Name, strconv.Itoa(m.FileCount), strconv.Itoa(m.SymbolCount), strconv.Itoa(m.SizeLOC)}
		}
		w.RecordList("modules", []string{"name", "file_count", "symbol_count", "size_loc"}, rows)
	}

	if len(o.EntryPoints) > 0 {
		w.ScalarList("entry_points", o.EntryPoints)
	}

	if len(o.Frameworks) > 0 {
		rows := make([][]string, len(o.Frameworks))
		for i, f := range o.Frameworks {
			rows[i] = []string{f.Name, strconv.FormatFloat(f.Confidence, 'f', 2, 64)}
		}
		w.RecordList("frameworks", []string{"name", "confidence"}, rows)
	}

	if len(o.TopDependencies) > 0 {
		rows := make([][]string, len(o.TopDependencies))
		for i, d := range o.TopDependencies {
			rows[i] = []string{d.Name, string(d.Source)}
		}
		w.RecordList("top_dependencies", []string{"name", "source"}, rows)
	}

	if len(o.SkippedFiles) > 0 {
		rows := make([][]string, len(o.SkippedFiles))
		for i, f := range o.SkippedFiles {
			rows[i] = []string{f.Path, f.Reason}
		}
		w.RecordList("skipped_files", []string{"path", "reason"}, rows)
	}

	return w.String()
}

// EncodeGraphEdges renders one call/import/module graph file as a flat
// record list, one row per edge, in the order supplied by the caller (the
// shard writer is responsible for a stable sort before calling this).
func EncodeGraphEdges(edges []types.GraphEdge) string {
	w := NewWriter()
	rows := make([][]string, len(edges))
	for i, e := range edges {
		rows[i] = []string{e.From, e.To, e.Kind}
	}
	w.RecordList("edges", []string{"from", "to", "kind"}, rows)
	return w.String()
}

// sortStrings is a tiny insertion sort to avoid pulling in sort for a
// handful of language-mix keys per repo.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && strings.Compare(s[j-1], s[j]) > 0; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
