package detectors

import (
	"strings"

	"github.com/standardbeagle/semfora/internal/astadapter"
	"github.com/standardbeagle/semfora/internal/types"
)

// fileImports extracts module references with source classified into
// {external, local, relative} (spec §4.2 import detector). Names come from
// the import node's string literal/path; the spec-named symbol name (e.g.
// "useState") is resolved separately per-symbol in detect.go by matching
// imported bindings against identifiers used in the symbol's body.
func fileImports(root astadapter.Node, src []byte, spec LanguageSpec) []types.Dependency {
	nodes := findAll(root, spec.ImportKinds)
	var deps []types.Dependency
	seen := map[string]bool{}

	for _, n := range nodes {
		path, bindings := importPathAndBindings(n, src)
		if path == "" {
			continue
		}
		source := classifyImportSource(path)
		for _, name := range bindings {
			key := name + "|" + path
			if seen[key] {
				continue
			}
			seen[key] = true
			deps = append(deps, types.Dependency{Name: name, Source: source})
		}
	}
	return deps
}

// importPathAndBindings extracts the literal import path/source string and
// the local identifier bindings it introduces, in source order.
func importPathAndBindings(n astadapter.Node, src []byte) (string, []string) {
	var path string
	var bindings []string

	walk(n, func(c astadapter.Node) bool {
		switch c.Kind() {
		case "string", "interpreted_string_literal", "string_literal":
			if path == "" {
				path = strings.Trim(astadapter.Text(src, c), `"'`+"`")
			}
		case "identifier":
			text := astadapter.Text(src, c)
			if text != "" && text != path {
				bindings = append(bindings, text)
			}
		}
		return true
	})

	if len(bindings) == 0 && path != "" {
		// Go/Rust-style bare imports: the bound name is the last path
		// segment (package/module name).
		bindings = []string{lastSegment(path)}
	}

	return path, bindings
}

func lastSegment(path string) string {
	path = strings.Trim(path, "/")
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

func classifyImportSource(path string) types.DependencySource {
	if strings.HasPrefix(path, ".") {
		return types.SourceRelative
	}
	if strings.Contains(path, "://") {
		return types.SourceExternal
	}
	// An absolute path (leading slash) is treated as local; every other
	// non-relative path, whether a bare package name or a module path, is
	// treated as external.
	if strings.HasPrefix(path, "/") {
		return types.SourceLocal
	}
	return types.SourceExternal
}

// dependenciesUsedIn filters fileDeps to those referenced by identifier
// text somewhere inside symbolNode — this is what attaches import usage
// to the specific symbol that exercises it, matching spec's worked
// example where AppLayout's added_dependencies lists exactly useState and
// Link (the imports its body actually uses).
func dependenciesUsedIn(symbolNode astadapter.Node, src []byte, fileDeps []types.Dependency) []types.Dependency {
	if len(fileDeps) == 0 {
		return nil
	}
	used := map[string]bool{}
	walk(symbolNode, func(n astadapter.Node) bool {
		switch n.Kind() {
		case "identifier", "type_identifier", "jsx_identifier", "property_identifier":
			used[astadapter.Text(src, n)] = true
		}
		return true
	})

	var out []types.Dependency
	for _, d := range fileDeps {
		if used[d.Name] {
			out = append(out, d)
		}
	}
	return out
}
