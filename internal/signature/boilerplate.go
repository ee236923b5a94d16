package signature

import (
	"strings"

	"github.com/standardbeagle/semfora/internal/types"
)

// utilityCalls are excluded from similarity input (spec §4.9: "a fixed set
// of common stdlib calls (logging, to_string-like conversions, common
// collection combinators)").
var utilityCalls = map[string]bool{
	"log": true, "println": true, "print": true, "printf": true,
	"tostring": true, "to_string": true, "string": true, "fmt.sprintf": true,
	"map": true, "filter": true, "reduce": true, "foreach": true, "for_each": true,
	"console.log": true, "console.error": true, "console.warn": true,
}

// businessCalls filters a raw call-name list down to the set relevant to
// duplicate comparison, dropping utility/logging/conversion noise.
func businessCalls(calls []types.Call) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range calls {
		lower := strings.ToLower(c.Name)
		if utilityCalls[lower] || seen[lower] {
			continue
		}
		seen[lower] = true
		out = append(out, lower)
	}
	return out
}

// boilerplateRule is a predicate over a computed signature.
type boilerplateRule struct {
	name  string
	match func(name string, calls []string, paramCount int) bool
}

// boilerplateRules is a per-language-agnostic catalog of expected-duplicate
// shapes (spec §4.9): React-Query-style wrappers, simple event handlers,
// and trivially small builders/impls. Classification keeps cross-class
// pairs out of clustering and tags same-class clusters via
// Cluster.Boilerplate; no output path filters those clusters out.
var boilerplateRules = []boilerplateRule{
	{
		name: "event_handler",
		match: func(name string, calls []string, paramCount int) bool {
			lower := strings.ToLower(name)
			return (strings.HasPrefix(lower, "handle") || strings.HasPrefix(lower, "on")) && len(calls) <= 2
		},
	},
	{
		name: "query_wrapper",
		match: func(name string, calls []string, paramCount int) bool {
			for _, c := range calls {
				if strings.HasPrefix(c, "usequery") || strings.HasPrefix(c, "usemutation") {
					return true
				}
			}
			return false
		},
	},
	{
		name: "trivial_builder",
		match: func(name string, calls []string, paramCount int) bool {
			lower := strings.ToLower(name)
			return strings.HasPrefix(lower, "new") && paramCount <= 1 && len(calls) == 0
		},
	},
}

// classifyBoilerplate returns the matching rule's name, or "" if none fires.
func classifyBoilerplate(name string, calls []string, paramCount int) string {
	for _, rule := range boilerplateRules {
		if rule.match(name, calls, paramCount) {
			return rule.name
		}
	}
	return ""
}
