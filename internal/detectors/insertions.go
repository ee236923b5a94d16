package detectors

import (
	"strconv"
	"strings"

	"github.com/standardbeagle/semfora/internal/astadapter"
	"github.com/standardbeagle/semfora/internal/types"
)

// minSameTagSiblings is the minimum same-tag sibling run that qualifies as
// a "route links" style insertion (spec §4.3: "≥ N same-tag siblings").
const minSameTagSiblings = 3

var networkCallPatterns = []string{"fetch", "invoke", "http."}
var persistenceCallPatterns = []string{"db.", "write", "save"}

// insertionRule is a predicate plus templated string. Rules are evaluated
// in order and each fires at most once per symbol (spec §4.3): the rule
// set is closed so identical input always yields identical insertions.
type insertionRule func(ctx insertionContext) (string, bool)

type insertionContext struct {
	spec         LanguageSpec
	symbolNode   astadapter.Node
	src          []byte
	stateChanges []types.StateChange
	calls        []types.Call
}

var insertionRules = []insertionRule{
	ruleHeaderTag,
	ruleSameTagSiblings,
	ruleReactiveState,
	ruleNetworkCall,
	rulePersistenceCall,
}

// insertionsFor evaluates the closed rule set over a symbol, in order,
// firing each rule at most once.
func insertionsFor(spec LanguageSpec, symbolNode astadapter.Node, src []byte, stateChanges []types.StateChange, calls []types.Call) []string {
	ctx := insertionContext{spec: spec, symbolNode: symbolNode, src: src, stateChanges: stateChanges, calls: calls}
	var out []string
	for _, rule := range insertionRules {
		if s, ok := rule(ctx); ok {
			out = append(out, s)
		}
	}
	return out
}

func ruleHeaderTag(ctx insertionContext) (string, bool) {
	found := false
	walk(ctx.symbolNode, func(n astadapter.Node) bool {
		if found {
			return false
		}
		if ctx.spec.JSXElementKinds[n.Kind()] || ctx.spec.JSXSelfClosingKinds[n.Kind()] {
			if strings.EqualFold(jsxTagName(n, ctx.src, ctx.spec), "header") {
				found = true
				return false
			}
		}
		return true
	})
	if found {
		return "header container with nav", true
	}
	return "", false
}

func ruleSameTagSiblings(ctx insertionContext) (string, bool) {
	if len(ctx.spec.JSXElementKinds) == 0 && len(ctx.spec.JSXSelfClosingKinds) == 0 {
		return "", false
	}

	counts := map[string]int{}
	var scan func(n astadapter.Node)
	scan = func(n astadapter.Node) {
		if n.IsNil() {
			return
		}
		// Count same-tag children at this nesting level, then recurse.
		childCounts := map[string]int{}
		for i := 0; i < n.ChildCount(); i++ {
			child := n.Child(i)
			if ctx.spec.JSXElementKinds[child.Kind()] || ctx.spec.JSXSelfClosingKinds[child.Kind()] {
				tag := jsxTagName(child, ctx.src, ctx.spec)
				if tag != "" {
					childCounts[tag]++
				}
			}
			scan(child)
		}
		for tag, c := range childCounts {
			if c > counts[tag] {
				counts[tag] = c
			}
		}
	}
	scan(ctx.symbolNode)

	best, bestCount := "", 0
	for tag, c := range counts {
		if c > bestCount {
			best, bestCount = tag, c
		}
	}
	if bestCount >= minSameTagSiblings {
		return strconv.Itoa(bestCount) + " route " + pluralize(best), true
	}
	return "", false
}

// pluralize renders a JSX tag like "Link" into the lowercase plural noun
// used by the insertion template ("route links"). Matches spec's worked
// example literally: six <Link/> siblings -> "6 route links".
func pluralize(tag string) string {
	lower := strings.ToLower(tag)
	if strings.HasSuffix(lower, "s") {
		return lower
	}
	return lower + "s"
}

func ruleReactiveState(ctx insertionContext) (string, bool) {
	for _, sc := range ctx.stateChanges {
		if callee := firstIdentifierBefore(sc.Initializer); callee != "" && ctx.spec.ReactiveInitializers[callee] {
			return "local " + sc.Name + " state via " + callee, true
		}
	}
	return "", false
}

func ruleNetworkCall(ctx insertionContext) (string, bool) {
	for _, c := range ctx.calls {
		if matchesPrefixOrExact(c.Name, networkCallPatterns) {
			return "network call introduced", true
		}
	}
	return "", false
}

func rulePersistenceCall(ctx insertionContext) (string, bool) {
	for _, c := range ctx.calls {
		if matchesPrefixOrExact(c.Name, persistenceCallPatterns) {
			return "persistence operation introduced", true
		}
	}
	return "", false
}

func matchesPrefixOrExact(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if strings.HasSuffix(p, ".") {
			if strings.HasPrefix(lower, strings.ToLower(p)) {
				return true
			}
			continue
		}
		if lower == strings.ToLower(p) {
			return true
		}
	}
	return false
}

// jsxTagName resolves a JSX element's tag name.
func jsxTagName(n astadapter.Node, src []byte, spec LanguageSpec) string {
	nameNode := n.FieldChild(spec.JSXNameField)
	if !nameNode.IsNil() {
		return astadapter.Text(src, nameNode)
	}
	// jsx_element wraps an opening_element carrying the name; jsx_self_closing
	// names it directly via a child.
	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() == "jsx_opening_element" {
			return jsxTagName(child, src, spec)
		}
		if child.Kind() == "identifier" || child.Kind() == "jsx_identifier" {
			return astadapter.Text(src, child)
		}
	}
	return ""
}
