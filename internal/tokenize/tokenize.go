// Package tokenize splits identifiers into lowercase word tokens, shared
// by the duplicate-signature engine's name-token Jaccard score and the
// search index's symbol-name tokenization (spec §4.9, §4.10).
package tokenize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// Identifier splits name on snake_case and kebab-case separators and on
// camelCase/PascalCase word boundaries, then Unicode-case-folds each
// token so comparisons aren't ASCII-only (spec §4.10: "tokenized symbol
// names (camel/snake/kebab splits)").
func Identifier(name string) []string {
	if name == "" {
		return nil
	}

	separated := strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || r == '.' {
			return ' '
		}
		return r
	}, name)

	var words []string
	var current []rune
	runes := []rune(separated)
	for i, r := range runes {
		if r == ' ' {
			if len(current) > 0 {
				words = append(words, string(current))
				current = nil
			}
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (nextLower && len(current) > 0 && allUpper(current)) {
				if len(current) > 0 {
					words = append(words, string(current))
					current = nil
				}
			}
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		words = append(words, string(current))
	}

	out := make([]string, 0, len(words))
	for _, w := range words {
		folded := foldCaser.String(w)
		if folded != "" {
			out = append(out, folded)
		}
	}
	return out
}

func allUpper(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// PathSegments splits a file path into its directory/file components for
// the search index's path tokenization.
func PathSegments(path string) []string {
	var out []string
	for _, seg := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		out = append(out, foldCaser.String(seg))
	}
	return out
}
