// Package search maintains a BM25-ranked inverted index over symbol names,
// identifier tokens, and path segments (spec §4.10).
package search

import (
	"github.com/surgebase/porter2"

	"github.com/standardbeagle/semfora/internal/tokenize"
	"github.com/standardbeagle/semfora/internal/types"
)

// stemMinLength mirrors the teacher stemmer's default: short tokens (acronyms,
// "id", "api") stem poorly and are kept verbatim.
const stemMinLength = 4

// Document is one indexable unit: a symbol plus the text fields the index
// tokenizes and scores against.
type Document struct {
	SymbolID uint64
	Module   string
	Kind     types.SymbolKind
	Risk     types.RiskLevel
	Symbol   string
	File     string
}

// Tokens builds the stemmed token bag for a Document (spec §4.10: "tokenized
// symbol names ... identifier tokens ... file path segments").
func Tokens(d Document) []string {
	var tokens []string
	tokens = append(tokens, stemAll(tokenize.Identifier(d.Symbol))...)
	tokens = append(tokens, stemAll(tokenize.PathSegments(d.File))...)
	return tokens
}

func stemAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = stem(w)
	}
	return out
}

func stem(word string) string {
	if len(word) < stemMinLength {
		return word
	}
	return porter2.Stem(word)
}
