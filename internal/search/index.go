package search

import (
	"math"
	"sync"

	"github.com/standardbeagle/semfora/internal/types"
)

// DefaultK1 and DefaultB mirror spec §4.10's BM25 defaults
// (config.DefaultBM25K1 / config.DefaultBM25B carry the same values).
const (
	DefaultK1 = 1.2
	DefaultB  = 0.75
)

type docEntry struct {
	doc      Document
	termFreq map[string]int
	length   int
}

type posting struct {
	symbolID uint64
	termFreq int
}

// Index is a BM25-ranked inverted index over Documents. Safe for concurrent
// use: indexing runs append postings under a write lock, searches take a
// read lock (spec §5 concurrency model extends to the search index).
type Index struct {
	mu       sync.RWMutex
	k1, b    float64
	docs     map[uint64]*docEntry
	postings map[string][]posting
	totalLen int
}

// New returns an empty index using the given BM25 parameters. Pass
// config.Search.BM25K1/BM25B (zero values fall back to the spec defaults).
func New(k1, b float64) *Index {
	if k1 == 0 {
		k1 = DefaultK1
	}
	if b == 0 {
		b = DefaultB
	}
	return &Index{
		k1:       k1,
		b:        b,
		docs:     make(map[uint64]*docEntry),
		postings: make(map[string][]posting),
	}
}

// Add indexes one document, appending its postings (spec §4.10:
// "regeneration is append-only within a run"). Re-adding the same symbol id
// replaces its prior postings.
func (idx *Index) Add(doc Document) {
	tokens := Tokens(doc)
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if old, ok := idx.docs[doc.SymbolID]; ok {
		idx.removeLocked(doc.SymbolID, old)
	}

	entry := &docEntry{doc: doc, termFreq: tf, length: len(tokens)}
	idx.docs[doc.SymbolID] = entry
	idx.totalLen += entry.length
	for term, freq := range tf {
		idx.postings[term] = append(idx.postings[term], posting{symbolID: doc.SymbolID, termFreq: freq})
	}
}

func (idx *Index) removeLocked(symbolID uint64, old *docEntry) {
	idx.totalLen -= old.length
	for term := range old.termFreq {
		list := idx.postings[term]
		for i, p := range list {
			if p.symbolID == symbolID {
				idx.postings[term] = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(idx.postings[term]) == 0 {
			delete(idx.postings, term)
		}
	}
	delete(idx.docs, symbolID)
}

// Rebuild discards all postings and reindexes docs from scratch (spec
// §4.10: "full-rewrite on shard rebuild").
func (idx *Index) Rebuild(docs []Document) {
	idx.mu.Lock()
	idx.docs = make(map[uint64]*docEntry, len(docs))
	idx.postings = make(map[string][]posting)
	idx.totalLen = 0
	idx.mu.Unlock()

	for _, d := range docs {
		idx.Add(d)
	}
}

// Filter restricts ranked results to matching module/kind/risk. Empty
// fields are not filtered on.
type Filter struct {
	Module string
	Kind   types.SymbolKind
	Risk   types.RiskLevel
}

func (f Filter) matches(d Document) bool {
	if f.Module != "" && f.Module != d.Module {
		return false
	}
	if f.Kind != "" && f.Kind != d.Kind {
		return false
	}
	if f.Risk != "" && f.Risk != d.Risk {
		return false
	}
	return true
}

// Result is one ranked search hit.
type Result struct {
	Document Document
	Score    float64
}

// Search tokenizes query the same way documents are tokenized, scores every
// matching document with BM25, and returns results ordered by descending
// score (spec §4.10: "rank-ordered lookup with optional filters").
func (idx *Index) Search(query string, filter Filter) []Result {
	qDoc := Document{Symbol: query}
	queryTerms := dedupe(Tokens(qDoc))

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	n := len(idx.docs)
	if n == 0 || len(queryTerms) == 0 {
		return nil
	}
	avgLen := float64(idx.totalLen) / float64(n)

	scores := make(map[uint64]float64)
	for _, term := range queryTerms {
		list := idx.postings[term]
		if len(list) == 0 {
			continue
		}
		idf := idfScore(n, len(list))
		for _, p := range list {
			entry := idx.docs[p.symbolID]
			if entry == nil || !filter.matches(entry.doc) {
				continue
			}
			norm := 1 - idx.b + idx.b*(float64(entry.length)/avgLen)
			tf := float64(p.termFreq)
			scores[p.symbolID] += idf * (tf * (idx.k1 + 1)) / (tf + idx.k1*norm)
		}
	}

	results := make([]Result, 0, len(scores))
	for id, score := range scores {
		results = append(results, Result{Document: idx.docs[id].doc, Score: score})
	}
	sortResults(results)
	return results
}

func idfScore(n, df int) float64 {
	return math.Log(1 + (float64(n-df)+0.5)/(float64(df)+0.5))
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}

// sortResults orders by descending score, breaking ties by symbol id for
// determinism.
func sortResults(results []Result) {
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && less(results[j], results[j-1]); j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
}

func less(a, b Result) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Document.SymbolID < b.Document.SymbolID
}
