package signature

import (
	"math/bits"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/standardbeagle/semfora/internal/types"
)

// Coarse-filter bounds (spec §4.9 phase 1). MaxParamDelta is exported so an
// alternate candidate source (e.g. the sqlite backend's indexed query) can
// apply the identical param_count bound before ClusterIndexed re-checks the
// remaining bounds in Go.
const (
	MaxParamDelta       = 2
	maxBusinessCallDiff = 3
	maxHammingBits      = 12
)

// DefaultThreshold is the default clustering similarity cutoff (spec §4.9,
// config.DefaultDuplicateThreshold mirrors this).
const DefaultThreshold = 0.90

// Weighted fine-scoring coefficients (spec §4.9 phase 2).
const (
	weightCallSet     = 0.45
	weightNameTokens  = 0.20
	weightControlFlow = 0.20
	weightStateMut    = 0.15
)

// Pair is one surviving candidate pair with its fine-scoring similarity.
type Pair struct {
	A, B  Signature
	Score float64
}

// Signature bundles a FunctionSignature with the symbol's line count,
// which the canonical-member choice uses (the longest member wins,
// spec §4.9).
type Signature struct {
	SymbolID    uint64
	NameTokens  []string
	CallSetHash uint64
	ControlFlow []string
	StateMut    []string
	Business    []string
	ParamCount  int
	Boilerplate string
	LineCount   int // End - Start + 1; the member with the largest value is canonical
}

// FromFunctionSignature adapts a stored types.FunctionSignature plus its
// symbol's line span into the Signature shape the clustering engine
// operates on.
func FromFunctionSignature(fs types.FunctionSignature, lineCount int) Signature {
	cf := make([]string, len(fs.ControlFlow))
	for i, tag := range fs.ControlFlow {
		cf[i] = string(tag)
	}
	return Signature{
		SymbolID:    fs.SymbolID,
		NameTokens:  fs.NameTokens,
		CallSetHash: fs.CallSetHash,
		ControlFlow: cf,
		StateMut:    fs.StateMutations,
		Business:    fs.BusinessCalls,
		ParamCount:  fs.ParamCount,
		Boilerplate: fs.Boilerplate,
		LineCount:   lineCount,
	}
}

// coarsePass rejects candidate pairs per spec §4.9 phase 1 in O(n^2) worst
// case but with a cheap early-out per pair, keeping the target latency
// budget (a few hundred ns/symbol) achievable for typical repo sizes.
func coarsePass(sigs []Signature) []Pair {
	var survivors []Pair
	for i := 0; i < len(sigs); i++ {
		a := sigs[i]
		for j := i + 1; j < len(sigs); j++ {
			b := sigs[j]
			// Cross-category boilerplate never clusters (spec §4.9); two
			// signatures tagged with the same boilerplate class are still
			// allowed through to fine scoring.
			if a.Boilerplate != b.Boilerplate {
				continue
			}
			if abs(a.ParamCount-b.ParamCount) > MaxParamDelta {
				continue
			}
			if abs(len(a.Business)-len(b.Business)) > maxBusinessCallDiff {
				continue
			}
			if bits.OnesCount64(a.CallSetHash^b.CallSetHash) > maxHammingBits {
				continue
			}
			survivors = append(survivors, Pair{A: a, B: b})
		}
	}
	return survivors
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// score computes the weighted fine-scoring similarity (spec §4.9 phase 2).
func score(a, b Signature) float64 {
	callJ := jaccard(a.Business, b.Business)
	nameJ := jaccard(a.NameTokens, b.NameTokens)
	cfSim := controlFlowSimilarity(a.ControlFlow, b.ControlFlow)
	stateJ := jaccard(a.StateMut, b.StateMut)

	return weightCallSet*callJ + weightNameTokens*nameJ + weightControlFlow*cfSim + weightStateMut*stateJ
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	setA := toSet(a)
	setB := toSet(b)
	intersection := 0
	for k := range setA {
		if setB[k] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}

func toSet(items []string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, it := range items {
		s[it] = true
	}
	return s
}

// controlFlowSimilarity treats both tag sequences as strings and uses
// go-edlib's normalized Levenshtein similarity, so sequence order (not
// just which tags appear) affects the score.
func controlFlowSimilarity(a, b []string) float64 {
	sa, sb := strings.Join(a, ","), strings.Join(b, ",")
	if sa == "" && sb == "" {
		return 1.0
	}
	score, err := edlib.StringsSimilarity(sa, sb, edlib.Levenshtein)
	if err != nil {
		return 0.0
	}
	return float64(score)
}

// Cluster is one group of likely-duplicate functions.
type Cluster struct {
	Members    []Signature
	Canonical  Signature
	Boilerplate string // set when every member shares the same boilerplate class
}

// ClusterAll runs the two-phase duplicate detector over sigs and groups
// pairs scoring >= threshold into connected clusters (spec §4.9). Each
// cluster's canonical member is the one with the largest LineCount.
func ClusterAll(sigs []Signature, threshold float64) []Cluster {
	return clusterFromPairs(sigs, coarsePass(sigs), threshold)
}

// CoarseSource looks up a's coarse-filter candidates (same boilerplate
// class, param_count within MaxParamDelta) from an external index.
type CoarseSource func(a Signature) ([]Signature, error)

// ClusterIndexed clusters sigs the same way ClusterAll does, but sources
// coarse-filter candidates from coarse (the sqlite backend's indexed query)
// instead of comparing every pair in Go, for the opt-in large-repo path
// (spec §4.9: "push the coarse filter into an indexed query"). The
// remaining coarse bounds (business-call-count delta, call-set Hamming
// distance) are still re-checked here since coarse only applies the
// param_count and boilerplate bounds.
func ClusterIndexed(sigs []Signature, threshold float64, coarse CoarseSource) ([]Cluster, error) {
	seen := make(map[[2]uint64]bool)
	var pairs []Pair
	for _, a := range sigs {
		candidates, err := coarse(a)
		if err != nil {
			return nil, err
		}
		for _, b := range candidates {
			if b.SymbolID == a.SymbolID {
				continue
			}
			key := pairKey(a.SymbolID, b.SymbolID)
			if seen[key] {
				continue
			}
			seen[key] = true
			if abs(len(a.Business)-len(b.Business)) > maxBusinessCallDiff {
				continue
			}
			if bits.OnesCount64(a.CallSetHash^b.CallSetHash) > maxHammingBits {
				continue
			}
			pairs = append(pairs, Pair{A: a, B: b})
		}
	}
	return clusterFromPairs(sigs, pairs, threshold), nil
}

func pairKey(a, b uint64) [2]uint64 {
	if a < b {
		return [2]uint64{a, b}
	}
	return [2]uint64{b, a}
}

// clusterFromPairs unions every pair scoring >= threshold via a union-find
// over symbol ids, then groups the resulting connected components into
// Clusters, picking the longest member as canonical (spec §4.9).
func clusterFromPairs(sigs []Signature, pairs []Pair, threshold float64) []Cluster {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	parent := make(map[uint64]uint64, len(sigs))
	for _, s := range sigs {
		parent[s.SymbolID] = s.SymbolID
	}

	var find func(id uint64) uint64
	find = func(id uint64) uint64 {
		for parent[id] != id {
			parent[id] = parent[parent[id]]
			id = parent[id]
		}
		return id
	}
	union := func(x, y uint64) {
		rx, ry := find(x), find(y)
		if rx != ry {
			parent[rx] = ry
		}
	}

	for _, p := range pairs {
		if score(p.A, p.B) >= threshold {
			union(p.A.SymbolID, p.B.SymbolID)
		}
	}

	groups := map[uint64][]Signature{}
	for _, s := range sigs {
		root := find(s.SymbolID)
		groups[root] = append(groups[root], s)
	}

	var clusters []Cluster
	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		canonical := members[0]
		for _, m := range members[1:] {
			if m.LineCount > canonical.LineCount {
				canonical = m
			}
		}
		clusters = append(clusters, Cluster{Members: members, Canonical: canonical, Boilerplate: commonBoilerplate(members)})
	}
	return clusters
}

func commonBoilerplate(members []Signature) string {
	if len(members) == 0 || members[0].Boilerplate == "" {
		return ""
	}
	class := members[0].Boilerplate
	for _, m := range members[1:] {
		if m.Boilerplate != class {
			return ""
		}
	}
	return class
}
