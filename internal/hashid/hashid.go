// Package hashid computes the stable 64-bit symbol_id required by spec §4.5:
// a pure function of (file, symbol name, kind, normalized arguments, and a
// collision round that mixes in the line range). Built on xxhash64, the
// same non-cryptographic, seedless, endianness-independent hash the teacher
// uses throughout its identity layer (internal/idcodec, internal/core) —
// it needs no process-local seed and produces identical digests regardless
// of host byte order, which the spec invariant requires.
package hashid

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/semfora/internal/types"
)

// Fields normalizes the inputs to SymbolID so that formatting differences
// (argument order already fixed by the detector, whitespace, defaults)
// never perturb the hash.
type Fields struct {
	File       string
	Name       string
	Kind       types.SymbolKind
	Parameters []types.Parameter // defaults are stripped by canonicalize
}

// SymbolID computes the 64-bit stable hash for a symbol (spec §4.5, first
// round — no line range mixed in yet).
func SymbolID(f Fields) uint64 {
	var b strings.Builder
	b.WriteString(normalizeName(f.Name))
	b.WriteByte(0)
	b.WriteString(string(f.Kind))
	b.WriteByte(0)
	writeCanonicalParams(&b, f.Parameters)
	b.WriteByte(0)
	b.WriteString(f.File)
	return xxhash.Sum64String(b.String())
}

// ResolveCollision computes the secondary-round id for a symbol whose first
// round id collided with another symbol in the same indexing run. It mixes
// in the line range, per spec §4.5 "a secondary collision-resolution round
// appends the line-range when two computed ids collide".
func ResolveCollision(f Fields, lines types.LineRange) uint64 {
	var b strings.Builder
	b.WriteString(normalizeName(f.Name))
	b.WriteByte(0)
	b.WriteString(string(f.Kind))
	b.WriteByte(0)
	writeCanonicalParams(&b, f.Parameters)
	b.WriteByte(0)
	b.WriteString(f.File)
	b.WriteByte(0)
	b.WriteString(itoa(lines.Start))
	b.WriteByte(':')
	b.WriteString(itoa(lines.End))
	return xxhash.Sum64String(b.String())
}

func normalizeName(name string) string {
	return strings.TrimSpace(name)
}

// writeCanonicalParams writes a canonical representation of argument names
// and types only — defaults are stripped per spec §4.5 ("defaults
// stripped"). Order is preserved: argument order is semantically
// significant (swapping two params of the same type is a different
// signature), so this is NOT sorted.
func writeCanonicalParams(b *strings.Builder, params []types.Parameter) {
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Name)
		b.WriteByte(':')
		b.WriteString(p.Type)
	}
}

// CollisionResolver tracks first-round ids seen within a single indexing
// run and assigns collision-resolved ids to the second and later symbol
// sharing an id, per spec §4.5 and §8 ("renaming a function alone changes
// its symbol_id; adding an unrelated function to the same file does not
// change the id of any pre-existing function").
type CollisionResolver struct {
	seen map[uint64]bool
}

func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{seen: make(map[uint64]bool)}
}

// Resolve returns the final symbol_id for f, given its computed line range.
// The first symbol to claim an id keeps the plain SymbolID; any subsequent
// symbol whose first-round id collides gets the line-range-mixed id
// instead, so one run never reassigns an already-claimed id.
func (r *CollisionResolver) Resolve(f Fields, lines types.LineRange) uint64 {
	id := SymbolID(f)
	if !r.seen[id] {
		r.seen[id] = true
		return id
	}
	resolved := ResolveCollision(f, lines)
	r.seen[resolved] = true
	return resolved
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// sortedCopy returns a sorted copy of strs. Nothing in the module calls
// it; SymbolID does not use it, since argument order matters there.
func sortedCopy(strs []string) []string {
	out := make([]string, len(strs))
	copy(out, strs)
	sort.Strings(out)
	return out
}
