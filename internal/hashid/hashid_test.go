package hashid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/semfora/internal/types"
)

func TestSymbolIDDeterministic(t *testing.T) {
	f := Fields{File: "a.go", Name: "Foo", Kind: types.KindFunction}
	a := SymbolID(f)
	b := SymbolID(f)
	assert.Equal(t, a, b)
}

func TestSymbolIDDiffersByFile(t *testing.T) {
	f1 := Fields{File: "a.go", Name: "Foo", Kind: types.KindFunction}
	f2 := Fields{File: "b.go", Name: "Foo", Kind: types.KindFunction}
	assert.NotEqual(t, SymbolID(f1), SymbolID(f2))
}

func TestSymbolIDChangesOnRename(t *testing.T) {
	f1 := Fields{File: "a.go", Name: "Foo", Kind: types.KindFunction}
	f2 := Fields{File: "a.go", Name: "Bar", Kind: types.KindFunction}
	assert.NotEqual(t, SymbolID(f1), SymbolID(f2))
}

func TestSymbolIDIgnoresDefaults(t *testing.T) {
	f1 := Fields{File: "a.go", Name: "Foo", Kind: types.KindFunction,
		Parameters: []types.Parameter{{Name: "x", Type: "int", Default: "0"}}}
	f2 := Fields{File: "a.go", Name: "Foo", Kind: types.KindFunction,
		Parameters: []types.Parameter{{Name: "x", Type: "int", Default: "42"}}}
	assert.Equal(t, SymbolID(f1), SymbolID(f2))
}

func TestSymbolIDNotAffectedByUnrelatedSymbol(t *testing.T) {
	foo := Fields{File: "a.go", Name: "Foo", Kind: types.KindFunction}
	before := SymbolID(foo)
	// Adding an unrelated function to the same file never mutates Foo's
	// inputs, so its id is unaffected (spec §8 identity-stability).
	_ = SymbolID(Fields{File: "a.go", Name: "Bar", Kind: types.KindFunction})
	after := SymbolID(foo)
	assert.Equal(t, before, after)
}

func TestCollisionResolver(t *testing.T) {
	r := NewCollisionResolver()
	f := Fields{File: "a.go", Name: "Foo", Kind: types.KindFunction}
	id1 := r.Resolve(f, types.LineRange{Start: 1, End: 5})
	// Simulate a second distinct symbol whose fields happen to collide by
	// resolving the same Fields again with a different line range: the
	// resolver must not hand back the same id twice.
	id2 := r.Resolve(f, types.LineRange{Start: 10, End: 20})
	assert.NotEqual(t, id1, id2)
}
