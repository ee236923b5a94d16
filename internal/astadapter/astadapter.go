// Package astadapter provides a uniform view over tree-sitter's incremental
// parser (spec §4.2): node kind as a string tag, byte range, child
// iteration, and named-field access. Detectors never touch
// github.com/tree-sitter/go-tree-sitter directly; they work against the
// Node interface here, which keeps the detector tables in package
// detectors purely data-driven per language.
package astadapter

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
	tree_sitter_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"

	"github.com/standardbeagle/semfora/internal/types"
)

// Node is the uniform AST node surface detectors are written against.
type Node interface {
	Kind() string
	StartByte() uint
	EndByte() uint
	StartLine() int // 1-indexed
	EndLine() int   // 1-indexed
	ChildCount() int
	Child(i int) Node
	FieldChild(field string) Node // nil if the field is absent
	Parent() Node
	IsNil() bool
}

// tsNode adapts a *tree_sitter.Node to the Node interface.
type tsNode struct {
	n *tree_sitter.Node
}

func wrap(n *tree_sitter.Node) Node {
	if n == nil {
		return tsNode{nil}
	}
	return tsNode{n}
}

func (w tsNode) IsNil() bool { return w.n == nil }

func (w tsNode) Kind() string {
	if w.n == nil {
		return ""
	}
	return w.n.Kind()
}

func (w tsNode) StartByte() uint {
	if w.n == nil {
		return 0
	}
	return uint(w.n.StartByte())
}

func (w tsNode) EndByte() uint {
	if w.n == nil {
		return 0
	}
	return uint(w.n.EndByte())
}

func (w tsNode) StartLine() int {
	if w.n == nil {
		return 0
	}
	return int(w.n.StartPosition().Row) + 1
}

func (w tsNode) EndLine() int {
	if w.n == nil {
		return 0
	}
	return int(w.n.EndPosition().Row) + 1
}

func (w tsNode) ChildCount() int {
	if w.n == nil {
		return 0
	}
	return int(w.n.ChildCount())
}

func (w tsNode) Child(i int) Node {
	if w.n == nil || i < 0 || uint(i) >= w.n.ChildCount() {
		return tsNode{nil}
	}
	return wrap(w.n.Child(uint(i)))
}

func (w tsNode) FieldChild(field string) Node {
	if w.n == nil {
		return tsNode{nil}
	}
	return wrap(w.n.ChildByFieldName(field))
}

func (w tsNode) Parent() Node {
	if w.n == nil {
		return tsNode{nil}
	}
	return wrap(w.n.Parent())
}

// Text returns the source slice spanned by n.
func Text(src []byte, n Node) string {
	if n.IsNil() {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if end > uint(len(src)) || start > end {
		return ""
	}
	return string(src[start:end])
}

// Tree is a parsed file: the root node plus the source bytes it was parsed
// from, scoped to one file extraction per spec §5 ("the AST and source
// buffer are scoped to a single file extraction").
type Tree struct {
	Root   Node
	Source []byte

	release func()
}

// Close releases the underlying tree-sitter tree. Safe to call multiple
// times.
func (t *Tree) Close() {
	if t.release != nil {
		t.release()
		t.release = nil
	}
}

// ParserSet lazily constructs and caches one *tree_sitter.Parser per
// language, mirroring the teacher's lazy per-extension parser map
// (internal/parser/parser_language_setup.go) but keyed by types.Language
// instead of file extension.
type ParserSet struct {
	mu      sync.Mutex
	parsers map[types.Language]*tree_sitter.Parser
}

func NewParserSet() *ParserSet {
	return &ParserSet{parsers: make(map[types.Language]*tree_sitter.Parser)}
}

func languageForTag(lang types.Language) (*tree_sitter.Language, error) {
	switch lang {
	case types.LangGo:
		return tree_sitter.NewLanguage(tree_sitter_go.Language()), nil
	case types.LangJavaScript:
		return tree_sitter.NewLanguage(tree_sitter_javascript.Language()), nil
	case types.LangTypeScript:
		return tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()), nil
	case types.LangPython:
		return tree_sitter.NewLanguage(tree_sitter_python.Language()), nil
	case types.LangRust:
		return tree_sitter.NewLanguage(tree_sitter_rust.Language()), nil
	case types.LangCSharp:
		return tree_sitter.NewLanguage(tree_sitter_csharp.Language()), nil
	case types.LangCPP:
		return tree_sitter.NewLanguage(tree_sitter_cpp.Language()), nil
	case types.LangJava:
		return tree_sitter.NewLanguage(tree_sitter_java.Language()), nil
	case types.LangPHP:
		return tree_sitter.NewLanguage(tree_sitter_php.LanguagePHP()), nil
	case types.LangZig:
		return tree_sitter.NewLanguage(tree_sitter_zig.Language()), nil
	default:
		return nil, fmt.Errorf("astadapter: no grammar for language %q", lang)
	}
}

func (ps *ParserSet) parserFor(lang types.Language) (*tree_sitter.Parser, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if p, ok := ps.parsers[lang]; ok {
		return p, nil
	}

	tsLang, err := languageForTag(lang)
	if err != nil {
		return nil, err
	}

	p := tree_sitter.NewParser()
	if err := p.SetLanguage(tsLang); err != nil {
		return nil, fmt.Errorf("astadapter: set language %q: %w", lang, err)
	}
	ps.parsers[lang] = p
	return p, nil
}

// Parse parses source for lang and returns a Tree. The caller must Close
// the returned Tree when done with it.
func (ps *ParserSet) Parse(lang types.Language, source []byte) (*Tree, error) {
	parser, err := ps.parserFor(lang)
	if err != nil {
		return nil, err
	}

	// tree-sitter parsers are not safe for concurrent Parse calls on the
	// same *Parser; the extraction pipeline parallelizes by file (spec
	// §5), so we serialize access to each language's shared parser here
	// rather than constructing one per file.
	ps.mu.Lock()
	tree := parser.Parse(source, nil)
	ps.mu.Unlock()

	if tree == nil {
		return nil, fmt.Errorf("astadapter: parse failed for language %q", lang)
	}

	root := tree.RootNode()
	if root == nil || root.HasError() {
		tree.Close()
		return nil, fmt.Errorf("astadapter: syntax error parsing %q source", lang)
	}

	return &Tree{
		Root:    wrap(root),
		Source:  source,
		release: tree.Close,
	}, nil
}
