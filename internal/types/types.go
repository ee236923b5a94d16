// Package types defines the canonical data model shared by every Semfora
// subsystem: the extraction record, the streaming index row, and the
// enumerations the detectors and encoders agree on.
package types

// Language is a dispatch tag identifying the source language of a file.
type Language string

const (
	LangGo         Language = "go"
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangCSharp     Language = "csharp"
	LangCPP        Language = "cpp"
	LangJava       Language = "java"
	LangPHP        Language = "php"
	LangZig        Language = "zig"
	LangShell      Language = "shell"
	LangUnsupported Language = "unsupported"
)

// SymbolKind classifies the definition a SemanticSummary describes.
type SymbolKind string

const (
	KindFunction  SymbolKind = "function"
	KindMethod    SymbolKind = "method"
	KindClass     SymbolKind = "class"
	KindStruct    SymbolKind = "struct"
	KindTrait     SymbolKind = "trait"
	KindInterface SymbolKind = "interface"
	KindEnum      SymbolKind = "enum"
	KindType      SymbolKind = "type"
	KindComponent SymbolKind = "component"
	KindConstant  SymbolKind = "constant"
	KindModule    SymbolKind = "module"
)

// Visibility mirrors the language-specific access modifiers, normalized.
type Visibility string

const (
	VisPublic    Visibility = "public"
	VisPrivate   Visibility = "private"
	VisProtected Visibility = "protected"
	VisInternal  Visibility = "internal"
	VisCrate     Visibility = "crate"
)

// RiskLevel is the bucketed output of the risk scorer (spec §4.4).
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// DependencySource classifies where an import resolves to.
type DependencySource string

const (
	SourceExternal DependencySource = "external"
	SourceLocal    DependencySource = "local"
	SourceRelative DependencySource = "relative"
)

// LineRange is a 1-indexed inclusive span.
type LineRange struct {
	Start int
	End   int
}

// Parameter is one entry of a symbol's ordered argument/prop list.
type Parameter struct {
	Name    string
	Type    string // optional, empty if unknown
	Default string // optional, empty if absent; stripped before hashing
}

// Dependency is one import introduced by the symbol's file.
type Dependency struct {
	Name   string
	Source DependencySource
}

// StateChange is one declared binding observed as mutable.
type StateChange struct {
	Name        string
	Type        string
	Initializer string
}

// ControlFlowTag is one control-flow construct encountered in source order.
type ControlFlowTag string

const (
	CFIf     ControlFlowTag = "if"
	CFFor    ControlFlowTag = "for"
	CFWhile  ControlFlowTag = "while"
	CFMatch  ControlFlowTag = "match"
	CFTry    ControlFlowTag = "try"
	CFAwait  ControlFlowTag = "await"
)

// Call is one deduplicated call-site qualifier.
type Call struct {
	Name  string
	Await bool
	Try   bool
}

// SemanticSummary is the canonical extraction record for one symbol or file.
type SemanticSummary struct {
	File                string
	Language            Language
	Symbol              string // empty means "no symbol" (file-level summary)
	SymbolKind          SymbolKind
	Visibility          Visibility
	LineRange           LineRange
	SymbolID            uint64
	Arguments           []Parameter
	ReturnType          string
	AddedDependencies   []Dependency
	StateChanges        []StateChange
	ControlFlow         []ControlFlowTag
	Calls               []Call
	Insertions          []string
	PublicSurfaceChanged bool
	BehavioralRisk      RiskLevel
	RawFallback         string // empty unless extraction was partial
}

// HasSymbol reports whether this summary describes a named symbol rather
// than a whole-file fallback.
func (s *SemanticSummary) HasSymbol() bool {
	return s.Symbol != ""
}

// IsFallback reports whether extraction produced only a raw fallback.
func (s *SemanticSummary) IsFallback() bool {
	return s.RawFallback != ""
}

// SymbolIndexEntry is the lightweight, streamable per-symbol row persisted
// to symbol_index.jsonl. Field names are deliberately short (target <=
// ~100 bytes serialized, spec §3).
type SymbolIndexEntry struct {
	Symbol string     `json:"s"`
	Hash   string     `json:"h"` // Base63-encoded 64-bit symbol id
	Kind   SymbolKind `json:"k"`
	Module string     `json:"m"`
	File   string     `json:"f"`
	Lines  [2]int     `json:"l"`
	Risk   RiskLevel  `json:"r"`
	Layer  string     `json:"layer,omitempty"`
}

// Module is an inferred grouping derived from file path.
type Module struct {
	Name     string
	Files    []string
	Symbols  []uint64
	SizeLOC  int
}

// FrameworkHint records a detected framework/runtime convention for the
// repo overview.
type FrameworkHint struct {
	Name       string
	Confidence float64
}

// RepoOverview is the per-repository aggregate record.
type RepoOverview struct {
	LanguageMix      map[Language]int // file counts per language
	Modules          []ModuleSummary
	EntryPoints      []string
	Frameworks       []FrameworkHint
	TopDependencies  []Dependency
	SkippedFiles     []SkippedFile
	TotalFiles       int
	TotalSymbols     int
}

// ModuleSummary is the repo-overview-level view of a Module.
type ModuleSummary struct {
	Name        string
	FileCount   int
	SymbolCount int
	SizeLOC     int
}

// SkippedFile records why a file was excluded from indexing.
type SkippedFile struct {
	Path   string
	Reason string // "unsupported", "binary", "too_large", "excluded"
}

// GraphEdge is one directed edge in the call or import graph.
type GraphEdge struct {
	From string
	To   string
	Kind string // e.g. "call", "import"
}

// FunctionSignature is the per-function structural fingerprint used by the
// duplicate engine (spec §4.9, §3).
type FunctionSignature struct {
	SymbolID        uint64
	NameTokens      []string
	CallSetHash     uint64
	ControlFlowHash uint64
	ControlFlow     []ControlFlowTag // retained for the fine-scoring sequence comparison
	StateMutHash    uint64
	StateMutations  []string // retained for the fine-scoring Jaccard comparison
	BusinessCalls   []string // call set excluding utility/boilerplate calls
	ParamCount      int
	Boilerplate     string // empty unless classified
}
