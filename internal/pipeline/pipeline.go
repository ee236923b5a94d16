// Package pipeline orchestrates one indexing run end to end (spec §2 data
// flow, §5 concurrency model): walk, dispatch, extract, score, encode,
// persist, then derive the search index and duplicate clusters.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/semfora/internal/astadapter"
	"github.com/standardbeagle/semfora/internal/cache"
	"github.com/standardbeagle/semfora/internal/cache/sqlitecache"
	"github.com/standardbeagle/semfora/internal/config"
	"github.com/standardbeagle/semfora/internal/debug"
	"github.com/standardbeagle/semfora/internal/detectors"
	"github.com/standardbeagle/semfora/internal/drift"
	"github.com/standardbeagle/semfora/internal/encoding"
	semerrors "github.com/standardbeagle/semfora/internal/errors"
	"github.com/standardbeagle/semfora/internal/git"
	"github.com/standardbeagle/semfora/internal/overlay"
	"github.com/standardbeagle/semfora/internal/search"
	"github.com/standardbeagle/semfora/internal/signature"
	"github.com/standardbeagle/semfora/internal/types"
	"github.com/standardbeagle/semfora/internal/walker"
)

// Result summarizes one completed run for the caller.
type Result struct {
	FilesIndexed int
	SymbolsFound int
	Skipped      []types.SkippedFile
	Duplicates   []signature.Cluster
	Cancelled    bool
}

// Pipeline holds the stores a run persists into. A Pipeline is reusable
// across runs against the same repo.
type Pipeline struct {
	cfg     *config.Config
	store   *cache.Store
	overlay *overlay.Manager
	Search  *search.Index
}

// Open resolves the cache store and overlay manager for cfg.Project.Root.
func Open(cfg *config.Config) (*Pipeline, error) {
	store, err := cache.Open(cfg.Project.Root)
	if err != nil {
		return nil, err
	}
	mgr, err := overlay.NewManager(store)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:     cfg,
		store:   store,
		overlay: mgr,
		Search:  search.New(cfg.Search.BM25K1, cfg.Search.BM25B),
	}, nil
}

// extraction is one file's full set of derived artifacts, produced by the
// parallel worker stage and consumed by the single-writer stage.
type extraction struct {
	summaries   []types.SemanticSummary
	contentHash uint64
	modTime     int64
	parseErr    error
}

// Run performs one indexing pass. It first consults the drift detector
// (spec §4.7) to decide how much of the repo actually needs reprocessing:
// a Fresh verdict reuses the last run's persisted index outright, an
// Incremental verdict narrows extraction to the changed file set, and
// OverlayRebase/FullRebuild fall through to a full walk+extract pass.
// Changed files are then extracted in parallel and funneled through a
// single writer stage so shard writes are never interleaved (spec §5:
// "funneled through a single-writer shard stage").
//
// ctx cancellation is honored at file boundaries, never mid-shard-write
// (spec §5): once a file's extraction begins, it always finishes and is
// written before Run observes cancellation.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	walked, err := walker.Walk(p.cfg)
	if err != nil {
		return nil, semerrors.NewInputError(p.cfg.Project.Root, "walk_failed", err)
	}

	recorded, err := drift.Load(p.store.Root)
	if err != nil {
		return nil, err
	}
	if recorded != nil && recorded.RepoIdentity != repoIdentity(p.cfg.Project.Root) {
		recorded = nil
	}
	candidates := make([]drift.Candidate, len(walked.Files))
	for i, f := range walked.Files {
		candidates[i] = drift.Candidate{RelPath: f.RelPath, AbsPath: f.Path}
	}
	decision := drift.Decide(p.cfg, recorded, candidates)
	debug.Infof("drift strategy=%s changed=%d/%d", decision.Strategy, len(decision.Changed), len(walked.Files))

	if decision.Strategy == drift.StrategyFresh && recorded != nil {
		return p.resultFromCache(walked)
	}

	filesToProcess := walked.Files
	if decision.Strategy == drift.StrategyIncremental {
		changed := make(map[string]bool, len(decision.Changed))
		for _, rel := range decision.Changed {
			changed[rel] = true
		}
		filesToProcess = filterChanged(walked.Files, changed)
	}

	workers := p.cfg.Performance.ParallelFileWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	parsers := astadapter.NewParserSet()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	extractions := make([]extraction, len(filesToProcess))
	var cancelled bool
	var mu sync.Mutex

	for i, f := range filesToProcess {
		i, f := i, f
		g.Go(func() error {
			select {
			case <-gctx.Done():
				mu.Lock()
				cancelled = true
				mu.Unlock()
				return nil
			default:
			}
			extractions[i] = extractFile(parsers, f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var sigDB *sqlitecache.DB
	if p.cfg.Duplicate.UseSQLiteBackend {
		sigDB, err = sqlitecache.Open(p.store.Root)
		if err != nil {
			return nil, err
		}
		defer sigDB.Close()
	}

	symbolCount := 0
	var allSignatures []signature.Signature
	var graphEdges []types.GraphEdge
	var newEntries []types.SymbolIndexEntry
	var parseFailures []types.SkippedFile
	modules := map[string]*types.Module{}

	for fi, ex := range extractions {
		if ex.parseErr != nil {
			// No shard is written and any prior base-layer shard for this
			// file is left untouched; the run continues with the rest of
			// the files (spec §4.2, §7).
			parseFailures = append(parseFailures, types.SkippedFile{Path: filesToProcess[fi].RelPath, Reason: "parse_error"})
			continue
		}
		if ex.summaries == nil {
			continue
		}
		for i := range ex.summaries {
			s := &ex.summaries[i]
			if err := p.overlay.Write(cache.LayerBase, s); err != nil {
				return nil, err
			}
			if !s.HasSymbol() {
				continue
			}
			symbolCount++

			moduleName := moduleOf(s.File)
			mod := modules[moduleName]
			if mod == nil {
				mod = &types.Module{Name: moduleName}
				modules[moduleName] = mod
			}
			mod.Symbols = append(mod.Symbols, s.SymbolID)

			entry := types.SymbolIndexEntry{
				Symbol: s.Symbol,
				Hash:   symbolHash(s.SymbolID),
				Kind:   s.SymbolKind,
				Module: moduleName,
				File:   s.File,
				Lines:  [2]int{s.LineRange.Start, s.LineRange.End},
				Risk:   s.BehavioralRisk,
			}
			newEntries = append(newEntries, entry)

			p.Search.Add(search.Document{
				SymbolID: s.SymbolID, Module: moduleName, Kind: s.SymbolKind,
				Risk: s.BehavioralRisk, Symbol: s.Symbol, File: s.File,
			})

			if isFunctionKind(s.SymbolKind) {
				fs := signature.Compute(s)
				lineCount := s.LineRange.End - s.LineRange.Start + 1
				allSignatures = append(allSignatures, signature.FromFunctionSignature(fs, lineCount))
				if sigDB != nil {
					if err := sigDB.Upsert(&fs, lineCount); err != nil {
						return nil, err
					}
				}
			}

			for _, c := range s.Calls {
				graphEdges = append(graphEdges, types.GraphEdge{From: symbolHash(s.SymbolID), To: c.Name, Kind: "call"})
			}
			for _, dep := range s.AddedDependencies {
				graphEdges = append(graphEdges, types.GraphEdge{From: moduleName, To: dep.Name, Kind: "import"})
			}
		}
	}

	// symbol_index.jsonl is the canonical enumeration (spec §6), so a
	// FullRebuild/OverlayRebase run writes it outright, while an Incremental
	// run must merge this run's entries over the previously persisted ones
	// rather than re-appending blindly (which would leave stale duplicate
	// rows for every reprocessed symbol).
	finalEntries := newEntries
	if decision.Strategy == drift.StrategyIncremental {
		prior, err := p.store.ReadIndex()
		if err != nil {
			return nil, err
		}
		processedFiles := make(map[string]bool, len(filesToProcess))
		for _, f := range filesToProcess {
			processedFiles[f.RelPath] = true
		}
		kept := prior[:0]
		for _, e := range prior {
			if !processedFiles[e.File] {
				kept = append(kept, e)
			}
		}
		finalEntries = append(kept, newEntries...)
	}
	if err := p.store.WriteIndex(finalEntries); err != nil {
		return nil, err
	}

	// Module/graph/overview shards are aggregates over the whole repo, so
	// an Incremental run (which only processed the changed subset) must
	// not rewrite them from partial data — it would erase every module
	// outside the changed set. Those shards are only refreshed on the
	// OverlayRebase/FullRebuild strategies, which always process every file.
	if decision.Strategy != drift.StrategyIncremental {
		for name, mod := range modules {
			if err := p.store.WriteModule(mod); err != nil {
				return nil, err
			}
			debug.Debugf("wrote module shard %s (%d symbols)", name, len(mod.Symbols))
		}
		if err := p.store.WriteGraph("call", filterEdges(graphEdges, "call")); err != nil {
			return nil, err
		}
		if err := p.store.WriteGraph("import", filterEdges(graphEdges, "import")); err != nil {
			return nil, err
		}

		overview := buildOverview(walked, modules, symbolCount)
		if err := p.store.WriteRepoOverview(overview); err != nil {
			return nil, err
		}
	}

	var clusters []signature.Cluster
	if sigDB != nil {
		clusters, err = signature.ClusterIndexed(allSignatures, p.cfg.Duplicate.SimilarityThreshold, coarseSourceFromDB(sigDB))
		if err != nil {
			return nil, err
		}
	} else {
		clusters = signature.ClusterAll(allSignatures, p.cfg.Duplicate.SimilarityThreshold)
	}

	if err := p.saveDriftState(recorded, decision.Strategy, filesToProcess, extractions, walked); err != nil {
		return nil, err
	}

	return &Result{
		FilesIndexed: len(walked.Files),
		SymbolsFound: len(finalEntries),
		Skipped:      append(walked.Skipped, parseFailures...),
		Duplicates:   clusters,
		Cancelled:    cancelled,
	}, nil
}

// resultFromCache short-circuits a Fresh-strategy run: nothing changed
// since the last indexing pass, so the persisted symbol index already
// reflects the repo's current state (spec §4.7: Fresh needs no rework).
func (p *Pipeline) resultFromCache(walked *walker.Result) (*Result, error) {
	entries, err := p.store.ReadIndex()
	if err != nil {
		return nil, err
	}
	return &Result{
		FilesIndexed: len(walked.Files),
		SymbolsFound: len(entries),
		Skipped:      walked.Skipped,
	}, nil
}

// saveDriftState records the mtime/hash of every file now on disk so the
// next run's drift.Decide call can classify it cheaply (spec §4.7). Files
// outside this run's processed set (an Incremental run skips unchanged
// files) keep their previously recorded state; files no longer present
// are dropped.
func (p *Pipeline) saveDriftState(recorded *drift.RecordedState, strategy drift.Strategy, processed []walker.File, extractions []extraction, walked *walker.Result) error {
	files := make(map[string]drift.FileState, len(walked.Files))
	if recorded != nil && strategy == drift.StrategyIncremental {
		for k, v := range recorded.Files {
			files[k] = v
		}
	}
	for i, f := range processed {
		files[f.RelPath] = drift.FileState{ModTime: extractions[i].modTime, Hash: extractions[i].contentHash}
	}

	present := make(map[string]bool, len(walked.Files))
	for _, f := range walked.Files {
		present[f.RelPath] = true
	}
	for rel := range files {
		if !present[rel] {
			delete(files, rel)
		}
	}

	identity := repoIdentity(p.cfg.Project.Root)
	branchHead := ""
	if repo, err := git.Open(p.cfg.Project.Root); err == nil {
		if head, err := repo.HeadCommit(); err == nil {
			branchHead = head
		}
	}

	return drift.Save(p.store.Root, &drift.RecordedState{RepoIdentity: identity, BranchHead: branchHead, Files: files})
}

// repoIdentity derives a stable short identifier for a project root, used
// only to detect when the recorded drift state belongs to a different
// repo than the one currently being indexed.
func repoIdentity(root string) string {
	return encoding.Base63Encode(xxhash.Sum64String(root))
}

// filterChanged narrows the walked file list to the drift-detected
// changed set (spec §4.7 Incremental strategy).
func filterChanged(files []walker.File, changed map[string]bool) []walker.File {
	out := make([]walker.File, 0, len(changed))
	for _, f := range files {
		if changed[f.RelPath] {
			out = append(out, f)
		}
	}
	return out
}

// extractFile parses one file and runs its language detector. A parse
// failure yields no summary at all: no shard is written for the file and
// any shard already on disk from a prior run is left untouched; the run
// continues with the remaining files (spec §4.2, §7).
func extractFile(parsers *astadapter.ParserSet, f walker.File) extraction {
	src, err := os.ReadFile(f.Path)
	if err != nil {
		debug.Warnf("read %s: %v", f.RelPath, err)
		return extraction{}
	}
	contentHash := xxhash.Sum64(src)
	var modTime int64
	if info, err := os.Stat(f.Path); err == nil {
		modTime = info.ModTime().Unix()
	}

	tree, err := parsers.Parse(f.Language, src)
	if err != nil {
		parseErr := semerrors.NewParseError(f.RelPath, 0, err)
		debug.Errorf("%v", parseErr)
		return extraction{contentHash: contentHash, modTime: modTime, parseErr: parseErr}
	}
	defer tree.Close()

	summaries := detectors.Detect(f.RelPath, f.Language, tree)
	return extraction{summaries: summaries, contentHash: contentHash, modTime: modTime}
}

// coarseSourceFromDB adapts the sqlite backend's indexed query to the
// signature.CoarseSource shape, so ClusterIndexed can push the param_count
// and boilerplate-class bounds down into SQL instead of scanning every
// signature pair in Go (spec §4.9, config.Duplicate.UseSQLiteBackend).
func coarseSourceFromDB(db *sqlitecache.DB) signature.CoarseSource {
	return func(a signature.Signature) ([]signature.Signature, error) {
		rows, err := db.CoarseCandidates(a.ParamCount, signature.MaxParamDelta, a.Boilerplate)
		if err != nil {
			return nil, err
		}
		out := make([]signature.Signature, len(rows))
		for i, r := range rows {
			out[i] = signature.FromFunctionSignature(r.FunctionSignature, r.LineCount)
		}
		return out, nil
	}
}

// symbolHash renders a symbol_id the same way shard filenames do, so
// graph edges and index rows referencing a symbol agree with its shard
// path (spec §4.6, §6).
func symbolHash(id uint64) string {
	return encoding.Base63Encode(id)
}

func moduleOf(relPath string) string {
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	if len(parts) > 1 {
		return parts[0]
	}
	return "root"
}

func isFunctionKind(k types.SymbolKind) bool {
	return k == types.KindFunction || k == types.KindMethod || k == types.KindComponent
}

func filterEdges(edges []types.GraphEdge, kind string) []types.GraphEdge {
	var out []types.GraphEdge
	for _, e := range edges {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func buildOverview(walked *walker.Result, modules map[string]*types.Module, symbolCount int) *types.RepoOverview {
	langMix := map[types.Language]int{}
	for _, f := range walked.Files {
		langMix[f.Language]++
	}

	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]types.ModuleSummary, 0, len(names))
	for _, name := range names {
		mod := modules[name]
		summaries = append(summaries, types.ModuleSummary{Name: name, SymbolCount: len(mod.Symbols)})
	}

	return &types.RepoOverview{
		LanguageMix:  langMix,
		Modules:      summaries,
		SkippedFiles: walked.Skipped,
		TotalFiles:   len(walked.Files),
		TotalSymbols: symbolCount,
	}
}
