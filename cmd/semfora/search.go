package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/semfora/internal/cache"
	"github.com/standardbeagle/semfora/internal/encoding"
	"github.com/standardbeagle/semfora/internal/search"
	"github.com/standardbeagle/semfora/internal/types"
)

var searchCommand = &cli.Command{
	Name:    "search",
	Aliases: []string{"s"},
	Usage:   "Rank-order symbols against a query using the persisted BM25 index",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "module",
			Usage: "Restrict results to a single module",
		},
		&cli.StringFlag{
			Name:  "kind",
			Usage: "Restrict results to a symbol kind (function, method, class, ...)",
		},
		&cli.StringFlag{
			Name:  "risk",
			Usage: "Restrict results to a risk level (low, medium, high)",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Max results to print",
			Value: 20,
		},
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "Output as JSON",
		},
	},
	Action: searchRun,
}

func searchRun(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: semfora search <query>")
	}
	query := c.Args().First()

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	store, err := cache.Open(cfg.Project.Root)
	if err != nil {
		return fmt.Errorf("failed to open index for %s: %w", cfg.Project.Root, err)
	}
	entries, err := store.ReadIndex()
	if err != nil {
		return fmt.Errorf("failed to read symbol index: %w", err)
	}

	idx := search.New(cfg.Search.BM25K1, cfg.Search.BM25B)
	docs := make([]search.Document, len(entries))
	for i, e := range entries {
		id, _ := encoding.Base63Decode(e.Hash)
		docs[i] = search.Document{
			SymbolID: id,
			Module:   e.Module,
			Kind:     e.Kind,
			Risk:     e.Risk,
			Symbol:   e.Symbol,
			File:     e.File,
		}
	}
	idx.Rebuild(docs)

	filter := search.Filter{
		Module: c.String("module"),
		Kind:   types.SymbolKind(c.String("kind")),
		Risk:   types.RiskLevel(c.String("risk")),
	}
	results := idx.Search(query, filter)

	limit := c.Int("limit")
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	if c.Bool("json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%6.2f  %-10s %-8s %-6s %s:%s\n",
			r.Score, r.Document.Kind, r.Document.Risk, r.Document.Module, r.Document.File, r.Document.Symbol)
	}
	return nil
}
