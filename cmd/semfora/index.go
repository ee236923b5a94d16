package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/semfora/internal/pipeline"
)

var indexCommand = &cli.Command{
	Name:    "index",
	Aliases: []string{"i"},
	Usage:   "Build (or refresh) the semantic index for a repository",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "Output the run summary as JSON",
		},
	},
	Action: indexRun,
}

func indexRun(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	p, err := pipeline.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open pipeline: %w", err)
	}

	start := time.Now()
	result, err := p.Run(context.Background())
	if err != nil {
		return fmt.Errorf("index run failed: %w", err)
	}
	elapsed := time.Since(start)

	if c.Bool("json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(struct {
			FilesIndexed int    `json:"files_indexed"`
			SymbolsFound int    `json:"symbols_found"`
			Duplicates   int    `json:"duplicate_clusters"`
			Skipped      int    `json:"skipped_files"`
			Cancelled    bool   `json:"cancelled"`
			ElapsedMs    int64  `json:"elapsed_ms"`
			Root         string `json:"root"`
		}{
			FilesIndexed: result.FilesIndexed,
			SymbolsFound: result.SymbolsFound,
			Duplicates:   len(result.Duplicates),
			Skipped:      len(result.Skipped),
			Cancelled:    result.Cancelled,
			ElapsedMs:    elapsed.Milliseconds(),
			Root:         cfg.Project.Root,
		})
	}

	fmt.Printf("Indexed %s in %s\n", cfg.Project.Root, elapsed.Round(time.Millisecond))
	fmt.Printf("  Files:      %d\n", result.FilesIndexed)
	fmt.Printf("  Symbols:    %d\n", result.SymbolsFound)
	fmt.Printf("  Duplicates: %d clusters\n", len(result.Duplicates))
	fmt.Printf("  Skipped:    %d files\n", len(result.Skipped))
	if result.Cancelled {
		fmt.Println("  Cancelled:  true (run did not reach every file)")
	}
	for _, cl := range result.Duplicates {
		fmt.Printf("  cluster (%.2f threshold-adjacent, %d members, boilerplate=%q) canonical=%d\n",
			cfg.Duplicate.SimilarityThreshold, len(cl.Members), cl.Boilerplate, cl.Canonical.SymbolID)
	}
	return nil
}
