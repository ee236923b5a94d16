package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/semfora/internal/cache"
)

var statusCommand = &cli.Command{
	Name:    "status",
	Aliases: []string{"st"},
	Usage:   "Show the on-disk index status for a repository",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "Output as JSON",
		},
	},
	Action: statusRun,
}

func statusRun(c *cli.Context) error {
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

	byModule := map[string]int{}
	byRisk := map[string]int{}
	for _, e := range entries {
		byModule[e.Module]++
		byRisk[string(e.Risk)]++
	}

	if c.Bool("json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(struct {
			Root        string         `json:"root"`
			CacheDir    string         `json:"cache_dir"`
			SymbolCount int            `json:"symbol_count"`
			ByModule    map[string]int `json:"by_module"`
			ByRisk      map[string]int `json:"by_risk"`
		}{
			Root:        cfg.Project.Root,
			CacheDir:    store.Root,
			SymbolCount: len(entries),
			ByModule:    byModule,
			ByRisk:      byRisk,
		})
	}

	fmt.Printf("Semfora index status\n")
	fmt.Printf("  Root:     %s\n", cfg.Project.Root)
	fmt.Printf("  Cache:    %s\n", store.Root)
	fmt.Printf("  Symbols:  %d\n", len(entries))

	fmt.Printf("  By risk:\n")
	for _, level := range []string{"high", "medium", "low"} {
		if n, ok := byRisk[level]; ok {
			fmt.Printf("    %-8s %d\n", level, n)
		}
	}

	modules := make([]string, 0, len(byModule))
	for m := range byModule {
		modules = append(modules, m)
	}
	sort.Strings(modules)
	fmt.Printf("  By module:\n")
	for _, m := range modules {
		fmt.Printf("    %-20s %d\n", m, byModule[m])
	}
	return nil
}
