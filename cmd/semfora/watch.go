package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/semfora/internal/config"
	"github.com/standardbeagle/semfora/internal/drift"
	"github.com/standardbeagle/semfora/internal/pipeline"
)

// watchCommand keeps a repo's index current across a long-running session:
// every debounced filesystem change triggers a fresh Pipeline.Run, whose
// drift decision picks the strategy: StrategyIncremental re-extracts only
// the touched files, while a change set above the incremental thresholds
// resolves to OverlayRebase or FullRebuild and reprocesses every file
// (spec §4.7, §5).
var watchCommand = &cli.Command{
	Name:    "watch",
	Aliases: []string{"w"},
	Usage:   "Re-index on filesystem changes until interrupted",
	Action:  watchRun,
}

func watchRun(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	w, err := drift.NewWatcher(cfg.Project.Root, cfg)
	if err != nil {
		return fmt.Errorf("failed to start watcher for %s: %w", cfg.Project.Root, err)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go w.Run(ctx)

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", cfg.Project.Root)
	if err := runOnce(ctx, cfg); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Println("stopped")
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			fmt.Printf("change: %s\n", ev.Path)
			if err := runOnce(ctx, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "semfora: re-index failed: %v\n", err)
			}
		}
	}
}

func runOnce(ctx context.Context, cfg *config.Config) error {
	p, err := pipeline.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open pipeline: %w", err)
	}
	result, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("index run failed: %w", err)
	}
	fmt.Printf("  reindexed: %d files, %d symbols\n", result.FilesIndexed, result.SymbolsFound)
	return nil
}
