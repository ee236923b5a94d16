package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	semerrors "github.com/standardbeagle/semfora/internal/errors"

	"github.com/standardbeagle/semfora/internal/config"
	"github.com/standardbeagle/semfora/internal/version"
)

// exitCode maps a returned error to one of the exit codes a CLI collaborator
// can branch on without parsing stderr text.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var inputErr *semerrors.InputError
	var parseErr *semerrors.ParseError
	var extractionErr *semerrors.ExtractionError
	var gitErr *semerrors.GitError
	switch {
	case errors.As(err, &parseErr):
		return 3
	case errors.As(err, &extractionErr):
		return 4
	case errors.As(err, &gitErr):
		return 5
	case errors.As(err, &inputErr):
		if inputErr.Reason == "unsupported language" {
			return 2
		}
		return 1
	default:
		return 1
	}
}

// loadConfigWithOverrides loads configuration for the given CLI context and
// applies any --include/--exclude/--root flag overrides on top of it.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	root := c.String("root")
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path %q: %w", root, err)
	}

	cfg, err := config.Load(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load config for %s: %w", absRoot, err)
	}

	if includeFlags := c.StringSlice("include"); len(includeFlags) > 0 {
		cfg.Include = includeFlags
	}
	if excludeFlags := c.StringSlice("exclude"); len(excludeFlags) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludeFlags...)
	}
	return cfg, nil
}

func main() {
	app := &cli.App{
		Name:                   "semfora",
		Usage:                  "Semantic code analysis for AI coding agents",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory to analyze (default: current directory)",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Include files matching glob patterns (e.g., --include '*.go')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Exclude files matching glob patterns (e.g., --exclude '**/fixtures/**')",
			},
		},
		Commands: []*cli.Command{
			indexCommand,
			searchCommand,
			statusCommand,
			watchCommand,
		},
		Action: func(c *cli.Context) error {
			return cli.ShowAppHelp(c)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "semfora: %v\n", err)
		os.Exit(exitCode(err))
	}
}
