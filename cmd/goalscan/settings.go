package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/solarreach/goalscan/internal/checks"
	"github.com/solarreach/goalscan/internal/corpus"
	"github.com/solarreach/goalscan/internal/goals"
	"github.com/solarreach/goalscan/internal/orchestration"
	"github.com/solarreach/goalscan/internal/projectconfig"
)

// pathFlags are the location flags shared by every subcommand.
type pathFlags struct {
	root  string
	goals string
}

func (p *pathFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.root, "root", "", "Project root to scan (default: from .goalscan.yaml, else current directory)")
	cmd.Flags().StringVar(&p.goals, "goals", "", "Path to the goals JSON document (default: <root>/data/feature-goals.json)")
}

// loadConfig reads .goalscan.yaml starting from --root (or the working
// directory) and applies the flags on top. Flags win over the file.
func (p *pathFlags) loadConfig() (*projectconfig.ProjectConfig, error) {
	start := p.root
	if start == "" {
		start = "."
	}
	cfg, err := projectconfig.Load(start)
	if err != nil {
		return nil, err
	}
	if p.root != "" {
		abs, err := filepath.Abs(p.root)
		if err != nil {
			return nil, fmt.Errorf("resolving --root: %w", err)
		}
		cfg.Paths.Root = abs
	}
	if p.goals != "" {
		abs, err := filepath.Abs(p.goals)
		if err != nil {
			return nil, fmt.Errorf("resolving --goals: %w", err)
		}
		cfg.Paths.Goals = abs
	}
	return cfg, nil
}

// newScanner wires the store, detector registry and corpus described by cfg.
func newScanner(cfg *projectconfig.ProjectConfig) (*orchestration.Scanner, *goals.FileStore, error) {
	reg, err := checks.BuiltinRegistry(cfg.Detectors)
	if err != nil {
		return nil, nil, fmt.Errorf("configuring detectors: %w", err)
	}
	c, err := corpus.New(cfg.RootPath())
	if err != nil {
		return nil, nil, err
	}
	store := goals.NewFileStore(cfg.GoalsPath())
	scanner := orchestration.NewScanner(store, reg, c, orchestration.WithWorkers(cfg.Scan.Workers))
	return scanner, store, nil
}
