package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/expgridgo/internal/ctxlog"
	"github.com/vk/expgridgo/internal/experiment"
	"github.com/vk/expgridgo/internal/grid"
	"github.com/vk/expgridgo/internal/hclgrid"
	"github.com/vk/expgridgo/internal/parallel"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.HealthcheckPort > 0 {
		go a.startHealthcheckServer(ctx, appConfig.HealthcheckPort)
	}

	spaces, err := a.collectSpaces(ctx, appConfig)
	if err != nil {
		return err
	}
	if len(spaces) == 0 {
		a.logger.Warn("No search spaces found, nothing to expand.")
		return nil
	}

	// Deterministic processing order across runs.
	names := make([]string, 0, len(spaces))
	for name := range spaces {
		names = append(names, name)
	}
	sort.Strings(names)

	total := 0
	for _, name := range names {
		count, err := a.runSpace(ctx, appConfig, name, spaces[name])
		if err != nil {
			return fmt.Errorf("space %q: %w", name, err)
		}
		total += count
	}

	a.logger.Info("🏁 Expansion finished.", "spaces", len(names), "experiments", total)
	return nil
}

// collectSpaces merges the search spaces from the grid path and from the
// registry lookup, when either is configured.
func (a *App) collectSpaces(ctx context.Context, appConfig *Config) (map[string]grid.SearchSpace, error) {
	spaces := make(map[string]grid.SearchSpace)

	if appConfig.GridPath != "" {
		loaded, err := hclgrid.Load(ctx, appConfig.GridPath)
		if err != nil {
			return nil, fmt.Errorf("loading search spaces: %w", err)
		}
		spaces = loaded
	}

	if appConfig.Group != "" {
		space, err := a.registry.Get(appConfig.Group)
		if err != nil {
			return nil, err
		}
		if _, exists := spaces[appConfig.Group]; exists {
			return nil, fmt.Errorf("group %q is declared both in files and in the registry", appConfig.Group)
		}
		spaces[appConfig.Group] = space
	}

	return spaces, nil
}

// runSpace expands a single search space, guards it against identity
// collisions, and persists one record per configuration, each on its own
// concurrent task. Returns the number of experiments in the space.
func (a *App) runSpace(ctx context.Context, appConfig *Config, name string, space grid.SearchSpace) (int, error) {
	logger := ctxlog.FromContext(ctx).With("space", name)

	configs, err := grid.Expand(space)
	if err != nil {
		return 0, err
	}
	logger.Debug("Search space expanded.", "configs", len(configs))

	records, err := experiment.FromConfigs(configs, appConfig.SavedirBase)
	if err != nil {
		return 0, err
	}

	if appConfig.DryRun {
		for _, rec := range records {
			fmt.Fprintf(a.outW, "%s  %v\n", rec.ID, rec.Config)
		}
		logger.Info("Dry run, nothing persisted.", "experiments", len(records))
		return len(records), nil
	}

	logger.Info("🚀 Persisting experiment records...", "experiments", len(records))
	var runner parallel.Runner
	for _, rec := range records {
		rec := rec
		runner.Add(rec.ID, rec.Save)
	}
	runner.Run()
	if err := runner.Wait(); err != nil {
		return 0, fmt.Errorf("persisting records: %w", err)
	}

	logger.Debug("All records persisted.")
	return len(records), nil
}
