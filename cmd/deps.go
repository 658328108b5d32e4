// Package cmd provides CLI commands for the mintel tool.
package cmd

import (
	"io"
	"os"

	"github.com/otherjamesbrown/mintel-cli/config"
	"github.com/otherjamesbrown/mintel-cli/credentials"
	"github.com/otherjamesbrown/mintel-cli/pkg/augment"
	"github.com/otherjamesbrown/mintel-cli/pkg/dataset"
	"github.com/otherjamesbrown/mintel-cli/pkg/engine"
	"github.com/otherjamesbrown/mintel-cli/pkg/logging"
	"github.com/otherjamesbrown/mintel-cli/pkg/observability"
	"github.com/otherjamesbrown/mintel-cli/pkg/snapshot"
	"github.com/otherjamesbrown/mintel-cli/pkg/temporal"
)

// Deps holds the dependencies for commands. Tests swap these for stubs.
type Deps struct {
	LoadConfig func() (*config.CLIConfig, error)
	NewEngine  func(cfg *config.CLIConfig) *engine.Engine
	Out        io.Writer
}

// DefaultDeps returns the production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		LoadConfig: config.LoadConfig,
		NewEngine:  buildEngine,
		Out:        os.Stdout,
	}
}

// buildEngine wires the full query pipeline from configuration.
func buildEngine(cfg *config.CLIConfig) *engine.Engine {
	level := logging.LevelInfo
	if cfg.Debug {
		level = logging.LevelDebug
	}
	log := logging.NewLogger(&logging.Config{
		Level:       level,
		ServiceName: "mintel",
		JSONFormat:  cfg.OutputFormat == config.OutputFormatJSON,
	})
	metrics := observability.DefaultQueryMetrics()

	loader := snapshot.NewLoader(cfg.SnapshotPath, log, metrics)
	cache := dataset.NewCache(loader.Load)
	resolver := temporal.NewResolver(cfg.Location())

	opts := engine.Options{
		Cache:    cache,
		Resolver: resolver,
		Logger:   log,
		Metrics:  metrics,
	}

	if cfg.Augment.CalendarURL != "" {
		tokens := credentials.DefaultTokenProvider()
		opts.Calendar = augment.NewCalendarClient(
			cfg.Augment.CalendarURL, cfg.Augment.Timeout, tokens.Token, log, metrics)
	}
	if cfg.Augment.SimilarityURL != "" {
		opts.Similarity = augment.NewSimilarityClient(
			cfg.Augment.SimilarityURL, cfg.Augment.Timeout, log, metrics)
	}
	if cfg.Augment.CategorizerURL != "" {
		opts.Categorizer = augment.NewCategorizerClient(
			cfg.Augment.CategorizerURL, cfg.Augment.Timeout, log, metrics)
	}

	return engine.New(opts)
}

// loadAndBuild resolves config and engine in one step for RunE bodies.
func (d *Deps) loadAndBuild() (*config.CLIConfig, *engine.Engine, error) {
	cfg, err := d.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, d.NewEngine(cfg), nil
}
