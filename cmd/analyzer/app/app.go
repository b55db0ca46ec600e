// Package app wires the analyzer CLI's collaborators together. The GitHub
// client and analyzer are constructed once per invocation and handed to
// every subcommand explicitly.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/onrampdev/onramp/pkg/analyzer"
	"github.com/onrampdev/onramp/pkg/config"
	"github.com/onrampdev/onramp/pkg/gh"
	"github.com/onrampdev/onramp/pkg/logger"
)

// App bundles the shared dependencies of the analyzer subcommands.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Analyzer *analyzer.Analyzer
	Version  string
}

// Provider builds the App after flags are parsed.
type Provider func() (*App, error)

// Load builds the full dependency graph: config, logger, GitHub client,
// analyzer.
func Load(cfgFile string, debug bool, version string) (*App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	// Logs go to stderr: stdout belongs to the MCP stdio transport and to
	// report output.
	log := logger.NewStderrLogger(debug || cfg.LogLevel == "debug")

	client := gh.New(context.Background(), cfg.GitHub.Token,
		gh.WithRateLimit(cfg.GitHub.RateLimit),
		gh.WithLogger(log),
	)

	if cfg.GitHub.Token == "" {
		log.Warn("no GitHub token configured, using unauthenticated API access")
	}

	return &App{
		Config:   cfg,
		Logger:   log,
		Analyzer: analyzer.New(client, analyzer.WithLogger(log)),
		Version:  version,
	}, nil
}
