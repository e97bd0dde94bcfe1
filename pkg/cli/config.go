package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/agentlog/agentlog/pkg/adapter"
	"github.com/agentlog/agentlog/pkg/policy"
	"github.com/agentlog/agentlog/pkg/store"
	"github.com/agentlog/agentlog/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// config holds configuration values shared across commands
type config struct {
	filePath  string
	capacity  int64
	policyDir string
	logLevel  string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "Path to the activity journal file",
			Sources:     cli.EnvVars("AGENTLOG_FILE"),
			Destination: &cfg.filePath,
		},
		&cli.IntFlag{
			Name:        "capacity",
			Usage:       "Maximum number of retained records",
			Value:       store.DefaultCapacity,
			Sources:     cli.EnvVars("AGENTLOG_CAPACITY"),
			Destination: &cfg.capacity,
		},
		&cli.StringFlag{
			Name:        "policy",
			Usage:       "Directory of Rego ingestion policies",
			Sources:     cli.EnvVars("AGENTLOG_POLICY_DIR"),
			Destination: &cfg.policyDir,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("AGENTLOG_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// setup attaches a configured logger to the context
func (cfg *config) setup(ctx context.Context) context.Context {
	logger := logging.New(cfg.logLevel, os.Stderr)
	logging.SetDefault(logger)
	return logging.With(ctx, logger)
}

// journalPath resolves the journal file, defaulting to
// ~/.agentlog/activities.json
func (cfg *config) journalPath() (string, error) {
	if cfg.filePath != "" {
		return cfg.filePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve home directory")
	}
	return filepath.Join(home, ".agentlog", "activities.json"), nil
}

// newStore creates a store over the configured journal file
func (cfg *config) newStore() (*store.Store, error) {
	path, err := cfg.journalPath()
	if err != nil {
		return nil, err
	}
	return store.New(adapter.NewFile(path), store.WithCapacity(int(cfg.capacity))), nil
}

// newGate loads the ingestion policy, or returns nil when none is configured
func (cfg *config) newGate(ctx context.Context) (*policy.Gate, error) {
	if cfg.policyDir == "" {
		return nil, nil
	}
	gate, err := policy.New(ctx, cfg.policyDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load ingestion policy")
	}
	return gate, nil
}
