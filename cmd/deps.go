package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/secjobcoach/internal/coach"
	"github.com/abhisek/secjobcoach/internal/config"
	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/logging"
	"github.com/abhisek/secjobcoach/internal/store"
)

// deps is everything a command needs, opened from flags and environment.
type deps struct {
	cfg    config.Config
	logger *logging.Logger
	store  *store.Store
	coach  *coach.Coach
}

// openDeps loads configuration, then opens the logger, the store and the
// coach. console enables the stderr log handler, which the TUI turns off.
func openDeps(cmd *cobra.Command, console bool) (*deps, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	logOpts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}
	if console {
		logOpts.Console = cmd.ErrOrStderr()
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("open logger: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", "path", dbPath)

	c := coach.FromStore(st, coach.Options{
		Catalog:  content.Default(),
		Location: loc,
		DueLimit: cfg.DueLimitOrDefault(),
		Logger:   logger.Logger,
	})
	return &deps{cfg: cfg, logger: logger, store: st, coach: c}, nil
}

// Close releases the store and the log file.
func (d *deps) Close() {
	if err := d.store.Close(); err != nil {
		d.logger.Warn("close store", "err", err)
	}
	d.logger.Close()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SECJOBCOACH_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
