package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"roomtrooper/internal/config"
	"roomtrooper/internal/directory"
)

// appContext carries the lazily initialized config, logger, and directory
// client shared by every subcommand.
type appContext struct {
	cfg    *config.Config
	logger *zap.Logger
	client *directory.Client
}

// ensure loads config and wires the client on first use. A missing required
// environment variable aborts here, before any row is touched.
func (a *appContext) ensure() error {
	if a.client != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.client = directory.NewClient(directory.Config{
		GraphQLURL:   cfg.GraphQLURL,
		TokenURL:     cfg.AuthURL,
		TenantID:     cfg.TenantID,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Timeout:      cfg.RequestTimeout,
	}, logger)
	return nil
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func newRootCommand() *cobra.Command {
	app := &appContext{}

	rootCmd := &cobra.Command{
		Use:           "roomtrooper",
		Short:         "Bulk room reconciliation against the Lens directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.ensure()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, app)
		},
	}

	rootCmd.AddCommand(newExportCommand(app))
	rootCmd.AddCommand(newUpdateCommand(app))
	rootCmd.AddCommand(newCreateCommand(app))

	return rootCmd
}
