// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marketscope/internal/analytics"
	"github.com/tomtom215/marketscope/internal/config"
	"github.com/tomtom215/marketscope/internal/database"
	"github.com/tomtom215/marketscope/internal/logging"
)

// env holds the dependencies the commands resolve at run time.
type env struct {
	loadConfig func() (*config.Config, error)
	loadTable  func(ctx context.Context, cfg *config.Config) (*analytics.Table, error)
}

func defaultEnv() *env {
	return &env{
		loadConfig: config.Load,
		loadTable:  loadTable,
	}
}

// loadTable opens the configured source and loads it once.
func loadTable(ctx context.Context, cfg *config.Config) (*analytics.Table, error) {
	source, err := database.NewSource(&cfg.Dataset, &cfg.Breaker)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := source.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing dataset source")
		}
	}()
	return database.NewLoader(source, &cfg.Dataset).Load(ctx)
}

func newRootCmd(e *env) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "marketscope-report",
		Short: "Export Marketscope dashboards as JSON or YAML reports",
		Long: `marketscope-report loads the configured dataset, computes the dashboard
for a date range and writes it to a report file.

Configuration is read the same way as the server: built-in defaults,
config.yaml (or --config) and environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if configPath != "" {
				if err := os.Setenv(config.ConfigPathEnvVar, configPath); err != nil {
					return fmt.Errorf("failed to set config path: %w", err)
				}
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newExportCmd(e), newBoundsCmd(e))
	return root
}

// setup loads the configuration, initializes logging and loads the table.
func (e *env) setup(ctx context.Context) (*config.Config, *analytics.Table, error) {
	cfg, err := e.loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.Init(logging.FromSettings(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Caller))

	table, err := e.loadTable(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, table, nil
}
