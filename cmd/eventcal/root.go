// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package main

import (
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/eventcal/eventcal/internal/config"
	"github.com/eventcal/eventcal/internal/logging"
	"github.com/eventcal/eventcal/internal/xdg"
)

// Service identity stamped on every log record.
const (
	serviceName    = "eventcal"
	serviceVersion = "dev"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the EventCal CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eventcal",
		Short: "EventCal - calendar events with pluggable storage",
		Long: `EventCal manages user accounts and calendar events on top of a
pluggable storage layer: a direct-SQL PostgreSQL backend or an
ORM-backed one, selected by configuration.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default $XDG_CONFIG_HOME/eventcal/config.yaml)")
	cmd.PersistentFlags().String("storage.backend", config.BackendPostgres, "storage backend (postgres or orm)")
	cmd.PersistentFlags().String("database.url", "", "database connection URL")
	cmd.PersistentFlags().String("log.format", "json", "log format (json or text)")
	cmd.PersistentFlags().String("log.level", "info", "log level (debug, info, warn, or error)")

	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewEventsCmd())

	return cmd
}

// loadConfig resolves the effective configuration for a command and
// installs the default logger. Every invocation gets a unique run id so
// log lines from one run correlate.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := configFile
	if path == "" {
		if def, ok := xdg.DefaultConfigFile(); ok {
			path = def
		}
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}

	logging.SetDefault(serviceName, serviceVersion, cfg.Log.Format, cfg.Log.Level)
	slog.SetDefault(slog.Default().With("run_id", ulid.Make().String()))

	return cfg, nil
}
