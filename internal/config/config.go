// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

// Package config loads application configuration from defaults, an
// optional YAML file, and command-line flags, in that order of
// precedence (later sources win).
package config

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Storage backend identifiers.
const (
	BackendPostgres = "postgres"
	BackendORM      = "orm"
)

// Config is the application configuration.
type Config struct {
	Storage  StorageConfig  `koanf:"storage"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
}

// StorageConfig selects the repository backend.
type StorageConfig struct {
	// Backend is "postgres" (direct SQL over pgx) or "orm" (GORM).
	Backend string `koanf:"backend"`
}

// DatabaseConfig holds connection settings shared by both backends.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Format is "json" or "text".
	Format string `koanf:"format"`

	// Level is "debug", "info", "warn", or "error".
	Level string `koanf:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{Backend: BackendPostgres},
		Log:     LogConfig{Format: "json", Level: "info"},
	}
}

// Load builds the configuration from defaults, then the YAML file at
// path (skipped when path is empty), then the given flag set (skipped
// when nil). Flag names use dots matching the koanf paths, e.g.
// "database.url".
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_FILE_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendPostgres, BackendORM:
	default:
		return oops.Code("CONFIG_INVALID").
			With("storage.backend", c.Storage.Backend).
			Errorf("storage.backend must be %q or %q", BackendPostgres, BackendORM)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return oops.Code("CONFIG_INVALID").
			With("log.format", c.Log.Format).
			Errorf("log.format must be \"json\" or \"text\"")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return oops.Code("CONFIG_INVALID").
			With("log.level", c.Log.Level).
			Errorf("log.level must be debug, info, warn, or error")
	}
	return nil
}
