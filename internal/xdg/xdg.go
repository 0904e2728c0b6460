// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

// Package xdg provides XDG Base Directory paths for eventcal.
package xdg

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"
)

const appName = "eventcal"

// ConfigDir returns the XDG config directory for eventcal.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appName)
}

// DefaultConfigFile returns the path of the default config file, and
// whether it exists.
func DefaultConfigFile() (string, bool) {
	path := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return path, false
	}
	return path, true
}

// EnsureDir creates a directory and all parent directories if they
// don't exist. Directories are created with 0700 permissions.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return oops.Code("DIR_CREATE_FAILED").
			With("path", path).
			Wrap(err)
	}
	return nil
}
