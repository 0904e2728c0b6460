// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package main

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/eventcal/eventcal/internal/auth"
	authpg "github.com/eventcal/eventcal/internal/auth/postgres"
	"github.com/eventcal/eventcal/internal/config"
	"github.com/eventcal/eventcal/internal/events"
	eventspg "github.com/eventcal/eventcal/internal/events/postgres"
	"github.com/eventcal/eventcal/internal/ormstore"
	"github.com/eventcal/eventcal/internal/store"
)

// repositories bundles the storage backend selected by configuration.
// Close releases the underlying pool or session.
type repositories struct {
	Users  auth.UserRepository
	Events events.EventRepository
	Close  func()
}

// openRepositories wires the backend named in the configuration. Both
// backends come back behind the same contracts; callers cannot tell
// them apart.
func openRepositories(ctx context.Context, cfg config.Config, logger *slog.Logger) (*repositories, error) {
	if cfg.Database.URL == "" {
		return nil, oops.Code("CONFIG_INVALID").Errorf("database.url is required")
	}

	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := store.Connect(ctx, cfg.Database.URL, logger)
		if err != nil {
			return nil, err
		}
		return &repositories{
			Users:  authpg.NewUserRepository(pool),
			Events: eventspg.NewEventRepository(pool),
			Close:  pool.Close,
		}, nil

	case config.BackendORM:
		st, err := ormstore.OpenPostgres(cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		// The ORM backend owns its schema the GORM way.
		if err := st.AutoMigrate(); err != nil {
			_ = st.Close() //nolint:errcheck // open error takes precedence
			return nil, err
		}
		return &repositories{
			Users:  st.Users(),
			Events: st.Events(),
			Close:  func() { _ = st.Close() },
		}, nil

	default:
		return nil, oops.Code("CONFIG_INVALID").
			With("storage.backend", cfg.Storage.Backend).
			Errorf("unknown storage backend")
	}
}
