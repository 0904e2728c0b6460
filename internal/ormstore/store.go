// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package ormstore

import (
	"github.com/glebarez/sqlite"
	"github.com/samber/oops"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store owns a GORM session and hands out the repositories bound to it.
type Store struct {
	db *gorm.DB
}

// OpenPostgres opens a Store against PostgreSQL.
func OpenPostgres(dsn string) (*Store, error) {
	return open(postgres.Open(dsn))
}

// OpenSQLite opens a Store against SQLite; path ":memory:" gives an
// in-process throwaway database, which the contract tests use.
func OpenSQLite(path string) (*Store, error) {
	return open(sqlite.Open(path))
}

func open(dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		// Dialect errors (unique violations and friends) become
		// gorm sentinels so the repositories can map them to the
		// domain taxonomy.
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, oops.Code("ORM_OPEN_FAILED").
			With("operation", "open gorm session").
			Wrap(err)
	}
	return &Store{db: db}, nil
}

// AutoMigrate creates or updates the schema for the mapped models.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&userModel{}, &eventModel{}); err != nil {
		return oops.Code("ORM_MIGRATE_FAILED").
			With("operation", "auto-migrate models").
			Wrap(err)
	}
	return nil
}

// Users returns the user repository bound to this store.
func (s *Store) Users() *UserRepository {
	return &UserRepository{db: s.db}
}

// Events returns the event repository bound to this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return oops.Code("ORM_CLOSE_FAILED").Wrap(err)
	}
	if err := sqlDB.Close(); err != nil {
		return oops.Code("ORM_CLOSE_FAILED").Wrap(err)
	}
	return nil
}
