// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

//go:build integration

package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/eventcal/eventcal/internal/auth"
	authpg "github.com/eventcal/eventcal/internal/auth/postgres"
	"github.com/eventcal/eventcal/internal/events"
	"github.com/eventcal/eventcal/internal/events/postgres"
	"github.com/eventcal/eventcal/internal/store"
)

// testPool is the shared database pool for integration tests.
var testPool *pgxpool.Pool

// TestMain sets up a PostgreSQL testcontainer and runs the migrations.
func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("eventcal_test"),
		tcpostgres.WithUsername("eventcal"),
		tcpostgres.WithPassword("eventcal"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		panic("failed to start postgres container: " + err.Error())
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to get connection string: " + err.Error())
	}

	migrator, err := store.NewMigrator(connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to create migrator: " + err.Error())
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		_ = container.Terminate(ctx)
		panic("failed to run migrations: " + err.Error())
	}
	_ = migrator.Close()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		panic("failed to create pool: " + err.Error())
	}
	testPool = pool

	code := m.Run()

	pool.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func createTestUser(ctx context.Context, t *testing.T, email string) *auth.AppUser {
	t.Helper()
	repo := authpg.NewUserRepository(testPool)

	user := &auth.AppUser{
		Email:        email,
		PasswordHash: "$argon2id$testhash",
		Enabled:      true,
		Roles:        []auth.Role{auth.RoleUser},
	}
	_, err := repo.Create(ctx, user)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = testPool.Exec(ctx, `DELETE FROM events WHERE owner_id = $1 OR attendee_id = $1`, user.ID)
		_, _ = testPool.Exec(ctx, `DELETE FROM users WHERE id = $1`, user.ID)
	})

	return user
}

func TestEventRepositoryIntegration_SaveAndFindByID(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewEventRepository(testPool)

	owner := createTestUser(ctx, t, "party-owner@baselogic.com")
	attendee := createTestUser(ctx, t, "party-guest@baselogic.com")

	when := time.Date(2026, 7, 3, 18, 30, 0, 0, time.UTC)
	event := &events.Event{
		Summary:     "Birthday Party",
		Description: "Time to have fun and eat cake",
		When:        when,
		Owner:       owner,
		Attendee:    attendee,
	}
	id, err := repo.Save(ctx, event)
	require.NoError(t, err)
	require.Positive(t, id)

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Birthday Party", found.Summary)
	assert.True(t, found.When.Equal(when))
	assert.Equal(t, owner.ID, found.Owner.ID)
	assert.Equal(t, owner.Email, found.Owner.Email)
	assert.Equal(t, attendee.ID, found.Attendee.ID)
	assert.Equal(t, []auth.Role{auth.RoleUser}, found.Attendee.Roles)
}

func TestEventRepositoryIntegration_FindByID_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewEventRepository(testPool)

	_, err := repo.FindByID(ctx, 1<<40)
	require.Error(t, err)
	assert.ErrorIs(t, err, events.ErrNotFound)
}

func TestEventRepositoryIntegration_FindByUser(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewEventRepository(testPool)

	owner := createTestUser(ctx, t, "fbu-owner@baselogic.com")
	attendee := createTestUser(ctx, t, "fbu-guest@baselogic.com")
	bystander := createTestUser(ctx, t, "fbu-bystander@baselogic.com")

	when := time.Now().UTC().Truncate(time.Microsecond)
	first, err := repo.Save(ctx, &events.Event{
		Summary: "Conference Call", When: when, Owner: owner, Attendee: attendee,
	})
	require.NoError(t, err)
	second, err := repo.Save(ctx, &events.Event{
		Summary: "Vacation", When: when.Add(time.Hour), Owner: attendee, Attendee: owner,
	})
	require.NoError(t, err)

	t.Run("covers owner and attendee sides in id order", func(t *testing.T) {
		found, err := repo.FindByUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, first, found[0].ID)
		assert.Equal(t, second, found[1].ID)
	})

	t.Run("uninvolved user sees nothing", func(t *testing.T) {
		found, err := repo.FindByUser(ctx, bystander.ID)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("repeated reads are identical", func(t *testing.T) {
		a, err := repo.FindByUser(ctx, owner.ID)
		require.NoError(t, err)
		b, err := repo.FindByUser(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}
