// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventcal/eventcal/internal/auth"
	"github.com/eventcal/eventcal/internal/events"
)

var eventColumns = []string{
	"id", "summary", "description", "event_date",
	"id", "email", "password_hash", "enabled", "roles",
	"id", "email", "password_hash", "enabled", "roles",
}

func birthdayRow(rows *pgxmock.Rows, when time.Time) *pgxmock.Rows {
	return rows.AddRow(
		int64(100), "Birthday Party", "Time to have fun", when,
		int64(2), "user2@baselogic.com", "h2", true, []string{"USER"},
		int64(1), "user1@baselogic.com", "h1", true, []string{"USER"},
	)
}

func TestEventRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	when := time.Date(2026, 7, 3, 18, 30, 0, 0, time.UTC)

	t.Run("materializes the event with both users", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE e.id = $1`)).
			WithArgs(int64(100)).
			WillReturnRows(birthdayRow(pgxmock.NewRows(eventColumns), when))

		repo := NewEventRepository(mock)
		event, err := repo.FindByID(ctx, 100)
		require.NoError(t, err)

		assert.Equal(t, int64(100), event.ID)
		assert.Equal(t, "Birthday Party", event.Summary)
		assert.Equal(t, when, event.When)
		require.NotNil(t, event.Owner)
		assert.Equal(t, int64(2), event.Owner.ID)
		assert.Equal(t, []auth.Role{auth.RoleUser}, event.Owner.Roles)
		require.NotNil(t, event.Attendee)
		assert.Equal(t, "user1@baselogic.com", event.Attendee.Email)
	})

	t.Run("no rows maps to events.ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE e.id = $1`)).
			WithArgs(int64(99)).
			WillReturnRows(pgxmock.NewRows(eventColumns))

		repo := NewEventRepository(mock)
		_, err = repo.FindByID(ctx, 99)
		assert.ErrorIs(t, err, events.ErrNotFound)
	})
}

func TestEventRepository_FindByUser(t *testing.T) {
	ctx := context.Background()
	when := time.Date(2026, 7, 3, 18, 30, 0, 0, time.UTC)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE e.owner_id = $1 OR e.attendee_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(birthdayRow(pgxmock.NewRows(eventColumns), when))

	repo := NewEventRepository(mock)
	found, err := repo.FindByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].InvolvesUser(1))
}

func TestEventRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	when := time.Date(2026, 7, 3, 18, 30, 0, 0, time.UTC)

	t.Run("returns every event", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := birthdayRow(pgxmock.NewRows(eventColumns), when).AddRow(
			int64(101), "Conference Call", "Discuss plans", when.Add(24*time.Hour),
			int64(3), "admin1@baselogic.com", "h3", true, []string{"USER", "ADMIN"},
			int64(2), "user2@baselogic.com", "h2", true, []string{"USER"},
		)
		mock.ExpectQuery(`ORDER BY e.id`).WillReturnRows(rows)

		repo := NewEventRepository(mock)
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Conference Call", all[1].Summary)
		assert.Equal(t, []auth.Role{auth.RoleUser, auth.RoleAdmin}, all[1].Owner.Roles)
	})

	t.Run("query error propagates", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		dbErr := errors.New("connection reset")
		mock.ExpectQuery(`ORDER BY e.id`).WillReturnError(dbErr)

		repo := NewEventRepository(mock)
		_, err = repo.FindAll(ctx)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestEventRepository_Save(t *testing.T) {
	ctx := context.Background()
	when := time.Date(2026, 7, 3, 18, 30, 0, 0, time.UTC)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO events`)).
		WithArgs("Birthday Party", "Time to have fun", when, int64(2), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(100)))

	repo := NewEventRepository(mock)
	event := &events.Event{
		Summary:     "Birthday Party",
		Description: "Time to have fun",
		When:        when,
		Owner:       &auth.AppUser{ID: 2},
		Attendee:    &auth.AppUser{ID: 1},
	}
	id, err := repo.Save(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, int64(100), id)
	assert.Equal(t, int64(100), event.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
