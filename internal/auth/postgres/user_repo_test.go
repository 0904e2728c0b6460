// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventcal/eventcal/internal/auth"
)

func newUserRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "email", "password_hash", "enabled", "roles"})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the matching user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(email) = LOWER($1)`)).
			WithArgs("user1@baselogic.com").
			WillReturnRows(newUserRows().
				AddRow(int64(1), "user1@baselogic.com", "$argon2id$hash", true, []string{"USER"}))

		repo := NewUserRepository(mock)
		user, err := repo.FindByEmail(ctx, "user1@baselogic.com")
		require.NoError(t, err)

		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "user1@baselogic.com", user.Email)
		assert.Equal(t, []auth.Role{auth.RoleUser}, user.Roles)
		assert.True(t, user.Enabled)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows maps to auth.ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(email) = LOWER($1)`)).
			WithArgs("nouser@x.com").
			WillReturnRows(newUserRows())

		repo := NewUserRepository(mock)
		_, err = repo.FindByEmail(ctx, "nouser@x.com")
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("database error propagates", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		dbErr := errors.New("connection refused")
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(email) = LOWER($1)`)).
			WithArgs("user1@baselogic.com").
			WillReturnError(dbErr)

		repo := NewUserRepository(mock)
		_, err = repo.FindByEmail(ctx, "user1@baselogic.com")
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the matching user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1`)).
			WithArgs(int64(2)).
			WillReturnRows(newUserRows().
				AddRow(int64(2), "admin1@baselogic.com", "h", true, []string{"USER", "ADMIN"}))

		repo := NewUserRepository(mock)
		user, err := repo.FindByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []auth.Role{auth.RoleUser, auth.RoleAdmin}, user.Roles)
	})

	t.Run("no rows maps to auth.ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1`)).
			WithArgs(int64(99)).
			WillReturnRows(newUserRows())

		repo := NewUserRepository(mock)
		_, err = repo.FindByID(ctx, 99)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestUserRepository_FindAllByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("returns matches ordered by id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`LOWER(email) LIKE '%' || LOWER($1) || '%'`)).
			WithArgs("baselogic").
			WillReturnRows(newUserRows().
				AddRow(int64(1), "user1@baselogic.com", "h", true, []string{"USER"}).
				AddRow(int64(2), "admin1@baselogic.com", "h", true, []string{"ADMIN"}))

		repo := NewUserRepository(mock)
		users, err := repo.FindAllByEmail(ctx, "baselogic")
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "user1@baselogic.com", users[0].Email)
		assert.Equal(t, "admin1@baselogic.com", users[1].Email)
	})

	t.Run("partial and column are both lowered", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		// A mixed-case partial passes through as-is; the SQL lowers
		// both sides so case never affects matching.
		mock.ExpectQuery(regexp.QuoteMeta(`LOWER(email) LIKE '%' || LOWER($1) || '%'`)).
			WithArgs("BaseLogic").
			WillReturnRows(newUserRows().
				AddRow(int64(1), "user1@baselogic.com", "h", true, []string{"USER"}))

		repo := NewUserRepository(mock)
		users, err := repo.FindAllByEmail(ctx, "BaseLogic")
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the store-assigned id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WithArgs("user3@baselogic.com", "$argon2id$hash", true, []string{"USER"}).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(4)))

		repo := NewUserRepository(mock)
		user := &auth.AppUser{
			Email:        "user3@baselogic.com",
			PasswordHash: "$argon2id$hash",
			Enabled:      true,
			Roles:        []auth.Role{auth.RoleUser},
		}
		id, err := repo.Create(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, int64(4), id)
		assert.Equal(t, int64(4), user.ID)
	})

	t.Run("unique violation maps to auth.ErrEmailInUse", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WithArgs("user1@baselogic.com", "h", true, []string{"USER"}).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		repo := NewUserRepository(mock)
		_, err = repo.Create(ctx, &auth.AppUser{
			Email:        "user1@baselogic.com",
			PasswordHash: "h",
			Enabled:      true,
			Roles:        []auth.Role{auth.RoleUser},
		})
		assert.ErrorIs(t, err, auth.ErrEmailInUse)
	})
}
