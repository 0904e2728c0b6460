// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

// Package postgres implements the auth user repository with direct SQL
// over pgx.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/eventcal/eventcal/internal/auth"
)

// dbPool is the subset of pgxpool.Pool the repository uses. pgxmock
// satisfies it for unit tests.
type dbPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository implements auth.UserRepository using PostgreSQL.
type UserRepository struct {
	pool dbPool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool dbPool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, enabled, roles`

// FindByEmail retrieves a user by email (case-insensitive).
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*auth.AppUser, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("email", email).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_FIND_BY_EMAIL_FAILED").
			With("operation", "find user by email").
			With("email", email).
			Wrap(err)
	}
	return user, nil
}

// FindByID retrieves a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*auth.AppUser, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("id", id).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_FIND_BY_ID_FAILED").
			With("operation", "find user by id").
			With("id", id).
			Wrap(err)
	}
	return user, nil
}

// FindAllByEmail retrieves users whose email contains the partial,
// case-insensitively like FindByEmail, ordered by id.
func (r *UserRepository) FindAllByEmail(ctx context.Context, partial string) ([]*auth.AppUser, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) LIKE '%' || LOWER($1) || '%'
		ORDER BY id
	`, partial)
	if err != nil {
		return nil, oops.Code("USER_FIND_ALL_FAILED").
			With("operation", "find users by partial email").
			Wrap(err)
	}
	defer rows.Close()

	var users []*auth.AppUser
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, oops.Code("USER_SCAN_FAILED").
				With("operation", "scan user row").
				Wrap(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("USER_FIND_ALL_FAILED").
			With("operation", "iterate user rows").
			Wrap(err)
	}
	return users, nil
}

// Create stores a new user and returns the store-assigned id. A
// duplicate email yields auth.ErrEmailInUse.
func (r *UserRepository) Create(ctx context.Context, user *auth.AppUser) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, enabled, roles)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		user.Email,
		user.PasswordHash,
		user.Enabled,
		rolesToStrings(user.Roles),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, oops.Code("USER_EMAIL_IN_USE").
				With("email", user.Email).
				Wrap(auth.ErrEmailInUse)
		}
		return 0, oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			With("email", user.Email).
			Wrap(err)
	}
	user.ID = id
	return id, nil
}

// scanUser scans a single row into an AppUser. Callers handle
// pgx.ErrNoRows, which propagates unchanged.
func scanUser(row pgx.Row) (*auth.AppUser, error) {
	var (
		user  auth.AppUser
		roles []string
	)
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Enabled, &roles)
	if err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with context-specific info
	}
	user.Roles = rolesFromStrings(roles)
	return &user, nil
}

func rolesToStrings(roles []auth.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func rolesFromStrings(raw []string) []auth.Role {
	out := make([]auth.Role, len(raw))
	for i, s := range raw {
		out[i] = auth.Role(s)
	}
	return out
}

var _ auth.UserRepository = (*UserRepository)(nil)
