// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package auth

import (
	"context"
	"net/mail"
	"strings"

	"github.com/samber/oops"
)

// Role is a coarse-grained permission group assigned to a user.
type Role string

// Roles known to the system.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// authorityPrefix is prepended to role names when deriving principal
// authorities, matching the convention of the upstream security layer.
const authorityPrefix = "ROLE_"

// Authority returns the authority string for the role.
func (r Role) Authority() string {
	return authorityPrefix + string(r)
}

// AppUser is a stored user account. The email doubles as the login name.
// PasswordHash is write-only from the caller's perspective: it is set
// when the account is created and only ever read by the verifier.
type AppUser struct {
	ID           int64
	Email        string
	PasswordHash string
	Enabled      bool
	Roles        []Role
}

// IsPersisted reports whether the user carries a store-assigned id.
// A transient user (ID == 0) is never a valid current user.
func (u *AppUser) IsPersisted() bool {
	return u.ID > 0
}

// Authorities derives the authority strings from the user's role set.
func (u *AppUser) Authorities() []string {
	authorities := make([]string, len(u.Roles))
	for i, role := range u.Roles {
		authorities[i] = role.Authority()
	}
	return authorities
}

// NormalizeEmail lowercases and trims an email for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that an email is syntactically plausible as a
// login name.
func ValidateEmail(email string) error {
	if email == "" {
		return oops.Code("AUTH_INVALID_EMAIL").Errorf("email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return oops.Code("AUTH_INVALID_EMAIL").
			With("email", email).
			Wrap(err)
	}
	return nil
}

// UserRepository is the read-mostly store of user records. Both storage
// backends implement it; implementations return ErrNotFound (wrapped)
// when no record matches and ErrEmailInUse on duplicate email creates.
type UserRepository interface {
	// FindByEmail retrieves a user by email (case-insensitive).
	FindByEmail(ctx context.Context, email string) (*AppUser, error)

	// FindByID retrieves a user by its store-assigned id.
	FindByID(ctx context.Context, id int64) (*AppUser, error)

	// FindAllByEmail retrieves users whose email contains the partial,
	// ordered by id.
	FindAllByEmail(ctx context.Context, partial string) ([]*AppUser, error)

	// Create stores a new user and returns the store-assigned id.
	// The id on the passed user must be unset.
	Create(ctx context.Context, user *AppUser) (int64, error)
}
