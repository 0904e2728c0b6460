// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"
)

// LookupService resolves a login name to a stored user record. It sits
// between the authentication provider and the user repository and
// translates "no record" into the domain-level ErrUserNotFound.
type LookupService struct {
	users  UserRepository
	logger *slog.Logger
}

// NewLookupService creates a LookupService. A nil logger falls back to
// slog.Default.
func NewLookupService(users UserRepository, logger *slog.Logger) *LookupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LookupService{users: users, logger: logger}
}

// LoadByUsername retrieves the user record for the given login email.
// A missing record yields ErrUserNotFound carrying the attempted email
// in the error context; the email is for logs only and must never reach
// a response body. Storage errors propagate unchanged.
func (s *LookupService) LoadByUsername(ctx context.Context, email string) (*AppUser, error) {
	normalized := NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.DebugContext(ctx, "no account for username", "email", normalized)
			return nil, oops.Code("AUTH_USER_NOT_FOUND").
				With("email", normalized).
				Wrap(ErrUserNotFound)
		}
		return nil, oops.Code("AUTH_LOOKUP_FAILED").
			With("operation", "find user by email").
			Wrap(err)
	}
	return user, nil
}
