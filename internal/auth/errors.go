// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package auth

import "errors"

// Sentinel errors for the authentication domain. Call sites wrap these
// with oops codes and context; errors.Is sees through the wrapping.
var (
	// ErrNotFound is returned by repositories when no user record matches.
	ErrNotFound = errors.New("not found")

	// ErrUserNotFound is returned by the lookup service when no account
	// exists for the attempted username. Distinct from ErrBadCredentials
	// so upstream callers can tell the cases apart; user-facing surfaces
	// must collapse both into one generic failure.
	ErrUserNotFound = errors.New("user not found")

	// ErrBadCredentials is returned when the account exists but the
	// supplied password does not verify against the stored hash.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrAccountDisabled is returned when the account exists and the
	// password verifies, but the account is disabled.
	ErrAccountDisabled = errors.New("account disabled")

	// ErrUnsupportedCredential is returned when a credential of a kind
	// the provider does not handle is passed to Authenticate.
	ErrUnsupportedCredential = errors.New("unsupported credential kind")

	// ErrEmailInUse is returned when creating a user whose email is
	// already registered.
	ErrEmailInUse = errors.New("email already in use")
)
