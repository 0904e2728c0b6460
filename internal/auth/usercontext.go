// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package auth

import (
	"context"
	"sync"

	"github.com/samber/oops"
)

// UserContext holds the authenticated user for one logical request or
// session. Each request gets its own instance; the slot is never shared
// across concurrent callers. The slot starts empty, is set once after
// authentication, and is read many times.
//
// SetCurrentUser is an atomic check-then-set: a rejected assignment
// leaves the previously installed user untouched.
type UserContext struct {
	mu   sync.RWMutex
	user *AppUser
}

// NewUserContext creates an empty UserContext.
func NewUserContext() *UserContext {
	return &UserContext{}
}

// SetCurrentUser installs the authenticated user.
//
// A nil user fails with ErrNilCurrentUser; a transient user (no
// store-assigned id) fails with ErrTransientCurrentUser. Neither
// failure mutates the slot.
func (c *UserContext) SetCurrentUser(user *AppUser) error {
	if user == nil {
		return oops.Code("AUTH_NIL_CURRENT_USER").Wrap(ErrNilCurrentUser)
	}
	if !user.IsPersisted() {
		return oops.Code("AUTH_TRANSIENT_CURRENT_USER").
			With("email", user.Email).
			Wrap(ErrTransientCurrentUser)
	}

	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
	return nil
}

// CurrentUser returns the installed user, or false if the slot is empty.
// Pure read, no validation.
func (c *UserContext) CurrentUser() (*AppUser, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil, false
	}
	return c.user, true
}

// Errors for invalid current-user assignments.
var (
	// ErrNilCurrentUser rejects installing a nil user.
	ErrNilCurrentUser = oops.Errorf("current user must not be nil")

	// ErrTransientCurrentUser rejects installing a user without a
	// store-assigned id.
	ErrTransientCurrentUser = oops.Errorf("current user must be persisted")
)

// userContextKey keys a *UserContext inside a context.Context.
type userContextKey struct{}

// NewContext binds a UserContext to ctx so the identity threads
// explicitly through the call path. The request lifecycle creates one
// UserContext per inbound request and binds it here.
func NewContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, uc)
}

// FromContext returns the UserContext bound to ctx, if any.
func FromContext(ctx context.Context) (*UserContext, bool) {
	uc, ok := ctx.Value(userContextKey{}).(*UserContext)
	return uc, ok
}

// CurrentUserFromContext returns the user installed in the UserContext
// bound to ctx. ok is false when no context is bound or the slot is
// empty.
func CurrentUserFromContext(ctx context.Context) (*AppUser, bool) {
	uc, ok := FromContext(ctx)
	if !ok {
		return nil, false
	}
	return uc.CurrentUser()
}
