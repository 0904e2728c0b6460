// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/eventcal/eventcal/internal/auth"
)

// ErrNoCurrentUser is returned when an operation needs the current user
// and none is installed in the request's UserContext.
var ErrNoCurrentUser = oops.Errorf("no current user")

// Service is the façade over the event repository and the user store.
// It owns the validation policy: the repository passed to NewService is
// wrapped with the shared Validating decorator, so every backend behind
// the service enforces the same invariants.
type Service struct {
	events EventRepository
	users  auth.UserRepository
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewService creates a Service over the given backend repository and
// user store. A nil logger falls back to slog.Default.
func NewService(events EventRepository, users auth.UserRepository, hasher auth.PasswordHasher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		events: NewValidating(events),
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// CreateEvent validates and stores a new event, returning its assigned id.
func (s *Service) CreateEvent(ctx context.Context, event *Event) (int64, error) {
	id, err := s.events.Save(ctx, event)
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "event created",
		"event_id", id,
		"owner_id", event.Owner.ID,
		"attendee_id", event.Attendee.ID,
	)
	return id, nil
}

// CreateEventForCurrentUser stores a new event owned by the user
// installed in the UserContext bound to ctx, with the attendee resolved
// by email.
func (s *Service) CreateEventForCurrentUser(ctx context.Context, summary, description string, when time.Time, attendeeEmail string) (int64, error) {
	owner, ok := auth.CurrentUserFromContext(ctx)
	if !ok {
		return 0, oops.Code("EVENT_NO_CURRENT_USER").Wrap(ErrNoCurrentUser)
	}

	attendee, err := s.FindUserByEmail(ctx, attendeeEmail)
	if err != nil {
		return 0, err
	}

	return s.CreateEvent(ctx, &Event{
		Summary:     summary,
		Description: description,
		When:        when,
		Owner:       owner,
		Attendee:    attendee,
	})
}

// FindEventByID retrieves an event by id.
func (s *Service) FindEventByID(ctx context.Context, id int64) (*Event, error) {
	return s.events.FindByID(ctx, id)
}

// FindEventsForUser retrieves events where the user is owner or attendee.
func (s *Service) FindEventsForUser(ctx context.Context, userID int64) ([]*Event, error) {
	return s.events.FindByUser(ctx, userID)
}

// FindAllEvents retrieves every event.
func (s *Service) FindAllEvents(ctx context.Context) ([]*Event, error) {
	return s.events.FindAll(ctx)
}

// FindUserByEmail retrieves a user record by email.
func (s *Service) FindUserByEmail(ctx context.Context, email string) (*auth.AppUser, error) {
	return s.users.FindByEmail(ctx, auth.NormalizeEmail(email))
}

// FindUsersByPartialEmail retrieves users whose email contains the
// fragment.
func (s *Service) FindUsersByPartialEmail(ctx context.Context, partial string) ([]*auth.AppUser, error) {
	return s.users.FindAllByEmail(ctx, partial)
}

// CreateUser hashes the raw password and stores a new user record,
// returning its assigned id. The raw password never reaches the store.
func (s *Service) CreateUser(ctx context.Context, email, rawPassword string, roles ...auth.Role) (int64, error) {
	normalized := auth.NormalizeEmail(email)
	if err := auth.ValidateEmail(normalized); err != nil {
		return 0, err
	}

	hash, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return 0, err
	}

	if len(roles) == 0 {
		roles = []auth.Role{auth.RoleUser}
	}

	id, err := s.users.Create(ctx, &auth.AppUser{
		Email:        normalized,
		PasswordHash: hash,
		Enabled:      true,
		Roles:        roles,
	})
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "user created", "user_id", id, "email", normalized)
	return id, nil
}
