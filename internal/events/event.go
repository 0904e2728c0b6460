// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package events

import (
	"context"
	"time"

	"github.com/eventcal/eventcal/internal/auth"
)

// Event is a calendar entry connecting an owner and an attendee. Owner
// and Attendee are direct references to externally-owned user records
// looked up by id; an event has exactly one of each.
//
// ID is assigned by the store on create: it must be unset (zero) on the
// event passed to Save and is set thereafter. Events are append-only in
// this core; there is no update or delete.
type Event struct {
	ID          int64
	Summary     string
	Description string
	When        time.Time
	Owner       *auth.AppUser
	Attendee    *auth.AppUser
}

// InvolvesUser reports whether the user is the event's owner or attendee.
func (e *Event) InvolvesUser(userID int64) bool {
	return (e.Owner != nil && e.Owner.ID == userID) ||
		(e.Attendee != nil && e.Attendee.ID == userID)
}

// EventRepository is the DAO contract over events. Both backends (the
// direct-SQL pgx implementation and the GORM implementation) satisfy it
// behind the shared Validating decorator, so validation and error
// semantics are identical regardless of which one is wired in.
//
// Read results are ordered by id ascending so repeated reads over a
// fixed dataset are deterministic.
type EventRepository interface {
	// FindByID retrieves an event by id, or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*Event, error)

	// FindByUser retrieves events where the user is owner or attendee.
	FindByUser(ctx context.Context, userID int64) ([]*Event, error)

	// FindAll retrieves every event.
	FindAll(ctx context.Context) ([]*Event, error)

	// Save stores a new event, assigns its id, and returns it. The
	// event passed in must not carry a pre-assigned id.
	Save(ctx context.Context, event *Event) (int64, error)
}
