// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package events

import (
	"context"

	"github.com/samber/oops"
)

// MaxSummaryLength bounds the event summary.
const MaxSummaryLength = 100

// Validating enforces the event invariants in front of any
// EventRepository, so both storage backends share one validation policy
// instead of each enforcing (or skipping) its own. Reads pass through
// untouched; Save validates before the backend sees the event.
type Validating struct {
	next EventRepository
}

// NewValidating wraps a backend repository with the shared validation
// layer.
func NewValidating(next EventRepository) *Validating {
	return &Validating{next: next}
}

// FindByID delegates to the backend.
func (v *Validating) FindByID(ctx context.Context, id int64) (*Event, error) {
	return v.next.FindByID(ctx, id)
}

// FindByUser delegates to the backend.
func (v *Validating) FindByUser(ctx context.Context, userID int64) ([]*Event, error) {
	return v.next.FindByUser(ctx, userID)
}

// FindAll delegates to the backend.
func (v *Validating) FindAll(ctx context.Context) ([]*Event, error) {
	return v.next.FindAll(ctx)
}

// Save validates the event, then delegates to the backend. Validation
// failures never reach the backend.
func (v *Validating) Save(ctx context.Context, event *Event) (int64, error) {
	if err := ValidateNewEvent(event); err != nil {
		return 0, err
	}
	return v.next.Save(ctx, event)
}

// ValidateNewEvent checks the invariants an event must satisfy before
// creation: no pre-assigned id, non-empty summary, a set timestamp, and
// persisted owner and attendee references.
func ValidateNewEvent(event *Event) error {
	if event == nil {
		return &ValidationError{Field: "event", Message: "must not be nil"}
	}
	if event.ID != 0 {
		return oops.Code("EVENT_ID_PREASSIGNED").
			With("id", event.ID).
			Wrap(ErrIDPreassigned)
	}
	if event.Summary == "" {
		return &ValidationError{Field: "summary", Message: "must not be empty"}
	}
	if len(event.Summary) > MaxSummaryLength {
		return &ValidationError{Field: "summary", Message: "exceeds maximum length"}
	}
	if event.When.IsZero() {
		return &ValidationError{Field: "when", Message: "must not be zero"}
	}
	if event.Owner == nil {
		return &ValidationError{Field: "owner", Message: "must not be nil"}
	}
	if !event.Owner.IsPersisted() {
		return &ValidationError{Field: "owner", Message: "must reference a persisted user"}
	}
	if event.Attendee == nil {
		return &ValidationError{Field: "attendee", Message: "must not be nil"}
	}
	if !event.Attendee.IsPersisted() {
		return &ValidationError{Field: "attendee", Message: "must reference a persisted user"}
	}
	return nil
}

var _ EventRepository = (*Validating)(nil)
