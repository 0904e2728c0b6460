// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

// Package postgres implements the event repository with direct SQL over
// pgx: parameterized queries plus row scanning, no ORM session.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/eventcal/eventcal/internal/auth"
	"github.com/eventcal/eventcal/internal/events"
)

// dbPool is the subset of pgxpool.Pool the repository uses. pgxmock
// satisfies it for unit tests.
type dbPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EventRepository implements events.EventRepository using PostgreSQL.
// It performs no validation of its own; the shared events.Validating
// decorator runs in front of it.
type EventRepository struct {
	pool dbPool
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool dbPool) *EventRepository {
	return &EventRepository{pool: pool}
}

// selectEvent joins the owner and attendee user records so a single
// query materializes the full entity.
const selectEvent = `
	SELECT e.id, e.summary, e.description, e.event_date,
	       o.id, o.email, o.password_hash, o.enabled, o.roles,
	       a.id, a.email, a.password_hash, a.enabled, a.roles
	FROM events e
	JOIN users o ON o.id = e.owner_id
	JOIN users a ON a.id = e.attendee_id`

// FindByID retrieves an event by id, or events.ErrNotFound.
func (r *EventRepository) FindByID(ctx context.Context, id int64) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, selectEvent+`
	WHERE e.id = $1`, id)

	event, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("EVENT_NOT_FOUND").
			With("id", id).
			Wrap(events.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("EVENT_FIND_BY_ID_FAILED").
			With("operation", "find event by id").
			With("id", id).
			Wrap(err)
	}
	return event, nil
}

// FindByUser retrieves events where the user is owner or attendee,
// ordered by id.
func (r *EventRepository) FindByUser(ctx context.Context, userID int64) ([]*events.Event, error) {
	rows, err := r.pool.Query(ctx, selectEvent+`
	WHERE e.owner_id = $1 OR e.attendee_id = $1
	ORDER BY e.id`, userID)
	if err != nil {
		return nil, oops.Code("EVENT_FIND_BY_USER_FAILED").
			With("operation", "find events by user").
			With("user_id", userID).
			Wrap(err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// FindAll retrieves every event, ordered by id.
func (r *EventRepository) FindAll(ctx context.Context) ([]*events.Event, error) {
	rows, err := r.pool.Query(ctx, selectEvent+`
	ORDER BY e.id`)
	if err != nil {
		return nil, oops.Code("EVENT_FIND_ALL_FAILED").
			With("operation", "find all events").
			Wrap(err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// Save stores a new event and returns the store-assigned id.
func (r *EventRepository) Save(ctx context.Context, event *events.Event) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO events (summary, description, event_date, owner_id, attendee_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		event.Summary,
		event.Description,
		event.When,
		event.Owner.ID,
		event.Attendee.ID,
	).Scan(&id)
	if err != nil {
		return 0, oops.Code("EVENT_SAVE_FAILED").
			With("operation", "insert event").
			With("owner_id", event.Owner.ID).
			Wrap(err)
	}
	event.ID = id
	return id, nil
}

// scanEvent scans one joined row into an Event with its owner and
// attendee. Callers handle pgx.ErrNoRows, which propagates unchanged.
func scanEvent(row pgx.Row) (*events.Event, error) {
	var (
		event         events.Event
		owner         auth.AppUser
		attendee      auth.AppUser
		ownerRoles    []string
		attendeeRoles []string
	)
	err := row.Scan(
		&event.ID, &event.Summary, &event.Description, &event.When,
		&owner.ID, &owner.Email, &owner.PasswordHash, &owner.Enabled, &ownerRoles,
		&attendee.ID, &attendee.Email, &attendee.PasswordHash, &attendee.Enabled, &attendeeRoles,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with context-specific info
	}
	owner.Roles = rolesFromStrings(ownerRoles)
	attendee.Roles = rolesFromStrings(attendeeRoles)
	event.Owner = &owner
	event.Attendee = &attendee
	return &event, nil
}

func collectEvents(rows pgx.Rows) ([]*events.Event, error) {
	var out []*events.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, oops.Code("EVENT_SCAN_FAILED").
				With("operation", "scan event row").
				Wrap(err)
		}
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("EVENT_ROWS_FAILED").
			With("operation", "iterate event rows").
			Wrap(err)
	}
	return out, nil
}

func rolesFromStrings(raw []string) []auth.Role {
	out := make([]auth.Role, len(raw))
	for i, s := range raw {
		out[i] = auth.Role(s)
	}
	return out
}

var _ events.EventRepository = (*EventRepository)(nil)
