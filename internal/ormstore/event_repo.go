// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package ormstore

import (
	"context"
	"errors"

	"github.com/samber/oops"
	"gorm.io/gorm"

	"github.com/eventcal/eventcal/internal/events"
)

// EventRepository implements events.EventRepository on a GORM session.
// Like the direct-SQL backend it performs no validation of its own; the
// shared events.Validating decorator runs in front of it.
type EventRepository struct {
	db *gorm.DB
}

// FindByID retrieves an event with its owner and attendee, or
// events.ErrNotFound.
func (r *EventRepository) FindByID(ctx context.Context, id int64) (*events.Event, error) {
	var m eventModel
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Attendee").
		First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
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
	return m.toDomain(), nil
}

// FindByUser retrieves events where the user is owner or attendee,
// ordered by id.
func (r *EventRepository) FindByUser(ctx context.Context, userID int64) ([]*events.Event, error) {
	var models []eventModel
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Attendee").
		Where("owner_id = ? OR attendee_id = ?", userID, userID).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, oops.Code("EVENT_FIND_BY_USER_FAILED").
			With("operation", "find events by user").
			With("user_id", userID).
			Wrap(err)
	}
	return toDomainEvents(models), nil
}

// FindAll retrieves every event, ordered by id.
func (r *EventRepository) FindAll(ctx context.Context) ([]*events.Event, error) {
	var models []eventModel
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Attendee").
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, oops.Code("EVENT_FIND_ALL_FAILED").
			With("operation", "find all events").
			Wrap(err)
	}
	return toDomainEvents(models), nil
}

// Save stores a new event and returns the store-assigned id. Only the
// foreign keys are written; the user rows are externally owned and
// never touched through this path.
func (r *EventRepository) Save(ctx context.Context, event *events.Event) (int64, error) {
	m := eventToModel(event)
	err := r.db.WithContext(ctx).
		Omit("Owner", "Attendee").
		Create(m).Error
	if err != nil {
		return 0, oops.Code("EVENT_SAVE_FAILED").
			With("operation", "create event").
			With("owner_id", event.Owner.ID).
			Wrap(err)
	}
	event.ID = m.ID
	return m.ID, nil
}

func toDomainEvents(models []eventModel) []*events.Event {
	out := make([]*events.Event, len(models))
	for i := range models {
		out[i] = models[i].toDomain()
	}
	return out
}

var _ events.EventRepository = (*EventRepository)(nil)
