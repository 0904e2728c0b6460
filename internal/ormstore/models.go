// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package ormstore

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/eventcal/eventcal/internal/auth"
	"github.com/eventcal/eventcal/internal/events"
)

// roleList maps a role set onto a single text column so the schema
// stays portable across the postgres and sqlite dialects.
type roleList []auth.Role

// Value encodes the roles as a comma-separated string.
func (r roleList) Value() (driver.Value, error) {
	parts := make([]string, len(r))
	for i, role := range r {
		parts[i] = string(role)
	}
	return strings.Join(parts, ","), nil
}

// Scan decodes a comma-separated string back into roles.
func (r *roleList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into roleList", src)
	}
	if raw == "" {
		*r = nil
		return nil
	}
	parts := strings.Split(raw, ",")
	roles := make(roleList, len(parts))
	for i, p := range parts {
		roles[i] = auth.Role(p)
	}
	*r = roles
	return nil
}

// userModel is the GORM mapping of auth.AppUser.
type userModel struct {
	ID           int64    `gorm:"primaryKey"`
	Email        string   `gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:191;not null"`
	Enabled      bool     `gorm:"not null"`
	Roles        roleList `gorm:"type:text"`
}

func (userModel) TableName() string { return "users" }

// eventModel is the GORM mapping of events.Event. Owner and Attendee
// are belongs-to associations on the users table; writes set only the
// foreign keys so user rows are never upserted through an event.
type eventModel struct {
	ID          int64     `gorm:"primaryKey"`
	Summary     string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:500"`
	When        time.Time `gorm:"column:event_date;not null"`
	OwnerID     int64     `gorm:"index;not null"`
	Owner       userModel `gorm:"foreignKey:OwnerID"`
	AttendeeID  int64     `gorm:"index;not null"`
	Attendee    userModel `gorm:"foreignKey:AttendeeID"`
}

func (eventModel) TableName() string { return "events" }

func (m *userModel) toDomain() *auth.AppUser {
	return &auth.AppUser{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Enabled:      m.Enabled,
		Roles:        []auth.Role(m.Roles),
	}
}

func userToModel(u *auth.AppUser) *userModel {
	return &userModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Enabled:      u.Enabled,
		Roles:        roleList(u.Roles),
	}
}

func (m *eventModel) toDomain() *events.Event {
	return &events.Event{
		ID:          m.ID,
		Summary:     m.Summary,
		Description: m.Description,
		When:        m.When,
		Owner:       m.Owner.toDomain(),
		Attendee:    m.Attendee.toDomain(),
	}
}

func eventToModel(e *events.Event) *eventModel {
	return &eventModel{
		ID:          e.ID,
		Summary:     e.Summary,
		Description: e.Description,
		When:        e.When,
		OwnerID:     e.Owner.ID,
		AttendeeID:  e.Attendee.ID,
	}
}
