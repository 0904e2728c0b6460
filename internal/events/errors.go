// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package events

import (
	"errors"
	"fmt"
)

// Sentinel errors for the event domain.
var (
	// ErrNotFound is returned when no event matches the requested id.
	ErrNotFound = errors.New("event not found")

	// ErrIDPreassigned is returned by Save when the event already
	// carries an id. Ids are store-assigned, never caller-assigned.
	ErrIDPreassigned = errors.New("event id must not be pre-assigned")
)

// ValidationError reports an event that fails a required-field or
// structural constraint before any storage call. It is always returned
// synchronously to the immediate caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is (or wraps) a ValidationError,
// returning the offending field name when it is.
func IsValidationError(err error) (field string, ok bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Field, true
	}
	return "", false
}
