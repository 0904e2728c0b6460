// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package errutil_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventcal/eventcal/pkg/errutil"
)

func TestLogError_WithOopsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := oops.Code("AUTH_BAD_CREDENTIALS").
		With("email", "user1@baselogic.com").
		Errorf("password mismatch")

	errutil.LogError(logger, "authentication failed", err)

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "ERROR", logEntry["level"])
	assert.Equal(t, "authentication failed", logEntry["msg"])
	assert.Equal(t, "AUTH_BAD_CREDENTIALS", logEntry["code"])
}

func TestLogError_WithStandardError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := errors.New("connection refused")

	errutil.LogError(logger, "database unavailable", err)

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "ERROR", logEntry["level"])
	assert.Contains(t, logEntry["error"], "connection refused")
}

func TestAssertErrorCode_MatchingCode(t *testing.T) {
	err := oops.Code("EVENT_NOT_FOUND").Errorf("test error")
	// Should not fail
	errutil.AssertErrorCode(t, err, "EVENT_NOT_FOUND")
}

func TestAssertErrorContext_MatchingKeyValue(t *testing.T) {
	err := oops.With("event_id", int64(100)).Errorf("test error")
	// Should not fail
	errutil.AssertErrorContext(t, err, "event_id", int64(100))
}
