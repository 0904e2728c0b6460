// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

// Package auth provides the authentication core for EventCal: the user
// record model, credential verification, the authentication provider,
// and the per-request current-user context.
package auth
