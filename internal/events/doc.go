// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

// Package events defines the Event entity, the repository contract both
// storage backends satisfy, and the backend-independent validation layer
// applied in front of them.
package events
