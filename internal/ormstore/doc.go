// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

// Package ormstore implements the user and event repositories on GORM:
// entity-typed models and session calls instead of hand-written SQL.
// It satisfies the same contracts as the direct-SQL backend and sits
// behind the same validation layer, so the two are interchangeable by
// configuration.
package ormstore
