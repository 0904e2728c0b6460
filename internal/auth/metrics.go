// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Authentication outcome labels.
const (
	outcomeSuccess        = "success"
	outcomeBadCredentials = "bad_credentials"
	outcomeUserNotFound   = "user_not_found"
	outcomeDisabled       = "account_disabled"
	outcomeUnsupported    = "unsupported"
	outcomeError          = "error"
)

// Metrics counts authentication outcomes. A nil *Metrics is a no-op, so
// tests can construct a Provider without a registry.
type Metrics struct {
	attempts *prometheus.CounterVec
}

// NewMetrics creates authentication metrics registered on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventcal",
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Authentication attempts by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.attempts)
	return m
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(outcome).Inc()
}
