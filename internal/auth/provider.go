// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"
)

// CredentialKind tags the representation of a presented credential.
// The dispatcher in front of the provider selects a provider by tag
// rather than by inspecting the credential at runtime.
type CredentialKind string

// Credential kinds.
const (
	// CredentialPassword is a raw username/password pair.
	CredentialPassword CredentialKind = "password"

	// CredentialRememberMe is a remember-me token. Not handled by this
	// provider; listed so dispatch tests have a second concrete kind.
	CredentialRememberMe CredentialKind = "remember-me"
)

// Credential is a raw credential presented for verification.
type Credential struct {
	Kind     CredentialKind
	Username string
	Password string
}

// Principal is the verified identity returned after successful
// authentication.
type Principal struct {
	Name          string
	Authorities   []string
	Authenticated bool
}

// Provider converts a username/password credential into a verified
// principal. It is stateless across invocations; the only side effect
// is the lookup call (and outcome metrics).
type Provider struct {
	lookup  *LookupService
	hasher  PasswordHasher
	metrics *Metrics
	logger  *slog.Logger
}

// NewProvider creates a Provider. Metrics and logger may be nil.
func NewProvider(lookup *LookupService, hasher PasswordHasher, metrics *Metrics, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{lookup: lookup, hasher: hasher, metrics: metrics, logger: logger}
}

// Supports reports whether this provider handles the credential kind.
// Only CredentialPassword is supported.
func (p *Provider) Supports(kind CredentialKind) bool {
	return kind == CredentialPassword
}

// Authenticate verifies the credential and returns an authenticated
// principal whose authorities are derived from the stored role set.
//
// Failure modes, all surfaced to the caller as typed errors:
//   - ErrUnsupportedCredential for a kind Supports rejects
//   - ErrUserNotFound when no account matches the username
//   - ErrBadCredentials on password mismatch; the error never carries
//     the submitted password
//   - ErrAccountDisabled for a disabled account
//
// Storage errors propagate unchanged.
func (p *Provider) Authenticate(ctx context.Context, cred Credential) (*Principal, error) {
	if !p.Supports(cred.Kind) {
		p.metrics.observe(outcomeUnsupported)
		return nil, oops.Code("AUTH_UNSUPPORTED_CREDENTIAL").
			With("kind", string(cred.Kind)).
			Wrap(ErrUnsupportedCredential)
	}

	user, err := p.lookup.LoadByUsername(ctx, cred.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			p.metrics.observe(outcomeUserNotFound)
		} else {
			p.metrics.observe(outcomeError)
		}
		return nil, err
	}

	ok, err := p.hasher.Verify(cred.Password, user.PasswordHash)
	if err != nil {
		p.metrics.observe(outcomeError)
		return nil, oops.Code("AUTH_VERIFY_FAILED").
			With("operation", "verify password").
			Wrap(err)
	}
	if !ok {
		p.metrics.observe(outcomeBadCredentials)
		p.logger.DebugContext(ctx, "password mismatch", "email", user.Email)
		return nil, oops.Code("AUTH_BAD_CREDENTIALS").
			With("email", user.Email).
			Wrap(ErrBadCredentials)
	}

	if !user.Enabled {
		p.metrics.observe(outcomeDisabled)
		return nil, oops.Code("AUTH_ACCOUNT_DISABLED").
			With("email", user.Email).
			Wrap(ErrAccountDisabled)
	}

	p.metrics.observe(outcomeSuccess)
	return &Principal{
		Name:          user.Email,
		Authorities:   user.Authorities(),
		Authenticated: true,
	}, nil
}
