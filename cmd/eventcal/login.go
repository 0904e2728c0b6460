// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package main

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/eventcal/eventcal/internal/auth"
	"github.com/eventcal/eventcal/pkg/errutil"
)

// NewLoginCmd creates the login subcommand: authenticate a credential
// pair against the configured backend and print the resulting
// principal.
func NewLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify a username/password pair",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			repos, err := openRepositories(ctx, cfg, slog.Default())
			if err != nil {
				errutil.LogError(slog.Default(), "open repositories failed", err)
				return err
			}
			defer repos.Close()

			lookup := auth.NewLookupService(repos.Users, slog.Default())
			metrics := auth.NewMetrics(prometheus.NewRegistry())
			provider := auth.NewProvider(lookup, auth.NewArgon2idHasher(), metrics, slog.Default())

			principal, err := provider.Authenticate(ctx, auth.Credential{
				Kind:     auth.CredentialPassword,
				Username: email,
				Password: password,
			})
			if err != nil {
				// Whether the account is missing or the password is
				// wrong stays out of the user-facing answer.
				if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrBadCredentials) {
					slog.Debug("authentication rejected", "email", auth.NormalizeEmail(email))
					cmd.PrintErrln("authentication failed")
					return errors.New("authentication failed")
				}
				errutil.LogError(slog.Default(), "authentication error", err)
				return err
			}

			cmd.Printf("authenticated: %s\n", principal.Name)
			cmd.Printf("authorities: %s\n", strings.Join(principal.Authorities, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")    //nolint:errcheck // flag exists
	_ = cmd.MarkFlagRequired("password") //nolint:errcheck // flag exists

	return cmd
}
