// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventcal/eventcal/internal/auth"
	"github.com/eventcal/eventcal/internal/events"
	"github.com/eventcal/eventcal/pkg/errutil"
)

// Demo accounts. Passwords equal the local part of the email, which is
// all they are meant for.
var seedUsers = []struct {
	email    string
	password string
	roles    []auth.Role
}{
	{"user1@baselogic.com", "user1", []auth.Role{auth.RoleUser}},
	{"admin1@baselogic.com", "admin1", []auth.Role{auth.RoleUser, auth.RoleAdmin}},
	{"user2@baselogic.com", "user2", []auth.Role{auth.RoleUser}},
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo users and events",
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

			svc := events.NewService(repos.Events, repos.Users, auth.NewArgon2idHasher(), slog.Default())
			if err := seed(ctx, svc); err != nil {
				errutil.LogError(slog.Default(), "seed failed", err)
				return err
			}
			slog.Info("seed complete")
			return nil
		},
	}
}

// seed creates the demo accounts and the demo events between them.
func seed(ctx context.Context, svc *events.Service) error {
	users := make(map[string]*auth.AppUser, len(seedUsers))
	for _, su := range seedUsers {
		if _, err := svc.CreateUser(ctx, su.email, su.password, su.roles...); err != nil {
			return err
		}
		user, err := svc.FindUserByEmail(ctx, su.email)
		if err != nil {
			return err
		}
		users[su.email] = user
	}

	user1 := users["user1@baselogic.com"]
	admin1 := users["admin1@baselogic.com"]
	user2 := users["user2@baselogic.com"]

	demoEvents := []*events.Event{
		{
			Summary:     "Birthday Party",
			Description: "This is going to be a great birthday",
			When:        time.Date(2026, time.July, 3, 18, 30, 0, 0, time.UTC),
			Owner:       user2,
			Attendee:    user1,
		},
		{
			Summary:     "Conference Call",
			Description: "Call with the client",
			When:        time.Date(2026, time.July, 6, 13, 0, 0, 0, time.UTC),
			Owner:       user1,
			Attendee:    admin1,
		},
		{
			Summary:     "Vacation",
			Description: "Paragliding in Greece",
			When:        time.Date(2026, time.August, 14, 9, 0, 0, 0, time.UTC),
			Owner:       admin1,
			Attendee:    user2,
		},
	}

	for _, event := range demoEvents {
		if _, err := svc.CreateEvent(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
