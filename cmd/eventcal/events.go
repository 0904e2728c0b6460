// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EventCal Contributors

package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventcal/eventcal/internal/auth"
	"github.com/eventcal/eventcal/internal/events"
	"github.com/eventcal/eventcal/pkg/errutil"
)

// NewEventsCmd creates the events subcommand group.
func NewEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List and create calendar events",
	}
	cmd.AddCommand(newEventsListCmd())
	cmd.AddCommand(newEventsCreateCmd())
	return cmd
}

// withService opens the configured backend and hands a Service to fn.
func withService(cmd *cobra.Command, fn func(svc *events.Service) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	repos, err := openRepositories(cmd.Context(), cfg, slog.Default())
	if err != nil {
		errutil.LogError(slog.Default(), "open repositories failed", err)
		return err
	}
	defer repos.Close()

	return fn(events.NewService(repos.Events, repos.Users, auth.NewArgon2idHasher(), slog.Default()))
}

func newEventsListCmd() *cobra.Command {
	var userEmail string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, optionally for one user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd, func(svc *events.Service) error {
				ctx := cmd.Context()

				var (
					list []*events.Event
					err  error
				)
				if userEmail == "" {
					list, err = svc.FindAllEvents(ctx)
				} else {
					var user *auth.AppUser
					user, err = svc.FindUserByEmail(ctx, userEmail)
					if err == nil {
						list, err = svc.FindEventsForUser(ctx, user.ID)
					}
				}
				if err != nil {
					errutil.LogError(slog.Default(), "list events failed", err)
					return err
				}

				for _, event := range list {
					cmd.Printf("%d\t%s\t%s\towner=%s attendee=%s\n",
						event.ID,
						event.When.Format(time.RFC3339),
						event.Summary,
						event.Owner.Email,
						event.Attendee.Email,
					)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&userEmail, "user", "", "limit to events owned or attended by this email")
	return cmd
}

func newEventsCreateCmd() *cobra.Command {
	var (
		ownerEmail    string
		attendeeEmail string
		summary       string
		description   string
		when          string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event between two users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd, func(svc *events.Service) error {
				ctx := cmd.Context()

				at, err := time.Parse(time.RFC3339, when)
				if err != nil {
					return err
				}

				owner, err := svc.FindUserByEmail(ctx, ownerEmail)
				if err != nil {
					errutil.LogError(slog.Default(), "resolve owner failed", err)
					return err
				}

				// The owner acts as the current user for this request.
				uc := auth.NewUserContext()
				if err := uc.SetCurrentUser(owner); err != nil {
					return err
				}
				ctx = auth.NewContext(ctx, uc)

				id, err := svc.CreateEventForCurrentUser(ctx, summary, description, at, attendeeEmail)
				if err != nil {
					errutil.LogError(slog.Default(), "create event failed", err)
					return err
				}

				cmd.Printf("created event %d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&ownerEmail, "owner", "", "owner email")
	cmd.Flags().StringVar(&attendeeEmail, "attendee", "", "attendee email")
	cmd.Flags().StringVar(&summary, "summary", "", "event summary")
	cmd.Flags().StringVar(&description, "description", "", "event description")
	cmd.Flags().StringVar(&when, "when", "", "event time (RFC 3339)")
	for _, name := range []string{"owner", "attendee", "summary", "when"} {
		_ = cmd.MarkFlagRequired(name) //nolint:errcheck // flag exists
	}

	return cmd
}
