//
// Copyright 2026 AMAKI France
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package main

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const passwordEnv = "AMAKI_ADMIN_PASSWORD"

type countResult struct {
	Count int `yaml:"count"`
}

func cotisationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cotisations",
		Short: "Generate cotisations and flag the overdue ones",
	}

	var date string
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Create the cotisations of the period containing --date for every active adherent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at := a.clock.Now()
			if date != "" {
				var err error
				at, err = time.Parse("2006-01-02", date)
				if err != nil {
					return errors.Wrap(err, "--date should be formatted as YYYY-MM-DD")
				}
			}
			n, err := a.manager.Cotisations.Generate(cmd.Context(), at)
			if err != nil {
				return err
			}
			return printYAML(cmd, countResult{Count: n})
		},
	}
	generate.Flags().StringVar(&date, "date", "", "reference date, today by default")

	overdue := &cobra.Command{
		Use:   "overdue",
		Short: "Mark unpaid cotisations past their grace period as overdue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.manager.Cotisations.MarkOverdue(cmd.Context())
			if err != nil {
				return err
			}
			return printYAML(cmd, countResult{Count: n})
		},
	}

	cmd.AddCommand(generate, overdue)
	return cmd
}

func relancesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relances",
		Short: "Reminders for overdue cotisations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "send",
		Short: "Send the reminders that are due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.manager.Relances.SendDue(cmd.Context(), a.clock.Now())
			if err != nil {
				return err
			}
			return printYAML(cmd, countResult{Count: n})
		},
	})
	return cmd
}

func purgeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete data permanently",
	}

	var yes bool
	all := &cobra.Command{
		Use:   "all",
		Short: "Delete every adherent, cotisation, payment, election, evenement and document, admins excepted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to purge everything without --yes")
			}
			report, err := a.manager.Purge.All(cmd.Context())
			if err != nil {
				return err
			}
			return printYAML(cmd, report)
		},
	}
	all.Flags().BoolVar(&yes, "yes", false, "confirm the purge")

	adherent := &cobra.Command{
		Use:   "adherent <id>",
		Short: "Delete an adherent with everything attached to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Wrapf(err, "invalid adherent id %q", args[0])
			}
			report, err := a.manager.Purge.Adherent(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printYAML(cmd, report)
		},
	}

	cmd.AddCommand(all, adherent)
	return cmd
}

func adminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage back-office accounts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "create <email>",
		Short: "Create an admin account, the password is read from " + passwordEnv,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := os.Getenv(passwordEnv)
			if password == "" {
				return errors.Errorf("%s is not set", passwordEnv)
			}
			user, err := a.manager.Accounts.CreateAdmin(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			return printYAML(cmd, map[string]interface{}{"id": user.ID, "email": user.Email, "role": user.Role})
		},
	})
	return cmd
}

func jobsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "Run the periodic jobs once: overdue cotisations, relances and expired sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduler, err := a.manager.Scheduler("", a.log, a.clock)
			if err != nil {
				return err
			}
			return scheduler.RunOnce(cmd.Context())
		},
	}
}
