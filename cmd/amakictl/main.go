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
	"fmt"
	"os"

	"github.com/go-pg/pg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/amaki-france/adherents/component"
	"github.com/amaki-france/adherents/configuration"
	"github.com/amaki-france/adherents/internal/dbconn"
	"github.com/amaki-france/adherents/internal/notify"
	"github.com/amaki-france/adherents/observability"
)

var Version = "dev"

// app is connected lazily by the commands that need the database.
type app struct {
	cfg     *configuration.Configuration
	log     *logrus.Logger
	db      *pg.DB
	mailer  notify.Mailer
	clock   component.Clock
	manager *component.Manager
}

func (a *app) connect(cmd *cobra.Command, args []string) error {
	bootstrap := logrus.New()
	bootstrap.SetOutput(os.Stderr)
	a.cfg = configuration.Load(bootstrap)
	obs := observability.Make(a.cfg)
	a.log = obs.Log()

	var err error
	a.db, err = dbconn.Connect(a.cfg.DB, a.log)
	if err != nil {
		return err
	}
	a.mailer, err = notify.NewMailer(a.cfg.Notify, a.log)
	if err != nil {
		return err
	}
	a.clock = &component.DefaultClock{}
	// checkouts are not created from the command line
	a.manager, err = component.Prepare(a.db, obs, a.cfg, a.mailer, a.clock)
	return err
}

func (a *app) close(cmd *cobra.Command, args []string) error {
	if a.mailer != nil {
		if err := a.mailer.Close(); err != nil {
			a.log.WithError(err).Warn("failed to close mailer")
		}
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// printYAML writes v to stdout.
func printYAML(cmd *cobra.Command, v interface{}) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:                "amakictl",
		Short:              "Back-office operations of the AMAKI France membership service",
		Version:            Version,
		SilenceUsage:       true,
		PersistentPreRunE:  a.connect,
		PersistentPostRunE: a.close,
	}
	root.AddCommand(cotisationsCmd(a))
	root.AddCommand(relancesCmd(a))
	root.AddCommand(purgeCmd(a))
	root.AddCommand(adminCmd(a))
	root.AddCommand(jobsCmd(a))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
