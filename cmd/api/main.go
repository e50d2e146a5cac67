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
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/amaki-france/adherents/component"
	"github.com/amaki-france/adherents/configuration"
	"github.com/amaki-france/adherents/internal/app/api"
	"github.com/amaki-france/adherents/internal/dbconn"
	"github.com/amaki-france/adherents/internal/notify"
	"github.com/amaki-france/adherents/observability"
)

const shutdownTimeout = 10 * time.Second

func main() {
	bootstrap := logrus.New()
	bootstrap.SetFormatter(&logrus.JSONFormatter{})
	cfg := configuration.Load(bootstrap)

	obs := observability.Make(cfg)
	log := obs.Log()

	db, err := dbconn.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer db.Close()

	mailer, err := notify.NewMailer(cfg.Notify, log)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer mailer.Close()

	clock := &component.DefaultClock{}
	manager, err := component.Prepare(db, obs, cfg, mailer, clock, component.Gateways(cfg, log)...)
	if err != nil {
		log.Fatal(err.Error())
	}
	e := api.NewEcho(api.NewServer(db, obs, clock, manager))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("listening on %s", cfg.Listen)
		if err := e.Start(cfg.Listen); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "http server")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("gracefully stopping...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Wrap(e.Shutdown(shutdownCtx), "http server shutdown")
	})
	if cfg.Relance.Schedule != "" {
		scheduler, err := manager.Scheduler(cfg.Relance.Schedule, log, clock)
		if err != nil {
			log.Fatal(err.Error())
		}
		g.Go(func() error {
			return scheduler.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
