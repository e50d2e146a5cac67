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

package component

import (
	"context"
	"time"

	"github.com/go-pg/pg"
	"golang.org/x/sync/errgroup"

	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/observability"
)

type Dashboard struct {
	Adherents    []postgres.StatutCount `json:"adherents"`
	Annee        int                    `json:"annee"`
	Cotisations  postgres.Totals        `json:"cotisations"`
	Avoirs       int64                  `json:"avoirs"`
	Encaisse30J  int64                  `json:"encaisse_30j"`
	Paiements30J int                    `json:"paiements_30j"`
	GeneratedAt  time.Time              `json:"generated_at"`
}

type Stats struct {
	db  *pg.DB
	obs *observability.Observability
}

func NewStats(db *pg.DB, obs *observability.Observability) *Stats {
	return &Stats{db: db, obs: obs}
}

// Dashboard runs the aggregates concurrently, each on its own pooled connection.
func (s *Stats) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	d := &Dashboard{Annee: now.Year(), GeneratedAt: now}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.Adherents, err = postgres.NewAdherentStorage(s.obs, s.db).CountByStatut()
		return err
	})
	g.Go(func() error {
		var err error
		d.Cotisations.Montant, d.Cotisations.MontantPaye, err = postgres.NewCotisationStorage(s.obs, s.db).YearTotals(now.Year())
		return err
	})
	g.Go(func() error {
		var err error
		d.Cotisations.EnRetard, err = postgres.NewCotisationStorage(s.obs, s.db).CountOverdue()
		return err
	})
	g.Go(func() error {
		var err error
		d.Avoirs, err = postgres.NewAvoirStorage(s.obs, s.db).TotalRemaining()
		return err
	})
	g.Go(func() error {
		var err error
		d.Encaisse30J, d.Paiements30J, err = postgres.NewPaiementStorage(s.obs, s.db).ReceivedSince(now.AddDate(0, 0, -30))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}
