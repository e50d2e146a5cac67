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
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/observability"
)

type Cotisations struct {
	db        *pg.DB
	obs       *observability.Observability
	log       logrus.FieldLogger
	types     *Types
	ledger    *Ledger
	graceDays int
	clock     Clock
	metrics   *observability.LedgerMetrics
}

func NewCotisations(
	db *pg.DB,
	obs *observability.Observability,
	types *Types,
	ledger *Ledger,
	graceDays int,
	clock Clock,
) *Cotisations {
	return &Cotisations{
		db:        db,
		obs:       obs,
		log:       obs.Log(),
		types:     types,
		ledger:    ledger,
		graceDays: graceDays,
		clock:     clock,
		metrics:   observability.MakeLedgerMetrics(obs, "generated"),
	}
}

// Generate creates, for every active adherent having a type, the cotisation of the
// period containing date. Existing cotisations are left untouched. Available avoirs
// of the adherents are then spent on what was created.
func (s *Cotisations) Generate(ctx context.Context, date time.Time) (int, error) {
	adherentList, err := postgres.NewAdherentStorage(s.obs, s.db).ActifsWithType()
	if err != nil {
		return 0, err
	}
	storage := postgres.NewCotisationStorage(s.obs, s.db)
	now := s.clock.Now()
	created := 0
	for _, a := range adherentList {
		log := s.log.WithField("adherent_id", a.ID)
		t, err := s.types.Get(ctx, a.TypeCotisationID)
		if err != nil {
			return created, err
		}
		if !t.Actif {
			log.WithField("type_cotisation_id", t.ID).Debug("type is not active, skipped")
			continue
		}
		periode, echeance, err := adherents.Periode(t.Periodicite, date)
		if err != nil {
			return created, err
		}
		c := &models.Cotisation{
			AdherentID:       a.ID,
			TypeCotisationID: t.ID,
			Periode:          periode,
			Montant:          t.Montant,
			DateEcheance:     echeance,
			Statut:           models.CotisationEnAttente,
			CreatedAt:        now,
		}
		c.Statut = adherents.CotisationStatutAt(*c, now, s.graceDays)
		inserted, err := storage.InsertIfAbsent(c)
		if err != nil {
			return created, err
		}
		if !inserted {
			continue
		}
		created++
		s.metrics.Cotisations.Inc()
		log.WithField("periode", periode).Debug("cotisation created")

		if _, err := s.ledger.ApplyAvoirs(ctx, a.ID); err != nil {
			return created, errors.Wrapf(err, "failed to apply avoirs of adherent %d", a.ID)
		}
	}
	s.log.Infof("%d cotisations generated for %s", created, date.Format("2006-01-02"))
	return created, nil
}

func (s *Cotisations) MarkOverdue(ctx context.Context) (int, error) {
	n, err := postgres.NewCotisationStorage(s.obs, s.db).MarkOverdue(s.clock.Now(), s.graceDays)
	if err != nil {
		return 0, err
	}
	s.log.Infof("%d cotisations marked as overdue", n)
	return n, nil
}

// Cancel cancels a cotisation nothing was paid on.
func (s *Cotisations) Cancel(ctx context.Context, id int64) (*models.Cotisation, error) {
	var res *models.Cotisation
	err := s.db.RunInTransaction(func(tx *pg.Tx) error {
		storage := postgres.NewCotisationStorage(s.obs, tx)
		c, err := storage.ByID(id, true)
		if err != nil {
			return err
		}
		if c.MontantPaye > 0 || !c.Statut.Open() {
			return errors.Wrapf(adherents.ErrInvalidState, "cotisation %d is %s with %d paid", id, c.Statut, c.MontantPaye)
		}
		c.Statut = models.CotisationAnnulee
		res = c
		return storage.Update(c)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Cotisations) ByAdherent(ctx context.Context, adherentID int64) ([]models.Cotisation, error) {
	if _, err := postgres.NewAdherentStorage(s.obs, s.db).ByID(adherentID, false); err != nil {
		return nil, err
	}
	return postgres.NewCotisationStorage(s.obs, s.db).ByAdherent(adherentID)
}

type Solde struct {
	postgres.Balance
	Cotisations []models.Cotisation `json:"cotisations"`
	Dettes      []models.Dette      `json:"dettes"`
	Avoirs      []models.Avoir      `json:"avoirs"`
}

func (s *Cotisations) Solde(ctx context.Context, adherentID int64) (*Solde, error) {
	if _, err := postgres.NewAdherentStorage(s.obs, s.db).ByID(adherentID, false); err != nil {
		return nil, err
	}
	cotisations := postgres.NewCotisationStorage(s.obs, s.db)
	balance, err := cotisations.Balance(adherentID)
	if err != nil {
		return nil, err
	}
	open, err := cotisations.Open(adherentID, false)
	if err != nil {
		return nil, err
	}
	dettes, err := postgres.NewDetteStorage(s.obs, s.db).Open(adherentID, false)
	if err != nil {
		return nil, err
	}
	avoirs, err := postgres.NewAvoirStorage(s.obs, s.db).Open(adherentID, false)
	if err != nil {
		return nil, err
	}
	return &Solde{Balance: balance, Cotisations: open, Dettes: dettes, Avoirs: avoirs}, nil
}
