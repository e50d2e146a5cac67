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
	"strings"

	"github.com/go-pg/pg"
	"github.com/pkg/errors"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/observability"
)

type Evenements struct {
	db    *pg.DB
	obs   *observability.Observability
	clock Clock
}

func NewEvenements(db *pg.DB, obs *observability.Observability, clock Clock) *Evenements {
	return &Evenements{db: db, obs: obs, clock: clock}
}

func validateEvenement(e *models.Evenement) error {
	verr := &adherents.ValidationError{}
	e.Titre = strings.TrimSpace(e.Titre)
	if e.Titre == "" {
		verr.Add("titre is required")
	}
	if e.Fin.Before(e.Debut) {
		verr.Add("fin should not be before debut")
	}
	if e.Capacite < 0 {
		verr.Add("capacite should not be negative")
	}
	return verr.Err()
}

func (s *Evenements) Create(ctx context.Context, e *models.Evenement) error {
	if err := validateEvenement(e); err != nil {
		return err
	}
	e.CreatedAt = s.clock.Now()
	return postgres.NewEvenementStorage(s.obs, s.db).Insert(e)
}

func (s *Evenements) Update(ctx context.Context, e *models.Evenement) error {
	if err := validateEvenement(e); err != nil {
		return err
	}
	return postgres.NewEvenementStorage(s.obs, s.db).Update(e)
}

func (s *Evenements) Delete(ctx context.Context, id int64) error {
	return s.db.RunInTransaction(func(tx *pg.Tx) error {
		return postgres.NewEvenementStorage(s.obs, tx).Delete(id)
	})
}

func (s *Evenements) Get(ctx context.Context, id int64) (*models.Evenement, error) {
	return postgres.NewEvenementStorage(s.obs, s.db).ByID(id, false)
}

// List returns the upcoming published evenements, or every evenement when all is set.
func (s *Evenements) List(ctx context.Context, all bool, limit, offset int) ([]models.Evenement, error) {
	if limit < 1 || limit > MaxLimit {
		return nil, adherents.NewValidationError("`limit` should be in range [1, 1000]")
	}
	if offset < 0 {
		return nil, adherents.NewValidationError("`offset` should not be negative")
	}
	return postgres.NewEvenementStorage(s.obs, s.db).List(!all, s.clock.Now(), limit, offset)
}

// Register signs the adherent up. The evenement row stays locked while the capacity is checked.
func (s *Evenements) Register(ctx context.Context, evenementID, adherentID int64) (*models.Inscription, error) {
	var res *models.Inscription
	err := s.db.RunInTransaction(func(tx *pg.Tx) error {
		storage := postgres.NewEvenementStorage(s.obs, tx)
		ev, err := storage.ByID(evenementID, true)
		if err != nil {
			return err
		}
		a, err := postgres.NewAdherentStorage(s.obs, tx).ByID(adherentID, false)
		if err != nil {
			return err
		}
		inscrits, err := storage.CountInscriptions(evenementID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		if err := adherents.CheckInscription(*ev, *a, inscrits, now); err != nil {
			return errors.Wrapf(err, "evenement %d", evenementID)
		}
		res = &models.Inscription{EvenementID: evenementID, AdherentID: adherentID, CreatedAt: now}
		return storage.InsertInscription(res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Evenements) Unregister(ctx context.Context, evenementID, adherentID int64) error {
	return postgres.NewEvenementStorage(s.obs, s.db).DeleteInscription(evenementID, adherentID)
}

func (s *Evenements) Inscriptions(ctx context.Context, evenementID int64) ([]models.Inscription, error) {
	if _, err := postgres.NewEvenementStorage(s.obs, s.db).ByID(evenementID, false); err != nil {
		return nil, err
	}
	return postgres.NewEvenementStorage(s.obs, s.db).Inscriptions(evenementID)
}
