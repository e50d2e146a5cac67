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
	"github.com/sirupsen/logrus"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/observability"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type Membership struct {
	db    *pg.DB
	obs   *observability.Observability
	log   logrus.FieldLogger
	types *Types
	purge *Purge
	clock Clock
}

func NewMembership(db *pg.DB, obs *observability.Observability, types *Types, purge *Purge, clock Clock) *Membership {
	return &Membership{db: db, obs: obs, log: obs.Log(), types: types, purge: purge, clock: clock}
}

func (s *Membership) Get(ctx context.Context, id int64) (*models.Adherent, error) {
	return postgres.NewAdherentStorage(s.obs, s.db).ByID(id, false)
}

func (s *Membership) List(ctx context.Context, f postgres.AdherentFilter) ([]models.Adherent, int, error) {
	if f.Limit < 1 || f.Limit > MaxLimit {
		return nil, 0, adherents.NewValidationError("`limit` should be in range [1, 1000]")
	}
	if f.Offset < 0 {
		return nil, 0, adherents.NewValidationError("`offset` should not be negative")
	}
	if f.Statut != "" && !adherents.ValidAdherentStatut(f.Statut) {
		return nil, 0, adherents.NewValidationError("unknown statut")
	}
	f.Search = strings.TrimSpace(f.Search)
	return postgres.NewAdherentStorage(s.obs, s.db).List(f)
}

// Update replaces the profile fields. typeID is only honoured when set, zero clears the type.
func (s *Membership) Update(ctx context.Context, id int64, p Profile, typeID *int64) (*models.Adherent, error) {
	verr := &adherents.ValidationError{}
	p.validate(verr)
	if err := verr.Err(); err != nil {
		return nil, err
	}
	if typeID != nil && *typeID != 0 {
		if _, err := s.types.Get(ctx, *typeID); err != nil {
			if errors.Cause(err) == adherents.ErrNotFound {
				return nil, adherents.NewValidationError("unknown type_cotisation_id")
			}
			return nil, err
		}
	}

	var res *models.Adherent
	err := s.db.RunInTransaction(func(tx *pg.Tx) error {
		storage := postgres.NewAdherentStorage(s.obs, tx)
		a, err := storage.ByID(id, true)
		if err != nil {
			return err
		}
		a.Civilite = p.Civilite
		a.Nom = strings.TrimSpace(p.Nom)
		a.Prenom = strings.TrimSpace(p.Prenom)
		if p.Email != "" {
			a.Email = strings.ToLower(strings.TrimSpace(p.Email))
		}
		a.Telephone = p.Telephone
		a.Adresse = p.Adresse
		a.CodePostal = p.CodePostal
		a.Ville = p.Ville
		a.DateNaissance = p.DateNaissance
		if typeID != nil {
			a.TypeCotisationID = *typeID
		}
		res = a
		return storage.Update(a, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Membership) ChangeStatut(ctx context.Context, id int64, statut models.AdherentStatut) (*models.Adherent, error) {
	if !adherents.ValidAdherentStatut(statut) {
		return nil, adherents.NewValidationError("unknown statut")
	}
	var res *models.Adherent
	err := s.db.RunInTransaction(func(tx *pg.Tx) error {
		storage := postgres.NewAdherentStorage(s.obs, tx)
		a, err := storage.ByID(id, true)
		if err != nil {
			return err
		}
		if !adherents.CanTransition(a.Statut, statut) {
			return errors.Wrapf(adherents.ErrInvalidState, "adherent %d can not go from %s to %s", id, a.Statut, statut)
		}
		now := s.clock.Now()
		if statut == models.AdherentActif && a.DateAdhesion == nil {
			a.DateAdhesion = &now
		}
		a.Statut = statut
		res = a
		return storage.Update(a, now)
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"adherent_id": id, "statut": statut}).Info("adherent statut changed")
	return res, nil
}

func (s *Membership) Delete(ctx context.Context, id int64) (postgres.PurgeReport, error) {
	return s.purge.Adherent(ctx, id)
}
