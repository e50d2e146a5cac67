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

package postgres

import (
	"time"

	"github.com/go-pg/pg"
	"github.com/go-pg/pg/orm"
	"github.com/pkg/errors"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/observability"
)

type AdherentFilter struct {
	Statut models.AdherentStatut
	// Search matches nom, prenom and email
	Search string
	Limit  int
	Offset int
}

type AdherentStorage struct {
	storage
}

func NewAdherentStorage(obs *observability.Observability, db orm.DB) *AdherentStorage {
	return &AdherentStorage{newStorage(obs, db)}
}

func (s *AdherentStorage) Insert(a *models.Adherent) error {
	_, err := s.db.Model(a).Returning("id").Insert()
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Wrapf(adherents.ErrAlreadyExists, "adherent of user %d", a.UserID)
		}
		return errors.Wrapf(err, "failed to insert adherent %s", a.FullName())
	}
	return nil
}

func (s *AdherentStorage) ByID(id int64, lock bool) (*models.Adherent, error) {
	a := &models.Adherent{}
	err := forUpdate(s.db.Model(a).Where("id = ?", id), lock).Select()
	if err != nil {
		return nil, notFound(err, "adherent %d", id)
	}
	return a, nil
}

func (s *AdherentStorage) ByUserID(userID int64) (*models.Adherent, error) {
	a := &models.Adherent{}
	err := s.db.Model(a).Where("user_id = ?", userID).Select()
	if err != nil {
		return nil, notFound(err, "adherent of user %d", userID)
	}
	return a, nil
}

func (s *AdherentStorage) ByIDs(ids []int64) ([]models.Adherent, error) {
	var res []models.Adherent
	if len(ids) == 0 {
		return res, nil
	}
	err := s.db.Model(&res).Where("id IN (?)", pg.In(ids)).Select()
	return res, errors.Wrap(err, "failed to fetch adherents")
}

func (s *AdherentStorage) List(f AdherentFilter) ([]models.Adherent, int, error) {
	var res []models.Adherent
	q := s.db.Model(&res)
	if f.Statut != "" {
		q = q.Where("statut = ?", f.Statut)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.WhereGroup(func(q *orm.Query) (*orm.Query, error) {
			return q.WhereOr("nom ILIKE ?", like).
				WhereOr("prenom ILIKE ?", like).
				WhereOr("email ILIKE ?", like), nil
		})
	}
	count, err := q.Order("nom ASC", "prenom ASC", "id ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		SelectAndCount()
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list adherents")
	}
	return res, count, nil
}

// ActifsWithType lists the active adherents that have a cotisation type.
func (s *AdherentStorage) ActifsWithType() ([]models.Adherent, error) {
	var res []models.Adherent
	err := s.db.Model(&res).
		Where("statut = ?", models.AdherentActif).
		Where("type_cotisation_id IS NOT NULL").
		Order("id ASC").
		Select()
	return res, errors.Wrap(err, "failed to list active adherents")
}

func (s *AdherentStorage) Update(a *models.Adherent, now time.Time) error {
	a.UpdatedAt = now
	res, err := s.db.Model(a).
		Column("civilite", "nom", "prenom", "email", "telephone", "adresse", "code_postal", "ville",
			"date_naissance", "date_adhesion", "statut", "type_cotisation_id", "updated_at").
		WherePK().
		Update()
	if err != nil {
		return errors.Wrapf(err, "failed to update adherent %d", a.ID)
	}
	if res.RowsAffected() == 0 {
		return errors.Wrapf(adherents.ErrNotFound, "adherent %d", a.ID)
	}
	return nil
}

type StatutCount struct {
	Statut models.AdherentStatut `json:"statut"`
	Count  int                   `json:"count"`
}

func (s *AdherentStorage) CountByStatut() ([]StatutCount, error) {
	var res []StatutCount
	err := s.db.Model((*models.Adherent)(nil)).
		Column("statut").
		ColumnExpr("count(*) AS count").
		Group("statut").
		Order("statut").
		Select(&res)
	return res, errors.Wrap(err, "failed to count adherents")
}
