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
	"fmt"
	"time"

	"github.com/go-pg/pg"
	"github.com/go-pg/pg/orm"
	"github.com/pkg/errors"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/observability"
)

var openCotisation = []models.CotisationStatut{
	models.CotisationEnAttente,
	models.CotisationPartielle,
	models.CotisationEnRetard,
}

type CotisationStorage struct {
	storage
}

func NewCotisationStorage(obs *observability.Observability, db orm.DB) *CotisationStorage {
	return &CotisationStorage{newStorage(obs, db)}
}

func (s *CotisationStorage) InsertType(t *models.TypeCotisation) error {
	_, err := s.db.Model(t).Returning("id").Insert()
	return errors.Wrapf(err, "failed to insert type %s", t.Libelle)
}

func (s *CotisationStorage) UpdateType(t *models.TypeCotisation) error {
	res, err := s.db.Model(t).Column("libelle", "montant", "periodicite", "actif").WherePK().Update()
	if err != nil {
		return errors.Wrapf(err, "failed to update type %d", t.ID)
	}
	if res.RowsAffected() == 0 {
		return errors.Wrapf(adherents.ErrNotFound, "type %d", t.ID)
	}
	return nil
}

func (s *CotisationStorage) TypeByID(id int64) (*models.TypeCotisation, error) {
	t := &models.TypeCotisation{}
	err := s.db.Model(t).Where("id = ?", id).Select()
	if err != nil {
		return nil, notFound(err, "type %d", id)
	}
	return t, nil
}

func (s *CotisationStorage) Types() ([]models.TypeCotisation, error) {
	var res []models.TypeCotisation
	err := s.db.Model(&res).Order("id ASC").Select()
	return res, errors.Wrap(err, "failed to list types")
}

// DeleteType removes a type nobody references.
func (s *CotisationStorage) DeleteType(id int64) error {
	used, err := s.db.Model((*models.Cotisation)(nil)).Where("type_cotisation_id = ?", id).Exists()
	if err != nil {
		return errors.Wrapf(err, "failed to check type %d usage", id)
	}
	if !used {
		used, err = s.db.Model((*models.Adherent)(nil)).Where("type_cotisation_id = ?", id).Exists()
		if err != nil {
			return errors.Wrapf(err, "failed to check type %d usage", id)
		}
	}
	if used {
		return errors.Wrapf(adherents.ErrInvalidState, "type %d is in use", id)
	}
	res, err := s.db.Model((*models.TypeCotisation)(nil)).Where("id = ?", id).Delete()
	if err != nil {
		return errors.Wrapf(err, "failed to delete type %d", id)
	}
	if res.RowsAffected() == 0 {
		return errors.Wrapf(adherents.ErrNotFound, "type %d", id)
	}
	return nil
}

// InsertIfAbsent inserts c unless the adherent already has a cotisation of that type and period.
// The id is still returned for the DEFAULT primary key, without asserting that a row came back.
func (s *CotisationStorage) InsertIfAbsent(c *models.Cotisation) (bool, error) {
	res, err := s.db.Model(c).
		OnConflict("(adherent_id, type_cotisation_id, periode) DO NOTHING").
		Insert()
	if err != nil {
		return false, errors.Wrapf(err, "failed to insert cotisation %s of adherent %d", c.Periode, c.AdherentID)
	}
	return res.RowsAffected() > 0, nil
}

func (s *CotisationStorage) ByID(id int64, lock bool) (*models.Cotisation, error) {
	c := &models.Cotisation{}
	err := forUpdate(s.db.Model(c).Where("id = ?", id), lock).Select()
	if err != nil {
		return nil, notFound(err, "cotisation %d", id)
	}
	return c, nil
}

func (s *CotisationStorage) ByIDs(ids []int64, lock bool) ([]models.Cotisation, error) {
	var res []models.Cotisation
	if len(ids) == 0 {
		return res, nil
	}
	err := forUpdate(s.db.Model(&res).Where("id IN (?)", pg.In(ids)).Order("id ASC"), lock).Select()
	return res, errors.Wrap(err, "failed to fetch cotisations")
}

func (s *CotisationStorage) ByAdherent(adherentID int64) ([]models.Cotisation, error) {
	var res []models.Cotisation
	err := s.db.Model(&res).
		Where("adherent_id = ?", adherentID).
		Order("date_echeance DESC", "id DESC").
		Select()
	return res, errors.Wrapf(err, "failed to list cotisations of adherent %d", adherentID)
}

// Open returns the unpaid cotisations of the adherent ordered by due date.
func (s *CotisationStorage) Open(adherentID int64, lock bool) ([]models.Cotisation, error) {
	var res []models.Cotisation
	q := s.db.Model(&res).
		Where("adherent_id = ?", adherentID).
		Where("statut IN (?)", pg.In(openCotisation)).
		Order("date_echeance ASC", "id ASC")
	err := forUpdate(q, lock).Select()
	return res, errors.Wrapf(err, "failed to list open cotisations of adherent %d", adherentID)
}

func (s *CotisationStorage) Update(c *models.Cotisation) error {
	res, err := s.db.Model(c).Column("montant_paye", "statut").WherePK().Update()
	if err != nil {
		return errors.Wrapf(err, "failed to update cotisation %d", c.ID)
	}
	if res.RowsAffected() == 0 {
		return errors.Wrapf(adherents.ErrNotFound, "cotisation %d", c.ID)
	}
	return nil
}

// MarkOverdue flags as late every open cotisation whose due date plus grace is before now.
func (s *CotisationStorage) MarkOverdue(now time.Time, graceDays int) (int, error) {
	limit := now.AddDate(0, 0, -graceDays)
	res, err := s.db.Model((*models.Cotisation)(nil)).
		Set("statut = ?", models.CotisationEnRetard).
		Where("statut IN (?)", pg.In([]models.CotisationStatut{models.CotisationEnAttente, models.CotisationPartielle})).
		Where("date_echeance < ?", limit).
		Update()
	if err != nil {
		return 0, errors.Wrap(err, "failed to mark overdue cotisations")
	}
	return res.RowsAffected(), nil
}

// Overdue lists late cotisations whose due date is before limit.
func (s *CotisationStorage) Overdue(limit time.Time) ([]models.Cotisation, error) {
	var res []models.Cotisation
	err := s.db.Model(&res).
		Where("statut = ?", models.CotisationEnRetard).
		Where("date_echeance < ?", limit).
		Order("adherent_id ASC", "date_echeance ASC").
		Select()
	return res, errors.Wrap(err, "failed to list overdue cotisations")
}

type Balance struct {
	Du     int64 `json:"du"`
	Credit int64 `json:"credit"`
}

func (s *CotisationStorage) Balance(adherentID int64) (Balance, error) {
	var b Balance
	_, err := s.db.QueryOne(pg.Scan(&b.Du, &b.Credit), `
		SELECT
			(SELECT coalesce(sum(montant - montant_paye), 0) FROM cotisations
				WHERE adherent_id = ?0 AND statut IN (?1))
			+ (SELECT coalesce(sum(montant_restant), 0) FROM dettes WHERE adherent_id = ?0),
			(SELECT coalesce(sum(montant_restant), 0) FROM avoirs WHERE adherent_id = ?0)`,
		adherentID, pg.In(openCotisation))
	return b, errors.Wrapf(err, "failed to compute balance of adherent %d", adherentID)
}

type DetteStorage struct {
	storage
}

func NewDetteStorage(obs *observability.Observability, db orm.DB) *DetteStorage {
	return &DetteStorage{newStorage(obs, db)}
}

func (s *DetteStorage) Insert(d *models.Dette) error {
	_, err := s.db.Model(d).Returning("id").Insert()
	return errors.Wrapf(err, "failed to insert dette of adherent %d", d.AdherentID)
}

func (s *DetteStorage) ByID(id int64, lock bool) (*models.Dette, error) {
	d := &models.Dette{}
	err := forUpdate(s.db.Model(d).Where("id = ?", id), lock).Select()
	if err != nil {
		return nil, notFound(err, "dette %d", id)
	}
	return d, nil
}

func (s *DetteStorage) ByAdherent(adherentID int64) ([]models.Dette, error) {
	var res []models.Dette
	err := s.db.Model(&res).Where("adherent_id = ?", adherentID).Order("created_at ASC", "id ASC").Select()
	return res, errors.Wrapf(err, "failed to list dettes of adherent %d", adherentID)
}

func (s *DetteStorage) Open(adherentID int64, lock bool) ([]models.Dette, error) {
	var res []models.Dette
	q := s.db.Model(&res).
		Where("adherent_id = ?", adherentID).
		Where("montant_restant > 0").
		Order("created_at ASC", "id ASC")
	err := forUpdate(q, lock).Select()
	return res, errors.Wrapf(err, "failed to list open dettes of adherent %d", adherentID)
}

func (s *DetteStorage) Update(d *models.Dette) error {
	_, err := s.db.Model(d).Column("montant_restant").WherePK().Update()
	return errors.Wrapf(err, "failed to update dette %d", d.ID)
}

// Delete removes a dette nothing was paid on.
func (s *DetteStorage) Delete(id int64) error {
	res, err := s.db.Model((*models.Dette)(nil)).
		Where("id = ?", id).
		Where("montant_restant = montant").
		Delete()
	if err != nil {
		return errors.Wrapf(err, "failed to delete dette %d", id)
	}
	if res.RowsAffected() == 0 {
		if _, err := s.ByID(id, false); err != nil {
			return err
		}
		return errors.Wrapf(adherents.ErrInvalidState, "dette %d is partially paid", id)
	}
	return nil
}

type Totals struct {
	Montant     int64 `json:"montant"`
	MontantPaye int64 `json:"montant_paye"`
	// EnRetard counts overdue cotisations of every period.
	EnRetard int `json:"en_retard"`
}

// YearTotals sums the non cancelled cotisations whose period belongs to year.
func (s *CotisationStorage) YearTotals(year int) (montant, paye int64, err error) {
	err = s.db.Model((*models.Cotisation)(nil)).
		ColumnExpr("coalesce(sum(montant), 0)").
		ColumnExpr("coalesce(sum(montant_paye), 0)").
		Where("statut <> ?", models.CotisationAnnulee).
		Where("periode LIKE ?", fmt.Sprintf("%04d%%", year)).
		Select(pg.Scan(&montant, &paye))
	return montant, paye, errors.Wrapf(err, "failed to sum cotisations of %d", year)
}

func (s *CotisationStorage) CountOverdue() (int, error) {
	n, err := s.db.Model((*models.Cotisation)(nil)).
		Where("statut = ?", models.CotisationEnRetard).
		Count()
	return n, errors.Wrap(err, "failed to count overdue cotisations")
}
