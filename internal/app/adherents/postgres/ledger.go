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

type PaiementStorage struct {
	storage
}

func NewPaiementStorage(obs *observability.Observability, db orm.DB) *PaiementStorage {
	return &PaiementStorage{newStorage(obs, db)}
}

func (s *PaiementStorage) Insert(p *models.Paiement) error {
	_, err := s.db.Model(p).Returning("id").Insert()
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Wrapf(adherents.ErrAlreadyExists, "paiement %s/%s", p.Provider, p.ProviderRef)
		}
		return errors.Wrapf(err, "failed to insert paiement of adherent %d", p.AdherentID)
	}
	return nil
}

func (s *PaiementStorage) ByID(id int64, lock bool) (*models.Paiement, error) {
	p := &models.Paiement{}
	err := forUpdate(s.db.Model(p).Where("id = ?", id), lock).Select()
	if err != nil {
		return nil, notFound(err, "paiement %d", id)
	}
	return p, nil
}

func (s *PaiementStorage) ByProviderRef(provider models.Provider, ref string, lock bool) (*models.Paiement, error) {
	p := &models.Paiement{}
	q := s.db.Model(p).Where("provider = ?", provider).Where("provider_ref = ?", ref)
	err := forUpdate(q, lock).Select()
	if err != nil {
		return nil, notFound(err, "paiement %s/%s", provider, ref)
	}
	return p, nil
}

func (s *PaiementStorage) ByAdherent(adherentID int64) ([]models.Paiement, error) {
	var res []models.Paiement
	err := s.db.Model(&res).Where("adherent_id = ?", adherentID).Order("created_at DESC", "id DESC").Select()
	return res, errors.Wrapf(err, "failed to list paiements of adherent %d", adherentID)
}

func (s *PaiementStorage) Update(p *models.Paiement) error {
	_, err := s.db.Model(p).Column("montant", "statut", "provider_ref", "paid_at").WherePK().Update()
	return errors.Wrapf(err, "failed to update paiement %d", p.ID)
}

// ReceivedSince sums what was paid after since.
func (s *PaiementStorage) ReceivedSince(since time.Time) (int64, int, error) {
	var (
		total int64
		count int
	)
	err := s.db.Model((*models.Paiement)(nil)).
		ColumnExpr("coalesce(sum(montant), 0)").
		ColumnExpr("count(*)").
		Where("statut = ?", models.PaiementPaye).
		Where("paid_at >= ?", since).
		Select(pg.Scan(&total, &count))
	return total, count, errors.Wrap(err, "failed to sum paiements")
}

type AvoirStorage struct {
	storage
}

func NewAvoirStorage(obs *observability.Observability, db orm.DB) *AvoirStorage {
	return &AvoirStorage{newStorage(obs, db)}
}

func (s *AvoirStorage) Insert(a *models.Avoir) error {
	_, err := s.db.Model(a).Returning("id").Insert()
	return errors.Wrapf(err, "failed to insert avoir of adherent %d", a.AdherentID)
}

func (s *AvoirStorage) ByAdherent(adherentID int64) ([]models.Avoir, error) {
	var res []models.Avoir
	err := s.db.Model(&res).Where("adherent_id = ?", adherentID).Order("created_at ASC", "id ASC").Select()
	return res, errors.Wrapf(err, "failed to list avoirs of adherent %d", adherentID)
}

// Open returns the avoirs with remaining credit, oldest first.
func (s *AvoirStorage) Open(adherentID int64, lock bool) ([]models.Avoir, error) {
	var res []models.Avoir
	q := s.db.Model(&res).
		Where("adherent_id = ?", adherentID).
		Where("montant_restant > 0").
		Order("created_at ASC", "id ASC")
	err := forUpdate(q, lock).Select()
	return res, errors.Wrapf(err, "failed to list open avoirs of adherent %d", adherentID)
}

func (s *AvoirStorage) ByPaiement(paiementID int64, lock bool) ([]models.Avoir, error) {
	var res []models.Avoir
	err := forUpdate(s.db.Model(&res).Where("paiement_id = ?", paiementID), lock).Select()
	return res, errors.Wrapf(err, "failed to list avoirs of paiement %d", paiementID)
}

func (s *AvoirStorage) Update(a *models.Avoir) error {
	_, err := s.db.Model(a).Column("montant_restant").WherePK().Update()
	return errors.Wrapf(err, "failed to update avoir %d", a.ID)
}

func (s *AvoirStorage) TotalRemaining() (int64, error) {
	var total int64
	err := s.db.Model((*models.Avoir)(nil)).
		ColumnExpr("coalesce(sum(montant_restant), 0)").
		Select(pg.Scan(&total))
	return total, errors.Wrap(err, "failed to sum avoirs")
}

type AllocationStorage struct {
	storage
}

func NewAllocationStorage(obs *observability.Observability, db orm.DB) *AllocationStorage {
	return &AllocationStorage{newStorage(obs, db)}
}

func (s *AllocationStorage) Insert(allocations []models.Allocation) error {
	if len(allocations) == 0 {
		return nil
	}
	_, err := s.db.Model(&allocations).Insert()
	return errors.Wrap(err, "failed to insert allocations")
}

func (s *AllocationStorage) ByPaiement(paiementID int64) ([]models.Allocation, error) {
	var res []models.Allocation
	err := s.db.Model(&res).Where("paiement_id = ?", paiementID).Order("id ASC").Select()
	return res, errors.Wrapf(err, "failed to list allocations of paiement %d", paiementID)
}

func (s *AllocationStorage) ByAvoirs(avoirIDs []int64) ([]models.Allocation, error) {
	var res []models.Allocation
	if len(avoirIDs) == 0 {
		return res, nil
	}
	err := s.db.Model(&res).Where("avoir_id IN (?)", pg.In(avoirIDs)).Order("id ASC").Select()
	return res, errors.Wrap(err, "failed to list allocations of avoirs")
}

func (s *AllocationStorage) Delete(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.Model((*models.Allocation)(nil)).Where("id IN (?)", pg.In(ids)).Delete()
	return errors.Wrap(err, "failed to delete allocations")
}

type RelanceStorage struct {
	storage
}

func NewRelanceStorage(obs *observability.Observability, db orm.DB) *RelanceStorage {
	return &RelanceStorage{newStorage(obs, db)}
}

func (s *RelanceStorage) Insert(r *models.Relance) error {
	_, err := s.db.Model(r).Returning("id").Insert()
	return errors.Wrapf(err, "failed to insert relance of cotisation %d", r.CotisationID)
}

// Last returns the latest relance of each cotisation that has one.
func (s *RelanceStorage) Last(cotisationIDs []int64) (map[int64]models.Relance, error) {
	res := make(map[int64]models.Relance)
	if len(cotisationIDs) == 0 {
		return res, nil
	}
	var rows []models.Relance
	_, err := s.db.Query(&rows, `
		SELECT DISTINCT ON (cotisation_id) *
		FROM relances
		WHERE cotisation_id IN (?)
		ORDER BY cotisation_id, sent_at DESC, id DESC`, pg.In(cotisationIDs))
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch last relances")
	}
	for _, r := range rows {
		res[r.CotisationID] = r
	}
	return res, nil
}

func (s *RelanceStorage) ByAdherent(adherentID int64) ([]models.Relance, error) {
	var res []models.Relance
	err := s.db.Model(&res).Where("adherent_id = ?", adherentID).Order("sent_at DESC").Select()
	return res, errors.Wrapf(err, "failed to list relances of adherent %d", adherentID)
}
