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

type ElectionStorage struct {
	storage
}

func NewElectionStorage(obs *observability.Observability, db orm.DB) *ElectionStorage {
	return &ElectionStorage{newStorage(obs, db)}
}

func (s *ElectionStorage) Insert(e *models.Election) error {
	_, err := s.db.Model(e).Returning("id").Insert()
	return errors.Wrapf(err, "failed to insert election %s", e.Titre)
}

func (s *ElectionStorage) Update(e *models.Election) error {
	_, err := s.db.Model(e).Column("titre", "description", "ouverture", "cloture", "statut").WherePK().Update()
	return errors.Wrapf(err, "failed to update election %d", e.ID)
}

func (s *ElectionStorage) ByID(id int64, lock bool) (*models.Election, error) {
	e := &models.Election{}
	err := forUpdate(s.db.Model(e).Where("id = ?", id), lock).Select()
	if err != nil {
		return nil, notFound(err, "election %d", id)
	}
	return e, nil
}

// List returns every election, or only those with one of statuts when given.
func (s *ElectionStorage) List(statuts ...models.ElectionStatut) ([]models.Election, error) {
	var res []models.Election
	q := s.db.Model(&res)
	if len(statuts) > 0 {
		q = q.Where("statut IN (?)", pg.In(statuts))
	}
	err := q.Order("ouverture DESC", "id DESC").Select()
	return res, errors.Wrap(err, "failed to list elections")
}

func (s *ElectionStorage) InsertPoste(p *models.Poste) error {
	_, err := s.db.Model(p).Returning("id").Insert()
	return errors.Wrapf(err, "failed to insert poste %s", p.Libelle)
}

func (s *ElectionStorage) Poste(id int64) (*models.Poste, error) {
	p := &models.Poste{}
	err := s.db.Model(p).Where("id = ?", id).Select()
	if err != nil {
		return nil, notFound(err, "poste %d", id)
	}
	return p, nil
}

func (s *ElectionStorage) Postes(electionID int64) ([]models.Poste, error) {
	var res []models.Poste
	err := s.db.Model(&res).Where("election_id = ?", electionID).Order("id ASC").Select()
	return res, errors.Wrapf(err, "failed to list postes of election %d", electionID)
}

func (s *ElectionStorage) InsertCandidat(c *models.Candidat) error {
	_, err := s.db.Model(c).Returning("id").Insert()
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Wrapf(adherents.ErrAlreadyExists, "candidat %d on poste %d", c.AdherentID, c.PosteID)
		}
		return errors.Wrapf(err, "failed to insert candidat %d", c.AdherentID)
	}
	return nil
}

func (s *ElectionStorage) Candidat(id int64) (*models.Candidat, error) {
	c := &models.Candidat{}
	err := s.db.Model(c).Where("id = ?", id).Select()
	if err != nil {
		return nil, notFound(err, "candidat %d", id)
	}
	return c, nil
}

func (s *ElectionStorage) Candidats(electionID int64) ([]models.Candidat, error) {
	var res []models.Candidat
	err := s.db.Model(&res).
		Where("poste_id IN (SELECT id FROM postes WHERE election_id = ?)", electionID).
		Order("id ASC").
		Select()
	return res, errors.Wrapf(err, "failed to list candidats of election %d", electionID)
}

func (s *ElectionStorage) InsertVote(v *models.Vote) error {
	_, err := s.db.Model(v).Insert()
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Wrapf(adherents.ErrAlreadyVoted, "adherent %d on poste %d", v.AdherentID, v.PosteID)
		}
		return errors.Wrap(err, "failed to insert vote")
	}
	return nil
}

// VoteCounts returns the number of votes per candidat of the election.
func (s *ElectionStorage) VoteCounts(electionID int64) (map[int64]int, error) {
	var rows []struct {
		CandidatID int64
		Count      int
	}
	err := s.db.Model((*models.Vote)(nil)).
		Column("candidat_id").
		ColumnExpr("count(*) AS count").
		Where("poste_id IN (SELECT id FROM postes WHERE election_id = ?)", electionID).
		Group("candidat_id").
		Select(&rows)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to count votes of election %d", electionID)
	}
	res := make(map[int64]int, len(rows))
	for _, r := range rows {
		res[r.CandidatID] = r.Count
	}
	return res, nil
}

// VotedPostes lists the postes of the election the adherent already voted for.
func (s *ElectionStorage) VotedPostes(electionID, adherentID int64) ([]int64, error) {
	var ids []int64
	err := s.db.Model((*models.Vote)(nil)).
		Column("poste_id").
		Where("adherent_id = ?", adherentID).
		Where("poste_id IN (SELECT id FROM postes WHERE election_id = ?)", electionID).
		Select(&ids)
	return ids, errors.Wrap(err, "failed to list voted postes")
}

type EvenementStorage struct {
	storage
}

func NewEvenementStorage(obs *observability.Observability, db orm.DB) *EvenementStorage {
	return &EvenementStorage{newStorage(obs, db)}
}

func (s *EvenementStorage) Insert(e *models.Evenement) error {
	_, err := s.db.Model(e).Returning("id").Insert()
	return errors.Wrapf(err, "failed to insert evenement %s", e.Titre)
}

func (s *EvenementStorage) Update(e *models.Evenement) error {
	res, err := s.db.Model(e).
		Column("titre", "description", "lieu", "debut", "fin", "capacite", "publie").
		WherePK().
		Update()
	if err != nil {
		return errors.Wrapf(err, "failed to update evenement %d", e.ID)
	}
	if res.RowsAffected() == 0 {
		return errors.Wrapf(adherents.ErrNotFound, "evenement %d", e.ID)
	}
	return nil
}

func (s *EvenementStorage) ByID(id int64, lock bool) (*models.Evenement, error) {
	e := &models.Evenement{}
	err := forUpdate(s.db.Model(e).Where("id = ?", id), lock).Select()
	if err != nil {
		return nil, notFound(err, "evenement %d", id)
	}
	return e, nil
}

// List returns the evenements ordered by date. With publishedOnly, drafts and the
// evenements finished before now are left out.
func (s *EvenementStorage) List(publishedOnly bool, now time.Time, limit, offset int) ([]models.Evenement, error) {
	var res []models.Evenement
	q := s.db.Model(&res)
	if publishedOnly {
		q = q.Where("publie = true").Where("fin >= ?", now)
	}
	err := q.Order("debut ASC", "id ASC").Limit(limit).Offset(offset).Select()
	return res, errors.Wrap(err, "failed to list evenements")
}

// Delete removes the evenement and its inscriptions.
func (s *EvenementStorage) Delete(id int64) error {
	_, err := s.db.Model((*models.Inscription)(nil)).Where("evenement_id = ?", id).Delete()
	if err != nil {
		return errors.Wrapf(err, "failed to delete inscriptions of evenement %d", id)
	}
	res, err := s.db.Model((*models.Evenement)(nil)).Where("id = ?", id).Delete()
	if err != nil {
		return errors.Wrapf(err, "failed to delete evenement %d", id)
	}
	if res.RowsAffected() == 0 {
		return errors.Wrapf(adherents.ErrNotFound, "evenement %d", id)
	}
	return nil
}

func (s *EvenementStorage) InsertInscription(i *models.Inscription) error {
	_, err := s.db.Model(i).Returning("id").Insert()
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Wrapf(adherents.ErrAlreadyExists, "inscription of adherent %d", i.AdherentID)
		}
		return errors.Wrap(err, "failed to insert inscription")
	}
	return nil
}

func (s *EvenementStorage) DeleteInscription(evenementID, adherentID int64) error {
	res, err := s.db.Model((*models.Inscription)(nil)).
		Where("evenement_id = ?", evenementID).
		Where("adherent_id = ?", adherentID).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to delete inscription")
	}
	if res.RowsAffected() == 0 {
		return errors.Wrapf(adherents.ErrNotFound, "inscription of adherent %d", adherentID)
	}
	return nil
}

func (s *EvenementStorage) CountInscriptions(evenementID int64) (int, error) {
	n, err := s.db.Model((*models.Inscription)(nil)).Where("evenement_id = ?", evenementID).Count()
	return n, errors.Wrapf(err, "failed to count inscriptions of evenement %d", evenementID)
}

func (s *EvenementStorage) Inscriptions(evenementID int64) ([]models.Inscription, error) {
	var res []models.Inscription
	err := s.db.Model(&res).Where("evenement_id = ?", evenementID).Order("created_at ASC", "id ASC").Select()
	return res, errors.Wrapf(err, "failed to list inscriptions of evenement %d", evenementID)
}

type DocumentStorage struct {
	storage
}

func NewDocumentStorage(obs *observability.Observability, db orm.DB) *DocumentStorage {
	return &DocumentStorage{newStorage(obs, db)}
}

func (s *DocumentStorage) Insert(d *models.Document) error {
	_, err := s.db.Model(d).Returning("id").Insert()
	return errors.Wrapf(err, "failed to insert document %s", d.Titre)
}

func (s *DocumentStorage) Update(d *models.Document) error {
	res, err := s.db.Model(d).Column("titre", "categorie", "url", "visibilite").WherePK().Update()
	if err != nil {
		return errors.Wrapf(err, "failed to update document %d", d.ID)
	}
	if res.RowsAffected() == 0 {
		return errors.Wrapf(adherents.ErrNotFound, "document %d", d.ID)
	}
	return nil
}

func (s *DocumentStorage) ByID(id int64) (*models.Document, error) {
	d := &models.Document{}
	err := s.db.Model(d).Where("id = ?", id).Select()
	if err != nil {
		return nil, notFound(err, "document %d", id)
	}
	return d, nil
}

func (s *DocumentStorage) List(visibilites []models.VisibiliteDocument, categorie string) ([]models.Document, error) {
	var res []models.Document
	q := s.db.Model(&res).Where("visibilite IN (?)", pg.In(visibilites))
	if categorie != "" {
		q = q.Where("categorie = ?", categorie)
	}
	err := q.Order("created_at DESC", "id DESC").Select()
	return res, errors.Wrap(err, "failed to list documents")
}

func (s *DocumentStorage) Delete(id int64) error {
	res, err := s.db.Model((*models.Document)(nil)).Where("id = ?", id).Delete()
	if err != nil {
		return errors.Wrapf(err, "failed to delete document %d", id)
	}
	if res.RowsAffected() == 0 {
		return errors.Wrapf(adherents.ErrNotFound, "document %d", id)
	}
	return nil
}
