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

type Elections struct {
	db    *pg.DB
	obs   *observability.Observability
	log   logrus.FieldLogger
	clock Clock
}

func NewElections(db *pg.DB, obs *observability.Observability, clock Clock) *Elections {
	return &Elections{db: db, obs: obs, log: obs.Log(), clock: clock}
}

type ElectionView struct {
	models.Election
	Postes    []models.Poste    `json:"postes"`
	Candidats []models.Candidat `json:"candidats"`
	// postes the caller already voted for
	Voted []int64 `json:"voted,omitempty"`
}

func validateElection(e *models.Election) error {
	verr := &adherents.ValidationError{}
	e.Titre = strings.TrimSpace(e.Titre)
	if e.Titre == "" {
		verr.Add("titre is required")
	}
	if !e.Cloture.After(e.Ouverture) {
		verr.Add("cloture should be after ouverture")
	}
	return verr.Err()
}

func (s *Elections) Create(ctx context.Context, e *models.Election) error {
	if err := validateElection(e); err != nil {
		return err
	}
	e.Statut = models.ElectionBrouillon
	e.CreatedAt = s.clock.Now()
	return postgres.NewElectionStorage(s.obs, s.db).Insert(e)
}

// Update changes a draft election. Statut is not taken from e.
func (s *Elections) Update(ctx context.Context, e *models.Election) error {
	if err := validateElection(e); err != nil {
		return err
	}
	return s.db.RunInTransaction(func(tx *pg.Tx) error {
		storage := postgres.NewElectionStorage(s.obs, tx)
		current, err := storage.ByID(e.ID, true)
		if err != nil {
			return err
		}
		if current.Statut != models.ElectionBrouillon {
			return errors.Wrapf(adherents.ErrInvalidState, "election %d is %s", e.ID, current.Statut)
		}
		e.Statut = current.Statut
		e.CreatedAt = current.CreatedAt
		return storage.Update(e)
	})
}

// List returns every election to admins and the opened and closed ones to others.
func (s *Elections) List(ctx context.Context, admin bool) ([]models.Election, error) {
	storage := postgres.NewElectionStorage(s.obs, s.db)
	if admin {
		return storage.List()
	}
	return storage.List(models.ElectionOuverte, models.ElectionCloturee)
}

func (s *Elections) Get(ctx context.Context, id int64, caller *Principal) (*ElectionView, error) {
	storage := postgres.NewElectionStorage(s.obs, s.db)
	e, err := storage.ByID(id, false)
	if err != nil {
		return nil, err
	}
	if e.Statut == models.ElectionBrouillon && !caller.IsAdmin() {
		return nil, errors.Wrapf(adherents.ErrNotFound, "election %d", id)
	}
	view := &ElectionView{Election: *e}
	if view.Postes, err = storage.Postes(id); err != nil {
		return nil, err
	}
	if view.Candidats, err = storage.Candidats(id); err != nil {
		return nil, err
	}
	if caller != nil && caller.AdherentID != 0 {
		if view.Voted, err = storage.VotedPostes(id, caller.AdherentID); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (s *Elections) draft(storage *postgres.ElectionStorage, id int64) (*models.Election, error) {
	e, err := storage.ByID(id, true)
	if err != nil {
		return nil, err
	}
	if e.Statut != models.ElectionBrouillon {
		return nil, errors.Wrapf(adherents.ErrInvalidState, "election %d is %s", id, e.Statut)
	}
	return e, nil
}

func (s *Elections) AddPoste(ctx context.Context, electionID int64, libelle string, places int) (*models.Poste, error) {
	verr := &adherents.ValidationError{}
	libelle = strings.TrimSpace(libelle)
	if libelle == "" {
		verr.Add("libelle is required")
	}
	if places < 1 {
		verr.Add("places should be at least 1")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	p := &models.Poste{ElectionID: electionID, Libelle: libelle, Places: places}
	err := s.db.RunInTransaction(func(tx *pg.Tx) error {
		storage := postgres.NewElectionStorage(s.obs, tx)
		if _, err := s.draft(storage, electionID); err != nil {
			return err
		}
		return storage.InsertPoste(p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Elections) AddCandidat(ctx context.Context, posteID, adherentID int64) (*models.Candidat, error) {
	c := &models.Candidat{PosteID: posteID, AdherentID: adherentID}
	err := s.db.RunInTransaction(func(tx *pg.Tx) error {
		storage := postgres.NewElectionStorage(s.obs, tx)
		p, err := storage.Poste(posteID)
		if err != nil {
			return err
		}
		if _, err := s.draft(storage, p.ElectionID); err != nil {
			return err
		}
		a, err := postgres.NewAdherentStorage(s.obs, tx).ByID(adherentID, false)
		if err != nil {
			return err
		}
		if a.Statut != models.AdherentActif {
			return errors.Wrapf(adherents.ErrNotEligible, "adherent %d is %s", a.ID, a.Statut)
		}
		return storage.InsertCandidat(c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Open starts the vote. The election needs at least one poste with a candidat.
func (s *Elections) Open(ctx context.Context, id int64) (*models.Election, error) {
	var res *models.Election
	err := s.db.RunInTransaction(func(tx *pg.Tx) error {
		storage := postgres.NewElectionStorage(s.obs, tx)
		e, err := s.draft(storage, id)
		if err != nil {
			return err
		}
		candidats, err := storage.Candidats(id)
		if err != nil {
			return err
		}
		if len(candidats) == 0 {
			return errors.Wrapf(adherents.ErrInvalidState, "election %d has no candidat", id)
		}
		e.Statut = models.ElectionOuverte
		res = e
		return storage.Update(e)
	})
	if err != nil {
		return nil, err
	}
	s.log.WithField("election_id", id).Info("election opened")
	return res, nil
}

func (s *Elections) Close(ctx context.Context, id int64) (*models.Election, error) {
	var res *models.Election
	err := s.db.RunInTransaction(func(tx *pg.Tx) error {
		storage := postgres.NewElectionStorage(s.obs, tx)
		e, err := storage.ByID(id, true)
		if err != nil {
			return err
		}
		if e.Statut != models.ElectionOuverte {
			return errors.Wrapf(adherents.ErrInvalidState, "election %d is %s", id, e.Statut)
		}
		e.Statut = models.ElectionCloturee
		res = e
		return storage.Update(e)
	})
	if err != nil {
		return nil, err
	}
	s.log.WithField("election_id", id).Info("election closed")
	return res, nil
}

func (s *Elections) Vote(ctx context.Context, electionID, voterID, candidatID int64) error {
	storage := postgres.NewElectionStorage(s.obs, s.db)
	e, err := storage.ByID(electionID, false)
	if err != nil {
		return err
	}
	candidat, err := storage.Candidat(candidatID)
	if err != nil {
		return err
	}
	poste, err := storage.Poste(candidat.PosteID)
	if err != nil {
		return err
	}
	voter, err := postgres.NewAdherentStorage(s.obs, s.db).ByID(voterID, false)
	if err != nil {
		return err
	}
	if err := adherents.CheckVote(*e, *voter, *poste, *candidat, s.clock.Now()); err != nil {
		return err
	}
	return storage.InsertVote(&models.Vote{
		PosteID:    poste.ID,
		CandidatID: candidat.ID,
		AdherentID: voter.ID,
		CreatedAt:  s.clock.Now(),
	})
}

// Results are public once the election is closed, admins may follow them live.
func (s *Elections) Results(ctx context.Context, id int64, admin bool) ([]adherents.PosteResult, error) {
	storage := postgres.NewElectionStorage(s.obs, s.db)
	e, err := storage.ByID(id, false)
	if err != nil {
		return nil, err
	}
	if e.Statut != models.ElectionCloturee && !admin {
		return nil, errors.Wrapf(adherents.ErrForbidden, "election %d is not closed", id)
	}
	postes, err := storage.Postes(id)
	if err != nil {
		return nil, err
	}
	candidats, err := storage.Candidats(id)
	if err != nil {
		return nil, err
	}
	votes, err := storage.VoteCounts(id)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(candidats))
	for _, c := range candidats {
		ids = append(ids, c.AdherentID)
	}
	list, err := postgres.NewAdherentStorage(s.obs, s.db).ByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(list))
	for _, a := range list {
		names[a.ID] = a.FullName()
	}
	return adherents.Tally(postes, candidats, votes, names), nil
}
