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
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/internal/testutils"
)

func TestElections_Lifecycle(t *testing.T) {
	ctx := context.Background()
	obs := setup(t)
	clock := clockAt(2026, time.June, 1)
	svc := NewElections(db, obs, clock)

	e := &models.Election{
		Titre:     "Bureau 2026",
		Ouverture: date(2026, time.June, 10),
		Cloture:   date(2026, time.June, 20),
	}
	require.NoError(t, svc.Create(ctx, e))
	require.Equal(t, models.ElectionBrouillon, e.Statut)

	_, err := svc.Open(ctx, e.ID)
	require.Equal(t, adherents.ErrInvalidState, errors.Cause(err))

	president, err := svc.AddPoste(ctx, e.ID, "Président", 1)
	require.NoError(t, err)
	_, err = svc.AddPoste(ctx, e.ID, "Trésorier", 0)
	require.IsType(t, &adherents.ValidationError{}, err)

	alice := testutils.InsertAdherent(t, db, models.AdherentActif, 0)
	bob := testutils.InsertAdherent(t, db, models.AdherentActif, 0)
	pending := testutils.InsertAdherent(t, db, models.AdherentEnAttente, 0)

	ca, err := svc.AddCandidat(ctx, president.ID, alice.ID)
	require.NoError(t, err)
	cb, err := svc.AddCandidat(ctx, president.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.AddCandidat(ctx, president.ID, alice.ID)
	require.Equal(t, adherents.ErrAlreadyExists, errors.Cause(err))
	_, err = svc.AddCandidat(ctx, president.ID, pending.ID)
	require.Equal(t, adherents.ErrNotEligible, errors.Cause(err))

	// drafts are hidden from members
	_, err = svc.Get(ctx, e.ID, &Principal{User: models.User{Role: models.RoleAdherent}, AdherentID: alice.ID})
	require.Equal(t, adherents.ErrNotFound, errors.Cause(err))
	list, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Empty(t, list)

	opened, err := svc.Open(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, models.ElectionOuverte, opened.Statut)

	e.Titre = "Bureau 2026 bis"
	require.Equal(t, adherents.ErrInvalidState, errors.Cause(svc.Update(ctx, e)))
	_, err = svc.AddPoste(ctx, e.ID, "Secrétaire", 1)
	require.Equal(t, adherents.ErrInvalidState, errors.Cause(err))

	// before ouverture
	require.Equal(t, adherents.ErrElectionClosed, errors.Cause(svc.Vote(ctx, e.ID, alice.ID, ca.ID)))

	clock.now = date(2026, time.June, 12)
	require.NoError(t, svc.Vote(ctx, e.ID, alice.ID, ca.ID))
	require.NoError(t, svc.Vote(ctx, e.ID, bob.ID, ca.ID))
	require.Equal(t, adherents.ErrAlreadyVoted, errors.Cause(svc.Vote(ctx, e.ID, bob.ID, cb.ID)))
	require.Equal(t, adherents.ErrNotEligible, errors.Cause(svc.Vote(ctx, e.ID, pending.ID, cb.ID)))

	view, err := svc.Get(ctx, e.ID, &Principal{User: models.User{Role: models.RoleAdherent}, AdherentID: bob.ID})
	require.NoError(t, err)
	require.Len(t, view.Postes, 1)
	require.Len(t, view.Candidats, 2)
	require.Equal(t, []int64{president.ID}, view.Voted)

	_, err = svc.Results(ctx, e.ID, false)
	require.Equal(t, adherents.ErrForbidden, errors.Cause(err))

	closed, err := svc.Close(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, models.ElectionCloturee, closed.Statut)
	_, err = svc.Close(ctx, e.ID)
	require.Equal(t, adherents.ErrInvalidState, errors.Cause(err))
	require.Equal(t, adherents.ErrElectionClosed, errors.Cause(svc.Vote(ctx, e.ID, pending.ID, cb.ID)))

	results, err := svc.Results(ctx, e.ID, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 2, results[0].Votants)
	require.Equal(t, ca.ID, results[0].Candidats[0].CandidatID)
	require.Equal(t, 2, results[0].Candidats[0].Voix)
	require.True(t, results[0].Candidats[0].Elu)
	require.Equal(t, alice.FullName(), results[0].Candidats[0].Nom)
	require.False(t, results[0].Candidats[1].Elu)

	list, err = svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestElections_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewElections(db, setup(t), clockAt(2026, time.June, 1))

	err := svc.Create(ctx, &models.Election{Titre: "", Ouverture: date(2026, time.June, 10), Cloture: date(2026, time.June, 1)})
	verr, ok := err.(*adherents.ValidationError)
	require.True(t, ok)
	require.Len(t, verr.Messages, 2)
}
