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
	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/internal/testutils"
)

func newMembership(t *testing.T, clock Clock) *Membership {
	obs := setup(t)
	types, err := NewTypes(db, obs, 16)
	require.NoError(t, err)
	return NewMembership(db, obs, types, NewPurge(db, obs), clock)
}

func TestMembership_ChangeStatut(t *testing.T) {
	ctx := context.Background()
	clock := clockAt(2026, time.September, 1)
	svc := newMembership(t, clock)
	a := testutils.InsertAdherent(t, db, models.AdherentEnAttente, 0)

	_, err := svc.ChangeStatut(ctx, a.ID, models.AdherentSuspendu)
	require.Equal(t, adherents.ErrInvalidState, errors.Cause(err))

	actif, err := svc.ChangeStatut(ctx, a.ID, models.AdherentActif)
	require.NoError(t, err)
	require.Equal(t, models.AdherentActif, actif.Statut)
	require.NotNil(t, actif.DateAdhesion)
	require.True(t, clock.now.Equal(*actif.DateAdhesion))

	clock.now = clock.now.AddDate(0, 1, 0)
	_, err = svc.ChangeStatut(ctx, a.ID, models.AdherentSuspendu)
	require.NoError(t, err)
	again, err := svc.ChangeStatut(ctx, a.ID, models.AdherentActif)
	require.NoError(t, err)
	require.True(t, date(2026, time.September, 1).Equal(*again.DateAdhesion))

	_, err = svc.ChangeStatut(ctx, a.ID, models.AdherentRadie)
	require.NoError(t, err)
	_, err = svc.ChangeStatut(ctx, a.ID, models.AdherentActif)
	require.Equal(t, adherents.ErrInvalidState, errors.Cause(err))

	_, err = svc.ChangeStatut(ctx, a.ID, "honoraire")
	require.IsType(t, &adherents.ValidationError{}, err)
	_, err = svc.ChangeStatut(ctx, a.ID+100, models.AdherentActif)
	require.Equal(t, adherents.ErrNotFound, errors.Cause(err))
}

func TestMembership_Update(t *testing.T) {
	ctx := context.Background()
	svc := newMembership(t, clockAt(2026, time.September, 1))
	typ := testutils.InsertType(t, db, 3000, models.PeriodiciteAnnuelle)
	a := testutils.InsertAdherent(t, db, models.AdherentActif, 0)

	updated, err := svc.Update(ctx, a.ID, Profile{
		Civilite: "M.",
		Nom:      "Kouyaté",
		Prenom:   "Moussa",
		Email:    "Moussa@Example.org",
		Ville:    "Montreuil",
	}, &typ.ID)
	require.NoError(t, err)
	require.Equal(t, "moussa@example.org", updated.Email)
	require.Equal(t, typ.ID, updated.TypeCotisationID)

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "Kouyaté", got.Nom)
	require.Equal(t, "Montreuil", got.Ville)
	require.Equal(t, typ.ID, got.TypeCotisationID)

	// the type is kept when not given
	_, err = svc.Update(ctx, a.ID, Profile{Nom: "Kouyaté", Prenom: "Moussa"}, nil)
	require.NoError(t, err)
	got, err = svc.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, typ.ID, got.TypeCotisationID)

	unknown := typ.ID + 100
	_, err = svc.Update(ctx, a.ID, Profile{Nom: "Kouyaté", Prenom: "Moussa"}, &unknown)
	require.IsType(t, &adherents.ValidationError{}, err)
	_, err = svc.Update(ctx, a.ID, Profile{Prenom: "Moussa"}, nil)
	require.IsType(t, &adherents.ValidationError{}, err)
}

func TestMembership_List(t *testing.T) {
	ctx := context.Background()
	svc := newMembership(t, clockAt(2026, time.September, 1))
	for i := 0; i < 3; i++ {
		testutils.InsertAdherent(t, db, models.AdherentActif, 0)
	}
	testutils.InsertAdherent(t, db, models.AdherentEnAttente, 0)

	list, total, err := svc.List(ctx, postgres.AdherentFilter{Statut: models.AdherentActif, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, list, 2)

	_, _, err = svc.List(ctx, postgres.AdherentFilter{Limit: 0})
	require.IsType(t, &adherents.ValidationError{}, err)
	_, _, err = svc.List(ctx, postgres.AdherentFilter{Limit: 1001})
	require.IsType(t, &adherents.ValidationError{}, err)
	_, _, err = svc.List(ctx, postgres.AdherentFilter{Limit: 10, Offset: -1})
	require.IsType(t, &adherents.ValidationError{}, err)
}

func TestMembership_Delete(t *testing.T) {
	ctx := context.Background()
	clock := clockAt(2026, time.September, 1)
	svc := newMembership(t, clock)
	typ := testutils.InsertType(t, db, 3000, models.PeriodiciteAnnuelle)
	a := testutils.InsertAdherent(t, db, models.AdherentActif, typ.ID)
	other := testutils.InsertAdherent(t, db, models.AdherentActif, typ.ID)
	testutils.InsertCotisation(t, db, a, typ.ID, "2026", date(2026, time.March, 31), 3000)

	ledger := NewLedger(db, testutils.Observability(), 15, clock)
	_, err := ledger.RecordManualPayment(ctx, a.ID, 5000, models.ProviderCheque, "CHQ-9")
	require.NoError(t, err)

	report, err := svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, 1, report["adherents"])
	require.Equal(t, 1, report["paiements"])
	require.Equal(t, 1, report["avoirs"])
	require.Equal(t, 1, report["users"])

	_, err = svc.Get(ctx, a.ID)
	require.Equal(t, adherents.ErrNotFound, errors.Cause(err))
	_, err = svc.Get(ctx, other.ID)
	require.NoError(t, err)
	_, err = svc.Delete(ctx, a.ID)
	require.Equal(t, adherents.ErrNotFound, errors.Cause(err))
}
