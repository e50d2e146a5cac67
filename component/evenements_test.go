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

func TestEvenements_Register(t *testing.T) {
	ctx := context.Background()
	obs := setup(t)
	clock := clockAt(2026, time.June, 1)
	svc := NewEvenements(db, obs, clock)

	ev := &models.Evenement{
		Titre:    "Assemblée générale",
		Lieu:     "Maison des associations",
		Debut:    date(2026, time.June, 27),
		Fin:      date(2026, time.June, 27).Add(3 * time.Hour),
		Capacite: 2,
	}
	require.NoError(t, svc.Create(ctx, ev))

	first := testutils.InsertAdherent(t, db, models.AdherentActif, 0)
	second := testutils.InsertAdherent(t, db, models.AdherentActif, 0)
	third := testutils.InsertAdherent(t, db, models.AdherentActif, 0)
	suspended := testutils.InsertAdherent(t, db, models.AdherentSuspendu, 0)

	// not published yet
	_, err := svc.Register(ctx, ev.ID, first.ID)
	require.Equal(t, adherents.ErrInvalidState, errors.Cause(err))

	ev.Publie = true
	require.NoError(t, svc.Update(ctx, ev))

	_, err = svc.Register(ctx, ev.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.Register(ctx, ev.ID, first.ID)
	require.Equal(t, adherents.ErrAlreadyExists, errors.Cause(err))
	_, err = svc.Register(ctx, ev.ID, suspended.ID)
	require.Equal(t, adherents.ErrNotEligible, errors.Cause(err))
	_, err = svc.Register(ctx, ev.ID, second.ID)
	require.NoError(t, err)
	_, err = svc.Register(ctx, ev.ID, third.ID)
	require.Equal(t, adherents.ErrEventFull, errors.Cause(err))

	require.NoError(t, svc.Unregister(ctx, ev.ID, first.ID))
	require.Equal(t, adherents.ErrNotFound, errors.Cause(svc.Unregister(ctx, ev.ID, first.ID)))
	_, err = svc.Register(ctx, ev.ID, third.ID)
	require.NoError(t, err)

	inscriptions, err := svc.Inscriptions(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, inscriptions, 2)

	clock.now = date(2026, time.June, 28)
	require.NoError(t, svc.Unregister(ctx, ev.ID, third.ID))
	_, err = svc.Register(ctx, ev.ID, third.ID)
	require.Equal(t, adherents.ErrInvalidState, errors.Cause(err))

	require.NoError(t, svc.Delete(ctx, ev.ID))
	_, err = svc.Get(ctx, ev.ID)
	require.Equal(t, adherents.ErrNotFound, errors.Cause(err))
}

func TestEvenements_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewEvenements(db, setup(t), clockAt(2026, time.June, 1))

	err := svc.Create(ctx, &models.Evenement{Debut: date(2026, time.June, 2), Fin: date(2026, time.June, 1), Capacite: -1})
	verr, ok := err.(*adherents.ValidationError)
	require.True(t, ok)
	require.Len(t, verr.Messages, 3)

	_, err = svc.List(ctx, false, 0, 0)
	require.IsType(t, &adherents.ValidationError{}, err)
}

func TestDocuments_Visibility(t *testing.T) {
	ctx := context.Background()
	svc := NewDocuments(db, setup(t), clockAt(2026, time.June, 1))

	for _, d := range []*models.Document{
		{Titre: "Statuts", Categorie: "statuts", URL: "https://amaki.fr/statuts.pdf", Visibilite: models.VisibilitePublic},
		{Titre: "PV AG 2025", Categorie: "pv", URL: "https://amaki.fr/pv-2025.pdf", Visibilite: models.VisibiliteAdherents},
		{Titre: "Comptes 2025", Categorie: "comptes", URL: "https://amaki.fr/comptes-2025.pdf", Visibilite: models.VisibiliteAdmin},
	} {
		require.NoError(t, svc.Create(ctx, d))
	}

	anonymous, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, anonymous, 1)
	members, err := svc.List(ctx, models.RoleAdherent, "")
	require.NoError(t, err)
	require.Len(t, members, 2)
	admins, err := svc.List(ctx, models.RoleAdmin, "")
	require.NoError(t, err)
	require.Len(t, admins, 3)
	pv, err := svc.List(ctx, models.RoleAdmin, "pv")
	require.NoError(t, err)
	require.Len(t, pv, 1)

	err = svc.Create(ctx, &models.Document{Titre: "Lien", URL: "/relatif"})
	require.IsType(t, &adherents.ValidationError{}, err)
}
