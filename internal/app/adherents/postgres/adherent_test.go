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

package postgres_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/internal/testutils"
)

func TestUserStorage(t *testing.T) {
	testutils.TruncateTables(t, db, testutils.AllTables)
	users := postgres.NewUserStorage(testutils.Observability(), db)

	u := &models.User{Email: " Awa@Amaki.fr ", PasswordHash: "hash", Role: models.RoleAdherent, CreatedAt: time.Now()}
	require.NoError(t, users.Insert(u))
	require.NotZero(t, u.ID)
	require.Equal(t, "awa@amaki.fr", u.Email)

	t.Run("email is unique case insensitively", func(t *testing.T) {
		dup := &models.User{Email: "AWA@amaki.fr", PasswordHash: "hash", Role: models.RoleAdherent, CreatedAt: time.Now()}
		err := users.Insert(dup)
		require.Equal(t, adherents.ErrAlreadyExists, errors.Cause(err))
	})

	t.Run("by email", func(t *testing.T) {
		found, err := users.ByEmail("AWA@AMAKI.FR")
		require.NoError(t, err)
		require.Equal(t, u.ID, found.ID)

		_, err = users.ByEmail("nobody@amaki.fr")
		require.Equal(t, adherents.ErrNotFound, errors.Cause(err))
	})

	t.Run("sessions expire", func(t *testing.T) {
		now := time.Now()
		require.NoError(t, users.InsertSession(&models.Session{Token: "live", UserID: u.ID, ExpiresAt: now.Add(time.Hour), CreatedAt: now}))
		require.NoError(t, users.InsertSession(&models.Session{Token: "dead", UserID: u.ID, ExpiresAt: now.Add(-time.Hour), CreatedAt: now}))

		s, err := users.Session("live", now)
		require.NoError(t, err)
		require.Equal(t, u.ID, s.UserID)

		_, err = users.Session("dead", now)
		require.Equal(t, adherents.ErrNotFound, errors.Cause(err))

		n, err := users.DeleteExpiredSessions(now)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})
}

func TestAdherentStorage_List(t *testing.T) {
	testutils.TruncateTables(t, db, testutils.AllTables)
	storage := postgres.NewAdherentStorage(testutils.Observability(), db)

	actif := testutils.InsertAdherent(t, db, models.AdherentActif, 0)
	testutils.InsertAdherent(t, db, models.AdherentEnAttente, 0)
	testutils.InsertAdherent(t, db, models.AdherentActif, 0)

	list, count, err := storage.List(postgres.AdherentFilter{Statut: models.AdherentActif, Limit: 1})
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.Len(t, list, 1)

	list, count, err = storage.List(postgres.AdherentFilter{Search: actif.Nom, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, actif.ID, list[0].ID)

	counts, err := storage.CountByStatut()
	require.NoError(t, err)
	require.Contains(t, counts, postgres.StatutCount{Statut: models.AdherentActif, Count: 2})
	require.Contains(t, counts, postgres.StatutCount{Statut: models.AdherentEnAttente, Count: 1})
}

func TestAdherentStorage_Update(t *testing.T) {
	testutils.TruncateTables(t, db, testutils.AllTables)
	storage := postgres.NewAdherentStorage(testutils.Observability(), db)
	a := testutils.InsertAdherent(t, db, models.AdherentEnAttente, 0)

	a.Ville = "Lyon"
	a.Statut = models.AdherentActif
	require.NoError(t, storage.Update(a, time.Now()))

	found, err := storage.ByID(a.ID, false)
	require.NoError(t, err)
	require.Equal(t, "Lyon", found.Ville)
	require.Equal(t, models.AdherentActif, found.Statut)

	missing := *a
	missing.ID = a.ID + 1000
	err = storage.Update(&missing, time.Now())
	require.Equal(t, adherents.ErrNotFound, errors.Cause(err))
}
