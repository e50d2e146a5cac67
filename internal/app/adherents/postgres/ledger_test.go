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

func TestPaiementStorage_ProviderRefIsUnique(t *testing.T) {
	testutils.TruncateTables(t, db, testutils.AllTables)
	storage := postgres.NewPaiementStorage(testutils.Observability(), db)
	a := testutils.InsertAdherent(t, db, models.AdherentActif, 0)

	p := &models.Paiement{
		AdherentID:  a.ID,
		Montant:     2000,
		Provider:    models.ProviderStripe,
		ProviderRef: "cs_test_1",
		Statut:      models.PaiementEnAttente,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, storage.Insert(p))

	dup := *p
	dup.ID = 0
	err := storage.Insert(&dup)
	require.Equal(t, adherents.ErrAlreadyExists, errors.Cause(err))

	// manual payments carry no reference
	for i := 0; i < 2; i++ {
		require.NoError(t, storage.Insert(&models.Paiement{
			AdherentID: a.ID,
			Montant:    1000,
			Provider:   models.ProviderEspeces,
			Statut:     models.PaiementEnAttente,
			CreatedAt:  time.Now(),
		}))
	}

	found, err := storage.ByProviderRef(models.ProviderStripe, "cs_test_1", false)
	require.NoError(t, err)
	require.Equal(t, p.ID, found.ID)

	_, err = storage.ByProviderRef(models.ProviderMollie, "cs_test_1", false)
	require.Equal(t, adherents.ErrNotFound, errors.Cause(err))
}

func TestPaiementStorage_ReceivedSince(t *testing.T) {
	testutils.TruncateTables(t, db, testutils.AllTables)
	storage := postgres.NewPaiementStorage(testutils.Observability(), db)
	a := testutils.InsertAdherent(t, db, models.AdherentActif, 0)

	now := time.Now()
	old := now.AddDate(0, -2, 0)
	for _, paidAt := range []time.Time{now, now.Add(-time.Hour), old} {
		paidAt := paidAt
		require.NoError(t, storage.Insert(&models.Paiement{
			AdherentID: a.ID,
			Montant:    1500,
			Provider:   models.ProviderCheque,
			Statut:     models.PaiementPaye,
			CreatedAt:  paidAt,
			PaidAt:     &paidAt,
		}))
	}

	total, count, err := storage.ReceivedSince(now.AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Equal(t, int64(3000), total)
	require.Equal(t, 2, count)
}

func TestRelanceStorage_Last(t *testing.T) {
	testutils.TruncateTables(t, db, testutils.AllTables)
	storage := postgres.NewRelanceStorage(testutils.Observability(), db)
	tc := testutils.InsertType(t, db, 2000, models.PeriodiciteMensuelle)
	a := testutils.InsertAdherent(t, db, models.AdherentActif, tc.ID)
	c := testutils.InsertCotisation(t, db, a, tc.ID, "2026-01", time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC), 2000)
	other := testutils.InsertCotisation(t, db, a, tc.ID, "2026-02", time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), 2000)

	first := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	for i, sentAt := range []time.Time{first, first.AddDate(0, 0, 15)} {
		require.NoError(t, storage.Insert(&models.Relance{
			AdherentID:   a.ID,
			CotisationID: c.ID,
			Niveau:       i + 1,
			Canal:        models.CanalEmail,
			SentAt:       sentAt,
		}))
	}

	last, err := storage.Last([]int64{c.ID, other.ID})
	require.NoError(t, err)
	require.Len(t, last, 1)
	require.Equal(t, 2, last[c.ID].Niveau)
}
