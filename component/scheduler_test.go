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

	"github.com/stretchr/testify/require"

	"github.com/amaki-france/adherents/configuration"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/internal/testutils"
)

func TestScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewScheduler("every full moon", testutils.Observability().Log(), nil, nil, nil, &DefaultClock{})
	require.Error(t, err)

	s, err := NewScheduler("0 8 * * *", testutils.Observability().Log(), nil, nil, nil, &DefaultClock{})
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestScheduler_RunOnce(t *testing.T) {
	ctx := context.Background()
	obs := setup(t)
	clock := clockAt(2026, time.April, 3)
	cfg := testutils.Config()

	types, err := NewTypes(db, obs, 8)
	require.NoError(t, err)
	ledger := NewLedger(db, obs, 15, clock)
	cotisations := NewCotisations(db, obs, types, ledger, 15, clock)
	mailer, sender := newOutbox(t)
	relances := NewRelances(db, obs, configuration.Relance{Interval: 15 * 24 * time.Hour, MinDaysOverdue: 7, MaxLevel: 3}, "AMAKI France", sender)
	accounts := NewAccounts(db, obs, cfg.Auth, clock)

	typ := testutils.InsertType(t, db, 3000, models.PeriodiciteAnnuelle)
	a := testutils.InsertAdherent(t, db, models.AdherentActif, typ.ID)
	c := testutils.InsertCotisation(t, db, a, typ.ID, "2026", date(2026, time.February, 28), 3000)

	expired := &models.Session{Token: "expired", UserID: a.UserID, ExpiresAt: clock.now.Add(-time.Hour), CreatedAt: clock.now.AddDate(0, 0, -8)}
	valid := &models.Session{Token: "valid", UserID: a.UserID, ExpiresAt: clock.now.Add(time.Hour), CreatedAt: clock.now}
	require.NoError(t, db.Insert(expired, valid))

	s, err := NewScheduler("", obs.Log(), cotisations, relances, accounts, clock)
	require.NoError(t, err)
	require.NoError(t, s.RunOnce(ctx))

	list, err := cotisations.ByAdherent(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, models.CotisationEnRetard, list[0].Statut)

	require.Len(t, mailer.sent, 1)
	require.Equal(t, c.ID, mailer.sent[0].CotisationID)

	var tokens []string
	require.NoError(t, db.Model((*models.Session)(nil)).Column("token").Select(&tokens))
	require.Equal(t, []string{"valid"}, tokens)

	// a second run the same day sends nothing new
	require.NoError(t, s.RunOnce(ctx))
	require.Len(t, mailer.sent, 1)
}

func TestPurge_All(t *testing.T) {
	ctx := context.Background()
	obs := setup(t)

	admin := testutils.InsertUser(t, db, models.RoleAdmin)
	typ := testutils.InsertType(t, db, 3000, models.PeriodiciteAnnuelle)
	a := testutils.InsertAdherent(t, db, models.AdherentActif, typ.ID)
	testutils.InsertCotisation(t, db, a, typ.ID, "2026", date(2026, time.March, 31), 3000)
	_, err := NewLedger(db, obs, 15, clockAt(2026, time.January, 10)).
		RecordManualPayment(ctx, a.ID, 1000, models.ProviderEspeces, "")
	require.NoError(t, err)

	report, err := NewPurge(db, obs).All(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report["adherents"])
	require.Equal(t, 1, report["cotisations"])
	require.Equal(t, 1, report["paiements"])
	require.Equal(t, 1, report["allocations"])
	require.Equal(t, 1, report["types_cotisation"])
	require.Equal(t, 1, report["users"])

	var users []models.User
	require.NoError(t, db.Model(&users).Select())
	require.Len(t, users, 1)
	require.Equal(t, admin.ID, users[0].ID)
}
