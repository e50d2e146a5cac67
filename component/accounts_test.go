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
	"golang.org/x/crypto/bcrypt"

	"github.com/amaki-france/adherents/configuration"
	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/models"
)

func newAccounts(t *testing.T, clock Clock) *Accounts {
	obs := setup(t)
	return NewAccounts(db, obs, configuration.Auth{SessionTTL: time.Hour, BcryptCost: bcrypt.MinCost}, clock)
}

func TestAccounts_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	clock := clockAt(2026, time.June, 1)
	accounts := newAccounts(t, clock)

	user, adherent, err := accounts.Register(ctx, Registration{
		Email:    "Awa.Diallo@Example.org",
		Password: "motdepasse",
		Profile:  Profile{Civilite: "Mme", Nom: " Diallo ", Prenom: "Awa", Ville: "Paris"},
	})
	require.NoError(t, err)
	require.Equal(t, "awa.diallo@example.org", user.Email)
	require.Equal(t, models.RoleAdherent, user.Role)
	require.Equal(t, user.ID, adherent.UserID)
	require.Equal(t, models.AdherentEnAttente, adherent.Statut)
	require.Equal(t, "Diallo", adherent.Nom)

	_, _, err = accounts.Register(ctx, Registration{
		Email:    "AWA.DIALLO@example.org",
		Password: "motdepasse",
		Profile:  Profile{Nom: "Diallo", Prenom: "Awa"},
	})
	require.Equal(t, adherents.ErrAlreadyExists, errors.Cause(err))

	_, err = accounts.Login(ctx, "awa.diallo@example.org", "mauvais-mot")
	require.Equal(t, adherents.ErrUnauthorized, err)
	_, err = accounts.Login(ctx, "inconnu@example.org", "motdepasse")
	require.Equal(t, adherents.ErrUnauthorized, err)

	session, err := accounts.Login(ctx, "AWA.DIALLO@example.org", "motdepasse")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.True(t, session.ExpiresAt.Equal(clock.now.Add(time.Hour)))

	principal, err := accounts.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, principal.User.ID)
	require.Equal(t, adherent.ID, principal.AdherentID)
	require.False(t, principal.IsAdmin())
	require.True(t, principal.CanAccess(adherent.ID))
	require.False(t, principal.CanAccess(adherent.ID+1))

	require.NoError(t, accounts.Logout(ctx, session.Token))
	_, err = accounts.Authenticate(ctx, session.Token)
	require.Equal(t, adherents.ErrUnauthorized, err)
}

func TestAccounts_SessionExpires(t *testing.T) {
	ctx := context.Background()
	clock := clockAt(2026, time.June, 1)
	accounts := newAccounts(t, clock)

	admin, err := accounts.CreateAdmin(ctx, "tresorier@amaki.fr", "un-long-secret")
	require.NoError(t, err)
	session, err := accounts.Login(ctx, "tresorier@amaki.fr", "un-long-secret")
	require.NoError(t, err)

	principal, err := accounts.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, admin.ID, principal.User.ID)
	require.Zero(t, principal.AdherentID)
	require.True(t, principal.IsAdmin())
	require.True(t, principal.CanAccess(42))

	clock.now = clock.now.Add(2 * time.Hour)
	_, err = accounts.Authenticate(ctx, session.Token)
	require.Equal(t, adherents.ErrUnauthorized, err)

	n, err := accounts.PurgeExpiredSessions(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestAccounts_Validation(t *testing.T) {
	ctx := context.Background()
	accounts := newAccounts(t, clockAt(2026, time.June, 1))

	_, _, err := accounts.Register(ctx, Registration{Email: "pas-un-email", Password: "court"})
	verr, ok := err.(*adherents.ValidationError)
	require.True(t, ok)
	require.ElementsMatch(t, []string{
		"email is invalid",
		"password must be at least 8 characters",
		"nom is required",
		"prenom is required",
	}, verr.Messages)

	_, err = accounts.Authenticate(ctx, "")
	require.Equal(t, adherents.ErrUnauthorized, err)
}
