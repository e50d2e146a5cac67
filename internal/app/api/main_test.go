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

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-pg/pg"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/amaki-france/adherents/component"
	"github.com/amaki-france/adherents/configuration"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/internal/notify"
	"github.com/amaki-france/adherents/internal/payments"
	"github.com/amaki-france/adherents/internal/testutils"
)

const (
	migrationsDir     = "../../../scripts/migrations"
	testWebhookSecret = "whsec_api_test"
	testPassword      = "motdepasse"
)

var (
	db      *pg.DB
	manager *component.Manager
	apiURL  string

	clock = &testClock{now: time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)}
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func testConfig() *configuration.Configuration {
	cfg := testutils.Config()
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.Stripe.SecretKey = "sk_test_api"
	cfg.Stripe.WebhookSecret = testWebhookSecret
	return cfg
}

func TestMain(t *testing.M) {
	var cleaner func()
	db, _, cleaner = testutils.SetupDB(migrationsDir)

	obs := testutils.Observability()
	cfg := testConfig()
	mailer := notify.NewLogMailer(obs.Log(), cfg.Notify.From)
	stripe := payments.NewStripe(cfg.Stripe, obs.Log())

	var err error
	manager, err = component.Prepare(db, obs, cfg, mailer, clock, stripe)
	if err != nil {
		cleaner()
		panic(err)
	}
	srv := httptest.NewServer(NewEcho(NewServer(db, obs, clock, manager)))
	apiURL = srv.URL

	retCode := t.Run()
	srv.Close()
	cleaner()
	os.Exit(retCode)
}

func truncateDB(t *testing.T) {
	testutils.TruncateTables(t, db, testutils.AllTables)
}

func call(t *testing.T, method, path, token string, body interface{}) *http.Response {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, apiURL+path, bytes.NewReader(payload))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func requireResponse(t *testing.T, resp *http.Response, status int, dest interface{}) {
	defer resp.Body.Close()
	require.Equal(t, status, resp.StatusCode)
	if dest != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
	}
}

func requireError(t *testing.T, resp *http.Response, status int, messages ...string) {
	received := &ErrorMessage{}
	requireResponse(t, resp, status, received)
	if len(messages) > 0 {
		require.Equal(t, messages, received.Error)
	}
}

func login(t *testing.T, email string) string {
	res := &LoginResponse{}
	requireResponse(t, call(t, http.MethodPost, "/api/login", "", LoginRequest{Email: email, Password: testPassword}), http.StatusOK, res)
	require.NotEmpty(t, res.Token)
	return res.Token
}

func adminToken(t *testing.T) string {
	user, err := manager.Accounts.CreateAdmin(context.Background(), fmt.Sprintf("admin%d@amaki.test", time.Now().UnixNano()), testPassword)
	require.NoError(t, err)
	return login(t, user.Email)
}

func register(t *testing.T, email, nom string) *AccountResponse {
	res := &AccountResponse{}
	requireResponse(t, call(t, http.MethodPost, "/api/register", "", component.Registration{
		Email:    email,
		Password: testPassword,
		Profile:  component.Profile{Civilite: "M.", Nom: nom, Prenom: "Moussa"},
	}), http.StatusCreated, res)
	return res
}

// member registers an adherent, activates it and returns its token and id.
func member(t *testing.T, admin, email string) (string, int64) {
	res := register(t, email, "Diallo")
	path := fmt.Sprintf("/api/admin/adherents/%d/statut", res.Adherent.ID)
	requireResponse(t, call(t, http.MethodPut, path, admin, StatutRequest{Statut: models.AdherentActif}), http.StatusOK, nil)
	return login(t, email), res.Adherent.ID
}
