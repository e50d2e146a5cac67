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
	"fmt"
	"io/ioutil"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amaki-france/adherents/component"
	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/internal/models"
)

func TestHealthCheckAndMetrics(t *testing.T) {
	resp, err := http.Get(apiURL + "/healthcheck")
	require.NoError(t, err)
	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "OK", string(body))

	resp, err = http.Get(apiURL + "/metrics")
	require.NoError(t, err)
	body, err = ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `http_requests_total{method="GET",route="/healthcheck",status="200"}`)
}

func TestAccounts(t *testing.T) {
	truncateDB(t)

	res := register(t, "Fatou.Sow@amaki.test", "Sow")
	require.Equal(t, models.AdherentEnAttente, res.Adherent.Statut)
	require.Equal(t, models.RoleAdherent, res.User.Role)

	resp := call(t, http.MethodPost, "/api/register", "", component.Registration{
		Email:    "Fatou.Sow@amaki.test",
		Password: testPassword,
		Profile:  component.Profile{Nom: "Sow", Prenom: "Fatou"},
	})
	requireError(t, resp, http.StatusConflict)

	resp = call(t, http.MethodPost, "/api/register", "", component.Registration{Email: "nope", Password: "court"})
	requireError(t, resp, http.StatusBadRequest,
		"email is invalid", "password must be at least 8 characters", "nom is required", "prenom is required")

	resp = call(t, http.MethodPost, "/api/login", "", LoginRequest{Email: "fatou.sow@amaki.test", Password: "mauvais mot"})
	requireError(t, resp, http.StatusUnauthorized)
	requireError(t, call(t, http.MethodGet, "/api/me", "", nil), http.StatusUnauthorized)

	token := login(t, "fatou.sow@amaki.test")
	me := &AccountResponse{}
	requireResponse(t, call(t, http.MethodGet, "/api/me", token, nil), http.StatusOK, me)
	require.Equal(t, res.Adherent.ID, me.Adherent.ID)
	require.Equal(t, "fatou.sow@amaki.test", me.Adherent.Email)

	requireResponse(t, call(t, http.MethodPost, "/api/logout", token, nil), http.StatusNoContent, nil)
	requireError(t, call(t, http.MethodGet, "/api/me", token, nil), http.StatusUnauthorized)
}

func TestAdherents_Access(t *testing.T) {
	truncateDB(t)
	admin := adminToken(t)
	alice, aliceID := member(t, admin, "alice@amaki.test")
	_, bobID := member(t, admin, "bob@amaki.test")

	requireError(t, call(t, http.MethodGet, fmt.Sprintf("/api/adherents/%d", bobID), alice, nil), http.StatusForbidden)
	requireError(t, call(t, http.MethodGet, "/api/adherents/abc", alice, nil), http.StatusBadRequest,
		"Invalid format for parameter id")

	got := &models.Adherent{}
	requireResponse(t, call(t, http.MethodGet, fmt.Sprintf("/api/adherents/%d", aliceID), alice, nil), http.StatusOK, got)
	require.Equal(t, models.AdherentActif, got.Statut)

	typeID := int64(1)
	update := UpdateAdherentRequest{
		Profile:          component.Profile{Nom: "Traore", Prenom: "Alice", Ville: "Lyon"},
		TypeCotisationID: &typeID,
	}
	path := fmt.Sprintf("/api/adherents/%d", aliceID)
	requireError(t, call(t, http.MethodPut, path, alice, update), http.StatusForbidden)
	update.TypeCotisationID = nil
	requireResponse(t, call(t, http.MethodPut, path, alice, update), http.StatusOK, got)
	require.Equal(t, "Traore", got.Nom)
	require.Equal(t, "Lyon", got.Ville)

	requireError(t, call(t, http.MethodGet, "/api/admin/adherents", alice, nil), http.StatusForbidden)

	list := &AdherentsResponse{}
	requireResponse(t, call(t, http.MethodGet, "/api/admin/adherents?statut=actif&limit=1", admin, nil), http.StatusOK, list)
	require.Equal(t, 2, list.Total)
	require.Len(t, list.Adherents, 1)

	requireError(t, call(t, http.MethodGet, "/api/admin/adherents?limit=0", admin, nil), http.StatusBadRequest,
		"`limit` should be in range [1, 1000]")
	requireError(t, call(t, http.MethodGet, "/api/admin/adherents?limit=abc", admin, nil), http.StatusBadRequest)

	resp := call(t, http.MethodPut, fmt.Sprintf("/api/admin/adherents/%d/statut", bobID), admin,
		StatutRequest{Statut: models.AdherentEnAttente})
	requireError(t, resp, http.StatusUnprocessableEntity)

	report := postgres.PurgeReport{}
	requireResponse(t, call(t, http.MethodDelete, fmt.Sprintf("/api/admin/adherents/%d", bobID), admin, nil), http.StatusOK, &report)
	require.Equal(t, 1, report["adherents"])
	requireError(t, call(t, http.MethodGet, fmt.Sprintf("/api/adherents/%d", bobID), admin, nil), http.StatusNotFound)
}

func TestLedger_ManualPayment(t *testing.T) {
	truncateDB(t)
	admin := adminToken(t)
	token, id := member(t, admin, "payeur@amaki.test")

	typ := &models.TypeCotisation{}
	requireResponse(t, call(t, http.MethodPost, "/api/admin/types", admin, models.TypeCotisation{
		Libelle:     "Cotisation annuelle",
		Montant:     3000,
		Periodicite: models.PeriodiciteAnnuelle,
		Actif:       true,
	}), http.StatusCreated, typ)

	requireResponse(t, call(t, http.MethodPut, fmt.Sprintf("/api/adherents/%d", id), admin, UpdateAdherentRequest{
		Profile:          component.Profile{Nom: "Diallo", Prenom: "Moussa"},
		TypeCotisationID: &typ.ID,
	}), http.StatusOK, nil)

	count := &CountResponse{}
	requireResponse(t, call(t, http.MethodPost, "/api/admin/cotisations/generate", admin, GenerateRequest{Date: "2026-01-15"}),
		http.StatusOK, count)
	require.Equal(t, 1, count.Count)
	requireError(t, call(t, http.MethodPost, "/api/admin/cotisations/generate", admin, GenerateRequest{Date: "15/01/2026"}),
		http.StatusBadRequest, "date should be formatted as YYYY-MM-DD")

	requireResponse(t, call(t, http.MethodPost, fmt.Sprintf("/api/admin/adherents/%d/dettes", id), admin,
		DetteRequest{Libelle: "Arriérés 2025", Montant: 1000}), http.StatusCreated, nil)

	solde := &component.Solde{}
	requireResponse(t, call(t, http.MethodGet, fmt.Sprintf("/api/adherents/%d/solde", id), token, nil), http.StatusOK, solde)
	require.Equal(t, int64(4000), solde.Du)

	p := &models.Paiement{}
	requireResponse(t, call(t, http.MethodPost, fmt.Sprintf("/api/admin/adherents/%d/paiements", id), admin,
		ManualPaymentRequest{Montant: 5000, Provider: models.ProviderCheque, Reference: "CHQ-42"}), http.StatusCreated, p)
	require.Equal(t, models.PaiementPaye, p.Statut)

	requireResponse(t, call(t, http.MethodGet, fmt.Sprintf("/api/adherents/%d/solde", id), token, nil), http.StatusOK, solde)
	require.Equal(t, int64(0), solde.Du)
	require.Equal(t, int64(1000), solde.Credit)

	var allocations []models.Allocation
	requireResponse(t, call(t, http.MethodGet, fmt.Sprintf("/api/admin/paiements/%d/allocations", p.ID), admin, nil),
		http.StatusOK, &allocations)
	require.Len(t, allocations, 2)

	resp := call(t, http.MethodPost, fmt.Sprintf("/api/adherents/%d/checkout", id), token, CheckoutRequest{Provider: models.ProviderStripe})
	requireError(t, resp, http.StatusUnprocessableEntity)
	resp = call(t, http.MethodPost, fmt.Sprintf("/api/adherents/%d/checkout", id), token, CheckoutRequest{Provider: models.ProviderMollie})
	requireError(t, resp, http.StatusBadRequest, `provider "mollie" is not available`)

	refunded := &models.Paiement{}
	requireResponse(t, call(t, http.MethodPost, fmt.Sprintf("/api/admin/paiements/%d/refund", p.ID), admin, nil), http.StatusOK, refunded)
	require.Equal(t, models.PaiementRembourse, refunded.Statut)
	requireError(t, call(t, http.MethodPost, fmt.Sprintf("/api/admin/paiements/%d/refund", p.ID), admin, nil), http.StatusUnprocessableEntity)

	requireResponse(t, call(t, http.MethodGet, fmt.Sprintf("/api/adherents/%d/solde", id), token, nil), http.StatusOK, solde)
	require.Equal(t, int64(4000), solde.Du)
	require.Equal(t, int64(0), solde.Credit)

	d := &component.Dashboard{}
	requireResponse(t, call(t, http.MethodGet, "/api/admin/dashboard", admin, nil), http.StatusOK, d)
	require.Equal(t, 2026, d.Annee)
	require.Equal(t, int64(3000), d.Cotisations.Montant)
}

func TestElections_API(t *testing.T) {
	truncateDB(t)
	admin := adminToken(t)
	voter, _ := member(t, admin, "votant@amaki.test")
	_, candidatID := member(t, admin, "candidat@amaki.test")

	e := &models.Election{}
	requireResponse(t, call(t, http.MethodPost, "/api/admin/elections", admin, models.Election{
		Titre:     "Bureau 2026",
		Ouverture: clock.now.Add(-time.Hour),
		Cloture:   clock.now.Add(24 * time.Hour),
	}), http.StatusCreated, e)
	require.Equal(t, models.ElectionBrouillon, e.Statut)

	requireError(t, call(t, http.MethodGet, fmt.Sprintf("/api/elections/%d", e.ID), voter, nil), http.StatusNotFound)

	poste := &models.Poste{}
	requireResponse(t, call(t, http.MethodPost, fmt.Sprintf("/api/admin/elections/%d/postes", e.ID), admin,
		PosteRequest{Libelle: "Président", Places: 1}), http.StatusCreated, poste)
	candidat := &models.Candidat{}
	requireResponse(t, call(t, http.MethodPost, fmt.Sprintf("/api/admin/postes/%d/candidats", poste.ID), admin,
		CandidatRequest{AdherentID: candidatID}), http.StatusCreated, candidat)
	requireResponse(t, call(t, http.MethodPost, fmt.Sprintf("/api/admin/elections/%d/open", e.ID), admin, nil), http.StatusOK, nil)

	vote := VoteRequest{CandidatID: candidat.ID}
	path := fmt.Sprintf("/api/elections/%d/votes", e.ID)
	requireResponse(t, call(t, http.MethodPost, path, voter, vote), http.StatusNoContent, nil)
	requireError(t, call(t, http.MethodPost, path, voter, vote), http.StatusConflict)

	view := &component.ElectionView{}
	requireResponse(t, call(t, http.MethodGet, fmt.Sprintf("/api/elections/%d", e.ID), voter, nil), http.StatusOK, view)
	require.Equal(t, []int64{poste.ID}, view.Voted)

	results := fmt.Sprintf("/api/elections/%d/resultats", e.ID)
	requireError(t, call(t, http.MethodGet, results, voter, nil), http.StatusForbidden)
	requireResponse(t, call(t, http.MethodPost, fmt.Sprintf("/api/admin/elections/%d/close", e.ID), admin, nil), http.StatusOK, nil)
	requireError(t, call(t, http.MethodPost, path, voter, vote), http.StatusUnprocessableEntity)

	var tally []adherents.PosteResult
	requireResponse(t, call(t, http.MethodGet, results, voter, nil), http.StatusOK, &tally)
	require.Len(t, tally, 1)
	require.Equal(t, 1, tally[0].Votants)
	require.Len(t, tally[0].Candidats, 1)
	require.Equal(t, 1, tally[0].Candidats[0].Voix)
	require.True(t, tally[0].Candidats[0].Elu)
}

func TestEvenementsAndDocuments(t *testing.T) {
	truncateDB(t)
	admin := adminToken(t)
	token, _ := member(t, admin, "participant@amaki.test")

	ev := &models.Evenement{}
	requireResponse(t, call(t, http.MethodPost, "/api/admin/evenements", admin, models.Evenement{
		Titre:    "Assemblée générale",
		Lieu:     "Paris",
		Debut:    clock.now.AddDate(0, 1, 0),
		Fin:      clock.now.AddDate(0, 1, 0).Add(3 * time.Hour),
		Capacite: 50,
		Publie:   true,
	}), http.StatusCreated, ev)
	requireResponse(t, call(t, http.MethodPost, "/api/admin/evenements", admin, models.Evenement{
		Titre: "Brouillon",
		Debut: clock.now.AddDate(0, 2, 0),
		Fin:   clock.now.AddDate(0, 2, 0),
	}), http.StatusCreated, nil)

	var list []models.Evenement
	requireResponse(t, call(t, http.MethodGet, "/api/evenements", "", nil), http.StatusOK, &list)
	require.Len(t, list, 1)
	requireResponse(t, call(t, http.MethodGet, "/api/admin/evenements?all=true", admin, nil), http.StatusOK, &list)
	require.Len(t, list, 2)
	requireError(t, call(t, http.MethodGet, "/api/evenements?offset=-1", "", nil), http.StatusBadRequest,
		"`offset` should not be negative")

	path := fmt.Sprintf("/api/evenements/%d/inscriptions", ev.ID)
	requireError(t, call(t, http.MethodPost, path, "", nil), http.StatusUnauthorized)
	requireResponse(t, call(t, http.MethodPost, path, token, nil), http.StatusCreated, nil)
	requireError(t, call(t, http.MethodPost, path, token, nil), http.StatusConflict)

	var inscriptions []models.Inscription
	requireResponse(t, call(t, http.MethodGet, fmt.Sprintf("/api/admin/evenements/%d/inscriptions", ev.ID), admin, nil),
		http.StatusOK, &inscriptions)
	require.Len(t, inscriptions, 1)
	requireResponse(t, call(t, http.MethodDelete, path, token, nil), http.StatusNoContent, nil)

	for _, d := range []models.Document{
		{Titre: "Statuts", Categorie: "juridique", URL: "https://docs.amaki.fr/statuts.pdf", Visibilite: models.VisibilitePublic},
		{Titre: "PV AG 2025", Categorie: "juridique", URL: "https://docs.amaki.fr/pv-2025.pdf"},
	} {
		requireResponse(t, call(t, http.MethodPost, "/api/admin/documents", admin, d), http.StatusCreated, nil)
	}
	requireError(t, call(t, http.MethodPost, "/api/admin/documents", admin, models.Document{Titre: "x", URL: "docs/x.pdf"}),
		http.StatusBadRequest, "url should be absolute")

	var docs []models.Document
	requireResponse(t, call(t, http.MethodGet, "/api/documents", "", nil), http.StatusOK, &docs)
	require.Len(t, docs, 1)
	requireResponse(t, call(t, http.MethodGet, "/api/documents?categorie=juridique", token, nil), http.StatusOK, &docs)
	require.Len(t, docs, 2)
	requireError(t, call(t, http.MethodGet, "/api/documents", "expired-token", nil), http.StatusUnauthorized)
}
