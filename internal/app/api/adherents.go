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
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amaki-france/adherents/component"
	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/internal/payments"
)

type UpdateAdherentRequest struct {
	component.Profile
	// admins only
	TypeCotisationID *int64 `json:"type_cotisation_id"`
}

type StatutRequest struct {
	Statut models.AdherentStatut `json:"statut"`
}

type AdherentsResponse struct {
	Total     int               `json:"total"`
	Adherents []models.Adherent `json:"adherents"`
}

type CheckoutRequest struct {
	// 0 pays the whole outstanding balance
	Montant  int64           `json:"montant"`
	Provider models.Provider `json:"provider"`
}

type CheckoutResponse struct {
	Paiement *models.Paiement   `json:"paiement"`
	Checkout *payments.Checkout `json:"checkout"`
}

// accessibleAdherent reads the :id parameter and checks the caller may act on it.
func accessibleAdherent(ctx echo.Context) (int64, error) {
	id, err := pathID(ctx, "id")
	if err != nil {
		return 0, err
	}
	if !principal(ctx).CanAccess(id) {
		return 0, adherents.ErrForbidden
	}
	return id, nil
}

func (s *Server) GetAdherent(ctx echo.Context) error {
	id, err := accessibleAdherent(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	a, err := s.Membership.Get(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, a)
}

func (s *Server) UpdateAdherent(ctx echo.Context) error {
	id, err := accessibleAdherent(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req UpdateAdherentRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	if req.TypeCotisationID != nil && !principal(ctx).IsAdmin() {
		return s.fail(ctx, adherents.ErrForbidden)
	}
	a, err := s.Membership.Update(ctx.Request().Context(), id, req.Profile, req.TypeCotisationID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, a)
}

func (s *Server) ListCotisations(ctx echo.Context) error {
	id, err := accessibleAdherent(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	res, err := s.Cotisations.ByAdherent(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (s *Server) GetSolde(ctx echo.Context) error {
	id, err := accessibleAdherent(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	res, err := s.Cotisations.Solde(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (s *Server) ListPaiements(ctx echo.Context) error {
	id, err := accessibleAdherent(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	res, err := s.Ledger.Paiements(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (s *Server) Checkout(ctx echo.Context) error {
	id, err := accessibleAdherent(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var req CheckoutRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	p, checkout, err := s.Payments.CreateCheckout(ctx.Request().Context(), id, req.Montant, req.Provider)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CheckoutResponse{Paiement: p, Checkout: checkout})
}

func (s *Server) ListAdherents(ctx echo.Context) error {
	page, err := paginate(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	statut, err := queryString(ctx, "statut")
	if err != nil {
		return s.fail(ctx, err)
	}
	search, err := queryString(ctx, "search")
	if err != nil {
		return s.fail(ctx, err)
	}
	list, total, err := s.Membership.List(ctx.Request().Context(), postgres.AdherentFilter{
		Statut: models.AdherentStatut(statut),
		Search: search,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, AdherentsResponse{Total: total, Adherents: list})
}

func (s *Server) ChangeStatut(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req StatutRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	a, err := s.Membership.ChangeStatut(ctx.Request().Context(), id, req.Statut)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, a)
}

func (s *Server) DeleteAdherent(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	report, err := s.Membership.Delete(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, report)
}
