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
	"time"

	"github.com/labstack/echo/v4"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/models"
)

const dateLayout = "2006-01-02"

type GenerateRequest struct {
	// defaults to today
	Date string `json:"date"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type AmountResponse struct {
	Montant int64 `json:"montant"`
}

type DetteRequest struct {
	Libelle string `json:"libelle"`
	Montant int64  `json:"montant"`
}

type ManualPaymentRequest struct {
	Montant   int64           `json:"montant"`
	Provider  models.Provider `json:"provider"`
	Reference string          `json:"reference"`
}

func (s *Server) ListTypes(ctx echo.Context) error {
	res, err := s.Types.List(ctx.Request().Context())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (s *Server) CreateType(ctx echo.Context) error {
	t := &models.TypeCotisation{}
	if err := bind(ctx, t); err != nil {
		return s.fail(ctx, err)
	}
	t.ID = 0
	if err := s.Types.Create(ctx.Request().Context(), t); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (s *Server) UpdateType(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	t := &models.TypeCotisation{}
	if err := bind(ctx, t); err != nil {
		return s.fail(ctx, err)
	}
	t.ID = id
	if err := s.Types.Update(ctx.Request().Context(), t); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, t)
}

func (s *Server) DeleteType(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.Types.Delete(ctx.Request().Context(), id); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) GenerateCotisations(ctx echo.Context) error {
	var req GenerateRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	date := s.clock.Now()
	if req.Date != "" {
		var err error
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			return s.fail(ctx, adherents.NewValidationError("date should be formatted as YYYY-MM-DD"))
		}
	}
	n, err := s.Cotisations.Generate(ctx.Request().Context(), date)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, CountResponse{Count: n})
}

func (s *Server) MarkOverdue(ctx echo.Context) error {
	n, err := s.Cotisations.MarkOverdue(ctx.Request().Context())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, CountResponse{Count: n})
}

func (s *Server) CancelCotisation(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	c, err := s.Cotisations.Cancel(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, c)
}

func (s *Server) ListDettes(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	res, err := s.Dettes.ByAdherent(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (s *Server) CreateDette(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req DetteRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	d, err := s.Dettes.Create(ctx.Request().Context(), id, req.Libelle, req.Montant)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, d)
}

func (s *Server) DeleteDette(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.Dettes.Delete(ctx.Request().Context(), id); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) RecordPayment(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req ManualPaymentRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	p, err := s.Ledger.RecordManualPayment(ctx.Request().Context(), id, req.Montant, req.Provider, req.Reference)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (s *Server) ApplyAvoirs(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	spent, err := s.Ledger.ApplyAvoirs(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, AmountResponse{Montant: spent})
}

func (s *Server) ListAllocations(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	res, err := s.Ledger.Allocations(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (s *Server) RefundPayment(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	p, err := s.Ledger.Refund(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, p)
}

func (s *Server) SendRelances(ctx echo.Context) error {
	n, err := s.Relances.SendDue(ctx.Request().Context(), s.clock.Now())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, CountResponse{Count: n})
}

func (s *Server) ListRelances(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	res, err := s.Relances.ByAdherent(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (s *Server) Dashboard(ctx echo.Context) error {
	d, err := s.Stats.Dashboard(ctx.Request().Context(), s.clock.Now())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, d)
}
