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

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/models"
)

type VoteRequest struct {
	CandidatID int64 `json:"candidat_id"`
}

type PosteRequest struct {
	Libelle string `json:"libelle"`
	Places  int    `json:"places"`
}

type CandidatRequest struct {
	AdherentID int64 `json:"adherent_id"`
}

func (s *Server) ListElections(ctx echo.Context) error {
	res, err := s.Elections.List(ctx.Request().Context(), principal(ctx).IsAdmin())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (s *Server) GetElection(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	view, err := s.Elections.Get(ctx.Request().Context(), id, principal(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

func (s *Server) Vote(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req VoteRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	voter := principal(ctx).AdherentID
	if voter == 0 {
		return s.fail(ctx, adherents.ErrNotEligible)
	}
	if err := s.Elections.Vote(ctx.Request().Context(), id, voter, req.CandidatID); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) Results(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	res, err := s.Elections.Results(ctx.Request().Context(), id, principal(ctx).IsAdmin())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (s *Server) CreateElection(ctx echo.Context) error {
	e := &models.Election{}
	if err := bind(ctx, e); err != nil {
		return s.fail(ctx, err)
	}
	e.ID = 0
	if err := s.Elections.Create(ctx.Request().Context(), e); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (s *Server) UpdateElection(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	e := &models.Election{}
	if err := bind(ctx, e); err != nil {
		return s.fail(ctx, err)
	}
	e.ID = id
	if err := s.Elections.Update(ctx.Request().Context(), e); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, e)
}

func (s *Server) AddPoste(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req PosteRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	p, err := s.Elections.AddPoste(ctx.Request().Context(), id, req.Libelle, req.Places)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (s *Server) AddCandidat(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	var req CandidatRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	c, err := s.Elections.AddCandidat(ctx.Request().Context(), id, req.AdherentID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (s *Server) OpenElection(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	e, err := s.Elections.Open(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, e)
}

func (s *Server) CloseElection(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	e, err := s.Elections.Close(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, e)
}
