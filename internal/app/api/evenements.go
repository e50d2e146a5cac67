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

func (s *Server) listEvenements(ctx echo.Context, all bool) error {
	page, err := paginate(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	res, err := s.Evenements.List(ctx.Request().Context(), all, page.Limit, page.Offset)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (s *Server) ListEvenements(ctx echo.Context) error {
	return s.listEvenements(ctx, false)
}

func (s *Server) ListAllEvenements(ctx echo.Context) error {
	all, err := queryBool(ctx, "all")
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.listEvenements(ctx, all)
}

func (s *Server) GetEvenement(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	ev, err := s.Evenements.Get(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	if !ev.Publie {
		return s.fail(ctx, adherents.ErrNotFound)
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (s *Server) CreateEvenement(ctx echo.Context) error {
	ev := &models.Evenement{}
	if err := bind(ctx, ev); err != nil {
		return s.fail(ctx, err)
	}
	ev.ID = 0
	if err := s.Evenements.Create(ctx.Request().Context(), ev); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, ev)
}

func (s *Server) UpdateEvenement(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	ev := &models.Evenement{}
	if err := bind(ctx, ev); err != nil {
		return s.fail(ctx, err)
	}
	ev.ID = id
	if err := s.Evenements.Update(ctx.Request().Context(), ev); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (s *Server) DeleteEvenement(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.Evenements.Delete(ctx.Request().Context(), id); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) RegisterEvenement(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	adherentID := principal(ctx).AdherentID
	if adherentID == 0 {
		return s.fail(ctx, adherents.ErrNotEligible)
	}
	inscription, err := s.Evenements.Register(ctx.Request().Context(), id, adherentID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, inscription)
}

func (s *Server) UnregisterEvenement(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.Evenements.Unregister(ctx.Request().Context(), id, principal(ctx).AdherentID); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) ListInscriptions(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	res, err := s.Evenements.Inscriptions(ctx.Request().Context(), id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (s *Server) ListDocuments(ctx echo.Context) error {
	categorie, err := queryString(ctx, "categorie")
	if err != nil {
		return s.fail(ctx, err)
	}
	var role models.Role
	if p := principal(ctx); p != nil {
		role = p.User.Role
	}
	res, err := s.Documents.List(ctx.Request().Context(), role, categorie)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (s *Server) CreateDocument(ctx echo.Context) error {
	d := &models.Document{}
	if err := bind(ctx, d); err != nil {
		return s.fail(ctx, err)
	}
	d.ID = 0
	if err := s.Documents.Create(ctx.Request().Context(), d); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, d)
}

func (s *Server) UpdateDocument(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	d := &models.Document{}
	if err := bind(ctx, d); err != nil {
		return s.fail(ctx, err)
	}
	d.ID = id
	if err := s.Documents.Update(ctx.Request().Context(), d); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, d)
}

func (s *Server) DeleteDocument(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.Documents.Delete(ctx.Request().Context(), id); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
