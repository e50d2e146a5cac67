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
	"github.com/pkg/errors"

	"github.com/amaki-france/adherents/component"
	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AccountResponse struct {
	User     *models.User     `json:"user"`
	Adherent *models.Adherent `json:"adherent,omitempty"`
}

func (s *Server) Register(ctx echo.Context) error {
	var req component.Registration
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	user, adherent, err := s.Accounts.Register(ctx.Request().Context(), req)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, AccountResponse{User: user, Adherent: adherent})
}

func (s *Server) Login(ctx echo.Context) error {
	var req LoginRequest
	if err := bind(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	session, err := s.Accounts.Login(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: session.Token, ExpiresAt: session.ExpiresAt})
}

func (s *Server) Logout(ctx echo.Context) error {
	token, _ := ctx.Get(tokenKey).(string)
	if err := s.Accounts.Logout(ctx.Request().Context(), token); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) Me(ctx echo.Context) error {
	p := principal(ctx)
	res := AccountResponse{User: &p.User}
	if p.AdherentID != 0 {
		adherent, err := s.Membership.Get(ctx.Request().Context(), p.AdherentID)
		if err != nil && errors.Cause(err) != adherents.ErrNotFound {
			return s.fail(ctx, err)
		}
		res.Adherent = adherent
	}
	return ctx.JSON(http.StatusOK, res)
}
