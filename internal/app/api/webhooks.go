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
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/internal/payments"
)

// Webhook receives provider notifications. Providers retry on any non 2xx answer, so
// notifications about paiements this service does not know are acknowledged.
func (s *Server) Webhook(ctx echo.Context) error {
	provider := models.Provider(ctx.Param("provider"))
	log := s.log.WithField("provider", provider)

	gateway, err := s.Payments.Gateway(provider)
	if err != nil {
		return ctx.JSON(http.StatusNotFound, NewSingleMessageError(err.Error()))
	}
	ev, err := gateway.ParseWebhook(ctx.Request().Context(), ctx.Request())
	if err != nil {
		switch errors.Cause(err) {
		case payments.ErrInvalidSignature, payments.ErrMalformedEvent:
			log.WithError(err).Warn("webhook rejected")
			return ctx.JSON(http.StatusBadRequest, NewSingleMessageError(err.Error()))
		}
		log.Error(errors.Wrap(err, "failed to read webhook"))
		return ctx.JSON(http.StatusInternalServerError, struct{}{})
	}

	err = s.Payments.HandleEvent(ctx.Request().Context(), provider, ev)
	switch {
	case err == nil:
	case errors.Cause(err) == adherents.ErrNotFound:
		log.WithFields(logrus.Fields{
			"event":        ev.Type,
			"provider_ref": ev.ProviderRef,
		}).WithError(err).Warn("webhook for an unknown paiement acknowledged")
	default:
		log.Error(errors.Wrapf(err, "failed to handle %s event", ev.Type))
		return ctx.JSON(http.StatusInternalServerError, struct{}{})
	}
	return ctx.NoContent(http.StatusOK)
}
