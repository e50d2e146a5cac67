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

	"github.com/go-pg/pg"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/amaki-france/adherents/component"
	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/observability"
)

type Server struct {
	*component.Manager

	db    *pg.DB
	obs   *observability.Observability
	log   *logrus.Logger
	clock component.Clock
}

func NewServer(db *pg.DB, obs *observability.Observability, clock component.Clock, m *component.Manager) *Server {
	return &Server{
		Manager: m,
		db:      db,
		obs:     obs,
		log:     obs.Log(),
		clock:   clock,
	}
}

// fail writes the client facing representation of err.
func (s *Server) fail(ctx echo.Context, err error) error {
	status, msg, ok := errorResponse(err)
	if !ok {
		s.log.Error(err)
		return ctx.JSON(http.StatusInternalServerError, struct{}{})
	}
	if status == http.StatusUnauthorized {
		ctx.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}
	return ctx.JSON(status, msg)
}

// bind decodes the JSON body into dest.
func bind(ctx echo.Context, dest interface{}) error {
	if err := ctx.Bind(dest); err != nil {
		return adherents.NewValidationError("invalid request body")
	}
	return nil
}

func (s *Server) healthCheck(ctx echo.Context) error {
	if _, err := s.db.ExecContext(ctx.Request().Context(), "SELECT 1"); err != nil {
		s.log.WithError(err).Error("healthcheck failed")
		return ctx.String(http.StatusServiceUnavailable, "DB UNAVAILABLE")
	}
	return ctx.String(http.StatusOK, "OK")
}

func (s *Server) metrics() echo.HandlerFunc {
	ops := promhttp.HandlerOpts{
		ErrorLog: s.log,
	}
	return echo.WrapHandler(promhttp.HandlerFor(s.obs.Metrics(), ops))
}

// NewEcho returns the echo instance with the common middlewares and every route registered.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	useMiddlewares(e, s.log, s.obs)
	RegisterHandlers(e, s)
	return e
}

// useMiddlewares wraps Metrics in the request logger and Recover in Metrics: a panic is counted as a 500.
func useMiddlewares(e *echo.Echo, log *logrus.Logger, obs *observability.Observability) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("request")
			return nil
		},
	}))
	e.Use(Metrics(obs))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))
}

func RegisterHandlers(e *echo.Echo, s *Server) {
	e.GET("/healthcheck", s.healthCheck)
	e.GET("/metrics", s.metrics())
	e.POST("/webhooks/:provider", s.Webhook)

	public := e.Group("/api")
	public.POST("/register", s.Register)
	public.POST("/login", s.Login)
	public.GET("/documents", s.ListDocuments, s.authenticate(true))
	public.GET("/evenements", s.ListEvenements)
	public.GET("/evenements/:id", s.GetEvenement)

	member := e.Group("/api", s.authenticate(false))
	member.POST("/logout", s.Logout)
	member.GET("/me", s.Me)
	member.GET("/adherents/:id", s.GetAdherent)
	member.PUT("/adherents/:id", s.UpdateAdherent)
	member.GET("/adherents/:id/cotisations", s.ListCotisations)
	member.GET("/adherents/:id/solde", s.GetSolde)
	member.GET("/adherents/:id/paiements", s.ListPaiements)
	member.POST("/adherents/:id/checkout", s.Checkout)
	member.POST("/evenements/:id/inscriptions", s.RegisterEvenement)
	member.DELETE("/evenements/:id/inscriptions", s.UnregisterEvenement)
	member.GET("/elections", s.ListElections)
	member.GET("/elections/:id", s.GetElection)
	member.POST("/elections/:id/votes", s.Vote)
	member.GET("/elections/:id/resultats", s.Results)

	admin := e.Group("/api/admin", s.authenticate(false), s.requireAdmin)
	admin.GET("/dashboard", s.Dashboard)

	admin.GET("/adherents", s.ListAdherents)
	admin.PUT("/adherents/:id/statut", s.ChangeStatut)
	admin.DELETE("/adherents/:id", s.DeleteAdherent)
	admin.GET("/adherents/:id/dettes", s.ListDettes)
	admin.POST("/adherents/:id/dettes", s.CreateDette)
	admin.DELETE("/dettes/:id", s.DeleteDette)
	admin.POST("/adherents/:id/paiements", s.RecordPayment)
	admin.POST("/adherents/:id/avoirs/apply", s.ApplyAvoirs)
	admin.GET("/adherents/:id/relances", s.ListRelances)

	admin.GET("/types", s.ListTypes)
	admin.POST("/types", s.CreateType)
	admin.PUT("/types/:id", s.UpdateType)
	admin.DELETE("/types/:id", s.DeleteType)

	admin.POST("/cotisations/generate", s.GenerateCotisations)
	admin.POST("/cotisations/overdue", s.MarkOverdue)
	admin.POST("/cotisations/:id/cancel", s.CancelCotisation)

	admin.GET("/paiements/:id/allocations", s.ListAllocations)
	admin.POST("/paiements/:id/refund", s.RefundPayment)
	admin.POST("/relances/send", s.SendRelances)

	admin.POST("/elections", s.CreateElection)
	admin.PUT("/elections/:id", s.UpdateElection)
	admin.POST("/elections/:id/postes", s.AddPoste)
	admin.POST("/postes/:id/candidats", s.AddCandidat)
	admin.POST("/elections/:id/open", s.OpenElection)
	admin.POST("/elections/:id/close", s.CloseElection)

	admin.GET("/evenements", s.ListAllEvenements)
	admin.POST("/evenements", s.CreateEvenement)
	admin.PUT("/evenements/:id", s.UpdateEvenement)
	admin.DELETE("/evenements/:id", s.DeleteEvenement)
	admin.GET("/evenements/:id/inscriptions", s.ListInscriptions)

	admin.POST("/documents", s.CreateDocument)
	admin.PUT("/documents/:id", s.UpdateDocument)
	admin.DELETE("/documents/:id", s.DeleteDocument)
}
