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
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/amaki-france/adherents/component"
	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/observability"
)

const (
	principalKey = "principal"
	tokenKey     = "token"
	bearerPrefix = "Bearer "
)

func bearerToken(ctx echo.Context) string {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// authenticate resolves the bearer token into a principal. With optional set, requests
// without a token go through anonymously, a present but invalid token is still rejected.
func (s *Server) authenticate(optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := bearerToken(ctx)
			if token == "" {
				if optional {
					return next(ctx)
				}
				return s.fail(ctx, adherents.ErrUnauthorized)
			}
			p, err := s.Accounts.Authenticate(ctx.Request().Context(), token)
			if err != nil {
				return s.fail(ctx, err)
			}
			ctx.Set(principalKey, p)
			ctx.Set(tokenKey, token)
			return next(ctx)
		}
	}
}

func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if !principal(ctx).IsAdmin() {
			return s.fail(ctx, adherents.ErrForbidden)
		}
		return next(ctx)
	}
}

// principal returns nil for anonymous requests.
func principal(ctx echo.Context) *component.Principal {
	p, _ := ctx.Get(principalKey).(*component.Principal)
	return p
}

func Metrics(obs *observability.Observability) echo.MiddlewareFunc {
	requests := obs.CounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests by method, route and status.",
	}, "method", "route", "status")
	duration := obs.Histogram(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, "method", "route")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			// write the error response first so that its status is the one counted
			if err != nil {
				ctx.Error(err)
			}
			method := ctx.Request().Method
			route := ctx.Path()
			requests.WithLabelValues(method, route, strconv.Itoa(ctx.Response().Status)).Inc()
			duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
