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
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/amaki-france/adherents/observability"
)

func TestMiddlewares_ErrorsAndPanics(t *testing.T) {
	log, hook := test.NewNullLogger()
	obs := observability.MakeWithLogger(log)
	e := echo.New()
	useMiddlewares(e, log, obs)
	e.GET("/gone", func(ctx echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "gone")
	})
	e.GET("/boom", func(ctx echo.Context) error {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gone", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	requests := obs.CounterVec(prometheus.CounterOpts{Name: "http_requests_total"}, "method", "route", "status")
	require.Equal(t, float64(1), testutil.ToFloat64(requests.WithLabelValues(http.MethodGet, "/gone", "404")))
	require.Equal(t, float64(1), testutil.ToFloat64(requests.WithLabelValues(http.MethodGet, "/boom", "500")))

	// the handler error reaches the request log
	var logged *logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Data["uri"] == "/gone" {
			logged = entry
		}
	}
	require.NotNil(t, logged)
	require.Equal(t, http.StatusNotFound, logged.Data["status"])
	err, ok := logged.Data[logrus.ErrorKey].(error)
	require.True(t, ok)
	require.Contains(t, err.Error(), "gone")
}
