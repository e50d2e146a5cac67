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

package postgres

import (
	"github.com/go-pg/pg"
	"github.com/go-pg/pg/orm"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/observability"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	pgErr, ok := errors.Cause(err).(pg.Error)
	return ok && pgErr.Field('C') == uniqueViolation
}

// notFound turns pg.ErrNoRows into adherents.ErrNotFound, everything else is wrapped with msg.
func notFound(err error, format string, args ...interface{}) error {
	if err == pg.ErrNoRows {
		return errors.Wrapf(adherents.ErrNotFound, format, args...)
	}
	return errors.Wrapf(err, "failed to fetch "+format, args...)
}

func forUpdate(q *orm.Query, lock bool) *orm.Query {
	if lock {
		return q.For("UPDATE")
	}
	return q
}

type storage struct {
	log logrus.FieldLogger
	db  orm.DB
}

func newStorage(obs *observability.Observability, db orm.DB) storage {
	return storage{log: obs.Log(), db: db}
}
