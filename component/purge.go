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

package component

import (
	"context"

	"github.com/go-pg/pg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/observability"
)

type Purge struct {
	db  *pg.DB
	obs *observability.Observability
	log logrus.FieldLogger
}

func NewPurge(db *pg.DB, obs *observability.Observability) *Purge {
	return &Purge{db: db, obs: obs, log: obs.Log()}
}

// Adherent removes the adherent with everything attached to it, user account and sessions included.
func (s *Purge) Adherent(ctx context.Context, id int64) (postgres.PurgeReport, error) {
	var report postgres.PurgeReport
	err := s.db.RunInTransaction(func(tx *pg.Tx) error {
		adherent, err := postgres.NewAdherentStorage(s.obs, tx).ByID(id, true)
		if err != nil {
			return err
		}
		report, err = postgres.NewPurgeStorage(s.obs, tx).Adherent(id)
		if err != nil {
			return err
		}
		if adherent.UserID == 0 {
			return nil
		}
		users := postgres.NewUserStorage(s.obs, tx)
		if err := users.DeleteSessionsOf(adherent.UserID); err != nil {
			return err
		}
		if err := users.Delete(adherent.UserID); err != nil {
			return err
		}
		report["users"]++
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to purge adherent %d", id)
	}
	s.log.WithFields(logrus.Fields{"adherent_id": id, "report": report}).Warn("adherent purged")
	return report, nil
}

func (s *Purge) All(ctx context.Context) (postgres.PurgeReport, error) {
	var report postgres.PurgeReport
	err := s.db.RunInTransaction(func(tx *pg.Tx) error {
		var err error
		report, err = postgres.NewPurgeStorage(s.obs, tx).All()
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to purge")
	}
	s.log.WithField("report", report).Warn("database purged")
	return report, nil
}
