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
	"github.com/go-pg/pg/orm"
	"github.com/pkg/errors"

	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/observability"
)

// Statements are ordered so that no foreign key is left dangling.
var purgeAdherentStatements = []struct {
	table string
	query string
}{
	{"votes", `DELETE FROM votes WHERE adherent_id = ?0
		OR candidat_id IN (SELECT id FROM candidats WHERE adherent_id = ?0)`},
	{"candidats", `DELETE FROM candidats WHERE adherent_id = ?0`},
	{"inscriptions", `DELETE FROM inscriptions WHERE adherent_id = ?0`},
	{"relances", `DELETE FROM relances WHERE adherent_id = ?0`},
	{"allocations", `DELETE FROM allocations
		WHERE paiement_id IN (SELECT id FROM paiements WHERE adherent_id = ?0)
		OR avoir_id IN (SELECT id FROM avoirs WHERE adherent_id = ?0)
		OR cotisation_id IN (SELECT id FROM cotisations WHERE adherent_id = ?0)
		OR dette_id IN (SELECT id FROM dettes WHERE adherent_id = ?0)`},
	{"avoirs", `DELETE FROM avoirs WHERE adherent_id = ?0`},
	{"paiements", `DELETE FROM paiements WHERE adherent_id = ?0`},
	{"cotisations", `DELETE FROM cotisations WHERE adherent_id = ?0`},
	{"dettes", `DELETE FROM dettes WHERE adherent_id = ?0`},
	{"adherents", `DELETE FROM adherents WHERE id = ?0`},
}

var purgeAllStatements = []struct {
	table string
	query string
}{
	{"votes", `DELETE FROM votes`},
	{"candidats", `DELETE FROM candidats`},
	{"postes", `DELETE FROM postes`},
	{"elections", `DELETE FROM elections`},
	{"inscriptions", `DELETE FROM inscriptions`},
	{"evenements", `DELETE FROM evenements`},
	{"relances", `DELETE FROM relances`},
	{"allocations", `DELETE FROM allocations`},
	{"avoirs", `DELETE FROM avoirs`},
	{"paiements", `DELETE FROM paiements`},
	{"cotisations", `DELETE FROM cotisations`},
	{"dettes", `DELETE FROM dettes`},
	{"adherents", `DELETE FROM adherents`},
	{"types_cotisation", `DELETE FROM types_cotisation`},
	{"documents", `DELETE FROM documents`},
	{"sessions", `DELETE FROM sessions WHERE user_id IN (SELECT id FROM users WHERE role <> ?0)`},
	{"users", `DELETE FROM users WHERE role <> ?0`},
}

// PurgeReport is the number of deleted rows per table.
type PurgeReport map[string]int

type PurgeStorage struct {
	storage
}

func NewPurgeStorage(obs *observability.Observability, db orm.DB) *PurgeStorage {
	return &PurgeStorage{newStorage(obs, db)}
}

// Adherent deletes the adherent and everything attached to it, user account excepted.
func (s *PurgeStorage) Adherent(id int64) (PurgeReport, error) {
	report := PurgeReport{}
	for _, st := range purgeAdherentStatements {
		res, err := s.db.Exec(st.query, id)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to purge %s of adherent %d", st.table, id)
		}
		report[st.table] = res.RowsAffected()
	}
	return report, nil
}

// All deletes every row of the association, admin accounts excepted.
func (s *PurgeStorage) All() (PurgeReport, error) {
	report := PurgeReport{}
	for _, st := range purgeAllStatements {
		res, err := s.db.Exec(st.query, models.RoleAdmin)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to purge %s", st.table)
		}
		report[st.table] = res.RowsAffected()
		s.log.WithField("table", st.table).Infof("purged %d rows", res.RowsAffected())
	}
	return report, nil
}
