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
	"strings"

	"github.com/go-pg/pg"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/observability"
)

type Dettes struct {
	db    *pg.DB
	obs   *observability.Observability
	clock Clock
}

func NewDettes(db *pg.DB, obs *observability.Observability, clock Clock) *Dettes {
	return &Dettes{db: db, obs: obs, clock: clock}
}

func (s *Dettes) Create(ctx context.Context, adherentID int64, libelle string, montant int64) (*models.Dette, error) {
	verr := &adherents.ValidationError{}
	libelle = strings.TrimSpace(libelle)
	if libelle == "" {
		verr.Add("libelle is required")
	}
	if montant <= 0 {
		verr.Add("montant should be positive")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	if _, err := postgres.NewAdherentStorage(s.obs, s.db).ByID(adherentID, false); err != nil {
		return nil, err
	}
	d := &models.Dette{
		AdherentID:     adherentID,
		Libelle:        libelle,
		Montant:        montant,
		MontantRestant: montant,
		CreatedAt:      s.clock.Now(),
	}
	if err := postgres.NewDetteStorage(s.obs, s.db).Insert(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Dettes) ByAdherent(ctx context.Context, adherentID int64) ([]models.Dette, error) {
	return postgres.NewDetteStorage(s.obs, s.db).ByAdherent(adherentID)
}

func (s *Dettes) Delete(ctx context.Context, id int64) error {
	return postgres.NewDetteStorage(s.obs, s.db).Delete(id)
}
