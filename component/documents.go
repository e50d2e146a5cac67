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
	"net/url"
	"strings"

	"github.com/go-pg/pg"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/observability"
)

type Documents struct {
	db    *pg.DB
	obs   *observability.Observability
	clock Clock
}

func NewDocuments(db *pg.DB, obs *observability.Observability, clock Clock) *Documents {
	return &Documents{db: db, obs: obs, clock: clock}
}

func validateDocument(d *models.Document) error {
	verr := &adherents.ValidationError{}
	d.Titre = strings.TrimSpace(d.Titre)
	d.Categorie = strings.TrimSpace(d.Categorie)
	if d.Titre == "" {
		verr.Add("titre is required")
	}
	if u, err := url.Parse(d.URL); err != nil || u.Scheme == "" || u.Host == "" {
		verr.Add("url should be absolute")
	}
	if d.Visibilite == "" {
		d.Visibilite = models.VisibiliteAdherents
	}
	if !adherents.ValidVisibilite(d.Visibilite) {
		verr.Add("visibilite should be public, adherents or admin")
	}
	return verr.Err()
}

func (s *Documents) Create(ctx context.Context, d *models.Document) error {
	if err := validateDocument(d); err != nil {
		return err
	}
	d.CreatedAt = s.clock.Now()
	return postgres.NewDocumentStorage(s.obs, s.db).Insert(d)
}

func (s *Documents) Update(ctx context.Context, d *models.Document) error {
	if err := validateDocument(d); err != nil {
		return err
	}
	return postgres.NewDocumentStorage(s.obs, s.db).Update(d)
}

func (s *Documents) Delete(ctx context.Context, id int64) error {
	return postgres.NewDocumentStorage(s.obs, s.db).Delete(id)
}

// List returns the documents the role may see, role is empty for anonymous callers.
func (s *Documents) List(ctx context.Context, role models.Role, categorie string) ([]models.Document, error) {
	return postgres.NewDocumentStorage(s.obs, s.db).List(adherents.VisibleDocuments(role), strings.TrimSpace(categorie))
}
