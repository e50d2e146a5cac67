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
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/observability"
)

// Types manages cotisation types. Lookups by id are served from an LRU cache
// that every write invalidates.
type Types struct {
	db    *pg.DB
	obs   *observability.Observability
	cache *lru.Cache
}

func NewTypes(db *pg.DB, obs *observability.Observability, size int) (*Types, error) {
	if size <= 0 {
		size = 128
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init cache")
	}
	return &Types{db: db, obs: obs, cache: cache}, nil
}

func validateType(t *models.TypeCotisation) error {
	verr := &adherents.ValidationError{}
	t.Libelle = strings.TrimSpace(t.Libelle)
	if t.Libelle == "" {
		verr.Add("libelle is required")
	}
	if t.Montant <= 0 {
		verr.Add("montant should be positive")
	}
	if !adherents.ValidPeriodicite(t.Periodicite) {
		verr.Add("periodicite should be mensuelle or annuelle")
	}
	return verr.Err()
}

func (s *Types) Create(ctx context.Context, t *models.TypeCotisation) error {
	if err := validateType(t); err != nil {
		return err
	}
	if err := postgres.NewCotisationStorage(s.obs, s.db).InsertType(t); err != nil {
		return err
	}
	s.cache.Add(t.ID, *t)
	return nil
}

func (s *Types) Update(ctx context.Context, t *models.TypeCotisation) error {
	if err := validateType(t); err != nil {
		return err
	}
	if err := postgres.NewCotisationStorage(s.obs, s.db).UpdateType(t); err != nil {
		return err
	}
	// after the write, a concurrent Get must not cache the previous row
	s.cache.Remove(t.ID)
	return nil
}

func (s *Types) Delete(ctx context.Context, id int64) error {
	if err := postgres.NewCotisationStorage(s.obs, s.db).DeleteType(id); err != nil {
		return err
	}
	s.cache.Remove(id)
	return nil
}

func (s *Types) Get(ctx context.Context, id int64) (*models.TypeCotisation, error) {
	if v, ok := s.cache.Get(id); ok {
		t := v.(models.TypeCotisation)
		return &t, nil
	}
	t, err := postgres.NewCotisationStorage(s.obs, s.db).TypeByID(id)
	if err != nil {
		return nil, err
	}
	s.cache.Add(id, *t)
	return t, nil
}

func (s *Types) List(ctx context.Context) ([]models.TypeCotisation, error) {
	return postgres.NewCotisationStorage(s.obs, s.db).Types()
}
