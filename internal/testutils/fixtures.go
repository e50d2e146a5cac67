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

package testutils

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-pg/pg/orm"
	"github.com/stretchr/testify/require"

	"github.com/amaki-france/adherents/internal/models"
)

var seq int64

func next() int64 {
	return atomic.AddInt64(&seq, 1)
}

func InsertUser(t *testing.T, db orm.DB, role models.Role) *models.User {
	n := next()
	u := &models.User{
		Email:        fmt.Sprintf("user%d@amaki.test", n),
		PasswordHash: "$2a$10$invalidinvalidinvalidinvalidinvalidinvalidinvalidinvali",
		Role:         role,
		CreatedAt:    time.Now(),
	}
	_, err := db.Model(u).Returning("id").Insert()
	require.NoError(t, err)
	return u
}

func InsertType(t *testing.T, db orm.DB, montant int64, p models.Periodicite) *models.TypeCotisation {
	tc := &models.TypeCotisation{
		Libelle:     fmt.Sprintf("type %d", next()),
		Montant:     montant,
		Periodicite: p,
		Actif:       true,
	}
	_, err := db.Model(tc).Returning("id").Insert()
	require.NoError(t, err)
	return tc
}

// InsertAdherent creates an adherent with its own user account.
func InsertAdherent(t *testing.T, db orm.DB, statut models.AdherentStatut, typeID int64) *models.Adherent {
	u := InsertUser(t, db, models.RoleAdherent)
	now := time.Now()
	a := &models.Adherent{
		UserID:           u.ID,
		Civilite:         "Mme",
		Nom:              fmt.Sprintf("Nom%d", next()),
		Prenom:           "Aminata",
		Email:            u.Email,
		Statut:           statut,
		TypeCotisationID: typeID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	_, err := db.Model(a).Returning("id").Insert()
	require.NoError(t, err)
	return a
}

func InsertCotisation(t *testing.T, db orm.DB, a *models.Adherent, typeID int64, periode string, echeance time.Time, montant int64) *models.Cotisation {
	c := &models.Cotisation{
		AdherentID:       a.ID,
		TypeCotisationID: typeID,
		Periode:          periode,
		Montant:          montant,
		DateEcheance:     echeance,
		Statut:           models.CotisationEnAttente,
		CreatedAt:        time.Now(),
	}
	_, err := db.Model(c).Returning("id").Insert()
	require.NoError(t, err)
	return c
}
