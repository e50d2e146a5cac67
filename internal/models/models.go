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

package models

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAdherent Role = "adherent"
)

type User struct {
	tableName struct{} `sql:"users"` //nolint: unused,structcheck

	ID           int64     `sql:"id,pk" json:"id"`
	Email        string    `sql:"email,notnull" json:"email"`
	PasswordHash string    `sql:"password_hash,notnull" json:"-"`
	Role         Role      `sql:"role,notnull" json:"role"`
	CreatedAt    time.Time `sql:"created_at,notnull" json:"created_at"`
}

type Session struct {
	tableName struct{} `sql:"sessions"` //nolint: unused,structcheck

	Token     string    `sql:"token,pk"`
	UserID    int64     `sql:"user_id,notnull"`
	ExpiresAt time.Time `sql:"expires_at,notnull"`
	CreatedAt time.Time `sql:"created_at,notnull"`
}

type AdherentStatut string

const (
	AdherentEnAttente AdherentStatut = "en_attente"
	AdherentActif     AdherentStatut = "actif"
	AdherentSuspendu  AdherentStatut = "suspendu"
	AdherentRadie     AdherentStatut = "radie"
)

type Adherent struct {
	tableName struct{} `sql:"adherents"` //nolint: unused,structcheck

	ID               int64          `sql:"id,pk" json:"id"`
	UserID           int64          `sql:"user_id" json:"user_id,omitempty"`
	Civilite         string         `sql:"civilite,notnull" json:"civilite"`
	Nom              string         `sql:"nom,notnull" json:"nom"`
	Prenom           string         `sql:"prenom,notnull" json:"prenom"`
	Email            string         `sql:"email,notnull" json:"email"`
	Telephone        string         `sql:"telephone,notnull" json:"telephone"`
	Adresse          string         `sql:"adresse,notnull" json:"adresse"`
	CodePostal       string         `sql:"code_postal,notnull" json:"code_postal"`
	Ville            string         `sql:"ville,notnull" json:"ville"`
	DateNaissance    *time.Time     `sql:"date_naissance" json:"date_naissance,omitempty"`
	DateAdhesion     *time.Time     `sql:"date_adhesion" json:"date_adhesion,omitempty"`
	Statut           AdherentStatut `sql:"statut,notnull" json:"statut"`
	TypeCotisationID int64          `sql:"type_cotisation_id" json:"type_cotisation_id,omitempty"`
	CreatedAt        time.Time      `sql:"created_at,notnull" json:"created_at"`
	UpdatedAt        time.Time      `sql:"updated_at,notnull" json:"updated_at"`
}

func (a Adherent) FullName() string {
	return a.Prenom + " " + a.Nom
}

type VisibiliteDocument string

const (
	VisibilitePublic    VisibiliteDocument = "public"
	VisibiliteAdherents VisibiliteDocument = "adherents"
	VisibiliteAdmin     VisibiliteDocument = "admin"
)

type Document struct {
	tableName struct{} `sql:"documents"` //nolint: unused,structcheck

	ID         int64              `sql:"id,pk" json:"id"`
	Titre      string             `sql:"titre,notnull" json:"titre"`
	Categorie  string             `sql:"categorie,notnull" json:"categorie"`
	URL        string             `sql:"url,notnull" json:"url"`
	Visibilite VisibiliteDocument `sql:"visibilite,notnull" json:"visibilite"`
	CreatedAt  time.Time          `sql:"created_at,notnull" json:"created_at"`
}
