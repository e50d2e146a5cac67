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

type ElectionStatut string

const (
	ElectionBrouillon ElectionStatut = "brouillon"
	ElectionOuverte   ElectionStatut = "ouverte"
	ElectionCloturee  ElectionStatut = "cloturee"
)

type Election struct {
	tableName struct{} `sql:"elections"` //nolint: unused,structcheck

	ID          int64          `sql:"id,pk" json:"id"`
	Titre       string         `sql:"titre,notnull" json:"titre"`
	Description string         `sql:"description,notnull" json:"description"`
	Ouverture   time.Time      `sql:"ouverture,notnull" json:"ouverture"`
	Cloture     time.Time      `sql:"cloture,notnull" json:"cloture"`
	Statut      ElectionStatut `sql:"statut,notnull" json:"statut"`
	CreatedAt   time.Time      `sql:"created_at,notnull" json:"created_at"`
}

type Poste struct {
	tableName struct{} `sql:"postes"` //nolint: unused,structcheck

	ID         int64  `sql:"id,pk" json:"id"`
	ElectionID int64  `sql:"election_id,notnull" json:"election_id"`
	Libelle    string `sql:"libelle,notnull" json:"libelle"`
	Places     int    `sql:"places,notnull" json:"places"`
}

type Candidat struct {
	tableName struct{} `sql:"candidats"` //nolint: unused,structcheck

	ID         int64 `sql:"id,pk" json:"id"`
	PosteID    int64 `sql:"poste_id,notnull" json:"poste_id"`
	AdherentID int64 `sql:"adherent_id,notnull" json:"adherent_id"`
}

type Vote struct {
	tableName struct{} `sql:"votes"` //nolint: unused,structcheck

	ID         int64     `sql:"id,pk"`
	PosteID    int64     `sql:"poste_id,notnull"`
	CandidatID int64     `sql:"candidat_id,notnull"`
	AdherentID int64     `sql:"adherent_id,notnull"`
	CreatedAt  time.Time `sql:"created_at,notnull"`
}

type Evenement struct {
	tableName struct{} `sql:"evenements"` //nolint: unused,structcheck

	ID          int64     `sql:"id,pk" json:"id"`
	Titre       string    `sql:"titre,notnull" json:"titre"`
	Description string    `sql:"description,notnull" json:"description"`
	Lieu        string    `sql:"lieu,notnull" json:"lieu"`
	Debut       time.Time `sql:"debut,notnull" json:"debut"`
	Fin         time.Time `sql:"fin,notnull" json:"fin"`
	// 0 means no limit
	Capacite  int       `sql:"capacite,notnull" json:"capacite"`
	Publie    bool      `sql:"publie,notnull" json:"publie"`
	CreatedAt time.Time `sql:"created_at,notnull" json:"created_at"`
}

type Inscription struct {
	tableName struct{} `sql:"inscriptions"` //nolint: unused,structcheck

	ID          int64     `sql:"id,pk" json:"id"`
	EvenementID int64     `sql:"evenement_id,notnull" json:"evenement_id"`
	AdherentID  int64     `sql:"adherent_id,notnull" json:"adherent_id"`
	CreatedAt   time.Time `sql:"created_at,notnull" json:"created_at"`
}
