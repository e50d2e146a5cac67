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

type Periodicite string

const (
	PeriodiciteMensuelle Periodicite = "mensuelle"
	PeriodiciteAnnuelle  Periodicite = "annuelle"
)

type TypeCotisation struct {
	tableName struct{} `sql:"types_cotisation"` //nolint: unused,structcheck

	ID          int64       `sql:"id,pk" json:"id"`
	Libelle     string      `sql:"libelle,notnull" json:"libelle"`
	Montant     int64       `sql:"montant,notnull" json:"montant"`
	Periodicite Periodicite `sql:"periodicite,notnull" json:"periodicite"`
	Actif       bool        `sql:"actif,notnull" json:"actif"`
}

type CotisationStatut string

const (
	CotisationEnAttente CotisationStatut = "en_attente"
	CotisationPartielle CotisationStatut = "partielle"
	CotisationPayee     CotisationStatut = "payee"
	CotisationEnRetard  CotisationStatut = "en_retard"
	CotisationAnnulee   CotisationStatut = "annulee"
)

// Open reports whether the cotisation still expects money.
func (s CotisationStatut) Open() bool {
	return s == CotisationEnAttente || s == CotisationPartielle || s == CotisationEnRetard
}

type Cotisation struct {
	tableName struct{} `sql:"cotisations"` //nolint: unused,structcheck

	ID               int64            `sql:"id,pk" json:"id"`
	AdherentID       int64            `sql:"adherent_id,notnull" json:"adherent_id"`
	TypeCotisationID int64            `sql:"type_cotisation_id,notnull" json:"type_cotisation_id"`
	Periode          string           `sql:"periode,notnull" json:"periode"`
	Montant          int64            `sql:"montant,notnull" json:"montant"`
	MontantPaye      int64            `sql:"montant_paye,notnull" json:"montant_paye"`
	DateEcheance     time.Time        `sql:"date_echeance,notnull" json:"date_echeance"`
	Statut           CotisationStatut `sql:"statut,notnull" json:"statut"`
	CreatedAt        time.Time        `sql:"created_at,notnull" json:"created_at"`
}

func (c Cotisation) Restant() int64 {
	return c.Montant - c.MontantPaye
}

type Dette struct {
	tableName struct{} `sql:"dettes"` //nolint: unused,structcheck

	ID             int64     `sql:"id,pk" json:"id"`
	AdherentID     int64     `sql:"adherent_id,notnull" json:"adherent_id"`
	Libelle        string    `sql:"libelle,notnull" json:"libelle"`
	Montant        int64     `sql:"montant,notnull" json:"montant"`
	MontantRestant int64     `sql:"montant_restant,notnull" json:"montant_restant"`
	CreatedAt      time.Time `sql:"created_at,notnull" json:"created_at"`
}

type Provider string

const (
	ProviderStripe   Provider = "stripe"
	ProviderMollie   Provider = "mollie"
	ProviderEspeces  Provider = "especes"
	ProviderCheque   Provider = "cheque"
	ProviderVirement Provider = "virement"
)

// Online reports whether payments of the provider go through a webhook.
func (p Provider) Online() bool {
	return p == ProviderStripe || p == ProviderMollie
}

type PaiementStatut string

const (
	PaiementEnAttente PaiementStatut = "en_attente"
	PaiementPaye      PaiementStatut = "paye"
	PaiementEchoue    PaiementStatut = "echoue"
	PaiementRembourse PaiementStatut = "rembourse"
)

type Paiement struct {
	tableName struct{} `sql:"paiements"` //nolint: unused,structcheck

	ID          int64          `sql:"id,pk" json:"id"`
	AdherentID  int64          `sql:"adherent_id,notnull" json:"adherent_id"`
	Montant     int64          `sql:"montant,notnull" json:"montant"`
	Provider    Provider       `sql:"provider,notnull" json:"provider"`
	ProviderRef string         `sql:"provider_ref" json:"provider_ref,omitempty"`
	Statut      PaiementStatut `sql:"statut,notnull" json:"statut"`
	CreatedAt   time.Time      `sql:"created_at,notnull" json:"created_at"`
	PaidAt      *time.Time     `sql:"paid_at" json:"paid_at,omitempty"`
}

type Avoir struct {
	tableName struct{} `sql:"avoirs"` //nolint: unused,structcheck

	ID             int64     `sql:"id,pk" json:"id"`
	AdherentID     int64     `sql:"adherent_id,notnull" json:"adherent_id"`
	PaiementID     int64     `sql:"paiement_id" json:"paiement_id,omitempty"`
	Montant        int64     `sql:"montant,notnull" json:"montant"`
	MontantRestant int64     `sql:"montant_restant,notnull" json:"montant_restant"`
	Motif          string    `sql:"motif,notnull" json:"motif"`
	CreatedAt      time.Time `sql:"created_at,notnull" json:"created_at"`
}

// Allocation records how much of a paiement or an avoir settled a cotisation or a dette.
type Allocation struct {
	tableName struct{} `sql:"allocations"` //nolint: unused,structcheck

	ID           int64     `sql:"id,pk" json:"id"`
	PaiementID   int64     `sql:"paiement_id" json:"paiement_id,omitempty"`
	AvoirID      int64     `sql:"avoir_id" json:"avoir_id,omitempty"`
	CotisationID int64     `sql:"cotisation_id" json:"cotisation_id,omitempty"`
	DetteID      int64     `sql:"dette_id" json:"dette_id,omitempty"`
	Montant      int64     `sql:"montant,notnull" json:"montant"`
	CreatedAt    time.Time `sql:"created_at,notnull" json:"created_at"`
}

type Canal string

const (
	CanalEmail    Canal = "email"
	CanalCourrier Canal = "courrier"
)

type Relance struct {
	tableName struct{} `sql:"relances"` //nolint: unused,structcheck

	ID           int64     `sql:"id,pk" json:"id"`
	AdherentID   int64     `sql:"adherent_id,notnull" json:"adherent_id"`
	CotisationID int64     `sql:"cotisation_id,notnull" json:"cotisation_id"`
	Niveau       int       `sql:"niveau,notnull" json:"niveau"`
	Canal        Canal     `sql:"canal,notnull" json:"canal"`
	SentAt       time.Time `sql:"sent_at,notnull" json:"sent_at"`
}
