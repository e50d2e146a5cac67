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

package adherents

import (
	"fmt"
	"time"

	"github.com/amaki-france/adherents/internal/models"
)

var adherentTransitions = map[models.AdherentStatut][]models.AdherentStatut{
	models.AdherentEnAttente: {models.AdherentActif, models.AdherentRadie},
	models.AdherentActif:     {models.AdherentSuspendu, models.AdherentRadie},
	models.AdherentSuspendu:  {models.AdherentActif, models.AdherentRadie},
}

func ValidAdherentStatut(s models.AdherentStatut) bool {
	switch s {
	case models.AdherentEnAttente, models.AdherentActif, models.AdherentSuspendu, models.AdherentRadie:
		return true
	}
	return false
}

func CanTransition(from, to models.AdherentStatut) bool {
	for _, allowed := range adherentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CotisationStatutAt computes the statut a cotisation should have at now, given what was paid.
func CotisationStatutAt(c models.Cotisation, now time.Time, graceDays int) models.CotisationStatut {
	switch {
	case c.Statut == models.CotisationAnnulee:
		return models.CotisationAnnulee
	case c.MontantPaye >= c.Montant:
		return models.CotisationPayee
	case now.After(c.DateEcheance.AddDate(0, 0, graceDays)):
		return models.CotisationEnRetard
	case c.MontantPaye > 0:
		return models.CotisationPartielle
	default:
		return models.CotisationEnAttente
	}
}

// Periode returns the period label and due date of the period of periodicite containing date.
// Monthly dues are due on the last day of the month, yearly dues on the 31st of March.
func Periode(p models.Periodicite, date time.Time) (string, time.Time, error) {
	y, m, _ := date.Date()
	switch p {
	case models.PeriodiciteMensuelle:
		echeance := time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		return fmt.Sprintf("%04d-%02d", y, int(m)), echeance, nil
	case models.PeriodiciteAnnuelle:
		return fmt.Sprintf("%04d", y), time.Date(y, time.March, 31, 0, 0, 0, 0, time.UTC), nil
	}
	return "", time.Time{}, NewValidationError(fmt.Sprintf("unknown periodicite %q", p))
}

func ValidPeriodicite(p models.Periodicite) bool {
	return p == models.PeriodiciteMensuelle || p == models.PeriodiciteAnnuelle
}

func ValidManualProvider(p models.Provider) bool {
	return p == models.ProviderEspeces || p == models.ProviderCheque || p == models.ProviderVirement
}

// VisibleDocuments lists what a caller may see; role is empty for anonymous callers.
func VisibleDocuments(role models.Role) []models.VisibiliteDocument {
	switch role {
	case models.RoleAdmin:
		return []models.VisibiliteDocument{models.VisibilitePublic, models.VisibiliteAdherents, models.VisibiliteAdmin}
	case models.RoleAdherent:
		return []models.VisibiliteDocument{models.VisibilitePublic, models.VisibiliteAdherents}
	}
	return []models.VisibiliteDocument{models.VisibilitePublic}
}

func ValidVisibilite(v models.VisibiliteDocument) bool {
	return v == models.VisibilitePublic || v == models.VisibiliteAdherents || v == models.VisibiliteAdmin
}
