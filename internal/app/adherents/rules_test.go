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
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amaki-france/adherents/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func cotisation(id int64, echeance time.Time, montant, paye int64, statut models.CotisationStatut) models.Cotisation {
	return models.Cotisation{ID: id, DateEcheance: echeance, Montant: montant, MontantPaye: paye, Statut: statut}
}

func TestAllocate(t *testing.T) {
	dettes := []models.Dette{
		{ID: 2, MontantRestant: 500, CreatedAt: day(2025, time.June, 1)},
		{ID: 1, MontantRestant: 300, CreatedAt: day(2025, time.January, 1)},
		{ID: 3, MontantRestant: 0, CreatedAt: day(2024, time.January, 1)},
	}
	cotisations := []models.Cotisation{
		cotisation(11, day(2026, time.February, 28), 2000, 0, models.CotisationEnAttente),
		cotisation(10, day(2026, time.January, 31), 2000, 500, models.CotisationEnRetard),
		cotisation(12, day(2025, time.December, 31), 2000, 2000, models.CotisationPayee),
		cotisation(13, day(2025, time.November, 30), 2000, 0, models.CotisationAnnulee),
	}

	t.Run("dettes first then oldest cotisation", func(t *testing.T) {
		plan := Allocate(1500, dettes, cotisations)
		require.Equal(t, []Share{
			{DetteID: 1, Montant: 300},
			{DetteID: 2, Montant: 500},
			{CotisationID: 10, Montant: 700},
		}, plan.Shares)
		require.Equal(t, int64(0), plan.Reste)
		require.Equal(t, int64(1500), plan.Allocated())
	})

	t.Run("overpayment is left over", func(t *testing.T) {
		plan := Allocate(5000, dettes, cotisations)
		require.Equal(t, []Share{
			{DetteID: 1, Montant: 300},
			{DetteID: 2, Montant: 500},
			{CotisationID: 10, Montant: 1500},
			{CotisationID: 11, Montant: 2000},
		}, plan.Shares)
		require.Equal(t, int64(700), plan.Reste)
	})

	t.Run("nothing open", func(t *testing.T) {
		plan := Allocate(1000, nil, nil)
		require.Empty(t, plan.Shares)
		require.Equal(t, int64(1000), plan.Reste)
	})

	t.Run("non positive amount", func(t *testing.T) {
		plan := Allocate(0, dettes, cotisations)
		require.Empty(t, plan.Shares)
		require.Zero(t, plan.Reste)
	})

	t.Run("input is not reordered", func(t *testing.T) {
		Allocate(100, dettes, cotisations)
		require.Equal(t, int64(2), dettes[0].ID)
		require.Equal(t, int64(11), cotisations[0].ID)
	})
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.AdherentStatut
		ok       bool
	}{
		{models.AdherentEnAttente, models.AdherentActif, true},
		{models.AdherentEnAttente, models.AdherentSuspendu, false},
		{models.AdherentActif, models.AdherentSuspendu, true},
		{models.AdherentSuspendu, models.AdherentActif, true},
		{models.AdherentActif, models.AdherentEnAttente, false},
		{models.AdherentRadie, models.AdherentActif, false},
	}
	for _, c := range cases {
		require.Equal(t, c.ok, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestCotisationStatutAt(t *testing.T) {
	echeance := day(2026, time.January, 31)
	before := day(2026, time.January, 15)
	inGrace := day(2026, time.February, 10)
	late := day(2026, time.February, 20)

	require.Equal(t, models.CotisationEnAttente, CotisationStatutAt(cotisation(1, echeance, 100, 0, models.CotisationEnAttente), before, 15))
	require.Equal(t, models.CotisationPartielle, CotisationStatutAt(cotisation(1, echeance, 100, 40, models.CotisationEnAttente), inGrace, 15))
	require.Equal(t, models.CotisationEnRetard, CotisationStatutAt(cotisation(1, echeance, 100, 40, models.CotisationPartielle), late, 15))
	require.Equal(t, models.CotisationPayee, CotisationStatutAt(cotisation(1, echeance, 100, 100, models.CotisationEnRetard), late, 15))
	require.Equal(t, models.CotisationAnnulee, CotisationStatutAt(cotisation(1, echeance, 100, 0, models.CotisationAnnulee), late, 15))
}

func TestPeriode(t *testing.T) {
	periode, echeance, err := Periode(models.PeriodiciteMensuelle, time.Date(2024, time.February, 10, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "2024-02", periode)
	require.Equal(t, day(2024, time.February, 29), echeance)

	periode, echeance, err = Periode(models.PeriodiciteMensuelle, day(2025, time.December, 3))
	require.NoError(t, err)
	require.Equal(t, "2025-12", periode)
	require.Equal(t, day(2025, time.December, 31), echeance)

	periode, echeance, err = Periode(models.PeriodiciteAnnuelle, day(2026, time.October, 18))
	require.NoError(t, err)
	require.Equal(t, "2026", periode)
	require.Equal(t, day(2026, time.March, 31), echeance)

	_, _, err = Periode("hebdomadaire", day(2026, time.October, 18))
	require.Error(t, err)
	require.IsType(t, &ValidationError{}, err)
}

func TestVisibleDocuments(t *testing.T) {
	require.Len(t, VisibleDocuments(""), 1)
	require.Len(t, VisibleDocuments(models.RoleAdherent), 2)
	require.Contains(t, VisibleDocuments(models.RoleAdmin), models.VisibiliteAdmin)
}

func TestValidationError(t *testing.T) {
	verr := &ValidationError{}
	require.NoError(t, verr.Err())

	verr.Add("nom is required")
	require.EqualError(t, verr.Err(), "nom is required")

	verr.Add("email is required")
	require.EqualError(t, verr.Err(), "validation failed")
	require.Len(t, verr.Messages, 2)
}
