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
	"sort"
	"time"

	"github.com/amaki-france/adherents/internal/models"
)

// CheckVote validates everything about a ballot that does not need the votes table.
func CheckVote(e models.Election, voter models.Adherent, poste models.Poste, candidat models.Candidat, now time.Time) error {
	if e.Statut != models.ElectionOuverte || now.Before(e.Ouverture) || now.After(e.Cloture) {
		return ErrElectionClosed
	}
	if voter.Statut != models.AdherentActif {
		return ErrNotEligible
	}
	if poste.ElectionID != e.ID || candidat.PosteID != poste.ID {
		return NewValidationError("candidat does not belong to this election")
	}
	return nil
}

type CandidatResult struct {
	CandidatID int64  `json:"candidat_id"`
	AdherentID int64  `json:"adherent_id"`
	Nom        string `json:"nom"`
	Voix       int    `json:"voix"`
	Elu        bool   `json:"elu"`
}

type PosteResult struct {
	PosteID   int64            `json:"poste_id"`
	Libelle   string           `json:"libelle"`
	Places    int              `json:"places"`
	Votants   int              `json:"votants"`
	Candidats []CandidatResult `json:"candidats"`
}

// Tally orders each poste's candidats by votes then id and marks the first Places as elected.
// Candidats with no vote are not elected.
func Tally(postes []models.Poste, candidats []models.Candidat, votes map[int64]int, names map[int64]string) []PosteResult {
	byPoste := make(map[int64][]models.Candidat)
	for _, c := range candidats {
		byPoste[c.PosteID] = append(byPoste[c.PosteID], c)
	}

	results := make([]PosteResult, 0, len(postes))
	for _, p := range postes {
		res := PosteResult{PosteID: p.ID, Libelle: p.Libelle, Places: p.Places, Candidats: []CandidatResult{}}
		for _, c := range byPoste[p.ID] {
			n := votes[c.ID]
			res.Votants += n
			res.Candidats = append(res.Candidats, CandidatResult{
				CandidatID: c.ID,
				AdherentID: c.AdherentID,
				Nom:        names[c.AdherentID],
				Voix:       n,
			})
		}
		sort.SliceStable(res.Candidats, func(i, j int) bool {
			if res.Candidats[i].Voix == res.Candidats[j].Voix {
				return res.Candidats[i].CandidatID < res.Candidats[j].CandidatID
			}
			return res.Candidats[i].Voix > res.Candidats[j].Voix
		})
		for i := range res.Candidats {
			res.Candidats[i].Elu = i < p.Places
		}
		results = append(results, res)
	}
	return results
}

// CheckInscription validates a registration; inscrits is the current number of registrations.
func CheckInscription(ev models.Evenement, a models.Adherent, inscrits int, now time.Time) error {
	if !ev.Publie || !now.Before(ev.Debut) {
		return ErrInvalidState
	}
	if a.Statut != models.AdherentActif {
		return ErrNotEligible
	}
	if ev.Capacite > 0 && inscrits >= ev.Capacite {
		return ErrEventFull
	}
	return nil
}
