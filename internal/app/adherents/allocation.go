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

	"github.com/amaki-france/adherents/internal/models"
)

// Share is the part of an amount spent on one cotisation or one dette.
type Share struct {
	CotisationID int64
	DetteID      int64
	Montant      int64
}

type Plan struct {
	Shares []Share
	// Reste is what is left once every open line is settled.
	Reste int64
}

func (p Plan) Allocated() int64 {
	var total int64
	for _, s := range p.Shares {
		total += s.Montant
	}
	return total
}

// Allocate spends amount on the dettes first, oldest first, then on the open cotisations
// by due date. A line never receives more than what remains on it.
func Allocate(amount int64, dettes []models.Dette, cotisations []models.Cotisation) Plan {
	if amount <= 0 {
		return Plan{}
	}

	ds := make([]models.Dette, len(dettes))
	copy(ds, dettes)
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].CreatedAt.Equal(ds[j].CreatedAt) {
			return ds[i].ID < ds[j].ID
		}
		return ds[i].CreatedAt.Before(ds[j].CreatedAt)
	})

	cs := make([]models.Cotisation, 0, len(cotisations))
	for _, c := range cotisations {
		if c.Statut.Open() {
			cs = append(cs, c)
		}
	}
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].DateEcheance.Equal(cs[j].DateEcheance) {
			return cs[i].ID < cs[j].ID
		}
		return cs[i].DateEcheance.Before(cs[j].DateEcheance)
	})

	plan := Plan{Reste: amount}
	for _, d := range ds {
		if plan.Reste == 0 {
			break
		}
		part := min64(plan.Reste, d.MontantRestant)
		if part <= 0 {
			continue
		}
		plan.Shares = append(plan.Shares, Share{DetteID: d.ID, Montant: part})
		plan.Reste -= part
	}
	for _, c := range cs {
		if plan.Reste == 0 {
			break
		}
		part := min64(plan.Reste, c.Restant())
		if part <= 0 {
			continue
		}
		plan.Shares = append(plan.Shares, Share{CotisationID: c.ID, Montant: part})
		plan.Reste -= part
	}
	return plan
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
