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
	"fmt"
	"strings"
	"time"

	"github.com/go-pg/pg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/observability"
)

// Ledger applies payments and credits to the open lines of adherents.
type Ledger struct {
	db        *pg.DB
	obs       *observability.Observability
	log       logrus.FieldLogger
	graceDays int
	clock     Clock

	applied  *observability.LedgerMetrics
	created  *observability.LedgerMetrics
	refunded *observability.LedgerMetrics
}

func NewLedger(db *pg.DB, obs *observability.Observability, graceDays int, clock Clock) *Ledger {
	return &Ledger{
		db:        db,
		obs:       obs,
		log:       obs.Log(),
		graceDays: graceDays,
		clock:     clock,
		applied:   observability.MakeLedgerMetrics(obs, "applied"),
		created:   observability.MakeLedgerMetrics(obs, "created"),
		refunded:  observability.MakeLedgerMetrics(obs, "refunded"),
	}
}

// openLines holds the locked unpaid lines of one adherent. settle keeps it in sync with
// what was written so that several credits can be spent in a row.
type openLines struct {
	dettes      []models.Dette
	cotisations []models.Cotisation
}

func lockOpenLines(obs *observability.Observability, tx *pg.Tx, adherentID int64) (*openLines, error) {
	// serializes concurrent settlements of the same adherent
	if _, err := postgres.NewAdherentStorage(obs, tx).ByID(adherentID, true); err != nil {
		return nil, err
	}
	dettes, err := postgres.NewDetteStorage(obs, tx).Open(adherentID, true)
	if err != nil {
		return nil, err
	}
	cotisations, err := postgres.NewCotisationStorage(obs, tx).Open(adherentID, true)
	if err != nil {
		return nil, err
	}
	return &openLines{dettes: dettes, cotisations: cotisations}, nil
}

func (l *Ledger) settle(tx *pg.Tx, lines *openLines, plan adherents.Plan, now time.Time) ([]models.Allocation, error) {
	dettes := make(map[int64]*models.Dette, len(lines.dettes))
	for i := range lines.dettes {
		dettes[lines.dettes[i].ID] = &lines.dettes[i]
	}
	cotisations := make(map[int64]*models.Cotisation, len(lines.cotisations))
	for i := range lines.cotisations {
		cotisations[lines.cotisations[i].ID] = &lines.cotisations[i]
	}

	detteStorage := postgres.NewDetteStorage(l.obs, tx)
	cotisationStorage := postgres.NewCotisationStorage(l.obs, tx)
	allocations := make([]models.Allocation, 0, len(plan.Shares))
	for _, share := range plan.Shares {
		switch {
		case share.DetteID != 0:
			d, ok := dettes[share.DetteID]
			if !ok {
				return nil, errors.Errorf("dette %d is not locked", share.DetteID)
			}
			d.MontantRestant -= share.Montant
			if err := detteStorage.Update(d); err != nil {
				return nil, err
			}
			if d.MontantRestant == 0 {
				l.applied.Dettes.Inc()
			}
		case share.CotisationID != 0:
			c, ok := cotisations[share.CotisationID]
			if !ok {
				return nil, errors.Errorf("cotisation %d is not locked", share.CotisationID)
			}
			c.MontantPaye += share.Montant
			c.Statut = adherents.CotisationStatutAt(*c, now, l.graceDays)
			if err := cotisationStorage.Update(c); err != nil {
				return nil, err
			}
			if c.Statut == models.CotisationPayee {
				l.applied.Cotisations.Inc()
			}
		}
		allocations = append(allocations, models.Allocation{
			CotisationID: share.CotisationID,
			DetteID:      share.DetteID,
			Montant:      share.Montant,
			CreatedAt:    now,
		})
	}
	return allocations, nil
}

// apply spends a pending paiement. Paiements already paid are left untouched.
func (l *Ledger) apply(tx *pg.Tx, p *models.Paiement) error {
	log := l.log.WithFields(logrus.Fields{"paiement_id": p.ID, "adherent_id": p.AdherentID, "provider": p.Provider})
	switch p.Statut {
	case models.PaiementPaye:
		log.Info("paiement already applied, ignored")
		return nil
	case models.PaiementRembourse:
		return errors.Wrapf(adherents.ErrInvalidState, "paiement %d was refunded", p.ID)
	}

	now := l.clock.Now()
	lines, err := lockOpenLines(l.obs, tx, p.AdherentID)
	if err != nil {
		return err
	}
	plan := adherents.Allocate(p.Montant, lines.dettes, lines.cotisations)
	allocations, err := l.settle(tx, lines, plan, now)
	if err != nil {
		return err
	}
	for i := range allocations {
		allocations[i].PaiementID = p.ID
	}
	if err := postgres.NewAllocationStorage(l.obs, tx).Insert(allocations); err != nil {
		return err
	}

	if plan.Reste > 0 {
		avoir := &models.Avoir{
			AdherentID:     p.AdherentID,
			PaiementID:     p.ID,
			Montant:        plan.Reste,
			MontantRestant: plan.Reste,
			Motif:          fmt.Sprintf("trop-perçu du paiement %d", p.ID),
			CreatedAt:      now,
		}
		if err := postgres.NewAvoirStorage(l.obs, tx).Insert(avoir); err != nil {
			return err
		}
		l.created.Avoirs.Inc()
		log.WithField("avoir_id", avoir.ID).Infof("overpayment of %d kept as avoir", plan.Reste)
	}

	p.Statut = models.PaiementPaye
	p.PaidAt = &now
	if err := postgres.NewPaiementStorage(l.obs, tx).Update(p); err != nil {
		return err
	}
	l.applied.Paiements.Inc()
	log.Infof("paiement of %d applied on %d lines", p.Montant, len(allocations))
	return nil
}

// ApplyPayment applies the paiement. Applying a paid paiement again is a no-op.
func (l *Ledger) ApplyPayment(ctx context.Context, paiementID int64) (*models.Paiement, error) {
	var res *models.Paiement
	err := l.db.RunInTransaction(func(tx *pg.Tx) error {
		p, err := postgres.NewPaiementStorage(l.obs, tx).ByID(paiementID, true)
		if err != nil {
			return err
		}
		res = p
		return l.apply(tx, p)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RecordManualPayment records a payment received outside of the online providers and applies it.
func (l *Ledger) RecordManualPayment(
	ctx context.Context,
	adherentID int64,
	montant int64,
	provider models.Provider,
	ref string,
) (*models.Paiement, error) {
	verr := &adherents.ValidationError{}
	if montant <= 0 {
		verr.Add("montant should be positive")
	}
	if !adherents.ValidManualProvider(provider) {
		verr.Add("provider should be especes, cheque or virement")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	p := &models.Paiement{
		AdherentID:  adherentID,
		Montant:     montant,
		Provider:    provider,
		ProviderRef: strings.TrimSpace(ref),
		Statut:      models.PaiementEnAttente,
		CreatedAt:   l.clock.Now(),
	}
	err := l.db.RunInTransaction(func(tx *pg.Tx) error {
		if _, err := postgres.NewAdherentStorage(l.obs, tx).ByID(adherentID, false); err != nil {
			return err
		}
		if err := postgres.NewPaiementStorage(l.obs, tx).Insert(p); err != nil {
			return err
		}
		return l.apply(tx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (l *Ledger) spendAvoirs(tx *pg.Tx, adherentID int64) (int64, error) {
	lines, err := lockOpenLines(l.obs, tx, adherentID)
	if err != nil {
		return 0, err
	}
	avoirStorage := postgres.NewAvoirStorage(l.obs, tx)
	avoirs, err := avoirStorage.Open(adherentID, true)
	if err != nil || len(avoirs) == 0 {
		return 0, err
	}

	now := l.clock.Now()
	var spent int64
	for i := range avoirs {
		avoir := &avoirs[i]
		plan := adherents.Allocate(avoir.MontantRestant, lines.dettes, lines.cotisations)
		if len(plan.Shares) == 0 {
			break
		}
		allocations, err := l.settle(tx, lines, plan, now)
		if err != nil {
			return 0, err
		}
		for j := range allocations {
			allocations[j].AvoirID = avoir.ID
		}
		if err := postgres.NewAllocationStorage(l.obs, tx).Insert(allocations); err != nil {
			return 0, err
		}
		avoir.MontantRestant = plan.Reste
		if err := avoirStorage.Update(avoir); err != nil {
			return 0, err
		}
		spent += plan.Allocated()
		l.applied.Avoirs.Inc()
	}
	return spent, nil
}

// ApplyAvoirs spends the remaining avoirs of the adherent, oldest first, and returns the amount spent.
func (l *Ledger) ApplyAvoirs(ctx context.Context, adherentID int64) (int64, error) {
	var spent int64
	err := l.db.RunInTransaction(func(tx *pg.Tx) error {
		var err error
		spent, err = l.spendAvoirs(tx, adherentID)
		return err
	})
	if err != nil {
		return 0, err
	}
	if spent > 0 {
		l.log.WithField("adherent_id", adherentID).Infof("%d of avoirs spent", spent)
	}
	return spent, nil
}

// MarkFailed flags a pending paiement as failed. Paid paiements are not affected.
func (l *Ledger) MarkFailed(ctx context.Context, paiementID int64) (*models.Paiement, error) {
	var res *models.Paiement
	err := l.db.RunInTransaction(func(tx *pg.Tx) error {
		storage := postgres.NewPaiementStorage(l.obs, tx)
		p, err := storage.ByID(paiementID, true)
		if err != nil {
			return err
		}
		res = p
		if p.Statut != models.PaiementEnAttente {
			l.log.WithFields(logrus.Fields{"paiement_id": p.ID, "statut": p.Statut}).
				Warn("paiement is not pending, failure ignored")
			return nil
		}
		p.Statut = models.PaiementEchoue
		return storage.Update(p)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (l *Ledger) reverse(tx *pg.Tx, allocations []models.Allocation) error {
	detteStorage := postgres.NewDetteStorage(l.obs, tx)
	cotisationStorage := postgres.NewCotisationStorage(l.obs, tx)
	now := l.clock.Now()
	ids := make([]int64, 0, len(allocations))
	for _, a := range allocations {
		switch {
		case a.DetteID != 0:
			d, err := detteStorage.ByID(a.DetteID, true)
			if err != nil {
				return err
			}
			d.MontantRestant += a.Montant
			if err := detteStorage.Update(d); err != nil {
				return err
			}
		case a.CotisationID != 0:
			c, err := cotisationStorage.ByID(a.CotisationID, true)
			if err != nil {
				return err
			}
			c.MontantPaye -= a.Montant
			c.Statut = adherents.CotisationStatutAt(*c, now, l.graceDays)
			if err := cotisationStorage.Update(c); err != nil {
				return err
			}
		}
		ids = append(ids, a.ID)
	}
	return postgres.NewAllocationStorage(l.obs, tx).Delete(ids)
}

// Refund cancels a paid paiement: every allocation made from it, or from the avoir it
// created, is reversed and the avoir is emptied.
func (l *Ledger) Refund(ctx context.Context, paiementID int64) (*models.Paiement, error) {
	var res *models.Paiement
	err := l.db.RunInTransaction(func(tx *pg.Tx) error {
		paiements := postgres.NewPaiementStorage(l.obs, tx)
		p, err := paiements.ByID(paiementID, true)
		if err != nil {
			return err
		}
		res = p
		if p.Statut != models.PaiementPaye {
			return errors.Wrapf(adherents.ErrInvalidState, "paiement %d is %s", p.ID, p.Statut)
		}
		if _, err := postgres.NewAdherentStorage(l.obs, tx).ByID(p.AdherentID, true); err != nil {
			return err
		}

		allocationStorage := postgres.NewAllocationStorage(l.obs, tx)
		allocations, err := allocationStorage.ByPaiement(p.ID)
		if err != nil {
			return err
		}
		avoirStorage := postgres.NewAvoirStorage(l.obs, tx)
		avoirs, err := avoirStorage.ByPaiement(p.ID, true)
		if err != nil {
			return err
		}
		avoirIDs := make([]int64, 0, len(avoirs))
		for _, a := range avoirs {
			avoirIDs = append(avoirIDs, a.ID)
		}
		fromAvoirs, err := allocationStorage.ByAvoirs(avoirIDs)
		if err != nil {
			return err
		}
		if err := l.reverse(tx, append(allocations, fromAvoirs...)); err != nil {
			return err
		}
		for i := range avoirs {
			avoirs[i].MontantRestant = 0
			if err := avoirStorage.Update(&avoirs[i]); err != nil {
				return err
			}
		}

		p.Statut = models.PaiementRembourse
		return paiements.Update(p)
	})
	if err != nil {
		return nil, err
	}
	l.refunded.Paiements.Inc()
	l.log.WithFields(logrus.Fields{"paiement_id": res.ID, "adherent_id": res.AdherentID}).Info("paiement refunded")
	return res, nil
}

func (l *Ledger) Paiements(ctx context.Context, adherentID int64) ([]models.Paiement, error) {
	return postgres.NewPaiementStorage(l.obs, l.db).ByAdherent(adherentID)
}

func (l *Ledger) Avoirs(ctx context.Context, adherentID int64) ([]models.Avoir, error) {
	return postgres.NewAvoirStorage(l.obs, l.db).ByAdherent(adherentID)
}

func (l *Ledger) Allocations(ctx context.Context, paiementID int64) ([]models.Allocation, error) {
	return postgres.NewAllocationStorage(l.obs, l.db).ByPaiement(paiementID)
}
