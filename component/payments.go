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

	"github.com/go-pg/pg"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/internal/payments"
	"github.com/amaki-france/adherents/observability"
)

// Payments opens online checkouts and feeds provider notifications to the ledger.
type Payments struct {
	db       *pg.DB
	obs      *observability.Observability
	log      logrus.FieldLogger
	ledger   *Ledger
	gateways map[models.Provider]payments.Gateway
	currency string
	name     string
	clock    Clock
	events   *prometheus.CounterVec
}

func NewPayments(
	db *pg.DB,
	obs *observability.Observability,
	ledger *Ledger,
	association string,
	currency string,
	clock Clock,
	gateways ...payments.Gateway,
) *Payments {
	p := &Payments{
		db:       db,
		obs:      obs,
		log:      obs.Log(),
		ledger:   ledger,
		gateways: make(map[models.Provider]payments.Gateway, len(gateways)),
		currency: currency,
		name:     association,
		clock:    clock,
		events: obs.CounterVec(prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Provider notifications by provider, kind and outcome.",
		}, "provider", "kind", "outcome"),
	}
	for _, g := range gateways {
		p.gateways[g.Provider()] = g
	}
	return p
}

func (s *Payments) Gateway(provider models.Provider) (payments.Gateway, error) {
	g, ok := s.gateways[provider]
	if !ok {
		return nil, adherents.NewValidationError(fmt.Sprintf("provider %q is not available", provider))
	}
	return g, nil
}

// CreateCheckout records a pending paiement and opens the provider checkout. A zero montant
// means the outstanding balance of the adherent.
func (s *Payments) CreateCheckout(
	ctx context.Context,
	adherentID int64,
	montant int64,
	provider models.Provider,
) (*models.Paiement, *payments.Checkout, error) {
	gateway, err := s.Gateway(provider)
	if err != nil {
		return nil, nil, err
	}
	if montant < 0 {
		return nil, nil, adherents.NewValidationError("montant should be positive")
	}
	adherent, err := postgres.NewAdherentStorage(s.obs, s.db).ByID(adherentID, false)
	if err != nil {
		return nil, nil, err
	}
	if montant == 0 {
		balance, err := postgres.NewCotisationStorage(s.obs, s.db).Balance(adherentID)
		if err != nil {
			return nil, nil, err
		}
		montant = balance.Du - balance.Credit
		if montant <= 0 {
			return nil, nil, errors.Wrapf(adherents.ErrNothingDue, "adherent %d", adherentID)
		}
	}

	storage := postgres.NewPaiementStorage(s.obs, s.db)
	p := &models.Paiement{
		AdherentID: adherentID,
		Montant:    montant,
		Provider:   provider,
		Statut:     models.PaiementEnAttente,
		CreatedAt:  s.clock.Now(),
	}
	if err := storage.Insert(p); err != nil {
		return nil, nil, err
	}
	log := s.log.WithFields(logrus.Fields{"paiement_id": p.ID, "adherent_id": adherentID, "provider": provider})

	checkout, err := gateway.CreateCheckout(ctx, payments.CheckoutRequest{
		PaiementID:  p.ID,
		Montant:     montant,
		Currency:    s.currency,
		Description: fmt.Sprintf("%s - cotisation de %s", s.name, adherent.FullName()),
		Email:       adherent.Email,
	})
	if err != nil {
		p.Statut = models.PaiementEchoue
		if uerr := storage.Update(p); uerr != nil {
			log.WithError(uerr).Error("failed to mark paiement as failed")
		}
		return nil, nil, err
	}
	p.ProviderRef = checkout.ProviderRef
	if err := storage.Update(p); err != nil {
		return nil, nil, err
	}
	log.Info("checkout created")
	return p, checkout, nil
}

func (s *Payments) find(tx *pg.Tx, provider models.Provider, ev *payments.Event) (*models.Paiement, error) {
	storage := postgres.NewPaiementStorage(s.obs, tx)
	var (
		p   *models.Paiement
		err error
	)
	if ev.PaiementID != 0 {
		p, err = storage.ByID(ev.PaiementID, true)
	} else {
		p, err = storage.ByProviderRef(provider, ev.ProviderRef, true)
	}
	if err != nil {
		return nil, err
	}
	if p.Provider != provider {
		return nil, errors.Wrapf(adherents.ErrNotFound, "paiement %d is not a %s paiement", p.ID, provider)
	}
	return p, nil
}

// HandleEvent applies a provider notification. Notifications about unknown paiements
// are reported with ErrNotFound, replays of already handled ones are no-ops.
func (s *Payments) HandleEvent(ctx context.Context, provider models.Provider, ev *payments.Event) error {
	log := s.log.WithFields(logrus.Fields{
		"provider":     provider,
		"event":        ev.Type,
		"paiement_id":  ev.PaiementID,
		"provider_ref": ev.ProviderRef,
	})
	err := s.handle(ctx, provider, ev, log)
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Cause(err) == adherents.ErrNotFound:
		outcome = "unknown"
	default:
		outcome = "error"
	}
	s.events.WithLabelValues(string(provider), string(ev.Kind), outcome).Inc()
	return err
}

func (s *Payments) handle(ctx context.Context, provider models.Provider, ev *payments.Event, log logrus.FieldLogger) error {
	switch ev.Kind {
	case payments.EventPaid:
		return s.db.RunInTransaction(func(tx *pg.Tx) error {
			p, err := s.find(tx, provider, ev)
			if err != nil {
				return err
			}
			if p.Statut != models.PaiementEnAttente && p.Statut != models.PaiementEchoue {
				log.WithField("statut", p.Statut).Info("paiement already handled, event ignored")
				return nil
			}
			if ev.Montant > 0 && ev.Montant != p.Montant {
				log.Warnf("provider amount %d differs from %d, provider amount kept", ev.Montant, p.Montant)
				p.Montant = ev.Montant
			}
			if ev.ProviderRef != "" {
				p.ProviderRef = ev.ProviderRef
			}
			// a paiement given up earlier can still be completed by the provider
			p.Statut = models.PaiementEnAttente
			return s.ledger.apply(tx, p)
		})
	case payments.EventFailed:
		var id int64
		err := s.db.RunInTransaction(func(tx *pg.Tx) error {
			p, err := s.find(tx, provider, ev)
			if err != nil {
				return err
			}
			id = p.ID
			return nil
		})
		if err != nil {
			return err
		}
		_, err = s.ledger.MarkFailed(ctx, id)
		return err
	case payments.EventRefunded:
		var (
			id     int64
			statut models.PaiementStatut
		)
		err := s.db.RunInTransaction(func(tx *pg.Tx) error {
			p, err := s.find(tx, provider, ev)
			if err != nil {
				return err
			}
			id, statut = p.ID, p.Statut
			return nil
		})
		if err != nil {
			return err
		}
		if statut == models.PaiementRembourse {
			log.Info("paiement already refunded, event ignored")
			return nil
		}
		_, err = s.ledger.Refund(ctx, id)
		return err
	}
	log.Debug("event ignored")
	return nil
}
