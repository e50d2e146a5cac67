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
	"github.com/go-pg/pg"
	"github.com/sirupsen/logrus"

	"github.com/amaki-france/adherents/configuration"
	"github.com/amaki-france/adherents/internal/notify"
	"github.com/amaki-france/adherents/internal/payments"
	"github.com/amaki-france/adherents/observability"
)

// Manager holds every service of the application wired on the same database.
type Manager struct {
	Accounts    *Accounts
	Membership  *Membership
	Types       *Types
	Cotisations *Cotisations
	Dettes      *Dettes
	Ledger      *Ledger
	Payments    *Payments
	Relances    *Relances
	Elections   *Elections
	Evenements  *Evenements
	Documents   *Documents
	Purge       *Purge
	Stats       *Stats
}

func Prepare(
	db *pg.DB,
	obs *observability.Observability,
	cfg *configuration.Configuration,
	mailer notify.Mailer,
	clock Clock,
	gateways ...payments.Gateway,
) (*Manager, error) {
	types, err := NewTypes(db, obs, cfg.Cache.Size)
	if err != nil {
		return nil, err
	}
	association := cfg.Association
	ledger := NewLedger(db, obs, association.GraceDays, clock)
	purge := NewPurge(db, obs)
	return &Manager{
		Accounts:    NewAccounts(db, obs, cfg.Auth, clock),
		Membership:  NewMembership(db, obs, types, purge, clock),
		Types:       types,
		Cotisations: NewCotisations(db, obs, types, ledger, association.GraceDays, clock),
		Dettes:      NewDettes(db, obs, clock),
		Ledger:      ledger,
		Payments:    NewPayments(db, obs, ledger, association.Name, association.Currency, clock, gateways...),
		Relances:    NewRelances(db, obs, cfg.Relance, association.Name, mailer),
		Elections:   NewElections(db, obs, clock),
		Evenements:  NewEvenements(db, obs, clock),
		Documents:   NewDocuments(db, obs, clock),
		Purge:       purge,
		Stats:       NewStats(db, obs),
	}, nil
}

// Gateways returns the payment providers having credentials in cfg.
func Gateways(cfg *configuration.Configuration, log logrus.FieldLogger) []payments.Gateway {
	var res []payments.Gateway
	if cfg.Stripe.SecretKey != "" {
		res = append(res, payments.NewStripe(cfg.Stripe, log.WithField("provider", "stripe")))
	} else {
		log.Warn("stripe is not configured")
	}
	if cfg.Mollie.APIKey != "" {
		res = append(res, payments.NewMollie(cfg.Mollie, log.WithField("provider", "mollie")))
	} else {
		log.Warn("mollie is not configured")
	}
	return res
}

// Scheduler returns the periodic jobs runner over the manager services.
func (m *Manager) Scheduler(schedule string, log logrus.FieldLogger, clock Clock) (*Scheduler, error) {
	return NewScheduler(schedule, log, m.Cotisations, m.Relances, m.Accounts, clock)
}
