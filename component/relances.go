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
	"time"

	"github.com/go-pg/pg"
	"github.com/sirupsen/logrus"

	"github.com/amaki-france/adherents/configuration"
	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/internal/notify"
	"github.com/amaki-france/adherents/observability"
)

// Relances sends reminders for late cotisations.
type Relances struct {
	db          *pg.DB
	obs         *observability.Observability
	log         logrus.FieldLogger
	cfg         configuration.Relance
	association string
	mailer      notify.Mailer
	metrics     *observability.LedgerMetrics
}

func NewRelances(
	db *pg.DB,
	obs *observability.Observability,
	cfg configuration.Relance,
	association string,
	mailer notify.Mailer,
) *Relances {
	return &Relances{
		db:          db,
		obs:         obs,
		log:         obs.Log(),
		cfg:         cfg,
		association: association,
		mailer:      mailer,
		metrics:     observability.MakeLedgerMetrics(obs, "sent"),
	}
}

// next returns the level of the reminder to send, zero when nothing is due yet.
func (s *Relances) next(last models.Relance, found bool, now time.Time) int {
	if s.cfg.MaxLevel < 1 {
		return 0
	}
	if !found {
		return 1
	}
	if last.Niveau >= s.cfg.MaxLevel || now.Sub(last.SentAt) < s.cfg.Interval {
		return 0
	}
	return last.Niveau + 1
}

// SendDue sends the reminders due at now and returns how many were sent. A delivery
// failure skips the cotisation, it is retried on the next run.
func (s *Relances) SendDue(ctx context.Context, now time.Time) (int, error) {
	limit := now.AddDate(0, 0, -s.cfg.MinDaysOverdue)
	overdue, err := postgres.NewCotisationStorage(s.obs, s.db).Overdue(limit)
	if err != nil {
		return 0, err
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	relances := postgres.NewRelanceStorage(s.obs, s.db)
	ids := make([]int64, 0, len(overdue))
	adherentIDs := make([]int64, 0, len(overdue))
	for _, c := range overdue {
		ids = append(ids, c.ID)
		adherentIDs = append(adherentIDs, c.AdherentID)
	}
	last, err := relances.Last(ids)
	if err != nil {
		return 0, err
	}
	list, err := postgres.NewAdherentStorage(s.obs, s.db).ByIDs(adherentIDs)
	if err != nil {
		return 0, err
	}
	byID := make(map[int64]models.Adherent, len(list))
	for _, a := range list {
		byID[a.ID] = a
	}

	sent := 0
	for _, c := range overdue {
		log := s.log.WithFields(logrus.Fields{"adherent_id": c.AdherentID, "cotisation_id": c.ID})
		a, ok := byID[c.AdherentID]
		if !ok || a.Statut == models.AdherentRadie {
			continue
		}
		l, found := last[c.ID]
		niveau := s.next(l, found, now)
		if niveau == 0 {
			continue
		}

		msg := notify.Relance(s.association, a, c, niveau, now)
		if err := s.mailer.Send(ctx, msg); err != nil {
			log.WithError(err).Error("failed to send relance")
			continue
		}
		r := &models.Relance{
			AdherentID:   a.ID,
			CotisationID: c.ID,
			Niveau:       niveau,
			Canal:        msg.Canal,
			SentAt:       now,
		}
		if err := relances.Insert(r); err != nil {
			return sent, err
		}
		sent++
		s.metrics.Relances.Inc()
		log.WithField("niveau", niveau).Debug("relance sent")
	}
	s.log.Infof("%d relances sent", sent)
	return sent, nil
}

func (s *Relances) ByAdherent(ctx context.Context, adherentID int64) ([]models.Relance, error) {
	return postgres.NewRelanceStorage(s.obs, s.db).ByAdherent(adherentID)
}
