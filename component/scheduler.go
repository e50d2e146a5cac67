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

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the periodic jobs of the api process: overdue detection,
// reminders and expired sessions cleanup.
type Scheduler struct {
	cron        *cron.Cron
	log         logrus.FieldLogger
	cotisations *Cotisations
	relances    *Relances
	accounts    *Accounts
	clock       Clock
}

func NewScheduler(
	schedule string,
	log logrus.FieldLogger,
	cotisations *Cotisations,
	relances *Relances,
	accounts *Accounts,
	clock Clock,
) (*Scheduler, error) {
	s := &Scheduler{
		cron:        cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:         log,
		cotisations: cotisations,
		relances:    relances,
		accounts:    accounts,
		clock:       clock,
	}
	// an empty schedule only allows RunOnce
	if schedule == "" {
		return s, nil
	}
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.RunOnce(context.Background()); err != nil {
			s.log.WithError(err).Error("scheduled run failed")
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "invalid schedule %q", schedule)
	}
	return s, nil
}

func (s *Scheduler) RunOnce(ctx context.Context) error {
	if _, err := s.cotisations.MarkOverdue(ctx); err != nil {
		return err
	}
	if _, err := s.relances.SendDue(ctx, s.clock.Now()); err != nil {
		return err
	}
	n, err := s.accounts.PurgeExpiredSessions(ctx)
	if err != nil {
		return err
	}
	s.log.Debugf("%d expired sessions removed", n)
	return nil
}

// Run blocks until ctx is done, then waits for the running job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.log.Info("scheduler started")
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
	return nil
}
