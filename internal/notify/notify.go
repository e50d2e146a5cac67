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

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/amaki-france/adherents/configuration"
	"github.com/amaki-france/adherents/internal/models"
)

const (
	DriverLog  = "log"
	DriverNATS = "nats"
)

// Message is a reminder ready to be delivered.
type Message struct {
	AdherentID   int64        `json:"adherent_id"`
	CotisationID int64        `json:"cotisation_id"`
	Niveau       int          `json:"niveau"`
	Canal        models.Canal `json:"canal"`
	From         string       `json:"from,omitempty"`
	To           string       `json:"to,omitempty"`
	Nom          string       `json:"nom"`
	Adresse      string       `json:"adresse,omitempty"`
	Subject      string       `json:"subject"`
	Body         string       `json:"body"`
	CreatedAt    time.Time    `json:"created_at"`
}

//go:generate minimock -i Mailer -o ./ -s _mock.go -g

type Mailer interface {
	Send(ctx context.Context, msg Message) error
	Close() error
}

// Relance builds the reminder of an overdue cotisation.
func Relance(association string, a models.Adherent, c models.Cotisation, niveau int, now time.Time) Message {
	canal := models.CanalCourrier
	if strings.TrimSpace(a.Email) != "" {
		canal = models.CanalEmail
	}
	subject := fmt.Sprintf("%s : cotisation %s impayée", association, c.Periode)
	if niveau > 1 {
		subject = fmt.Sprintf("%s : relance n°%d, cotisation %s impayée", association, niveau, c.Periode)
	}
	body := fmt.Sprintf(
		"Bonjour %s,\n\nSauf erreur de notre part, la cotisation %s d'un montant de %s € "+
			"arrivée à échéance le %s reste due pour %s €.\n\nMerci de régulariser votre situation.\n\n%s",
		a.FullName(),
		c.Periode,
		formatEuros(c.Montant),
		c.DateEcheance.Format("02/01/2006"),
		formatEuros(c.Restant()),
		association,
	)
	return Message{
		AdherentID:   a.ID,
		CotisationID: c.ID,
		Niveau:       niveau,
		Canal:        canal,
		To:           a.Email,
		Nom:          a.FullName(),
		Adresse:      strings.TrimSpace(strings.Join([]string{a.Adresse, a.CodePostal, a.Ville}, " ")),
		Subject:      subject,
		Body:         body,
		CreatedAt:    now,
	}
}

func formatEuros(cents int64) string {
	return fmt.Sprintf("%d,%02d", cents/100, cents%100)
}

// LogMailer writes the reminders to the log, for development and for associations
// sending their letters by hand.
type LogMailer struct {
	log  logrus.FieldLogger
	from string
}

func NewLogMailer(log logrus.FieldLogger, from string) *LogMailer {
	return &LogMailer{log: log, from: from}
}

// Send writes the whole message to the log, body included.
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	fields := logrus.Fields{
		"adherent_id":   msg.AdherentID,
		"cotisation_id": msg.CotisationID,
		"niveau":        msg.Niveau,
		"canal":         msg.Canal,
		"from":          m.from,
		"to":            msg.To,
		"nom":           msg.Nom,
		"body":          msg.Body,
	}
	if msg.Canal == models.CanalCourrier {
		fields["adresse"] = msg.Adresse
	}
	m.log.WithFields(fields).Info(msg.Subject)
	return nil
}

func (m *LogMailer) Close() error {
	return nil
}

// NATSMailer publishes the reminders as JSON, a mail relay subscribed to the subject delivers them.
type NATSMailer struct {
	conn    *nats.Conn
	subject string
	from    string
}

func NewNATSMailer(cfg configuration.Notify, log logrus.FieldLogger) (*NATSMailer, error) {
	conn, err := nats.Connect(cfg.NATSURL,
		nats.Name("amaki-relances"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Warn("nats disconnected")
			}
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to nats at %s", cfg.NATSURL)
	}
	return &NATSMailer{conn: conn, subject: cfg.Subject, from: cfg.From}, nil
}

func encode(msg Message, from string) ([]byte, error) {
	if msg.From == "" {
		msg.From = from
	}
	raw, err := json.Marshal(msg)
	return raw, errors.Wrap(err, "failed to encode message")
}

func (m *NATSMailer) Send(ctx context.Context, msg Message) error {
	raw, err := encode(msg, m.from)
	if err != nil {
		return err
	}
	if err := m.conn.Publish(m.subject, raw); err != nil {
		return errors.Wrapf(err, "failed to publish relance of cotisation %d", msg.CotisationID)
	}
	return nil
}

func (m *NATSMailer) Close() error {
	return errors.Wrap(m.conn.Drain(), "failed to drain nats connection")
}

func NewMailer(cfg configuration.Notify, log logrus.FieldLogger) (Mailer, error) {
	switch cfg.Driver {
	case "", DriverLog:
		return NewLogMailer(log, cfg.From), nil
	case DriverNATS:
		return NewNATSMailer(cfg, log)
	}
	return nil, errors.Errorf("unknown notify driver %q", cfg.Driver)
}
