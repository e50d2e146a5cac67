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

package configuration

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amaki-france/adherents/internal/pkg/cycle"
)

type Configuration struct {
	Listen      string
	DB          DB
	Log         Log
	Auth        Auth
	Stripe      Stripe
	Mollie      Mollie
	Relance     Relance
	Notify      Notify
	Cache       Cache
	Association Association
}

type DB struct {
	URL      string
	PoolSize int
	Attempts cycle.Limit
	// Interval between connection attempts
	AttemptInterval time.Duration
}

type Log struct {
	Level  string
	Format string
}

type Auth struct {
	SessionTTL time.Duration
	BcryptCost int
}

type Stripe struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

type Mollie struct {
	APIKey      string
	BaseURL     string
	RedirectURL string
	WebhookURL  string
	Timeout     time.Duration
}

type Relance struct {
	// Minimal delay between two reminders for the same cotisation
	Interval       time.Duration
	MinDaysOverdue int
	MaxLevel       int
	// Cron expression, empty disables the scheduler inside the api process
	Schedule string
}

type Notify struct {
	Driver  string
	NATSURL string
	Subject string
	From    string
}

type Cache struct {
	Size int
}

type Association struct {
	Name      string
	Currency  string
	GraceDays int
}

func Default() *Configuration {
	return &Configuration{
		Listen: ":8080",
		DB: DB{
			URL:             "postgres://postgres@localhost/amaki?sslmode=disable",
			PoolSize:        20,
			Attempts:        5,
			AttemptInterval: 3 * time.Second,
		},
		Log: Log{
			Level:  logrus.InfoLevel.String(),
			Format: "json",
		},
		Auth: Auth{
			SessionTTL: 7 * 24 * time.Hour,
			BcryptCost: 10,
		},
		Stripe: Stripe{
			SuccessURL: "http://localhost:3000/paiement/succes",
			CancelURL:  "http://localhost:3000/paiement/annule",
		},
		Mollie: Mollie{
			BaseURL:     "https://api.mollie.com/v2",
			RedirectURL: "http://localhost:3000/paiement/retour",
			Timeout:     10 * time.Second,
		},
		Relance: Relance{
			Interval:       15 * 24 * time.Hour,
			MinDaysOverdue: 7,
			MaxLevel:       3,
		},
		Notify: Notify{
			Driver:  "log",
			NATSURL: "nats://127.0.0.1:4222",
			Subject: "amaki.relances",
			From:    "tresorerie@amaki.fr",
		},
		Cache: Cache{
			Size: 128,
		},
		Association: Association{
			Name:      "AMAKI France",
			Currency:  "EUR",
			GraceDays: 15,
		},
	}
}
