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
	"net/mail"
	"strings"
	"time"

	"github.com/go-pg/pg"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/amaki-france/adherents/configuration"
	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/app/adherents/postgres"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/observability"
)

const minPasswordLength = 8

type Profile struct {
	Civilite      string     `json:"civilite"`
	Nom           string     `json:"nom"`
	Prenom        string     `json:"prenom"`
	Email         string     `json:"email"`
	Telephone     string     `json:"telephone"`
	Adresse       string     `json:"adresse"`
	CodePostal    string     `json:"code_postal"`
	Ville         string     `json:"ville"`
	DateNaissance *time.Time `json:"date_naissance,omitempty"`
}

func (p Profile) validate(verr *adherents.ValidationError) {
	if strings.TrimSpace(p.Nom) == "" {
		verr.Add("nom is required")
	}
	if strings.TrimSpace(p.Prenom) == "" {
		verr.Add("prenom is required")
	}
	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			verr.Add("email is invalid")
		}
	}
}

type Registration struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Profile  Profile `json:"profile"`
}

// Principal is the authenticated caller.
type Principal struct {
	User       models.User
	AdherentID int64
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.User.Role == models.RoleAdmin
}

// CanAccess reports whether the caller may read or modify data of the adherent.
func (p *Principal) CanAccess(adherentID int64) bool {
	return p.IsAdmin() || (p != nil && p.AdherentID != 0 && p.AdherentID == adherentID)
}

type Accounts struct {
	db    *pg.DB
	obs   *observability.Observability
	log   logrus.FieldLogger
	cfg   configuration.Auth
	clock Clock
}

func NewAccounts(db *pg.DB, obs *observability.Observability, cfg configuration.Auth, clock Clock) *Accounts {
	return &Accounts{db: db, obs: obs, log: obs.Log(), cfg: cfg, clock: clock}
}

func (s *Accounts) hash(password string) (string, error) {
	cost := s.cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	return string(h), nil
}

func validateCredentials(email, password string, verr *adherents.ValidationError) {
	if _, err := mail.ParseAddress(email); err != nil {
		verr.Add("email is invalid")
	}
	if len(password) < minPasswordLength {
		verr.Add("password must be at least 8 characters")
	}
}

// Register creates the user account and its pending adherent profile.
func (s *Accounts) Register(ctx context.Context, r Registration) (*models.User, *models.Adherent, error) {
	verr := &adherents.ValidationError{}
	validateCredentials(r.Email, r.Password, verr)
	r.Profile.validate(verr)
	if err := verr.Err(); err != nil {
		return nil, nil, err
	}

	hash, err := s.hash(r.Password)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	user := &models.User{Email: r.Email, PasswordHash: hash, Role: models.RoleAdherent, CreatedAt: now}
	adherent := &models.Adherent{
		Civilite:      r.Profile.Civilite,
		Nom:           strings.TrimSpace(r.Profile.Nom),
		Prenom:        strings.TrimSpace(r.Profile.Prenom),
		Email:         strings.ToLower(strings.TrimSpace(r.Email)),
		Telephone:     r.Profile.Telephone,
		Adresse:       r.Profile.Adresse,
		CodePostal:    r.Profile.CodePostal,
		Ville:         r.Profile.Ville,
		DateNaissance: r.Profile.DateNaissance,
		Statut:        models.AdherentEnAttente,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = s.db.RunInTransaction(func(tx *pg.Tx) error {
		if err := postgres.NewUserStorage(s.obs, tx).Insert(user); err != nil {
			return err
		}
		adherent.UserID = user.ID
		return postgres.NewAdherentStorage(s.obs, tx).Insert(adherent)
	})
	if err != nil {
		return nil, nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "adherent_id": adherent.ID}).Info("adherent registered")
	return user, adherent, nil
}

func (s *Accounts) CreateAdmin(ctx context.Context, email, password string) (*models.User, error) {
	verr := &adherents.ValidationError{}
	validateCredentials(email, password, verr)
	if err := verr.Err(); err != nil {
		return nil, err
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: email, PasswordHash: hash, Role: models.RoleAdmin, CreatedAt: s.clock.Now()}
	if err := postgres.NewUserStorage(s.obs, s.db).Insert(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login returns a new session token. Unknown email and wrong password are indistinguishable.
func (s *Accounts) Login(ctx context.Context, email, password string) (*models.Session, error) {
	users := postgres.NewUserStorage(s.obs, s.db)
	user, err := users.ByEmail(email)
	if err != nil {
		if errors.Cause(err) == adherents.ErrNotFound {
			return nil, adherents.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, adherents.ErrUnauthorized
	}

	now := s.clock.Now()
	session := &models.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
		CreatedAt: now,
	}
	if err := users.InsertSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Accounts) Logout(ctx context.Context, token string) error {
	return postgres.NewUserStorage(s.obs, s.db).DeleteSession(token)
}

func (s *Accounts) Authenticate(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, adherents.ErrUnauthorized
	}
	users := postgres.NewUserStorage(s.obs, s.db)
	session, err := users.Session(token, s.clock.Now())
	if err != nil {
		if errors.Cause(err) == adherents.ErrNotFound {
			return nil, adherents.ErrUnauthorized
		}
		return nil, err
	}
	user, err := users.ByID(session.UserID)
	if err != nil {
		return nil, err
	}
	p := &Principal{User: *user}
	adherent, err := postgres.NewAdherentStorage(s.obs, s.db).ByUserID(user.ID)
	switch {
	case err == nil:
		p.AdherentID = adherent.ID
	case errors.Cause(err) != adherents.ErrNotFound:
		return nil, err
	}
	return p, nil
}

func (s *Accounts) PurgeExpiredSessions(ctx context.Context) (int, error) {
	return postgres.NewUserStorage(s.obs, s.db).DeleteExpiredSessions(s.clock.Now())
}
