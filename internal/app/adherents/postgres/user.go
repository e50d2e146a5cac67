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

package postgres

import (
	"strings"
	"time"

	"github.com/go-pg/pg/orm"
	"github.com/pkg/errors"

	"github.com/amaki-france/adherents/internal/app/adherents"
	"github.com/amaki-france/adherents/internal/models"
	"github.com/amaki-france/adherents/observability"
)

type UserStorage struct {
	storage
}

func NewUserStorage(obs *observability.Observability, db orm.DB) *UserStorage {
	return &UserStorage{newStorage(obs, db)}
}

func (s *UserStorage) Insert(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	_, err := s.db.Model(user).Returning("id").Insert()
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Wrapf(adherents.ErrAlreadyExists, "user %s", user.Email)
		}
		return errors.Wrapf(err, "failed to insert user %s", user.Email)
	}
	return nil
}

func (s *UserStorage) ByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := s.db.Model(user).
		Where("lower(email) = lower(?)", strings.TrimSpace(email)).
		Select()
	if err != nil {
		return nil, notFound(err, "user %s", email)
	}
	return user, nil
}

func (s *UserStorage) ByID(id int64) (*models.User, error) {
	user := &models.User{}
	err := s.db.Model(user).Where("id = ?", id).Select()
	if err != nil {
		return nil, notFound(err, "user %d", id)
	}
	return user, nil
}

func (s *UserStorage) Delete(id int64) error {
	_, err := s.db.Model((*models.User)(nil)).Where("id = ?", id).Delete()
	return errors.Wrapf(err, "failed to delete user %d", id)
}

func (s *UserStorage) InsertSession(session *models.Session) error {
	_, err := s.db.Model(session).Insert()
	return errors.Wrap(err, "failed to insert session")
}

// Session returns the session of token if it has not expired at now.
func (s *UserStorage) Session(token string, now time.Time) (*models.Session, error) {
	session := &models.Session{}
	err := s.db.Model(session).
		Where("token = ?", token).
		Where("expires_at > ?", now).
		Select()
	if err != nil {
		return nil, notFound(err, "session")
	}
	return session, nil
}

func (s *UserStorage) DeleteSession(token string) error {
	_, err := s.db.Model((*models.Session)(nil)).Where("token = ?", token).Delete()
	return errors.Wrap(err, "failed to delete session")
}

func (s *UserStorage) DeleteSessionsOf(userID int64) error {
	_, err := s.db.Model((*models.Session)(nil)).Where("user_id = ?", userID).Delete()
	return errors.Wrapf(err, "failed to delete sessions of user %d", userID)
}

func (s *UserStorage) DeleteExpiredSessions(now time.Time) (int, error) {
	res, err := s.db.Model((*models.Session)(nil)).Where("expires_at <= ?", now).Delete()
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete expired sessions")
	}
	return res.RowsAffected(), nil
}
