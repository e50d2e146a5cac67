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
	"github.com/pkg/errors"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrInvalidState   = errors.New("invalid state")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrElectionClosed = errors.New("election is not open")
	ErrAlreadyVoted   = errors.New("already voted for this poste")
	ErrEventFull      = errors.New("evenement is full")
	ErrNotEligible    = errors.New("adherent is not eligible")
	ErrNothingDue     = errors.New("nothing is due")
)

// ValidationError carries the list of input problems returned to the client.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 1 {
		return e.Messages[0]
	}
	return "validation failed"
}

func (e *ValidationError) Add(msg string) {
	e.Messages = append(e.Messages, msg)
}

// Err returns nil when nothing was added.
func (e *ValidationError) Err() error {
	if len(e.Messages) == 0 {
		return nil
	}
	return e
}

func NewValidationError(msg ...string) *ValidationError {
	return &ValidationError{Messages: msg}
}
