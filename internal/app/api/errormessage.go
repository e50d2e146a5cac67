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

package api

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/amaki-france/adherents/internal/app/adherents"
)

type ErrorMessage struct {
	Error []string `json:"error"`
}

func NewSingleMessageError(err string) ErrorMessage {
	return ErrorMessage{Error: []string{err}}
}

// errorResponse maps a service error to the status and body returned to the client.
// ok is false for unexpected errors, which are answered with an empty body.
func errorResponse(err error) (status int, msg ErrorMessage, ok bool) {
	cause := errors.Cause(err)
	if verr, isValidation := cause.(*adherents.ValidationError); isValidation {
		return http.StatusBadRequest, ErrorMessage{Error: verr.Messages}, true
	}
	switch cause {
	case adherents.ErrUnauthorized:
		status = http.StatusUnauthorized
	case adherents.ErrForbidden:
		status = http.StatusForbidden
	case adherents.ErrNotFound:
		status = http.StatusNotFound
	case adherents.ErrAlreadyExists, adherents.ErrAlreadyVoted:
		status = http.StatusConflict
	case adherents.ErrInvalidState,
		adherents.ErrElectionClosed,
		adherents.ErrEventFull,
		adherents.ErrNotEligible,
		adherents.ErrNothingDue:
		status = http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError, ErrorMessage{}, false
	}
	return status, NewSingleMessageError(err.Error()), true
}
