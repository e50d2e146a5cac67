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

package payments

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/amaki-france/adherents/internal/models"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformedEvent   = errors.New("malformed webhook event")
)

const metadataPaiementID = "paiement_id"

type CheckoutRequest struct {
	PaiementID  int64
	Montant     int64
	Currency    string
	Description string
	Email       string
}

type Checkout struct {
	ProviderRef string `json:"provider_ref"`
	URL         string `json:"url"`
}

type EventKind string

const (
	EventPaid     EventKind = "paid"
	EventFailed   EventKind = "failed"
	EventRefunded EventKind = "refunded"
	EventIgnored  EventKind = "ignored"
)

// Event is a provider notification reduced to what the ledger needs.
// PaiementID is zero when the provider did not echo our metadata, ProviderRef is then used.
type Event struct {
	Kind        EventKind
	Type        string
	PaiementID  int64
	ProviderRef string
	Montant     int64
}

//go:generate minimock -i Gateway -o ./ -s _mock.go -g

type Gateway interface {
	Provider() models.Provider
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	ParseWebhook(ctx context.Context, r *http.Request) (*Event, error)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func paiementID(metadata map[string]string) int64 {
	id, err := strconv.ParseInt(metadata[metadataPaiementID], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// FormatAmount renders cents as a decimal string with two digits, e.g. 1250 -> "12.50".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// ParseAmount is the inverse of FormatAmount. One or two decimals are accepted.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	units, decimals := s, "00"
	if i := strings.IndexByte(s, '.'); i >= 0 {
		units, decimals = s[:i], s[i+1:]
		switch len(decimals) {
		case 1:
			decimals += "0"
		case 2:
		default:
			return 0, errors.Errorf("invalid amount %q", s)
		}
	}
	u, err := strconv.ParseInt(units, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid amount %q", s)
	}
	d, err := strconv.ParseInt(decimals, 10, 64)
	if err != nil || d < 0 {
		return 0, errors.Errorf("invalid amount %q", s)
	}
	cents := u*100 + d
	if neg {
		cents = -cents
	}
	return cents, nil
}
