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
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/amaki-france/adherents/configuration"
	"github.com/amaki-france/adherents/internal/models"
)

type mollieAmount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

type molliePayment struct {
	ID             string            `json:"id,omitempty"`
	Status         string            `json:"status,omitempty"`
	Amount         mollieAmount      `json:"amount"`
	AmountRefunded *mollieAmount     `json:"amountRefunded,omitempty"`
	Description    string            `json:"description"`
	RedirectURL    string            `json:"redirectUrl,omitempty"`
	WebhookURL     string            `json:"webhookUrl,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	Links          struct {
		Checkout *struct {
			Href string `json:"href"`
		} `json:"checkout,omitempty"`
	} `json:"_links"`
}

type mollieError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Mollie talks to the Mollie payments API v2.
type Mollie struct {
	client *http.Client
	cfg    configuration.Mollie
	log    logrus.FieldLogger
}

func NewMollie(cfg configuration.Mollie, log logrus.FieldLogger) *Mollie {
	return &Mollie{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		log:    log,
	}
}

func (m *Mollie) Provider() models.Provider {
	return models.ProviderMollie
}

func (m *Mollie) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode mollie request")
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, strings.TrimSuffix(m.cfg.BaseURL, "/")+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build mollie request")
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()
	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "can't read the response body")
	}
	if resp.StatusCode >= http.StatusBadRequest {
		merr := mollieError{}
		if err := json.Unmarshal(respBody, &merr); err != nil || merr.Detail == "" {
			return errors.Errorf("mollie request %s %s failed with status %d", method, path, resp.StatusCode)
		}
		return errors.Errorf("mollie request %s %s failed: %s (%d)", method, path, merr.Detail, merr.Status)
	}
	return errors.Wrap(json.Unmarshal(respBody, out), "can't parse the response body")
}

func (m *Mollie) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	in := molliePayment{
		Amount:      mollieAmount{Currency: strings.ToUpper(req.Currency), Value: FormatAmount(req.Montant)},
		Description: req.Description,
		RedirectURL: m.cfg.RedirectURL,
		WebhookURL:  m.cfg.WebhookURL,
		Metadata:    map[string]string{metadataPaiementID: formatID(req.PaiementID)},
	}
	out := molliePayment{}
	if err := m.do(ctx, http.MethodPost, "/payments", in, &out); err != nil {
		return nil, errors.Wrapf(err, "failed to create mollie payment for paiement %d", req.PaiementID)
	}
	if out.Links.Checkout == nil {
		return nil, errors.Errorf("mollie payment %s has no checkout url", out.ID)
	}
	return &Checkout{ProviderRef: out.ID, URL: out.Links.Checkout.Href}, nil
}

func (m *Mollie) payment(ctx context.Context, id string) (*molliePayment, error) {
	out := &molliePayment{}
	if err := m.do(ctx, http.MethodGet, "/payments/"+url.PathEscape(id), nil, out); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch mollie payment %s", id)
	}
	return out, nil
}

// ParseWebhook reads the payment id posted by Mollie and fetches the payment,
// the webhook itself carries no status.
func (m *Mollie) ParseWebhook(ctx context.Context, r *http.Request) (*Event, error) {
	if err := r.ParseForm(); err != nil {
		return nil, errors.Wrap(ErrMalformedEvent, err.Error())
	}
	id := strings.TrimSpace(r.PostForm.Get("id"))
	if id == "" {
		return nil, errors.Wrap(ErrMalformedEvent, "missing payment id")
	}
	p, err := m.payment(ctx, id)
	if err != nil {
		return nil, err
	}

	res := &Event{Kind: EventIgnored, Type: p.Status, PaiementID: paiementID(p.Metadata), ProviderRef: p.ID}
	res.Montant, err = ParseAmount(p.Amount.Value)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedEvent, err.Error())
	}
	switch p.Status {
	case "paid":
		res.Kind = EventPaid
		if p.AmountRefunded != nil {
			refunded, err := ParseAmount(p.AmountRefunded.Value)
			if err == nil && refunded > 0 && refunded >= res.Montant {
				res.Kind = EventRefunded
			}
		}
	case "failed", "canceled", "expired":
		res.Kind = EventFailed
	default:
		m.log.WithField("payment", p.ID).Debugf("mollie payment is %s", p.Status)
	}
	return res, nil
}
