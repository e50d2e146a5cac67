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
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/amaki-france/adherents/configuration"
	"github.com/amaki-france/adherents/internal/models"
)

const (
	stripeSignatureHeader = "Stripe-Signature"
	maxWebhookBody        = 64 << 10

	stripeSessionCompleted = "checkout.session.completed"
	stripeSessionExpired   = "checkout.session.expired"
	stripeIntentFailed     = "payment_intent.payment_failed"
	stripeChargeRefunded   = "charge.refunded"
)

type Stripe struct {
	api *client.API
	cfg configuration.Stripe
	log logrus.FieldLogger
}

func NewStripe(cfg configuration.Stripe, log logrus.FieldLogger) *Stripe {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &Stripe{api: api, cfg: cfg, log: log}
}

func (s *Stripe) Provider() models.Provider {
	return models.ProviderStripe
}

// CreateCheckout opens a Checkout Session. The paiement id travels as client reference
// and as metadata of the payment intent so that refunds can be traced back.
func (s *Stripe) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	id := formatID(req.PaiementID)
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(id),
		SuccessURL:        stripe.String(s.cfg.SuccessURL),
		CancelURL:         stripe.String(s.cfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.Montant),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{metadataPaiementID: id},
		},
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.AddMetadata(metadataPaiementID, id)
	params.Context = ctx

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create stripe checkout for paiement %d", req.PaiementID)
	}
	return &Checkout{ProviderRef: session.ID, URL: session.URL}, nil
}

func (s *Stripe) ParseWebhook(ctx context.Context, r *http.Request) (*Event, error) {
	payload, err := ioutil.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read stripe webhook body")
	}
	return s.DecodeEvent(payload, r.Header.Get(stripeSignatureHeader))
}

// DecodeEvent verifies the signature of payload and maps the stripe event.
func (s *Stripe) DecodeEvent(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSignature, err.Error())
	}

	res := &Event{Kind: EventIgnored, Type: string(event.Type)}
	switch string(event.Type) {
	case stripeSessionCompleted, stripeSessionExpired:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, errors.Wrap(ErrMalformedEvent, err.Error())
		}
		res.PaiementID, _ = strconv.ParseInt(session.ClientReferenceID, 10, 64)
		if res.PaiementID == 0 {
			res.PaiementID = paiementID(session.Metadata)
		}
		// the payment intent is what refunds refer to
		res.ProviderRef = session.ID
		if session.PaymentIntent != nil && session.PaymentIntent.ID != "" {
			res.ProviderRef = session.PaymentIntent.ID
		}
		res.Montant = session.AmountTotal
		switch {
		case string(event.Type) == stripeSessionExpired:
			res.Kind = EventFailed
		case session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
			res.Kind = EventPaid
		default:
			s.log.WithField("session", session.ID).Infof("session completed with payment status %s", session.PaymentStatus)
		}
	case stripeIntentFailed:
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return nil, errors.Wrap(ErrMalformedEvent, err.Error())
		}
		res.Kind = EventFailed
		res.PaiementID = paiementID(intent.Metadata)
	case stripeChargeRefunded:
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return nil, errors.Wrap(ErrMalformedEvent, err.Error())
		}
		res.PaiementID = paiementID(charge.Metadata)
		if charge.PaymentIntent != nil {
			if res.PaiementID == 0 {
				res.PaiementID = paiementID(charge.PaymentIntent.Metadata)
			}
			res.ProviderRef = charge.PaymentIntent.ID
		}
		res.Montant = charge.AmountRefunded
		if charge.Refunded {
			res.Kind = EventRefunded
		} else {
			s.log.WithField("charge", charge.ID).Info("partial refund ignored")
		}
	}
	return res, nil
}
