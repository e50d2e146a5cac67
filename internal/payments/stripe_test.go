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
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/amaki-france/adherents/configuration"
)

const testWebhookSecret = "whsec_test"

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = ioutil.Discard
	return log
}

func sign(payload []byte, secret string, at time.Time) string {
	ts := fmt.Sprintf("%d", at.Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func stripeEvent(typ, object string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"object": "event",
		"api_version": "2020-08-27",
		"created": %d,
		"type": %q,
		"data": {"object": %s}
	}`, time.Now().Unix(), typ, object))
}

func newTestStripe() *Stripe {
	return NewStripe(configuration.Stripe{SecretKey: "sk_test", WebhookSecret: testWebhookSecret}, quietLogger())
}

func TestStripe_DecodeEvent_SessionCompleted(t *testing.T) {
	s := newTestStripe()
	payload := stripeEvent("checkout.session.completed", `{
		"id": "cs_test_1",
		"object": "checkout.session",
		"client_reference_id": "42",
		"payment_status": "paid",
		"amount_total": 2500,
		"payment_intent": "pi_1",
		"metadata": {"paiement_id": "42"}
	}`)

	ev, err := s.DecodeEvent(payload, sign(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	require.Equal(t, EventPaid, ev.Kind)
	require.Equal(t, int64(42), ev.PaiementID)
	require.Equal(t, "pi_1", ev.ProviderRef)
	require.Equal(t, int64(2500), ev.Montant)
}

func TestStripe_DecodeEvent_UnpaidSessionIsIgnored(t *testing.T) {
	s := newTestStripe()
	payload := stripeEvent("checkout.session.completed", `{
		"id": "cs_test_1",
		"object": "checkout.session",
		"client_reference_id": "42",
		"payment_status": "unpaid"
	}`)

	ev, err := s.DecodeEvent(payload, sign(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	require.Equal(t, EventIgnored, ev.Kind)
}

func TestStripe_DecodeEvent_Expired(t *testing.T) {
	s := newTestStripe()
	payload := stripeEvent("checkout.session.expired", `{
		"id": "cs_test_2",
		"object": "checkout.session",
		"client_reference_id": "7"
	}`)

	ev, err := s.DecodeEvent(payload, sign(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	require.Equal(t, EventFailed, ev.Kind)
	require.Equal(t, int64(7), ev.PaiementID)
	require.Equal(t, "cs_test_2", ev.ProviderRef)
}

func TestStripe_DecodeEvent_Refund(t *testing.T) {
	s := newTestStripe()
	payload := stripeEvent("charge.refunded", `{
		"id": "ch_1",
		"object": "charge",
		"amount": 2500,
		"amount_refunded": 2500,
		"refunded": true,
		"payment_intent": "pi_1",
		"metadata": {"paiement_id": "42"}
	}`)

	ev, err := s.DecodeEvent(payload, sign(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	require.Equal(t, EventRefunded, ev.Kind)
	require.Equal(t, int64(42), ev.PaiementID)
	require.Equal(t, "pi_1", ev.ProviderRef)
}

func TestStripe_DecodeEvent_OtherTypesAreIgnored(t *testing.T) {
	s := newTestStripe()
	payload := stripeEvent("customer.created", `{"id": "cus_1", "object": "customer"}`)

	ev, err := s.DecodeEvent(payload, sign(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	require.Equal(t, EventIgnored, ev.Kind)
	require.Equal(t, "customer.created", ev.Type)
}

func TestStripe_DecodeEvent_BadSignature(t *testing.T) {
	s := newTestStripe()
	payload := stripeEvent("checkout.session.completed", `{"id": "cs_test_1", "object": "checkout.session"}`)

	_, err := s.DecodeEvent(payload, sign(payload, "whsec_other", time.Now()))
	require.Equal(t, ErrInvalidSignature, errors.Cause(err))

	_, err = s.DecodeEvent(payload, sign(payload, testWebhookSecret, time.Now().Add(-time.Hour)))
	require.Equal(t, ErrInvalidSignature, errors.Cause(err))

	_, err = s.DecodeEvent(payload, "")
	require.Equal(t, ErrInvalidSignature, errors.Cause(err))
}

func TestStripe_ParseWebhook(t *testing.T) {
	s := newTestStripe()
	payload := stripeEvent("checkout.session.expired", `{
		"id": "cs_test_3",
		"object": "checkout.session",
		"client_reference_id": "3"
	}`)
	req := httptest.NewRequest("POST", "/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", sign(payload, testWebhookSecret, time.Now()))

	ev, err := s.ParseWebhook(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, EventFailed, ev.Kind)
	require.Equal(t, int64(3), ev.PaiementID)
}
