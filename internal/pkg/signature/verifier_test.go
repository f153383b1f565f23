package signature

import (
	"errors"
	"testing"

	domainErrors "github.com/maisonforma/storefront/internal/domain/errors"
	"github.com/maisonforma/storefront/internal/domain/model"
)

const validEvent = `{
	"id": "evt_1",
	"type": "payment.captured",
	"data": {
		"session_id": "cs_42",
		"transaction_id": "tx_42",
		"amount": 12900,
		"currency": "eur",
		"customer_email": "buyer@example.com",
		"metadata": {"order_id": "ord_42"},
		"shipping_address": {
			"name": "A. Customer",
			"line1": "1 Rue de Test",
			"city": "Paris",
			"postal_code": "75001",
			"country": "FR"
		}
	}
}`

func TestVerifyAcceptsSignedBody(t *testing.T) {
	v := NewVerifier("secret")
	body := []byte(validEvent)

	if err := v.Verify(body, v.Sign(body)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Verify(body, SignaturePrefix+v.Sign(body)); err != nil {
		t.Fatalf("prefixed signature rejected: %v", err)
	}
}

func TestVerifyRejections(t *testing.T) {
	v := NewVerifier("secret")
	body := []byte(validEvent)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"whitespace header", "   "},
		{"malformed hex", "not-hex!"},
		{"wrong secret", NewVerifier("other").Sign(body)},
		{"tampered body", v.Sign([]byte(`{"id":"evt_2"}`))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := v.Verify(body, tc.header); !errors.Is(err, domainErrors.ErrInvalidSignature) {
				t.Fatalf("expected signature error, got %v", err)
			}
		})
	}
}

func TestDecodeProducesTypedEvent(t *testing.T) {
	v := NewVerifier("secret")
	event, err := v.Decode([]byte(validEvent))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if event.ID != "evt_1" || event.Type != model.EventTypePaymentCaptured {
		t.Fatalf("unexpected identity: %+v", event)
	}
	if event.OrderID != "ord_42" {
		t.Fatalf("expected order id from metadata, got %q", event.OrderID)
	}
	if event.TransactionRef != "tx_42" || event.SessionRef != "cs_42" {
		t.Fatalf("unexpected refs: %+v", event)
	}
	if event.Amount != 12900 || event.Currency != "eur" {
		t.Fatalf("unexpected amount: %+v", event)
	}
	if event.CustomerEmail != "buyer@example.com" {
		t.Fatalf("unexpected email %q", event.CustomerEmail)
	}
	if event.ShippingAddress == nil || event.ShippingAddress.City != "Paris" {
		t.Fatalf("expected shipping address, got %+v", event.ShippingAddress)
	}
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	v := NewVerifier("secret")

	cases := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing id", `{"type":"payment.captured"}`},
		{"missing type", `{"id":"evt_1"}`},
		{"negative amount", `{"id":"evt_1","type":"payment.captured","data":{"amount":-1}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := v.Decode([]byte(tc.body)); !errors.Is(err, domainErrors.ErrDataIntegrity) {
				t.Fatalf("expected data integrity error, got %v", err)
			}
		})
	}
}

func TestDecodeWithoutMetadataLeavesOrderEmpty(t *testing.T) {
	v := NewVerifier("secret")
	event, err := v.Decode([]byte(`{"id":"evt_9","type":"payment.captured","data":{"amount":100}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.OrderID != "" {
		t.Fatalf("expected empty order id, got %q", event.OrderID)
	}
	if event.ShippingAddress != nil {
		t.Fatal("expected nil shipping address")
	}
}
