package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	domainErrors "github.com/maisonforma/storefront/internal/domain/errors"
	"github.com/maisonforma/storefront/internal/domain/model"
)

// SignaturePrefix is the optional scheme prefix accepted in the header value.
const SignaturePrefix = "sha256="

// Verifier authenticates raw payment-event payloads against the shared
// processor secret and decodes them into typed events.
type Verifier struct {
	secret []byte
}

// NewVerifier builds Verifier for the given shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// payload mirrors the processor's JSON envelope.
type payload struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		SessionID     string `json:"session_id"`
		TransactionID string `json:"transaction_id"`
		Amount        int64  `json:"amount"`
		Currency      string `json:"currency"`
		CustomerEmail string `json:"customer_email"`
		Metadata      struct {
			OrderID string `json:"order_id"`
		} `json:"metadata"`
		ShippingAddress *struct {
			Name       string `json:"name"`
			Line1      string `json:"line1"`
			Line2      string `json:"line2"`
			City       string `json:"city"`
			PostalCode string `json:"postal_code"`
			Country    string `json:"country"`
		} `json:"shipping_address"`
	} `json:"data"`
}

// Verify checks the signature header against the HMAC-SHA256 digest of body.
// An absent header, a malformed digest, and a mismatch all resolve to
// ErrInvalidSignature.
func (v *Verifier) Verify(body []byte, header string) error {
	header = strings.TrimSpace(header)
	if header == "" {
		return fmt.Errorf("missing signature header: %w", domainErrors.ErrInvalidSignature)
	}
	header = strings.TrimPrefix(header, SignaturePrefix)

	claimed, err := hex.DecodeString(header)
	if err != nil {
		return fmt.Errorf("malformed signature: %w", domainErrors.ErrInvalidSignature)
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	if !hmac.Equal(mac.Sum(nil), claimed) {
		return fmt.Errorf("signature mismatch: %w", domainErrors.ErrInvalidSignature)
	}
	return nil
}

// Sign produces the hex signature for body. Used by tests and by the local
// event simulator.
func (v *Verifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Decode parses the verified body into a typed event, rejecting payloads
// whose shape violates the schema with ErrDataIntegrity.
func (v *Verifier) Decode(body []byte) (*model.PaymentEvent, error) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode event: %w", domainErrors.ErrDataIntegrity)
	}
	if p.ID == "" || p.Type == "" {
		return nil, fmt.Errorf("event id/type missing: %w", domainErrors.ErrDataIntegrity)
	}
	if p.Data.Amount < 0 {
		return nil, fmt.Errorf("negative amount: %w", domainErrors.ErrDataIntegrity)
	}

	event := &model.PaymentEvent{
		ID:             p.ID,
		Type:           p.Type,
		SessionRef:     p.Data.SessionID,
		TransactionRef: p.Data.TransactionID,
		OrderID:        p.Data.Metadata.OrderID,
		Amount:         p.Data.Amount,
		Currency:       p.Data.Currency,
		CustomerEmail:  p.Data.CustomerEmail,
	}
	if addr := p.Data.ShippingAddress; addr != nil {
		event.ShippingAddress = &model.Address{
			Name:       addr.Name,
			Line1:      addr.Line1,
			Line2:      addr.Line2,
			City:       addr.City,
			PostalCode: addr.PostalCode,
			Country:    addr.Country,
		}
	}
	return event, nil
}

// VerifyAndDecode authenticates the payload and returns the typed event.
func (v *Verifier) VerifyAndDecode(body []byte, header string) (*model.PaymentEvent, error) {
	if err := v.Verify(body, header); err != nil {
		return nil, err
	}
	return v.Decode(body)
}
